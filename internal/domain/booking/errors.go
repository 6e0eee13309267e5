package booking

import (
	"fmt"

	"github.com/Excommunicode/ShareHub/internal/platform/domain"
)

// Error codes exposed to API callers.
const (
	CodeInvalidPeriod             = "INVALID_PERIOD"
	CodeItemUnavailable           = "ITEM_UNAVAILABLE"
	CodeOwnerCannotBook           = "OWNER_CANNOT_BOOK"
	CodeNotAuthorized             = "NOT_AUTHORIZED"
	CodeAlreadyDecided            = "ALREADY_DECIDED"
	CodeUnsupportedStatus         = "UNSUPPORTED_STATUS"
	CodeBookingInProgressOrAbsent = "BOOKING_IN_PROGRESS_OR_ABSENT"
)

// Authorization failures are reported as not-found so callers cannot probe for existence.
var (
	ErrInvalidPeriod = domain.New(domain.KindValidation, CodeInvalidPeriod, "Booking period is invalid")

	ErrItemUnavailable = domain.New(domain.KindValidation, CodeItemUnavailable, "Item is not available")

	ErrOwnerCannotBook = domain.New(domain.KindNotFound, CodeOwnerCannotBook, "Owner cannot book own item")

	ErrNotAuthorized = domain.New(domain.KindNotFound, CodeNotAuthorized, "User not authorized")

	ErrAlreadyDecided = domain.New(domain.KindInvalidState, CodeAlreadyDecided, "Booking already approved")

	ErrDecidedConcurrently = domain.New(domain.KindInvalidState, CodeAlreadyDecided,
		"Booking was decided by a concurrent request")

	ErrBookingInProgressOrAbsent = domain.New(domain.KindValidation, CodeBookingInProgressOrAbsent,
		"User has no finished approved booking of this item")
)

// NewAlreadyDecidedError reports a decision on a booking that is no longer WAITING.
func NewAlreadyDecidedError(current BookingStatus) *domain.DomainError {
	if current == StatusApproved {
		return ErrAlreadyDecided
	}
	return domain.New(domain.KindInvalidState, CodeAlreadyDecided, fmt.Sprintf("Booking already %s", current))
}

// NewUnsupportedStatusError reports an unknown state filter.
func NewUnsupportedStatusError(raw string) *domain.DomainError {
	return domain.New(domain.KindValidation, CodeUnsupportedStatus, fmt.Sprintf("Unknown state: %s", raw))
}
