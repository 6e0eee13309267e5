package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/Excommunicode/ShareHub/internal/platform/domain"
)

// Booking is the aggregate root for the booking domain.
type Booking struct {
	id       uuid.UUID
	itemID   uuid.UUID
	bookerID uuid.UUID
	start    time.Time
	end      time.Time
	status   BookingStatus

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a WAITING booking. Callers run ValidateCreation first; the period is
// checked again here so that no invalid booking can be constructed.
func NewBooking(itemID, bookerID uuid.UUID, start, end time.Time) (*Booking, error) {
	if itemID == uuid.Nil {
		return nil, domain.NewValidationError("item ID is required")
	}
	if bookerID == uuid.Nil {
		return nil, domain.NewValidationError("booker ID is required")
	}
	if err := ValidatePeriod(start, end); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Booking{
		id:        uuid.New(),
		itemID:    itemID,
		bookerID:  bookerID,
		start:     start.UTC(),
		end:       end.UTC(),
		status:    StatusWaiting,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id, itemID, bookerID uuid.UUID,
	start, end time.Time,
	status BookingStatus,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		start:     start,
		end:       end,
		status:    status,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// ItemID returns the booked item.
func (b *Booking) ItemID() uuid.UUID { return b.itemID }

// BookerID returns the renter.
func (b *Booking) BookerID() uuid.UUID { return b.bookerID }

// Start returns the beginning of the booking period.
func (b *Booking) Start() time.Time { return b.start }

// End returns the end of the booking period.
func (b *Booking) End() time.Time { return b.end }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// Decide applies the owner's approval or rejection.
//
// Approving an APPROVED booking fails with ErrAlreadyDecided, while rejecting a REJECTED
// booking is a no-op that reports changed=false. Any other move out of a terminal status
// fails with an AlreadyDecided error.
func (b *Booking) Decide(approve bool, actingUserID, itemOwnerID uuid.UUID) (changed bool, err error) {
	if actingUserID != itemOwnerID {
		return false, ErrNotAuthorized
	}
	if approve && b.status == StatusApproved {
		return false, ErrAlreadyDecided
	}

	target := StatusRejected
	if approve {
		target = StatusApproved
	}
	if b.status == target {
		return false, nil
	}
	if !b.status.CanTransitionTo(target) {
		return false, NewAlreadyDecidedError(b.status)
	}

	b.status = target
	b.version++
	b.updatedAt = time.Now().UTC()
	return true, nil
}
