package booking

import (
	"time"

	"github.com/google/uuid"
)

// BookableItem is the item data creation rules depend on.
type BookableItem interface {
	IsAvailable() bool
	OwnerID() uuid.UUID
}

// ValidatePeriod requires end to be strictly after start.
func ValidatePeriod(start, end time.Time) error {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return ErrInvalidPeriod
	}
	return nil
}

// ValidateCreation runs the pre-creation checks in a fixed order: period, availability,
// self-booking. The first failure is returned.
func ValidateCreation(start, end time.Time, item BookableItem, requesterID uuid.UUID) error {
	if err := ValidatePeriod(start, end); err != nil {
		return err
	}
	if !item.IsAvailable() {
		return ErrItemUnavailable
	}
	if item.OwnerID() == requesterID {
		return ErrOwnerCannotBook
	}
	return nil
}
