package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for booking aggregates.
// Every lookup that serves a caller is scoped by that caller's id.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByIDForUpdate retrieves a booking and locks its row until the surrounding
	// transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindVisibleTo retrieves a booking only if userID is its booker or its item's owner.
	FindVisibleTo(ctx context.Context, id, userID uuid.UUID) (*Booking, error)

	// Search executes a query ordered by start descending, then id descending.
	Search(ctx context.Context, q Query) ([]*Booking, int64, error)

	// ExistsFinished reports whether bookerID has a booking of itemID in one of statuses
	// that ended before endBefore.
	ExistsFinished(ctx context.Context, bookerID, itemID uuid.UUID, statuses []BookingStatus, endBefore time.Time) (bool, error)

	// FindByItemIDs loads all bookings of the given items except those in excludeStatus.
	FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID, excludeStatus BookingStatus) ([]*Booking, error)

	// CountByStatus returns booking counts grouped by status.
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// UpdateStatus persists a decided booking only if the stored row still has
	// expectedStatus and the previous version.
	UpdateStatus(ctx context.Context, booking *Booking, expectedStatus BookingStatus) error
}
