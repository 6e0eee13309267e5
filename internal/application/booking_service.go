package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/Excommunicode/ShareHub/internal/domain/booking"
	itemDomain "github.com/Excommunicode/ShareHub/internal/domain/item"
	userDomain "github.com/Excommunicode/ShareHub/internal/domain/user"
	"github.com/Excommunicode/ShareHub/internal/events"
	"github.com/Excommunicode/ShareHub/internal/metrics"
	"github.com/Excommunicode/ShareHub/internal/platform/domain"
)

// CreateBookingRequest holds the data needed to book an item.
type CreateBookingRequest struct {
	ItemID uuid.UUID `json:"itemId" binding:"required"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	bookings bookingDomain.BookingRepository
	items    itemDomain.ItemRepository
	users    userDomain.UserRepository
	tx       Transactor
	producer EventPublisher
	logger   *zap.Logger
	now      func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	tx Transactor,
	producer EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		items:    items,
		users:    users,
		tx:       tx,
		producer: producer,
		logger:   logger,
		now:      utcNow,
	}
}

// AddBooking books an item for bookerID. The new booking is always WAITING.
func (s *BookingService) AddBooking(ctx context.Context, bookerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	var (
		bk     *bookingDomain.Booking
		it     *itemDomain.Item
		booker *userDomain.User
	)

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if booker, err = s.users.FindByID(ctx, bookerID); err != nil {
			return err
		}
		if it, err = s.items.FindByID(ctx, req.ItemID); err != nil {
			return err
		}
		if err := bookingDomain.ValidateCreation(req.Start, req.End, it, bookerID); err != nil {
			return err
		}
		if bk, err = bookingDomain.NewBooking(it.ID(), bookerID, req.Start, req.End); err != nil {
			return err
		}
		return s.bookings.Save(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	s.logger.Info("booking created",
		zap.String("booking_id", bk.ID().String()),
		zap.String("item_id", it.ID().String()),
		zap.String("booker_id", bookerID.String()),
	)

	evt := events.BookingCreatedEvent{
		BookingID:  bk.ID(),
		ItemID:     it.ID(),
		BookerID:   bookerID,
		OwnerID:    it.OwnerID(),
		Start:      bk.Start(),
		End:        bk.End(),
		OccurredAt: s.now(),
	}
	publishEvent(ctx, s.producer, s.logger, events.TopicBookingEvents, events.BookingCreated, bk.ID().String(), evt)

	result := toBookingDTO(bk, it, booker)
	return &result, nil
}

// DecideBooking approves or rejects a booking on behalf of the item owner. The booking row
// stays locked from the read until commit.
func (s *BookingService) DecideBooking(ctx context.Context, bookingID, ownerID uuid.UUID, approve bool) (*BookingDTO, error) {
	var (
		bk      *bookingDomain.Booking
		it      *itemDomain.Item
		booker  *userDomain.User
		changed bool
	)

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if bk, err = s.bookings.FindByIDForUpdate(ctx, bookingID); err != nil {
			return err
		}
		if it, err = s.items.FindByID(ctx, bk.ItemID()); err != nil {
			return err
		}

		previous := bk.Status()
		if changed, err = bk.Decide(approve, ownerID, it.OwnerID()); err != nil {
			return err
		}
		if changed {
			if err := s.bookings.UpdateStatus(ctx, bk, previous); err != nil {
				return err
			}
		}

		booker, err = s.users.FindByID(ctx, bk.BookerID())
		return err
	})
	if err != nil {
		return nil, err
	}

	if changed {
		metrics.IncBookingDecision(string(bk.Status()))
		s.logger.Info("booking decided",
			zap.String("booking_id", bk.ID().String()),
			zap.String("status", string(bk.Status())),
		)

		eventType := events.BookingRejected
		if bk.Status() == bookingDomain.StatusApproved {
			eventType = events.BookingApproved
		}
		evt := events.BookingDecidedEvent{
			BookingID:  bk.ID(),
			ItemID:     bk.ItemID(),
			BookerID:   bk.BookerID(),
			OwnerID:    it.OwnerID(),
			Status:     string(bk.Status()),
			OccurredAt: s.now(),
		}
		publishEvent(ctx, s.producer, s.logger, events.TopicBookingEvents, eventType, bk.ID().String(), evt)
	}

	result := toBookingDTO(bk, it, booker)
	return &result, nil
}

// GetBooking returns a booking to its booker or to its item's owner. Anyone else gets NotFound.
func (s *BookingService) GetBooking(ctx context.Context, bookingID, userID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindVisibleTo(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	booker, err := s.users.FindByID(ctx, bk.BookerID())
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk, it, booker)
	return &result, nil
}

// ListBookings pages through the actor's bookings as booker or as item owner, filtered by state.
func (s *BookingService) ListBookings(
	ctx context.Context,
	actorID uuid.UUID,
	role bookingDomain.Role,
	rawState string,
	from, size int,
) (*domain.PaginatedResult[BookingDTO], error) {
	if _, err := s.users.FindByID(ctx, actorID); err != nil {
		return nil, err
	}
	state, err := bookingDomain.ParseState(rawState)
	if err != nil {
		return nil, err
	}

	q := bookingDomain.NewQuery(actorID, role, state, s.now(), from, size)
	bookings, total, err := s.bookings.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	dtos, err := s.enrich(ctx, bookings)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(dtos, total, from, size)
	return &result, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      counts,
	}, nil
}

// enrich attaches item and booker summaries with one lookup per repository.
func (s *BookingService) enrich(ctx context.Context, bookings []*bookingDomain.Booking) ([]BookingDTO, error) {
	if len(bookings) == 0 {
		return []BookingDTO{}, nil
	}

	itemIDs := make([]uuid.UUID, len(bookings))
	bookerIDs := make([]uuid.UUID, len(bookings))
	for i, bk := range bookings {
		itemIDs[i] = bk.ItemID()
		bookerIDs[i] = bk.BookerID()
	}

	items, err := s.items.FindByIDs(ctx, uniqueIDs(itemIDs))
	if err != nil {
		return nil, err
	}
	bookers, err := s.users.FindByIDs(ctx, uniqueIDs(bookerIDs))
	if err != nil {
		return nil, err
	}
	itemIndex := itemsByID(items)
	bookerIndex := usersByID(bookers)

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk, itemIndex[bk.ItemID()], bookerIndex[bk.BookerID()])
	}
	return dtos, nil
}
