package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/Excommunicode/ShareHub/internal/domain/booking"
	commentDomain "github.com/Excommunicode/ShareHub/internal/domain/comment"
	itemDomain "github.com/Excommunicode/ShareHub/internal/domain/item"
	userDomain "github.com/Excommunicode/ShareHub/internal/domain/user"
	"github.com/Excommunicode/ShareHub/internal/events"
)

// CreateCommentRequest is the request DTO for commenting on an item.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// commentEligibleStatuses are the statuses a finished booking needs for its booker to comment.
var commentEligibleStatuses = []bookingDomain.BookingStatus{bookingDomain.StatusApproved}

// CommentService lets past renters comment on items.
type CommentService struct {
	comments commentDomain.CommentRepository
	bookings bookingDomain.BookingRepository
	items    itemDomain.ItemRepository
	users    userDomain.UserRepository
	tx       Transactor
	producer EventPublisher
	logger   *zap.Logger
	now      func() time.Time
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	comments commentDomain.CommentRepository,
	bookings bookingDomain.BookingRepository,
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	tx Transactor,
	producer EventPublisher,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		comments: comments,
		bookings: bookings,
		items:    items,
		users:    users,
		tx:       tx,
		producer: producer,
		logger:   logger,
		now:      utcNow,
	}
}

// AddComment stores a comment if authorID has an approved booking of the item that has ended.
func (s *CommentService) AddComment(ctx context.Context, authorID, itemID uuid.UUID, req CreateCommentRequest) (*CommentDTO, error) {
	var (
		author *userDomain.User
		c      *commentDomain.Comment
	)
	now := s.now()

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if author, err = s.users.FindByID(ctx, authorID); err != nil {
			return err
		}
		if _, err = s.items.FindByID(ctx, itemID); err != nil {
			return err
		}

		eligible, err := s.bookings.ExistsFinished(ctx, authorID, itemID, commentEligibleStatuses, now)
		if err != nil {
			return err
		}
		if !eligible {
			return bookingDomain.ErrBookingInProgressOrAbsent
		}

		if c, err = commentDomain.NewComment(itemID, authorID, req.Text); err != nil {
			return err
		}
		return s.comments.Save(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	evt := events.ItemCommentedEvent{
		CommentID:  c.ID(),
		ItemID:     itemID,
		AuthorID:   authorID,
		OccurredAt: now,
	}
	publishEvent(ctx, s.producer, s.logger, events.TopicItemEvents, events.ItemCommented, itemID.String(), evt)

	result := toCommentDTO(c, author.Name())
	return &result, nil
}
