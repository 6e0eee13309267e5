package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/Excommunicode/ShareHub/internal/domain/booking"
	commentDomain "github.com/Excommunicode/ShareHub/internal/domain/comment"
	itemDomain "github.com/Excommunicode/ShareHub/internal/domain/item"
	requestDomain "github.com/Excommunicode/ShareHub/internal/domain/request"
	userDomain "github.com/Excommunicode/ShareHub/internal/domain/user"
	"github.com/Excommunicode/ShareHub/internal/events"
	"github.com/Excommunicode/ShareHub/internal/platform/domain"
)

// CreateItemRequest is the request DTO for listing an item.
type CreateItemRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Available   *bool      `json:"available" binding:"required"`
	RequestID   *uuid.UUID `json:"requestId"`
}

// UpdateItemRequest is the request DTO for a partial item update.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// ItemService implements item listing, editing and the owner and search read paths.
type ItemService struct {
	items    itemDomain.ItemRepository
	users    userDomain.UserRepository
	bookings bookingDomain.BookingRepository
	comments commentDomain.CommentRepository
	requests requestDomain.RequestRepository
	tx       Transactor
	producer EventPublisher
	logger   *zap.Logger
	now      func() time.Time
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	bookings bookingDomain.BookingRepository,
	comments commentDomain.CommentRepository,
	requests requestDomain.RequestRepository,
	tx Transactor,
	producer EventPublisher,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		bookings: bookings,
		comments: comments,
		requests: requests,
		tx:       tx,
		producer: producer,
		logger:   logger,
		now:      utcNow,
	}
}

// CreateItem lists a new item for ownerID, optionally answering a request.
func (s *ItemService) CreateItem(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	var it *itemDomain.Item

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.users.FindByID(ctx, ownerID); err != nil {
			return err
		}
		if req.RequestID != nil {
			if _, err := s.requests.FindByID(ctx, *req.RequestID); err != nil {
				return err
			}
		}

		var err error
		if it, err = itemDomain.NewItem(ownerID, req.Name, req.Description, *req.Available, req.RequestID); err != nil {
			return err
		}
		return s.items.Save(ctx, it)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("item created",
		zap.String("item_id", it.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)
	s.publishItemEvent(ctx, events.ItemCreated, it)

	result := toItemDTO(it)
	return &result, nil
}

// UpdateItem applies a partial update. Only the owner may change an item.
func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	var (
		it      *itemDomain.Item
		changed bool
	)

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if it, err = s.items.FindByID(ctx, itemID); err != nil {
			return err
		}
		if !it.IsOwnedBy(ownerID) {
			return bookingDomain.ErrNotAuthorized
		}
		if changed = it.Update(req.Name, req.Description, req.Available); !changed {
			return nil
		}
		return s.items.Update(ctx, it)
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.publishItemEvent(ctx, events.ItemUpdated, it)
	}
	result := toItemDTO(it)
	return &result, nil
}

// GetItem returns an item with its comments. The owner also sees its last and next bookings.
func (s *ItemService) GetItem(ctx context.Context, itemID, userID uuid.UUID) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	dtos, err := s.assemble(ctx, []*itemDomain.Item{it}, it.IsOwnedBy(userID))
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

// ListOwnerItems pages through the owner's items with bookings and comments attached.
func (s *ItemService) ListOwnerItems(ctx context.Context, ownerID uuid.UUID, from, size int) (*domain.PaginatedResult[ItemDTO], error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}
	items, total, err := s.items.FindByOwnerID(ctx, ownerID, from, size)
	if err != nil {
		return nil, err
	}

	dtos, err := s.assemble(ctx, items, true)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(dtos, total, from, size)
	return &result, nil
}

// SearchItems matches available items by name or description. Blank text yields an empty page.
func (s *ItemService) SearchItems(ctx context.Context, text string, from, size int) (*domain.PaginatedResult[ItemDTO], error) {
	items, total, err := s.items.Search(ctx, text, from, size)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it)
	}
	result := domain.NewPaginatedResult(dtos, total, from, size)
	return &result, nil
}

// assemble builds item views with one batched load each for bookings, comments and authors.
func (s *ItemService) assemble(ctx context.Context, items []*itemDomain.Item, withBookings bool) ([]ItemDTO, error) {
	dtos := make([]ItemDTO, len(items))
	if len(items) == 0 {
		return dtos, nil
	}

	ids := make([]uuid.UUID, len(items))
	for i, it := range items {
		ids[i] = it.ID()
		dtos[i] = toItemDTO(it)
	}

	var neighbours map[uuid.UUID]bookingDomain.Neighbours
	if withBookings {
		bookings, err := s.bookings.FindByItemIDs(ctx, ids, bookingDomain.StatusRejected)
		if err != nil {
			return nil, err
		}
		neighbours = bookingDomain.NeighboursByItem(bookings, s.now())
	}

	comments, err := s.comments.FindByItemIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	authorIDs := make([]uuid.UUID, len(comments))
	for i, c := range comments {
		authorIDs[i] = c.AuthorID()
	}
	authors, err := s.users.FindByIDs(ctx, uniqueIDs(authorIDs))
	if err != nil {
		return nil, err
	}
	authorIndex := usersByID(authors)

	byItem := make(map[uuid.UUID][]CommentDTO, len(items))
	for _, c := range comments {
		var name string
		if a, ok := authorIndex[c.AuthorID()]; ok {
			name = a.Name()
		}
		byItem[c.ItemID()] = append(byItem[c.ItemID()], toCommentDTO(c, name))
	}

	for i := range dtos {
		if cs, ok := byItem[dtos[i].ID]; ok {
			dtos[i].Comments = cs
		}
		if n, ok := neighbours[dtos[i].ID]; ok {
			dtos[i].LastBooking = toBookingShortDTO(n.Last)
			dtos[i].NextBooking = toBookingShortDTO(n.Next)
		}
	}
	return dtos, nil
}

func (s *ItemService) publishItemEvent(ctx context.Context, eventType string, it *itemDomain.Item) {
	evt := events.ItemEvent{
		ItemID:     it.ID(),
		OwnerID:    it.OwnerID(),
		Name:       it.Name(),
		Available:  it.IsAvailable(),
		RequestID:  it.RequestID(),
		OccurredAt: s.now(),
	}
	publishEvent(ctx, s.producer, s.logger, events.TopicItemEvents, eventType, it.ID().String(), evt)
}
