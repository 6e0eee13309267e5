package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	itemDomain "github.com/Excommunicode/ShareHub/internal/domain/item"
	requestDomain "github.com/Excommunicode/ShareHub/internal/domain/request"
	userDomain "github.com/Excommunicode/ShareHub/internal/domain/user"
	"github.com/Excommunicode/ShareHub/internal/events"
	"github.com/Excommunicode/ShareHub/internal/platform/domain"
)

// CreateRequestRequest is the request DTO for asking for an item.
type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// RequestService implements item request use cases.
type RequestService struct {
	requests requestDomain.RequestRepository
	items    itemDomain.ItemRepository
	users    userDomain.UserRepository
	tx       Transactor
	producer EventPublisher
	logger   *zap.Logger
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requests requestDomain.RequestRepository,
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	tx Transactor,
	producer EventPublisher,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		items:    items,
		users:    users,
		tx:       tx,
		producer: producer,
		logger:   logger,
	}
}

// CreateRequest stores a new request made by requestorID.
func (s *RequestService) CreateRequest(ctx context.Context, requestorID uuid.UUID, req CreateRequestRequest) (*RequestDTO, error) {
	var r *requestDomain.ItemRequest

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.users.FindByID(ctx, requestorID); err != nil {
			return err
		}
		var err error
		if r, err = requestDomain.NewItemRequest(requestorID, req.Description); err != nil {
			return err
		}
		return s.requests.Save(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	evt := events.RequestCreatedEvent{
		RequestID:   r.ID(),
		RequestorID: requestorID,
		Description: r.Description(),
		OccurredAt:  r.CreatedAt(),
	}
	publishEvent(ctx, s.producer, s.logger, events.TopicRequestEvents, events.RequestCreated, r.ID().String(), evt)

	result := toRequestDTO(r, nil)
	return &result, nil
}

// ListOwnRequests returns the caller's requests, newest first, with answering items.
func (s *RequestService) ListOwnRequests(ctx context.Context, userID uuid.UUID) ([]RequestDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.requests.FindByRequestorID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withAnswers(ctx, requests)
}

// ListOtherRequests pages through requests made by other users, newest first.
func (s *RequestService) ListOtherRequests(ctx context.Context, userID uuid.UUID, from, size int) (*domain.PaginatedResult[RequestDTO], error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, total, err := s.requests.FindOthers(ctx, userID, from, size)
	if err != nil {
		return nil, err
	}
	dtos, err := s.withAnswers(ctx, requests)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(dtos, total, from, size)
	return &result, nil
}

// GetRequest returns any request to any existing user.
func (s *RequestService) GetRequest(ctx context.Context, userID, requestID uuid.UUID) (*RequestDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	dtos, err := s.withAnswers(ctx, []*requestDomain.ItemRequest{r})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

func (s *RequestService) withAnswers(ctx context.Context, requests []*requestDomain.ItemRequest) ([]RequestDTO, error) {
	dtos := make([]RequestDTO, len(requests))
	if len(requests) == 0 {
		return dtos, nil
	}

	ids := make([]uuid.UUID, len(requests))
	for i, r := range requests {
		ids[i] = r.ID()
	}
	items, err := s.items.FindByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	answers := make(map[uuid.UUID][]*itemDomain.Item, len(requests))
	for _, it := range items {
		if rid := it.RequestID(); rid != nil {
			answers[*rid] = append(answers[*rid], it)
		}
	}
	for i, r := range requests {
		dtos[i] = toRequestDTO(r, answers[r.ID()])
	}
	return dtos, nil
}
