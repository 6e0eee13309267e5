package request

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Excommunicode/ShareHub/internal/platform/domain"
)

// ItemRequest is a user's public ask for an item nobody has listed yet. Other users answer
// it by listing an item that references the request.
type ItemRequest struct {
	id          uuid.UUID
	requestorID uuid.UUID
	description string
	createdAt   time.Time
}

// NewItemRequest creates a request owned by requestorID.
func NewItemRequest(requestorID uuid.UUID, description string) (*ItemRequest, error) {
	if requestorID == uuid.Nil {
		return nil, domain.NewValidationError("requestor ID is required")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, domain.NewValidationError("request description is required")
	}
	return &ItemRequest{
		id:          uuid.New(),
		requestorID: requestorID,
		description: description,
		createdAt:   time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds an ItemRequest from persistence.
func Reconstruct(id, requestorID uuid.UUID, description string, createdAt time.Time) *ItemRequest {
	return &ItemRequest{
		id:          id,
		requestorID: requestorID,
		description: description,
		createdAt:   createdAt,
	}
}

func (r *ItemRequest) ID() uuid.UUID          { return r.id }
func (r *ItemRequest) RequestorID() uuid.UUID { return r.requestorID }
func (r *ItemRequest) Description() string    { return r.description }
func (r *ItemRequest) CreatedAt() time.Time   { return r.createdAt }
