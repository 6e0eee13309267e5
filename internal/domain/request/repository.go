package request

import (
	"context"

	"github.com/google/uuid"
)

// RequestRepository defines persistence operations for item requests.
type RequestRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ItemRequest, error)
	// FindByRequestorID returns all of a user's requests, newest first.
	FindByRequestorID(ctx context.Context, requestorID uuid.UUID) ([]*ItemRequest, error)
	// FindOthers pages through requests not made by userID, newest first.
	FindOthers(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*ItemRequest, int64, error)
	Save(ctx context.Context, req *ItemRequest) error
}
