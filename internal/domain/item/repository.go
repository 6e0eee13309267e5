package item

import (
	"context"

	"github.com/google/uuid"
)

// ItemRepository defines persistence operations for items.
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	// FindByIDs returns the existing items among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Item, error)
	// FindByOwnerID pages through an owner's items in creation order.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*Item, int64, error)
	// Search matches text against name or description, case-insensitively, among available items.
	Search(ctx context.Context, text string, offset, limit int) ([]*Item, int64, error)
	FindByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) ([]*Item, error)
	Save(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
}
