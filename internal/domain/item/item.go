package item

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Excommunicode/ShareHub/internal/platform/domain"
)

// Item is the aggregate root for a listed item.
type Item struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	name        string
	description string
	available   bool
	requestID   *uuid.UUID
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

// NewItem creates a listed item with validated fields.
func NewItem(ownerID uuid.UUID, name, description string, available bool, requestID *uuid.UUID) (*Item, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("item name is required")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, domain.NewValidationError("item description is required")
	}

	now := time.Now().UTC()
	return &Item{
		id:          uuid.New(),
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		requestID:   requestID,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds an Item from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	name, description string,
	available bool,
	requestID *uuid.UUID,
	version int64,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		requestID:   requestID,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (i *Item) ID() uuid.UUID          { return i.id }
func (i *Item) OwnerID() uuid.UUID     { return i.ownerID }
func (i *Item) Name() string           { return i.name }
func (i *Item) Description() string    { return i.description }
func (i *Item) IsAvailable() bool      { return i.available }
func (i *Item) RequestID() *uuid.UUID  { return i.requestID }
func (i *Item) Version() int64         { return i.version }
func (i *Item) CreatedAt() time.Time   { return i.createdAt }
func (i *Item) UpdatedAt() time.Time   { return i.updatedAt }

// --- Behavior ---

// IsOwnedBy checks if the item belongs to the given user.
func (i *Item) IsOwnedBy(userID uuid.UUID) bool {
	return i.ownerID == userID
}

// Update applies a partial update. Nil fields and blank strings keep the current value.
// It reports whether anything changed.
func (i *Item) Update(name, description *string, available *bool) bool {
	changed := false
	if name != nil {
		if v := strings.TrimSpace(*name); v != "" && v != i.name {
			i.name = v
			changed = true
		}
	}
	if description != nil {
		if v := strings.TrimSpace(*description); v != "" && v != i.description {
			i.description = v
			changed = true
		}
	}
	if available != nil && *available != i.available {
		i.available = *available
		changed = true
	}
	if changed {
		i.version++
		i.updatedAt = time.Now().UTC()
	}
	return changed
}
