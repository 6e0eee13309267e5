package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindByIDs returns the existing users among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*User, error)
	List(ctx context.Context, offset, limit int) ([]*User, int64, error)
	// Save fails with a conflict error when the email is taken.
	Save(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
