package user

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Excommunicode/ShareHub/internal/platform/domain"
)

// User is a registered member who can list and book items.
type User struct {
	id        uuid.UUID
	name      string
	email     string
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a user with a normalized email.
func NewUser(name, email string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("user name is required")
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &User{
		id:        uuid.New(),
		name:      name,
		email:     normalized,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, email string, version int64, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) Version() int64       { return u.version }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Update applies a partial update. Nil or blank fields keep the current value.
func (u *User) Update(name, email *string) (bool, error) {
	changed := false
	if name != nil {
		if v := strings.TrimSpace(*name); v != "" && v != u.name {
			u.name = v
			changed = true
		}
	}
	if email != nil && strings.TrimSpace(*email) != "" {
		normalized, err := normalizeEmail(*email)
		if err != nil {
			return false, err
		}
		if normalized != u.email {
			u.email = normalized
			changed = true
		}
	}
	if changed {
		u.version++
		u.updatedAt = time.Now().UTC()
	}
	return changed, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", domain.NewValidationError("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", domain.NewValidationError("email is invalid")
	}
	return email, nil
}
