package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	userDomain "github.com/Excommunicode/ShareHub/internal/domain/user"
	"github.com/Excommunicode/ShareHub/internal/platform/domain"
)

// CreateUserRequest is the request DTO for registering a user.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// UpdateUserRequest is the request DTO for a partial user update.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// UserService implements user management.
type UserService struct {
	users  userDomain.UserRepository
	tx     Transactor
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users userDomain.UserRepository, tx Transactor, logger *zap.Logger) *UserService {
	return &UserService{users: users, tx: tx, logger: logger}
}

// CreateUser registers a user. A taken email is a conflict.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserDTO, error) {
	u, err := userDomain.NewUser(req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	if err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.users.Save(ctx, u)
	}); err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.String("user_id", u.ID().String()))
	result := toUserDTO(u)
	return &result, nil
}

// UpdateUser applies a partial update to name and email.
func (s *UserService) UpdateUser(ctx context.Context, userID uuid.UUID, req UpdateUserRequest) (*UserDTO, error) {
	var u *userDomain.User

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if u, err = s.users.FindByID(ctx, userID); err != nil {
			return err
		}
		changed, err := u.Update(req.Name, req.Email)
		if err != nil || !changed {
			return err
		}
		return s.users.Update(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	result := toUserDTO(u)
	return &result, nil
}

// GetUser returns one user.
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(u)
	return &result, nil
}

// ListUsers pages through users in registration order.
func (s *UserService) ListUsers(ctx context.Context, from, size int) (*domain.PaginatedResult[UserDTO], error) {
	users, total, err := s.users.List(ctx, from, size)
	if err != nil {
		return nil, err
	}
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	result := domain.NewPaginatedResult(dtos, total, from, size)
	return &result, nil
}

// DeleteUser removes a user.
func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.String("user_id", userID.String()))
	return nil
}
