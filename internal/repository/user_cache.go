package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	userDomain "github.com/Excommunicode/ShareHub/internal/domain/user"
	"github.com/Excommunicode/ShareHub/internal/metrics"
)

// NewRedisClient creates a redis client from connection settings.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

type cachedUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CachedUserRepository is a read-through redis cache in front of a UserRepository. Only
// single-user lookups are cached. Entries are dropped after the writing transaction commits.
// Redis failures are logged and fall through to the inner repository.
type CachedUserRepository struct {
	inner  userDomain.UserRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedUserRepository wraps inner with a cache whose entries live for ttl.
func NewCachedUserRepository(inner userDomain.UserRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedUserRepository {
	return &CachedUserRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

func userKey(id uuid.UUID) string {
	return fmt.Sprintf("sharehub:user:%s", id)
}

func (r *CachedUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	if u, ok := r.get(ctx, id); ok {
		metrics.IncUserCache(true)
		return u, nil
	}
	metrics.IncUserCache(false)

	u, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// A row read inside a transaction may not be committed yet.
	if !inTransaction(ctx) {
		r.set(ctx, u)
	}
	return u, nil
}

func (r *CachedUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*userDomain.User, error) {
	return r.inner.FindByIDs(ctx, ids)
}

func (r *CachedUserRepository) List(ctx context.Context, offset, limit int) ([]*userDomain.User, int64, error) {
	return r.inner.List(ctx, offset, limit)
}

func (r *CachedUserRepository) Save(ctx context.Context, u *userDomain.User) error {
	return r.inner.Save(ctx, u)
}

func (r *CachedUserRepository) Update(ctx context.Context, u *userDomain.User) error {
	if err := r.inner.Update(ctx, u); err != nil {
		return err
	}
	id := u.ID()
	afterCommit(ctx, func() { r.invalidate(ctx, id) })
	return nil
}

func (r *CachedUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	afterCommit(ctx, func() { r.invalidate(ctx, id) })
	return nil
}

// Ping checks the redis connection.
func (r *CachedUserRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

func (r *CachedUserRepository) get(ctx context.Context, id uuid.UUID) (*userDomain.User, bool) {
	val, err := r.client.Get(ctx, userKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		r.logger.Warn("user cache read failed", zap.String("user_id", id.String()), zap.Error(err))
		return nil, false
	}

	var cu cachedUser
	if err := json.Unmarshal(val, &cu); err != nil {
		r.logger.Warn("user cache entry corrupt", zap.String("user_id", id.String()), zap.Error(err))
		return nil, false
	}
	return userDomain.Reconstruct(cu.ID, cu.Name, cu.Email, cu.Version, cu.CreatedAt, cu.UpdatedAt), true
}

func (r *CachedUserRepository) set(ctx context.Context, u *userDomain.User) {
	data, err := json.Marshal(cachedUser{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		Version:   u.Version(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	})
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, userKey(u.ID()), data, r.ttl).Err(); err != nil {
		r.logger.Warn("user cache write failed", zap.String("user_id", u.ID().String()), zap.Error(err))
	}
}

func (r *CachedUserRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.client.Del(ctx, userKey(id)).Err(); err != nil {
		r.logger.Warn("user cache invalidation failed", zap.String("user_id", id.String()), zap.Error(err))
	}
}
