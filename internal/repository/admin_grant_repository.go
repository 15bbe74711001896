package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/quiz-app/internal/config"
)

// AdminGrantRepository keeps the admin logins of browser sessions in Redis.
// The signed cookie only claims admin; a grant must also exist here, so that
// logging out revokes every copy of the cookie.
type AdminGrantRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewAdminGrantRepository creates a new AdminGrantRepository.
func NewAdminGrantRepository(rdb *redis.Client, ttl time.Duration) *AdminGrantRepository {
	return &AdminGrantRepository{rdb: rdb, ttl: ttl}
}

func (r *AdminGrantRepository) Grant(ctx context.Context, sessionID string) error {
	if err := r.rdb.Set(ctx, config.CacheKey.AdminGrantKey(sessionID), 1, r.ttl).Err(); err != nil {
		return fmt.Errorf("grant admin: %w", err)
	}
	return nil
}

func (r *AdminGrantRepository) Revoke(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, config.CacheKey.AdminGrantKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("revoke admin: %w", err)
	}
	return nil
}

func (r *AdminGrantRepository) IsGranted(ctx context.Context, sessionID string) (bool, error) {
	n, err := r.rdb.Exists(ctx, config.CacheKey.AdminGrantKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("check admin grant: %w", err)
	}
	return n > 0, nil
}
