package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/authsvc/domain"
)

// RefreshTokenRepositoryImpl implements domain.RefreshTokenRepository using
// Redis. Tokens expire via TTL; the stored expiry is still checked on read
// so clock skew between records and key TTLs cannot extend a token's life.
type RefreshTokenRepositoryImpl struct {
	client *redis.Client
	prefix string
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(client *redis.Client) domain.RefreshTokenRepository {
	return &RefreshTokenRepositoryImpl{
		client: client,
		prefix: "refresh:",
	}
}

// Create implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) Create(ctx context.Context, token *domain.RefreshToken) error {
	key := r.prefix + token.Token
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal refresh token: %w", err)
	}

	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return domain.ErrRefreshTokenExpired
	}

	return r.client.Set(ctx, key, data, ttl).Err()
}

// Find implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) Find(ctx context.Context, token string) (*domain.RefreshToken, error) {
	key := r.prefix + token
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrRefreshTokenInvalid
		}
		return nil, err
	}

	var record domain.RefreshToken
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal refresh token: %w", err)
	}

	if record.ExpiresAt.Before(time.Now()) {
		r.client.Del(ctx, key)
		return nil, domain.ErrRefreshTokenExpired
	}

	return &record, nil
}

// Delete implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.prefix+token).Err()
}
