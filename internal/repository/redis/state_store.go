package redis

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yourusername/auth-api/internal/domain/repository"
)

const stateKeyPrefix = "oauth:state:"

// StateStore keeps OAuth state tokens in Redis so any replica can redeem a
// state issued by another one.
type StateStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewStateStore creates a Redis-backed state store.
func NewStateStore(client redis.UniversalClient, ttl time.Duration) *StateStore {
	return &StateStore{client: client, ttl: ttl}
}

// Create generates a new random state token with the configured TTL.
func (s *StateStore) Create(ctx context.Context) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	state := base64.RawURLEncoding.EncodeToString(buf)

	if err := s.client.Set(ctx, stateKeyPrefix+state, "1", s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store state in redis: %w", err)
	}
	return state, nil
}

// Consume deletes the state key. DEL reports how many keys it removed, which
// makes redemption atomic: only one caller sees a non-zero count.
func (s *StateStore) Consume(ctx context.Context, state string) (bool, error) {
	removed, err := s.client.Del(ctx, stateKeyPrefix+state).Result()
	if err != nil {
		return false, fmt.Errorf("failed to consume state from redis: %w", err)
	}
	return removed > 0, nil
}

var _ repository.OAuthStateStore = (*StateStore)(nil)
