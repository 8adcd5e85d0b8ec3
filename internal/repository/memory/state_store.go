package memory

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/yourusername/auth-api/internal/domain/repository"
)

const stateTokenBytes = 32

// StateStore keeps OAuth state tokens in process memory. Suitable for a
// single-instance deployment; use the Redis store when running more than
// one replica behind a load balancer.
type StateStore struct {
	mu     sync.Mutex
	states map[string]time.Time
	ttl    time.Duration
	now    func() time.Time
}

// NewStateStore creates an in-memory state store and starts a background
// routine that evicts expired states until ctx is cancelled.
func NewStateStore(ctx context.Context, ttl time.Duration) *StateStore {
	s := &StateStore{
		states: make(map[string]time.Time),
		ttl:    ttl,
		now:    time.Now,
	}
	go s.runCleanupRoutine(ctx)
	return s
}

// Create generates a new random state token.
func (s *StateStore) Create(_ context.Context) (string, error) {
	buf := make([]byte, stateTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	state := base64.RawURLEncoding.EncodeToString(buf)

	s.mu.Lock()
	s.states[state] = s.now().Add(s.ttl)
	s.mu.Unlock()
	return state, nil
}

// Consume removes the state if present and not expired. Each state can be
// redeemed at most once.
func (s *StateStore) Consume(_ context.Context, state string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.states[state]
	if !ok {
		return false, nil
	}
	delete(s.states, state)
	if s.now().After(expiresAt) {
		return false, nil
	}
	return true, nil
}

func (s *StateStore) runCleanupRoutine(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			now := s.now()
			removed := 0
			for state, expiresAt := range s.states {
				if now.After(expiresAt) {
					delete(s.states, state)
					removed++
				}
			}
			s.mu.Unlock()
			if removed > 0 {
				log.Printf("[StateStore] Evicted %d expired OAuth states", removed)
			}
		}
	}
}

var _ repository.OAuthStateStore = (*StateStore)(nil)
