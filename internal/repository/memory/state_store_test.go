package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndConsume(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := NewStateStore(ctx, 10*time.Minute)

	state, err := store.Create(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, state)

	ok, err := store.Consume(ctx, state)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConsumeTwice(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := NewStateStore(ctx, 10*time.Minute)

	state, err := store.Create(ctx)
	require.NoError(t, err)

	ok, err := store.Consume(ctx, state)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.Consume(ctx, state)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConsumeUnknownState(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := NewStateStore(ctx, 10*time.Minute)

	ok, err := store.Consume(ctx, "never-issued")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConsumeExpiredState(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := NewStateStore(ctx, 10*time.Minute)

	state, err := store.Create(ctx)
	require.NoError(t, err)

	store.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	ok, err := store.Consume(ctx, state)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStatesAreUnique(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := NewStateStore(ctx, 10*time.Minute)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		state, err := store.Create(ctx)
		require.NoError(t, err)
		require.False(t, seen[state], "duplicate state issued")
		seen[state] = true
	}
}

func TestConcurrentConsumeSingleWinner(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := NewStateStore(ctx, 10*time.Minute)

	state, err := store.Create(ctx)
	require.NoError(t, err)

	const goroutines = 16
	var wg sync.WaitGroup
	wins := make(chan bool, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.Consume(ctx, state)
			assert.NoError(t, err)
			wins <- ok
		}()
	}
	wg.Wait()
	close(wins)

	winners := 0
	for ok := range wins {
		if ok {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}
