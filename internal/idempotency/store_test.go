package idempotency

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/ayo6706/payment-instructions/internal/db"
	"github.com/ayo6706/payment-instructions/internal/repository"
	"github.com/ayo6706/payment-instructions/internal/testutil/dblock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "idempotency:abc-123", redisKey("abc-123"))
}

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("Skipping integration test: DATABASE_URL not set")
	}
	dblock.Acquire(t)
	ctx := context.Background()
	pool, err := db.Connect(ctx, os.Getenv("DATABASE_URL"))
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, db.Migrate(ctx, pool))
	return NewStore(nil, repository.NewStore(pool), ttl)
}

func TestStoreReplayFlow(t *testing.T) {
	store := newTestStore(t, time.Hour)
	ctx := context.Background()
	key := uuid.NewString()

	_, err := store.Lookup(ctx, key, "h1")
	require.True(t, errors.Is(err, ErrNotFound))

	ok, err := store.Reserve(ctx, key, "h1", "POST", "/payment-instructions")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.Reserve(ctx, key, "h1", "POST", "/payment-instructions")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Lookup(ctx, key, "h1")
	assert.True(t, errors.Is(err, ErrInProgress))
	_, err = store.Lookup(ctx, key, "h2")
	assert.True(t, errors.Is(err, ErrHashMismatch))

	_, err = store.Finalize(ctx, key, "h1", 200, []byte(`{"status_code":"AP00"}`), "application/json")
	require.NoError(t, err)

	rec, err := store.WaitForCompletion(ctx, key, "h1")
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Status)
	assert.Equal(t, "postgres", rec.ServedBy)
}

func TestStoreExpiredKeyCanBeReserved(t *testing.T) {
	store := newTestStore(t, time.Hour)
	ctx := context.Background()
	key := uuid.NewString()

	store.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	ok, err := store.Reserve(ctx, key, "old", "POST", "/payment-instructions")
	require.NoError(t, err)
	require.True(t, ok)

	store.now = time.Now
	ok, err = store.Reserve(ctx, key, "new", "POST", "/payment-instructions")
	require.NoError(t, err)
	assert.True(t, ok)

	deleted, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, deleted, int64(0))
}
