package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stateprop/pkg/adapters/redis"
	"github.com/aretw0/stateprop/pkg/domain"
	"github.com/aretw0/stateprop/pkg/ports"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ports.RunCounterexampleStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	ce := &domain.Counterexample{ID: "counter-ttl", Model: "counter"}

	require.NoError(t, store.Save(ctx, ce))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, ce.ID)

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, ce.ID)
	assert.ErrorIs(t, err, domain.ErrCounterexampleNotFound)

	// The index is pruned against wall-clock time, which miniredis cannot fast-forward.
	time.Sleep(1200 * time.Millisecond)

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Counterexample{ID: "queue-1"}))

	assert.True(t, mr.Exists("custom:app:queue-1"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"queue-1"}, ids)
}
