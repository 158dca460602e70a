package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/voyager/pkg/adapters/redis"
	"github.com/aretw0/voyager/pkg/domain"
	"github.com/aretw0/voyager/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return mr, backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	ports.RunAssetStoreContract(t, store)
}

func TestRedisStore_TTL(t *testing.T) {
	mr, client := newClient(t)
	ctx := context.Background()
	store := redis.NewFromClient(client, redis.WithTTL(time.Minute), redis.WithPrefix("test:"))

	require.NoError(t, store.Put(ctx, "a.json", []byte("{}")))
	assert.True(t, mr.Exists("test:a.json"))
	assert.Equal(t, time.Minute, mr.TTL("test:a.json"))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "a.json")
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestRedisLocker(t *testing.T) {
	_, client := newClient(t)
	ctx := context.Background()
	locker := redis.NewLocker(client, "")

	unlock, err := locker.Lock(ctx, "scene.svx.json", time.Minute)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 150*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(waitCtx, "scene.svx.json", time.Minute)
	assert.ErrorIs(t, err, redis.ErrLockAcquire)

	require.NoError(t, unlock(ctx))
	unlock2, err := locker.Lock(ctx, "scene.svx.json", time.Minute)
	require.NoError(t, err)
	assert.NoError(t, unlock2(ctx))
}
