package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/voyager/pkg/adapters/memory"
	"github.com/aretw0/voyager/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunAssetStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	payload := []byte("abc")
	require.NoError(t, store.Put(ctx, "x", payload))

	payload[0] = 'z'
	got, err := store.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}
