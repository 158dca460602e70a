package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/voyager/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunAssetStoreContract runs a suite of tests to verify that an AssetStore
// implementation adheres to the interface contract.
func RunAssetStoreContract(t *testing.T, store AssetStore) {
	ctx := context.Background()
	root := "contract-" + time.Now().Format("20060102150405")

	t.Run("Put and Get", func(t *testing.T) {
		location := root + "/scene.svx.json"
		payload := []byte(`{"asset":{"type":"x","version":"1.0"}}`)

		require.NoError(t, store.Put(ctx, location, payload), "Put should not return error")

		got, err := store.Get(ctx, location)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, payload, got)
	})

	t.Run("Put Overwrites", func(t *testing.T) {
		location := root + "/notes.txt"
		require.NoError(t, store.Put(ctx, location, []byte("first")))
		require.NoError(t, store.Put(ctx, location, []byte("second")))

		got, err := store.Get(ctx, location)
		require.NoError(t, err)
		assert.Equal(t, "second", string(got))
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, root+"/missing.json")
		assert.ErrorIs(t, err, domain.ErrAssetNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		location := root + "/delete-me.json"
		require.NoError(t, store.Put(ctx, location, []byte("{}")))

		require.NoError(t, store.Delete(ctx, location), "Delete should not return error")

		_, err := store.Get(ctx, location)
		assert.ErrorIs(t, err, domain.ErrAssetNotFound, "Get after Delete should return ErrAssetNotFound")

		assert.NoError(t, store.Delete(ctx, location), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		prefix := root + "/list/"
		a, b := prefix+"a.json", prefix+"nested/b.json"
		require.NoError(t, store.Put(ctx, b, []byte("{}")))
		require.NoError(t, store.Put(ctx, a, []byte("{}")))
		require.NoError(t, store.Put(ctx, root+"/other.json", []byte("{}")))

		defer func() {
			_ = store.Delete(ctx, a)
			_ = store.Delete(ctx, b)
			_ = store.Delete(ctx, root+"/other.json")
		}()

		locations, err := store.List(ctx, prefix)
		require.NoError(t, err)
		assert.Equal(t, []string{a, b}, locations)
	})
}
