package ports

import "context"

// AssetStore persists asset payloads keyed by location. A location is a slash separated
// path relative to the store root, e.g. "scenes/bust.svx.json".
type AssetStore interface {
	// Put stores data at location, replacing any previous payload.
	Put(ctx context.Context, location string, data []byte) error

	// Get returns the payload at location.
	// Returns domain.ErrAssetNotFound if nothing is stored there.
	Get(ctx context.Context, location string) ([]byte, error)

	// Delete removes the payload at location. Deleting a missing location is not an error.
	Delete(ctx context.Context, location string) error

	// List returns the stored locations starting with prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
