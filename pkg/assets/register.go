package assets

import (
	"github.com/aretw0/voyager/pkg/graph"
	"github.com/aretw0/voyager/pkg/ports"
)

// Register adds the reader and writer kinds to reg, bound to store.
func Register(reg *graph.Registry, store ports.AssetStore) {
	reg.Register(KindAssetReader, NewReaderFactory(store))
	reg.Register(KindAssetWriter, NewWriterFactory(store))
}
