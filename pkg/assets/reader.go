package assets

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/voyager/pkg/domain"
	"github.com/aretw0/voyager/pkg/graph"
	"github.com/aretw0/voyager/pkg/ports"
)

// KindAssetReader is the registry key of Reader.
const KindAssetReader = "AssetReader"

// Reader loads assets below its root URL from a store.
type Reader struct {
	graph.ComponentBase

	RootURL *graph.Port
	Busy    *graph.Port

	store   ports.AssetStore
	pending int
}

// NewReaderFactory returns the Factory for KindAssetReader reading from store.
func NewReaderFactory(store ports.AssetStore) graph.Factory {
	return func(node *graph.Node, id string) (graph.Component, error) {
		r := &Reader{store: store}
		r.Init(node, id, KindAssetReader)
		r.RootURL = r.AddInputs(graph.String("rootUrl", "Reader.RootURL", DefaultRootURL)).Get("rootUrl")
		r.Busy = r.AddOutputs(graph.Boolean("busy", "Reader.IsBusy", false)).Get("busy")
		return r, nil
	}
}

// SetRootURL normalizes raw against base and stores it.
func (r *Reader) SetRootURL(raw, base string) error {
	root, err := NormalizeRootURL(raw, base)
	if err != nil {
		return err
	}
	r.Logger().Debug("root url", "root_url", root)
	return r.RootURL.SetValue(root)
}

// AssetName returns the file name of path.
func (r *Reader) AssetName(path string) string { return FileName(path) }

// AssetURL resolves path against the root URL.
func (r *Reader) AssetURL(path string) (string, error) { return Resolve(path, r.RootURL.String()) }

// Location returns the store location of path.
func (r *Reader) Location(path string) (string, error) { return Locate(path, r.RootURL.String()) }

// GetText reads the asset at path.
func (r *Reader) GetText(ctx context.Context, path string) (string, error) {
	data, err := r.get(ctx, path)
	return string(data), err
}

// GetJSON reads the asset at path and decodes it into v.
func (r *Reader) GetJSON(ctx context.Context, path string, v any) error {
	data, err := r.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// GetDocument reads and decodes the scene document at path. Undecodable content
// wraps domain.ErrSchemaInvalid.
func (r *Reader) GetDocument(ctx context.Context, path string) (*domain.Document, error) {
	data, err := r.get(ctx, path)
	if err != nil {
		return nil, err
	}
	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %v", path, domain.ErrSchemaInvalid, err)
	}
	return &doc, nil
}

func (r *Reader) get(ctx context.Context, path string) ([]byte, error) {
	location, err := r.Location(path)
	if err != nil {
		return nil, err
	}
	r.setPending(1)
	defer r.setPending(-1)

	data, err := r.store.Get(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func (r *Reader) setPending(delta int) {
	r.pending += delta
	_ = r.Busy.SetValue(r.pending > 0)
}
