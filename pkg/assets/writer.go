package assets

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/voyager/pkg/domain"
	"github.com/aretw0/voyager/pkg/graph"
	"github.com/aretw0/voyager/pkg/ports"
	"github.com/aretw0/voyager/pkg/scene"
)

// KindAssetWriter is the registry key of Writer.
const KindAssetWriter = "AssetWriter"

// DocumentSource is a document that can be serialized for storage.
type DocumentSource interface {
	AssetPath() string
	Deflate(filter scene.Filter) (*domain.Document, error)
}

// Writer stores assets below its root URL. Its busy output is the logical OR of the
// setBusy input and its own write activity.
type Writer struct {
	graph.ComponentBase

	RootURL   *graph.Port
	SetBusyIn *graph.Port
	Busy      *graph.Port

	store    ports.AssetStore
	internal bool
}

// NewWriterFactory returns the Factory for KindAssetWriter writing to store.
func NewWriterFactory(store ports.AssetStore) graph.Factory {
	return func(node *graph.Node, id string) (graph.Component, error) {
		w := &Writer{store: store}
		w.Init(node, id, KindAssetWriter)
		ins := w.AddInputs(
			graph.String("rootUrl", "Writer.RootURL", DefaultRootURL),
			graph.Boolean("setBusy", "Writer.SetBusy", false),
		)
		w.RootURL = ins.Get("rootUrl")
		w.SetBusyIn = ins.Get("setBusy")
		w.Busy = w.AddOutputs(graph.Boolean("busy", "Writer.IsBusy", false)).Get("busy")
		return w, nil
	}
}

// Create makes the root URL follow the reader on the same node, if there is one.
func (w *Writer) Create() error {
	reader, ok := graph.ComponentOf[*Reader](w.Node())
	if !ok {
		return nil
	}
	return w.RootURL.LinkFrom(reader.RootURL)
}

func (w *Writer) Update(context.Context) bool {
	if w.SetBusyIn.Changed() {
		_ = w.Busy.SetValue(w.SetBusyIn.Bool() || w.internal)
	}
	return true
}

// SetBusy sets the internal busy flag and recomputes the busy output immediately.
func (w *Writer) SetBusy(busy bool) {
	w.internal = busy
	_ = w.Busy.SetValue(w.SetBusyIn.Bool() || w.internal)
}

// SetRootURL normalizes raw against base and stores it. A linked root URL is
// overwritten again when the reader's root changes.
func (w *Writer) SetRootURL(raw, base string) error {
	root, err := NormalizeRootURL(raw, base)
	if err != nil {
		return err
	}
	return w.RootURL.SetValue(root)
}

// AssetFileName returns the file name of uri.
func (w *Writer) AssetFileName(uri string) string { return FileName(uri) }

// AssetURL resolves uri against the root URL.
func (w *Writer) AssetURL(uri string) (string, error) { return Resolve(uri, w.RootURL.String()) }

// PutJSON encodes v and stores it at path.
func (w *Writer) PutJSON(ctx context.Context, v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return w.put(ctx, data, path)
}

// PutText stores text at path.
func (w *Writer) PutText(ctx context.Context, text, path string) error {
	return w.put(ctx, []byte(text), path)
}

// PutDocument serializes doc with filter and stores it at path, or at the document's
// own asset path when path is empty.
func (w *Writer) PutDocument(ctx context.Context, doc DocumentSource, filter scene.Filter, path string) error {
	if path == "" {
		path = doc.AssetPath()
	}
	if path == "" {
		return fmt.Errorf("put document: no asset path")
	}
	data, err := doc.Deflate(filter)
	if err != nil {
		return err
	}
	return w.PutJSON(ctx, data, path)
}

func (w *Writer) put(ctx context.Context, data []byte, path string) error {
	location, err := Locate(path, w.RootURL.String())
	if err != nil {
		return err
	}
	w.SetBusy(true)
	defer w.SetBusy(false)

	if err := w.store.Put(ctx, location, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Logger().Debug("asset written", "location", location, "size", len(data))
	return nil
}
