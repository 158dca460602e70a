package assets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/voyager/pkg/adapters/memory"
	"github.com/aretw0/voyager/pkg/domain"
	"github.com/aretw0/voyager/pkg/graph"
	"github.com/aretw0/voyager/pkg/scene"
)

type staticDocument struct {
	path string
	doc  *domain.Document
	err  error
}

func (s staticDocument) AssetPath() string { return s.path }

func (s staticDocument) Deflate(scene.Filter) (*domain.Document, error) { return s.doc, s.err }

func newIO(t *testing.T) (*graph.System, *Reader, *Writer, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	reg := graph.NewRegistry()
	Register(reg, store)
	sys := graph.NewSystem(reg)

	n := sys.Graph().CreateNode("main")
	rc, err := n.CreateComponent(KindAssetReader)
	require.NoError(t, err)
	wc, err := n.CreateComponent(KindAssetWriter)
	require.NoError(t, err)
	return sys, rc.(*Reader), wc.(*Writer), store
}

func TestWriter_FollowsReaderRoot(t *testing.T) {
	_, r, w, _ := newIO(t)

	require.NoError(t, r.SetRootURL("scenes", "http://host/app/"))

	assert.Equal(t, "http://host/app/scenes/", w.RootURL.String())
	u, err := w.AssetURL("bust.svx.json")
	require.NoError(t, err)
	assert.Equal(t, "http://host/app/scenes/bust.svx.json", u)
	assert.Equal(t, "bust.svx.json", w.AssetFileName("sub/bust.svx.json"))
}

func TestWriter_PutAndReaderGet(t *testing.T) {
	ctx := context.Background()
	_, r, w, store := newIO(t)
	require.NoError(t, r.SetRootURL("scenes", ""))

	require.NoError(t, w.PutText(ctx, "hello", "notes/readme.txt"))
	data, err := store.Get(ctx, "notes/readme.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	text, err := r.GetText(ctx, "notes/readme.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	require.NoError(t, w.PutJSON(ctx, map[string]int{"a": 1}, "a.json"))
	var got map[string]int
	require.NoError(t, r.GetJSON(ctx, "a.json", &got))
	assert.Equal(t, 1, got["a"])

	_, err = r.GetText(ctx, "missing.txt")
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
	assert.False(t, r.Busy.Bool())
	assert.False(t, w.Busy.Bool())
}

func TestWriter_PutDocument(t *testing.T) {
	ctx := context.Background()
	_, r, w, _ := newIO(t)

	doc := domain.NewDocument()
	doc.Scenes = append(doc.Scenes, domain.Scene{Units: "cm"})

	require.NoError(t, w.PutDocument(ctx, staticDocument{path: "bust.svx.json", doc: doc}, nil, ""))
	got, err := r.GetDocument(ctx, "bust.svx.json")
	require.NoError(t, err)
	assert.Equal(t, domain.MimeType, got.Asset.Type)

	require.NoError(t, w.PutText(ctx, `{"scene":`, "broken.svx.json"))
	_, err = r.GetDocument(ctx, "broken.svx.json")
	assert.ErrorIs(t, err, domain.ErrSchemaInvalid)

	assert.Error(t, w.PutDocument(ctx, staticDocument{doc: doc}, nil, ""), "no asset path")
	err = w.PutDocument(ctx, staticDocument{path: "x.svx.json", err: domain.ErrEmptyDocument}, nil, "")
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
}

func TestWriter_BusyComposition(t *testing.T) {
	ctx := context.Background()
	sys, _, w, _ := newIO(t)
	sys.Tick(ctx)

	w.SetBusy(true)
	require.NoError(t, w.SetBusyIn.SetValue(false))
	sys.Tick(ctx)
	assert.True(t, w.Busy.Bool(), "internal flag keeps the writer busy")

	w.SetBusy(false)
	assert.False(t, w.Busy.Bool())

	require.NoError(t, w.SetBusyIn.SetValue(true))
	sys.Tick(ctx)
	assert.True(t, w.Busy.Bool())

	require.NoError(t, w.SetBusyIn.SetValue(false))
	sys.Tick(ctx)
	assert.False(t, w.Busy.Bool())
}
