package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/voyager/pkg/assets"
	"github.com/aretw0/voyager/pkg/domain"
	"github.com/aretw0/voyager/pkg/graph"
	"github.com/aretw0/voyager/pkg/ports"
	"github.com/aretw0/voyager/pkg/scene"
)

// KindDocument is the registry name of the Document component.
const KindDocument = "Document"

// dumpPrecision is the number of decimals kept by the JSON dump.
const dumpPrecision = 5

// Deps are the collaborators a Document delegates to. All of them are optional.
type Deps struct {
	Validator  ports.DocumentValidator
	Downloader ports.Downloader
}

// Document owns the node tree of a scene document.
type Document struct {
	graph.GraphComponent

	DumpJSON *graph.Port
	DumpTree *graph.Port
	Download *graph.Port

	Path      *graph.Port
	TitleText *graph.Port

	deps    Deps
	root    *graph.Node
	name    string
	offMeta func()
	watches map[*scene.Meta]func()
}

// NewFactory returns a factory building documents wired to deps.
func NewFactory(deps Deps) graph.Factory {
	return func(node *graph.Node, id string) (graph.Component, error) {
		d := &Document{deps: deps, watches: make(map[*scene.Meta]func())}
		d.InitGraph(node, id, KindDocument)
		ins := d.AddInputs(
			graph.Event("dumpJson", "Document.DumpJSON"),
			graph.Event("dumpTree", "Document.DumpTree"),
			graph.Event("download", "Document.Download"),
		)
		d.DumpJSON, d.DumpTree, d.Download = ins.Get("dumpJson"), ins.Get("dumpTree"), ins.Get("download")
		outs := d.AddOutputs(
			graph.AssetPath("assetPath", "Document.AssetPath"),
			graph.String("title", "Document.Title", ""),
		)
		d.Path, d.TitleText = outs.Get("assetPath"), outs.Get("title")

		root, err := d.InnerGraph().CreateCustomNode(scene.SceneKind, "")
		if err != nil {
			return nil, fmt.Errorf("create scene root: %w", err)
		}
		d.root = root
		return d, nil
	}
}

// Register adds the Document component to reg. The scene kinds must be registered too.
func Register(reg *graph.Registry, deps Deps) {
	reg.Register(KindDocument, NewFactory(deps))
}

func (d *Document) Create() error {
	d.offMeta = d.InnerGraph().On(scene.KindMeta, func(e graph.ComponentEvent) {
		m, ok := e.Component.(*scene.Meta)
		switch {
		case !ok:
		case e.Add:
			d.watchMeta(m)
		case e.Remove:
			d.unwatchMeta(m)
		}
	})
	return nil
}

func (d *Document) Dispose() {
	if d.offMeta != nil {
		d.offMeta()
	}
	for m := range d.watches {
		d.unwatchMeta(m)
	}
}

func (d *Document) Update(ctx context.Context) bool {
	handled := false
	if d.DumpJSON.Changed() {
		d.dumpJSON()
		handled = true
	}
	if d.DumpTree.Changed() {
		d.Logger().Info("document tree", "document", d.Name(), "tree", scene.Tree(d.root))
		handled = true
	}
	if d.Download.Changed() {
		if err := d.download(ctx); err != nil {
			d.Logger().Error("document download failed", "document", d.Name(), "err", err)
		}
		handled = true
	}
	return handled
}

// Root returns the scene root node of the inner graph.
func (d *Document) Root() *graph.Node { return d.root }

// Setup returns the setup component of the root.
func (d *Document) Setup() *scene.Setup {
	s, _ := graph.ComponentOf[*scene.Setup](d.root)
	return s
}

// Meta returns the meta component of the root.
func (d *Document) Meta() *scene.Meta {
	m, _ := graph.ComponentOf[*scene.Meta](d.root)
	return m
}

func (d *Document) AssetPath() string { return d.Path.String() }

// AssetBaseName returns the asset path without the document suffix.
func (d *Document) AssetBaseName() string {
	return strings.TrimSuffix(d.AssetPath(), domain.DocumentSuffix)
}

func (d *Document) Title() string { return d.TitleText.String() }

// Name returns the display name: the file name of the asset path.
func (d *Document) Name() string { return d.name }

// Empty reports whether the root has no child nodes.
func (d *Document) Empty() bool {
	return len(d.root.Transform().Children()) == 0
}

// ClearNodeTree disposes every node below the root.
func (d *Document) ClearNodeTree() {
	for _, child := range d.root.Transform().Children() {
		child.Node().Dispose()
	}
}

type openConfig struct {
	merge  bool
	parent *graph.Node
}

// OpenOption configures Open.
type OpenOption func(*openConfig)

// Merge keeps the current tree and adds the document's nodes to the root.
func Merge() OpenOption {
	return func(c *openConfig) { c.merge = true }
}

// MergeInto keeps the current tree and adds the document's nodes below parent.
// parent must belong to this document.
func MergeInto(parent *graph.Node) OpenOption {
	return func(c *openConfig) {
		c.merge = true
		c.parent = parent
	}
}

// Open inflates data into the document. The document is validated before the
// current tree is touched, so a rejected document leaves the tree intact. Without a
// merge option the previous nodes, scene settings, meta, setup and title are dropped.
func (d *Document) Open(ctx context.Context, data *domain.Document, assetPath string, opts ...OpenOption) (err error) {
	var cfg openConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	defer func() {
		nodes := 0
		if err == nil {
			nodes = len(scene.Descendants(d.root))
		}
		ev := domain.NewDocumentEvent(domain.EventDocumentOpen, assetPath, nodes, err)
		ev.Merged = cfg.merge
		if hook := d.System().Hooks().OnDocumentOpen; hook != nil {
			hook(ctx, ev)
		}
	}()

	if d.Disposed() {
		return fmt.Errorf("open document: %w", domain.ErrDisposed)
	}
	if data == nil {
		return fmt.Errorf("open document: %w", domain.ErrSchemaInvalid)
	}
	if d.deps.Validator != nil {
		if err := d.deps.Validator.Validate(data); err != nil {
			return err
		}
	}
	if err := scene.CheckReferences(data); err != nil {
		return err
	}
	entry := data.Scenes[data.Scene]

	parent := d.root
	if cfg.parent != nil {
		parent = cfg.parent
	}
	if parent.Disposed() || parent.Graph() != d.InnerGraph() || parent.Transform() == nil {
		return fmt.Errorf("open document: %w", domain.ErrInvalidParent)
	}

	_, intoScene := graph.ComponentOf[*scene.Scene](parent)
	var setup *int
	if intoScene {
		setup = entry.Setup
	}
	if err := scene.CheckTargets(data, entry.Nodes, setup); err != nil {
		return fmt.Errorf("open document: %w", err)
	}

	if !cfg.merge {
		d.ClearNodeTree()
		if err := scene.ResetScene(d.root); err != nil {
			return fmt.Errorf("open document: %w", err)
		}
		if err := d.TitleText.SetValue(""); err != nil {
			return err
		}
	}
	d.watchMeta(d.Meta())

	before := len(parent.Transform().Children())
	paths := scene.NewPathMap()
	if intoScene {
		err = scene.InflateScene(parent, data, paths)
	} else {
		err = scene.InflateNodes(parent, data, entry.Nodes, paths)
	}
	if err != nil {
		for _, child := range parent.Transform().Children()[before:] {
			child.Node().Dispose()
		}
		return fmt.Errorf("open document: %w", err)
	}

	if assetPath != "" {
		if err := d.Path.SetValue(assetPath); err != nil {
			return err
		}
		d.name = assets.FileName(assetPath)
	}
	d.Logger().Debug("document opened", "document", d.Name(), "merge", cfg.merge)
	return nil
}

// AppendModel adds a node with a model referencing a single model file below parent,
// or below the root when parent is nil.
func (d *Document) AppendModel(assetPath, quality string, parent *graph.Node) (*graph.Node, error) {
	return d.appendModel(parent, func(m *scene.Model) error {
		_, err := m.CreateModelAsset(assetPath, quality)
		return err
	})
}

// AppendGeometry adds a node with a model built from a geometry file and optional
// texture maps below parent, or below the root when parent is nil.
func (d *Document) AppendGeometry(geometry, colorMap, occlusionMap, normalMap, quality string, parent *graph.Node) (*graph.Node, error) {
	return d.appendModel(parent, func(m *scene.Model) error {
		_, err := m.CreateMeshAsset(geometry, colorMap, occlusionMap, normalMap, quality)
		return err
	})
}

func (d *Document) appendModel(parent *graph.Node, fill func(*scene.Model) error) (*graph.Node, error) {
	if parent == nil {
		parent = d.root
	}
	if parent.Disposed() || parent.Graph() != d.InnerGraph() || parent.Transform() == nil {
		return nil, fmt.Errorf("append model: %w", domain.ErrInvalidParent)
	}
	if d.Empty() {
		return nil, fmt.Errorf("append model: %w", domain.ErrEmptyDocument)
	}

	n, err := d.InnerGraph().CreateCustomNode(scene.NodeKind, "")
	if err != nil {
		return nil, err
	}
	if err := parent.Transform().AddChild(n.Transform()); err != nil {
		n.Dispose()
		return nil, err
	}
	c, err := n.CreateComponent(scene.KindModel)
	if err != nil {
		n.Dispose()
		return nil, err
	}
	if err := fill(c.(*scene.Model)); err != nil {
		n.Dispose()
		return nil, fmt.Errorf("append model: %w", err)
	}
	return n, nil
}

// Deflate serializes the tree. Nodes whose components are all rejected by filter are
// still written with their transform. An empty document cannot be serialized.
func (d *Document) Deflate(filter scene.Filter) (doc *domain.Document, err error) {
	defer func() {
		nodes := 0
		if doc != nil {
			nodes = len(doc.Nodes)
		}
		if hook := d.System().Hooks().OnDocumentDeflate; hook != nil {
			hook(context.Background(), domain.NewDocumentEvent(domain.EventDocumentDeflate, d.AssetPath(), nodes, err))
		}
	}()

	if d.Empty() {
		return nil, fmt.Errorf("deflate document: %w", domain.ErrEmptyDocument)
	}
	out := domain.NewDocument()
	index, err := scene.DeflateScene(d.root, out, scene.NewPathMap(), filter)
	if err != nil {
		return nil, fmt.Errorf("deflate document: %w", err)
	}
	out.Scene = index
	return out, nil
}

// MarshalIndent deflates the document and encodes it with two-space indentation.
func (d *Document) MarshalIndent(filter scene.Filter) ([]byte, error) {
	doc, err := d.Deflate(filter)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// watchMeta takes the document title from m once it has loaded, unless a title is
// already set by then.
func (d *Document) watchMeta(m *scene.Meta) {
	if m == nil || d.Title() != "" {
		return
	}
	if _, ok := d.watches[m]; ok {
		return
	}
	d.watches[m] = m.OnLoad(func(m *scene.Meta) {
		delete(d.watches, m)
		if d.Disposed() || d.Title() != "" {
			return
		}
		if err := d.TitleText.SetValue(m.Title()); err != nil {
			d.Logger().Warn("set document title", "err", err)
		}
	})
}

func (d *Document) unwatchMeta(m *scene.Meta) {
	if cancel, ok := d.watches[m]; ok {
		cancel()
		delete(d.watches, m)
	}
}

func (d *Document) dumpJSON() {
	doc, err := d.Deflate(nil)
	if err != nil {
		d.Logger().Error("document dump failed", "document", d.Name(), "err", err)
		return
	}
	data, err := roundedJSON(doc, dumpPrecision)
	if err != nil {
		d.Logger().Error("document dump failed", "document", d.Name(), "err", err)
		return
	}
	d.Logger().Info("document json", "document", d.Name(), "json", string(data))
}

func (d *Document) download(ctx context.Context) error {
	if d.deps.Downloader == nil {
		return errors.New("no downloader configured")
	}
	data, err := d.MarshalIndent(nil)
	if err != nil {
		return err
	}
	name := assets.FileName(d.AssetPath())
	if name == "" {
		name = domain.DefaultDownloadName
	}
	return d.deps.Downloader.Download(ctx, name, data)
}

// roundedJSON encodes v with every number rounded to precision decimals.
func roundedJSON(v any, precision int) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}
	return json.MarshalIndent(roundNumbers(tree, math.Pow10(precision)), "", "  ")
}

func roundNumbers(v any, scale float64) any {
	switch t := v.(type) {
	case float64:
		return math.Round(t*scale) / scale
	case []any:
		for i := range t {
			t[i] = roundNumbers(t[i], scale)
		}
	case map[string]any:
		for k := range t {
			t[k] = roundNumbers(t[k], scale)
		}
	}
	return v
}
