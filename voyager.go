package voyager

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aretw0/voyager/internal/logging"
	"github.com/aretw0/voyager/pkg/adapters/memory"
	"github.com/aretw0/voyager/pkg/adapters/openapi"
	"github.com/aretw0/voyager/pkg/assets"
	"github.com/aretw0/voyager/pkg/document"
	"github.com/aretw0/voyager/pkg/domain"
	"github.com/aretw0/voyager/pkg/graph"
	"github.com/aretw0/voyager/pkg/ports"
	"github.com/aretw0/voyager/pkg/scene"
)

// Engine is the high-level entry point of the library. It owns a graph system with
// every component kind registered and a main node carrying the asset reader and
// writer. Documents are created as siblings of the main node.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	system     *graph.System
	store      ports.AssetStore
	validator  ports.DocumentValidator
	downloader ports.Downloader
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	rootURL    string
	reader     *assets.Reader
	writer     *assets.Writer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger shared by all components.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStore sets the asset store documents are read from and written to.
// Default: an in-memory store.
func WithStore(store ports.AssetStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithRootURL sets the root URL asset paths are resolved against.
func WithRootURL(rootURL string) Option {
	return func(e *Engine) {
		e.rootURL = rootURL
	}
}

// WithValidator replaces the embedded OpenAPI document schema.
func WithValidator(v ports.DocumentValidator) Option {
	return func(e *Engine) {
		e.validator = v
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithDownloader sets the collaborator receiving documents on the download event.
func WithDownloader(d ports.Downloader) Option {
	return func(e *Engine) {
		e.downloader = d
	}
}

// New creates an engine.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{rootURL: assets.DefaultRootURL}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.store == nil {
		e.store = memory.NewStore()
	}
	if e.validator == nil {
		v, err := openapi.New()
		if err != nil {
			return nil, fmt.Errorf("load document schema: %w", err)
		}
		e.validator = v
	}

	reg := graph.NewRegistry()
	scene.Register(reg)
	assets.Register(reg, e.store)
	document.Register(reg, document.Deps{Validator: e.validator, Downloader: e.downloader})
	e.system = graph.NewSystem(reg, graph.WithLogger(e.logger), graph.WithLifecycleHooks(e.hooks))

	main := e.system.Graph().CreateNode("main")
	r, err := main.CreateComponent(assets.KindAssetReader)
	if err != nil {
		return nil, err
	}
	w, err := main.CreateComponent(assets.KindAssetWriter)
	if err != nil {
		return nil, err
	}
	e.reader, e.writer = r.(*assets.Reader), w.(*assets.Writer)
	if err := e.reader.SetRootURL(e.rootURL, ""); err != nil {
		return nil, fmt.Errorf("root url: %w", err)
	}
	return e, nil
}

// System returns the underlying graph system.
func (e *Engine) System() *graph.System { return e.system }

// Store returns the asset store.
func (e *Engine) Store() ports.AssetStore { return e.store }

// Reader returns the asset reader of the main node.
func (e *Engine) Reader() *assets.Reader { return e.reader }

// Writer returns the asset writer of the main node. Its root URL follows the reader.
func (e *Engine) Writer() *assets.Writer { return e.writer }

// NewDocument creates an empty document on a node of its own.
func (e *Engine) NewDocument() (*document.Document, error) {
	c, err := e.system.Graph().CreateNode("document").CreateComponent(document.KindDocument)
	if err != nil {
		return nil, err
	}
	return c.(*document.Document), nil
}

// Open reads the document at assetPath from the store into a new document. The raw
// bytes are checked against the document schema before they are decoded.
func (e *Engine) Open(ctx context.Context, assetPath string, opts ...document.OpenOption) (*document.Document, error) {
	raw, err := e.reader.GetText(ctx, assetPath)
	if err != nil {
		return nil, err
	}
	data, err := e.decode([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", assetPath, err)
	}
	return e.open(ctx, data, assetPath, opts)
}

// Load decodes raw JSON into a new document. assetPath may be empty.
func (e *Engine) Load(ctx context.Context, raw []byte, assetPath string, opts ...document.OpenOption) (*document.Document, error) {
	data, err := e.decode(raw)
	if err != nil {
		return nil, err
	}
	return e.open(ctx, data, assetPath, opts)
}

// decode validates raw as received and decodes it. Decoding fills absent keys with
// zero values, so the schema is checked on the input bytes.
func (e *Engine) decode(raw []byte) (*domain.Document, error) {
	if err := e.validator.ValidateJSON(raw); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	var data domain.Document
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode document: %w: %v", domain.ErrSchemaInvalid, err)
	}
	return &data, nil
}

func (e *Engine) open(ctx context.Context, data *domain.Document, assetPath string, opts []document.OpenOption) (*document.Document, error) {
	doc, err := e.NewDocument()
	if err != nil {
		return nil, err
	}
	if err := doc.Open(ctx, data, assetPath, opts...); err != nil {
		doc.Node().Dispose()
		return nil, err
	}
	// Completes the meta load so the title is available on return.
	e.system.Tick(ctx)
	return doc, nil
}

// Save writes doc to assetPath, or to the document's own asset path when assetPath
// is empty. A nil filter writes every component.
func (e *Engine) Save(ctx context.Context, doc *document.Document, filter scene.Filter, assetPath string) error {
	return e.writer.PutDocument(ctx, doc, filter, assetPath)
}

// Tick runs one update pass over every graph.
func (e *Engine) Tick(ctx context.Context) int {
	return e.system.Tick(ctx)
}

// Close disposes every node, documents included.
func (e *Engine) Close() {
	e.system.Graph().Clear()
}
