package scene

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/voyager/pkg/domain"
	"github.com/aretw0/voyager/pkg/graph"
	"github.com/aretw0/voyager/pkg/schema"
)

// KindMeta is the registry key of Meta.
const KindMeta = "Meta"

// Info is the typed view of the well-known meta collection entries.
type Info struct {
	Title     string `mapstructure:"title"`
	Intro     string `mapstructure:"intro"`
	Copyright string `mapstructure:"copyright"`
}

var infoSchema = schema.Schema{
	"title":     schema.String(),
	"intro":     schema.String(),
	"copyright": schema.String(),
}

// Meta holds descriptive key/value data.
//
// Loading a collection completes on the next tick: the load input fires, Update marks
// the loaded output and runs the one-shot handlers registered with OnLoad.
type Meta struct {
	graph.ComponentBase

	Load   *graph.Port
	Loaded *graph.Port

	collection map[string]any
	handlers   []loadHandler
	seq        int
}

type loadHandler struct {
	id int
	fn func(*Meta)
}

// NewMeta is the Factory for KindMeta.
func NewMeta(node *graph.Node, id string) (graph.Component, error) {
	m := &Meta{collection: map[string]any{}}
	m.Init(node, id, KindMeta)
	m.Load = m.AddInputs(graph.Event("load", "Meta.Load")).Get("load")
	m.Loaded = m.AddOutputs(graph.Boolean("loaded", "Meta.Loaded", false)).Get("loaded")
	return m, nil
}

// Collection returns a copy of the collection.
func (m *Meta) Collection() map[string]any { return maps.Clone(m.collection) }

// Get returns the collection entry for key, or nil.
func (m *Meta) Get(key string) any { return m.collection[key] }

// Set stores a collection entry.
func (m *Meta) Set(key string, value any) { m.collection[key] = value }

func (m *Meta) Empty() bool { return len(m.collection) == 0 }

// Info decodes the well-known entries. Entries present with the wrong type are an error.
func (m *Meta) Info() (Info, error) {
	var info Info
	if err := schema.ValidatePresent(infoSchema, m.collection); err != nil {
		return info, fmt.Errorf("meta %s: %w", m.ID(), err)
	}
	if err := mapstructure.Decode(m.collection, &info); err != nil {
		return info, fmt.Errorf("meta %s: %w", m.ID(), err)
	}
	return info, nil
}

// Title returns the "title" entry, or "" when it is missing or not a string.
func (m *Meta) Title() string {
	info, err := m.Info()
	if err != nil {
		m.Logger().Warn("invalid meta collection", "err", err)
		s, _ := m.collection["title"].(string)
		return s
	}
	return info.Title
}

// OnLoad registers fn to run once, on the next load completion. The returned function
// cancels the registration.
func (m *Meta) OnLoad(fn func(*Meta)) (cancel func()) {
	m.seq++
	id := m.seq
	m.handlers = append(m.handlers, loadHandler{id: id, fn: fn})
	return func() {
		m.handlers = slices.DeleteFunc(m.handlers, func(h loadHandler) bool { return h.id == id })
	}
}

func (m *Meta) Update(context.Context) bool {
	if !m.Load.Changed() {
		return false
	}
	_ = m.Loaded.SetValue(true)
	handlers := m.handlers
	m.handlers = nil
	for _, h := range handlers {
		h.fn(m)
	}
	return true
}

// Reset empties the collection. Registered load handlers are kept.
func (m *Meta) Reset() {
	m.collection = map[string]any{}
	_ = m.Loaded.SetValue(false)
}

func (m *Meta) Dispose() {
	m.handlers = nil
}

// FromDocument replaces the collection with the meta entry at index and starts a load.
func (m *Meta) FromDocument(doc *domain.Document, index int, _ *PathMap) error {
	m.collection = maps.Clone(doc.Metas[index].Collection)
	if m.collection == nil {
		m.collection = map[string]any{}
	}
	m.Load.Set()
	return nil
}

func (m *Meta) ToDocument(doc *domain.Document, _ *PathMap) int {
	entry := domain.Meta{}
	if len(m.collection) > 0 {
		entry.Collection = maps.Clone(m.collection)
	}
	doc.Metas = append(doc.Metas, entry)
	return len(doc.Metas) - 1
}
