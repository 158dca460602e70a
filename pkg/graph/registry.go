package graph

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/voyager/pkg/domain"
)

// NodeFactory attaches the components of a node kind to a freshly created node.
type NodeFactory func(node *Node) error

// Registry maps stable kind names to component and node factories.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Factory
	nodes      map[string]NodeFactory
}

// NewRegistry creates a registry with the Transform component registered.
func NewRegistry() *Registry {
	r := &Registry{
		components: make(map[string]Factory),
		nodes:      make(map[string]NodeFactory),
	}
	r.Register(KindTransform, NewTransform)
	return r
}

// Register adds a component factory. An existing factory of the same kind is overwritten.
func (r *Registry) Register(kind string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[kind] = f
}

// RegisterNode adds a node kind. An existing kind of the same name is overwritten.
func (r *Registry) RegisterNode(kind string, f NodeFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes[kind] = f
}

// Kinds returns the registered component kinds, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.components)
}

// NodeKinds returns the registered node kinds, sorted.
func (r *Registry) NodeKinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.nodes)
}

func (r *Registry) component(kind string) (Factory, error) {
	r.mu.RLock()
	f, ok := r.components[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("component %q: %w", kind, domain.ErrUnknownKind)
	}
	return f, nil
}

func (r *Registry) node(kind string) (NodeFactory, error) {
	r.mu.RLock()
	f, ok := r.nodes[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("node %q: %w", kind, domain.ErrUnknownKind)
	}
	return f, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
