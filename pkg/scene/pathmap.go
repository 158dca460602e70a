package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/voyager/pkg/domain"
	"github.com/aretw0/voyager/pkg/graph"
)

const nodePrefix = "node/"

// NodePath returns the path key of the node entry at index.
func NodePath(index int) string {
	return nodePrefix + strconv.Itoa(index)
}

// ParseNodePath returns the node index of a path built by NodePath.
func ParseNodePath(path string) (int, bool) {
	rest, ok := strings.CutPrefix(path, nodePrefix)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

// PathMap associates path strings with components for one inflate or deflate pass.
//
// During inflate, references to paths may be registered before the referenced entry
// is built; Resolve settles them once the pass has created every component.
type PathMap struct {
	components map[string]graph.Component
	paths      map[graph.Component]string
	pending    []reference
}

type reference struct {
	path    string
	resolve func(graph.Component) error
}

func NewPathMap() *PathMap {
	return &PathMap{
		components: make(map[string]graph.Component),
		paths:      make(map[graph.Component]string),
	}
}

// Set registers c under path in both directions.
func (m *PathMap) Set(path string, c graph.Component) {
	if old, ok := m.components[path]; ok {
		delete(m.paths, old)
	}
	m.components[path] = c
	m.paths[c] = path
}

// Component returns the component registered under path, or nil.
func (m *PathMap) Component(path string) graph.Component { return m.components[path] }

// Path returns the path of c, or "" if c is not registered.
func (m *PathMap) Path(c graph.Component) string { return m.paths[c] }

func (m *PathMap) Len() int { return len(m.components) }

// Refer schedules resolve to run with the component registered under path.
func (m *PathMap) Refer(path string, resolve func(graph.Component) error) {
	m.pending = append(m.pending, reference{path: path, resolve: resolve})
}

// Resolve settles every scheduled reference. A path that was never registered yields
// domain.ErrForwardRef.
func (m *PathMap) Resolve() error {
	pending := m.pending
	m.pending = nil
	for _, ref := range pending {
		c, ok := m.components[ref.path]
		if !ok {
			return fmt.Errorf("reference to %q: %w", ref.path, domain.ErrForwardRef)
		}
		if err := ref.resolve(c); err != nil {
			return fmt.Errorf("reference to %q: %w", ref.path, err)
		}
	}
	return nil
}

// nodeIndex returns the entry index of n in the current deflate pass, or nil when n is
// not part of it.
func (m *PathMap) nodeIndex(n *graph.Node) *int {
	if n == nil || n.Disposed() || n.Transform() == nil {
		return nil
	}
	i, ok := ParseNodePath(m.paths[n.Transform()])
	if !ok {
		return nil
	}
	return &i
}

// referNode schedules set to receive the node of the entry at index.
func (m *PathMap) referNode(index int, set func(*graph.Node)) {
	m.Refer(NodePath(index), func(c graph.Component) error {
		set(c.Node())
		return nil
	})
}
