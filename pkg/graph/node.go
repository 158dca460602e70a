package graph

import (
	"fmt"
	"slices"

	"github.com/aretw0/voyager/pkg/domain"
)

// Node is a named container of components inside a Graph.
type Node struct {
	id         string
	name       string
	kind       string
	graph      *Graph
	components []Component
	disposed   bool
}

func (n *Node) ID() string     { return n.id }
func (n *Node) Name() string   { return n.name }
func (n *Node) Kind() string   { return n.kind }
func (n *Node) Graph() *Graph  { return n.graph }
func (n *Node) Disposed() bool { return n.disposed }

// SetName renames the node.
func (n *Node) SetName(name string) { n.name = name }

// Components returns the attached components in creation order.
func (n *Node) Components() []Component {
	return slices.Clone(n.components)
}

// Component returns the first attached component of the given kind, or nil.
func (n *Node) Component(kind string) Component {
	for _, c := range n.components {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

// Transform returns the node's transform, or nil if it has none.
func (n *Node) Transform() *Transform {
	t, _ := ComponentOf[*Transform](n)
	return t
}

// CreateComponent instantiates a registered component kind on the node and runs its
// Create hook.
func (n *Node) CreateComponent(kind string) (Component, error) {
	if n.disposed {
		return nil, fmt.Errorf("create %s on node %s: %w", kind, n.id, domain.ErrDisposed)
	}
	sys := n.graph.system
	factory, err := sys.registry.component(kind)
	if err != nil {
		return nil, err
	}

	c, err := factory(n, sys.newID())
	if err != nil {
		return nil, fmt.Errorf("construct %s: %w", kind, err)
	}
	b := c.base()
	b.self = c
	n.components = append(n.components, c)
	n.graph.components = append(n.graph.components, c)

	if err := c.Create(); err != nil {
		n.graph.disposeComponent(c)
		return nil, fmt.Errorf("create %s: %w", kind, err)
	}

	n.graph.emit(c, true)
	sys.fireComponent(domain.EventComponentCreate, c)
	return c, nil
}

// Dispose removes the node, its components and, depth-first, every node below it in
// the transform hierarchy.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.disposed = true

	if t := n.Transform(); t != nil {
		for _, child := range t.Children() {
			child.Node().Dispose()
		}
	}
	for i := len(n.components) - 1; i >= 0; i-- {
		n.graph.disposeComponent(n.components[i])
	}
	n.components = nil
	n.graph.removeNode(n)
}

func (n *Node) removeComponent(c Component) {
	n.components = slices.DeleteFunc(n.components, func(x Component) bool { return x == c })
}
