package graph

import (
	"context"
	"slices"

	"github.com/aretw0/voyager/pkg/domain"
)

// ComponentEvent is delivered to graph listeners when a component is added or removed.
type ComponentEvent struct {
	Component Component
	Add       bool
	Remove    bool
}

type listener struct {
	id int
	fn func(ComponentEvent)
}

// Graph owns a set of nodes and their components. A graph is either the root graph of
// a System or the inner graph of exactly one GraphComponent.
type Graph struct {
	system     *System
	owner      *ComponentBase
	nodes      []*Node
	components []Component
	listeners  map[string][]listener
	seq        int
}

func newGraph(sys *System, owner *ComponentBase) *Graph {
	return &Graph{
		system:    sys,
		owner:     owner,
		listeners: make(map[string][]listener),
	}
}

// System returns the owning system.
func (g *Graph) System() *System { return g.system }

// Owner returns the component owning this inner graph, or nil for a root graph.
func (g *Graph) Owner() Component {
	if g.owner == nil {
		return nil
	}
	return g.owner.self
}

// Nodes returns the nodes in creation order.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Components returns the components in creation order.
func (g *Graph) Components() []Component { return slices.Clone(g.components) }

// CreateNode adds an empty node.
func (g *Graph) CreateNode(name string) *Node {
	n := &Node{id: g.system.newID(), name: name, graph: g}
	g.nodes = append(g.nodes, n)
	return n
}

// CreateCustomNode adds a node of a registered kind, with that kind's components attached.
func (g *Graph) CreateCustomNode(kind, name string) (*Node, error) {
	factory, err := g.system.registry.node(kind)
	if err != nil {
		return nil, err
	}
	n := g.CreateNode(name)
	n.kind = kind
	if err := factory(n); err != nil {
		n.Dispose()
		return nil, err
	}
	return n, nil
}

// FindNode returns the first node of the given kind, or nil.
func (g *Graph) FindNode(kind string) *Node {
	for _, n := range g.nodes {
		if n.kind == kind {
			return n
		}
	}
	return nil
}

// FindComponent returns the first component of the given kind, or nil.
func (g *Graph) FindComponent(kind string) Component {
	for _, c := range g.components {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

// On subscribes fn to add/remove events of components of the given kind. The returned
// function unsubscribes.
func (g *Graph) On(kind string, fn func(ComponentEvent)) (off func()) {
	g.seq++
	id := g.seq
	g.listeners[kind] = append(g.listeners[kind], listener{id: id, fn: fn})
	return func() {
		g.listeners[kind] = slices.DeleteFunc(g.listeners[kind], func(l listener) bool { return l.id == id })
	}
}

// Clear disposes every node of the graph.
func (g *Graph) Clear() {
	for len(g.nodes) > 0 {
		g.nodes[len(g.nodes)-1].Dispose()
	}
}

func (g *Graph) emit(c Component, add bool) {
	for _, l := range slices.Clone(g.listeners[c.Kind()]) {
		l.fn(ComponentEvent{Component: c, Add: add, Remove: !add})
	}
}

func (g *Graph) disposeComponent(c Component) {
	b := c.base()
	if b.disposed {
		return
	}
	c.Dispose()
	if inner := innerGraphOf(c); inner != nil {
		inner.Clear()
	}
	b.disposed = true
	g.emit(c, false)
	g.system.fireComponent(domain.EventComponentDispose, c)

	b.node.removeComponent(c)
	g.components = slices.DeleteFunc(g.components, func(x Component) bool { return x == c })
	b.release()
}

func (g *Graph) removeNode(n *Node) {
	g.nodes = slices.DeleteFunc(g.nodes, func(x *Node) bool { return x == n })
}

// tick updates every component needing it, descending into inner graphs right after
// their owner.
func (g *Graph) tick(ctx context.Context) int {
	count := 0
	for _, c := range slices.Clone(g.components) {
		b := c.base()
		if b.disposed {
			continue
		}
		if b.needsUpdate() {
			notify := c.Update(ctx)
			b.updated = true
			b.ins.reset()
			count++
			if notify {
				g.system.fireComponent(domain.EventComponentUpdate, c)
			}
		}
		if inner := innerGraphOf(c); inner != nil && !b.disposed {
			count += inner.tick(ctx)
		}
	}
	return count
}

func (g *Graph) resetOutputs() {
	for _, c := range g.components {
		c.base().outs.reset()
		if inner := innerGraphOf(c); inner != nil {
			inner.resetOutputs()
		}
	}
}
