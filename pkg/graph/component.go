package graph

import (
	"context"
	"log/slog"
)

// Component is an addressable unit attached to exactly one Node.
//
// Implementations embed ComponentBase (or GraphComponent) and override Create, Update
// and Dispose as needed.
type Component interface {
	ID() string
	Kind() string
	Node() *Node
	Graph() *Graph
	Ins() *PortSet
	Outs() *PortSet

	// Create runs once after the component is attached. It is the place to link ports
	// to sibling or ancestor components.
	Create() error
	// Update runs during a tick when an input changed, and once after creation.
	// The return value tells the system whether observers should be notified.
	Update(ctx context.Context) bool
	// Dispose runs before the component is removed and must release anything
	// registered outside the component's own ports.
	Dispose()

	base() *ComponentBase
}

// Factory constructs a component of one kind on node.
type Factory func(node *Node, id string) (Component, error)

// ComponentBase carries the state shared by all components.
type ComponentBase struct {
	id       string
	kind     string
	node     *Node
	self     Component
	ins      *PortSet
	outs     *PortSet
	updated  bool
	disposed bool
}

// Init binds the base to its node. Factories call it before declaring ports.
func (c *ComponentBase) Init(node *Node, id, kind string) {
	c.id = id
	c.kind = kind
	c.node = node
	c.ins = newPortSet()
	c.outs = newPortSet()
}

// AddInputs instantiates input ports from schemas, initialized to their defaults.
func (c *ComponentBase) AddInputs(schemas ...PortSchema) *PortSet {
	c.addPorts(c.ins, true, schemas)
	return c.ins
}

// AddOutputs instantiates output ports from schemas, initialized to their defaults.
func (c *ComponentBase) AddOutputs(schemas ...PortSchema) *PortSet {
	c.addPorts(c.outs, false, schemas)
	return c.outs
}

func (c *ComponentBase) addPorts(set *PortSet, input bool, schemas []PortSchema) {
	net := c.node.graph.system.network
	for _, s := range schemas {
		p := &Port{schema: s, input: input, value: s.defaultValue(), owner: c}
		net.add(p)
		set.add(p)
	}
}

func (c *ComponentBase) ID() string     { return c.id }
func (c *ComponentBase) Kind() string   { return c.kind }
func (c *ComponentBase) Node() *Node    { return c.node }
func (c *ComponentBase) Graph() *Graph  { return c.node.graph }
func (c *ComponentBase) Ins() *PortSet  { return c.ins }
func (c *ComponentBase) Outs() *PortSet { return c.outs }
func (c *ComponentBase) Disposed() bool { return c.disposed }

// System returns the system the component lives in.
func (c *ComponentBase) System() *System { return c.node.graph.system }

// Logger returns the system logger scoped to this component.
func (c *ComponentBase) Logger() *slog.Logger {
	return c.System().logger.With("component", c.kind, "id", c.id)
}

func (c *ComponentBase) Create() error               { return nil }
func (c *ComponentBase) Update(context.Context) bool { return false }
func (c *ComponentBase) Dispose()                    {}
func (c *ComponentBase) base() *ComponentBase        { return c }
func (c *ComponentBase) needsUpdate() bool           { return !c.updated || c.ins.Changed() }

func (c *ComponentBase) release() {
	net := c.node.graph.system.network
	for _, p := range c.ins.ports {
		net.release(p.id)
	}
	for _, p := range c.outs.ports {
		net.release(p.id)
	}
}

// GraphComponent is a component owning an inner graph. Disposing it disposes every
// node of the inner graph.
type GraphComponent struct {
	ComponentBase
	inner *Graph
}

// InitGraph binds the base and creates the inner graph.
func (c *GraphComponent) InitGraph(node *Node, id, kind string) {
	c.Init(node, id, kind)
	c.inner = newGraph(node.graph.system, &c.ComponentBase)
}

// InnerGraph returns the owned graph.
func (c *GraphComponent) InnerGraph() *Graph { return c.inner }

type innerGraphOwner interface {
	InnerGraph() *Graph
}

func innerGraphOf(c Component) *Graph {
	if o, ok := c.(innerGraphOwner); ok {
		return o.InnerGraph()
	}
	return nil
}

// ComponentOf returns the first component of type T on node.
func ComponentOf[T Component](node *Node) (T, bool) {
	for _, c := range node.components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// ComponentsOf returns every component of type T in graph, in creation order.
func ComponentsOf[T Component](g *Graph) []T {
	var out []T
	for _, c := range g.components {
		if t, ok := c.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
