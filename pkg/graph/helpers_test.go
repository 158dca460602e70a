package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

const kindEcho = "Echo"

// echo mirrors its input to its output and counts updates.
type echo struct {
	ComponentBase
	in, out, fire *Port
	updates      int
	sawChange    bool
	disposed     int
}

func newEcho(node *Node, id string) (Component, error) {
	p := &echo{}
	p.Init(node, id, kindEcho)
	ins := p.AddInputs(Number("value", "Echo.Value", 0), Event("fire", "Echo.Fire"))
	outs := p.AddOutputs(Number("result", "Echo.Result", 0))
	p.in = ins.Get("value")
	p.fire = ins.Get("fire")
	p.out = outs.Get("result")
	return p, nil
}

func (p *echo) Update(context.Context) bool {
	p.updates++
	p.sawChange = p.in.Changed()
	if p.in.Changed() {
		_ = p.out.SetValue(p.in.Float())
	}
	return true
}

func (p *echo) Dispose() { p.disposed++ }

type world struct {
	sys *System
}

func newWorld(t *testing.T, opts ...Option) *world {
	t.Helper()
	reg := NewRegistry()
	reg.Register(kindEcho, newEcho)
	reg.RegisterNode("Node", func(n *Node) error {
		_, err := n.CreateComponent(KindTransform)
		return err
	})
	return &world{sys: NewSystem(reg, opts...)}
}

func (w *world) echo(t *testing.T, g *Graph) *echo {
	t.Helper()
	n := g.CreateNode("echo")
	c, err := n.CreateComponent(kindEcho)
	require.NoError(t, err)
	return c.(*echo)
}

func (w *world) node(t *testing.T, g *Graph, name string) *Node {
	t.Helper()
	n, err := g.CreateCustomNode("Node", name)
	require.NoError(t, err)
	return n
}
