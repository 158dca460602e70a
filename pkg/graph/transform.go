package graph

import (
	"fmt"
	"slices"

	"github.com/aretw0/voyager/pkg/domain"
)

// KindTransform is the registry key of Transform.
const KindTransform = "Transform"

var (
	identityPosition = []float64{0, 0, 0}
	identityRotation = []float64{0, 0, 0, 1}
	identityScale    = []float64{1, 1, 1}
)

// Transform places a node in the parent/child hierarchy of its graph.
type Transform struct {
	ComponentBase

	Position *Port
	Rotation *Port
	Scale    *Port

	parent   *Transform
	children []*Transform
}

// NewTransform is the Factory for KindTransform.
func NewTransform(node *Node, id string) (Component, error) {
	t := &Transform{}
	t.Init(node, id, KindTransform)
	ins := t.AddInputs(
		Vector("position", "Transform.Position", identityPosition...),
		Vector("rotation", "Transform.Rotation", identityRotation...),
		Vector("scale", "Transform.Scale", identityScale...),
	)
	t.Position = ins.Get("position")
	t.Rotation = ins.Get("rotation")
	t.Scale = ins.Get("scale")
	return t, nil
}

// Parent returns the parent transform, or nil.
func (t *Transform) Parent() *Transform { return t.parent }

// Children returns a snapshot of the child transforms.
func (t *Transform) Children() []*Transform { return slices.Clone(t.children) }

// AddChild reparents child under t. Both transforms must belong to the same graph.
func (t *Transform) AddChild(child *Transform) error {
	if child == nil {
		return fmt.Errorf("add child: nil transform")
	}
	if t.disposed || child.disposed {
		return fmt.Errorf("add child: %w", domain.ErrDisposed)
	}
	if child.Graph() != t.Graph() {
		return fmt.Errorf("add child %s under %s: %w", child.node.id, t.node.id, domain.ErrInvalidParent)
	}
	for p := t; p != nil; p = p.parent {
		if p == child {
			return fmt.Errorf("add child %s under its own descendant %s: %w", child.node.id, t.node.id, domain.ErrInvalidParent)
		}
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = t
	t.children = append(t.children, child)
	return nil
}

// RemoveChild detaches child if it is a child of t.
func (t *Transform) RemoveChild(child *Transform) {
	if child == nil || child.parent != t {
		return
	}
	t.children = slices.DeleteFunc(t.children, func(c *Transform) bool { return c == child })
	child.parent = nil
}

// Dispose detaches the transform from its parent.
func (t *Transform) Dispose() {
	if t.parent != nil {
		t.parent.RemoveChild(t)
	}
	for _, c := range t.children {
		c.parent = nil
	}
	t.children = nil
}
