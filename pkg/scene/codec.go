package scene

import (
	"fmt"
	"slices"

	"github.com/aretw0/voyager/pkg/domain"
	"github.com/aretw0/voyager/pkg/graph"
)

// Filter selects the component kinds written on deflate. A nil Filter writes all of
// them; transforms and hierarchy are always written.
type Filter map[string]bool

// Allows reports whether components of kind are written.
func (f Filter) Allows(kind string) bool {
	return f == nil || f[kind]
}

// Codec is implemented by components with an entry of their own in a document array.
type Codec interface {
	graph.Component
	// FromDocument reads the entry at index.
	FromDocument(doc *domain.Document, index int, paths *PathMap) error
	// ToDocument appends an entry and returns its index.
	ToDocument(doc *domain.Document, paths *PathMap) int
}

var (
	identityTranslation = []float64{0, 0, 0}
	identityRotation    = []float64{0, 0, 0, 1}
	identityScale       = []float64{1, 1, 1}
)

// InflateScene reads the active scene of doc into the scene node root: scene settings,
// meta, setup and the top-level nodes, which become children of root.
func InflateScene(root *graph.Node, doc *domain.Document, paths *PathMap) error {
	if err := CheckReferences(doc); err != nil {
		return err
	}
	sc, ok := graph.ComponentOf[*Scene](root)
	if !ok {
		return fmt.Errorf("node %s has no %s component", root.ID(), KindScene)
	}
	entry := doc.Scenes[doc.Scene]
	if err := CheckTargets(doc, entry.Nodes, entry.Setup); err != nil {
		return err
	}
	if err := sc.FromDocument(doc, doc.Scene, paths); err != nil {
		return err
	}
	if err := attach(root, KindMeta, doc, entry.Meta, paths); err != nil {
		return err
	}
	if err := inflateChildren(root, doc, entry.Nodes, paths); err != nil {
		return err
	}
	if err := attach(root, KindSetup, doc, entry.Setup, paths); err != nil {
		return err
	}
	return paths.Resolve()
}

// InflateNodes instantiates the node entries at indices, with their subtrees, as
// children of parent.
func InflateNodes(parent *graph.Node, doc *domain.Document, indices []int, paths *PathMap) error {
	if err := CheckReferences(doc); err != nil {
		return err
	}
	if err := CheckTargets(doc, indices, nil); err != nil {
		return err
	}
	if err := inflateChildren(parent, doc, indices, paths); err != nil {
		return err
	}
	return paths.Resolve()
}

func inflateChildren(parent *graph.Node, doc *domain.Document, indices []int, paths *PathMap) error {
	pt := parent.Transform()
	if pt == nil {
		return fmt.Errorf("node %s has no transform", parent.ID())
	}
	for _, index := range indices {
		n, err := parent.Graph().CreateCustomNode(NodeKind, "")
		if err != nil {
			return err
		}
		if err := pt.AddChild(n.Transform()); err != nil {
			n.Dispose()
			return err
		}
		if err := inflateNode(n, doc, index, paths); err != nil {
			return err
		}
	}
	return nil
}

func inflateNode(n *graph.Node, doc *domain.Document, index int, paths *PathMap) error {
	entry := doc.Nodes[index]
	n.SetName(entry.Name)

	t := n.Transform()
	for _, v := range []struct {
		port  *graph.Port
		value []float64
		def   []float64
	}{
		{t.Position, entry.Translation, identityTranslation},
		{t.Rotation, entry.Rotation, identityRotation},
		{t.Scale, entry.Scale, identityScale},
	} {
		value := v.value
		if len(value) == 0 {
			value = v.def
		}
		if err := v.port.SetValue(value); err != nil {
			return fmt.Errorf("node %d: %w", index, err)
		}
	}
	paths.Set(NodePath(index), t)

	for _, a := range []struct {
		kind  string
		index *int
	}{
		{KindCamera, entry.Camera},
		{KindLight, entry.Light},
		{KindModel, entry.Model},
		{KindMeta, entry.Meta},
	} {
		if err := attach(n, a.kind, doc, a.index, paths); err != nil {
			return fmt.Errorf("node %d: %w", index, err)
		}
	}
	return inflateChildren(n, doc, entry.Children, paths)
}

// attach reads the entry at index into the node's component of kind, creating the
// component if needed. A nil index is a no-op.
func attach(n *graph.Node, kind string, doc *domain.Document, index *int, paths *PathMap) error {
	if index == nil {
		return nil
	}
	c := n.Component(kind)
	if c == nil {
		var err error
		if c, err = n.CreateComponent(kind); err != nil {
			return err
		}
	}
	codec, ok := c.(Codec)
	if !ok {
		return fmt.Errorf("component %s cannot be read from a document", kind)
	}
	return codec.FromDocument(doc, *index, paths)
}

// DeflateScene appends the scene rooted at root, and every node below it, to doc. It
// returns the index of the scene entry. The live graph is not modified.
func DeflateScene(root *graph.Node, doc *domain.Document, paths *PathMap, filter Filter) (int, error) {
	sc, ok := graph.ComponentOf[*Scene](root)
	if !ok {
		return 0, fmt.Errorf("node %s has no %s component", root.ID(), KindScene)
	}

	// Indices are assigned up front so references may point at any node of the pass.
	order := Descendants(root)
	base := len(doc.Nodes)
	for i, n := range order {
		paths.Set(NodePath(base+i), n.Transform())
	}
	doc.Nodes = append(doc.Nodes, make([]domain.Node, len(order))...)
	for i, n := range order {
		doc.Nodes[base+i] = deflateNode(n, doc, paths, filter)
	}

	index := sc.ToDocument(doc, paths)
	entry := &doc.Scenes[index]
	entry.Nodes = childIndices(root, paths)
	if m, ok := graph.ComponentOf[*Meta](root); ok && filter.Allows(KindMeta) && !m.Empty() {
		entry.Meta = domain.Index(m.ToDocument(doc, paths))
	}
	if s, ok := graph.ComponentOf[*Setup](root); ok && filter.Allows(KindSetup) {
		entry.Setup = domain.Index(s.ToDocument(doc, paths))
	}
	return index, nil
}

func deflateNode(n *graph.Node, doc *domain.Document, paths *PathMap, filter Filter) domain.Node {
	t := n.Transform()
	entry := domain.Node{
		Name:     n.Name(),
		Children: childIndices(n, paths),
	}
	if v := t.Position.Vector(); !slices.Equal(v, identityTranslation) {
		entry.Translation = v
	}
	if v := t.Rotation.Vector(); !slices.Equal(v, identityRotation) {
		entry.Rotation = v
	}
	if v := t.Scale.Vector(); !slices.Equal(v, identityScale) {
		entry.Scale = v
	}

	for _, a := range []struct {
		kind string
		dst  **int
	}{
		{KindCamera, &entry.Camera},
		{KindLight, &entry.Light},
		{KindModel, &entry.Model},
		{KindMeta, &entry.Meta},
	} {
		if !filter.Allows(a.kind) {
			continue
		}
		if c, ok := n.Component(a.kind).(Codec); ok {
			*a.dst = domain.Index(c.ToDocument(doc, paths))
		}
	}
	return entry
}

func childIndices(n *graph.Node, paths *PathMap) []int {
	var out []int
	for _, c := range n.Transform().Children() {
		if i := paths.nodeIndex(c.Node()); i != nil {
			out = append(out, *i)
		}
	}
	return out
}

// Descendants returns every node below n in the transform hierarchy, in pre-order.
func Descendants(n *graph.Node) []*graph.Node {
	var out []*graph.Node
	var walk func(t *graph.Transform)
	walk = func(t *graph.Transform) {
		for _, c := range t.Children() {
			out = append(out, c.Node())
			walk(c)
		}
	}
	if t := n.Transform(); t != nil {
		walk(t)
	}
	return out
}
