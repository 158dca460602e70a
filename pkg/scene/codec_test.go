package scene

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/voyager/pkg/domain"
	"github.com/aretw0/voyager/pkg/graph"
)

func TestInflateScene_BuildsHierarchy(t *testing.T) {
	sys := newSystem(t)
	root := newRoot(t, sys)

	require.NoError(t, InflateScene(root, parse(t, fixture), NewPathMap()))

	assert.Equal(t, "Main", root.Name())
	nodes := Descendants(root)
	require.Len(t, nodes, 3)
	assert.Equal(t, []string{"Lamp", "Cam", "Statue"}, []string{nodes[0].Name(), nodes[1].Name(), nodes[2].Name()})
	assert.Same(t, nodes[0].Transform(), nodes[1].Transform().Parent())
	assert.Equal(t, []float64{0, 2, 0}, nodes[0].Transform().Position.Vector())

	light, ok := graph.ComponentOf[*Light](nodes[0])
	require.True(t, ok)
	assert.Equal(t, "spot", light.Type.Option())
	assert.Same(t, nodes[2], light.Target(), "forward reference resolves after the pass")

	setup, _ := graph.ComponentOf[*Setup](root)
	assert.Same(t, nodes[2], setup.NavigationTarget())

	model, ok := graph.ComponentOf[*Model](nodes[2])
	require.True(t, ok)
	assert.Equal(t, "mm", model.Units.Option())
	require.Len(t, model.Annotations(), 1)
	assert.Equal(t, "a1", model.Annotations()[0].ID())
}

func TestDeflateScene_RoundTripIsFixedPoint(t *testing.T) {
	first := newRoot(t, newSystem(t))
	require.NoError(t, InflateScene(first, parse(t, fixture), NewPathMap()))
	out1 := deflate(t, first, nil)
	assert.JSONEq(t, fixture, string(out1))

	second := newRoot(t, newSystem(t))
	require.NoError(t, InflateScene(second, parse(t, string(out1)), NewPathMap()))
	out2 := deflate(t, second, nil)
	assert.Equal(t, string(out1), string(out2))
}

func TestDeflateScene_Filter(t *testing.T) {
	root := newRoot(t, newSystem(t))
	require.NoError(t, InflateScene(root, parse(t, fixture), NewPathMap()))

	doc := parse(t, string(deflate(t, root, Filter{KindCamera: true})))

	assert.Len(t, doc.Nodes, 3)
	assert.Len(t, doc.Cameras, 1)
	assert.Empty(t, doc.Models)
	assert.Empty(t, doc.Lights)
	assert.Empty(t, doc.Metas)
	assert.Empty(t, doc.Setups)
}

func TestDeflateScene_DoesNotMutate(t *testing.T) {
	root := newRoot(t, newSystem(t))
	require.NoError(t, InflateScene(root, parse(t, fixture), NewPathMap()))
	before := len(root.Graph().Components())

	deflate(t, root, nil)
	deflate(t, root, nil)

	assert.Equal(t, before, len(root.Graph().Components()))
}

func TestDeflateScene_DropsDisposedTargets(t *testing.T) {
	root := newRoot(t, newSystem(t))
	require.NoError(t, InflateScene(root, parse(t, fixture), NewPathMap()))

	findNode(root, "Statue").Dispose()
	doc := parse(t, string(deflate(t, root, nil)))

	require.Len(t, doc.Lights, 1)
	assert.Nil(t, doc.Lights[0].Target)
	assert.Nil(t, doc.Setups[0].Navigation)
}

func TestInflate_UnregisteredReference(t *testing.T) {
	// Node 1 exists but is not part of the active scene.
	doc := parse(t, `{"asset": {"type": "x", "version": "1.0"}, "scene": 0,
		"scenes": [{"nodes": [0]}],
		"nodes": [{"light": 0}, {"name": "orphan"}],
		"lights": [{"type": "point", "target": 1}]}`)

	root := newRoot(t, newSystem(t))
	err := InflateScene(root, doc, NewPathMap())
	assert.ErrorIs(t, err, domain.ErrForwardRef)
	assert.Empty(t, root.Transform().Children(), "rejected before any node is built")
}

func TestCheckTargets(t *testing.T) {
	doc := parse(t, fixture)
	assert.NoError(t, CheckTargets(doc, doc.Scenes[0].Nodes, doc.Scenes[0].Setup))

	// The spot light on Lamp targets Statue, which is not below Lamp.
	assert.ErrorIs(t, CheckTargets(doc, []int{0}, nil), domain.ErrForwardRef)
	// Navigation targets Statue too, but only matters when the setup is read.
	assert.NoError(t, CheckTargets(doc, []int{2}, nil))
	assert.ErrorIs(t, CheckTargets(doc, []int{1}, domain.Index(0)), domain.ErrForwardRef)
}

func TestInflateNodes_UnderArbitraryNode(t *testing.T) {
	sys := newSystem(t)
	root := newRoot(t, sys)
	holder, err := sys.Graph().CreateCustomNode(NodeKind, "holder")
	require.NoError(t, err)
	require.NoError(t, root.Transform().AddChild(holder.Transform()))

	doc := parse(t, fixture)
	require.NoError(t, InflateNodes(holder, doc, doc.Scenes[0].Nodes, NewPathMap()))

	assert.Len(t, holder.Transform().Children(), 2)
	assert.Equal(t, "", root.Name(), "scene entry is not read")
	meta, _ := graph.ComponentOf[*Meta](root)
	assert.True(t, meta.Empty())
}

func TestCheckReferences(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"scene index", `{"scene": 1, "scenes": [{}]}`},
		{"scene node", `{"scene": 0, "scenes": [{"nodes": [3]}]}`},
		{"child", `{"scene": 0, "scenes": [{"nodes": [0]}], "nodes": [{"children": [7]}]}`},
		{"camera", `{"scene": 0, "scenes": [{"nodes": [0]}], "nodes": [{"camera": 0}]}`},
		{"light target", `{"scene": 0, "scenes": [{}], "lights": [{"type": "point", "target": 0}]}`},
		{"cycle", `{"scene": 0, "scenes": [{"nodes": [0]}], "nodes": [{"children": [1]}, {"children": [0]}]}`},
		{"shared child", `{"scene": 0, "scenes": [{"nodes": [0, 1]}], "nodes": [{"children": [1]}, {}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, CheckReferences(parse(t, tt.doc)), domain.ErrSchemaInvalid)
		})
	}
	assert.NoError(t, CheckReferences(parse(t, fixture)))
}

func TestMeta_LoadCompletesOnTick(t *testing.T) {
	sys := newSystem(t)
	root := newRoot(t, sys)
	meta, _ := graph.ComponentOf[*Meta](root)

	var titles []string
	meta.OnLoad(func(m *Meta) { titles = append(titles, m.Title()) })
	cancel := meta.OnLoad(func(*Meta) { t.Fatal("cancelled handler ran") })
	cancel()

	require.NoError(t, InflateScene(root, parse(t, fixture), NewPathMap()))
	assert.Empty(t, titles, "load completes asynchronously")

	sys.Tick(context.Background())
	assert.Equal(t, []string{"Statue"}, titles)
	assert.True(t, meta.Loaded.Bool())

	meta.Load.Set()
	sys.Tick(context.Background())
	assert.Len(t, titles, 1, "handlers are one-shot")
}

func TestMeta_Info(t *testing.T) {
	root := newRoot(t, newSystem(t))
	meta, _ := graph.ComponentOf[*Meta](root)

	meta.Set("title", "Bust")
	meta.Set("intro", "A marble bust.")
	meta.Set("extra", 42.0)
	info, err := meta.Info()
	require.NoError(t, err)
	assert.Equal(t, Info{Title: "Bust", Intro: "A marble bust."}, info)

	meta.Set("title", 7.0)
	_, err = meta.Info()
	assert.Error(t, err)
	assert.Equal(t, "", meta.Title())
}

func TestModel_Assets(t *testing.T) {
	sys := newSystem(t)
	n := sys.Graph().CreateNode("m")
	c, err := n.CreateComponent(KindModel)
	require.NoError(t, err)
	model := c.(*Model)

	d, err := model.CreateMeshAsset("mesh.obj", "diffuse.jpg", "", "normals.jpg", "")
	require.NoError(t, err)
	assert.Equal(t, QualityHigh, d.Quality)
	assert.Equal(t, []domain.DerivativeAsset{
		{URI: "mesh.obj", Type: AssetGeometry},
		{URI: "diffuse.jpg", Type: AssetImage, MapType: MapColor},
		{URI: "normals.jpg", Type: AssetImage, MapType: MapNormal},
	}, d.Assets)

	_, err = model.CreateModelAsset("model.glb", "Ultra")
	assert.Error(t, err)
	assert.Len(t, model.Derivatives(), 1)
}

func TestPathMap(t *testing.T) {
	i, ok := ParseNodePath(NodePath(12))
	assert.True(t, ok)
	assert.Equal(t, 12, i)
	_, ok = ParseNodePath("camera/1")
	assert.False(t, ok)

	m := NewPathMap()
	var got graph.Component
	m.Refer("node/0", func(c graph.Component) error { got = c; return nil })

	sys := newSystem(t)
	n, err := sys.Graph().CreateCustomNode(NodeKind, "")
	require.NoError(t, err)
	m.Set("node/0", n.Transform())

	require.NoError(t, m.Resolve())
	assert.Same(t, n.Transform(), got)
	assert.Equal(t, "node/0", m.Path(n.Transform()))
}

func TestTree(t *testing.T) {
	root := newRoot(t, newSystem(t))
	require.NoError(t, InflateScene(root, parse(t, fixture), NewPathMap()))

	want := `Scene "Main" [Transform Scene Meta Setup]
  Node "Lamp" [Transform Light]
    Node "Cam" [Transform Camera]
  Node "Statue" [Transform Model]
`
	assert.Equal(t, want, Tree(root))
}
