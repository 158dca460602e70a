package scene

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/voyager/pkg/domain"
	"github.com/aretw0/voyager/pkg/graph"
)

const fixture = `{
  "asset": {"type": "application/si-dpo-3d.document+json", "version": "1.0",
            "generator": "Voyager", "copyright": "(c) Smithsonian Institution. All rights reserved."},
  "scene": 0,
  "scenes": [{"name": "Main", "units": "m", "nodes": [0, 2], "meta": 0, "setup": 0}],
  "nodes": [
    {"name": "Lamp", "translation": [0, 2, 0], "children": [1], "light": 0},
    {"name": "Cam", "camera": 0},
    {"name": "Statue", "scale": [2, 2, 2], "model": 0}
  ],
  "cameras": [{"type": "perspective", "perspective": {"yfov": 0.8, "znear": 0.1, "zfar": 500}}],
  "lights": [{"type": "spot", "intensity": 2, "target": 2}],
  "models": [{"units": "mm",
    "derivatives": [{"usage": "Web3D", "quality": "High", "assets": [{"uri": "statue.glb", "type": "Model"}]}],
    "annotations": [{"id": "a1", "title": "Nose", "position": [0, 1, 0], "direction": [0, 0, 1]}]}],
  "metas": [{"collection": {"title": "Statue"}}],
  "setups": [{"units": "m", "navigation": {"target": 2}}]
}`

func newSystem(t *testing.T) *graph.System {
	t.Helper()
	reg := graph.NewRegistry()
	Register(reg)
	return graph.NewSystem(reg)
}

func newRoot(t *testing.T, sys *graph.System) *graph.Node {
	t.Helper()
	root, err := sys.Graph().CreateCustomNode(SceneKind, "")
	require.NoError(t, err)
	return root
}

func parse(t *testing.T, s string) *domain.Document {
	t.Helper()
	var doc domain.Document
	require.NoError(t, json.Unmarshal([]byte(s), &doc))
	return &doc
}

func deflate(t *testing.T, root *graph.Node, filter Filter) []byte {
	t.Helper()
	doc := domain.NewDocument()
	index, err := DeflateScene(root, doc, NewPathMap(), filter)
	require.NoError(t, err)
	doc.Scene = index
	out, err := json.Marshal(doc)
	require.NoError(t, err)
	return out
}

func findNode(root *graph.Node, name string) *graph.Node {
	for _, n := range Descendants(root) {
		if n.Name() == name {
			return n
		}
	}
	return nil
}
