package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/voyager/pkg/document"
	"github.com/aretw0/voyager/pkg/domain"
	"github.com/aretw0/voyager/pkg/graph"
	"github.com/aretw0/voyager/pkg/scene"
)

const bust = `{
  "asset": {"type": "application/si-dpo-3d.document+json", "version": "1.0"},
  "scene": 0,
  "scenes": [{"name": "Main", "units": "mm", "nodes": [0, 1], "meta": 0}],
  "nodes": [{"name": "Bust", "model": 0}, {"name": "Key", "light": 0}],
  "lights": [{"type": "point"}],
  "models": [{"units": "mm", "annotations": [
    {"id": "a", "position": [0, 0, 0], "direction": [0, 1, 0]},
    {"id": "b", "position": [1, 0, 0], "direction": [0, 1, 0]}]}],
  "metas": [{"collection": {"title": "Bronze Bust"}}]
}`

func TestDocumentMarkdown(t *testing.T) {
	reg := graph.NewRegistry()
	scene.Register(reg)
	document.Register(reg, document.Deps{})
	sys := graph.NewSystem(reg)
	c, err := sys.Graph().CreateNode("doc").CreateComponent(document.KindDocument)
	require.NoError(t, err)
	doc := c.(*document.Document)

	var data domain.Document
	require.NoError(t, json.Unmarshal([]byte(bust), &data))
	require.NoError(t, doc.Open(context.Background(), &data, "busts/bronze.svx.json"))
	sys.Tick(context.Background())

	md := DocumentMarkdown(doc)
	assert.Contains(t, md, "# Bronze Bust\n")
	assert.Contains(t, md, "| Asset path | busts/bronze.svx.json |")
	assert.Contains(t, md, "| Units | mm |")
	assert.Contains(t, md, "| Nodes | 2 |")
	assert.Contains(t, md, "| Annotations | 2 |")
	assert.Contains(t, md, "| Cameras | 0 |")
	assert.Contains(t, md, `Node "Key" [Transform Light]`)

	render, err := NewRenderer(80)
	require.NoError(t, err)
	out, err := render(md)
	require.NoError(t, err)
	assert.Contains(t, out, "Bronze Bust")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), `\ V /`)
}
