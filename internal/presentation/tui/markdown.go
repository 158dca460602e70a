package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/voyager/pkg/document"
	"github.com/aretw0/voyager/pkg/graph"
	"github.com/aretw0/voyager/pkg/scene"
)

// DocumentMarkdown summarizes doc as markdown: a heading, a property table and the
// node tree.
func DocumentMarkdown(doc *document.Document) string {
	var sb strings.Builder

	title := doc.Title()
	if title == "" {
		title = doc.Name()
	}
	if title == "" {
		title = "Untitled document"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)

	nodes := scene.Descendants(doc.Root())
	var models, annotations, cameras, lights int
	for _, n := range nodes {
		if m, ok := graph.ComponentOf[*scene.Model](n); ok {
			models++
			annotations += len(m.Annotations())
		}
		if n.Component(scene.KindCamera) != nil {
			cameras++
		}
		if n.Component(scene.KindLight) != nil {
			lights++
		}
	}

	units := ""
	if s, ok := graph.ComponentOf[*scene.Scene](doc.Root()); ok {
		units = s.Units.Option()
	}

	sb.WriteString("| Property | Value |\n|---|---|\n")
	for _, row := range [][2]string{
		{"Asset path", doc.AssetPath()},
		{"Units", units},
		{"Nodes", fmt.Sprint(len(nodes))},
		{"Models", fmt.Sprint(models)},
		{"Annotations", fmt.Sprint(annotations)},
		{"Cameras", fmt.Sprint(cameras)},
		{"Lights", fmt.Sprint(lights)},
	} {
		if row[1] == "" {
			row[1] = "-"
		}
		fmt.Fprintf(&sb, "| %s | %s |\n", row[0], row[1])
	}

	sb.WriteString("\n## Nodes\n\n```\n")
	sb.WriteString(scene.Tree(doc.Root()))
	sb.WriteString("```\n")
	return sb.String()
}
