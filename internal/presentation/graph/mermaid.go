package graph

import (
	"fmt"
	"strings"

	sg "github.com/aretw0/voyager/pkg/graph"
	"github.com/aretw0/voyager/pkg/scene"
)

// Overlay marks nodes to highlight on the diagram.
type Overlay struct {
	Selected []*sg.Node
}

// GenerateMermaid renders the hierarchy below root as a Mermaid flowchart. Shapes
// follow the node content:
//   - Scene root: ((Circle))
//   - Model: [[Subroutine]]
//   - Camera: [/Parallelogram/]
//   - Light: {{Hexagon}}
//   - Default: [Rectangle]
//
// Light targets and the navigation target are drawn as dotted edges.
func GenerateMermaid(root *sg.Node, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := map[*sg.Node]string{}
	var order []*sg.Node
	scene.Walk(root, func(n *sg.Node, _ int) {
		ids[n] = fmt.Sprintf("n%d", len(order))
		order = append(order, n)
	})

	for _, n := range order {
		opener, closer := "[", "]"
		switch {
		case n.Component(scene.KindScene) != nil:
			opener, closer = "((", "))"
		case n.Component(scene.KindModel) != nil:
			opener, closer = "[[", "]]"
		case n.Component(scene.KindCamera) != nil:
			opener, closer = "[/", "/]"
		case n.Component(scene.KindLight) != nil:
			opener, closer = "{{", "}}"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", ids[n], opener, label(n), closer)

		for _, c := range n.Transform().Children() {
			fmt.Fprintf(&sb, "    %s --> %s\n", ids[n], ids[c.Node()])
		}
		if l, ok := sg.ComponentOf[*scene.Light](n); ok {
			if id, ok := ids[l.Target()]; ok {
				fmt.Fprintf(&sb, "    %s -. target .-> %s\n", ids[n], id)
			}
		}
		if s, ok := sg.ComponentOf[*scene.Setup](n); ok {
			if id, ok := ids[s.NavigationTarget()]; ok {
				fmt.Fprintf(&sb, "    %s -. navigation .-> %s\n", ids[n], id)
			}
		}
	}

	if overlay != nil && len(overlay.Selected) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text for contrast on both light and dark themes.
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		seen := map[string]bool{}
		for _, n := range overlay.Selected {
			if id, ok := ids[n]; ok && !seen[id] {
				seen[id] = true
				fmt.Fprintf(&sb, "    class %s selected;\n", id)
			}
		}
	}

	return sb.String()
}

func label(n *sg.Node) string {
	name := n.Name()
	if name == "" {
		name = n.Kind()
	}
	return strings.ReplaceAll(name, "\"", "'")
}
