package scene

import (
	"fmt"
	"strings"

	"github.com/aretw0/voyager/pkg/graph"
)

// Walk visits n and every node below it in pre-order. depth is 0 for n.
func Walk(n *graph.Node, visit func(n *graph.Node, depth int)) {
	var walk func(n *graph.Node, depth int)
	walk = func(n *graph.Node, depth int) {
		visit(n, depth)
		if t := n.Transform(); t != nil {
			for _, c := range t.Children() {
				walk(c.Node(), depth+1)
			}
		}
	}
	walk(n, 0)
}

// Tree renders the hierarchy below n, one node per line with its component kinds.
func Tree(n *graph.Node) string {
	var b strings.Builder
	Walk(n, func(n *graph.Node, depth int) {
		kinds := make([]string, 0, len(n.Components()))
		for _, c := range n.Components() {
			kinds = append(kinds, c.Kind())
		}
		kind := n.Kind()
		if kind == "" {
			kind = "-"
		}
		fmt.Fprintf(&b, "%s%s %q [%s]\n", strings.Repeat("  ", depth), kind, n.Name(), strings.Join(kinds, " "))
	})
	return b.String()
}
