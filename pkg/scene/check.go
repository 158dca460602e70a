package scene

import (
	"fmt"
	"slices"

	"github.com/aretw0/voyager/pkg/domain"
)

// CheckReferences verifies that every index in doc points at an existing entry and
// that the node hierarchy of the active scene is a tree. It complements schema
// validation, which cannot see across arrays.
func CheckReferences(doc *domain.Document) error {
	if doc.Scene < 0 || doc.Scene >= len(doc.Scenes) {
		return invalid("scene index %d out of range", doc.Scene)
	}
	nodes := len(doc.Nodes)
	for i, s := range doc.Scenes {
		if err := inRange(s.Nodes, nodes, "scene %d node", i); err != nil {
			return err
		}
		if err := optInRange(s.Meta, len(doc.Metas), "scene %d meta", i); err != nil {
			return err
		}
		if err := optInRange(s.Setup, len(doc.Setups), "scene %d setup", i); err != nil {
			return err
		}
	}
	for i, n := range doc.Nodes {
		if err := inRange(n.Children, nodes, "node %d child", i); err != nil {
			return err
		}
		for _, ref := range []struct {
			index *int
			size  int
			what  string
		}{
			{n.Camera, len(doc.Cameras), "camera"},
			{n.Light, len(doc.Lights), "light"},
			{n.Model, len(doc.Models), "model"},
			{n.Meta, len(doc.Metas), "meta"},
		} {
			if err := optInRange(ref.index, ref.size, "node %d "+ref.what, i); err != nil {
				return err
			}
		}
	}
	for i, l := range doc.Lights {
		if err := optInRange(l.Target, nodes, "light %d target", i); err != nil {
			return err
		}
	}
	for i, s := range doc.Setups {
		if s.Navigation != nil {
			if err := optInRange(s.Navigation.Target, nodes, "setup %d navigation target", i); err != nil {
				return err
			}
		}
	}

	seen := make(map[int]bool)
	var walk func(i int) error
	walk = func(i int) error {
		if seen[i] {
			return invalid("node %d is reachable more than once", i)
		}
		seen[i] = true
		for _, c := range doc.Nodes[i].Children {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	for _, i := range doc.Scenes[doc.Scene].Nodes {
		if err := walk(i); err != nil {
			return err
		}
	}
	return nil
}

// CheckTargets verifies that every light target and, when setup is set, the navigation
// target of that setup entry, name nodes reachable from roots. Those are the only nodes
// an inflate starting at roots creates, so any other target could never resolve.
// doc must have passed CheckReferences.
func CheckTargets(doc *domain.Document, roots []int, setup *int) error {
	reachable := make(map[int]bool)
	stack := slices.Clone(roots)
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reachable[i] {
			continue
		}
		reachable[i] = true
		stack = append(stack, doc.Nodes[i].Children...)
	}

	order := make([]int, 0, len(reachable))
	for i := range reachable {
		order = append(order, i)
	}
	slices.Sort(order)
	for _, i := range order {
		light := doc.Nodes[i].Light
		if light == nil {
			continue
		}
		if t := doc.Lights[*light].Target; t != nil && !reachable[*t] {
			return fmt.Errorf("%w: light of node %d targets node %d outside the scene", domain.ErrForwardRef, i, *t)
		}
	}
	if setup != nil {
		if nav := doc.Setups[*setup].Navigation; nav != nil && nav.Target != nil && !reachable[*nav.Target] {
			return fmt.Errorf("%w: navigation targets node %d outside the scene", domain.ErrForwardRef, *nav.Target)
		}
	}
	return nil
}

func inRange(indices []int, size int, format string, args ...any) error {
	for _, i := range indices {
		if i < 0 || i >= size {
			return invalid(format+" index %d out of range", append(args, i)...)
		}
	}
	return nil
}

func optInRange(index *int, size int, format string, args ...any) error {
	if index == nil {
		return nil
	}
	return inRange([]int{*index}, size, format, args...)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrSchemaInvalid, fmt.Sprintf(format, args...))
}
