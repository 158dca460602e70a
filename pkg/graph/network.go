package graph

import (
	"slices"

	"github.com/aretw0/voyager/pkg/domain"
)

// Network is the arena holding every port of a System and the links between them.
// Links are directed edges between port indices; an index is never reused after its
// port is released.
type Network struct {
	ports   []*Port
	source  map[PortID]PortID
	targets map[PortID][]PortID
	live    int
}

// NewNetwork creates an empty port arena.
func NewNetwork() *Network {
	return &Network{
		source:  make(map[PortID]PortID),
		targets: make(map[PortID][]PortID),
	}
}

// Len returns the number of live ports.
func (n *Network) Len() int { return n.live }

// Links returns the number of links.
func (n *Network) Links() int { return len(n.source) }

// Port returns the live port at id, or nil.
func (n *Network) Port(id PortID) *Port {
	if id < 0 || int(id) >= len(n.ports) {
		return nil
	}
	return n.ports[id]
}

func (n *Network) add(p *Port) {
	p.id = PortID(len(n.ports))
	p.net = n
	n.ports = append(n.ports, p)
	n.live++
}

// release drops every link touching id and frees the slot.
func (n *Network) release(id PortID) {
	p := n.Port(id)
	if p == nil {
		return
	}
	n.unlink(id)
	for _, t := range n.targets[id] {
		delete(n.source, t)
	}
	delete(n.targets, id)
	n.ports[id] = nil
	p.net = nil
	n.live--
}

func (n *Network) link(src, dst PortID) error {
	if src == dst || n.reaches(dst, src) {
		return domain.ErrLinkCycle
	}
	n.unlink(dst)
	n.source[dst] = src
	n.targets[src] = append(n.targets[src], dst)
	return nil
}

func (n *Network) unlink(dst PortID) {
	src, ok := n.source[dst]
	if !ok {
		return
	}
	delete(n.source, dst)
	n.targets[src] = slices.DeleteFunc(n.targets[src], func(id PortID) bool { return id == dst })
	if len(n.targets[src]) == 0 {
		delete(n.targets, src)
	}
}

// reaches reports whether a value pushed into from would arrive at to.
func (n *Network) reaches(from, to PortID) bool {
	stack := []PortID{from}
	seen := map[PortID]bool{from: true}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == to {
			return true
		}
		for _, next := range n.targets[cur] {
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

func (n *Network) sourceOf(id PortID) *Port {
	src, ok := n.source[id]
	if !ok {
		return nil
	}
	return n.Port(src)
}

func (n *Network) targetsOf(id PortID) []*Port {
	ids := n.targets[id]
	out := make([]*Port, 0, len(ids))
	for _, t := range ids {
		if p := n.Port(t); p != nil {
			out = append(out, p)
		}
	}
	return out
}
