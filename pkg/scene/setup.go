package scene

import (
	"slices"

	"github.com/aretw0/voyager/pkg/domain"
	"github.com/aretw0/voyager/pkg/graph"
)

// KindSetup is the registry key of Setup.
const KindSetup = "Setup"

// DefaultBackground is the background color written when none is stored.
var DefaultBackground = []float64{0, 0, 0}

// Setup holds scene-wide viewer settings.
type Setup struct {
	graph.ComponentBase

	Units      *graph.Port
	Background *graph.Port

	target *graph.Node
}

// NewSetup is the Factory for KindSetup.
func NewSetup(node *graph.Node, id string) (graph.Component, error) {
	s := &Setup{}
	s.Init(node, id, KindSetup)
	ins := s.AddInputs(
		graph.Enum("units", "Setup.Units", Units, DefaultUnits),
		graph.Vector("background", "Setup.Background", DefaultBackground...),
	)
	s.Units = ins.Get("units")
	s.Background = ins.Get("background")
	return s, nil
}

// NavigationTarget returns the node the viewer orbits around, or nil.
func (s *Setup) NavigationTarget() *graph.Node {
	if s.target != nil && s.target.Disposed() {
		s.target = nil
	}
	return s.target
}

func (s *Setup) SetNavigationTarget(n *graph.Node) { s.target = n }

// Reset restores default units and background and drops the navigation target.
func (s *Setup) Reset() error {
	s.target = nil
	if err := s.Units.SetValue(DefaultUnits); err != nil {
		return err
	}
	return s.Background.SetValue(DefaultBackground)
}

// FromDocument reads the setup entry at index. The navigation target resolves once the
// pass has built every node.
func (s *Setup) FromDocument(doc *domain.Document, index int, paths *PathMap) error {
	entry := doc.Setups[index]
	if err := s.Units.SetValue(unitsOption(entry.Units)); err != nil {
		return err
	}
	bg := DefaultBackground
	if entry.Background != nil && len(entry.Background.Color) > 0 {
		bg = entry.Background.Color
	}
	if err := s.Background.SetValue(bg); err != nil {
		return err
	}
	s.target = nil
	if entry.Navigation != nil && entry.Navigation.Target != nil {
		paths.referNode(*entry.Navigation.Target, func(n *graph.Node) { s.target = n })
	}
	return nil
}

func (s *Setup) ToDocument(doc *domain.Document, paths *PathMap) int {
	entry := domain.Setup{Units: s.Units.Option()}
	if bg := s.Background.Vector(); !slices.Equal(bg, DefaultBackground) {
		entry.Background = &domain.Background{Color: bg}
	}
	if i := paths.nodeIndex(s.NavigationTarget()); i != nil {
		entry.Navigation = &domain.Navigation{Target: i}
	}
	doc.Setups = append(doc.Setups, entry)
	return len(doc.Setups) - 1
}
