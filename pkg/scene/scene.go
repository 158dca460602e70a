package scene

import (
	"github.com/aretw0/voyager/pkg/domain"
	"github.com/aretw0/voyager/pkg/graph"
)

// KindScene is the registry key of Scene.
const KindScene = "Scene"

// Scene marks the root node of a document and carries scene-wide settings.
type Scene struct {
	graph.ComponentBase

	Units *graph.Port
}

// NewScene is the Factory for KindScene.
func NewScene(node *graph.Node, id string) (graph.Component, error) {
	s := &Scene{}
	s.Init(node, id, KindScene)
	s.Units = s.AddInputs(graph.Enum("units", "Scene.Units", Units, DefaultUnits)).Get("units")
	return s, nil
}

// FromDocument reads the scene entry at index. Node lists are handled by InflateScene.
func (s *Scene) FromDocument(doc *domain.Document, index int, _ *PathMap) error {
	entry := doc.Scenes[index]
	s.Node().SetName(entry.Name)
	return s.Units.SetValue(unitsOption(entry.Units))
}

// Reset restores the unnamed default scene.
func (s *Scene) Reset() error {
	s.Node().SetName("")
	return s.Units.SetValue(DefaultUnits)
}

// ResetScene restores the scene settings, meta and setup of root to their defaults.
// Child nodes are left alone.
func ResetScene(root *graph.Node) error {
	if sc, ok := graph.ComponentOf[*Scene](root); ok {
		if err := sc.Reset(); err != nil {
			return err
		}
	}
	if m, ok := graph.ComponentOf[*Meta](root); ok {
		m.Reset()
	}
	if s, ok := graph.ComponentOf[*Setup](root); ok {
		if err := s.Reset(); err != nil {
			return err
		}
	}
	return nil
}

// ToDocument appends a scene entry without nodes and returns its index.
func (s *Scene) ToDocument(doc *domain.Document, _ *PathMap) int {
	doc.Scenes = append(doc.Scenes, domain.Scene{
		Name:  s.Node().Name(),
		Units: s.Units.Option(),
	})
	return len(doc.Scenes) - 1
}
