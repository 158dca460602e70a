package scene

import (
	"slices"

	"github.com/aretw0/voyager/pkg/domain"
	"github.com/aretw0/voyager/pkg/graph"
)

// KindLight is the registry key of Light.
const KindLight = "Light"

// LightTypes are the light type options.
var LightTypes = []string{"directional", "point", "spot", "ambient"}

// Light defaults.
var (
	DefaultLightColor     = []float64{1, 1, 1}
	DefaultLightIntensity = 1.0
)

// Light is a light source attached to a node, optionally aimed at another node.
type Light struct {
	graph.ComponentBase

	Type      *graph.Port
	Color     *graph.Port
	Intensity *graph.Port

	target *graph.Node
}

// NewLight is the Factory for KindLight.
func NewLight(node *graph.Node, id string) (graph.Component, error) {
	l := &Light{}
	l.Init(node, id, KindLight)
	ins := l.AddInputs(
		graph.Enum("type", "Light.Type", LightTypes, 0),
		graph.Vector("color", "Light.Color", DefaultLightColor...),
		graph.Number("intensity", "Light.Intensity", DefaultLightIntensity),
	)
	l.Type = ins.Get("type")
	l.Color = ins.Get("color")
	l.Intensity = ins.Get("intensity")
	return l, nil
}

// Target returns the node the light is aimed at, or nil.
func (l *Light) Target() *graph.Node {
	if l.target != nil && l.target.Disposed() {
		l.target = nil
	}
	return l.target
}

func (l *Light) SetTarget(n *graph.Node) { l.target = n }

func (l *Light) FromDocument(doc *domain.Document, index int, paths *PathMap) error {
	entry := doc.Lights[index]
	if err := l.Type.SetOption(entry.Type); err != nil {
		return err
	}
	color := DefaultLightColor
	if len(entry.Color) > 0 {
		color = entry.Color
	}
	if err := l.Color.SetValue(color); err != nil {
		return err
	}
	intensity := DefaultLightIntensity
	if entry.Intensity != nil {
		intensity = *entry.Intensity
	}
	if err := l.Intensity.SetValue(intensity); err != nil {
		return err
	}
	l.target = nil
	if entry.Target != nil {
		paths.referNode(*entry.Target, func(n *graph.Node) { l.target = n })
	}
	return nil
}

func (l *Light) ToDocument(doc *domain.Document, paths *PathMap) int {
	entry := domain.Light{
		Type:   l.Type.Option(),
		Target: paths.nodeIndex(l.Target()),
	}
	if c := l.Color.Vector(); !slices.Equal(c, DefaultLightColor) {
		entry.Color = c
	}
	if i := l.Intensity.Float(); i != DefaultLightIntensity {
		entry.Intensity = &i
	}
	doc.Lights = append(doc.Lights, entry)
	return len(doc.Lights) - 1
}
