package scene

import (
	"fmt"
	"slices"

	"github.com/aretw0/voyager/pkg/annotation"
	"github.com/aretw0/voyager/pkg/domain"
	"github.com/aretw0/voyager/pkg/graph"
)

// KindModel is the registry key of Model.
const KindModel = "Model"

// Derivative usages, qualities and asset types.
const (
	UsageWeb3D = "Web3D"

	QualityThumb   = "Thumb"
	QualityLow     = "Low"
	QualityMedium  = "Medium"
	QualityHigh    = "High"
	QualityHighest = "Highest"
	QualityAR      = "AR"

	AssetModel    = "Model"
	AssetGeometry = "Geometry"
	AssetImage    = "Image"

	MapColor     = "Color"
	MapOcclusion = "Occlusion"
	MapNormal    = "Normal"
)

// Qualities lists the derivative quality levels, lowest first.
var Qualities = []string{QualityThumb, QualityLow, QualityMedium, QualityHigh, QualityHighest, QualityAR}

// Model is a renderable model described by its derivatives, carrying annotations.
type Model struct {
	graph.ComponentBase

	Units *graph.Port

	derivatives []domain.Derivative
	annotations []*annotation.Annotation
}

// NewModel is the Factory for KindModel.
func NewModel(node *graph.Node, id string) (graph.Component, error) {
	m := &Model{}
	m.Init(node, id, KindModel)
	m.Units = m.AddInputs(graph.Enum("units", "Model.Units", Units, DefaultUnits)).Get("units")
	return m, nil
}

// Derivatives returns a copy of the derivative list.
func (m *Model) Derivatives() []domain.Derivative { return cloneDerivatives(m.derivatives) }

func (m *Model) AddDerivative(d domain.Derivative) {
	m.derivatives = append(m.derivatives, cloneDerivatives([]domain.Derivative{d})...)
}

// CreateModelAsset adds a web derivative made of a single model file. An empty quality
// means High.
func (m *Model) CreateModelAsset(uri, quality string) (domain.Derivative, error) {
	q, err := parseQuality(quality)
	if err != nil {
		return domain.Derivative{}, err
	}
	d := domain.Derivative{
		Usage:   UsageWeb3D,
		Quality: q,
		Assets:  []domain.DerivativeAsset{{URI: uri, Type: AssetModel}},
	}
	m.AddDerivative(d)
	return d, nil
}

// CreateMeshAsset adds a web derivative made of a geometry file and optional texture
// maps. Empty map paths are skipped.
func (m *Model) CreateMeshAsset(geometry, colorMap, occlusionMap, normalMap, quality string) (domain.Derivative, error) {
	q, err := parseQuality(quality)
	if err != nil {
		return domain.Derivative{}, err
	}
	d := domain.Derivative{
		Usage:   UsageWeb3D,
		Quality: q,
		Assets:  []domain.DerivativeAsset{{URI: geometry, Type: AssetGeometry}},
	}
	for _, tex := range []struct{ uri, mapType string }{
		{colorMap, MapColor},
		{occlusionMap, MapOcclusion},
		{normalMap, MapNormal},
	} {
		if tex.uri != "" {
			d.Assets = append(d.Assets, domain.DerivativeAsset{URI: tex.uri, Type: AssetImage, MapType: tex.mapType})
		}
	}
	m.AddDerivative(d)
	return d, nil
}

// Annotations returns the annotations in insertion order.
func (m *Model) Annotations() []*annotation.Annotation { return slices.Clone(m.annotations) }

func (m *Model) AddAnnotation(a *annotation.Annotation) {
	m.annotations = append(m.annotations, a)
}

// Annotation returns the annotation with the given id, or nil.
func (m *Model) Annotation(id string) *annotation.Annotation {
	for _, a := range m.annotations {
		if a.ID() == id {
			return a
		}
	}
	return nil
}

// RemoveAnnotation disposes and removes the annotation with the given id.
func (m *Model) RemoveAnnotation(id string) bool {
	a := m.Annotation(id)
	if a == nil {
		return false
	}
	m.annotations = slices.DeleteFunc(m.annotations, func(x *annotation.Annotation) bool { return x == a })
	a.Dispose()
	return true
}

func (m *Model) Dispose() {
	for _, a := range m.annotations {
		a.Dispose()
	}
	m.annotations = nil
}

func (m *Model) FromDocument(doc *domain.Document, index int, _ *PathMap) error {
	entry := doc.Models[index]
	if err := m.Units.SetValue(unitsOption(entry.Units)); err != nil {
		return err
	}
	m.derivatives = cloneDerivatives(entry.Derivatives)
	for _, a := range m.annotations {
		a.Dispose()
	}
	m.annotations = nil
	for _, j := range entry.Annotations {
		m.annotations = append(m.annotations, annotation.FromJSON(j))
	}
	return nil
}

func (m *Model) ToDocument(doc *domain.Document, _ *PathMap) int {
	entry := domain.Model{
		Units:       m.Units.Option(),
		Derivatives: cloneDerivatives(m.derivatives),
	}
	for _, a := range m.annotations {
		entry.Annotations = append(entry.Annotations, a.Deflate())
	}
	doc.Models = append(doc.Models, entry)
	return len(doc.Models) - 1
}

func parseQuality(q string) (string, error) {
	if q == "" {
		return QualityHigh, nil
	}
	if !slices.Contains(Qualities, q) {
		return "", fmt.Errorf("unknown derivative quality %q", q)
	}
	return q, nil
}

func cloneDerivatives(ds []domain.Derivative) []domain.Derivative {
	if len(ds) == 0 {
		return nil
	}
	out := make([]domain.Derivative, len(ds))
	for i, d := range ds {
		d.Assets = slices.Clone(d.Assets)
		out[i] = d
	}
	return out
}
