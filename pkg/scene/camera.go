package scene

import (
	"fmt"

	"github.com/aretw0/voyager/pkg/domain"
	"github.com/aretw0/voyager/pkg/graph"
)

// KindCamera is the registry key of Camera.
const KindCamera = "Camera"

// Projections are the camera projection options.
var Projections = []string{domain.CameraPerspective, domain.CameraOrthographic}

// Camera defaults. DefaultFieldOfView is 52 degrees in radians.
const (
	DefaultFieldOfView = 0.9075712110370514
	DefaultNear        = 0.1
	DefaultFar         = 1000
	DefaultSize        = 20
)

// Camera is a viewpoint attached to a node.
type Camera struct {
	graph.ComponentBase

	Projection  *graph.Port
	FieldOfView *graph.Port
	Near        *graph.Port
	Far         *graph.Port
	Size        *graph.Port
}

// NewCamera is the Factory for KindCamera.
func NewCamera(node *graph.Node, id string) (graph.Component, error) {
	c := &Camera{}
	c.Init(node, id, KindCamera)
	ins := c.AddInputs(
		graph.Enum("projection", "Camera.Projection", Projections, 0),
		graph.Number("yfov", "Camera.FieldOfView", DefaultFieldOfView),
		graph.Number("near", "Camera.Near", DefaultNear),
		graph.Number("far", "Camera.Far", DefaultFar),
		graph.Number("size", "Camera.Size", DefaultSize),
	)
	c.Projection = ins.Get("projection")
	c.FieldOfView = ins.Get("yfov")
	c.Near = ins.Get("near")
	c.Far = ins.Get("far")
	c.Size = ins.Get("size")
	return c, nil
}

func (c *Camera) FromDocument(doc *domain.Document, index int, _ *PathMap) error {
	entry := doc.Cameras[index]
	if err := c.Projection.SetOption(entry.Type); err != nil {
		return err
	}
	yfov, near, far, size := DefaultFieldOfView, DefaultNear, float64(DefaultFar), float64(DefaultSize)
	switch entry.Type {
	case domain.CameraPerspective:
		if p := entry.Perspective; p != nil {
			yfov, near = p.YFov, p.ZNear
			if p.ZFar > 0 {
				far = p.ZFar
			}
		}
	case domain.CameraOrthographic:
		if o := entry.Orthographic; o != nil {
			size, near, far = o.YMag, o.ZNear, o.ZFar
		}
	default:
		return fmt.Errorf("camera %d: unknown type %q", index, entry.Type)
	}
	for _, set := range []struct {
		port  *graph.Port
		value float64
	}{{c.FieldOfView, yfov}, {c.Near, near}, {c.Far, far}, {c.Size, size}} {
		if err := set.port.SetValue(set.value); err != nil {
			return err
		}
	}
	return nil
}

func (c *Camera) ToDocument(doc *domain.Document, _ *PathMap) int {
	entry := domain.Camera{Type: c.Projection.Option()}
	if entry.Type == domain.CameraOrthographic {
		entry.Orthographic = &domain.Orthographic{
			XMag:  c.Size.Float(),
			YMag:  c.Size.Float(),
			ZNear: c.Near.Float(),
			ZFar:  c.Far.Float(),
		}
	} else {
		entry.Perspective = &domain.Perspective{
			YFov:  c.FieldOfView.Float(),
			ZNear: c.Near.Float(),
			ZFar:  c.Far.Float(),
		}
	}
	doc.Cameras = append(doc.Cameras, entry)
	return len(doc.Cameras) - 1
}
