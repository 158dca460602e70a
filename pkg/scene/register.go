package scene

import (
	"github.com/aretw0/voyager/pkg/graph"
)

// Node kinds.
const (
	// NodeKind is a plain hierarchy node: a transform plus optional attachments.
	NodeKind = "Node"
	// SceneKind is the root node of a document.
	SceneKind = "Scene"
)

// Register adds the scene components and node kinds to reg.
func Register(reg *graph.Registry) {
	reg.Register(KindScene, NewScene)
	reg.Register(KindMeta, NewMeta)
	reg.Register(KindSetup, NewSetup)
	reg.Register(KindModel, NewModel)
	reg.Register(KindCamera, NewCamera)
	reg.Register(KindLight, NewLight)

	reg.RegisterNode(NodeKind, withComponents(graph.KindTransform))
	reg.RegisterNode(SceneKind, withComponents(graph.KindTransform, KindScene, KindMeta, KindSetup))
}

func withComponents(kinds ...string) graph.NodeFactory {
	return func(node *graph.Node) error {
		for _, kind := range kinds {
			if _, err := node.CreateComponent(kind); err != nil {
				return err
			}
		}
		return nil
	}
}
