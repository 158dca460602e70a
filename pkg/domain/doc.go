/*
Package domain contains the core data contracts of the Voyager document engine.

It defines the versioned wire format of a scene document (a glTF-style tree of scenes,
nodes and attached component entries), the wire format of document records such as
annotations, the sentinel errors shared by every layer, and the lifecycle hooks used for
observability. The package is pure: no I/O, no graph state.

# Key Entities

  - Document: the serialized form of a scene document (asset stamp, scenes, nodes, ...).
  - Annotation: the serialized form of an annotation record attached to a model.
  - LifecycleHooks: callbacks fired by the graph system and the document codec.
*/
package domain
