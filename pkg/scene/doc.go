// Package scene provides the node content of a scene document and its codec.
//
// The components here (Scene, Meta, Setup, Model, Camera, Light) attach to nodes of a
// graph.Graph. InflateScene and InflateNodes build nodes from a domain.Document;
// DeflateScene walks the transform hierarchy below a scene node and appends entries
// to a domain.Document. Cross references between entries (light targets, navigation
// targets) are resolved through a PathMap scoped to a single pass.
package scene
