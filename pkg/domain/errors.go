package domain

import "errors"

// ErrSchemaInvalid is returned when a document fails schema validation.
// No graph mutation happens once this is returned.
var ErrSchemaInvalid = errors.New("document schema validation failed")

// ErrInvalidParent is returned when a parent node or merge target belongs to another graph.
var ErrInvalidParent = errors.New("invalid parent node")

// ErrEmptyDocument is returned when a document without content is serialized or appended to.
var ErrEmptyDocument = errors.New("empty document")

// ErrForwardRef is returned when a cross reference names a path that never gets registered
// during a single inflate or deflate pass.
var ErrForwardRef = errors.New("unresolved path reference")

// ErrLinkCycle is returned when a port link would close a propagation cycle.
var ErrLinkCycle = errors.New("port link would create a cycle")

// ErrPortKind is returned when a value or link does not match a port's kind.
var ErrPortKind = errors.New("port kind mismatch")

// ErrUnknownKind is returned when no factory is registered for a component or node kind.
var ErrUnknownKind = errors.New("unknown kind")

// ErrAssetNotFound is returned by asset stores when a location holds no payload.
var ErrAssetNotFound = errors.New("asset not found")

// ErrDisposed is returned when an operation targets a disposed node or component.
var ErrDisposed = errors.New("disposed")
