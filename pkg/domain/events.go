package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventComponentCreate  EventType = "component_create"
	EventComponentUpdate  EventType = "component_update"
	EventComponentDispose EventType = "component_dispose"
	EventDocumentOpen     EventType = "document_open"
	EventDocumentDeflate  EventType = "document_deflate"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ComponentEvent reports a component lifecycle step.
type ComponentEvent struct {
	EventBase
	ComponentID string `json:"component_id"`
	Kind        string `json:"kind"`
	NodeID      string `json:"node_id"`
}

// DocumentEvent reports a codec pass over a document.
type DocumentEvent struct {
	EventBase
	AssetPath string `json:"asset_path,omitempty"`
	Nodes     int    `json:"nodes"`
	Merged    bool   `json:"merged,omitempty"`
	Err       error  `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnComponentCreate  func(context.Context, *ComponentEvent)
	OnComponentUpdate  func(context.Context, *ComponentEvent)
	OnComponentDispose func(context.Context, *ComponentEvent)
	OnDocumentOpen     func(context.Context, *DocumentEvent)
	OnDocumentDeflate  func(context.Context, *DocumentEvent)
}

// NewComponentEvent stamps a component event with the current time.
func NewComponentEvent(typ EventType, id, kind, nodeID string) *ComponentEvent {
	return &ComponentEvent{
		EventBase:   EventBase{Timestamp: time.Now(), Type: typ},
		ComponentID: id,
		Kind:        kind,
		NodeID:      nodeID,
	}
}

// NewDocumentEvent stamps a document event with the current time.
func NewDocumentEvent(typ EventType, assetPath string, nodes int, err error) *DocumentEvent {
	return &DocumentEvent{
		EventBase: EventBase{Timestamp: time.Now(), Type: typ},
		AssetPath: assetPath,
		Nodes:     nodes,
		Err:       err,
	}
}

// MergeHooks fans every callback out to all given hook sets, in order.
func MergeHooks(hooks ...LifecycleHooks) LifecycleHooks {
	var merged LifecycleHooks
	for _, h := range hooks {
		h := h
		merged.OnComponentCreate = chainComponent(merged.OnComponentCreate, h.OnComponentCreate)
		merged.OnComponentUpdate = chainComponent(merged.OnComponentUpdate, h.OnComponentUpdate)
		merged.OnComponentDispose = chainComponent(merged.OnComponentDispose, h.OnComponentDispose)
		merged.OnDocumentOpen = chainDocument(merged.OnDocumentOpen, h.OnDocumentOpen)
		merged.OnDocumentDeflate = chainDocument(merged.OnDocumentDeflate, h.OnDocumentDeflate)
	}
	return merged
}

func chainComponent(a, b func(context.Context, *ComponentEvent)) func(context.Context, *ComponentEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *ComponentEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainDocument(a, b func(context.Context, *DocumentEvent)) func(context.Context, *DocumentEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *DocumentEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
