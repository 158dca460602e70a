package http

import (
	"sync"
)

// Asset change operations.
const (
	OpPut    = "put"
	OpDelete = "delete"
)

// AssetEvent reports a change to a stored asset.
type AssetEvent struct {
	Op       string `json:"op"`
	Location string `json:"location"`
}

// StreamManager fans asset events out to subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan AssetEvent]struct{}
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan AssetEvent]struct{}),
	}
}

// Subscribe returns a buffered event channel and a function closing it.
func (sm *StreamManager) Subscribe() (<-chan AssetEvent, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan AssetEvent, 16)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

// Broadcast delivers event to every subscriber. Slow subscribers miss events rather
// than block writers.
func (sm *StreamManager) Broadcast(event AssetEvent) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	for ch := range sm.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
