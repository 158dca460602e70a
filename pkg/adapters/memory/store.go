package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/voyager/pkg/domain"
)

// Store implements ports.AssetStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Put stores a copy of data.
func (s *Store) Put(ctx context.Context, location string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[location] = slices.Clone(data)
	return nil
}

// Get returns a copy of the stored payload so callers can't mutate the store.
func (s *Store) Get(ctx context.Context, location string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[location]
	if !ok {
		return nil, domain.ErrAssetNotFound
	}
	return slices.Clone(data), nil
}

// Delete removes the payload.
func (s *Store) Delete(ctx context.Context, location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, location)
	return nil
}

// List returns the stored locations under prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	locations := make([]string, 0, len(s.data))
	for location := range s.data {
		if strings.HasPrefix(location, prefix) {
			locations = append(locations, location)
		}
	}
	slices.Sort(locations)
	return locations, nil
}
