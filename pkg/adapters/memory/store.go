package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/kefschema/pkg/domain"
)

// Store implements ports.DefinitionStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.ActionDefinition
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.ActionDefinition),
	}
}

// Save keeps a deep copy of the definition.
func (s *Store) Save(ctx context.Context, def domain.ActionDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[def.Name] = def.Clone()
	return nil
}

// Load retrieves a definition from memory.
func (s *Store) Load(ctx context.Context, name string) (domain.ActionDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.data[name]
	if !ok {
		return domain.ActionDefinition{}, &domain.NotFoundError{Action: name}
	}
	return def.Clone(), nil
}

// Delete removes a definition from memory.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns all stored action names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
