package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// Ensure SuggestionStore implements the interface.
var _ driven.SuggestionStore = (*SuggestionStore)(nil)

// SuggestionStore is an in-memory implementation of
// driven.SuggestionStore with optimistic concurrency.
type SuggestionStore struct {
	mu     sync.RWMutex
	tables map[string]*domain.SuggestionTable
}

// NewSuggestionStore creates a new in-memory suggestion store.
func NewSuggestionStore() *SuggestionStore {
	return &SuggestionStore{
		tables: make(map[string]*domain.SuggestionTable),
	}
}

// Get returns the work's current table.
func (s *SuggestionStore) Get(_ context.Context, workID string) (*domain.SuggestionTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	table, ok := s.tables[workID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return table.Clone(), nil
}

// Save writes the table if expectedVersion matches the stored version.
func (s *SuggestionStore) Save(_ context.Context, table *domain.SuggestionTable, expectedVersion int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current int64
	if existing, ok := s.tables[table.WorkID]; ok {
		current = existing.Version
	}
	if current != expectedVersion {
		return 0, domain.ErrVersionConflict
	}

	stored := table.Clone()
	stored.Version = expectedVersion + 1
	s.tables[table.WorkID] = stored
	return stored.Version, nil
}

// Delete removes the work's table.
func (s *SuggestionStore) Delete(_ context.Context, workID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, workID)
	return nil
}
