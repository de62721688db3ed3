package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// Ensure WorkStore implements the interface.
var _ driven.WorkStore = (*WorkStore)(nil)

// WorkStore is an in-memory implementation of driven.WorkStore.
type WorkStore struct {
	mu    sync.RWMutex
	works map[string]domain.Work
}

// NewWorkStore creates a new in-memory work store.
func NewWorkStore() *WorkStore {
	return &WorkStore{
		works: make(map[string]domain.Work),
	}
}

// Save stores or updates a work.
func (s *WorkStore) Save(_ context.Context, work *domain.Work) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.works[work.ID] = *work
	return nil
}

// Get retrieves a work by ID.
func (s *WorkStore) Get(_ context.Context, id string) (*domain.Work, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	work, ok := s.works[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &work, nil
}

// List returns all works ordered by creation time.
func (s *WorkStore) List(_ context.Context) ([]domain.Work, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Work, 0, len(s.works))
	for id := range s.works {
		result = append(result, s.works[id])
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// Delete removes a work.
func (s *WorkStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.works, id)
	return nil
}
