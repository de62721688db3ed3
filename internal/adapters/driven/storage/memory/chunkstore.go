package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is an in-memory implementation of driven.ChunkStore.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks map[string][]domain.Chunk
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[string][]domain.Chunk),
	}
}

// Replace atomically replaces the work's entire chunk set.
func (s *ChunkStore) Replace(_ context.Context, workID string, chunks []domain.Chunk) error {
	cp := make([]domain.Chunk, len(chunks))
	copy(cp, chunks)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks[workID] = cp
	return nil
}

// Get returns the work's chunks ordered by position.
func (s *ChunkStore) Get(_ context.Context, workID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chunks := s.chunks[workID]
	out := make([]domain.Chunk, len(chunks))
	copy(out, chunks)
	return out, nil
}

// Delete removes all chunks for a work.
func (s *ChunkStore) Delete(_ context.Context, workID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chunks, workID)
	return nil
}
