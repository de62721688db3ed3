package driven

import (
	"context"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// ChunkStore persists finalised chunks per work.
type ChunkStore interface {
	// Replace atomically replaces the work's entire chunk set.
	// Chunks from prior applies never survive a successful Replace;
	// on failure the prior set remains intact. An empty slice replaces
	// any prior set with nothing.
	Replace(ctx context.Context, workID string, chunks []domain.Chunk) error

	// Get returns the work's chunks ordered by position.
	Get(ctx context.Context, workID string) ([]domain.Chunk, error)

	// Delete removes all chunks for a work.
	Delete(ctx context.Context, workID string) error
}
