package driving

import (
	"context"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// CurationService manages the suggestion table lifecycle:
// generate, edit, apply.
type CurationService interface {
	// Generate derives a fresh suggestion table from the work's
	// hierarchical artifact, superseding any prior table.
	// Returns domain.ErrDependencyMissing when hier.md is absent.
	Generate(ctx context.Context, workID string) (*domain.SuggestionTable, error)

	// Get returns the work's current suggestion table.
	Get(ctx context.Context, workID string) (*domain.SuggestionTable, error)

	// Update replaces the table with operator-supplied rows. The rows
	// are validated first; a malformed row rejects the whole edit.
	// expectedVersion must match the stored version or the update fails
	// with domain.ErrVersionConflict. Returns the new version.
	Update(ctx context.Context, workID string, rows []domain.SuggestionRow, expectedVersion int64) (int64, error)

	// Apply converts the rows marked Vectorize into chunks and
	// atomically replaces the work's chunk set. Re-applying an
	// unchanged table yields an identical chunk set.
	Apply(ctx context.Context, workID string) ([]domain.Chunk, error)
}
