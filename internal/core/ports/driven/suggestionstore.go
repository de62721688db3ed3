package driven

import (
	"context"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// SuggestionStore persists the editable suggestion table per work with
// optimistic concurrency control.
type SuggestionStore interface {
	// Get returns the work's current table.
	// Returns domain.ErrNotFound if no table has been generated.
	Get(ctx context.Context, workID string) (*domain.SuggestionTable, error)

	// Save writes the table if expectedVersion matches the stored
	// version (0 matches a missing table). On success the stored
	// version becomes expectedVersion+1 and is returned.
	// Returns domain.ErrVersionConflict on mismatch; the stored table
	// is left untouched.
	Save(ctx context.Context, table *domain.SuggestionTable, expectedVersion int64) (int64, error)

	// Delete removes the work's table.
	Delete(ctx context.Context, workID string) error
}
