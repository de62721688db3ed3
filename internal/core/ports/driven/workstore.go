package driven

import (
	"context"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// WorkStore persists works.
type WorkStore interface {
	// Save stores or updates a work.
	Save(ctx context.Context, work *domain.Work) error

	// Get retrieves a work by ID.
	// Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Work, error)

	// List returns all works ordered by creation time.
	List(ctx context.Context) ([]domain.Work, error)

	// Delete removes a work.
	Delete(ctx context.Context, id string) error
}
