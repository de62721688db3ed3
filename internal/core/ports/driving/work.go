package driving

import (
	"context"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// WorkService manages works.
type WorkService interface {
	// Ingest registers a new work for the source document at sourceURI.
	// Title defaults to the filename stem when empty.
	Ingest(ctx context.Context, title, sourceURI string) (*domain.Work, error)

	// Get retrieves a work by ID.
	Get(ctx context.Context, id string) (*domain.Work, error)

	// List returns all works.
	List(ctx context.Context) ([]domain.Work, error)

	// Delete removes a work together with its artifacts, suggestion
	// table and chunks.
	Delete(ctx context.Context, id string) error
}
