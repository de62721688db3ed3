package driving

import (
	"context"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// ConversionService converts a work's source document into markdown
// artifacts. Conversion is the only long-running operation in the core:
// it honours context cancellation and a configured timeout, and leaves
// no partial artifacts on either path.
type ConversionService interface {
	// Convert runs a conversion for the work and commits the resulting
	// artifact set atomically. Concurrent conversions or applies for
	// the same work are rejected with domain.ErrConversionInProgress.
	Convert(ctx context.Context, workID string, opts domain.ConvertOptions) (*domain.ConvertReport, error)
}
