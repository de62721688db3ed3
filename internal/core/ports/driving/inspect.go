package driving

import (
	"context"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// InspectionService evaluates the static check registry against the
// live artifact set of a work. Inspection is side-effect free and never
// caches: artifacts can change between converter runs.
type InspectionService interface {
	// Inspect evaluates every registered check in registration order.
	// Missing artifacts are data, not errors: with nothing present all
	// checks report unavailable.
	Inspect(ctx context.Context, workID string) ([]domain.InspectionResult, error)

	// Watch re-runs inspection whenever the work's artifact directory
	// changes, invoking fn with each new result set (including one
	// initial evaluation). Blocks until ctx is cancelled.
	Watch(ctx context.Context, workID string, fn func([]domain.InspectionResult)) error
}
