package driven

import (
	"context"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// ArtifactStore holds the derived files for each work under a
// work-scoped, flat namespace of logical names.
//
// Write is transactional across all named artifacts: either every
// artifact becomes visible or none does. Inspection therefore never
// observes a partial artifact set.
type ArtifactStore interface {
	// Exists reports whether the artifact is present as a regular file.
	// A missing work directory is equivalent to zero files present,
	// never an error.
	Exists(ctx context.Context, work *domain.Work, name domain.ArtifactName) (bool, error)

	// Read returns the artifact's content.
	// Returns domain.ErrNotFound if the artifact is absent.
	Read(ctx context.Context, work *domain.Work, name domain.ArtifactName) ([]byte, error)

	// Write stores all given artifacts atomically, overwriting any
	// previous content under the same names.
	Write(ctx context.Context, work *domain.Work, artifacts map[domain.ArtifactName][]byte) error

	// List returns metadata for every artifact present for the work.
	List(ctx context.Context, work *domain.Work) ([]domain.Artifact, error)

	// Remove deletes all artifacts for the work.
	Remove(ctx context.Context, work *domain.Work) error

	// Dir returns the work's output directory path, or "" when the
	// store is not filesystem-backed.
	Dir(work *domain.Work) string
}
