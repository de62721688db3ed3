package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
	"github.com/custodia-labs/folio-cli/internal/logger"
	"github.com/custodia-labs/folio-cli/internal/outline"
)

// Ensure CurationService implements the interface.
var _ driving.CurationService = (*CurationService)(nil)

// DefaultVectorizeDepth is the deepest heading level that defaults to
// Vectorize true when a table is generated.
const DefaultVectorizeDepth = 3

// chunkNamespace seeds deterministic chunk IDs. Re-applying an
// unchanged table must reproduce the identical chunk set, so IDs are
// uuid v5 over the chunk's identity rather than random.
var chunkNamespace = uuid.MustParse("8a90c1f4-3a3e-5cf1-90d9-7f29d6a1b0e3")

// CurationService manages the suggestion-table lifecycle.
type CurationService struct {
	workStore   driven.WorkStore
	artifacts   driven.ArtifactStore
	suggestions driven.SuggestionStore
	chunks      driven.ChunkStore

	// locks is shared with the conversion service: apply and convert
	// are mutually exclusive within one work.
	locks *workLocks

	vectorizeDepth int
}

// CurationOption configures the curation service.
type CurationOption func(*CurationService)

// WithVectorizeDepth sets the deepest heading level that defaults to
// Vectorize true on generate.
func WithVectorizeDepth(depth int) CurationOption {
	return func(s *CurationService) {
		if depth > 0 {
			s.vectorizeDepth = depth
		}
	}
}

// NewCurationService creates a curation service. locks should be the
// conversion service's lock set so apply excludes concurrent
// conversion; passing nil creates an independent set.
func NewCurationService(
	workStore driven.WorkStore,
	artifacts driven.ArtifactStore,
	suggestions driven.SuggestionStore,
	chunks driven.ChunkStore,
	locks *workLocks,
	opts ...CurationOption,
) *CurationService {
	if locks == nil {
		locks = newWorkLocks()
	}
	s := &CurationService{
		workStore:      workStore,
		artifacts:      artifacts,
		suggestions:    suggestions,
		chunks:         chunks,
		locks:          locks,
		vectorizeDepth: DefaultVectorizeDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate derives a fresh suggestion table from the hierarchical
// artifact, superseding any prior table. The version counter carries on
// from the superseded table so editors holding stale versions conflict.
func (s *CurationService) Generate(ctx context.Context, workID string) (*domain.SuggestionTable, error) {
	work, err := s.workStore.Get(ctx, workID)
	if err != nil {
		return nil, fmt.Errorf("get work: %w", err)
	}

	hier, err := s.artifacts.Read(ctx, work, domain.ArtifactHier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s (re-run conversion with the hierarchical pipeline)", domain.ErrDependencyMissing, domain.ArtifactHier)
		}
		return nil, fmt.Errorf("reading hierarchical artifact: %w", err)
	}

	now := time.Now().UTC()
	table := &domain.SuggestionTable{
		WorkID:      workID,
		Rows:        outline.Rows(string(hier), s.vectorizeDepth),
		GeneratedAt: now,
		UpdatedAt:   now,
	}

	var current int64
	if existing, err := s.suggestions.Get(ctx, workID); err == nil {
		current = existing.Version
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get suggestion table: %w", err)
	}

	version, err := s.suggestions.Save(ctx, table, current)
	if err != nil {
		return nil, fmt.Errorf("save suggestion table: %w", err)
	}
	table.Version = version

	logger.Info("generated %d suggestion rows for %s", len(table.Rows), workID)
	return table, nil
}

// Get returns the work's current suggestion table.
func (s *CurationService) Get(ctx context.Context, workID string) (*domain.SuggestionTable, error) {
	if _, err := s.workStore.Get(ctx, workID); err != nil {
		return nil, fmt.Errorf("get work: %w", err)
	}
	return s.suggestions.Get(ctx, workID)
}

// Update replaces the table with operator-supplied rows. Validation
// failures reject the whole edit; a stale expectedVersion fails with
// domain.ErrVersionConflict and must be resolved by the caller.
func (s *CurationService) Update(ctx context.Context, workID string, rows []domain.SuggestionRow, expectedVersion int64) (int64, error) {
	current, err := s.suggestions.Get(ctx, workID)
	if err != nil {
		return 0, fmt.Errorf("get suggestion table: %w", err)
	}

	table := &domain.SuggestionTable{
		WorkID:      workID,
		Rows:        rows,
		GeneratedAt: current.GeneratedAt,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := table.Validate(); err != nil {
		return 0, err
	}

	version, err := s.suggestions.Save(ctx, table, expectedVersion)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// Apply converts the rows marked Vectorize into chunks and atomically
// replaces the work's chunk set. Idempotent: an unchanged table yields
// a byte-identical set. All rows false yields an empty set, replacing
// any prior chunks.
func (s *CurationService) Apply(ctx context.Context, workID string) ([]domain.Chunk, error) {
	work, err := s.workStore.Get(ctx, workID)
	if err != nil {
		return nil, fmt.Errorf("get work: %w", err)
	}

	if !s.locks.TryAcquire(workID) {
		return nil, fmt.Errorf("%w: work %s", domain.ErrConversionInProgress, workID)
	}
	defer s.locks.Release(workID)

	table, err := s.suggestions.Get(ctx, workID)
	if err != nil {
		return nil, fmt.Errorf("get suggestion table: %w", err)
	}

	hier, err := s.artifacts.Read(ctx, work, domain.ArtifactHier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDependencyMissing, domain.ArtifactHier)
		}
		return nil, fmt.Errorf("reading hierarchical artifact: %w", err)
	}

	chunks := buildChunks(workID, string(hier), table.Rows)
	if err := s.chunks.Replace(ctx, workID, chunks); err != nil {
		return nil, fmt.Errorf("replacing chunk set: %w", err)
	}

	logger.Info("applied suggestion table v%d for %s: %d chunks", table.Version, workID, len(chunks))
	return chunks, nil
}

// buildChunks materialises the Vectorize rows into chunks. The chunk
// set is exactly the set implied by the rows marked true: positions,
// content and IDs are all derived from the table and the hierarchical
// content, nothing else.
func buildChunks(workID, hier string, rows []domain.SuggestionRow) []domain.Chunk {
	paths := outline.HeadingPaths(rows)

	chunks := make([]domain.Chunk, 0, len(rows))
	position := 0
	for i, row := range rows {
		if !row.Vectorize {
			continue
		}
		content := outline.ExtractSpan(hier, row.Span)
		identity := fmt.Sprintf("%s|%d|%d|%d|%s", workID, position, row.Span.StartLine, row.Span.EndLine, content)
		chunks = append(chunks, domain.Chunk{
			ID:          uuid.NewSHA1(chunkNamespace, []byte(identity)).String(),
			WorkID:      workID,
			Position:    position,
			Content:     content,
			HeadingPath: paths[i],
			StartLine:   row.Span.StartLine,
			EndLine:     row.Span.EndLine,
		})
		position++
	}
	return chunks
}
