package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
)

// Ensure WorkService implements the interface.
var _ driving.WorkService = (*WorkService)(nil)

// WorkService manages works and their derived state.
type WorkService struct {
	workStore   driven.WorkStore
	artifacts   driven.ArtifactStore
	suggestions driven.SuggestionStore
	chunks      driven.ChunkStore
}

// NewWorkService creates a work service.
func NewWorkService(
	workStore driven.WorkStore,
	artifacts driven.ArtifactStore,
	suggestions driven.SuggestionStore,
	chunks driven.ChunkStore,
) *WorkService {
	return &WorkService{
		workStore:   workStore,
		artifacts:   artifacts,
		suggestions: suggestions,
		chunks:      chunks,
	}
}

// Ingest registers a new work for the document at sourceURI.
func (s *WorkService) Ingest(ctx context.Context, title, sourceURI string) (*domain.Work, error) {
	if sourceURI == "" {
		return nil, fmt.Errorf("%w: source URI is required", domain.ErrInvalidInput)
	}

	stem := strings.TrimSuffix(filepath.Base(sourceURI), filepath.Ext(sourceURI))
	if title == "" {
		title = stem
	}

	now := time.Now().UTC()
	work := &domain.Work{
		ID:        uuid.New().String(),
		Title:     title,
		SourceURI: sourceURI,
		Stem:      stem,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.workStore.Save(ctx, work); err != nil {
		return nil, fmt.Errorf("save work: %w", err)
	}
	return work, nil
}

// Get retrieves a work by ID.
func (s *WorkService) Get(ctx context.Context, id string) (*domain.Work, error) {
	return s.workStore.Get(ctx, id)
}

// List returns all works.
func (s *WorkService) List(ctx context.Context) ([]domain.Work, error) {
	return s.workStore.List(ctx)
}

// Delete removes the work together with its artifacts, suggestion
// table and chunks.
func (s *WorkService) Delete(ctx context.Context, id string) error {
	work, err := s.workStore.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get work: %w", err)
	}

	if err := s.artifacts.Remove(ctx, work); err != nil {
		return fmt.Errorf("remove artifacts: %w", err)
	}
	if err := s.suggestions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete suggestion table: %w", err)
	}
	if err := s.chunks.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete chunks: %w", err)
	}
	if err := s.workStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete work: %w", err)
	}
	return nil
}
