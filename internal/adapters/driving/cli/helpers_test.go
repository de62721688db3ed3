package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/services"
)

const testHier = `# Introduction

Opening paragraph.

## Background

Some context.

# Methods

Steps taken.
`

// setupTestServices wires real services over in-memory stores and
// injects them into the command tree. The returned work has a seeded
// hierarchical artifact so curation commands have material to work on.
func setupTestServices(t *testing.T) (workID string, cleanup func()) {
	t.Helper()

	workStore := memory.NewWorkStore()
	artifacts := memory.NewArtifactStore()
	suggestions := memory.NewSuggestionStore()
	chunks := memory.NewChunkStore()

	work := &domain.Work{
		ID:        "work-cli-1",
		Title:     "Annual Report",
		SourceURI: "/library/report.pdf",
		Stem:      "report",
	}
	require.NoError(t, workStore.Save(context.Background(), work))
	artifacts.Seed(work.ID, domain.ArtifactHier, []byte(testHier))

	curation := services.NewCurationService(workStore, artifacts, suggestions, chunks, nil)

	oldWork := workService
	oldInspection := inspectionService
	oldCuration := curationService
	workService = services.NewWorkService(workStore, artifacts, suggestions, chunks)
	inspectionService = services.NewInspectionService(workStore, artifacts)
	curationService = curation

	return work.ID, func() {
		workService = oldWork
		inspectionService = oldInspection
		curationService = oldCuration
	}
}
