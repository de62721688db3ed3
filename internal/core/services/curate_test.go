package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

const hierSample = `# Introduction
Opening paragraph.

## Background
Some context.

## Methods
### Sampling
Detail lines.

# Results
Closing text.`

type curateFixture struct {
	svc         *CurationService
	artifacts   *memory.ArtifactStore
	suggestions *memory.SuggestionStore
	chunks      *memory.ChunkStore
}

func newCurateFixture(t *testing.T) *curateFixture {
	t.Helper()
	workStore := memory.NewWorkStore()
	artifacts := memory.NewArtifactStore()
	suggestions := memory.NewSuggestionStore()
	chunks := memory.NewChunkStore()
	require.NoError(t, workStore.Save(context.Background(), &domain.Work{ID: "work-1", Stem: "report"}))
	return &curateFixture{
		svc:         NewCurationService(workStore, artifacts, suggestions, chunks, nil),
		artifacts:   artifacts,
		suggestions: suggestions,
		chunks:      chunks,
	}
}

func (f *curateFixture) seedHier() {
	f.artifacts.Seed("work-1", domain.ArtifactHier, []byte(hierSample))
}

func TestGenerate_RequiresHierArtifact(t *testing.T) {
	f := newCurateFixture(t)

	_, err := f.svc.Generate(context.Background(), "work-1")
	assert.ErrorIs(t, err, domain.ErrDependencyMissing)
}

func TestGenerate_ProducesOrderedRows(t *testing.T) {
	f := newCurateFixture(t)
	f.seedHier()

	table, err := f.svc.Generate(context.Background(), "work-1")
	require.NoError(t, err)
	require.Len(t, table.Rows, 5)
	assert.Equal(t, int64(1), table.Version)

	for i, row := range table.Rows {
		assert.Equal(t, i, row.Index)
	}
	assert.Equal(t, "Introduction", table.Rows[0].Heading)
	assert.Equal(t, "Sampling", table.Rows[3].Heading)

	// Default decision: levels within the depth threshold vectorize.
	assert.True(t, table.Rows[0].Vectorize)
	assert.True(t, table.Rows[3].Vectorize) // level 3, default depth 3
}

func TestGenerate_OverwritesPriorTable(t *testing.T) {
	f := newCurateFixture(t)
	f.seedHier()
	ctx := context.Background()

	first, err := f.svc.Generate(ctx, "work-1")
	require.NoError(t, err)

	second, err := f.svc.Generate(ctx, "work-1")
	require.NoError(t, err)

	// The version keeps climbing so editors holding the first table's
	// version conflict rather than silently matching.
	assert.Greater(t, second.Version, first.Version)

	got, err := f.svc.Get(ctx, "work-1")
	require.NoError(t, err)
	assert.Equal(t, second.Version, got.Version)
}

func TestUpdate_RoundTrip(t *testing.T) {
	f := newCurateFixture(t)
	f.seedHier()
	ctx := context.Background()

	table, err := f.svc.Generate(ctx, "work-1")
	require.NoError(t, err)

	rows := table.Rows
	rows[3].Vectorize = false

	newVersion, err := f.svc.Update(ctx, "work-1", rows, table.Version)
	require.NoError(t, err)
	assert.Equal(t, table.Version+1, newVersion)

	got, err := f.svc.Get(ctx, "work-1")
	require.NoError(t, err)
	assert.Equal(t, newVersion, got.Version)
	assert.Equal(t, rows, got.Rows)
}

func TestUpdate_StaleVersionConflicts(t *testing.T) {
	f := newCurateFixture(t)
	f.seedHier()
	ctx := context.Background()

	table, err := f.svc.Generate(ctx, "work-1")
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, "work-1", table.Rows, table.Version)
	require.NoError(t, err)

	// A second writer still holding the generated version must fail.
	_, err = f.svc.Update(ctx, "work-1", table.Rows, table.Version)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
}

func TestUpdate_MalformedRowsRejectedAtomically(t *testing.T) {
	f := newCurateFixture(t)
	f.seedHier()
	ctx := context.Background()

	table, err := f.svc.Generate(ctx, "work-1")
	require.NoError(t, err)

	bad := make([]domain.SuggestionRow, len(table.Rows))
	copy(bad, table.Rows)
	bad[2].Index = 7 // gap in the ordering

	_, err = f.svc.Update(ctx, "work-1", bad, table.Version)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Nothing was applied.
	got, err := f.svc.Get(ctx, "work-1")
	require.NoError(t, err)
	assert.Equal(t, table.Version, got.Version)
	assert.Equal(t, table.Rows, got.Rows)
}

func TestApply_ChunksMatchVectorizedRows(t *testing.T) {
	f := newCurateFixture(t)
	f.seedHier()
	ctx := context.Background()

	table, err := f.svc.Generate(ctx, "work-1")
	require.NoError(t, err)

	rows := table.Rows
	for i := range rows {
		rows[i].Vectorize = i == 0 || i == 4 // Introduction, Results
	}
	_, err = f.svc.Update(ctx, "work-1", rows, table.Version)
	require.NoError(t, err)

	chunks, err := f.svc.Apply(ctx, "work-1")
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, 0, chunks[0].Position)
	assert.Contains(t, chunks[0].Content, "Opening paragraph.")
	assert.Equal(t, []string{"Introduction"}, chunks[0].HeadingPath)

	assert.Equal(t, 1, chunks[1].Position)
	assert.Contains(t, chunks[1].Content, "Closing text.")
	assert.Equal(t, []string{"Results"}, chunks[1].HeadingPath)
}

func TestApply_Idempotent(t *testing.T) {
	f := newCurateFixture(t)
	f.seedHier()
	ctx := context.Background()

	_, err := f.svc.Generate(ctx, "work-1")
	require.NoError(t, err)

	first, err := f.svc.Apply(ctx, "work-1")
	require.NoError(t, err)
	second, err := f.svc.Apply(ctx, "work-1")
	require.NoError(t, err)

	// Re-applying an unchanged table yields the identical chunk set,
	// IDs included.
	assert.Equal(t, first, second)

	stored, err := f.chunks.Get(ctx, "work-1")
	require.NoError(t, err)
	assert.Equal(t, first, stored)
}

func TestApply_AllFalseReplacesPriorSetWithEmpty(t *testing.T) {
	f := newCurateFixture(t)
	f.seedHier()
	ctx := context.Background()

	table, err := f.svc.Generate(ctx, "work-1")
	require.NoError(t, err)

	chunks, err := f.svc.Apply(ctx, "work-1")
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	rows := table.Rows
	for i := range rows {
		rows[i].Vectorize = false
	}
	_, err = f.svc.Update(ctx, "work-1", rows, table.Version)
	require.NoError(t, err)

	chunks, err = f.svc.Apply(ctx, "work-1")
	require.NoError(t, err)
	assert.Empty(t, chunks)

	stored, err := f.chunks.Get(ctx, "work-1")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestApply_WithoutTable(t *testing.T) {
	f := newCurateFixture(t)
	f.seedHier()

	_, err := f.svc.Apply(context.Background(), "work-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApply_SupersededTableDrivesChunks(t *testing.T) {
	f := newCurateFixture(t)
	f.seedHier()
	ctx := context.Background()

	table, err := f.svc.Generate(ctx, "work-1")
	require.NoError(t, err)

	_, err = f.svc.Apply(ctx, "work-1")
	require.NoError(t, err)

	// Keep only one row vectorized and re-apply: no chunks from the
	// earlier apply survive.
	rows := table.Rows
	for i := range rows {
		rows[i].Vectorize = i == 1
	}
	_, err = f.svc.Update(ctx, "work-1", rows, table.Version)
	require.NoError(t, err)

	chunks, err := f.svc.Apply(ctx, "work-1")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, []string{"Introduction", "Background"}, chunks[0].HeadingPath)
}
