package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

func newInspectionFixture(t *testing.T) (*InspectionService, *memory.ArtifactStore) {
	t.Helper()
	workStore := memory.NewWorkStore()
	artifacts := memory.NewArtifactStore()
	require.NoError(t, workStore.Save(context.Background(), &domain.Work{ID: "work-1", Stem: "report"}))
	return NewInspectionService(workStore, artifacts), artifacts
}

func resultMap(results []domain.InspectionResult) map[string]bool {
	m := make(map[string]bool, len(results))
	for _, r := range results {
		m[r.Check] = r.Available
	}
	return m
}

func TestInspect_UnknownWork(t *testing.T) {
	svc, _ := newInspectionFixture(t)

	_, err := svc.Inspect(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInspect_NoArtifacts_AllUnavailable(t *testing.T) {
	svc, _ := newInspectionFixture(t)

	results, err := svc.Inspect(context.Background(), "work-1")
	require.NoError(t, err)
	require.Len(t, results, len(domain.DefaultChecks))

	for _, r := range results {
		assert.False(t, r.Available, "check %q", r.Check)
	}
}

func TestInspect_ResultsFollowRegistryOrder(t *testing.T) {
	svc, _ := newInspectionFixture(t)

	results, err := svc.Inspect(context.Background(), "work-1")
	require.NoError(t, err)
	for i, r := range results {
		assert.Equal(t, domain.DefaultChecks[i].Name, r.Check)
	}
}

func TestInspect_StyleHierAndTOCPresent(t *testing.T) {
	svc, artifacts := newInspectionFixture(t)
	artifacts.Seed("work-1", domain.ArtifactStyle, []byte("s"))
	artifacts.Seed("work-1", domain.ArtifactHier, []byte("h"))
	artifacts.Seed("work-1", domain.ArtifactTOCTitles, []byte("t"))

	results, err := svc.Inspect(context.Background(), "work-1")
	require.NoError(t, err)

	m := resultMap(results)
	assert.True(t, m["style+hierarchy"])
	assert.True(t, m["toc titles"])
	assert.False(t, m["titles"])
	assert.True(t, m["any markdown"])
}

func TestInspect_StyleAloneFailsAllPolicy(t *testing.T) {
	svc, artifacts := newInspectionFixture(t)
	artifacts.Seed("work-1", domain.ArtifactStyle, []byte("s"))

	results, err := svc.Inspect(context.Background(), "work-1")
	require.NoError(t, err)

	m := resultMap(results)
	// style+hierarchy is ALL over both renderings: style alone is not
	// enough.
	assert.False(t, m["style+hierarchy"])
	// The ANY check is satisfied by any single artifact.
	assert.True(t, m["any markdown"])
}

func TestInspect_TitlesOnly(t *testing.T) {
	svc, artifacts := newInspectionFixture(t)
	artifacts.Seed("work-1", domain.ArtifactTitles, []byte("t"))

	results, err := svc.Inspect(context.Background(), "work-1")
	require.NoError(t, err)

	m := resultMap(results)
	assert.False(t, m["style+hierarchy"])
	assert.False(t, m["toc titles"])
	assert.True(t, m["titles"])
	assert.True(t, m["any markdown"])
}

func TestInspect_ReflectsLiveState(t *testing.T) {
	svc, artifacts := newInspectionFixture(t)
	ctx := context.Background()

	results, err := svc.Inspect(ctx, "work-1")
	require.NoError(t, err)
	assert.False(t, resultMap(results)["titles"])

	// No caching across calls: presence changes are visible
	// immediately.
	artifacts.Seed("work-1", domain.ArtifactTitles, []byte("t"))
	results, err = svc.Inspect(ctx, "work-1")
	require.NoError(t, err)
	assert.True(t, resultMap(results)["titles"])
}
