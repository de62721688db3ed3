package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

func TestArtifactStore_ExistsAfterSeed(t *testing.T) {
	store := NewArtifactStore()
	work := &domain.Work{ID: "work-1", Stem: "report"}
	ctx := context.Background()

	ok, err := store.Exists(ctx, work, domain.ArtifactStyle)
	require.NoError(t, err)
	assert.False(t, ok)

	store.Seed("work-1", domain.ArtifactStyle, []byte("# Title"))

	ok, err = store.Exists(ctx, work, domain.ArtifactStyle)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArtifactStore_WriteMultiple(t *testing.T) {
	store := NewArtifactStore()
	work := &domain.Work{ID: "work-1", Stem: "report"}
	ctx := context.Background()

	err := store.Write(ctx, work, map[domain.ArtifactName][]byte{
		domain.ArtifactStyle: []byte("style"),
		domain.ArtifactHier:  []byte("hier"),
	})
	require.NoError(t, err)

	content, err := store.Read(ctx, work, domain.ArtifactHier)
	require.NoError(t, err)
	assert.Equal(t, "hier", string(content))

	artifacts, err := store.List(ctx, work)
	require.NoError(t, err)
	assert.Len(t, artifacts, 2)
}

func TestArtifactStore_ReadMissing(t *testing.T) {
	store := NewArtifactStore()
	work := &domain.Work{ID: "work-1"}

	_, err := store.Read(context.Background(), work, domain.ArtifactTitles)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArtifactStore_Remove(t *testing.T) {
	store := NewArtifactStore()
	work := &domain.Work{ID: "work-1"}
	ctx := context.Background()

	store.Seed("work-1", domain.ArtifactStyle, []byte("x"))
	require.NoError(t, store.Remove(ctx, work))

	ok, err := store.Exists(ctx, work, domain.ArtifactStyle)
	require.NoError(t, err)
	assert.False(t, ok)
}
