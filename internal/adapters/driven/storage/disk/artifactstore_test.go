package disk

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

func newTestStore(t *testing.T) (*ArtifactStore, *domain.Work) {
	t.Helper()
	store, err := NewArtifactStore(t.TempDir())
	require.NoError(t, err)
	return store, &domain.Work{ID: "work-1", Stem: "report"}
}

func TestArtifactStore_MissingDirectoryIsEmpty(t *testing.T) {
	store, work := newTestStore(t)
	ctx := context.Background()

	ok, err := store.Exists(ctx, work, domain.ArtifactStyle)
	require.NoError(t, err)
	assert.False(t, ok)

	artifacts, err := store.List(ctx, work)
	require.NoError(t, err)
	assert.Empty(t, artifacts)
}

func TestArtifactStore_WriteAndRead(t *testing.T) {
	store, work := newTestStore(t)
	ctx := context.Background()

	err := store.Write(ctx, work, map[domain.ArtifactName][]byte{
		domain.ArtifactStyle: []byte("# Styled"),
		domain.ArtifactHier:  []byte("# Outline"),
	})
	require.NoError(t, err)

	content, err := store.Read(ctx, work, domain.ArtifactStyle)
	require.NoError(t, err)
	assert.Equal(t, "# Styled", string(content))

	// Physical names follow <stem>.<logical name>.
	_, err = os.Stat(filepath.Join(store.Dir(work), "report.style.md"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(store.Dir(work), "report.hier.md"))
	require.NoError(t, err)
}

func TestArtifactStore_WriteLeavesNoTemporaries(t *testing.T) {
	store, work := newTestStore(t)
	ctx := context.Background()

	err := store.Write(ctx, work, map[domain.ArtifactName][]byte{
		domain.ArtifactStyle: []byte("content"),
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(store.Dir(work))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "report.style.md", entries[0].Name())
}

func TestArtifactStore_OverwriteReplacesContent(t *testing.T) {
	store, work := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, work, map[domain.ArtifactName][]byte{
		domain.ArtifactStyle: []byte("first"),
	}))
	require.NoError(t, store.Write(ctx, work, map[domain.ArtifactName][]byte{
		domain.ArtifactStyle: []byte("second"),
	}))

	content, err := store.Read(ctx, work, domain.ArtifactStyle)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func TestArtifactStore_DirectoryDoesNotCountAsArtifact(t *testing.T) {
	store, work := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(filepath.Join(store.Dir(work), "report.titles.md"), 0700))

	ok, err := store.Exists(ctx, work, domain.ArtifactTitles)
	require.NoError(t, err)
	assert.False(t, ok)

	artifacts, err := store.List(ctx, work)
	require.NoError(t, err)
	assert.Empty(t, artifacts)
}

func TestArtifactStore_Remove(t *testing.T) {
	store, work := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, work, map[domain.ArtifactName][]byte{
		domain.ArtifactStyle: []byte("x"),
	}))
	require.NoError(t, store.Remove(ctx, work))

	ok, err := store.Exists(ctx, work, domain.ArtifactStyle)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArtifactStore_ReadMissing(t *testing.T) {
	store, work := newTestStore(t)

	_, err := store.Read(context.Background(), work, domain.ArtifactTOCTitles)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
