// Package disk provides the filesystem-backed artifact store.
// Each work owns a flat directory of derived files named
// <stem>.<logical name>. Writes stage to temporary files in the same
// directory and rename into place, so a partial artifact set is never
// observable.
package disk

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// Ensure ArtifactStore implements the interface.
var _ driven.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is a filesystem implementation of driven.ArtifactStore.
type ArtifactStore struct {
	root string
}

// NewArtifactStore creates an artifact store rooted at root.
// If root is empty, defaults to ~/.folio/artifacts.
func NewArtifactStore(root string) (*ArtifactStore, error) {
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		root = filepath.Join(home, ".folio", "artifacts")
	}
	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, fmt.Errorf("creating artifact root: %w", err)
	}
	return &ArtifactStore{root: root}, nil
}

// Dir returns the work's output directory path.
func (s *ArtifactStore) Dir(work *domain.Work) string {
	return filepath.Join(s.root, work.ID)
}

// path returns the physical path of a logical artifact.
func (s *ArtifactStore) path(work *domain.Work, name domain.ArtifactName) string {
	return filepath.Join(s.Dir(work), name.Filename(work.Stem))
}

// Exists reports whether the artifact is present as a regular file.
// Directories and broken links do not count. A missing work directory
// means no artifacts, never an error.
func (s *ArtifactStore) Exists(_ context.Context, work *domain.Work, name domain.ArtifactName) (bool, error) {
	info, err := os.Stat(s.path(work, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat artifact %s: %w", name, err)
	}
	return info.Mode().IsRegular(), nil
}

// Read returns the artifact's content.
func (s *ArtifactStore) Read(_ context.Context, work *domain.Work, name domain.ArtifactName) ([]byte, error) {
	content, err := os.ReadFile(s.path(work, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading artifact %s: %w", name, err)
	}
	return content, nil
}

// Write stores the given artifacts. Every file is first written to a
// temporary name in the work directory; only when all temporaries are
// durable are they renamed into place. A failure while staging removes
// the temporaries and leaves the previous artifact set intact. The
// rename pass is not atomic across files: a failure mid-commit can
// leave a mix of old and new artifacts.
func (s *ArtifactStore) Write(_ context.Context, work *domain.Work, artifacts map[domain.ArtifactName][]byte) error {
	if len(artifacts) == 0 {
		return nil
	}

	dir := s.Dir(work)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating work directory: %w", err)
	}

	staged := make(map[string]string, len(artifacts))
	cleanup := func() {
		for tmp := range staged {
			os.Remove(tmp)
		}
	}

	for name, content := range artifacts {
		final := s.path(work, name)
		tmp, err := os.CreateTemp(dir, "."+name.Filename(work.Stem)+".tmp-*")
		if err != nil {
			cleanup()
			return fmt.Errorf("staging artifact %s: %w", name, err)
		}
		if _, err := tmp.Write(content); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			cleanup()
			return fmt.Errorf("writing artifact %s: %w", name, err)
		}
		if err := tmp.Sync(); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			cleanup()
			return fmt.Errorf("syncing artifact %s: %w", name, err)
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmp.Name())
			cleanup()
			return fmt.Errorf("closing artifact %s: %w", name, err)
		}
		staged[tmp.Name()] = final
	}

	// All temporaries are durable; commit by renaming into place.
	for tmp, final := range staged {
		if err := os.Rename(tmp, final); err != nil {
			cleanup()
			return fmt.Errorf("committing artifact: %w", err)
		}
		delete(staged, tmp)
	}
	return nil
}

// List returns metadata for every artifact present for the work.
func (s *ArtifactStore) List(_ context.Context, work *domain.Work) ([]domain.Artifact, error) {
	var result []domain.Artifact
	for _, name := range domain.AllArtifactNames {
		info, err := os.Stat(s.path(work, name))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat artifact %s: %w", name, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		result = append(result, domain.Artifact{
			WorkID:  work.ID,
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return result, nil
}

// Remove deletes the work's artifact directory.
func (s *ArtifactStore) Remove(_ context.Context, work *domain.Work) error {
	if err := os.RemoveAll(s.Dir(work)); err != nil {
		return fmt.Errorf("removing work directory: %w", err)
	}
	return nil
}
