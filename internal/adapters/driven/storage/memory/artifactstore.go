package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// Ensure ArtifactStore implements the interface.
var _ driven.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is an in-memory implementation of driven.ArtifactStore.
// Tests seed it with a known set of present artifact names instead of
// mocking filesystem calls.
type ArtifactStore struct {
	mu    sync.RWMutex
	works map[string]map[domain.ArtifactName][]byte
}

// NewArtifactStore creates a new in-memory artifact store.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{
		works: make(map[string]map[domain.ArtifactName][]byte),
	}
}

// Seed marks an artifact present with the given content.
func (s *ArtifactStore) Seed(workID string, name domain.ArtifactName, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.works[workID] == nil {
		s.works[workID] = make(map[domain.ArtifactName][]byte)
	}
	s.works[workID][name] = content
}

// Exists reports whether the artifact is present.
func (s *ArtifactStore) Exists(_ context.Context, work *domain.Work, name domain.ArtifactName) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.works[work.ID][name]
	return ok, nil
}

// Read returns the artifact's content.
func (s *ArtifactStore) Read(_ context.Context, work *domain.Work, name domain.ArtifactName) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.works[work.ID][name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]byte, len(content))
	copy(out, content)
	return out, nil
}

// Write stores all given artifacts atomically.
func (s *ArtifactStore) Write(_ context.Context, work *domain.Work, artifacts map[domain.ArtifactName][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.works[work.ID] == nil {
		s.works[work.ID] = make(map[domain.ArtifactName][]byte)
	}
	for name, content := range artifacts {
		cp := make([]byte, len(content))
		copy(cp, content)
		s.works[work.ID][name] = cp
	}
	return nil
}

// List returns metadata for every artifact present for the work.
func (s *ArtifactStore) List(_ context.Context, work *domain.Work) ([]domain.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Artifact
	for _, name := range domain.AllArtifactNames {
		if content, ok := s.works[work.ID][name]; ok {
			result = append(result, domain.Artifact{
				WorkID:  work.ID,
				Name:    name,
				Size:    int64(len(content)),
				ModTime: time.Now(),
			})
		}
	}
	return result, nil
}

// Remove deletes all artifacts for the work.
func (s *ArtifactStore) Remove(_ context.Context, work *domain.Work) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.works, work.ID)
	return nil
}

// Dir returns "" because the store is not filesystem-backed.
func (s *ArtifactStore) Dir(_ *domain.Work) string {
	return ""
}
