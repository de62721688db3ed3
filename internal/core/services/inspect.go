package services

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// Ensure InspectionService implements the interface.
var _ driving.InspectionService = (*InspectionService)(nil)

// InspectionService evaluates the static check registry against the
// live artifact set. It is side-effect free and caches nothing.
type InspectionService struct {
	workStore driven.WorkStore
	artifacts driven.ArtifactStore
	checks    []domain.InspectionCheck
}

// NewInspectionService creates an inspection service over the default
// check registry.
func NewInspectionService(workStore driven.WorkStore, artifacts driven.ArtifactStore) *InspectionService {
	return &InspectionService{
		workStore: workStore,
		artifacts: artifacts,
		checks:    domain.DefaultChecks,
	}
}

// Inspect evaluates every registered check in registration order.
// Artifact absence is data, not an error.
func (s *InspectionService) Inspect(ctx context.Context, workID string) ([]domain.InspectionResult, error) {
	work, err := s.workStore.Get(ctx, workID)
	if err != nil {
		return nil, fmt.Errorf("get work: %w", err)
	}

	results := make([]domain.InspectionResult, 0, len(s.checks))
	for _, check := range s.checks {
		available, err := s.evaluate(ctx, work, check)
		if err != nil {
			return nil, fmt.Errorf("evaluating check %q: %w", check.Name, err)
		}
		results = append(results, domain.InspectionResult{
			Check:     check.Name,
			Available: available,
		})
	}
	return results, nil
}

// evaluate applies the check's policy over its required artifacts.
func (s *InspectionService) evaluate(ctx context.Context, work *domain.Work, check domain.InspectionCheck) (bool, error) {
	switch check.Policy {
	case domain.PolicyAny:
		for _, name := range check.Requires {
			ok, err := s.artifacts.Exists(ctx, work, name)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil

	default: // domain.PolicyAll
		for _, name := range check.Requires {
			ok, err := s.artifacts.Exists(ctx, work, name)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}
}

// Watch re-runs inspection whenever the work's artifact directory
// changes. fn receives one initial result set and one per relevant
// filesystem event. Blocks until ctx is cancelled; requires a
// filesystem-backed artifact store.
func (s *InspectionService) Watch(ctx context.Context, workID string, fn func([]domain.InspectionResult)) error {
	work, err := s.workStore.Get(ctx, workID)
	if err != nil {
		return fmt.Errorf("get work: %w", err)
	}

	dir := s.artifacts.Dir(work)
	if dir == "" {
		return fmt.Errorf("%w: artifact store is not filesystem-backed", domain.ErrNotImplemented)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// The work directory may not exist before the first conversion.
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating work directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	emit := func() {
		results, err := s.Inspect(ctx, workID)
		if err != nil {
			logger.Warn("inspection during watch failed: %v", err)
			return
		}
		fn(results)
	}
	emit()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				logger.Debug("artifact change: %s %s", event.Op, event.Name)
				emit()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}
