package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// Ensure ConversionService implements the interface.
var _ driving.ConversionService = (*ConversionService)(nil)

// DefaultConvertTimeout bounds a single conversion run.
const DefaultConvertTimeout = 10 * time.Minute

// ConversionService orchestrates document conversion: it resolves the
// work, selects a converter, runs it under the work lock with a bounded
// context, and commits the resulting artifact set in one transactional
// write. Cancellation or failure at any point leaves no partial
// artifacts.
type ConversionService struct {
	workStore driven.WorkStore
	artifacts driven.ArtifactStore
	registry  driven.ConverterRegistry
	layout    driven.LayoutAnalyser

	locks   *workLocks
	timeout time.Duration

	// gpuLimiter bounds how often GPU layout analysis may start.
	// The engine is a shared resource like any external service.
	gpuLimiter *rate.Limiter
}

// ConversionOption configures the conversion service.
type ConversionOption func(*ConversionService)

// WithTimeout sets the per-conversion timeout.
func WithTimeout(d time.Duration) ConversionOption {
	return func(s *ConversionService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithGPULimit sets the sustained rate and burst of GPU conversions.
func WithGPULimit(perSecond float64, burst int) ConversionOption {
	return func(s *ConversionService) {
		if perSecond > 0 && burst > 0 {
			s.gpuLimiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// NewConversionService creates a conversion service.
// layout may be nil when no GPU engine is linked in; GPU requests then
// degrade to the CPU path.
func NewConversionService(
	workStore driven.WorkStore,
	artifacts driven.ArtifactStore,
	registry driven.ConverterRegistry,
	layout driven.LayoutAnalyser,
	opts ...ConversionOption,
) *ConversionService {
	s := &ConversionService{
		workStore:  workStore,
		artifacts:  artifacts,
		registry:   registry,
		layout:     layout,
		locks:      newWorkLocks(),
		timeout:    DefaultConvertTimeout,
		gpuLimiter: rate.NewLimiter(rate.Limit(1), 2),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Locks exposes the per-work lock set so the curation service can share
// the same mutual-exclusion domain for apply.
func (s *ConversionService) Locks() *workLocks {
	return s.locks
}

// Convert runs a conversion for the work.
func (s *ConversionService) Convert(ctx context.Context, workID string, opts domain.ConvertOptions) (*domain.ConvertReport, error) {
	work, err := s.workStore.Get(ctx, workID)
	if err != nil {
		return nil, fmt.Errorf("get work: %w", err)
	}

	converter, err := s.registry.ForURI(work.SourceURI)
	if err != nil {
		return nil, err
	}

	opts = opts.Normalised()

	if !s.locks.TryAcquire(workID) {
		return nil, fmt.Errorf("%w: work %s", domain.ErrConversionInProgress, workID)
	}
	defer s.locks.Release(workID)

	content, err := os.ReadFile(work.SourceURI)
	if err != nil {
		return nil, fmt.Errorf("reading source document: %w", err)
	}
	raw := &domain.RawDocument{
		WorkID:  work.ID,
		URI:     work.SourceURI,
		Content: content,
	}

	report := &domain.ConvertReport{WorkID: workID}

	// Resolve the GPU request up front: unavailability is a non-fatal
	// degradation, surfaced once and not retried within this call.
	if opts.UseGPU {
		switch {
		case s.layout == nil || !s.layout.Available():
			logger.Warn("GPU layout engine unavailable, falling back to CPU path")
			report.Degradations = append(report.Degradations, domain.ErrGPUUnavailable.Error()+", fell back to CPU")
			opts.UseGPU = false
		default:
			if err := s.gpuLimiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("waiting for GPU slot: %w", err)
			}
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	logger.Section("convert " + workID)
	logger.Debug("options: hierarchical=%v compare=%v gpu=%v titles=%v",
		opts.Hierarchical, opts.Compare, opts.UseGPU, opts.Titles)

	output, err := converter.Convert(runCtx, raw, opts)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("conversion cancelled: %w", err)
		}
		return nil, fmt.Errorf("converting %s: %w", work.SourceURI, err)
	}
	report.Degradations = append(report.Degradations, output.Degradations...)

	// A cancellation that raced the converter's return must still not
	// commit artifacts.
	if err := runCtx.Err(); err != nil {
		return nil, fmt.Errorf("conversion cancelled: %w", err)
	}

	artifacts, err := assembleArtifacts(output, opts)
	if err != nil {
		return nil, err
	}

	if err := s.artifacts.Write(ctx, work, artifacts); err != nil {
		return nil, fmt.Errorf("committing artifacts: %w", err)
	}

	for _, name := range domain.AllArtifactNames {
		if _, ok := artifacts[name]; ok {
			report.Written = append(report.Written, name)
		}
	}
	logger.Info("conversion wrote %d artifacts for %s", len(report.Written), workID)
	return report, nil
}

// assembleArtifacts maps converter output onto artifact names per the
// output contract: compare writes both renderings; otherwise exactly
// one of style.md or hier.md is written. Title lists are additive and
// only on request. A requested rendering the converter could not
// produce fails the whole conversion.
func assembleArtifacts(output *driven.ConvertOutput, opts domain.ConvertOptions) (map[domain.ArtifactName][]byte, error) {
	artifacts := make(map[domain.ArtifactName][]byte)

	switch {
	case opts.Compare:
		artifacts[domain.ArtifactStyle] = []byte(output.Style)
		artifacts[domain.ArtifactHier] = []byte(output.Hier)
	case opts.Hierarchical:
		artifacts[domain.ArtifactHier] = []byte(output.Hier)
	default:
		artifacts[domain.ArtifactStyle] = []byte(output.Style)
	}

	for name, content := range artifacts {
		if len(content) == 0 {
			return nil, fmt.Errorf("%w: empty %s rendering", domain.ErrCorruptDocument, name)
		}
	}

	if opts.Titles && output.Titles != "" {
		artifacts[domain.ArtifactTitles] = []byte(output.Titles)
	}
	if opts.Titles && output.TOCTitles != "" {
		artifacts[domain.ArtifactTOCTitles] = []byte(output.TOCTitles)
	}
	return artifacts, nil
}
