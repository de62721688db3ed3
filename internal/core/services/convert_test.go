package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// stubConverter returns canned renderings, optionally blocking until
// its context is cancelled.
type stubConverter struct {
	output driven.ConvertOutput
	err    error
	block  bool
	began  chan struct{}
}

func (c *stubConverter) SupportedExtensions() []string { return []string{".pdf"} }

func (c *stubConverter) Convert(ctx context.Context, _ *domain.RawDocument, _ domain.ConvertOptions) (*driven.ConvertOutput, error) {
	if c.began != nil {
		c.began <- struct{}{}
	}
	if c.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if c.err != nil {
		return nil, c.err
	}
	out := c.output
	return &out, nil
}

// stubLayout reports a present GPU engine.
type stubLayout struct{}

func (stubLayout) Available() bool { return true }
func (stubLayout) Analyse(context.Context, []byte) ([]driven.LayoutBlock, error) {
	return nil, nil
}
func (stubLayout) Close() error { return nil }

type convertFixture struct {
	svc       *ConversionService
	artifacts *memory.ArtifactStore
	converter *stubConverter
	work      *domain.Work
}

func newConvertFixture(t *testing.T, layout driven.LayoutAnalyser, opts ...ConversionOption) *convertFixture {
	t.Helper()

	source := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(source, []byte("%PDF-1.4"), 0600))

	workStore := memory.NewWorkStore()
	work := &domain.Work{ID: "work-1", Stem: "report", SourceURI: source}
	require.NoError(t, workStore.Save(context.Background(), work))

	converter := &stubConverter{output: driven.ConvertOutput{
		Style:     "# Styled",
		Hier:      "# Outline",
		Titles:    "Outline",
		TOCTitles: "Contents",
	}}
	artifacts := memory.NewArtifactStore()
	svc := NewConversionService(workStore, artifacts, NewConverterRegistry(converter), layout, opts...)
	return &convertFixture{svc: svc, artifacts: artifacts, converter: converter, work: work}
}

func (f *convertFixture) artifactNames(t *testing.T) []domain.ArtifactName {
	t.Helper()
	list, err := f.artifacts.List(context.Background(), f.work)
	require.NoError(t, err)
	names := make([]domain.ArtifactName, len(list))
	for i, a := range list {
		names[i] = a.Name
	}
	return names
}

func TestConvert_CompareWritesBothRenderings(t *testing.T) {
	f := newConvertFixture(t, nil)

	report, err := f.svc.Convert(context.Background(), "work-1", domain.ConvertOptions{Compare: true})
	require.NoError(t, err)

	assert.Equal(t, []domain.ArtifactName{domain.ArtifactStyle, domain.ArtifactHier}, report.Written)
	assert.ElementsMatch(t, []domain.ArtifactName{domain.ArtifactStyle, domain.ArtifactHier}, f.artifactNames(t))
}

func TestConvert_DefaultWritesStyleOnly(t *testing.T) {
	f := newConvertFixture(t, nil)

	report, err := f.svc.Convert(context.Background(), "work-1", domain.ConvertOptions{})
	require.NoError(t, err)

	assert.Equal(t, []domain.ArtifactName{domain.ArtifactStyle}, report.Written)
	assert.Equal(t, []domain.ArtifactName{domain.ArtifactStyle}, f.artifactNames(t))
}

func TestConvert_HierarchicalWritesHierOnly(t *testing.T) {
	f := newConvertFixture(t, nil)

	report, err := f.svc.Convert(context.Background(), "work-1", domain.ConvertOptions{Hierarchical: true})
	require.NoError(t, err)

	assert.Equal(t, []domain.ArtifactName{domain.ArtifactHier}, report.Written)
}

func TestConvert_TitlesEmitsTitleLists(t *testing.T) {
	f := newConvertFixture(t, nil)

	report, err := f.svc.Convert(context.Background(), "work-1", domain.ConvertOptions{Titles: true})
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]domain.ArtifactName{domain.ArtifactStyle, domain.ArtifactTOCTitles, domain.ArtifactTitles},
		report.Written)
}

func TestConvert_UnknownWork(t *testing.T) {
	f := newConvertFixture(t, nil)

	_, err := f.svc.Convert(context.Background(), "missing", domain.ConvertOptions{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConvert_UnsupportedFormat(t *testing.T) {
	f := newConvertFixture(t, nil)
	f.work.SourceURI = "/tmp/report.xyz"
	require.NoError(t, memoryWorkSave(t, f))

	_, err := f.svc.Convert(context.Background(), "work-1", domain.ConvertOptions{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	// Fatal errors leave no artifacts.
	assert.Empty(t, f.artifactNames(t))
}

// memoryWorkSave re-saves the fixture's work after mutation.
func memoryWorkSave(t *testing.T, f *convertFixture) error {
	t.Helper()
	store := memory.NewWorkStore()
	if err := store.Save(context.Background(), f.work); err != nil {
		return err
	}
	f.svc = NewConversionService(store, f.artifacts, NewConverterRegistry(f.converter), nil)
	return nil
}

func TestConvert_GPUUnavailableDegradesToCPU(t *testing.T) {
	f := newConvertFixture(t, nil) // no layout engine linked

	report, err := f.svc.Convert(context.Background(), "work-1", domain.ConvertOptions{UseGPU: true})
	require.NoError(t, err)

	require.Len(t, report.Degradations, 1)
	assert.Contains(t, report.Degradations[0], domain.ErrGPUUnavailable.Error())
	// The conversion itself still succeeded.
	assert.NotEmpty(t, report.Written)
}

func TestConvert_GPUAvailableNoDegradation(t *testing.T) {
	f := newConvertFixture(t, stubLayout{})

	report, err := f.svc.Convert(context.Background(), "work-1", domain.ConvertOptions{UseGPU: true})
	require.NoError(t, err)
	assert.Empty(t, report.Degradations)
}

func TestConvert_ConverterFailureWritesNothing(t *testing.T) {
	f := newConvertFixture(t, nil)
	f.converter.err = domain.ErrCorruptDocument

	_, err := f.svc.Convert(context.Background(), "work-1", domain.ConvertOptions{})
	assert.ErrorIs(t, err, domain.ErrCorruptDocument)
	assert.Empty(t, f.artifactNames(t))
}

func TestConvert_CancellationLeavesNoArtifacts(t *testing.T) {
	f := newConvertFixture(t, nil)
	f.converter.block = true

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Convert(ctx, "work-1", domain.ConvertOptions{Compare: true})
		done <- err
	}()

	cancel()
	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.artifactNames(t))
}

func TestConvert_TimeoutLeavesNoArtifacts(t *testing.T) {
	f := newConvertFixture(t, nil, WithTimeout(20*time.Millisecond))
	f.converter.block = true

	_, err := f.svc.Convert(context.Background(), "work-1", domain.ConvertOptions{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, f.artifactNames(t))
}

func TestConvert_ConcurrentConversionRejected(t *testing.T) {
	f := newConvertFixture(t, nil)
	f.converter.block = true
	f.converter.began = make(chan struct{}, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Convert(ctx, "work-1", domain.ConvertOptions{})
		done <- err
	}()

	// Wait for the first conversion to hold the work lock.
	<-f.converter.began

	_, err := f.svc.Convert(context.Background(), "work-1", domain.ConvertOptions{})
	assert.ErrorIs(t, err, domain.ErrConversionInProgress)

	cancel()
	<-done
}
