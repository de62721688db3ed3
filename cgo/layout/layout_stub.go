//go:build !cgo

package layout

import (
	"context"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// Ensure Analyser implements the interface.
var _ driven.LayoutAnalyser = (*Analyser)(nil)

// Analyser classifies document text blocks on the GPU.
// This is a stub for builds without CGO.
type Analyser struct{}

// New initialises the layout engine.
// This is a stub for builds without CGO.
func New() (*Analyser, error) {
	return &Analyser{}, nil
}

// Available reports whether an accelerated engine is present.
func (a *Analyser) Available() bool {
	return false
}

// Analyse returns the classified text blocks in reading order.
func (a *Analyser) Analyse(_ context.Context, _ []byte) ([]driven.LayoutBlock, error) {
	return nil, domain.ErrGPUUnavailable
}

// Close releases engine resources.
func (a *Analyser) Close() error {
	return nil
}
