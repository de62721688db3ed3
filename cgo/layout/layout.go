//go:build cgo

package layout

/*
#cgo CXXFLAGS: -std=c++17 -O3 -I${SRCDIR}/../../clib/build/_deps/layoutengine-src
#cgo LDFLAGS: -lstdc++

#include "layout_wrapper.h"
#include <stdlib.h>
*/
import "C"

import (
	"context"
	"errors"
	"sync"
	"unsafe"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// Ensure Analyser implements the interface.
var _ driven.LayoutAnalyser = (*Analyser)(nil)

// Analyser classifies document text blocks on the GPU.
type Analyser struct {
	mu     sync.Mutex
	engine *C.LayoutEngine
}

// New initialises the layout engine. Initialisation failure is not an
// error: the analyser reports unavailable and callers fall back to CPU
// heuristics.
func New() (*Analyser, error) {
	return &Analyser{engine: C.layout_open()}, nil
}

// Available reports whether an accelerated engine is present.
func (a *Analyser) Available() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine != nil && C.layout_device_ready(a.engine) != 0
}

// Analyse returns the classified text blocks in reading order.
func (a *Analyser) Analyse(ctx context.Context, content []byte) ([]driven.LayoutBlock, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.engine == nil {
		return nil, domain.ErrGPUUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, errors.New("layout: empty document")
	}

	var results *C.LayoutBlockResult
	count := C.layout_analyse(
		a.engine,
		(*C.uchar)(unsafe.Pointer(&content[0])),
		C.size_t(len(content)),
		&results,
	)

	if count < 0 {
		return nil, errors.New("layout: analysis failed")
	}
	if count == 0 || results == nil {
		return nil, nil
	}
	defer C.layout_free_results(results, count)

	cResults := unsafe.Slice(results, int(count))
	blocks := make([]driven.LayoutBlock, int(count))
	for i := 0; i < int(count); i++ {
		blocks[i] = driven.LayoutBlock{
			Kind:  driven.BlockKind(cResults[i].kind),
			Level: int(cResults[i].level),
			Text:  C.GoString(cResults[i].text),
		}
	}

	return blocks, nil
}

// Close releases engine resources.
func (a *Analyser) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.engine != nil {
		C.layout_close(a.engine)
		a.engine = nil
	}

	return nil
}
