package driven

import "context"

// LayoutAnalyser performs hardware-accelerated layout analysis over raw
// document bytes, classifying text blocks for heading inference.
// Implemented by the cgo/layout bindings; a stub is used when built
// without CGO.
type LayoutAnalyser interface {
	// Available reports whether an accelerated engine is present.
	Available() bool

	// Analyse returns the classified text blocks in reading order.
	// Returns domain.ErrGPUUnavailable when no engine is present.
	Analyse(ctx context.Context, content []byte) ([]LayoutBlock, error)

	// Close releases engine resources.
	Close() error
}

// BlockKind classifies a layout block.
type BlockKind int

const (
	// BlockBody is running body text.
	BlockBody BlockKind = iota
	// BlockHeading is a heading.
	BlockHeading
	// BlockCaption is a figure or table caption.
	BlockCaption
)

// LayoutBlock is one classified text block.
type LayoutBlock struct {
	// Kind is the block classification.
	Kind BlockKind

	// Level is the heading depth (1-6) when Kind is BlockHeading.
	Level int

	// Text is the block's text content.
	Text string
}
