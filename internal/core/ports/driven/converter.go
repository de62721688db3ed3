package driven

import (
	"context"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// Converter transforms a raw document into markdown renderings.
// Each converter handles specific file extensions (e.g. PDF, EPUB).
type Converter interface {
	// SupportedExtensions returns the lowercase file extensions this
	// converter handles, including the leading dot.
	SupportedExtensions() []string

	// Convert produces the renderings requested by the options.
	// It writes nothing; the conversion service stages the output into
	// the artifact store transactionally.
	Convert(ctx context.Context, raw *domain.RawDocument, opts domain.ConvertOptions) (*ConvertOutput, error)
}

// ConvertOutput contains the markdown renderings of one conversion.
// Empty strings mean the rendering was not requested or not available.
type ConvertOutput struct {
	// Style is the style-normalised markdown.
	Style string

	// Hier is the hierarchical outline markdown.
	Hier string

	// Titles lists every inferred heading, one per line.
	Titles string

	// TOCTitles lists headings from the document's own table of
	// contents, one per line. Empty when the source has no TOC.
	TOCTitles string

	// Degradations lists non-fatal fallbacks taken (e.g. GPU layout
	// analysis unavailable, fell back to CPU).
	Degradations []string
}

// ConverterRegistry selects a converter for a document.
type ConverterRegistry interface {
	// ForURI returns the converter for the document at uri.
	// Returns domain.ErrUnsupportedFormat if no converter matches.
	ForURI(uri string) (Converter, error)
}
