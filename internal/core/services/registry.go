package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// Ensure ConverterRegistry implements the interface.
var _ driven.ConverterRegistry = (*ConverterRegistry)(nil)

// ConverterRegistry dispatches documents to converters by file
// extension. Registration order breaks ties: the first converter
// claiming an extension wins.
type ConverterRegistry struct {
	byExt map[string]driven.Converter
}

// NewConverterRegistry creates a registry over the given converters.
func NewConverterRegistry(converters ...driven.Converter) *ConverterRegistry {
	r := &ConverterRegistry{byExt: make(map[string]driven.Converter)}
	for _, c := range converters {
		for _, ext := range c.SupportedExtensions() {
			ext = strings.ToLower(ext)
			if _, taken := r.byExt[ext]; !taken {
				r.byExt[ext] = c
			}
		}
	}
	return r
}

// ForURI returns the converter for the document at uri.
func (r *ConverterRegistry) ForURI(uri string) (driven.Converter, error) {
	ext := strings.ToLower(filepath.Ext(uri))
	c, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, ext)
	}
	return c, nil
}
