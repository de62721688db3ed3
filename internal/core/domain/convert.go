package domain

// ConvertOptions controls a conversion run.
type ConvertOptions struct {
	// Hierarchical selects the hierarchical outline pipeline.
	// Implied true when Compare is set.
	Hierarchical bool

	// Compare runs both pipelines and writes style.md and hier.md.
	Compare bool

	// UseGPU requests hardware-accelerated layout analysis. When no
	// engine is available conversion falls back to the CPU path and
	// records a degradation warning.
	UseGPU bool

	// Titles additionally emits titles.md (every inferred heading) and,
	// when the source carries its own table of contents, toc_titles.md.
	Titles bool
}

// Normalised returns the options with implied flags resolved:
// Compare implies Hierarchical.
func (o ConvertOptions) Normalised() ConvertOptions {
	if o.Compare {
		o.Hierarchical = true
	}
	return o
}

// ConvertReport summarises a completed conversion.
type ConvertReport struct {
	// WorkID is the converted work.
	WorkID string

	// Written lists the artifact logical names written, in write order.
	Written []ArtifactName

	// Degradations lists non-fatal fallbacks taken during conversion,
	// e.g. GPU layout analysis unavailable.
	Degradations []string
}
