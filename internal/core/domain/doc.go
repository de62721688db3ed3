// Package domain defines the core business entities for Folio.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Work: A source document moving through the pipeline
//   - Artifact: A named derived file produced by conversion
//   - InspectionCheck: A predicate over required artifact presence
//   - SuggestionRow: A candidate heading unit awaiting curation
//   - Chunk: A finalised unit of content designated for retrieval indexing
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
