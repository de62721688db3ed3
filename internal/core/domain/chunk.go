package domain

// Chunk is a finalised, persisted unit of content designated for
// retrieval indexing. Chunks are owned exclusively by the chunk store
// and created only by applying a suggestion table; an apply atomically
// replaces the entire chunk set for a work.
type Chunk struct {
	// ID is the unique identifier. IDs are deterministic for a given
	// (work, position, span, content) so re-applying an unchanged table
	// reproduces the identical set.
	ID string

	// WorkID links to the owning Work.
	WorkID string

	// Position is the ordinal position within the work's chunk set.
	Position int

	// Content is the text content of this chunk.
	Content string

	// HeadingPath is the heading hierarchy leading to this chunk,
	// e.g. ["Results", "Revenue", "Q4"].
	HeadingPath []string

	// StartLine and EndLine are the chunk's boundaries within the
	// hierarchical artifact (zero-based, inclusive).
	StartLine int
	EndLine   int
}
