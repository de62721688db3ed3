package domain

import (
	"fmt"
	"time"
)

// Span marks the source lines a suggestion row covers within the
// hierarchical artifact. StartLine is the heading line; EndLine is the
// last content line before the next heading, whatever its level.
// Lines are zero-based and the span is inclusive.
type Span struct {
	StartLine int
	EndLine   int
}

// SuggestionRow is a candidate heading/content unit with an
// operator-controlled decision on whether to vectorise it.
type SuggestionRow struct {
	// Index is the ordinal position within the table. Indices must form
	// a contiguous, gap-free sequence starting at zero.
	Index int

	// Heading is the heading text.
	Heading string

	// Level is the heading depth (1-6).
	Level int

	// Vectorize records the operator's decision for this row.
	Vectorize bool

	// Span locates the row's content in the hierarchical artifact.
	Span Span
}

// SuggestionTable is the editable set of suggestion rows for a work.
// Each generate or update supersedes the previous table wholesale.
type SuggestionTable struct {
	// WorkID links to the owning Work.
	WorkID string

	// Version increments on every accepted write. Updates must supply
	// the version they read; stale versions are rejected.
	Version int64

	// Rows is the ordered suggestion list.
	Rows []SuggestionRow

	// GeneratedAt is when the table was produced from the hierarchical
	// artifact.
	GeneratedAt time.Time

	// UpdatedAt is when the table last changed.
	UpdatedAt time.Time
}

// Validate checks structural consistency of the table's rows.
// Indices must be contiguous from zero and levels within 1-6.
// A failing row rejects the whole table.
func (t *SuggestionTable) Validate() error {
	for i, row := range t.Rows {
		if row.Index != i {
			return fmt.Errorf("%w: row %d has index %d, want %d", ErrInvalidInput, i, row.Index, i)
		}
		if row.Level < 1 || row.Level > 6 {
			return fmt.Errorf("%w: row %d has heading level %d, want 1-6", ErrInvalidInput, i, row.Level)
		}
		if row.Heading == "" {
			return fmt.Errorf("%w: row %d has empty heading", ErrInvalidInput, i)
		}
		if row.Span.EndLine < row.Span.StartLine || row.Span.StartLine < 0 {
			return fmt.Errorf("%w: row %d has invalid span [%d,%d]", ErrInvalidInput, i, row.Span.StartLine, row.Span.EndLine)
		}
	}
	return nil
}

// Clone returns a deep copy of the table.
func (t *SuggestionTable) Clone() *SuggestionTable {
	cp := *t
	cp.Rows = make([]SuggestionRow, len(t.Rows))
	copy(cp.Rows, t.Rows)
	return &cp
}
