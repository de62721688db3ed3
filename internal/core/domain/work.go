package domain

import "time"

// Work represents a single source document moving through the pipeline.
// Its identity is immutable; all artifacts and chunks reference it.
type Work struct {
	// ID is the unique identifier for the work.
	ID string

	// Title is the human-readable title.
	Title string

	// SourceURI is the location of the raw source document (file path).
	SourceURI string

	// Stem is the filename stem used for artifact naming
	// (artifacts are written as <stem>.<logical name>).
	Stem string

	// CreatedAt is when the work was ingested.
	CreatedAt time.Time

	// UpdatedAt is when the work was last modified.
	UpdatedAt time.Time
}

// RawDocument represents opaque source bytes handed to a converter.
type RawDocument struct {
	// WorkID links to the Work being converted.
	WorkID string

	// URI is the original location of the document.
	URI string

	// Content is the raw bytes.
	Content []byte
}
