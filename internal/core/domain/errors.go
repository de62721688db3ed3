package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	// Suggestion-table edits that fail validation are rejected with this error
	// without any row being applied.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedFormat indicates the source document format has no
	// registered converter. Fatal: no artifacts are written.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrCorruptDocument indicates the source document could not be parsed.
	// Fatal: no artifacts are written.
	ErrCorruptDocument = errors.New("corrupt document")

	// ErrConversionInProgress indicates a conversion is already running for
	// the work. Conversion and chunk-apply are mutually exclusive per work.
	ErrConversionInProgress = errors.New("conversion in progress")

	// ErrGPUUnavailable indicates GPU layout analysis was requested but no
	// engine is present. Recoverable: conversion falls back to the CPU path
	// and reports the degradation as a warning.
	ErrGPUUnavailable = errors.New("GPU layout engine unavailable")

	// ErrDependencyMissing indicates an operation requires an artifact that
	// has not been produced. Resolved by re-running conversion with the
	// hierarchical pipeline enabled.
	ErrDependencyMissing = errors.New("required artifact missing")

	// ErrVersionConflict indicates a suggestion-table write targeted a stale
	// version. The caller must re-read and retry; the conflict is never
	// silently resolved.
	ErrVersionConflict = errors.New("suggestion table version conflict")
)
