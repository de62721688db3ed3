// Package sqlite provides SQLite-backed implementations of the
// metadata store interfaces: works, suggestion tables, and chunks.
// A single database file backs all of them; per-interface wrappers
// are obtained from the unified Store.
package sqlite
