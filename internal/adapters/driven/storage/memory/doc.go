// Package memory provides in-memory implementations of the driven
// storage ports. Used in tests as a stand-in for the disk and SQLite
// adapters.
package memory
