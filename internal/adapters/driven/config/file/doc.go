// Package file provides file-based configuration storage using TOML.
// Values live in a single config.toml under the folio config directory
// and can be reloaded automatically when the file changes on disk.
package file
