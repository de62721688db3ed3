// Package cgo provides CGO bindings for native libraries.
// This package isolates all CGO code from the pure Go core.
//
// Sub-packages:
//   - layout: GPU layout engine bindings for PDF block classification
package cgo
