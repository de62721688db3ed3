// Package layout provides CGO bindings for the GPU layout engine.
// It implements the driven.LayoutAnalyser interface.
//
// Build requires:
//   - layout engine header and shared library (fetched via CMake FetchContent)
//   - a CUDA-capable device at runtime; Available reports device state
package layout
