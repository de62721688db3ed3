// Package logger is the process-wide diagnostic log for folio. The
// convert and curate pipelines narrate their stages through it when the
// --verbose flag is set; warnings about degraded behaviour (a GPU
// fallback, a skipped rendering) are printed unconditionally so the
// operator sees them without rerunning verbose.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	out     io.Writer = os.Stderr
)

// SetVerbose turns the diagnostic stream on or off.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether the diagnostic stream is on.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects the log. Defaults to os.Stderr; tests point it at
// a buffer.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// Debug prints a pipeline detail when verbose is on.
func Debug(format string, args ...any) {
	emit(true, "[DEBUG] "+format+"\n", args...)
}

// Section prints a stage header when verbose is on. The convert
// pipeline opens one per stage (read, layout, render, write).
func Section(name string) {
	emit(true, "\n=== %s ===\n", name)
}

// Info prints a progress message when verbose is on.
func Info(format string, args ...any) {
	emit(true, "[INFO] "+format+"\n", args...)
}

// Warn prints a degradation warning. Unlike the other levels it is not
// gated on verbose; a silent fallback would look like a clean run.
func Warn(format string, args ...any) {
	emit(false, "[WARN] "+format+"\n", args...)
}

func emit(gated bool, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if gated && !verbose {
		return
	}
	fmt.Fprintf(out, format, args...)
}
