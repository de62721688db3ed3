// Package driving defines the primary ports of the hexagonal
// architecture: the service interfaces through which the CLI and TUI
// drive the core (work management, conversion, inspection, curation).
package driving
