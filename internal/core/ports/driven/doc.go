// Package driven defines the secondary ports of the hexagonal
// architecture: interfaces the core services require and adapters
// implement (storage, conversion, layout analysis, configuration).
package driven
