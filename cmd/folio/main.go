// Command folio is the command line interface for converting works
// into markdown artifacts and curating them into chunks.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/folio-cli/cgo/layout"
	"github.com/custodia-labs/folio-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/folio-cli/internal/adapters/driven/storage/disk"
	"github.com/custodia-labs/folio-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/folio-cli/internal/converters/epub"
	"github.com/custodia-labs/folio-cli/internal/converters/pdf"
	"github.com/custodia-labs/folio-cli/internal/core/services"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewStore(cfg.GetString(file.KeyDataDir))
	if err != nil {
		return fmt.Errorf("opening metadata store: %w", err)
	}
	defer store.Close()

	artifacts, err := disk.NewArtifactStore(cfg.GetString(file.KeyOutputDir))
	if err != nil {
		return fmt.Errorf("opening artifact store: %w", err)
	}

	analyser, err := layout.New()
	if err != nil {
		return fmt.Errorf("initialising layout engine: %w", err)
	}
	defer analyser.Close()

	registry := services.NewConverterRegistry(
		pdf.New(analyser),
		epub.New(),
	)

	var convOpts []services.ConversionOption
	if secs := cfg.GetInt(file.KeyConvertTimeoutSeconds); secs > 0 {
		convOpts = append(convOpts, services.WithTimeout(time.Duration(secs)*time.Second))
	}
	if slots := cfg.GetInt(file.KeyGPUSlotsPerMinute); slots > 0 {
		convOpts = append(convOpts, services.WithGPULimit(float64(slots)/60, slots))
	}

	conversion := services.NewConversionService(
		store.WorkStore(), artifacts, registry, analyser, convOpts...)

	var curOpts []services.CurationOption
	if depth := cfg.GetInt(file.KeyVectorizeDepth); depth > 0 {
		curOpts = append(curOpts, services.WithVectorizeDepth(depth))
	}

	curation := services.NewCurationService(
		store.WorkStore(), artifacts, store.SuggestionStore(), store.ChunkStore(),
		conversion.Locks(), curOpts...)

	cli.SetVersion(version)
	cli.SetServices(&cli.Services{
		Work:       services.NewWorkService(store.WorkStore(), artifacts, store.SuggestionStore(), store.ChunkStore()),
		Conversion: conversion,
		Inspection: services.NewInspectionService(store.WorkStore(), artifacts),
		Curation:   curation,
		Config:     cfg,
	})

	return cli.Execute()
}
