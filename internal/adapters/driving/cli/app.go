package cli

import (
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/driveport/internal/adapters/driven/config/file"
	"github.com/custodia-labs/driveport/internal/adapters/driven/exportcache"
	"github.com/custodia-labs/driveport/internal/connectors"
	"github.com/custodia-labs/driveport/internal/converters"
	"github.com/custodia-labs/driveport/internal/converters/assets"
	"github.com/custodia-labs/driveport/internal/core/ports/driven"
	"github.com/custodia-labs/driveport/internal/core/services"
)

// newFetcherFactory builds the transport factory. A package variable
// so tests can substitute a fake.
var newFetcherFactory = func(store driven.ConfigStore) driven.FetcherFactory {
	return connectors.NewGoogleFactory(file.NewTokenProvider(store))
}

// app bundles the wired dependency graph for one command invocation.
type app struct {
	config   file.ExportConfig
	index    *exportcache.Index
	store    *exportcache.Store
	factory  driven.FetcherFactory
	exporter *services.Exporter
}

// newApp loads configuration and wires the export stack. An empty
// outputOverride keeps the configured output directory.
func newApp(outputOverride string) (*app, error) {
	cfgStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg := file.LoadExportConfig(cfgStore)

	outputDir := cfg.OutputDir
	if outputOverride != "" {
		outputDir = outputOverride
	}

	index, err := exportcache.NewIndex(filepath.Join(cfg.CacheDir, "index.db"))
	if err != nil {
		return nil, fmt.Errorf("opening cache index: %w", err)
	}

	registry := converters.NewRegistry(assets.NewHTTPFetcher(0))
	return &app{
		config:   cfg,
		index:    index,
		store:    exportcache.New(outputDir, index),
		factory:  newFetcherFactory(cfgStore),
		exporter: services.NewExporter(registry),
	}, nil
}

// Close releases the cache index handle.
func (a *app) Close() error {
	return a.index.Close()
}

// orchestrator builds a batch orchestrator with the given options.
func (a *app) orchestrator(opts services.ExportOptions) *services.BatchOrchestrator {
	return services.NewBatchOrchestrator(a.exporter, a.factory, a.store, opts)
}
