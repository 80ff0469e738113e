package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/driveport/internal/core/domain"
	"github.com/custodia-labs/driveport/internal/core/ports/driven"
	"github.com/custodia-labs/driveport/internal/logger"
)

// DefaultWorkers is the worker pool size when none is configured.
const DefaultWorkers = 4

// ExportOptions is the immutable batch configuration, fixed at
// orchestrator construction.
type ExportOptions struct {
	// Format is the output format for convertible items.
	Format domain.ContentFormat

	// Workers bounds the export pool. Zero or negative means
	// DefaultWorkers.
	Workers int

	// MaxDepth limits folder recursion: -1 is unbounded, 0 exports
	// direct children only.
	MaxDepth int
}

func (o ExportOptions) withDefaults() ExportOptions {
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.Format == "" {
		o.Format = domain.FormatMarkdown
	}
	return o
}

// workUnit is one leaf item bound to the store that will hold its
// export, so hierarchy placement is decided during traversal.
type workUnit struct {
	item  domain.DriveItem
	store driven.ExportStore
}

// BatchOrchestrator exports many items with bounded concurrency.
// Folder trees are flattened single-threaded first, then leaf units
// fan out to a worker pool. Every worker builds its own fetcher set
// through the factory; nothing transport-bound is shared.
type BatchOrchestrator struct {
	exporter *Exporter
	factory  driven.FetcherFactory
	store    driven.ExportStore
	opts     ExportOptions
}

// NewBatchOrchestrator creates an orchestrator writing under store.
func NewBatchOrchestrator(exporter *Exporter, factory driven.FetcherFactory, store driven.ExportStore, opts ExportOptions) *BatchOrchestrator {
	return &BatchOrchestrator{
		exporter: exporter,
		factory:  factory,
		store:    store,
		opts:     opts.withDefaults(),
	}
}

// ExportByIDs exports a flat list of item IDs. Folders in the list are
// skipped, unresolvable IDs become failure entries, and the batch
// always runs to completion. The returned error reflects operational
// failures (transport construction, cancellation), never per-item
// outcomes.
func (b *BatchOrchestrator) ExportByIDs(ctx context.Context, ids []string) (*domain.BatchResult, error) {
	runID := uuid.NewString()
	logger.Info("Starting batch %s for %d items", runID, len(ids))

	f, err := b.factory.NewFetchers(ctx)
	if err != nil {
		return nil, fmt.Errorf("building fetchers: %w", err)
	}

	collector := &domain.BatchCollector{}
	var units []workUnit
	for _, id := range ids {
		item, err := f.Metadata.GetItem(ctx, id)
		if err != nil {
			collector.Failure(domain.BatchEntry{ItemID: id, Error: err.Error()})
			continue
		}
		if item.Kind == domain.KindFolder {
			collector.Skip(domain.BatchEntry{ItemID: id, Name: item.Name, Reason: "not a file"})
			continue
		}
		units = append(units, workUnit{item: *item, store: b.store})
	}

	if err := b.runPool(ctx, units, collector); err != nil {
		return nil, err
	}
	return collector.Result(runID), nil
}

// ExportFolder exports a folder tree. Traversal is single-threaded:
// the tree is flattened to leaf units first, with folder records and
// children/ subdirectories written along the way, then the units fan
// out to the pool. A visited set makes shortcut cycles terminate, with
// each folder processed once.
func (b *BatchOrchestrator) ExportFolder(ctx context.Context, folderID string) (*domain.BatchResult, error) {
	runID := uuid.NewString()

	f, err := b.factory.NewFetchers(ctx)
	if err != nil {
		return nil, fmt.Errorf("building fetchers: %w", err)
	}

	folder, err := f.Metadata.GetItem(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if folder.Kind != domain.KindFolder {
		return nil, fmt.Errorf("%w: %s is not a folder", domain.ErrInvalidInput, folderID)
	}
	logger.Info("Starting folder batch %s for %q", runID, folder.Name)

	collector := &domain.BatchCollector{}
	visited := map[string]bool{}
	units := b.flatten(ctx, f, folder, b.store, 0, visited, collector)

	if err := b.runPool(ctx, units, collector); err != nil {
		return nil, err
	}
	return collector.Result(runID), nil
}

// flatten walks one folder, writes its record, and returns the leaf
// units found beneath it.
func (b *BatchOrchestrator) flatten(ctx context.Context, f *driven.Fetchers, folder *domain.DriveItem, store driven.ExportStore, depth int, visited map[string]bool, collector *domain.BatchCollector) []workUnit {
	if visited[folder.ID] {
		logger.Debug("Folder %s already visited, cycle broken", folder.ID)
		return nil
	}
	visited[folder.ID] = true

	if _, err := store.WriteFolderRecord(folder); err != nil {
		collector.Failure(domain.BatchEntry{ItemID: folder.ID, Name: folder.Name, Error: err.Error()})
		return nil
	}

	children, err := f.Metadata.ListChildren(ctx, folder.ID)
	if err != nil {
		collector.Failure(domain.BatchEntry{ItemID: folder.ID, Name: folder.Name, Error: err.Error()})
		return nil
	}

	childStore := store.Sub(filepath.Join(folder.ID, "children"))

	var units []workUnit
	for _, child := range children {
		if child.Kind == domain.KindFolder {
			if b.opts.MaxDepth >= 0 && depth >= b.opts.MaxDepth {
				collector.Skip(domain.BatchEntry{ItemID: child.ID, Name: child.Name, Reason: "max depth reached"})
				continue
			}
			sub := child
			units = append(units, b.flatten(ctx, f, &sub, childStore, depth+1, visited, collector)...)
			continue
		}
		units = append(units, workUnit{item: child, store: childStore})
	}
	return units
}

// runPool drains units through an errgroup-bounded worker pool. Each
// worker owns a fetcher set for its lifetime.
func (b *BatchOrchestrator) runPool(ctx context.Context, units []workUnit, collector *domain.BatchCollector) error {
	if len(units) == 0 {
		return nil
	}

	jobs := make(chan workUnit)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for _, u := range units {
			select {
			case jobs <- u:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	workers := b.opts.Workers
	if workers > len(units) {
		workers = len(units)
	}
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			f, err := b.factory.NewFetchers(ctx)
			if err != nil {
				return fmt.Errorf("building worker fetchers: %w", err)
			}
			for unit := range jobs {
				b.processUnit(ctx, f, unit, collector)
			}
			return nil
		})
	}

	return g.Wait()
}

// processUnit exports one leaf item and records the outcome. A panic
// in the pipeline becomes a failure entry so one poisoned item never
// takes the batch down.
func (b *BatchOrchestrator) processUnit(ctx context.Context, f *driven.Fetchers, unit workUnit, collector *domain.BatchCollector) {
	item := unit.item
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Recovered panic exporting %s: %v", item.ID, r)
			collector.Failure(domain.BatchEntry{ItemID: item.ID, Name: item.Name, Error: fmt.Sprintf("panic: %v", r)})
		}
	}()

	if !item.IsExportable() {
		b.downloadRaw(ctx, f, unit, collector)
		return
	}

	skip, err := unit.store.ShouldSkip(ctx, item.ID, item.ModifiedTime)
	if err != nil {
		collector.Failure(domain.BatchEntry{ItemID: item.ID, Name: item.Name, Error: err.Error()})
		return
	}
	if skip {
		collector.Skip(domain.BatchEntry{ItemID: item.ID, Name: item.Name, Reason: "unchanged since last export"})
		return
	}

	exported, err := b.exporter.Export(ctx, f, &item, b.opts.Format)
	if err != nil {
		collector.Failure(domain.BatchEntry{ItemID: item.ID, Name: item.Name, Error: err.Error()})
		return
	}

	path, err := unit.store.Write(ctx, exported)
	if err != nil {
		collector.Failure(domain.BatchEntry{ItemID: item.ID, Name: item.Name, Error: err.Error()})
		return
	}
	collector.Success(domain.BatchEntry{ItemID: item.ID, Name: item.Name, Path: path, Kind: item.Kind})
}

// downloadRaw stores an opaque file verbatim, skipping files already
// on disk.
func (b *BatchOrchestrator) downloadRaw(ctx context.Context, f *driven.Fetchers, unit workUnit, collector *domain.BatchCollector) {
	item := unit.item
	if unit.store.RawFileExists(item.ID, item.Name) {
		collector.Skip(domain.BatchEntry{ItemID: item.ID, Name: item.Name, Reason: "already downloaded"})
		return
	}

	data, err := f.Content.Download(ctx, item.ID)
	if err != nil {
		collector.Failure(domain.BatchEntry{ItemID: item.ID, Name: item.Name, Error: err.Error()})
		return
	}

	path, err := unit.store.WriteRawFile(item.ID, item.Name, data)
	if err != nil {
		collector.Failure(domain.BatchEntry{ItemID: item.ID, Name: item.Name, Error: err.Error()})
		return
	}
	collector.Success(domain.BatchEntry{ItemID: item.ID, Name: item.Name, Path: path, Kind: item.Kind})
}
