package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/driveport/internal/converters"
	"github.com/custodia-labs/driveport/internal/core/domain"
	"github.com/custodia-labs/driveport/internal/core/ports/driven"
	"github.com/custodia-labs/driveport/internal/logger"
)

// Output MIME types requested from the source.
const (
	mimeMarkdown = "text/markdown"
	mimePDF      = "application/pdf"
)

// Exporter runs the single-item conversion pipeline: fetch the raw
// payload and comments, bind the kind's conversion strategy, and
// produce a fully assembled ExportedItem. It holds no transport state;
// the caller passes the fetcher set so each worker can use its own.
type Exporter struct {
	registry *converters.Registry
}

// NewExporter creates an exporter dispatching through the given
// strategy registry.
func NewExporter(registry *converters.Registry) *Exporter {
	return &Exporter{registry: registry}
}

// ExportByID fetches the item's metadata and exports it.
func (e *Exporter) ExportByID(ctx context.Context, f *driven.Fetchers, itemID string, format domain.ContentFormat) (*domain.ExportedItem, error) {
	item, err := f.Metadata.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return e.Export(ctx, f, item, format)
}

// Export converts one item whose metadata is already known.
// Folders and opaque files are not convertible and yield
// domain.ErrUnsupportedType; comment fetch failures degrade to an
// export without comments.
func (e *Exporter) Export(ctx context.Context, f *driven.Fetchers, item *domain.DriveItem, format domain.ContentFormat) (*domain.ExportedItem, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("%w: unknown format %q", domain.ErrInvalidInput, format)
	}
	if !item.IsExportable() {
		return nil, fmt.Errorf("%w: %s is a %s", domain.ErrUnsupportedType, item.ID, item.Kind)
	}

	comments, err := f.Comments.GetComments(ctx, item.ID)
	if err != nil {
		logger.Warn("Failed to fetch comments for %s, exporting without: %v", item.ID, err)
		comments = nil
	}

	exported := &domain.ExportedItem{
		ItemID:       item.ID,
		Kind:         item.Kind,
		Title:        item.Name,
		CreatedTime:  item.CreatedTime,
		ModifiedTime: item.ModifiedTime,
		Format:       format,
		Comments:     comments,
	}

	// PDF is a verbatim rendition: no annotation, no asset extraction.
	if format == domain.FormatPDF {
		content, err := f.Content.ExportContent(ctx, item.ID, mimePDF)
		if err != nil {
			return nil, fmt.Errorf("exporting %s as pdf: %w", item.ID, err)
		}
		exported.Content = content
		return exported, nil
	}

	src := converters.Source{Item: *item, Comments: comments}
	switch item.Kind {
	case domain.KindDocument:
		raw, err := f.Content.ExportContent(ctx, item.ID, mimeMarkdown)
		if err != nil {
			return nil, fmt.Errorf("exporting %s as markdown: %w", item.ID, err)
		}
		src.Markdown = string(raw)
	case domain.KindSpreadsheet:
		sheets, err := f.Content.FetchSpreadsheet(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("fetching spreadsheet %s: %w", item.ID, err)
		}
		src.Sheets = sheets
	case domain.KindPresentation:
		pres, err := f.Content.FetchPresentation(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("fetching presentation %s: %w", item.ID, err)
		}
		src.Presentation = pres
	}

	strategy, err := e.registry.Strategy(item.Kind)
	if err != nil {
		return nil, err
	}

	content, extracted, err := strategy.Convert(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", item.ID, err)
	}

	exported.Content = []byte(content)
	exported.Assets = extracted
	logger.Info("Exported %s %q (%d assets, %d comments)", item.Kind, item.Name, len(extracted), len(comments))
	return exported, nil
}
