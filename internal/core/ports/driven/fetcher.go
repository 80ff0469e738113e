package driven

import (
	"context"

	"github.com/custodia-labs/driveport/internal/core/domain"
)

// MetadataFetcher retrieves item metadata and folder listings.
type MetadataFetcher interface {
	// GetItem fetches metadata for a single item.
	// Returns domain.ErrNotFound if the item does not exist.
	GetItem(ctx context.Context, itemID string) (*domain.DriveItem, error)

	// ListChildren lists the direct children of a folder.
	ListChildren(ctx context.Context, folderID string) ([]domain.DriveItem, error)
}

// ContentFetcher retrieves raw payloads for conversion.
type ContentFetcher interface {
	// ExportContent exports a Workspace document to the given output
	// MIME type (e.g. "text/markdown", "application/pdf").
	ExportContent(ctx context.Context, itemID, mimeType string) ([]byte, error)

	// FetchSpreadsheet reads all sheet tabs with formatted cell values.
	FetchSpreadsheet(ctx context.Context, itemID string) ([]domain.SheetData, error)

	// FetchPresentation reads the structured slide deck including
	// speaker notes and image URLs.
	FetchPresentation(ctx context.Context, itemID string) (*domain.Presentation, error)

	// Download retrieves an opaque file's bytes verbatim.
	Download(ctx context.Context, itemID string) ([]byte, error)
}

// CommentFetcher retrieves the ordered comment list for an item.
type CommentFetcher interface {
	GetComments(ctx context.Context, itemID string) ([]domain.Comment, error)
}

// Fetchers bundles the collaborator interfaces one worker uses.
// A Fetchers value wraps a single transport handle and must not be
// shared across workers; the underlying transport is not safe for
// concurrent use.
type Fetchers struct {
	Metadata MetadataFetcher
	Content  ContentFetcher
	Comments CommentFetcher
}

// FetcherFactory constructs an independent Fetchers per worker.
type FetcherFactory interface {
	NewFetchers(ctx context.Context) (*Fetchers, error)
}
