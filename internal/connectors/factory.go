package connectors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/driveport/internal/connectors/google"
	drivefetch "github.com/custodia-labs/driveport/internal/connectors/google/drive"
	sheetsfetch "github.com/custodia-labs/driveport/internal/connectors/google/sheets"
	slidesfetch "github.com/custodia-labs/driveport/internal/connectors/google/slides"
	"github.com/custodia-labs/driveport/internal/core/domain"
	"github.com/custodia-labs/driveport/internal/core/ports/driven"
)

// GoogleFactory builds independent Google Workspace fetcher sets.
// Each NewFetchers call constructs its own Drive, Sheets and Slides
// service handles and rate limiters.
type GoogleFactory struct {
	provider driven.TokenProvider
}

var _ driven.FetcherFactory = (*GoogleFactory)(nil)

// NewGoogleFactory creates a factory drawing access tokens from
// provider.
func NewGoogleFactory(provider driven.TokenProvider) *GoogleFactory {
	return &GoogleFactory{provider: provider}
}

// NewFetchers builds a fresh fetcher set.
func (g *GoogleFactory) NewFetchers(ctx context.Context) (*driven.Fetchers, error) {
	ts := google.NewTokenSource(ctx, g.provider)

	driveSvc, err := google.NewDriveService(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("%w: creating drive service: %v", domain.ErrTransport, err)
	}
	sheetsSvc, err := google.NewSheetsService(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("%w: creating sheets service: %v", domain.ErrTransport, err)
	}
	slidesSvc, err := google.NewSlidesService(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("%w: creating slides service: %v", domain.ErrTransport, err)
	}

	drive := drivefetch.NewFetcher(driveSvc, google.NewRateLimiter(google.ServiceDrive))
	content := &googleContent{
		drive:  drive,
		sheets: sheetsfetch.NewFetcher(sheetsSvc, google.NewRateLimiter(google.ServiceSheets)),
		slides: slidesfetch.NewFetcher(slidesSvc, google.NewRateLimiter(google.ServiceSlides)),
	}

	return &driven.Fetchers{
		Metadata: drive,
		Content:  content,
		Comments: drive,
	}, nil
}

// googleContent joins the three per-API adapters into one content
// fetcher.
type googleContent struct {
	drive  *drivefetch.Fetcher
	sheets *sheetsfetch.Fetcher
	slides *slidesfetch.Fetcher
}

var _ driven.ContentFetcher = (*googleContent)(nil)

func (c *googleContent) ExportContent(ctx context.Context, itemID, mimeType string) ([]byte, error) {
	return c.drive.ExportContent(ctx, itemID, mimeType)
}

func (c *googleContent) FetchSpreadsheet(ctx context.Context, itemID string) ([]domain.SheetData, error) {
	return c.sheets.FetchSpreadsheet(ctx, itemID)
}

func (c *googleContent) FetchPresentation(ctx context.Context, itemID string) (*domain.Presentation, error) {
	return c.slides.FetchPresentation(ctx, itemID)
}

func (c *googleContent) Download(ctx context.Context, itemID string) ([]byte, error) {
	return c.drive.Download(ctx, itemID)
}
