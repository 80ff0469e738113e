// Package converters holds the per-kind conversion strategies that turn
// raw source payloads into annotated markdown. One strategy is bound
// per item at dispatch time; shared code never branches on item kind.
package converters

import (
	"context"
	"fmt"

	"github.com/custodia-labs/driveport/internal/converters/assets"
	"github.com/custodia-labs/driveport/internal/converters/docs"
	"github.com/custodia-labs/driveport/internal/converters/sheets"
	"github.com/custodia-labs/driveport/internal/converters/slides"
	"github.com/custodia-labs/driveport/internal/core/domain"
)

// Source carries the already-fetched payloads a strategy consumes.
// Exactly one of Markdown, Sheets or Presentation is populated,
// matching the item kind.
type Source struct {
	Item         domain.DriveItem
	Comments     []domain.Comment
	Markdown     string
	Sheets       []domain.SheetData
	Presentation *domain.Presentation
}

// Strategy converts one document kind to annotated markdown.
type Strategy interface {
	Convert(ctx context.Context, src Source) (content string, extracted []domain.Asset, err error)
}

// Registry binds conversion strategies to item kinds.
type Registry struct {
	strategies map[domain.ItemKind]Strategy
}

// NewRegistry creates a registry with the built-in strategies.
// The URL fetcher is used by the slide-deck strategy to download
// remote images.
func NewRegistry(fetch assets.URLFetcher) *Registry {
	return &Registry{
		strategies: map[domain.ItemKind]Strategy{
			domain.KindDocument:     docsStrategy{docs.New()},
			domain.KindSpreadsheet:  sheetsStrategy{sheets.New()},
			domain.KindPresentation: slidesStrategy{slides.New(fetch)},
		},
	}
}

// Strategy returns the conversion strategy for a kind.
// Returns domain.ErrUnsupportedType for non-exportable kinds.
func (r *Registry) Strategy(kind domain.ItemKind) (Strategy, error) {
	s, ok := r.strategies[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no converter for kind %q", domain.ErrUnsupportedType, kind)
	}
	return s, nil
}

type docsStrategy struct {
	conv *docs.Converter
}

func (s docsStrategy) Convert(ctx context.Context, src Source) (string, []domain.Asset, error) {
	return s.conv.Convert(ctx, src.Markdown, src.Comments)
}

type sheetsStrategy struct {
	conv *sheets.Converter
}

func (s sheetsStrategy) Convert(ctx context.Context, src Source) (string, []domain.Asset, error) {
	content, err := s.conv.Convert(ctx, src.Sheets, src.Comments)
	return content, nil, err
}

type slidesStrategy struct {
	conv *slides.Converter
}

func (s slidesStrategy) Convert(ctx context.Context, src Source) (string, []domain.Asset, error) {
	return s.conv.Convert(ctx, src.Presentation, src.Comments)
}
