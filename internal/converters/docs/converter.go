// Package docs converts Google Docs flowing-text markdown exports.
package docs

import (
	"context"

	"github.com/custodia-labs/driveport/internal/converters/annotate"
	"github.com/custodia-labs/driveport/internal/converters/assets"
	"github.com/custodia-labs/driveport/internal/core/domain"
	"github.com/custodia-labs/driveport/internal/logger"
)

// Converter processes a flowing-text document: embedded assets are
// extracted and rewritten to local references, comment markers are
// inserted by snippet match, and the trailing comment block is
// appended. Original content tokens are never reordered or deleted.
type Converter struct{}

// New creates a flowing-text converter.
func New() *Converter {
	return &Converter{}
}

// Convert returns the annotated markdown and the extracted assets.
func (c *Converter) Convert(_ context.Context, markdown string, comments []domain.Comment) (string, []domain.Asset, error) {
	content, extracted := assets.ExtractFromMarkdown(markdown)

	if len(comments) > 0 {
		content = annotate.Annotate(content, comments)
		content += annotate.Block("Comments:", comments)
		logger.Info("Annotated document with %d comments", len(comments))
	}

	return content, extracted, nil
}
