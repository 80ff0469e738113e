// Package slides converts structured slide decks to markdown, one
// section per slide in original order.
package slides

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/driveport/internal/converters/annotate"
	"github.com/custodia-labs/driveport/internal/converters/assets"
	"github.com/custodia-labs/driveport/internal/core/domain"
	"github.com/custodia-labs/driveport/internal/logger"
)

const imagePrefix = "slide_image"

// Converter renders a presentation as ordinal slide sections with
// body text, extracted image references and speaker notes. Slide count
// is preserved: a slide with no text still emits a placeholder body.
type Converter struct {
	fetch assets.URLFetcher
}

// New creates a slide-deck converter. Remote slide images are
// downloaded through fetch; individual download failures become
// empty-content placeholder assets.
func New(fetch assets.URLFetcher) *Converter {
	return &Converter{fetch: fetch}
}

// Convert returns the annotated markdown and the downloaded assets.
func (c *Converter) Convert(ctx context.Context, pres *domain.Presentation, comments []domain.Comment) (string, []domain.Asset, error) {
	if pres == nil || len(pres.Slides) == 0 {
		logger.Warn("No slides found in presentation")
		return "# Empty Presentation\n", nil, nil
	}

	var parts []string
	var extracted []domain.Asset
	imageCounter := 0

	for _, slide := range pres.Slides {
		parts = append(parts, fmt.Sprintf("# --- Slide %d ---\n", slide.Index+1))

		if slide.Text != "" {
			parts = append(parts, slide.Text, "\n")
		} else {
			parts = append(parts, "*(No text content)*\n")
		}

		for _, img := range slide.Images {
			if img.URL == "" {
				continue
			}
			imageCounter++
			asset := assets.FetchRemote(ctx, c.fetch, img.URL, imagePrefix, imageCounter)
			extracted = append(extracted, asset)
			if len(asset.Content) > 0 {
				parts = append(parts, fmt.Sprintf("\n![%s](assets/%s)\n", asset.Anchor, asset.Name))
			}
		}

		if notes := strings.TrimSpace(slide.SpeakerNotes); notes != "" {
			parts = append(parts, fmt.Sprintf("\n\n### Speaker Notes\n\n%s\n", notes))
		}

		parts = append(parts, "\n")
	}

	content := strings.Join(parts, "")

	if len(comments) > 0 {
		content = c.annotateComments(content, pres.Slides, comments)
		content += annotate.Block("## Comments", comments)
	}

	return content, extracted, nil
}

// annotateComments inserts markers for comments whose snippet occurs in some
// slide's text; the first containing slide wins. Unmatched snippets
// stay unanchored and appear only in the trailing block.
func (c *Converter) annotateComments(content string, decks []domain.SlideData, comments []domain.Comment) string {
	for i, comment := range comments {
		snippet := strings.TrimSpace(comment.Snippet)
		if snippet == "" {
			logger.Warn("Comment %d has no snippet, left unanchored", i)
			continue
		}

		slideIdx := -1
		for _, slide := range decks {
			if strings.Contains(slide.Text, snippet) {
				slideIdx = slide.Index
				break
			}
		}
		if slideIdx < 0 {
			logger.Warn("Comment %d snippet not found on any slide", i)
			continue
		}

		var ok bool
		content, ok = annotate.InsertMarker(content, snippet, i+1)
		if ok {
			logger.Debug("Anchored comment %d on slide %d", i, slideIdx+1)
		}
	}
	return content
}
