// Package slides adapts the Google Slides v1 API to the presentation
// half of the content fetcher port.
package slides

import (
	"context"
	"strings"

	slidesapi "google.golang.org/api/slides/v1"

	"github.com/custodia-labs/driveport/internal/connectors/google"
	"github.com/custodia-labs/driveport/internal/core/domain"
)

// notesBodyPlaceholder marks the speaker-notes text box on a notes page.
const notesBodyPlaceholder = "BODY"

// Fetcher wraps one Slides service handle. Not safe for sharing across
// workers.
type Fetcher struct {
	svc     *slidesapi.Service
	limiter *google.RateLimiter
}

// NewFetcher creates a fetcher over an authenticated Slides service.
func NewFetcher(svc *slidesapi.Service, limiter *google.RateLimiter) *Fetcher {
	return &Fetcher{svc: svc, limiter: limiter}
}

// FetchPresentation reads the deck's structure: per-slide text in
// element order, speaker notes, and the content URLs of embedded
// images.
func (f *Fetcher) FetchPresentation(ctx context.Context, itemID string) (*domain.Presentation, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	pres, err := f.svc.Presentations.Get(itemID).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}

	result := &domain.Presentation{
		ID:    pres.PresentationId,
		Title: pres.Title,
	}
	for i, slide := range pres.Slides {
		data := domain.SlideData{
			Index:    i,
			ObjectID: slide.ObjectId,
			Text:     strings.TrimSpace(elementsText(slide.PageElements)),
			Images:   slideImages(slide.PageElements),
		}
		if slide.SlideProperties != nil && slide.SlideProperties.NotesPage != nil {
			data.SpeakerNotes = notesText(slide.SlideProperties.NotesPage)
		}
		result.Slides = append(result.Slides, data)
	}
	return result, nil
}

// elementsText concatenates the text runs of all shapes in element
// order, descending into groups.
func elementsText(elements []*slidesapi.PageElement) string {
	var sb strings.Builder
	for _, e := range elements {
		if e.Shape != nil && e.Shape.Text != nil {
			writeShapeText(&sb, e.Shape)
		}
		if e.ElementGroup != nil {
			sb.WriteString(elementsText(e.ElementGroup.Children))
		}
	}
	return sb.String()
}

func writeShapeText(sb *strings.Builder, shape *slidesapi.Shape) {
	for _, te := range shape.Text.TextElements {
		if te.TextRun != nil {
			sb.WriteString(te.TextRun.Content)
		}
	}
}

// slideImages collects embedded images with a resolvable content URL.
func slideImages(elements []*slidesapi.PageElement) []domain.SlideImage {
	var images []domain.SlideImage
	for _, e := range elements {
		if e.Image != nil && e.Image.ContentUrl != "" {
			images = append(images, domain.SlideImage{
				URL:         e.Image.ContentUrl,
				Title:       e.Title,
				Description: e.Description,
			})
		}
		if e.ElementGroup != nil {
			images = append(images, slideImages(e.ElementGroup.Children)...)
		}
	}
	return images
}

// notesText extracts the speaker notes body from a notes page.
func notesText(page *slidesapi.Page) string {
	var sb strings.Builder
	for _, e := range page.PageElements {
		if e.Shape == nil || e.Shape.Text == nil || e.Shape.Placeholder == nil {
			continue
		}
		if e.Shape.Placeholder.Type != notesBodyPlaceholder {
			continue
		}
		writeShapeText(&sb, e.Shape)
	}
	return strings.TrimSpace(sb.String())
}
