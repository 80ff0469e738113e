package slides

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/driveport/internal/core/domain"
)

type stubFetcher struct {
	data []byte
	mime string
	err  error
}

func (f *stubFetcher) Fetch(_ context.Context, _ string) ([]byte, string, error) {
	return f.data, f.mime, f.err
}

func deck(slides ...domain.SlideData) *domain.Presentation {
	return &domain.Presentation{ID: "p1", Title: "Deck", Slides: slides}
}

func TestConvert_EmptyPresentation(t *testing.T) {
	conv := New(&stubFetcher{})

	for _, pres := range []*domain.Presentation{nil, deck()} {
		content, extracted, err := conv.Convert(context.Background(), pres, nil)
		require.NoError(t, err)
		assert.Equal(t, "# Empty Presentation\n", content)
		assert.Empty(t, extracted)
	}
}

func TestConvert_SlideCountPreserved(t *testing.T) {
	pres := deck(
		domain.SlideData{Index: 0, Text: "First slide text"},
		domain.SlideData{Index: 1},
		domain.SlideData{Index: 2, Text: "Third slide text"},
	)

	conv := New(&stubFetcher{})
	content, _, err := conv.Convert(context.Background(), pres, nil)
	require.NoError(t, err)

	assert.Contains(t, content, "# --- Slide 1 ---")
	assert.Contains(t, content, "# --- Slide 2 ---")
	assert.Contains(t, content, "# --- Slide 3 ---")
	// The text-free slide still produces a body.
	assert.Contains(t, content, "*(No text content)*")
}

func TestConvert_SpeakerNotes(t *testing.T) {
	pres := deck(domain.SlideData{Index: 0, Text: "Body", SpeakerNotes: "  remember the demo  "})

	conv := New(&stubFetcher{})
	content, _, err := conv.Convert(context.Background(), pres, nil)
	require.NoError(t, err)

	assert.Contains(t, content, "### Speaker Notes")
	assert.Contains(t, content, "remember the demo")
	// Notes are trimmed before rendering.
	assert.NotContains(t, content, "  remember the demo  ")
}

func TestConvert_BlankSpeakerNotesOmitted(t *testing.T) {
	pres := deck(domain.SlideData{Index: 0, Text: "Body", SpeakerNotes: "   \n  "})

	conv := New(&stubFetcher{})
	content, _, err := conv.Convert(context.Background(), pres, nil)
	require.NoError(t, err)
	assert.NotContains(t, content, "### Speaker Notes")
}

func TestConvert_ImagesDownloaded(t *testing.T) {
	pres := deck(domain.SlideData{
		Index:  0,
		Text:   "Body",
		Images: []domain.SlideImage{{URL: "https://example.com/a.png"}},
	})

	conv := New(&stubFetcher{data: []byte{0x89}, mime: "image/png"})
	content, extracted, err := conv.Convert(context.Background(), pres, nil)
	require.NoError(t, err)

	require.Len(t, extracted, 1)
	assert.Equal(t, "slide_image_001.png", extracted[0].Name)
	assert.Contains(t, content, "![slide_image_001](assets/slide_image_001.png)")
}

func TestConvert_ImageFetchFailureYieldsPlaceholder(t *testing.T) {
	pres := deck(domain.SlideData{
		Index:  0,
		Text:   "Body",
		Images: []domain.SlideImage{{URL: "https://example.com/broken.png"}},
	})

	conv := New(&stubFetcher{err: errors.New("connection refused")})
	content, extracted, err := conv.Convert(context.Background(), pres, nil)
	require.NoError(t, err)

	// The placeholder is recorded but never referenced in the markdown.
	require.Len(t, extracted, 1)
	assert.Empty(t, extracted[0].Content)
	assert.NotContains(t, content, "slide_image_001")
}

func TestConvert_ImageCounterSpansSlides(t *testing.T) {
	pres := deck(
		domain.SlideData{Index: 0, Images: []domain.SlideImage{{URL: "u1"}}},
		domain.SlideData{Index: 1, Images: []domain.SlideImage{{URL: "u2"}}},
	)

	conv := New(&stubFetcher{data: []byte{1}, mime: "image/png"})
	_, extracted, err := conv.Convert(context.Background(), pres, nil)
	require.NoError(t, err)

	require.Len(t, extracted, 2)
	assert.Equal(t, "slide_image_001.png", extracted[0].Name)
	assert.Equal(t, "slide_image_002.png", extracted[1].Name)
}

func TestConvert_CommentAnchoredToFirstContainingSlide(t *testing.T) {
	pres := deck(
		domain.SlideData{Index: 0, Text: "shared phrase here"},
		domain.SlideData{Index: 1, Text: "also a shared phrase here"},
	)
	comments := []domain.Comment{
		{Author: "dan", Body: "which slide?", Snippet: "shared phrase"},
	}

	conv := New(&stubFetcher{})
	content, _, err := conv.Convert(context.Background(), pres, comments)
	require.NoError(t, err)

	// The first occurrence in the rendered content gets the marker.
	first := strings.Index(content, "shared phrase[1]")
	second := strings.Index(content, "# --- Slide 2 ---")
	require.NotEqual(t, -1, first)
	assert.Less(t, first, second)

	assert.Contains(t, content, "## Comments")
	assert.Contains(t, content, "dan: which slide?")
}

func TestConvert_UnmatchedCommentListedUnanchored(t *testing.T) {
	pres := deck(domain.SlideData{Index: 0, Text: "Body"})
	comments := []domain.Comment{
		{Author: "eve", Body: "old note", Snippet: "deleted text"},
	}

	conv := New(&stubFetcher{})
	content, _, err := conv.Convert(context.Background(), pres, comments)
	require.NoError(t, err)

	assert.NotContains(t, content, "Body[1]")
	assert.Contains(t, content, "### [1]")
	assert.Contains(t, content, "eve: old note")
}
