package docs

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/driveport/internal/core/domain"
)

func TestConvert_PlainMarkdownPassthrough(t *testing.T) {
	conv := New()
	content, extracted, err := conv.Convert(context.Background(), "# Title\n\nBody text.\n", nil)

	require.NoError(t, err)
	assert.Empty(t, extracted)
	assert.Equal(t, "# Title\n\nBody text.\n", content)
}

func TestConvert_AssetsAndComments(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte{0x89, 0x50})
	md := fmt.Sprintf("Intro paragraph\n\n![][image1]\n\n[image1]: <data:image/png;base64,%s>\n", payload)

	comments := []domain.Comment{
		{
			Author:      "alice",
			Body:        "clarify this",
			Snippet:     "Intro paragraph",
			CreatedTime: time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
		},
	}

	conv := New()
	content, extracted, err := conv.Convert(context.Background(), md, comments)
	require.NoError(t, err)

	require.Len(t, extracted, 1)
	assert.Equal(t, "image1.png", extracted[0].Name)

	assert.Contains(t, content, "Intro paragraph[1]")
	assert.Contains(t, content, "![image1](assets/image1.png)")
	assert.Contains(t, content, "### [1]")
	assert.Contains(t, content, "[2025-01-02 10:00] alice: clarify this")

	// Marker insertion happens before the trailing block.
	assert.Less(t, strings.Index(content, "Intro paragraph[1]"), strings.Index(content, "Comments:"))
}

func TestConvert_UnmatchedCommentStillListed(t *testing.T) {
	comments := []domain.Comment{
		{Author: "bob", Body: "stale note", Snippet: "text that was edited away"},
	}

	conv := New()
	content, _, err := conv.Convert(context.Background(), "current content", comments)
	require.NoError(t, err)

	assert.NotContains(t, content, "current content[1]")
	assert.Contains(t, content, "### [1]")
	assert.Contains(t, content, "bob: stale note")
}

func TestConvert_NoCommentsNoTrailingBlock(t *testing.T) {
	conv := New()
	content, _, err := conv.Convert(context.Background(), "body", nil)
	require.NoError(t, err)
	assert.NotContains(t, content, "Comments:")
	assert.NotContains(t, content, "---")
}
