// Package annotate relocates review comments inside converted content.
// Matching is snippet-based and best-effort: if the document was edited
// after a comment was created, the snippet may attach to an unrelated
// span with identical text. That drift is a known limitation of
// snippet anchoring and is not detected here.
package annotate

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/driveport/internal/core/domain"
)

// InsertMarker inserts a numbered marker "[n]" immediately after the
// first occurrence of snippet in content. Returns the (possibly
// unchanged) content and whether a marker was inserted.
func InsertMarker(content, snippet string, n int) (string, bool) {
	if snippet == "" {
		return content, false
	}
	idx := strings.Index(content, snippet)
	if idx < 0 {
		return content, false
	}
	at := idx + len(snippet)
	return content[:at] + fmt.Sprintf("[%d]", n) + content[at:], true
}

// Annotate inserts one marker per comment into flowing-text content.
// Markers are numbered by input comment order (1-based), and each
// comment searches from the start of the document, so two comments
// with the same snippet mark the same first occurrence. Comments with
// an empty or unmatched snippet contribute no marker but are still
// listed by Block.
func Annotate(content string, comments []domain.Comment) string {
	for i, c := range comments {
		content, _ = InsertMarker(content, c.Snippet, i+1)
	}
	return content
}

// EntryLines renders one numbered comment entry followed by its
// replies in original order.
func EntryLines(n int, c domain.Comment) []string {
	lines := []string{
		fmt.Sprintf("### [%d]", n),
		"",
		fmt.Sprintf("[%s] %s: %s", c.CreatedTime.Format(domain.TimestampLayout), authorOrUnknown(c.Author), c.Body),
		"",
	}
	for _, r := range c.Replies {
		lines = append(lines, fmt.Sprintf("  - [%s] %s: %s",
			r.CreatedTime.Format(domain.TimestampLayout), authorOrUnknown(r.Author), r.Body))
	}
	if len(c.Replies) > 0 {
		lines = append(lines, "")
	}
	return lines
}

// Block renders the trailing comment-definitions block. Every input
// comment appears exactly once, in input order, whether or not it was
// anchored inline. Returns the empty string when there are no comments.
func Block(heading string, comments []domain.Comment) string {
	if len(comments) == 0 {
		return ""
	}

	lines := []string{"", "---", "", heading, ""}
	for i, c := range comments {
		lines = append(lines, EntryLines(i+1, c)...)
	}
	return strings.Join(lines, "\n")
}

func authorOrUnknown(author string) string {
	if author == "" {
		return "Unknown"
	}
	return author
}
