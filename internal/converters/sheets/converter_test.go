package sheets

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/driveport/internal/core/domain"
)

func sheet(name string, id int64, rows [][]string) domain.SheetData {
	return domain.SheetData{Name: name, SheetID: id, Rows: rows}
}

func TestConvert_RaggedRowsPaddedToWidestRow(t *testing.T) {
	data := []domain.SheetData{
		sheet("Sheet1", 0, [][]string{{"a", "b", "c"}, {"x"}}),
	}

	conv := New()
	content, err := conv.Convert(context.Background(), data, nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "# Sheet1", lines[0])
	assert.Equal(t, "| a | b | c |", lines[2])
	assert.Equal(t, "|---|---|---|", lines[3])
	// Second row padded with empty cells to the 3-column width.
	assert.Equal(t, "| x |  |  |", lines[4])
}

func TestConvert_EmptySheetEmitsNoSection(t *testing.T) {
	data := []domain.SheetData{
		sheet("Empty", 0, nil),
		sheet("Data", 1, [][]string{{"h"}, {"v"}}),
	}

	conv := New()
	content, err := conv.Convert(context.Background(), data, nil)
	require.NoError(t, err)

	assert.NotContains(t, content, "# Empty")
	assert.Contains(t, content, "# Data")
}

func TestConvert_PipeCharactersEscaped(t *testing.T) {
	data := []domain.SheetData{
		sheet("S", 0, [][]string{{"a|b"}}),
	}

	conv := New()
	content, err := conv.Convert(context.Background(), data, nil)
	require.NoError(t, err)
	assert.Contains(t, content, `a\|b`)
}

func TestConvert_CommentAnchoredToCell(t *testing.T) {
	data := []domain.SheetData{
		sheet("Budget", 7, [][]string{
			{"Item", "Cost"},
			{"Widget", "100"},
		}),
	}
	comments := []domain.Comment{
		{
			Author:      "carol",
			Body:        "double-check this figure",
			Snippet:     "100",
			Anchor:      `{"type":"workbook-range","uid":7,"range":"303498729"}`,
			CreatedTime: time.Date(2025, 2, 3, 9, 15, 0, 0, time.UTC),
		},
	}

	conv := New()
	content, err := conv.Convert(context.Background(), data, comments)
	require.NoError(t, err)

	// Marker embedded in the owning cell.
	assert.Contains(t, content, "| Widget | 100[1] |")
	// Per-sheet comment section.
	assert.Contains(t, content, "## Comments")
	assert.Contains(t, content, "[2025-02-03 09:15] carol: double-check this figure")
}

func TestConvert_SnippetNotInSheetIsUnanchored(t *testing.T) {
	data := []domain.SheetData{
		sheet("S", 0, [][]string{{"a"}, {"b"}}),
	}
	comments := []domain.Comment{
		{Body: "note", Snippet: "zzz", Anchor: `{"type":"workbook-range","uid":0}`},
	}

	conv := New()
	content, err := conv.Convert(context.Background(), data, comments)
	require.NoError(t, err)

	assert.NotContains(t, content, "[1]")
	assert.NotContains(t, content, "## Comments")
}

func TestConvert_AnchorUnknownSheetIgnored(t *testing.T) {
	data := []domain.SheetData{
		sheet("S", 0, [][]string{{"a"}}),
	}
	comments := []domain.Comment{
		{Body: "note", Snippet: "a", Anchor: `{"type":"workbook-range","uid":42}`},
	}

	conv := New()
	content, err := conv.Convert(context.Background(), data, comments)
	require.NoError(t, err)
	assert.NotContains(t, content, "a[1]")
}

func TestConvert_MalformedAnchorIgnored(t *testing.T) {
	data := []domain.SheetData{
		sheet("S", 0, [][]string{{"a"}}),
	}
	comments := []domain.Comment{
		{Body: "note", Snippet: "a", Anchor: "not json"},
	}

	conv := New()
	content, err := conv.Convert(context.Background(), data, comments)
	require.NoError(t, err)
	assert.NotContains(t, content, "a[1]")
}

func TestConvert_FixedColumnCountAcrossAllRows(t *testing.T) {
	data := []domain.SheetData{
		sheet("S", 0, [][]string{{"a"}, {"b", "c", "d"}, {"e", "f"}}),
	}

	conv := New()
	content, err := conv.Convert(context.Background(), data, nil)
	require.NoError(t, err)

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "|") {
			assert.Equal(t, 4, strings.Count(line, "|"), "line %q should have 3 columns", line)
		}
	}
}
