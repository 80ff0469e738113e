// Package sheets converts spreadsheet data to markdown grids with
// cell-anchored comment markers.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/driveport/internal/converters/annotate"
	"github.com/custodia-labs/driveport/internal/core/domain"
	"github.com/custodia-labs/driveport/internal/logger"
)

// Converter renders one markdown section per sheet. Every row is
// padded to the widest row observed in its sheet so the grid keeps a
// fixed column count, and comment markers are embedded directly in the
// owning cell's text.
type Converter struct{}

// New creates a tabular converter.
func New() *Converter {
	return &Converter{}
}

// cellRef identifies one cell within one sheet.
type cellRef struct {
	sheetID int64
	row     int
	col     int
}

// workbookAnchor is the source's comment anchor for spreadsheets:
// {"type":"workbook-range","uid":0,"range":"303498729"}.
type workbookAnchor struct {
	Type string `json:"type"`
	UID  int64  `json:"uid"`
}

// Convert renders all sheets with inline comment markers and a
// per-sheet comment section. Sheets with no data rows emit no section.
func (c *Converter) Convert(_ context.Context, data []domain.SheetData, comments []domain.Comment) (string, error) {
	cellComments := mapCommentsToCells(data, comments)

	var sections []string
	for _, sheet := range data {
		if len(sheet.Rows) == 0 {
			logger.Debug("Skipping empty sheet: %s", sheet.Name)
			continue
		}
		sections = append(sections, renderSheet(sheet, cellComments, comments))
	}

	return strings.Join(sections, "\n"), nil
}

// mapCommentsToCells resolves each comment's anchor to a sheet and
// scans that sheet for a cell whose stringified value exactly matches
// the snippet. Comments whose anchor or snippet cannot be resolved are
// left unanchored; they still appear in their sheet's comment section
// when the anchor names a known sheet.
func mapCommentsToCells(data []domain.SheetData, comments []domain.Comment) map[cellRef][]int {
	sheetsByID := make(map[int64]domain.SheetData, len(data))
	for _, s := range data {
		sheetsByID[s.SheetID] = s
	}

	cellComments := make(map[cellRef][]int)
	for i, comment := range comments {
		snippet := strings.TrimSpace(comment.Snippet)
		if comment.Anchor == "" || snippet == "" {
			logger.Warn("Comment %d missing anchor or snippet, left unanchored", i)
			continue
		}

		var anchor workbookAnchor
		if err := json.Unmarshal([]byte(comment.Anchor), &anchor); err != nil {
			logger.Warn("Failed to parse anchor for comment %d: %v", i, err)
			continue
		}

		sheet, ok := sheetsByID[anchor.UID]
		if !ok {
			logger.Warn("Comment %d references unknown sheet %d", i, anchor.UID)
			continue
		}

		ref, found := findCell(sheet, snippet)
		if !found {
			logger.Warn("Comment %d snippet not found in sheet %s", i, sheet.Name)
			continue
		}
		cellComments[ref] = append(cellComments[ref], i)
	}
	return cellComments
}

// findCell returns the first cell in row-major order whose trimmed
// value equals the snippet.
func findCell(sheet domain.SheetData, snippet string) (cellRef, bool) {
	for r, row := range sheet.Rows {
		for col, cell := range row {
			if strings.TrimSpace(cell) == snippet {
				return cellRef{sheetID: sheet.SheetID, row: r, col: col}, true
			}
		}
	}
	return cellRef{}, false
}

func renderSheet(sheet domain.SheetData, cellComments map[cellRef][]int, comments []domain.Comment) string {
	lines := []string{fmt.Sprintf("# %s", sheet.Name), ""}

	var anchored []int
	width := maxWidth(sheet.Rows)

	// Grid rows with markers embedded in the owning cell.
	rendered := make([][]string, len(sheet.Rows))
	for r, row := range sheet.Rows {
		cells := make([]string, width)
		for col := 0; col < width; col++ {
			var cell string
			if col < len(row) {
				cell = escapeCell(row[col])
			}
			for _, idx := range cellComments[cellRef{sheetID: sheet.SheetID, row: r, col: col}] {
				cell += fmt.Sprintf("[%d]", idx+1)
				anchored = append(anchored, idx)
			}
			cells[col] = cell
		}
		rendered[r] = cells
	}

	lines = append(lines, renderGrid(rendered)...)
	lines = append(lines, "")

	if len(anchored) > 0 {
		sort.Ints(anchored)
		lines = append(lines, "## Comments", "")
		for _, idx := range anchored {
			lines = append(lines, annotate.EntryLines(idx+1, comments[idx])...)
		}
	}

	return strings.Join(lines, "\n")
}

// maxWidth returns the widest row's cell count.
func maxWidth(rows [][]string) int {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// escapeCell escapes characters that would break the grid delimiter.
func escapeCell(cell string) string {
	cell = strings.ReplaceAll(cell, "|", `\|`)
	return strings.ReplaceAll(cell, "\n", " ")
}

// renderGrid renders padded rows as a markdown table. The first row is
// treated as the header.
func renderGrid(rows [][]string) []string {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}

	header := rows[0]
	lines := []string{"| " + strings.Join(header, " | ") + " |"}

	seps := make([]string, len(header))
	for i := range seps {
		seps[i] = "---"
	}
	lines = append(lines, "|"+strings.Join(seps, "|")+"|")

	for _, row := range rows[1:] {
		lines = append(lines, "| "+strings.Join(row, " | ")+" |")
	}
	return lines
}
