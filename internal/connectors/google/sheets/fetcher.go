// Package sheets adapts the Google Sheets v4 API to the spreadsheet
// half of the content fetcher port.
package sheets

import (
	"context"
	"fmt"
	"strings"

	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/driveport/internal/connectors/google"
	"github.com/custodia-labs/driveport/internal/core/domain"
)

// Fetcher wraps one Sheets service handle. Not safe for sharing across
// workers.
type Fetcher struct {
	svc     *sheetsapi.Service
	limiter *google.RateLimiter
}

// NewFetcher creates a fetcher over an authenticated Sheets service.
func NewFetcher(svc *sheetsapi.Service, limiter *google.RateLimiter) *Fetcher {
	return &Fetcher{svc: svc, limiter: limiter}
}

// FetchSpreadsheet reads every sheet tab with formatted (display)
// cell values, in workbook order.
func (f *Fetcher) FetchSpreadsheet(ctx context.Context, itemID string) ([]domain.SheetData, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	meta, err := f.svc.Spreadsheets.Get(itemID).
		Fields("sheets(properties(sheetId,title))").
		Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	if len(meta.Sheets) == 0 {
		return nil, nil
	}

	ranges := make([]string, 0, len(meta.Sheets))
	for _, s := range meta.Sheets {
		ranges = append(ranges, quoteSheetTitle(s.Properties.Title))
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := f.svc.Spreadsheets.Values.BatchGet(itemID).
		Ranges(ranges...).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}

	data := make([]domain.SheetData, 0, len(meta.Sheets))
	for i, s := range meta.Sheets {
		sheet := domain.SheetData{
			Name:    s.Properties.Title,
			SheetID: s.Properties.SheetId,
		}
		if i < len(resp.ValueRanges) {
			sheet.Rows = stringifyRows(resp.ValueRanges[i].Values)
		}
		data = append(data, sheet)
	}
	return data, nil
}

// quoteSheetTitle quotes a sheet title for use as an A1 range so
// titles with spaces or quotes resolve.
func quoteSheetTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// stringifyRows converts the API's untyped cell grid to strings.
// FORMATTED_VALUE already matches what the UI displays.
func stringifyRows(values [][]interface{}) [][]string {
	if len(values) == 0 {
		return nil
	}
	rows := make([][]string, len(values))
	for r, row := range values {
		cells := make([]string, len(row))
		for c, v := range row {
			cells[c] = fmt.Sprint(v)
		}
		rows[r] = cells
	}
	return rows
}
