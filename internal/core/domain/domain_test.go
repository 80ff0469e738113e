package domain

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFromMIMEType(t *testing.T) {
	tests := []struct {
		mimeType string
		want     ItemKind
	}{
		{MimeTypeGoogleDoc, KindDocument},
		{MimeTypeGoogleSheet, KindSpreadsheet},
		{MimeTypeGoogleSlides, KindPresentation},
		{MimeTypeFolder, KindFolder},
		{"application/pdf", KindFile},
		{"image/png", KindFile},
		{"", KindFile},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, KindFromMIMEType(tt.mimeType), tt.mimeType)
	}
}

func TestDriveItem_IsExportable(t *testing.T) {
	assert.True(t, DriveItem{Kind: KindDocument}.IsExportable())
	assert.True(t, DriveItem{Kind: KindSpreadsheet}.IsExportable())
	assert.True(t, DriveItem{Kind: KindPresentation}.IsExportable())
	assert.False(t, DriveItem{Kind: KindFile}.IsExportable())
	assert.False(t, DriveItem{Kind: KindFolder}.IsExportable())
}

func TestContentFormat_Valid(t *testing.T) {
	assert.True(t, FormatMarkdown.Valid())
	assert.True(t, FormatPDF.Valid())
	assert.False(t, ContentFormat("docx").Valid())
}

func TestExportedItem_ContentHash(t *testing.T) {
	a := &ExportedItem{Content: []byte("hello")}
	b := &ExportedItem{Content: []byte("hello")}
	c := &ExportedItem{Content: []byte("world")}

	require.NotEmpty(t, a.ContentHash())
	assert.Equal(t, a.ContentHash(), b.ContentHash())
	assert.NotEqual(t, a.ContentHash(), c.ContentHash())
}

func TestExportedItem_ContentExtension(t *testing.T) {
	assert.Equal(t, ".md", (&ExportedItem{Format: FormatMarkdown}).ContentExtension())
	assert.Equal(t, ".pdf", (&ExportedItem{Format: FormatPDF}).ContentExtension())
}

func TestBatchCollector_ConcurrentAppend(t *testing.T) {
	var c BatchCollector
	var wg sync.WaitGroup

	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			switch n % 3 {
			case 0:
				c.Success(BatchEntry{ItemID: "s"})
			case 1:
				c.Failure(BatchEntry{ItemID: "f"})
			case 2:
				c.Skip(BatchEntry{ItemID: "k"})
			}
		}(i)
	}
	wg.Wait()

	result := c.Result("run-1")
	assert.Equal(t, "run-1", result.RunID)
	assert.Len(t, result.Successes, 10)
	assert.Len(t, result.Failures, 10)
	assert.Len(t, result.Skipped, 10)
	assert.Equal(t, 30, result.TotalProcessed)
}

func TestBatchResult_TotalIsSumOfLists(t *testing.T) {
	var c BatchCollector
	c.Success(BatchEntry{ItemID: "a", Path: "/out/a"})
	c.Failure(BatchEntry{ItemID: "b", Error: "fetch failed"})
	c.Skip(BatchEntry{ItemID: "c", Reason: "already up-to-date"})

	result := c.Result("run-2")
	total := len(result.Successes) + len(result.Failures) + len(result.Skipped)
	assert.Equal(t, total, result.TotalProcessed)
}

func TestCacheRecord_TimeComparison(t *testing.T) {
	// Freshness uses parsed timestamps, not string comparison, so
	// differing timezone renditions of the same instant are equal.
	utc := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	plus2 := utc.In(time.FixedZone("CEST", 2*3600))

	rec := CacheRecord{ItemID: "x", ModifiedTime: utc}
	assert.False(t, rec.ModifiedTime.Before(plus2))
	assert.False(t, rec.ModifiedTime.After(plus2))
}
