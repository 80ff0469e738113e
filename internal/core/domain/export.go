package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ContentFormat is the output format of an export.
type ContentFormat string

const (
	// FormatMarkdown produces annotated markdown with extracted assets.
	FormatMarkdown ContentFormat = "markdown"
	// FormatPDF produces the source's PDF rendition verbatim.
	FormatPDF ContentFormat = "pdf"
)

// Valid reports whether the format is one the engine can produce.
func (f ContentFormat) Valid() bool {
	return f == FormatMarkdown || f == FormatPDF
}

// Asset is a binary payload extracted from a converted document.
// Name is unique within one ExportedItem.
type Asset struct {
	// Name is the asset filename, e.g. "image1.png".
	Name string

	// Content is the raw binary data. Empty content marks a
	// placeholder for an asset whose fetch failed.
	Content []byte

	// Anchor is the reference identifier used by the document
	// content, e.g. "image1" or "slide_image_003".
	Anchor string

	// MIMEType is the asset content type.
	MIMEType string
}

// ExportedItem is a fully converted document with all associated data.
// It is owned by the export that produced it until persisted.
type ExportedItem struct {
	ItemID       string
	Kind         ItemKind
	Title        string
	CreatedTime  time.Time
	ModifiedTime time.Time

	// Content is markdown text or PDF bytes depending on Format.
	Content []byte
	Format  ContentFormat

	Assets   []Asset
	Comments []Comment
}

// ContentHash returns the hex-encoded SHA-256 of the content.
func (e *ExportedItem) ContentHash() string {
	sum := sha256.Sum256(e.Content)
	return hex.EncodeToString(sum[:])
}

// ContentExtension returns the file extension for the content blob.
func (e *ExportedItem) ContentExtension() string {
	if e.Format == FormatPDF {
		return ".pdf"
	}
	return ".md"
}

// CacheRecord is the freshness index entry for one exported item.
// One record per item ID, replaced wholesale on each successful export.
type CacheRecord struct {
	ItemID       string
	ModifiedTime time.Time
	ContentHash  string
	ExportedAt   time.Time
}
