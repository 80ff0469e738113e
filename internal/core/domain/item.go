package domain

import "time"

// ItemKind classifies a Drive item for export purposes.
// Each exportable kind binds exactly one conversion strategy.
type ItemKind string

const (
	// KindDocument is a Google Doc (flowing text).
	KindDocument ItemKind = "document"
	// KindSpreadsheet is a Google Sheet (tabular).
	KindSpreadsheet ItemKind = "spreadsheet"
	// KindPresentation is a Google Slides deck.
	KindPresentation ItemKind = "presentation"
	// KindFile is an opaque binary file, downloaded verbatim.
	KindFile ItemKind = "file"
	// KindFolder is a directory.
	KindFolder ItemKind = "folder"
)

// Google Workspace MIME types as reported by the Drive API.
const (
	MimeTypeGoogleDoc    = "application/vnd.google-apps.document"
	MimeTypeGoogleSheet  = "application/vnd.google-apps.spreadsheet"
	MimeTypeGoogleSlides = "application/vnd.google-apps.presentation"
	MimeTypeFolder       = "application/vnd.google-apps.folder"
)

// KindFromMIMEType maps a Drive MIME type to an ItemKind.
// Anything that is not a Workspace document or folder is an opaque file.
func KindFromMIMEType(mimeType string) ItemKind {
	switch mimeType {
	case MimeTypeGoogleDoc:
		return KindDocument
	case MimeTypeGoogleSheet:
		return KindSpreadsheet
	case MimeTypeGoogleSlides:
		return KindPresentation
	case MimeTypeFolder:
		return KindFolder
	default:
		return KindFile
	}
}

// DriveItem is the metadata record for a single Drive item.
// It is immutable once fetched.
type DriveItem struct {
	// ID is the Drive file ID.
	ID string

	// Name is the human-readable title.
	Name string

	// Kind classifies the item for export dispatch.
	Kind ItemKind

	// MIMEType is the original Drive MIME type.
	MIMEType string

	// CreatedTime and ModifiedTime come from the Drive API.
	// ModifiedTime is authoritative for cache freshness.
	CreatedTime  time.Time
	ModifiedTime time.Time

	// ExportFormats lists the output MIME types the source can export
	// this item to (from exportLinks). Empty for opaque files.
	ExportFormats []string
}

// IsExportable reports whether the item goes through the conversion
// pipeline rather than a verbatim download.
func (i DriveItem) IsExportable() bool {
	switch i.Kind {
	case KindDocument, KindSpreadsheet, KindPresentation:
		return true
	default:
		return false
	}
}
