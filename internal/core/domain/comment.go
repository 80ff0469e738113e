package domain

import "time"

// Comment is a review comment attached to a document.
// Comments and replies preserve the order the source returned them in.
type Comment struct {
	// ID is the source comment ID.
	ID string

	// Author is the display name of the comment author.
	Author string

	// Body is the comment text.
	Body string

	// Snippet is the substring of document content the comment was
	// attached to at creation time. Used to relocate the comment
	// during export. May be stale if the document was edited since.
	Snippet string

	// Anchor is the kind-specific locator: a position hint for
	// documents, a workbook-range JSON blob for spreadsheets,
	// a slide reference for presentations.
	Anchor string

	// Resolved marks the comment thread as resolved.
	Resolved bool

	// CreatedTime and ModifiedTime come from the source.
	CreatedTime  time.Time
	ModifiedTime time.Time

	// Replies in original order.
	Replies []Reply
}

// Reply is a single reply within a comment thread.
type Reply struct {
	ID           string
	Author       string
	Body         string
	CreatedTime  time.Time
	ModifiedTime time.Time
}

// TimestampLayout is the display format for comment timestamps in
// rendered markdown.
const TimestampLayout = "2006-01-02 15:04"
