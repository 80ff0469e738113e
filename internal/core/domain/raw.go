package domain

// Raw payload shapes handed to the conversion strategies.
// These are produced by the content-fetch collaborators; the core
// never fetches them itself.

// SheetData is one sheet tab of a spreadsheet with its cell values
// rendered as the user sees them (formatted strings, including
// formula errors like #N/A).
type SheetData struct {
	// Name is the sheet tab title.
	Name string

	// SheetID is the numeric sheet identifier used by comment anchors.
	SheetID int64

	// Rows holds the cell values. Rows may be ragged; renderers pad
	// to the widest row.
	Rows [][]string
}

// SlideImage is an image placed on a slide, hosted at a remote URL.
type SlideImage struct {
	URL         string
	Title       string
	Description string
}

// SlideData is one slide of a presentation.
type SlideData struct {
	// Index is the zero-based position in the deck.
	Index int

	// ObjectID is the source's slide identifier.
	ObjectID string

	// Text is the concatenated text content of all text elements.
	Text string

	// SpeakerNotes is the notes-page text, empty if none.
	SpeakerNotes string

	Images []SlideImage
}

// Presentation is a structured slide deck.
type Presentation struct {
	ID     string
	Title  string
	Slides []SlideData
}
