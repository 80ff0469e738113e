package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/driveport/internal/core/domain"
)

// ExportStore persists and recalls export units and decides
// skip-on-freshness. One unit per item ID; writes replace the prior
// unit wholesale and are atomic: a partially written unit is never
// visible to ShouldSkip or Read.
type ExportStore interface {
	// ShouldSkip reports whether a prior export of itemID is still
	// fresh, i.e. a record exists whose modified time is not older
	// than modifiedTime. A missing record yields false.
	ShouldSkip(ctx context.Context, itemID string, modifiedTime time.Time) (bool, error)

	// Write persists the full unit (metadata, comments, content,
	// assets) and returns the unit's path.
	Write(ctx context.Context, item *domain.ExportedItem) (string, error)

	// Read reconstructs the unit. Content bytes and the ordered
	// comment list round-trip exactly; asset order is not significant.
	// Returns domain.ErrNotFound if no unit exists.
	Read(ctx context.Context, itemID string) (*domain.ExportedItem, error)

	// Delete removes the unit and its freshness record. Idempotent:
	// the bool reports whether anything was deleted.
	Delete(ctx context.Context, itemID string) (bool, error)

	// RawFileExists reports whether an opaque file was already
	// downloaded under itemID.
	RawFileExists(itemID, name string) bool

	// WriteRawFile stores an opaque file's bytes verbatim and
	// returns the file path.
	WriteRawFile(itemID, name string, content []byte) (string, error)

	// WriteFolderRecord stores a folder's metadata record and
	// returns the folder's unit path.
	WriteFolderRecord(item *domain.DriveItem) (string, error)

	// Sub returns a store rooted at a path relative to this store,
	// sharing the same freshness index. Used to mirror the source
	// hierarchy in folder exports.
	Sub(rel string) ExportStore
}
