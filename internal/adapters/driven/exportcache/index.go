package exportcache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/driveport/internal/core/domain"
)

// Index is the SQLite-backed freshness index shared by all stores that
// mirror one cache tree. One row per item ID, replaced wholesale on
// each successful export.
type Index struct {
	db   *sql.DB
	path string
}

// NewIndex opens (or creates) the freshness index at dbPath.
func NewIndex(dbPath string) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS cache_records (
			item_id TEXT PRIMARY KEY,
			modified_time DATETIME NOT NULL,
			content_hash TEXT NOT NULL,
			exported_at DATETIME NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache_records table: %w", err)
	}

	return &Index{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (i *Index) Close() error {
	return i.db.Close()
}

// Path returns the database file path.
func (i *Index) Path() string {
	return i.path
}

// Put stores or replaces the record for an item.
func (i *Index) Put(ctx context.Context, rec domain.CacheRecord) error {
	_, err := i.db.ExecContext(ctx, `
		INSERT INTO cache_records (item_id, modified_time, content_hash, exported_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(item_id) DO UPDATE SET
			modified_time = excluded.modified_time,
			content_hash = excluded.content_hash,
			exported_at = excluded.exported_at
	`, rec.ItemID, rec.ModifiedTime.UTC(), rec.ContentHash, rec.ExportedAt.UTC())

	if err != nil {
		return fmt.Errorf("saving cache record: %w", err)
	}
	return nil
}

// Get retrieves the record for an item. Returns domain.ErrNotFound
// when no export has been recorded.
func (i *Index) Get(ctx context.Context, itemID string) (*domain.CacheRecord, error) {
	row := i.db.QueryRowContext(ctx, `
		SELECT item_id, modified_time, content_hash, exported_at
		FROM cache_records WHERE item_id = ?
	`, itemID)

	var rec domain.CacheRecord
	var modifiedTime, exportedAt sql.NullTime
	if err := row.Scan(&rec.ItemID, &modifiedTime, &rec.ContentHash, &exportedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning cache record: %w", err)
	}

	if modifiedTime.Valid {
		rec.ModifiedTime = modifiedTime.Time
	}
	if exportedAt.Valid {
		rec.ExportedAt = exportedAt.Time
	}

	return &rec, nil
}

// Delete removes the record for an item. The bool reports whether a
// record existed.
func (i *Index) Delete(ctx context.Context, itemID string) (bool, error) {
	res, err := i.db.ExecContext(ctx, "DELETE FROM cache_records WHERE item_id = ?", itemID)
	if err != nil {
		return false, fmt.Errorf("deleting cache record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("counting deleted records: %w", err)
	}
	return n > 0, nil
}

// IsFresh reports whether the recorded export of itemID is at least as
// new as modifiedTime. A missing record yields false.
func (i *Index) IsFresh(ctx context.Context, itemID string, modifiedTime time.Time) (bool, error) {
	rec, err := i.Get(ctx, itemID)
	if err != nil {
		if err == domain.ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return !rec.ModifiedTime.Before(modifiedTime), nil
}
