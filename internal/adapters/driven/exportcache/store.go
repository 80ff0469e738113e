package exportcache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/driveport/internal/core/domain"
	"github.com/custodia-labs/driveport/internal/core/ports/driven"
	"github.com/custodia-labs/driveport/internal/logger"
)

const (
	metadataFile = "metadata.json"
	commentsFile = "comments.json"
	assetsDir    = "assets"
)

// Store is a filesystem export cache. Each item occupies one directory
// under the store root:
//
//	<root>/<itemID>/metadata.json
//	<root>/<itemID>/comments.json
//	<root>/<itemID>/content.md | content.pdf
//	<root>/<itemID>/assets/<name>
//
// Units are staged in a temp directory and moved into place with a
// rename, so a partially written unit is never visible. All stores
// derived via Sub share one freshness index.
type Store struct {
	root  string
	index *Index
}

var _ driven.ExportStore = (*Store)(nil)

// New creates a store rooted at dir, indexed by index.
func New(dir string, index *Index) *Store {
	return &Store{root: dir, index: index}
}

// Sub returns a store rooted at a path relative to this store, sharing
// the same freshness index.
func (s *Store) Sub(rel string) driven.ExportStore {
	return &Store{root: filepath.Join(s.root, rel), index: s.index}
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// unitMetadata is the serialized form of an exported item minus its
// content and comment payloads, which live in sibling files.
type unitMetadata struct {
	ItemID       string          `json:"item_id"`
	Kind         domain.ItemKind `json:"kind"`
	Title        string          `json:"title"`
	CreatedTime  time.Time       `json:"created_time"`
	ModifiedTime time.Time       `json:"modified_time"`
	Format       string          `json:"format,omitempty"`
	ContentHash  string          `json:"content_hash,omitempty"`
	Assets       []assetMetadata `json:"assets,omitempty"`
}

// assetMetadata records an asset's anchor and MIME type; the bytes live
// under assets/<name>.
type assetMetadata struct {
	Name     string `json:"name"`
	Anchor   string `json:"anchor,omitempty"`
	MIMEType string `json:"mime_type,omitempty"`
}

// ShouldSkip reports whether a prior export of itemID is still fresh.
// A fresh index record with a missing unit directory counts as stale:
// the unit is re-exported rather than trusted.
func (s *Store) ShouldSkip(ctx context.Context, itemID string, modifiedTime time.Time) (bool, error) {
	fresh, err := s.index.IsFresh(ctx, itemID, modifiedTime)
	if err != nil || !fresh {
		return false, err
	}

	if _, err := os.Stat(filepath.Join(s.unitDir(itemID), metadataFile)); err != nil {
		logger.Warn("Cache record for %s has no unit on disk, re-exporting", itemID)
		return false, nil
	}
	return true, nil
}

// Write persists the full unit and records its freshness. Returns the
// unit directory path.
func (s *Store) Write(ctx context.Context, item *domain.ExportedItem) (string, error) {
	if item.ItemID == "" {
		return "", fmt.Errorf("%w: exported item has no ID", domain.ErrInvalidInput)
	}

	if err := os.MkdirAll(s.root, 0700); err != nil {
		return "", fmt.Errorf("creating cache root: %w", err)
	}

	tmp, err := os.MkdirTemp(s.root, ".staging-")
	if err != nil {
		return "", fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	if err := s.writeUnit(tmp, item); err != nil {
		return "", err
	}

	dir := s.unitDir(item.ItemID)
	if err := os.RemoveAll(dir); err != nil {
		return "", fmt.Errorf("clearing previous unit: %w", err)
	}
	if err := os.Rename(tmp, dir); err != nil {
		return "", fmt.Errorf("publishing unit: %w", err)
	}

	rec := domain.CacheRecord{
		ItemID:       item.ItemID,
		ModifiedTime: item.ModifiedTime,
		ContentHash:  item.ContentHash(),
		ExportedAt:   time.Now().UTC(),
	}
	if err := s.index.Put(ctx, rec); err != nil {
		return "", err
	}

	logger.Debug("Cached export unit for %s at %s", item.ItemID, dir)
	return dir, nil
}

// writeUnit lays out one unit's files inside dir.
func (s *Store) writeUnit(dir string, item *domain.ExportedItem) error {
	meta := unitMetadata{
		ItemID:       item.ItemID,
		Kind:         item.Kind,
		Title:        item.Title,
		CreatedTime:  item.CreatedTime.UTC(),
		ModifiedTime: item.ModifiedTime.UTC(),
		Format:       string(item.Format),
		ContentHash:  item.ContentHash(),
	}
	for _, a := range item.Assets {
		meta.Assets = append(meta.Assets, assetMetadata{Name: a.Name, Anchor: a.Anchor, MIMEType: a.MIMEType})
	}

	if err := writeJSON(filepath.Join(dir, metadataFile), meta); err != nil {
		return err
	}

	comments := item.Comments
	if comments == nil {
		comments = []domain.Comment{}
	}
	if err := writeJSON(filepath.Join(dir, commentsFile), comments); err != nil {
		return err
	}

	contentPath := filepath.Join(dir, "content"+item.ContentExtension())
	if err := os.WriteFile(contentPath, item.Content, 0600); err != nil {
		return fmt.Errorf("writing content: %w", err)
	}

	if len(item.Assets) > 0 {
		if err := os.MkdirAll(filepath.Join(dir, assetsDir), 0700); err != nil {
			return fmt.Errorf("creating assets directory: %w", err)
		}
		for _, a := range item.Assets {
			path := filepath.Join(dir, assetsDir, a.Name)
			if err := os.WriteFile(path, a.Content, 0600); err != nil {
				return fmt.Errorf("writing asset %s: %w", a.Name, err)
			}
		}
	}

	return nil
}

// Read reconstructs the unit for itemID. Returns domain.ErrNotFound
// when no unit exists.
func (s *Store) Read(_ context.Context, itemID string) (*domain.ExportedItem, error) {
	dir := s.unitDir(itemID)

	var meta unitMetadata
	if err := readJSON(filepath.Join(dir, metadataFile), &meta); err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var comments []domain.Comment
	if err := readJSON(filepath.Join(dir, commentsFile), &comments); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	format := domain.ContentFormat(meta.Format)
	item := &domain.ExportedItem{
		ItemID:       meta.ItemID,
		Kind:         meta.Kind,
		Title:        meta.Title,
		CreatedTime:  meta.CreatedTime,
		ModifiedTime: meta.ModifiedTime,
		Format:       format,
		Comments:     comments,
	}

	content, err := os.ReadFile(filepath.Join(dir, "content"+item.ContentExtension()))
	if err != nil {
		return nil, fmt.Errorf("%w: unit %s has no content file", domain.ErrCacheCorrupt, itemID)
	}
	item.Content = content

	for _, am := range meta.Assets {
		data, err := os.ReadFile(filepath.Join(dir, assetsDir, am.Name))
		if err != nil {
			return nil, fmt.Errorf("%w: unit %s missing asset %s", domain.ErrCacheCorrupt, itemID, am.Name)
		}
		item.Assets = append(item.Assets, domain.Asset{
			Name:     am.Name,
			Content:  data,
			Anchor:   am.Anchor,
			MIMEType: am.MIMEType,
		})
	}

	return item, nil
}

// Delete removes the unit and its freshness record. Idempotent.
func (s *Store) Delete(ctx context.Context, itemID string) (bool, error) {
	dir := s.unitDir(itemID)
	_, statErr := os.Stat(dir)
	existed := statErr == nil

	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("removing unit: %w", err)
	}

	recorded, err := s.index.Delete(ctx, itemID)
	if err != nil {
		return false, err
	}
	return existed || recorded, nil
}

// RawFileExists reports whether an opaque file was already downloaded
// under itemID.
func (s *Store) RawFileExists(itemID, name string) bool {
	_, err := os.Stat(filepath.Join(s.unitDir(itemID), name))
	return err == nil
}

// WriteRawFile stores an opaque file's bytes verbatim.
func (s *Store) WriteRawFile(itemID, name string, content []byte) (string, error) {
	dir := s.unitDir(itemID)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating unit directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0600); err != nil {
		return "", fmt.Errorf("writing raw file: %w", err)
	}
	return path, nil
}

// WriteFolderRecord stores a folder's metadata record.
func (s *Store) WriteFolderRecord(item *domain.DriveItem) (string, error) {
	dir := s.unitDir(item.ID)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating folder directory: %w", err)
	}

	meta := unitMetadata{
		ItemID:       item.ID,
		Kind:         item.Kind,
		Title:        item.Name,
		CreatedTime:  item.CreatedTime.UTC(),
		ModifiedTime: item.ModifiedTime.UTC(),
	}
	if err := writeJSON(filepath.Join(dir, metadataFile), meta); err != nil {
		return "", err
	}
	return dir, nil
}

func (s *Store) unitDir(itemID string) string {
	return filepath.Join(s.root, itemID)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: parsing %s: %v", domain.ErrCacheCorrupt, filepath.Base(path), err)
	}
	return nil
}
