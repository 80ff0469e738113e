package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/driveport/internal/core/domain"
	"github.com/custodia-labs/driveport/internal/core/ports/driven"
)

// Configuration keys.
const (
	KeyAccessToken = "auth.access_token"
	KeyOutputDir   = "export.output_dir"
	KeyFormat      = "export.format"
	KeyWorkers     = "export.workers"
	KeyMaxDepth    = "export.max_depth"
	KeyCacheDir    = "cache.dir"
)

// ExportConfig is the immutable export configuration snapshot read at
// startup. Workers share it by value; nothing mutates it after load.
type ExportConfig struct {
	OutputDir string
	CacheDir  string
	Format    domain.ContentFormat
	Workers   int
	MaxDepth  int
}

// LoadExportConfig builds an ExportConfig from the store, applying
// defaults for unset keys.
func LoadExportConfig(store driven.ConfigStore) ExportConfig {
	cfg := ExportConfig{
		OutputDir: store.GetString(KeyOutputDir),
		CacheDir:  store.GetString(KeyCacheDir),
		Format:    domain.ContentFormat(store.GetString(KeyFormat)),
		Workers:   store.GetInt(KeyWorkers),
		MaxDepth:  -1,
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = "export"
	}
	if cfg.CacheDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.CacheDir = filepath.Join(home, ".driveport", "cache")
		} else {
			cfg.CacheDir = ".driveport-cache"
		}
	}
	if cfg.Format == "" {
		cfg.Format = domain.FormatMarkdown
	}
	if _, ok := store.Get(KeyMaxDepth); ok {
		cfg.MaxDepth = store.GetInt(KeyMaxDepth)
	}
	return cfg
}

// TokenProvider draws the Google access token from the config store.
type TokenProvider struct {
	store driven.ConfigStore
}

var _ driven.TokenProvider = (*TokenProvider)(nil)

// NewTokenProvider creates a provider backed by store.
func NewTokenProvider(store driven.ConfigStore) *TokenProvider {
	return &TokenProvider{store: store}
}

// GetToken returns the configured access token.
func (p *TokenProvider) GetToken(_ context.Context) (string, error) {
	token := p.store.GetString(KeyAccessToken)
	if token == "" {
		return "", fmt.Errorf("%w: no access token configured, set %q in %s",
			domain.ErrInvalidInput, KeyAccessToken, p.store.Path())
	}
	return token, nil
}
