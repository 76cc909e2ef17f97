package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/jvmrepo/jvmrepo/src/internal/ui"
)

// DefaultCacheTTL is the default time-to-live for the cached index.
const DefaultCacheTTL = 24 * time.Hour

// cacheFileName is the name of the cached index inside the cache directory.
const cacheFileName = "catalog.cache.json"

// CachedSource wraps a Source and caches the index locally.
// When the underlying source fails, an expired cache is still served.
type CachedSource struct {
	source   Source
	cacheDir string
	ttl      time.Duration
	now      func() time.Time
}

// cacheEntry stores the index along with its cache timestamp.
type cacheEntry struct {
	CachedAt time.Time `json:"cached_at"`
	Index    Index     `json:"index"`
}

// NewCachedSource creates a Source that caches results from the underlying source.
func NewCachedSource(source Source, cacheDir string, ttl time.Duration) *CachedSource {
	return &CachedSource{
		source:   source,
		cacheDir: cacheDir,
		ttl:      ttl,
		now:      time.Now,
	}
}

// GetIndex returns the cached index if fresh, otherwise fetches from the underlying source.
func (s *CachedSource) GetIndex(ctx context.Context) (Index, error) {
	entry, cacheErr := s.loadFromCache()
	if cacheErr == nil && s.fresh(entry) {
		return entry.Index, nil
	}

	idx, err := s.source.GetIndex(ctx)
	if err != nil {
		if cacheErr == nil && ctx.Err() == nil {
			ui.Debug("Catalog fetch failed: %v, using cache from %s", err, entry.CachedAt.Format(time.RFC3339))
			return entry.Index, nil
		}
		return nil, err
	}

	// Caching is best-effort
	if err := s.saveToCache(idx); err != nil {
		ui.Debug("Failed to cache catalog: %v", err)
	}

	return idx, nil
}

// ForceRefresh discards the cache and fetches a fresh index.
func (s *CachedSource) ForceRefresh(ctx context.Context) (Index, error) {
	_ = os.Remove(s.cachePath())

	idx, err := s.source.GetIndex(ctx)
	if err != nil {
		return nil, err
	}

	_ = s.saveToCache(idx)
	return idx, nil
}

// ClearCache removes the cached index.
func (s *CachedSource) ClearCache() error {
	if err := os.Remove(s.cachePath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// CachedAt returns when the cached index was stored, if there is one.
func (s *CachedSource) CachedAt() (time.Time, bool) {
	entry, err := s.loadFromCache()
	if err != nil {
		return time.Time{}, false
	}
	return entry.CachedAt, true
}

func (s *CachedSource) fresh(entry *cacheEntry) bool {
	return s.now().Sub(entry.CachedAt) <= s.ttl
}

func (s *CachedSource) cachePath() string {
	return filepath.Join(s.cacheDir, cacheFileName)
}

func (s *CachedSource) loadFromCache() (*cacheEntry, error) {
	data, err := os.ReadFile(s.cachePath())
	if err != nil {
		return nil, err
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	if entry.Index == nil {
		return nil, os.ErrNotExist
	}
	return &entry, nil
}

func (s *CachedSource) saveToCache(idx Index) error {
	if err := os.MkdirAll(s.cacheDir, 0755); err != nil {
		return err
	}

	data, err := json.Marshal(cacheEntry{
		CachedAt: s.now(),
		Index:    idx,
	})
	if err != nil {
		return err
	}

	return os.WriteFile(s.cachePath(), data, 0644)
}
