package suggest

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"grocery-planner/internal/metrics"
	"grocery-planner/internal/preferences"
)

// TTL is how long a cached suggestion set stays fresh.
const TTL = time.Hour

// Fetcher produces fresh suggestions for a set of preferences.
// A nil result means the fetch was skipped or failed and must not be cached.
type Fetcher interface {
	Suggest(ctx context.Context, prefs preferences.Preferences) []FoodItem
}

type cacheEntry struct {
	Timestamp time.Time  `json:"timestamp"`
	Data      []FoodItem `json:"data"`
}

// Cache is a single-entry, time-boxed cache over a Fetcher, persisted to a
// local JSON file so it survives restarts. The entry is not keyed by
// preferences: a hit within the window returns whatever was last fetched,
// even if preferences changed since. Allergen filtering, however, is
// reapplied against the current preferences on every retrieval.
type Cache struct {
	fetcher Fetcher
	path    string
	now     func() time.Time

	mu     sync.Mutex
	loaded bool
	entry  *cacheEntry
}

// NewCache creates a Cache backed by the given file path. The clock is
// injected so tests control expiry.
func NewCache(fetcher Fetcher, path string, now func() time.Time) *Cache {
	return &Cache{
		fetcher: fetcher,
		path:    path,
		now:     now,
	}
}

// Get returns the cached suggestions when fresh, otherwise fetches a new set,
// stores the unfiltered parse, and returns it. The returned slice is always
// filtered against the current allergies and never nil.
func (c *Cache) Get(ctx context.Context, prefs preferences.Preferences) []FoodItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.load()

	if c.entry != nil && c.now().Sub(c.entry.Timestamp) < TTL {
		metrics.SuggestionCacheHits.Inc()
		return FilterAllergens(c.entry.Data, prefs.Allergies)
	}

	metrics.SuggestionCacheMisses.Inc()
	items := c.fetcher.Suggest(ctx, prefs)
	if items != nil {
		c.entry = &cacheEntry{Timestamp: c.now(), Data: items}
		c.persist()
	}
	return FilterAllergens(items, prefs.Allergies)
}

// load reads the persisted entry once per process. A missing or corrupt file
// just means starting empty.
func (c *Cache) load() {
	if c.loaded {
		return
	}
	c.loaded = true

	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read suggestion cache file", "path", c.path, "error", err)
		}
		return
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		slog.Warn("failed to decode suggestion cache file, starting empty", "path", c.path, "error", err)
		return
	}
	c.entry = &entry
}

func (c *Cache) persist() {
	data, err := json.MarshalIndent(c.entry, "", "  ")
	if err != nil {
		slog.Warn("failed to encode suggestion cache entry", "error", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		slog.Warn("failed to create suggestion cache directory", "error", err)
		return
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		slog.Warn("failed to write suggestion cache file", "path", c.path, "error", err)
	}
}
