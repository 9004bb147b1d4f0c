// cmd/brasilviral/store.go
package main

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// loadJSON reads path into v. A missing file is not an error; v is left
// untouched so callers start from their zero value.
func loadJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %v", path, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %v", path, err)
	}
	return nil
}

// saveJSON writes v to path via a temp file and rename, so a crash
// mid-write never leaves a truncated registry behind.
func saveJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %v", path, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %v", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %v", path, err)
	}
	return nil
}

// hashKey returns the md5 hex digest used to key cache and registry entries.
func hashKey(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Registry is the on-disk set of published records, keyed by title hash.
type Registry struct {
	path    string
	mu      sync.RWMutex
	records map[string]PublishedRecord
}

// NewRegistry creates a registry backed by the JSON file at path.
func NewRegistry(path string) *Registry {
	return &Registry{
		path:    path,
		records: make(map[string]PublishedRecord),
	}
}

// Load reads the registry from disk.
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return loadJSON(r.path, &r.records)
}

// Save writes the registry back to disk.
func (r *Registry) Save() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return saveJSON(r.path, r.records)
}

// Add appends a record keyed by the hash of its title and persists.
func (r *Registry) Add(rec PublishedRecord) error {
	r.mu.Lock()
	r.records[hashKey(rec.Title)] = rec
	r.mu.Unlock()
	return r.Save()
}

// Records returns a snapshot of all published records.
func (r *Registry) Records() []PublishedRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]PublishedRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out
}

// Len returns the number of published records.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// TopForCategory returns the most recently published records of a
// category, newest first.
func (r *Registry) TopForCategory(category string, count int) []PublishedRecord {
	r.mu.RLock()
	var recs []PublishedRecord
	for _, rec := range r.records {
		if rec.Category == category {
			recs = append(recs, rec)
		}
	}
	r.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].PublishTimestamp.After(recs[j].PublishTimestamp)
	})
	if len(recs) > count {
		recs = recs[:count]
	}
	return recs
}

// NewsCache stores fetched articles keyed by the hash of their source URL,
// so a link is only scraped once across runs.
type NewsCache struct {
	path     string
	mu       sync.RWMutex
	articles map[string]Article
}

// NewNewsCache creates a cache backed by the JSON file at path.
func NewNewsCache(path string) *NewsCache {
	return &NewsCache{
		path:     path,
		articles: make(map[string]Article),
	}
}

// Load reads the cache from disk.
func (c *NewsCache) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return loadJSON(c.path, &c.articles)
}

// Save writes the cache back to disk.
func (c *NewsCache) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return saveJSON(c.path, c.articles)
}

// Get returns the cached article for a source link, if present.
func (c *NewsCache) Get(link string) (Article, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	art, ok := c.articles[hashKey(link)]
	return art, ok
}

// Put stores an article under its source link.
func (c *NewsCache) Put(link string, art Article) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.articles[hashKey(link)] = art
}

// Len returns the number of cached articles.
func (c *NewsCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.articles)
}
