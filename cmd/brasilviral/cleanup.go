// cmd/brasilviral/cleanup.go
package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CleanupOldNews removes rendered pages older than maxAgeDays from
// every category directory. index.html and template files are always
// kept. Returns how many files were removed.
func CleanupOldNews(baseDir string, maxAgeDays int) (int, error) {
	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)
	removed := 0

	for _, category := range Categories {
		catDir := filepath.Join(baseDir, CategoriesDir, category)
		entries, err := os.ReadDir(catDir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, NewError(ErrorKindInternal, "PUBLISH_002", "read "+catDir, err)
		}

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, ".html") {
				continue
			}
			if name == "index.html" || strings.HasPrefix(name, "template") {
				continue
			}

			info, err := entry.Info()
			if err != nil {
				continue
			}
			if info.ModTime().Before(cutoff) {
				path := filepath.Join(catDir, name)
				if err := os.Remove(path); err != nil {
					GetLogger().Warning("Could not remove %s: %v", path, err)
					continue
				}
				GetLogger().Debug("Removed old page %s", path)
				removed++
			}
		}
	}
	return removed, nil
}
