// cmd/brasilviral/sources.go
package main

import (
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v2"
)

// LoadSources returns the per-category source list, with entries from
// scripts/sources.yml (when present) replacing the built-in ones. The
// file maps category names to lists of homepage URLs.
func LoadSources(baseDir string) (map[string][]string, error) {
	merged := make(map[string][]string, len(NewsSources))
	for cat, urls := range NewsSources {
		merged[cat] = append([]string{}, urls...)
	}

	path := filepath.Join(baseDir, "scripts", "sources.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return merged, nil
		}
		return nil, NewError(ErrorKindInternal, "CONFIG_001", fmt.Sprintf("read %s", path), err)
	}

	var override map[string][]string
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, NewValidationError("CONFIG_001", fmt.Sprintf("parse %s: %v", path, err))
	}

	for cat, urls := range override {
		if !IsValidCategory(cat) {
			return nil, NewValidationError("CONFIG_002", fmt.Sprintf("unknown category %q in %s", cat, path))
		}
		if len(urls) > 0 {
			merged[cat] = urls
		}
	}
	return merged, nil
}
