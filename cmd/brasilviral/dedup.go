// cmd/brasilviral/dedup.go
package main

import "strings"

// IsAlreadyPublished reports whether an article duplicates something in
// the registry, by exact source URL or by title word overlap above 70%.
func IsAlreadyPublished(art Article, published []PublishedRecord) bool {
	titleWords := wordSet(art.Title)

	for _, rec := range published {
		if rec.SourceURL != "" && rec.SourceURL == art.SourceURL {
			return true
		}

		recWords := wordSet(rec.Title)
		minLen := len(titleWords)
		if len(recWords) < minLen {
			minLen = len(recWords)
		}
		if minLen == 0 {
			continue
		}

		common := 0
		for w := range titleWords {
			if recWords[w] {
				common++
			}
		}
		if float64(common) > 0.7*float64(minLen) {
			return true
		}
	}
	return false
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}
