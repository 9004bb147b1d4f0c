// cmd/brasilviral/indexer.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Indexer rebuilds the JSON feeds the site's front end reads. It works
// from the rendered HTML pages, so feeds stay correct even after pages
// are removed by cleanup or by hand.
type Indexer struct {
	baseDir string
}

// NewIndexer creates an indexer rooted at the site directory.
func NewIndexer(baseDir string) *Indexer {
	return &Indexer{baseDir: baseDir}
}

// GenerateCategoryIndex rescans one category's pages and rewrites its
// noticias_<category>.json feed. It returns the entries, newest first.
func (ix *Indexer) GenerateCategoryIndex(category string) ([]NewsSummary, error) {
	if !IsValidCategory(category) {
		return nil, NewValidationError("PUBLISH_002", fmt.Sprintf("unknown category %q", category))
	}

	catDir := filepath.Join(ix.baseDir, CategoriesDir, category)
	entries, err := os.ReadDir(catDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ix.writeFeed(category, []NewsSummary{})
		}
		return nil, NewError(ErrorKindInternal, "PUBLISH_002", fmt.Sprintf("read %s", catDir), err)
	}

	var summaries []NewsSummary
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".html") {
			continue
		}
		if name == "index.html" || strings.HasPrefix(name, "template") {
			continue
		}

		summary, err := ix.summarizePage(filepath.Join(catDir, name), category, name)
		if err != nil {
			GetLogger().Warning("Skipping %s in index: %v", name, err)
			continue
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		ti, _ := time.Parse(postDateLayout, summaries[i].Timestamp)
		tj, _ := time.Parse(postDateLayout, summaries[j].Timestamp)
		return ti.After(tj)
	})

	if err := ix.writeFeed(category, summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// GenerateAllIndexes rebuilds every category feed plus the site-wide
// latest_news.json, which carries the four newest stories per category.
func (ix *Indexer) GenerateAllIndexes() error {
	var latest []NewsSummary
	for _, category := range Categories {
		summaries, err := ix.GenerateCategoryIndex(category)
		if err != nil {
			GetLogger().Error("Index for %s failed: %v", category, err)
			continue
		}
		top := summaries
		if len(top) > 4 {
			top = top[:4]
		}
		for _, s := range top {
			s.Category = category
			latest = append(latest, s)
		}
	}

	sort.Slice(latest, func(i, j int) bool {
		ti, _ := time.Parse(postDateLayout, latest[i].Timestamp)
		tj, _ := time.Parse(postDateLayout, latest[j].Timestamp)
		return ti.After(tj)
	})

	return saveJSON(filepath.Join(ix.baseDir, CategoriesDir, "latest_news.json"), latest)
}

func (ix *Indexer) writeFeed(category string, summaries []NewsSummary) error {
	path := filepath.Join(ix.baseDir, CategoriesDir, "noticias_"+category+".json")
	return saveJSON(path, summaries)
}

// summarizePage extracts feed metadata back out of a rendered page.
func (ix *Indexer) summarizePage(path, category, filename string) (NewsSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return NewsSummary{}, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return NewsSummary{}, err
	}

	// The first h1 is the site masthead; the article's is second.
	title := strings.TrimSpace(doc.Find("h1").Eq(1).Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if title == "" {
		return NewsSummary{}, fmt.Errorf("no title in %s", filename)
	}

	image, _ := doc.Find(".article-featured-image img").First().Attr("src")
	summary := strings.TrimSpace(doc.Find(".article-content p").First().Text())
	postDate := strings.TrimSpace(doc.Find(".post-date").First().Text())

	return NewsSummary{
		Title:     title,
		Summary:   summarize(summary, 200),
		Timestamp: postDate,
		Link:      "/" + filepath.ToSlash(filepath.Join(CategoriesDir, category, filename)),
		Image:     image,
	}, nil
}
