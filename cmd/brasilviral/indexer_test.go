package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func publishSample(t *testing.T, pub *Publisher, title string) PublishInfo {
	t.Helper()
	info, err := pub.Publish(testRewritten(title))
	if err != nil {
		t.Fatal(err)
	}
	return info
}

func TestGenerateCategoryIndexRoundTrip(t *testing.T) {
	pub, _, base := newTestPublisher(t)
	publishSample(t, pub, "Primeira notícia da economia nacional")
	publishSample(t, pub, "Segunda notícia sobre o mercado financeiro")

	ix := NewIndexer(base)
	summaries, err := ix.GenerateCategoryIndex("economia")
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(summaries))
	}

	for _, s := range summaries {
		if s.Title == "" {
			t.Error("entry missing title")
		}
		if s.Summary == "" {
			t.Error("entry missing summary")
		}
		if s.Image != "/images/foto.jpg" {
			t.Errorf("entry image %q", s.Image)
		}
		if _, err := time.Parse(postDateLayout, s.Timestamp); err != nil {
			t.Errorf("entry timestamp %q does not parse: %v", s.Timestamp, err)
		}
		if filepath.Ext(s.Link) != ".html" {
			t.Errorf("entry link %q", s.Link)
		}
	}

	// The feed file must exist on disk.
	feed := filepath.Join(base, CategoriesDir, "noticias_economia.json")
	if _, err := os.Stat(feed); err != nil {
		t.Errorf("feed not written: %v", err)
	}
}

func TestGenerateCategoryIndexSkipsIndexAndTemplates(t *testing.T) {
	pub, _, base := newTestPublisher(t)
	publishSample(t, pub, "Notícia real da categoria")

	catDir := filepath.Join(base, CategoriesDir, "economia")
	for _, name := range []string{"index.html", "template_noticia.html"} {
		if err := os.WriteFile(filepath.Join(catDir, name), []byte("<html></html>"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	ix := NewIndexer(base)
	summaries, err := ix.GenerateCategoryIndex("economia")
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 {
		t.Errorf("index and template files must be skipped, got %d entries", len(summaries))
	}
}

func TestGenerateCategoryIndexMissingDir(t *testing.T) {
	base := t.TempDir()
	ix := NewIndexer(base)

	summaries, err := ix.GenerateCategoryIndex("esportes")
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 0 {
		t.Errorf("expected empty feed, got %d", len(summaries))
	}

	var feed []NewsSummary
	if err := loadJSON(filepath.Join(base, CategoriesDir, "noticias_esportes.json"), &feed); err != nil {
		t.Fatal(err)
	}
	if len(feed) != 0 {
		t.Error("empty feed should still be written")
	}
}

func TestGenerateCategoryIndexUnknownCategory(t *testing.T) {
	ix := NewIndexer(t.TempDir())
	if _, err := ix.GenerateCategoryIndex("futebol"); err == nil {
		t.Fatal("expected error for unknown category")
	} else if KindOf(err) != ErrorKindValidation {
		t.Errorf("expected validation error, got %s", KindOf(err))
	}
}

func TestGenerateAllIndexesLatestNews(t *testing.T) {
	pub, _, base := newTestPublisher(t)
	publishSample(t, pub, "Notícia um do dia de hoje")
	publishSample(t, pub, "Notícia dois do dia de hoje")

	ix := NewIndexer(base)
	if err := ix.GenerateAllIndexes(); err != nil {
		t.Fatal(err)
	}

	var latest []NewsSummary
	if err := loadJSON(filepath.Join(base, CategoriesDir, "latest_news.json"), &latest); err != nil {
		t.Fatal(err)
	}
	if len(latest) != 2 {
		t.Fatalf("expected 2 site-wide entries, got %d", len(latest))
	}
	for _, s := range latest {
		if s.Category != "economia" {
			t.Errorf("site-wide entry missing category, got %q", s.Category)
		}
	}
}
