package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRegistryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "published_news.json")

	reg := NewRegistry(path)
	if err := reg.Load(); err != nil {
		t.Fatal(err)
	}
	if reg.Len() != 0 {
		t.Fatalf("fresh registry should be empty, got %d", reg.Len())
	}

	rec := PublishedRecord{
		Title:            "Notícia de teste",
		Category:         "esportes",
		SourceURL:        "https://example.com/n",
		Filepath:         "categorias/esportes/noticia-1.html",
		URLPath:          "/categorias/esportes/noticia-1.html",
		PublishTimestamp: time.Now(),
	}
	if err := reg.Add(rec); err != nil {
		t.Fatal(err)
	}

	reloaded := NewRegistry(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	if reloaded.Len() != 1 {
		t.Fatalf("expected 1 record after reload, got %d", reloaded.Len())
	}
	got := reloaded.Records()[0]
	if got.Title != rec.Title || got.URLPath != rec.URLPath {
		t.Errorf("record mangled: %+v", got)
	}
}

func TestRegistryTopForCategory(t *testing.T) {
	reg := NewRegistry(filepath.Join(t.TempDir(), "published_news.json"))
	now := time.Now()
	for i, title := range []string{"Primeira", "Segunda", "Terceira"} {
		rec := PublishedRecord{
			Title:            title,
			Category:         "economia",
			PublishTimestamp: now.Add(time.Duration(i) * time.Hour),
		}
		if err := reg.Add(rec); err != nil {
			t.Fatal(err)
		}
	}
	if err := reg.Add(PublishedRecord{Title: "Outra", Category: "esportes", PublishTimestamp: now}); err != nil {
		t.Fatal(err)
	}

	top := reg.TopForCategory("economia", 2)
	if len(top) != 2 {
		t.Fatalf("expected 2, got %d", len(top))
	}
	if top[0].Title != "Terceira" || top[1].Title != "Segunda" {
		t.Errorf("wrong order: %q, %q", top[0].Title, top[1].Title)
	}
}

func TestNewsCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news_cache.json")

	cache := NewNewsCache(path)
	if err := cache.Load(); err != nil {
		t.Fatal(err)
	}

	link := "https://example.com/artigo"
	if _, ok := cache.Get(link); ok {
		t.Fatal("empty cache should miss")
	}

	cache.Put(link, Article{Title: "Artigo", SourceURL: link})
	if err := cache.Save(); err != nil {
		t.Fatal(err)
	}

	reloaded := NewNewsCache(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	art, ok := reloaded.Get(link)
	if !ok || art.Title != "Artigo" {
		t.Errorf("cache round trip failed: %+v ok=%v", art, ok)
	}
}

func TestSaveJSONAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := saveJSON(path, map[string]int{"a": 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}

	var out map[string]int
	if err := loadJSON(path, &out); err != nil {
		t.Fatal(err)
	}
	if out["a"] != 1 {
		t.Errorf("round trip lost data: %v", out)
	}
}

func TestLoadJSONMissingFile(t *testing.T) {
	var out map[string]int
	if err := loadJSON(filepath.Join(t.TempDir(), "nope.json"), &out); err != nil {
		t.Errorf("missing file should not error: %v", err)
	}
}

func TestHashKeyStable(t *testing.T) {
	if hashKey("abc") != hashKey("abc") {
		t.Error("hash must be deterministic")
	}
	if hashKey("abc") == hashKey("abd") {
		t.Error("different inputs should not collide")
	}
	if len(hashKey("abc")) != 32 {
		t.Errorf("expected 32 hex chars, got %d", len(hashKey("abc")))
	}
}
