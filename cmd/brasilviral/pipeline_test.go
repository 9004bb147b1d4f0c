package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewPipeline(t *testing.T) {
	base := t.TempDir()
	cfg, err := LoadConfig(filepath.Join(base, PathConfig))
	if err != nil {
		t.Fatal(err)
	}

	p, err := NewPipeline(base, cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	snap := p.StateSnapshot()
	if snap["registry_size"] != 0 {
		t.Errorf("fresh pipeline should have empty registry, got %v", snap["registry_size"])
	}
}

func TestPipelineRefreshIndexes(t *testing.T) {
	base := t.TempDir()
	cfg, err := LoadConfig(filepath.Join(base, PathConfig))
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewPipeline(base, cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	if err := p.RefreshIndexes(); err != nil {
		t.Fatal(err)
	}

	// Every category feed plus the site-wide feed must exist.
	for _, cat := range Categories {
		var feed []NewsSummary
		if err := loadJSON(filepath.Join(base, CategoriesDir, "noticias_"+cat+".json"), &feed); err != nil {
			t.Errorf("feed for %s: %v", cat, err)
		}
	}
	var latest []NewsSummary
	if err := loadJSON(filepath.Join(base, CategoriesDir, "latest_news.json"), &latest); err != nil {
		t.Errorf("latest_news.json: %v", err)
	}
}

func TestRunContentGenerationSearchesImagesByOriginalTitle(t *testing.T) {
	newsMux := http.NewServeMux()
	newsMux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><body><a href="/noticias/mercado-reage-a-decisao">Mercado reage</a></body></html>`))
	})
	newsMux.HandleFunc("/noticias/mercado-reage-a-decisao", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(articleHTML("Mercado reage à decisão do banco central")))
	})
	newsSrv := httptest.NewServer(newsMux)
	defer newsSrv.Close()

	var imageQueries []string
	imgMux := http.NewServeMux()
	imgMux.HandleFunc("/img.jpg", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("jpeg-bytes"))
	})
	var imgSrv *httptest.Server
	imgMux.HandleFunc("/api", func(w http.ResponseWriter, r *http.Request) {
		imageQueries = append(imageQueries, r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"hits":[{"webformatURL":"%s/img.jpg","pageURL":"%s","imageWidth":1280,"imageHeight":720}]}`, imgSrv.URL, imgSrv.URL)
	})
	imgSrv = httptest.NewServer(imgMux)
	defer imgSrv.Close()

	base := t.TempDir()
	cfg, err := LoadConfig(filepath.Join(base, PathConfig))
	if err != nil {
		t.Fatal(err)
	}
	cfg.MinViralScore = 10

	rng := rand.New(rand.NewSource(1))
	registry := NewRegistry(filepath.Join(base, PathPublished))
	cache := NewNewsCache(filepath.Join(base, PathNewsCache))
	state, err := LoadState(filepath.Join(base, PathState))
	if err != nil {
		t.Fatal(err)
	}
	publisher, err := NewPublisher(base, registry)
	if err != nil {
		t.Fatal(err)
	}

	agent := NewNewsAgent(cache, map[string][]string{"economia": {newsSrv.URL}})
	agent.trending = &stubTopics{topics: []string{"mercado"}}

	images := NewImageAgent("test-key", filepath.Join(base, PathImgCache), rng)
	images.pixabayBase = imgSrv.URL + "/api"

	rewriter := NewRewriterWithClient(&stubCompleter{
		reply: "Título Totalmente Novo\nCorpo da matéria reescrito para o teste.",
	}, rng)

	p := &Pipeline{
		baseDir:   base,
		cfg:       cfg,
		agent:     agent,
		rewriter:  rewriter,
		images:    images,
		publisher: publisher,
		indexer:   NewIndexer(base),
		registry:  registry,
		state:     state,
	}

	stats, err := p.RunContentGeneration(context.Background(), []string{"economia"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalPublished != 1 {
		t.Fatalf("expected 1 published, got %d", stats.TotalPublished)
	}

	if len(imageQueries) == 0 {
		t.Fatal("image search never called")
	}
	// The search keys off the source headline, not the rewritten one.
	if !strings.Contains(imageQueries[0], "Mercado") {
		t.Errorf("image query %q missing original-title keyword", imageQueries[0])
	}
	if strings.Contains(imageQueries[0], "Totalmente") {
		t.Errorf("image query %q built from rewritten title", imageQueries[0])
	}
}
