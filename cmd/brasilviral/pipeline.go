// cmd/brasilviral/pipeline.go
package main

import (
	"context"
	"math/rand"
	"path/filepath"
	"sync"
	"time"
)

// Pipeline ties fetcher, rewriter, image search, publisher and indexer
// together. A mutex serializes runs so overlapping cron slots don't
// race over the registry.
type Pipeline struct {
	baseDir   string
	cfg       *Config
	agent     *NewsAgent
	rewriter  *Rewriter
	images    *ImageAgent
	publisher *Publisher
	indexer   *Indexer
	registry  *Registry
	state     *State

	mu sync.Mutex
}

// NewPipeline assembles the full content pipeline rooted at baseDir.
func NewPipeline(baseDir string, cfg *Config, rng *rand.Rand) (*Pipeline, error) {
	registry := NewRegistry(filepath.Join(baseDir, PathPublished))
	if err := registry.Load(); err != nil {
		return nil, err
	}

	cache := NewNewsCache(filepath.Join(baseDir, PathNewsCache))
	if err := cache.Load(); err != nil {
		return nil, err
	}

	state, err := LoadState(filepath.Join(baseDir, PathState))
	if err != nil {
		return nil, err
	}

	publisher, err := NewPublisher(baseDir, registry)
	if err != nil {
		return nil, err
	}

	sources, err := LoadSources(baseDir)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		baseDir:   baseDir,
		cfg:       cfg,
		agent:     NewNewsAgent(cache, sources),
		rewriter:  NewRewriter(cfg.OpenAIAPIKey, rng),
		images:    NewImageAgent(cfg.PixabayAPIKey, filepath.Join(baseDir, PathImgCache), rng),
		publisher: publisher,
		indexer:   NewIndexer(baseDir),
		registry:  registry,
		state:     state,
	}, nil
}

// RunContentGeneration fetches, rewrites and publishes up to count
// articles for each given category, then refreshes the feeds.
func (p *Pipeline) RunContentGeneration(ctx context.Context, categories []string, count int) (*RunStats, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := &RunStats{
		Categories: make(map[string]CategoryStats),
		StartTime:  time.Now(),
	}

	for _, category := range categories {
		cs := CategoryStats{}
		published, err := p.generateForCategory(ctx, category, count, &cs)
		if err != nil {
			GetLogger().Error("Category %s failed: %v", category, err)
			cs.Errors++
		}
		stats.TotalGenerated += cs.Generated
		stats.TotalPublished += published
		stats.Categories[category] = cs
	}
	stats.EndTime = time.Now()

	if err := p.indexer.GenerateAllIndexes(); err != nil {
		GetLogger().Error("Index regeneration failed: %v", err)
	}
	if err := p.cfg.MarkRun(stats.EndTime); err != nil {
		GetLogger().Warning("Could not persist last run time: %v", err)
	}
	if err := p.state.RecordRun(stats); err != nil {
		GetLogger().Warning("Could not persist run stats: %v", err)
	}

	GetLogger().Info("Run finished: %d generated, %d published", stats.TotalGenerated, stats.TotalPublished)
	return stats, nil
}

func (p *Pipeline) generateForCategory(ctx context.Context, category string, count int, cs *CategoryStats) (int, error) {
	articles, err := p.agent.FetchCategory(ctx, category, count, p.registry.Records())
	if err != nil {
		return 0, err
	}
	cs.Generated = len(articles)

	published := 0
	for _, art := range articles {
		if art.ViralScore < p.cfg.MinViralScore {
			GetLogger().Debug("Score %d below threshold, skipping %s", art.ViralScore, art.Title)
			continue
		}

		rewritten := p.rewriter.Rewrite(ctx, art)
		// Image search runs on the source headline; the rewritten one
		// can drift from the subject.
		img := p.images.FindImage(ctx, art.Title, category)
		rewritten.ImageURL = p.images.Localize(ctx, img, p.baseDir, category)

		if _, err := p.publisher.Publish(rewritten); err != nil {
			GetLogger().Error("Publish failed for %s: %v", rewritten.Title, err)
			cs.Errors++
			continue
		}
		published++
		cs.Published++
	}
	return published, nil
}

// PublishOneForCategory is the scheduled-slot entry point: one story
// for one category, feeds refreshed after.
func (p *Pipeline) PublishOneForCategory(ctx context.Context, category string) error {
	_, err := p.RunContentGeneration(ctx, []string{category}, 1)
	return err
}

// RefreshIndexes rebuilds every JSON feed.
func (p *Pipeline) RefreshIndexes() error {
	return p.indexer.GenerateAllIndexes()
}

// StateSnapshot exposes run counters for the status endpoint.
func (p *Pipeline) StateSnapshot() map[string]interface{} {
	snap := p.state.Snapshot()
	snap["registry_size"] = p.registry.Len()
	return snap
}
