// cmd/brasilviral/trends.go
package main

import (
	"context"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// TrendingProvider fetches the current trending search topics for Brazil.
type TrendingProvider struct {
	feedURL string
	parser  *gofeed.Parser
	timeout time.Duration
}

// NewTrendingProvider creates a provider against the Google Trends feed.
func NewTrendingProvider() *TrendingProvider {
	p := gofeed.NewParser()
	p.UserAgent = DefaultUserAgent
	return &TrendingProvider{
		feedURL: TrendsFeedURL,
		parser:  p,
		timeout: DefaultTimeout,
	}
}

// Topics returns up to MaxTrendingTopics lowercase trending topics.
// Failures are logged and return nil so scoring degrades gracefully.
func (p *TrendingProvider) Topics(ctx context.Context) []string {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	feed, err := p.parser.ParseURLWithContext(p.feedURL, ctx)
	if err != nil {
		GetLogger().Warning("Could not fetch trending topics: %v", err)
		return nil
	}

	var topics []string
	for _, item := range feed.Items {
		title := strings.TrimSpace(strings.ToLower(item.Title))
		if title == "" {
			continue
		}
		topics = append(topics, title)
		if len(topics) >= MaxTrendingTopics {
			break
		}
	}
	GetLogger().Debug("Fetched %d trending topics", len(topics))
	return topics
}
