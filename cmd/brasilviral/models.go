// cmd/brasilviral/models.go
package main

import "time"

// Article is a candidate news item produced by the fetcher.
type Article struct {
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	SourceURL  string    `json:"source_url"`
	Category   string    `json:"category"`
	ViralScore int       `json:"viral_score"`
	Timestamp  time.Time `json:"timestamp"`
	Published  bool      `json:"published"`
}

// RewrittenArticle is a distinct record carrying both the original and
// rewritten text. Rewritten is true only when the LLM produced the text;
// the local fallback sets it to false.
type RewrittenArticle struct {
	Article
	OriginalTitle    string    `json:"original_title"`
	OriginalContent  string    `json:"original_content"`
	ImageURL         string    `json:"image_url,omitempty"`
	Rewritten        bool      `json:"rewritten"`
	RewriteTimestamp time.Time `json:"rewrite_timestamp"`
}

// PublishedRecord is the persisted metadata for a rendered page. Records
// are append-only; they are never mutated after creation.
type PublishedRecord struct {
	Title            string    `json:"title"`
	Category         string    `json:"category"`
	SourceURL        string    `json:"source_url"`
	Filepath         string    `json:"filepath"`
	URLPath          string    `json:"url_path"`
	PublishTimestamp time.Time `json:"publish_timestamp"`
}

// PublishInfo is returned by the publisher for a freshly written page.
type PublishInfo struct {
	Title    string
	Category string
	Filepath string
	URLPath  string
}

// NewsSummary is one entry of the per-category and site-wide JSON feeds.
type NewsSummary struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Timestamp string `json:"timestamp"`
	Link      string `json:"link"`
	Image     string `json:"image"`
	Category  string `json:"category,omitempty"`
}

// ImageInfo describes one candidate image returned by a provider.
type ImageInfo struct {
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
	Source    string `json:"source"`
	SourceURL string `json:"source_url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	IsDefault bool   `json:"is_default,omitempty"`
}

// ScheduleSlot is one publication trigger in the daily timetable.
type ScheduleSlot struct {
	Category string
	Hour     int
	Minute   int
}

// CategoryStats tracks one category's outcome within a pipeline run.
type CategoryStats struct {
	Generated int `json:"generated"`
	Published int `json:"published"`
	Errors    int `json:"errors"`
}

// RunStats summarizes a content-generation run.
type RunStats struct {
	TotalGenerated int                      `json:"total_generated"`
	TotalPublished int                      `json:"total_published"`
	Categories     map[string]CategoryStats `json:"categories"`
	StartTime      time.Time                `json:"start_time"`
	EndTime        time.Time                `json:"end_time"`
}
