// cmd/brasilviral/config.go
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Config holds the automation settings persisted to the config file.
type Config struct {
	Enabled                bool       `json:"enabled"`
	Categories             []string   `json:"categories"`
	PostsPerCategoryPerDay int        `json:"posts_per_category_per_day"`
	StartHour              int        `json:"start_hour"`
	EndHour                int        `json:"end_hour"`
	MinViralScore          int        `json:"min_viral_score"`
	BatchSize              int        `json:"batch_size"`
	MaxDuplicates          int        `json:"max_duplicates"`
	LastRun                *time.Time `json:"last_run,omitempty"`

	// Legacy key still accepted from older config files.
	PostsPerDayAlias int `json:"posts_per_day,omitempty"`

	OpenAIAPIKey  string `json:"-"`
	PixabayAPIKey string `json:"-"`

	path string
	mu   sync.Mutex
}

// DefaultConfig returns a config with the stock settings.
func DefaultConfig() *Config {
	cats := make([]string, len(Categories))
	copy(cats, Categories)
	return &Config{
		Enabled:                true,
		Categories:             cats,
		PostsPerCategoryPerDay: DefaultPostsPerDay,
		StartHour:              DefaultStartHour,
		EndHour:                DefaultEndHour,
		MinViralScore:          DefaultMinViralScore,
		BatchSize:              DefaultBatchSize,
		MaxDuplicates:          DefaultMaxDuplicates,
	}
}

// LoadConfig reads the config file at path. When the file is missing or
// unreadable, defaults are written back so the next run starts from a
// known state.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			GetLogger().Warning("Could not read config %s, rewriting defaults: %v", path, err)
		}
		if saveErr := cfg.Save(); saveErr != nil {
			return nil, saveErr
		}
		return cfg, nil
	}

	// Unmarshal into a zero config so absent keys are detectable.
	loaded := &Config{path: path}
	if err := json.Unmarshal(data, loaded); err != nil {
		GetLogger().Warning("Invalid config %s, rewriting defaults: %v", path, err)
		if saveErr := cfg.Save(); saveErr != nil {
			return nil, saveErr
		}
		return cfg, nil
	}
	cfg = loaded

	// Older files used posts_per_day for the per-category count.
	if cfg.PostsPerCategoryPerDay == 0 && cfg.PostsPerDayAlias > 0 {
		cfg.PostsPerCategoryPerDay = cfg.PostsPerDayAlias
	}
	cfg.PostsPerDayAlias = 0
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.OpenAIAPIKey = GetEnvString("OPENAI_API_KEY", cfg.OpenAIAPIKey)
	cfg.PixabayAPIKey = GetEnvString("PIXABAY_API_KEY", cfg.PixabayAPIKey)
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Categories) == 0 {
		c.Categories = make([]string, len(Categories))
		copy(c.Categories, Categories)
	}
	if c.PostsPerCategoryPerDay <= 0 {
		c.PostsPerCategoryPerDay = DefaultPostsPerDay
	}
	if c.EndHour == 0 {
		c.EndHour = DefaultEndHour
	}
	if c.MinViralScore <= 0 {
		c.MinViralScore = DefaultMinViralScore
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.MaxDuplicates <= 0 {
		c.MaxDuplicates = DefaultMaxDuplicates
	}
}

// Validate checks the config for impossible settings.
func (c *Config) Validate() error {
	if c.StartHour < 0 || c.StartHour > 23 {
		return NewValidationError("CONFIG_001", fmt.Sprintf("start_hour %d out of range", c.StartHour))
	}
	if c.EndHour < 0 || c.EndHour > 23 {
		return NewValidationError("CONFIG_001", fmt.Sprintf("end_hour %d out of range", c.EndHour))
	}
	if c.EndHour < c.StartHour {
		return NewValidationError("CONFIG_001", fmt.Sprintf("end_hour %d must not be before start_hour %d", c.EndHour, c.StartHour))
	}
	for _, cat := range c.Categories {
		if !IsValidCategory(cat) {
			return NewValidationError("CONFIG_002", fmt.Sprintf("unknown category %q", cat))
		}
	}
	return nil
}

// Save persists the config to its file.
func (c *Config) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.path == "" {
		return NewValidationError("CONFIG_002", "config has no backing file")
	}
	return saveJSON(c.path, c)
}

// MarkRun records the time of the latest automation run and persists.
func (c *Config) MarkRun(t time.Time) error {
	c.mu.Lock()
	c.LastRun = &t
	c.mu.Unlock()
	return c.Save()
}
