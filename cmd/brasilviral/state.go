// cmd/brasilviral/state.go
package main

import (
	"sync"
	"time"
)

// State tracks run statistics across the daemon's lifetime. It is
// persisted so counters survive restarts.
type State struct {
	StartupTime    time.Time                 `json:"startup_time"`
	LastRunStats   *RunStats                 `json:"last_run_stats,omitempty"`
	TotalPublished int                       `json:"total_published"`
	TotalErrors    int                       `json:"total_errors"`
	CategoryTotals map[string]*CategoryStats `json:"category_totals"`

	path string
	mu   sync.Mutex
}

// LoadState reads the persisted state, starting fresh when none exists.
func LoadState(path string) (*State, error) {
	st := &State{
		StartupTime:    time.Now(),
		CategoryTotals: make(map[string]*CategoryStats),
		path:           path,
	}
	if err := loadJSON(path, st); err != nil {
		return nil, err
	}
	st.path = path
	st.StartupTime = time.Now()
	if st.CategoryTotals == nil {
		st.CategoryTotals = make(map[string]*CategoryStats)
	}
	return st, nil
}

// Save persists the state to disk.
func (s *State) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveJSON(s.path, s)
}

// RecordRun folds a finished run's stats into the totals and persists.
func (s *State) RecordRun(stats *RunStats) error {
	s.mu.Lock()
	s.LastRunStats = stats
	s.TotalPublished += stats.TotalPublished
	for cat, cs := range stats.Categories {
		tot, ok := s.CategoryTotals[cat]
		if !ok {
			tot = &CategoryStats{}
			s.CategoryTotals[cat] = tot
		}
		tot.Generated += cs.Generated
		tot.Published += cs.Published
		tot.Errors += cs.Errors
		s.TotalErrors += cs.Errors
	}
	s.mu.Unlock()
	return s.Save()
}

// Snapshot returns a copy of the counters for the status endpoint.
func (s *State) Snapshot() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	cats := make(map[string]CategoryStats, len(s.CategoryTotals))
	for cat, cs := range s.CategoryTotals {
		cats[cat] = *cs
	}
	snap := map[string]interface{}{
		"startup_time":    s.StartupTime.Format(time.RFC3339),
		"uptime":          time.Since(s.StartupTime).Round(time.Second).String(),
		"total_published": s.TotalPublished,
		"total_errors":    s.TotalErrors,
		"categories":      cats,
	}
	if s.LastRunStats != nil {
		snap["last_run"] = s.LastRunStats
	}
	return snap
}
