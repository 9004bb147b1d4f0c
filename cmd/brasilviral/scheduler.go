// cmd/brasilviral/scheduler.go
package main

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/robfig/cron/v3"
)

// BuildSchedule lays out the day's publication slots for every
// configured category. The random source is injected so tests can pin
// the timetable.
//
// When a category's daily quota exceeds the posting window's hour
// count, hours before the last get a Bernoulli-rounded share and the
// last hour takes a fixed remainder; the realized total can drift a
// post or two from the quota. That drift matches longstanding site
// behavior and downstream counters tolerate it.
func BuildSchedule(cfg *Config, rng *rand.Rand) []ScheduleSlot {
	// The window is inclusive on both ends: 6-22 is 17 postable hours.
	hours := cfg.EndHour - cfg.StartHour + 1
	if hours <= 0 {
		return nil
	}

	var slots []ScheduleSlot
	for _, category := range cfg.Categories {
		slots = append(slots, categorySlots(category, cfg.StartHour, hours, cfg.PostsPerCategoryPerDay, rng)...)
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Hour != slots[j].Hour {
			return slots[i].Hour < slots[j].Hour
		}
		return slots[i].Minute < slots[j].Minute
	})
	return slots
}

func categorySlots(category string, startHour, hours, posts int, rng *rand.Rand) []ScheduleSlot {
	var slots []ScheduleSlot

	if posts <= hours {
		// Sample distinct hours, one post each.
		perm := rng.Perm(hours)[:posts]
		for _, off := range perm {
			slots = append(slots, ScheduleSlot{
				Category: category,
				Hour:     startHour + off,
				Minute:   rng.Intn(60),
			})
		}
		return slots
	}

	rate := float64(posts) / float64(hours)
	base := int(rate)
	frac := rate - float64(base)

	for h := 0; h < hours; h++ {
		n := base
		if h == hours-1 {
			n = posts - base*(hours-1)
		} else if rng.Float64() < frac {
			n++
		}
		for i := 0; i < n; i++ {
			slots = append(slots, ScheduleSlot{
				Category: category,
				Hour:     startHour + h,
				Minute:   rng.Intn(60),
			})
		}
	}
	return slots
}

// Scheduler drives the daemon: per-slot publications, the hourly index
// refresh, the nightly cleanup and a midnight timetable rebuild.
type Scheduler struct {
	cfg      *Config
	pipeline *Pipeline
	rng      *rand.Rand
	cron     *cron.Cron
	slotIDs  []cron.EntryID
}

// NewScheduler wires a scheduler over the pipeline.
func NewScheduler(cfg *Config, pipeline *Pipeline, rng *rand.Rand) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		pipeline: pipeline,
		rng:      rng,
		cron:     cron.New(),
	}
}

// Start installs all jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if err := s.installSlots(); err != nil {
		return err
	}

	// Rebuild the timetable at midnight so each day gets new slots.
	if _, err := s.cron.AddFunc("0 0 * * *", func() {
		if err := s.installSlots(); err != nil {
			GetLogger().Error("Schedule rebuild failed: %v", err)
		}
	}); err != nil {
		return NewError(ErrorKindInternal, "SCHED_001", "add rebuild job", err)
	}

	if _, err := s.cron.AddFunc("0 * * * *", func() {
		if err := s.pipeline.RefreshIndexes(); err != nil {
			GetLogger().Error("Hourly index refresh failed: %v", err)
		}
	}); err != nil {
		return NewError(ErrorKindInternal, "SCHED_001", "add index job", err)
	}

	cleanupSpec := fmt.Sprintf("0 %d * * *", CleanupHour)
	if _, err := s.cron.AddFunc(cleanupSpec, func() {
		removed, err := CleanupOldNews(s.pipeline.baseDir, CleanupAfterDays)
		if err != nil {
			GetLogger().Error("Cleanup failed: %v", err)
			return
		}
		GetLogger().Info("Cleanup removed %d old pages", removed)
		if err := s.pipeline.RefreshIndexes(); err != nil {
			GetLogger().Error("Post-cleanup index refresh failed: %v", err)
		}
	}); err != nil {
		return NewError(ErrorKindInternal, "SCHED_001", "add cleanup job", err)
	}

	s.cron.Start()
	GetLogger().Info("Scheduler started with %d publication slots", len(s.slotIDs))
	return nil
}

// Stop halts the cron loop and waits for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// installSlots replaces the current slot jobs with a fresh timetable.
func (s *Scheduler) installSlots() error {
	for _, id := range s.slotIDs {
		s.cron.Remove(id)
	}
	s.slotIDs = s.slotIDs[:0]

	slots := BuildSchedule(s.cfg, s.rng)
	for _, slot := range slots {
		slot := slot
		spec := fmt.Sprintf("%d %d * * *", slot.Minute, slot.Hour)
		id, err := s.cron.AddFunc(spec, func() {
			if err := s.pipeline.PublishOneForCategory(context.Background(), slot.Category); err != nil {
				GetLogger().Error("Scheduled post for %s failed: %v", slot.Category, err)
			}
		})
		if err != nil {
			return NewError(ErrorKindInternal, "SCHED_002", fmt.Sprintf("add slot %02d:%02d %s", slot.Hour, slot.Minute, slot.Category), err)
		}
		s.slotIDs = append(s.slotIDs, id)
	}

	GetLogger().Info("Installed %d publication slots for today", len(slots))
	return nil
}
