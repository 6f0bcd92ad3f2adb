// Package scheduler wires up the cron jobs: periodic collection cycles and
// cache/tracker maintenance.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"lexwatch/collector-service/internal/dedup"
	"lexwatch/collector-service/internal/keywords"
	"lexwatch/collector-service/internal/pipeline"
)

// Scheduler wraps robfig/cron and manages the collection and maintenance
// loops.
type Scheduler struct {
	cron    *cron.Cron
	cache   *dedup.Cache
	tracker *keywords.Tracker
	worker  *pipeline.Worker // nil disables the collection job
	spec    string           // cron spec, e.g. "@every 6h"
}

// New creates a Scheduler that fires every intervalHours hours. worker may
// be nil when no collector is attached; maintenance still runs.
func New(cache *dedup.Cache, tracker *keywords.Tracker, worker *pipeline.Worker, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cron.DefaultLogger)),
		cache:   cache,
		tracker: tracker,
		worker:  worker,
		spec:    fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the jobs and starts the scheduler. Also runs one cycle
// immediately so a fresh deployment does useful work without waiting for
// the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runCycle(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — spec: %s", s.spec)

	// Run immediately on startup (non-blocking)
	go s.runCycle(ctx)

	return nil
}

// Stop flushes pending keyword stats and shuts the scheduler down.
func (s *Scheduler) Stop(ctx context.Context) {
	s.cron.Stop()
	if err := s.tracker.Flush(ctx); err != nil {
		log.Printf("[scheduler] Final tracker flush error: %v", err)
	}
	log.Println("[scheduler] Cron stopped")
}

// runCycle runs one collection pass (if a worker is attached) followed by
// maintenance.
func (s *Scheduler) runCycle(ctx context.Context) {
	log.Println("[scheduler] Cycle started")

	if s.worker != nil {
		if err := s.worker.Run(ctx); err != nil {
			log.Printf("[scheduler] Worker error: %v", err)
		}
	}

	purged, err := s.cache.PurgeExpired(ctx)
	if err != nil {
		log.Printf("[scheduler] Cache purge error: %v", err)
	} else if purged > 0 {
		log.Printf("[scheduler] Purged %d expired cache entries", purged)
	}

	if err := s.tracker.Flush(ctx); err != nil {
		log.Printf("[scheduler] Tracker flush error: %v", err)
	}

	stats := s.cache.Stats()
	log.Printf("[scheduler] Cycle complete — cache checks=%d hits=%d hit_rate=%.2f",
		stats.Checks, stats.Hits, stats.HitRate())
}
