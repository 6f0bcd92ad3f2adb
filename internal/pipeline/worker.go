package pipeline

import (
	"context"
	"log"

	"github.com/google/uuid"

	"lexwatch/collector-service/internal/keywords"
	"lexwatch/collector-service/internal/model"
)

// Collector is the external collaborator that fetches raw posts for a
// keyword. Browser automation, pacing and anti-detection live behind this
// seam, outside the core.
type Collector interface {
	Fetch(ctx context.Context, keyword string) ([]model.RawPost, error)
}

// Worker runs one collection cycle: it asks the tracker for the most
// productive keywords, fetches posts for each, pushes them through the
// pipeline and feeds the outcome back into the tracker.
type Worker struct {
	pipe      *Pipeline
	collector Collector
	tracker   *keywords.Tracker
	batchSize int
}

// NewWorker constructs a Worker.
func NewWorker(pipe *Pipeline, collector Collector, tracker *keywords.Tracker, batchSize int) *Worker {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Worker{pipe: pipe, collector: collector, tracker: tracker, batchSize: batchSize}
}

// Run executes one collection cycle. Per-keyword and per-post errors are
// logged and contained; the cycle always completes.
func (w *Worker) Run(ctx context.Context) error {
	runID := uuid.NewString()
	batch := w.tracker.NextBatch(w.batchSize)
	if len(batch) == 0 {
		log.Printf("[worker] Run %s: no keywords in rotation — nothing to collect", runID)
		return nil
	}
	log.Printf("[worker] Run %s: collecting %d keyword(s): %v", runID, len(batch), batch)

	var totalAccepted, totalRejected, totalDuplicate int
	for _, kw := range batch {
		accepted, rejected, dupes := w.collectKeyword(ctx, runID, kw)
		totalAccepted += accepted
		totalRejected += rejected
		totalDuplicate += dupes
	}

	stats := w.pipe.CacheStats()
	log.Printf("[worker] Run %s done — accepted=%d rejected=%d duplicates=%d cache_hit_rate=%.2f",
		runID, totalAccepted, totalRejected, totalDuplicate, stats.HitRate())
	return nil
}

func (w *Worker) collectKeyword(ctx context.Context, runID, keyword string) (accepted, rejected, dupes int) {
	posts, err := w.collector.Fetch(ctx, keyword)
	if err != nil {
		log.Printf("[worker] Fetch error for %q: %v — continuing", keyword, err)
		w.tracker.Record(keyword, 0, 0)
		return 0, 0, 0
	}

	for _, raw := range posts {
		raw.Keyword = keyword
		outcome, res, err := w.pipe.Process(ctx, runID, raw)
		if err != nil {
			log.Printf("[worker] Process error for %q: %v — continuing", keyword, err)
		}
		switch outcome {
		case OutcomeAccepted:
			accepted++
		case OutcomeDuplicate:
			dupes++
		default:
			rejected++
			log.Printf("[worker] Rejected (%s, score=%.2f) for %q", res.Intent, res.Score, keyword)
		}
	}

	w.tracker.Record(keyword, len(posts), accepted)
	return accepted, rejected, dupes
}
