// Package keywords scores keyword productivity from pipeline outcomes so
// future searches can prioritize the keywords that actually surface
// retained posts.
package keywords

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Stats is the per-keyword productivity record.
type Stats struct {
	Keyword       string
	Attempts      int
	PostsFound    int
	PostsRetained int
	UpdatedAt     time.Time
}

// SuccessRate is posts found per attempt, clamped to [0,1]; neutral 0.5
// before the first attempt.
func (s Stats) SuccessRate() float64 {
	if s.Attempts == 0 {
		return 0.5
	}
	r := float64(s.PostsFound) / float64(s.Attempts)
	if r > 1 {
		r = 1
	}
	return r
}

// RelevanceRate is the post-filter retention ratio; neutral 0.5 before any
// post has been found.
func (s Stats) RelevanceRate() float64 {
	if s.PostsFound == 0 {
		return 0.5
	}
	return float64(s.PostsRetained) / float64(s.PostsFound)
}

// YieldScore balances discovery rate and retention rate.
func (s Stats) YieldScore() float64 {
	return 0.4*s.SuccessRate() + 0.6*s.RelevanceRate()
}

// Store persists keyword stats across restarts.
type Store interface {
	LoadAll(ctx context.Context) ([]Stats, error)
	Upsert(ctx context.Context, s Stats) error
}

// Tracker accumulates keyword stats in memory and flushes dirty entries to
// its Store. Safe for concurrent use.
type Tracker struct {
	mu          sync.Mutex
	stats       map[string]Stats
	dirty       map[string]bool
	store       Store // nil means in-memory only
	minAttempts int
	retireBelow float64
}

// NewTracker builds a tracker. Keywords with at least minAttempts attempts
// and a yield score below retireBelow are retired from batch selection.
func NewTracker(store Store, minAttempts int, retireBelow float64) *Tracker {
	return &Tracker{
		stats:       make(map[string]Stats),
		dirty:       make(map[string]bool),
		store:       store,
		minAttempts: minAttempts,
		retireBelow: retireBelow,
	}
}

// Load restores persisted stats. Call once at startup.
func (t *Tracker) Load(ctx context.Context) error {
	if t.store == nil {
		return nil
	}
	all, err := t.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load keyword stats: %w", err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range all {
		t.stats[s.Keyword] = s
	}
	return nil
}

// Seed registers keywords that have never been attempted, so they enter
// rotation at the neutral yield score.
func (t *Tracker) Seed(kws []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, kw := range kws {
		if kw == "" {
			continue
		}
		if _, ok := t.stats[kw]; !ok {
			t.stats[kw] = Stats{Keyword: kw}
			t.dirty[kw] = true
		}
	}
}

// Record adds one search attempt's outcome for a keyword.
func (t *Tracker) Record(keyword string, found, retained int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.stats[keyword]
	s.Keyword = keyword
	s.Attempts++
	s.PostsFound += found
	s.PostsRetained += retained
	s.UpdatedAt = time.Now()
	t.stats[keyword] = s
	t.dirty[keyword] = true
}

// Get returns the current stats for a keyword.
func (t *Tracker) Get(keyword string) (Stats, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.stats[keyword]
	return s, ok
}

// NextBatch returns up to n keywords ordered by descending yield score,
// excluding retired ones. Retirement requires both enough attempts and a
// consistently low yield — fresh keywords always stay in rotation.
func (t *Tracker) NextBatch(n int) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	candidates := make([]Stats, 0, len(t.stats))
	for _, s := range t.stats {
		if s.Attempts >= t.minAttempts && s.YieldScore() < t.retireBelow {
			continue
		}
		candidates = append(candidates, s)
	}
	sort.Slice(candidates, func(i, j int) bool {
		yi, yj := candidates[i].YieldScore(), candidates[j].YieldScore()
		if yi != yj {
			return yi > yj
		}
		return candidates[i].Keyword < candidates[j].Keyword
	})

	if n > len(candidates) {
		n = len(candidates)
	}
	batch := make([]string, 0, n)
	for _, s := range candidates[:n] {
		batch = append(batch, s.Keyword)
	}
	return batch
}

// Flush upserts every dirty entry. Entries that fail stay dirty for the
// next flush.
func (t *Tracker) Flush(ctx context.Context) error {
	if t.store == nil {
		return nil
	}
	t.mu.Lock()
	pending := make([]Stats, 0, len(t.dirty))
	for kw := range t.dirty {
		pending = append(pending, t.stats[kw])
	}
	t.mu.Unlock()

	var firstErr error
	for _, s := range pending {
		if err := t.store.Upsert(ctx, s); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("upsert keyword %q: %w", s.Keyword, err)
			}
			continue
		}
		t.mu.Lock()
		delete(t.dirty, s.Keyword)
		t.mu.Unlock()
	}
	return firstErr
}
