// Package pipeline runs the post-processing flow: metadata normalization,
// deduplication, classification and persistence of accepted posts. Each
// post is processed independently — one malformed post never aborts a
// batch.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"lexwatch/collector-service/internal/classify"
	"lexwatch/collector-service/internal/dedup"
	"lexwatch/collector-service/internal/model"
	"lexwatch/collector-service/internal/normalize"
	"lexwatch/collector-service/internal/signature"
)

// Outcome summarizes what happened to one post.
type Outcome string

const (
	OutcomeAccepted  Outcome = "accepted"
	OutcomeRejected  Outcome = "rejected"
	OutcomeDuplicate Outcome = "duplicate"
)

// StoredPost is the egress contract: the record handed to the sink for an
// accepted post.
type StoredPost struct {
	RunID        string
	Keyword      string
	Signature    string
	Text         string
	Author       string
	Company      string
	PostedAt     *time.Time
	AgeHours     float64
	Intent       string
	Score        float64
	Confidence   float64
	MatchedTerms []string
	ExtractedAt  time.Time
}

// Sink persists accepted posts. Implementations must skip duplicates by
// signature rather than erroring on re-insert.
type Sink interface {
	Save(ctx context.Context, p StoredPost) error
}

// Pipeline wires the core components. Classification and normalization are
// pure; the dedup cache is the only shared state and synchronizes itself.
type Pipeline struct {
	cache  *dedup.Cache
	filter *classify.Filter
	sink   Sink // nil drops accepted posts after classification
}

// New constructs a Pipeline. sink may be nil for dry runs.
func New(cache *dedup.Cache, filter *classify.Filter, sink Sink) *Pipeline {
	return &Pipeline{cache: cache, filter: filter, sink: sink}
}

// ConfigHash exposes the filter's config version for drift detection.
func (p *Pipeline) ConfigHash() string { return p.filter.ConfigHash() }

// Process runs one post through the full flow and returns its outcome plus
// the classification result (zero Result for duplicates). The returned
// error is only ever a sink failure — classification and dedup errors are
// contained internally.
func (p *Pipeline) Process(ctx context.Context, runID string, raw model.RawPost) (Outcome, classify.Result, error) {
	meta := normalize.NormalizePost(raw, time.Now())

	// Only a source-assigned identifier may claim post-ID signature
	// priority; content-derived pseudo-IDs stay on the content hash path.
	postID := ""
	if meta.Permalink.Valid && meta.Permalink.Confidence >= 0.9 {
		postID = meta.Permalink.ID
	}

	if p.cache.IsDuplicate(ctx, postID, raw.PermalinkURL, raw.Text, raw.AuthorName) {
		return OutcomeDuplicate, classify.Result{}, nil
	}

	res := p.filter.ClassifyPostLanguage(raw.Text, meta.Author.Value, meta.Company.Value, raw.Language)

	// Every classified post is marked processed, accepted or not, so
	// rejected posts never reclassify on re-sight.
	p.cache.MarkProcessed(ctx, postID, raw.PermalinkURL, raw.Text, raw.AuthorName)

	if !res.Accepted() {
		return OutcomeRejected, res, nil
	}
	if p.sink == nil {
		return OutcomeAccepted, res, nil
	}

	stored := StoredPost{
		RunID:        runID,
		Keyword:      raw.Keyword,
		Signature:    signature.Composite(postID, raw.PermalinkURL, raw.Text, raw.AuthorName),
		Text:         raw.Text,
		Author:       meta.Author.Value,
		Company:      meta.Company.Value,
		AgeHours:     meta.Date.AgeHours,
		Intent:       string(res.Intent),
		Score:        res.Score,
		Confidence:   res.Confidence,
		MatchedTerms: res.MatchedTerms,
		ExtractedAt:  time.Now(),
	}
	if meta.Date.Valid {
		t := meta.Date.Time
		stored.PostedAt = &t
	}
	if err := p.sink.Save(ctx, stored); err != nil {
		return OutcomeAccepted, res, fmt.Errorf("sink save: %w", err)
	}
	return OutcomeAccepted, res, nil
}

// CacheStats exposes dedup counters for operator telemetry.
func (p *Pipeline) CacheStats() dedup.Stats { return p.cache.Stats() }
