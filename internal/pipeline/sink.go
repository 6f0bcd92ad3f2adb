package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSink stores accepted posts in the post_feed table. Inserts skip
// rows whose signature already exists, so a lost dedup cache at worst
// produces a no-op write, never a duplicate row.
type PostgresSink struct {
	pool *pgxpool.Pool
}

// NewPostgresSink ensures the post_feed table exists.
func NewPostgresSink(ctx context.Context, pool *pgxpool.Pool) (*PostgresSink, error) {
	const ddl = `
	CREATE TABLE IF NOT EXISTS post_feed (
		id             BIGSERIAL PRIMARY KEY,
		run_id         TEXT NOT NULL,
		keyword        TEXT NOT NULL DEFAULT '',
		signature      TEXT NOT NULL UNIQUE,
		post_text      TEXT NOT NULL,
		author         TEXT NOT NULL DEFAULT '',
		company        TEXT NOT NULL DEFAULT '',
		posted_at      TIMESTAMPTZ,
		age_hours      DOUBLE PRECISION,
		intent         TEXT NOT NULL,
		score          DOUBLE PRECISION NOT NULL,
		confidence     DOUBLE PRECISION NOT NULL,
		matched_terms  JSONB NOT NULL DEFAULT '[]',
		extracted_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("create post_feed table: %w", err)
	}
	return &PostgresSink{pool: pool}, nil
}

func (s *PostgresSink) Save(ctx context.Context, p StoredPost) error {
	terms, err := json.Marshal(p.MatchedTerms)
	if err != nil {
		return fmt.Errorf("marshal matched terms: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO post_feed
		   (run_id, keyword, signature, post_text, author, company,
		    posted_at, age_hours, intent, score, confidence, matched_terms, extracted_at)
		 SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12::jsonb, $13
		 WHERE NOT EXISTS (
		   SELECT 1 FROM post_feed WHERE signature = $3
		 )`,
		p.RunID, p.Keyword, p.Signature, p.Text, p.Author, p.Company,
		p.PostedAt, p.AgeHours, p.Intent, p.Score, p.Confidence, string(terms), p.ExtractedAt,
	)
	if err != nil {
		return fmt.Errorf("insert post_feed: %w", err)
	}
	return nil
}

var _ Sink = (*PostgresSink)(nil)
