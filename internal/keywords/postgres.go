package keywords

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists keyword stats in the keyword_stats table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore ensures the keyword_stats table exists.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	const ddl = `
	CREATE TABLE IF NOT EXISTS keyword_stats (
		keyword        TEXT PRIMARY KEY,
		attempts       INTEGER NOT NULL DEFAULT 0,
		posts_found    INTEGER NOT NULL DEFAULT 0,
		posts_retained INTEGER NOT NULL DEFAULT 0,
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("create keyword_stats table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) LoadAll(ctx context.Context) ([]Stats, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT keyword, attempts, posts_found, posts_retained, updated_at
		 FROM keyword_stats`)
	if err != nil {
		return nil, fmt.Errorf("query keyword_stats: %w", err)
	}
	defer rows.Close()

	var all []Stats
	for rows.Next() {
		var st Stats
		if err := rows.Scan(&st.Keyword, &st.Attempts, &st.PostsFound, &st.PostsRetained, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan keyword_stats: %w", err)
		}
		all = append(all, st)
	}
	return all, rows.Err()
}

func (s *PostgresStore) Upsert(ctx context.Context, st Stats) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO keyword_stats (keyword, attempts, posts_found, posts_retained, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (keyword) DO UPDATE SET
		   attempts = EXCLUDED.attempts,
		   posts_found = EXCLUDED.posts_found,
		   posts_retained = EXCLUDED.posts_retained,
		   updated_at = now()`,
		st.Keyword, st.Attempts, st.PostsFound, st.PostsRetained,
	)
	if err != nil {
		return fmt.Errorf("upsert keyword_stats: %w", err)
	}
	return nil
}

var _ Store = (*PostgresStore)(nil)
