package dedup

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteStore is a durable tier backed by a local SQLite file — the default
// for single-host deployments with no Redis around. Signature is the primary
// key; Put relies on ON CONFLICT upsert semantics.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore ensures the seen_posts table exists on the given handle.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	const ddl = `
	CREATE TABLE IF NOT EXISTS seen_posts (
		signature  TEXT PRIMARY KEY,
		seen_at    INTEGER NOT NULL,
		expires_at INTEGER,
		source     TEXT NOT NULL DEFAULT ''
	)`
	if _, err := db.Exec(ddl); err != nil {
		return nil, fmt.Errorf("create seen_posts table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Has(ctx context.Context, sig string) (bool, error) {
	var expiresAt sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT expires_at FROM seen_posts WHERE signature = ?`, sig,
	).Scan(&expiresAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query seen_posts: %w", err)
	}
	if expiresAt.Valid && expiresAt.Int64 < time.Now().Unix() {
		// Expired — remove lazily and report a miss.
		_, _ = s.db.ExecContext(ctx, `DELETE FROM seen_posts WHERE signature = ?`, sig)
		return false, nil
	}
	return true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, e Entry) error {
	var expiresAt any
	if e.TTL > 0 {
		expiresAt = e.SeenAt.Add(e.TTL).Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO seen_posts (signature, seen_at, expires_at, source)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(signature) DO UPDATE SET
		   seen_at = excluded.seen_at,
		   expires_at = excluded.expires_at`,
		e.Signature, e.SeenAt.Unix(), expiresAt, e.Source,
	)
	if err != nil {
		return fmt.Errorf("upsert seen_posts: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, sig string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM seen_posts WHERE signature = ?`, sig); err != nil {
		return fmt.Errorf("delete seen_posts row: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM seen_posts`); err != nil {
		return fmt.Errorf("clear seen_posts: %w", err)
	}
	return nil
}

func (s *SQLiteStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM seen_posts WHERE expires_at IS NOT NULL AND expires_at < ?`,
		time.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("purge seen_posts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}

var _ Store = (*SQLiteStore)(nil)
