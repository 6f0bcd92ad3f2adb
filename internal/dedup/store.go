package dedup

import (
	"context"
	"time"
)

// Entry is one durable-tier record. Entries are never mutated after
// creation; re-marking the same signature just refreshes SeenAt.
type Entry struct {
	Signature string
	SeenAt    time.Time
	TTL       time.Duration // zero means no expiry
	Source    string        // collector tag, e.g. "feed-search"
}

// Store is the durable tier of the dedup cache. Implementations must give
// Put upsert semantics: writing an existing signature twice never errors and
// never creates a duplicate row.
type Store interface {
	// Has reports whether the signature is present and not expired.
	Has(ctx context.Context, sig string) (bool, error)
	Put(ctx context.Context, e Entry) error
	Remove(ctx context.Context, sig string) error
	Clear(ctx context.Context) error
	// PurgeExpired removes expired entries and returns how many were
	// deleted. Backends with native TTL handling may return (0, nil).
	PurgeExpired(ctx context.Context) (int64, error)
}
