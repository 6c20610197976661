// Package seencache is a persistent, cross-run "previously seen listing"
// store backed by SQLite. It is purely additive to the in-run composite-key
// deduplication of the deduplication stage (spec §4.6): collection consults
// it to flag listings already observed in an earlier pipeline run, and
// deduplication records the listings a run kept. Neither lookups nor writes
// here ever change within-run correctness - the in-memory dedup stays the
// source of truth for a single run's output.
package seencache

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rkaplan/x987scout/internal/logging"
)

var log = logging.New("seencache")

// Cache wraps a SQLite-backed table of composite keys seen in prior runs.
type Cache struct {
	db    *sql.DB
	mu    sync.Mutex
}

// Open opens (creating if necessary) the SQLite database at path and
// ensures its schema exists, following the teacher's InitDB/createTables
// shape: WAL journal mode with CREATE TABLE IF NOT EXISTS.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening seen cache at %s: %w", path, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS seen_listings (
		composite_key TEXT PRIMARY KEY,
		listing_url TEXT,
		source_url TEXT,
		first_seen_at TIMESTAMP NOT NULL,
		last_seen_at TIMESTAMP NOT NULL,
		times_seen INTEGER NOT NULL DEFAULT 1
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating seen_listings table: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close releases the underlying database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// IsSeen reports whether compositeKey was recorded by a prior call to
// MarkSeen, in this or an earlier process.
func (c *Cache) IsSeen(compositeKey string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var count int
	err := c.db.QueryRow(`SELECT COUNT(1) FROM seen_listings WHERE composite_key = ?`, compositeKey).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("querying seen cache: %w", err)
	}
	return count > 0, nil
}

// MarkSeen records compositeKey as seen, upserting the first/last-seen
// timestamps and incrementing the hit counter on repeat sightings.
func (c *Cache) MarkSeen(compositeKey, listingURL, sourceURL string, now time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec(`
	INSERT INTO seen_listings (composite_key, listing_url, source_url, first_seen_at, last_seen_at, times_seen)
	VALUES (?, ?, ?, ?, ?, 1)
	ON CONFLICT(composite_key) DO UPDATE SET
		last_seen_at = excluded.last_seen_at,
		times_seen = times_seen + 1
	`, compositeKey, listingURL, sourceURL, now, now)
	if err != nil {
		return fmt.Errorf("recording seen listing: %w", err)
	}
	return nil
}

// MarkAllSeen is a bulk convenience wrapper over MarkSeen for a whole run's
// worth of composite keys, logging (not failing) on a per-row error so one
// bad row doesn't block the rest of the batch.
func (c *Cache) MarkAllSeen(entries map[string]struct{ ListingURL, SourceURL string }, now time.Time) {
	for key, meta := range entries {
		if err := c.MarkSeen(key, meta.ListingURL, meta.SourceURL, now); err != nil {
			log.Warn("failed to record seen listing %q: %v", key, err)
		}
	}
}

// Stats reports the total number of distinct listings ever recorded.
func (c *Cache) Stats() (total int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.db.QueryRow(`SELECT COUNT(1) FROM seen_listings`).Scan(&total)
	return total, err
}
