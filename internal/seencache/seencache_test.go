package seencache

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seen.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestIsSeenFalseForUnknownKey(t *testing.T) {
	c := openTestCache(t)
	seen, err := c.IsSeen("vin:UNKNOWN")
	if err != nil {
		t.Fatalf("IsSeen() error = %v", err)
	}
	if seen {
		t.Error("IsSeen() = true, want false for a key never marked")
	}
}

func TestMarkSeenThenIsSeen(t *testing.T) {
	c := openTestCache(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := c.MarkSeen("vin:ABC", "https://example.com/a", "https://example.com/search", now); err != nil {
		t.Fatalf("MarkSeen() error = %v", err)
	}
	seen, err := c.IsSeen("vin:ABC")
	if err != nil {
		t.Fatalf("IsSeen() error = %v", err)
	}
	if !seen {
		t.Error("IsSeen() = false, want true after MarkSeen")
	}
}

func TestMarkSeenIsIdempotentAndIncrementsCount(t *testing.T) {
	c := openTestCache(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	later := now.Add(24 * time.Hour)

	if err := c.MarkSeen("vin:ABC", "u", "s", now); err != nil {
		t.Fatalf("first MarkSeen() error = %v", err)
	}
	if err := c.MarkSeen("vin:ABC", "u", "s", later); err != nil {
		t.Fatalf("second MarkSeen() error = %v", err)
	}

	total, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if total != 1 {
		t.Errorf("Stats() = %d, want 1 distinct listing after two MarkSeen calls on the same key", total)
	}

	var timesSeen int
	if err := c.db.QueryRow(`SELECT times_seen FROM seen_listings WHERE composite_key = ?`, "vin:ABC").Scan(&timesSeen); err != nil {
		t.Fatalf("reading times_seen: %v", err)
	}
	if timesSeen != 2 {
		t.Errorf("times_seen = %d, want 2 after two MarkSeen calls", timesSeen)
	}
}

func TestMarkAllSeenRecordsEveryEntry(t *testing.T) {
	c := openTestCache(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := map[string]struct{ ListingURL, SourceURL string }{
		"vin:A": {ListingURL: "https://example.com/a", SourceURL: "https://example.com/search"},
		"vin:B": {ListingURL: "https://example.com/b", SourceURL: "https://example.com/search"},
	}
	c.MarkAllSeen(entries, now)

	total, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if total != 2 {
		t.Errorf("Stats() = %d, want 2", total)
	}
}
