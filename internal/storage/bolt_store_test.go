package storage

import (
	"testing"
	"time"
)

func openTestBolt(t *testing.T, opts Options) *boltStore {
	t.Helper()
	storeRaw, err := openBolt(t.TempDir()+"/journal.db", normalizeOptions(opts))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBoltStoreRecordsNewestFirst(t *testing.T) {
	store := openTestBolt(t, Options{})

	for _, endpoint := range []string{"posts", "users", "posts/1"} {
		if err := store.Record(Entry{Endpoint: endpoint, Status: 200}); err != nil {
			t.Fatalf("Record %s: %v", endpoint, err)
		}
	}

	entries, err := store.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Endpoint != "posts/1" || entries[2].Endpoint != "posts" {
		t.Fatalf("expected newest first, got %+v", entries)
	}
	if entries[0].At.IsZero() {
		t.Fatalf("expected timestamp to be filled in")
	}

	limited, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent(2): %v", err)
	}
	if len(limited) != 2 || limited[1].Endpoint != "users" {
		t.Fatalf("unexpected limited entries %+v", limited)
	}
}

func TestBoltStoreExpiresEntries(t *testing.T) {
	store := openTestBolt(t, Options{
		EntryTTL:        time.Minute,
		CleanupInterval: time.Minute,
	})
	clock := time.Now()
	store.now = func() time.Time { return clock }

	if err := store.Record(Entry{Endpoint: "posts"}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := store.Recent(10)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected live entry, got %d err=%v", len(entries), err)
	}

	// Move past the TTL and the cleanup cadence.
	clock = clock.Add(2 * time.Minute)

	entries, err = store.Recent(10)
	if err != nil {
		t.Fatalf("Recent after expiry: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected entry to expire, got %+v", entries)
	}

	removed, err := store.Purge()
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if removed != 0 {
		t.Fatalf("expected sweep to have removed the entry already, purge removed %d", removed)
	}
}

func TestBoltStorePurge(t *testing.T) {
	store := openTestBolt(t, Options{})
	for i := 0; i < 3; i++ {
		if err := store.Record(Entry{Endpoint: "comments"}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	removed, err := store.Purge()
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed, got %d", removed)
	}

	entries, err := store.Recent(0)
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty journal, got %d err=%v", len(entries), err)
	}
	if err := store.Record(Entry{Endpoint: "posts"}); err != nil {
		t.Fatalf("Record after purge: %v", err)
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.Record(Entry{Endpoint: "x"}); err != nil {
		t.Fatalf("noop store Record: %v", err)
	}
	entries, err := store.Recent(5)
	if err != nil || entries != nil {
		t.Fatalf("noop store Recent: %v %v", entries, err)
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "", Options{}); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
	if _, err := NewStore("bbolt", " ", Options{}); err == nil {
		t.Fatalf("expected error for missing bbolt path")
	}
}

func TestEntryOutcomeLabel(t *testing.T) {
	if got := (Entry{}).OutcomeLabel(); got != "ok" {
		t.Fatalf("expected ok, got %q", got)
	}
	if got := (Entry{Outcome: "network"}).OutcomeLabel(); got != "network" {
		t.Fatalf("expected network, got %q", got)
	}
}
