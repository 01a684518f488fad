package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	fetchBucket = "fetches"
	seqKeyBytes = 8
)

var errBucketMissing = fmt.Errorf("%s bucket missing", fetchBucket)

// storedEntry is the on-disk value: the entry plus its expiry.
type storedEntry struct {
	Entry
	ExpiresAt int64 `json:"expires_at"`
}

// boltStore implements a Store backed by BoltDB. Keys are big-endian sequence
// numbers, so cursor order is insertion order.
type boltStore struct {
	db              *bolt.DB
	cleanupMu       sync.Mutex
	lastCleanup     atomic.Int64
	entryTTL        time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string, opts Options) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(fetchBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	store := &boltStore{
		db:              db,
		entryTTL:        opts.EntryTTL,
		cleanupInterval: opts.CleanupInterval,
		now:             time.Now,
	}
	store.lastCleanup.Store(store.now().Unix())
	return store, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Record appends entry to the journal.
func (b *boltStore) Record(entry Entry) error {
	if b == nil || b.db == nil {
		return nil
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return err
	}
	if entry.At.IsZero() {
		entry.At = now.UTC()
	}

	value, err := json.Marshal(storedEntry{Entry: entry, ExpiresAt: now.Add(b.entryTTL).Unix()})
	if err != nil {
		return fmt.Errorf("encode journal entry: %w", err)
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(fetchBucket))
		if bucket == nil {
			return errBucketMissing
		}
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		return bucket.Put(encodeSeq(seq), value)
	})
}

// Recent returns up to limit live entries, newest first. A non-positive limit returns all.
func (b *boltStore) Recent(limit int) ([]Entry, error) {
	if b == nil || b.db == nil {
		return nil, nil
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return nil, err
	}

	var out []Entry
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(fetchBucket))
		if bucket == nil {
			return errBucketMissing
		}

		cursor := bucket.Cursor()
		for k, v := cursor.Last(); k != nil; k, v = cursor.Prev() {
			stored, ok := decodeEntry(v)
			if !ok || !time.Unix(stored.ExpiresAt, 0).After(now) {
				continue
			}
			out = append(out, stored.Entry)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
		return nil
	})
	return out, err
}

// Purge removes every entry and returns how many were deleted.
func (b *boltStore) Purge() (int, error) {
	if b == nil || b.db == nil {
		return 0, nil
	}

	removed := 0
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(fetchBucket))
		if bucket == nil {
			return errBucketMissing
		}
		removed = bucket.Stats().KeyN
		if err := tx.DeleteBucket([]byte(fetchBucket)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(fetchBucket))
		return err
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// maybeCleanupExpired removes expired entries on a fixed cadence to avoid unbounded growth.
func (b *boltStore) maybeCleanupExpired(now time.Time) error {
	if b == nil || b.db == nil {
		return nil
	}

	last := time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	b.cleanupMu.Lock()
	defer b.cleanupMu.Unlock()

	last = time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(fetchBucket))
		if bucket == nil {
			return errBucketMissing
		}

		var expired [][]byte
		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			stored, ok := decodeEntry(v)
			if !ok || !time.Unix(stored.ExpiresAt, 0).After(now) {
				expired = append(expired, append([]byte(nil), k...))
			}
		}
		for _, k := range expired {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		b.lastCleanup.Store(now.Unix())
	}
	return err
}

func encodeSeq(seq uint64) []byte {
	buf := make([]byte, seqKeyBytes)
	binary.BigEndian.PutUint64(buf, seq)
	return buf
}

// decodeEntry decodes a stored value; malformed or expiry-less values are reported as not ok.
func decodeEntry(value []byte) (storedEntry, bool) {
	var stored storedEntry
	if err := json.Unmarshal(value, &stored); err != nil {
		return storedEntry{}, false
	}
	if stored.ExpiresAt <= 0 {
		return storedEntry{}, false
	}
	return stored, true
}
