package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage provides the local request journal.

// Store keeps a bounded-lifetime journal of fetch attempts.
type Store interface {
	Close() error
	Record(entry Entry) error
	Recent(limit int) ([]Entry, error)
	Purge() (int, error)
}

// Entry is one journaled fetch attempt.
type Entry struct {
	Endpoint  string    `json:"endpoint" yaml:"endpoint"`
	URL       string    `json:"url" yaml:"url"`
	Status    int       `json:"status,omitempty" yaml:"status,omitempty"`
	Outcome   string    `json:"outcome,omitempty" yaml:"outcome,omitempty"`
	Error     string    `json:"error,omitempty" yaml:"error,omitempty"`
	ElapsedMs int64     `json:"elapsed_ms" yaml:"elapsed_ms"`
	At        time.Time `json:"at" yaml:"at"`
}

// OutcomeLabel returns "ok" for successful fetches and the failure kind otherwise.
func (e Entry) OutcomeLabel() string {
	if e.Outcome == "" {
		return "ok"
	}
	return e.Outcome
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	EntryTTL        time.Duration
	CleanupInterval time.Duration
}

const (
	defaultEntryTTL        = 7 * 24 * time.Hour
	defaultCleanupInterval = time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.EntryTTL <= 0 {
		opts.EntryTTL = defaultEntryTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                { return nil }
func (noopStore) Record(Entry) error          { return nil }
func (noopStore) Recent(int) ([]Entry, error) { return nil, nil }
func (noopStore) Purge() (int, error)         { return 0, nil }
