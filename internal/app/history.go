package app

import (
	"fmt"

	"github.com/samvad-hq/placeholder-explorer/internal/config"
	"github.com/samvad-hq/placeholder-explorer/internal/logger"
	"github.com/samvad-hq/placeholder-explorer/internal/storage"
)

// History gives read and purge access to the request journal.
type History struct {
	store storage.Store
	log   logger.Logger
}

// NewHistory opens the journal configured in cfg. The journal is locked while a
// running explorer holds it, in which case opening times out.
func NewHistory(cfg *config.Config, log logger.Logger) (*History, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	store, err := openJournal(cfg)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return &History{store: store, log: log}, nil
}

// List returns up to limit entries, newest first.
func (h *History) List(limit int) ([]storage.Entry, error) {
	entries, err := h.store.Recent(limit)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	return entries, nil
}

// Purge empties the journal.
func (h *History) Purge() (int, error) {
	removed, err := h.store.Purge()
	if err != nil {
		return 0, fmt.Errorf("purge journal: %w", err)
	}
	h.log.InfoObj("journal purged", "journal_purge", map[string]any{"removed": removed})
	return removed, nil
}

// Close releases the journal.
func (h *History) Close() error {
	if h == nil || h.store == nil {
		return nil
	}
	return h.store.Close()
}
