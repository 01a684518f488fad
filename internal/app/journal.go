package app

import (
	"github.com/samvad-hq/placeholder-explorer/internal/logger"
	"github.com/samvad-hq/placeholder-explorer/internal/storage"
	"github.com/samvad-hq/placeholder-explorer/pkg/placeholder"
)

// journalRecorder writes every fetch into the request journal.
// Journal failures are logged and never surface to the session.
type journalRecorder struct {
	store storage.Store
	log   logger.Logger
}

func newJournalRecorder(store storage.Store, log logger.Logger) *journalRecorder {
	return &journalRecorder{store: store, log: log}
}

func (j *journalRecorder) RecordFetch(rec placeholder.FetchRecord) {
	entry := storage.Entry{
		Endpoint:  rec.Endpoint,
		URL:       rec.URL,
		Status:    rec.Status,
		Outcome:   string(rec.Kind),
		Error:     rec.Error,
		ElapsedMs: rec.Elapsed.Milliseconds(),
		At:        rec.At,
	}
	if err := j.store.Record(entry); err != nil {
		j.log.WarnObj("journal write failed", "journal_error", map[string]any{
			"endpoint": rec.Endpoint,
			"error":    err.Error(),
		})
	}
}
