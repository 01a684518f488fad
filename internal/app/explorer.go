package app

import (
	"context"
	"fmt"
	"io"

	"github.com/samvad-hq/placeholder-explorer/internal/config"
	"github.com/samvad-hq/placeholder-explorer/internal/logger"
	"github.com/samvad-hq/placeholder-explorer/internal/render"
	"github.com/samvad-hq/placeholder-explorer/internal/session"
	"github.com/samvad-hq/placeholder-explorer/internal/storage"
	"github.com/samvad-hq/placeholder-explorer/pkg/httpclient"
	"github.com/samvad-hq/placeholder-explorer/pkg/placeholder"
)

// Explorer represents the interactive runtime. It wires the resource client,
// the renderer and the request journal into one menu session, and closes the
// journal when the session ends.
type Explorer struct {
	cfg     *config.Config
	client  *placeholder.Client
	session *session.Session
	store   storage.Store
	log     logger.Logger
}

// NewExplorer builds an explorer runtime from config. in and out carry the session.
func NewExplorer(cfg *config.Config, log logger.Logger, in io.Reader, out io.Writer) (*Explorer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if in == nil || out == nil {
		return nil, fmt.Errorf("session input and output must not be nil")
	}

	renderer, err := render.New(cfg.OutputFormat)
	if err != nil {
		return nil, fmt.Errorf("init renderer: %w", err)
	}

	store, err := openJournal(cfg)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"journal_ttl_seconds":      int(cfg.JournalTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.JournalCleanupInterval.Seconds()),
	})

	transport := httpclient.NewRestyClient(httpclient.Options{
		Timeout:   cfg.RequestTimeout,
		UserAgent: cfg.UserAgent,
	})
	client := placeholder.New(cfg.BaseURL, cfg.RequestTimeout,
		placeholder.WithHTTPClient(transport),
		placeholder.WithUserAgent(cfg.UserAgent),
		placeholder.WithRecorder(newJournalRecorder(store, log)),
		placeholder.WithLogger(log),
	)

	sess := session.New(client, renderer, in, out, session.Options{PageSize: cfg.PageSize}, log)

	return &Explorer{
		cfg:     cfg,
		client:  client,
		session: sess,
		store:   store,
		log:     log,
	}, nil
}

// Run drives the session until the user exits, input ends, or ctx is cancelled.
func (e *Explorer) Run(ctx context.Context) error {
	if e == nil || e.session == nil {
		return fmt.Errorf("explorer is not initialized")
	}
	defer e.closeStore()

	e.log.InfoObj("session starting", "session_state", map[string]any{
		"base_url":        e.client.BaseURL(),
		"timeout":         e.client.Timeout().String(),
		"page_size":       e.cfg.PageSize,
		"output_format":   e.cfg.OutputFormat,
		"journal_storage": e.cfg.StorageType,
	})

	if err := e.session.Run(ctx); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	e.log.InfoObj("session finished", "base_url", e.client.BaseURL())
	return nil
}

// closeStore safely closes the storage backend, logging any errors encountered.
func (e *Explorer) closeStore() {
	if e == nil || e.store == nil {
		return
	}
	if err := e.store.Close(); err != nil {
		e.log.ErrorObj("storage close failed", "error", err)
	}
}

func openJournal(cfg *config.Config) (storage.Store, error) {
	return storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		EntryTTL:        cfg.JournalTTL,
		CleanupInterval: cfg.JournalCleanupInterval,
	})
}
