package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/placeholder-explorer/internal/app"
	"github.com/samvad-hq/placeholder-explorer/internal/config"
	"github.com/samvad-hq/placeholder-explorer/internal/logger"
	"github.com/samvad-hq/placeholder-explorer/internal/render"
	"github.com/samvad-hq/placeholder-explorer/internal/storage"
)

// historyOpener opens the journal; tests swap it for a temp-dir config.
type historyOpener func() (*app.History, func(), error)

func defaultOpener() (*app.History, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.Init(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	history, err := app.NewHistory(cfg, log)
	if err != nil {
		log.Close()
		return nil, nil, err
	}
	cleanup := func() {
		if err := history.Close(); err != nil {
			log.ErrorObj("journal close failed", "error", err)
		}
		log.Close()
	}
	return history, cleanup, nil
}

func newRootCommand() *cobra.Command {
	return newRootCommandWith(defaultOpener)
}

func newRootCommandWith(open historyOpener) *cobra.Command {
	root := &cobra.Command{
		Use:   "history",
		Short: "Inspect the explorer request journal",
		Long: `Inspect the journal of requests made by the interactive explorer.

The journal is locked while an explorer session is running.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newListCommand(open))
	root.AddCommand(newPurgeCommand(open))
	return root
}

func newListCommand(open historyOpener) *cobra.Command {
	var (
		limit  int
		output string
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recent requests, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			history, cleanup, err := open()
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := history.List(limit)
			if err != nil {
				return err
			}
			return writeEntries(cmd.OutOrStdout(), entries, output)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries (0 for all)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format (table, yaml)")
	return cmd
}

func newPurgeCommand(open historyOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete every journal entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			history, cleanup, err := open()
			if err != nil {
				return err
			}
			defer cleanup()

			removed, err := history.Purge()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d journal entries\n", removed)
			return nil
		},
	}
}

func writeEntries(w io.Writer, entries []storage.Entry, output string) error {
	switch output {
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "table", "":
		return render.Journal(w, entries)
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}
}
