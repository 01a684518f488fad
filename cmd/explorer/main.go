package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/placeholder-explorer/internal/app"
	"github.com/samvad-hq/placeholder-explorer/internal/config"
	"github.com/samvad-hq/placeholder-explorer/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "explorer failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	log.InfoObj("explorer starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	explorer, err := app.NewExplorer(cfg, log, os.Stdin, os.Stdout)
	if err != nil {
		log.ErrorObj("failed to initialize explorer", "error", err)
		return err
	}

	if err := explorer.Run(ctx); err != nil {
		if ctx.Err() != nil {
			// Interrupted by a signal: leave quietly.
			fmt.Fprintln(os.Stdout)
			return nil
		}
		return fmt.Errorf("explorer run: %w", err)
	}

	return nil
}
