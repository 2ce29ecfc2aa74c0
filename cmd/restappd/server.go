package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/RahulNewbie/rest-app/internal/api"
	"github.com/RahulNewbie/rest-app/internal/catalog"
	"github.com/RahulNewbie/rest-app/internal/config"
	"github.com/RahulNewbie/rest-app/internal/ghibli"
	"github.com/RahulNewbie/rest-app/internal/history"
	"github.com/RahulNewbie/rest-app/internal/logging"
	"github.com/RahulNewbie/rest-app/internal/relation"
	"github.com/RahulNewbie/rest-app/internal/server"
)

const pruneEvery = time.Hour

// loadConfig loads path, or the discovered file when path is empty. With no
// file anywhere the built-in defaults apply.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		found, err := config.Discover()
		switch {
		case errors.Is(err, config.ErrNoConfig):
			return config.LoadOrDefault("config.toml")
		case err != nil:
			return nil, err
		}
		path = found
	}
	return config.LoadOrDefault(path)
}

func runServer(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logFile := cfg.Log.File
	if cfg.Log.Disable {
		logFile = ""
	}
	logger, closeLog := logging.New(logging.Options{
		Level:      cfg.Server.LogLevel,
		File:       logFile,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	defer func() { _ = closeLog.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := ghibli.NewClient(
		ghibli.WithBaseURL(cfg.Upstream.BaseURL),
		ghibli.WithHTTPClient(&http.Client{Timeout: cfg.Upstream.Timeout}),
	)

	opts := []catalog.Option{catalog.WithInterval(cfg.Refresh.Interval)}

	var historyStore *history.Store
	if cfg.History.Path != "" {
		db, err := history.Open(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("history: %w", err)
		}
		defer func() { _ = db.Close() }()

		historyStore = history.NewStore(db)
		opts = append(opts, catalog.WithRecorder(historyStore))
	}

	svc := catalog.New(client, logger.With("component", "catalog"), opts...)

	mux := http.NewServeMux()
	api.New(svc, api.Config{Format: relation.Format(cfg.Output.Format)}, logger.With("component", "api")).
		RegisterRoutes(mux)

	runner := server.NewRunner(server.Config{Addr: cfg.Addr()}, mux, logger)
	if historyStore != nil {
		runner.AddJob(pruneHistory(historyStore, cfg.History.Retention, logger.With("component", "history")))
	}

	logger.Info("starting restappd",
		"version", version,
		"addr", cfg.Addr(),
		"upstream", client.BaseURL(),
		"refresh_interval", cfg.Refresh.Interval,
		"format", cfg.Output.Format,
		"history", cfg.History.Path,
	)

	if err := runner.Run(ctx); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}

// pruneHistory drops attempts older than retention at startup and then hourly.
func pruneHistory(store *history.Store, retention time.Duration, log *slog.Logger) server.Job {
	return func(ctx context.Context) error {
		prune := func() {
			n, err := store.Prune(ctx, time.Now().Add(-retention))
			if err != nil {
				log.Warn("prune failed", "error", err)
				return
			}
			if n > 0 {
				log.Info("pruned refresh history", "removed", n)
			}
		}

		prune()
		ticker := time.NewTicker(pruneEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				prune()
			}
		}
	}
}
