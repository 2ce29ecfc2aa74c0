package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/RahulNewbie/rest-app/internal/config"
	"github.com/RahulNewbie/rest-app/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent refresh attempts",
	Long: `Read the refresh history database written by restappd.

The database path comes from --db, or from [history] path in the
discovered config file.

Examples:
  restapp history                     # Last 20 attempts
  restapp history -n 5                # Last 5 attempts
  restapp history --db ./history.db`,
	Args: cobra.NoArgs,
	RunE: runHistoryCmd,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().String("db", "", "Path to history database")
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	limit, _ := cmd.Flags().GetInt("limit")

	if dbPath == "" {
		path, err := historyPathFromConfig()
		if err != nil {
			return err
		}
		dbPath = path
	}

	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("open history: %w", err)
	}

	db, err := history.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer func() { _ = db.Close() }()

	store := history.NewStore(db)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	entries, err := store.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("history fetch failed: %w", err)
	}

	if jsonOutput {
		printJSON(cmd.OutOrStdout(), entries)
		return nil
	}

	last, err := store.LastSuccess(ctx)
	if err != nil && !errors.Is(err, history.ErrNotFound) {
		return fmt.Errorf("history fetch failed: %w", err)
	}
	printHistory(cmd.OutOrStdout(), entries, last)
	return nil
}

func historyPathFromConfig() (string, error) {
	path, err := config.Discover()
	if err != nil {
		return "", fmt.Errorf("no --db given and %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.History.Path == "" {
		return "", fmt.Errorf("history is disabled in %s", path)
	}
	return cfg.History.Path, nil
}

func printHistory(w io.Writer, entries []history.Entry, last *history.Entry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No refresh attempts recorded")
		return
	}

	_, _ = fmt.Fprintf(w, "%-6s %-20s %8s %6s %6s %7s  %s\n", "ID", "STARTED", "DURATION", "MOVIES", "PEOPLE", "SKIPPED", "RESULT")
	for _, e := range entries {
		result := "ok"
		if !e.OK() {
			result = e.Err
		}
		_, _ = fmt.Fprintf(w, "%-6d %-20s %8s %6d %6d %7d  %s\n",
			e.ID,
			e.StartedAt.Local().Format("2006-01-02 15:04:05"),
			e.FinishedAt.Sub(e.StartedAt).Round(time.Millisecond),
			e.Movies, e.People, e.Skipped,
			result,
		)
	}

	if last != nil {
		_, _ = fmt.Fprintf(w, "\nLast successful refresh: %s (%s ago)\n",
			last.StartedAt.Local().Format("2006-01-02 15:04:05"),
			time.Since(last.StartedAt).Round(time.Second))
	} else {
		_, _ = fmt.Fprintln(w, "\nNo successful refresh recorded")
	}
}
