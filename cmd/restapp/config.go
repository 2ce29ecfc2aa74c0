package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/RahulNewbie/rest-app/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates config.toml syntax, environment variable substitution and field values without starting the server.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	path := "config.toml"
	if len(args) > 0 {
		path = args[0]
	}
	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintf(out, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.Error
		if errors.As(err, &configErr) {
			printConfigErrors(out, configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(out, cfg)
	_, _ = fmt.Fprintln(out, "\nConfiguration valid!")
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
	}

	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func printConfigErrors(w io.Writer, e *config.Error) {
	if len(e.Missing) > 0 {
		_, _ = fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			_, _ = fmt.Fprintf(w, "  - %s\n", m)
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		_, _ = fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			_, _ = fmt.Fprintf(w, "  - %s\n", err)
		}
		_, _ = fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	_, _ = fmt.Fprintln(w, "Configuration Summary:")
	_, _ = fmt.Fprintf(w, "  Server:     %s (log: %s)\n", cfg.Addr(), cfg.Server.LogLevel)
	_, _ = fmt.Fprintf(w, "  Upstream:   %s (timeout: %s)\n", cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	_, _ = fmt.Fprintf(w, "  Refresh:    every %s\n", cfg.Refresh.Interval)
	_, _ = fmt.Fprintf(w, "  Output:     %s\n", cfg.Output.Format)

	if cfg.Log.Disable {
		_, _ = fmt.Fprintln(w, "  Log file:   disabled")
	} else {
		_, _ = fmt.Fprintf(w, "  Log file:   %s (%d MB, %d backups)\n", cfg.Log.File, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups)
	}

	if cfg.History.Path == "" {
		_, _ = fmt.Fprintln(w, "  History:    disabled")
	} else {
		_, _ = fmt.Fprintf(w, "  History:    %s (retention: %s)\n", cfg.History.Path, cfg.History.Retention)
	}
}
