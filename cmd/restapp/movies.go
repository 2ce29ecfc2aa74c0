package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RahulNewbie/rest-app/internal/relation"
)

var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "List movies and the people appearing in them",
	Long: `Fetch /movies/ from the daemon and print one line per movie.

Examples:
  restapp movies                          # Table output
  restapp movies --json                   # Rows as a JSON array
  restapp movies --title "Castle in the Sky"`,
	Args: cobra.NoArgs,
	RunE: runMoviesCmd,
}

func init() {
	rootCmd.AddCommand(moviesCmd)
	moviesCmd.Flags().StringP("title", "t", "", "Only show titles containing this text (case-insensitive)")
}

func runMoviesCmd(cmd *cobra.Command, args []string) error {
	filter, _ := cmd.Flags().GetString("title")

	client := NewClient(serverURL)
	rows, err := client.Movies()
	if err != nil {
		return fmt.Errorf("movies fetch failed: %w", err)
	}

	rows = filterRows(rows, filter)

	if jsonOutput {
		printJSON(cmd.OutOrStdout(), rows)
		return nil
	}

	printMovies(cmd.OutOrStdout(), rows)
	return nil
}

func filterRows(rows []relation.Row, filter string) []relation.Row {
	if filter == "" {
		return rows
	}
	needle := strings.ToLower(filter)
	out := make([]relation.Row, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.MovieTitle), needle) {
			out = append(out, r)
		}
	}
	return out
}

func printMovies(w io.Writer, rows []relation.Row) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "No movies")
		return
	}

	width := len("TITLE")
	for _, r := range rows {
		width = max(width, len([]rune(r.MovieTitle)))
	}

	_, _ = fmt.Fprintf(w, "%-*s  %s\n", width, "TITLE", "PEOPLE")
	_, _ = fmt.Fprintf(w, "%s\n", strings.Repeat("-", width+8))
	for _, r := range rows {
		people := r.People
		if people == "" {
			people = "-"
		} else {
			people = strings.ReplaceAll(people, relation.Separator, ", ")
		}
		pad := width - len([]rune(r.MovieTitle))
		_, _ = fmt.Fprintf(w, "%s%s  %s\n", r.MovieTitle, strings.Repeat(" ", pad), people)
	}
	_, _ = fmt.Fprintf(w, "\n%d movies\n", len(rows))
}

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
