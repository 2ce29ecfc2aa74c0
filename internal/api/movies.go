// Package api implements the HTTP surface.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/RahulNewbie/rest-app/internal/relation"
)

// MovieSource returns the current movie table, refreshing it if needed.
type MovieSource interface {
	Movies(ctx context.Context) *relation.Table
}

// Config holds API server configuration.
type Config struct {
	Format relation.Format
}

// Server serves the movie table.
type Server struct {
	movies MovieSource
	cfg    Config
	log    *slog.Logger
}

// New creates a new API server.
func New(movies MovieSource, cfg Config, log *slog.Logger) *Server {
	if cfg.Format == "" {
		cfg.Format = relation.FormatConcat
	}
	if log == nil {
		log = slog.Default()
	}
	return &Server{movies: movies, cfg: cfg, log: log}
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /movies/{$}", s.listMovies)
	mux.Handle("GET /movies", http.RedirectHandler("/movies/", http.StatusPermanentRedirect))
}

// listMovies always answers 200. Upstream trouble only shows as stale data.
func (s *Server) listMovies(w http.ResponseWriter, r *http.Request) {
	table := s.movies.Movies(r.Context())

	format := s.cfg.Format
	body, err := relation.Render(table, format)
	if err != nil {
		s.log.ErrorContext(r.Context(), "render movies failed", "format", format, "error", err)
		format = relation.FormatConcat
		body, _ = relation.Render(table, format)
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
