// Package server runs the HTTP server and its background jobs.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultShutdownTimeout = 30 * time.Second

// Job is a background task that runs until its context is canceled.
type Job func(ctx context.Context) error

// Config for the server runner.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Runner serves HTTP and runs background jobs until its context ends.
type Runner struct {
	config  Config
	handler http.Handler
	jobs    []Job
	logger  *slog.Logger
}

// NewRunner creates a new runner.
func NewRunner(cfg Config, handler http.Handler, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	return &Runner{
		config:  cfg,
		handler: handler,
		logger:  logger,
	}
}

// AddJob registers a background job started by Run.
func (r *Runner) AddJob(job Job) {
	r.jobs = append(r.jobs, job)
}

// Run listens on the configured address and serves until ctx is canceled.
func (r *Runner) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", r.config.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return r.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts down gracefully.
// It blocks until the server and every job have stopped.
func (r *Runner) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: LogRequests(r.handler, r.logger)}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), r.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		r.logger.Info("server stopped")
		return nil
	})

	for _, job := range r.jobs {
		g.Go(func() error {
			if err := job(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	return g.Wait()
}
