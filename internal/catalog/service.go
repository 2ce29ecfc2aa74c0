package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/RahulNewbie/rest-app/internal/ghibli"
	"github.com/RahulNewbie/rest-app/internal/relation"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

// Upstream fetches the collections the table is built from.
type Upstream interface {
	FetchMovieRoster(ctx context.Context) ([]string, error)
	FetchPersonDirectory(ctx context.Context) ([]ghibli.PersonRefs, error)
	ResolveMovieReference(ctx context.Context, ref string) (string, error)
}

// Recorder receives the outcome of every refresh attempt.
type Recorder interface {
	Record(ctx context.Context, a Attempt) error
}

// Attempt describes one refresh.
type Attempt struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Movies     int // roster size
	People     int // directory size
	Skipped    int // film references that failed to resolve
	Err        string
}

// OK reports whether the attempt merged fresh data.
func (a Attempt) OK() bool {
	return a.Err == ""
}

// Service owns the refresh gate and the cached table.
type Service struct {
	upstream Upstream
	gate     *Gate
	store    *Store
	recorder Recorder
	now      func() time.Time
	log      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithInterval sets how long a refresh stays fresh.
func WithInterval(d time.Duration) Option {
	return func(s *Service) {
		s.gate = NewGate(d)
	}
}

// WithRecorder reports every refresh attempt to r.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// New creates a service that refreshes from upstream.
func New(upstream Upstream, log *slog.Logger, opts ...Option) *Service {
	if log == nil {
		log = slog.Default()
	}
	s := &Service{
		upstream: upstream,
		gate:     NewGate(DefaultRefreshInterval),
		store:    NewStore(),
		now:      time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Movies returns the cached table, refreshing it first if the gate is due.
// Upstream failures are logged and never returned; callers get whatever
// the cache holds.
//
// The refresh keeps ctx's values but not its cancellation: a caller that
// goes away does not cut short a refresh every later caller is served from.
// Each upstream call is still bounded by the HTTP client timeout.
//
// The due check and the mark are separate steps, so concurrent callers may
// each run a refresh. Merging is per-title upsert, so that only costs
// duplicate upstream calls.
func (s *Service) Movies(ctx context.Context) *relation.Table {
	now := s.now()
	if s.gate.Due(now) {
		s.gate.MarkAttempted(now)
		s.refresh(context.WithoutCancel(ctx), now)
	}
	return s.store.Read()
}

// LastAttempt returns when the last refresh started.
func (s *Service) LastAttempt() time.Time {
	return s.gate.LastAttempt()
}

func (s *Service) refresh(ctx context.Context, started time.Time) {
	attempt := Attempt{StartedAt: started}
	defer func() {
		attempt.FinishedAt = s.now()
		s.record(ctx, attempt)
	}()

	s.log.DebugContext(ctx, "refresh started")

	roster, err := s.upstream.FetchMovieRoster(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "fetch movie roster failed", "error", err)
		attempt.Err = err.Error()
		return
	}
	attempt.Movies = len(roster)

	directory, err := s.upstream.FetchPersonDirectory(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "fetch person directory failed", "error", err)
		attempt.Err = err.Error()
		return
	}
	attempt.People = len(directory)

	credits, skipped, err := s.resolve(ctx, directory)
	attempt.Skipped = skipped
	if err != nil {
		s.log.ErrorContext(ctx, "resolve filmographies failed", "error", err)
		attempt.Err = err.Error()
		return
	}

	table := relation.Build(roster, credits)
	s.logUnmatched(ctx, roster, credits)
	s.store.Merge(table)

	s.log.InfoContext(ctx, "refresh completed",
		"movies", table.Len(),
		"people", len(directory),
		"skipped_refs", skipped,
		"duration_ms", s.now().Sub(started).Milliseconds(),
	)
}

// resolve turns each person's film references into titles. A reference
// that fails to resolve is logged and skipped. Cancellation stops the walk,
// whether ctx reports it or a resolution fails with context.Canceled, so a
// partial walk is never merged.
func (s *Service) resolve(ctx context.Context, directory []ghibli.PersonRefs) ([]relation.Credit, int, error) {
	credits := make([]relation.Credit, 0, len(directory))
	skipped := 0
	for _, p := range directory {
		titles := make([]string, 0, len(p.Films))
		for _, ref := range p.Films {
			if err := ctx.Err(); err != nil {
				return nil, skipped, fmt.Errorf("%w: %w", ghibli.ErrUpstreamUnavailable, err)
			}
			title, err := s.upstream.ResolveMovieReference(ctx, ref)
			if err != nil {
				if aborted(ctx, err) {
					return nil, skipped, fmt.Errorf("resolve %s: %w", ref, err)
				}
				skipped++
				s.log.WarnContext(ctx, "film reference skipped", "person", p.Name, "ref", ref, "error", err)
				continue
			}
			titles = append(titles, title)
		}
		credits = append(credits, relation.Credit{Person: p.Name, Titles: titles})
	}
	if err := ctx.Err(); err != nil {
		return nil, skipped, fmt.Errorf("%w: %w", ghibli.ErrUpstreamUnavailable, err)
	}
	return credits, skipped, nil
}

// aborted reports whether a resolution error means the whole refresh was
// canceled rather than one reference being unavailable. A per-request
// client timeout is not an abort.
func aborted(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled)
}

func (s *Service) logUnmatched(ctx context.Context, roster []string, credits []relation.Credit) {
	if !s.log.Enabled(ctx, slog.LevelDebug) {
		return
	}
	for _, title := range relation.Unmatched(roster, credits) {
		if hint, ok := relation.Suggest(title, roster); ok {
			s.log.DebugContext(ctx, "credited film not in roster", "title", title, "closest", hint.Title, "score", hint.Score)
			continue
		}
		s.log.DebugContext(ctx, "credited film not in roster", "title", title)
	}
}

func (s *Service) record(ctx context.Context, a Attempt) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(context.WithoutCancel(ctx), a); err != nil {
		s.log.WarnContext(ctx, "record refresh attempt failed", "error", err)
	}
}
