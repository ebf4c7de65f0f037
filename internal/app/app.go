// Package app runs pshcalc enumeration jobs.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pshcalc/pshcalc/internal/arena"
	"github.com/pshcalc/pshcalc/internal/config"
	lawerrors "github.com/pshcalc/pshcalc/internal/errors"
	"github.com/pshcalc/pshcalc/internal/observability"
)

// App runs one configured job at a time.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics

	mu      sync.Mutex
	running bool
	stats   *observability.EnumerationStats
}

// Option configures an App.
type Option func(*App)

// WithMetrics reports job counters to m.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// New creates an App with the given configuration.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		cfg:    cfg,
		logger: logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Result is the outcome of a run.
type Result struct {
	RunID       string
	Job         config.JobKind
	Description string

	// Found is the number of structures accepted by the outer enumeration:
	// operations, monoids, categories, or (s, t) pairs for triples.
	Found int64

	// Inner sums the nested count over every outer structure: acts for
	// acts, presheaves for categories with fibers, composable triples for
	// triples. Average is Inner / Found.
	Inner   int64
	Average float64

	// Estimate is m³/o², the expected triple count for random s and t.
	Estimate float64

	// WithIdentity counts the associative operations with a two-sided
	// identity (semigroups only).
	WithIdentity int64

	// Visited counts every candidate checked, at every nesting level.
	Visited    int64
	Rejections []observability.RejectionStats

	Duration  time.Duration
	Cancelled bool

	// Listing holds the first structures found when output.list is set.
	Listing []Entry
}

// Entry is one listed structure.
type Entry struct {
	Table  []int
	Detail string
}

// Stats returns the statistics of the current or last run, or nil before
// the first run.
func (a *App) Stats() *observability.EnumerationStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Run executes the configured job. When ctx is cancelled the job stops at
// its next outer iteration and Run returns the partial result together with
// the context error.
func (a *App) Run(ctx context.Context) (*Result, error) {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return nil, fmt.Errorf("app is already running")
	}
	a.running = true
	job := a.cfg.Job
	stats := observability.NewEnumerationStats(string(job.Kind), a.metrics)
	a.stats = stats
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.running = false
		a.mu.Unlock()
	}()

	id := uuid.NewString()
	r := &runner{
		cfg:    a.cfg,
		arena:  arena.New(),
		stats:  stats,
		logger: a.logger.With("run_id", id, "job", job.Kind),
		result: &Result{RunID: id, Job: job.Kind, Description: describe(job)},
	}
	r.progress = newProgress(r.logger, stats, a.cfg.Progress.Interval)

	start := time.Now()
	r.logger.Info("job started", "params", r.result.Description)

	var err error
	switch job.Kind {
	case config.JobSemigroups:
		err = r.semigroups(ctx)
	case config.JobMonoids:
		err = r.monoids(ctx)
	case config.JobCategories:
		err = r.categories(ctx)
	case config.JobActs:
		err = r.acts(ctx)
	case config.JobTriples:
		err = r.triples(ctx)
	default:
		err = lawerrors.NewInternalError(fmt.Sprintf("unsupported job kind: %s", job.Kind), nil)
	}

	res := r.finish(time.Since(start))
	if err != nil {
		res.Cancelled = ctx.Err() != nil
		r.logger.Warn("job stopped", "error", err, "found", res.Found, "duration", res.Duration)
		return res, fmt.Errorf("job %s: %w", job.Kind, err)
	}

	r.logger.Info("job finished",
		"found", res.Found,
		"visited", res.Visited,
		"duration", res.Duration,
	)
	return res, nil
}
