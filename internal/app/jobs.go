package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pshcalc/pshcalc/internal/arena"
	"github.com/pshcalc/pshcalc/internal/cat"
	"github.com/pshcalc/pshcalc/internal/config"
	lawerrors "github.com/pshcalc/pshcalc/internal/errors"
	"github.com/pshcalc/pshcalc/internal/magma"
	"github.com/pshcalc/pshcalc/internal/observability"
	"github.com/pshcalc/pshcalc/internal/odometer"
	"github.com/pshcalc/pshcalc/internal/psh"
	"github.com/pshcalc/pshcalc/internal/set"
)

// checkEvery is how many operations the semigroup job visits between
// cancellation checks and stats flushes. Must be a power of two.
const checkEvery = 1 << 14

// runner holds the state of a single run. All cursors of a run share one
// arena.
type runner struct {
	cfg      *config.Config
	arena    *arena.Arena
	stats    *observability.EnumerationStats
	logger   *slog.Logger
	progress *progress
	result   *Result
}

// semigroups counts the associative operations on n elements with the
// stack-only check, and how many of them have a two-sided identity.
func (r *runner) semigroups(ctx context.Context) error {
	n := r.cfg.Job.Size
	ops := magma.Operations(n)
	total, err := spaceSize(ops.Size)
	if err != nil {
		return err
	}

	var visited, accepted, rejected int64
	flush := func() {
		r.stats.RecordAccepted(accepted)
		if rejected > 0 {
			r.stats.RecordRejections(lawerrors.CodeNonAssociative, rejected)
		}
		accepted, rejected = 0, 0
		r.progress.update(visited, total)
	}

	a := r.arena
	c := ops.NewCursor(a)
	for c.Initialize(a); !c.Done(); c.Advance(a) {
		f, _ := c.Get(a)
		if magma.IsAssociative(f) {
			accepted++
			r.result.Found++
			if _, ok := magma.HasIdentity(f.Table(), n); ok {
				r.result.WithIdentity++
			}
			r.list(f.Table(), "")
		} else {
			rejected++
		}

		visited++
		if visited&(checkEvery-1) == 0 {
			flush()
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}
	flush()
	return nil
}

// monoids counts the monoids on n elements with identity 0.
func (r *runner) monoids(ctx context.Context) error {
	return r.walkCategories(ctx, cat.NewMonoidSet(r.cfg.Job.Size), nil)
}

// categories counts the categories on the configured skeleton and, when
// fibers are set, the presheaves over each of them.
func (r *runner) categories(ctx context.Context) error {
	j := r.cfg.Job
	s := cat.NewCategorySet(j.Objects, j.Source, j.Target)
	if len(j.Fibers) == 0 {
		return r.walkCategories(ctx, s, nil)
	}
	return r.walkCategories(ctx, s, r.presheafCounter(psh.FiberMap(j.Fibers...), "presheaves"))
}

// acts counts, for every monoid on n elements, its right acts on m points.
func (r *runner) acts(ctx context.Context) error {
	j := r.cfg.Job
	return r.walkCategories(ctx, cat.NewMonoidSet(j.Size), r.presheafCounter(psh.FiberMap(j.Sections), "acts"))
}

// innerCount counts nested structures over one category and describes the
// result for the listing.
type innerCount func(c *cat.Category) (int64, string)

// presheafCounter returns an innerCount that walks the presheaves with
// fibers pi. The presheaf cursor is allocated once, over the outer cursor's
// category view, and follows it from then on.
func (r *runner) presheafCounter(pi []int, label string) innerCount {
	var cursor *psh.Cursor
	return func(c *cat.Category) (int64, string) {
		a := r.arena
		if cursor == nil {
			cursor = psh.NewPresheafSet(c, pi).NewCursor(a)
			cursor.SetObserver(r.stats)
		}
		var n int64
		for cursor.Initialize(a); !cursor.Done(); cursor.Advance(a) {
			n++
		}
		r.stats.RecordAccepted(n)
		return n, fmt.Sprintf("%s=%d", label, n)
	}
}

// walkCategories drives a validated category cursor, checking ctx between
// categories.
func (r *runner) walkCategories(ctx context.Context, s *cat.CategorySet, inner innerCount) error {
	total, err := spaceSize(s.RawSize)
	if err != nil {
		return err
	}

	a := r.arena
	c := s.NewCursor(a)
	c.SetObserver(r.stats)
	bounds := append([]int(nil), a.Bounds(c.Range())...)

	for c.Initialize(a); !c.Done(); c.Advance(a) {
		if err := ctx.Err(); err != nil {
			return err
		}
		k, _ := c.Get(a)
		r.stats.RecordAccepted(1)
		r.result.Found++

		detail := ""
		if inner != nil {
			n, d := inner(k)
			r.result.Inner += n
			detail = d
		}
		r.list(k.Table(), detail)
		r.progress.update(int64(odometer.LinearIndex(c.Values(a), bounds))+1, total)
	}
	r.progress.update(total, total)
	return nil
}

// triples walks every pair s, t: M → O and counts the composable triples
// (a, b, c) with s(a) = t(b) and s(b) = t(c).
func (r *runner) triples(ctx context.Context) error {
	m, o := r.cfg.Job.Size, r.cfg.Job.Objects
	points := set.NewAtomSet(m)
	hom := set.NewHomSet(points, set.NewAtomSet(o))
	size, err := spaceSize(hom.Size)
	if err != nil {
		return err
	}
	total, err := spaceSize(func() int { return odometer.Size([]int{int(size), int(size)}) })
	if err != nil {
		return err
	}

	a := r.arena
	sc := hom.NewCursor(a)
	tc := hom.NewCursor(a)
	var pairs int64
	for sc.Initialize(a); !sc.Done(); sc.Advance(a) {
		if err := ctx.Err(); err != nil {
			return err
		}
		s, _ := sc.Get(a)
		for tc.Initialize(a); !tc.Done(); tc.Advance(a) {
			t, _ := tc.Get(a)
			n := composableTriples(points, s, t)
			r.result.Found++
			r.result.Inner += n
			pairs++
			if r.listing() {
				r.list(concat(s.Table(), t.Table()), fmt.Sprintf("triples=%d", n))
			}
		}
		r.stats.RecordAccepted(size)
		r.progress.update(pairs, total)
	}

	if o > 0 {
		r.result.Estimate = float64(m) * float64(m) * float64(m) / (float64(o) * float64(o))
	}
	return nil
}

func composableTriples(points set.AtomSet, s, t set.Function) int64 {
	var n int64
	for a := range points.Elements() {
		sa := s.Apply(a)
		for b := range points.Elements() {
			if t.Apply(b) != sa {
				continue
			}
			sb := s.Apply(b)
			for c := range points.Elements() {
				if t.Apply(c) == sb {
					n++
				}
			}
		}
	}
	return n
}

func concat(x, y []int) []int {
	out := make([]int, 0, len(x)+len(y))
	out = append(out, x...)
	return append(out, y...)
}

// listing reports whether another entry would be kept.
func (r *runner) listing() bool {
	out := r.cfg.Output
	return out.List && (out.Limit == 0 || len(r.result.Listing) < out.Limit)
}

// list keeps a copy of table if listing is enabled and below the limit.
func (r *runner) list(table []int, detail string) {
	if !r.listing() {
		return
	}
	r.result.Listing = append(r.result.Listing, Entry{
		Table:  append([]int(nil), table...),
		Detail: detail,
	})
}

func (r *runner) finish(d time.Duration) *Result {
	res := r.result
	snap := r.stats.Snapshot()
	res.Visited = snap.Visited
	res.Rejections = r.stats.TopRejections(len(snap.Rejections))
	res.Duration = d
	if res.Found > 0 && res.Inner > 0 {
		res.Average = float64(res.Inner) / float64(res.Found)
	}
	return res
}

// spaceSize evaluates a search space size, turning the overflow panic of the
// odometer arithmetic into an error.
func spaceSize(size func() int) (n int64, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("search space too large: %v", p)
		}
	}()
	return int64(size()), nil
}

func describe(j config.JobConfig) string {
	switch j.Kind {
	case config.JobSemigroups, config.JobMonoids:
		return fmt.Sprintf("n=%d", j.Size)
	case config.JobActs:
		return fmt.Sprintf("n=%d m=%d", j.Size, j.Sections)
	case config.JobCategories:
		d := fmt.Sprintf("objects=%d source=%v target=%v", j.Objects, j.Source, j.Target)
		if len(j.Fibers) > 0 {
			d += fmt.Sprintf(" fibers=%v", j.Fibers)
		}
		return d
	case config.JobTriples:
		return fmt.Sprintf("m=%d o=%d", j.Size, j.Objects)
	}
	return ""
}

// progress logs progress lines no more often than interval.
type progress struct {
	logger   *slog.Logger
	stats    *observability.EnumerationStats
	interval time.Duration
	last     time.Time
}

func newProgress(logger *slog.Logger, stats *observability.EnumerationStats, interval time.Duration) *progress {
	return &progress{
		logger:   logger,
		stats:    stats,
		interval: interval,
		last:     time.Now(),
	}
}

func (p *progress) update(done, total int64) {
	p.stats.SetProgress(done, total)
	if p.interval <= 0 || total == 0 {
		return
	}
	now := time.Now()
	if now.Sub(p.last) < p.interval {
		return
	}
	p.last = now

	snap := p.stats.Snapshot()
	p.logger.Info("progress",
		"visited", snap.Visited,
		"accepted", snap.Accepted,
		"percent", fmt.Sprintf("%.1f", 100*float64(done)/float64(total)),
	)
}
