package set

import (
	"github.com/pshcalc/pshcalc/internal/arena"
	lawerrors "github.com/pshcalc/pshcalc/internal/errors"
	"github.com/pshcalc/pshcalc/internal/odometer"
)

// Observer is told about the raw points a Validated cursor rejects. The
// cursor tallies rejections itself and reports them in batches: n points
// rejected with code, where code is one of the errors.Code* constants. Every
// pending tally is reported before Initialize or Advance returns.
type Observer interface {
	OnReject(code string, n int64)
}

const (
	// tallySlots bounds the distinct codes held between two reports.
	tallySlots = 8
	// reportEvery is the longest run of rejections held before a report.
	reportEvery = 1 << 12
)

type tally struct {
	code string
	n    int64
}

// CheckFunc validates the candidate whose digits are values.
type CheckFunc func(values []int) lawerrors.Violation

// Validated is a cursor over the points of a digit space that pass a law
// check. It steps the odometer once and then keeps stepping until the check
// accepts or the space runs out. The skip is a loop rather than a recursive
// call: the gap between two valid points has no useful bound.
type Validated struct {
	rng      arena.Range
	empty    bool
	check    CheckFunc
	done     bool
	skipped  int64
	observer Observer

	tallies [tallySlots]tally
	used    int
	held    int
}

// NewValidated allocates len(bounds) digits in a for a validated cursor.
func NewValidated(a Allocator, bounds []int, check CheckFunc) *Validated {
	rng := a.Alloc(len(bounds))
	copy(a.Bounds(rng), bounds)
	return &Validated{
		rng:   rng,
		empty: odometer.IsEmptySpace(bounds),
		check: check,
		done:  true,
	}
}

// SetObserver installs o; nil disables reporting.
func (v *Validated) SetObserver(o Observer) {
	v.observer = o
}

// Initialize rewinds to the zero vector and skips forward to the first
// valid point, which need not be the zero vector itself.
func (v *Validated) Initialize(a Allocator) {
	a.Reset(v.rng)
	v.skipped = 0
	v.done = v.empty
	if !v.done {
		v.seek(a)
	}
}

// Advance moves to the next valid point.
func (v *Validated) Advance(a Allocator) {
	if v.done {
		return
	}
	if a.Advance(v.rng) {
		v.done = true
		return
	}
	v.seek(a)
}

func (v *Validated) seek(a Allocator) {
	for {
		r := v.check(a.Values(v.rng))
		if r.OK() {
			v.report()
			return
		}
		v.skipped++
		if v.observer != nil {
			v.hold(r.Code)
		}
		if a.Advance(v.rng) {
			v.done = true
			v.report()
			return
		}
	}
}

// hold adds one rejection with code to the local tallies.
func (v *Validated) hold(code string) {
	i := 0
	for i < v.used && v.tallies[i].code != code {
		i++
	}
	if i == len(v.tallies) {
		v.report()
		i = 0
	}
	if i == v.used {
		v.tallies[i] = tally{code: code}
		v.used++
	}
	v.tallies[i].n++

	v.held++
	if v.held >= reportEvery {
		v.report()
	}
}

// report hands the held tallies to the observer and clears them.
func (v *Validated) report() {
	if v.observer != nil {
		for _, t := range v.tallies[:v.used] {
			v.observer.OnReject(t.code, t.n)
		}
	}
	v.used, v.held = 0, 0
}

// Values returns the digits of the current point, or nil once exhausted.
func (v *Validated) Values(a Allocator) []int {
	if v.done {
		return nil
	}
	return a.Values(v.rng)
}

// Done reports whether the cursor has run past the last valid point.
func (v *Validated) Done() bool { return v.done }

// Skipped returns the number of raw points rejected since Initialize.
func (v *Validated) Skipped() int64 { return v.skipped }

// Range returns the arena range holding the cursor digits.
func (v *Validated) Range() arena.Range { return v.rng }
