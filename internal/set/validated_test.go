package set

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pshcalc/pshcalc/internal/arena"
	lawerrors "github.com/pshcalc/pshcalc/internal/errors"
)

type codeCounter map[string]int

func (c codeCounter) OnReject(code string, n int64) { c[code] += int(n) }

// batchRecorder keeps every report it receives.
type batchRecorder struct {
	batches []int64
	total   map[string]int64
}

func (b *batchRecorder) OnReject(code string, n int64) {
	if b.total == nil {
		b.total = make(map[string]int64)
	}
	b.batches = append(b.batches, n)
	b.total[code] += n
}

func (b *batchRecorder) sum() int64 {
	var n int64
	for _, c := range b.total {
		n += c
	}
	return n
}

// evenSum accepts digit vectors whose digits add up to an even number.
func evenSum(values []int) lawerrors.Violation {
	sum := 0
	for _, d := range values {
		sum += d
	}
	if sum%2 != 0 {
		return lawerrors.Violation{Code: lawerrors.CodeNotWellDefined}
	}
	return lawerrors.Violation{}
}

func TestValidated_FiltersPoints(t *testing.T) {
	a := arena.New()
	v := NewValidated(a, []int{3, 3}, evenSum)
	obs := codeCounter{}
	v.SetObserver(obs)

	var got [][2]int
	for v.Initialize(a); !v.Done(); v.Advance(a) {
		d := v.Values(a)
		got = append(got, [2]int{d[0], d[1]})
	}

	assert.Equal(t, [][2]int{{0, 0}, {2, 0}, {1, 1}, {0, 2}, {2, 2}}, got)
	assert.Equal(t, int64(4), v.Skipped())
	assert.Equal(t, 4, obs[lawerrors.CodeNotWellDefined])
	assert.Nil(t, v.Values(a))
}

func TestValidated_ZeroPointInvalid(t *testing.T) {
	a := arena.New()
	odd := func(values []int) lawerrors.Violation {
		if values[0]%2 == 0 {
			return lawerrors.Violation{Code: lawerrors.CodeNonAssociative}
		}
		return lawerrors.Violation{}
	}
	v := NewValidated(a, []int{4}, odd)

	v.Initialize(a)
	assert.Equal(t, []int{1}, v.Values(a), "Initialize skips an invalid zero vector")
	v.Advance(a)
	assert.Equal(t, []int{3}, v.Values(a))
	v.Advance(a)
	assert.True(t, v.Done())
}

func TestValidated_NothingValid(t *testing.T) {
	a := arena.New()
	never := func([]int) lawerrors.Violation {
		return lawerrors.Violation{Code: lawerrors.CodeNonAssociative}
	}
	v := NewValidated(a, []int{10, 10, 10, 10, 10}, never)

	v.Initialize(a)
	assert.True(t, v.Done())
	assert.Equal(t, int64(100000), v.Skipped())
	assert.Equal(t, []int{0, 0, 0, 0, 0}, a.Values(v.Range()))
}

func TestValidated_EmptySpace(t *testing.T) {
	a := arena.New()
	calls := 0
	v := NewValidated(a, []int{2, 0}, func([]int) lawerrors.Violation {
		calls++
		return lawerrors.Violation{}
	})
	v.Initialize(a)
	assert.True(t, v.Done())
	assert.Zero(t, calls)
}

func TestValidated_ObserverBatchesLongRuns(t *testing.T) {
	a := arena.New()
	never := func([]int) lawerrors.Violation {
		return lawerrors.Violation{Code: lawerrors.CodeNonAssociative}
	}
	v := NewValidated(a, []int{10, 10, 10, 10, 10}, never)
	obs := &batchRecorder{}
	v.SetObserver(obs)

	v.Initialize(a)
	assert.True(t, v.Done())
	assert.Equal(t, v.Skipped(), obs.sum())
	assert.Equal(t, int64(100000), obs.total[lawerrors.CodeNonAssociative])
	assert.Len(t, obs.batches, 100000/reportEvery+1)
	for _, n := range obs.batches {
		assert.LessOrEqual(t, n, int64(reportEvery))
	}
}

func TestValidated_ObserverTotalsMatchSkipped(t *testing.T) {
	// More distinct codes than tally slots, interleaved with accepted points.
	codes := make([]string, tallySlots+3)
	for i := range codes {
		codes[i] = fmt.Sprintf("CODE_%d", i)
	}
	check := func(values []int) lawerrors.Violation {
		i := values[0] + 7*values[1]
		if i%5 == 0 {
			return lawerrors.Violation{}
		}
		return lawerrors.Violation{Code: codes[i%len(codes)]}
	}

	a := arena.New()
	v := NewValidated(a, []int{7, 40}, check)
	obs := &batchRecorder{}
	v.SetObserver(obs)

	accepted := 0
	for v.Initialize(a); !v.Done(); v.Advance(a) {
		accepted++
		assert.Equal(t, v.Skipped(), obs.sum(), "tallies are reported before the cursor stops")
	}
	assert.Equal(t, 56, accepted)
	assert.Equal(t, int64(280-56), v.Skipped())
	assert.Equal(t, v.Skipped(), obs.sum())
	assert.Len(t, obs.total, len(codes))

	// A second pass starts from clean tallies.
	for v.Initialize(a); !v.Done(); v.Advance(a) {
	}
	assert.Equal(t, 2*v.Skipped(), obs.sum())
}
