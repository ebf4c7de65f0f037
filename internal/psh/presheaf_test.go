package psh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pshcalc/pshcalc/internal/arena"
	"github.com/pshcalc/pshcalc/internal/cat"
	lawerrors "github.com/pshcalc/pshcalc/internal/errors"
)

// z2 is the group {e, a} with a·a = e; flip is {e, a} with a·a = a.
var (
	z2   = cat.New(1, []int{0}, []int{0}, []int{0})
	flip = cat.New(1, []int{0}, []int{0}, []int{1})
)

func TestFiberMap(t *testing.T) {
	assert.Equal(t, []int{0, 0, 1}, FiberMap(2, 1))
	assert.Equal(t, []int{1, 1}, FiberMap(0, 2))
	assert.Empty(t, FiberMap())
}

func TestAct(t *testing.T) {
	arrow := cat.New(2, []int{0}, []int{1}, []int{0})
	p := New(arrow, []int{0, 1}, []int{0, 0})

	got, ok := p.Act(1, 2)
	assert.True(t, ok)
	assert.Equal(t, 0, got)

	_, ok = p.Act(0, 2)
	assert.False(t, ok, "section 0 is not over target(f)")
	assert.Equal(t, Undefined, p.Action(0, 2))

	got, ok = p.Act(1, 1)
	assert.True(t, ok)
	assert.Equal(t, 1, got, "identities act trivially")

	assert.Equal(t, []int{1}, p.Fiber(1))
	assert.Equal(t, 2, p.Sections())
	assert.Equal(t, 1, p.Pi(1))
	assert.NoError(t, p.Validate())
}

func TestValidate_NotWellDefined(t *testing.T) {
	arrow := cat.New(2, []int{0}, []int{1}, []int{0})

	err := New(arrow, []int{0, 1}, []int{0, 1}).Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, lawerrors.ErrNotWellDefined))
	assert.Equal(t, []int{1, 2}, lawerrors.WitnessOf(err))

	err = New(arrow, []int{0, 1}, []int{1, 0}).Validate()
	require.Error(t, err)
	assert.Equal(t, []int{0, 2}, lawerrors.WitnessOf(err), "off-fiber entries must hold 0")
}

func TestValidate_NonFunctorial(t *testing.T) {
	// a acting as the constant 0 is not an involution.
	err := New(z2, []int{0, 0}, []int{0, 0}).Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, lawerrors.ErrNonFunctorial))
	assert.Equal(t, []int{1, 1, 1}, lawerrors.WitnessOf(err))

	assert.NoError(t, New(z2, []int{0, 0}, []int{1, 0}).Validate())
	assert.NoError(t, New(flip, []int{0, 0}, []int{1, 1}).Validate())
}

func TestIdentityAction_AlwaysValidOverMonoids(t *testing.T) {
	for n := 1; n <= 3; n++ {
		a := arena.New()
		c := cat.NewMonoidSet(n).NewCursor(a)
		for c.Initialize(a); !c.Done(); c.Advance(a) {
			m, _ := c.Get(a)
			for sections := 0; sections <= 3; sections++ {
				pi := FiberMap(sections)
				p := New(m, pi, IdentityAction(m, pi))
				assert.NoError(t, p.Validate(), "monoid %v, %d sections", m.Table(), sections)
			}
		}
	}
}

func TestIdentityAction_EndomorphismCategories(t *testing.T) {
	// Two objects, each with one extra loop.
	a := arena.New()
	c := cat.NewCategorySet(2, []int{0, 1}, []int{0, 1}).NewCursor(a)
	categories := 0
	for c.Initialize(a); !c.Done(); c.Advance(a) {
		categories++
		k, _ := c.Get(a)
		pi := FiberMap(2, 1)
		assert.NoError(t, New(k, pi, IdentityAction(k, pi)).Validate())
	}
	assert.Equal(t, 4, categories)
}

func TestIdentityAction_RejectedAcrossObjects(t *testing.T) {
	// f: 0 → 1 sends the section over 1 to itself, which lies over the
	// wrong object.
	arrow := cat.New(2, []int{0}, []int{1}, []int{0})
	pi := FiberMap(1, 1)
	action := IdentityAction(arrow, pi)
	assert.Equal(t, []int{0, 1}, action)

	err := New(arrow, pi, action).Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, lawerrors.ErrNotWellDefined))
	assert.Equal(t, []int{1, 2}, lawerrors.WitnessOf(err))

	a := arena.New()
	c := NewPresheafSet(arrow, pi).NewCursor(a)
	for c.Initialize(a); !c.Done(); c.Advance(a) {
		p, _ := c.Get(a)
		assert.NotEqual(t, action, p.Table())
	}
}

func TestNew_MalformedPanics(t *testing.T) {
	assert.Panics(t, func() { New(z2, []int{0, 0}, []int{0}) })
	assert.Panics(t, func() { New(z2, []int{1}, []int{0}) })
	assert.Panics(t, func() { New(z2, []int{0}, []int{1}) })
}

func TestClone_Detaches(t *testing.T) {
	p := New(z2, []int{0, 0}, []int{1, 0})
	q := p.Clone()
	p.Table()[0] = 0
	assert.Equal(t, []int{1, 0}, q.Table())
	assert.Same(t, p.Category(), q.Category())
}
