package cat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lawerrors "github.com/pshcalc/pshcalc/internal/errors"
)

// cyclic3 is Z/3 written as a one-object category: morphism i is +i.
func cyclic3() *Category {
	// entries at f' + 2g': 1+1=2, 2+1=0, 1+2=0, 2+2=1
	return New(1, []int{0, 0}, []int{0, 0}, []int{2, 0, 0, 1})
}

func TestValidate_TrivialMonoid(t *testing.T) {
	c := New(1, nil, nil, nil)
	assert.NoError(t, c.Validate())
	assert.Equal(t, 1, c.Morphisms())
}

func TestValidate_KnownMonoid(t *testing.T) {
	require.NoError(t, cyclic3().Validate())
}

func TestValidate_BrokenAssociativity(t *testing.T) {
	c := cyclic3()
	c.Table()[0] = 1 // 1∘1 = 1 instead of 2

	err := c.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, lawerrors.ErrNonAssociative), "got %v", err)
	assert.Len(t, lawerrors.WitnessOf(err), 3)
}

func TestValidate_IncompatibleComposition(t *testing.T) {
	// One arrow f: 0 → 1. f∘f does not compose, so only the digit 0 is allowed.
	c := New(2, []int{0}, []int{1}, []int{2})

	err := c.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, lawerrors.ErrIncompatibleComposition))
	assert.Equal(t, []int{2, 2}, lawerrors.WitnessOf(err))
}

func TestValidate_CompositeWithWrongEndpoints(t *testing.T) {
	// f: 0 → 1, g: 1 → 0. g∘f must be an endomorphism of 0, here it is f.
	c := New(2, []int{0, 1}, []int{1, 0}, []int{0, 1, 2, 0})

	err := c.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, lawerrors.ErrIncompatibleComposition))
	assert.Equal(t, []int{3, 2}, lawerrors.WitnessOf(err))
}

func TestCompose_IdentityRules(t *testing.T) {
	c := New(2, []int{0}, []int{1}, []int{0})

	h, ok := c.Compose(2, 0) // f∘id_0
	assert.True(t, ok)
	assert.Equal(t, 2, h)

	h, ok = c.Compose(1, 2) // id_1∘f
	assert.True(t, ok)
	assert.Equal(t, 2, h)

	_, ok = c.Compose(0, 2) // id_0∘f, target(f) = 1
	assert.False(t, ok)
	assert.Equal(t, Undefined, c.Composition(0, 2))
	assert.Equal(t, Undefined, c.Composition(2, 2))

	assert.True(t, c.IsIdentity(1))
	assert.False(t, c.IsIdentity(2))
	assert.Equal(t, 1, c.Identity(1))
	assert.Equal(t, 0, c.Source(2))
	assert.Equal(t, 1, c.Target(2))
}

func TestNew_MalformedPanics(t *testing.T) {
	assert.Panics(t, func() { New(1, []int{0}, nil, nil) })
	assert.Panics(t, func() { New(1, []int{0}, []int{1}, []int{0}) })
	assert.Panics(t, func() { New(1, []int{0}, []int{0}, []int{0, 0}) })
	assert.Panics(t, func() { New(1, []int{0}, []int{0}, []int{2}) })
}

func TestClone_Detaches(t *testing.T) {
	c := cyclic3()
	d := c.Clone()
	c.Table()[0] = 1
	assert.Equal(t, 2, d.Table()[0])
	assert.NoError(t, d.Validate())
}

func TestString(t *testing.T) {
	s := cyclic3().String()
	assert.Contains(t, s, "objects=1, morphisms=3")
	assert.Contains(t, s, "1∘- : [2 0]")
}
