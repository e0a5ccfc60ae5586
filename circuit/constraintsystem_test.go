package circuit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColumnAllocation(t *testing.T) {
	assert := require.New(t)

	cs := NewConstraintSystem()
	a0 := cs.AdviceColumn()
	a1 := cs.AdviceColumn()
	f0 := cs.FixedColumn()
	i0 := cs.InstanceColumn()
	s0 := cs.Selector()
	tc := cs.TableColumn()
	ch := cs.Challenge()

	assert.Equal(Column{Kind: Advice, Index: 0}, a0)
	assert.Equal(Column{Kind: Advice, Index: 1}, a1)
	assert.Equal(Column{Kind: Fixed, Index: 0}, f0)
	assert.Equal(Column{Kind: Instance, Index: 0}, i0)
	assert.Equal(Selector{Index: 0}, s0)
	// table columns draw from the fixed column space
	assert.Equal(Column{Kind: Fixed, Index: 1}, tc.Inner)
	assert.Equal(Challenge{Index: 0}, ch)

	assert.Equal(2, cs.NumAdvice())
	assert.Equal(2, cs.NumFixed())
	assert.Equal(1, cs.NumInstance())
	assert.Equal(1, cs.NumSelectors())
}

func TestEqualityRegistration(t *testing.T) {
	assert := require.New(t)

	cs := NewConstraintSystem()
	a := cs.AdviceColumn()
	i := cs.InstanceColumn()

	cs.EnableEquality(a)
	cs.EnableEquality(i)
	cs.EnableEquality(a) // duplicate is ignored

	assert.Equal([]Column{a, i}, cs.PermutationColumns())
}

func TestConstantsColumn(t *testing.T) {
	assert := require.New(t)

	cs := NewConstraintSystem()
	cs.FixedColumn()
	c := cs.ConstantsColumn()

	assert.Equal(Column{Kind: Fixed, Index: 1}, c)
	assert.Equal([]Column{c}, cs.Constants())
	// constants columns participate in the permutation argument
	assert.Equal([]Column{c}, cs.PermutationColumns())
}

func TestBlindingFactors(t *testing.T) {
	assert := require.New(t)

	cs := NewConstraintSystem()
	assert.Equal(5, cs.BlindingFactors())
	assert.Equal(7, cs.MinimumRows())

	cs.SetBlindingFactors(3)
	assert.Equal(3, cs.BlindingFactors())
	assert.Equal(5, cs.MinimumRows())

	// the reserve never drops below one row
	cs.SetBlindingFactors(0)
	assert.Equal(1, cs.BlindingFactors())
}

func TestRowRange(t *testing.T) {
	assert := require.New(t)

	r := RowRange{Start: 2, End: 6}
	assert.Equal(4, r.Len())
	assert.True(r.Contains(2))
	assert.True(r.Contains(5))
	assert.False(r.Contains(6))
	assert.False(r.Contains(1))

	assert.True(r.Overlaps(RowRange{Start: 5, End: 9}))
	assert.True(r.Overlaps(RowRange{Start: 0, End: 3}))
	assert.False(r.Overlaps(RowRange{Start: 6, End: 9}))
	assert.False(r.Overlaps(RowRange{Start: 0, End: 2}))
	assert.Equal("[2..6)", r.String())
}

func TestValue(t *testing.T) {
	assert := require.New(t)

	var zero Value
	assert.False(zero.IsKnown())
	_, known := zero.Get()
	assert.False(known)
	assert.Equal("unknown", zero.String())

	v := KnownUint64(42)
	assert.True(v.IsKnown())
	e, known := v.Get()
	assert.True(known)
	assert.Equal("42", e.String())
}
