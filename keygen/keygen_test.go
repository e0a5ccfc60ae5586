package keygen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/plonkish/circuit"
)

// gridCircuit lays out nRegions identical regions: a selector row, a fixed
// value, a constant-backed advice cell and an equality constraint. With
// batched set, the regions go through the parallel batch path; otherwise they
// are placed one at a time. Both must yield identical key material.
type gridCircuit struct {
	batched  bool
	nRegions int

	advice circuit.Column
	fixed  circuit.Column
	sel    circuit.Selector
}

func (c *gridCircuit) Configure(cs *circuit.ConstraintSystem) error {
	c.advice = cs.AdviceColumn()
	cs.EnableEquality(c.advice)
	c.fixed = cs.FixedColumn()
	c.sel = cs.Selector()
	cs.ConstantsColumn()
	return nil
}

func (c *gridCircuit) region(i int) func(circuit.Region) error {
	return func(r circuit.Region) error {
		if err := r.EnableSelector("q", c.sel, 0); err != nil {
			return err
		}
		if _, err := r.AssignFixed("f", c.fixed, 0, known(uint64(i+1))); err != nil {
			return err
		}
		a0, err := r.AssignAdviceFromConstant("c", c.advice, 0, fr.NewElement(uint64(10*(i+1))))
		if err != nil {
			return err
		}
		a1, err := r.AssignAdvice("w", c.advice, 1, func() circuit.Value { return circuit.Unknown() })
		if err != nil {
			return err
		}
		return r.ConstrainEqual(a0, a1)
	}
}

func (c *gridCircuit) Synthesize(l circuit.Layouter) error {
	if c.batched {
		fns := make([]func(circuit.Region) error, c.nRegions)
		for i := range fns {
			fns[i] = c.region(i)
		}
		return l.AssignRegions("rows", fns)
	}
	for i := 0; i < c.nRegions; i++ {
		if err := l.AssignRegion("rows", c.region(i)); err != nil {
			return err
		}
	}
	return nil
}

func TestSynthesize(t *testing.T) {
	assert := require.New(t)

	artifact, err := Synthesize(4, &gridCircuit{nRegions: 3})
	assert.NoError(err)
	assert.Equal(uint32(4), artifact.K)
	assert.Len(artifact.FixedColumns, 2) // declared fixed column + constants
	assert.Len(artifact.Selectors, 1)

	// regions stack on rows 0-1, 2-3, 4-5 of the shared columns
	for i := 0; i < 3; i++ {
		assert.Equal(fr.NewElement(uint64(i+1)), artifact.FixedColumns[0][2*i])
		assert.True(artifact.Selectors[0].Test(uint(2 * i)))
		assert.False(artifact.Selectors[0].Test(uint(2*i + 1)))
	}

	// constants consolidated in request order in the constants column
	for i := 0; i < 3; i++ {
		assert.Equal(fr.NewElement(uint64(10*(i+1))), artifact.FixedColumns[1][i])
	}

	// one constant copy and one explicit equality per region
	assert.Len(artifact.Copies, 6)
}

func TestSynthesizeNotEnoughRows(t *testing.T) {
	assert := require.New(t)

	// n = 2^1 is below the blinding reserve
	_, err := Synthesize(1, &gridCircuit{nRegions: 1})
	var tooSmall *circuit.ErrNotEnoughRows
	assert.ErrorAs(err, &tooSmall)
	assert.Equal(uint32(1), tooSmall.K)
}

func TestBatchedSynthesisMatchesSequential(t *testing.T) {
	assert := require.New(t)

	sequential, err := Synthesize(5, &gridCircuit{nRegions: 6})
	assert.NoError(err)
	batched, err := Synthesize(5, &gridCircuit{nRegions: 6, batched: true})
	assert.NoError(err)

	assert.Equal(sequential.K, batched.K)
	assert.Equal(sequential.FixedColumns, batched.FixedColumns)
	// batching reorders the copy log (explicit equalities first, then the
	// consolidated constants), but the constraint set must not change
	assert.ElementsMatch(sequential.Copies, batched.Copies)
	assert.Len(sequential.Selectors, len(batched.Selectors))
	for i := range sequential.Selectors {
		assert.True(sequential.Selectors[i].Equal(batched.Selectors[i]))
	}
}

// panickyCircuit panics inside its region routine instead of returning an
// error.
type panickyCircuit struct {
	advice circuit.Column
}

func (c *panickyCircuit) Configure(cs *circuit.ConstraintSystem) error {
	c.advice = cs.AdviceColumn()
	return nil
}

func (c *panickyCircuit) Synthesize(l circuit.Layouter) error {
	return l.AssignRegion("boom", func(r circuit.Region) error {
		panic("witness computation went wrong")
	})
}

func TestSynthesizeRecoversPanic(t *testing.T) {
	assert := require.New(t)

	artifact, err := Synthesize(4, &panickyCircuit{})
	assert.Nil(artifact)
	assert.Error(err)
	// the recovered error carries the panic value and the call stack
	assert.Contains(err.Error(), "witness computation went wrong")
	assert.Contains(err.Error(), "\n")
}

func TestSynthesizeOverfullGrid(t *testing.T) {
	assert := require.New(t)

	// 8 regions of 2 rows need 16 usable rows; k=4 leaves only 10
	_, err := Synthesize(4, &gridCircuit{nRegions: 8})
	var tooSmall *circuit.ErrNotEnoughRows
	assert.ErrorAs(err, &tooSmall)
}
