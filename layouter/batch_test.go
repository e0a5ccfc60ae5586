package layouter

import (
	"errors"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/plonkish/circuit"
	"github.com/stretchr/testify/require"
)

// batchRoutine writes w rows on each of the given columns and
// equality-constrains its first two cells.
func batchRoutine(columns []circuit.Column, w int) func(circuit.Region) error {
	return func(r circuit.Region) error {
		var cells []circuit.Cell
		for _, col := range columns {
			for offset := 0; offset < w; offset++ {
				cell, err := r.AssignAdvice("w", col, offset, unknownValue)
				if err != nil {
					return err
				}
				cells = append(cells, cell)
			}
		}
		if len(cells) >= 2 {
			return r.ConstrainEqual(cells[0], cells[1])
		}
		return nil
	}
}

func TestBatchMatchesSequential(t *testing.T) {
	assert := require.New(t)

	x := circuit.Column{Kind: circuit.Advice, Index: 0}
	y := circuit.Column{Kind: circuit.Advice, Index: 1}

	routines := []func(circuit.Region) error{
		batchRoutine([]circuit.Column{x, y}, 3),
		batchRoutine([]circuit.Column{y}, 2),
		batchRoutine([]circuit.Column{x}, 4),
	}

	sequential := newRecorder()
	ls := New(sequential, nil)
	for _, fn := range routines {
		assert.NoError(ls.AssignRegion("r", fn))
	}

	batched := newRecorder()
	lb := New(batched, nil)
	assert.NoError(lb.AssignRegions("r", routines))

	assert.Equal(ls.regions, lb.regions)
	assert.Equal(sortedCopies(sequential.copies), sortedCopies(batched.copies))
	assert.ElementsMatch(sequential.advice, batched.advice)
}

func TestBatchRunsToCompletion(t *testing.T) {
	assert := require.New(t)

	x := circuit.Column{Kind: circuit.Advice, Index: 0}
	boom := errors.New("boom")

	materialized := make([]bool, 3)
	mkRoutine := func(i int, fail bool) func(circuit.Region) error {
		probed := false
		return func(r circuit.Region) error {
			if _, err := r.AssignAdvice("w", x, 0, unknownValue); err != nil {
				return err
			}
			if probed { // second invocation is the materializing pass
				materialized[i] = true
				if fail {
					return boom
				}
			}
			probed = true
			return nil
		}
	}

	routines := []func(circuit.Region) error{
		mkRoutine(0, false),
		mkRoutine(1, true),
		mkRoutine(2, false),
	}

	l := New(newRecorder(), nil)
	err := l.AssignRegions("r", routines)
	assert.ErrorIs(err, boom)

	// the failing region does not stop its siblings
	assert.Equal([]bool{true, true, true}, materialized)
}

func TestBatchConstantsOrder(t *testing.T) {
	assert := require.New(t)

	advice := circuit.Column{Kind: circuit.Advice, Index: 0}
	constants := circuit.Column{Kind: circuit.Fixed, Index: 0}

	backend := newRecorder()
	l := New(backend, []circuit.Column{constants})

	mkRoutine := func(v uint64, offset int) func(circuit.Region) error {
		return func(r circuit.Region) error {
			_, err := r.AssignAdviceFromConstant("c", advice, offset, fr.NewElement(v))
			return err
		}
	}

	assert.NoError(l.AssignRegions("batch", []func(circuit.Region) error{
		mkRoutine(11, 0),
		mkRoutine(22, 0),
		mkRoutine(33, 0),
	}))

	// constants are consolidated in region order, after the whole batch
	assert.Equal([]fixedWrite{
		{Column: constants, Row: 0, Value: circuit.KnownUint64(11)},
		{Column: constants, Row: 1, Value: circuit.KnownUint64(22)},
		{Column: constants, Row: 2, Value: circuit.KnownUint64(33)},
	}, backend.fixed)
}

func TestEmptyBatch(t *testing.T) {
	assert := require.New(t)
	l := New(newRecorder(), nil)
	assert.NoError(l.AssignRegions("none", nil))
}
