package keygen

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/plonkish/circuit"
	"github.com/consensys/plonkish/debug"
	"github.com/consensys/plonkish/internal/parallel"
	"github.com/consensys/plonkish/layouter"
	"github.com/consensys/plonkish/logger"
	"github.com/consensys/plonkish/permutation"
)

// Artifact is the sealed output of a key-generation pass: the data the key
// construction collaborators consume. FixedColumns are full grid columns,
// Selectors are per-selector activation bitmaps (input to selector
// compression) and Copies is the full ordered equality-constraint list
// (input to the permutation argument).
type Artifact struct {
	K            uint32
	FixedColumns [][]fr.Element
	Selectors    []*bitset.BitSet
	Copies       []permutation.Copy
}

// Synthesize runs a full key-generation pass over the circuit at grid height
// 2^k: configuration, region placement and materialization, then sealing.
// On any error the pass aborts and no partial key material is returned. A
// panic in circuit code is recovered and surfaced as an error carrying the
// call stack.
func Synthesize(k uint32, c circuit.Circuit) (artifact *Artifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			artifact = nil
			err = fmt.Errorf("%v\n%s", r, debug.Stack())
		}
	}()

	cs := circuit.NewConstraintSystem()
	if err := c.Configure(cs); err != nil {
		return nil, err
	}

	n := 1 << k
	if n < cs.MinimumRows() {
		return nil, &circuit.ErrNotEnoughRows{K: k}
	}

	log := logger.Logger()
	log.Info().Uint32("k", k).
		Int("advice", cs.NumAdvice()).Int("fixed", cs.NumFixed()).
		Int("instance", cs.NumInstance()).Int("selectors", cs.NumSelectors()).
		Msg("synthesizing circuit for key generation")

	assembly := newAssembly(k, n, cs)
	l := layouter.New(assembly, cs.Constants())
	if err := c.Synthesize(l); err != nil {
		return nil, err
	}

	return assembly.Seal()
}

// Seal freezes the assembly and extracts the artifact. Fixed columns are
// copied out and selector columns are packed into bitmaps, columns split
// across the worker pool. A sealed assembly rejects all further operations;
// Seal itself is not repeatable.
func (a *Assembly) Seal() (*Artifact, error) {
	if a.forked {
		return nil, fmt.Errorf("cannot seal while forked sub-contexts hold storage: %w", circuit.ErrSynthesis)
	}
	if a.sealed {
		return nil, fmt.Errorf("assembly already sealed: %w", circuit.ErrSynthesis)
	}
	if a.perm == nil {
		return nil, fmt.Errorf("cannot seal a forked sub-context: %w", circuit.ErrSynthesis)
	}
	a.sealed = true

	artifact := &Artifact{
		K:            a.k,
		FixedColumns: make([][]fr.Element, len(a.fixed)),
		Selectors:    make([]*bitset.BitSet, len(a.selectors)),
		Copies:       a.perm.Copies(),
	}

	parallel.Execute(0, len(a.fixed), func(start, end int) {
		for i := start; i < end; i++ {
			col := make([]fr.Element, len(a.fixed[i]))
			copy(col, a.fixed[i])
			artifact.FixedColumns[i] = col
		}
	})
	parallel.Execute(0, len(a.selectors), func(start, end int) {
		for i := start; i < end; i++ {
			bits := bitset.New(uint(len(a.selectors[i])))
			for row, set := range a.selectors[i] {
				if set {
					bits.Set(uint(row))
				}
			}
			artifact.Selectors[i] = bits
		}
	})
	return artifact, nil
}
