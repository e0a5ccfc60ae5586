package keygen

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/plonkish/circuit"
)

// Fork carves the assembly's fixed and selector storage into
// ownership-transferred windows, one per range. Ranges must be
// non-decreasing, non-overlapping and contained in the assembly's own
// read/write window; violations are rejected before any window is carved.
// Until Merge returns the windows, the parent rejects all writes, so at any
// moment each row belongs to exactly one live context; that transfer is the
// sole basis of concurrency safety, no locks are involved.
func (a *Assembly) Fork(ranges []circuit.RowRange) ([]circuit.Assignment, error) {
	if a.sealed {
		return nil, fmt.Errorf("assembly is sealed: %w", circuit.ErrSynthesis)
	}
	if a.forked {
		return nil, fmt.Errorf("assembly already forked: %w", circuit.ErrSynthesis)
	}

	next := a.rwRows.Start
	for i, r := range ranges {
		if r.Start < next {
			a.log.Error().Int("window", i).Stringer("range", r).Int("floor", next).Msg("fork ranges overlap or regress")
			return nil, fmt.Errorf("fork window %d starts at %d, before row %d: %w", i, r.Start, next, circuit.ErrSynthesis)
		}
		if r.End > a.rwRows.End {
			a.log.Error().Int("window", i).Stringer("range", r).Stringer("rw", a.rwRows).Msg("fork range exceeds read/write window")
			return nil, fmt.Errorf("fork window %d ends at %d, beyond %s: %w", i, r.End, a.rwRows, circuit.ErrSynthesis)
		}
		next = r.End
	}

	subs := make([]circuit.Assignment, len(ranges))
	for i, r := range ranges {
		lo, hi := r.Start-a.rwRows.Start, r.End-a.rwRows.Start
		sub := &Assembly{
			k:          a.k,
			fixed:      make([][]fr.Element, len(a.fixed)),
			selectors:  make([][]bool, len(a.selectors)),
			usableRows: a.usableRows,
			rwRows:     r,
			log:        a.log,
		}
		for c := range a.fixed {
			sub.fixed[c] = a.fixed[c][lo:hi:hi]
		}
		for s := range a.selectors {
			sub.selectors[s] = a.selectors[s][lo:hi:hi]
		}
		subs[i] = sub
	}

	a.forked = true
	return subs, nil
}

// Merge takes the windows back and replays each sub-assembly's buffered
// equality constraints into the permutation builder, in sub-assembly (i.e.
// original region) order. The builder's internal structure is
// order-sensitive, so this sequential replay is what keeps key material
// reproducible regardless of worker scheduling.
func (a *Assembly) Merge(subs []circuit.Assignment) error {
	if !a.forked {
		return fmt.Errorf("assembly is not forked: %w", circuit.ErrSynthesis)
	}
	a.forked = false

	for _, s := range subs {
		sub, ok := s.(*Assembly)
		if !ok {
			return fmt.Errorf("foreign sub-context in merge: %w", circuit.ErrSynthesis)
		}
		for _, c := range sub.copies {
			if err := a.Copy(c.Left.Column, c.Left.Row, c.Right.Column, c.Right.Row); err != nil {
				return err
			}
		}
		sub.copies = nil
		sub.sealed = true // a merged window must not be written again
	}
	return nil
}
