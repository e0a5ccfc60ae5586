// Package keygen derives the structural key material of a circuit: fixed
// column values, selector activation bitmaps and the permutation cycle
// structure. Witnesses are irrelevant to key material, so advice operations
// are no-ops.
package keygen

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/plonkish/circuit"
	"github.com/consensys/plonkish/logger"
	"github.com/consensys/plonkish/permutation"
	"github.com/rs/zerolog"
)

// Assembly is the witness-free assignment consumer used during key
// generation. Fixed and selector writes go to real backing storage; advice
// writes are discarded without invoking their producers; equality
// constraints go to the permutation builder, or are buffered locally when
// the assembly is itself a forked sub-context with no builder attached.
//
// Rows are governed by two windows: usableRows, the grid minus the reserved
// blinding tail, and rwRows, the subset this assembly may write. For the
// root assembly the two coincide; forked sub-assemblies receive narrower,
// pairwise-disjoint rwRows windows backed by sub-slices of the parent's
// storage, which is what makes unsynchronized concurrent writes safe.
type Assembly struct {
	k uint32

	// fixed and selectors hold each column's storage from rwRows.Start
	// onward; indexing is relative to rwRows.Start. The root assembly holds
	// full columns, forked sub-assemblies hold exactly their window.
	fixed     [][]fr.Element
	selectors [][]bool

	// perm is nil on forked sub-assemblies; copies buffers their equality
	// constraints until the merge step replays them.
	perm   *permutation.Builder
	copies []permutation.Copy

	usableRows circuit.RowRange
	rwRows     circuit.RowRange

	// forked locks the parent out of its own storage while sub-assemblies
	// hold windows into it; sealed freezes the assembly for good.
	forked bool
	sealed bool

	log zerolog.Logger
}

func newAssembly(k uint32, n int, cs *circuit.ConstraintSystem) *Assembly {
	usable := circuit.RowRange{Start: 0, End: n - (cs.BlindingFactors() + 1)}
	fixed := make([][]fr.Element, cs.NumFixed())
	for i := range fixed {
		fixed[i] = make([]fr.Element, n)
	}
	selectors := make([][]bool, cs.NumSelectors())
	for i := range selectors {
		selectors[i] = make([]bool, n)
	}
	return &Assembly{
		k:          k,
		fixed:      fixed,
		selectors:  selectors,
		perm:       permutation.NewBuilder(n, cs.PermutationColumns()),
		usableRows: usable,
		rwRows:     usable,
		log:        logger.Logger().With().Str("component", "keygen").Logger(),
	}
}

// Permutation returns the permutation builder once synthesis completed.
func (a *Assembly) Permutation() *permutation.Builder {
	return a.perm
}

// writable checks the window discipline shared by every mutating operation.
func (a *Assembly) writable(row int) error {
	if a.sealed {
		return fmt.Errorf("assembly is sealed: %w", circuit.ErrSynthesis)
	}
	if a.forked {
		return fmt.Errorf("assembly storage is on loan to forked sub-contexts: %w", circuit.ErrSynthesis)
	}
	if !a.usableRows.Contains(row) {
		return &circuit.ErrNotEnoughRows{K: a.k}
	}
	if !a.rwRows.Contains(row) {
		return fmt.Errorf("row %d outside read/write window %s: %w", row, a.rwRows, circuit.ErrSynthesis)
	}
	return nil
}

func (a *Assembly) EnterRegion(string) {}
func (a *Assembly) ExitRegion()        {}

func (a *Assembly) EnableSelector(_ string, s circuit.Selector, row int) error {
	if err := a.writable(row); err != nil {
		a.log.Error().Stringer("selector", s).Int("row", row).Err(err).Msg("enable selector")
		return err
	}
	if s.Index < 0 || s.Index >= len(a.selectors) {
		return circuit.ErrBoundsFailure
	}
	a.selectors[s.Index][row-a.rwRows.Start] = true
	return nil
}

// QueryAdvice always returns unknown: this assembly carries no witnesses.
func (a *Assembly) QueryAdvice(circuit.Column, int) (circuit.Value, error) {
	return circuit.Unknown(), nil
}

func (a *Assembly) QueryFixed(c circuit.Column, row int) (circuit.Value, error) {
	if !a.usableRows.Contains(row) {
		return circuit.Unknown(), &circuit.ErrNotEnoughRows{K: a.k}
	}
	if !a.rwRows.Contains(row) {
		return circuit.Unknown(), fmt.Errorf("row %d outside read/write window %s: %w", row, a.rwRows, circuit.ErrSynthesis)
	}
	if c.Index < 0 || c.Index >= len(a.fixed) {
		return circuit.Unknown(), circuit.ErrBoundsFailure
	}
	return circuit.Known(a.fixed[c.Index][row-a.rwRows.Start]), nil
}

// QueryInstance checks bounds only; there is no instance data in this
// context.
func (a *Assembly) QueryInstance(_ circuit.Column, row int) (circuit.Value, error) {
	if !a.usableRows.Contains(row) {
		return circuit.Unknown(), &circuit.ErrNotEnoughRows{K: a.k}
	}
	return circuit.Unknown(), nil
}

// AssignAdvice is a no-op; the value producer is never invoked.
func (a *Assembly) AssignAdvice(_ string, _ circuit.Column, _ int, _ func() circuit.Value) error {
	return nil
}

func (a *Assembly) AssignFixed(_ string, c circuit.Column, row int, to func() circuit.Value) error {
	if err := a.writable(row); err != nil {
		a.log.Error().Stringer("column", c).Int("row", row).Err(err).Msg("assign fixed")
		return err
	}
	if c.Index < 0 || c.Index >= len(a.fixed) {
		return circuit.ErrBoundsFailure
	}
	v, known := to().Get()
	if !known {
		return fmt.Errorf("unknown value assigned to %s at row %d: %w", c, row, circuit.ErrSynthesis)
	}
	a.fixed[c.Index][row-a.rwRows.Start] = v
	return nil
}

func (a *Assembly) Copy(left circuit.Column, leftRow int, right circuit.Column, rightRow int) error {
	if !a.usableRows.Contains(leftRow) || !a.usableRows.Contains(rightRow) {
		return &circuit.ErrNotEnoughRows{K: a.k}
	}
	if a.perm == nil {
		a.copies = append(a.copies, permutation.Copy{
			Left:  permutation.CopyCell{Column: left, Row: leftRow},
			Right: permutation.CopyCell{Column: right, Row: rightRow},
		})
		return nil
	}
	return a.perm.Copy(left, leftRow, right, rightRow)
}

func (a *Assembly) FillFromRow(c circuit.Column, fromRow int, v circuit.Value) error {
	if err := a.writable(fromRow); err != nil {
		return err
	}
	if c.Index < 0 || c.Index >= len(a.fixed) {
		return circuit.ErrBoundsFailure
	}
	filler, known := v.Get()
	if !known {
		return fmt.Errorf("unknown fill value for %s: %w", c, circuit.ErrSynthesis)
	}
	for row := fromRow; row < a.usableRows.End; row++ {
		if !a.rwRows.Contains(row) {
			return fmt.Errorf("row %d outside read/write window %s: %w", row, a.rwRows, circuit.ErrSynthesis)
		}
		a.fixed[c.Index][row-a.rwRows.Start] = filler
	}
	return nil
}

// GetChallenge always returns unknown; challenges belong to later proving
// phases.
func (a *Assembly) GetChallenge(circuit.Challenge) circuit.Value {
	return circuit.Unknown()
}

func (a *Assembly) AnnotateColumn(string, circuit.Column) {}
func (a *Assembly) PushNamespace(string)                  {}
func (a *Assembly) PopNamespace(string)                   {}
