// Package witness provides the witness-bearing assignment consumer used for
// proving and debugging: advice, fixed and instance data live in real
// storage, queries return concrete values once assigned, and equality
// constraints go straight to a permutation builder.
package witness

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/plonkish/circuit"
	"github.com/consensys/plonkish/permutation"
)

// Assembly backs a synthesis pass with live witness storage. Unlike the
// key-generation assembly it needs no fork capability: witness passes run
// region by region, and batches fall back to the layouter's sequential path.
type Assembly struct {
	k uint32

	advice    [][]circuit.Value
	fixed     [][]circuit.Value
	instance  [][]fr.Element
	selectors [][]bool

	challenges map[circuit.Challenge]fr.Element

	perm *permutation.Builder

	usableRows circuit.RowRange
	sealed     bool
}

// NewAssembly allocates witness storage for grid height 2^k over the given
// configuration. instance supplies the public-input columns, indexed by
// column index; each must fit the usable window, and rows beyond a column's
// length read as unknown.
func NewAssembly(k uint32, cs *circuit.ConstraintSystem, instance [][]fr.Element) (*Assembly, error) {
	n := 1 << k
	if n < cs.MinimumRows() {
		return nil, &circuit.ErrNotEnoughRows{K: k}
	}
	if len(instance) != cs.NumInstance() {
		return nil, fmt.Errorf("expected %d instance columns, got %d: %w", cs.NumInstance(), len(instance), circuit.ErrSynthesis)
	}
	usable := circuit.RowRange{Start: 0, End: n - (cs.BlindingFactors() + 1)}
	for i, col := range instance {
		if len(col) > usable.Len() {
			return nil, fmt.Errorf("instance column %d has %d values, only %d usable rows: %w", i, len(col), usable.Len(), circuit.ErrSynthesis)
		}
	}

	a := &Assembly{
		k:          k,
		advice:     make([][]circuit.Value, cs.NumAdvice()),
		fixed:      make([][]circuit.Value, cs.NumFixed()),
		instance:   instance,
		selectors:  make([][]bool, cs.NumSelectors()),
		challenges: make(map[circuit.Challenge]fr.Element),
		perm:       permutation.NewBuilder(n, cs.PermutationColumns()),
		usableRows: usable,
	}
	for i := range a.advice {
		a.advice[i] = make([]circuit.Value, n)
	}
	for i := range a.fixed {
		a.fixed[i] = make([]circuit.Value, n)
	}
	for i := range a.selectors {
		a.selectors[i] = make([]bool, n)
	}
	return a, nil
}

// SetChallenge supplies a verifier challenge for later synthesis phases.
func (a *Assembly) SetChallenge(ch circuit.Challenge, v fr.Element) {
	a.challenges[ch] = v
}

// Seal freezes the assembly. Further mutating operations fail.
func (a *Assembly) Seal() {
	a.sealed = true
}

// Advice returns the witness columns.
func (a *Assembly) Advice() [][]circuit.Value { return a.advice }

// Fixed returns the fixed columns.
func (a *Assembly) Fixed() [][]circuit.Value { return a.fixed }

// Selectors returns the selector activations.
func (a *Assembly) Selectors() [][]bool { return a.selectors }

// Permutation returns the permutation builder.
func (a *Assembly) Permutation() *permutation.Builder { return a.perm }

func (a *Assembly) column(c circuit.Column) ([][]circuit.Value, error) {
	switch c.Kind {
	case circuit.Advice:
		return a.advice, nil
	case circuit.Fixed:
		return a.fixed, nil
	default:
		return nil, circuit.ErrBoundsFailure
	}
}

func (a *Assembly) writable(row int) error {
	if a.sealed {
		return fmt.Errorf("assembly is sealed: %w", circuit.ErrSynthesis)
	}
	if !a.usableRows.Contains(row) {
		return &circuit.ErrNotEnoughRows{K: a.k}
	}
	return nil
}

func (a *Assembly) EnterRegion(string) {}
func (a *Assembly) ExitRegion()        {}

func (a *Assembly) EnableSelector(_ string, s circuit.Selector, row int) error {
	if err := a.writable(row); err != nil {
		return err
	}
	if s.Index < 0 || s.Index >= len(a.selectors) {
		return circuit.ErrBoundsFailure
	}
	a.selectors[s.Index][row] = true
	return nil
}

func (a *Assembly) QueryAdvice(c circuit.Column, row int) (circuit.Value, error) {
	if c.Kind != circuit.Advice {
		return circuit.Unknown(), circuit.ErrBoundsFailure
	}
	return a.query(a.advice, c, row)
}

func (a *Assembly) QueryFixed(c circuit.Column, row int) (circuit.Value, error) {
	if c.Kind != circuit.Fixed {
		return circuit.Unknown(), circuit.ErrBoundsFailure
	}
	return a.query(a.fixed, c, row)
}

func (a *Assembly) query(columns [][]circuit.Value, c circuit.Column, row int) (circuit.Value, error) {
	if !a.usableRows.Contains(row) {
		return circuit.Unknown(), &circuit.ErrNotEnoughRows{K: a.k}
	}
	if c.Index < 0 || c.Index >= len(columns) {
		return circuit.Unknown(), circuit.ErrBoundsFailure
	}
	return columns[c.Index][row], nil
}

func (a *Assembly) QueryInstance(c circuit.Column, row int) (circuit.Value, error) {
	if !a.usableRows.Contains(row) {
		return circuit.Unknown(), &circuit.ErrNotEnoughRows{K: a.k}
	}
	if c.Kind != circuit.Instance || c.Index < 0 || c.Index >= len(a.instance) {
		return circuit.Unknown(), circuit.ErrBoundsFailure
	}
	if row >= len(a.instance[c.Index]) {
		return circuit.Unknown(), nil
	}
	return circuit.Known(a.instance[c.Index][row]), nil
}

func (a *Assembly) assign(c circuit.Column, row int, to func() circuit.Value) error {
	if err := a.writable(row); err != nil {
		return err
	}
	columns, err := a.column(c)
	if err != nil {
		return err
	}
	if c.Index < 0 || c.Index >= len(columns) {
		return circuit.ErrBoundsFailure
	}
	columns[c.Index][row] = to()
	return nil
}

func (a *Assembly) AssignAdvice(_ string, c circuit.Column, row int, to func() circuit.Value) error {
	if c.Kind != circuit.Advice {
		return circuit.ErrBoundsFailure
	}
	return a.assign(c, row, to)
}

func (a *Assembly) AssignFixed(_ string, c circuit.Column, row int, to func() circuit.Value) error {
	if c.Kind != circuit.Fixed {
		return circuit.ErrBoundsFailure
	}
	return a.assign(c, row, to)
}

func (a *Assembly) Copy(left circuit.Column, leftRow int, right circuit.Column, rightRow int) error {
	if !a.usableRows.Contains(leftRow) || !a.usableRows.Contains(rightRow) {
		return &circuit.ErrNotEnoughRows{K: a.k}
	}
	return a.perm.Copy(left, leftRow, right, rightRow)
}

func (a *Assembly) FillFromRow(c circuit.Column, fromRow int, v circuit.Value) error {
	if err := a.writable(fromRow); err != nil {
		return err
	}
	if c.Kind != circuit.Fixed || c.Index < 0 || c.Index >= len(a.fixed) {
		return circuit.ErrBoundsFailure
	}
	for row := fromRow; row < a.usableRows.End; row++ {
		a.fixed[c.Index][row] = v
	}
	return nil
}

func (a *Assembly) GetChallenge(ch circuit.Challenge) circuit.Value {
	if v, ok := a.challenges[ch]; ok {
		return circuit.Known(v)
	}
	return circuit.Unknown()
}

func (a *Assembly) AnnotateColumn(string, circuit.Column) {}
func (a *Assembly) PushNamespace(string)                  {}
func (a *Assembly) PopNamespace(string)                   {}
