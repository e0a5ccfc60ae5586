// Package permutation builds the cycle structure of the permutation argument
// from an ordered list of equality constraints. The cryptographic
// construction that turns the cycles into key material lives outside this
// engine; the Builder exposes the ordered copy log and the final mapping for
// that collaborator.
package permutation

import (
	"fmt"

	"github.com/consensys/plonkish/circuit"
)

// CopyCell is one endpoint of an equality constraint, at an absolute grid
// position.
type CopyCell struct {
	Column circuit.Column
	Row    int
}

// Copy is an equality constraint between two absolute positions.
type Copy struct {
	Left, Right CopyCell
}

// Position points at a (column, row) slot by the column's registration
// index, the coordinate system of the permutation mapping.
type Position struct {
	Column, Row int
}

// Builder accumulates equality constraints over the registered columns and
// maintains the union of their cycles. It is a single-writer structure: in
// the parallel protocol only the sequential merge step touches it.
type Builder struct {
	n       int
	columns []circuit.Column
	indices map[circuit.Column]int

	copies []Copy

	// mapping holds, per slot, the next slot of its cycle; aux the cycle
	// representative; sizes, indexed by representative, the cycle size.
	mapping [][]Position
	aux     [][]Position
	sizes   [][]int
}

// NewBuilder returns a Builder over the given equality-enabled columns and
// grid height. Every slot starts in its own singleton cycle.
func NewBuilder(n int, columns []circuit.Column) *Builder {
	b := &Builder{
		n:       n,
		columns: columns,
		indices: make(map[circuit.Column]int, len(columns)),
		mapping: make([][]Position, len(columns)),
		aux:     make([][]Position, len(columns)),
		sizes:   make([][]int, len(columns)),
	}
	for i, c := range columns {
		b.indices[c] = i
		b.mapping[i] = make([]Position, n)
		b.aux[i] = make([]Position, n)
		b.sizes[i] = make([]int, n)
		for row := 0; row < n; row++ {
			b.mapping[i][row] = Position{Column: i, Row: row}
			b.aux[i][row] = Position{Column: i, Row: row}
			b.sizes[i][row] = 1
		}
	}
	return b
}

// Copy registers an equality constraint and joins the two cycles. Joining is
// union by size, so the resulting structure is deterministic for a fixed
// constraint order.
func (b *Builder) Copy(left circuit.Column, leftRow int, right circuit.Column, rightRow int) error {
	li, ok := b.indices[left]
	if !ok {
		return fmt.Errorf("column %s not enabled for equality: %w", left, circuit.ErrSynthesis)
	}
	ri, ok := b.indices[right]
	if !ok {
		return fmt.Errorf("column %s not enabled for equality: %w", right, circuit.ErrSynthesis)
	}
	if leftRow < 0 || leftRow >= b.n || rightRow < 0 || rightRow >= b.n {
		return circuit.ErrBoundsFailure
	}

	b.copies = append(b.copies, Copy{
		Left:  CopyCell{Column: left, Row: leftRow},
		Right: CopyCell{Column: right, Row: rightRow},
	})

	l := Position{Column: li, Row: leftRow}
	r := Position{Column: ri, Row: rightRow}

	leftCycle := b.aux[l.Column][l.Row]
	rightCycle := b.aux[r.Column][r.Row]
	if leftCycle == rightCycle {
		return nil
	}

	// keep the larger cycle as the surviving representative
	if b.sizes[leftCycle.Column][leftCycle.Row] < b.sizes[rightCycle.Column][rightCycle.Row] {
		leftCycle, rightCycle = rightCycle, leftCycle
	}
	b.sizes[leftCycle.Column][leftCycle.Row] += b.sizes[rightCycle.Column][rightCycle.Row]

	// point every member of the absorbed cycle at the surviving
	// representative
	i := rightCycle
	for {
		b.aux[i.Column][i.Row] = leftCycle
		i = b.mapping[i.Column][i.Row]
		if i == rightCycle {
			break
		}
	}

	// splice the two cycles together
	b.mapping[l.Column][l.Row], b.mapping[r.Column][r.Row] =
		b.mapping[r.Column][r.Row], b.mapping[l.Column][l.Row]

	return nil
}

// Copies returns the full equality-constraint log in registration order.
func (b *Builder) Copies() []Copy {
	return b.copies
}

// Columns returns the equality-enabled columns in registration order.
func (b *Builder) Columns() []circuit.Column {
	return b.columns
}

// Rows returns the grid height the builder was sized for.
func (b *Builder) Rows() int {
	return b.n
}

// Mapping returns the permutation: mapping[i][row] is the slot the
// permutation sends (columns[i], row) to.
func (b *Builder) Mapping() [][]Position {
	return b.mapping
}
