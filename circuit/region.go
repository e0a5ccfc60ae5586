package circuit

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// Region is the view a region routine gets of its own rows. All offsets are
// relative to the region's (not yet necessarily decided) starting row.
type Region struct {
	layouter RegionLayouter
}

// NewRegion wraps a RegionLayouter. Used by floor planner implementations.
func NewRegion(l RegionLayouter) Region {
	return Region{layouter: l}
}

// EnableSelector activates the selector at the given offset.
func (r Region) EnableSelector(annotation string, s Selector, offset int) error {
	return r.layouter.EnableSelector(annotation, s, offset)
}

// NameColumn attaches a diagnostic name to a column.
func (r Region) NameColumn(annotation string, c Column) {
	r.layouter.NameColumn(annotation, c)
}

// QueryAdvice returns the value of the advice cell at the given offset, or
// an unknown value if it is not yet determined.
func (r Region) QueryAdvice(c Column, offset int) (Value, error) {
	return r.layouter.QueryAdvice(c, offset)
}

// QueryFixed returns the value of the fixed cell at the given offset.
func (r Region) QueryFixed(c Column, offset int) (Value, error) {
	return r.layouter.QueryFixed(c, offset)
}

// AssignAdvice writes a witness value and returns the cell. The producer is
// only invoked when the underlying consumer needs the value.
func (r Region) AssignAdvice(annotation string, c Column, offset int, to func() Value) (Cell, error) {
	return r.layouter.AssignAdvice(annotation, c, offset, to)
}

// AssignAdviceFromConstant writes the constant to an advice cell and records
// it for consolidation into the constants column, equality-constrained to
// the cell.
func (r Region) AssignAdviceFromConstant(annotation string, c Column, offset int, constant fr.Element) (Cell, error) {
	return r.layouter.AssignAdviceFromConstant(annotation, c, offset, constant)
}

// AssignAdviceFromInstance copies a public input into an advice cell and
// equality-constrains the two positions. The returned value may be unknown
// for consumers without instance data.
func (r Region) AssignAdviceFromInstance(annotation string, instance Column, row int, advice Column, offset int) (Cell, Value, error) {
	return r.layouter.AssignAdviceFromInstance(annotation, instance, row, advice, offset)
}

// AssignFixed writes a key-material value and returns the cell.
func (r Region) AssignFixed(annotation string, c Column, offset int, to func() Value) (Cell, error) {
	return r.layouter.AssignFixed(annotation, c, offset, to)
}

// ConstrainConstant records an equality between the cell and a constant to
// be placed in the constants column.
func (r Region) ConstrainConstant(cell Cell, constant fr.Element) error {
	return r.layouter.ConstrainConstant(cell, constant)
}

// ConstrainEqual registers an equality constraint between two cells.
func (r Region) ConstrainEqual(a, b Cell) error {
	return r.layouter.ConstrainEqual(a, b)
}

// GlobalOffset translates a region-relative offset to an absolute row. Pure
// translation, no side effect. Before placement it returns the offset
// unchanged.
func (r Region) GlobalOffset(offset int) int {
	return r.layouter.GlobalOffset(offset)
}

// Table is the view a table assignment routine gets of its lookup columns.
type Table struct {
	layouter TableLayouter
}

// NewTable wraps a TableLayouter. Used by floor planner implementations.
func NewTable(l TableLayouter) Table {
	return Table{layouter: l}
}

// AssignCell writes one table cell. Row 0 establishes the column's default
// value used to back-fill the tail after sealing.
func (t Table) AssignCell(annotation string, col TableColumn, offset int, to func() Value) error {
	return t.layouter.AssignCell(annotation, col, offset, to)
}
