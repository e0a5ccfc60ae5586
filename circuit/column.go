// Package circuit defines the types circuits and assignment backends share:
// columns, selectors, cells, values, the Assignment capability boundary and
// the Layouter contract implemented by floor planners.
package circuit

import "fmt"

// ColumnKind distinguishes the three column families of a PLONKish grid,
// plus the Any wildcard used where a position may live in any of them.
type ColumnKind uint8

const (
	Advice ColumnKind = iota // witness values, private to the prover
	Fixed                    // values baked into the proving/verifying key
	Instance                 // public inputs
	Any
)

func (k ColumnKind) String() string {
	switch k {
	case Advice:
		return "advice"
	case Fixed:
		return "fixed"
	case Instance:
		return "instance"
	case Any:
		return "any"
	default:
		return "unknown"
	}
}

// Column identifies one vertical lane of the assignment grid. Columns are
// acquired once at configuration time and are valid map keys.
type Column struct {
	Kind  ColumnKind
	Index int
}

func (c Column) String() string {
	return fmt.Sprintf("%s[%d]", c.Kind, c.Index)
}

// Selector is a boolean-valued virtual column toggling constraint gates per
// row. Selectors are compressed into fixed columns by an external
// collaborator after synthesis.
type Selector struct {
	Index int
}

func (s Selector) String() string {
	return fmt.Sprintf("selector[%d]", s.Index)
}

// TableColumn is a fixed column reserved for a lookup table. Once a table
// using it has been sealed, the column may not be targeted by table
// assignments again within the same synthesis pass.
type TableColumn struct {
	Inner Column
}

func (t TableColumn) String() string {
	return fmt.Sprintf("table[%d]", t.Inner.Index)
}

// Challenge identifies a verifier challenge queried during later synthesis
// phases. Its value is unknown during key generation.
type Challenge struct {
	Index int
}

// RegionColumn is a column as seen by the floor planner: either a concrete
// grid column or a virtual selector column. Both occupy layout space, so
// both participate in region placement.
type RegionColumn struct {
	Column     Column
	Selector   Selector
	IsSelector bool
}

// ColumnOf wraps a concrete column for placement bookkeeping.
func ColumnOf(c Column) RegionColumn {
	return RegionColumn{Column: c}
}

// SelectorOf wraps a selector for placement bookkeeping.
func SelectorOf(s Selector) RegionColumn {
	return RegionColumn{Selector: s, IsSelector: true}
}

func (rc RegionColumn) String() string {
	if rc.IsSelector {
		return rc.Selector.String()
	}
	return rc.Column.String()
}
