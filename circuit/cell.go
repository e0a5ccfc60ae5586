package circuit

import "fmt"

// RegionIndex is the stable handle of a region within a synthesis pass,
// assigned sequentially at first probe. Regions are stored in an arena owned
// by the layouter and are only ever addressed through this index.
type RegionIndex int

// Cell points at a grid position relative to a region: the absolute row is
// the region's starting row plus Offset. Cells are produced by every
// assignment operation and serve as endpoints of equality constraints and
// constant bindings.
type Cell struct {
	Region RegionIndex
	Offset int
	Column Column
}

func (c Cell) String() string {
	return fmt.Sprintf("cell(region=%d, offset=%d, column=%s)", c.Region, c.Offset, c.Column)
}

// RowRange is a half-open range of grid rows. Two ranges matter to the
// engine: the usable window (grid rows available for assignment at all,
// excluding the reserved blinding rows at the tail) and a context's
// read/write window, always a subset of the usable window.
type RowRange struct {
	Start, End int
}

// Len returns the number of rows covered.
func (r RowRange) Len() int {
	return r.End - r.Start
}

// Contains reports whether row falls inside the range.
func (r RowRange) Contains(row int) bool {
	return row >= r.Start && row < r.End
}

// Overlaps reports whether the two ranges share any row.
func (r RowRange) Overlaps(o RowRange) bool {
	return r.Start < o.End && o.Start < r.End
}

func (r RowRange) String() string {
	return fmt.Sprintf("[%d..%d)", r.Start, r.End)
}
