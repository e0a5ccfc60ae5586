package circuit

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// Circuit is the user-supplied description the engine lays out. Configure
// acquires columns and selectors from the registry; Synthesize describes the
// regions. Synthesize must be deterministic: the engine invokes each region
// routine twice (once to probe its shape, once to materialize it) and both
// passes must observe identical column usage and row counts.
type Circuit interface {
	Configure(cs *ConstraintSystem) error
	Synthesize(l Layouter) error
}

// Layouter is the strategy that places regions on the grid and drives an
// Assignment. Region routines receive a Region scoped to their own rows and
// never see absolute positions.
type Layouter interface {
	// AssignRegion probes, places and materializes a single region.
	AssignRegion(name string, fn func(Region) error) error

	// AssignRegions places a batch of regions, then materializes them
	// concurrently when the underlying Assignment supports disjoint
	// partitioning, sequentially otherwise. Observable results are identical
	// either way.
	AssignRegions(name string, fns []func(Region) error) error

	// AssignTable runs a lookup-table assignment pass and seals the
	// participating columns.
	AssignTable(name string, fn func(Table) error) error

	// ConstrainInstance equality-constrains a cell to a public input
	// position.
	ConstrainInstance(cell Cell, instance Column, row int) error

	// GetChallenge returns a verifier challenge if available.
	GetChallenge(ch Challenge) Value

	PushNamespace(name string)
	PopNamespace()
}

// RegionLayouter is the capability a Region delegates to. It is implemented
// twice: by the shape probe, which records column usage without side
// effects, and by the materializing region context, which commits writes at
// the region's placed position. Keeping the two as distinct implementations
// of one interface statically separates probing-mode from committing-mode
// logic.
type RegionLayouter interface {
	EnableSelector(annotation string, s Selector, offset int) error
	NameColumn(annotation string, c Column)
	QueryAdvice(c Column, offset int) (Value, error)
	QueryFixed(c Column, offset int) (Value, error)
	AssignAdvice(annotation string, c Column, offset int, to func() Value) (Cell, error)
	AssignAdviceFromConstant(annotation string, c Column, offset int, constant fr.Element) (Cell, error)
	AssignAdviceFromInstance(annotation string, instance Column, row int, advice Column, offset int) (Cell, Value, error)
	AssignFixed(annotation string, c Column, offset int, to func() Value) (Cell, error)
	ConstrainConstant(cell Cell, constant fr.Element) error
	ConstrainEqual(a, b Cell) error
	GlobalOffset(offset int) int
}

// TableLayouter receives lookup-table cell writes. Offsets are absolute:
// tables always start at row 0.
type TableLayouter interface {
	AssignCell(annotation string, col TableColumn, offset int, to func() Value) error
}
