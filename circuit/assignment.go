package circuit

// Assignment is the capability the floor planner drives: the consumer of
// cell writes, selector activations and equality constraints. Two variants
// implement it: the witness-bearing assembly used for proving and debugging,
// and the witness-free key-generation assembly.
//
// Row arguments are absolute grid rows; the floor planner performs all
// region-relative translation before delegating. Value producers are only
// invoked when the implementation actually needs the value, so a probing or
// witness-free consumer never pays for witness computation.
type Assignment interface {
	// EnterRegion and ExitRegion are diagnostic scoping markers with no
	// semantic effect on placement.
	EnterRegion(name string)
	ExitRegion()

	// EnableSelector turns the selector on at the given row. It fails if the
	// row is outside the writable window.
	EnableSelector(annotation string, s Selector, row int) error

	// QueryAdvice returns the current value of an advice cell, or an unknown
	// value if it has not been determined.
	QueryAdvice(c Column, row int) (Value, error)

	// QueryFixed returns the current value of a fixed cell.
	QueryFixed(c Column, row int) (Value, error)

	// QueryInstance returns the public input at the given position, or an
	// unknown value for consumers that carry no instance data.
	QueryInstance(c Column, row int) (Value, error)

	// AssignAdvice writes a witness value.
	AssignAdvice(annotation string, c Column, row int, to func() Value) error

	// AssignFixed writes a key-material value.
	AssignFixed(annotation string, c Column, row int, to func() Value) error

	// Copy registers an equality constraint between two absolute positions.
	Copy(a Column, aRow int, b Column, bRow int) error

	// FillFromRow writes the same value to every usable row >= fromRow in
	// the given fixed column.
	FillFromRow(c Column, fromRow int, v Value) error

	// GetChallenge returns a verifier challenge, or an unknown value when
	// challenges are not available in this phase.
	GetChallenge(ch Challenge) Value

	// AnnotateColumn attaches a diagnostic name to a column.
	AnnotateColumn(annotation string, c Column)

	// PushNamespace and PopNamespace scope diagnostics; no effect on
	// correctness.
	PushNamespace(name string)
	PopNamespace(name string)
}

// Forker is the optional disjoint-partition capability of an Assignment.
// Fork carves the consumer's writable storage into ownership-transferred,
// non-overlapping row windows, one sub-consumer per range; ranges must be
// presented in non-decreasing, non-overlapping order within the parent's
// read/write window. While forked, the parent rejects writes. Merge returns
// ownership to the parent and replays the equality constraints each
// sub-consumer buffered, in sub-consumer order.
type Forker interface {
	Assignment

	Fork(ranges []RowRange) ([]Assignment, error)
	Merge(subs []Assignment) error
}
