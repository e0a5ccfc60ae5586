package circuit

// defaultBlindingFactors is the number of trailing rows reserved for
// blinding. Gate compilation, which would derive this from the maximum gate
// degree, is an external collaborator, so the registry carries an explicit
// count.
const defaultBlindingFactors = 5

// ConstraintSystem is the configuration-time column registry. Circuits
// acquire all columns and selectors from it during Configure; the engine
// never creates columns on its own.
type ConstraintSystem struct {
	numAdvice     int
	numFixed      int
	numInstance   int
	numSelectors  int
	numChallenges int

	constants       []Column
	permutation     []Column
	permutationSeen map[Column]struct{}

	blindingFactors int
}

// NewConstraintSystem returns an empty registry.
func NewConstraintSystem() *ConstraintSystem {
	return &ConstraintSystem{
		permutationSeen: make(map[Column]struct{}),
		blindingFactors: defaultBlindingFactors,
	}
}

// AdviceColumn allocates a new witness column.
func (cs *ConstraintSystem) AdviceColumn() Column {
	c := Column{Kind: Advice, Index: cs.numAdvice}
	cs.numAdvice++
	return c
}

// FixedColumn allocates a new fixed column.
func (cs *ConstraintSystem) FixedColumn() Column {
	c := Column{Kind: Fixed, Index: cs.numFixed}
	cs.numFixed++
	return c
}

// InstanceColumn allocates a new public-input column.
func (cs *ConstraintSystem) InstanceColumn() Column {
	c := Column{Kind: Instance, Index: cs.numInstance}
	cs.numInstance++
	return c
}

// Selector allocates a new selector.
func (cs *ConstraintSystem) Selector() Selector {
	s := Selector{Index: cs.numSelectors}
	cs.numSelectors++
	return s
}

// TableColumn allocates a fixed column reserved for a lookup table.
func (cs *ConstraintSystem) TableColumn() TableColumn {
	return TableColumn{Inner: cs.FixedColumn()}
}

// Challenge allocates a verifier challenge slot.
func (cs *ConstraintSystem) Challenge() Challenge {
	ch := Challenge{Index: cs.numChallenges}
	cs.numChallenges++
	return ch
}

// ConstantsColumn allocates a fixed column that the floor planner fills with
// requested constants, and enables it for equality.
func (cs *ConstraintSystem) ConstantsColumn() Column {
	c := cs.FixedColumn()
	cs.constants = append(cs.constants, c)
	cs.EnableEquality(c)
	return c
}

// EnableEquality registers a column with the permutation argument so its
// cells can participate in equality constraints.
func (cs *ConstraintSystem) EnableEquality(c Column) {
	if _, ok := cs.permutationSeen[c]; ok {
		return
	}
	cs.permutationSeen[c] = struct{}{}
	cs.permutation = append(cs.permutation, c)
}

// Constants returns the fixed columns designated for constant assignment,
// in allocation order.
func (cs *ConstraintSystem) Constants() []Column {
	return cs.constants
}

// PermutationColumns returns the equality-enabled columns in registration
// order.
func (cs *ConstraintSystem) PermutationColumns() []Column {
	return cs.permutation
}

// NumAdvice returns the number of advice columns.
func (cs *ConstraintSystem) NumAdvice() int { return cs.numAdvice }

// NumFixed returns the number of fixed columns (including table and
// constants columns).
func (cs *ConstraintSystem) NumFixed() int { return cs.numFixed }

// NumInstance returns the number of instance columns.
func (cs *ConstraintSystem) NumInstance() int { return cs.numInstance }

// NumSelectors returns the number of selectors.
func (cs *ConstraintSystem) NumSelectors() int { return cs.numSelectors }

// BlindingFactors returns the number of trailing rows reserved for blinding.
func (cs *ConstraintSystem) BlindingFactors() int {
	return cs.blindingFactors
}

// SetBlindingFactors overrides the reserved tail size. Intended for
// collaborators that derive the count from gate degrees.
func (cs *ConstraintSystem) SetBlindingFactors(n int) {
	if n < 1 {
		n = 1
	}
	cs.blindingFactors = n
}

// MinimumRows is the smallest grid height the configuration can synthesize
// into: the blinding rows, the row preceding them reserved for the
// permutation argument, and at least one usable row.
func (cs *ConstraintSystem) MinimumRows() int {
	return cs.blindingFactors + 2
}
