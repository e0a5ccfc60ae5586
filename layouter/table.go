package layouter

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/plonkish/circuit"
)

// tableColumnState tracks one lookup column within a table-assignment pass:
// the default value established at row 0, and the set of assigned rows.
type tableColumnState struct {
	hasDefault bool
	defaultVal circuit.Value
	assigned   *bitset.BitSet
	rows       int // max assigned offset + 1
}

// fullyAssignedLen returns the column's fully-assigned length: the length L
// such that every row < L is assigned, or false if the column has gaps.
func (s *tableColumnState) fullyAssignedLen() (int, bool) {
	if int(s.assigned.Count()) != s.rows {
		return 0, false
	}
	return s.rows, true
}

// tableLayouter validates the append-only table protocol: columns sealed in
// an earlier pass are rejected, row 0 establishes a column's default, and a
// second row-0 write to the same column is an error.
type tableLayouter struct {
	backend     circuit.Assignment
	usedColumns []circuit.TableColumn

	states map[circuit.TableColumn]*tableColumnState
	order  []circuit.TableColumn // insertion order, for deterministic sealing
}

func newTableLayouter(backend circuit.Assignment, usedColumns []circuit.TableColumn) *tableLayouter {
	return &tableLayouter{
		backend:     backend,
		usedColumns: usedColumns,
		states:      make(map[circuit.TableColumn]*tableColumnState),
	}
}

func (t *tableLayouter) AssignCell(annotation string, col circuit.TableColumn, offset int, to func() circuit.Value) error {
	for _, used := range t.usedColumns {
		if used == col {
			return fmt.Errorf("%s already used in a sealed table: %w", col, circuit.ErrSynthesis)
		}
	}

	state, ok := t.states[col]
	if !ok {
		state = &tableColumnState{assigned: bitset.New(64)}
		t.states[col] = state
		t.order = append(t.order, col)
	}

	// observe the value the consumer pulls, without forcing it twice
	value := circuit.Unknown()
	err := t.backend.AssignFixed(annotation, col.Inner, offset, func() circuit.Value {
		value = to()
		return value
	})
	if err != nil {
		return err
	}

	if offset == 0 {
		if state.hasDefault {
			return fmt.Errorf("%s row 0 assigned twice: %w", col, circuit.ErrSynthesis)
		}
		state.hasDefault = true
		state.defaultVal = value
	}

	state.assigned.Set(uint(offset))
	if offset+1 > state.rows {
		state.rows = offset + 1
	}
	return nil
}

// AssignTable runs a table-assignment pass, validates that all participating
// columns report the same fully-assigned length, seals the columns against
// reuse and back-fills every row beyond that length with each column's row-0
// default.
func (l *SingleLayouter) AssignTable(name string, fn func(circuit.Table) error) error {
	l.backend.EnterRegion(name)
	table := newTableLayouter(l.backend, l.tableColumns)
	err := fn(circuit.NewTable(table))
	l.backend.ExitRegion()
	if err != nil {
		return err
	}

	// every participating column must agree on a single fully-assigned
	// length
	firstUnused := -1
	for _, col := range table.order {
		length, ok := table.states[col].fullyAssignedLen()
		if !ok {
			return fmt.Errorf("table %q: %s has unassigned rows: %w", name, col, circuit.ErrSynthesis)
		}
		if firstUnused >= 0 && length != firstUnused {
			return fmt.Errorf("table %q: columns disagree on length (%d vs %d): %w",
				name, firstUnused, length, circuit.ErrSynthesis)
		}
		firstUnused = length
	}
	if firstUnused < 0 {
		return fmt.Errorf("table %q assigned no columns: %w", name, circuit.ErrSynthesis)
	}

	// seal the columns against reuse in this pass
	l.tableColumns = append(l.tableColumns, table.order...)

	for _, col := range table.order {
		// the default exists: row 0 is assigned on every fully-assigned
		// column with length >= 1
		if err := l.backend.FillFromRow(col.Inner, firstUnused, table.states[col].defaultVal); err != nil {
			return err
		}
	}
	return nil
}
