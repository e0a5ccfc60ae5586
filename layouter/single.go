package layouter

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/plonkish/circuit"
	"github.com/consensys/plonkish/logger"
	"github.com/rs/zerolog"
)

// largeRegionRows is the row count above which region placement is logged.
const largeRegionRows = 40

// constantRequest is a deferred constant assignment: the constant will be
// written into the constants column and equality-constrained to the cell.
type constantRequest struct {
	constant fr.Element
	cell     circuit.Cell
}

// SingleLayouter is a single-pass floor planner. It places each region at
// the earliest row at which none of the region's columns are in use, in
// region order, and materializes it immediately. Suitable for debugging
// circuits: the layout reflects the circuit's business logic as closely as
// possible.
type SingleLayouter struct {
	backend   circuit.Assignment
	constants []circuit.Column

	// regions is the arena of placed regions: starting row per
	// circuit.RegionIndex. It grows for the lifetime of the synthesis pass;
	// regions are only ever addressed through their index.
	regions []int

	// columns is the occupancy map: first row not yet claimed, per column.
	columns map[circuit.RegionColumn]int

	// tableColumns are sealed lookup columns, forbidden for further table
	// assignment in this pass.
	tableColumns []circuit.TableColumn

	log zerolog.Logger
}

// New returns a SingleLayouter over the given assignment consumer.
// constants are the fixed columns designated for constant assignment, in
// configuration order; only the first is used.
func New(backend circuit.Assignment, constants []circuit.Column) *SingleLayouter {
	return &SingleLayouter{
		backend:   backend,
		constants: constants,
		columns:   make(map[circuit.RegionColumn]int),
		log:       logger.Logger().With().Str("component", "layouter").Logger(),
	}
}

// AssignRegion probes the region's shape, places it, re-runs the routine to
// materialize it, and consolidates the constants it requested.
func (l *SingleLayouter) AssignRegion(name string, fn func(circuit.Region) error) error {
	regionIndex := circuit.RegionIndex(len(l.regions))

	// first pass: measure the shape without side effects
	shape := newRegionShape(regionIndex)
	if err := fn(circuit.NewRegion(shape)); err != nil {
		return err
	}

	logRegion := shape.rowCount >= largeRegionRows
	if logRegion {
		l.log.Debug().Str("region", name).Int("rowCount", shape.rowCount).Msg("probed region")
	}

	start := l.place(name, shape, logRegion)

	// second pass: materialize at the placed position
	l.backend.EnterRegion(name)
	region := newLayouterRegion(l, regionIndex)
	err := fn(circuit.NewRegion(region))
	l.backend.ExitRegion()
	if err != nil {
		return err
	}

	if logRegion {
		l.log.Debug().Str("region", name).Int("index", int(regionIndex)).Int("start", start).Msg("materialized region")
	}

	return l.assignConstants(region.constants)
}

// place fixes the region's starting row at the maximum occupancy frontier
// across its columns, records it in the arena and advances every touched
// column's frontier past the region. The greedy rule guarantees no two
// regions overlap on a shared column; columns not shared by consecutive
// regions may be left with gaps.
func (l *SingleLayouter) place(name string, shape *regionShape, logRegion bool) int {
	start := 0
	for rc := range shape.columns {
		columnStart := l.columns[rc]
		if columnStart != 0 && logRegion {
			l.log.Trace().Stringer("column", rc).Int("start", columnStart).Str("region", name).
				Msg("column reused between regions")
		}
		if columnStart > start {
			start = columnStart
		}
	}
	l.regions = append(l.regions, start)
	for rc := range shape.columns {
		l.columns[rc] = start + shape.rowCount
	}
	return start
}

// assignConstants writes every requested constant into the next free rows of
// the first constants column, in request order, and equality-constrains each
// to its use site. The column cursor is the shared occupancy frontier, so
// for a fixed region-visitation order the assigned rows are identical across
// runs.
func (l *SingleLayouter) assignConstants(requests []constantRequest) error {
	if len(l.constants) == 0 {
		if len(requests) > 0 {
			return circuit.ErrNotEnoughColumnsForConstants
		}
		return nil
	}

	column := l.constants[0]
	key := circuit.ColumnOf(column)
	row := l.columns[key]
	for _, req := range requests {
		constant := req.constant
		if err := l.backend.AssignFixed(
			fmt.Sprintf("Constant(%s)", constant.String()),
			column, row,
			func() circuit.Value { return circuit.Known(constant) },
		); err != nil {
			return err
		}
		if err := l.backend.Copy(column, row, req.cell.Column, l.regions[req.cell.Region]+req.cell.Offset); err != nil {
			return err
		}
		row++
	}
	l.columns[key] = row
	return nil
}

// ConstrainInstance equality-constrains a cell to a public input position.
func (l *SingleLayouter) ConstrainInstance(cell circuit.Cell, instance circuit.Column, row int) error {
	return l.backend.Copy(cell.Column, l.regions[cell.Region]+cell.Offset, instance, row)
}

// GetChallenge forwards to the assignment consumer.
func (l *SingleLayouter) GetChallenge(ch circuit.Challenge) circuit.Value {
	return l.backend.GetChallenge(ch)
}

// PushNamespace forwards the diagnostic scope marker.
func (l *SingleLayouter) PushNamespace(name string) {
	l.backend.PushNamespace(name)
}

// PopNamespace forwards the diagnostic scope marker.
func (l *SingleLayouter) PopNamespace() {
	l.backend.PopNamespace("")
}
