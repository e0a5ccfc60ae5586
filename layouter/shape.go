// Package layouter implements the single-pass greedy floor planner: regions
// are probed for their shape, placed at the earliest row at which none of
// their columns are in use, then materialized at that position. Regions are
// never reordered; packing density is traded for a layout that mirrors the
// circuit's business logic.
package layouter

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/plonkish/circuit"
)

// regionShape runs a region routine in dry mode: every call is accepted,
// values are discarded without invoking their producers, and only the set of
// touched columns and the row count are recorded. The routine must visit the
// same control flow during the later materializing pass; the shape measured
// here is binding for placement.
type regionShape struct {
	regionIndex circuit.RegionIndex
	columns     map[circuit.RegionColumn]struct{}
	rowCount    int
}

func newRegionShape(index circuit.RegionIndex) *regionShape {
	return &regionShape{
		regionIndex: index,
		columns:     make(map[circuit.RegionColumn]struct{}),
	}
}

func (s *regionShape) touch(rc circuit.RegionColumn, offset int) {
	s.columns[rc] = struct{}{}
	if offset+1 > s.rowCount {
		s.rowCount = offset + 1
	}
}

func (s *regionShape) EnableSelector(_ string, sel circuit.Selector, offset int) error {
	s.touch(circuit.SelectorOf(sel), offset)
	return nil
}

func (s *regionShape) NameColumn(string, circuit.Column) {}

func (s *regionShape) QueryAdvice(c circuit.Column, offset int) (circuit.Value, error) {
	s.touch(circuit.ColumnOf(c), offset)
	return circuit.Unknown(), nil
}

func (s *regionShape) QueryFixed(c circuit.Column, offset int) (circuit.Value, error) {
	s.touch(circuit.ColumnOf(c), offset)
	return circuit.Unknown(), nil
}

func (s *regionShape) AssignAdvice(_ string, c circuit.Column, offset int, _ func() circuit.Value) (circuit.Cell, error) {
	s.touch(circuit.ColumnOf(c), offset)
	return circuit.Cell{Region: s.regionIndex, Offset: offset, Column: c}, nil
}

func (s *regionShape) AssignAdviceFromConstant(annotation string, c circuit.Column, offset int, _ fr.Element) (circuit.Cell, error) {
	return s.AssignAdvice(annotation, c, offset, nil)
}

func (s *regionShape) AssignAdviceFromInstance(annotation string, _ circuit.Column, _ int, advice circuit.Column, offset int) (circuit.Cell, circuit.Value, error) {
	// the instance column is addressed absolutely and takes no region space
	cell, err := s.AssignAdvice(annotation, advice, offset, nil)
	return cell, circuit.Unknown(), err
}

func (s *regionShape) AssignFixed(_ string, c circuit.Column, offset int, _ func() circuit.Value) (circuit.Cell, error) {
	s.touch(circuit.ColumnOf(c), offset)
	return circuit.Cell{Region: s.regionIndex, Offset: offset, Column: c}, nil
}

func (s *regionShape) ConstrainConstant(circuit.Cell, fr.Element) error { return nil }

func (s *regionShape) ConstrainEqual(circuit.Cell, circuit.Cell) error { return nil }

// GlobalOffset is meaningless before placement; the probe returns the offset
// unchanged.
func (s *regionShape) GlobalOffset(offset int) int { return offset }
