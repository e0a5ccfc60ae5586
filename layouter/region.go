package layouter

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/plonkish/circuit"
)

// layouterRegion materializes a placed region: every operation translates
// the caller's region-relative offset to an absolute row before delegating
// to the assignment consumer. Errors from the consumer propagate unchanged.
type layouterRegion struct {
	layouter    *SingleLayouter
	regionIndex circuit.RegionIndex

	// constants to be assigned, and the cells to which they are copied
	constants []constantRequest
}

func newLayouterRegion(l *SingleLayouter, index circuit.RegionIndex) *layouterRegion {
	return &layouterRegion{layouter: l, regionIndex: index}
}

func (r *layouterRegion) start() int {
	return r.layouter.regions[r.regionIndex]
}

func (r *layouterRegion) EnableSelector(annotation string, s circuit.Selector, offset int) error {
	return r.layouter.backend.EnableSelector(annotation, s, r.start()+offset)
}

func (r *layouterRegion) NameColumn(annotation string, c circuit.Column) {
	r.layouter.backend.AnnotateColumn(annotation, c)
}

func (r *layouterRegion) QueryAdvice(c circuit.Column, offset int) (circuit.Value, error) {
	return r.layouter.backend.QueryAdvice(c, r.start()+offset)
}

func (r *layouterRegion) QueryFixed(c circuit.Column, offset int) (circuit.Value, error) {
	return r.layouter.backend.QueryFixed(c, r.start()+offset)
}

func (r *layouterRegion) AssignAdvice(annotation string, c circuit.Column, offset int, to func() circuit.Value) (circuit.Cell, error) {
	if err := r.layouter.backend.AssignAdvice(annotation, c, r.start()+offset, to); err != nil {
		return circuit.Cell{}, err
	}
	return circuit.Cell{Region: r.regionIndex, Offset: offset, Column: c}, nil
}

func (r *layouterRegion) AssignAdviceFromConstant(annotation string, c circuit.Column, offset int, constant fr.Element) (circuit.Cell, error) {
	cell, err := r.AssignAdvice(annotation, c, offset, func() circuit.Value { return circuit.Known(constant) })
	if err != nil {
		return circuit.Cell{}, err
	}
	if err := r.ConstrainConstant(cell, constant); err != nil {
		return circuit.Cell{}, err
	}
	return cell, nil
}

func (r *layouterRegion) AssignAdviceFromInstance(annotation string, instance circuit.Column, row int, advice circuit.Column, offset int) (circuit.Cell, circuit.Value, error) {
	value, err := r.layouter.backend.QueryInstance(instance, row)
	if err != nil {
		return circuit.Cell{}, circuit.Unknown(), err
	}

	cell, err := r.AssignAdvice(annotation, advice, offset, func() circuit.Value { return value })
	if err != nil {
		return circuit.Cell{}, circuit.Unknown(), err
	}

	if err := r.layouter.backend.Copy(cell.Column, r.start()+cell.Offset, instance, row); err != nil {
		return circuit.Cell{}, circuit.Unknown(), err
	}

	return cell, value, nil
}

func (r *layouterRegion) AssignFixed(annotation string, c circuit.Column, offset int, to func() circuit.Value) (circuit.Cell, error) {
	if err := r.layouter.backend.AssignFixed(annotation, c, r.start()+offset, to); err != nil {
		return circuit.Cell{}, err
	}
	return circuit.Cell{Region: r.regionIndex, Offset: offset, Column: c}, nil
}

func (r *layouterRegion) ConstrainConstant(cell circuit.Cell, constant fr.Element) error {
	r.constants = append(r.constants, constantRequest{constant: constant, cell: cell})
	return nil
}

func (r *layouterRegion) ConstrainEqual(a, b circuit.Cell) error {
	return r.layouter.backend.Copy(
		a.Column, r.layouter.regions[a.Region]+a.Offset,
		b.Column, r.layouter.regions[b.Region]+b.Offset,
	)
}

func (r *layouterRegion) GlobalOffset(offset int) int {
	return r.start() + offset
}
