package layouter

import (
	"fmt"
	"sort"

	"github.com/consensys/plonkish/circuit"
)

// recorder is a test double for circuit.Assignment: it accepts everything
// and keeps a structured log of the writes it saw.
type fixedWrite struct {
	Column circuit.Column
	Row    int
	Value  circuit.Value
}

type adviceWrite struct {
	Column circuit.Column
	Row    int
	Value  circuit.Value
}

type selectorWrite struct {
	Selector circuit.Selector
	Row      int
}

type copyRecord struct {
	Left, Right circuit.Column
	LeftRow     int
	RightRow    int
}

type fillRecord struct {
	Column  circuit.Column
	FromRow int
	Value   circuit.Value
}

type recorder struct {
	fixed     []fixedWrite
	advice    []adviceWrite
	selectors []selectorWrite
	copies    []copyRecord
	fills     []fillRecord

	regions []string

	// instance values served by QueryInstance, keyed by column index then row
	instance map[int]map[int]circuit.Value

	// failSelector makes EnableSelector fail, to exercise error propagation
	failSelector error
}

func newRecorder() *recorder {
	return &recorder{instance: make(map[int]map[int]circuit.Value)}
}

func (r *recorder) EnterRegion(name string) { r.regions = append(r.regions, name) }
func (r *recorder) ExitRegion()             {}

func (r *recorder) EnableSelector(_ string, s circuit.Selector, row int) error {
	if r.failSelector != nil {
		return r.failSelector
	}
	r.selectors = append(r.selectors, selectorWrite{Selector: s, Row: row})
	return nil
}

func (r *recorder) QueryAdvice(c circuit.Column, row int) (circuit.Value, error) {
	for i := len(r.advice) - 1; i >= 0; i-- {
		if r.advice[i].Column == c && r.advice[i].Row == row {
			return r.advice[i].Value, nil
		}
	}
	return circuit.Unknown(), nil
}

func (r *recorder) QueryFixed(c circuit.Column, row int) (circuit.Value, error) {
	for i := len(r.fixed) - 1; i >= 0; i-- {
		if r.fixed[i].Column == c && r.fixed[i].Row == row {
			return r.fixed[i].Value, nil
		}
	}
	return circuit.Unknown(), nil
}

func (r *recorder) QueryInstance(c circuit.Column, row int) (circuit.Value, error) {
	if col, ok := r.instance[c.Index]; ok {
		if v, ok := col[row]; ok {
			return v, nil
		}
	}
	return circuit.Unknown(), nil
}

func (r *recorder) AssignAdvice(_ string, c circuit.Column, row int, to func() circuit.Value) error {
	r.advice = append(r.advice, adviceWrite{Column: c, Row: row, Value: to()})
	return nil
}

func (r *recorder) AssignFixed(_ string, c circuit.Column, row int, to func() circuit.Value) error {
	r.fixed = append(r.fixed, fixedWrite{Column: c, Row: row, Value: to()})
	return nil
}

func (r *recorder) Copy(a circuit.Column, aRow int, b circuit.Column, bRow int) error {
	r.copies = append(r.copies, copyRecord{Left: a, LeftRow: aRow, Right: b, RightRow: bRow})
	return nil
}

func (r *recorder) FillFromRow(c circuit.Column, fromRow int, v circuit.Value) error {
	r.fills = append(r.fills, fillRecord{Column: c, FromRow: fromRow, Value: v})
	return nil
}

func (r *recorder) GetChallenge(circuit.Challenge) circuit.Value { return circuit.Unknown() }
func (r *recorder) AnnotateColumn(string, circuit.Column)        {}
func (r *recorder) PushNamespace(string)                         {}
func (r *recorder) PopNamespace(string)                          {}

// sortedCopies normalizes a copy log for set comparison: each record's
// endpoints ordered, then the log itself.
func sortedCopies(in []copyRecord) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		l := fmt.Sprintf("%s:%d", c.Left, c.LeftRow)
		r := fmt.Sprintf("%s:%d", c.Right, c.RightRow)
		if l > r {
			l, r = r, l
		}
		out = append(out, l+"="+r)
	}
	sort.Strings(out)
	return out
}
