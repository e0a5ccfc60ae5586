package circuit

import (
	"errors"
	"fmt"
)

var (
	// ErrNotEnoughColumnsForConstants is returned when a region requests a
	// constant assignment but the configuration declared no constants column.
	ErrNotEnoughColumnsForConstants = errors.New("not enough columns for constants")

	// ErrBoundsFailure signals a query or write outside allocated storage.
	// It indicates a configuration or engine defect, never a recoverable
	// condition.
	ErrBoundsFailure = errors.New("assignment out of storage bounds")

	// ErrSynthesis is the class of generic protocol violations: table column
	// reuse, inconsistent table lengths, malformed fork ranges. Errors of
	// this class wrap it, so errors.Is(err, ErrSynthesis) matches them all.
	ErrSynthesis = errors.New("synthesis failure")
)

// ErrNotEnoughRows is returned when the configured grid height 2^K is
// smaller than the minimum the circuit requires. K is carried for
// diagnostics.
type ErrNotEnoughRows struct {
	K uint32
}

func (e *ErrNotEnoughRows) Error() string {
	return fmt.Sprintf("k = %d is too small for the given circuit; try using a larger value of k", e.K)
}
