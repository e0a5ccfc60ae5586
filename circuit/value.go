package circuit

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// Value is a field element that may still be unknown. Witness values are
// unknown during key generation and only become concrete when a proving
// backend supplies them; the zero Value is unknown.
type Value struct {
	value fr.Element
	known bool
}

// Known wraps a concrete field element.
func Known(v fr.Element) Value {
	return Value{value: v, known: true}
}

// KnownUint64 wraps a small constant. Convenience for circuits and tests.
func KnownUint64(v uint64) Value {
	return Known(fr.NewElement(v))
}

// Unknown returns the absent value.
func Unknown() Value {
	return Value{}
}

// IsKnown reports whether the value has been determined.
func (v Value) IsKnown() bool {
	return v.known
}

// Get returns the underlying element and whether it is known.
func (v Value) Get() (fr.Element, bool) {
	return v.value, v.known
}

func (v Value) String() string {
	if !v.known {
		return "unknown"
	}
	return v.value.String()
}
