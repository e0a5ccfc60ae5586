package witness

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/plonkish/circuit"
	"github.com/consensys/plonkish/debug"
	"github.com/consensys/plonkish/layouter"
)

// Synthesize runs a full witness-bearing synthesis pass over the circuit at
// grid height 2^k and returns the sealed assembly. On any error no partial
// assembly is returned. A panic in circuit code is recovered and surfaced as
// an error carrying the call stack.
func Synthesize(k uint32, c circuit.Circuit, instance [][]fr.Element) (assembly *Assembly, err error) {
	defer func() {
		if r := recover(); r != nil {
			assembly = nil
			err = fmt.Errorf("%v\n%s", r, debug.Stack())
		}
	}()

	cs := circuit.NewConstraintSystem()
	if err := c.Configure(cs); err != nil {
		return nil, err
	}

	assembly, err = NewAssembly(k, cs, instance)
	if err != nil {
		return nil, err
	}

	l := layouter.New(assembly, cs.Constants())
	if err := c.Synthesize(l); err != nil {
		return nil, err
	}

	assembly.Seal()
	return assembly, nil
}
