package keygen

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"
	"github.com/blang/semver/v4"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	plonkish "github.com/consensys/plonkish"
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/sync/errgroup"
)

// artifactEnvelope is the serialized form of an Artifact: independently
// encoded sections plus the library version that produced them.
type artifactEnvelope struct {
	Version   string
	K         uint32
	Fixed     []byte
	Selectors [][]byte
	Copies    []byte
}

// WriteTo serializes the artifact. Sections are encoded in parallel, then
// wrapped in a single envelope.
func (a *Artifact) WriteTo(w io.Writer) (int64, error) {
	env := artifactEnvelope{
		Version:   plonkish.Version.String(),
		K:         a.K,
		Selectors: make([][]byte, len(a.Selectors)),
	}

	var g errgroup.Group
	g.Go(func() error {
		var err error
		env.Fixed, err = cbor.Marshal(a.FixedColumns)
		return err
	})
	g.Go(func() error {
		var err error
		env.Copies, err = cbor.Marshal(a.Copies)
		return err
	})
	for i := range a.Selectors {
		g.Go(func() error {
			var err error
			env.Selectors[i], err = a.Selectors[i].MarshalBinary()
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	if err := cbor.NewEncoder(&buf).Encode(&env); err != nil {
		return 0, err
	}
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// ReadFrom deserializes an artifact and verifies it was produced by a
// compatible library version.
func (a *Artifact) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	var env artifactEnvelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return int64(len(data)), err
	}

	version, err := semver.Parse(env.Version)
	if err != nil {
		return int64(len(data)), fmt.Errorf("invalid artifact version %q: %w", env.Version, err)
	}
	if version.Major != plonkish.Version.Major {
		return int64(len(data)), fmt.Errorf("artifact version %s is incompatible with library version %s", version, plonkish.Version)
	}

	a.K = env.K
	a.Selectors = make([]*bitset.BitSet, len(env.Selectors))

	var g errgroup.Group
	g.Go(func() error {
		a.FixedColumns = nil
		return cbor.Unmarshal(env.Fixed, &a.FixedColumns)
	})
	g.Go(func() error {
		a.Copies = nil
		return cbor.Unmarshal(env.Copies, &a.Copies)
	})
	for i := range env.Selectors {
		g.Go(func() error {
			a.Selectors[i] = bitset.New(0)
			return a.Selectors[i].UnmarshalBinary(env.Selectors[i])
		})
	}
	if err := g.Wait(); err != nil {
		return int64(len(data)), err
	}

	if a.FixedColumns == nil {
		a.FixedColumns = [][]fr.Element{}
	}
	return int64(len(data)), nil
}
