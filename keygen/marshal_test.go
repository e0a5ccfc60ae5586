package keygen

import (
	"bytes"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"

	plonkish "github.com/consensys/plonkish"
)

func TestArtifactRoundTrip(t *testing.T) {
	assert := require.New(t)

	artifact, err := Synthesize(4, &gridCircuit{nRegions: 3})
	assert.NoError(err)

	var buf bytes.Buffer
	written, err := artifact.WriteTo(&buf)
	assert.NoError(err)
	assert.Equal(int64(buf.Len()), written)

	var restored Artifact
	read, err := restored.ReadFrom(&buf)
	assert.NoError(err)
	assert.Equal(written, read)

	assert.Equal(artifact.K, restored.K)
	assert.Equal(artifact.FixedColumns, restored.FixedColumns)
	assert.Equal(artifact.Copies, restored.Copies)
	assert.Len(restored.Selectors, len(artifact.Selectors))
	for i := range artifact.Selectors {
		assert.True(artifact.Selectors[i].Equal(restored.Selectors[i]))
	}
}

func TestArtifactVersionMismatch(t *testing.T) {
	assert := require.New(t)

	artifact, err := Synthesize(4, &gridCircuit{nRegions: 1})
	assert.NoError(err)

	var buf bytes.Buffer
	_, err = artifact.WriteTo(&buf)
	assert.NoError(err)

	// rewrite the envelope with a bumped major version
	var env artifactEnvelope
	assert.NoError(cbor.Unmarshal(buf.Bytes(), &env))
	incompatible := plonkish.Version
	incompatible.Major++
	env.Version = incompatible.String()
	raw, err := cbor.Marshal(&env)
	assert.NoError(err)

	var restored Artifact
	_, err = restored.ReadFrom(bytes.NewReader(raw))
	assert.Error(err)
	assert.Contains(err.Error(), "incompatible")
}

func TestArtifactGarbageVersion(t *testing.T) {
	assert := require.New(t)

	env := artifactEnvelope{Version: "not-a-version"}
	raw, err := cbor.Marshal(&env)
	assert.NoError(err)

	var restored Artifact
	_, err = restored.ReadFrom(bytes.NewReader(raw))
	assert.Error(err)
	assert.Contains(err.Error(), "invalid artifact version")
}
