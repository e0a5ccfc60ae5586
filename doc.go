// Package plonkish provides the circuit-layout and constraint-assignment
// engine of a PLONKish zero-knowledge proof compiler.
//
// Circuits describe themselves as an ordered sequence of regions: cohesive
// groups of cell assignments, selector activations and equality constraints,
// expressed as assignment routines the engine runs through a two-phase
// probe/commit protocol. The engine places every region on a shared grid of
// named columns, consolidates the resulting cell writes and copy constraints,
// and hands the sealed fixed/selector/permutation data to the key and proof
// construction collaborators.
//
// The packages are organized as follows:
//   - circuit: column, cell and value types, and the Assignment capability
//     boundary between circuits and backends
//   - layouter: the single-pass greedy floor planner and its parallel
//     region-batch variant
//   - keygen: the witness-free assignment backend used to derive key material
//   - witness: the witness-bearing assignment backend used for proving and
//     debugging
//   - permutation: the equality-constraint cycle builder
package plonkish

import "github.com/blang/semver/v4"

// Version of the plonkish library.
var Version = semver.MustParse("0.1.0")
