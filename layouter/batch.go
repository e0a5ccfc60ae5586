package layouter

import (
	"fmt"
	"time"

	"github.com/consensys/plonkish/circuit"
	"github.com/consensys/plonkish/internal/parallel"
)

// AssignRegions places a batch of regions and materializes them
// concurrently. Probing and placement run sequentially (placement has a
// global ordering dependency on the occupancy map); materialization runs one
// region per forked sub-consumer, each owning a disjoint row window of the
// shared grid, so the writes need no synchronization. Equality constraints
// buffered by the sub-consumers are replayed in region order by the merge
// step, and constants collected across the batch are consolidated in the
// same order.
//
// On consumers without the Forker capability the batch falls back to
// sequential materialization with identical observable results.
//
// Every region routine runs to completion even if a sibling fails; the first
// error in region order is surfaced afterwards, and the merge step is
// skipped on any failure.
func (l *SingleLayouter) AssignRegions(name string, fns []func(circuit.Region) error) error {
	if len(fns) == 0 {
		return nil
	}
	firstIndex := len(l.regions)

	// sequential probe and placement for the whole batch
	ranges := make([]circuit.RowRange, 0, len(fns))
	for i, fn := range fns {
		shape := newRegionShape(circuit.RegionIndex(firstIndex + i))
		if err := fn(circuit.NewRegion(shape)); err != nil {
			return err
		}
		start := l.place(fmt.Sprintf("%s_%d", name, i), shape, false)
		ranges = append(ranges, circuit.RowRange{Start: start, End: start + shape.rowCount})
		l.log.Debug().Str("region", fmt.Sprintf("%s_%d", name, i)).
			Int("start", start).Int("end", start+shape.rowCount).Msg("placed batch region")
	}

	forker, ok := l.backend.(circuit.Forker)
	if !ok {
		return l.assignRegionsSequential(name, firstIndex, fns)
	}

	forkStart := time.Now()
	subs, err := forker.Fork(ranges)
	if err != nil {
		return err
	}
	l.log.Debug().Int("windows", len(subs)).Dur("took", time.Since(forkStart)).Msg("forked assignment consumer")

	// one region per sub-consumer, in parallel; each worker records its own
	// result and collected constants, siblings are never cancelled
	results := make([]error, len(fns))
	collected := make([][]constantRequest, len(fns))
	materializeStart := time.Now()
	parallel.Execute(0, len(fns), func(start, end int) {
		for i := start; i < end; i++ {
			sub := l.forkLayouter(subs[i])
			sub.backend.EnterRegion(fmt.Sprintf("%s_%d", name, i))
			region := newLayouterRegion(sub, circuit.RegionIndex(firstIndex+i))
			results[i] = fns[i](circuit.NewRegion(region))
			sub.backend.ExitRegion()
			collected[i] = region.constants
		}
	})
	l.log.Debug().Int("regions", len(fns)).Dur("took", time.Since(materializeStart)).Msg("materialized batch")

	for _, err := range results {
		if err != nil {
			return err
		}
	}

	mergeStart := time.Now()
	if err := forker.Merge(subs); err != nil {
		return err
	}
	l.log.Debug().Int("windows", len(subs)).Dur("took", time.Since(mergeStart)).Msg("merged assignment consumer")

	return l.assignConstants(flatten(collected))
}

// assignRegionsSequential materializes an already-placed batch one region at
// a time, preserving the batch's run-to-completion and ordered-constants
// semantics.
func (l *SingleLayouter) assignRegionsSequential(name string, firstIndex int, fns []func(circuit.Region) error) error {
	results := make([]error, len(fns))
	collected := make([][]constantRequest, len(fns))
	for i, fn := range fns {
		l.backend.EnterRegion(fmt.Sprintf("%s_%d", name, i))
		region := newLayouterRegion(l, circuit.RegionIndex(firstIndex+i))
		results[i] = fn(circuit.NewRegion(region))
		l.backend.ExitRegion()
		collected[i] = region.constants
	}
	for _, err := range results {
		if err != nil {
			return err
		}
	}
	return l.assignConstants(flatten(collected))
}

// forkLayouter builds the per-window view of the layouter handed to one
// worker: the sub-consumer plus a private copy of the region arena. Only the
// root layouter's occupancy map and constants cursor are authoritative; the
// workers never touch them.
func (l *SingleLayouter) forkLayouter(sub circuit.Assignment) *SingleLayouter {
	regions := make([]int, len(l.regions))
	copy(regions, l.regions)
	return &SingleLayouter{
		backend:   sub,
		constants: l.constants,
		regions:   regions,
		log:       l.log,
	}
}

func flatten(collected [][]constantRequest) []constantRequest {
	var n int
	for _, c := range collected {
		n += len(c)
	}
	all := make([]constantRequest, 0, n)
	for _, c := range collected {
		all = append(all, c...)
	}
	return all
}
