// Copyright 2025 The Kelda Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package distsqlrun

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/logtags"
	"github.com/dustin/go-humanize"
	"github.com/keldadb/kelda/pkg/sql/sqlbase"
	"github.com/keldadb/kelda/pkg/util/log"
)

// NoLimit is the Limit value indicating that the number of emitted rows is
// not capped. Note that 0 is a valid limit: it emits nothing.
const NoLimit int64 = -1

// MergeReceiverSpec configures a MergeReceiver. It is resolved once, at
// stage setup, from the inline sort/limit metadata of the query plan; by
// the time it reaches this package it is plain data with no plan-node
// indirection left.
type MergeReceiverSpec struct {
	// Types describes the row schema of the inputs (and the output, which
	// is identical: this stage reorders rows, it never reshapes them).
	Types []sqlbase.ColumnType
	// Ordering is the sort key each partition already sorted its rows by,
	// and the order the merged output is produced in.
	Ordering sqlbase.ColumnOrdering
	// Limit caps the number of emitted rows; NoLimit means unbounded.
	Limit int64
	// Offset is the number of leading merged rows to suppress.
	Offset int64
}

func (spec *MergeReceiverSpec) validate() error {
	if len(spec.Types) == 0 {
		return errors.Errorf("merge receiver without an input schema")
	}
	if len(spec.Ordering) == 0 {
		return errors.Errorf("merge receiver without an ordering")
	}
	for _, c := range spec.Ordering {
		if c.ColIdx < 0 || c.ColIdx >= len(spec.Types) {
			return errors.Errorf(
				"invalid ordering column %d (row has %d columns)", c.ColIdx, len(spec.Types))
		}
		if c.Direction != sqlbase.Ascending && c.Direction != sqlbase.Descending {
			return errors.Errorf("invalid ordering direction %d for column %d",
				c.Direction, c.ColIdx)
		}
	}
	return nil
}

// partitionRange is the still-unconsumed tail [cur, end) of one partition's
// rows within the staging buffer. The cursor only moves forward; the
// partition is exhausted once cur == end.
type partitionRange struct {
	cur, end int
}

// MergeReceiver merges the pre-sorted result batches of multiple partitions
// into a single sorted output stream. One MergeReceiver performs exactly one
// merge: it is single-threaded, single-pass and not reusable.
//
// The merge relies on each partition's rows arriving already sorted under
// the spec's ordering. That precondition is not verified (re-checking
// sortedness on every row would defeat the point of merging); violating it
// yields misordered output, not an error.
type MergeReceiver struct {
	types    []sqlbase.ColumnType
	ordering sqlbase.ColumnOrdering

	loader   DependencyLoader
	progress ProgressMonitor
	out      emitHelper

	// rows is the staging buffer: every partition's batch concatenated in
	// arrival order. partitionRowCounts records how many rows each
	// non-empty batch contributed; the counts sum to len(rows).
	rows               sqlbase.Rows
	partitionRowCounts []int
}

// NewMergeReceiver creates a MergeReceiver. All spec errors are reported
// here, before any row is processed. If progress is nil, a context-based
// cancel checker is used.
func NewMergeReceiver(
	spec MergeReceiverSpec, loader DependencyLoader, output RowReceiver, progress ProgressMonitor,
) (*MergeReceiver, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	if loader == nil {
		return nil, errors.AssertionFailedf("no dependency loader")
	}
	if progress == nil {
		progress = NewCancelCheckingMonitor()
	}
	mr := &MergeReceiver{
		types:    spec.Types,
		ordering: spec.Ordering,
		loader:   loader,
		progress: progress,
	}
	if err := mr.out.init(spec.Limit, spec.Offset, output); err != nil {
		return nil, err
	}
	return mr, nil
}

// Run loads every partition's batch into the staging buffer and merges them
// into the output. On error the output holds a partial, invalid result that
// the caller must discard.
func (mr *MergeReceiver) Run(ctx context.Context) error {
	ctx = logtags.AddTag(ctx, "merge-receive", nil)
	if err := mr.loadDependencies(ctx); err != nil {
		return err
	}
	return mr.mergeSort(ctx)
}

// loadDependencies pulls partition batches until the loader reports that no
// more are available, recording one row-count entry per non-empty batch.
// Requests that append no rows leave no trace: zero-length partition ranges
// are never created.
func (mr *MergeReceiver) loadDependencies(ctx context.Context) error {
	for {
		prevCount := len(mr.rows)
		more, err := mr.loader.LoadNextDependency(ctx, &mr.rows)
		if err != nil {
			return errors.Wrap(err, "loading partition results")
		}
		if delta := len(mr.rows) - prevCount; delta > 0 {
			for _, row := range mr.rows[prevCount:] {
				if len(row) != len(mr.types) {
					return errors.Errorf(
						"malformed batch: row %s has %d columns, expected %d",
						row, len(row), len(mr.types))
				}
			}
			mr.partitionRowCounts = append(mr.partitionRowCounts, delta)
		}
		if !more {
			break
		}
	}
	if log.V(1) {
		var size uintptr
		for _, row := range mr.rows {
			size += row.Size()
		}
		log.Infof(ctx, "staged %d rows (%s) across %d partitions, ordering %s",
			len(mr.rows), humanize.IBytes(uint64(size)), len(mr.partitionRowCounts), mr.ordering)
	}
	return nil
}

// mergeSort repeatedly moves the smallest available row across all
// still-nonempty partitions to the output, consulting the offset/limit
// filter and the progress monitor for every row.
//
// Each selection is a linear scan over the nonempty partitions. The
// partition count is bounded by the cluster's partition count (tens at
// most), where a branch-predictable scan beats a priority queue; keep it
// that way unless the fan-in grows by orders of magnitude.
func (mr *MergeReceiver) mergeSort(ctx context.Context) error {
	if len(mr.partitionRowCounts) == 0 {
		return nil
	}
	partitions := make([]partitionRange, 0, len(mr.partitionRowCounts))
	start := 0
	for _, count := range mr.partitionRowCounts {
		partitions = append(partitions, partitionRange{cur: start, end: start + count})
		start += count
	}

	for {
		// Drop exhausted partitions. A partition can run dry on any
		// iteration, so this must happen before every selection. The
		// compaction preserves registration order, which is what makes
		// tie-breaking deterministic.
		live := partitions[:0]
		for _, p := range partitions {
			if p.cur != p.end {
				live = append(live, p)
			}
		}
		partitions = live

		if len(partitions) == 0 {
			return nil
		}
		if len(partitions) == 1 {
			// Fast path: drain the last partition without comparisons.
			p := &partitions[0]
			for p.cur != p.end {
				row := mr.rows[p.cur]
				p.cur++
				if err := mr.progress.Countdown(ctx); err != nil {
					return err
				}
				if !mr.out.emitRow(ctx, row) {
					return nil
				}
			}
			return nil
		}

		// Find the partition holding the next row to emit. Only a strictly
		// smaller row displaces the current best, so among equal rows the
		// earliest-registered partition wins.
		best := 0
		for i := 1; i < len(partitions); i++ {
			if mr.rows[partitions[i].cur].Compare(mr.ordering, mr.rows[partitions[best].cur]) < 0 {
				best = i
			}
		}
		row := mr.rows[partitions[best].cur]
		partitions[best].cur++
		if err := mr.progress.Countdown(ctx); err != nil {
			return err
		}
		if !mr.out.emitRow(ctx, row) {
			return nil
		}
	}
}
