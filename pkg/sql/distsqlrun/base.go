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

// Package distsqlrun contains the coordinator-side stages of distributed
// query execution. The centerpiece is the MergeReceiver, which combines the
// individually pre-sorted result batches of the remote partitions of an
// ORDER BY query into one globally sorted, optionally limited/offset output
// stream, without re-sorting rows.
package distsqlrun

import (
	"context"

	"github.com/keldadb/kelda/pkg/sql/sqlbase"
)

// RowReceiver is the destination of the rows produced by a stage. Rows are
// pushed in final order and must not be mutated after being pushed.
type RowReceiver interface {
	// Push sends a row to the receiver. It returns false if the receiver
	// needs no more rows, in which case the producer stops early; this is
	// not an error.
	Push(row sqlbase.Row) bool
}

// DependencyLoader delivers the result batches of the upstream partitions,
// one batch per call. It is the transport boundary of the merge stage; rows
// within each batch are expected to already be sorted under the stage's
// ordering (this is not verified here).
type DependencyLoader interface {
	// LoadNextDependency appends the next available partition batch to dst.
	// It returns false once no more dependencies are available (a normal
	// end-of-input condition, not an error). Any error is fatal to the
	// stage: a query that needs all partitions cannot be answered from a
	// subset.
	LoadNextDependency(ctx context.Context, dst *sqlbase.Rows) (bool, error)
}

// RowBuffer is an in-memory RowReceiver that accumulates pushed rows. It is
// the usual output sink for a MergeReceiver whose results are consumed
// locally, and doubles as a test receiver.
type RowBuffer struct {
	Rows sqlbase.Rows

	// MaxAccepted, if positive, makes Push report that no more rows are
	// needed once that many rows have been accepted.
	MaxAccepted int
}

// NewRowBuffer returns an empty RowBuffer with no acceptance cap.
func NewRowBuffer() *RowBuffer {
	return &RowBuffer{}
}

// Push is part of the RowReceiver interface.
func (rb *RowBuffer) Push(row sqlbase.Row) bool {
	rb.Rows = append(rb.Rows, row)
	return rb.MaxAccepted <= 0 || len(rb.Rows) < rb.MaxAccepted
}
