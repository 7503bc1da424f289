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
	"math"

	"github.com/cockroachdb/errors"
	"github.com/keldadb/kelda/pkg/sql/sqlbase"
	"github.com/keldadb/kelda/pkg/util/log"
)

// emitHelper applies offset/limit filtering to the output of a stage. It is
// consulted at every emission point, so the stage never materializes more
// output than the limit requires, no matter which code path produced the
// row.
type emitHelper struct {
	output RowReceiver

	// offset is the number of leading rows that are suppressed.
	offset uint64
	// maxRowIdx is the row count after which we can stop (offset + limit),
	// or MaxUint64 if there is no limit.
	maxRowIdx uint64

	// rowIdx counts the rows passed through emitRow, suppressed or not.
	rowIdx uint64
}

func (h *emitHelper) init(limit, offset int64, output RowReceiver) error {
	if output == nil {
		return errors.AssertionFailedf("no output receiver")
	}
	if limit < NoLimit {
		return errors.Errorf("invalid limit %d", limit)
	}
	if offset < 0 {
		return errors.Errorf("invalid offset %d", offset)
	}
	h.output = output
	h.offset = uint64(offset)
	if limit == NoLimit || uint64(limit) >= math.MaxUint64-h.offset {
		h.maxRowIdx = math.MaxUint64
	} else {
		h.maxRowIdx = h.offset + uint64(limit)
	}
	return nil
}

// emitRow sends a row through the offset/limit filter. Returns false once
// the caller should stop producing rows, either because the limit has been
// reached or because the output needs no more rows.
func (h *emitHelper) emitRow(ctx context.Context, row sqlbase.Row) bool {
	if h.rowIdx >= h.maxRowIdx {
		return false
	}
	h.rowIdx++
	if h.rowIdx <= h.offset {
		// Suppress the row; it still counts toward maxRowIdx.
		return h.rowIdx < h.maxRowIdx
	}
	if !h.output.Push(row) {
		log.VEventf(ctx, 1, "no more rows required")
		return false
	}
	return h.rowIdx < h.maxRowIdx
}
