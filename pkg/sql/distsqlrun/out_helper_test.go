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
	"testing"

	"github.com/keldadb/kelda/pkg/sql/sqlbase"
	"github.com/stretchr/testify/require"
)

func TestEmitHelper(t *testing.T) {
	testCases := []struct {
		name     string
		limit    int64
		offset   int64
		pushed   int // rows fed to emitRow
		expected sqlbase.Rows
		// stopAt, if positive, is the 1-based input row on which emitRow
		// must report false; 0 means it never does.
		stopAt int
	}{
		{
			name:     "unbounded",
			limit:    NoLimit,
			pushed:   4,
			expected: intRows(0, 1, 2, 3),
		},
		{
			name:     "offset only",
			limit:    NoLimit,
			offset:   2,
			pushed:   4,
			expected: intRows(2, 3),
		},
		{
			name:     "limit only",
			limit:    2,
			pushed:   4,
			expected: intRows(0, 1),
			stopAt:   2,
		},
		{
			name:     "offset and limit",
			limit:    2,
			offset:   1,
			pushed:   5,
			expected: intRows(1, 2),
			stopAt:   3,
		},
		{
			name:   "limit zero",
			limit:  0,
			pushed: 3,
			stopAt: 1,
		},
		{
			name:   "limit zero with offset",
			limit:  0,
			offset: 2,
			pushed: 4,
			stopAt: 2,
		},
	}
	ctx := context.Background()
	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			out := NewRowBuffer()
			var h emitHelper
			require.NoError(t, h.init(c.limit, c.offset, out))
			stoppedAt := 0
			for i := 0; i < c.pushed; i++ {
				if !h.emitRow(ctx, sqlbase.Row{sqlbase.DInt(int64(i))}) {
					stoppedAt = i + 1
					break
				}
			}
			require.Equal(t, c.stopAt, stoppedAt)
			require.Equal(t, c.expected.String(), out.Rows.String())
		})
	}
}

func TestEmitHelperInitErrors(t *testing.T) {
	var h emitHelper
	require.Error(t, h.init(NoLimit, 0, nil))
	require.Error(t, h.init(-2, 0, NewRowBuffer()))
	require.Error(t, h.init(NoLimit, -1, NewRowBuffer()))
}
