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

package sqlbase

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRowCompare(t *testing.T) {
	asc := Ascending
	desc := Descending

	row := func(vals ...int64) Row {
		r := make(Row, len(vals))
		for i, v := range vals {
			r[i] = DInt(v)
		}
		return r
	}

	testCases := []struct {
		ordering ColumnOrdering
		lhs, rhs Row
		expected int
	}{
		{
			ordering: ColumnOrdering{{ColIdx: 0, Direction: asc}},
			lhs:      row(1, 9),
			rhs:      row(2, 0),
			expected: -1,
		},
		{
			ordering: ColumnOrdering{{ColIdx: 0, Direction: desc}},
			lhs:      row(1, 9),
			rhs:      row(2, 0),
			expected: 1,
		},
		{
			// First ordering column decides; the second is never reached.
			ordering: ColumnOrdering{{ColIdx: 0, Direction: asc}, {ColIdx: 1, Direction: asc}},
			lhs:      row(1, 9),
			rhs:      row(2, 0),
			expected: -1,
		},
		{
			ordering: ColumnOrdering{{ColIdx: 0, Direction: asc}, {ColIdx: 1, Direction: desc}},
			lhs:      row(1, 0),
			rhs:      row(1, 9),
			expected: 1,
		},
		{
			// Equal on all ordering columns is a tie, even though the rows
			// differ in a non-ordering column.
			ordering: ColumnOrdering{{ColIdx: 0, Direction: asc}},
			lhs:      row(1, 5),
			rhs:      row(1, 6),
			expected: 0,
		},
		{
			ordering: ColumnOrdering{{ColIdx: 1, Direction: asc}},
			lhs:      Row{DInt(7), DNull},
			rhs:      Row{DInt(7), DString("x")},
			expected: -1,
		},
	}
	for i, c := range testCases {
		require.Equalf(t, c.expected, c.lhs.Compare(c.ordering, c.rhs),
			"case %d: %s vs %s under %s", i, c.lhs, c.rhs, c.ordering)
	}
}

func TestRowCompareLengthMismatchPanics(t *testing.T) {
	ordering := ColumnOrdering{{ColIdx: 0, Direction: Ascending}}
	require.Panics(t, func() {
		Row{DInt(1)}.Compare(ordering, Row{DInt(1), DInt(2)})
	})
}

func TestRowString(t *testing.T) {
	r := Row{DInt(1), DString("a"), DNull, DBool(true)}
	require.Equal(t, "[1 a NULL true]", r.String())

	rows := Rows{{DInt(1)}, {DInt(2)}}
	require.Equal(t, "[[1] [2]]", rows.String())
}

func TestOrderingString(t *testing.T) {
	ordering := ColumnOrdering{
		{ColIdx: 0, Direction: Ascending},
		{ColIdx: 2, Direction: Descending},
	}
	require.Equal(t, "+0,-2", ordering.String())
}
