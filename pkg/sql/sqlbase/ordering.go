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
	"bytes"
	"fmt"

	"github.com/cockroachdb/redact"
)

// Direction is the direction of a column in an ordering.
type Direction int8

const (
	// Ascending sorts smaller values first.
	Ascending Direction = iota
	// Descending sorts larger values first.
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return fmt.Sprintf("invalid-direction(%d)", int8(d))
	}
}

// SafeValue implements the redact.SafeValue interface.
func (Direction) SafeValue() {}

var _ redact.SafeValue = Ascending

// ColumnOrderInfo describes a column (as an index into a Row) and the
// direction it is ordered by.
type ColumnOrderInfo struct {
	ColIdx    int
	Direction Direction
}

// ColumnOrdering is an ordered list of (column, direction) pairs. It fully
// determines the relative order of any two rows via Row.Compare: columns are
// compared left to right and the first non-equal column decides. Rows equal
// on all ordering columns compare as ties.
type ColumnOrdering []ColumnOrderInfo

func (ordering ColumnOrdering) String() string {
	var buf bytes.Buffer
	for i, o := range ordering {
		if i > 0 {
			buf.WriteByte(',')
		}
		if o.Direction == Ascending {
			buf.WriteByte('+')
		} else {
			buf.WriteByte('-')
		}
		fmt.Fprintf(&buf, "%d", o.ColIdx)
	}
	return buf.String()
}
