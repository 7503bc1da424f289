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
	"unsafe"
)

// Row is a fixed-schema tuple of datums. Rows are treated as read-only
// views: nothing in this package mutates a row after it is built.
type Row []Datum

func (r Row) stringToBuf(b *bytes.Buffer) {
	b.WriteString("[")
	for i := range r {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(r[i].String())
	}
	b.WriteString("]")
}

func (r Row) String() string {
	var b bytes.Buffer
	r.stringToBuf(&b)
	return b.String()
}

// Size returns the memory footprint of the row in bytes.
func (r Row) Size() uintptr {
	size := unsafe.Sizeof(r)
	for _, d := range r {
		size += d.Size()
	}
	return size
}

// Compare returns the relative ordering of two rows according to a
// ColumnOrdering:
//
//	-1 if the receiver comes before rhs in the ordering,
//	+1 if the receiver comes after rhs in the ordering,
//	0  if the relative order does not matter, i.e. the two rows have equal
//	   values for every ordering column.
//
// A return value of 0 does not imply that the rows are equal overall; for
// example, rows [1 1 5] and [1 1 6] compare as 0 under the ordering +0,+1.
// Breaking such ties is the caller's concern.
func (r Row) Compare(ordering ColumnOrdering, rhs Row) int {
	if len(r) != len(rhs) {
		panic(fmt.Sprintf("length mismatch: %d lhs, %d rhs\n%s\n%s", len(r), len(rhs), r, rhs))
	}
	for _, c := range ordering {
		cmp := r[c.ColIdx].Compare(rhs[c.ColIdx])
		if cmp != 0 {
			if c.Direction == Descending {
				cmp = -cmp
			}
			return cmp
		}
	}
	return 0
}

// Rows is a slice of rows having the same schema.
type Rows []Row

func (r Rows) String() string {
	var b bytes.Buffer
	b.WriteString("[")
	for i, row := range r {
		if i > 0 {
			b.WriteString(" ")
		}
		row.stringToBuf(&b)
	}
	b.WriteString("]")
	return b.String()
}
