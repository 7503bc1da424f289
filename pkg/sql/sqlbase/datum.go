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
	"fmt"
	"math"
	"unsafe"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// ColumnType describes the type of a single column in a row schema.
type ColumnType int8

const (
	TypeInt ColumnType = iota
	TypeFloat
	TypeString
	TypeBool
	TypeDecimal
)

func (t ColumnType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeDecimal:
		return "decimal"
	default:
		return fmt.Sprintf("invalid-type(%d)", int8(t))
	}
}

// SafeValue implements the redact.SafeValue interface.
func (ColumnType) SafeValue() {}

var _ redact.SafeValue = TypeInt

// Datum is a single value in a Row. Datums have no intrinsic ordering across
// types: Compare is only defined between two datums of the same type (or
// against DNull) and panics otherwise, as a mismatch always indicates a
// schema violation upstream.
type Datum interface {
	// Compare returns -1 if the receiver sorts before rhs, +1 if it sorts
	// after, and 0 if the two are equal. NULL sorts before every non-NULL
	// value.
	Compare(rhs Datum) int
	// Size returns the memory footprint of the datum in bytes.
	Size() uintptr
	fmt.Stringer
}

func panicTypeMismatch(lhs, rhs Datum) {
	panic(errors.AssertionFailedf("cannot compare %T to %T", lhs, rhs))
}

// DInt is an int64 datum.
type DInt int64

// Compare implements the Datum interface.
func (d DInt) Compare(rhs Datum) int {
	if rhs == DNull {
		return 1
	}
	v, ok := rhs.(DInt)
	if !ok {
		panicTypeMismatch(d, rhs)
	}
	switch {
	case d < v:
		return -1
	case d > v:
		return 1
	default:
		return 0
	}
}

// Size implements the Datum interface.
func (d DInt) Size() uintptr { return unsafe.Sizeof(d) }

func (d DInt) String() string { return fmt.Sprintf("%d", int64(d)) }

// DFloat is a float64 datum. NaN sorts before every other value, mirroring
// the ordering used for floating point columns elsewhere in the engine.
type DFloat float64

// Compare implements the Datum interface.
func (d DFloat) Compare(rhs Datum) int {
	if rhs == DNull {
		return 1
	}
	v, ok := rhs.(DFloat)
	if !ok {
		panicTypeMismatch(d, rhs)
	}
	l, r := float64(d), float64(v)
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	case l == r:
		return 0
	}
	if math.IsNaN(l) {
		if math.IsNaN(r) {
			return 0
		}
		return -1
	}
	return 1
}

// Size implements the Datum interface.
func (d DFloat) Size() uintptr { return unsafe.Sizeof(d) }

func (d DFloat) String() string { return fmt.Sprintf("%g", float64(d)) }

// DString is a string datum.
type DString string

// Compare implements the Datum interface.
func (d DString) Compare(rhs Datum) int {
	if rhs == DNull {
		return 1
	}
	v, ok := rhs.(DString)
	if !ok {
		panicTypeMismatch(d, rhs)
	}
	switch {
	case d < v:
		return -1
	case d > v:
		return 1
	default:
		return 0
	}
}

// Size implements the Datum interface.
func (d DString) Size() uintptr { return unsafe.Sizeof(d) + uintptr(len(d)) }

func (d DString) String() string { return string(d) }

// DBool is a boolean datum; false sorts before true.
type DBool bool

// Compare implements the Datum interface.
func (d DBool) Compare(rhs Datum) int {
	if rhs == DNull {
		return 1
	}
	v, ok := rhs.(DBool)
	if !ok {
		panicTypeMismatch(d, rhs)
	}
	switch {
	case !bool(d) && bool(v):
		return -1
	case bool(d) && !bool(v):
		return 1
	default:
		return 0
	}
}

// Size implements the Datum interface.
func (d DBool) Size() uintptr { return unsafe.Sizeof(d) }

func (d DBool) String() string { return fmt.Sprintf("%t", bool(d)) }

// DDecimal is an arbitrary-precision decimal datum.
type DDecimal struct {
	apd.Decimal
}

// NewDDecimal parses s as a decimal; the empty string and malformed input
// are setup errors, never silently coerced.
func NewDDecimal(s string) (*DDecimal, error) {
	d := &DDecimal{}
	if _, _, err := d.SetString(s); err != nil {
		return nil, errors.Wrapf(err, "could not parse %q as decimal", s)
	}
	return d, nil
}

// Compare implements the Datum interface.
func (d *DDecimal) Compare(rhs Datum) int {
	if rhs == DNull {
		return 1
	}
	v, ok := rhs.(*DDecimal)
	if !ok {
		panicTypeMismatch(d, rhs)
	}
	return d.Decimal.Cmp(&v.Decimal)
}

// Size implements the Datum interface.
func (d *DDecimal) Size() uintptr { return d.Decimal.Size() }

func (d *DDecimal) String() string { return d.Decimal.String() }

type dNull struct{}

// DNull is the NULL datum. It sorts before every non-NULL datum.
var DNull Datum = dNull{}

// Compare implements the Datum interface.
func (dNull) Compare(rhs Datum) int {
	if rhs == DNull {
		return 0
	}
	return -1
}

// Size implements the Datum interface.
func (d dNull) Size() uintptr { return unsafe.Sizeof(d) }

func (dNull) String() string { return "NULL" }
