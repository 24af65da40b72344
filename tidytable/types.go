// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tidytable provides an immutable, schema-checked tabular data
// structure with reshape (pivot wider/longer) and grouped-aggregation
// (filter, group by, summarize) transforms. Every transform produces a
// new Table; input tables are never modified.
package tidytable

import (
	"fmt"
	"strconv"
	"time"
)

// DataType represents the declared type of a column.
type DataType int

const (
	// TypeString represents string data.
	TypeString DataType = iota
	// TypeInt represents integer data (stored as int64).
	TypeInt
	// TypeFloat represents floating-point data (stored as float64).
	TypeFloat
	// TypeBool represents boolean data.
	TypeBool
	// TypeTimestamp represents timestamp data (stored as time.Time).
	TypeTimestamp
)

// String returns the string representation of a DataType.
func (dt DataType) String() string {
	switch dt {
	case TypeString:
		return "String"
	case TypeInt:
		return "Int"
	case TypeFloat:
		return "Float"
	case TypeBool:
		return "Bool"
	case TypeTimestamp:
		return "Timestamp"
	default:
		return fmt.Sprintf("Unknown(%d)", dt)
	}
}

// Numeric reports whether values of this type can feed a numeric reduction.
func (dt DataType) Numeric() bool {
	return dt == TypeInt || dt == TypeFloat
}

// Value is a typed container for cell values.
// It holds the raw value, type information, and a pre-formatted string for display.
type Value struct {
	// Raw holds the underlying value.
	// TypeString → string, TypeInt → int64, TypeFloat → float64,
	// TypeBool → bool, TypeTimestamp → time.Time. Nil when IsNull is set.
	Raw interface{}

	// Type indicates the data type of this value.
	Type DataType

	// IsNull indicates whether this value is absent.
	// An absent cell still occupies its row position; columns are never
	// truncated to express missingness.
	IsNull bool

	// Formatted is a pre-formatted string representation for display.
	Formatted string
}

// NewValue creates a new Value from a raw value and type.
// Integer raws of any width are normalized to int64, float32 to float64.
// A raw value whose kind does not match dataType yields a Value that fails
// table construction with ErrTypeMismatch.
func NewValue(raw interface{}, dataType DataType) Value {
	if raw == nil {
		return NewNullValue(dataType)
	}

	raw = normalizeRaw(raw)
	return Value{
		Raw:       raw,
		Type:      dataType,
		IsNull:    false,
		Formatted: formatRaw(raw, dataType),
	}
}

// ValueOf creates a Value from a raw Go value, inferring its type.
// Integer kinds normalize to int64 and become TypeInt, float kinds to
// float64 and TypeFloat; string, bool and time.Time map onto their types.
// Any other kind fails with ErrTypeMismatch; nil is rejected because it
// names no type — use NewNullValue for absent cells.
func ValueOf(raw interface{}) (Value, error) {
	if raw == nil {
		return Value{}, fmt.Errorf("%w: cannot infer a type for nil", ErrTypeMismatch)
	}

	raw = normalizeRaw(raw)
	var dataType DataType
	switch raw.(type) {
	case string:
		dataType = TypeString
	case int64:
		dataType = TypeInt
	case float64:
		dataType = TypeFloat
	case bool:
		dataType = TypeBool
	case time.Time:
		dataType = TypeTimestamp
	default:
		return Value{}, fmt.Errorf("%w: unsupported value type %T", ErrTypeMismatch, raw)
	}
	return NewValue(raw, dataType), nil
}

// NewNullValue creates an absent value of the specified type.
func NewNullValue(dataType DataType) Value {
	return Value{
		Raw:       nil,
		Type:      dataType,
		IsNull:    true,
		Formatted: "",
	}
}

// String creates a TypeString value.
func String(s string) Value { return NewValue(s, TypeString) }

// Int creates a TypeInt value.
func Int(i int64) Value { return NewValue(i, TypeInt) }

// Float creates a TypeFloat value.
func Float(f float64) Value { return NewValue(f, TypeFloat) }

// Bool creates a TypeBool value.
func Bool(b bool) Value { return NewValue(b, TypeBool) }

// Timestamp creates a TypeTimestamp value.
func Timestamp(t time.Time) Value { return NewValue(t, TypeTimestamp) }

// Equal reports whether two values hold the same content.
// Two absent values of the same type are equal regardless of Raw.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}
	if v.IsNull || o.IsNull {
		return v.IsNull == o.IsNull
	}
	if v.Type == TypeTimestamp {
		return v.Raw.(time.Time).Equal(o.Raw.(time.Time))
	}
	return v.Raw == o.Raw
}

// Float64 returns the value as a float64 for numeric reductions.
// Returns ErrTypeMismatch for non-numeric types and ErrEmptyData for
// absent values.
func (v Value) Float64() (float64, error) {
	if v.IsNull {
		return 0, fmt.Errorf("%w: absent value has no numeric form", ErrEmptyData)
	}
	switch v.Type {
	case TypeInt:
		return float64(v.Raw.(int64)), nil
	case TypeFloat:
		return v.Raw.(float64), nil
	default:
		return 0, fmt.Errorf("%w: %s value is not numeric", ErrTypeMismatch, v.Type)
	}
}

// normalizeRaw collapses Go's numeric widths onto the canonical raw types.
func normalizeRaw(raw interface{}) interface{} {
	switch r := raw.(type) {
	case int:
		return int64(r)
	case int8:
		return int64(r)
	case int16:
		return int64(r)
	case int32:
		return int64(r)
	case uint:
		return int64(r)
	case uint8:
		return int64(r)
	case uint16:
		return int64(r)
	case uint32:
		return int64(r)
	case uint64:
		return int64(r)
	case float32:
		return float64(r)
	default:
		return raw
	}
}

// checkRaw validates that a raw value matches the declared type.
func checkRaw(raw interface{}, dataType DataType) error {
	var ok bool
	switch dataType {
	case TypeString:
		_, ok = raw.(string)
	case TypeInt:
		_, ok = raw.(int64)
	case TypeFloat:
		_, ok = raw.(float64)
	case TypeBool:
		_, ok = raw.(bool)
	case TypeTimestamp:
		_, ok = raw.(time.Time)
	}
	if !ok {
		return fmt.Errorf("%w: %T value in %s column", ErrTypeMismatch, raw, dataType)
	}
	return nil
}

// formatRaw converts a raw value to a formatted string.
func formatRaw(raw interface{}, dataType DataType) string {
	if raw == nil {
		return ""
	}

	switch dataType {
	case TypeString:
		if s, ok := raw.(string); ok {
			return s
		}
	case TypeInt:
		if i, ok := raw.(int64); ok {
			return strconv.FormatInt(i, 10)
		}
	case TypeFloat:
		if f, ok := raw.(float64); ok {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
	case TypeBool:
		if b, ok := raw.(bool); ok {
			return strconv.FormatBool(b)
		}
	case TypeTimestamp:
		if t, ok := raw.(time.Time); ok {
			return t.Format(time.RFC3339)
		}
	}
	return fmt.Sprintf("%v", raw)
}

// SortDirection specifies the direction of sorting.
type SortDirection int

const (
	// SortNone indicates no sorting.
	SortNone SortDirection = iota
	// SortAscending indicates ascending sort order.
	SortAscending
	// SortDescending indicates descending sort order.
	SortDescending
)

// String returns the string representation of a SortDirection.
func (sd SortDirection) String() string {
	switch sd {
	case SortNone:
		return "None"
	case SortAscending:
		return "Ascending"
	case SortDescending:
		return "Descending"
	default:
		return fmt.Sprintf("Unknown(%d)", sd)
	}
}
