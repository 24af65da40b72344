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

package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/magpierre/tidytable/tidytable"
)

// CompOp represents a comparison operator.
type CompOp int

const (
	OpEqual CompOp = iota
	OpNotEqual
	OpGreater
	OpLess
	OpGreaterEqual
	OpLessEqual
	OpContains
)

// String returns the operator's surface syntax.
func (op CompOp) String() string {
	switch op {
	case OpEqual:
		return "="
	case OpNotEqual:
		return "!="
	case OpGreater:
		return ">"
	case OpLess:
		return "<"
	case OpGreaterEqual:
		return ">="
	case OpLessEqual:
		return "<="
	case OpContains:
		return "~"
	default:
		return fmt.Sprintf("unknown(%d)", op)
	}
}

// Comparison filters rows by comparing one column against a literal.
// Ordering operators compare numerically when both sides parse as numbers
// and fall back to case-insensitive lexicographic comparison otherwise.
// Absent cells never match.
type Comparison struct {
	// Column is the column to compare.
	Column string
	// Op is the comparison operator.
	Op CompOp
	// Value is the literal right-hand side.
	Value string
}

// Evaluate implements the Filter interface.
func (c *Comparison) Evaluate(row []tidytable.Value, columnNames []string) (bool, error) {
	idx := -1
	for i, name := range columnNames {
		if strings.EqualFold(name, c.Column) {
			idx = i
			break
		}
	}
	if idx < 0 || idx >= len(row) {
		return false, fmt.Errorf("%w: %q", tidytable.ErrUnknownColumn, c.Column)
	}

	cell := row[idx]
	if cell.IsNull {
		return false, nil
	}
	cellValue := cell.Formatted

	switch c.Op {
	case OpEqual:
		return strings.EqualFold(cellValue, c.Value), nil
	case OpNotEqual:
		return !strings.EqualFold(cellValue, c.Value), nil
	case OpContains:
		return strings.Contains(strings.ToLower(cellValue), strings.ToLower(c.Value)), nil
	case OpGreater, OpLess, OpGreaterEqual, OpLessEqual:
		return compareOrdered(cellValue, c.Value, c.Op), nil
	default:
		return false, fmt.Errorf("%w: operator %d", tidytable.ErrInvalidFilter, c.Op)
	}
}

// Description implements the Filter interface.
func (c *Comparison) Description() string {
	return fmt.Sprintf("%s %s %s", c.Column, c.Op, c.Value)
}

// compareOrdered compares numerically when both sides parse as floats,
// lexicographically otherwise.
func compareOrdered(cellValue, compareValue string, op CompOp) bool {
	cell, err1 := strconv.ParseFloat(strings.TrimSpace(cellValue), 64)
	compare, err2 := strconv.ParseFloat(strings.TrimSpace(compareValue), 64)

	if err1 != nil || err2 != nil {
		return compareString(cellValue, compareValue, op)
	}

	switch op {
	case OpGreater:
		return cell > compare
	case OpLess:
		return cell < compare
	case OpGreaterEqual:
		return cell >= compare
	case OpLessEqual:
		return cell <= compare
	}
	return false
}

// compareString compares two strings lexicographically, case-insensitive.
func compareString(cellValue, compareValue string, op CompOp) bool {
	cmp := strings.Compare(strings.ToLower(cellValue), strings.ToLower(compareValue))

	switch op {
	case OpGreater:
		return cmp > 0
	case OpLess:
		return cmp < 0
	case OpGreaterEqual:
		return cmp >= 0
	case OpLessEqual:
		return cmp <= 0
	}
	return false
}

// ContainsAny matches rows where any column's formatted value contains the
// search term, case-insensitive. Used for bare terms with no column name.
type ContainsAny struct {
	// Value is the search term.
	Value string
}

// Evaluate implements the Filter interface.
func (c *ContainsAny) Evaluate(row []tidytable.Value, columnNames []string) (bool, error) {
	term := strings.ToLower(c.Value)
	for _, cell := range row {
		if cell.IsNull {
			continue
		}
		if strings.Contains(strings.ToLower(cell.Formatted), term) {
			return true, nil
		}
	}
	return false, nil
}

// Description implements the Filter interface.
func (c *ContainsAny) Description() string {
	return fmt.Sprintf("any column ~ %s", c.Value)
}
