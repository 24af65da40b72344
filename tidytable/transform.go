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

package tidytable

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Select returns a table containing only the named columns, in the order
// given. Returns ErrUnknownColumn if a name is not in the schema.
func (t *Table) Select(names ...string) (*Table, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no columns selected", ErrEmptyData)
	}
	fields := make([]Field, len(names))
	cols := make([][]Value, len(names))
	for i, name := range names {
		idx, err := t.schema.Index(name)
		if err != nil {
			return nil, err
		}
		fields[i] = t.schema.Field(idx)
		cols[i] = t.cols[idx]
	}
	schema, err := NewSchema(fields...)
	if err != nil {
		return nil, err
	}
	return &Table{schema: schema, cols: cols, nrows: t.nrows}, nil
}

// Drop returns a table without the named columns.
// Returns ErrUnknownColumn if a name is not in the schema and ErrEmptyData
// if nothing would remain.
func (t *Table) Drop(names ...string) (*Table, error) {
	dropped := make(map[int]bool, len(names))
	for _, name := range names {
		idx, err := t.schema.Index(name)
		if err != nil {
			return nil, err
		}
		dropped[idx] = true
	}
	var keep []string
	for i, f := range t.schema.fields {
		if !dropped[i] {
			keep = append(keep, f.Name)
		}
	}
	if len(keep) == 0 {
		return nil, fmt.Errorf("%w: dropping every column", ErrEmptyData)
	}
	return t.Select(keep...)
}

// Head returns a table with at most n leading rows.
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n >= t.nrows {
		return t
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return t.takeRows(indices)
}

// SortBy returns a table with rows ordered by the named column. The sort is
// stable; absent values sort before present ones. SortNone returns the table
// unchanged.
func (t *Table) SortBy(name string, dir SortDirection) (*Table, error) {
	if dir == SortNone {
		return t, nil
	}
	idx, err := t.schema.Index(name)
	if err != nil {
		return nil, err
	}
	col := t.cols[idx]

	indices := make([]int, t.nrows)
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		if dir == SortDescending {
			return valueLess(col[indices[b]], col[indices[a]])
		}
		return valueLess(col[indices[a]], col[indices[b]])
	})
	return t.takeRows(indices), nil
}

// valueLess orders two values of the same column. Absent sorts first.
func valueLess(a, b Value) bool {
	if a.IsNull || b.IsNull {
		return a.IsNull && !b.IsNull
	}
	switch a.Type {
	case TypeInt:
		return a.Raw.(int64) < b.Raw.(int64)
	case TypeFloat:
		return a.Raw.(float64) < b.Raw.(float64)
	case TypeBool:
		return !a.Raw.(bool) && b.Raw.(bool)
	case TypeTimestamp:
		return a.Raw.(time.Time).Before(b.Raw.(time.Time))
	default:
		return strings.Compare(a.Formatted, b.Formatted) < 0
	}
}

// Mutate returns a table extended with a computed column. fn receives each
// row in turn and must return a value of the declared type.
// Returns ErrDuplicateColumn if the name already exists.
func (t *Table) Mutate(name string, typ DataType, fn func(Row) (Value, error)) (*Table, error) {
	if t.schema.Has(name) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
	}

	col := make([]Value, t.nrows)
	for r := 0; r < t.nrows; r++ {
		row, err := t.Row(r)
		if err != nil {
			return nil, err
		}
		v, err := fn(row)
		if err != nil {
			return nil, fmt.Errorf("mutate %q row %d: %w", name, r, err)
		}
		if !v.IsNull && v.Type != typ {
			return nil, fmt.Errorf("%w: mutate %q produced %s, want %s",
				ErrTypeMismatch, name, v.Type, typ)
		}
		col[r] = v
	}

	fields := append(t.schema.Fields(), Field{Name: name, Type: typ})
	schema, err := NewSchema(fields...)
	if err != nil {
		return nil, err
	}
	cols := make([][]Value, len(fields))
	copy(cols, t.cols)
	cols[len(fields)-1] = col
	return &Table{schema: schema, cols: cols, nrows: t.nrows}, nil
}

// Distinct returns a table keeping the first row of each distinct combination
// of the named columns (or of all columns when none are named).
func (t *Table) Distinct(names ...string) (*Table, error) {
	if len(names) == 0 {
		names = t.schema.Names()
	}
	idx := make([]int, len(names))
	for i, name := range names {
		j, err := t.schema.Index(name)
		if err != nil {
			return nil, err
		}
		idx[i] = j
	}

	seen := make(map[string]bool)
	var indices []int
	key := make([]Value, len(idx))
	for r := 0; r < t.nrows; r++ {
		for i, k := range idx {
			key[i] = t.cols[k][r]
		}
		kh := hashValues(key)
		if !seen[kh] {
			seen[kh] = true
			indices = append(indices, r)
		}
	}
	return t.takeRows(indices), nil
}
