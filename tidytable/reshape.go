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
	"strings"
)

// PivotWider spreads rows into columns. The distinct values of the namesFrom
// column become new column names; the valuesFrom column supplies their cells.
// All remaining columns form the implicit row key: the output has one row per
// distinct key combination, in first-appearance order. A (key, name) pair
// with no matching input row yields an absent cell.
//
// Returns ErrAmbiguousPivot if two input rows share the same (key, name)
// pair; no aggregation is implied by this operation.
func (t *Table) PivotWider(namesFrom, valuesFrom string) (*Table, error) {
	nameIdx, err := t.schema.Index(namesFrom)
	if err != nil {
		return nil, err
	}
	valueIdx, err := t.schema.Index(valuesFrom)
	if err != nil {
		return nil, err
	}
	if nameIdx == valueIdx {
		return nil, fmt.Errorf("%w: names and values both drawn from %q", ErrDuplicateColumn, namesFrom)
	}
	valueType := t.schema.Field(valueIdx).Type

	// Key columns: everything except namesFrom and valuesFrom, schema order.
	var keyIdx []int
	for i := range t.schema.fields {
		if i != nameIdx && i != valueIdx {
			keyIdx = append(keyIdx, i)
		}
	}

	// Distinct key combinations and namesFrom values, first-appearance order.
	type keyGroup struct {
		key  []Value
		cell map[string]Value
	}
	var (
		keyOrder  []string
		keyGroups = make(map[string]*keyGroup)
		nameOrder []string
		nameSeen  = make(map[string]bool)
	)

	for r := 0; r < t.nrows; r++ {
		nameVal := t.cols[nameIdx][r]
		name := nameVal.Formatted
		if nameVal.IsNull {
			return nil, fmt.Errorf("%w: absent value in names column %q (row %d)",
				ErrEmptyData, namesFrom, r)
		}
		if !nameSeen[name] {
			nameSeen[name] = true
			nameOrder = append(nameOrder, name)
		}

		key := make([]Value, len(keyIdx))
		for i, k := range keyIdx {
			key[i] = t.cols[k][r]
		}
		kh := hashValues(key)
		g, ok := keyGroups[kh]
		if !ok {
			g = &keyGroup{key: key, cell: make(map[string]Value)}
			keyGroups[kh] = g
			keyOrder = append(keyOrder, kh)
		}
		if _, dup := g.cell[name]; dup {
			return nil, fmt.Errorf("%w: %s=%q for key (%s)",
				ErrAmbiguousPivot, namesFrom, name, describeKey(t.schema, keyIdx, key))
		}
		g.cell[name] = t.cols[valueIdx][r]
	}

	// Output schema: key columns then one column per distinct name.
	fields := make([]Field, 0, len(keyIdx)+len(nameOrder))
	for _, k := range keyIdx {
		fields = append(fields, t.schema.Field(k))
	}
	for _, name := range nameOrder {
		fields = append(fields, Field{Name: name, Type: valueType})
	}
	schema, err := NewSchema(fields...)
	if err != nil {
		return nil, err
	}

	cols := make([][]Value, len(fields))
	for i := range cols {
		cols[i] = make([]Value, len(keyOrder))
	}
	for r, kh := range keyOrder {
		g := keyGroups[kh]
		for i := range keyIdx {
			cols[i][r] = g.key[i]
		}
		for j, name := range nameOrder {
			if v, ok := g.cell[name]; ok {
				cols[len(keyIdx)+j][r] = v
			} else {
				cols[len(keyIdx)+j][r] = NewNullValue(valueType)
			}
		}
	}

	return &Table{schema: schema, cols: cols, nrows: len(keyOrder)}, nil
}

// PivotLonger gathers columns into rows. Each input row produces one output
// row per entry of valueColumns: the non-collapsed columns are repeated, the
// namesTo column receives the collapsed column's name and the valuesTo column
// its cell value. Output row count = input rows × len(valueColumns).
//
// The collapsed columns must share a single type; otherwise the gather fails
// with ErrTypeMismatch.
func (t *Table) PivotLonger(valueColumns []string, namesTo, valuesTo string) (*Table, error) {
	if len(valueColumns) == 0 {
		return nil, fmt.Errorf("%w: no columns to gather", ErrEmptyData)
	}
	if namesTo == valuesTo {
		return nil, fmt.Errorf("%w: %q used for both names and values", ErrDuplicateColumn, namesTo)
	}

	collapse := make([]int, len(valueColumns))
	collapseSet := make(map[int]bool, len(valueColumns))
	var valueType DataType
	for i, name := range valueColumns {
		idx, err := t.schema.Index(name)
		if err != nil {
			return nil, err
		}
		if collapseSet[idx] {
			return nil, fmt.Errorf("%w: %q gathered twice", ErrDuplicateColumn, name)
		}
		typ := t.schema.Field(idx).Type
		if i == 0 {
			valueType = typ
		} else if typ != valueType {
			return nil, fmt.Errorf("%w: cannot gather %s column %q with %s columns",
				ErrTypeMismatch, typ, name, valueType)
		}
		collapse[i] = idx
		collapseSet[idx] = true
	}

	// Kept columns retain their schema order.
	var keepIdx []int
	for i := range t.schema.fields {
		if !collapseSet[i] {
			keepIdx = append(keepIdx, i)
		}
	}

	fields := make([]Field, 0, len(keepIdx)+2)
	for _, k := range keepIdx {
		fields = append(fields, t.schema.Field(k))
	}
	fields = append(fields, Field{Name: namesTo, Type: TypeString})
	fields = append(fields, Field{Name: valuesTo, Type: valueType})
	schema, err := NewSchema(fields...)
	if err != nil {
		return nil, err
	}

	nout := t.nrows * len(collapse)
	cols := make([][]Value, len(fields))
	for i := range cols {
		cols[i] = make([]Value, nout)
	}

	out := 0
	for r := 0; r < t.nrows; r++ {
		for ci, c := range collapse {
			for i, k := range keepIdx {
				cols[i][out] = t.cols[k][r]
			}
			cols[len(keepIdx)][out] = String(valueColumns[ci])
			cols[len(keepIdx)+1][out] = t.cols[c][r]
			out++
		}
	}

	return &Table{schema: schema, cols: cols, nrows: nout}, nil
}

// hashValues builds a collision-safe group key from a value tuple.
// Formatted strings are length-prefixed so adjacent values cannot merge;
// absent values get a marker distinct from any formatted string.
func hashValues(values []Value) string {
	var sb strings.Builder
	for _, v := range values {
		if v.IsNull {
			sb.WriteString("\x00n;")
			continue
		}
		fmt.Fprintf(&sb, "%d:%s;", len(v.Formatted), v.Formatted)
	}
	return sb.String()
}

// describeKey renders a key tuple for error messages.
func describeKey(schema Schema, keyIdx []int, key []Value) string {
	parts := make([]string, len(keyIdx))
	for i, k := range keyIdx {
		val := key[i].Formatted
		if key[i].IsNull {
			val = "<null>"
		}
		parts[i] = schema.Field(k).Name + "=" + val
	}
	return strings.Join(parts, ", ")
}
