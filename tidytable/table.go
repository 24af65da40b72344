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

import "fmt"

// Table is an ordered collection of named, typed columns of equal length.
// Tables are immutable: transforms return new tables and never modify their
// receiver. Row order is meaningful only for display; aggregation is
// order-independent.
type Table struct {
	schema Schema
	cols   [][]Value
	nrows  int
}

// Row maps column names to cell values. Filter predicates and Mutate
// functions receive rows in this form.
type Row map[string]Value

// New builds a table from a schema and one value slice per schema field.
// Returns ErrRowCountMismatch if column lengths differ, and ErrTypeMismatch
// if any cell disagrees with its column's declared type.
func New(schema Schema, columns ...[]Value) (*Table, error) {
	if len(columns) != schema.NumFields() {
		return nil, fmt.Errorf("%w: schema has %d fields, got %d columns",
			ErrRowCountMismatch, schema.NumFields(), len(columns))
	}

	nrows := 0
	if len(columns) > 0 {
		nrows = len(columns[0])
	}

	cols := make([][]Value, len(columns))
	for i, col := range columns {
		field := schema.Field(i)
		if len(col) != nrows {
			return nil, fmt.Errorf("%w: column %q has %d values, want %d",
				ErrRowCountMismatch, field.Name, len(col), nrows)
		}
		for r, v := range col {
			if v.IsNull {
				if v.Type != field.Type {
					return nil, fmt.Errorf("%w: null of type %s in %s column %q (row %d)",
						ErrTypeMismatch, v.Type, field.Type, field.Name, r)
				}
				continue
			}
			if v.Type != field.Type {
				return nil, fmt.Errorf("%w: %s value in %s column %q (row %d)",
					ErrTypeMismatch, v.Type, field.Type, field.Name, r)
			}
			if err := checkRaw(v.Raw, field.Type); err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", field.Name, r, err)
			}
		}
		cols[i] = append([]Value(nil), col...)
	}

	return &Table{schema: schema, cols: cols, nrows: nrows}, nil
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int { return t.nrows }

// NumCols returns the number of columns in the table.
func (t *Table) NumCols() int { return t.schema.NumFields() }

// Schema returns the table's schema.
func (t *Table) Schema() Schema { return t.schema }

// ColumnNames returns the ordered column names.
func (t *Table) ColumnNames() []string { return t.schema.Names() }

// Column returns a copy of the named column's values.
// Returns ErrUnknownColumn if the name is not in the schema.
func (t *Table) Column(name string) ([]Value, error) {
	i, err := t.schema.Index(name)
	if err != nil {
		return nil, err
	}
	return append([]Value(nil), t.cols[i]...), nil
}

// Cell returns the value at the given row in the named column.
// Returns ErrInvalidRow if row is out of range and ErrUnknownColumn if the
// column is not in the schema.
func (t *Table) Cell(row int, name string) (Value, error) {
	if row < 0 || row >= t.nrows {
		return Value{}, fmt.Errorf("%w: %d (table has %d rows)", ErrInvalidRow, row, t.nrows)
	}
	i, err := t.schema.Index(name)
	if err != nil {
		return Value{}, err
	}
	return t.cols[i][row], nil
}

// Row returns all values of the given row keyed by column name.
// Returns ErrInvalidRow if row is out of range.
func (t *Table) Row(row int) (Row, error) {
	if row < 0 || row >= t.nrows {
		return nil, fmt.Errorf("%w: %d (table has %d rows)", ErrInvalidRow, row, t.nrows)
	}
	out := make(Row, t.schema.NumFields())
	for i, f := range t.schema.fields {
		out[f.Name] = t.cols[i][row]
	}
	return out, nil
}

// Equal reports whether two tables hold the same schema and cell contents
// in the same row and column order.
func (t *Table) Equal(o *Table) bool {
	if t.nrows != o.nrows || t.schema.NumFields() != o.schema.NumFields() {
		return false
	}
	for i := range t.schema.fields {
		if t.schema.fields[i] != o.schema.fields[i] {
			return false
		}
		for r := 0; r < t.nrows; r++ {
			if !t.cols[i][r].Equal(o.cols[i][r]) {
				return false
			}
		}
	}
	return true
}

// column returns the backing slice without copying. Callers must not modify it.
func (t *Table) column(i int) []Value { return t.cols[i] }

// takeRows builds a new table containing the given row indices of t, in order.
// Shared by Filter, Head, SortBy and Distinct.
func (t *Table) takeRows(indices []int) *Table {
	cols := make([][]Value, t.schema.NumFields())
	for i := range t.cols {
		col := make([]Value, len(indices))
		for j, r := range indices {
			col[j] = t.cols[i][r]
		}
		cols[i] = col
	}
	return &Table{schema: t.schema, cols: cols, nrows: len(indices)}
}
