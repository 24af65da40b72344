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

// Package slice builds tidytable tables from in-memory Go values.
package slice

import (
	"fmt"
	"sort"
	"time"

	"github.com/magpierre/tidytable/tidytable"
)

// NewFromMaps builds a table from a slice of records, one map per row.
// Columns are the union of all keys in sorted order; a key missing from a
// record, or mapped to nil, becomes an absent cell. Each column's type is
// taken from its first non-nil value.
func NewFromMaps(records []map[string]interface{}) (*tidytable.Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records", tidytable.ErrEmptyData)
	}

	seen := make(map[string]bool)
	var names []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: records have no keys", tidytable.ErrEmptyData)
	}

	fields := make([]tidytable.Field, len(names))
	for i, name := range names {
		typ, err := columnType(records, name)
		if err != nil {
			return nil, err
		}
		fields[i] = tidytable.Field{Name: name, Type: typ}
	}
	schema, err := tidytable.NewSchema(fields...)
	if err != nil {
		return nil, err
	}

	cols := make([][]tidytable.Value, len(names))
	for c, name := range names {
		col := make([]tidytable.Value, len(records))
		for r, rec := range records {
			raw, ok := rec[name]
			if !ok || raw == nil {
				col[r] = tidytable.NewNullValue(fields[c].Type)
				continue
			}
			v, err := tidytable.ValueOf(raw)
			if err != nil {
				return nil, fmt.Errorf("record %d key %q: %w", r, name, err)
			}
			if v.Type != fields[c].Type {
				return nil, fmt.Errorf("%w: record %d key %q is %s, expected %s",
					tidytable.ErrTypeMismatch, r, name, v.Type, fields[c].Type)
			}
			col[r] = v
		}
		cols[c] = col
	}

	return tidytable.New(schema, cols...)
}

// columnType finds the first non-nil value under name and returns its type.
// A key that is nil or missing everywhere becomes a string column.
func columnType(records []map[string]interface{}, name string) (tidytable.DataType, error) {
	for _, rec := range records {
		raw, ok := rec[name]
		if !ok || raw == nil {
			continue
		}
		v, err := tidytable.ValueOf(raw)
		if err != nil {
			return 0, fmt.Errorf("key %q: %w", name, err)
		}
		return v.Type, nil
	}
	return tidytable.TypeString, nil
}

// NewFromRows builds a table from row-major data against an explicit schema.
// A nil cell becomes an absent value.
func NewFromRows(schema tidytable.Schema, rows [][]interface{}) (*tidytable.Table, error) {
	cols := make([][]tidytable.Value, schema.NumFields())
	for c := range cols {
		cols[c] = make([]tidytable.Value, len(rows))
	}

	for r, row := range rows {
		if len(row) != schema.NumFields() {
			return nil, fmt.Errorf("%w: row %d has %d cells, schema has %d columns",
				tidytable.ErrInvalidRow, r, len(row), schema.NumFields())
		}
		for c, raw := range row {
			typ := schema.Field(c).Type
			if raw == nil {
				cols[c][r] = tidytable.NewNullValue(typ)
				continue
			}
			v, err := tidytable.ValueOf(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", r, schema.Field(c).Name, err)
			}
			if v.Type != typ {
				return nil, fmt.Errorf("%w: row %d column %q is %s, expected %s",
					tidytable.ErrTypeMismatch, r, schema.Field(c).Name, v.Type, typ)
			}
			cols[c][r] = v
		}
	}

	return tidytable.New(schema, cols...)
}

// Strings extracts a string column as a plain slice. Absent cells become "".
func Strings(t *tidytable.Table, name string) ([]string, error) {
	typ, err := t.Schema().Type(name)
	if err != nil {
		return nil, err
	}
	if typ != tidytable.TypeString {
		return nil, fmt.Errorf("%w: column %q is %s, expected string",
			tidytable.ErrTypeMismatch, name, typ)
	}
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(col))
	for i, v := range col {
		if v.IsNull {
			continue
		}
		out[i] = v.Raw.(string)
	}
	return out, nil
}

// Float64s extracts a numeric column as a plain slice. Absent cells are
// skipped, so the result may be shorter than the table.
func Float64s(t *tidytable.Table, name string) ([]float64, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(col))
	for _, v := range col {
		if v.IsNull {
			continue
		}
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Times extracts a timestamp column as a plain slice. Absent cells become
// the zero time.
func Times(t *tidytable.Table, name string) ([]time.Time, error) {
	typ, err := t.Schema().Type(name)
	if err != nil {
		return nil, err
	}
	if typ != tidytable.TypeTimestamp {
		return nil, fmt.Errorf("%w: column %q is %s, expected timestamp",
			tidytable.ErrTypeMismatch, name, typ)
	}
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, len(col))
	for i, v := range col {
		if v.IsNull {
			continue
		}
		out[i] = v.Raw.(time.Time)
	}
	return out, nil
}
