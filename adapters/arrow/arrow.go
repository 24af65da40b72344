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

// Package arrow converts between tidytable tables and Apache Arrow records.
package arrow

import (
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/magpierre/tidytable/tidytable"
)

// FromRecord builds a table from an Arrow record. The record's schema is
// mapped onto tidytable types; integer widths widen to int64, float32 to
// float64, date and timestamp columns to TypeTimestamp. Null entries become
// absent values.
func FromRecord(rec arrow.Record) (*tidytable.Table, error) {
	schema := rec.Schema()
	nrows := int(rec.NumRows())

	fields := make([]tidytable.Field, schema.NumFields())
	cols := make([][]tidytable.Value, schema.NumFields())
	for i := 0; i < schema.NumFields(); i++ {
		field := schema.Field(i)
		typ, err := dataTypeOf(field.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", field.Name, err)
		}
		fields[i] = tidytable.Field{Name: field.Name, Type: typ}

		col := make([]tidytable.Value, nrows)
		arr := rec.Column(i)
		for r := 0; r < nrows; r++ {
			v, err := valueAt(arr, r, typ)
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", field.Name, r, err)
			}
			col[r] = v
		}
		cols[i] = col
	}

	tscheme, err := tidytable.NewSchema(fields...)
	if err != nil {
		return nil, err
	}
	return tidytable.New(tscheme, cols...)
}

// FromTable builds a table from an Arrow table, reading all chunks.
func FromTable(tbl arrow.Table) (*tidytable.Table, error) {
	schema := tbl.Schema()

	fields := make([]tidytable.Field, schema.NumFields())
	types := make([]tidytable.DataType, schema.NumFields())
	for i := 0; i < schema.NumFields(); i++ {
		field := schema.Field(i)
		typ, err := dataTypeOf(field.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", field.Name, err)
		}
		fields[i] = tidytable.Field{Name: field.Name, Type: typ}
		types[i] = typ
	}

	cols := make([][]tidytable.Value, schema.NumFields())
	for i := range cols {
		cols[i] = make([]tidytable.Value, 0, int(tbl.NumRows()))
	}

	tr := array.NewTableReader(tbl, tbl.NumRows())
	defer tr.Release()
	for tr.Next() {
		rec := tr.Record()
		for i := 0; i < schema.NumFields(); i++ {
			arr := rec.Column(i)
			for r := 0; r < int(rec.NumRows()); r++ {
				v, err := valueAt(arr, r, types[i])
				if err != nil {
					return nil, fmt.Errorf("column %q: %w", fields[i].Name, err)
				}
				cols[i] = append(cols[i], v)
			}
		}
	}
	if tr.Err() != nil {
		return nil, fmt.Errorf("reading arrow table: %w", tr.Err())
	}

	tscheme, err := tidytable.NewSchema(fields...)
	if err != nil {
		return nil, err
	}
	return tidytable.New(tscheme, cols...)
}

// ToRecord builds an Arrow record from a table. The caller owns the record
// and must Release it.
func ToRecord(t *tidytable.Table, mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	schema := t.Schema()
	afields := make([]arrow.Field, schema.NumFields())
	for i := 0; i < schema.NumFields(); i++ {
		f := schema.Field(i)
		afields[i] = arrow.Field{
			Name:     f.Name,
			Type:     arrowTypeOf(f.Type),
			Nullable: true,
		}
	}
	aschema := arrow.NewSchema(afields, nil)

	rb := array.NewRecordBuilder(mem, aschema)
	defer rb.Release()

	for i := 0; i < schema.NumFields(); i++ {
		f := schema.Field(i)
		col, err := t.Column(f.Name)
		if err != nil {
			return nil, err
		}
		if err := appendColumn(rb.Field(i), col, f.Type); err != nil {
			return nil, fmt.Errorf("column %q: %w", f.Name, err)
		}
	}

	return rb.NewRecord(), nil
}

// ToTable builds a single-chunk Arrow table from a table. The caller owns
// the result and must Release it.
func ToTable(t *tidytable.Table, mem memory.Allocator) (arrow.Table, error) {
	rec, err := ToRecord(t, mem)
	if err != nil {
		return nil, err
	}
	defer rec.Release()
	return array.NewTableFromRecords(rec.Schema(), []arrow.Record{rec}), nil
}

// dataTypeOf maps an Arrow type onto a tidytable type.
func dataTypeOf(dt arrow.DataType) (tidytable.DataType, error) {
	switch dt.ID() {
	case arrow.STRING, arrow.LARGE_STRING:
		return tidytable.TypeString, nil
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return tidytable.TypeInt, nil
	case arrow.FLOAT32, arrow.FLOAT64:
		return tidytable.TypeFloat, nil
	case arrow.BOOL:
		return tidytable.TypeBool, nil
	case arrow.TIMESTAMP, arrow.DATE32, arrow.DATE64:
		return tidytable.TypeTimestamp, nil
	default:
		return 0, fmt.Errorf("%w: unsupported arrow type %s", tidytable.ErrTypeMismatch, dt)
	}
}

// arrowTypeOf maps a tidytable type onto an Arrow type.
func arrowTypeOf(dt tidytable.DataType) arrow.DataType {
	switch dt {
	case tidytable.TypeInt:
		return arrow.PrimitiveTypes.Int64
	case tidytable.TypeFloat:
		return arrow.PrimitiveTypes.Float64
	case tidytable.TypeBool:
		return arrow.FixedWidthTypes.Boolean
	case tidytable.TypeTimestamp:
		return arrow.FixedWidthTypes.Timestamp_us
	default:
		return arrow.BinaryTypes.String
	}
}

// valueAt extracts a typed value from an Arrow array at a position.
func valueAt(col arrow.Array, pos int, typ tidytable.DataType) (tidytable.Value, error) {
	if col.IsNull(pos) {
		return tidytable.NewNullValue(typ), nil
	}

	switch col.DataType().ID() {
	case arrow.STRING:
		s := col.(*array.String)
		return tidytable.String(s.Value(pos)), nil
	case arrow.LARGE_STRING:
		s := col.(*array.LargeString)
		return tidytable.String(s.Value(pos)), nil
	case arrow.INT8:
		return tidytable.Int(int64(col.(*array.Int8).Value(pos))), nil
	case arrow.INT16:
		return tidytable.Int(int64(col.(*array.Int16).Value(pos))), nil
	case arrow.INT32:
		return tidytable.Int(int64(col.(*array.Int32).Value(pos))), nil
	case arrow.INT64:
		return tidytable.Int(col.(*array.Int64).Value(pos)), nil
	case arrow.UINT8:
		return tidytable.Int(int64(col.(*array.Uint8).Value(pos))), nil
	case arrow.UINT16:
		return tidytable.Int(int64(col.(*array.Uint16).Value(pos))), nil
	case arrow.UINT32:
		return tidytable.Int(int64(col.(*array.Uint32).Value(pos))), nil
	case arrow.UINT64:
		return tidytable.Int(int64(col.(*array.Uint64).Value(pos))), nil
	case arrow.FLOAT32:
		return tidytable.Float(float64(col.(*array.Float32).Value(pos))), nil
	case arrow.FLOAT64:
		return tidytable.Float(col.(*array.Float64).Value(pos)), nil
	case arrow.BOOL:
		return tidytable.Bool(col.(*array.Boolean).Value(pos)), nil
	case arrow.TIMESTAMP:
		ts := col.(*array.Timestamp)
		unit := col.DataType().(*arrow.TimestampType).Unit
		return tidytable.Timestamp(ts.Value(pos).ToTime(unit)), nil
	case arrow.DATE32:
		return tidytable.Timestamp(col.(*array.Date32).Value(pos).ToTime()), nil
	case arrow.DATE64:
		return tidytable.Timestamp(col.(*array.Date64).Value(pos).ToTime()), nil
	default:
		return tidytable.Value{}, fmt.Errorf("%w: unsupported arrow type %s",
			tidytable.ErrTypeMismatch, col.DataType())
	}
}

// appendColumn appends a tidytable column to a builder.
func appendColumn(builder array.Builder, col []tidytable.Value, typ tidytable.DataType) error {
	for _, v := range col {
		if v.IsNull {
			builder.AppendNull()
			continue
		}
		switch typ {
		case tidytable.TypeString:
			builder.(*array.StringBuilder).Append(v.Raw.(string))
		case tidytable.TypeInt:
			builder.(*array.Int64Builder).Append(v.Raw.(int64))
		case tidytable.TypeFloat:
			builder.(*array.Float64Builder).Append(v.Raw.(float64))
		case tidytable.TypeBool:
			builder.(*array.BooleanBuilder).Append(v.Raw.(bool))
		case tidytable.TypeTimestamp:
			t := v.Raw.(time.Time)
			builder.(*array.TimestampBuilder).Append(arrow.Timestamp(t.UnixMicro()))
		default:
			return fmt.Errorf("%w: %s", tidytable.ErrTypeMismatch, typ)
		}
	}
	return nil
}
