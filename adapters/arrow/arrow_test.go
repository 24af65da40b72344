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

package arrow

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/tidytable/tidytable"
)

func buildArrowRecord(t *testing.T) arrow.Record {
	t.Helper()
	mem := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "name", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "score", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
		{Name: "ratio", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	}, nil)

	rb := array.NewRecordBuilder(mem, schema)
	defer rb.Release()

	rb.Field(0).(*array.StringBuilder).AppendValues([]string{"ann", "bob"}, nil)
	rb.Field(1).(*array.Int64Builder).AppendValues([]int64{40, 75}, nil)
	rb.Field(2).(*array.Float64Builder).Append(0.5)
	rb.Field(2).(*array.Float64Builder).AppendNull()

	return rb.NewRecord()
}

func TestFromRecord(t *testing.T) {
	rec := buildArrowRecord(t)
	defer rec.Release()

	tab, err := FromRecord(rec)
	require.NoError(t, err)

	assert.Equal(t, 2, tab.NumRows())
	assert.Equal(t, []string{"name", "score", "ratio"}, tab.ColumnNames())

	typ, err := tab.Schema().Type("score")
	require.NoError(t, err)
	assert.Equal(t, tidytable.TypeInt, typ)

	v, err := tab.Cell(0, "name")
	require.NoError(t, err)
	assert.Equal(t, "ann", v.Raw)

	null, err := tab.Cell(1, "ratio")
	require.NoError(t, err)
	assert.True(t, null.IsNull)
}

func TestRecordRoundTrip(t *testing.T) {
	tab, err := tidytable.NewBuilder().
		Strings("name", "ann", "bob").
		Ints("score", 40, 75).
		Build()
	require.NoError(t, err)

	rec, err := ToRecord(tab, nil)
	require.NoError(t, err)
	defer rec.Release()

	assert.Equal(t, int64(2), rec.NumRows())
	assert.Equal(t, int64(2), rec.NumCols())

	back, err := FromRecord(rec)
	require.NoError(t, err)
	assert.True(t, tab.Equal(back))
}

func TestToRecordPreservesNulls(t *testing.T) {
	schema, err := tidytable.NewSchema(tidytable.Field{Name: "v", Type: tidytable.TypeFloat})
	require.NoError(t, err)
	tab, err := tidytable.New(schema,
		[]tidytable.Value{tidytable.Float(1), tidytable.NewNullValue(tidytable.TypeFloat)},
	)
	require.NoError(t, err)

	rec, err := ToRecord(tab, nil)
	require.NoError(t, err)
	defer rec.Release()

	assert.True(t, rec.Column(0).IsNull(1))
}

func TestTableRoundTrip(t *testing.T) {
	tab, err := tidytable.NewBuilder().
		Strings("g", "a", "b", "c").
		Floats("v", 1, 2, 3).
		Build()
	require.NoError(t, err)

	atbl, err := ToTable(tab, nil)
	require.NoError(t, err)
	defer atbl.Release()

	back, err := FromTable(atbl)
	require.NoError(t, err)
	assert.True(t, tab.Equal(back))
}
