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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchemaRejectsDuplicates(t *testing.T) {
	_, err := NewSchema(
		Field{Name: "a", Type: TypeInt},
		Field{Name: "a", Type: TypeString},
	)
	require.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestNewRejectsRowCountMismatch(t *testing.T) {
	schema, err := NewSchema(
		Field{Name: "a", Type: TypeInt},
		Field{Name: "b", Type: TypeInt},
	)
	require.NoError(t, err)

	_, err = New(schema,
		[]Value{Int(1), Int(2)},
		[]Value{Int(3)},
	)
	require.ErrorIs(t, err, ErrRowCountMismatch)
}

func TestNewRejectsTypeMismatch(t *testing.T) {
	schema, err := NewSchema(Field{Name: "a", Type: TypeInt})
	require.NoError(t, err)

	_, err = New(schema, []Value{String("oops")})
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestNewAcceptsTypedNulls(t *testing.T) {
	schema, err := NewSchema(Field{Name: "a", Type: TypeFloat})
	require.NoError(t, err)

	tab, err := New(schema, []Value{Float(1.5), NewNullValue(TypeFloat)})
	require.NoError(t, err)
	assert.Equal(t, 2, tab.NumRows())

	v, err := tab.Cell(1, "a")
	require.NoError(t, err)
	assert.True(t, v.IsNull)
}

func TestAccessors(t *testing.T) {
	tab, err := NewBuilder().
		Strings("item", "beds", "faces").
		Ints("subid", 1, 2).
		Build()
	require.NoError(t, err)

	assert.Equal(t, 2, tab.NumRows())
	assert.Equal(t, 2, tab.NumCols())
	assert.Equal(t, []string{"item", "subid"}, tab.ColumnNames())

	col, err := tab.Column("item")
	require.NoError(t, err)
	require.Len(t, col, 2)
	assert.Equal(t, "beds", col[0].Raw)

	_, err = tab.Column("missing")
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = tab.Cell(5, "item")
	assert.ErrorIs(t, err, ErrInvalidRow)

	row, err := tab.Row(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), row["subid"].Raw)
}

func TestColumnReturnsCopy(t *testing.T) {
	tab, err := NewBuilder().Ints("n", 1, 2, 3).Build()
	require.NoError(t, err)

	col, err := tab.Column("n")
	require.NoError(t, err)
	col[0] = Int(99)

	again, err := tab.Column("n")
	require.NoError(t, err)
	assert.Equal(t, int64(1), again[0].Raw)
}

func TestValueNormalization(t *testing.T) {
	v := NewValue(int32(7), TypeInt)
	assert.Equal(t, int64(7), v.Raw)
	assert.Equal(t, "7", v.Formatted)

	f := NewValue(float32(2), TypeFloat)
	assert.Equal(t, float64(2), f.Raw)

	n := NewValue(nil, TypeString)
	assert.True(t, n.IsNull)
}

func TestValueOf(t *testing.T) {
	v, err := ValueOf("ann")
	require.NoError(t, err)
	assert.Equal(t, TypeString, v.Type)

	v, err = ValueOf(30)
	require.NoError(t, err)
	assert.Equal(t, TypeInt, v.Type)
	assert.Equal(t, int64(30), v.Raw)

	v, err = ValueOf(float32(2.5))
	require.NoError(t, err)
	assert.Equal(t, TypeFloat, v.Type)
	assert.Equal(t, 2.5, v.Raw)

	v, err = ValueOf(true)
	require.NoError(t, err)
	assert.Equal(t, TypeBool, v.Type)

	_, err = ValueOf(nil)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = ValueOf([]int{1})
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Int(3).Equal(Int(3)))
	assert.False(t, Int(3).Equal(Float(3)))
	assert.True(t, NewNullValue(TypeInt).Equal(NewNullValue(TypeInt)))
	assert.False(t, NewNullValue(TypeInt).Equal(Int(0)))
}

func TestTableEqual(t *testing.T) {
	a, err := NewBuilder().Strings("s", "x", "y").Ints("n", 1, 2).Build()
	require.NoError(t, err)
	b, err := NewBuilder().Strings("s", "x", "y").Ints("n", 1, 2).Build()
	require.NoError(t, err)
	c, err := NewBuilder().Strings("s", "x", "y").Ints("n", 1, 3).Build()
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
