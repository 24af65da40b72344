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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/tidytable/tidytable"
)

var testColumns = []string{"name", "score"}

func testRow(name string, score int64) []tidytable.Value {
	return []tidytable.Value{tidytable.String(name), tidytable.Int(score)}
}

func TestComparisonOperators(t *testing.T) {
	tests := []struct {
		name string
		f    Comparison
		row  []tidytable.Value
		want bool
	}{
		{"equal", Comparison{"name", OpEqual, "Ann"}, testRow("ann", 10), true},
		{"not equal", Comparison{"name", OpNotEqual, "ann"}, testRow("ann", 10), false},
		{"contains", Comparison{"name", OpContains, "n"}, testRow("ann", 10), true},
		{"greater numeric", Comparison{"score", OpGreater, "5"}, testRow("ann", 10), true},
		{"greater numeric false", Comparison{"score", OpGreater, "10"}, testRow("ann", 10), false},
		{"greater equal", Comparison{"score", OpGreaterEqual, "10"}, testRow("ann", 10), true},
		{"less", Comparison{"score", OpLess, "11"}, testRow("ann", 10), true},
		{"lexicographic fallback", Comparison{"name", OpGreater, "alf"}, testRow("ann", 10), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.f.Evaluate(tc.row, testColumns)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestComparisonUnknownColumn(t *testing.T) {
	f := Comparison{Column: "missing", Op: OpEqual, Value: "x"}
	_, err := f.Evaluate(testRow("ann", 10), testColumns)
	assert.ErrorIs(t, err, tidytable.ErrUnknownColumn)
}

func TestNotInvertsFilter(t *testing.T) {
	f := Not{Filter: &Comparison{Column: "score", Op: OpGreater, Value: "50"}}

	got, err := f.Evaluate(testRow("ann", 40), testColumns)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = f.Evaluate(testRow("bob", 75), testColumns)
	require.NoError(t, err)
	assert.False(t, got)

	assert.Equal(t, "NOT score > 50", f.Description())
}

func TestNotPropagatesErrors(t *testing.T) {
	f := Not{Filter: &Comparison{Column: "missing", Op: OpEqual, Value: "x"}}
	_, err := f.Evaluate(testRow("ann", 10), testColumns)
	assert.ErrorIs(t, err, tidytable.ErrUnknownColumn)
}

func TestComparisonNullNeverMatches(t *testing.T) {
	row := []tidytable.Value{tidytable.NewNullValue(tidytable.TypeString), tidytable.Int(1)}
	f := Comparison{Column: "name", Op: OpNotEqual, Value: "x"}
	got, err := f.Evaluate(row, testColumns)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestCompositeAND(t *testing.T) {
	f := &CompositeFilter{
		Filters: []tidytable.Filter{
			&Comparison{Column: "score", Op: OpGreaterEqual, Value: "10"},
			&Comparison{Column: "name", Op: OpContains, Value: "a"},
		},
		Logic: LogicAND,
	}

	got, err := f.Evaluate(testRow("ann", 10), testColumns)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = f.Evaluate(testRow("bob", 10), testColumns)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestCompositeOR(t *testing.T) {
	f := &CompositeFilter{
		Filters: []tidytable.Filter{
			&Comparison{Column: "score", Op: OpGreater, Value: "50"},
			&Comparison{Column: "name", Op: OpEqual, Value: "ann"},
		},
		Logic: LogicOR,
	}

	got, err := f.Evaluate(testRow("ann", 10), testColumns)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = f.Evaluate(testRow("bob", 10), testColumns)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestCompositeEmptyPassesAll(t *testing.T) {
	f := &CompositeFilter{}
	got, err := f.Evaluate(testRow("ann", 10), testColumns)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestContainsAny(t *testing.T) {
	f := &ContainsAny{Value: "NN"}
	got, err := f.Evaluate(testRow("ann", 10), testColumns)
	require.NoError(t, err)
	assert.True(t, got)

	f = &ContainsAny{Value: "zzz"}
	got, err = f.Evaluate(testRow("ann", 10), testColumns)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestDescription(t *testing.T) {
	f := &CompositeFilter{
		Filters: []tidytable.Filter{
			&Comparison{Column: "score", Op: OpGreater, Value: "5"},
			&Comparison{Column: "name", Op: OpEqual, Value: "ann"},
		},
		Logic: LogicAND,
	}
	assert.Equal(t, "(score > 5 AND name = ann)", f.Description())
}
