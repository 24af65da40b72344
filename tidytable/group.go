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

// GroupedTable is a table annotated with a grouping partition: every row
// belongs to exactly one group, determined by the distinct combinations of
// the key columns. Grouping performs no aggregation itself; it only changes
// how Summarize behaves. Declaring the grouping once avoids re-specifying
// the key columns on every aggregate call.
type GroupedTable struct {
	table  *Table
	keys   []string
	keyIdx []int
	groups []group
}

// group is one cell of the partition: the key tuple and the member row
// indices, in original row order.
type group struct {
	key  []Value
	rows []int
}

// GroupBy partitions the table's rows by the distinct combinations of the
// key columns, in first-appearance order.
// Returns ErrUnknownColumn if a key column is not in the schema.
func (t *Table) GroupBy(keys ...string) (*GroupedTable, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no grouping columns", ErrEmptyData)
	}

	keyIdx := make([]int, len(keys))
	seen := make(map[int]bool, len(keys))
	for i, k := range keys {
		idx, err := t.schema.Index(k)
		if err != nil {
			return nil, err
		}
		if seen[idx] {
			return nil, fmt.Errorf("%w: %q grouped twice", ErrDuplicateColumn, k)
		}
		keyIdx[i] = idx
		seen[idx] = true
	}

	var (
		lookup = make(map[string]int)
		groups []group
	)
	key := make([]Value, len(keyIdx))
	for r := 0; r < t.nrows; r++ {
		for i, k := range keyIdx {
			key[i] = t.cols[k][r]
		}
		kh := hashValues(key)
		gi, ok := lookup[kh]
		if !ok {
			gi = len(groups)
			lookup[kh] = gi
			groups = append(groups, group{key: append([]Value(nil), key...)})
		}
		groups[gi].rows = append(groups[gi].rows, r)
	}

	return &GroupedTable{
		table:  t,
		keys:   append([]string(nil), keys...),
		keyIdx: keyIdx,
		groups: groups,
	}, nil
}

// Table returns the underlying table.
func (g *GroupedTable) Table() *Table { return g.table }

// Keys returns the grouping column names.
func (g *GroupedTable) Keys() []string { return append([]string(nil), g.keys...) }

// NumGroups returns the number of distinct key combinations.
func (g *GroupedTable) NumGroups() int { return len(g.groups) }

// Groups returns the row-index partition, one slice per group in
// first-appearance order. Together the slices cover every row exactly once.
func (g *GroupedTable) Groups() [][]int {
	out := make([][]int, len(g.groups))
	for i, grp := range g.groups {
		out[i] = append([]int(nil), grp.rows...)
	}
	return out
}
