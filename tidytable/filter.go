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

// Filter decides whether a row belongs in a filtered table.
// Implementations must be pure: the same row must always produce the same
// answer. All methods should return errors rather than panic.
type Filter interface {
	// Evaluate returns true if the row passes the filter.
	// row holds one value per column, in schema order; columnNames holds
	// the matching column names.
	Evaluate(row []Value, columnNames []string) (bool, error)

	// Description returns a human-readable description of the filter.
	Description() string
}

// Predicate is a pure function from a row to a keep/drop decision.
type Predicate func(Row) (bool, error)

// Filter returns a new table containing exactly the rows for which f holds,
// preserving the column set and the original relative row order.
func (t *Table) Filter(f Filter) (*Table, error) {
	names := t.schema.Names()
	row := make([]Value, t.schema.NumFields())

	indices := make([]int, 0, t.nrows)
	for r := 0; r < t.nrows; r++ {
		for i := range t.cols {
			row[i] = t.cols[i][r]
		}
		pass, err := f.Evaluate(row, names)
		if err != nil {
			return nil, err
		}
		if pass {
			indices = append(indices, r)
		}
	}
	return t.takeRows(indices), nil
}

// Where filters with a row-map predicate. Convenience wrapper over Filter.
func (t *Table) Where(pred Predicate) (*Table, error) {
	return t.Filter(predicateFilter{pred: pred})
}

type predicateFilter struct {
	pred Predicate
}

func (p predicateFilter) Evaluate(row []Value, columnNames []string) (bool, error) {
	m := make(Row, len(columnNames))
	for i, name := range columnNames {
		m[name] = row[i]
	}
	return p.pred(m)
}

func (p predicateFilter) Description() string { return "predicate" }
