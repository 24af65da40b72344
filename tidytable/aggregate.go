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

	"github.com/aclements/go-moremath/stats"
)

// NullPolicy controls how reductions treat absent values.
type NullPolicy int

const (
	// SkipNulls drops absent values before reducing. Default.
	SkipNulls NullPolicy = iota
	// PropagateNulls makes any absent input produce an absent result.
	PropagateNulls
)

// ReduceFunc reduces a sequence of cell values to a single scalar value.
// Implementations must be pure and must tolerate an empty input, returning
// a typed absent value (or a typed zero, as Count does); Summarize uses the
// empty-input result to type absent outputs under PropagateNulls.
type ReduceFunc func(values []Value) (Value, error)

// Aggregation names one output column of a Summarize call: the reduction
// function and the source column it reads.
type Aggregation struct {
	// Name is the output column name.
	Name string
	// Column is the source column the reduction reads.
	Column string
	// Fn is the reduction applied to each group's values.
	Fn ReduceFunc
}

// SummarizeOption configures a Summarize call.
type SummarizeOption func(*summarizeConfig)

type summarizeConfig struct {
	nulls NullPolicy
}

// WithNullPolicy selects how reductions treat absent values.
func WithNullPolicy(p NullPolicy) SummarizeOption {
	return func(cfg *summarizeConfig) { cfg.nulls = p }
}

// Summarize reduces each group to one output row: the key columns are
// carried through, followed by one column per aggregation in the order
// given. Output rows follow the grouping's first-appearance order.
func (g *GroupedTable) Summarize(aggs []Aggregation, opts ...SummarizeOption) (*Table, error) {
	cfg := summarizeConfig{nulls: SkipNulls}
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(aggs) == 0 {
		return nil, fmt.Errorf("%w: no aggregations", ErrEmptyData)
	}

	srcIdx := make([]int, len(aggs))
	for i, agg := range aggs {
		idx, err := g.table.schema.Index(agg.Column)
		if err != nil {
			return nil, err
		}
		srcIdx[i] = idx
	}

	// The empty-input result of each reduction supplies the output column
	// type and the absent value used under PropagateNulls.
	outTypes := make([]DataType, len(aggs))
	for i, agg := range aggs {
		proto, err := agg.Fn(nil)
		if err != nil {
			return nil, fmt.Errorf("aggregation %q: %w", agg.Name, err)
		}
		outTypes[i] = proto.Type
	}

	fields := make([]Field, 0, len(g.keyIdx)+len(aggs))
	for _, k := range g.keyIdx {
		fields = append(fields, g.table.schema.Field(k))
	}
	for i, agg := range aggs {
		fields = append(fields, Field{Name: agg.Name, Type: outTypes[i]})
	}
	schema, err := NewSchema(fields...)
	if err != nil {
		return nil, err
	}

	cols := make([][]Value, len(fields))
	for i := range cols {
		cols[i] = make([]Value, len(g.groups))
	}

	for gi, grp := range g.groups {
		for i := range g.keyIdx {
			cols[i][gi] = grp.key[i]
		}
		for ai, agg := range aggs {
			src := g.table.column(srcIdx[ai])
			values := make([]Value, 0, len(grp.rows))
			absent := false
			for _, r := range grp.rows {
				v := src[r]
				if v.IsNull {
					absent = true
					continue
				}
				values = append(values, v)
			}

			var out Value
			if absent && cfg.nulls == PropagateNulls {
				out = NewNullValue(outTypes[ai])
			} else {
				out, err = agg.Fn(values)
				if err != nil {
					return nil, fmt.Errorf("aggregation %q: %w", agg.Name, err)
				}
				if !out.IsNull && out.Type != outTypes[ai] {
					return nil, fmt.Errorf("%w: aggregation %q produced %s, want %s",
						ErrTypeMismatch, agg.Name, out.Type, outTypes[ai])
				}
			}
			cols[len(g.keyIdx)+ai][gi] = out
		}
	}

	return &Table{schema: schema, cols: cols, nrows: len(g.groups)}, nil
}

// NumericReduce wraps a float64 reduction into a ReduceFunc. The resulting
// reduction fails with ErrTypeMismatch when applied to a non-numeric column
// and returns an absent TypeFloat value for empty input.
func NumericReduce(fn func(xs []float64) float64) ReduceFunc {
	return func(values []Value) (Value, error) {
		if len(values) == 0 {
			return NewNullValue(TypeFloat), nil
		}
		xs := make([]float64, len(values))
		for i, v := range values {
			x, err := v.Float64()
			if err != nil {
				return Value{}, err
			}
			xs[i] = x
		}
		return Float(fn(xs)), nil
	}
}

// Mean reduces to the arithmetic mean.
var Mean = NumericReduce(stats.Mean)

// StdDev reduces to the sample standard deviation.
var StdDev = NumericReduce(stats.StdDev)

// GeoMean reduces to the geometric mean.
var GeoMean = NumericReduce(stats.GeoMean)

// Sum reduces to the total.
var Sum = NumericReduce(func(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
})

// Min reduces to the smallest value.
var Min = NumericReduce(func(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
})

// Max reduces to the largest value.
var Max = NumericReduce(func(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
})

// Count reduces to the number of present values, regardless of column type.
func Count(values []Value) (Value, error) {
	return Int(int64(len(values))), nil
}
