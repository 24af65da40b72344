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

import "time"

// Builder constructs a table column by column. Columns appear in the order
// they are added. Build validates the accumulated columns exactly like New.
type Builder struct {
	fields []Field
	cols   [][]Value
}

// NewBuilder creates an empty table builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a pre-built column of the given type.
func (b *Builder) Add(name string, typ DataType, values ...Value) *Builder {
	b.fields = append(b.fields, Field{Name: name, Type: typ})
	b.cols = append(b.cols, values)
	return b
}

// Strings appends a TypeString column.
func (b *Builder) Strings(name string, values ...string) *Builder {
	col := make([]Value, len(values))
	for i, v := range values {
		col[i] = String(v)
	}
	return b.Add(name, TypeString, col...)
}

// Ints appends a TypeInt column.
func (b *Builder) Ints(name string, values ...int64) *Builder {
	col := make([]Value, len(values))
	for i, v := range values {
		col[i] = Int(v)
	}
	return b.Add(name, TypeInt, col...)
}

// Floats appends a TypeFloat column.
func (b *Builder) Floats(name string, values ...float64) *Builder {
	col := make([]Value, len(values))
	for i, v := range values {
		col[i] = Float(v)
	}
	return b.Add(name, TypeFloat, col...)
}

// Bools appends a TypeBool column.
func (b *Builder) Bools(name string, values ...bool) *Builder {
	col := make([]Value, len(values))
	for i, v := range values {
		col[i] = Bool(v)
	}
	return b.Add(name, TypeBool, col...)
}

// Timestamps appends a TypeTimestamp column.
func (b *Builder) Timestamps(name string, values ...time.Time) *Builder {
	col := make([]Value, len(values))
	for i, v := range values {
		col[i] = Timestamp(v)
	}
	return b.Add(name, TypeTimestamp, col...)
}

// Build validates the accumulated columns and returns the table.
func (b *Builder) Build() (*Table, error) {
	schema, err := NewSchema(b.fields...)
	if err != nil {
		return nil, err
	}
	return New(schema, b.cols...)
}
