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

// Field declares one column: its name and type.
type Field struct {
	Name string
	Type DataType
}

// Schema is an ordered list of uniquely named fields. Column lookup by name
// is validated against the schema rather than resolved dynamically at access
// time.
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema builds a schema from fields.
// Returns ErrDuplicateColumn if two fields share a name.
func NewSchema(fields ...Field) (Schema, error) {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return Schema{}, fmt.Errorf("%w: empty column name at position %d", ErrUnknownColumn, i)
		}
		if _, exists := index[f.Name]; exists {
			return Schema{}, fmt.Errorf("%w: %q", ErrDuplicateColumn, f.Name)
		}
		index[f.Name] = i
	}
	return Schema{fields: append([]Field(nil), fields...), index: index}, nil
}

// NumFields returns the number of fields in the schema.
func (s Schema) NumFields() int { return len(s.fields) }

// Field returns the field at position i.
func (s Schema) Field(i int) Field { return s.fields[i] }

// Fields returns a copy of the ordered field list.
func (s Schema) Fields() []Field { return append([]Field(nil), s.fields...) }

// Names returns the ordered column names.
func (s Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Index returns the position of the named column.
// Returns ErrUnknownColumn if the name is not in the schema.
func (s Schema) Index(name string) (int, error) {
	i, ok := s.index[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return i, nil
}

// Has reports whether the schema contains the named column.
func (s Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Type returns the declared type of the named column.
// Returns ErrUnknownColumn if the name is not in the schema.
func (s Schema) Type(name string) (DataType, error) {
	i, err := s.Index(name)
	if err != nil {
		return 0, err
	}
	return s.fields[i].Type, nil
}
