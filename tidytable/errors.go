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

import "errors"

// Common errors returned by the tidytable package.
// All failures surface immediately to the caller; operations are pure and
// deterministic, so no retry or local recovery is attempted and no partial
// result is ever returned.
var (
	// ErrAmbiguousPivot is returned when more than one input row shares the
	// same (key, names-from) pair during PivotWider.
	ErrAmbiguousPivot = errors.New("ambiguous pivot: duplicate key/name pair")

	// ErrTypeMismatch is returned when a value or reduction is applied to an
	// incompatible column type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnknownColumn is returned when a referenced column is absent from
	// the table schema.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrDuplicateColumn is returned when a schema would contain two columns
	// with the same name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrRowCountMismatch is returned when columns of unequal length are
	// combined into a table.
	ErrRowCountMismatch = errors.New("row count mismatch")

	// ErrInvalidRow is returned when a row index is out of range.
	ErrInvalidRow = errors.New("invalid row index")

	// ErrInvalidFilter is returned when a filter expression is invalid.
	ErrInvalidFilter = errors.New("invalid filter expression")

	// ErrEmptyData is returned when data is empty where it shouldn't be.
	ErrEmptyData = errors.New("data is empty")
)
