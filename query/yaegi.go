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

package query

import (
	"fmt"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/magpierre/tidytable/tidytable"
)

// CompilePredicate evaluates a Go boolean expression into a row predicate
// using the yaegi interpreter. The expression sees one variable, row, a
// map[string]interface{} of raw cell values (string, int64, float64, bool,
// time.Time; nil for absent cells):
//
//	pred, err := query.CompilePredicate(`row["score"].(int64) >= 60 && row["name"] != nil`)
//	passing, err := table.Where(pred)
//
// Compilation errors surface immediately; a panic inside the interpreted
// expression (a failed type assertion, typically) is reported as
// ErrInvalidFilter on the row that triggered it.
func CompilePredicate(src string) (tidytable.Predicate, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("loading stdlib symbols: %w", err)
	}

	// Wrap the expression in a function so yaegi compiles it once and we
	// extract a plain Go func to call per row.
	program := fmt.Sprintf(`package main

import (
	"strings"
	"time"
)

var _ = strings.Contains
var _ = time.Now

func pred(row map[string]interface{}) bool {
	return %s
}`, src)

	if _, err := i.Eval(program); err != nil {
		return nil, fmt.Errorf("%w: %v", tidytable.ErrInvalidFilter, err)
	}

	v, err := i.Eval("main.pred")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tidytable.ErrInvalidFilter, err)
	}
	fn, ok := v.Interface().(func(map[string]interface{}) bool)
	if !ok {
		return nil, fmt.Errorf("%w: expression is not a boolean predicate", tidytable.ErrInvalidFilter)
	}

	return func(row tidytable.Row) (pass bool, err error) {
		raw := make(map[string]interface{}, len(row))
		for name, v := range row {
			if v.IsNull {
				raw[name] = nil
				continue
			}
			raw[name] = v.Raw
		}
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: predicate panicked: %v", tidytable.ErrInvalidFilter, r)
			}
		}()
		return fn(raw), nil
	}, nil
}
