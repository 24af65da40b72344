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

// Package query turns filter expressions into tidytable filters.
//
// Two surfaces are provided: a small comparison grammar
// ("score >= 60 AND name ~ ann") compiled by Parse, and arbitrary Go
// predicate expressions evaluated through the yaegi interpreter by
// CompilePredicate.
package query

import (
	"fmt"
	"strings"

	"github.com/magpierre/tidytable/internal/filter"
	"github.com/magpierre/tidytable/tidytable"
)

// Parse compiles a query string into a filter validated against schema.
//
// Grammar: expressions of the form "column OP literal" joined by AND/OR
// (case-insensitive, applied left to right). Operators: =, !=, >, <, >=,
// <=, ~ (contains). An expression may be prefixed with NOT to invert it.
// A bare term with no operator matches rows where any column contains it.
// Literals may be quoted.
//
// An empty query yields a filter that passes every row.
func Parse(queryStr string, schema tidytable.Schema) (tidytable.Filter, error) {
	if strings.TrimSpace(queryStr) == "" {
		return &filter.CompositeFilter{}, nil
	}

	parts := splitByLogicOps(queryStr)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: empty query", tidytable.ErrInvalidFilter)
	}

	var (
		exprs []tidytable.Filter
		ops   []filter.LogicOp
	)
	for _, part := range parts {
		if part.isOperator {
			if strings.EqualFold(part.text, "AND") {
				ops = append(ops, filter.LogicAND)
			} else {
				ops = append(ops, filter.LogicOR)
			}
			continue
		}
		f, err := parseExpression(part.text, schema)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, f)
	}

	if len(ops) != len(exprs)-1 {
		return nil, fmt.Errorf("%w: mismatched expressions and operators", tidytable.ErrInvalidFilter)
	}

	// Fold left so mixed AND/OR evaluates left to right.
	result := exprs[0]
	for i, op := range ops {
		result = &filter.CompositeFilter{
			Filters: []tidytable.Filter{result, exprs[i+1]},
			Logic:   op,
		}
	}
	return result, nil
}

type queryPart struct {
	text       string
	isOperator bool
}

// splitByLogicOps splits the query by AND/OR while preserving the operators.
func splitByLogicOps(query string) []queryPart {
	parts := make([]queryPart, 0)
	current := ""
	i := 0

	flush := func() {
		if strings.TrimSpace(current) != "" {
			parts = append(parts, queryPart{text: strings.TrimSpace(current)})
			current = ""
		}
	}

	for i < len(query) {
		if i+3 <= len(query) && strings.EqualFold(query[i:i+3], "AND") {
			if (i == 0 || isWhitespace(query[i-1])) && (i+3 >= len(query) || isWhitespace(query[i+3])) {
				flush()
				parts = append(parts, queryPart{text: "AND", isOperator: true})
				i += 3
				continue
			}
		}

		if i+2 <= len(query) && strings.EqualFold(query[i:i+2], "OR") {
			if (i == 0 || isWhitespace(query[i-1])) && (i+2 >= len(query) || isWhitespace(query[i+2])) {
				flush()
				parts = append(parts, queryPart{text: "OR", isOperator: true})
				i += 2
				continue
			}
		}

		current += string(query[i])
		i++
	}
	flush()

	return parts
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// comparison operators, longest first so >= matches before =.
var operators = []struct {
	op     filter.CompOp
	symbol string
}{
	{filter.OpGreaterEqual, ">="},
	{filter.OpLessEqual, "<="},
	{filter.OpNotEqual, "!="},
	{filter.OpEqual, "="},
	{filter.OpGreater, ">"},
	{filter.OpLess, "<"},
	{filter.OpContains, "~"},
}

// parseExpression parses a single expression like "column = value",
// optionally prefixed with NOT.
func parseExpression(exprStr string, schema tidytable.Schema) (tidytable.Filter, error) {
	exprStr = strings.TrimSpace(exprStr)

	if len(exprStr) > 4 && strings.EqualFold(exprStr[:4], "NOT ") {
		inner, err := parseExpression(exprStr[4:], schema)
		if err != nil {
			return nil, err
		}
		return &filter.Not{Filter: inner}, nil
	}

	for _, opInfo := range operators {
		idx := strings.Index(exprStr, opInfo.symbol)
		if idx <= 0 {
			continue
		}

		columnName := strings.TrimSpace(exprStr[:idx])
		value := strings.TrimSpace(exprStr[idx+len(opInfo.symbol):])
		value = strings.Trim(value, "\"'")

		if !schemaHasFold(schema, columnName) {
			return nil, fmt.Errorf("%w: %q", tidytable.ErrUnknownColumn, columnName)
		}

		return &filter.Comparison{
			Column: columnName,
			Op:     opInfo.op,
			Value:  value,
		}, nil
	}

	// No operator: contains search across all columns.
	return &filter.ContainsAny{Value: exprStr}, nil
}

// schemaHasFold reports whether the schema has the column, ignoring case.
func schemaHasFold(schema tidytable.Schema, name string) bool {
	for _, n := range schema.Names() {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
