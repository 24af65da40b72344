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

// Package csv reads and writes tidytable tables as delimited text.
package csv

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/magpierre/tidytable/tidytable"
)

// Config controls CSV parsing.
type Config struct {
	// Delimiter is the field separator.
	Delimiter rune

	// HasHeaders indicates the first row holds column names. When false,
	// columns are named col1, col2, ...
	HasHeaders bool

	// TrimSpace strips leading and trailing whitespace from each cell.
	TrimSpace bool

	// InferTypes enables column type inference (int, then float, then bool,
	// falling back to string). When false every column is TypeString.
	InferTypes bool

	// NullValues are cell contents treated as absent. The empty string is
	// always absent.
	NullValues []string
}

// DefaultConfig returns the default CSV configuration.
func DefaultConfig() Config {
	return Config{
		Delimiter:  ',',
		HasHeaders: true,
		TrimSpace:  true,
		InferTypes: true,
		NullValues: []string{"NA"},
	}
}

// NewFromFile reads a CSV file into a table.
func NewFromFile(path string, config Config) (*tidytable.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()
	return NewFromReader(f, config)
}

// NewFromReader reads CSV data into a table.
func NewFromReader(r io.Reader, config Config) (*tidytable.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = config.Delimiter
	reader.FieldsPerRecord = 0 // all records must match the first

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no CSV records", tidytable.ErrEmptyData)
	}

	var headers []string
	rows := records
	if config.HasHeaders {
		headers = records[0]
		rows = records[1:]
	} else {
		headers = make([]string, len(records[0]))
		for i := range headers {
			headers[i] = fmt.Sprintf("col%d", i+1)
		}
	}
	if config.TrimSpace {
		for i, h := range headers {
			headers[i] = strings.TrimSpace(h)
		}
		for _, row := range rows {
			for i, cell := range row {
				row[i] = strings.TrimSpace(cell)
			}
		}
	}

	nulls := make(map[string]bool, len(config.NullValues)+1)
	nulls[""] = true
	for _, nv := range config.NullValues {
		nulls[nv] = true
	}

	fields := make([]tidytable.Field, len(headers))
	cols := make([][]tidytable.Value, len(headers))
	for c, name := range headers {
		cells := make([]string, len(rows))
		for r, row := range rows {
			cells[r] = row[c]
		}

		typ := tidytable.TypeString
		if config.InferTypes {
			typ = inferType(cells, nulls)
		}
		fields[c] = tidytable.Field{Name: name, Type: typ}

		col := make([]tidytable.Value, len(rows))
		for r, cell := range cells {
			v, err := parseCell(cell, typ, nulls)
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", name, r+1, err)
			}
			col[r] = v
		}
		cols[c] = col
	}

	schema, err := tidytable.NewSchema(fields...)
	if err != nil {
		return nil, err
	}
	return tidytable.New(schema, cols...)
}

// inferType picks the narrowest type every present cell parses as.
func inferType(cells []string, nulls map[string]bool) tidytable.DataType {
	isInt, isFloat, isBool := true, true, true
	present := false
	for _, cell := range cells {
		if nulls[cell] {
			continue
		}
		present = true
		if isInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				isFloat = false
			}
		}
		if isBool {
			if _, err := strconv.ParseBool(cell); err != nil {
				isBool = false
			}
		}
	}
	if !present {
		return tidytable.TypeString
	}
	switch {
	case isInt:
		return tidytable.TypeInt
	case isFloat:
		return tidytable.TypeFloat
	case isBool:
		return tidytable.TypeBool
	default:
		return tidytable.TypeString
	}
}

// parseCell converts one cell into a value of the column's type.
func parseCell(cell string, typ tidytable.DataType, nulls map[string]bool) (tidytable.Value, error) {
	if nulls[cell] {
		return tidytable.NewNullValue(typ), nil
	}
	switch typ {
	case tidytable.TypeInt:
		i, err := strconv.ParseInt(cell, 10, 64)
		if err != nil {
			return tidytable.Value{}, fmt.Errorf("%w: %q is not an integer", tidytable.ErrTypeMismatch, cell)
		}
		return tidytable.Int(i), nil
	case tidytable.TypeFloat:
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return tidytable.Value{}, fmt.Errorf("%w: %q is not a number", tidytable.ErrTypeMismatch, cell)
		}
		return tidytable.Float(f), nil
	case tidytable.TypeBool:
		b, err := strconv.ParseBool(cell)
		if err != nil {
			return tidytable.Value{}, fmt.Errorf("%w: %q is not a boolean", tidytable.ErrTypeMismatch, cell)
		}
		return tidytable.Bool(b), nil
	default:
		return tidytable.String(cell), nil
	}
}

// Write writes a table as CSV. Absent cells are written empty.
func Write(t *tidytable.Table, w io.Writer, config Config) error {
	writer := csv.NewWriter(w)
	writer.Comma = config.Delimiter
	defer writer.Flush()

	if config.HasHeaders {
		if err := writer.Write(t.ColumnNames()); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}

	names := t.ColumnNames()
	row := make([]string, len(names))
	for r := 0; r < t.NumRows(); r++ {
		for i, name := range names {
			v, err := t.Cell(r, name)
			if err != nil {
				return err
			}
			row[i] = v.Formatted
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile writes a table to a CSV file.
func WriteFile(t *tidytable.Table, path string, config Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()
	return Write(t, f, config)
}

// DetectSeparator guesses the field separator from the first line of a file.
// Candidates are comma, semicolon, tab and pipe; the most frequent wins,
// defaulting to comma.
func DetectSeparator(path string) (rune, error) {
	f, err := os.Open(path)
	if err != nil {
		return ',', fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return ',', nil
	}
	firstLine := scanner.Text()
	if firstLine == "" {
		return ',', nil
	}

	separators := map[rune]int{
		',':  strings.Count(firstLine, ","),
		';':  strings.Count(firstLine, ";"),
		'\t': strings.Count(firstLine, "\t"),
		'|':  strings.Count(firstLine, "|"),
	}

	maxCount := 0
	detected := ','
	for sep, count := range separators {
		if count > maxCount {
			maxCount = count
			detected = sep
		}
	}
	return detected, nil
}
