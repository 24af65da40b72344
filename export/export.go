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

// Package export writes tidytable tables to Parquet, CSV and JSON files.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	arrowadapter "github.com/magpierre/tidytable/adapters/arrow"
	csvadapter "github.com/magpierre/tidytable/adapters/csv"
	"github.com/magpierre/tidytable/tidytable"
)

// Format represents the supported export formats.
type Format int

const (
	FormatParquet Format = iota
	FormatCSV
	FormatJSON
)

// Export writes a table to filePath in the given format.
func Export(t *tidytable.Table, filePath string, format Format) error {
	switch format {
	case FormatParquet:
		return ToParquet(t, filePath)
	case FormatCSV:
		return ToCSV(t, filePath)
	case FormatJSON:
		return ToJSON(t, filePath)
	default:
		return fmt.Errorf("unsupported export format: %d", format)
	}
}

// ToParquet writes a table to a Parquet file with Snappy compression.
func ToParquet(t *tidytable.Table, filePath string) error {
	at, err := arrowadapter.ToTable(t, nil)
	if err != nil {
		return err
	}
	defer at.Release()

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(at.Schema(), file, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	defer writer.Close()

	if err := writer.WriteTable(at, at.NumRows()); err != nil {
		return fmt.Errorf("failed to write table to parquet: %w", err)
	}
	return nil
}

// FromParquet reads a Parquet file into a table.
func FromParquet(ctx context.Context, filePath string) (*tidytable.Table, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f, file.WithReadProps(&parquet.ReaderProperties{}))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pf.Close()

	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	at, err := reader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	defer at.Release()

	return arrowadapter.FromTable(at)
}

// ToCSV writes a table to a comma-separated file with a header row.
func ToCSV(t *tidytable.Table, filePath string) error {
	return csvadapter.WriteFile(t, filePath, csvadapter.DefaultConfig())
}

// ToJSON writes a table to a JSON file as an indented array of row objects.
// Absent cells become JSON null; timestamps are RFC 3339 strings.
func ToJSON(t *tidytable.Table, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	records := make([]map[string]interface{}, 0, t.NumRows())
	names := t.ColumnNames()
	for r := 0; r < t.NumRows(); r++ {
		record := make(map[string]interface{}, len(names))
		for _, name := range names {
			v, err := t.Cell(r, name)
			if err != nil {
				return err
			}
			record[name] = jsonValue(v)
		}
		records = append(records, record)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// jsonValue returns the typed value for JSON export.
func jsonValue(v tidytable.Value) interface{} {
	if v.IsNull {
		return nil
	}
	if ts, ok := v.Raw.(time.Time); ok {
		return ts.Format(time.RFC3339Nano)
	}
	return v.Raw
}
