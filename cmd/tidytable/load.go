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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	csvadapter "github.com/magpierre/tidytable/adapters/csv"
	"github.com/magpierre/tidytable/adapters/slice"
	"github.com/magpierre/tidytable/export"
	"github.com/magpierre/tidytable/tidytable"
)

// FileType identifies a supported data file format.
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeCSV
	FileTypeParquet
	FileTypeJSON
)

// DetectFileType determines the type of file based on extension.
func DetectFileType(filePath string) FileType {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".csv", ".tsv", ".txt":
		return FileTypeCSV
	case ".parquet":
		return FileTypeParquet
	case ".json":
		return FileTypeJSON
	default:
		return FileTypeUnknown
	}
}

// loadTable reads a data file into a table, dispatching on its extension.
func loadTable(filePath string) (*tidytable.Table, error) {
	switch DetectFileType(filePath) {
	case FileTypeCSV:
		config := csvadapter.DefaultConfig()
		sep, err := csvadapter.DetectSeparator(filePath)
		if err != nil {
			return nil, err
		}
		config.Delimiter = sep
		log.Debugf("loading CSV file %s with separator %q", filePath, sep)
		return csvadapter.NewFromFile(filePath, config)

	case FileTypeParquet:
		log.Debugf("loading Parquet file %s", filePath)
		return export.FromParquet(context.Background(), filePath)

	case FileTypeJSON:
		log.Debugf("loading JSON file %s", filePath)
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read JSON file: %w", err)
		}
		var records []map[string]interface{}
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return slice.NewFromMaps(records)

	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(filePath))
	}
}

// saveTable writes a table to a file, dispatching on its extension.
func saveTable(t *tidytable.Table, filePath string) error {
	switch DetectFileType(filePath) {
	case FileTypeCSV:
		return export.ToCSV(t, filePath)
	case FileTypeParquet:
		return export.ToParquet(t, filePath)
	case FileTypeJSON:
		return export.ToJSON(t, filePath)
	default:
		return fmt.Errorf("unsupported output file type: %s", filepath.Ext(filePath))
	}
}

// printTable writes a table to stdout, truncated to limit rows (0 = all).
func printTable(t *tidytable.Table, limit int) error {
	shown := t
	if limit > 0 && t.NumRows() > limit {
		shown = t.Head(limit)
	}
	if err := tidytable.Fprint(os.Stdout, shown); err != nil {
		return err
	}
	if shown.NumRows() < t.NumRows() {
		fmt.Printf("... %d of %d rows\n", shown.NumRows(), t.NumRows())
	}
	return nil
}
