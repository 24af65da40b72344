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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAggSpecs(t *testing.T) {
	aggs, err := parseAggSpecs([]string{"avg_age=mean:age", "n=count:age"})
	require.NoError(t, err)
	require.Len(t, aggs, 2)
	assert.Equal(t, "avg_age", aggs[0].Name)
	assert.Equal(t, "age", aggs[0].Column)
	assert.Equal(t, "n", aggs[1].Name)
}

func TestParseAggSpecsInvalid(t *testing.T) {
	for _, spec := range []string{"mean:age", "x=mean", "x=bogus:age"} {
		_, err := parseAggSpecs([]string{spec})
		assert.Error(t, err, spec)
	}
}

func TestDetectFileType(t *testing.T) {
	assert.Equal(t, FileTypeCSV, DetectFileType("data.csv"))
	assert.Equal(t, FileTypeCSV, DetectFileType("data.TSV"))
	assert.Equal(t, FileTypeParquet, DetectFileType("data.parquet"))
	assert.Equal(t, FileTypeJSON, DetectFileType("data.json"))
	assert.Equal(t, FileTypeUnknown, DetectFileType("data.xlsx"))
}

func TestLoadTableCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(path, []byte("name;age\nann;30\nbob;25\n"), 0o644))

	tbl, err := loadTable(path)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, []string{"name", "age"}, tbl.ColumnNames())
}

func TestLoadTableJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"ann","age":30}]`), 0o644))

	tbl, err := loadTable(path)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.NumRows())
}

func TestSaveTableUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(path, []byte("name\nann\n"), 0o644))
	tbl, err := loadTable(path)
	require.NoError(t, err)

	err = saveTable(tbl, filepath.Join(t.TempDir(), "out.xlsx"))
	assert.Error(t, err)
}
