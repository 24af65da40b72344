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

package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	csvadapter "github.com/magpierre/tidytable/adapters/csv"
	"github.com/magpierre/tidytable/tidytable"
)

func sampleTable(t *testing.T) *tidytable.Table {
	t.Helper()
	tbl, err := tidytable.NewBuilder().
		Strings("name", "ann", "bob", "cid").
		Ints("age", 30, 25, 41).
		Floats("score", 92.5, 88.0, 77.25).
		Build()
	require.NoError(t, err)
	return tbl
}

func TestParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.parquet")
	tbl := sampleTable(t)

	require.NoError(t, ToParquet(tbl, path))

	back, err := FromParquet(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, tbl.Equal(back))
}

func TestCSVExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	tbl := sampleTable(t)

	require.NoError(t, ToCSV(tbl, path))

	back, err := csvadapter.NewFromFile(path, csvadapter.DefaultConfig())
	require.NoError(t, err)
	assert.True(t, tbl.Equal(back))
}

func TestJSONExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	tbl := sampleTable(t)

	require.NoError(t, ToJSON(tbl, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 3)
	assert.Equal(t, "ann", records[0]["name"])
	assert.Equal(t, float64(30), records[0]["age"])
	assert.Equal(t, 92.5, records[0]["score"])
}

func TestJSONExportNulls(t *testing.T) {
	schema, err := tidytable.NewSchema(
		tidytable.Field{Name: "x", Type: tidytable.TypeInt},
	)
	require.NoError(t, err)
	tbl, err := tidytable.New(schema, []tidytable.Value{
		tidytable.Int(1),
		tidytable.NewNullValue(tidytable.TypeInt),
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, ToJSON(tbl, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)
	assert.Nil(t, records[1]["x"])
}

func TestExportDispatch(t *testing.T) {
	dir := t.TempDir()
	tbl := sampleTable(t)

	require.NoError(t, Export(tbl, filepath.Join(dir, "a.parquet"), FormatParquet))
	require.NoError(t, Export(tbl, filepath.Join(dir, "a.csv"), FormatCSV))
	require.NoError(t, Export(tbl, filepath.Join(dir, "a.json"), FormatJSON))

	err := Export(tbl, filepath.Join(dir, "a.bin"), Format(99))
	assert.Error(t, err)
}
