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

package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/tidytable/tidytable"
)

func mustType(t *testing.T, tbl *tidytable.Table, name string) tidytable.DataType {
	t.Helper()
	typ, err := tbl.Schema().Type(name)
	require.NoError(t, err)
	return typ
}

func TestNewFromReader(t *testing.T) {
	data := "name,age,score\nann,30,92.5\nbob,25,88.0\n"
	tbl, err := NewFromReader(strings.NewReader(data), DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, []string{"name", "age", "score"}, tbl.ColumnNames())
	assert.Equal(t, tidytable.TypeString, mustType(t, tbl, "name"))
	assert.Equal(t, tidytable.TypeInt, mustType(t, tbl, "age"))
	assert.Equal(t, tidytable.TypeFloat, mustType(t, tbl, "score"))

	v, err := tbl.Cell(1, "age")
	require.NoError(t, err)
	assert.Equal(t, int64(25), v.Raw)
}

func TestNewFromReaderNulls(t *testing.T) {
	data := "name,age\nann,30\nbob,\ncid,NA\n"
	tbl, err := NewFromReader(strings.NewReader(data), DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, tidytable.TypeInt, mustType(t, tbl, "age"))
	for _, row := range []int{1, 2} {
		v, err := tbl.Cell(row, "age")
		require.NoError(t, err)
		assert.True(t, v.IsNull)
	}
}

func TestNewFromReaderNoHeaders(t *testing.T) {
	config := DefaultConfig()
	config.HasHeaders = false
	tbl, err := NewFromReader(strings.NewReader("a,1\nb,2\n"), config)
	require.NoError(t, err)

	assert.Equal(t, []string{"col1", "col2"}, tbl.ColumnNames())
	assert.Equal(t, 2, tbl.NumRows())
}

func TestNewFromReaderNoInference(t *testing.T) {
	config := DefaultConfig()
	config.InferTypes = false
	tbl, err := NewFromReader(strings.NewReader("age\n30\n"), config)
	require.NoError(t, err)

	assert.Equal(t, tidytable.TypeString, mustType(t, tbl, "age"))
	v, err := tbl.Cell(0, "age")
	require.NoError(t, err)
	assert.Equal(t, "30", v.Raw)
}

func TestNewFromReaderMixedColumnFallsBack(t *testing.T) {
	tbl, err := NewFromReader(strings.NewReader("x\n1\ntwo\n"), DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, tidytable.TypeString, mustType(t, tbl, "x"))
}

func TestNewFromReaderEmpty(t *testing.T) {
	_, err := NewFromReader(strings.NewReader(""), DefaultConfig())
	assert.ErrorIs(t, err, tidytable.ErrEmptyData)
}

func TestWriteRoundTrip(t *testing.T) {
	data := "name,age\nann,30\nbob,\n"
	tbl, err := NewFromReader(strings.NewReader(data), DefaultConfig())
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, Write(tbl, &sb, DefaultConfig()))

	back, err := NewFromReader(strings.NewReader(sb.String()), DefaultConfig())
	require.NoError(t, err)
	assert.True(t, tbl.Equal(back))
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	tbl, err := NewFromReader(strings.NewReader("name,score\nann,92.5\n"), DefaultConfig())
	require.NoError(t, err)

	require.NoError(t, WriteFile(tbl, path, DefaultConfig()))
	back, err := NewFromFile(path, DefaultConfig())
	require.NoError(t, err)
	assert.True(t, tbl.Equal(back))
}

func TestDetectSeparator(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    rune
	}{
		{"comma", "a,b,c\n1,2,3\n", ','},
		{"semicolon", "a;b;c\n1;2;3\n", ';'},
		{"tab", "a\tb\tc\n", '\t'},
		{"pipe", "a|b|c\n", '|'},
		{"empty defaults to comma", "", ','},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sep.csv")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			sep, err := DetectSeparator(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sep)
		})
	}
}
