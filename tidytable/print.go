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

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes the table to w in aligned columns: strings left-aligned,
// numbers right-aligned, absent cells rendered as "NA".
func Fprint(w io.Writer, t *Table) error {
	ncols := t.NumCols()
	widths := make([]int, ncols)
	cells := make([][]string, t.nrows+1)

	header := make([]string, ncols)
	for i, f := range t.schema.fields {
		header[i] = f.Name
		widths[i] = len(f.Name)
	}
	cells[0] = header

	for r := 0; r < t.nrows; r++ {
		row := make([]string, ncols)
		for i := range t.cols {
			s := t.cols[i][r].Formatted
			if t.cols[i][r].IsNull {
				s = "NA"
			}
			row[i] = s
			if len(s) > widths[i] {
				widths[i] = len(s)
			}
		}
		cells[r+1] = row
	}

	var sb strings.Builder
	for _, row := range cells {
		sb.Reset()
		for i, s := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			pad := widths[i] - len(s)
			if t.schema.fields[i].Type.Numeric() {
				sb.WriteString(strings.Repeat(" ", pad))
				sb.WriteString(s)
			} else if i == len(row)-1 {
				sb.WriteString(s)
			} else {
				sb.WriteString(s)
				sb.WriteString(strings.Repeat(" ", pad))
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(sb.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

// String renders the table as Fprint would.
func (t *Table) String() string {
	var sb strings.Builder
	if err := Fprint(&sb, t); err != nil {
		return fmt.Sprintf("tidytable.Table(%v)", err)
	}
	return sb.String()
}
