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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/magpierre/tidytable/tidytable"
)

// pivotCmd represents the pivot command.
var pivotCmd = &cobra.Command{
	Use:   "pivot [flags] data_file",
	Short: "reshape a data file between long and wide form.",
	Long: `Reshape a data file. With --wider, the values of the names-from column
become new columns holding the values-from column. With --longer, the listed
columns collapse into name/value pairs.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		tbl, err := loadTable(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		tbl, err = runPivot(cmd, tbl)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if output := getString(cmd, "output"); output != "" {
			if err := saveTable(tbl, output); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			return
		}
		if err := printTable(tbl, getInt(cmd, "limit")); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func runPivot(cmd *cobra.Command, tbl *tidytable.Table) (*tidytable.Table, error) {
	wider := getStringSlice(cmd, "wider")
	longer := getStringSlice(cmd, "longer")
	switch {
	case len(wider) > 0 && len(longer) > 0:
		return nil, fmt.Errorf("--wider and --longer are mutually exclusive")
	case len(wider) > 0:
		if len(wider) != 2 {
			return nil, fmt.Errorf("--wider needs exactly two columns: names-from,values-from")
		}
		return tbl.PivotWider(wider[0], wider[1])
	case len(longer) > 0:
		return tbl.PivotLonger(longer, getString(cmd, "names-to"), getString(cmd, "values-to"))
	default:
		return nil, fmt.Errorf("one of --wider or --longer is required")
	}
}

func init() {
	rootCmd.AddCommand(pivotCmd)
	pivotCmd.Flags().StringSlice("wider", nil, "names-from,values-from columns for pivot to wide form")
	pivotCmd.Flags().StringSlice("longer", nil, "comma-separated value columns to collapse to long form")
	pivotCmd.Flags().String("names-to", "name", "name column for --longer output")
	pivotCmd.Flags().String("values-to", "value", "value column for --longer output")
	pivotCmd.Flags().StringP("output", "o", "", "write result to file instead of stdout")
	pivotCmd.Flags().IntP("limit", "n", 0, "maximum rows to print (0 for all)")
}
