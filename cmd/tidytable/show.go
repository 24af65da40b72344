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
)

// showCmd represents the show command.
var showCmd = &cobra.Command{
	Use:   "show [flags] data_file",
	Short: "print the contents of a data file.",
	Long:  `Load a CSV, Parquet or JSON data file and print it as an aligned table.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		tbl, err := loadTable(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if getFlag(cmd, "schema") {
			for _, f := range tbl.Schema().Fields() {
				fmt.Printf("%s\t%s\n", f.Name, f.Type)
			}
			return
		}
		if err := printTable(tbl, getInt(cmd, "limit")); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntP("limit", "n", 10, "maximum rows to print (0 for all)")
	showCmd.Flags().Bool("schema", false, "print column names and types instead of rows")
}
