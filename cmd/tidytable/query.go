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
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/magpierre/tidytable/query"
	"github.com/magpierre/tidytable/tidytable"
)

// queryCmd represents the query command.
var queryCmd = &cobra.Command{
	Use:   "query [flags] data_file",
	Short: "filter, group and summarize a data file.",
	Long: `Load a data file and run a filter / group-by / summarize pipeline over it.

Filters use comparison syntax (age > 30 AND name ~ ann) or, with --expr,
a Go expression over the row map (row["age"].(int64) > 30).
Aggregations are name=fn:column where fn is one of mean, sum, min, max,
count, stddev or geomean.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		tbl, err := loadTable(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		tbl, err = runQuery(cmd, tbl)
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

func runQuery(cmd *cobra.Command, tbl *tidytable.Table) (*tidytable.Table, error) {
	if where := getString(cmd, "where"); where != "" {
		f, err := query.Parse(where, tbl.Schema())
		if err != nil {
			return nil, err
		}
		log.Debugf("applying filter %s", f.Description())
		if tbl, err = tbl.Filter(f); err != nil {
			return nil, err
		}
	}
	if expr := getString(cmd, "expr"); expr != "" {
		pred, err := query.CompilePredicate(expr)
		if err != nil {
			return nil, err
		}
		var errW error
		if tbl, errW = tbl.Where(pred); errW != nil {
			return nil, errW
		}
	}

	keys := getStringArray(cmd, "group-by")
	aggSpecs := getStringArray(cmd, "agg")
	if len(aggSpecs) == 0 {
		if len(keys) > 0 {
			return nil, fmt.Errorf("--group-by requires at least one --agg")
		}
		return tbl, nil
	}

	aggs, err := parseAggSpecs(aggSpecs)
	if err != nil {
		return nil, err
	}
	grouped, err := tbl.GroupBy(keys...)
	if err != nil {
		return nil, err
	}
	opts := []tidytable.SummarizeOption{}
	if getFlag(cmd, "propagate-nulls") {
		opts = append(opts, tidytable.WithNullPolicy(tidytable.PropagateNulls))
	}
	return grouped.Summarize(aggs, opts...)
}

// parseAggSpecs parses name=fn:column aggregation specs.
func parseAggSpecs(specs []string) ([]tidytable.Aggregation, error) {
	aggs := make([]tidytable.Aggregation, 0, len(specs))
	for _, spec := range specs {
		name, rest, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid aggregation %q, expected name=fn:column", spec)
		}
		fnName, column, ok := strings.Cut(rest, ":")
		if !ok {
			return nil, fmt.Errorf("invalid aggregation %q, expected name=fn:column", spec)
		}
		fn, err := reducerByName(fnName)
		if err != nil {
			return nil, err
		}
		aggs = append(aggs, tidytable.Aggregation{Name: name, Column: column, Fn: fn})
	}
	return aggs, nil
}

func reducerByName(name string) (tidytable.ReduceFunc, error) {
	switch strings.ToLower(name) {
	case "mean":
		return tidytable.Mean, nil
	case "sum":
		return tidytable.Sum, nil
	case "min":
		return tidytable.Min, nil
	case "max":
		return tidytable.Max, nil
	case "count":
		return tidytable.Count, nil
	case "stddev":
		return tidytable.StdDev, nil
	case "geomean":
		return tidytable.GeoMean, nil
	default:
		return nil, fmt.Errorf("unknown aggregation function %q", name)
	}
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringP("where", "w", "", "comparison filter (col > 5 AND name ~ ann)")
	queryCmd.Flags().String("expr", "", "Go expression filter over the row map")
	queryCmd.Flags().StringArray("group-by", nil, "grouping key column (repeatable)")
	queryCmd.Flags().StringArray("agg", nil, "aggregation name=fn:column (repeatable)")
	queryCmd.Flags().Bool("propagate-nulls", false, "absent inputs make the aggregate absent")
	queryCmd.Flags().StringP("output", "o", "", "write result to file instead of stdout")
	queryCmd.Flags().IntP("limit", "n", 0, "maximum rows to print (0 for all)")
}
