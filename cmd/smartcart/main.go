// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

// Command smartcart runs recommendations, shopping list planning and user
// similarity lookups directly against CSV files, without a server.
//
// Examples:
//
//	smartcart recommend --interactions orders.csv --user 42 --top 5
//	smartcart plan --catalog products.csv --budget 40 --mode quantity \
//	    --pref Produce:1:true --pref Dairy:2 --healthy
//	smartcart similarity --interactions orders.csv --user 42 --other 7 --json
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/smartcart/internal/logging"
)

var version = "dev"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	json     bool
	logLevel string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "smartcart",
		Short:         "Grocery recommendations and budget-constrained shopping lists",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !logging.ValidLevel(opts.logLevel) {
				return fmt.Errorf("invalid --log-level %q", opts.logLevel)
			}
			logging.Init(logging.Config{
				Level:     opts.logLevel,
				Format:    "console",
				Timestamp: true,
				Output:    stderr,
			})
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().BoolVar(&opts.json, "json", false, "print results as JSON")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")

	root.AddCommand(
		newRecommendCmd(opts),
		newPlanCmd(opts),
		newSimilarityCmd(opts),
	)
	return root
}
