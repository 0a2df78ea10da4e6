package main

import (
	"fmt"

	"github.com/aatumaykin/benchkit/internal/candidates"
	"github.com/spf13/cobra"
)

var listFilter string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List benchmark candidates",
	Long:  `List the candidates of every suite, optionally narrowed by --filter.`,
	Args:  cobra.NoArgs,
	RunE:  listHandler,
}

func listHandler(cmd *cobra.Command, args []string) error {
	filter, err := candidates.NewFilter(listFilter)
	if err != nil {
		return err
	}

	add, err := candidates.AddSuite(1)
	if err != nil {
		return err
	}
	reduce, err := candidates.ReduceSuite(0)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printSuite := func(name string, labels []string) {
		fmt.Fprintf(out, "%s:\n", name)
		for _, l := range labels {
			fmt.Fprintf(out, "  %s\n", l)
		}
	}
	printSuite(add.Name, add.Filter(filter).Labels())
	printSuite(reduce.Name, reduce.Filter(filter).Labels())
	return nil
}

func init() {
	listCmd.Flags().StringVar(&listFilter, "filter", "", "RE2 pattern selecting candidates by label")
}
