package main

import (
	"github.com/aatumaykin/benchkit/internal/config"
	"github.com/aatumaykin/benchkit/internal/constants"
	"github.com/spf13/cobra"
)

var envPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "benchkit",
	Short: "benchkit - concurrent micro-benchmark harness",
	Long: `benchkit times candidate implementations of the same operation on a
worker pool and reports them side by side: native Go, reflection-bound calls
and interpreted Go.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadEnvOptional(envPath)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envPath, "env", constants.DefaultEnvPath, "Path to .env file")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(threadsCmd)
}
