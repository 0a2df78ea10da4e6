package main

import (
	"errors"
	"fmt"

	"github.com/aatumaykin/benchkit/internal/config"
	"github.com/aatumaykin/benchkit/internal/constants"
	"github.com/aatumaykin/benchkit/internal/logger"
	"github.com/spf13/cobra"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Validate benchkit configuration.`,
}

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate configuration file",
	Long:  `Validate the configuration file and check for errors.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  configValidateHandler,
}

func configValidateHandler(cmd *cobra.Command, args []string) error {
	log, err := logger.NewWithWriter(cmd.ErrOrStderr(), "text", "info")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	configPath := constants.DefaultConfigPath
	if len(args) > 0 {
		configPath = args[0]
	}

	log.Info("Validating configuration", logger.Field{Key: "path", Value: configPath})

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Error("Failed to load config", err)
		return err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			log.Error("Validation error", e)
		}
		return fmt.Errorf("config validation failed with %d errors: %w", len(errs), errors.Join(errs...))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
	return nil
}

func init() {
	configCmd.AddCommand(configValidateCmd)
}
