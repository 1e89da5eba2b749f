package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inercia/forkd/pkg/common"
	"github.com/inercia/forkd/pkg/config"
	"github.com/inercia/forkd/pkg/daemon"
)

// validateConfigFile is the job definition the validate command checks
var validateConfigFile string

// validateCommand represents the validate command which checks a job definition
var validateCommand = &cobra.Command{
	Use:   "validate",
	Short: "Validate a job definition",
	Long: `Validate a job definition without running anything.
This command checks the definition file for errors including:
- File format and schema validation
- Parameter definitions
- Constraint expression syntax
- Command and path template syntax`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		logger, err := initLogger()
		if err != nil {
			return err
		}

		defer func() {
			if logger != nil {
				common.RecoverPanic(logger.Logger, logger.FilePath())
			}
		}()

		logger.Info("Validating job definition")

		if validateConfigFile == "" {
			logger.Error("Job definition is required")
			return fmt.Errorf("job definition is required. Use --config or -c flag to specify the path")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := common.GetLogger()

		defer func() {
			if logger != nil {
				common.RecoverPanic(logger.Logger, logger.FilePath())
			}
		}()

		configPath, err := config.ResolveConfigPath(validateConfigFile, logger)
		if err != nil {
			logger.Error("Failed to resolve job definition: %v", err)
			return err
		}

		runner := daemon.New(daemon.Config{
			ConfigFile: configPath,
			Logger:     logger,
			Version:    version,
		})

		if err := runner.Validate(); err != nil {
			logger.Error("Job definition validation failed: %v", err)
			return fmt.Errorf("job definition validation failed: %w", err)
		}

		fmt.Println("Job definition is valid")
		return nil
	},
}

// init adds the validate command to the root command
func init() {
	rootCmd.AddCommand(validateCommand)

	validateCommand.Flags().StringVarP(&validateConfigFile, "config", "c", "", "Path to the YAML job definition, or a job name (required)")

	_ = validateCommand.MarkFlagRequired("config")
}
