package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inercia/forkd/pkg/common"
	"github.com/inercia/forkd/pkg/config"
	"github.com/inercia/forkd/pkg/daemon"
)

// execConfigFile is the job definition the exec command operates on
var execConfigFile string

// execCommand runs a job in the foreground
var execCommand = &cobra.Command{
	Use:   "exec [name=value...]",
	Short: "Run a job in the foreground",
	Long: `
Run a job in the foreground, attached to the current terminal.

Sometimes it is difficult to debug a job that runs detached: its output
goes to the null device and failures are only visible in the log file.
This command runs the same job with the same parameter handling,
constraint evaluation and template rendering, but without daemonizing,
so everything shows up in the terminal.

For example:

$ forkd exec -c examples/backup.yaml dest=/tmp/backups

Any error in constraint evaluation or command execution is reported
directly.
`,
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

		logger.Info("Executing job in the foreground")

		if execConfigFile == "" {
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

		configPath, err := config.ResolveConfigPath(execConfigFile, logger)
		if err != nil {
			logger.Error("Failed to resolve job definition: %v", err)
			return err
		}

		runner := daemon.New(daemon.Config{
			ConfigFile: configPath,
			Params:     args,
			Logger:     logger,
			Version:    version,
		})

		return runner.Exec()
	},
}

// init adds the exec command to the root command
func init() {
	rootCmd.AddCommand(execCommand)

	execCommand.Flags().StringVarP(&execConfigFile, "config", "c", "", "Path to the YAML job definition, or a job name (required)")

	_ = execCommand.MarkFlagRequired("config")
}
