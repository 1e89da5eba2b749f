package root

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/inercia/forkd/pkg/common"
	"github.com/inercia/forkd/pkg/config"
	"github.com/inercia/forkd/pkg/daemon"
)

// runConfigFile is the job definition the run command operates on
var runConfigFile string

// runCommand represents the run command which daemonizes a job
var runCommand = &cobra.Command{
	Use:   "run [name=value...]",
	Short: "Run a job as a daemon",
	Long: `Run a job in the background, detached from the terminal.

The job definition is loaded from a YAML file (or looked up by name in
~/.forkd/jobs), its parameters are filled in from name=value arguments,
and its constraints are checked. The process then double-forks: the
daemon ends up in its own session, with / as working directory and the
null device on stdin/stdout/stderr, and executes the job command there.

For example:

$ forkd run -c examples/backup.yaml dest=/backups level=9

The daemon's pid is written to the job's pid file; use "forkd status"
to inspect it later.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		logger, err := initLogger()
		if err != nil {
			return err
		}

		// Setup panic handler
		defer func() {
			if logger != nil {
				common.RecoverPanic(logger.Logger, logger.FilePath())
			}
		}()

		logger.Info("Starting %s", ApplicationName)

		if runConfigFile == "" {
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

		configPath, err := config.ResolveConfigPath(runConfigFile, logger)
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

		// Anything printed after the detach point never reaches the
		// terminal, so announce the hand-off now.
		green := color.New(color.FgGreen)
		green.Printf("Detaching %s into the background\n", runConfigFile)

		return runner.Start()
	},
}

// init adds flags to the run command
func init() {
	rootCmd.AddCommand(runCommand)

	runCommand.Flags().StringVarP(&runConfigFile, "config", "c", "", "Path to the YAML job definition, or a job name (required)")

	_ = runCommand.MarkFlagRequired("config")
}
