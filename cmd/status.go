package root

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/inercia/forkd/pkg/common"
	"github.com/inercia/forkd/pkg/config"
	"github.com/inercia/forkd/pkg/daemon"
)

// statusConfigFile is the job definition the status command inspects
var statusConfigFile string

// statusCommand reports whether a detached job is still running
var statusCommand = &cobra.Command{
	Use:   "status",
	Short: "Show the status of a detached job",
	Long: `Show the status of a job started with "forkd run".

The job's pid file is read and the recorded process is probed. Templates
in the pid file path are rendered with parameter defaults only.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		logger, err := initLogger()
		if err != nil {
			return err
		}

		logger.Debug("Checking job status")

		if statusConfigFile == "" {
			return fmt.Errorf("job definition is required. Use --config or -c flag to specify the path")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := common.GetLogger()

		configPath, err := config.ResolveConfigPath(statusConfigFile, logger)
		if err != nil {
			logger.Error("Failed to resolve job definition: %v", err)
			return err
		}

		runner := daemon.New(daemon.Config{
			ConfigFile: configPath,
			Logger:     logger,
			Version:    version,
		})

		status, err := runner.Status()
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen)
		red := color.New(color.FgRed)

		switch {
		case status.Running:
			green.Printf("%s: running (pid %d)\n", status.Name, status.Pid)
		case status.Pid != 0:
			red.Printf("%s: not running (stale pid file %s, pid %d)\n", status.Name, status.PidFile, status.Pid)
		default:
			red.Printf("%s: not running\n", status.Name)
		}
		return nil
	},
}

// init adds the status command to the root command
func init() {
	rootCmd.AddCommand(statusCommand)

	statusCommand.Flags().StringVarP(&statusConfigFile, "config", "c", "", "Path to the YAML job definition, or a job name (required)")

	_ = statusCommand.MarkFlagRequired("config")
}
