// Package root contains the command-line interface implementation for forkd.
//
// It defines the root command and all subcommands using Cobra and manages CLI
// flags, execution flow, and global application state.
package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inercia/forkd/pkg/common"
)

// ApplicationName is the name of the application used in various places
const ApplicationName = "forkd"

// Common command-line flags
var (
	logFile  string
	logLevel string

	// Application version (can be overridden at build time)
	version = "1.0.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   ApplicationName,
	Short: "forkd",
	Long: `forkd turns ordinary commands into Unix daemons.
It loads a job definition from a YAML file, checks its constraints, then
detaches the job from the terminal with a classic double fork: new session,
working directory moved to /, standard streams pointed at the null device.`,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is specified, show the help
		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer common.RecoverPanic(nil, "")

	if err := rootCmd.Execute(); err != nil {
		common.GetLogger().Error("Command execution failed: %v", err)
		fmt.Println(err)
		os.Exit(1)
	}
}

// init sets up global flags
func init() {
	rootCmd.PersistentFlags().StringVarP(&logFile, "logfile", "l", "", "Path to the log file (optional)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "", "info", "Log level: none, error, info, debug")

	// Add version flag to all commands
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Print version information")
}

// initLogger initializes the logger with the specified configuration
func initLogger() (*common.Logger, error) {
	level := common.LogLevelFromString(logLevel)
	logger, err := common.NewLogger("["+ApplicationName+"] ", logFile, level, true)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	common.SetLogger(logger)
	return logger, nil
}
