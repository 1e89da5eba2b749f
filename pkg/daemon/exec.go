package daemon

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/inercia/forkd/pkg/common"
)

// runCommand executes a rendered job command through the configured shell.
// stdout and stderr may be nil, in which case the command inherits the
// process's descriptors (the null device when running detached).
func runCommand(shell, command string, env []string, stdout, stderr *os.File, logger *common.Logger) error {
	name, args := shellCommandArgs(shell, command)

	logger.Debug("Executing: %s %v", name, args)

	cmd := exec.Command(name, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdin = nil
	if stdout != nil {
		cmd.Stdout = stdout
	}
	if stderr != nil {
		cmd.Stderr = stderr
	}

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("command exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run command: %w", err)
	}
	return nil
}
