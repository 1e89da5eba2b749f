package daemon

import (
	"strings"
)

// shellCommandArgs returns the correct invocation arguments for the shell
// the job is configured with.
func shellCommandArgs(shell string, command string) (string, []string) {
	shellLower := strings.ToLower(shell)

	// PowerShell Core might be installed on Unix systems
	if strings.Contains(shellLower, "powershell") ||
		strings.HasSuffix(shellLower, "pwsh") {
		return shell, []string{"-Command", command}
	}

	// For Unix-like shells and default fallback
	return shell, []string{"-c", command}
}
