// Package utils provides utility functions for forkd
package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ForkdDirEnv is the environment variable that overrides the forkd home directory
	ForkdDirEnv = "FORKD_DIR"
	// ForkdHome is the name of the forkd directory under the user's home
	ForkdHome = ".forkd"
	// ForkdJobsDir is the name of the job-definitions directory within forkd home
	ForkdJobsDir = "jobs"
	// ForkdRunDir is the name of the runtime directory (pid files, default logs)
	ForkdRunDir = "run"
)

// GetHome returns the user's home directory
func GetHome() (string, error) {
	home := os.Getenv("HOME")
	if home == "" {
		return "", fmt.Errorf("unable to determine home directory")
	}
	return home, nil
}

// GetForkdHome returns the forkd directory, typically ~/.forkd, honoring the
// FORKD_DIR override.
func GetForkdHome() (string, error) {
	if forkdHome := os.Getenv(ForkdDirEnv); forkdHome != "" {
		return forkdHome, nil
	}

	home, err := GetHome()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ForkdHome), nil
}

// GetJobsDir returns the directory job definitions are looked up in,
// typically ~/.forkd/jobs.
func GetJobsDir() (string, error) {
	forkdHome, err := GetForkdHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(forkdHome, ForkdJobsDir), nil
}

// GetRunDir returns the runtime directory for pid files and default log
// files, typically ~/.forkd/run. The directory is created if missing: a
// daemon has to be able to drop its pid file on first run.
func GetRunDir() (string, error) {
	forkdHome, err := GetForkdHome()
	if err != nil {
		return "", err
	}
	runDir := filepath.Join(forkdHome, ForkdRunDir)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}
	return runDir, nil
}
