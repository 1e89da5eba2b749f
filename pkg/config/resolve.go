package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inercia/forkd/pkg/common"
	"github.com/inercia/forkd/pkg/utils"
)

// ResolveConfigPath resolves a job definition reference to a local file path.
//
// The reference can be:
//   - a path to a YAML file, absolute or relative ("~" is expanded)
//   - a bare job name, looked up as <name>.yaml in the forkd jobs directory
//     (~/.forkd/jobs by default)
func ResolveConfigPath(configPath string, logger *common.Logger) (string, error) {
	if configPath == "" {
		return "", fmt.Errorf("configuration file path is empty")
	}

	path := configPath
	if strings.HasPrefix(path, "~/") {
		home, err := utils.GetHome()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}

	if isYAMLPath(path) {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("configuration file does not exist: %s", path)
		}
		logger.Debug("Using configuration file: %s", path)
		return path, nil
	}

	// Not a YAML path: treat it as a job name in the jobs directory.
	jobsDir, err := utils.GetJobsDir()
	if err != nil {
		return "", err
	}
	for _, ext := range []string{".yaml", ".yml"} {
		candidate := filepath.Join(jobsDir, path+ext)
		if _, err := os.Stat(candidate); err == nil {
			logger.Debug("Resolved job %q to %s", configPath, candidate)
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no job definition found for %q (looked in %s)", configPath, jobsDir)
}

func isYAMLPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}
