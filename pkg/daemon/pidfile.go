package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/inercia/forkd/pkg/common"
	"github.com/inercia/forkd/pkg/config"
	"github.com/inercia/forkd/pkg/utils"
)

// resolvePidFile returns the pid file path for a job, defaulting to
// <run dir>/<job name>.pid when the job does not name one.
func resolvePidFile(job config.RenderedJob) (string, error) {
	if job.PidFile != "" {
		return job.PidFile, nil
	}
	runDir, err := utils.GetRunDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve run directory: %w", err)
	}
	return filepath.Join(runDir, job.Name+".pid"), nil
}

// writePidFile records the current process id. The write goes through a
// temporary file and a rename so readers never observe a partial pid.
func writePidFile(path string) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write pid file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to write pid file: %w", err)
	}
	return nil
}

// removePidFile deletes the pid file, logging rather than failing: the job
// has already run by the time cleanup happens.
func removePidFile(path string, logger *common.Logger) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Error("Failed to remove pid file %s: %v", path, err)
	}
}

// ReadPidFile returns the process id recorded in a pid file.
func ReadPidFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read pid file: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid pid file %s: %w", path, err)
	}
	return pid, nil
}
