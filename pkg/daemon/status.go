package daemon

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// Status describes the observed state of a detached job.
type Status struct {
	// Name of the job
	Name string

	// PidFile is the pid file path the job uses
	PidFile string

	// Pid recorded in the pid file (0 when there is no pid file)
	Pid int

	// Running reports whether a process with that pid exists
	Running bool
}

// Status inspects the job's pid file and reports whether the daemon is still
// alive. Templates are rendered with parameter defaults only: no required
// parameters or constraints get enforced just to look at a pid file.
func (r *Runner) Status() (Status, error) {
	job, err := r.load()
	if err != nil {
		return Status{}, err
	}

	args := make(map[string]interface{})
	for name, param := range job.Params {
		if param.Default != nil {
			args[name] = param.Default
		}
	}

	rendered, err := job.Render(args)
	if err != nil {
		return Status{}, err
	}

	pidFile, err := resolvePidFile(rendered)
	if err != nil {
		return Status{}, err
	}

	status := Status{Name: job.Name, PidFile: pidFile}

	pid, err := ReadPidFile(pidFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return status, nil
		}
		return status, err
	}

	status.Pid = pid
	status.Running = processAlive(pid)
	return status, nil
}

// processAlive probes a pid with signal 0. EPERM still means the process
// exists, just owned by someone else.
func processAlive(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}
