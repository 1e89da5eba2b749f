package config

import (
	"fmt"

	"github.com/inercia/forkd/pkg/common"
)

// RenderedJob is a job definition with every template expanded: the form the
// runner actually executes.
type RenderedJob struct {
	// Name of the job
	Name string

	// Command is the fully rendered shell command
	Command string

	// Shell used to run the command
	Shell string

	// Env is the rendered list of extra KEY=value entries
	Env []string

	// PidFile is the rendered pid file path ("" disables)
	PidFile string

	// LogFile is the rendered log file path ("" disables)
	LogFile string

	// KeepWorkdir / KeepStdio mirror the job's detach options
	KeepWorkdir bool
	KeepStdio   bool
}

// Render expands the job's command, env and file-path templates with the
// given arguments. The job name is always available to the templates as
// {{ .name }}, so pid and log files can be derived from it.
func (j JobConfig) Render(args map[string]interface{}) (RenderedJob, error) {
	tmplArgs := make(map[string]interface{}, len(args)+1)
	for k, v := range args {
		tmplArgs[k] = v
	}
	tmplArgs["name"] = j.Name

	command, err := common.ProcessTemplate(j.Run.Command, tmplArgs)
	if err != nil {
		return RenderedJob{}, fmt.Errorf("failed to render command: %w", err)
	}

	env, err := common.ProcessTemplateList(j.Run.Env, tmplArgs)
	if err != nil {
		return RenderedJob{}, fmt.Errorf("failed to render env: %w", err)
	}

	pidFile, err := common.ProcessTemplate(j.Detach.PidFile, tmplArgs)
	if err != nil {
		return RenderedJob{}, fmt.Errorf("failed to render pid_file: %w", err)
	}

	logFile, err := common.ProcessTemplate(j.Detach.LogFile, tmplArgs)
	if err != nil {
		return RenderedJob{}, fmt.Errorf("failed to render log_file: %w", err)
	}

	shell := j.Run.Shell
	if shell == "" {
		shell = "sh"
	}

	return RenderedJob{
		Name:        j.Name,
		Command:     command,
		Shell:       shell,
		Env:         env,
		PidFile:     pidFile,
		LogFile:     logFile,
		KeepWorkdir: j.Detach.KeepWorkdir,
		KeepStdio:   j.Detach.KeepStdio,
	}, nil
}
