// Package config provides configuration loading and handling functionality.
//
// It defines the data structures for representing job definitions, which are
// loaded from YAML files, and includes utilities for parsing, validating and
// rendering these definitions before a job is daemonized.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inercia/forkd/pkg/common"
)

// Config represents the top-level configuration structure for the application.
type Config struct {
	// Job is the definition of the process to daemonize
	Job JobConfig `yaml:"job"`
}

// JobConfig represents a single job definition.
type JobConfig struct {
	// Name is the identifier for the job, used in pid and log file names
	Name string `yaml:"name"`

	// Description explains what the job does
	Description string `yaml:"description,omitempty"`

	// Requirements must be satisfied on this host for the job to run
	Requirements JobRequirements `yaml:"requirements,omitempty"`

	// Params defines the parameters the job accepts as name=value arguments
	Params map[string]common.ParamConfig `yaml:"params,omitempty"`

	// Constraints are CEL expressions that must all hold before the job is
	// allowed to daemonize (evaluated over params and host facts)
	Constraints []string `yaml:"constraints,omitempty"`

	// Run specifies the command to execute once detached
	Run RunConfig `yaml:"run"`

	// Detach controls the daemonization behavior
	Detach DetachConfig `yaml:"detach,omitempty"`
}

// JobRequirements restricts the hosts a job definition applies to.
type JobRequirements struct {
	// OS is the operating system the job requires (empty matches any)
	OS string `yaml:"os,omitempty"`

	// Executables is a list of executable names that must be present in PATH
	Executables []string `yaml:"executables,omitempty"`
}

// RunConfig represents the run configuration for a job.
type RunConfig struct {
	// Command is a template for the shell command to execute
	Command string `yaml:"command"`

	// Shell is the shell used to run the command (defaults to "sh")
	Shell string `yaml:"shell,omitempty"`

	// Env is a list of KEY=value entries (templates) added to the job's
	// environment on top of the inherited one
	Env []string `yaml:"env,omitempty"`
}

// DetachConfig represents the daemonization options for a job.
//
// The zero value gives the classic daemon behavior: working directory moved
// to /, standard streams redirected to the null device.
type DetachConfig struct {
	// KeepWorkdir leaves the working directory alone instead of moving to /
	KeepWorkdir bool `yaml:"keep_workdir,omitempty"`

	// KeepStdio leaves stdin/stdout/stderr attached instead of redirecting
	// them to the null device. Mostly useful for debugging.
	KeepStdio bool `yaml:"keep_stdio,omitempty"`

	// PidFile is a template for the file the daemon's pid is written to.
	// Empty disables the pid file.
	PidFile string `yaml:"pid_file,omitempty"`

	// LogFile is a template for the daemon's log file. Empty means the
	// daemon logs nowhere once its stderr is gone.
	LogFile string `yaml:"log_file,omitempty"`
}

// LoadConfig loads the configuration from a YAML file at the specified path.
//
// Parameters:
//   - filepath: Path to the YAML configuration file
//
// Returns:
//   - A pointer to the loaded Config structure
//   - An error if loading or parsing fails
func LoadConfig(filepath string) (*Config, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// Validate checks the loaded configuration for structural problems: missing
// mandatory fields, unknown parameter types, and constraint expressions that
// do not compile. It does not touch the host (no template rendering, no
// requirement checks); that happens when the job runs.
func (c *Config) Validate(logger *common.Logger) error {
	job := c.Job

	if job.Name == "" {
		return fmt.Errorf("job name is required")
	}
	if job.Run.Command == "" {
		return fmt.Errorf("job %q has no command", job.Name)
	}

	for name, param := range job.Params {
		switch param.Type {
		case "", "string", "number", "integer", "boolean":
		default:
			return fmt.Errorf("parameter %q has unsupported type %q", name, param.Type)
		}
	}

	if _, err := common.NewCompiledConstraints(job.Constraints, job.Params, logger.Logger); err != nil {
		return fmt.Errorf("invalid constraints: %w", err)
	}

	// Make sure the templates at least parse, with every parameter zeroed.
	if _, err := job.Render(map[string]interface{}{}); err != nil {
		return fmt.Errorf("invalid templates: %w", err)
	}

	return nil
}

// CheckRequirements reports whether the job's host requirements are met.
func (j JobConfig) CheckRequirements() bool {
	if !common.CheckOSMatches(j.Requirements.OS) {
		return false
	}
	for _, execName := range j.Requirements.Executables {
		if !common.CheckExecutableExists(execName) {
			return false
		}
	}
	return true
}
