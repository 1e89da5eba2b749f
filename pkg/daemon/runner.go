// Package daemon implements the forkd job runner.
//
// It loads a job definition, checks its host requirements and constraints,
// and either executes the job in the foreground or detaches it into a real
// daemon with pkg/fork before executing it.
package daemon

import (
	"fmt"
	"os"
	"strings"

	"github.com/inercia/forkd/pkg/common"
	"github.com/inercia/forkd/pkg/config"
	"github.com/inercia/forkd/pkg/fork"
)

// Runner loads and runs a single job definition.
type Runner struct {
	configFile string
	params     []string
	version    string

	logger *common.Logger
}

// Config contains the configuration options for creating a new Runner
type Config struct {
	ConfigFile string         // Path to the YAML job definition
	Params     []string       // name=value parameter arguments
	Logger     *common.Logger // Logger for runner operations
	Version    string         // Version string
}

// New creates a new Runner instance with the provided configuration
func New(cfg Config) *Runner {
	return &Runner{
		configFile: cfg.ConfigFile,
		params:     cfg.Params,
		version:    cfg.Version,
		logger:     cfg.Logger,
	}
}

// Validate verifies the job definition without running anything: structure,
// parameter types, constraint compilation and template syntax.
func (r *Runner) Validate() error {
	r.logger.Info("Validating job definition: %s", r.configFile)

	cfg, err := config.LoadConfig(r.configFile)
	if err != nil {
		r.logger.Error("Failed to load config: %v", err)
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(r.logger); err != nil {
		r.logger.Error("Invalid job definition: %v", err)
		return err
	}

	r.logger.Info("Job %q is valid", cfg.Job.Name)
	return nil
}

// Exec runs the job in the foreground, attached to the current terminal.
// This is the debugging path: same loading, parameters, constraints and
// rendering as Start, but no detaching.
func (r *Runner) Exec() error {
	job, err := r.prepare()
	if err != nil {
		return err
	}

	r.logger.Info("Running job %q in the foreground", job.Name)
	return runCommand(job.Shell, job.Command, job.Env, os.Stdout, os.Stderr, r.logger)
}

// Start detaches the current process into a daemon and executes the job in
// it. Everything that can fail in a user-visible way (loading, parameters,
// constraints, rendering) happens before the detach point, while stderr still
// goes to the terminal; afterwards the only outputs are the pid file, the job
// log file and the command's own side effects.
//
// On success Start never returns in the calling process: the caller exits
// inside the double fork, and the surviving daemon process runs the job to
// completion before exiting itself.
func (r *Runner) Start() error {
	job, err := r.prepare()
	if err != nil {
		return err
	}

	pidFile, err := resolvePidFile(job)
	if err != nil {
		return err
	}

	r.logger.Info("Detaching job %q (pid file: %s)", job.Name, pidFile)

	res, err := fork.Daemon(job.KeepWorkdir, job.KeepStdio)
	if err != nil {
		// Whichever process observed the failure reports it; if it was one
		// of the processes about to exit, the terminal never sees this.
		r.logger.Error("Daemonization failed: %v", err)
		return err
	}
	if !res.IsChild() {
		// Daemon exits the intermediate processes itself; a parent result
		// here would mean the double fork is broken.
		return fmt.Errorf("unexpected parent result after daemonization")
	}

	// From here on this is the daemon. Re-point logging at the job's log
	// file; stderr is the null device now.
	logger := r.openJobLogger(job)
	if logger != r.logger {
		common.SetLogger(logger)
		defer func() { _ = logger.Close() }()
	}

	logger.Info("Daemon started: forkd %s job=%s pid=%d", r.version, job.Name, os.Getpid())

	if err := writePidFile(pidFile); err != nil {
		logger.Error("Failed to write pid file: %v", err)
		return err
	}
	defer removePidFile(pidFile, logger)

	var out *os.File
	if job.LogFile != "" {
		// Command output shares the job log file.
		out, err = os.OpenFile(job.LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			logger.Error("Failed to open log file for command output: %v", err)
			return err
		}
		defer func() { _ = out.Close() }()
	}

	var stdout, stderr *os.File
	if out != nil {
		stdout, stderr = out, out
	}
	err = runCommand(job.Shell, job.Command, job.Env, stdout, stderr, logger)
	if err != nil {
		logger.Error("Job %q failed: %v", job.Name, err)
		return err
	}

	logger.Info("Job %q finished", job.Name)
	return nil
}

// openJobLogger returns a logger pointed at the job's log file, or the
// runner's own logger when the job has none. An unopenable log file falls
// back to the runner's logger too, but the failure is recorded there first:
// in a detached process that trace may be the only evidence the daemon will
// run without a log.
func (r *Runner) openJobLogger(job config.RenderedJob) *common.Logger {
	if job.LogFile == "" {
		return r.logger
	}
	fileLogger, err := common.NewLogger("[forkd:"+job.Name+"] ", job.LogFile, r.logger.Level(), false)
	if err != nil {
		r.logger.Error("Failed to open job log file %s: %v", job.LogFile, err)
		return r.logger
	}
	return fileLogger
}

// load reads and validates the job definition.
func (r *Runner) load() (config.JobConfig, error) {
	cfg, err := config.LoadConfig(r.configFile)
	if err != nil {
		r.logger.Error("Failed to load config: %v", err)
		return config.JobConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(r.logger); err != nil {
		return config.JobConfig{}, err
	}
	return cfg.Job, nil
}

// prepare loads the job definition and takes it all the way to a rendered
// job: host requirements, parameter parsing, constraint evaluation, template
// rendering.
func (r *Runner) prepare() (config.RenderedJob, error) {
	job, err := r.load()
	if err != nil {
		return config.RenderedJob{}, err
	}

	if !job.CheckRequirements() {
		r.logger.Error("Host requirements not met for job %q", job.Name)
		return config.RenderedJob{}, fmt.Errorf("host requirements not met for job %q", job.Name)
	}

	args, err := parseParams(r.params, job.Params)
	if err != nil {
		r.logger.Error("Invalid parameters: %v", err)
		return config.RenderedJob{}, err
	}

	constraints, err := common.NewCompiledConstraints(job.Constraints, job.Params, r.logger.Logger)
	if err != nil {
		return config.RenderedJob{}, fmt.Errorf("failed to compile constraints: %w", err)
	}
	ok, err := constraints.Evaluate(args, job.Params)
	if err != nil {
		return config.RenderedJob{}, fmt.Errorf("failed to evaluate constraints: %w", err)
	}
	if !ok {
		r.logger.Error("Constraints not satisfied for job %q", job.Name)
		return config.RenderedJob{}, fmt.Errorf("constraints not satisfied for job %q", job.Name)
	}

	rendered, err := job.Render(args)
	if err != nil {
		r.logger.Error("Failed to render job: %v", err)
		return config.RenderedJob{}, err
	}
	return rendered, nil
}

// parseParams converts name=value arguments into typed values according to
// the job's parameter declarations, applies defaults, and enforces required
// parameters.
func parseParams(args []string, paramTypes map[string]common.ParamConfig) (map[string]interface{}, error) {
	params := make(map[string]interface{})

	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid parameter format: %s (expected name=value)", arg)
		}
		name, value := parts[0], parts[1]

		paramConfig, exists := paramTypes[name]
		if !exists {
			return nil, fmt.Errorf("parameter not defined in job: %s", name)
		}

		typedValue, err := common.ConvertStringToType(value, paramConfig.Type)
		if err != nil {
			return nil, fmt.Errorf("failed to convert parameter %s: %w", name, err)
		}
		params[name] = typedValue
	}

	for name, paramConfig := range paramTypes {
		if _, exists := params[name]; exists {
			continue
		}
		if paramConfig.Default != nil {
			params[name] = paramConfig.Default
			continue
		}
		if paramConfig.Required {
			return nil, fmt.Errorf("required parameter missing: %s", name)
		}
	}

	return params, nil
}
