package daemon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inercia/forkd/pkg/common"
	"github.com/inercia/forkd/pkg/config"
)

func testLogger(t *testing.T) *common.Logger {
	t.Helper()
	logger, err := common.NewLogger("[test] ", "", common.LogLevelError, false)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

func writeJobFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write job file: %v", err)
	}
	return path
}

func TestParseParams(t *testing.T) {
	paramTypes := map[string]common.ParamConfig{
		"name":  {Type: "string", Required: true},
		"count": {Type: "integer"},
		"ratio": {Type: "number", Default: 0.5},
		"force": {Type: "boolean"},
	}

	tests := []struct {
		name    string
		args    []string
		want    map[string]interface{}
		wantErr string
	}{
		{
			name: "all parameters given",
			args: []string{"name=web", "count=3", "ratio=0.9", "force=true"},
			want: map[string]interface{}{
				"name": "web", "count": int64(3), "ratio": 0.9, "force": true,
			},
		},
		{
			name: "default applied",
			args: []string{"name=web"},
			want: map[string]interface{}{"name": "web", "ratio": 0.5},
		},
		{
			name:    "missing required parameter",
			args:    []string{"count=3"},
			wantErr: "required parameter missing: name",
		},
		{
			name:    "undefined parameter",
			args:    []string{"name=web", "bogus=1"},
			wantErr: "parameter not defined in job: bogus",
		},
		{
			name:    "malformed argument",
			args:    []string{"name"},
			wantErr: "invalid parameter format",
		},
		{
			name:    "wrong type",
			args:    []string{"name=web", "count=lots"},
			wantErr: "failed to convert parameter count",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseParams(tc.args, paramTypes)
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d params, got %d: %v", len(tc.want), len(got), got)
			}
			for k, v := range tc.want {
				if got[k] != v {
					t.Errorf("param %s: expected %v (%T), got %v (%T)", k, v, v, got[k], got[k])
				}
			}
		})
	}
}

func TestShellCommandArgs(t *testing.T) {
	tests := []struct {
		shell    string
		wantArgs []string
	}{
		{"sh", []string{"-c", "echo hi"}},
		{"/bin/bash", []string{"-c", "echo hi"}},
		{"pwsh", []string{"-Command", "echo hi"}},
		{"powershell", []string{"-Command", "echo hi"}},
	}

	for _, tc := range tests {
		name, args := shellCommandArgs(tc.shell, "echo hi")
		if name != tc.shell {
			t.Errorf("shell %s: expected name %q, got %q", tc.shell, tc.shell, name)
		}
		if len(args) != 2 || args[0] != tc.wantArgs[0] || args[1] != tc.wantArgs[1] {
			t.Errorf("shell %s: expected args %v, got %v", tc.shell, tc.wantArgs, args)
		}
	}
}

func TestPidFileRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.pid")

	if err := writePidFile(path); err != nil {
		t.Fatalf("writePidFile failed: %v", err)
	}

	pid, err := ReadPidFile(path)
	if err != nil {
		t.Fatalf("ReadPidFile failed: %v", err)
	}
	if pid != os.Getpid() {
		t.Errorf("expected pid %d, got %d", os.Getpid(), pid)
	}

	removePidFile(path, testLogger(t))
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected pid file to be removed, stat err: %v", err)
	}
}

func TestReadPidFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pid")
	if err := os.WriteFile(path, []byte("not-a-pid\n"), 0o644); err != nil {
		t.Fatalf("failed to write pid file: %v", err)
	}
	if _, err := ReadPidFile(path); err == nil {
		t.Error("expected error for invalid pid file content")
	}
}

func TestRunnerValidate(t *testing.T) {
	path := writeJobFile(t, `
job:
  name: hello
  run:
    command: "echo hello"
`)
	r := New(Config{ConfigFile: path, Logger: testLogger(t)})
	if err := r.Validate(); err != nil {
		t.Errorf("expected valid job, got error: %v", err)
	}
}

func TestRunnerValidateRejectsMissingCommand(t *testing.T) {
	path := writeJobFile(t, `
job:
  name: broken
  run:
    command: ""
`)
	r := New(Config{ConfigFile: path, Logger: testLogger(t)})
	if err := r.Validate(); err == nil {
		t.Error("expected validation error for missing command")
	}
}

func TestRunnerExecForeground(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "marker")
	path := writeJobFile(t, `
job:
  name: touch-marker
  params:
    target:
      type: string
      required: true
  run:
    command: "echo done > {{ .target }}"
`)

	r := New(Config{
		ConfigFile: path,
		Params:     []string{"target=" + marker},
		Logger:     testLogger(t),
	})
	if err := r.Exec(); err != nil {
		t.Fatalf("Exec failed: %v", err)
	}

	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("expected marker file to exist: %v", err)
	}
	if strings.TrimSpace(string(data)) != "done" {
		t.Errorf("unexpected marker content: %q", data)
	}
}

func TestRunnerExecConstraintBlocks(t *testing.T) {
	path := writeJobFile(t, `
job:
  name: guarded
  params:
    count:
      type: integer
      default: 1
  constraints:
    - "count <= 0"
  run:
    command: "echo never"
`)
	r := New(Config{ConfigFile: path, Logger: testLogger(t)})
	err := r.Exec()
	if err == nil || !strings.Contains(err.Error(), "constraints not satisfied") {
		t.Fatalf("expected constraint failure, got %v", err)
	}
}

func TestOpenJobLogger(t *testing.T) {
	r := New(Config{Logger: testLogger(t)})

	// No log file configured: the runner's own logger is reused.
	if got := r.openJobLogger(config.RenderedJob{Name: "bare"}); got != r.logger {
		t.Error("expected the runner's logger when the job has no log file")
	}

	logFile := filepath.Join(t.TempDir(), "job.log")
	logger := r.openJobLogger(config.RenderedJob{Name: "logged", LogFile: logFile})
	if logger == r.logger {
		t.Fatal("expected a new logger for the job log file")
	}
	if logger.FilePath() != logFile {
		t.Errorf("expected log file %q, got %q", logFile, logger.FilePath())
	}
	if err := logger.Close(); err != nil {
		t.Errorf("failed to close job logger: %v", err)
	}
}

func TestOpenJobLoggerUnopenableFileFallsBack(t *testing.T) {
	runnerLog := filepath.Join(t.TempDir(), "runner.log")
	base, err := common.NewLogger("[test] ", runnerLog, common.LogLevelError, false)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	r := New(Config{Logger: base})

	// Parent directory does not exist, so the job log file cannot be opened.
	bad := filepath.Join(t.TempDir(), "no-such-dir", "job.log")
	logger := r.openJobLogger(config.RenderedJob{Name: "broken", LogFile: bad})
	if logger != base {
		t.Fatal("expected fallback to the runner's logger")
	}
	if err := base.Close(); err != nil {
		t.Fatalf("failed to close logger: %v", err)
	}

	// The failure must leave a trace in the logger that still works.
	data, err := os.ReadFile(runnerLog)
	if err != nil {
		t.Fatalf("failed to read runner log: %v", err)
	}
	if !strings.Contains(string(data), "Failed to open job log file") {
		t.Errorf("expected the open failure to be logged, got %q", data)
	}
}

func TestRunnerStatusNoPidFile(t *testing.T) {
	t.Setenv("FORKD_DIR", t.TempDir())

	path := writeJobFile(t, `
job:
  name: idle
  run:
    command: "true"
`)
	r := New(Config{ConfigFile: path, Logger: testLogger(t)})
	status, err := r.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.Name != "idle" {
		t.Errorf("expected name 'idle', got %q", status.Name)
	}
	if status.Running || status.Pid != 0 {
		t.Errorf("expected no running daemon, got %+v", status)
	}
	if !strings.HasSuffix(status.PidFile, "idle.pid") {
		t.Errorf("unexpected pid file path: %q", status.PidFile)
	}
}

func TestRunnerStatusRunning(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "self.pid")
	if err := writePidFile(pidFile); err != nil {
		t.Fatalf("writePidFile failed: %v", err)
	}

	path := writeJobFile(t, `
job:
  name: self
  run:
    command: "true"
  detach:
    pid_file: "`+pidFile+`"
`)
	r := New(Config{ConfigFile: path, Logger: testLogger(t)})
	status, err := r.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if !status.Running {
		t.Error("expected running status for our own pid")
	}
	if status.Pid != os.Getpid() {
		t.Errorf("expected pid %d, got %d", os.Getpid(), status.Pid)
	}
}

func TestRunnerStatusDeadProcess(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "dead.pid")
	if err := os.WriteFile(pidFile, []byte("999999\n"), 0o644); err != nil {
		t.Fatalf("failed to write pid file: %v", err)
	}

	path := writeJobFile(t, `
job:
  name: dead
  run:
    command: "true"
  detach:
    pid_file: "`+pidFile+`"
`)
	r := New(Config{ConfigFile: path, Logger: testLogger(t)})
	status, err := r.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.Running {
		t.Error("expected not-running status for a stale pid file")
	}
	if status.Pid != 999999 {
		t.Errorf("expected recorded pid 999999, got %d", status.Pid)
	}
}

func TestRunnerExecFailingCommand(t *testing.T) {
	path := writeJobFile(t, `
job:
  name: failing
  run:
    command: "exit 7"
`)
	r := New(Config{ConfigFile: path, Logger: testLogger(t)})
	err := r.Exec()
	if err == nil || !strings.Contains(err.Error(), "exited with status 7") {
		t.Fatalf("expected exit status error, got %v", err)
	}
}
