package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogLevelFromString(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"info", LogLevelInfo},
		{"error", LogLevelError},
		{"none", LogLevelNone},
		{"bogus", LogLevelInfo},
		{"", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := LogLevelFromString(tt.in); got != tt.want {
			t.Errorf("LogLevelFromString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerFileTarget(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "forkd.log")

	logger, err := NewLogger("[forkd] ", logFile, LogLevelDebug, true)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	logger.Info("info message %d", 1)
	logger.Debug("debug message")
	logger.Error("error message")

	if err := logger.Close(); err != nil {
		t.Fatalf("failed to close logger: %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	for _, want := range []string{"[INFO] info message 1", "[DEBUG] debug message", "[ERROR] error message"} {
		if !strings.Contains(content, want) {
			t.Errorf("log file missing %q", want)
		}
	}

	if logger.FilePath() != logFile {
		t.Errorf("FilePath() = %q, want %q", logger.FilePath(), logFile)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "forkd.log")

	logger, err := NewLogger("[forkd] ", logFile, LogLevelError, true)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	logger.Info("should be filtered")
	logger.Debug("should be filtered too")
	logger.Error("should appear")

	if err := logger.Close(); err != nil {
		t.Fatalf("failed to close logger: %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "filtered") {
		t.Error("messages below the level should not be written")
	}
	if !strings.Contains(content, "should appear") {
		t.Error("error message should be written")
	}

	logger2, _ := NewLogger("[forkd] ", "", LogLevelInfo, false)
	logger2.SetLevel(LogLevelDebug)
	if logger2.Level() != LogLevelDebug {
		t.Error("SetLevel did not change the level")
	}
}

func TestGlobalLogger(t *testing.T) {
	if GetLogger() == nil {
		t.Fatal("GetLogger should never return nil")
	}

	logger, err := NewLogger("[forkd-test] ", "", LogLevelDebug, false)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	SetLogger(logger)
	defer SetLogger(nil)

	if GetLogger() != logger {
		t.Error("GetLogger should return the logger passed to SetLogger")
	}
}
