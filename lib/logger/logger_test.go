package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerWritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "run.log")
	lg, err := NewLogger("DIGEST", logPath, 1, 1, 1, INFO)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	lg.Debug("hidden at info level")
	lg.Info("starting run for %s", "searchengineland")
	lg.Error("delivery failed: %v", "auth rejected")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	out := string(data)

	if !strings.Contains(out, "[INFO] [DIGEST] ") || !strings.Contains(out, "starting run for searchengineland") {
		t.Errorf("info line missing or unprefixed:\n%s", out)
	}
	if !strings.Contains(out, "[ERROR] [DIGEST] ") {
		t.Errorf("error line missing:\n%s", out)
	}
	if strings.Contains(out, "hidden at info level") {
		t.Errorf("debug line leaked through INFO level:\n%s", out)
	}
}

func TestLoggerSetLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.log")
	lg, err := NewLogger("DIGEST", logPath, 1, 1, 1, ERROR)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	lg.Warning("quiet")
	lg.SetLevel(DEBUG)
	lg.Debug("now audible")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "quiet") {
		t.Errorf("warning logged below ERROR level:\n%s", out)
	}
	if !strings.Contains(out, "now audible") {
		t.Errorf("debug line missing after SetLevel:\n%s", out)
	}
}

func TestLoggerStdoutOnly(t *testing.T) {
	lg, err := NewLogger("DIGEST", "", 1, 1, 1, INFO)
	if err != nil {
		t.Fatalf("NewLogger without file: %v", err)
	}
	if lg.Writer() != os.Stdout {
		t.Error("empty log path should mean a bare stdout sink")
	}
}

func TestGetLogLevelFromString(t *testing.T) {
	cases := map[string]LogLevel{
		"DEBUG":    DEBUG,
		"INFO":     INFO,
		"WARNING":  WARNING,
		"ERROR":    ERROR,
		"nonsense": INFO,
		"":         INFO,
	}
	for in, want := range cases {
		if got := GetLogLevelFromString(in); got != want {
			t.Errorf("GetLogLevelFromString(%q) = %v, want %v", in, got, want)
		}
	}
}
