package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_Disabled(t *testing.T) {
	logger, err := New(Options{Enabled: false, Path: ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("disabled logger should drop everything")
	}
}

func TestNew_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "rota.log")

	logger, err := New(Options{Enabled: true, Level: "info", Path: path})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Debug("dropped")
	logger.Info("slot created", zap.String("id", "abc"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %s", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "slot created" || entry["id"] != "abc" || entry["level"] != "info" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"bad level", Options{Enabled: true, Level: "loud", Path: filepath.Join(t.TempDir(), "x.log")}},
		{"no path", Options{Enabled: true, Level: "info"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}
