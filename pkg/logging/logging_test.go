package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestInitForCLIFiltersByLevel verifies records below the level are dropped
// and the subsystem is attached to the rest.
func TestInitForCLIFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf)
	defer Discard()

	Debug("tree", "hidden %d", 1)
	Info("store", "loaded %d groups", 3)
	Error("state", errors.New("boom"), "save failed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record leaked: %q", out)
	}
	if !strings.Contains(out, "loaded 3 groups") || !strings.Contains(out, "subsystem=store") {
		t.Errorf("info record missing: %q", out)
	}
	if !strings.Contains(out, "error=boom") {
		t.Errorf("error attribute missing: %q", out)
	}
}

func TestInitForFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tk.log")
	if err := InitForFile(LevelDebug, path); err != nil {
		t.Fatalf("InitForFile: %v", err)
	}
	Warn("ui", "reload")
	Close()
	Discard()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "msg=reload") {
		t.Errorf("log file = %q, want reload record", data)
	}
}
