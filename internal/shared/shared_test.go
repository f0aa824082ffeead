package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateID(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		id := GenerateID()
		if len(id) != 36 {
			t.Fatalf("GenerateID() = %q, want a 36-char uuid", id)
		}
		if seen[id] {
			t.Fatalf("GenerateID() repeated %q", id)
		}
		seen[id] = true
	}
}

func TestNewFileLogger(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "rooha.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	logger.Info("hello")

	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file missing: %v", err)
	}
}

func TestOpenExternal(t *testing.T) {
	orig := getRuntime
	defer func() { getRuntime = orig }()

	getRuntime = func() string { return "plan9" }
	if err := OpenExternal("https://example.com"); err == nil {
		t.Error("unsupported platform did not error")
	}
}
