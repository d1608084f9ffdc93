package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.log")

	log, err := New("warn", path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	log.Info("hidden")
	log.Warn("polling fetch failed")
	_ = log.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if strings.Contains(string(b), "hidden") {
		t.Fatalf("info message written at warn level")
	}
	if !strings.Contains(string(b), "polling fetch failed") {
		t.Fatalf("warn message missing: %s", b)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := New("loud", ""); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}
