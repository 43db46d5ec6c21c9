package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return false
}

func TestWatch_ReloadsOnEdit(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	initial, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	w, err := Watch(path, initial, nil)
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}
	defer w.Close()

	if w.Current() != initial {
		t.Fatal("Current() should return the initial config before any edit")
	}

	if err := os.WriteFile(path, []byte("file_extensions: [\".nef\"]\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	ok := waitFor(t, func() bool {
		exts := w.Current().FileExtensions
		return len(exts) == 1 && exts[0] == ".nef"
	})
	if !ok {
		t.Fatalf("config not reloaded, extensions = %v", w.Current().FileExtensions)
	}
	if w.Reloads() < 1 {
		t.Errorf("Reloads() = %d, want >= 1", w.Reloads())
	}
}

func TestWatch_IgnoresInvalidEdit(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	initial := Default()

	w, err := Watch(path, initial, nil)
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("file_extensions: [broken\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// Give the watcher time to see the event, then make sure nothing changed.
	time.Sleep(200 * time.Millisecond)
	if w.Current() != initial {
		t.Error("an invalid edit must not replace the current config")
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	w, err := Watch(path, Default(), nil)
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	time.Sleep(200 * time.Millisecond)
	if w.Reloads() != 0 {
		t.Errorf("Reloads() = %d, want 0", w.Reloads())
	}
}

func TestWatch_NilInitial(t *testing.T) {
	if _, err := Watch(filepath.Join(t.TempDir(), FileName), nil, nil); err == nil {
		t.Error("expected error for nil initial config")
	}
}
