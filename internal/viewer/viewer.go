// Package viewer opens files and folders with the desktop's default
// application.
package viewer

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Command returns the program and arguments that open path on goos.
func Command(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "cmd", []string{"/c", "start", "", path}
	default:
		return "xdg-open", []string{path}
	}
}

// Open launches the default application for path without waiting for it.
func Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}

	name, args := Command(runtime.GOOS, path)
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s %s failed: %w", name, path, err)
	}
	// Reap the child in the background; the viewer outlives us otherwise.
	go cmd.Wait()
	return nil
}

// Preferred picks the file to show from one capture: the first JPEG if
// there is one, otherwise the first file. ok is false for an empty list.
func Preferred(saved []string) (path string, ok bool) {
	if len(saved) == 0 {
		return "", false
	}
	for _, p := range saved {
		if strings.HasSuffix(strings.ToLower(p), ".jpg") {
			return p, true
		}
	}
	return saved[0], true
}
