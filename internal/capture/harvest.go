package capture

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CapturedFile is one file moved out of gphoto2's working directory.
type CapturedFile struct {
	Extension   string
	Source      string
	Destination string
}

// harvest moves, for each extension in order, the most recently created
// matching file in workDir to destDir/{stamp}{ext}. Extensions with no match
// are skipped. On error the files already moved stay moved and are returned
// alongside the error.
//
// "Most recently created" is a heuristic: leftovers from earlier runs with a
// newer ctime, or clock skew, can select the wrong file.
func harvest(workDir, destDir, stamp string, extensions []string) ([]CapturedFile, error) {
	var moved []CapturedFile

	for _, ext := range extensions {
		src, found, err := latestMatch(workDir, ext)
		if err != nil {
			return moved, err
		}
		if !found {
			continue
		}

		dst := filepath.Join(destDir, stamp+ext)
		if err := moveFile(src, dst); err != nil {
			return moved, err
		}
		moved = append(moved, CapturedFile{Extension: ext, Source: src, Destination: dst})
	}

	return moved, nil
}

// latestMatch returns the regular file in dir ending in ext with the latest
// creation time. Ties keep the lexically first name. dir is listed rather
// than globbed so that brackets or asterisks in its path are taken literally.
func latestMatch(dir, ext string) (string, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var (
		best     string
		bestTime time.Time
	)
	// ReadDir sorts by name, which gives the tie rule.
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil {
			return "", false, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		ct := creationTime(path, info)
		if best == "" || ct.After(bestTime) {
			best = path
			bestTime = ct
		}
	}

	return best, best != "", nil
}

// moveFile renames src to dst, copying across filesystems when needed. An
// existing dst is never replaced.
func moveFile(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("%s already exists", dst)
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return err
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("copied %s but failed to remove it: %w", src, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return out.Close()
}
