//go:build linux || darwin || freebsd

package capture

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// creationTime returns the inode change time of path, the value gphoto2
// users see as "created" on Linux and macOS. Falls back to the
// modification time if the stat fails.
func creationTime(path string, info os.FileInfo) time.Time {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return info.ModTime()
	}
	return time.Unix(st.Ctim.Unix())
}

// isCrossDevice reports whether err is a rename across filesystems.
func isCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}
