//go:build !(linux || darwin || freebsd)

package capture

import (
	"os"
	"time"
)

func creationTime(path string, info os.FileInfo) time.Time {
	return info.ModTime()
}

func isCrossDevice(err error) bool {
	return false
}
