//go:build !linux

package storage

import (
	"os"
	"time"
)

// creationTime falls back to the modification time on platforms where the
// inode change time is not portably reachable through os.FileInfo.
func creationTime(info os.FileInfo) time.Time {
	return info.ModTime()
}
