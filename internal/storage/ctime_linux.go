//go:build linux

package storage

import (
	"os"
	"syscall"
	"time"
)

// creationTime returns the closest signal the platform exposes for when a
// file came into existence. Linux does not surface birth time through
// os.FileInfo, so the inode change time stands in for it.
func creationTime(info os.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
	}
	return info.ModTime()
}
