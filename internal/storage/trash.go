package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/starford/muninn/internal/apperr"
)

// Trash is the holding area for discarded notes. With platform enabled it
// targets the operating system trash (FreeDesktop layout on Linux, ~/.Trash
// on macOS) and falls back to the configured directory when the platform
// offers none or the move fails.
type Trash struct {
	fallbackDir string
	platform    bool
	now         func() time.Time
}

// NewTrash creates a trash rooted at fallbackDir. When platform is true the
// operating system trash is tried first.
func NewTrash(fallbackDir string, platform bool) *Trash {
	return &Trash{fallbackDir: fallbackDir, platform: platform, now: time.Now}
}

// Move relocates the file at absPath into the holding area. The destination
// name is made collision-safe with a numeric suffix.
func (t *Trash) Move(absPath string) error {
	if t.platform {
		err := t.movePlatform(absPath)
		if err == nil {
			return nil
		}
		slog.Warn("platform trash unavailable, using fallback",
			slog.String("path", absPath),
			slog.String("error", err.Error()))
	}
	return t.moveTo(absPath, t.fallbackDir, "")
}

// movePlatform moves absPath into the operating system trash.
func (t *Trash) movePlatform(absPath string) error {
	files, info, err := platformTrashDirs()
	if err != nil {
		return err
	}
	return t.moveTo(absPath, files, info)
}

// platformTrashDirs locates the OS trash. On Linux the FreeDesktop layout
// keeps a files/ directory and an info/ directory of .trashinfo records;
// macOS has a single per-user directory and no info records.
func platformTrashDirs() (filesDir, infoDir string, err error) {
	switch runtime.GOOS {
	case "linux":
		dataHome := os.Getenv("XDG_DATA_HOME")
		if dataHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", "", fmt.Errorf("home dir: %w", err)
			}
			dataHome = filepath.Join(home, ".local", "share")
		}
		base := filepath.Join(dataHome, "Trash")
		return filepath.Join(base, "files"), filepath.Join(base, "info"), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", "", fmt.Errorf("home dir: %w", err)
		}
		return filepath.Join(home, ".Trash"), "", nil
	default:
		return "", "", fmt.Errorf("no platform trash on %s", runtime.GOOS)
	}
}

// moveTo moves src into filesDir under a collision-safe name, writing a
// FreeDesktop .trashinfo record when infoDir is set.
func (t *Trash) moveTo(src, filesDir, infoDir string) error {
	if err := os.MkdirAll(filesDir, 0o755); err != nil {
		return fmt.Errorf("trash: create holding dir: %w: %v", apperr.ErrIOFailure, err)
	}
	base := filepath.Base(src)
	dst := filepath.Join(filesDir, base)
	for i := 1; ; i++ {
		if _, err := os.Lstat(dst); os.IsNotExist(err) {
			break
		}
		dst = filepath.Join(filesDir, fmt.Sprintf("%s.%d", base, i))
	}
	if infoDir != "" {
		if err := t.writeInfo(src, infoDir, filepath.Base(dst)); err != nil {
			return err
		}
	}
	if err := os.Rename(src, dst); err != nil {
		// Rename cannot cross file systems; fall back to copy and remove.
		if copyErr := copyThenRemove(src, dst); copyErr != nil {
			return fmt.Errorf("trash: move %s: %w: %v", base, apperr.ErrIOFailure, copyErr)
		}
	}
	return nil
}

// writeInfo records the origin and deletion time so desktop tools can
// restore the file.
func (t *Trash) writeInfo(src, infoDir, dstBase string) error {
	if err := os.MkdirAll(infoDir, 0o700); err != nil {
		return fmt.Errorf("trash: create info dir: %w: %v", apperr.ErrIOFailure, err)
	}
	body := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		src, t.now().Format("2006-01-02T15:04:05"))
	path := filepath.Join(infoDir, dstBase+".trashinfo")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		return fmt.Errorf("trash: write info record: %w: %v", apperr.ErrIOFailure, err)
	}
	return nil
}

func copyThenRemove(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
