package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/muninn/internal/apperr"
	"github.com/starford/muninn/internal/models"
)

// FS implements Provider backed by a flat directory of note files.
type FS struct {
	root  string // absolute path to the notes directory
	ext   string // note file extension, dot included
	trash *Trash
}

var _ Provider = (*FS)(nil)

// NewFS creates a new FS provider rooted at the given directory.
// The directory must already exist.
func NewFS(root, ext string, trash *Trash) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	if ext == "" || !strings.HasPrefix(ext, ".") {
		return nil, fmt.Errorf("storage: invalid note extension %q", ext)
	}
	return &FS{root: abs, ext: ext, trash: trash}, nil
}

// safeName validates a note file name and resolves it under the notes root.
// Names are flat: anything containing a path separator or resolving outside
// the root is rejected (directory traversal).
func (f *FS) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("storage: empty note name")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Clean(name) {
		return "", fmt.Errorf("storage: invalid note name %q", name)
	}
	abs := filepath.Join(f.root, name)
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("storage: note name escapes notes dir: %q", name)
	}
	return abs, nil
}

// List reads the notes directory and returns metadata for every file that
// carries the note extension. Entries that vanish between the directory read
// and the stat are skipped; the listing reflects whatever survives the call.
func (f *FS) List() ([]models.NoteMetadata, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w: %v", apperr.ErrIOFailure, err)
	}
	out := make([]models.NoteMetadata, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), f.ext) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("storage: stat %s: %w: %v", e.Name(), apperr.ErrIOFailure, err)
		}
		out = append(out, models.NoteMetadata{
			Name:      e.Name(),
			Title:     strings.TrimSuffix(e.Name(), f.ext),
			CreatedAt: creationTime(info),
			UpdatedAt: info.ModTime(),
		})
	}
	return out, nil
}

// Read returns the raw bytes of a note file.
func (f *FS) Read(name string) ([]byte, error) {
	abs, err := f.safeName(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("storage: read %s: %w", name, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("storage: read %s: %w: %v", name, apperr.ErrIOFailure, err)
	}
	return data, nil
}

// Write atomically writes content: tmp file → fsync → rename.
func (f *FS) Write(name string, content []byte) error {
	abs, err := f.safeName(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.root, ".muninn-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w: %v", apperr.ErrIOFailure, err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("storage: write temp: %w: %v", apperr.ErrIOFailure, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w: %v", apperr.ErrIOFailure, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w: %v", apperr.ErrIOFailure, err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("storage: rename temp: %w: %v", apperr.ErrIOFailure, err)
	}
	success = true
	return nil
}

// Rename gives a note a new name. The destination must be free.
func (f *FS) Rename(oldName, newName string) error {
	absOld, err := f.safeName(oldName)
	if err != nil {
		return err
	}
	absNew, err := f.safeName(newName)
	if err != nil {
		return err
	}
	if _, err := os.Stat(absNew); err == nil {
		return fmt.Errorf("storage: rename to %s: %w", newName, apperr.ErrAlreadyExists)
	}
	if _, err := os.Stat(absOld); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage: rename %s: %w", oldName, apperr.ErrNotFound)
		}
		return fmt.Errorf("storage: rename %s: %w: %v", oldName, apperr.ErrIOFailure, err)
	}
	if err := os.Rename(absOld, absNew); err != nil {
		return fmt.Errorf("storage: rename %s: %w: %v", oldName, apperr.ErrIOFailure, err)
	}
	return nil
}

// Remove permanently deletes a note file.
func (f *FS) Remove(name string) error {
	abs, err := f.safeName(name)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage: remove %s: %w", name, apperr.ErrNotFound)
		}
		return fmt.Errorf("storage: remove %s: %w: %v", name, apperr.ErrIOFailure, err)
	}
	return nil
}

// Trash moves a note file into the trash holding area.
func (f *FS) Trash(name string) error {
	abs, err := f.safeName(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage: trash %s: %w", name, apperr.ErrNotFound)
		}
		return fmt.Errorf("storage: trash %s: %w: %v", name, apperr.ErrIOFailure, err)
	}
	if err := f.trash.Move(abs); err != nil {
		return fmt.Errorf("storage: trash %s: %w", name, err)
	}
	return nil
}
