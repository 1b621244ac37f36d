// Package archive bundles the note collection into dated zip backups and
// prunes the ones that have outlived their retention window.
package archive

import (
	"archive/zip"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/starford/muninn/internal/apperr"
	"github.com/starford/muninn/internal/checksum"
	"github.com/starford/muninn/internal/models"
	"github.com/starford/muninn/internal/storage"
)

const (
	namePrefix = "notes_backup_"
	nameSuffix = ".zip"
	dateLayout = "2006-01-02"
)

// Archiver writes zip backups of the note collection into one directory.
type Archiver struct {
	store  storage.Provider
	dir    string
	logger *slog.Logger
}

// New creates an archiver that writes into dir.
func New(store storage.Provider, dir string, logger *slog.Logger) *Archiver {
	return &Archiver{store: store, dir: dir, logger: logger}
}

// Create bundles every note readable at this moment into a zip named for
// now's calendar date and returns its path. A second backup on the same date
// replaces the first. Notes that disappear or fail mid-iteration are skipped
// and logged; the archive holds whatever survived the pass.
func (a *Archiver) Create(now time.Time) (string, error) {
	items, err := a.store.List()
	if err != nil {
		return "", fmt.Errorf("archive: list notes: %w", err)
	}
	snap := models.NewSnapshot(items)

	path := filepath.Join(a.dir, namePrefix+now.Format(dateLayout)+nameSuffix)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("archive: create %s: %w: %v", path, apperr.ErrIOFailure, err)
	}
	zw := zip.NewWriter(f)

	// Drop the partial archive on any failure path.
	success := false
	defer func() {
		if !success {
			_ = zw.Close()
			_ = f.Close()
			_ = os.Remove(path)
		}
	}()

	for _, meta := range snap {
		data, err := a.store.Read(meta.Name)
		if err != nil {
			a.logger.Warn("skipping unreadable note",
				slog.String("note", meta.Name),
				slog.String("error", err.Error()))
			continue
		}
		w, err := zw.Create(meta.Name)
		if err != nil {
			return "", fmt.Errorf("archive: add %s: %w: %v", meta.Name, apperr.ErrIOFailure, err)
		}
		if _, err := w.Write(data); err != nil {
			return "", fmt.Errorf("archive: write %s: %w: %v", meta.Name, apperr.ErrIOFailure, err)
		}
	}

	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("archive: finalize %s: %w: %v", path, apperr.ErrIOFailure, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("archive: close %s: %w: %v", path, apperr.ErrIOFailure, err)
	}
	success = true

	digest, err := checksum.File(path)
	if err != nil {
		// The backup itself is intact; only its log line loses the digest.
		a.logger.Warn("backup digest unavailable", slog.String("error", err.Error()))
		digest = ""
	}
	a.logger.Info("backup created",
		slog.String("path", path),
		slog.Int("notes", len(snap)),
		slog.String("sha256", digest))

	return path, nil
}

// PurgeOld removes every backup whose age in whole calendar days, measured
// from the date embedded in its name to now's date, is at least
// retentionDays. Files that do not carry the backup naming pattern are left
// alone. The sweep is idempotent: a second run on the same day removes
// nothing further.
func (a *Archiver) PurgeOld(retentionDays int, now time.Time) ([]string, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, fmt.Errorf("archive: read backup dir: %w: %v", apperr.ErrIOFailure, err)
	}
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var removed []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, namePrefix) || !strings.HasSuffix(name, nameSuffix) {
			continue
		}
		backupDay, err := time.Parse(dateLayout, strings.TrimSuffix(strings.TrimPrefix(name, namePrefix), nameSuffix))
		if err != nil {
			// Foreign file wearing the prefix; not ours to touch.
			continue
		}
		age := int(nowDay.Sub(backupDay).Hours() / 24)
		if age < retentionDays {
			continue
		}
		path := filepath.Join(a.dir, name)
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("archive: purge %s: %w: %v", name, apperr.ErrIOFailure, err)
		}
		a.logger.Info("purged backup",
			slog.String("backup", name),
			slog.Int("age_days", age))
		removed = append(removed, path)
	}
	return removed, nil
}
