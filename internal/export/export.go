// Package export renders the note collection into shareable artifacts:
// spreadsheet rows, a JSON object, and a printable document.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/starford/muninn/internal/apperr"
	"github.com/starford/muninn/internal/models"
	"github.com/starford/muninn/internal/storage"
)

const namePrefix = "notes_export_"

// Exporter writes export documents, one per format per calendar day; a
// same-day export overwrites its predecessor. Exports never mutate notes.
type Exporter struct {
	store   storage.Provider
	csvDir  string
	jsonDir string
	pdfDir  string
	logger  *slog.Logger
}

// New creates an exporter writing into the three format directories.
func New(store storage.Provider, csvDir, jsonDir, pdfDir string, logger *slog.Logger) *Exporter {
	return &Exporter{store: store, csvDir: csvDir, jsonDir: jsonDir, pdfDir: pdfDir, logger: logger}
}

// entry pairs a note's metadata with its content at collection time.
type entry struct {
	meta    models.NoteMetadata
	content string
}

// collect snapshots the collection and reads every note. All formats sample
// storage through here so they see it identically; unreadable notes are
// skipped with a warning and the artifact holds whatever survived the pass.
func (e *Exporter) collect() ([]entry, error) {
	items, err := e.store.List()
	if err != nil {
		return nil, fmt.Errorf("export: list notes: %w", err)
	}
	snap := models.NewSnapshot(items)
	out := make([]entry, 0, len(snap))
	for _, meta := range snap {
		data, err := e.store.Read(meta.Name)
		if err != nil {
			e.logger.Warn("skipping unreadable note",
				slog.String("note", meta.Name),
				slog.String("error", err.Error()))
			continue
		}
		out = append(out, entry{meta: meta, content: string(data)})
	}
	return out, nil
}

func exportName(ext string, now time.Time) string {
	return namePrefix + now.Format("2006-01-02") + "." + ext
}

// CSV writes every note as one title,content row under a header row and
// returns the file's path.
func (e *Exporter) CSV(now time.Time) (string, error) {
	entries, err := e.collect()
	if err != nil {
		return "", err
	}
	path := filepath.Join(e.csvDir, exportName("csv", now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: create %s: %w: %v", path, apperr.ErrIOFailure, err)
	}
	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, []string{"title", "content"})
	for _, en := range entries {
		rows = append(rows, []string{en.meta.Title, en.content})
	}
	if err := csv.NewWriter(f).WriteAll(rows); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("export: write %s: %w: %v", path, apperr.ErrIOFailure, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export: close %s: %w: %v", path, apperr.ErrIOFailure, err)
	}
	return path, nil
}

// JSON writes a single object mapping note file name to content and returns
// the file's path.
func (e *Exporter) JSON(now time.Time) (string, error) {
	entries, err := e.collect()
	if err != nil {
		return "", err
	}
	doc := make(map[string]string, len(entries))
	for _, en := range entries {
		doc[en.meta.Name] = en.content
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("export: encode json: %w", err)
	}
	data = append(data, '\n')
	path := filepath.Join(e.jsonDir, exportName("json", now))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w: %v", path, apperr.ErrIOFailure, err)
	}
	return path, nil
}
