// Package noteservice implements the note lifecycle: create, read, update,
// delete, and trash, addressed by 1-based positions resolved against a fresh
// listing of the notes directory.
package noteservice

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/starford/muninn/internal/apperr"
	"github.com/starford/muninn/internal/models"
	"github.com/starford/muninn/internal/ordinal"
	"github.com/starford/muninn/internal/storage"
)

// SearchHit is one match from a keyword search.
type SearchHit struct {
	Title   string
	Preview string
}

// previewWords is how many words of content a search hit carries.
const previewWords = 25

// Service coordinates storage access and position resolution.
type Service struct {
	store  storage.Provider
	ext    string
	logger *slog.Logger
}

// New creates a note service. ext is the note file extension, dot included.
func New(store storage.Provider, ext string, logger *slog.Logger) *Service {
	return &Service{store: store, ext: ext, logger: logger}
}

// Snapshot lists the collection and fixes the canonical ordering.
func (s *Service) Snapshot() (models.Snapshot, error) {
	items, err := s.store.List()
	if err != nil {
		return nil, fmt.Errorf("noteservice: list: %w", err)
	}
	return models.NewSnapshot(items), nil
}

// resolve re-lists the collection and resolves n against the fresh snapshot.
// Every position-addressed operation funnels through here, so a position is
// never interpreted against anything older than the moment of use.
func (s *Service) resolve(n int) (models.NoteMetadata, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return models.NoteMetadata{}, err
	}
	return ordinal.Resolve(n, snap)
}

// Create writes a new note under title. When a note by that title already
// exists it is overwritten; overwrote reports that so callers can surface
// the warning.
func (s *Service) Create(title, content string) (overwrote bool, err error) {
	title = strings.TrimSpace(title)
	name, err := s.fileName(title)
	if err != nil {
		return false, err
	}
	if _, err := s.store.Read(name); err == nil {
		overwrote = true
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return false, fmt.Errorf("noteservice: create %q: %w", title, err)
	}
	if err := s.store.Write(name, []byte(content)); err != nil {
		return false, fmt.Errorf("noteservice: create %q: %w", title, err)
	}
	s.logAction(models.ActionCreated, title)
	return overwrote, nil
}

// ReadByOrdinal returns the note at position n of a fresh snapshot.
func (s *Service) ReadByOrdinal(n int) (*models.Note, error) {
	meta, err := s.resolve(n)
	if err != nil {
		return nil, err
	}
	data, err := s.store.Read(meta.Name)
	if err != nil {
		return nil, fmt.Errorf("noteservice: read %q: %w", meta.Title, err)
	}
	return &models.Note{
		Title:     meta.Title,
		Content:   string(data),
		CreatedAt: meta.CreatedAt,
		UpdatedAt: meta.UpdatedAt,
	}, nil
}

// UpdateByOrdinal renames and rewrites the note at position n. A blank or
// unchanged newTitle keeps the current one. The rename and the content write
// form one logical step: when the rename lands but the write fails, the
// returned error wraps apperr.ErrPartialUpdate and names both titles, since
// the note now lives under the new title with the old content.
func (s *Service) UpdateByOrdinal(n int, newTitle, newContent string) (*models.Note, error) {
	meta, err := s.resolve(n)
	if err != nil {
		return nil, err
	}
	name, title := meta.Name, meta.Title
	newTitle = strings.TrimSpace(newTitle)
	if newTitle != "" && newTitle != meta.Title {
		newName, err := s.fileName(newTitle)
		if err != nil {
			return nil, err
		}
		if err := s.store.Rename(meta.Name, newName); err != nil {
			return nil, fmt.Errorf("noteservice: rename %q to %q: %w", meta.Title, newTitle, err)
		}
		name, title = newName, newTitle
	}
	if err := s.store.Write(name, []byte(newContent)); err != nil {
		if name != meta.Name {
			return nil, fmt.Errorf("noteservice: renamed %q to %q but content stayed stale: %w: %v",
				meta.Title, title, apperr.ErrPartialUpdate, err)
		}
		return nil, fmt.Errorf("noteservice: update %q: %w", title, err)
	}
	s.logAction(models.ActionUpdated, title)
	return &models.Note{
		Title:     title,
		Content:   newContent,
		CreatedAt: meta.CreatedAt,
		UpdatedAt: time.Now(),
	}, nil
}

// DeleteByOrdinal permanently removes the note at position n and returns its
// title.
func (s *Service) DeleteByOrdinal(n int) (string, error) {
	meta, err := s.resolve(n)
	if err != nil {
		return "", err
	}
	if err := s.store.Remove(meta.Name); err != nil {
		return "", fmt.Errorf("noteservice: delete %q: %w", meta.Title, err)
	}
	s.logAction(models.ActionDeleted, meta.Title)
	return meta.Title, nil
}

// TrashByOrdinal moves the note at position n into the trash holding area
// and returns its title. The note leaves the collection, so the action log
// records a deletion.
func (s *Service) TrashByOrdinal(n int) (string, error) {
	meta, err := s.resolve(n)
	if err != nil {
		return "", err
	}
	if err := s.store.Trash(meta.Name); err != nil {
		return "", fmt.Errorf("noteservice: trash %q: %w", meta.Title, err)
	}
	s.logAction(models.ActionDeleted, meta.Title)
	return meta.Title, nil
}

// Search scans the collection for notes whose content contains keyword,
// case-insensitively. Notes that cannot be read are skipped with a warning.
func (s *Service) Search(keyword string) ([]SearchHit, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(keyword)
	var hits []SearchHit
	for _, meta := range snap {
		data, err := s.store.Read(meta.Name)
		if err != nil {
			s.logger.Warn("skipping unreadable note",
				slog.String("note", meta.Name),
				slog.String("error", err.Error()))
			continue
		}
		if strings.Contains(strings.ToLower(string(data)), needle) {
			hits = append(hits, SearchHit{Title: meta.Title, Preview: preview(string(data))})
		}
	}
	return hits, nil
}

// fileName maps a title onto its file name, rejecting titles that cannot be
// flat file names.
func (s *Service) fileName(title string) (string, error) {
	if title == "" {
		return "", errors.New("noteservice: title must not be empty")
	}
	if strings.ContainsAny(title, `/\`) {
		return "", fmt.Errorf("noteservice: title %q must not contain path separators", title)
	}
	return title + s.ext, nil
}

// logAction emits one action-log line. The action set is closed: created,
// updated, deleted.
func (s *Service) logAction(a models.Action, title string) {
	s.logger.Info("note "+string(a),
		slog.String("action", string(a)),
		slog.String("title", title))
}

// preview returns the first previewWords whitespace-separated words of
// content.
func preview(content string) string {
	words := strings.Fields(content)
	if len(words) > previewWords {
		words = words[:previewWords]
	}
	return strings.Join(words, " ")
}
