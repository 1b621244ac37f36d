// Package testutil provides shared test helpers: temporary note directories
// backed by the real provider, and a scripted in-memory store for failure
// injection.
package testutil

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/starford/muninn/internal/apperr"
	"github.com/starford/muninn/internal/models"
	"github.com/starford/muninn/internal/storage"
)

// Ext is the note extension used across tests.
const Ext = ".txt"

// TestStore creates a temporary notes directory with a real FS provider
// whose trash falls back to a second temporary directory.
func TestStore(t *testing.T) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir, Ext, storage.NewTrash(t.TempDir(), false))
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// Silent returns a logger that drops everything, for exercising code paths
// that log.
func Silent() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// FakeStore is an in-memory storage.Provider whose failure points can be
// scripted per note name.
type FakeStore struct {
	Files    map[string]string
	Created  map[string]time.Time
	Trashed  []string
	ListErr  error
	ReadErr  map[string]error
	WriteErr map[string]error
}

var _ storage.Provider = (*FakeStore)(nil)

// NewFakeStore returns an empty scripted store.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		Files:    map[string]string{},
		Created:  map[string]time.Time{},
		ReadErr:  map[string]error{},
		WriteErr: map[string]error{},
	}
}

// List enumerates the held notes in map order. Ordering is deliberately
// left random; establishing it is the snapshot's job, not the store's.
func (f *FakeStore) List() ([]models.NoteMetadata, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	var out []models.NoteMetadata
	for name := range f.Files {
		out = append(out, models.NoteMetadata{
			Name:      name,
			Title:     strings.TrimSuffix(name, Ext),
			CreatedAt: f.Created[name],
			UpdatedAt: f.Created[name],
		})
	}
	return out, nil
}

func (f *FakeStore) Read(name string) ([]byte, error) {
	if err := f.ReadErr[name]; err != nil {
		return nil, err
	}
	content, ok := f.Files[name]
	if !ok {
		return nil, fmt.Errorf("fake: read %s: %w", name, apperr.ErrNotFound)
	}
	return []byte(content), nil
}

func (f *FakeStore) Write(name string, content []byte) error {
	if err := f.WriteErr[name]; err != nil {
		return err
	}
	f.Files[name] = string(content)
	return nil
}

func (f *FakeStore) Rename(oldName, newName string) error {
	if _, ok := f.Files[newName]; ok {
		return fmt.Errorf("fake: rename to %s: %w", newName, apperr.ErrAlreadyExists)
	}
	content, ok := f.Files[oldName]
	if !ok {
		return fmt.Errorf("fake: rename %s: %w", oldName, apperr.ErrNotFound)
	}
	delete(f.Files, oldName)
	f.Files[newName] = content
	return nil
}

func (f *FakeStore) Remove(name string) error {
	if _, ok := f.Files[name]; !ok {
		return fmt.Errorf("fake: remove %s: %w", name, apperr.ErrNotFound)
	}
	delete(f.Files, name)
	return nil
}

func (f *FakeStore) Trash(name string) error {
	if _, ok := f.Files[name]; !ok {
		return fmt.Errorf("fake: trash %s: %w", name, apperr.ErrNotFound)
	}
	delete(f.Files, name)
	f.Trashed = append(f.Trashed, name)
	return nil
}
