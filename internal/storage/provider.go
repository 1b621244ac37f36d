// Package storage is the gateway to the notes directory.
package storage

import "github.com/starford/muninn/internal/models"

// Provider is the interface over the notes directory. It is deliberately
// unaware of positions: enumeration order is implementation-defined and
// callers establish ordering through models.NewSnapshot. Implementations
// never cache; every call reflects live storage.
type Provider interface {
	// List returns metadata for every note file in the directory.
	List() ([]models.NoteMetadata, error)
	// Read returns the raw content of the named note.
	// Reports apperr.ErrNotFound when the note is absent.
	Read(name string) ([]byte, error)
	// Write atomically creates or overwrites the named note.
	Write(name string, content []byte) error
	// Rename gives a note a new name. Reports apperr.ErrAlreadyExists when
	// newName is taken and apperr.ErrNotFound when oldName is absent.
	Rename(oldName, newName string) error
	// Remove permanently deletes the named note.
	Remove(name string) error
	// Trash moves the named note into the trash holding area.
	Trash(name string) error
}
