// Package apperr defines the sentinel errors shared across the application.
//
// Every operation reports failures in terms of these sentinels (wrapped with
// context via fmt.Errorf and %w) so that the interactive surface can classify
// them with errors.Is and render a message instead of terminating the session.
package apperr

import "errors"

var (
	// ErrNotInteger reports a positional reference that is not an integer.
	ErrNotInteger = errors.New("not an integer")
	// ErrOutOfRange reports an integer position outside 1..len(snapshot).
	ErrOutOfRange = errors.New("position out of range")
	// ErrNotFound reports a note that is absent from storage.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists reports a name collision on rename.
	ErrAlreadyExists = errors.New("already exists")
	// ErrIOFailure reports an underlying storage failure.
	ErrIOFailure = errors.New("storage failure")
	// ErrPartialUpdate reports an update whose rename succeeded but whose
	// content write failed, leaving the note under its new title with the
	// old content.
	ErrPartialUpdate = errors.New("partially applied update")
)
