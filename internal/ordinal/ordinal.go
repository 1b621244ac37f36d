// Package ordinal resolves user-typed positions against a snapshot of the
// note collection.
//
// Positions are 1-based and only meaningful against the snapshot they are
// resolved with; callers capture the snapshot immediately before resolving
// and never reuse one across operations.
package ordinal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/starford/muninn/internal/apperr"
	"github.com/starford/muninn/internal/models"
)

// Parse converts raw user input into a position.
func Parse(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("ordinal: %q: %w", raw, apperr.ErrNotInteger)
	}
	return n, nil
}

// Resolve maps a 1-based position onto the snapshot entry it denotes.
func Resolve(n int, snap models.Snapshot) (models.NoteMetadata, error) {
	if n < 1 || n > len(snap) {
		return models.NoteMetadata{}, fmt.Errorf("ordinal: %d of %d: %w", n, len(snap), apperr.ErrOutOfRange)
	}
	return snap[n-1], nil
}
