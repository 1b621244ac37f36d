// Package models defines the domain types for Muninn.
package models

import (
	"sort"
	"time"
)

// Note is a single plain-text note. Its identity is the title, which maps
// one-to-one onto a file name in the notes directory; timestamps are derived
// from file metadata at read time and never stored redundantly.
type Note struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteMetadata is a lightweight representation returned by list operations.
type NoteMetadata struct {
	Name      string    `json:"name"`  // file name including the note extension
	Title     string    `json:"title"` // file name without the extension
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot is the note collection as observed at a single instant, ordered
// lexicographically ascending by file name. User-facing positions are 1-based
// indexes into this ordering. A snapshot is ephemeral: it is captured, used
// for one display or one resolution, and discarded. Two snapshots taken at
// different times may legitimately disagree.
type Snapshot []NoteMetadata

// NewSnapshot copies items and establishes the canonical ordering. Every
// snapshot in the program is built through this constructor so that display
// order and position resolution can never diverge.
func NewSnapshot(items []NoteMetadata) Snapshot {
	out := make(Snapshot, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Action is one of the closed set of changes recorded in the action log.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)
