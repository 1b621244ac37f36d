// Package report derives read-only analyses from notes. Nothing here
// mutates storage.
package report

import (
	"strings"

	"github.com/starford/muninn/internal/models"
)

// WordFrequency counts how often each whitespace-separated token occurs in
// content. Tokens are compared exactly: no case folding and no punctuation
// stripping, so "Milk" and "milk," are distinct words.
func WordFrequency(content string) map[string]int {
	freq := make(map[string]int)
	for _, w := range strings.Fields(content) {
		freq[w]++
	}
	return freq
}

// ActivityByDate buckets the snapshot by creation date and counts notes per
// calendar day. Keys are formatted YYYY-MM-DD.
func ActivityByDate(snap models.Snapshot) map[string]int {
	out := make(map[string]int)
	for _, meta := range snap {
		out[meta.CreatedAt.Format("2006-01-02")]++
	}
	return out
}
