package report

import (
	"reflect"
	"testing"
	"time"

	"github.com/starford/muninn/internal/models"
)

func TestWordFrequency(t *testing.T) {
	got := WordFrequency("milk eggs bread milk")
	want := map[string]int{"milk": 2, "eggs": 1, "bread": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestWordFrequencyNoFolding(t *testing.T) {
	got := WordFrequency("Milk milk milk, milk")
	want := map[string]int{"Milk": 1, "milk": 2, "milk,": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestWordFrequencyWhitespaceOnly(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\t\n"} {
		if got := WordFrequency(content); len(got) != 0 {
			t.Errorf("WordFrequency(%q) = %v, want empty", content, got)
		}
	}
}

func TestActivityByDate(t *testing.T) {
	day := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	snap := models.NewSnapshot([]models.NoteMetadata{
		{Name: "a.txt", CreatedAt: day.Add(9 * time.Hour)},
		{Name: "b.txt", CreatedAt: day.Add(14 * time.Hour)},
		{Name: "c.txt", CreatedAt: day.Add(23 * time.Hour)},
		{Name: "d.txt", CreatedAt: day.AddDate(0, 0, -1)},
	})
	got := ActivityByDate(snap)
	want := map[string]int{"2026-08-25": 3, "2026-08-24": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestActivityByDateEmpty(t *testing.T) {
	if got := ActivityByDate(models.NewSnapshot(nil)); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
