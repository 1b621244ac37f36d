package menu

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/muninn/internal/archive"
	"github.com/starford/muninn/internal/export"
	"github.com/starford/muninn/internal/noteservice"
	"github.com/starford/muninn/internal/testutil"
)

// session runs one scripted menu session and returns its output.
func session(t *testing.T, fs *testutil.FakeStore, lines ...string) string {
	t.Helper()
	logger := testutil.Silent()
	notes := noteservice.New(fs, testutil.Ext, logger)
	archiver := archive.New(fs, t.TempDir(), logger)
	exporter := export.New(fs, t.TempDir(), t.TempDir(), t.TempDir(), logger)

	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	out := &bytes.Buffer{}
	m := New(notes, archiver, exporter, 1, in, out)
	m.now = func() time.Time { return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, m.Run())
	return out.String()
}

func TestExitImmediately(t *testing.T) {
	out := session(t, testutil.NewFakeStore(), "0")
	assert.Contains(t, out, "bye")
}

func TestEndOfInputEndsSession(t *testing.T) {
	fs := testutil.NewFakeStore()
	notes := noteservice.New(fs, testutil.Ext, testutil.Silent())
	archiver := archive.New(fs, t.TempDir(), testutil.Silent())
	exporter := export.New(fs, t.TempDir(), t.TempDir(), t.TempDir(), testutil.Silent())

	out := &bytes.Buffer{}
	m := New(notes, archiver, exporter, 1, strings.NewReader(""), out)
	require.NoError(t, m.Run())
	assert.Contains(t, out.String(), "bye")
}

func TestNonIntegerChoiceKeepsLooping(t *testing.T) {
	out := session(t, testutil.NewFakeStore(), "banana", "0")
	assert.Contains(t, out, "that is not a number")
	assert.Contains(t, out, "bye", "the session must survive a bad choice")
}

func TestUnknownChoiceReported(t *testing.T) {
	out := session(t, testutil.NewFakeStore(), "99", "0")
	assert.Contains(t, out, "unknown choice 99")
	assert.Contains(t, out, "bye")
}

func TestCreateListView(t *testing.T) {
	fs := testutil.NewFakeStore()
	// Create, list, view note 1, exit.
	out := session(t, fs,
		"4", "groceries", "buy milk",
		"1",
		"2", "1",
		"0",
	)
	assert.Contains(t, out, `created "groceries"`)
	assert.Contains(t, out, "  1  groceries")
	assert.Contains(t, out, "# groceries\nbuy milk")
	assert.Equal(t, "buy milk", fs.Files["groceries.txt"])
}

func TestCreateCollisionWarns(t *testing.T) {
	fs := testutil.NewFakeStore()
	out := session(t, fs,
		"4", "a", "first",
		"4", "a", "second",
		"0",
	)
	assert.Contains(t, out, `warning: "a" existed and was overwritten`)
	assert.Equal(t, "second", fs.Files["a.txt"])
}

func TestUpdateFlow(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.Files["old.txt"] = "before"
	out := session(t, fs,
		"5", "1", "renamed", "after",
		"0",
	)
	assert.Contains(t, out, `updated "renamed"`)
	assert.Equal(t, "after", fs.Files["renamed.txt"])
	assert.NotContains(t, fs.Files, "old.txt")
}

func TestDeleteOutOfRangeReported(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.Files["only.txt"] = "x"
	out := session(t, fs, "6", "5", "0")
	assert.Contains(t, out, "no note with that number")
	assert.Contains(t, fs.Files, "only.txt", "the note must survive a failed delete")
}

func TestTrashFlow(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.Files["held.txt"] = "x"
	out := session(t, fs, "7", "1", "0")
	assert.Contains(t, out, `moved "held" to trash`)
	assert.Equal(t, []string{"held.txt"}, fs.Trashed)
}

func TestSearchFlow(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.Files["groceries.txt"] = "buy milk and eggs"
	fs.Files["gym.txt"] = "leg day"
	out := session(t, fs, "3", "milk", "3", "zebra", "0")
	assert.Contains(t, out, "groceries: buy milk and eggs")
	assert.Contains(t, out, "no matches")
}

func TestBackupAndSameDayPurge(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.Files["n.txt"] = "x"
	out := session(t, fs, "8", "9", "0")
	assert.Contains(t, out, "backup written to")
	assert.Contains(t, out, "no backups old enough to purge",
		"a backup made today is younger than the retention floor")
}

func TestExportChoices(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.Files["n.txt"] = "some words"
	out := session(t, fs, "10", "11", "12", "0")
	assert.Equal(t, 3, strings.Count(out, "exported to"))
}

func TestWordFrequencyOutput(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.Files["shopping.txt"] = "milk eggs bread milk"
	out := session(t, fs, "13", "1", "0")
	assert.Contains(t, out, "2  milk")
	assert.Contains(t, out, "1  bread")
	assert.Contains(t, out, "1  eggs")
}

func TestActivityOutput(t *testing.T) {
	fs := testutil.NewFakeStore()
	day := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		fs.Files[name] = "x"
		fs.Created[name] = day.Add(3 * time.Hour)
	}
	out := session(t, fs, "14", "0")
	assert.Contains(t, out, "2026-08-25  3")
}
