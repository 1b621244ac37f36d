// Package menu implements the interactive numbered-choice surface over the
// note services. One session reads choices and arguments line by line; no
// operation error ends the session, only an explicit exit or end of input.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/starford/muninn/internal/apperr"
	"github.com/starford/muninn/internal/archive"
	"github.com/starford/muninn/internal/export"
	"github.com/starford/muninn/internal/noteservice"
	"github.com/starford/muninn/internal/ordinal"
	"github.com/starford/muninn/internal/report"
)

var errInputClosed = errors.New("menu: input closed")

// Menu drives one interactive session.
type Menu struct {
	notes     *noteservice.Service
	archiver  *archive.Archiver
	exporter  *export.Exporter
	retention int
	in        *bufio.Scanner
	out       io.Writer
	now       func() time.Time
}

// New creates a menu bound to its services and streams. retentionDays
// parameterizes the backup sweep.
func New(notes *noteservice.Service, archiver *archive.Archiver, exporter *export.Exporter, retentionDays int, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		notes:     notes,
		archiver:  archiver,
		exporter:  exporter,
		retention: retentionDays,
		in:        bufio.NewScanner(in),
		out:       out,
		now:       time.Now,
	}
}

const choices = `
 1 - list notes            8 - create backup
 2 - view note             9 - purge old backups
 3 - search notes         10 - export to CSV
 4 - create note          11 - export to JSON
 5 - update note          12 - export to PDF
 6 - delete note          13 - word frequency
 7 - move note to trash   14 - activity by date
 0 - exit
`

// Run loops until the user picks exit or input ends. Every operation error
// is reported and the menu comes back; nothing here terminates the session.
func (m *Menu) Run() error {
	for {
		fmt.Fprint(m.out, choices)
		raw, ok := m.readLine("choice> ")
		if !ok {
			fmt.Fprintln(m.out, "bye")
			return nil
		}
		choice, err := ordinal.Parse(raw)
		if err != nil {
			m.report(err)
			continue
		}
		if choice == 0 {
			fmt.Fprintln(m.out, "bye")
			return nil
		}
		if err := m.dispatch(choice); err != nil {
			if errors.Is(err, errInputClosed) {
				fmt.Fprintln(m.out, "bye")
				return nil
			}
			m.report(err)
		}
	}
}

func (m *Menu) dispatch(choice int) error {
	switch choice {
	case 1:
		return m.list()
	case 2:
		return m.view()
	case 3:
		return m.search()
	case 4:
		return m.create()
	case 5:
		return m.update()
	case 6:
		return m.remove()
	case 7:
		return m.trash()
	case 8:
		return m.backup()
	case 9:
		return m.purge()
	case 10:
		return m.exportWith(m.exporter.CSV)
	case 11:
		return m.exportWith(m.exporter.JSON)
	case 12:
		return m.exportWith(m.exporter.PDF)
	case 13:
		return m.wordFrequency()
	case 14:
		return m.activity()
	default:
		return fmt.Errorf("menu: unknown choice %d", choice)
	}
}

// readLine prompts and reads one trimmed line. ok is false once input ends.
func (m *Menu) readLine(prompt string) (string, bool) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

// promptOrdinal shows the current listing and asks for a position. The
// listing is display only; the service re-lists before acting on the answer.
func (m *Menu) promptOrdinal() (int, error) {
	if err := m.list(); err != nil {
		return 0, err
	}
	raw, ok := m.readLine("note number> ")
	if !ok {
		return 0, errInputClosed
	}
	return ordinal.Parse(raw)
}

func (m *Menu) list() error {
	snap, err := m.notes.Snapshot()
	if err != nil {
		return err
	}
	if len(snap) == 0 {
		fmt.Fprintln(m.out, "no notes yet")
		return nil
	}
	for i, meta := range snap {
		fmt.Fprintf(m.out, "%3d  %s  (updated %s)\n", i+1, meta.Title, meta.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func (m *Menu) view() error {
	n, err := m.promptOrdinal()
	if err != nil {
		return err
	}
	note, err := m.notes.ReadByOrdinal(n)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "# %s\n%s\n", note.Title, note.Content)
	return nil
}

func (m *Menu) search() error {
	keyword, ok := m.readLine("keyword> ")
	if !ok {
		return errInputClosed
	}
	hits, err := m.notes.Search(keyword)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		fmt.Fprintln(m.out, "no matches")
		return nil
	}
	for _, h := range hits {
		fmt.Fprintf(m.out, "%s: %s\n", h.Title, h.Preview)
	}
	return nil
}

func (m *Menu) create() error {
	title, ok := m.readLine("title> ")
	if !ok {
		return errInputClosed
	}
	content, ok := m.readLine("content> ")
	if !ok {
		return errInputClosed
	}
	overwrote, err := m.notes.Create(title, content)
	if err != nil {
		return err
	}
	if overwrote {
		fmt.Fprintf(m.out, "warning: %q existed and was overwritten\n", strings.TrimSpace(title))
	} else {
		fmt.Fprintf(m.out, "created %q\n", strings.TrimSpace(title))
	}
	return nil
}

func (m *Menu) update() error {
	n, err := m.promptOrdinal()
	if err != nil {
		return err
	}
	title, ok := m.readLine("new title (blank keeps current)> ")
	if !ok {
		return errInputClosed
	}
	content, ok := m.readLine("new content> ")
	if !ok {
		return errInputClosed
	}
	note, err := m.notes.UpdateByOrdinal(n, title, content)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "updated %q\n", note.Title)
	return nil
}

func (m *Menu) remove() error {
	n, err := m.promptOrdinal()
	if err != nil {
		return err
	}
	title, err := m.notes.DeleteByOrdinal(n)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "deleted %q\n", title)
	return nil
}

func (m *Menu) trash() error {
	n, err := m.promptOrdinal()
	if err != nil {
		return err
	}
	title, err := m.notes.TrashByOrdinal(n)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "moved %q to trash\n", title)
	return nil
}

func (m *Menu) backup() error {
	path, err := m.archiver.Create(m.now())
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "backup written to %s\n", path)
	return nil
}

func (m *Menu) purge() error {
	removed, err := m.archiver.PurgeOld(m.retention, m.now())
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		fmt.Fprintln(m.out, "no backups old enough to purge")
		return nil
	}
	for _, path := range removed {
		fmt.Fprintf(m.out, "purged %s\n", path)
	}
	return nil
}

func (m *Menu) exportWith(format func(time.Time) (string, error)) error {
	path, err := format(m.now())
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "exported to %s\n", path)
	return nil
}

func (m *Menu) wordFrequency() error {
	n, err := m.promptOrdinal()
	if err != nil {
		return err
	}
	note, err := m.notes.ReadByOrdinal(n)
	if err != nil {
		return err
	}
	freq := report.WordFrequency(note.Content)
	if len(freq) == 0 {
		fmt.Fprintln(m.out, "no words")
		return nil
	}
	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})
	for _, w := range words {
		fmt.Fprintf(m.out, "%4d  %s\n", freq[w], w)
	}
	return nil
}

func (m *Menu) activity() error {
	snap, err := m.notes.Snapshot()
	if err != nil {
		return err
	}
	counts := report.ActivityByDate(snap)
	if len(counts) == 0 {
		fmt.Fprintln(m.out, "no notes yet")
		return nil
	}
	dates := make([]string, 0, len(counts))
	for d := range counts {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		fmt.Fprintf(m.out, "%s  %d\n", d, counts[d])
	}
	return nil
}

// report renders err as a user-facing line, classifying the taxonomy
// sentinels into friendly messages.
func (m *Menu) report(err error) {
	switch {
	case errors.Is(err, apperr.ErrNotInteger):
		fmt.Fprintln(m.out, "that is not a number")
	case errors.Is(err, apperr.ErrOutOfRange):
		fmt.Fprintln(m.out, "no note with that number")
	case errors.Is(err, apperr.ErrNotFound):
		fmt.Fprintln(m.out, "that note is gone; the list may have changed")
	case errors.Is(err, apperr.ErrAlreadyExists):
		fmt.Fprintln(m.out, "a note with that title already exists")
	case errors.Is(err, apperr.ErrPartialUpdate):
		fmt.Fprintf(m.out, "update incomplete: %v\n", err)
	case errors.Is(err, apperr.ErrIOFailure):
		fmt.Fprintf(m.out, "storage trouble: %v\n", err)
	default:
		fmt.Fprintf(m.out, "error: %v\n", err)
	}
}
