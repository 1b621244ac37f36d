package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/starford/muninn/internal/apperr"
)

// Page geometry for the generated document, in PDF points on A4 with the
// origin at the lower left.
const (
	pageTop      = 800.0
	pageBottom   = 40.0
	leftMargin   = 40.0
	headerSize   = 16
	titleSize    = 13
	bodySize     = 10
	headerLead   = 28.0
	titleLead    = 18.0
	lineHeight   = 13.0
	noteGap      = 10.0
	maxLineRunes = 92
)

// pdfText is one positioned text element of the page declaration consumed by
// pdfcpu's create API.
type pdfText struct {
	Value    string     `json:"value"`
	Position [2]float64 `json:"pos"`
	Font     pdfFont    `json:"font"`
}

type pdfFont struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type pdfContent struct {
	Text []pdfText `json:"text"`
}

type pdfPage struct {
	Content pdfContent `json:"content"`
}

// pdfLayout places text line by line, walking a vertical cursor down the
// page and starting a new page when the cursor would pass the bottom margin.
type pdfLayout struct {
	pages   map[string]*pdfPage
	pageNum int
	y       float64
}

func newPDFLayout() *pdfLayout {
	l := &pdfLayout{pages: map[string]*pdfPage{}}
	l.newPage()
	return l
}

func (l *pdfLayout) newPage() {
	l.pageNum++
	l.pages[strconv.Itoa(l.pageNum)] = &pdfPage{}
	l.y = pageTop
}

// add places one line at the cursor and advances it by lead.
func (l *pdfLayout) add(value, font string, size int, lead float64) {
	if l.y < pageBottom {
		l.newPage()
	}
	p := l.pages[strconv.Itoa(l.pageNum)]
	p.Content.Text = append(p.Content.Text, pdfText{
		Value:    value,
		Position: [2]float64{leftMargin, l.y},
		Font:     pdfFont{Name: font, Size: size},
	})
	l.y -= lead
}

// space advances the cursor without placing anything.
func (l *pdfLayout) space(lead float64) {
	l.y -= lead
}

// PDF renders every note as a bold title line followed by wrapped content
// lines, flowing across as many A4 pages as the collection needs, and
// returns the file's path.
func (e *Exporter) PDF(now time.Time) (string, error) {
	entries, err := e.collect()
	if err != nil {
		return "", err
	}

	layout := newPDFLayout()
	layout.add("Notes "+now.Format("2006-01-02"), "Helvetica-Bold", headerSize, headerLead)
	for _, en := range entries {
		layout.space(noteGap)
		layout.add(en.meta.Title, "Helvetica-Bold", titleSize, titleLead)
		for _, line := range wrapLines(en.content, maxLineRunes) {
			if line == "" {
				layout.space(lineHeight)
				continue
			}
			layout.add(line, "Helvetica", bodySize, lineHeight)
		}
	}

	decl, err := json.Marshal(map[string]any{
		"paper": "A4",
		"pages": layout.pages,
	})
	if err != nil {
		return "", fmt.Errorf("export: encode page declaration: %w", err)
	}

	path := filepath.Join(e.pdfDir, exportName("pdf", now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: create %s: %w: %v", path, apperr.ErrIOFailure, err)
	}
	conf := model.NewDefaultConfiguration()
	if err := api.Create(nil, bytes.NewReader(decl), f, conf); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("export: render %s: %w: %v", path, apperr.ErrIOFailure, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export: close %s: %w: %v", path, apperr.ErrIOFailure, err)
	}
	return path, nil
}

// wrapLines splits content into render lines at most width runes wide,
// breaking on word boundaries. Words longer than the width get a line of
// their own. Blank source lines survive as empty strings so vertical
// structure is preserved.
func wrapLines(content string, width int) []string {
	var out []string
	for _, para := range strings.Split(content, "\n") {
		para = strings.TrimRight(para, "\r")
		if strings.TrimSpace(para) == "" {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range strings.Fields(para) {
			switch {
			case line == "":
				line = word
			case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
