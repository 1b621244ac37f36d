package export

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/muninn/internal/testutil"
)

// pageCount re-reads a generated document through pdfcpu and returns how
// many pages it holds.
func pageCount(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	require.NoError(t, err, "generated document must be a valid PDF")
	return ctx.PageCount
}

func TestPDFShortCollectionFitsOnePage(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.Files["a.txt"] = "short note"
	fs.Files["b.txt"] = "another short note"
	e := New(fs, t.TempDir(), t.TempDir(), t.TempDir(), testutil.Silent())

	path, err := e.PDF(time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF-"), "missing PDF magic")
	assert.Equal(t, 1, pageCount(t, path))
}

func TestPDFPaginatesLongContent(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&sb, "line %d of the very long note\n", i)
	}
	fs := testutil.NewFakeStore()
	fs.Files["long.txt"] = sb.String()
	e := New(fs, t.TempDir(), t.TempDir(), t.TempDir(), testutil.Silent())

	path, err := e.PDF(time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pageCount(t, path), 2,
		"content past the bottom margin must flow onto further pages")
}

func TestPDFEmptyCollection(t *testing.T) {
	fs := testutil.NewFakeStore()
	e := New(fs, t.TempDir(), t.TempDir(), t.TempDir(), testutil.Silent())

	path, err := e.PDF(time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, pageCount(t, path), "the dated header still makes a page")
}

func TestWrapLines(t *testing.T) {
	cases := []struct {
		name    string
		content string
		width   int
		want    []string
	}{
		{
			name:    "breaks on word boundaries",
			content: "alpha beta gamma",
			width:   10,
			want:    []string{"alpha beta", "gamma"},
		},
		{
			name:    "keeps blank lines",
			content: "one\n\ntwo",
			width:   20,
			want:    []string{"one", "", "two"},
		},
		{
			name:    "long word gets its own line",
			content: "a supercalifragilistic b",
			width:   6,
			want:    []string{"a", "supercalifragilistic", "b"},
		},
		{
			name:    "strips carriage returns",
			content: "dos line\r\nnext",
			width:   20,
			want:    []string{"dos line", "next"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, wrapLines(tc.content, tc.width))
		})
	}
}
