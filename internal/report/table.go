package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ciricc/perf-compare/internal/compare"
)

// Row is one compared metric as it appears in a table.
type Row struct {
	Name     string
	Baseline string
	Current  string
	Change   float64
	Status   compare.Status
}

// Labels name the two systems in table headers.
type Labels struct {
	Baseline string
	Current  string
}

// DefaultLabels are used for whichever label the caller leaves empty.
var DefaultLabels = Labels{
	Baseline: "CentOS 7 (UAT6)",
	Current:  "Ubuntu 24.04 (UAT7)",
}

// RenderTable writes a "### title" heading followed by a Markdown table with
// one line per row, in the order given.
func RenderTable(w io.Writer, title string, rows []Row, labels Labels) error {
	p := &printer{w: w}

	header := []string{"Metric", labels.Baseline, labels.Current, "Change", "Status"}
	sep := make([]string, len(header))
	for i, h := range header {
		sep[i] = strings.Repeat("-", utf8.RuneCountInString(h)+2)
	}

	p.printf("\n### %s\n", title)
	p.printf("| %s |\n", strings.Join(header, " | "))
	p.printf("|%s|\n", strings.Join(sep, "|"))
	for _, r := range rows {
		p.printf("| %s | %s | %s | %+.1f%% | %s |\n", r.Name, r.Baseline, r.Current, r.Change, r.Status.Label())
	}

	return p.err
}

// printer remembers the first write error so callers can print freely and
// check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(s string) {
	p.printf("%s\n", s)
}
