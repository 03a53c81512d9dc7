// Package report renders validation results for the terminal or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/specialistvlad/peunion/internal/project"
)

// Entry is the outcome of validating one project file. Exactly one of Err
// and Result is set.
type Entry struct {
	Path   string
	Title  string
	Err    error
	Result *project.Result
}

// Failed reports whether the entry failed to load or has error issues.
func (e Entry) Failed() bool {
	return e.Err != nil || (e.Result != nil && e.Result.HasErrors())
}

// Summary totals a set of entries.
type Summary struct {
	Files    int `json:"files"`
	Failed   int `json:"failed"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Messages int `json:"messages"`
}

// Summarize totals entries.
func Summarize(entries []Entry) Summary {
	s := Summary{Files: len(entries)}
	for _, e := range entries {
		if e.Failed() {
			s.Failed++
		}
		if e.Result != nil {
			s.Errors += e.Result.ErrorCount
			s.Warnings += e.Result.WarningCount
			s.Messages += e.Result.MessageCount
		}
	}
	return s
}

type jsonEntry struct {
	Path   string          `json:"path"`
	Title  string          `json:"title,omitempty"`
	Error  string          `json:"error,omitempty"`
	Result *project.Result `json:"result,omitempty"`
}

type jsonReport struct {
	Files   []jsonEntry `json:"files"`
	Summary Summary     `json:"summary"`
}

// JSON writes entries and their summary as one indented JSON object.
func JSON(w io.Writer, entries []Entry) error {
	out := jsonReport{Files: make([]jsonEntry, 0, len(entries)), Summary: Summarize(entries)}
	for _, e := range entries {
		je := jsonEntry{Path: e.Path, Title: e.Title, Result: e.Result}
		if e.Err != nil {
			je.Error = e.Err.Error()
		}
		out.Files = append(out.Files, je)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// styles are bound to a renderer so color follows the destination writer:
// a terminal gets color, a pipe or buffer gets plain text.
type styles struct {
	path    lipgloss.Style
	dim     lipgloss.Style
	ok      lipgloss.Style
	bySev   map[project.Severity]lipgloss.Style
	failure lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		path: r.NewStyle().Bold(true),
		dim:  r.NewStyle().Foreground(lipgloss.Color("240")),
		ok:   r.NewStyle().Foreground(lipgloss.Color("42")),
		bySev: map[project.Severity]lipgloss.Style{
			project.SeverityError:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			project.SeverityWarning: r.NewStyle().Foreground(lipgloss.Color("208")),
			project.SeverityMessage: r.NewStyle().Foreground(lipgloss.Color("81")),
		},
		failure: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

// Text writes a human readable report, one block per entry, followed by a
// summary line.
func Text(w io.Writer, entries []Entry) error {
	st := newStyles(w)
	var b strings.Builder

	for _, e := range entries {
		b.WriteString(st.path.Render(e.Path))
		if e.Title != "" {
			b.WriteString(" " + st.dim.Render("("+e.Title+")"))
		}
		b.WriteByte('\n')

		switch {
		case e.Err != nil:
			fmt.Fprintf(&b, "  %s %s\n", pad(st.failure.Render("failed"), len("failed")), e.Err)
		case e.Result == nil || e.Result.Total() == 0:
			fmt.Fprintf(&b, "  %s\n", st.ok.Render("ok"))
		default:
			for _, issue := range e.Result.Issues {
				sev := issue.Severity.String()
				label := pad(st.bySev[issue.Severity].Render(sev), len(sev))
				if issue.Source != "" {
					fmt.Fprintf(&b, "  %s %s: %s\n", label, issue.Source, issue.Message)
				} else {
					fmt.Fprintf(&b, "  %s %s\n", label, issue.Message)
				}
			}
		}
	}

	s := Summarize(entries)
	fmt.Fprintf(&b, "%s\n", st.dim.Render(fmt.Sprintf(
		"%s checked, %s failed: %s, %s, %s",
		plural(s.Files, "file"), plural(s.Failed, "file"),
		plural(s.Errors, "error"), plural(s.Warnings, "warning"), plural(s.Messages, "message"),
	)))

	_, err := io.WriteString(w, b.String())
	return err
}

const labelWidth = 7

// pad fills styled text up to labelWidth columns; width is its unstyled length.
func pad(styled string, width int) string {
	if width >= labelWidth {
		return styled
	}
	return styled + strings.Repeat(" ", labelWidth-width)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
