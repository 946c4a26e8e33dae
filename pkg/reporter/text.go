package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/yaklabco/jrewrite/internal/ui/pretty"
	"github.com/yaklabco/jrewrite/pkg/analysis"
	"github.com/yaklabco/jrewrite/pkg/runner"
)

// TextRenderer writes one status line per file, followed by the location
// of each named change.
type TextRenderer struct {
	opts   Options
	styles *pretty.Styles
}

// NewTextRenderer creates a new text renderer.
func NewTextRenderer(opts Options) *TextRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Render implements Renderer.
func (r *TextRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if report.Totals.Files == 0 && report.Totals.Errored == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(bw, r.styles.Success.Render("No files to rewrite."))
		}
		return nil
	}

	changes := changesByFile(report.Changes)
	for _, file := range report.ByFile {
		fmt.Fprintln(bw, r.fileLine(file))
		for _, p := range file.Problems {
			what := "unexpected input"
			if p.Missing {
				what = "missing " + p.Kind
			}
			fmt.Fprintf(bw, "  %s  %s\n", r.styles.Location.Render(location(p.Line, p.Column)), what)
		}
		if !r.opts.ShowChanges {
			continue
		}
		for _, ch := range changes[file.Path] {
			fmt.Fprintf(bw, "  %s  %s  %s\n",
				r.styles.Location.Render(location(ch.Start.Line, ch.Start.Column)),
				r.styles.Group.Render(ch.Group),
				r.styles.Snippet.Render(ch.Snippet),
			)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(bw, r.styles.FormatSummaryOneLine(statsOf(report.Totals), r.opts.Write))
	}
	return nil
}

func (r *TextRenderer) fileLine(file analysis.FileAnalysis) string {
	line := r.styles.FilePath.Render(file.Path) + ": " + r.styles.Status(file.Status)
	switch file.Status {
	case analysis.StatusError:
		return line + ": " + file.Error
	case analysis.StatusSkipped:
		return line + ": " + file.Reason
	case analysis.StatusUnchanged:
		return line
	}
	detail := fmt.Sprintf(" (%d %s", file.Edits, pluralize(file.Edits, "edit", "edits"))
	if file.Backup {
		detail += ", backup created"
	}
	return line + r.styles.Dim.Render(detail+")")
}

func changesByFile(changes []analysis.ChangeEntry) map[string][]analysis.ChangeEntry {
	out := make(map[string][]analysis.ChangeEntry)
	for _, ch := range changes {
		out[ch.FilePath] = append(out[ch.FilePath], ch)
	}
	return out
}

func location(line, column int) string {
	return strconv.Itoa(line) + ":" + strconv.Itoa(column)
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// statsOf converts report totals back to runner statistics for the shared
// summary formatting.
func statsOf(t analysis.Totals) runner.Stats {
	return runner.Stats{
		FilesDiscovered: t.Discovered,
		FilesProcessed:  t.Files,
		FilesChanged:    t.Changed,
		FilesWritten:    t.Written,
		FilesSkipped:    t.Skipped,
		FilesErrored:    t.Errored,
		EditsTotal:      t.Edits,
	}
}
