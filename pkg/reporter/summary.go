package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/yaklabco/jrewrite/internal/ui/pretty"
	"github.com/yaklabco/jrewrite/pkg/analysis"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth     = 90
	groupColWidth  = 40
	fileColWidth   = 56
	statusColWidth = 10
	numColWidth    = 7
)

// padRight pads s to width display cells. Pad before styling; ANSI codes
// would count as text otherwise.
func padRight(s string, width int) string {
	if w := uniseg.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func padLeft(s string, width int) string {
	if w := uniseg.StringWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

// truncateLeft keeps the last width-1 display cells of s behind an
// ellipsis, so that the file name of a long path stays visible.
func truncateLeft(s string, width int) string {
	if uniseg.StringWidth(s) <= width {
		return s
	}
	var clusters []string
	var widths []int
	state := -1
	for rest := s; rest != ""; {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		clusters = append(clusters, cluster)
		widths = append(widths, w)
	}
	used := 0
	i := len(clusters)
	for i > 0 && used+widths[i-1] <= width-1 {
		i--
		used += widths[i]
	}
	return "…" + strings.Join(clusters[i:], "")
}

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if !report.Totals.HasChanges() && !report.Totals.HasFailures() {
		fmt.Fprintln(r.out, r.styles.Success.Render("No changes"))
		return nil
	}

	if len(report.ByGroup) > 0 {
		r.renderGroupTable(report.ByGroup)
		fmt.Fprintln(r.out)
	}
	r.renderFileTable(report.ByFile)

	fmt.Fprint(r.out, r.styles.FormatSummary(statsOf(report.Totals)))
	return nil
}

func (r *SummaryRenderer) separator() {
	fmt.Fprintln(r.out, r.styles.Dim.Render(strings.Repeat("─", tableWidth)))
}

func (r *SummaryRenderer) renderGroupTable(groups []analysis.GroupAnalysis) {
	fmt.Fprintln(r.out, r.styles.Bold.Render("Groups"))
	r.separator()
	fmt.Fprintf(r.out, "%s %s %s\n",
		r.styles.Bold.Render(padRight("Group", groupColWidth)),
		r.styles.Bold.Render(padLeft("Changes", numColWidth)),
		r.styles.Bold.Render(padLeft("Files", numColWidth)),
	)
	r.separator()

	for _, g := range groups {
		fmt.Fprintf(r.out, "%s %s %s\n",
			r.styles.Group.Render(padRight(truncateLeft(g.Group, groupColWidth-2), groupColWidth)),
			padLeft(strconv.Itoa(g.Changes), numColWidth),
			padLeft(strconv.Itoa(len(g.Files)), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files"))
	r.separator()
	fmt.Fprintf(r.out, "%s %s %s %s %s\n",
		r.styles.Bold.Render(padRight("File", fileColWidth)),
		r.styles.Bold.Render(padRight("Status", statusColWidth)),
		r.styles.Bold.Render(padLeft("Edits", numColWidth)),
		r.styles.Bold.Render(padLeft("+", numColWidth)),
		r.styles.Bold.Render(padLeft("-", numColWidth)),
	)
	r.separator()

	for _, f := range files {
		fmt.Fprintf(r.out, "%s %s %s %s %s\n",
			r.styles.FilePath.Render(padRight(truncateLeft(f.Path, fileColWidth-2), fileColWidth)),
			r.styles.Status(f.Status)+strings.Repeat(" ", max(statusColWidth-len(f.Status), 0)),
			padLeft(strconv.Itoa(f.Edits), numColWidth),
			r.styles.DiffAdd.Render(padLeft(strconv.Itoa(f.Additions), numColWidth)),
			r.styles.DiffRemove.Render(padLeft(strconv.Itoa(f.Deletions), numColWidth)),
		)
	}
}
