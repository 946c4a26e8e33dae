package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/jrewrite/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files rewritten (12 edits), 1 skipped, 10 files processed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, write bool) string {
	if stats.FilesChanged == 0 && stats.FilesSkipped == 0 && stats.FilesErrored == 0 {
		return s.Success.Render("No changes") +
			s.Dim.Render(fmt.Sprintf(" (%d %s processed)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))) +
			"\n"
	}

	var parts []string

	if stats.FilesChanged > 0 {
		verb := "to rewrite"
		n := stats.FilesChanged
		if write {
			verb = "rewritten"
			n = stats.FilesWritten
		}
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s %s", n, plural(n, wordFile, wordFiles), verb))+
			fmt.Sprintf(" (%d %s)", stats.EditsTotal, plural(stats.EditsTotal, "edit", "edits")))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Skipped.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	parts = append(parts, fmt.Sprintf("%d %s processed", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	line := func(label string, style func(...string) string, n int) {
		builder.WriteString(fmt.Sprintf("  %-19s", label+":") + style(strconv.Itoa(n)) + "\n")
	}

	line("Files discovered", s.SummaryValue.Render, stats.FilesDiscovered)
	line("Files processed", s.SummaryValue.Render, stats.FilesProcessed)
	if stats.FilesChanged > 0 {
		line("Files changed", s.Success.Render, stats.FilesChanged)
	}
	if stats.FilesWritten > 0 {
		line("Files written", s.Success.Render, stats.FilesWritten)
	}
	if stats.FilesSkipped > 0 {
		line("Files skipped", s.Skipped.Render, stats.FilesSkipped)
	}
	if stats.FilesErrored > 0 {
		line("Files failed", s.Failure.Render, stats.FilesErrored)
	}

	builder.WriteString("\n")
	line("Total edits", s.SummaryValue.Render, stats.EditsTotal)
	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Rewrite failed"))
	case stats.FilesSkipped > 0:
		builder.WriteString(s.Skipped.Render("Rewrite completed with skipped files"))
	case stats.FilesChanged > 0:
		builder.WriteString(s.Success.Render("Rewrite completed"))
	default:
		builder.WriteString(s.Success.Render("Nothing to rewrite"))
	}
	builder.WriteString("\n")

	return builder.String()
}
