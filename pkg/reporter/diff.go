package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/jrewrite/internal/ui/pretty"
	"github.com/yaklabco/jrewrite/pkg/runner"
	"github.com/yaklabco/jrewrite/pkg/textedit"
)

// DiffReporter formats results as unified diffs in Git style.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	if result == nil {
		return 0, nil
	}
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	errOut := r.opts.ErrorWriter
	if errOut == nil {
		errOut = bw
	}

	var filesWithDiffs, totalAdditions, totalDeletions int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(errOut, "%s: %s\n",
				r.styles.FilePath.Render(r.displayPath(file.Path)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Result == nil {
			continue
		}
		if file.Result.Skipped {
			fmt.Fprintf(errOut, "%s: %s\n",
				r.styles.FilePath.Render(r.displayPath(file.Path)),
				r.styles.Skipped.Render("skipped: "+file.Result.SkipReason),
			)
			continue
		}
		if !file.Result.Diff.HasChanges() {
			continue
		}

		filesWithDiffs++
		totalAdditions += file.Result.Diff.Additions
		totalDeletions += file.Result.Diff.Deletions
		r.writeDiff(bw, file.Result.Diff)
	}

	if filesWithDiffs > 0 && r.opts.ShowSummary {
		r.writeSummary(bw, filesWithDiffs, totalAdditions, totalDeletions)
	}

	return filesWithDiffs, nil
}

// writeDiff outputs a single file's diff with formatting.
func (r *DiffReporter) writeDiff(w io.Writer, diff *textedit.Diff) {
	displayPath := filepath.ToSlash(r.displayPath(diff.Path))

	fmt.Fprintln(w, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", displayPath, displayPath)))
	fmt.Fprintln(w, r.styles.DiffRemove.Render("--- a/"+displayPath))
	fmt.Fprintln(w, r.styles.DiffAdd.Render("+++ b/"+displayPath))

	for _, h := range diff.Hunks {
		fmt.Fprintln(w, r.styles.DiffHunk.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)))
		for _, line := range h.Lines {
			switch line.Kind {
			case textedit.LineAdded:
				fmt.Fprintln(w, r.styles.DiffAdd.Render("+"+line.Text))
			case textedit.LineRemoved:
				fmt.Fprintln(w, r.styles.DiffRemove.Render("-"+line.Text))
			default:
				fmt.Fprintln(w, r.styles.DiffContext.Render(" "+line.Text))
			}
		}
	}

	fmt.Fprintln(w)
}

// displayPath shortens path relative to the working directory. If the
// relative path would require too many "../" traversals, the base name is used.
func (r *DiffReporter) displayPath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	dir := r.opts.WorkingDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return filepath.Base(path)
		}
		dir = cwd
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return filepath.Base(path)
	}
	if strings.Count(rel, "..") > 2 {
		return filepath.Base(path)
	}
	return rel
}

// writeSummary writes a summary line at the end.
func (r *DiffReporter) writeSummary(w io.Writer, files, additions, deletions int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, pluralize(files, "file", "files"))}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, pluralize(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, pluralize(deletions, "deletion", "deletions"))))
	}
	fmt.Fprintln(w, strings.Join(parts, ", "))
}
