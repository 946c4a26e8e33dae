package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/jrewrite/pkg/pipeline"
	"github.com/yaklabco/jrewrite/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" || !filepath.IsAbs(absPath) {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	groupMap   map[string]*GroupAnalysis
	groupFiles map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		groupMap:   make(map[string]*GroupAnalysis),
		groupFiles: make(map[string]map[string]bool),
	}
}

func (ctx *analysisContext) group(name string) *GroupAnalysis {
	if _, ok := ctx.groupMap[name]; !ok {
		ctx.groupMap[name] = &GroupAnalysis{Group: name}
		ctx.groupFiles[name] = make(map[string]bool)
	}
	return ctx.groupMap[name]
}

func (ctx *analysisContext) buildByGroup(opts Options) []GroupAnalysis {
	result := make([]GroupAnalysis, 0, len(ctx.groupMap))
	for name, ga := range ctx.groupMap {
		for f := range ctx.groupFiles[name] {
			ga.Files = append(ga.Files, f)
		}
		slices.Sort(ga.Files)
		result = append(result, *ga)
	}
	sortGroupAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

// fileStatus maps a pipeline outcome to a file status.
func fileStatus(outcome runner.FileOutcome) string {
	res := outcome.Result
	switch {
	case outcome.Error != nil || res == nil:
		return StatusError
	case res.Skipped:
		return StatusSkipped
	case res.Written:
		return StatusRewritten
	case res.Modified:
		return StatusPending
	default:
		return StatusUnchanged
	}
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through the file outcomes to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	width := opts.SnippetWidth
	if width <= 0 {
		width = DefaultSnippetWidth
	}
	ctx := newAnalysisContext()
	report.Totals.Discovered = result.Stats.FilesDiscovered

	for _, outcome := range result.Files {
		displayPath := makeRelativePath(outcome.Path, opts.WorkingDir)
		fa := FileAnalysis{Path: displayPath, Status: fileStatus(outcome)}

		switch fa.Status {
		case StatusError:
			report.Totals.Errored++
			if outcome.Error != nil {
				fa.Error = outcome.Error.Error()
			}
			report.ByFile = append(report.ByFile, fa)
			continue
		case StatusSkipped:
			report.Totals.Skipped++
		case StatusRewritten:
			report.Totals.Written++
		}

		res := outcome.Result
		report.Totals.Files++
		report.Totals.Edits += res.Edits
		fa.Edits = res.Edits
		fa.Backup = res.BackupCreated
		if res.Skipped {
			fa.Reason = res.SkipReason
		}
		for _, p := range res.Problems {
			fa.Problems = append(fa.Problems, ProblemEntry{Line: p.Line, Column: p.Column, Kind: p.Kind, Missing: p.Missing})
		}
		if res.Modified {
			report.Totals.Changed++
		}
		if res.Diff != nil {
			fa.Additions = res.Diff.Additions
			fa.Deletions = res.Diff.Deletions
			report.Totals.Additions += res.Diff.Additions
			report.Totals.Deletions += res.Diff.Deletions
		}

		entries := changeEntries(displayPath, res, width)
		fa.Changes = len(entries)
		for _, entry := range entries {
			if !slices.Contains(fa.Groups, entry.Group) {
				fa.Groups = append(fa.Groups, entry.Group)
			}
			ga := ctx.group(entry.Group)
			ga.Changes++
			ctx.groupFiles[entry.Group][displayPath] = true
		}
		if opts.IncludeChanges {
			report.Changes = append(report.Changes, entries...)
		}

		if fa.Status == StatusUnchanged && !opts.IncludeUnchanged {
			continue
		}
		report.ByFile = append(report.ByFile, fa)
	}

	slices.SortStableFunc(report.ByFile, func(left, right FileAnalysis) int {
		return cmp.Compare(left.Path, right.Path)
	})
	if opts.IncludeByGroup {
		report.ByGroup = ctx.buildByGroup(opts)
	}

	return report
}

// changeEntries locates the group ranges of a modified result. Skipped and
// unchanged results have no rewritten content to locate them in.
func changeEntries(path string, res *pipeline.Result, width int) []ChangeEntry {
	if !res.Modified || res.Content == nil {
		return nil
	}
	idx := newLineIndex(res.Content)
	entries := make([]ChangeEntry, 0, len(res.Changes))
	for _, ch := range res.Changes {
		end := min(ch.Range.End(), len(res.Content))
		start := min(ch.Range.Offset, end)
		entries = append(entries, ChangeEntry{
			FilePath:    path,
			Group:       ch.Group,
			Start:       idx.position(start),
			End:         idx.position(end),
			StartOffset: start,
			EndOffset:   end,
			Snippet:     snippet(res.Content[start:end], width),
		})
	}
	return entries
}

func sortGroupAnalysis(groups []GroupAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(groups, func(left, right GroupAnalysis) int {
		if sortBy == SortByAlpha {
			return cmp.Compare(left.Group, right.Group)
		}
		result := cmp.Compare(left.Changes, right.Changes)
		if desc {
			result = -result
		}
		if result == 0 {
			result = cmp.Compare(left.Group, right.Group)
		}
		return result
	})
}
