// Package reporter renders rewrite results as text, JSON, unified diffs or
// summary tables.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/jrewrite/pkg/analysis"
	"github.com/yaklabco/jrewrite/pkg/runner"
)

// Compile-time interface check for reporterFacade.
var _ Reporter = (*reporterFacade)(nil)

// Reporter formats and writes rewrite results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of changed files and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// reporterFacade bridges the Reporter interface to Renderer implementations.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

// Report implements Reporter by analyzing the result and rendering it.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Changed, nil
}

func newRendererFacade(renderer Renderer, opts Options) *reporterFacade {
	sortBy := opts.SortGroupsBy
	if !sortBy.IsValid() {
		sortBy = analysis.SortByCount
	}
	return &reporterFacade{
		renderer: renderer,
		analysisOpts: analysis.Options{
			IncludeChanges:   true,
			IncludeByGroup:   true,
			IncludeUnchanged: opts.ShowUnchanged,
			SortBy:           sortBy,
			SortDesc:         true,
			WorkingDir:       opts.WorkingDir,
		},
	}
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return newRendererFacade(NewJSONRenderer(opts), opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatText:
		return newRendererFacade(NewTextRenderer(opts), opts), nil
	case FormatSummary:
		return newRendererFacade(NewSummaryRenderer(opts), opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
