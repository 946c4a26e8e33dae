package reporter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/jrewrite/pkg/reporter"
	"github.com/yaklabco/jrewrite/pkg/runner"
)

func TestSummaryRenderer(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	opts.Format = reporter.FormatSummary
	out, n := render(t, opts, testResult())
	assert.Equal(t, 1, n)

	assert.Contains(t, out, "Groups")
	assert.Contains(t, out, "rename")
	assert.Contains(t, out, "Files")
	assert.Contains(t, out, "A.java")
	assert.Contains(t, out, "pending")
	assert.Contains(t, out, "Files discovered:")
	assert.Contains(t, out, "Rewrite failed")
}

func TestSummaryRenderer_NoChanges(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	opts.Format = reporter.FormatSummary
	out, n := render(t, opts, &runner.Result{Stats: runner.Stats{FilesProcessed: 2}})
	assert.Zero(t, n)
	assert.Equal(t, "No changes\n", out)
}

func TestPadding(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ab  ", reporter.PadRight("ab", 4))
	assert.Equal(t, "日本", reporter.PadRight("日本", 4), "wide runes count two cells")
	assert.Equal(t, "  ab", reporter.PadLeft("ab", 4))
	assert.Equal(t, "abcdef", reporter.PadLeft("abcdef", 4))
}

func TestTruncateLeft(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "src/A.java", reporter.TruncateLeft("src/A.java", 20))
	assert.Equal(t, "…A.java", reporter.TruncateLeft("very/long/src/A.java", 7))
	assert.Equal(t, "…本.java", reporter.TruncateLeft("日本.java", 8))
}
