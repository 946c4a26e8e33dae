package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/jrewrite/internal/ui/pretty"
	"github.com/yaklabco/jrewrite/pkg/analysis"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowChanges lists the location of every named change group.
	ShowChanges bool

	// ShowUnchanged lists files the script left untouched.
	ShowUnchanged bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// Write tells the summary that changed files were written.
	Write bool

	// SortGroupsBy orders the group table of the summary format.
	SortGroupsBy analysis.SortField

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		ErrorWriter:  os.Stderr,
		Format:       FormatText,
		Color:        pretty.ColorAuto,
		ShowChanges:  true,
		ShowSummary:  true,
		SortGroupsBy: analysis.SortByCount,
	}
}
