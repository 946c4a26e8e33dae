// Package pipeline runs a change script over one Java unit: read, parse,
// record the script, generate and apply edits, optionally re-check the
// output, then diff or write it safely.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/jrewrite/internal/logging"
	"github.com/yaklabco/jrewrite/pkg/fsutil"
	"github.com/yaklabco/jrewrite/pkg/langdetect"
	"github.com/yaklabco/jrewrite/pkg/parser/java"
	"github.com/yaklabco/jrewrite/pkg/parser/treesitter"
	"github.com/yaklabco/jrewrite/pkg/rewrite"
	"github.com/yaklabco/jrewrite/pkg/script"
	"github.com/yaklabco/jrewrite/pkg/textedit"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotJava indicates input that is not Java source.
	ErrNotJava = errors.New("not java source")

	// ErrParseFailure indicates a parsing error.
	ErrParseFailure = errors.New("parse failure")

	// ErrRewriteFailure indicates a script, edit generation or apply error.
	ErrRewriteFailure = errors.New("rewrite failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// Change is the output range of one change group.
type Change struct {
	Group string

	// Range is an offset range in the rewritten content.
	Range textedit.Range
}

// Result is the outcome of one unit.
type Result struct {
	Path string

	// OriginalInfo is the file state before processing. nil for content
	// that did not come from a file.
	OriginalInfo *fsutil.FileInfo

	// Steps are the results of the script steps.
	Steps []script.StepResult

	// Edits is the number of text changing edits.
	Edits int

	// Changes are the output ranges of the named groups that changed text.
	Changes []Change

	// Modified is true if the rewritten content differs from the original.
	Modified bool

	// Content is the rewritten content (nil if not modified).
	Content []byte

	// Diff is the unified diff of the change (nil if not modified).
	Diff *textedit.Diff

	// Problems are the syntax problems of rewritten output that failed
	// the re-parse check.
	Problems []treesitter.Problem

	// Skipped is true if the rewrite was dropped.
	Skipped bool

	// SkipReason explains why the rewrite was dropped.
	SkipReason string

	BackupCreated bool
	Written       bool
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	switch {
	case r.Skipped:
		return "skipped: " + r.SkipReason
	case r.Written && r.BackupCreated:
		return "rewritten (backup created)"
	case r.Written:
		return "rewritten"
	case r.Modified:
		return "changes pending"
	default:
		return "unchanged"
	}
}

// Options controls pipeline behavior.
type Options struct {
	// Write replaces changed files on disk.
	Write bool

	// DryRun produces diffs without writing, even when Write is set.
	DryRun bool

	// Backup configures backups of written files.
	Backup fsutil.BackupConfig

	// CheckSyntax re-parses rewritten output with tree-sitter and drops
	// rewrites that no longer parse.
	CheckSyntax bool

	// Rewrite configures edit generation. A nil logger uses the logger of
	// the context.
	Rewrite rewrite.Options
}

// DefaultOptions returns a read-only pipeline with default layout.
func DefaultOptions() Options {
	return Options{
		Backup:  fsutil.DefaultBackupConfig(),
		Rewrite: rewrite.DefaultOptions(),
	}
}

// Pipeline applies one script to units.
type Pipeline struct {
	Script *script.Script
	Parser *java.Parser
}

// New creates a pipeline for s.
func New(s *script.Script) *Pipeline {
	return &Pipeline{Script: s, Parser: java.New()}
}

// ProcessFile runs the pipeline for the file at path.
//
// The pipeline performs the following steps:
//  1. Read and hash the original file.
//  2. Rewrite the content in memory (see ProcessContent).
//  3. In write mode, check for concurrent modification, back up the
//     original and write the new content atomically.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts Options) (*Result, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, content, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if !result.Modified || !opts.Write || opts.DryRun {
		return result, nil
	}

	commit, err := fsutil.Commit(ctx, info, result.Content, opts.Backup)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	if commit.Conflict {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}
	result.BackupCreated = commit.BackupCreated
	result.Written = commit.Written
	logging.ForFile(ctx, path).Debug("wrote file", logging.FieldEdits, result.Edits)
	return result, nil
}

// ProcessContent rewrites content without file I/O. path names the unit
// in errors and diffs; it may be empty.
//
// The steps are:
//  1. Reject content that is not Java.
//  2. Parse the unit and record the script on it.
//  3. Generate, validate and apply the edit tree.
//  4. Optionally re-parse the output.
//  5. Diff the output against the original.
func (p *Pipeline) ProcessContent(ctx context.Context, path string, content []byte, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}
	logger := logging.ForFile(ctx, path)
	result := &Result{Path: path}

	if lang := langdetect.Detect(path, content); lang != langdetect.LangJava {
		return nil, fmt.Errorf("%w: %s looks like %s", ErrNotJava, displayPath(path), lang)
	}

	tree, err := p.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	r := rewrite.New(tree)
	result.Steps, err = script.Run(logging.WithLogger(ctx, logger), p.Script, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRewriteFailure, err)
	}

	ropts := opts.Rewrite
	if ropts.Logger == nil {
		ropts.Logger = logger
	}
	edits, err := r.Edits(ropts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRewriteFailure, err)
	}
	applied, err := edits.Apply(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRewriteFailure, err)
	}
	result.Edits = edits.Edits
	result.Changes = changes(result.Steps, applied)
	logger.Debug("applied edits", logging.FieldEdits, edits.Edits)

	if bytes.Equal(applied.Content, content) {
		return result, nil
	}

	if opts.CheckSyntax {
		problems, err := treesitter.Problems(ctx, applied.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRewriteFailure, err)
		}
		if len(problems) > 0 {
			result.Skipped = true
			result.SkipReason = (&treesitter.CheckError{Problems: problems}).Error()
			result.Problems = problems
			logger.Warn("rewritten output does not parse", "problems", len(problems))
			return result, nil
		}
	}

	result.Modified = true
	result.Content = applied.Content
	result.Diff = textedit.GenerateDiff(path, content, applied.Content)
	return result, nil
}

// changes collects the output ranges of named step groups.
func changes(steps []script.StepResult, applied *textedit.Result) []Change {
	var out []Change
	for _, st := range steps {
		if st.Group == nil || st.Group.IsEmpty() {
			continue
		}
		if rng, ok := applied.GroupRange(st.Group); ok {
			out = append(out, Change{Group: st.Group.Name, Range: rng})
		}
	}
	return out
}

func displayPath(path string) string {
	if path == "" {
		return "input"
	}
	return path
}

// categorizeError wraps an error with the appropriate pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrNotJava) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrRewriteFailure) ||
		errors.Is(err, ErrWriteFailure)
}
