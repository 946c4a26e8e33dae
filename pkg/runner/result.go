package runner

import "github.com/yaklabco/jrewrite/pkg/pipeline"

// FileOutcome is the pipeline result or error of one file.
type FileOutcome struct {
	Path string

	// Result is nil if the file could not be processed.
	Result *pipeline.Result

	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int

	// FilesProcessed counts files that went through the pipeline without
	// error, changed or not.
	FilesProcessed int

	// FilesChanged counts files whose rewritten content differs.
	FilesChanged int

	// FilesWritten counts files replaced on disk.
	FilesWritten int

	// FilesSkipped counts rewrites dropped by the syntax check or a
	// concurrent modification.
	FilesSkipped int

	FilesErrored int

	// EditsTotal is the number of text changing edits over all files.
	EditsTotal int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome

	Stats Stats
}

// HasFailures reports whether any file errored or was skipped.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || r.Stats.FilesSkipped > 0
}

// HasChanges reports whether any file has rewritten content.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesChanged > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	res := outcome.Result
	if res == nil {
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.EditsTotal += res.Edits
	if res.Skipped {
		r.Stats.FilesSkipped++
	}
	if res.Modified {
		r.Stats.FilesChanged++
	}
	if res.Written {
		r.Stats.FilesWritten++
	}
}
