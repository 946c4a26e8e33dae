// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldScript = "script"
	FieldWrite  = "write"
	FieldDryRun = "dry_run"
	FieldJobs   = "jobs"

	// Rewrite fields.
	FieldKind   = "kind"
	FieldSlot   = "slot"
	FieldOffset = "offset"
	FieldEdits  = "edits"
	FieldStep   = "step"
	FieldGroup  = "group"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesFailed     = "files_failed"
	FieldEditsTotal      = "edits_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
