package analysis

import "time"

// File statuses.
const (
	StatusRewritten = "rewritten"
	StatusPending   = "pending"
	StatusSkipped   = "skipped"
	StatusUnchanged = "unchanged"
	StatusError     = "error"
)

// Report contains pre-computed views of a rewrite run.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Changes is the flat list of named change locations.
	Changes []ChangeEntry `json:"changes,omitempty"`

	// ByFile has one entry per processed file, ordered by path.
	ByFile []FileAnalysis `json:"files"`

	// ByGroup aggregates change locations by group name.
	ByGroup []GroupAnalysis `json:"groups,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// Position is a 1-based line and display column.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// ChangeEntry locates the rewritten text of one change group.
type ChangeEntry struct {
	FilePath string   `json:"filePath"`
	Group    string   `json:"group"`
	Start    Position `json:"start"`
	End      Position `json:"end"`

	// StartOffset and EndOffset are byte offsets in the rewritten content.
	StartOffset int `json:"startOffset"`
	EndOffset   int `json:"endOffset"`

	// Snippet is the first line of the rewritten text, shortened to the
	// snippet width.
	Snippet string `json:"snippet,omitempty"`
}

// ProblemEntry is a syntax problem of output that failed the re-parse check.
type ProblemEntry struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Kind    string `json:"kind"`
	Missing bool   `json:"missing,omitempty"`
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path      string         `json:"path"`
	Status    string         `json:"status"`
	Edits     int            `json:"edits"`
	Changes   int            `json:"changes"`
	Additions int            `json:"additions"`
	Deletions int            `json:"deletions"`
	Groups    []string       `json:"groups,omitempty"`
	Backup    bool           `json:"backupCreated,omitempty"`
	Reason    string         `json:"reason,omitempty"`
	Error     string         `json:"error,omitempty"`
	Problems  []ProblemEntry `json:"problems,omitempty"`
}

// GroupAnalysis contains aggregated data for a single change group.
type GroupAnalysis struct {
	Group   string   `json:"group"`
	Changes int      `json:"changes"`
	Files   []string `json:"files,omitempty"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Discovered int `json:"filesDiscovered"`
	Files      int `json:"filesProcessed"`
	Changed    int `json:"filesChanged"`
	Written    int `json:"filesWritten"`
	Skipped    int `json:"filesSkipped"`
	Errored    int `json:"filesErrored"`
	Edits      int `json:"edits"`
	Additions  int `json:"additions"`
	Deletions  int `json:"deletions"`
}

// HasChanges returns true if any file has rewritten content.
func (t Totals) HasChanges() bool {
	return t.Changed > 0
}

// HasFailures returns true if any file errored or was skipped.
func (t Totals) HasFailures() bool {
	return t.Errored > 0 || t.Skipped > 0
}
