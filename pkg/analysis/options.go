package analysis

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts by change count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically.
	SortByAlpha SortField = "alpha"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// IncludeChanges includes the flat list of change locations.
	IncludeChanges bool

	// IncludeByGroup includes the per-group analysis.
	IncludeByGroup bool

	// IncludeUnchanged keeps unchanged files in ByFile.
	IncludeUnchanged bool

	// SortBy specifies how to sort ByGroup.
	SortBy SortField

	// SortDesc sorts in descending order (highest first).
	SortDesc bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string

	// SnippetWidth caps the display width of change snippets. Zero means
	// DefaultSnippetWidth.
	SnippetWidth int
}

// DefaultSnippetWidth is the snippet width used when Options leaves it unset.
const DefaultSnippetWidth = 60

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeChanges: true,
		IncludeByGroup: true,
		SortBy:         SortByCount,
		SortDesc:       true,
		SnippetWidth:   DefaultSnippetWidth,
	}
}
