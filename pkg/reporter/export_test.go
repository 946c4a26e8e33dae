package reporter

var (
	PadRight     = padRight
	PadLeft      = padLeft
	TruncateLeft = truncateLeft
)
