package analysis

import (
	"bytes"
	"sort"
	"strings"

	"github.com/rivo/uniseg"
)

// lineIndex maps byte offsets to lines and display columns.
type lineIndex struct {
	content []byte
	starts  []int
}

func newLineIndex(content []byte) *lineIndex {
	starts := []int{0}
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{content: content, starts: starts}
}

// position returns the 1-based line and the 1-based display column of
// offset. Columns count terminal cells, so wide runes take two.
func (x *lineIndex) position(offset int) Position {
	line := sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > offset }) - 1
	prefix := x.content[x.starts[line]:offset]
	return Position{Line: line + 1, Column: uniseg.StringWidth(string(prefix)) + 1}
}

// snippet returns the first non-blank line of text, trimmed and cut to
// width display cells at a grapheme boundary.
func snippet(text []byte, width int) string {
	var first string
	for line := range bytes.Lines(text) {
		if s := strings.TrimSpace(string(line)); s != "" {
			first = s
			break
		}
	}
	if uniseg.StringWidth(first) <= width {
		return first
	}

	var b strings.Builder
	used := 0
	state := -1
	rest := first
	for rest != "" {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > width-1 {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	b.WriteString("…")
	return b.String()
}
