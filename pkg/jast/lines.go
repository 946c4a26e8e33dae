package jast

import "sort"

// LineIndex maps byte offsets to lines. It recognizes LF, CRLF and CR
// line delimiters.
type LineIndex struct {
	content []byte
	starts  []int
	delim   string
}

// NewLineIndex builds the line index of content.
func NewLineIndex(content []byte) *LineIndex {
	idx := &LineIndex{content: content, starts: []int{0}}
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			idx.noteDelimiter("\n")
			idx.starts = append(idx.starts, i+1)
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				idx.noteDelimiter("\r\n")
				i++
			} else {
				idx.noteDelimiter("\r")
			}
			idx.starts = append(idx.starts, i+1)
		}
	}
	return idx
}

func (idx *LineIndex) noteDelimiter(d string) {
	if idx.delim == "" {
		idx.delim = d
	}
}

// Delimiter returns the first line delimiter of the buffer, or "\n" if
// the buffer has a single line.
func (idx *LineIndex) Delimiter() string {
	if idx.delim == "" {
		return "\n"
	}
	return idx.delim
}

// LineCount returns the number of lines.
func (idx *LineIndex) LineCount() int { return len(idx.starts) }

// LineOf returns the 0-based line containing offset.
func (idx *LineIndex) LineOf(offset int) int {
	if offset <= 0 {
		return 0
	}
	line := sort.Search(len(idx.starts), func(i int) bool { return idx.starts[i] > offset })
	return line - 1
}

// LineStart returns the offset of the first byte of line, or -1 if line is out of range.
func (idx *LineIndex) LineStart(line int) int {
	if line < 0 || line >= len(idx.starts) {
		return -1
	}
	return idx.starts[line]
}

// LineEnd returns the offset of the delimiter that ends line, or the buffer
// length for the last line.
func (idx *LineIndex) LineEnd(line int) int {
	if line < 0 || line >= len(idx.starts) {
		return -1
	}
	end := len(idx.content)
	if line+1 < len(idx.starts) {
		end = idx.starts[line+1]
	}
	for end > idx.starts[line] && (idx.content[end-1] == '\n' || idx.content[end-1] == '\r') {
		end--
	}
	return end
}

// LineText returns the content of line without its delimiter.
func (idx *LineIndex) LineText(line int) []byte {
	start := idx.LineStart(line)
	if start < 0 {
		return nil
	}
	return idx.content[start:idx.LineEnd(line)]
}

// Position converts an offset to a 1-based line and byte column.
func (idx *LineIndex) Position(offset int) (int, int) {
	line := idx.LineOf(offset)
	return line + 1, offset - idx.starts[line] + 1
}

// LeadingWhitespace returns the indentation of the line containing offset.
func (idx *LineIndex) LeadingWhitespace(offset int) string {
	line := idx.LineOf(offset)
	start := idx.starts[line]
	end := start
	for end < len(idx.content) && (idx.content[end] == ' ' || idx.content[end] == '\t') {
		end++
	}
	return string(idx.content[start:end])
}
