package textedit

import (
	"fmt"
	"strings"
)

// Diff is a line-based unified diff between two versions of a file.
type Diff struct {
	// Path is the file path used in the headers.
	Path string

	// Hunks are the changed regions with surrounding context.
	Hunks []Hunk

	// Additions is the number of added lines.
	Additions int

	// Deletions is the number of removed lines.
	Deletions int
}

// Hunk is one "@@" section of a unified diff.
type Hunk struct {
	// OldStart and NewStart are 1-based line numbers.
	OldStart int
	OldCount int
	NewStart int
	NewCount int

	Lines []DiffLine
}

// LineKind classifies a diff line.
type LineKind uint8

const (
	// LineContext is an unchanged line.
	LineContext LineKind = iota

	// LineAdded is present only in the new version.
	LineAdded

	// LineRemoved is present only in the old version.
	LineRemoved
)

var linePrefix = [...]byte{LineContext: ' ', LineAdded: '+', LineRemoved: '-'}

// DiffLine is one line of a hunk, without its delimiter.
type DiffLine struct {
	Kind LineKind
	Text string
}

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// GenerateDiff returns the unified diff from original to modified, or nil
// if both have the same lines.
func GenerateDiff(path string, original, modified []byte) *Diff {
	oldLines := diffLines(original)
	newLines := diffLines(modified)

	script := editScript(oldLines, newLines)
	hunks := groupHunks(script)
	if len(hunks) == 0 {
		return nil
	}

	d := &Diff{Path: path, Hunks: hunks}
	for _, op := range script {
		switch op.kind {
		case LineAdded:
			d.Additions++
		case LineRemoved:
			d.Deletions++
		}
	}
	return d
}

// HasChanges reports whether d holds any hunk.
func (d *Diff) HasChanges() bool { return d != nil && len(d.Hunks) > 0 }

// GitHeader returns the "diff --git" line for the file.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	p := strings.TrimPrefix(d.Path, "/")
	return "diff --git a/" + p + " b/" + p
}

// String renders the file headers and hunks.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}
	p := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	b.WriteString("--- a/" + p + "\n")
	b.WriteString("+++ b/" + p + "\n")
	for _, h := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, l := range h.Lines {
			b.WriteByte(linePrefix[l.Kind])
			b.WriteString(l.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FullString renders the diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// diffLines splits content on LF. A trailing delimiter does not start a
// new line; carriage returns stay part of the line text.
func diffLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type scriptOp struct {
	kind LineKind
	text string
}

// editScript aligns the two line sequences on a longest common
// subsequence. Common prefix and suffix are trimmed first to keep the
// table small for typical single-region rewrites.
func editScript(a, b []string) []scriptOp {
	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(a)-prefix && suffix < len(b)-prefix &&
		a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}

	ops := make([]scriptOp, 0, len(a)+len(b))
	for _, l := range a[:prefix] {
		ops = append(ops, scriptOp{LineContext, l})
	}

	midA := a[prefix : len(a)-suffix]
	midB := b[prefix : len(b)-suffix]

	// lcs[i][j] is the LCS length of midA[i:] and midB[j:].
	lcs := make([][]int, len(midA)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(midB)+1)
	}
	for i := len(midA) - 1; i >= 0; i-- {
		for j := len(midB) - 1; j >= 0; j-- {
			if midA[i] == midB[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	i, j := 0, 0
	for i < len(midA) || j < len(midB) {
		switch {
		case i < len(midA) && j < len(midB) && midA[i] == midB[j]:
			ops = append(ops, scriptOp{LineContext, midA[i]})
			i++
			j++
		case j == len(midB) || (i < len(midA) && lcs[i+1][j] >= lcs[i][j+1]):
			ops = append(ops, scriptOp{LineRemoved, midA[i]})
			i++
		default:
			ops = append(ops, scriptOp{LineAdded, midB[j]})
			j++
		}
	}

	for _, l := range a[len(a)-suffix:] {
		ops = append(ops, scriptOp{LineContext, l})
	}
	return ops
}

// groupHunks cuts the script into hunks, merging changes separated by at
// most twice the context size.
func groupHunks(ops []scriptOp) []Hunk {
	var hunks []Hunk
	oldLine, newLine := 1, 1
	var cur *Hunk
	lastChange := -1

	for idx, op := range ops {
		if op.kind != LineContext {
			if cur == nil || idx-lastChange > 2*contextLines {
				if cur != nil {
					hunks = append(hunks, trimHunk(*cur))
				}
				cur = startHunk(ops, max(idx-contextLines, 0), idx, oldLine, newLine)
			}
			lastChange = idx
		}
		if cur != nil {
			cur.Lines = append(cur.Lines, DiffLine{Kind: op.kind, Text: op.text})
			countLine(cur, op.kind)
		}
		if op.kind != LineAdded {
			oldLine++
		}
		if op.kind != LineRemoved {
			newLine++
		}
	}
	if cur != nil {
		hunks = append(hunks, trimHunk(*cur))
	}
	return hunks
}

// startHunk opens a hunk at ops[from] whose first change is ops[at].
// oldLine and newLine are the line numbers of ops[at].
func startHunk(ops []scriptOp, from, at, oldLine, newLine int) *Hunk {
	h := &Hunk{OldStart: oldLine, NewStart: newLine}
	for k := from; k < at; k++ {
		// Leading context lines are unchanged in both versions.
		h.Lines = append(h.Lines, DiffLine{Kind: LineContext, Text: ops[k].text})
		h.OldCount++
		h.NewCount++
		h.OldStart--
		h.NewStart--
	}
	return h
}

func countLine(h *Hunk, kind LineKind) {
	switch kind {
	case LineContext:
		h.OldCount++
		h.NewCount++
	case LineRemoved:
		h.OldCount++
	case LineAdded:
		h.NewCount++
	}
}

// trimHunk drops trailing context beyond contextLines.
func trimHunk(h Hunk) Hunk {
	trailing := 0
	for k := len(h.Lines) - 1; k >= 0 && h.Lines[k].Kind == LineContext; k-- {
		trailing++
	}
	for extra := trailing - contextLines; extra > 0; extra-- {
		h.Lines = h.Lines[:len(h.Lines)-1]
		h.OldCount--
		h.NewCount--
	}
	return h
}
