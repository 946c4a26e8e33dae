package rewrite

import (
	"strings"

	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/scanner"
)

// defaultSpacing is the number of blank lines between paragraph entries
// when the original list gives no example.
const defaultSpacing = 1

// paragraphPolicy places every entry on its own line at insertIndent.
// separatorLines is the number of blank lines between entries, or -1 to
// derive it from the original list.
func paragraphPolicy(insertIndent, separatorLines int) listPolicy {
	return listPolicy{
		initialIndent: func(*listRewriter) int { return insertIndent },
		separator: func(r *listRewriter, index int) string {
			lines := separatorLines
			if lines == -1 {
				lines = r.newLines(index)
			}
			return strings.Repeat(r.a.delim, lines+1) + r.a.indentString(r.nodeIndent(index+1))
		},
	}
}

// switchPolicy indents case labels one level below the switch and the
// statements of a case one level further.
func switchPolicy(caseIndent int) listPolicy {
	p := paragraphPolicy(caseIndent, 0)
	p.nodeIndent = func(r *listRewriter, index int) int {
		if index >= len(r.list) {
			index = len(r.list) - 1
		}
		n := r.newNode(index)
		if n == jast.NoNode {
			n = r.originalNode(index)
		}
		if n != jast.NoNode && r.a.tree.Kind(n) == jast.KindSwitchCase {
			return caseIndent
		}
		return caseIndent + 1
	}
	return p
}

// kindAt returns the kind of the entry at index, preferring the original.
func (r *listRewriter) kindAt(index int) jast.Kind {
	n := r.originalNode(index)
	if n == jast.NoNode {
		n = r.newNode(index)
	}
	if n == jast.NoNode {
		return jast.KindInvalid
	}
	return r.a.tree.Kind(n)
}

// newLines derives the blank lines between entries index and index+1 from
// an original pair of the same kinds, or from the spacing of the list.
func (r *listRewriter) newLines(index int) int {
	curr := r.kindAt(index)
	next := curr
	if index+1 < len(r.list) {
		next = r.kindAt(index + 1)
	}

	var last, secondLast jast.NodeID
	for i := range r.list {
		elem := r.originalNode(i)
		if elem == jast.NoNode {
			continue
		}
		if last != jast.NoNode {
			if r.a.tree.Kind(last) == curr && r.a.tree.Kind(elem) == next {
				return r.a.countEmptyLines(last)
			}
			secondLast = last
		}
		last = elem
	}
	if curr == jast.KindFieldDeclaration && next == jast.KindFieldDeclaration {
		return 0
	}
	if secondLast != jast.NoNode {
		return r.a.countEmptyLines(secondLast)
	}
	return defaultSpacing
}

// countEmptyLines counts the blank lines after the line where node ends.
func (a *analyzer) countEmptyLines(node jast.NodeID) int {
	startLine := a.lines.LineOf(a.tree.ExtendedEnd(node)) + 1
	if startLine >= a.lines.LineCount() {
		return 0
	}
	start := a.lines.LineStart(startLine)
	i := start
	for i < len(a.content) && isSpace(a.content[i]) {
		i++
	}
	if i > start {
		if l := a.lines.LineOf(i); l > startLine {
			return l - startLine
		}
	}
	return 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// rewriteParagraphList rewrites a list whose entries sit on their own lines.
// lead is the number of line delimiters written before the first entry of
// a list that was empty.
func (a *analyzer) rewriteParagraphList(parent jast.NodeID, slot jast.Slot, insertPos, insertIndent, separatorLines, lead int) int {
	return a.rewritePolicyList(parent, slot, insertPos, insertIndent, lead, paragraphPolicy(insertIndent, separatorLines))
}

func (a *analyzer) rewritePolicyList(parent jast.NodeID, slot jast.Slot, insertPos, insertIndent, lead int, policy listPolicy) int {
	if !a.isChanged(parent, slot) {
		return a.visitSlot(parent, slot, insertPos)
	}
	keyword := ""
	if a.listState(parent, slot).allInserted {
		keyword = strings.Repeat(a.delim, lead) + a.indentString(insertIndent)
	}
	return a.rewriteList(parent, slot, insertPos, keyword, "", policy)
}

// rewriteBraceList rewrites the entry list of a braced body starting after
// the '{' at insertPos. Entries inserted into a body whose closing brace
// shares the line of insertPos get a delimiter before the brace.
func (a *analyzer) rewriteBraceList(parent jast.NodeID, slot jast.Slot, insertPos, insertIndent, lead int, policy listPolicy) int {
	state := a.listState(parent, slot)
	pos := a.rewritePolicyList(parent, slot, insertPos, insertIndent, lead, policy)
	if state.allInserted {
		tok, ok := a.nextToken(insertPos, true)
		if ok && tok.Kind == scanner.RBrace && a.sameLine(insertPos, tok.Start) {
			a.insert(insertPos, a.delim+a.indentString(max(insertIndent-1, 0)), a.lastGroup(parent, slot))
		}
	}
	return pos
}
