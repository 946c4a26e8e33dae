package rewrite

import (
	"strings"

	"github.com/yaklabco/jrewrite/pkg/events"
	"github.com/yaklabco/jrewrite/pkg/indent"
	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/scanner"
)

// prefix produces the text written before an inserted optional child.
type prefix func(indentUnits int) string

func literal(s string) prefix { return func(int) string { return s } }

var (
	prefixNone  = literal("")
	prefixSpace = literal(" ")
)

// rewriteRequired rewrites a slot that always holds a child and returns
// the end of the original child.
func (a *analyzer) rewriteRequired(parent jast.NodeID, slot jast.Slot) int {
	e := a.event(parent, slot)
	if e != nil && e.Kind == events.Replaced {
		old := e.Original.Node
		offset, length := a.nodeRange(old)
		a.removeAndVisit(offset, length, old, e.Group)
		a.insertNode(offset, e.New.Node, a.indentAt(offset), true, e.Group)
		return offset + length
	}
	return a.visitSlot(parent, slot, 0)
}

// noPosition is given to rewriteNode for slots without a position in
// front of the child. A new child then goes at the start of the parent and
// a removed child takes only its own range.
const noPosition = -1

// rewriteNode rewrites an optional slot. offset is where a new child goes,
// after pre is written; a removed child is deleted from offset on, taking
// its prefix with it.
func (a *analyzer) rewriteNode(parent jast.NodeID, slot jast.Slot, offset int, pre prefix) int {
	at := offset
	if offset == noPosition {
		at = a.tree.Start(parent)
	}
	e := a.event(parent, slot)
	if e == nil {
		return a.visitSlot(parent, slot, at)
	}
	switch e.Kind {
	case events.Inserted:
		units := a.indentAt(at)
		a.insert(at, pre(units), e.Group)
		a.insertNode(at, e.New.Node, units, true, e.Group)
		return at
	case events.Removed:
		old := e.Original.Node
		start, nodeEnd := at, a.tree.ExtendedEnd(old)
		if offset == noPosition {
			var length int
			start, length = a.nodeRange(old)
			nodeEnd = start + length
		}
		a.removeAndVisit(start, nodeEnd-start, old, e.Group)
		return nodeEnd
	case events.Replaced:
		old := e.Original.Node
		start, length := a.nodeRange(old)
		a.removeAndVisit(start, length, old, e.Group)
		a.insertNode(start, e.New.Node, a.indentAt(at), true, e.Group)
		return start + length
	}
	return a.visitSlot(parent, slot, at)
}

// rewriteBody rewrites the body statement of a control statement. offset
// is the end of the header; endPos, when not -1, is where the body region
// ends. bc decides the text around a body that is or is not a block.
func (a *analyzer) rewriteBody(parent jast.NodeID, slot jast.Slot, offset, endPos, units int, bc blockContext) int {
	e := a.event(parent, slot)
	if e != nil {
		switch e.Kind {
		case events.Inserted:
			node := e.New.Node
			pre, suf := bc.affixes(a, units, node)
			a.insert(offset, pre, e.Group)
			a.insertNode(offset, node, units, true, e.Group)
			a.insert(offset, suf, e.Group)
			return offset
		case events.Removed:
			old := e.Original.Node
			if endPos == -1 {
				endPos = a.tree.ExtendedEnd(old)
			}
			a.removeAndVisit(offset, endPos-offset, old, e.Group)
			return endPos
		case events.Replaced:
			old := e.Original.Node
			insertNewLine := false
			if endPos == -1 {
				previousEnd := a.tree.End(old)
				endPos = a.tree.ExtendedEnd(old)
				if endPos != previousEnd {
					if tok, ok := a.nextToken(previousEnd, false); ok && tok.Kind == scanner.LineComment {
						insertNewLine = true
					}
				}
			}
			node := e.New.Node
			pre, suf := bc.affixes(a, units, node)
			a.removeAndVisit(offset, endPos-offset, old, e.Group)

			inserted := pre
			if insertNewLine {
				inserted = a.delim + a.indentString(units) + strings.TrimSpace(pre) + " "
			}
			a.insert(offset, inserted, e.Group)
			if i := strings.LastIndexAny(pre, "\r\n"); i >= 0 {
				units = indent.ComputeIndentUnits(pre[i+1:], a.indent)
			}
			a.insertNode(offset, node, units, true, e.Group)
			if insertNewLine && suf == "" {
				suf = a.delim + a.indentString(a.indentAt(offset))
			}
			a.insert(offset, suf, e.Group)
			return endPos
		}
	}
	pos := a.visitSlot(parent, slot, offset)
	if endPos != -1 {
		return endPos
	}
	return pos
}

// blockContext describes the surroundings of a body statement.
type blockContext uint8

const (
	// bodyLast: nothing follows, as in while and for.
	bodyLast blockContext = iota

	// bodyFollowed: a keyword follows on the same statement, as the
	// "while" of a do statement or the "else" of an if.
	bodyFollowed

	// elseAfterBlock and elseAfterStatement write the else keyword before
	// the body, after a then statement that is or is not a block.
	elseAfterBlock
	elseAfterStatement
)

// affixes returns the text before and after a body node. A block stays on
// the header line; other statements go one level deeper on a new line.
func (bc blockContext) affixes(a *analyzer, units int, node jast.NodeID) (string, string) {
	isBlock := a.tree.Kind(node) == jast.KindBlock
	switch bc {
	case elseAfterBlock, elseAfterStatement:
		var b strings.Builder
		if bc == elseAfterBlock {
			b.WriteByte(' ')
		} else {
			b.WriteString(a.delim + a.indentString(units))
		}
		b.WriteString("else")
		if isBlock || a.tree.Kind(node) == jast.KindIfStatement {
			b.WriteByte(' ')
		} else {
			b.WriteString(a.delim + a.indentString(units+1))
		}
		return b.String(), ""
	case bodyFollowed:
		if isBlock {
			return " ", " "
		}
		return a.delim + a.indentString(units+1), a.delim + a.indentString(units)
	default:
		if isBlock {
			return " ", ""
		}
		return a.delim + a.indentString(units+1), ""
	}
}
