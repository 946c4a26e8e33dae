package rewrite

import (
	"strings"

	"github.com/yaklabco/jrewrite/pkg/events"
	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/textedit"
)

// listPolicy customizes list reconciliation. nil functions use defaults.
type listPolicy struct {
	// separator returns the text between entries index and index+1.
	separator func(r *listRewriter, index int) string

	// initialIndent returns the indent used when no original entry can
	// provide one.
	initialIndent func(r *listRewriter) int

	// nodeIndent returns the indent for the entry at index.
	nodeIndent func(r *listRewriter, index int) int
}

func constantSeparator(sep string) listPolicy {
	return listPolicy{
		separator: func(*listRewriter, int) string { return sep },
	}
}

// List states between entries.
const (
	stateNone     = iota // nothing pending
	stateNew             // the cursor follows fresh text
	stateExisting        // the cursor sits at an original entry
)

type listRewriter struct {
	a        *analyzer
	list     []*events.Event
	startPos int
	policy   listPolicy
}

func (r *listRewriter) separator(index int) string {
	return r.policy.separator(r, index)
}

func (r *listRewriter) initialIndent() int {
	if r.policy.initialIndent != nil {
		return r.policy.initialIndent(r)
	}
	return r.a.indentAt(r.startPos)
}

func (r *listRewriter) nodeIndent(index int) int {
	if r.policy.nodeIndent != nil {
		return r.policy.nodeIndent(r, index)
	}
	return r.defaultNodeIndent(index)
}

// defaultNodeIndent uses the indent of the original at index, or of the
// closest original before it.
func (r *listRewriter) defaultNodeIndent(index int) int {
	if index >= len(r.list) {
		index = len(r.list) - 1
	}
	for i := index; i >= 0; i-- {
		if n := r.originalNode(i); n != jast.NoNode {
			return r.a.indentAt(r.a.tree.Start(n))
		}
	}
	return r.initialIndent()
}

func (r *listRewriter) originalNode(index int) jast.NodeID {
	e := r.list[index]
	if e.Kind == events.Inserted {
		return jast.NoNode
	}
	return e.Original.Node
}

func (r *listRewriter) newNode(index int) jast.NodeID {
	e := r.list[index]
	if e.Kind == events.Removed {
		return jast.NoNode
	}
	return e.New.Node
}

func (r *listRewriter) startOfNextNode(index, defaultPos int) int {
	for i := index; i < len(r.list); i++ {
		if n := r.originalNode(i); n != jast.NoNode {
			return r.a.tree.ExtendedStart(n)
		}
	}
	return defaultPos
}

// keepComments shortens the separator range [from, end) so that it stops
// before the first comment in it.
func (r *listRewriter) keepComments(from, end int) int {
	for pos := from; ; {
		tok, ok := r.a.nextToken(pos, false)
		if !ok || tok.Start >= end {
			return end
		}
		if tok.Kind.IsComment() {
			return tok.Start
		}
		pos = tok.End
	}
}

func (r *listRewriter) endOfNode(n jast.NodeID) int {
	return r.a.tree.ExtendedEnd(n)
}

// skipDetachedComments moves prevEnd over comments that lie between the
// previous entry and the extended start of the next one. The comments stay.
func (r *listRewriter) skipDetachedComments(prevEnd, extStart int) int {
	pos := prevEnd
	for {
		tok, ok := r.a.nextToken(pos, false)
		if !ok || !tok.Kind.IsComment() || tok.End > extStart {
			return pos
		}
		pos = tok.End
	}
}

// rewriteList reconciles a list slot and returns the offset after the
// processed entries. keyword is inserted before the first entry when the
// list was empty; endKeyword after the last.
func (a *analyzer) rewriteList(parent jast.NodeID, slot jast.Slot, startPos int, keyword, endKeyword string, policy listPolicy) int {
	e := a.event(parent, slot)
	if e == nil {
		return a.visitSlot(parent, slot, startPos)
	}
	if policy.separator == nil {
		policy.separator = constantSeparator(", ").separator
	}
	r := &listRewriter{a: a, list: e.Children, startPos: startPos, policy: policy}
	return r.rewrite(keyword, endKeyword)
}

func (r *listRewriter) rewrite(keyword, endKeyword string) int {
	a := r.a
	total := len(r.list)
	if total == 0 {
		return r.startPos
	}

	currPos := -1
	lastNonInsert := -1
	lastNonDelete := -1
	for i, e := range r.list {
		if e.Kind != events.Inserted {
			lastNonInsert = i
			if currPos == -1 {
				currPos = a.tree.ExtendedStart(e.Original.Node)
			}
		}
		if e.Kind != events.Removed {
			lastNonDelete = i
		}
	}

	insertNew := currPos == -1
	if insertNew {
		if keyword != "" {
			a.insert(r.startPos, keyword, r.list[0].Group)
		}
		currPos = r.startPos
	}
	if lastNonDelete == -1 {
		currPos = r.startPos
	}

	prevEnd := currPos
	prevMark := events.Unchanged
	state := stateNew

	for i := range total {
		e := r.list[i]
		mark := e.Kind
		group := e.Group

		switch mark {
		case events.Inserted:
			node := e.New.Node
			if state == stateNone {
				a.insert(currPos, r.separator(i-1), group)
				state = stateNew
			}
			if state == stateNew || !a.store.IsInsertBoundToPrevious(node) {
				if state == stateExisting {
					r.updateIndent(prevMark, currPos, i, group)
				}
				a.insertNode(currPos, node, r.nodeIndent(i), true, group)
				state = stateNew
				if i != lastNonDelete {
					if r.list[i+1].Kind != events.Inserted {
						a.insert(currPos, r.separator(i), group)
					} else {
						state = stateNone
					}
				}
			} else {
				a.insert(prevEnd, r.separator(i-1), group)
				a.insertNode(prevEnd, node, r.nodeIndent(i), true, group)
			}
			if insertNew && endKeyword != "" && i == total-1 {
				a.insert(currPos, endKeyword, group)
			}

		case events.Removed:
			node := e.Original.Node
			extStart := a.tree.ExtendedStart(node)
			currEnd := r.endOfNode(node)
			newOffset := r.skipDetachedComments(prevEnd, extStart)
			if currPos < newOffset {
				currPos = extStart
			}
			prevEnd = newOffset

			if i > lastNonDelete && state == stateExisting {
				a.remove(prevEnd, currPos-prevEnd, group)
				a.removeAndVisit(currPos, currEnd-currPos, node, group)
				currPos = currEnd
				prevEnd = currEnd
			} else {
				if i < lastNonDelete {
					r.updateIndent(prevMark, currPos, i, group)
				}
				end := r.keepComments(currEnd, r.startOfNextNode(i+1, currEnd))
				a.removeAndVisit(currPos, currEnd-currPos, node, group)
				a.remove(currEnd, end-currEnd, group)
				currPos = end
				prevEnd = currEnd
				state = stateNew
			}

		case events.Replaced:
			node := e.Original.Node
			extStart := a.tree.ExtendedStart(node)
			currEnd := r.endOfNode(node)
			r.updateIndent(prevMark, currPos, i, group)
			newOffset := r.skipDetachedComments(prevEnd, extStart)
			if currPos < newOffset {
				currPos = extStart
			}
			a.removeAndVisit(currPos, currEnd-currPos, node, group)
			a.insertNode(currPos, e.New.Node, r.nodeIndent(i), true, group)
			prevEnd = currEnd

		default:
			a.visit(e.Original.Node)
		}

		if mark == events.Replaced || mark == events.Unchanged {
			if i == lastNonInsert {
				state = stateNone
				if mark == events.Unchanged {
					prevEnd = r.endOfNode(e.Original.Node)
				}
				currPos = prevEnd
			} else if r.list[i+1].Kind != events.Unchanged {
				if mark == events.Unchanged {
					prevEnd = r.endOfNode(e.Original.Node)
				}
				currPos = r.startOfNextNode(i+1, prevEnd)
				state = stateExisting
			}
		}
		prevMark = mark
	}
	return currPos
}

// updateIndent re-indents the line of an original entry that moves to a
// new list position with a different indentation.
func (r *listRewriter) updateIndent(prevMark events.Kind, originalOffset, nodeIndex int, group *textedit.Group) {
	if prevMark != events.Unchanged && prevMark != events.Replaced {
		return
	}
	a := r.a

	prev := nodeIndex - 1
	for prev >= 0 && r.list[prev].Kind == events.Removed {
		prev--
	}
	if prev >= 0 {
		k := r.list[prev].Kind
		if (k == events.Unchanged || k == events.Replaced) && a.sameLine(r.endOfNode(r.list[prev].Original.Node), originalOffset) {
			return
		}
	}

	for nodeIndex < len(r.list) && r.list[nodeIndex].Kind == events.Removed {
		nodeIndex++
	}
	if nodeIndex >= len(r.list) {
		return
	}

	oldIndent := a.indentAt(originalOffset)
	newIndent := r.nodeIndent(nodeIndex)
	if oldIndent == newIndent {
		return
	}
	lineStart := a.lines.LineStart(a.lines.LineOf(originalOffset))
	if strings.TrimLeft(string(a.content[lineStart:originalOffset]), " \t") != "" {
		return
	}
	a.remove(lineStart, originalOffset-lineStart, group)
	a.insert(lineStart, a.indentString(newIndent), group)
}

// rewriteNodeList rewrites a list with a constant separator.
func (a *analyzer) rewriteNodeList(parent jast.NodeID, slot jast.Slot, pos int, keyword, separator string) int {
	if !a.isChanged(parent, slot) {
		return a.visitSlot(parent, slot, pos)
	}
	return a.rewriteList(parent, slot, pos, keyword, "", constantSeparator(separator))
}

// listState summarizes a list event.
type listState struct {
	allInserted bool
	allRemoved  bool
	empty       bool
}

func (a *analyzer) listState(parent jast.NodeID, slot jast.Slot) listState {
	e := a.event(parent, slot)
	if e == nil {
		n := len(a.tree.List(parent, slot))
		return listState{empty: n == 0}
	}
	s := listState{allInserted: len(e.Children) > 0, allRemoved: len(e.Children) > 0, empty: len(e.Children) == 0}
	for _, c := range e.Children {
		if c.Kind != events.Inserted {
			s.allInserted = false
		}
		if c.Kind != events.Removed {
			s.allRemoved = false
		}
	}
	return s
}

// lastChanged reports whether the final entry of a list changed.
func (a *analyzer) lastChanged(parent jast.NodeID, slot jast.Slot) bool {
	e := a.event(parent, slot)
	if e == nil || len(e.Children) == 0 {
		return false
	}
	return e.Children[len(e.Children)-1].Kind != events.Unchanged
}
