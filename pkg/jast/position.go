package jast

import "sort"

// CommentKind classifies a source comment.
type CommentKind uint8

// Comment kinds.
const (
	LineComment CommentKind = iota + 1
	BlockComment
	DocComment
)

// Comment is a comment found while scanning the source.
type Comment struct {
	Kind  CommentKind
	Start int
	End   int
}

// AddComment records a comment. Comments must be added in source order.
func (t *Tree) AddComment(c Comment) {
	t.comments = append(t.comments, c)
}

// Comments returns all comments in source order.
func (t *Tree) Comments() []Comment { return t.comments }

// ExtendedStart returns the start of id including attached leading comments.
// A leading comment is attached when it starts its own line and only
// whitespace without a blank line separates it from the node.
func (t *Tree) ExtendedStart(id NodeID) int {
	start := t.Start(id)
	if start < 0 || t.kindOf(id) == KindCompilationUnit {
		return start
	}
	i := sort.Search(len(t.comments), func(i int) bool { return t.comments[i].End > start }) - 1
	for ; i >= 0; i-- {
		c := t.comments[i]
		if !t.isAttachGap(c.End, start) || !t.startsLine(c.Start) {
			break
		}
		start = c.Start
	}
	return start
}

// ExtendedEnd returns the end of id including trailing comments that start
// on the same line as the node ends.
func (t *Tree) ExtendedEnd(id NodeID) int {
	end := t.End(id)
	if t.Start(id) < 0 || t.kindOf(id) == KindCompilationUnit {
		return end
	}
	j := sort.Search(len(t.comments), func(i int) bool { return t.comments[i].Start >= end })
	for ; j < len(t.comments); j++ {
		c := t.comments[j]
		if !t.isInlineGap(end, c.Start) {
			break
		}
		end = c.End
		if c.Kind == LineComment {
			break
		}
	}
	return end
}

// ExtendedRange returns the extended start and length of id.
func (t *Tree) ExtendedRange(id NodeID) (int, int) {
	start := t.ExtendedStart(id)
	return start, t.ExtendedEnd(id) - start
}

// LineCommentEndsAt reports whether a line comment ends exactly at offset.
// Text inserted there needs a preceding line delimiter.
func (t *Tree) LineCommentEndsAt(offset int) bool {
	i := sort.Search(len(t.comments), func(i int) bool { return t.comments[i].End >= offset })
	return i < len(t.comments) && t.comments[i].End == offset && t.comments[i].Kind == LineComment
}

func (t *Tree) kindOf(id NodeID) Kind { return t.nodes[id].kind }

func (t *Tree) startsLine(offset int) bool {
	for i := offset - 1; i >= 0; i-- {
		switch t.content[i] {
		case ' ', '\t', '\f':
			continue
		case '\n', '\r':
			return true
		default:
			return false
		}
	}
	return true
}

// isAttachGap reports whether [from, to) is whitespace with at most one line break.
func (t *Tree) isAttachGap(from, to int) bool {
	breaks := 0
	for i := from; i < to; i++ {
		switch t.content[i] {
		case ' ', '\t', '\f':
		case '\n':
			breaks++
		case '\r':
			if i+1 < to && t.content[i+1] == '\n' {
				i++
			}
			breaks++
		default:
			return false
		}
	}
	return breaks <= 1
}

func (t *Tree) isInlineGap(from, to int) bool {
	for i := from; i < to; i++ {
		if t.content[i] != ' ' && t.content[i] != '\t' {
			return false
		}
	}
	return true
}
