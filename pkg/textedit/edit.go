// Package textedit provides the edit tree produced by a rewrite and the
// logic to validate and apply it.
//
// Edits form a tree under a Root edit that covers the whole buffer. Each
// child lies within its parent and siblings are ordered by offset without
// overlapping. Zero-length edits at the same offset are allowed and keep
// the order in which they were added.
package textedit

import (
	"fmt"
	"sort"

	"github.com/yaklabco/jrewrite/pkg/indent"
)

// Kind identifies the operation an edit performs.
type Kind uint8

const (
	// KindRoot covers the whole buffer and only groups children.
	KindRoot Kind = iota

	// KindInsert inserts Text at Offset. Length is zero.
	KindInsert

	// KindDelete removes [Offset, Offset+Length).
	KindDelete

	// KindReplace replaces [Offset, Offset+Length) with Text.
	KindReplace

	// KindMoveSource marks a range that is removed here and written by a MoveTarget.
	KindMoveSource

	// KindMoveTarget writes the text of its MoveSource at Offset.
	KindMoveTarget

	// KindCopySource marks a range that stays in place and is also written by CopyTargets.
	KindCopySource

	// KindCopyTarget writes the text of its CopySource at Offset.
	KindCopyTarget

	// KindRange tracks a range without changing it.
	KindRange
)

var kindNames = [...]string{
	KindRoot:       "root",
	KindInsert:     "insert",
	KindDelete:     "delete",
	KindReplace:    "replace",
	KindMoveSource: "move-source",
	KindMoveTarget: "move-target",
	KindCopySource: "copy-source",
	KindCopyTarget: "copy-target",
	KindRange:      "range",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsSource reports whether k is a move or copy source.
func (k Kind) IsSource() bool { return k == KindMoveSource || k == KindCopySource }

// IsTarget reports whether k is a move or copy target.
func (k Kind) IsTarget() bool { return k == KindMoveTarget || k == KindCopyTarget }

// Reindent describes how a target re-bases the indentation of the text it
// writes. Every line after the first loses SourceUnits indent units and is
// prefixed with DestIndent.
type Reindent struct {
	SourceUnits int
	DestIndent  string
	Options     indent.Options
}

// Edit is one node of the edit tree.
type Edit struct {
	// Kind is the operation.
	Kind Kind

	// Offset is the byte index in the original buffer where the edit begins.
	Offset int

	// Length is the number of original bytes the edit covers.
	Length int

	// Text is the replacement or inserted text.
	Text string

	// Source is the source edit written by a target.
	Source *Edit

	// Reindent optionally re-bases the indentation of a target's text.
	Reindent *Reindent

	parent   *Edit
	children []*Edit
}

// NewRoot creates the root edit for a buffer of the given length.
func NewRoot(length int) *Edit {
	return &Edit{Kind: KindRoot, Length: length}
}

// Insert creates an insertion of text at offset.
func Insert(offset int, text string) *Edit {
	return &Edit{Kind: KindInsert, Offset: offset, Text: text}
}

// Delete creates a deletion of [offset, offset+length).
func Delete(offset, length int) *Edit {
	return &Edit{Kind: KindDelete, Offset: offset, Length: length}
}

// Replace creates a replacement of [offset, offset+length) with text.
func Replace(offset, length int, text string) *Edit {
	return &Edit{Kind: KindReplace, Offset: offset, Length: length, Text: text}
}

// MoveSource creates a move source over [offset, offset+length).
func MoveSource(offset, length int) *Edit {
	return &Edit{Kind: KindMoveSource, Offset: offset, Length: length}
}

// CopySource creates a copy source over [offset, offset+length).
func CopySource(offset, length int) *Edit {
	return &Edit{Kind: KindCopySource, Offset: offset, Length: length}
}

// MoveTarget creates a target at offset that writes the text of source.
func MoveTarget(offset int, source *Edit, reindent *Reindent) *Edit {
	return &Edit{Kind: KindMoveTarget, Offset: offset, Source: source, Reindent: reindent}
}

// CopyTarget creates a target at offset that writes a copy of the text of source.
func CopyTarget(offset int, source *Edit, reindent *Reindent) *Edit {
	return &Edit{Kind: KindCopyTarget, Offset: offset, Source: source, Reindent: reindent}
}

// NewRange creates a tracking edit over [offset, offset+length).
func NewRange(offset, length int) *Edit {
	return &Edit{Kind: KindRange, Offset: offset, Length: length}
}

// End returns the exclusive end offset.
func (e *Edit) End() int { return e.Offset + e.Length }

// Parent returns the edit this one was added to, or nil.
func (e *Edit) Parent() *Edit { return e.parent }

// Children returns the child edits in offset order. The slice must not be modified.
func (e *Edit) Children() []*Edit { return e.children }

// HasChildren reports whether e has child edits.
func (e *Edit) HasChildren() bool { return len(e.children) > 0 }

// Covers reports whether other lies within e.
func (e *Edit) Covers(other *Edit) bool {
	if e.Length == 0 && e.Kind != KindRoot && e.Kind != KindRange {
		return false
	}
	return e.Offset <= other.Offset && other.End() <= e.End()
}

// AddChild inserts child among the children of e in offset order.
// Zero-length children at the same offset keep insertion order.
func (e *Edit) AddChild(child *Edit) error {
	if child.parent != nil {
		return &ValidationError{Edit: child, Message: "edit already has a parent"}
	}
	if !e.Covers(child) {
		return &ValidationError{Edit: child, Message: fmt.Sprintf("not covered by parent %s", e)}
	}
	// Overlapping siblings sort before child, so the last of them ends up
	// just below the insertion index.
	i := sort.Search(len(e.children), func(i int) bool {
		c, ok := compare(child, e.children[i])
		return ok && c < 0
	})
	if i > 0 {
		if _, ok := compare(e.children[i-1], child); !ok {
			return &ConflictError{First: e.children[i-1], Second: child}
		}
	}
	e.children = append(e.children, nil)
	copy(e.children[i+1:], e.children[i:])
	e.children[i] = child
	child.parent = e
	return nil
}

// compare orders two siblings. ok is false when they overlap.
func compare(a, b *Edit) (int, bool) {
	switch {
	case a.Offset == b.Offset && a.Length == 0 && b.Length == 0:
		return 0, true
	case a.End() <= b.Offset:
		return -1, true
	case b.End() <= a.Offset:
		return 1, true
	default:
		return 0, false
	}
}

func (e *Edit) String() string {
	switch e.Kind {
	case KindInsert:
		return fmt.Sprintf("insert@%d %q", e.Offset, e.Text)
	case KindReplace:
		return fmt.Sprintf("replace[%d:%d] %q", e.Offset, e.End(), e.Text)
	case KindMoveTarget, KindCopyTarget:
		if e.Source != nil {
			return fmt.Sprintf("%s@%d <- [%d:%d]", e.Kind, e.Offset, e.Source.Offset, e.Source.End())
		}
		return fmt.Sprintf("%s@%d", e.Kind, e.Offset)
	default:
		return fmt.Sprintf("%s[%d:%d]", e.Kind, e.Offset, e.End())
	}
}
