package rewrite

import (
	"fmt"

	"github.com/yaklabco/jrewrite/pkg/events"
	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/textedit"
)

// ListRewrite edits one list slot of an original node. Positions count
// every entry of the list, removed entries included.
type ListRewrite struct {
	parent jast.NodeID
	slot   jast.Slot
	list   *events.List
	tree   *jast.Tree
}

// ListRewrite returns the editor for a list slot of node.
func (r *Rewrite) ListRewrite(node jast.NodeID, slot jast.Slot) (*ListRewrite, error) {
	l, err := r.store.ListEvent(node, slot)
	if err != nil {
		return nil, err
	}
	return &ListRewrite{parent: node, slot: slot, list: l, tree: r.tree}, nil
}

// Parent returns the node that owns the list.
func (l *ListRewrite) Parent() jast.NodeID { return l.parent }

// Slot returns the list slot.
func (l *ListRewrite) Slot() jast.Slot { return l.slot }

// InsertFirst inserts node before every entry.
func (l *ListRewrite) InsertFirst(node jast.NodeID, group *textedit.Group) error {
	return l.InsertAt(node, 0, group)
}

// InsertLast appends node.
func (l *ListRewrite) InsertLast(node jast.NodeID, group *textedit.Group) error {
	return l.InsertAt(node, -1, group)
}

// InsertAt inserts node before the entry at index; -1 appends.
func (l *ListRewrite) InsertAt(node jast.NodeID, index int, group *textedit.Group) error {
	_, err := l.list.Insert(node, index, group)
	return err
}

// InsertBefore inserts node right before the entry of next.
func (l *ListRewrite) InsertBefore(node, next jast.NodeID, group *textedit.Group) error {
	i, err := l.index(next)
	if err != nil {
		return err
	}
	return l.InsertAt(node, i, group)
}

// InsertAfter inserts node right after the entry of prev.
func (l *ListRewrite) InsertAfter(node, prev jast.NodeID, group *textedit.Group) error {
	i, err := l.index(prev)
	if err != nil {
		return err
	}
	return l.InsertAt(node, i+1, group)
}

// Remove removes the entry of node.
func (l *ListRewrite) Remove(node jast.NodeID, group *textedit.Group) error {
	_, err := l.list.Remove(node, group)
	return err
}

// Replace exchanges the entry of node for replacement.
func (l *ListRewrite) Replace(node, replacement jast.NodeID, group *textedit.Group) error {
	_, err := l.list.Replace(node, replacement, group)
	return err
}

// Original returns the entries of the original list.
func (l *ListRewrite) Original() []jast.NodeID {
	return l.tree.List(l.parent, l.slot)
}

// Rewritten returns the entries after the recorded changes.
func (l *ListRewrite) Rewritten() []jast.NodeID {
	return l.list.Nodes()
}

func (l *ListRewrite) index(node jast.NodeID) (int, error) {
	i := l.list.Index(node)
	if i < 0 {
		return 0, fmt.Errorf("%w: node %d in %s.%s", events.ErrNotInList, node, l.tree.Kind(l.parent), l.slot)
	}
	return i, nil
}
