package events

import (
	"errors"
	"fmt"

	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/textedit"
)

// ErrNotInList is returned when a node is not an entry of the list.
var ErrNotInList = errors.New("node is not an element of the list")

// List edits the entries of a list event. Indices count every entry,
// removed ones included.
type List struct {
	store *Store
	event *Event
}

// Event returns the underlying list event.
func (l *List) Event() *Event { return l.event }

// Len returns the number of entries.
func (l *List) Len() int { return len(l.event.Children) }

// Index returns the entry index of node, matching either the original or
// the new value. It returns -1 if node is not an entry.
func (l *List) Index(node jast.NodeID) int {
	for i, c := range l.event.Children {
		if c.Kind != Inserted && c.Original.Node == node {
			return i
		}
		if c.Kind != Removed && c.New.Node == node {
			return i
		}
	}
	return -1
}

// Insert adds node as a new entry before index. An index of -1 or the
// entry count appends.
func (l *List) Insert(node jast.NodeID, index int, group *textedit.Group) (*Event, error) {
	n := len(l.event.Children)
	if index == -1 {
		index = n
	}
	if index < 0 || index > n {
		return nil, fmt.Errorf("insert index %d out of range [0, %d]", index, n)
	}
	e := &Event{Kind: Inserted, New: jast.NodeValue(node), Group: group}
	l.event.Children = append(l.event.Children, nil)
	copy(l.event.Children[index+1:], l.event.Children[index:])
	l.event.Children[index] = e
	l.update()
	return e, nil
}

// Remove marks the entry of node as removed. An entry that was itself
// inserted is dropped.
func (l *List) Remove(node jast.NodeID, group *textedit.Group) (*Event, error) {
	i := l.Index(node)
	if i < 0 {
		return nil, fmt.Errorf("%w: node %d", ErrNotInList, node)
	}
	e := l.event.Children[i]
	if e.Kind == Inserted {
		l.event.Children = append(l.event.Children[:i], l.event.Children[i+1:]...)
		l.update()
		return e, nil
	}
	e.Kind = Removed
	e.New = jast.Value{}
	if group != nil {
		e.Group = group
	}
	l.update()
	return e, nil
}

// Replace exchanges the entry of node for replacement.
func (l *List) Replace(node, replacement jast.NodeID, group *textedit.Group) (*Event, error) {
	i := l.Index(node)
	if i < 0 {
		return nil, fmt.Errorf("%w: node %d", ErrNotInList, node)
	}
	e := l.event.Children[i]
	e.New = jast.NodeValue(replacement)
	switch {
	case e.Kind == Inserted:
	case replacement == e.Original.Node:
		e.Kind = Unchanged
	default:
		e.Kind = Replaced
	}
	if group != nil {
		e.Group = group
	}
	l.update()
	return e, nil
}

// Nodes returns the nodes of the list after the changes.
func (l *List) Nodes() []jast.NodeID {
	var out []jast.NodeID
	for _, c := range l.event.Children {
		if c.Kind != Removed {
			out = append(out, c.New.Node)
		}
	}
	return out
}

func (l *List) update() {
	l.event.Kind = listKind(l.event.Children)
}
