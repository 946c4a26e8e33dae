// Package events records what changed in a syntax tree without mutating it.
//
// Changes are stored per (node, slot) of original nodes. A slot without an
// event is unchanged. List slots hold one child event per entry, in the
// desired final order, including entries that are removed.
package events

import (
	"fmt"

	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/textedit"
)

// Kind is the change state of an event.
type Kind uint8

const (
	// Unchanged means the slot keeps its original value.
	Unchanged Kind = iota

	// Inserted means a value was added where there was none.
	Inserted

	// Removed means the original value is gone.
	Removed

	// Replaced means the original value is exchanged for a new one.
	Replaced
)

func (k Kind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Inserted:
		return "inserted"
	case Removed:
		return "removed"
	case Replaced:
		return "replaced"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Event describes the change of one slot, or of one entry of a list slot.
type Event struct {
	Kind Kind

	// Original is the value in the original tree. It is meaningful unless
	// Kind is Inserted.
	Original jast.Value

	// New is the value to render. It is meaningful unless Kind is Removed.
	New jast.Value

	// Children holds the entry events of a list slot in final order.
	Children []*Event

	// Group collects the edits produced for this change, if set.
	Group *textedit.Group

	list bool
}

// IsList reports whether e describes a list slot.
func (e *Event) IsList() bool { return e.list }

// OriginalNode returns the original node of a node-valued event.
func (e *Event) OriginalNode() jast.NodeID { return e.Original.Node }

// NewNode returns the new node of a node-valued event.
func (e *Event) NewNode() jast.NodeID { return e.New.Node }

func (e *Event) String() string {
	if e.list {
		return fmt.Sprintf("list(%s, %d entries)", e.Kind, len(e.Children))
	}
	return fmt.Sprintf("%s(%v -> %v)", e.Kind, e.Original, e.New)
}

// classify derives the kind of a single-valued event from its values.
func classify(shape jast.Shape, original, value jast.Value) Kind {
	switch shape {
	case jast.ShapeInt:
		if original.Int == value.Int {
			return Unchanged
		}
		return Replaced
	case jast.ShapeString:
		if original.Str == value.Str {
			return Unchanged
		}
		return Replaced
	}
	switch {
	case original.Node == value.Node:
		return Unchanged
	case original.Node == jast.NoNode:
		return Inserted
	case value.Node == jast.NoNode:
		return Removed
	default:
		return Replaced
	}
}

// listKind derives the kind of a list event from its entries.
func listKind(children []*Event) Kind {
	for _, c := range children {
		if c.Kind != Unchanged {
			return Replaced
		}
	}
	return Unchanged
}
