package rewrite

import (
	"errors"
	"fmt"

	"github.com/yaklabco/jrewrite/pkg/jast"
)

// Recording errors.
var (
	// ErrNotInTree is returned when a node has no parent to be changed in.
	ErrNotInTree = errors.New("node is not attached to the original tree")

	// ErrRequiredSlot is returned when removing the child of a required slot.
	ErrRequiredSlot = errors.New("slot requires a child and cannot be removed")
)

// UnsupportedChangeError reports a change to a slot that has no partial
// text edit, such as the identifier of a simple name. Replace the whole
// node instead.
type UnsupportedChangeError struct {
	Node jast.NodeID
	Kind jast.Kind
	Slot jast.Slot
}

func (e *UnsupportedChangeError) Error() string {
	return fmt.Sprintf("unsupported change of %s.%s (node %d): replace the node instead", e.Kind, e.Slot, e.Node)
}

// MissingSourceError reports a move or copy target whose source node was
// never registered as moved or copied.
type MissingSourceError struct {
	Node jast.NodeID
	Move bool
}

func (e *MissingSourceError) Error() string {
	what := "copy"
	if e.Move {
		what = "move"
	}
	return fmt.Sprintf("no open %s source for node %d", what, e.Node)
}

// fault carries an error out of the traversal. The analyzer raises it with
// panic and converts it back at its public boundary.
type fault struct {
	err error
}

func (a *analyzer) fail(err error) {
	panic(fault{err: err})
}
