// Package rewrite records modifications of a parsed Java tree and turns
// them into a minimal tree of text edits over the original source.
//
// Changes are described against the original tree: set a slot, replace or
// remove a node, edit a list, or move and copy original nodes to new
// places. Edits then walks the original tree and emits edits only where
// something changed, so formatting and comments elsewhere stay untouched.
package rewrite

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/jrewrite/pkg/events"
	"github.com/yaklabco/jrewrite/pkg/format"
	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/textedit"
)

// Rewrite collects the changes of one tree.
type Rewrite struct {
	tree  *jast.Tree
	store *events.Store
}

// New creates a rewrite of a linked tree.
func New(tree *jast.Tree) *Rewrite {
	return &Rewrite{tree: tree, store: events.NewStore(tree)}
}

// Tree returns the tree being rewritten. New nodes are created in it.
func (r *Rewrite) Tree() *jast.Tree { return r.tree }

// Store returns the recorded events.
func (r *Rewrite) Store() *events.Store { return r.store }

// Set records a new value for a single-valued slot of an original node.
func (r *Rewrite) Set(node jast.NodeID, slot jast.Slot, value jast.Value, group *textedit.Group) error {
	_, err := r.store.SetValue(node, slot, value, group)
	return err
}

// SetChild records a new child for a node slot. NoNode removes an
// optional child.
func (r *Rewrite) SetChild(node jast.NodeID, slot jast.Slot, child jast.NodeID, group *textedit.Group) error {
	return r.Set(node, slot, jast.NodeValue(child), group)
}

// location returns the parent and slot descriptor of an original node.
func (r *Rewrite) location(node jast.NodeID) (jast.NodeID, jast.SlotDescriptor, error) {
	if !r.tree.Valid(node) {
		return jast.NoNode, jast.SlotDescriptor{}, fmt.Errorf("%w: node %d", ErrNotInTree, node)
	}
	parent := r.tree.Parent(node)
	if parent == jast.NoNode {
		return jast.NoNode, jast.SlotDescriptor{}, fmt.Errorf("%w: node %d", ErrNotInTree, node)
	}
	d, ok := jast.Descriptor(r.tree.Kind(parent), r.tree.Location(node))
	if !ok {
		return jast.NoNode, jast.SlotDescriptor{}, fmt.Errorf("%w: node %d", ErrNotInTree, node)
	}
	return parent, d, nil
}

// Replace puts replacement where node is, in a list or a single slot.
func (r *Rewrite) Replace(node, replacement jast.NodeID, group *textedit.Group) error {
	parent, d, err := r.location(node)
	if err != nil {
		return err
	}
	if d.Shape == jast.ShapeList {
		l, err := r.store.ListEvent(parent, d.Slot)
		if err != nil {
			return err
		}
		_, err = l.Replace(node, replacement, group)
		return err
	}
	return r.SetChild(parent, d.Slot, replacement, group)
}

// Remove deletes node from its parent. The child of a required slot can
// only be replaced.
func (r *Rewrite) Remove(node jast.NodeID, group *textedit.Group) error {
	parent, d, err := r.location(node)
	if err != nil {
		return err
	}
	switch d.Shape {
	case jast.ShapeList:
		l, err := r.store.ListEvent(parent, d.Slot)
		if err != nil {
			return err
		}
		_, err = l.Remove(node, group)
		return err
	case jast.ShapeOptional:
		return r.SetChild(parent, d.Slot, jast.NoNode, group)
	default:
		return fmt.Errorf("%w: %s.%s", ErrRequiredSlot, r.tree.Kind(parent), d.Slot)
	}
}

// CreateMoveTarget returns a new node that stands for node at another
// position. node is removed from its old position once the target is
// placed and the old position is removed or replaced.
func (r *Rewrite) CreateMoveTarget(node jast.NodeID) (jast.NodeID, error) {
	if err := r.store.MarkMoveSource(node); err != nil {
		return jast.NoNode, err
	}
	target := r.tree.NewNode(r.tree.Kind(node))
	r.store.SetPlaceholder(target, events.Placeholder{Kind: events.PlaceholderMove, Source: node})
	return target, nil
}

// CreateCopyTarget returns a new node that stands for a copy of node.
func (r *Rewrite) CreateCopyTarget(node jast.NodeID) (jast.NodeID, error) {
	if err := r.store.AddCopySource(node); err != nil {
		return jast.NoNode, err
	}
	target := r.tree.NewNode(r.tree.Kind(node))
	r.store.SetPlaceholder(target, events.Placeholder{Kind: events.PlaceholderCopy, Source: node})
	return target, nil
}

// CreateStringPlaceholder returns a new node of kind k that is written as
// code, re-indented to its position.
func (r *Rewrite) CreateStringPlaceholder(code string, k jast.Kind) jast.NodeID {
	node := r.tree.NewNode(k)
	r.store.SetPlaceholder(node, events.Placeholder{Kind: events.PlaceholderString, Code: code})
	return node
}

// Track returns a group whose range, after Apply, is where node ends up.
func (r *Rewrite) Track(node jast.NodeID) *textedit.Group {
	if g := r.store.TrackedGroup(node); g != nil {
		return g
	}
	g := textedit.NewGroup("track " + r.tree.Kind(node).String())
	r.store.Track(node, g)
	return g
}

// SetInsertBoundToPrevious decides whether node, inserted into a list,
// stays with the entry before it.
func (r *Rewrite) SetInsertBoundToPrevious(node jast.NodeID, bound bool) {
	r.store.SetInsertBoundToPrevious(node, bound)
}

// Options configure edit generation.
type Options struct {
	// Format lays out inserted code. An empty line delimiter uses the
	// delimiter of the source.
	Format format.Options

	// Formatter renders new nodes. nil uses the built-in Java formatter.
	Formatter format.Formatter

	// Logger receives diagnostics such as tokens not found at an expected
	// position. nil discards them.
	Logger *log.Logger
}

// DefaultOptions returns the default format options with the source
// delimiter.
func DefaultOptions() Options {
	opts := format.DefaultOptions()
	opts.LineDelimiter = ""
	return Options{Format: opts}
}

// Result is a generated edit tree.
type Result struct {
	Root *textedit.Edit

	// Groups are the change groups of the recorded events in recording
	// order.
	Groups []*textedit.Group

	// Edits is the number of edits that change text.
	Edits int
}

// Apply executes the edits on content, which must be the source of the tree.
func (r *Result) Apply(content []byte) (*textedit.Result, error) {
	return textedit.Apply(content, r.Root)
}

// Edits turns the recorded changes into an edit tree. A tree without
// changes yields a root with no children.
func (r *Rewrite) Edits(opts Options) (*Result, error) {
	if opts.Format.LineDelimiter == "" {
		opts.Format.LineDelimiter = r.tree.Lines().Delimiter()
	}
	f := opts.Formatter
	if f == nil {
		f = format.NewJava(r.store, opts.Format)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	a := newAnalyzer(r.store, f, opts.Format.Indent, opts.Format.LineDelimiter, logger)
	root, err := a.analyze()
	if err != nil {
		return nil, err
	}
	if err := textedit.Validate(root, len(r.tree.Content())); err != nil {
		return nil, fmt.Errorf("generated edits: %w", err)
	}
	n := textedit.Count(root)
	logger.Debug("generated edits", "edits", n)
	return &Result{Root: root, Groups: r.groups(), Edits: n}, nil
}

func (r *Rewrite) groups() []*textedit.Group {
	seen := make(map[*textedit.Group]bool)
	var out []*textedit.Group
	add := func(g *textedit.Group) {
		if g != nil && !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	for _, k := range r.store.Keys() {
		e := r.store.Event(k.Node, k.Slot)
		add(e.Group)
		for _, c := range e.Children {
			add(c.Group)
		}
	}
	return out
}
