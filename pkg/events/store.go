package events

import (
	"errors"
	"fmt"

	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/textedit"
)

// Sentinel errors returned by Store mutators.
var (
	ErrNotOriginal  = errors.New("node is not part of the original tree")
	ErrNoSlot       = errors.New("node kind has no such slot")
	ErrShape        = errors.New("slot shape does not match the operation")
	ErrAlreadyMoved = errors.New("node is already the source of a move")
)

// Key addresses a slot of an original node.
type Key struct {
	Node jast.NodeID
	Slot jast.Slot
}

// PlaceholderKind says what a placeholder node stands for.
type PlaceholderKind uint8

const (
	// PlaceholderMove stands for an original node moved to this position.
	PlaceholderMove PlaceholderKind = iota + 1

	// PlaceholderCopy stands for a copy of an original node.
	PlaceholderCopy

	// PlaceholderString stands for literal source text.
	PlaceholderString
)

func (k PlaceholderKind) String() string {
	switch k {
	case PlaceholderMove:
		return "move"
	case PlaceholderCopy:
		return "copy"
	case PlaceholderString:
		return "string"
	default:
		return "none"
	}
}

// Placeholder is attached to a new node that is rendered from existing
// source or from literal code instead of from its own slots.
type Placeholder struct {
	Kind   PlaceholderKind
	Source jast.NodeID
	Code   string
}

// BindingFunc decides whether an element inserted into a list attaches to
// the element before it rather than to the one after it.
type BindingFunc func(t *jast.Tree, node jast.NodeID) bool

// DefaultBinding binds statements and field declarations to their
// predecessor, so a new statement goes right after the previous one and
// leaves the leading comment of the next one in place.
func DefaultBinding(t *jast.Tree, node jast.NodeID) bool {
	k := t.Kind(node)
	return k.IsStatement() || k == jast.KindFieldDeclaration
}

// Store is the side table of changes for one tree.
type Store struct {
	tree         *jast.Tree
	events       map[Key]*Event
	order        []Key
	changed      map[jast.NodeID]bool
	moveSources  map[jast.NodeID]bool
	copySources  map[jast.NodeID]int
	tracked      map[jast.NodeID]*textedit.Group
	placeholders map[jast.NodeID]Placeholder
	bound        map[jast.NodeID]bool
	binding      BindingFunc
}

// NewStore creates an empty store for tree.
func NewStore(tree *jast.Tree) *Store {
	return &Store{
		tree:         tree,
		events:       make(map[Key]*Event),
		changed:      make(map[jast.NodeID]bool),
		moveSources:  make(map[jast.NodeID]bool),
		copySources:  make(map[jast.NodeID]int),
		tracked:      make(map[jast.NodeID]*textedit.Group),
		placeholders: make(map[jast.NodeID]Placeholder),
		bound:        make(map[jast.NodeID]bool),
		binding:      DefaultBinding,
	}
}

// Tree returns the tree the store describes.
func (s *Store) Tree() *jast.Tree { return s.tree }

// SetBinding replaces the insert binding predicate. nil restores the default.
func (s *Store) SetBinding(fn BindingFunc) {
	if fn == nil {
		fn = DefaultBinding
	}
	s.binding = fn
}

// Event returns the event of a slot, or nil if the slot is unchanged.
func (s *Store) Event(node jast.NodeID, slot jast.Slot) *Event {
	return s.events[Key{node, slot}]
}

// Keys returns the keys of all recorded events in recording order.
func (s *Store) Keys() []Key { return s.order }

// IsChanged reports whether the slot has an event other than Unchanged.
func (s *Store) IsChanged(node jast.NodeID, slot jast.Slot) bool {
	e := s.Event(node, slot)
	return e != nil && e.Kind != Unchanged
}

// HasChangedSlots reports whether any slot of node itself changed.
func (s *Store) HasChangedSlots(node jast.NodeID) bool {
	for _, d := range jast.Descriptors(s.tree.Kind(node)) {
		if s.IsChanged(node, d.Slot) {
			return true
		}
	}
	return false
}

// HasChildrenChanges reports whether node or anything below it has an
// event, is a move or copy source, or is tracked. Subtrees for which it
// returns false produce no edits.
func (s *Store) HasChildrenChanges(node jast.NodeID) bool {
	return s.changed[node]
}

func (s *Store) markChanged(node jast.NodeID) {
	for n := node; n != jast.NoNode && !s.changed[n]; n = s.tree.Parent(n) {
		s.changed[n] = true
	}
}

func (s *Store) slotOf(node jast.NodeID, slot jast.Slot) (jast.SlotDescriptor, error) {
	if !s.tree.IsOriginal(node) {
		return jast.SlotDescriptor{}, fmt.Errorf("%w: node %d", ErrNotOriginal, node)
	}
	d, ok := jast.Descriptor(s.tree.Kind(node), slot)
	if !ok {
		return jast.SlotDescriptor{}, fmt.Errorf("%w: %s.%s", ErrNoSlot, s.tree.Kind(node), slot)
	}
	return d, nil
}

func (s *Store) record(key Key, e *Event) {
	if _, ok := s.events[key]; !ok {
		s.order = append(s.order, key)
	}
	s.events[key] = e
	s.markChanged(key.Node)
}

// SetValue records a new value for a single-valued slot of an original node.
func (s *Store) SetValue(node jast.NodeID, slot jast.Slot, value jast.Value, group *textedit.Group) (*Event, error) {
	d, err := s.slotOf(node, slot)
	if err != nil {
		return nil, err
	}
	if d.Shape == jast.ShapeList {
		return nil, fmt.Errorf("%w: %s.%s is a list", ErrShape, s.tree.Kind(node), slot)
	}
	key := Key{node, slot}
	e := s.events[key]
	if e == nil {
		original, _ := s.tree.Value(node, slot)
		e = &Event{Original: original}
	}
	e.New = value
	e.Kind = classify(d.Shape, e.Original, value)
	if group != nil {
		e.Group = group
	}
	s.record(key, e)
	return e, nil
}

// ListEvent returns the list event of a list slot, creating it from the
// original children on first use.
func (s *Store) ListEvent(node jast.NodeID, slot jast.Slot) (*List, error) {
	d, err := s.slotOf(node, slot)
	if err != nil {
		return nil, err
	}
	if d.Shape != jast.ShapeList {
		return nil, fmt.Errorf("%w: %s.%s is not a list", ErrShape, s.tree.Kind(node), slot)
	}
	key := Key{node, slot}
	e := s.events[key]
	if e == nil {
		original := s.tree.List(node, slot)
		e = &Event{Original: jast.Value{List: original}, list: true}
		e.Children = make([]*Event, 0, len(original))
		for _, c := range original {
			v := jast.NodeValue(c)
			e.Children = append(e.Children, &Event{Original: v, New: v})
		}
		s.record(key, e)
	}
	return &List{store: s, event: e}, nil
}

// MarkMoveSource records that node is moved elsewhere.
func (s *Store) MarkMoveSource(node jast.NodeID) error {
	if !s.tree.IsOriginal(node) {
		return fmt.Errorf("%w: node %d", ErrNotOriginal, node)
	}
	if s.moveSources[node] {
		return fmt.Errorf("%w: node %d", ErrAlreadyMoved, node)
	}
	s.moveSources[node] = true
	s.markChanged(node)
	return nil
}

// IsMoveSource reports whether node is moved elsewhere.
func (s *Store) IsMoveSource(node jast.NodeID) bool { return s.moveSources[node] }

// AddCopySource records one more copy of node.
func (s *Store) AddCopySource(node jast.NodeID) error {
	if !s.tree.IsOriginal(node) {
		return fmt.Errorf("%w: node %d", ErrNotOriginal, node)
	}
	s.copySources[node]++
	s.markChanged(node)
	return nil
}

// CopyCount returns how many copies of node were requested.
func (s *Store) CopyCount(node jast.NodeID) int { return s.copySources[node] }

// Track records that the final range of node should be reported in group.
func (s *Store) Track(node jast.NodeID, group *textedit.Group) {
	s.tracked[node] = group
	if s.tree.IsOriginal(node) {
		s.markChanged(node)
	}
}

// TrackedGroup returns the group tracking node, or nil.
func (s *Store) TrackedGroup(node jast.NodeID) *textedit.Group { return s.tracked[node] }

// SetPlaceholder attaches a placeholder to a new node.
func (s *Store) SetPlaceholder(node jast.NodeID, p Placeholder) {
	s.placeholders[node] = p
}

// Placeholder returns the placeholder of node.
func (s *Store) Placeholder(node jast.NodeID) (Placeholder, bool) {
	p, ok := s.placeholders[node]
	return p, ok
}

// SetInsertBoundToPrevious overrides the insert binding of node.
func (s *Store) SetInsertBoundToPrevious(node jast.NodeID, bound bool) {
	s.bound[node] = bound
}

// IsInsertBoundToPrevious reports whether node, when inserted into a list,
// attaches to the element before it.
func (s *Store) IsInsertBoundToPrevious(node jast.NodeID) bool {
	if b, ok := s.bound[node]; ok {
		return b
	}
	return s.binding(s.tree, node)
}

// OriginalValue returns the value of a slot in the original tree.
func (s *Store) OriginalValue(node jast.NodeID, slot jast.Slot) jast.Value {
	v, _ := s.tree.Value(node, slot)
	return v
}

// NewValue returns the value a slot has after the recorded changes. New
// nodes report their own slot values.
func (s *Store) NewValue(node jast.NodeID, slot jast.Slot) jast.Value {
	e := s.Event(node, slot)
	if e == nil {
		v, _ := s.tree.Value(node, slot)
		return v
	}
	if !e.list {
		return e.New
	}
	var out []jast.NodeID
	for _, c := range e.Children {
		if c.Kind != Removed {
			out = append(out, c.New.Node)
		}
	}
	return jast.Value{List: out}
}

// NewChild returns the child in a single-valued slot after the changes.
func (s *Store) NewChild(node jast.NodeID, slot jast.Slot) jast.NodeID {
	return s.NewValue(node, slot).Node
}

// NewList returns the children of a list slot after the changes.
func (s *Store) NewList(node jast.NodeID, slot jast.Slot) []jast.NodeID {
	return s.NewValue(node, slot).List
}

// NewInt returns an int slot after the changes.
func (s *Store) NewInt(node jast.NodeID, slot jast.Slot) int {
	return s.NewValue(node, slot).Int
}

// NewStr returns a string slot after the changes.
func (s *Store) NewStr(node jast.NodeID, slot jast.Slot) string {
	return s.NewValue(node, slot).Str
}
