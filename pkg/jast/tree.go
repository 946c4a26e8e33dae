package jast

import "fmt"

// NodeID addresses a node in a Tree. The zero value is NoNode.
type NodeID int32

// NoNode is the absent child.
const NoNode NodeID = 0

// Value holds the content of one slot. Exactly one field is meaningful,
// depending on the slot's Shape.
type Value struct {
	Node NodeID
	List []NodeID
	Int  int
	Str  string
}

// NodeValue wraps a node in a Value.
func NodeValue(id NodeID) Value { return Value{Node: id} }

// IntValue wraps an int in a Value.
func IntValue(v int) Value { return Value{Int: v} }

// StrValue wraps a string in a Value.
func StrValue(s string) Value { return Value{Str: s} }

type node struct {
	kind   Kind
	start  int
	length int
	parent NodeID
	loc    Slot
	values []Value
}

// Tree is an arena of nodes over one source buffer.
//
// Nodes created by the parser are original: they carry source positions
// and become read-only once Freeze is called. Nodes created afterwards
// with NewNode are new: they have Start -1 and may be populated freely.
type Tree struct {
	content  []byte
	nodes    []node
	root     NodeID
	frozen   int
	comments []Comment
	lines    *LineIndex
}

// NewTree creates an empty tree over content.
func NewTree(content []byte) *Tree {
	return &Tree{
		content: content,
		nodes:   make([]node, 1, 64),
		lines:   NewLineIndex(content),
	}
}

// Content returns the source buffer.
func (t *Tree) Content() []byte { return t.content }

// Lines returns the line index of the source buffer.
func (t *Tree) Lines() *LineIndex { return t.lines }

// Root returns the root node, normally a CompilationUnit.
func (t *Tree) Root() NodeID { return t.root }

// SetRoot sets the root node.
func (t *Tree) SetRoot(id NodeID) { t.root = id }

// NodeCount returns the number of nodes in the arena.
func (t *Tree) NodeCount() int { return len(t.nodes) - 1 }

// Freeze marks all existing nodes as original and read-only.
func (t *Tree) Freeze() { t.frozen = len(t.nodes) - 1 }

// IsOriginal reports whether id was created before Freeze.
func (t *Tree) IsOriginal(id NodeID) bool {
	return id != NoNode && int(id) <= t.frozen
}

// Valid reports whether id addresses a node in this tree.
func (t *Tree) Valid(id NodeID) bool {
	return id > NoNode && int(id) < len(t.nodes)
}

// NewNode creates a new node of kind k with no source position.
func (t *Tree) NewNode(k Kind) NodeID {
	return t.AddNode(k, -1, 0)
}

// AddNode creates a node of kind k covering [start, start+length).
func (t *Tree) AddNode(k Kind, start, length int) NodeID {
	descs := Descriptors(k)
	values := make([]Value, len(descs))
	t.nodes = append(t.nodes, node{kind: k, start: start, length: length, values: values})
	return NodeID(len(t.nodes) - 1)
}

func (t *Tree) get(id NodeID) *node {
	if !t.Valid(id) {
		panic(fmt.Sprintf("jast: invalid node id %d", id))
	}
	return &t.nodes[id]
}

func (t *Tree) mutable(id NodeID) *node {
	if t.IsOriginal(id) {
		panic(fmt.Sprintf("jast: node %d (%s) is original and read-only", id, t.nodes[id].kind))
	}
	return t.get(id)
}

func (t *Tree) slot(id NodeID, s Slot) (*Value, SlotDescriptor, bool) {
	n := t.get(id)
	i := slotIndex[n.kind][s]
	if i < 0 {
		return nil, SlotDescriptor{}, false
	}
	return &n.values[i], descriptors[n.kind][i], true
}

// Kind returns the kind of id, or KindInvalid for NoNode.
func (t *Tree) Kind(id NodeID) Kind {
	if !t.Valid(id) {
		return KindInvalid
	}
	return t.nodes[id].kind
}

// Start returns the start offset of id, or -1 for new nodes.
func (t *Tree) Start(id NodeID) int { return t.get(id).start }

// Length returns the source length of id.
func (t *Tree) Length(id NodeID) int { return t.get(id).length }

// End returns the exclusive end offset of id.
func (t *Tree) End(id NodeID) int {
	n := t.get(id)
	return n.start + n.length
}

// SetRange sets the source range of a node that is not yet frozen.
func (t *Tree) SetRange(id NodeID, start, length int) {
	n := t.mutable(id)
	n.start = start
	n.length = length
}

// Parent returns the parent of id, or NoNode for the root and for new
// nodes that were never attached.
func (t *Tree) Parent(id NodeID) NodeID { return t.get(id).parent }

// Location returns the slot of the parent that holds id.
func (t *Tree) Location(id NodeID) Slot { return t.get(id).loc }

// Value returns the raw content of slot s. ok is false if the kind of id has no such slot.
func (t *Tree) Value(id NodeID, s Slot) (Value, bool) {
	v, _, ok := t.slot(id, s)
	if !ok {
		return Value{}, false
	}
	return *v, true
}

// Child returns the single child in slot s, or NoNode.
func (t *Tree) Child(id NodeID, s Slot) NodeID {
	v, _, ok := t.slot(id, s)
	if !ok {
		return NoNode
	}
	return v.Node
}

// List returns the children in list slot s. The slice must not be modified.
func (t *Tree) List(id NodeID, s Slot) []NodeID {
	v, _, ok := t.slot(id, s)
	if !ok {
		return nil
	}
	return v.List
}

// Int returns the int token in slot s.
func (t *Tree) Int(id NodeID, s Slot) int {
	v, _, ok := t.slot(id, s)
	if !ok {
		return 0
	}
	return v.Int
}

// Str returns the string token in slot s.
func (t *Tree) Str(id NodeID, s Slot) string {
	v, _, ok := t.slot(id, s)
	if !ok {
		return ""
	}
	return v.Str
}

func (t *Tree) mustSlot(id NodeID, s Slot, shapes ...Shape) *Value {
	t.mutable(id)
	v, d, ok := t.slot(id, s)
	if !ok {
		panic(fmt.Sprintf("jast: %s has no slot %s", t.Kind(id), s))
	}
	for _, sh := range shapes {
		if d.Shape == sh {
			return v
		}
	}
	panic(fmt.Sprintf("jast: slot %s of %s is a %s slot", s, t.Kind(id), d.Shape))
}

func (t *Tree) adopt(parent NodeID, s Slot, child NodeID) {
	if child == NoNode || t.IsOriginal(child) {
		return
	}
	c := t.get(child)
	c.parent = parent
	c.loc = s
}

// SetChild sets the single child in slot s of a mutable node.
func (t *Tree) SetChild(id NodeID, s Slot, child NodeID) {
	v := t.mustSlot(id, s, ShapeChild, ShapeOptional)
	v.Node = child
	t.adopt(id, s, child)
}

// SetList replaces the children of list slot s of a mutable node.
func (t *Tree) SetList(id NodeID, s Slot, children []NodeID) {
	v := t.mustSlot(id, s, ShapeList)
	v.List = append([]NodeID(nil), children...)
	for _, c := range children {
		t.adopt(id, s, c)
	}
}

// Append adds children to list slot s of a mutable node.
func (t *Tree) Append(id NodeID, s Slot, children ...NodeID) {
	v := t.mustSlot(id, s, ShapeList)
	v.List = append(v.List, children...)
	for _, c := range children {
		t.adopt(id, s, c)
	}
}

// SetInt sets the int token in slot s of a mutable node.
func (t *Tree) SetInt(id NodeID, s Slot, value int) {
	t.mustSlot(id, s, ShapeInt).Int = value
}

// SetStr sets the string token in slot s of a mutable node.
func (t *Tree) SetStr(id NodeID, s Slot, value string) {
	t.mustSlot(id, s, ShapeString).Str = value
}

// Text returns the source text of an original node.
func (t *Tree) Text(id NodeID) []byte {
	n := t.get(id)
	if n.start < 0 || n.start+n.length > len(t.content) {
		return nil
	}
	return t.content[n.start : n.start+n.length]
}

// Identifier returns the identifier of a name node: the SimpleName itself,
// or the last segment of a QualifiedName.
func (t *Tree) Identifier(id NodeID) string {
	switch t.Kind(id) {
	case KindSimpleName:
		return t.Str(id, SlotIdentifier)
	case KindQualifiedName:
		return t.Identifier(t.Child(id, SlotName))
	default:
		return ""
	}
}

// FullName renders a name node as dotted text.
func (t *Tree) FullName(id NodeID) string {
	switch t.Kind(id) {
	case KindSimpleName:
		return t.Str(id, SlotIdentifier)
	case KindQualifiedName:
		return t.FullName(t.Child(id, SlotQualifier)) + "." + t.FullName(t.Child(id, SlotName))
	default:
		return ""
	}
}

// NewName creates a new SimpleName or QualifiedName for dotted text.
func (t *Tree) NewName(dotted string) NodeID {
	var result NodeID
	start := 0
	for i := 0; i <= len(dotted); i++ {
		if i < len(dotted) && dotted[i] != '.' {
			continue
		}
		simple := t.NewNode(KindSimpleName)
		t.SetStr(simple, SlotIdentifier, dotted[start:i])
		if result == NoNode {
			result = simple
		} else {
			q := t.NewNode(KindQualifiedName)
			t.SetChild(q, SlotQualifier, result)
			t.SetChild(q, SlotName, simple)
			result = q
		}
		start = i + 1
	}
	return result
}
