package jast

// WalkFunc is called for each node visited by Walk.
// Returning false skips the node's children.
type WalkFunc func(id NodeID) bool

// Walk performs a pre-order traversal of the subtree rooted at id,
// visiting children in slot order.
func Walk(t *Tree, id NodeID, fn WalkFunc) {
	if id == NoNode {
		return
	}
	if !fn(id) {
		return
	}
	for _, c := range Children(t, id) {
		Walk(t, c, fn)
	}
}

// Children returns the direct children of id in slot order.
func Children(t *Tree, id NodeID) []NodeID {
	var out []NodeID
	for _, d := range Descriptors(t.Kind(id)) {
		switch d.Shape {
		case ShapeChild, ShapeOptional:
			if c := t.Child(id, d.Slot); c != NoNode {
				out = append(out, c)
			}
		case ShapeList:
			out = append(out, t.List(id, d.Slot)...)
		}
	}
	return out
}

// FindAll returns all nodes of kind k in the subtree of id, in source order.
func FindAll(t *Tree, id NodeID, k Kind) []NodeID {
	var out []NodeID
	Walk(t, id, func(n NodeID) bool {
		if t.Kind(n) == k {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Ancestor returns the nearest ancestor of id with kind k, or NoNode.
func Ancestor(t *Tree, id NodeID, k Kind) NodeID {
	for p := t.Parent(id); p != NoNode; p = t.Parent(p) {
		if t.Kind(p) == k {
			return p
		}
	}
	return NoNode
}

// IsAncestor reports whether ancestor is id or one of its ancestors.
func IsAncestor(t *Tree, ancestor, id NodeID) bool {
	for n := id; n != NoNode; n = t.Parent(n) {
		if n == ancestor {
			return true
		}
	}
	return false
}

// linkParents sets parent and location of every node below id.
func linkParents(t *Tree, id NodeID) {
	for _, d := range Descriptors(t.Kind(id)) {
		switch d.Shape {
		case ShapeChild, ShapeOptional:
			if c := t.Child(id, d.Slot); c != NoNode {
				t.nodes[c].parent = id
				t.nodes[c].loc = d.Slot
				linkParents(t, c)
			}
		case ShapeList:
			for _, c := range t.List(id, d.Slot) {
				t.nodes[c].parent = id
				t.nodes[c].loc = d.Slot
				linkParents(t, c)
			}
		}
	}
}

// Link sets parent pointers below the root and freezes the tree.
// Parsers call it once the tree is complete.
func (t *Tree) Link() {
	if t.root != NoNode {
		linkParents(t, t.root)
	}
	t.Freeze()
}
