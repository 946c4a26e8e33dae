package textedit

// WalkFunc is called for each edit visited by Walk.
// Returning false skips the edit's children.
type WalkFunc func(e *Edit) bool

// Walk visits e and its descendants in pre-order.
func Walk(e *Edit, fn WalkFunc) {
	if e == nil || !fn(e) {
		return
	}
	for _, c := range e.children {
		Walk(c, fn)
	}
}

// Flatten returns every edit below root in pre-order, excluding root.
func Flatten(root *Edit) []*Edit {
	var out []*Edit
	Walk(root, func(e *Edit) bool {
		if e != root {
			out = append(out, e)
		}
		return true
	})
	return out
}

// Count returns the number of edits below root that change text. Move and
// copy sources, tracked ranges and the root are not counted. A deletion
// followed by an insertion at its start offset is one replacement.
func Count(root *Edit) int {
	if root == nil {
		return 0
	}
	n := 0
	var prev *Edit
	for _, c := range root.children {
		switch c.Kind {
		case KindInsert:
			if prev == nil || prev.Kind != KindDelete || prev.Offset != c.Offset {
				n++
			}
		case KindDelete, KindReplace, KindMoveTarget, KindCopyTarget:
			n++
		}
		n += Count(c)
		prev = c
	}
	return n
}
