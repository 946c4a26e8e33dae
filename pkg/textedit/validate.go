package textedit

import "fmt"

// ValidationError describes an invalid edit.
type ValidationError struct {
	Edit    *Edit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit %s: %s", e.Edit, e.Message)
}

// ConflictError describes two sibling edits that overlap.
type ConflictError struct {
	First  *Edit
	Second *Edit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: %s and %s", e.First, e.Second)
}

// Validate checks an edit tree against a buffer of length bytes. It
// returns nil if every edit has a valid range, lies within its parent, does
// not overlap a sibling, and every target has a source of the matching
// kind that is part of the same tree.
func Validate(root *Edit, length int) error {
	if root == nil {
		return nil
	}
	if root.Kind != KindRoot {
		return &ValidationError{Edit: root, Message: "tree does not start at a root edit"}
	}
	if root.Offset != 0 || root.Length != length {
		return &ValidationError{
			Edit:    root,
			Message: fmt.Sprintf("root does not cover the buffer of length %d", length),
		}
	}
	inTree := make(map[*Edit]bool)
	Walk(root, func(e *Edit) bool {
		inTree[e] = true
		return true
	})
	return validateChildren(root, length, inTree)
}

func validateChildren(parent *Edit, length int, inTree map[*Edit]bool) error {
	for i, child := range parent.children {
		if err := validateEdit(child, length, inTree); err != nil {
			return err
		}
		if child.Offset < parent.Offset || child.End() > parent.End() {
			return &ValidationError{Edit: child, Message: fmt.Sprintf("not covered by parent %s", parent)}
		}
		if i > 0 {
			if c, ok := compare(parent.children[i-1], child); !ok || c > 0 {
				return &ConflictError{First: parent.children[i-1], Second: child}
			}
		}
		if err := validateChildren(child, length, inTree); err != nil {
			return err
		}
	}
	return nil
}

func validateEdit(e *Edit, length int, inTree map[*Edit]bool) error {
	switch {
	case e.Offset < 0:
		return &ValidationError{Edit: e, Message: "offset is negative"}
	case e.Length < 0:
		return &ValidationError{Edit: e, Message: "length is negative"}
	case e.End() > length:
		return &ValidationError{
			Edit:    e,
			Message: fmt.Sprintf("end offset %d exceeds content length %d", e.End(), length),
		}
	case e.Kind == KindRoot:
		return &ValidationError{Edit: e, Message: "nested root edit"}
	case e.Kind == KindInsert && e.Length != 0:
		return &ValidationError{Edit: e, Message: "insert with non-zero length"}
	}
	if !e.Kind.IsTarget() {
		return nil
	}
	if e.Length != 0 {
		return &ValidationError{Edit: e, Message: "target with non-zero length"}
	}
	switch {
	case e.Source == nil:
		return &ValidationError{Edit: e, Message: "target without source"}
	case e.Kind == KindMoveTarget && e.Source.Kind != KindMoveSource,
		e.Kind == KindCopyTarget && e.Source.Kind != KindCopySource:
		return &ValidationError{Edit: e, Message: fmt.Sprintf("target refers to a %s", e.Source.Kind)}
	case !inTree[e.Source]:
		return &ValidationError{Edit: e, Message: "source is not part of the edit tree"}
	}
	return nil
}
