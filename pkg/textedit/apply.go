package textedit

import (
	"bytes"

	"github.com/yaklabco/jrewrite/pkg/indent"
)

// Range is a span of the rewritten content.
type Range struct {
	Offset int
	Length int
}

// End returns the exclusive end offset.
func (r Range) End() int { return r.Offset + r.Length }

// Result is the outcome of applying an edit tree.
type Result struct {
	// Content is the rewritten buffer.
	Content []byte

	ranges map[*Edit]Range
}

// RangeOf returns where e ended up in the rewritten content. Edits inside
// deleted or moved regions collapse to an empty range at the deletion point.
func (r *Result) RangeOf(e *Edit) (Range, bool) {
	rng, ok := r.ranges[e]
	return rng, ok
}

// GroupRange returns the smallest range covering every edit of g.
func (r *Result) GroupRange(g *Group) (Range, bool) {
	first := true
	var start, end int
	for _, e := range g.Edits() {
		rng, ok := r.ranges[e]
		if !ok {
			continue
		}
		if first || rng.Offset < start {
			start = rng.Offset
		}
		if first || rng.End() > end {
			end = rng.End()
		}
		first = false
	}
	if first {
		return Range{}, false
	}
	return Range{Offset: start, Length: end - start}, true
}

// Apply validates root against content and executes it. Move and copy
// targets write the text of their source range with the source's own child
// edits applied; nested move sources inside a captured range are left out.
func Apply(content []byte, root *Edit) (*Result, error) {
	if root == nil {
		root = NewRoot(len(content))
	}
	if err := Validate(root, len(content)); err != nil {
		return nil, err
	}

	a := &applier{
		content:  content,
		captured: make(map[*Edit]string),
		active:   make(map[*Edit]bool),
		ranges:   make(map[*Edit]Range),
	}

	var out bytes.Buffer
	out.Grow(len(content))
	if err := a.renderChildren(&out, root, true); err != nil {
		return nil, err
	}
	a.ranges[root] = Range{Length: out.Len()}

	return &Result{Content: out.Bytes(), ranges: a.ranges}, nil
}

type applier struct {
	content  []byte
	captured map[*Edit]string
	active   map[*Edit]bool
	ranges   map[*Edit]Range
}

// renderChildren writes the original text of parent with its children applied.
func (a *applier) renderChildren(out *bytes.Buffer, parent *Edit, record bool) error {
	cursor := parent.Offset
	for _, child := range parent.children {
		out.Write(a.content[cursor:child.Offset])
		if err := a.render(out, child, record); err != nil {
			return err
		}
		cursor = child.End()
	}
	out.Write(a.content[cursor:parent.End()])
	return nil
}

func (a *applier) render(out *bytes.Buffer, e *Edit, record bool) error {
	start := out.Len()
	switch e.Kind {
	case KindInsert, KindReplace:
		out.WriteString(e.Text)
		a.collapse(e.children, start, record)
	case KindDelete, KindMoveSource:
		a.collapse(e.children, start, record)
	case KindCopySource, KindRange:
		if err := a.renderChildren(out, e, record); err != nil {
			return err
		}
	case KindMoveTarget, KindCopyTarget:
		text, err := a.capture(e.Source)
		if err != nil {
			return err
		}
		if r := e.Reindent; r != nil {
			text = indent.ChangeIndent(text, r.SourceUnits, r.Options, r.DestIndent)
		}
		out.WriteString(text)
	}
	if record {
		a.ranges[e] = Range{Offset: start, Length: out.Len() - start}
	}
	return nil
}

// collapse records empty ranges for edits whose text did not survive.
func (a *applier) collapse(edits []*Edit, at int, record bool) {
	if !record {
		return
	}
	for _, e := range edits {
		Walk(e, func(d *Edit) bool {
			a.ranges[d] = Range{Offset: at}
			return true
		})
	}
}

// capture returns the text of a source edit with its children applied.
func (a *applier) capture(src *Edit) (string, error) {
	if text, ok := a.captured[src]; ok {
		return text, nil
	}
	if a.active[src] {
		return "", &ValidationError{Edit: src, Message: "source contains one of its own targets"}
	}
	a.active[src] = true
	defer delete(a.active, src)

	var buf bytes.Buffer
	if err := a.renderChildren(&buf, src, false); err != nil {
		return "", err
	}
	text := buf.String()
	a.captured[src] = text
	return text, nil
}
