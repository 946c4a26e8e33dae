package rewrite

import (
	"strings"

	"github.com/yaklabco/jrewrite/pkg/events"
	"github.com/yaklabco/jrewrite/pkg/indent"
	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/scanner"
	"github.com/yaklabco/jrewrite/pkg/textedit"
)

// rewriteModifiers edits the modifier keywords found from offset on.
// Annotations between the keywords are skipped.
func (a *analyzer) rewriteModifiers(node jast.NodeID, offset int) {
	e := a.event(node, jast.SlotModifiers)
	if e == nil || e.Kind != events.Replaced {
		return
	}
	oldMods, newMods := e.Original.Int, e.New.Int
	group := e.Group

	pos := offset
	firstStart := -1
	endPos := offset
	for {
		tok, ok := a.nextToken(pos, true)
		if !ok {
			endPos = pos
			break
		}
		if tok.Kind == scanner.At {
			pos = a.skipAnnotation(tok.End)
			continue
		}
		bit, isMod := jast.ModifierBit(tok.Text(a.content))
		if !tok.Kind.IsModifier() && (tok.Kind != scanner.Default || !isMod) {
			endPos = tok.Start
			break
		}
		if firstStart == -1 {
			firstStart = tok.Start
		}
		if bit&newMods == 0 {
			a.remove(tok.Start, a.nextStart(tok.End)-tok.Start, group)
		}
		pos = tok.End
	}

	added := newMods &^ oldMods
	if added == 0 {
		return
	}
	if firstStart != -1 && added&jast.ModVisibility != 0 {
		a.insert(firstStart, jast.PrintModifiers(added&jast.ModVisibility), group)
		added &^= jast.ModVisibility
	}
	if added != 0 {
		a.insert(endPos, jast.PrintModifiers(added), group)
	}
}

// skipAnnotation returns the end of the annotation whose '@' ends at pos.
func (a *analyzer) skipAnnotation(pos int) int {
	tok, ok := a.nextToken(pos, true)
	if !ok || tok.Kind != scanner.Ident {
		return pos
	}
	pos = tok.End
	for {
		dot, ok := a.nextToken(pos, true)
		if !ok || dot.Kind != scanner.Dot {
			break
		}
		name, ok := a.nextToken(dot.End, true)
		if !ok || name.Kind != scanner.Ident {
			break
		}
		pos = name.End
	}
	if next, ok := a.nextToken(pos, true); ok && next.Kind == scanner.LParen {
		if end, ok := a.lookup.SkipBalanced(pos); ok {
			return end
		}
	}
	return pos
}

// rewriteAnnotations rewrites the annotation list of a declaration. Inline
// annotations, as on parameters, are separated by a space; others go on
// their own line.
func (a *analyzer) rewriteAnnotations(node jast.NodeID, pos int, inline bool) int {
	slot := jast.SlotAnnotations
	if !a.isChanged(node, slot) {
		return a.visitSlot(node, slot, pos)
	}
	state := a.listState(node, slot)
	if state.allInserted || state.allRemoved {
		pos = a.nextStart(pos)
	}
	declIndent := a.indentAt(pos)

	after := func(units int) string {
		if inline {
			return " "
		}
		return a.delim + a.indentString(units)
	}
	policy := listPolicy{
		separator: func(r *listRewriter, index int) string { return after(r.nodeIndent(index + 1)) },
	}
	end := a.rewriteList(node, slot, pos, "", "", policy)

	group := a.lastGroup(node, slot)
	tok, ok := a.nextToken(end, false)
	nextPos := end
	if ok {
		nextPos = tok.Start
	}
	switch {
	case state.allRemoved:
		a.remove(end, nextPos-end, group)
	case state.allInserted || (nextPos == end && a.lastChanged(node, slot)):
		a.insert(end, after(declIndent), group)
	}
	return nextPos
}

// replaceOperator replaces the operator token found at or after posBefore.
func (a *analyzer) replaceOperator(posBefore int, operator string, node jast.NodeID, slot jast.Slot) {
	tok, ok := a.lookup.ReadOperator(posBefore)
	if !ok {
		a.miss("operator", posBefore)
		return
	}
	a.replace(tok.Start, tok.Len(), operator, a.group(node, slot))
}

// rewriteOperator replaces the operator of node when it changed.
func (a *analyzer) rewriteOperator(node jast.NodeID, slot jast.Slot, posBefore int) {
	if a.isChanged(node, slot) {
		a.replaceOperator(posBefore, a.store.NewStr(node, slot), node, slot)
	}
}

// rewriteExtraDimensions adds or removes "[]" pairs at pos and returns the
// offset after the original dimensions.
func (a *analyzer) rewriteExtraDimensions(node jast.NodeID, slot jast.Slot, pos int) int {
	old := a.tree.Int(node, slot)
	if !a.isChanged(node, slot) {
		return a.skipDimensions(pos, old)
	}
	n := a.store.NewInt(node, slot)
	group := a.group(node, slot)
	switch {
	case n > old:
		a.insert(pos, strings.Repeat("[]", n-old), group)
	case n < old:
		end := a.skipDimensions(pos, old-n)
		a.remove(pos, end-pos, group)
	}
	return a.skipDimensions(pos, old)
}

func (a *analyzer) skipDimensions(pos, count int) int {
	for range count {
		pos = a.tokenEnd(scanner.RBracket, pos)
	}
	return pos
}

// rewriteTypeParameters rewrites a "<...>" list. keyword follows the
// closing '>' when the list was empty. adjustOnNext moves the insert point
// onto the next token first. needsSpaceOnRemoveAll leaves a blank where
// the removed list was.
func (a *analyzer) rewriteTypeParameters(node jast.NodeID, slot jast.Slot, offset int, keyword string, adjustOnNext, needsSpaceOnRemoveAll bool) int {
	if !a.isChanged(node, slot) {
		pos := a.visitSlot(node, slot, offset)
		if pos != offset {
			return a.tokenEnd(scanner.Gt, pos)
		}
		return offset
	}
	state := a.listState(node, slot)
	group := a.lastGroup(node, slot)
	pos := offset
	if state.allInserted && adjustOnNext {
		pos = a.nextStart(pos)
	}
	if state.allRemoved {
		lt := a.tokenStart(scanner.Lt, pos)
		if lt != pos {
			needsSpaceOnRemoveAll = false
		}
		pos = lt
	}

	pos = a.rewriteList(node, slot, pos, "<", "", constantSeparator(", "))

	switch {
	case state.allRemoved:
		end := a.nextStart(a.tokenEnd(scanner.Gt, pos))
		text := ""
		if needsSpaceOnRemoveAll {
			text = " "
		}
		a.replace(pos, end-pos, text, group)
		return end
	case state.allInserted:
		a.insert(pos, ">"+keyword, group)
		return pos
	}
	return a.tokenEnd(scanner.Gt, pos)
}

// lastGroup returns the group of the final entry of a list event.
func (a *analyzer) lastGroup(node jast.NodeID, slot jast.Slot) *textedit.Group {
	e := a.event(node, slot)
	if e == nil || len(e.Children) == 0 {
		return nil
	}
	return e.Children[len(e.Children)-1].Group
}

// rewriteQualifier rewrites an optional "qualifier." prefix starting at
// startPos and returns the offset after the dot.
func (a *analyzer) rewriteQualifier(node jast.NodeID, slot jast.Slot, startPos int) int {
	e := a.event(node, slot)
	if e == nil || e.Kind == events.Unchanged {
		if c := a.tree.Child(node, slot); c != jast.NoNode {
			return a.tokenEnd(scanner.Dot, a.visit(c))
		}
		return startPos
	}
	switch e.Kind {
	case events.Inserted:
		a.insertNode(startPos, e.New.Node, 0, true, e.Group)
		a.insert(startPos, ".", e.Group)
		return startPos
	case events.Removed:
		old := e.Original.Node
		dotEnd := a.tokenEnd(scanner.Dot, a.tree.ExtendedEnd(old))
		a.removeAndVisit(startPos, dotEnd-startPos, old, e.Group)
		return dotEnd
	default:
		old := e.Original.Node
		start, length := a.nodeRange(old)
		a.removeAndVisit(start, length, old, e.Group)
		a.insertNode(start, e.New.Node, 0, true, e.Group)
		return a.tokenEnd(scanner.Dot, start+length)
	}
}

// rewriteJavadoc rewrites the doc comment of a declaration and returns the
// offset after it.
func (a *analyzer) rewriteJavadoc(node jast.NodeID) int {
	start := a.tree.Start(node)
	e := a.event(node, jast.SlotJavadoc)
	pos := a.rewriteNode(node, jast.SlotJavadoc, start, prefixNone)
	if e == nil {
		return pos
	}
	switch e.Kind {
	case events.Inserted:
		a.insert(pos, a.delim+a.indentString(a.indentAt(start)), e.Group)
	case events.Removed:
		if tok, ok := a.nextToken(pos, false); ok && tok.Start > pos {
			a.remove(pos, tok.Start-pos, e.Group)
			pos = tok.Start
		}
	}
	return pos
}

// visitJavadoc replaces the text of a changed doc comment, re-based to the
// indentation of its first line.
func (a *analyzer) visitJavadoc(node jast.NodeID) {
	if !a.isChanged(node, jast.SlotComment) {
		return
	}
	start := a.tree.Start(node)
	text := indent.ChangeIndent(a.store.NewStr(node, jast.SlotComment), 0, a.indent, a.lines.LeadingWhitespace(start))
	a.replace(start, a.tree.Length(node), text, a.group(node, jast.SlotComment))
}
