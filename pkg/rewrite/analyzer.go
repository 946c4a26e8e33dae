package rewrite

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/jrewrite/pkg/events"
	"github.com/yaklabco/jrewrite/pkg/format"
	"github.com/yaklabco/jrewrite/pkg/indent"
	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/scanner"
	"github.com/yaklabco/jrewrite/pkg/textedit"
)

// handler rewrites the slots of one node kind. It runs only for nodes with
// changes at or below them.
type handler func(a *analyzer, node jast.NodeID)

// handlers is filled by the init functions of the visit files.
var handlers = map[jast.Kind]handler{}

// analyzer walks the original tree in source order and turns the events of
// a store into a nested edit tree.
type analyzer struct {
	tree    *jast.Tree
	store   *events.Store
	content []byte
	lines   *jast.LineIndex
	lookup  *scanner.Lookup
	fmt     format.Formatter
	indent  indent.Options
	delim   string
	builder *textedit.Builder
	logger  *log.Logger

	moveSources map[jast.NodeID]*textedit.Edit
	copySources map[jast.NodeID]*textedit.Edit
}

func newAnalyzer(store *events.Store, f format.Formatter, indentOpts indent.Options, delim string, logger *log.Logger) *analyzer {
	tree := store.Tree()
	return &analyzer{
		tree:        tree,
		store:       store,
		content:     tree.Content(),
		lines:       tree.Lines(),
		lookup:      scanner.NewLookup(tree.Content()),
		fmt:         f,
		indent:      indentOpts,
		delim:       delim,
		builder:     textedit.NewBuilder(len(tree.Content())),
		logger:      logger,
		moveSources: make(map[jast.NodeID]*textedit.Edit),
		copySources: make(map[jast.NodeID]*textedit.Edit),
	}
}

// analyze visits the root and returns the finished edit tree.
func (a *analyzer) analyze() (root *textedit.Edit, err error) {
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(fault)
			if !ok {
				panic(r)
			}
			root, err = nil, f.err
		}
	}()

	if node := a.tree.Root(); node != jast.NoNode {
		a.visit(node)
	}
	if d := a.builder.Depth(); d != 0 {
		return nil, fmt.Errorf("edit scopes left open: %d", d)
	}
	return a.builder.Root(), nil
}

// Edit primitives.

func (a *analyzer) add(e *textedit.Edit, group *textedit.Group) {
	if err := a.builder.Add(e); err != nil {
		a.fail(err)
	}
	if group != nil {
		group.Add(e)
	}
}

func (a *analyzer) push(e *textedit.Edit) { a.builder.Push(e) }

func (a *analyzer) pop() {
	if _, err := a.builder.Pop(); err != nil {
		a.fail(err)
	}
}

func (a *analyzer) insert(offset int, text string, group *textedit.Group) {
	if text == "" {
		return
	}
	a.add(textedit.Insert(offset, text), group)
}

func (a *analyzer) remove(offset, length int, group *textedit.Group) *textedit.Edit {
	if length <= 0 {
		return nil
	}
	e := textedit.Delete(offset, length)
	a.add(e, group)
	return e
}

func (a *analyzer) replace(offset, length int, text string, group *textedit.Group) {
	if length <= 0 {
		a.insert(offset, text, group)
		return
	}
	a.add(textedit.Replace(offset, length, text), group)
}

// removeAndVisit deletes [offset, offset+length) and visits node inside
// the deletion so that sources and tracked ranges below it nest there.
func (a *analyzer) removeAndVisit(offset, length int, node jast.NodeID, group *textedit.Group) {
	e := a.remove(offset, length, group)
	if e != nil {
		a.push(e)
		defer a.pop()
	}
	if node != jast.NoNode {
		a.visit(node)
	}
}

// Traversal.

// visit processes one original node and returns its extended end.
func (a *analyzer) visit(node jast.NodeID) int {
	scopes := a.preVisit(node)
	if a.store.HasChildrenChanges(node) {
		if h := handlers[a.tree.Kind(node)]; h != nil {
			h(a, node)
		} else {
			a.visitChildren(node)
		}
	}
	for range scopes {
		a.pop()
	}
	return a.tree.ExtendedEnd(node)
}

// preVisit opens the source and tracking scopes of node and returns how
// many were pushed.
func (a *analyzer) preVisit(node jast.NodeID) int {
	scopes := 0
	if a.store.CopyCount(node) > 0 {
		e := a.sourceEdit(node, false)
		if e.Parent() == nil {
			a.add(e, nil)
		}
		a.push(e)
		scopes++
	}
	if a.store.IsMoveSource(node) {
		e := a.sourceEdit(node, true)
		if e.Parent() == nil {
			a.add(e, nil)
		}
		a.push(e)
		scopes++
	}
	if g := a.store.TrackedGroup(node); g != nil {
		e := textedit.NewRange(a.tree.ExtendedRange(node))
		a.add(e, g)
		a.push(e)
		scopes++
	}
	return scopes
}

// visitChildren is the handler of kinds whose slots are all required
// children, such as catch clauses and labeled statements.
func (a *analyzer) visitChildren(node jast.NodeID) {
	for _, d := range jast.Descriptors(a.tree.Kind(node)) {
		switch {
		case d.Shape == jast.ShapeChild:
			a.rewriteRequired(node, d.Slot)
		case d.Shape == jast.ShapeOptional:
			a.visitSlot(node, d.Slot, 0)
			a.unsupported(node, d.Slot)
		default:
			a.unsupported(node, d.Slot)
		}
	}
}

// visitSlot visits the original children of a slot and returns the end of
// the last one, or pos when the slot is empty.
func (a *analyzer) visitSlot(node jast.NodeID, slot jast.Slot, pos int) int {
	d, ok := jast.Descriptor(a.tree.Kind(node), slot)
	if !ok {
		return pos
	}
	if d.Shape == jast.ShapeList {
		for _, c := range a.tree.List(node, slot) {
			pos = a.visit(c)
		}
		return pos
	}
	if c := a.tree.Child(node, slot); c != jast.NoNode {
		return a.visit(c)
	}
	return pos
}

// sourceEdit returns the shared move or copy source edit of node.
func (a *analyzer) sourceEdit(node jast.NodeID, move bool) *textedit.Edit {
	cache := a.copySources
	if move {
		cache = a.moveSources
	}
	if e, ok := cache[node]; ok {
		return e
	}
	var e *textedit.Edit
	if move {
		e = textedit.MoveSource(a.tree.ExtendedRange(node))
	} else {
		e = textedit.CopySource(a.tree.ExtendedRange(node))
	}
	cache[node] = e
	return e
}

// Events.

func (a *analyzer) event(node jast.NodeID, slot jast.Slot) *events.Event {
	return a.store.Event(node, slot)
}

func (a *analyzer) changeKind(node jast.NodeID, slot jast.Slot) events.Kind {
	if e := a.event(node, slot); e != nil {
		return e.Kind
	}
	return events.Unchanged
}

func (a *analyzer) isChanged(node jast.NodeID, slot jast.Slot) bool {
	return a.store.IsChanged(node, slot)
}

func (a *analyzer) group(node jast.NodeID, slot jast.Slot) *textedit.Group {
	if e := a.event(node, slot); e != nil {
		return e.Group
	}
	return nil
}

// unsupported faults when a token slot without a partial edit changed.
func (a *analyzer) unsupported(node jast.NodeID, slot jast.Slot) {
	if a.isChanged(node, slot) {
		a.fail(&UnsupportedChangeError{Node: node, Kind: a.tree.Kind(node), Slot: slot})
	}
}

// Positions.

// indentAt returns the indentation units of the line containing offset.
func (a *analyzer) indentAt(offset int) int {
	line := a.lines.LineText(a.lines.LineOf(offset))
	return indent.ComputeIndentUnits(string(line), a.indent)
}

func (a *analyzer) indentString(units int) string {
	return indent.CreateIndentString(units, a.indent)
}

func (a *analyzer) sameLine(x, y int) bool {
	return a.lines.LineOf(x) == a.lines.LineOf(y)
}

func (a *analyzer) miss(what string, offset int) {
	a.logger.Warn("token not found, keeping known offset", "token", what, "offset", offset)
}

func (a *analyzer) tokenEnd(kind scanner.TokenKind, offset int) int {
	end, ok := a.lookup.TokenEnd(kind, offset)
	if !ok {
		a.miss(kind.String(), offset)
	}
	return end
}

func (a *analyzer) tokenStart(kind scanner.TokenKind, offset int) int {
	start, ok := a.lookup.TokenStart(kind, offset)
	if !ok {
		a.miss(kind.String(), offset)
	}
	return start
}

func (a *analyzer) nextStart(offset int) int {
	start, ok := a.lookup.NextStart(offset, true)
	if !ok {
		return len(a.content)
	}
	return start
}

func (a *analyzer) nextToken(offset int, skipComments bool) (scanner.Token, bool) {
	return a.lookup.ReadNext(offset, skipComments)
}

// nodeRange returns the extended start and length of node.
func (a *analyzer) nodeRange(node jast.NodeID) (int, int) {
	return a.tree.ExtendedRange(node)
}

// Inserting new code.

// insertNode formats node at indentUnits and inserts it at offset,
// resolving the markers of the formatted text into target, placeholder
// and range edits.
func (a *analyzer) insertNode(offset int, node jast.NodeID, indentUnits int, removeLeadingIndent bool, group *textedit.Group) {
	text, markers := a.fmt.Format(node, a.indentString(indentUnits))

	pos := 0
	if removeLeadingIndent {
		for pos < len(text) && (text[pos] == ' ' || text[pos] == '\t') {
			pos++
		}
		if len(markers) > 0 && markers[0].Offset < pos {
			pos = markers[0].Offset
		}
	}

	var open []format.Marker
	closeTrack := func() {
		m := open[len(open)-1]
		open = open[:len(open)-1]
		if m.End() > pos {
			a.insert(offset, text[pos:m.End()], group)
			pos = m.End()
		}
		a.pop()
	}

	for _, m := range markers {
		for len(open) > 0 && open[len(open)-1].End() <= m.Offset {
			closeTrack()
		}
		if m.Offset > pos {
			a.insert(offset, text[pos:m.Offset], group)
			pos = m.Offset
		}
		switch m.Kind {
		case format.MarkerTrack:
			r := textedit.NewRange(offset, 0)
			a.add(r, a.store.TrackedGroup(m.Node))
			a.push(r)
			open = append(open, m)
			continue
		case format.MarkerMove, format.MarkerCopy:
			a.insertTarget(offset, text, m, group)
		case format.MarkerString:
			a.insertCode(offset, text, m, group)
		}
		if m.End() > pos {
			pos = m.End()
		}
	}
	for len(open) > 0 {
		closeTrack()
	}
	if pos < len(text) {
		a.insert(offset, text[pos:], group)
	}
}

func (a *analyzer) insertTarget(offset int, text string, m format.Marker, group *textedit.Group) {
	ph, _ := a.store.Placeholder(m.Node)
	move := m.Kind == format.MarkerMove
	src := ph.Source
	if move && !a.store.IsMoveSource(src) || !move && a.store.CopyCount(src) == 0 {
		a.fail(&MissingSourceError{Node: src, Move: move})
	}

	source := a.sourceEdit(src, move)
	reindent := &textedit.Reindent{
		SourceUnits: a.indentAt(a.tree.Start(src)),
		DestIndent:  lineIndentBefore(text, m.Offset),
		Options:     a.indent,
	}
	if move {
		a.add(textedit.MoveTarget(offset, source, reindent), group)
	} else {
		a.add(textedit.CopyTarget(offset, source, reindent), group)
	}
}

func (a *analyzer) insertCode(offset int, text string, m format.Marker, group *textedit.Group) {
	ph, _ := a.store.Placeholder(m.Node)
	code := indent.ChangeIndent(ph.Code, 0, a.indent, lineIndentBefore(text, m.Offset))
	a.insert(offset, code, group)
}

// lineIndentBefore returns the leading whitespace of the line of text that
// contains offset.
func lineIndentBefore(text string, offset int) string {
	start := strings.LastIndexAny(text[:offset], "\r\n") + 1
	return indent.Leading(text[start:])
}
