package format

import (
	"strings"

	"github.com/yaklabco/jrewrite/pkg/events"
	"github.com/yaklabco/jrewrite/pkg/indent"
	"github.com/yaklabco/jrewrite/pkg/jast"
)

// Java renders nodes through the change view of an event store. New
// subtrees may contain original nodes, which print their source text, and
// placeholders, which print stand-in text covered by a marker.
type Java struct {
	store *events.Store
	tree  *jast.Tree
	opts  Options
}

// NewJava returns a Java formatter over store.
func NewJava(store *events.Store, opts Options) *Java {
	return &Java{store: store, tree: store.Tree(), opts: opts}
}

// Options returns the layout options of the formatter.
func (j *Java) Options() Options { return j.opts }

// Format implements Formatter.
func (j *Java) Format(node jast.NodeID, baseIndent string) (string, []Marker) {
	p := &printer{
		j:     j,
		base:  baseIndent,
		unit:  indent.CreateIndentString(1, j.opts.Indent),
		delim: j.opts.Delimiter(),
	}
	p.buf.WriteString(baseIndent)
	p.node(node)
	return p.buf.String(), p.markers
}

type printer struct {
	j       *Java
	buf     strings.Builder
	markers []Marker
	base    string
	unit    string
	delim   string
	level   int
}

func (p *printer) write(s string) { p.buf.WriteString(s) }

// nl starts a new line at the current level.
func (p *printer) nl() {
	p.buf.WriteString(p.delim)
	p.buf.WriteString(p.base)
	for range p.level {
		p.buf.WriteString(p.unit)
	}
}

// blank ends the current line without indenting the next one.
func (p *printer) blank() { p.buf.WriteString(p.delim) }

func (p *printer) kind(id jast.NodeID) jast.Kind { return p.j.tree.Kind(id) }

func (p *printer) child(id jast.NodeID, s jast.Slot) jast.NodeID { return p.j.store.NewChild(id, s) }

func (p *printer) list(id jast.NodeID, s jast.Slot) []jast.NodeID { return p.j.store.NewList(id, s) }

func (p *printer) num(id jast.NodeID, s jast.Slot) int { return p.j.store.NewInt(id, s) }

func (p *printer) str(id jast.NodeID, s jast.Slot) string { return p.j.store.NewStr(id, s) }

func (p *printer) join(nodes []jast.NodeID, sep string) {
	for i, n := range nodes {
		if i > 0 {
			p.write(sep)
		}
		p.node(n)
	}
}

// opt writes prefix and the child in slot s if it is present.
func (p *printer) opt(id jast.NodeID, s jast.Slot, prefix string) {
	if c := p.child(id, s); c != jast.NoNode {
		p.write(prefix)
		p.node(c)
	}
}

func (p *printer) node(id jast.NodeID) {
	if id == jast.NoNode {
		return
	}
	t := p.j.tree
	if ph, ok := p.j.store.Placeholder(id); ok {
		p.placeholder(id, ph)
		return
	}
	if t.IsOriginal(id) && !p.j.store.HasChildrenChanges(id) {
		p.write(string(t.Text(id)))
		return
	}
	if !t.IsOriginal(id) && p.j.store.TrackedGroup(id) != nil {
		i := len(p.markers)
		p.markers = append(p.markers, Marker{Kind: MarkerTrack, Offset: p.buf.Len(), Node: id})
		defer func() { p.markers[i].Length = p.buf.Len() - p.markers[i].Offset }()
	}
	p.dispatch(id)
}

func (p *printer) placeholder(id jast.NodeID, ph events.Placeholder) {
	t := p.j.tree
	m := Marker{Offset: p.buf.Len(), Node: id}
	switch ph.Kind {
	case events.PlaceholderMove, events.PlaceholderCopy:
		m.Kind = MarkerCopy
		if ph.Kind == events.PlaceholderMove {
			m.Kind = MarkerMove
		}
		if t.IsOriginal(ph.Source) {
			start, length := t.ExtendedRange(ph.Source)
			p.write(string(t.Content()[start : start+length]))
		}
	default:
		m.Kind = MarkerString
		p.write(ph.Code)
	}
	m.Length = p.buf.Len() - m.Offset
	p.markers = append(p.markers, m)
}

func (p *printer) dispatch(id jast.NodeID) {
	switch p.kind(id) {
	case jast.KindCompilationUnit:
		p.compilationUnit(id)
	case jast.KindPackageDeclaration:
		p.javadoc(id)
		p.annotations(id, true)
		p.write("package ")
		p.node(p.child(id, jast.SlotName))
		p.write(";")
	case jast.KindImportDeclaration:
		p.write("import ")
		if p.num(id, jast.SlotStatic) != 0 {
			p.write("static ")
		}
		p.node(p.child(id, jast.SlotName))
		if p.num(id, jast.SlotOnDemand) != 0 {
			p.write(".*")
		}
		p.write(";")
	case jast.KindTypeDeclaration:
		p.typeDeclaration(id)
	case jast.KindEnumDeclaration:
		p.enumDeclaration(id)
	case jast.KindEnumConstantDeclaration:
		p.javadoc(id)
		p.annotations(id, true)
		p.node(p.child(id, jast.SlotName))
		if args := p.list(id, jast.SlotArguments); len(args) > 0 {
			p.write("(")
			p.join(args, ", ")
			p.write(")")
		}
		p.opt(id, jast.SlotAnonymousClass, " ")
	case jast.KindAnonymousClassDeclaration:
		p.typeBody(p.list(id, jast.SlotBodyDeclarations))
	case jast.KindFieldDeclaration:
		p.javadoc(id)
		p.annotations(id, true)
		p.modifiers(id)
		p.node(p.child(id, jast.SlotType))
		p.write(" ")
		p.join(p.list(id, jast.SlotFragments), ", ")
		p.write(";")
	case jast.KindMethodDeclaration:
		p.methodDeclaration(id)
	case jast.KindInitializer:
		p.javadoc(id)
		p.modifiers(id)
		p.node(p.child(id, jast.SlotBody))
	case jast.KindSingleVariableDeclaration:
		p.annotations(id, false)
		p.modifiers(id)
		p.node(p.child(id, jast.SlotType))
		if p.num(id, jast.SlotVarargs) != 0 {
			p.write("...")
		}
		p.write(" ")
		p.node(p.child(id, jast.SlotName))
		p.dims(p.num(id, jast.SlotExtraDimensions))
		p.opt(id, jast.SlotInitializer, " = ")
	case jast.KindVariableDeclarationFragment:
		p.node(p.child(id, jast.SlotName))
		p.dims(p.num(id, jast.SlotExtraDimensions))
		p.opt(id, jast.SlotInitializer, " = ")
	case jast.KindJavadoc:
		p.comment(p.str(id, jast.SlotComment))
	case jast.KindMarkerAnnotation:
		p.write("@")
		p.node(p.child(id, jast.SlotTypeName))
	case jast.KindSingleMemberAnnotation:
		p.write("@")
		p.node(p.child(id, jast.SlotTypeName))
		p.write("(")
		p.node(p.child(id, jast.SlotValue))
		p.write(")")
	case jast.KindNormalAnnotation:
		p.write("@")
		p.node(p.child(id, jast.SlotTypeName))
		p.write("(")
		p.join(p.list(id, jast.SlotValues), ", ")
		p.write(")")
	case jast.KindMemberValuePair:
		p.node(p.child(id, jast.SlotName))
		p.write(" = ")
		p.node(p.child(id, jast.SlotValue))
	default:
		p.statement(id)
	}
}

func (p *printer) compilationUnit(id jast.NodeID) {
	wrote := false
	if pkg := p.child(id, jast.SlotPackage); pkg != jast.NoNode {
		p.node(pkg)
		wrote = true
	}
	for i, imp := range p.list(id, jast.SlotImports) {
		if wrote {
			if i == 0 {
				p.blank()
			}
			p.nl()
		}
		p.node(imp)
		wrote = true
	}
	for _, decl := range p.list(id, jast.SlotTypes) {
		if wrote {
			p.blank()
			p.nl()
		}
		p.node(decl)
		wrote = true
	}
}

func (p *printer) typeDeclaration(id jast.NodeID) {
	p.javadoc(id)
	p.annotations(id, true)
	p.modifiers(id)
	isInterface := p.num(id, jast.SlotInterface) != 0
	if isInterface {
		p.write("interface ")
	} else {
		p.write("class ")
	}
	p.node(p.child(id, jast.SlotName))
	p.typeArgs(p.list(id, jast.SlotTypeParameters))
	p.opt(id, jast.SlotSuperclassType, " extends ")
	if ifaces := p.list(id, jast.SlotSuperInterfaceTypes); len(ifaces) > 0 {
		if isInterface {
			p.write(" extends ")
		} else {
			p.write(" implements ")
		}
		p.join(ifaces, ", ")
	}
	p.write(" ")
	p.typeBody(p.list(id, jast.SlotBodyDeclarations))
}

func (p *printer) enumDeclaration(id jast.NodeID) {
	p.javadoc(id)
	p.annotations(id, true)
	p.modifiers(id)
	p.write("enum ")
	p.node(p.child(id, jast.SlotName))
	if ifaces := p.list(id, jast.SlotSuperInterfaceTypes); len(ifaces) > 0 {
		p.write(" implements ")
		p.join(ifaces, ", ")
	}
	p.write(" {")
	p.level++
	constants := p.list(id, jast.SlotEnumConstants)
	for i, c := range constants {
		if i > 0 {
			p.write(",")
		}
		p.nl()
		p.node(c)
	}
	if decls := p.list(id, jast.SlotBodyDeclarations); len(decls) > 0 {
		if len(constants) == 0 {
			p.nl()
		}
		p.write(";")
		p.members(decls, true)
	}
	p.level--
	p.nl()
	p.write("}")
}

// typeBody writes a brace-delimited member list.
func (p *printer) typeBody(decls []jast.NodeID) {
	p.write("{")
	p.level++
	p.members(decls, false)
	p.level--
	p.nl()
	p.write("}")
}

func (p *printer) members(decls []jast.NodeID, separated bool) {
	for i, d := range decls {
		if i > 0 || separated {
			lines := p.j.opts.BlankLinesBetweenMembers
			if i > 0 && p.kind(decls[i-1]) == jast.KindFieldDeclaration && p.kind(d) == jast.KindFieldDeclaration {
				lines = 0
			}
			for range lines {
				p.blank()
			}
		}
		p.nl()
		p.node(d)
	}
}

func (p *printer) methodDeclaration(id jast.NodeID) {
	p.javadoc(id)
	p.annotations(id, true)
	p.modifiers(id)
	if params := p.list(id, jast.SlotTypeParameters); len(params) > 0 {
		p.typeArgs(params)
		p.write(" ")
	}
	if p.num(id, jast.SlotConstructor) == 0 {
		if rt := p.child(id, jast.SlotReturnType); rt != jast.NoNode {
			p.node(rt)
		} else {
			p.write("void")
		}
		p.write(" ")
	}
	p.node(p.child(id, jast.SlotName))
	p.write("(")
	p.join(p.list(id, jast.SlotParameters), ", ")
	p.write(")")
	p.dims(p.num(id, jast.SlotExtraDimensions))
	if thrown := p.list(id, jast.SlotThrownExceptions); len(thrown) > 0 {
		p.write(" throws ")
		p.join(thrown, ", ")
	}
	if body := p.child(id, jast.SlotBody); body != jast.NoNode {
		p.write(" ")
		p.node(body)
	} else {
		p.write(";")
	}
}

func (p *printer) javadoc(id jast.NodeID) {
	if doc := p.child(id, jast.SlotJavadoc); doc != jast.NoNode {
		p.node(doc)
		p.nl()
	}
}

// comment writes a block comment, re-aligning its continuation lines.
func (p *printer) comment(text string) {
	for i, line := range indent.Lines(text) {
		if i == 0 {
			p.write(strings.TrimSpace(line))
			continue
		}
		p.nl()
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "*") {
			p.write(" ")
		}
		p.write(line)
	}
}

// annotations writes the annotations of a declaration, each on its own
// line when onOwnLine is set and followed by a space otherwise.
func (p *printer) annotations(id jast.NodeID, onOwnLine bool) {
	for _, a := range p.list(id, jast.SlotAnnotations) {
		p.node(a)
		if onOwnLine {
			p.nl()
		} else {
			p.write(" ")
		}
	}
}

func (p *printer) modifiers(id jast.NodeID) {
	p.write(jast.PrintModifiers(p.num(id, jast.SlotModifiers)))
}

func (p *printer) typeArgs(args []jast.NodeID) {
	if len(args) == 0 {
		return
	}
	p.write("<")
	p.join(args, ", ")
	p.write(">")
}

func (p *printer) dims(n int) {
	for range n {
		p.write("[]")
	}
}
