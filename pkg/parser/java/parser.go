// Package java parses Java compilation units into jast trees.
//
// The parser is a hand-written recursive descent parser for the Java 7
// language. Every node it creates carries its source range; declarations
// start at their doc comment. Comments are recorded on the tree so that
// extended node ranges can include them.
package java

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/scanner"
)

// SyntaxError describes the first syntax error found in a unit.
type SyntaxError struct {
	Path   string
	Offset int
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// Parser parses Java source files.
type Parser struct{}

// New creates a parser.
func New() *Parser { return &Parser{} }

// Parse parses content into a linked, frozen tree rooted at a
// CompilationUnit.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*jast.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}
	tree, err := Parse(content)
	if err != nil {
		var se *SyntaxError
		if errors.As(err, &se) {
			se.Path = path
		}
		return nil, err
	}
	return tree, nil
}

// Parse parses src.
func Parse(src []byte) (tree *jast.Tree, err error) {
	p := newParser(src)
	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			tree, err = nil, se
		}
	}()
	root := p.compilationUnit()
	p.tree.SetRoot(root)
	p.tree.Link()
	return p.tree, nil
}

type parser struct {
	src      []byte
	tree     *jast.Tree
	toks     []scanner.Token
	comments []scanner.Token
	i        int
}

func newParser(src []byte) *parser {
	toks, comments := scanner.Tokenize(src)
	tree := jast.NewTree(src)
	for _, c := range comments {
		kind := jast.BlockComment
		switch c.Kind {
		case scanner.LineComment:
			kind = jast.LineComment
		case scanner.DocComment:
			kind = jast.DocComment
		}
		tree.AddComment(jast.Comment{Kind: kind, Start: c.Start, End: c.End})
	}
	return &parser{src: src, tree: tree, toks: toks, comments: comments}
}

// Token access.

func (p *parser) tok() scanner.Token { return p.peek(0) }

func (p *parser) peek(n int) scanner.Token {
	if p.i+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i+n]
}

func (p *parser) kind() scanner.TokenKind { return p.tok().Kind }

func (p *parser) at(kinds ...scanner.TokenKind) bool {
	k := p.kind()
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

func (p *parser) next() scanner.Token {
	t := p.tok()
	if t.Kind != scanner.EOF {
		p.i++
	}
	return t
}

func (p *parser) accept(k scanner.TokenKind) bool {
	if p.kind() == k {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(k scanner.TokenKind) scanner.Token {
	if p.kind() != k {
		p.errorf("expected %s, found %s", k, p.describe(p.tok()))
	}
	return p.next()
}

func (p *parser) describe(t scanner.Token) string {
	if t.Kind == scanner.EOF {
		return "end of file"
	}
	return fmt.Sprintf("%q", t.Text(p.src))
}

func (p *parser) text(t scanner.Token) string { return t.Text(p.src) }

// prevEnd returns the end of the last consumed token.
func (p *parser) prevEnd() int {
	if p.i == 0 {
		return 0
	}
	return p.toks[p.i-1].End
}

func (p *parser) errorf(format string, args ...any) {
	off := p.tok().Start
	line, col := p.tree.Lines().Position(off)
	panic(&SyntaxError{Offset: off, Line: line, Column: col, Msg: fmt.Sprintf(format, args...)})
}

// Node construction.

// finish creates a node of kind k from start to the end of the last
// consumed token.
func (p *parser) finish(k jast.Kind, start int) jast.NodeID {
	return p.tree.AddNode(k, start, p.prevEnd()-start)
}

func (p *parser) span(k jast.Kind, start, end int) jast.NodeID {
	return p.tree.AddNode(k, start, end-start)
}

// docComment returns the doc comment directly before the current token,
// with no other token in between.
func (p *parser) docComment() (scanner.Token, bool) {
	start := p.tok().Start
	lower := p.prevEnd()
	for j := len(p.comments) - 1; j >= 0; j-- {
		c := p.comments[j]
		if c.End > start {
			continue
		}
		if c.Start < lower {
			break
		}
		return c, c.Kind == scanner.DocComment
	}
	return scanner.Token{}, false
}

func (p *parser) javadoc(doc scanner.Token) jast.NodeID {
	n := p.span(jast.KindJavadoc, doc.Start, doc.End)
	p.tree.SetStr(n, jast.SlotComment, p.text(doc))
	return n
}

// Names.

func (p *parser) simpleName() jast.NodeID {
	t := p.expect(scanner.Ident)
	n := p.span(jast.KindSimpleName, t.Start, t.End)
	p.tree.SetStr(n, jast.SlotIdentifier, p.text(t))
	return n
}

// qualifiedName parses a dotted name. It stops before ".*" and before a
// dot that is not followed by an identifier.
func (p *parser) qualifiedName() jast.NodeID {
	start := p.tok().Start
	name := p.simpleName()
	for p.kind() == scanner.Dot && p.peek(1).Kind == scanner.Ident {
		p.next()
		name = p.qualify(start, name, p.simpleName())
	}
	return name
}

func (p *parser) qualify(start int, qualifier, name jast.NodeID) jast.NodeID {
	q := p.span(jast.KindQualifiedName, start, p.tree.End(name))
	p.tree.SetChild(q, jast.SlotQualifier, qualifier)
	p.tree.SetChild(q, jast.SlotName, name)
	return q
}

// Compilation unit.

func (p *parser) compilationUnit() jast.NodeID {
	var pkg jast.NodeID
	var imports, types []jast.NodeID

	if p.packageAhead() {
		pkg = p.packageDeclaration()
	}
	for p.at(scanner.Import) {
		imports = append(imports, p.importDeclaration())
	}
	for !p.at(scanner.EOF) {
		if p.accept(scanner.Semicolon) {
			continue
		}
		types = append(types, p.typeDeclaration())
	}

	cu := p.span(jast.KindCompilationUnit, 0, len(p.src))
	p.tree.SetChild(cu, jast.SlotPackage, pkg)
	p.tree.SetList(cu, jast.SlotImports, imports)
	p.tree.SetList(cu, jast.SlotTypes, types)
	return cu
}

// packageAhead reports whether a package declaration follows, possibly
// after annotations.
func (p *parser) packageAhead() bool {
	j := p.i
	for j < len(p.toks) && p.toks[j].Kind == scanner.At {
		next, ok := p.skipAnnotationAt(j)
		if !ok {
			return false
		}
		j = next
	}
	return j < len(p.toks) && p.toks[j].Kind == scanner.Package
}

func (p *parser) packageDeclaration() jast.NodeID {
	start := p.tok().Start
	var doc jast.NodeID
	if d, ok := p.docComment(); ok {
		start = d.Start
		doc = p.javadoc(d)
	}
	annotations := p.annotations()
	p.expect(scanner.Package)
	name := p.qualifiedName()
	p.expect(scanner.Semicolon)

	n := p.finish(jast.KindPackageDeclaration, start)
	p.tree.SetChild(n, jast.SlotJavadoc, doc)
	p.tree.SetList(n, jast.SlotAnnotations, annotations)
	p.tree.SetChild(n, jast.SlotName, name)
	return n
}

func (p *parser) importDeclaration() jast.NodeID {
	start := p.expect(scanner.Import).Start
	static := 0
	if p.accept(scanner.Static) {
		static = 1
	}
	name := p.qualifiedName()
	onDemand := 0
	if p.accept(scanner.Dot) {
		p.expect(scanner.Star)
		onDemand = 1
	}
	p.expect(scanner.Semicolon)

	n := p.finish(jast.KindImportDeclaration, start)
	p.tree.SetInt(n, jast.SlotStatic, static)
	p.tree.SetChild(n, jast.SlotName, name)
	p.tree.SetInt(n, jast.SlotOnDemand, onDemand)
	return n
}
