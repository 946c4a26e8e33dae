package java

import (
	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/scanner"
)

// header is the leading part shared by declarations.
type header struct {
	start       int
	doc         jast.NodeID
	annotations []jast.NodeID
	modifiers   int
}

// declHeader parses an optional doc comment, annotations and modifiers.
func (p *parser) declHeader() header {
	h := header{start: p.tok().Start}
	if d, ok := p.docComment(); ok {
		h.start = d.Start
		h.doc = p.javadoc(d)
	}
	h.annotations, h.modifiers = p.modifiers()
	return h
}

// modifiers parses annotations and modifier keywords in any order.
func (p *parser) modifiers() ([]jast.NodeID, int) {
	var annotations []jast.NodeID
	mods := 0
	for {
		switch {
		case p.at(scanner.At) && p.peek(1).Kind != scanner.Interface:
			annotations = append(annotations, p.annotation())
		case p.kind().IsModifier():
			bit, _ := jast.ModifierBit(p.text(p.next()))
			mods |= bit
		default:
			return annotations, mods
		}
	}
}

func (p *parser) annotations() []jast.NodeID {
	var out []jast.NodeID
	for p.at(scanner.At) && p.peek(1).Kind != scanner.Interface {
		out = append(out, p.annotation())
	}
	return out
}

func (p *parser) annotation() jast.NodeID {
	start := p.expect(scanner.At).Start
	name := p.qualifiedName()
	if !p.accept(scanner.LParen) {
		n := p.finish(jast.KindMarkerAnnotation, start)
		p.tree.SetChild(n, jast.SlotTypeName, name)
		return n
	}
	if p.at(scanner.Ident) && p.peek(1).Kind == scanner.Assign || p.at(scanner.RParen) {
		var pairs []jast.NodeID
		for !p.at(scanner.RParen) {
			pairStart := p.tok().Start
			key := p.simpleName()
			p.expect(scanner.Assign)
			value := p.elementValue()
			pair := p.finish(jast.KindMemberValuePair, pairStart)
			p.tree.SetChild(pair, jast.SlotName, key)
			p.tree.SetChild(pair, jast.SlotValue, value)
			pairs = append(pairs, pair)
			if !p.accept(scanner.Comma) {
				break
			}
		}
		p.expect(scanner.RParen)
		n := p.finish(jast.KindNormalAnnotation, start)
		p.tree.SetChild(n, jast.SlotTypeName, name)
		p.tree.SetList(n, jast.SlotValues, pairs)
		return n
	}
	value := p.elementValue()
	p.expect(scanner.RParen)
	n := p.finish(jast.KindSingleMemberAnnotation, start)
	p.tree.SetChild(n, jast.SlotTypeName, name)
	p.tree.SetChild(n, jast.SlotValue, value)
	return n
}

func (p *parser) elementValue() jast.NodeID {
	switch {
	case p.at(scanner.At):
		return p.annotation()
	case p.at(scanner.LBrace):
		start := p.next().Start
		var values []jast.NodeID
		for !p.at(scanner.RBrace) {
			values = append(values, p.elementValue())
			if !p.accept(scanner.Comma) {
				break
			}
		}
		p.expect(scanner.RBrace)
		n := p.finish(jast.KindArrayInitializer, start)
		p.tree.SetList(n, jast.SlotExpressions, values)
		return n
	default:
		return p.conditional()
	}
}

// skipAnnotationAt returns the token index after the annotation starting
// at token j.
func (p *parser) skipAnnotationAt(j int) (int, bool) {
	j++
	if j >= len(p.toks) || p.toks[j].Kind != scanner.Ident {
		return j, false
	}
	j++
	for j+1 < len(p.toks) && p.toks[j].Kind == scanner.Dot && p.toks[j+1].Kind == scanner.Ident {
		j += 2
	}
	if j < len(p.toks) && p.toks[j].Kind == scanner.LParen {
		depth := 0
		for ; j < len(p.toks); j++ {
			switch p.toks[j].Kind {
			case scanner.LParen:
				depth++
			case scanner.RParen:
				depth--
				if depth == 0 {
					return j + 1, true
				}
			case scanner.EOF:
				return j, false
			}
		}
	}
	return j, true
}

// Type declarations.

func (p *parser) typeDeclaration() jast.NodeID {
	h := p.declHeader()
	return p.typeDeclarationAfter(h)
}

func (p *parser) typeDeclarationAfter(h header) jast.NodeID {
	switch p.kind() {
	case scanner.Class, scanner.Interface:
		return p.classDeclaration(h)
	case scanner.Enum:
		return p.enumDeclaration(h)
	case scanner.At:
		p.errorf("annotation type declarations are not supported")
	default:
		p.errorf("expected class, interface or enum, found %s", p.describe(p.tok()))
	}
	return jast.NoNode
}

func (p *parser) classDeclaration(h header) jast.NodeID {
	isInterface := p.next().Kind == scanner.Interface
	name := p.simpleName()
	typeParams := p.typeParameters()

	var superclass jast.NodeID
	var interfaces []jast.NodeID
	if isInterface {
		if p.accept(scanner.Extends) {
			interfaces = p.typeList()
		}
	} else {
		if p.accept(scanner.Extends) {
			superclass = p.classType()
		}
		if p.accept(scanner.Implements) {
			interfaces = p.typeList()
		}
	}
	body := p.classBody(isInterface)

	n := p.finish(jast.KindTypeDeclaration, h.start)
	p.setHeader(n, h)
	if isInterface {
		p.tree.SetInt(n, jast.SlotInterface, 1)
	}
	p.tree.SetChild(n, jast.SlotName, name)
	p.tree.SetList(n, jast.SlotTypeParameters, typeParams)
	p.tree.SetChild(n, jast.SlotSuperclassType, superclass)
	p.tree.SetList(n, jast.SlotSuperInterfaceTypes, interfaces)
	p.tree.SetList(n, jast.SlotBodyDeclarations, body)
	return n
}

func (p *parser) setHeader(n jast.NodeID, h header) {
	k := p.tree.Kind(n)
	if jast.HasSlot(k, jast.SlotJavadoc) {
		p.tree.SetChild(n, jast.SlotJavadoc, h.doc)
	}
	if jast.HasSlot(k, jast.SlotAnnotations) {
		p.tree.SetList(n, jast.SlotAnnotations, h.annotations)
	}
	if jast.HasSlot(k, jast.SlotModifiers) {
		p.tree.SetInt(n, jast.SlotModifiers, h.modifiers)
	}
}

func (p *parser) typeList() []jast.NodeID {
	out := []jast.NodeID{p.classType()}
	for p.accept(scanner.Comma) {
		out = append(out, p.classType())
	}
	return out
}

func (p *parser) classBody(isInterface bool) []jast.NodeID {
	p.expect(scanner.LBrace)
	var members []jast.NodeID
	for !p.at(scanner.RBrace) {
		if p.at(scanner.EOF) {
			p.errorf("unterminated type body")
		}
		if p.accept(scanner.Semicolon) {
			continue
		}
		members = append(members, p.member(isInterface))
	}
	p.expect(scanner.RBrace)
	return members
}

func (p *parser) enumDeclaration(h header) jast.NodeID {
	p.expect(scanner.Enum)
	name := p.simpleName()
	var interfaces []jast.NodeID
	if p.accept(scanner.Implements) {
		interfaces = p.typeList()
	}

	p.expect(scanner.LBrace)
	var constants, body []jast.NodeID
	for p.at(scanner.Ident, scanner.At) {
		constants = append(constants, p.enumConstant())
		if !p.accept(scanner.Comma) {
			break
		}
	}
	if p.accept(scanner.Semicolon) {
		for !p.at(scanner.RBrace) {
			if p.at(scanner.EOF) {
				p.errorf("unterminated enum body")
			}
			if p.accept(scanner.Semicolon) {
				continue
			}
			body = append(body, p.member(false))
		}
	}
	p.expect(scanner.RBrace)

	n := p.finish(jast.KindEnumDeclaration, h.start)
	p.setHeader(n, h)
	p.tree.SetChild(n, jast.SlotName, name)
	p.tree.SetList(n, jast.SlotSuperInterfaceTypes, interfaces)
	p.tree.SetList(n, jast.SlotEnumConstants, constants)
	p.tree.SetList(n, jast.SlotBodyDeclarations, body)
	return n
}

func (p *parser) enumConstant() jast.NodeID {
	start := p.tok().Start
	var doc jast.NodeID
	if d, ok := p.docComment(); ok {
		start = d.Start
		doc = p.javadoc(d)
	}
	annotations := p.annotations()
	name := p.simpleName()
	var args []jast.NodeID
	if p.at(scanner.LParen) {
		args = p.arguments()
	}
	var anon jast.NodeID
	if p.at(scanner.LBrace) {
		anon = p.anonymousClass()
	}

	n := p.finish(jast.KindEnumConstantDeclaration, start)
	p.tree.SetChild(n, jast.SlotJavadoc, doc)
	p.tree.SetList(n, jast.SlotAnnotations, annotations)
	p.tree.SetChild(n, jast.SlotName, name)
	p.tree.SetList(n, jast.SlotArguments, args)
	p.tree.SetChild(n, jast.SlotAnonymousClass, anon)
	return n
}

func (p *parser) anonymousClass() jast.NodeID {
	start := p.tok().Start
	body := p.classBody(false)
	n := p.finish(jast.KindAnonymousClassDeclaration, start)
	p.tree.SetList(n, jast.SlotBodyDeclarations, body)
	return n
}

// Members.

func (p *parser) member(isInterface bool) jast.NodeID {
	h := p.declHeader()
	switch p.kind() {
	case scanner.Class, scanner.Interface, scanner.Enum, scanner.At:
		return p.typeDeclarationAfter(h)
	case scanner.LBrace:
		body := p.block()
		n := p.finish(jast.KindInitializer, h.start)
		p.tree.SetChild(n, jast.SlotJavadoc, h.doc)
		p.tree.SetInt(n, jast.SlotModifiers, h.modifiers)
		p.tree.SetChild(n, jast.SlotBody, body)
		return n
	}

	typeParams := p.typeParameters()
	if p.at(scanner.Ident) && p.peek(1).Kind == scanner.LParen {
		return p.method(h, typeParams, jast.NoNode, true)
	}
	var typ jast.NodeID
	if p.at(scanner.Void) {
		t := p.next()
		typ = p.primitive(t)
	} else {
		typ = p.typ()
	}
	if p.at(scanner.Ident) && p.peek(1).Kind == scanner.LParen {
		return p.method(h, typeParams, typ, false)
	}
	if len(typeParams) > 0 {
		p.errorf("type parameters on a field")
	}
	fragments := p.fragments()
	p.expect(scanner.Semicolon)

	n := p.finish(jast.KindFieldDeclaration, h.start)
	p.setHeader(n, h)
	p.tree.SetChild(n, jast.SlotType, typ)
	p.tree.SetList(n, jast.SlotFragments, fragments)
	return n
}

func (p *parser) method(h header, typeParams []jast.NodeID, returnType jast.NodeID, ctor bool) jast.NodeID {
	name := p.simpleName()
	params := p.parameters()
	dims := p.dimensions()
	var thrown []jast.NodeID
	if p.accept(scanner.Throws) {
		thrown = p.typeList()
	}
	var body jast.NodeID
	if !p.accept(scanner.Semicolon) {
		body = p.block()
	}

	n := p.finish(jast.KindMethodDeclaration, h.start)
	p.setHeader(n, h)
	if ctor {
		p.tree.SetInt(n, jast.SlotConstructor, 1)
	}
	p.tree.SetList(n, jast.SlotTypeParameters, typeParams)
	p.tree.SetChild(n, jast.SlotReturnType, returnType)
	p.tree.SetChild(n, jast.SlotName, name)
	p.tree.SetList(n, jast.SlotParameters, params)
	p.tree.SetInt(n, jast.SlotExtraDimensions, dims)
	p.tree.SetList(n, jast.SlotThrownExceptions, thrown)
	p.tree.SetChild(n, jast.SlotBody, body)
	return n
}

func (p *parser) parameters() []jast.NodeID {
	p.expect(scanner.LParen)
	var params []jast.NodeID
	for !p.at(scanner.RParen) {
		params = append(params, p.parameter(false))
		if !p.accept(scanner.Comma) {
			break
		}
	}
	p.expect(scanner.RParen)
	return params
}

// parameter parses a formal parameter. A catch parameter may have a
// union type.
func (p *parser) parameter(catch bool) jast.NodeID {
	start := p.tok().Start
	annotations, mods := p.modifiers()
	typ := p.typ()
	if catch && p.at(scanner.Or) {
		alternatives := []jast.NodeID{typ}
		for p.accept(scanner.Or) {
			alternatives = append(alternatives, p.typ())
		}
		u := p.finish(jast.KindUnionType, p.tree.Start(typ))
		p.tree.SetList(u, jast.SlotAlternatives, alternatives)
		typ = u
	}
	varargs := 0
	if p.accept(scanner.Ellipsis) {
		varargs = 1
	}
	name := p.simpleName()
	dims := p.dimensions()

	n := p.finish(jast.KindSingleVariableDeclaration, start)
	p.tree.SetList(n, jast.SlotAnnotations, annotations)
	p.tree.SetInt(n, jast.SlotModifiers, mods)
	p.tree.SetChild(n, jast.SlotType, typ)
	p.tree.SetInt(n, jast.SlotVarargs, varargs)
	p.tree.SetChild(n, jast.SlotName, name)
	p.tree.SetInt(n, jast.SlotExtraDimensions, dims)
	return n
}

// dimensions counts "[]" pairs.
func (p *parser) dimensions() int {
	n := 0
	for p.at(scanner.LBracket) && p.peek(1).Kind == scanner.RBracket {
		p.next()
		p.next()
		n++
	}
	return n
}

func (p *parser) fragments() []jast.NodeID {
	out := []jast.NodeID{p.fragment()}
	for p.accept(scanner.Comma) {
		out = append(out, p.fragment())
	}
	return out
}

func (p *parser) fragment() jast.NodeID {
	start := p.tok().Start
	name := p.simpleName()
	dims := p.dimensions()
	var init jast.NodeID
	if p.accept(scanner.Assign) {
		init = p.variableInitializer()
	}
	n := p.finish(jast.KindVariableDeclarationFragment, start)
	p.tree.SetChild(n, jast.SlotName, name)
	p.tree.SetInt(n, jast.SlotExtraDimensions, dims)
	p.tree.SetChild(n, jast.SlotInitializer, init)
	return n
}

func (p *parser) variableInitializer() jast.NodeID {
	if p.at(scanner.LBrace) {
		return p.arrayInitializer()
	}
	return p.expression()
}

func (p *parser) arrayInitializer() jast.NodeID {
	start := p.expect(scanner.LBrace).Start
	var values []jast.NodeID
	for !p.at(scanner.RBrace) {
		values = append(values, p.variableInitializer())
		if !p.accept(scanner.Comma) {
			break
		}
	}
	p.expect(scanner.RBrace)
	n := p.finish(jast.KindArrayInitializer, start)
	p.tree.SetList(n, jast.SlotExpressions, values)
	return n
}
