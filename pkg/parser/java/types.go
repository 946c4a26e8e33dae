package java

import (
	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/scanner"
)

// typ parses a primitive or reference type with optional dimensions.
func (p *parser) typ() jast.NodeID {
	start := p.tok().Start
	var t jast.NodeID
	if p.kind().IsPrimitive() {
		t = p.primitive(p.next())
	} else {
		t = p.classType()
	}
	return p.arrayDims(start, t)
}

func (p *parser) primitive(tok scanner.Token) jast.NodeID {
	n := p.span(jast.KindPrimitiveType, tok.Start, tok.End)
	p.tree.SetStr(n, jast.SlotPrimitiveCode, p.text(tok))
	return n
}

// arrayDims wraps t in one ArrayType per "[]" that follows.
func (p *parser) arrayDims(start int, t jast.NodeID) jast.NodeID {
	for p.at(scanner.LBracket) && p.peek(1).Kind == scanner.RBracket {
		p.next()
		p.next()
		a := p.finish(jast.KindArrayType, start)
		p.tree.SetChild(a, jast.SlotComponentType, t)
		t = a
	}
	return t
}

// classType parses a class or interface type such as a.b.C<X>.D<Y>.
func (p *parser) classType() jast.NodeID {
	start := p.tok().Start
	name := p.qualifiedName()
	t := p.span(jast.KindSimpleType, start, p.tree.End(name))
	p.tree.SetChild(t, jast.SlotName, name)
	if !p.at(scanner.Lt) {
		return t
	}
	t = p.parameterized(start, t)
	for p.at(scanner.Dot) && p.peek(1).Kind == scanner.Ident {
		p.next()
		n := p.simpleName()
		q := p.finish(jast.KindQualifiedType, start)
		p.tree.SetChild(q, jast.SlotQualifier, t)
		p.tree.SetChild(q, jast.SlotName, n)
		t = q
		if p.at(scanner.Lt) {
			t = p.parameterized(start, t)
		}
	}
	return t
}

func (p *parser) parameterized(start int, t jast.NodeID) jast.NodeID {
	args := p.typeArguments()
	n := p.finish(jast.KindParameterizedType, start)
	p.tree.SetChild(n, jast.SlotType, t)
	p.tree.SetList(n, jast.SlotTypeArguments, args)
	return n
}

// typeArguments parses "<A, ? extends B>". The diamond "<>" yields no
// arguments.
func (p *parser) typeArguments() []jast.NodeID {
	p.expect(scanner.Lt)
	var args []jast.NodeID
	for !p.at(scanner.Gt) {
		args = append(args, p.typeArgument())
		if !p.accept(scanner.Comma) {
			break
		}
	}
	p.expect(scanner.Gt)
	return args
}

func (p *parser) typeArgument() jast.NodeID {
	if !p.at(scanner.Question) {
		return p.typ()
	}
	start := p.next().Start
	var bound jast.NodeID
	upper := 0
	switch {
	case p.accept(scanner.Extends):
		upper = 1
		bound = p.typ()
	case p.accept(scanner.Super):
		bound = p.typ()
	}
	n := p.finish(jast.KindWildcardType, start)
	p.tree.SetChild(n, jast.SlotBound, bound)
	p.tree.SetInt(n, jast.SlotUpperBound, upper)
	return n
}

// typeParameters parses "<T extends A & B, U>" if present.
func (p *parser) typeParameters() []jast.NodeID {
	if !p.accept(scanner.Lt) {
		return nil
	}
	var params []jast.NodeID
	for {
		start := p.tok().Start
		name := p.simpleName()
		var bounds []jast.NodeID
		if p.accept(scanner.Extends) {
			bounds = append(bounds, p.typ())
			for p.accept(scanner.And) {
				bounds = append(bounds, p.typ())
			}
		}
		n := p.finish(jast.KindTypeParameter, start)
		p.tree.SetChild(n, jast.SlotName, name)
		p.tree.SetList(n, jast.SlotTypeBounds, bounds)
		params = append(params, n)
		if !p.accept(scanner.Comma) {
			break
		}
	}
	p.expect(scanner.Gt)
	return params
}

// Token lookahead. These helpers inspect tokens without consuming them.

func (p *parser) kindAt(j int) scanner.TokenKind {
	if j >= len(p.toks) {
		return scanner.EOF
	}
	return p.toks[j].Kind
}

// skipTypeAt returns the token index after a type starting at token j.
func (p *parser) skipTypeAt(j int) (int, bool) {
	switch {
	case p.kindAt(j).IsPrimitive():
		j++
	case p.kindAt(j) == scanner.Ident:
		j++
		for {
			if p.kindAt(j) == scanner.Lt {
				next, ok := p.skipTypeArgsAt(j)
				if !ok {
					return j, false
				}
				j = next
			}
			if p.kindAt(j) == scanner.Dot && p.kindAt(j+1) == scanner.Ident {
				j += 2
				continue
			}
			break
		}
	default:
		return j, false
	}
	for p.kindAt(j) == scanner.LBracket && p.kindAt(j+1) == scanner.RBracket {
		j += 2
	}
	return j, true
}

func (p *parser) skipTypeArgsAt(j int) (int, bool) {
	depth := 0
	for ; j < len(p.toks); j++ {
		k := p.toks[j].Kind
		switch {
		case k == scanner.Lt:
			depth++
		case k == scanner.Gt:
			depth--
			if depth == 0 {
				return j + 1, true
			}
		case k == scanner.Ident, k == scanner.Dot, k == scanner.Comma, k == scanner.Question,
			k == scanner.Extends, k == scanner.Super, k == scanner.And,
			k == scanner.LBracket, k == scanner.RBracket, k.IsPrimitive():
		default:
			return j, false
		}
	}
	return j, false
}

// localDeclAhead reports whether a local variable declaration starts at
// the current token.
func (p *parser) localDeclAhead() bool {
	j, ok := p.skipTypeAt(p.i)
	if !ok || p.kindAt(j) != scanner.Ident {
		return false
	}
	switch p.kindAt(j + 1) {
	case scanner.Assign, scanner.Semicolon, scanner.Comma, scanner.LBracket, scanner.Colon:
		return true
	default:
		return false
	}
}
