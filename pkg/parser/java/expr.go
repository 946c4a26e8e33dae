package java

import (
	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/scanner"
)

func (p *parser) expression() jast.NodeID {
	start := p.tok().Start
	lhs := p.conditional()
	op, n := p.assignmentOperator()
	if n == 0 {
		return lhs
	}
	p.i += n
	rhs := p.expression()
	a := p.finish(jast.KindAssignment, start)
	p.tree.SetChild(a, jast.SlotLeftHandSide, lhs)
	p.tree.SetStr(a, jast.SlotOperator, op)
	p.tree.SetChild(a, jast.SlotRightHandSide, rhs)
	return a
}

// adjacent reports whether the n tokens from the current one touch.
func (p *parser) adjacent(n int) bool {
	for k := 1; k < n; k++ {
		if p.peek(k-1).End != p.peek(k).Start {
			return false
		}
	}
	return true
}

// assignmentOperator returns the operator at the current token and the
// number of tokens it spans, or 0. ">>=" and ">>>=" scan as several tokens.
func (p *parser) assignmentOperator() (string, int) {
	switch p.kind() {
	case scanner.Assign, scanner.PlusAssign, scanner.MinusAssign, scanner.StarAssign,
		scanner.SlashAssign, scanner.AndAssign, scanner.OrAssign, scanner.CaretAssign,
		scanner.PercentAssign, scanner.ShlAssign:
		return p.text(p.tok()), 1
	case scanner.Gt:
		if p.peek(1).Kind == scanner.Ge && p.adjacent(2) {
			return ">>=", 2
		}
		if p.peek(1).Kind == scanner.Gt && p.peek(2).Kind == scanner.Ge && p.adjacent(3) {
			return ">>>=", 3
		}
	}
	return "", 0
}

func (p *parser) conditional() jast.NodeID {
	start := p.tok().Start
	cond := p.binary(0)
	if !p.accept(scanner.Question) {
		return cond
	}
	then := p.expression()
	p.expect(scanner.Colon)
	els := p.conditional()
	n := p.finish(jast.KindConditionalExpression, start)
	p.tree.SetChild(n, jast.SlotExpression, cond)
	p.tree.SetChild(n, jast.SlotThenExpression, then)
	p.tree.SetChild(n, jast.SlotElseExpression, els)
	return n
}

const precInstanceof = 6

// binaryOperator returns the infix operator at the current token, its
// precedence and the number of tokens it spans. ok is false if there is
// none.
func (p *parser) binaryOperator() (op string, prec, n int, ok bool) {
	switch p.kind() {
	case scanner.OrOr:
		return "||", 0, 1, true
	case scanner.AndAnd:
		return "&&", 1, 1, true
	case scanner.Or:
		return "|", 2, 1, true
	case scanner.Caret:
		return "^", 3, 1, true
	case scanner.And:
		return "&", 4, 1, true
	case scanner.Eq, scanner.NotEq:
		return p.text(p.tok()), 5, 1, true
	case scanner.Lt, scanner.Le, scanner.Ge:
		return p.text(p.tok()), 6, 1, true
	case scanner.Instanceof:
		return "instanceof", precInstanceof, 1, true
	case scanner.Gt:
		if p.peek(1).Kind == scanner.Gt && p.adjacent(2) {
			if p.peek(2).Kind == scanner.Gt && p.adjacent(3) {
				return ">>>", 7, 3, true
			}
			if p.peek(2).Kind == scanner.Ge && p.adjacent(3) {
				return "", 0, 0, false
			}
			return ">>", 7, 2, true
		}
		if p.peek(1).Kind == scanner.Ge && p.adjacent(2) {
			return "", 0, 0, false
		}
		return ">", 6, 1, true
	case scanner.Shl:
		return "<<", 7, 1, true
	case scanner.Plus, scanner.Minus:
		return p.text(p.tok()), 8, 1, true
	case scanner.Star, scanner.Slash, scanner.Percent:
		return p.text(p.tok()), 9, 1, true
	}
	return "", 0, 0, false
}

// binary parses infix operators of precedence minPrec and above. A chain
// of the same operator becomes one node with extended operands.
func (p *parser) binary(minPrec int) jast.NodeID {
	start := p.tok().Start
	left := p.unary()
	chain := jast.NoNode
	chainOp := ""
	for {
		op, prec, n, ok := p.binaryOperator()
		if !ok || prec < minPrec {
			return left
		}
		p.i += n
		if prec == precInstanceof && op == "instanceof" {
			typ := p.typ()
			e := p.finish(jast.KindInstanceofExpression, start)
			p.tree.SetChild(e, jast.SlotLeftOperand, left)
			p.tree.SetChild(e, jast.SlotRightOperand, typ)
			left, chain = e, jast.NoNode
			continue
		}
		right := p.binary(prec + 1)
		if chain != jast.NoNode && chainOp == op {
			p.tree.Append(chain, jast.SlotExtendedOperands, right)
			p.tree.SetRange(chain, start, p.prevEnd()-start)
			continue
		}
		e := p.finish(jast.KindInfixExpression, start)
		p.tree.SetChild(e, jast.SlotLeftOperand, left)
		p.tree.SetStr(e, jast.SlotOperator, op)
		p.tree.SetChild(e, jast.SlotRightOperand, right)
		left, chain, chainOp = e, e, op
	}
}

func (p *parser) unary() jast.NodeID {
	start := p.tok().Start
	switch p.kind() {
	case scanner.Plus, scanner.Minus, scanner.Not, scanner.Tilde, scanner.Inc, scanner.Dec:
		op := p.text(p.next())
		operand := p.unary()
		n := p.finish(jast.KindPrefixExpression, start)
		p.tree.SetStr(n, jast.SlotOperator, op)
		p.tree.SetChild(n, jast.SlotOperand, operand)
		return n
	case scanner.LParen:
		if p.castAhead() {
			p.next()
			typ := p.typ()
			p.expect(scanner.RParen)
			operand := p.unary()
			n := p.finish(jast.KindCastExpression, start)
			p.tree.SetChild(n, jast.SlotType, typ)
			p.tree.SetChild(n, jast.SlotExpression, operand)
			return n
		}
	}
	e := p.selectors(start, p.primary())
	for p.at(scanner.Inc, scanner.Dec) {
		op := p.text(p.next())
		n := p.finish(jast.KindPostfixExpression, start)
		p.tree.SetChild(n, jast.SlotOperand, e)
		p.tree.SetStr(n, jast.SlotOperator, op)
		e = n
	}
	return e
}

// castAhead reports whether the parenthesis at the current token starts a
// cast. A parenthesized reference type is a cast only if an operand that
// cannot continue a binary expression follows.
func (p *parser) castAhead() bool {
	j := p.i + 1
	primitive := p.kindAt(j).IsPrimitive()
	end, ok := p.skipTypeAt(j)
	if !ok || p.kindAt(end) != scanner.RParen {
		return false
	}
	if primitive {
		return true
	}
	switch k := p.kindAt(end + 1); {
	case k == scanner.Ident, k == scanner.NumberLiteral, k == scanner.StringLiteral, k == scanner.CharLiteral,
		k == scanner.LParen, k == scanner.This, k == scanner.Super, k == scanner.New,
		k == scanner.Not, k == scanner.Tilde, k == scanner.True, k == scanner.False, k == scanner.Null,
		k.IsPrimitive():
		return true
	default:
		return false
	}
}

func (p *parser) primary() jast.NodeID {
	t := p.tok()
	start := t.Start
	switch t.Kind {
	case scanner.NumberLiteral, scanner.StringLiteral, scanner.CharLiteral:
		p.next()
		kind := jast.KindNumberLiteral
		switch t.Kind {
		case scanner.StringLiteral:
			kind = jast.KindStringLiteral
		case scanner.CharLiteral:
			kind = jast.KindCharacterLiteral
		}
		n := p.span(kind, t.Start, t.End)
		p.tree.SetStr(n, jast.SlotToken, p.text(t))
		return n
	case scanner.True, scanner.False:
		p.next()
		n := p.span(jast.KindBooleanLiteral, t.Start, t.End)
		if t.Kind == scanner.True {
			p.tree.SetInt(n, jast.SlotBooleanValue, 1)
		}
		return n
	case scanner.Null:
		p.next()
		return p.span(jast.KindNullLiteral, t.Start, t.End)
	case scanner.LParen:
		p.next()
		inner := p.expression()
		p.expect(scanner.RParen)
		n := p.finish(jast.KindParenthesizedExpression, start)
		p.tree.SetChild(n, jast.SlotExpression, inner)
		return n
	case scanner.This:
		p.next()
		return p.finish(jast.KindThisExpression, start)
	case scanner.Super:
		p.next()
		return p.superAccess(start, jast.NoNode)
	case scanner.New:
		return p.creation(start, jast.NoNode)
	case scanner.Ident:
		return p.namePrimary()
	}
	if t.Kind.IsPrimitive() {
		typ := p.arrayDims(start, p.primitive(p.next()))
		return p.typeLiteral(start, typ)
	}
	p.errorf("expected expression, found %s", p.describe(t))
	return jast.NoNode
}

// namePrimary parses an expression that starts with a name: a plain or
// qualified name, a method call, a qualified this or super, or a class
// literal.
func (p *parser) namePrimary() jast.NodeID {
	start := p.tok().Start
	name := p.simpleName()
	if p.at(scanner.LParen) {
		return p.call(start, jast.NoNode, nil, name)
	}
	for {
		switch {
		case p.at(scanner.Dot) && p.peek(1).Kind == scanner.Ident:
			p.next()
			last := p.simpleName()
			if p.at(scanner.LParen) {
				return p.call(start, name, nil, last)
			}
			name = p.qualify(start, name, last)
		case p.at(scanner.Dot) && p.peek(1).Kind == scanner.This:
			p.next()
			p.next()
			n := p.finish(jast.KindThisExpression, start)
			p.tree.SetChild(n, jast.SlotQualifier, name)
			return n
		case p.at(scanner.Dot) && p.peek(1).Kind == scanner.Super && p.peek(2).Kind == scanner.Dot:
			p.next()
			p.next()
			return p.superAccess(start, name)
		case p.at(scanner.Dot) && p.peek(1).Kind == scanner.Class:
			return p.typeLiteral(start, p.nameType(start, name))
		case p.at(scanner.LBracket) && p.peek(1).Kind == scanner.RBracket:
			typ := p.arrayDims(start, p.nameType(start, name))
			return p.typeLiteral(start, typ)
		default:
			return name
		}
	}
}

func (p *parser) nameType(start int, name jast.NodeID) jast.NodeID {
	t := p.span(jast.KindSimpleType, start, p.tree.End(name))
	p.tree.SetChild(t, jast.SlotName, name)
	return t
}

func (p *parser) typeLiteral(start int, typ jast.NodeID) jast.NodeID {
	p.expect(scanner.Dot)
	p.expect(scanner.Class)
	n := p.finish(jast.KindTypeLiteral, start)
	p.tree.SetChild(n, jast.SlotType, typ)
	return n
}

// superAccess parses ".f" or ".m(...)" after "super" or "Q.super".
func (p *parser) superAccess(start int, qualifier jast.NodeID) jast.NodeID {
	p.expect(scanner.Dot)
	var typeArgs []jast.NodeID
	if p.at(scanner.Lt) {
		typeArgs = p.typeArguments()
	}
	name := p.simpleName()
	if typeArgs == nil && !p.at(scanner.LParen) {
		n := p.finish(jast.KindSuperFieldAccess, start)
		p.tree.SetChild(n, jast.SlotQualifier, qualifier)
		p.tree.SetChild(n, jast.SlotName, name)
		return n
	}
	args := p.arguments()
	n := p.finish(jast.KindSuperMethodInvocation, start)
	p.tree.SetChild(n, jast.SlotQualifier, qualifier)
	p.tree.SetList(n, jast.SlotTypeArguments, typeArgs)
	p.tree.SetChild(n, jast.SlotName, name)
	p.tree.SetList(n, jast.SlotArguments, args)
	return n
}

func (p *parser) call(start int, receiver jast.NodeID, typeArgs []jast.NodeID, name jast.NodeID) jast.NodeID {
	args := p.arguments()
	n := p.finish(jast.KindMethodInvocation, start)
	p.tree.SetChild(n, jast.SlotExpression, receiver)
	p.tree.SetList(n, jast.SlotTypeArguments, typeArgs)
	p.tree.SetChild(n, jast.SlotName, name)
	p.tree.SetList(n, jast.SlotArguments, args)
	return n
}

func (p *parser) arguments() []jast.NodeID {
	p.expect(scanner.LParen)
	var args []jast.NodeID
	for !p.at(scanner.RParen) {
		args = append(args, p.expression())
		if !p.accept(scanner.Comma) {
			break
		}
	}
	p.expect(scanner.RParen)
	return args
}

// selectors parses member access, calls and indexing after a primary. It
// stops before ".super(" so the statement parser can take an outer
// constructor call.
func (p *parser) selectors(start int, e jast.NodeID) jast.NodeID {
	for {
		switch {
		case p.at(scanner.Dot) && p.peek(1).Kind == scanner.Ident:
			p.next()
			name := p.simpleName()
			if p.at(scanner.LParen) {
				e = p.call(start, e, nil, name)
				continue
			}
			n := p.finish(jast.KindFieldAccess, start)
			p.tree.SetChild(n, jast.SlotExpression, e)
			p.tree.SetChild(n, jast.SlotName, name)
			e = n
		case p.at(scanner.Dot) && p.peek(1).Kind == scanner.Lt:
			p.next()
			typeArgs := p.typeArguments()
			name := p.simpleName()
			e = p.call(start, e, typeArgs, name)
		case p.at(scanner.Dot) && p.peek(1).Kind == scanner.New:
			p.next()
			e = p.creation(start, e)
		case p.at(scanner.LBracket):
			p.next()
			index := p.expression()
			p.expect(scanner.RBracket)
			n := p.finish(jast.KindArrayAccess, start)
			p.tree.SetChild(n, jast.SlotArray, e)
			p.tree.SetChild(n, jast.SlotIndex, index)
			e = n
		default:
			return e
		}
	}
}

// creation parses "new" with an optional outer instance: a class instance
// creation or an array creation.
func (p *parser) creation(start int, outer jast.NodeID) jast.NodeID {
	p.expect(scanner.New)
	var typeArgs []jast.NodeID
	if p.at(scanner.Lt) {
		typeArgs = p.typeArguments()
	}
	var typ jast.NodeID
	if p.kind().IsPrimitive() {
		typ = p.primitive(p.next())
	} else {
		typ = p.classType()
	}
	if p.at(scanner.LBracket) {
		if outer != jast.NoNode || typeArgs != nil {
			p.errorf("array creation with an outer instance or type arguments")
		}
		return p.arrayCreation(start, typ)
	}
	if p.tree.Kind(typ) == jast.KindPrimitiveType {
		p.errorf("expected array dimensions after %s", p.text(p.toks[p.i-1]))
	}

	args := p.arguments()
	var anon jast.NodeID
	if p.at(scanner.LBrace) {
		anon = p.anonymousClass()
	}
	n := p.finish(jast.KindClassInstanceCreation, start)
	p.tree.SetChild(n, jast.SlotExpression, outer)
	p.tree.SetList(n, jast.SlotTypeArguments, typeArgs)
	p.tree.SetChild(n, jast.SlotType, typ)
	p.tree.SetList(n, jast.SlotArguments, args)
	p.tree.SetChild(n, jast.SlotAnonymousClass, anon)
	return n
}

// arrayCreation parses "[e1][e2][]...{...}" after the element type. Empty
// brackets count as extra dimensions and end the dimension expressions.
func (p *parser) arrayCreation(start int, elem jast.NodeID) jast.NodeID {
	var dims []jast.NodeID
	extra := 0
	for p.at(scanner.LBracket) {
		if p.peek(1).Kind == scanner.RBracket {
			p.next()
			p.next()
			extra++
			continue
		}
		if extra > 0 {
			p.errorf("dimension expression after empty dimension")
		}
		p.next()
		dims = append(dims, p.expression())
		p.expect(scanner.RBracket)
	}
	var init jast.NodeID
	if p.at(scanner.LBrace) {
		init = p.arrayInitializer()
	}
	if len(dims) == 0 && init == jast.NoNode {
		p.errorf("array creation needs dimensions or an initializer")
	}
	n := p.finish(jast.KindArrayCreation, start)
	p.tree.SetChild(n, jast.SlotElementType, elem)
	p.tree.SetList(n, jast.SlotDimensions, dims)
	p.tree.SetInt(n, jast.SlotExtraDimensions, extra)
	p.tree.SetChild(n, jast.SlotInitializer, init)
	return n
}
