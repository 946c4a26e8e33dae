package java

import (
	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/scanner"
)

func (p *parser) block() jast.NodeID {
	start := p.expect(scanner.LBrace).Start
	var stmts []jast.NodeID
	for !p.at(scanner.RBrace) {
		if p.at(scanner.EOF) {
			p.errorf("unterminated block")
		}
		stmts = append(stmts, p.statement())
	}
	p.expect(scanner.RBrace)
	n := p.finish(jast.KindBlock, start)
	p.tree.SetList(n, jast.SlotStatements, stmts)
	return n
}

func (p *parser) statement() jast.NodeID {
	start := p.tok().Start
	switch p.kind() {
	case scanner.LBrace:
		return p.block()
	case scanner.Semicolon:
		p.next()
		return p.finish(jast.KindEmptyStatement, start)
	case scanner.If:
		return p.ifStatement()
	case scanner.While:
		p.next()
		cond := p.parenExpression()
		body := p.statement()
		n := p.finish(jast.KindWhileStatement, start)
		p.tree.SetChild(n, jast.SlotExpression, cond)
		p.tree.SetChild(n, jast.SlotBody, body)
		return n
	case scanner.Do:
		p.next()
		body := p.statement()
		p.expect(scanner.While)
		cond := p.parenExpression()
		p.expect(scanner.Semicolon)
		n := p.finish(jast.KindDoStatement, start)
		p.tree.SetChild(n, jast.SlotBody, body)
		p.tree.SetChild(n, jast.SlotExpression, cond)
		return n
	case scanner.For:
		return p.forStatement()
	case scanner.Try:
		return p.tryStatement()
	case scanner.Switch:
		return p.switchStatement()
	case scanner.Return:
		p.next()
		var value jast.NodeID
		if !p.at(scanner.Semicolon) {
			value = p.expression()
		}
		p.expect(scanner.Semicolon)
		n := p.finish(jast.KindReturnStatement, start)
		p.tree.SetChild(n, jast.SlotExpression, value)
		return n
	case scanner.Break, scanner.Continue:
		kind := jast.KindBreakStatement
		if p.next().Kind == scanner.Continue {
			kind = jast.KindContinueStatement
		}
		var label jast.NodeID
		if p.at(scanner.Ident) {
			label = p.simpleName()
		}
		p.expect(scanner.Semicolon)
		n := p.finish(kind, start)
		p.tree.SetChild(n, jast.SlotLabel, label)
		return n
	case scanner.Throw:
		p.next()
		value := p.expression()
		p.expect(scanner.Semicolon)
		n := p.finish(jast.KindThrowStatement, start)
		p.tree.SetChild(n, jast.SlotExpression, value)
		return n
	case scanner.Assert:
		p.next()
		cond := p.expression()
		var msg jast.NodeID
		if p.accept(scanner.Colon) {
			msg = p.expression()
		}
		p.expect(scanner.Semicolon)
		n := p.finish(jast.KindAssertStatement, start)
		p.tree.SetChild(n, jast.SlotExpression, cond)
		p.tree.SetChild(n, jast.SlotMessage, msg)
		return n
	case scanner.Synchronized:
		if p.peek(1).Kind == scanner.LParen {
			p.next()
			lock := p.parenExpression()
			body := p.block()
			n := p.finish(jast.KindSynchronizedStatement, start)
			p.tree.SetChild(n, jast.SlotExpression, lock)
			p.tree.SetChild(n, jast.SlotBody, body)
			return n
		}
	case scanner.Ident:
		if p.peek(1).Kind == scanner.Colon {
			label := p.simpleName()
			p.next()
			body := p.statement()
			n := p.finish(jast.KindLabeledStatement, start)
			p.tree.SetChild(n, jast.SlotLabel, label)
			p.tree.SetChild(n, jast.SlotBody, body)
			return n
		}
	case scanner.This, scanner.Super, scanner.Lt:
		if n, ok := p.constructorInvocation(); ok {
			return n
		}
	}

	if p.at(scanner.Class, scanner.Interface, scanner.Enum, scanner.At, scanner.Final, scanner.Abstract,
		scanner.Static, scanner.Strictfp) {
		h := p.declHeader()
		if p.at(scanner.Class, scanner.Interface, scanner.Enum, scanner.At) {
			decl := p.typeDeclarationAfter(h)
			n := p.finish(jast.KindTypeDeclarationStatement, h.start)
			p.tree.SetChild(n, jast.SlotDeclaration, decl)
			return n
		}
		return p.localVariable(h.start, h.annotations, h.modifiers)
	}
	if p.localDeclAhead() {
		return p.localVariable(start, nil, 0)
	}

	expr := p.expression()
	if p.at(scanner.Dot) && p.peek(1).Kind == scanner.Super {
		return p.superConstructorInvocation(start, expr)
	}
	p.expect(scanner.Semicolon)
	n := p.finish(jast.KindExpressionStatement, start)
	p.tree.SetChild(n, jast.SlotExpression, expr)
	return n
}

func (p *parser) parenExpression() jast.NodeID {
	p.expect(scanner.LParen)
	e := p.expression()
	p.expect(scanner.RParen)
	return e
}

func (p *parser) localVariable(start int, annotations []jast.NodeID, mods int) jast.NodeID {
	typ := p.typ()
	fragments := p.fragments()
	p.expect(scanner.Semicolon)
	n := p.finish(jast.KindVariableDeclarationStatement, start)
	p.tree.SetList(n, jast.SlotAnnotations, annotations)
	p.tree.SetInt(n, jast.SlotModifiers, mods)
	p.tree.SetChild(n, jast.SlotType, typ)
	p.tree.SetList(n, jast.SlotFragments, fragments)
	return n
}

// constructorInvocation parses "this(...)", "super(...)" and their forms
// with type arguments.
func (p *parser) constructorInvocation() (jast.NodeID, bool) {
	j := p.i
	if p.kindAt(j) == scanner.Lt {
		next, ok := p.skipTypeArgsAt(j)
		if !ok {
			return jast.NoNode, false
		}
		j = next
	}
	target := p.kindAt(j)
	if (target != scanner.This && target != scanner.Super) || p.kindAt(j+1) != scanner.LParen {
		return jast.NoNode, false
	}

	start := p.tok().Start
	var typeArgs []jast.NodeID
	if p.at(scanner.Lt) {
		typeArgs = p.typeArguments()
	}
	p.next()
	if target == scanner.Super {
		return p.superCall(start, jast.NoNode, typeArgs), true
	}
	args := p.arguments()
	p.expect(scanner.Semicolon)
	n := p.finish(jast.KindConstructorInvocation, start)
	p.tree.SetList(n, jast.SlotTypeArguments, typeArgs)
	p.tree.SetList(n, jast.SlotArguments, args)
	return n, true
}

// superConstructorInvocation parses ".super(...);" after an outer
// instance expression.
func (p *parser) superConstructorInvocation(start int, outer jast.NodeID) jast.NodeID {
	p.expect(scanner.Dot)
	p.expect(scanner.Super)
	return p.superCall(start, outer, nil)
}

func (p *parser) superCall(start int, outer jast.NodeID, typeArgs []jast.NodeID) jast.NodeID {
	args := p.arguments()
	p.expect(scanner.Semicolon)
	n := p.finish(jast.KindSuperConstructorInvocation, start)
	p.tree.SetChild(n, jast.SlotExpression, outer)
	p.tree.SetList(n, jast.SlotTypeArguments, typeArgs)
	p.tree.SetList(n, jast.SlotArguments, args)
	return n
}

func (p *parser) ifStatement() jast.NodeID {
	start := p.expect(scanner.If).Start
	cond := p.parenExpression()
	then := p.statement()
	var els jast.NodeID
	if p.accept(scanner.Else) {
		els = p.statement()
	}
	n := p.finish(jast.KindIfStatement, start)
	p.tree.SetChild(n, jast.SlotExpression, cond)
	p.tree.SetChild(n, jast.SlotThenStatement, then)
	p.tree.SetChild(n, jast.SlotElseStatement, els)
	return n
}

func (p *parser) forStatement() jast.NodeID {
	start := p.expect(scanner.For).Start
	p.expect(scanner.LParen)

	var inits []jast.NodeID
	if !p.at(scanner.Semicolon) {
		if p.at(scanner.Final, scanner.At) || p.localDeclAhead() {
			declStart := p.tok().Start
			annotations, mods := p.modifiers()
			typ := p.typ()
			if p.at(scanner.Ident) && p.peek(1).Kind == scanner.Colon {
				name := p.simpleName()
				param := p.finish(jast.KindSingleVariableDeclaration, declStart)
				p.tree.SetList(param, jast.SlotAnnotations, annotations)
				p.tree.SetInt(param, jast.SlotModifiers, mods)
				p.tree.SetChild(param, jast.SlotType, typ)
				p.tree.SetChild(param, jast.SlotName, name)
				return p.enhancedFor(start, param)
			}
			fragments := p.fragments()
			decl := p.finish(jast.KindVariableDeclarationExpression, declStart)
			p.tree.SetList(decl, jast.SlotAnnotations, annotations)
			p.tree.SetInt(decl, jast.SlotModifiers, mods)
			p.tree.SetChild(decl, jast.SlotType, typ)
			p.tree.SetList(decl, jast.SlotFragments, fragments)
			inits = []jast.NodeID{decl}
		} else {
			inits = p.expressionList()
		}
	}
	p.expect(scanner.Semicolon)
	var cond jast.NodeID
	if !p.at(scanner.Semicolon) {
		cond = p.expression()
	}
	p.expect(scanner.Semicolon)
	var updaters []jast.NodeID
	if !p.at(scanner.RParen) {
		updaters = p.expressionList()
	}
	p.expect(scanner.RParen)
	body := p.statement()

	n := p.finish(jast.KindForStatement, start)
	p.tree.SetList(n, jast.SlotInitializers, inits)
	p.tree.SetChild(n, jast.SlotExpression, cond)
	p.tree.SetList(n, jast.SlotUpdaters, updaters)
	p.tree.SetChild(n, jast.SlotBody, body)
	return n
}

func (p *parser) enhancedFor(start int, param jast.NodeID) jast.NodeID {
	p.expect(scanner.Colon)
	iterable := p.expression()
	p.expect(scanner.RParen)
	body := p.statement()
	n := p.finish(jast.KindEnhancedForStatement, start)
	p.tree.SetChild(n, jast.SlotParameter, param)
	p.tree.SetChild(n, jast.SlotExpression, iterable)
	p.tree.SetChild(n, jast.SlotBody, body)
	return n
}

func (p *parser) expressionList() []jast.NodeID {
	out := []jast.NodeID{p.expression()}
	for p.accept(scanner.Comma) {
		out = append(out, p.expression())
	}
	return out
}

func (p *parser) tryStatement() jast.NodeID {
	start := p.expect(scanner.Try).Start
	var resources []jast.NodeID
	if p.accept(scanner.LParen) {
		for !p.at(scanner.RParen) {
			resources = append(resources, p.resource())
			if !p.accept(scanner.Semicolon) {
				break
			}
		}
		p.expect(scanner.RParen)
	}
	body := p.block()

	var catches []jast.NodeID
	for p.at(scanner.Catch) {
		catchStart := p.next().Start
		p.expect(scanner.LParen)
		param := p.parameter(true)
		p.expect(scanner.RParen)
		catchBody := p.block()
		c := p.finish(jast.KindCatchClause, catchStart)
		p.tree.SetChild(c, jast.SlotException, param)
		p.tree.SetChild(c, jast.SlotBody, catchBody)
		catches = append(catches, c)
	}
	var finally jast.NodeID
	if p.accept(scanner.Finally) {
		finally = p.block()
	}
	if len(resources) == 0 && len(catches) == 0 && finally == jast.NoNode {
		p.errorf("try without catch or finally")
	}

	n := p.finish(jast.KindTryStatement, start)
	p.tree.SetList(n, jast.SlotResources, resources)
	p.tree.SetChild(n, jast.SlotBody, body)
	p.tree.SetList(n, jast.SlotCatchClauses, catches)
	p.tree.SetChild(n, jast.SlotFinally, finally)
	return n
}

func (p *parser) resource() jast.NodeID {
	start := p.tok().Start
	annotations, mods := p.modifiers()
	typ := p.typ()
	fragment := p.fragment()
	n := p.finish(jast.KindVariableDeclarationExpression, start)
	p.tree.SetList(n, jast.SlotAnnotations, annotations)
	p.tree.SetInt(n, jast.SlotModifiers, mods)
	p.tree.SetChild(n, jast.SlotType, typ)
	p.tree.SetList(n, jast.SlotFragments, []jast.NodeID{fragment})
	return n
}

// switchStatement parses a switch. Case labels and statements form one
// flat list.
func (p *parser) switchStatement() jast.NodeID {
	start := p.expect(scanner.Switch).Start
	subject := p.parenExpression()
	p.expect(scanner.LBrace)
	var stmts []jast.NodeID
	for !p.at(scanner.RBrace) {
		switch {
		case p.at(scanner.EOF):
			p.errorf("unterminated switch")
		case p.at(scanner.Case):
			caseStart := p.next().Start
			value := p.expression()
			p.expect(scanner.Colon)
			c := p.finish(jast.KindSwitchCase, caseStart)
			p.tree.SetChild(c, jast.SlotExpression, value)
			stmts = append(stmts, c)
		case p.at(scanner.Default):
			caseStart := p.next().Start
			p.expect(scanner.Colon)
			stmts = append(stmts, p.finish(jast.KindSwitchCase, caseStart))
		default:
			stmts = append(stmts, p.statement())
		}
	}
	p.expect(scanner.RBrace)
	n := p.finish(jast.KindSwitchStatement, start)
	p.tree.SetChild(n, jast.SlotExpression, subject)
	p.tree.SetList(n, jast.SlotStatements, stmts)
	return n
}
