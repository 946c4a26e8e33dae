package format

import "github.com/yaklabco/jrewrite/pkg/jast"

func (p *printer) statement(id jast.NodeID) {
	switch p.kind(id) {
	case jast.KindBlock:
		p.write("{")
		p.level++
		for _, s := range p.list(id, jast.SlotStatements) {
			p.nl()
			p.node(s)
		}
		p.level--
		p.nl()
		p.write("}")
	case jast.KindExpressionStatement:
		p.node(p.child(id, jast.SlotExpression))
		p.write(";")
	case jast.KindVariableDeclarationStatement:
		p.variables(id)
		p.write(";")
	case jast.KindReturnStatement:
		p.write("return")
		p.opt(id, jast.SlotExpression, " ")
		p.write(";")
	case jast.KindIfStatement:
		p.ifStatement(id)
	case jast.KindWhileStatement:
		p.write("while (")
		p.node(p.child(id, jast.SlotExpression))
		p.write(")")
		p.body(p.child(id, jast.SlotBody))
	case jast.KindDoStatement:
		body := p.child(id, jast.SlotBody)
		p.write("do")
		p.body(body)
		if p.kind(body) == jast.KindBlock {
			p.write(" ")
		} else {
			p.nl()
		}
		p.write("while (")
		p.node(p.child(id, jast.SlotExpression))
		p.write(");")
	case jast.KindForStatement:
		p.write("for (")
		p.join(p.list(id, jast.SlotInitializers), ", ")
		p.write(";")
		p.opt(id, jast.SlotExpression, " ")
		p.write(";")
		if updaters := p.list(id, jast.SlotUpdaters); len(updaters) > 0 {
			p.write(" ")
			p.join(updaters, ", ")
		}
		p.write(")")
		p.body(p.child(id, jast.SlotBody))
	case jast.KindEnhancedForStatement:
		p.write("for (")
		p.node(p.child(id, jast.SlotParameter))
		p.write(" : ")
		p.node(p.child(id, jast.SlotExpression))
		p.write(")")
		p.body(p.child(id, jast.SlotBody))
	case jast.KindThrowStatement:
		p.write("throw ")
		p.node(p.child(id, jast.SlotExpression))
		p.write(";")
	case jast.KindTryStatement:
		p.write("try ")
		if resources := p.list(id, jast.SlotResources); len(resources) > 0 {
			p.write("(")
			p.join(resources, "; ")
			p.write(") ")
		}
		p.node(p.child(id, jast.SlotBody))
		for _, c := range p.list(id, jast.SlotCatchClauses) {
			p.write(" ")
			p.node(c)
		}
		p.opt(id, jast.SlotFinally, " finally ")
	case jast.KindCatchClause:
		p.write("catch (")
		p.node(p.child(id, jast.SlotException))
		p.write(") ")
		p.node(p.child(id, jast.SlotBody))
	case jast.KindBreakStatement:
		p.write("break")
		p.opt(id, jast.SlotLabel, " ")
		p.write(";")
	case jast.KindContinueStatement:
		p.write("continue")
		p.opt(id, jast.SlotLabel, " ")
		p.write(";")
	case jast.KindLabeledStatement:
		p.node(p.child(id, jast.SlotLabel))
		p.write(": ")
		p.node(p.child(id, jast.SlotBody))
	case jast.KindSwitchStatement:
		p.switchStatement(id)
	case jast.KindSwitchCase:
		if e := p.child(id, jast.SlotExpression); e != jast.NoNode {
			p.write("case ")
			p.node(e)
			p.write(":")
		} else {
			p.write("default:")
		}
	case jast.KindSynchronizedStatement:
		p.write("synchronized (")
		p.node(p.child(id, jast.SlotExpression))
		p.write(") ")
		p.node(p.child(id, jast.SlotBody))
	case jast.KindAssertStatement:
		p.write("assert ")
		p.node(p.child(id, jast.SlotExpression))
		p.opt(id, jast.SlotMessage, " : ")
		p.write(";")
	case jast.KindEmptyStatement:
		p.write(";")
	case jast.KindTypeDeclarationStatement:
		p.node(p.child(id, jast.SlotDeclaration))
	case jast.KindConstructorInvocation:
		p.typeArgs(p.list(id, jast.SlotTypeArguments))
		p.write("this")
		p.arguments(id)
		p.write(";")
	case jast.KindSuperConstructorInvocation:
		if e := p.child(id, jast.SlotExpression); e != jast.NoNode {
			p.node(e)
			p.write(".")
		}
		p.typeArgs(p.list(id, jast.SlotTypeArguments))
		p.write("super")
		p.arguments(id)
		p.write(";")
	default:
		p.expression(id)
	}
}

// body writes a statement that follows a header such as "while (x)".
// Blocks stay on the header line, other statements go on the next line
// one level deeper.
func (p *printer) body(stmt jast.NodeID) {
	if p.kind(stmt) == jast.KindBlock {
		p.write(" ")
		p.node(stmt)
		return
	}
	p.level++
	p.nl()
	p.node(stmt)
	p.level--
}

func (p *printer) ifStatement(id jast.NodeID) {
	p.write("if (")
	p.node(p.child(id, jast.SlotExpression))
	p.write(")")
	then := p.child(id, jast.SlotThenStatement)
	p.body(then)
	els := p.child(id, jast.SlotElseStatement)
	if els == jast.NoNode {
		return
	}
	if p.kind(then) == jast.KindBlock {
		p.write(" ")
	} else {
		p.nl()
	}
	p.write("else")
	if p.kind(els) == jast.KindIfStatement {
		p.write(" ")
		p.node(els)
		return
	}
	p.body(els)
}

func (p *printer) switchStatement(id jast.NodeID) {
	p.write("switch (")
	p.node(p.child(id, jast.SlotExpression))
	p.write(") {")
	p.level++
	for _, s := range p.list(id, jast.SlotStatements) {
		if p.kind(s) == jast.KindSwitchCase {
			p.nl()
			p.node(s)
			continue
		}
		p.level++
		p.nl()
		p.node(s)
		p.level--
	}
	p.level--
	p.nl()
	p.write("}")
}

// variables writes the shared part of variable declaration statements
// and expressions.
func (p *printer) variables(id jast.NodeID) {
	p.annotations(id, false)
	p.modifiers(id)
	p.node(p.child(id, jast.SlotType))
	p.write(" ")
	p.join(p.list(id, jast.SlotFragments), ", ")
}

func (p *printer) arguments(id jast.NodeID) {
	p.write("(")
	p.join(p.list(id, jast.SlotArguments), ", ")
	p.write(")")
}

func (p *printer) expression(id jast.NodeID) {
	switch p.kind(id) {
	case jast.KindSimpleName:
		p.write(p.str(id, jast.SlotIdentifier))
	case jast.KindQualifiedName, jast.KindQualifiedType:
		p.node(p.child(id, jast.SlotQualifier))
		p.write(".")
		p.node(p.child(id, jast.SlotName))
	case jast.KindNumberLiteral, jast.KindStringLiteral, jast.KindCharacterLiteral:
		p.write(p.str(id, jast.SlotToken))
	case jast.KindBooleanLiteral:
		if p.num(id, jast.SlotBooleanValue) != 0 {
			p.write("true")
		} else {
			p.write("false")
		}
	case jast.KindNullLiteral:
		p.write("null")
	case jast.KindInfixExpression:
		op := " " + p.str(id, jast.SlotOperator) + " "
		p.node(p.child(id, jast.SlotLeftOperand))
		p.write(op)
		p.node(p.child(id, jast.SlotRightOperand))
		for _, e := range p.list(id, jast.SlotExtendedOperands) {
			p.write(op)
			p.node(e)
		}
	case jast.KindPrefixExpression:
		p.write(p.str(id, jast.SlotOperator))
		p.node(p.child(id, jast.SlotOperand))
	case jast.KindPostfixExpression:
		p.node(p.child(id, jast.SlotOperand))
		p.write(p.str(id, jast.SlotOperator))
	case jast.KindAssignment:
		p.node(p.child(id, jast.SlotLeftHandSide))
		p.write(" " + p.str(id, jast.SlotOperator) + " ")
		p.node(p.child(id, jast.SlotRightHandSide))
	case jast.KindMethodInvocation:
		if e := p.child(id, jast.SlotExpression); e != jast.NoNode {
			p.node(e)
			p.write(".")
		}
		p.typeArgs(p.list(id, jast.SlotTypeArguments))
		p.node(p.child(id, jast.SlotName))
		p.arguments(id)
	case jast.KindSuperMethodInvocation:
		p.superPrefix(id)
		p.typeArgs(p.list(id, jast.SlotTypeArguments))
		p.node(p.child(id, jast.SlotName))
		p.arguments(id)
	case jast.KindFieldAccess:
		p.node(p.child(id, jast.SlotExpression))
		p.write(".")
		p.node(p.child(id, jast.SlotName))
	case jast.KindSuperFieldAccess:
		p.superPrefix(id)
		p.node(p.child(id, jast.SlotName))
	case jast.KindThisExpression:
		if q := p.child(id, jast.SlotQualifier); q != jast.NoNode {
			p.node(q)
			p.write(".")
		}
		p.write("this")
	case jast.KindClassInstanceCreation:
		if e := p.child(id, jast.SlotExpression); e != jast.NoNode {
			p.node(e)
			p.write(".")
		}
		p.write("new ")
		p.typeArgs(p.list(id, jast.SlotTypeArguments))
		p.node(p.child(id, jast.SlotType))
		p.arguments(id)
		p.opt(id, jast.SlotAnonymousClass, " ")
	case jast.KindArrayAccess:
		p.node(p.child(id, jast.SlotArray))
		p.write("[")
		p.node(p.child(id, jast.SlotIndex))
		p.write("]")
	case jast.KindArrayCreation:
		p.write("new ")
		p.node(p.child(id, jast.SlotElementType))
		for _, d := range p.list(id, jast.SlotDimensions) {
			p.write("[")
			p.node(d)
			p.write("]")
		}
		p.dims(p.num(id, jast.SlotExtraDimensions))
		p.opt(id, jast.SlotInitializer, " ")
	case jast.KindArrayInitializer:
		p.write("{")
		p.join(p.list(id, jast.SlotExpressions), ", ")
		p.write("}")
	case jast.KindCastExpression:
		p.write("(")
		p.node(p.child(id, jast.SlotType))
		p.write(") ")
		p.node(p.child(id, jast.SlotExpression))
	case jast.KindConditionalExpression:
		p.node(p.child(id, jast.SlotExpression))
		p.write(" ? ")
		p.node(p.child(id, jast.SlotThenExpression))
		p.write(" : ")
		p.node(p.child(id, jast.SlotElseExpression))
	case jast.KindInstanceofExpression:
		p.node(p.child(id, jast.SlotLeftOperand))
		p.write(" instanceof ")
		p.node(p.child(id, jast.SlotRightOperand))
	case jast.KindParenthesizedExpression:
		p.write("(")
		p.node(p.child(id, jast.SlotExpression))
		p.write(")")
	case jast.KindTypeLiteral:
		p.node(p.child(id, jast.SlotType))
		p.write(".class")
	case jast.KindVariableDeclarationExpression:
		p.variables(id)
	default:
		p.typeNode(id)
	}
}

func (p *printer) superPrefix(id jast.NodeID) {
	if q := p.child(id, jast.SlotQualifier); q != jast.NoNode {
		p.node(q)
		p.write(".")
	}
	p.write("super.")
}

func (p *printer) typeNode(id jast.NodeID) {
	switch p.kind(id) {
	case jast.KindPrimitiveType:
		p.write(p.str(id, jast.SlotPrimitiveCode))
	case jast.KindSimpleType:
		p.node(p.child(id, jast.SlotName))
	case jast.KindArrayType:
		p.node(p.child(id, jast.SlotComponentType))
		p.write("[]")
	case jast.KindParameterizedType:
		p.node(p.child(id, jast.SlotType))
		p.write("<")
		p.join(p.list(id, jast.SlotTypeArguments), ", ")
		p.write(">")
	case jast.KindWildcardType:
		p.write("?")
		if b := p.child(id, jast.SlotBound); b != jast.NoNode {
			if p.num(id, jast.SlotUpperBound) != 0 {
				p.write(" extends ")
			} else {
				p.write(" super ")
			}
			p.node(b)
		}
	case jast.KindUnionType:
		p.join(p.list(id, jast.SlotAlternatives), " | ")
	case jast.KindTypeParameter:
		p.node(p.child(id, jast.SlotName))
		if bounds := p.list(id, jast.SlotTypeBounds); len(bounds) > 0 {
			p.write(" extends ")
			p.join(bounds, " & ")
		}
	}
}
