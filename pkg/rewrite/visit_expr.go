package rewrite

import (
	"errors"

	"github.com/yaklabco/jrewrite/pkg/events"
	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/scanner"
	"github.com/yaklabco/jrewrite/pkg/textedit"
)

// Kinds made only of required children, such as casts, array access and
// qualified names, fall back to visitChildren. Names and literals have no
// partial edit; a changed token faults there.

func init() {
	handlers[jast.KindInfixExpression] = (*analyzer).visitInfix
	handlers[jast.KindPrefixExpression] = (*analyzer).visitPrefix
	handlers[jast.KindPostfixExpression] = (*analyzer).visitPostfix
	handlers[jast.KindAssignment] = (*analyzer).visitAssignment
	handlers[jast.KindMethodInvocation] = (*analyzer).visitMethodInvocation
	handlers[jast.KindSuperMethodInvocation] = (*analyzer).visitSuperMethodInvocation
	handlers[jast.KindSuperFieldAccess] = (*analyzer).visitSuperFieldAccess
	handlers[jast.KindThisExpression] = (*analyzer).visitThis
	handlers[jast.KindClassInstanceCreation] = (*analyzer).visitClassInstanceCreation
	handlers[jast.KindArrayCreation] = (*analyzer).visitArrayCreation
	handlers[jast.KindArrayInitializer] = (*analyzer).visitArrayInitializer
	handlers[jast.KindPrimitiveType] = (*analyzer).visitPrimitiveType
	handlers[jast.KindParameterizedType] = (*analyzer).visitParameterizedType
	handlers[jast.KindWildcardType] = (*analyzer).visitWildcardType
	handlers[jast.KindUnionType] = (*analyzer).visitUnionType
	handlers[jast.KindTypeParameter] = (*analyzer).visitTypeParameter
}

// visitInfix rewrites "l op r op e1 op e2". A changed operator is written
// before every original operand that survives; the list rewrite uses the
// new operator as separator for the rest.
func (a *analyzer) visitInfix(node jast.NodeID) {
	opChanged := a.isChanged(node, jast.SlotOperator)
	operator := a.store.NewStr(node, jast.SlotOperator)
	group := a.group(node, jast.SlotOperator)

	pos := a.rewriteRequired(node, jast.SlotLeftOperand)
	if opChanged {
		a.replaceOperator(pos, operator, node, jast.SlotOperator)
	}
	pos = a.rewriteRequired(node, jast.SlotRightOperand)

	sep := " " + operator + " "
	a.rewriteNodeList(node, jast.SlotExtendedOperands, pos, sep, sep)
	if !opChanged {
		return
	}

	before := pos
	e := a.event(node, jast.SlotExtendedOperands)
	if e == nil {
		for _, operand := range a.tree.List(node, jast.SlotExtendedOperands) {
			a.tryReplaceOperator(before, operator, group)
			before = a.tree.End(operand)
		}
		return
	}
	for _, child := range e.Children {
		old := child.Original.Node
		if old == jast.NoNode {
			continue
		}
		if child.Kind != events.Replaced {
			a.tryReplaceOperator(before, operator, group)
		}
		before = a.tree.End(old)
	}
}

// tryReplaceOperator replaces the operator after posBefore unless an edit
// of the operand list already covers it.
func (a *analyzer) tryReplaceOperator(posBefore int, operator string, group *textedit.Group) {
	tok, ok := a.lookup.ReadOperator(posBefore)
	if !ok {
		a.miss("operator", posBefore)
		return
	}
	e := textedit.Replace(tok.Start, tok.Len(), operator)
	if err := a.builder.Add(e); err != nil {
		var conflict *textedit.ConflictError
		if errors.As(err, &conflict) {
			return
		}
		a.fail(err)
	}
	if group != nil {
		group.Add(e)
	}
}

func (a *analyzer) visitPrefix(node jast.NodeID) {
	a.rewriteOperator(node, jast.SlotOperator, a.tree.Start(node))
	a.rewriteRequired(node, jast.SlotOperand)
}

func (a *analyzer) visitPostfix(node jast.NodeID) {
	pos := a.rewriteRequired(node, jast.SlotOperand)
	a.rewriteOperator(node, jast.SlotOperator, pos)
}

func (a *analyzer) visitAssignment(node jast.NodeID) {
	pos := a.rewriteRequired(node, jast.SlotLeftHandSide)
	a.rewriteOperator(node, jast.SlotOperator, pos)
	a.rewriteRequired(node, jast.SlotRightHandSide)
}

// rewriteArguments rewrites the "(...)" argument list following pos.
func (a *analyzer) rewriteArguments(node jast.NodeID, pos int) int {
	if !a.isChanged(node, jast.SlotArguments) {
		return a.visitSlot(node, jast.SlotArguments, pos)
	}
	start := a.tokenEnd(scanner.LParen, pos)
	return a.rewriteNodeList(node, jast.SlotArguments, start, "", ", ")
}

func (a *analyzer) visitMethodInvocation(node jast.NodeID) {
	pos := a.rewriteQualifier(node, jast.SlotExpression, a.tree.Start(node))
	pos = a.rewriteTypeParameters(node, jast.SlotTypeArguments, pos, "", false, false)
	pos = a.rewriteRequired(node, jast.SlotName)
	a.rewriteArguments(node, pos)
}

func (a *analyzer) visitSuperMethodInvocation(node jast.NodeID) {
	pos := a.rewriteQualifier(node, jast.SlotQualifier, a.tree.Start(node))
	if a.isChanged(node, jast.SlotTypeArguments) {
		pos = a.tokenEnd(scanner.Dot, pos)
		a.rewriteTypeParameters(node, jast.SlotTypeArguments, pos, "", false, false)
	} else {
		a.visitSlot(node, jast.SlotTypeArguments, pos)
	}
	pos = a.rewriteRequired(node, jast.SlotName)
	a.rewriteArguments(node, pos)
}

func (a *analyzer) visitSuperFieldAccess(node jast.NodeID) {
	a.rewriteQualifier(node, jast.SlotQualifier, a.tree.Start(node))
	a.rewriteRequired(node, jast.SlotName)
}

func (a *analyzer) visitThis(node jast.NodeID) {
	a.rewriteQualifier(node, jast.SlotQualifier, a.tree.Start(node))
}

func (a *analyzer) visitClassInstanceCreation(node jast.NodeID) {
	pos := a.rewriteQualifier(node, jast.SlotExpression, a.tree.Start(node))
	if a.isChanged(node, jast.SlotTypeArguments) {
		pos = a.tokenEnd(scanner.New, pos)
		a.rewriteTypeParameters(node, jast.SlotTypeArguments, pos, " ", true, true)
	} else {
		a.visitSlot(node, jast.SlotTypeArguments, pos)
	}
	pos = a.rewriteRequired(node, jast.SlotType)
	a.rewriteArguments(node, pos)

	var offset int
	if a.changeKind(node, jast.SlotAnonymousClass) == events.Removed {
		end, ok := a.lookup.SkipBalanced(pos)
		if !ok {
			a.miss("arguments", pos)
			end = pos
		}
		offset = end
	} else {
		offset = a.tree.End(node)
	}
	a.rewriteNode(node, jast.SlotAnonymousClass, offset, prefixSpace)
}

// visitArrayCreation rewrites "new T[d1][d2][]{...}". Dimension
// expressions keep their brackets; an inserted one brings its own.
func (a *analyzer) visitArrayCreation(node jast.NodeID) {
	pos := a.rewriteRequired(node, jast.SlotElementType)

	e := a.event(node, jast.SlotDimensions)
	if e == nil {
		for _, dim := range a.tree.List(node, jast.SlotDimensions) {
			pos = a.tokenEnd(scanner.RBracket, a.visit(dim))
		}
	} else {
		for _, child := range e.Children {
			switch child.Kind {
			case events.Inserted:
				a.insert(pos, "[", child.Group)
				a.insertNode(pos, child.New.Node, a.indentAt(pos), true, child.Group)
				a.insert(pos, "]", child.Group)
			case events.Removed:
				old := child.Original.Node
				end := a.tokenEnd(scanner.RBracket, a.tree.ExtendedEnd(old))
				a.removeAndVisit(pos, end-pos, old, child.Group)
				pos = end
			case events.Replaced:
				old := child.Original.Node
				start, length := a.nodeRange(old)
				a.removeAndVisit(start, length, old, child.Group)
				a.insertNode(start, child.New.Node, a.indentAt(start), true, child.Group)
				pos = a.tokenEnd(scanner.RBracket, start+length)
			default:
				pos = a.tokenEnd(scanner.RBracket, a.visit(child.Original.Node))
			}
		}
	}

	pos = a.rewriteExtraDimensions(node, jast.SlotExtraDimensions, pos)
	a.rewriteNode(node, jast.SlotInitializer, pos, prefixSpace)
}

func (a *analyzer) visitArrayInitializer(node jast.NodeID) {
	pos := a.tokenEnd(scanner.LBrace, a.tree.Start(node))
	a.rewriteNodeList(node, jast.SlotExpressions, pos, "", ", ")
}

func (a *analyzer) visitPrimitiveType(node jast.NodeID) {
	if !a.isChanged(node, jast.SlotPrimitiveCode) {
		return
	}
	code := a.store.NewStr(node, jast.SlotPrimitiveCode)
	a.replace(a.tree.Start(node), a.tree.Length(node), code, a.group(node, jast.SlotPrimitiveCode))
}

func (a *analyzer) visitParameterizedType(node jast.NodeID) {
	pos := a.rewriteRequired(node, jast.SlotType)
	if !a.isChanged(node, jast.SlotTypeArguments) {
		a.visitSlot(node, jast.SlotTypeArguments, pos)
		return
	}
	pos = a.tokenEnd(scanner.Lt, pos)
	a.rewriteNodeList(node, jast.SlotTypeArguments, pos, "", ", ")
}

// visitWildcardType rewrites "? extends B" and "? super B". A flipped
// bound kind on a kept bound rewrites the keyword only.
func (a *analyzer) visitWildcardType(node jast.NodeID) {
	pos := a.tokenEnd(scanner.Question, a.tree.Start(node))
	pre := literal(" super ")
	if a.store.NewInt(node, jast.SlotUpperBound) != 0 {
		pre = literal(" extends ")
	}
	if a.isChanged(node, jast.SlotUpperBound) {
		switch a.changeKind(node, jast.SlotBound) {
		case events.Inserted, events.Removed:
		default:
			if bound := a.tree.Child(node, jast.SlotBound); bound != jast.NoNode {
				a.replace(pos, a.tree.Start(bound)-pos, pre(0), a.group(node, jast.SlotUpperBound))
			}
		}
	}
	a.rewriteNode(node, jast.SlotBound, pos, pre)
}

func (a *analyzer) visitUnionType(node jast.NodeID) {
	a.rewriteNodeList(node, jast.SlotAlternatives, a.tree.Start(node), "", " | ")
}

func (a *analyzer) visitTypeParameter(node jast.NodeID) {
	pos := a.rewriteRequired(node, jast.SlotName)
	a.rewriteNodeList(node, jast.SlotTypeBounds, pos, " extends ", " & ")
}
