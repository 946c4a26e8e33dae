package rewrite

import (
	"github.com/yaklabco/jrewrite/pkg/events"
	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/scanner"
)

func init() {
	handlers[jast.KindBlock] = (*analyzer).visitBlock
	handlers[jast.KindVariableDeclarationStatement] = (*analyzer).visitVariableDeclaration
	handlers[jast.KindVariableDeclarationExpression] = (*analyzer).visitVariableDeclaration
	handlers[jast.KindReturnStatement] = (*analyzer).visitReturn
	handlers[jast.KindThrowStatement] = (*analyzer).visitThrow
	handlers[jast.KindIfStatement] = (*analyzer).visitIf
	handlers[jast.KindWhileStatement] = (*analyzer).visitWhile
	handlers[jast.KindDoStatement] = (*analyzer).visitDo
	handlers[jast.KindForStatement] = (*analyzer).visitFor
	handlers[jast.KindEnhancedForStatement] = (*analyzer).visitEnhancedFor
	handlers[jast.KindTryStatement] = (*analyzer).visitTry
	handlers[jast.KindBreakStatement] = (*analyzer).visitJump
	handlers[jast.KindContinueStatement] = (*analyzer).visitJump
	handlers[jast.KindSwitchStatement] = (*analyzer).visitSwitch
	handlers[jast.KindSwitchCase] = (*analyzer).visitSwitchCase
	handlers[jast.KindAssertStatement] = (*analyzer).visitAssert
	handlers[jast.KindConstructorInvocation] = (*analyzer).visitConstructorInvocation
	handlers[jast.KindSuperConstructorInvocation] = (*analyzer).visitSuperConstructorInvocation
}

func (a *analyzer) visitBlock(node jast.NodeID) {
	start := a.tree.Start(node)
	units := a.indentAt(start) + 1
	pos := a.tokenEnd(scanner.LBrace, start)
	a.rewriteBraceList(node, jast.SlotStatements, pos, units, 1, paragraphPolicy(units, 0))
}

func (a *analyzer) visitVariableDeclaration(node jast.NodeID) {
	a.rewriteHeader(node, false)
	pos := a.rewriteRequired(node, jast.SlotType)
	a.ensureSpaceAfterReplace(node, jast.SlotType)
	a.rewriteNodeList(node, jast.SlotFragments, pos, "", ", ")
}

func (a *analyzer) visitReturn(node jast.NodeID) {
	pos := a.tokenEnd(scanner.Return, a.tree.Start(node))
	a.ensureSpaceBeforeReplace(node, jast.SlotExpression, pos)
	a.rewriteNode(node, jast.SlotExpression, pos, prefixSpace)
}

func (a *analyzer) visitThrow(node jast.NodeID) {
	pos := a.tokenEnd(scanner.Throw, a.tree.Start(node))
	a.ensureSpaceBeforeReplace(node, jast.SlotExpression, pos)
	a.rewriteRequired(node, jast.SlotExpression)
}

func (a *analyzer) visitJump(node jast.NodeID) {
	kw := scanner.Break
	if a.tree.Kind(node) == jast.KindContinueStatement {
		kw = scanner.Continue
	}
	pos := a.tokenEnd(kw, a.tree.Start(node))
	a.rewriteNode(node, jast.SlotLabel, pos, prefixSpace)
}

func (a *analyzer) visitIf(node jast.NodeID) {
	pos := a.rewriteRequired(node, jast.SlotExpression)
	units := a.indentAt(a.tree.Start(node))
	elseChange := a.changeKind(node, jast.SlotElseStatement)

	if a.isChanged(node, jast.SlotThenStatement) {
		pos = a.tokenEnd(scanner.RParen, pos)
		endPos := -1
		originalElse := a.tree.Child(node, jast.SlotElseStatement)
		if originalElse != jast.NoNode {
			then := a.tree.Child(node, jast.SlotThenStatement)
			endPos = a.tokenStart(scanner.Else, a.tree.End(then))
		}
		bc := bodyFollowed
		if originalElse == jast.NoNode || elseChange != events.Unchanged {
			bc = bodyLast
		}
		pos = a.rewriteBody(node, jast.SlotThenStatement, pos, endPos, units, bc)
	} else {
		pos = a.visitSlot(node, jast.SlotThenStatement, pos)
	}

	if elseChange == events.Unchanged {
		a.visitSlot(node, jast.SlotElseStatement, pos)
		return
	}
	bc := elseAfterStatement
	if a.tree.Kind(a.store.NewChild(node, jast.SlotThenStatement)) == jast.KindBlock {
		bc = elseAfterBlock
	}
	a.rewriteBody(node, jast.SlotElseStatement, pos, -1, units, bc)
}

func (a *analyzer) visitWhile(node jast.NodeID) {
	pos := a.rewriteRequired(node, jast.SlotExpression)
	if !a.isChanged(node, jast.SlotBody) {
		a.visitSlot(node, jast.SlotBody, pos)
		return
	}
	start := a.tokenEnd(scanner.RParen, pos)
	a.rewriteBody(node, jast.SlotBody, start, -1, a.indentAt(a.tree.Start(node)), bodyLast)
}

func (a *analyzer) visitDo(node jast.NodeID) {
	e := a.event(node, jast.SlotBody)
	if e != nil && e.Kind == events.Replaced {
		start := a.tokenEnd(scanner.Do, a.tree.Start(node))
		body := e.Original.Node
		end := a.tokenStart(scanner.While, a.tree.End(body))
		a.rewriteBody(node, jast.SlotBody, start, end, a.indentAt(a.tree.Start(node)), bodyFollowed)
	} else {
		a.visitSlot(node, jast.SlotBody, a.tree.Start(node))
	}
	a.rewriteRequired(node, jast.SlotExpression)
}

func (a *analyzer) visitFor(node jast.NodeID) {
	pos := a.tree.Start(node)
	if a.isChanged(node, jast.SlotInitializers) {
		start := a.tokenEnd(scanner.LParen, pos)
		pos = a.rewriteNodeList(node, jast.SlotInitializers, start, "", ", ")
	} else {
		pos = a.visitSlot(node, jast.SlotInitializers, pos)
	}

	pos = a.tokenEnd(scanner.Semicolon, pos)
	pos = a.rewriteNode(node, jast.SlotExpression, pos, prefixNone)

	if a.isChanged(node, jast.SlotUpdaters) {
		start := a.tokenEnd(scanner.Semicolon, pos)
		pos = a.rewriteNodeList(node, jast.SlotUpdaters, start, "", ", ")
	} else {
		pos = a.visitSlot(node, jast.SlotUpdaters, pos)
	}

	if a.changeKind(node, jast.SlotBody) == events.Replaced {
		start := a.tokenEnd(scanner.RParen, pos)
		a.rewriteBody(node, jast.SlotBody, start, -1, a.indentAt(a.tree.Start(node)), bodyLast)
		return
	}
	a.visitSlot(node, jast.SlotBody, pos)
}

func (a *analyzer) visitEnhancedFor(node jast.NodeID) {
	a.rewriteRequired(node, jast.SlotParameter)
	pos := a.rewriteRequired(node, jast.SlotExpression)
	if a.changeKind(node, jast.SlotBody) == events.Replaced {
		start := a.tokenEnd(scanner.RParen, pos)
		a.rewriteBody(node, jast.SlotBody, start, -1, a.indentAt(a.tree.Start(node)), bodyLast)
		return
	}
	a.visitSlot(node, jast.SlotBody, pos)
}

func (a *analyzer) visitTry(node jast.NodeID) {
	pos := a.tree.Start(node)
	if a.isChanged(node, jast.SlotResources) {
		a.rewriteResources(node, a.tokenEnd(scanner.Try, pos))
	} else {
		a.visitSlot(node, jast.SlotResources, pos)
	}

	pos = a.rewriteRequired(node, jast.SlotBody)
	pos = a.rewriteNodeList(node, jast.SlotCatchClauses, pos, " ", " ")
	a.rewriteNode(node, jast.SlotFinally, pos, literal(" finally "))
}

// rewriteResources rewrites the "(...)" resource specification that
// follows the try keyword ending at tryEnd.
func (a *analyzer) rewriteResources(node jast.NodeID, tryEnd int) {
	state := a.listState(node, jast.SlotResources)
	group := a.lastGroup(node, jast.SlotResources)
	hadParens := len(a.tree.List(node, jast.SlotResources)) > 0

	if !hadParens {
		pos := a.rewriteNodeList(node, jast.SlotResources, tryEnd, " (", "; ")
		a.insert(pos, ")", group)
		return
	}
	start := tryEnd
	if !state.allRemoved {
		start = a.tokenEnd(scanner.LParen, tryEnd)
	}
	pos := a.rewriteNodeList(node, jast.SlotResources, start, "", "; ")
	if state.allRemoved {
		end := a.tokenEnd(scanner.RParen, pos)
		a.remove(pos, end-pos, group)
	}
}

func (a *analyzer) visitSwitch(node jast.NodeID) {
	pos := a.rewriteRequired(node, jast.SlotExpression)
	if !a.isChanged(node, jast.SlotStatements) {
		a.visitSlot(node, jast.SlotStatements, pos)
		return
	}
	pos = a.tokenEnd(scanner.LBrace, pos)
	units := a.indentAt(a.tree.Start(node)) + 1
	a.rewriteBraceList(node, jast.SlotStatements, pos, units, 1, switchPolicy(units))
}

// visitSwitchCase rewrites a case label. Turning a case into default or
// back requires a new SwitchCase node.
func (a *analyzer) visitSwitchCase(node jast.NodeID) {
	switch a.changeKind(node, jast.SlotExpression) {
	case events.Inserted, events.Removed:
		a.fail(&UnsupportedChangeError{Node: node, Kind: jast.KindSwitchCase, Slot: jast.SlotExpression})
	}
	a.rewriteRequired(node, jast.SlotExpression)
}

func (a *analyzer) visitAssert(node jast.NodeID) {
	pos := a.tokenEnd(scanner.Assert, a.tree.Start(node))
	a.ensureSpaceBeforeReplace(node, jast.SlotExpression, pos)
	pos = a.rewriteRequired(node, jast.SlotExpression)
	a.rewriteNode(node, jast.SlotMessage, pos, literal(" : "))
}

func (a *analyzer) visitConstructorInvocation(node jast.NodeID) {
	pos := a.rewriteTypeParameters(node, jast.SlotTypeArguments, a.tree.Start(node), "", false, false)
	pos = a.tokenEnd(scanner.LParen, pos)
	a.rewriteNodeList(node, jast.SlotArguments, pos, "", ", ")
}

func (a *analyzer) visitSuperConstructorInvocation(node jast.NodeID) {
	pos := a.rewriteQualifier(node, jast.SlotExpression, a.tree.Start(node))
	pos = a.rewriteTypeParameters(node, jast.SlotTypeArguments, pos, "", false, false)
	pos = a.tokenEnd(scanner.LParen, pos)
	a.rewriteNodeList(node, jast.SlotArguments, pos, "", ", ")
}
