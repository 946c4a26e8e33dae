package rewrite

import (
	"github.com/yaklabco/jrewrite/pkg/events"
	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/scanner"
)

func init() {
	handlers[jast.KindCompilationUnit] = (*analyzer).visitCompilationUnit
	handlers[jast.KindPackageDeclaration] = (*analyzer).visitPackage
	handlers[jast.KindImportDeclaration] = (*analyzer).visitImport
	handlers[jast.KindTypeDeclaration] = (*analyzer).visitTypeDeclaration
	handlers[jast.KindEnumDeclaration] = (*analyzer).visitEnumDeclaration
	handlers[jast.KindEnumConstantDeclaration] = (*analyzer).visitEnumConstant
	handlers[jast.KindAnonymousClassDeclaration] = (*analyzer).visitAnonymousClass
	handlers[jast.KindFieldDeclaration] = (*analyzer).visitField
	handlers[jast.KindMethodDeclaration] = (*analyzer).visitMethod
	handlers[jast.KindInitializer] = (*analyzer).visitInitializer
	handlers[jast.KindSingleVariableDeclaration] = (*analyzer).visitSingleVariable
	handlers[jast.KindVariableDeclarationFragment] = (*analyzer).visitFragment
	handlers[jast.KindJavadoc] = (*analyzer).visitJavadoc
	handlers[jast.KindMarkerAnnotation] = (*analyzer).visitMarkerAnnotation
	handlers[jast.KindSingleMemberAnnotation] = (*analyzer).visitSingleMemberAnnotation
	handlers[jast.KindNormalAnnotation] = (*analyzer).visitNormalAnnotation
	handlers[jast.KindMemberValuePair] = (*analyzer).visitMemberValuePair
}

func (a *analyzer) visitCompilationUnit(node jast.NodeID) {
	pkgKind := a.changeKind(node, jast.SlotPackage)
	pos := a.rewriteNode(node, jast.SlotPackage, noPosition, prefixNone)
	if pkgKind == events.Inserted {
		a.insert(0, a.delim, a.group(node, jast.SlotPackage))
	}

	imports := a.listState(node, jast.SlotImports)
	lead := 2
	hasPackage := a.store.NewChild(node, jast.SlotPackage) != jast.NoNode
	atTop := a.tree.Child(node, jast.SlotPackage) == jast.NoNode
	if imports.allInserted && atTop {
		lead = 0
		if hasPackage {
			lead = 1
		}
	}
	pos = a.rewriteParagraphList(node, jast.SlotImports, pos, 0, 0, lead)
	if imports.allInserted && atTop && len(a.tree.List(node, jast.SlotTypes)) > 0 {
		a.insert(pos, a.delim+a.delim, a.lastGroup(node, jast.SlotImports))
	}

	a.rewriteParagraphList(node, jast.SlotTypes, pos, 0, -1, 2)
}

func (a *analyzer) visitPackage(node jast.NodeID) {
	pos := a.rewriteJavadoc(node)
	a.rewriteAnnotations(node, pos, false)
	a.rewriteRequired(node, jast.SlotName)
}

func (a *analyzer) visitImport(node jast.NodeID) {
	if e := a.event(node, jast.SlotStatic); e != nil && e.Kind != events.Unchanged {
		pos := a.tokenEnd(scanner.Import, a.tree.Start(node))
		if e.Original.Int != 0 {
			end := a.tokenEnd(scanner.Static, pos)
			a.remove(pos, end-pos, e.Group)
		} else {
			a.insert(pos, " static", e.Group)
		}
	}

	pos := a.rewriteRequired(node, jast.SlotName)

	if e := a.event(node, jast.SlotOnDemand); e != nil && e.Kind != events.Unchanged {
		if e.Original.Int == 0 {
			a.insert(pos, ".*", e.Group)
		} else {
			end := a.tokenStart(scanner.Semicolon, pos)
			a.remove(pos, end-pos, e.Group)
		}
	}
}

// rewriteHeader rewrites the doc comment, annotations and modifiers of a
// declaration and returns the offset where they were found.
func (a *analyzer) rewriteHeader(node jast.NodeID, inline bool) int {
	pos := a.tree.Start(node)
	k := a.tree.Kind(node)
	if jast.HasSlot(k, jast.SlotJavadoc) {
		pos = a.rewriteJavadoc(node)
	}
	if jast.HasSlot(k, jast.SlotAnnotations) {
		a.rewriteAnnotations(node, pos, inline)
	}
	if jast.HasSlot(k, jast.SlotModifiers) {
		a.rewriteModifiers(node, pos)
	}
	return pos
}

// modifiersEnd returns the end of the annotations and modifier keywords
// that start at pos, or pos when there are none.
func (a *analyzer) modifiersEnd(pos int) int {
	end := pos
	for {
		tok, ok := a.nextToken(end, true)
		if !ok {
			return end
		}
		switch {
		case tok.Kind == scanner.At:
			end = a.skipAnnotation(tok.End)
		case tok.Kind.IsModifier():
			end = tok.End
		default:
			return end
		}
	}
}

func (a *analyzer) visitTypeDeclaration(node jast.NodeID) {
	pos := a.rewriteHeader(node, false)

	isInterface := a.tree.Int(node, jast.SlotInterface) != 0
	invertType := a.isChanged(node, jast.SlotInterface)
	if invertType {
		kw := scanner.Class
		repl := "interface"
		if isInterface {
			kw, repl = scanner.Interface, "class"
		}
		if tok, ok := a.lookup.Find(kw, pos); ok {
			a.replace(tok.Start, tok.Len(), repl, a.group(node, jast.SlotInterface))
		} else {
			a.miss(kw.String(), pos)
		}
	}

	pos = a.rewriteRequired(node, jast.SlotName)
	pos = a.rewriteTypeParameters(node, jast.SlotTypeParameters, pos, "", false, true)

	if !isInterface || invertType {
		pos = a.rewriteSuperclass(node, pos)
	}

	e := a.event(node, jast.SlotSuperInterfaceTypes)
	if e == nil || e.Kind == events.Unchanged {
		if invertType {
			if orig := a.tree.List(node, jast.SlotSuperInterfaceTypes); len(orig) > 0 {
				kw := " extends "
				if isInterface {
					kw = " implements "
				}
				a.replace(pos, a.tree.Start(orig[0])-pos, kw, a.group(node, jast.SlotInterface))
			}
		}
		pos = a.visitSlot(node, jast.SlotSuperInterfaceTypes, pos)
	} else {
		kw := " extends "
		if isInterface == invertType {
			kw = " implements "
		}
		if invertType && len(a.store.NewList(node, jast.SlotSuperInterfaceTypes)) > 0 {
			if orig := a.tree.List(node, jast.SlotSuperInterfaceTypes); len(orig) > 0 {
				first := a.tree.Start(orig[0])
				a.replace(pos, first-pos, kw, a.group(node, jast.SlotInterface))
				kw = ""
				pos = first
			}
		}
		pos = a.rewriteNodeList(node, jast.SlotSuperInterfaceTypes, pos, kw, ", ")
	}

	units := a.indentAt(a.tree.Start(node)) + 1
	start := a.tokenEnd(scanner.LBrace, pos)
	a.rewriteBraceList(node, jast.SlotBodyDeclarations, start, units, 2, paragraphPolicy(units, -1))
}

func (a *analyzer) rewriteSuperclass(node jast.NodeID, pos int) int {
	e := a.event(node, jast.SlotSuperclassType)
	if e == nil {
		return a.visitSlot(node, jast.SlotSuperclassType, pos)
	}
	switch e.Kind {
	case events.Inserted:
		a.insert(pos, " extends ", e.Group)
		a.insertNode(pos, e.New.Node, 0, false, e.Group)
		return pos
	case events.Removed:
		old := e.Original.Node
		end := a.tree.ExtendedEnd(old)
		a.removeAndVisit(pos, end-pos, old, e.Group)
		return end
	case events.Replaced:
		old := e.Original.Node
		start, length := a.nodeRange(old)
		a.removeAndVisit(start, length, old, e.Group)
		a.insertNode(start, e.New.Node, 0, false, e.Group)
		return start + length
	}
	return a.visitSlot(node, jast.SlotSuperclassType, pos)
}

// enumConstantPolicy separates constants with a comma and a line break.
func enumConstantPolicy(units int) listPolicy {
	p := paragraphPolicy(units, 0)
	base := p.separator
	p.separator = func(r *listRewriter, index int) string { return "," + base(r, index) }
	return p
}

func (a *analyzer) visitEnumDeclaration(node jast.NodeID) {
	a.rewriteHeader(node, false)
	pos := a.rewriteRequired(node, jast.SlotName)
	pos = a.rewriteNodeList(node, jast.SlotSuperInterfaceTypes, pos, " implements ", ", ")

	open := a.tokenEnd(scanner.LBrace, pos)
	units := a.indentAt(a.tree.Start(node)) + 1
	wasEmpty := len(a.tree.List(node, jast.SlotEnumConstants)) == 0 && len(a.tree.List(node, jast.SlotBodyDeclarations)) == 0

	pos = a.rewritePolicyList(node, jast.SlotEnumConstants, open, units, 1, enumConstantPolicy(units))

	start := pos
	if tok, ok := a.nextToken(pos, true); ok && tok.Kind == scanner.Semicolon {
		start = tok.End
	} else if len(a.store.NewList(node, jast.SlotBodyDeclarations)) > 0 {
		a.insert(pos, ";", a.lastGroup(node, jast.SlotBodyDeclarations))
	}
	a.rewriteParagraphList(node, jast.SlotBodyDeclarations, start, units, -1, 2)

	if wasEmpty {
		tok, ok := a.nextToken(open, true)
		hasNew := len(a.store.NewList(node, jast.SlotEnumConstants)) > 0 || len(a.store.NewList(node, jast.SlotBodyDeclarations)) > 0
		if hasNew && ok && tok.Kind == scanner.RBrace && a.sameLine(open, tok.Start) {
			a.insert(start, a.delim+a.indentString(units-1), nil)
		}
	}
}

func (a *analyzer) visitEnumConstant(node jast.NodeID) {
	a.rewriteHeader(node, false)
	pos := a.rewriteRequired(node, jast.SlotName)
	argsEnd := pos
	hasParens := false
	if tok, ok := a.nextToken(pos, true); ok && tok.Kind == scanner.LParen {
		hasParens = true
		if end, ok := a.lookup.SkipBalanced(pos); ok {
			argsEnd = end
		}
	}

	if e := a.event(node, jast.SlotArguments); e != nil && e.Kind != events.Unchanged {
		state := a.listState(node, jast.SlotArguments)
		group := a.lastGroup(node, jast.SlotArguments)
		keyword := ""
		if !hasParens {
			keyword = "("
		} else if !state.allRemoved {
			pos = a.tokenEnd(scanner.LParen, pos)
		}
		pos = a.rewriteNodeList(node, jast.SlotArguments, pos, keyword, ", ")
		switch {
		case !hasParens:
			a.insert(pos, ")", group)
		case state.allRemoved:
			end := a.tokenEnd(scanner.RParen, pos)
			a.remove(pos, end-pos, group)
		}
	} else {
		a.visitSlot(node, jast.SlotArguments, pos)
	}

	if a.isChanged(node, jast.SlotAnonymousClass) {
		at := a.tree.End(node)
		if a.changeKind(node, jast.SlotAnonymousClass) == events.Removed {
			at = argsEnd
		}
		a.rewriteNode(node, jast.SlotAnonymousClass, at, prefixSpace)
	} else {
		a.visitSlot(node, jast.SlotAnonymousClass, pos)
	}
}

func (a *analyzer) visitAnonymousClass(node jast.NodeID) {
	start := a.tokenEnd(scanner.LBrace, a.tree.Start(node))
	units := a.indentAt(a.tree.Start(node)) + 1
	a.rewriteBraceList(node, jast.SlotBodyDeclarations, start, units, 2, paragraphPolicy(units, -1))
}

// ensureSpaceAfterReplace keeps a blank after a replaced child that was
// directly followed by the next token.
func (a *analyzer) ensureSpaceAfterReplace(node jast.NodeID, slot jast.Slot) {
	e := a.event(node, slot)
	if e == nil || e.Kind != events.Replaced {
		return
	}
	end := a.tree.ExtendedEnd(e.Original.Node)
	if a.nextStart(end) == end {
		a.insert(end, " ", e.Group)
	}
}

// ensureSpaceBeforeReplace keeps a blank between a keyword ending at
// keywordEnd and a replaced child that followed it directly.
func (a *analyzer) ensureSpaceBeforeReplace(node jast.NodeID, slot jast.Slot, keywordEnd int) {
	e := a.event(node, slot)
	if e == nil || e.Kind != events.Replaced {
		return
	}
	if a.tree.ExtendedStart(e.Original.Node) == keywordEnd {
		a.insert(keywordEnd, " ", e.Group)
	}
}

func (a *analyzer) visitField(node jast.NodeID) {
	a.rewriteHeader(node, false)
	pos := a.rewriteRequired(node, jast.SlotType)
	a.ensureSpaceAfterReplace(node, jast.SlotType)
	a.rewriteNodeList(node, jast.SlotFragments, pos, "", ", ")
}

func (a *analyzer) visitMethod(node jast.NodeID) {
	pos := a.rewriteHeader(node, false)
	pos = a.modifiersEnd(pos)
	needsSpace := pos != a.tree.Start(node)
	a.rewriteTypeParameters(node, jast.SlotTypeParameters, pos, " ", true, needsSpace)

	ctorChange := a.isChanged(node, jast.SlotConstructor)
	isCtor := a.tree.Int(node, jast.SlotConstructor) != 0
	if !isCtor || ctorChange {
		a.rewriteReturnType(node, isCtor, ctorChange)
	}

	pos = a.rewriteRequired(node, jast.SlotName)
	pos = a.tokenEnd(scanner.LParen, pos)
	pos = a.rewriteNodeList(node, jast.SlotParameters, pos, "", ", ")
	pos = a.tokenEnd(scanner.RParen, pos)
	pos = a.rewriteExtraDimensions(node, jast.SlotExtraDimensions, pos)
	pos = a.rewriteNodeList(node, jast.SlotThrownExceptions, pos, " throws ", ", ")
	a.rewriteMethodBody(node, pos)
}

func (a *analyzer) rewriteReturnType(node jast.NodeID, isCtor, ctorChange bool) {
	original := a.tree.Child(node, jast.SlotReturnType)
	exists := original != jast.NoNode && a.tree.Start(original) >= 0
	if !ctorChange && exists {
		a.rewriteRequired(node, jast.SlotReturnType)
		a.ensureSpaceAfterReplace(node, jast.SlotReturnType)
		return
	}

	newType := a.store.NewChild(node, jast.SlotReturnType)
	if !ctorChange && newType == original {
		return
	}
	name := a.tree.Start(a.tree.Child(node, jast.SlotName))
	group := a.group(node, jast.SlotReturnType)
	if group == nil {
		group = a.group(node, jast.SlotConstructor)
	}
	if isCtor || !exists {
		if newType != jast.NoNode {
			a.insertNode(name, newType, a.indentAt(name), true, group)
			a.insert(name, " ", group)
		}
		return
	}
	offset := a.tree.ExtendedStart(original)
	a.removeAndVisit(offset, name-offset, original, group)
}

func (a *analyzer) rewriteMethodBody(node jast.NodeID, startPos int) {
	e := a.event(node, jast.SlotBody)
	if e == nil {
		a.visitSlot(node, jast.SlotBody, startPos)
		return
	}
	end := a.tree.End(node)
	switch e.Kind {
	case events.Inserted:
		a.remove(startPos, end-startPos, e.Group)
		units := a.indentAt(a.tree.Start(node))
		a.insert(startPos, " ", e.Group)
		a.insertNode(startPos, e.New.Node, units, true, e.Group)
	case events.Removed:
		body := e.Original.Node
		end = max(end, a.tree.ExtendedEnd(body))
		a.removeAndVisit(startPos, end-startPos, body, e.Group)
		a.insert(startPos, ";", e.Group)
	case events.Replaced:
		body := e.Original.Node
		start, length := a.nodeRange(body)
		a.removeAndVisit(start, length, body, e.Group)
		a.insertNode(start, e.New.Node, a.indentAt(a.tree.Start(body)), true, e.Group)
	default:
		a.visitSlot(node, jast.SlotBody, startPos)
	}
}

func (a *analyzer) visitInitializer(node jast.NodeID) {
	a.rewriteHeader(node, false)
	a.rewriteRequired(node, jast.SlotBody)
}

func (a *analyzer) visitSingleVariable(node jast.NodeID) {
	a.rewriteHeader(node, true)
	a.rewriteRequired(node, jast.SlotType)

	if e := a.event(node, jast.SlotVarargs); e != nil && e.Kind != events.Unchanged {
		typ := a.tree.Child(node, jast.SlotType)
		if e.New.Int != 0 {
			a.insert(a.tree.ExtendedEnd(typ), "...", e.Group)
		} else if tok, ok := a.lookup.Find(scanner.Ellipsis, a.tree.End(typ)); ok {
			a.remove(tok.Start, tok.Len(), e.Group)
		} else {
			a.miss("...", a.tree.End(typ))
		}
	}

	pos := a.rewriteRequired(node, jast.SlotName)
	pos = a.rewriteExtraDimensions(node, jast.SlotExtraDimensions, pos)
	a.rewriteNode(node, jast.SlotInitializer, pos, literal(" = "))
}

func (a *analyzer) visitFragment(node jast.NodeID) {
	pos := a.rewriteRequired(node, jast.SlotName)
	pos = a.rewriteExtraDimensions(node, jast.SlotExtraDimensions, pos)
	a.rewriteNode(node, jast.SlotInitializer, pos, literal(" = "))
}

func (a *analyzer) visitMarkerAnnotation(node jast.NodeID) {
	a.rewriteRequired(node, jast.SlotTypeName)
}

func (a *analyzer) visitSingleMemberAnnotation(node jast.NodeID) {
	a.rewriteRequired(node, jast.SlotTypeName)
	a.rewriteRequired(node, jast.SlotValue)
}

func (a *analyzer) visitNormalAnnotation(node jast.NodeID) {
	pos := a.rewriteRequired(node, jast.SlotTypeName)
	if a.isChanged(node, jast.SlotValues) {
		pos = a.tokenEnd(scanner.LParen, pos)
		a.rewriteNodeList(node, jast.SlotValues, pos, "", ", ")
		return
	}
	a.visitSlot(node, jast.SlotValues, pos)
}

func (a *analyzer) visitMemberValuePair(node jast.NodeID) {
	a.rewriteRequired(node, jast.SlotName)
	a.rewriteRequired(node, jast.SlotValue)
}
