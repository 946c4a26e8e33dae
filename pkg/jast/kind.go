// Package jast provides an arena-backed, read-only Java syntax tree.
//
// Nodes are addressed by NodeID. Every node kind has a fixed table of slots
// (see Descriptors) describing its children: required and optional single
// children, ordered child lists, and token-valued slots such as modifier
// bit-sets, operators and identifiers.
package jast

// Kind classifies the type of a syntax tree node.
type Kind uint16

// Node kinds. The zero value is reserved for invalid nodes.
const (
	KindInvalid Kind = iota

	// Declarations.
	KindCompilationUnit
	KindPackageDeclaration
	KindImportDeclaration
	KindTypeDeclaration
	KindEnumDeclaration
	KindEnumConstantDeclaration
	KindAnonymousClassDeclaration
	KindFieldDeclaration
	KindMethodDeclaration
	KindInitializer
	KindSingleVariableDeclaration
	KindVariableDeclarationFragment
	KindJavadoc
	KindMarkerAnnotation
	KindSingleMemberAnnotation
	KindNormalAnnotation
	KindMemberValuePair

	// Statements.
	KindBlock
	KindExpressionStatement
	KindVariableDeclarationStatement
	KindReturnStatement
	KindIfStatement
	KindWhileStatement
	KindDoStatement
	KindForStatement
	KindEnhancedForStatement
	KindThrowStatement
	KindTryStatement
	KindCatchClause
	KindBreakStatement
	KindContinueStatement
	KindLabeledStatement
	KindSwitchStatement
	KindSwitchCase
	KindSynchronizedStatement
	KindAssertStatement
	KindEmptyStatement
	KindTypeDeclarationStatement
	KindConstructorInvocation
	KindSuperConstructorInvocation

	// Expressions.
	KindSimpleName
	KindQualifiedName
	KindNumberLiteral
	KindStringLiteral
	KindCharacterLiteral
	KindBooleanLiteral
	KindNullLiteral
	KindInfixExpression
	KindPrefixExpression
	KindPostfixExpression
	KindAssignment
	KindMethodInvocation
	KindSuperMethodInvocation
	KindFieldAccess
	KindSuperFieldAccess
	KindThisExpression
	KindClassInstanceCreation
	KindArrayAccess
	KindArrayCreation
	KindArrayInitializer
	KindCastExpression
	KindConditionalExpression
	KindInstanceofExpression
	KindParenthesizedExpression
	KindTypeLiteral
	KindVariableDeclarationExpression

	// Types.
	KindPrimitiveType
	KindSimpleType
	KindQualifiedType
	KindArrayType
	KindParameterizedType
	KindWildcardType
	KindUnionType
	KindTypeParameter

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:                       "Invalid",
	KindCompilationUnit:               "CompilationUnit",
	KindPackageDeclaration:            "PackageDeclaration",
	KindImportDeclaration:             "ImportDeclaration",
	KindTypeDeclaration:               "TypeDeclaration",
	KindEnumDeclaration:               "EnumDeclaration",
	KindEnumConstantDeclaration:       "EnumConstantDeclaration",
	KindAnonymousClassDeclaration:     "AnonymousClassDeclaration",
	KindFieldDeclaration:              "FieldDeclaration",
	KindMethodDeclaration:             "MethodDeclaration",
	KindInitializer:                   "Initializer",
	KindSingleVariableDeclaration:     "SingleVariableDeclaration",
	KindVariableDeclarationFragment:   "VariableDeclarationFragment",
	KindJavadoc:                       "Javadoc",
	KindMarkerAnnotation:              "MarkerAnnotation",
	KindSingleMemberAnnotation:        "SingleMemberAnnotation",
	KindNormalAnnotation:              "NormalAnnotation",
	KindMemberValuePair:               "MemberValuePair",
	KindBlock:                         "Block",
	KindExpressionStatement:           "ExpressionStatement",
	KindVariableDeclarationStatement:  "VariableDeclarationStatement",
	KindReturnStatement:               "ReturnStatement",
	KindIfStatement:                   "IfStatement",
	KindWhileStatement:                "WhileStatement",
	KindDoStatement:                   "DoStatement",
	KindForStatement:                  "ForStatement",
	KindEnhancedForStatement:          "EnhancedForStatement",
	KindThrowStatement:                "ThrowStatement",
	KindTryStatement:                  "TryStatement",
	KindCatchClause:                   "CatchClause",
	KindBreakStatement:                "BreakStatement",
	KindContinueStatement:             "ContinueStatement",
	KindLabeledStatement:              "LabeledStatement",
	KindSwitchStatement:               "SwitchStatement",
	KindSwitchCase:                    "SwitchCase",
	KindSynchronizedStatement:         "SynchronizedStatement",
	KindAssertStatement:               "AssertStatement",
	KindEmptyStatement:                "EmptyStatement",
	KindTypeDeclarationStatement:      "TypeDeclarationStatement",
	KindConstructorInvocation:         "ConstructorInvocation",
	KindSuperConstructorInvocation:    "SuperConstructorInvocation",
	KindSimpleName:                    "SimpleName",
	KindQualifiedName:                 "QualifiedName",
	KindNumberLiteral:                 "NumberLiteral",
	KindStringLiteral:                 "StringLiteral",
	KindCharacterLiteral:              "CharacterLiteral",
	KindBooleanLiteral:                "BooleanLiteral",
	KindNullLiteral:                   "NullLiteral",
	KindInfixExpression:               "InfixExpression",
	KindPrefixExpression:              "PrefixExpression",
	KindPostfixExpression:             "PostfixExpression",
	KindAssignment:                    "Assignment",
	KindMethodInvocation:              "MethodInvocation",
	KindSuperMethodInvocation:         "SuperMethodInvocation",
	KindFieldAccess:                   "FieldAccess",
	KindSuperFieldAccess:              "SuperFieldAccess",
	KindThisExpression:                "ThisExpression",
	KindClassInstanceCreation:         "ClassInstanceCreation",
	KindArrayAccess:                   "ArrayAccess",
	KindArrayCreation:                 "ArrayCreation",
	KindArrayInitializer:              "ArrayInitializer",
	KindCastExpression:                "CastExpression",
	KindConditionalExpression:         "ConditionalExpression",
	KindInstanceofExpression:          "InstanceofExpression",
	KindParenthesizedExpression:       "ParenthesizedExpression",
	KindTypeLiteral:                   "TypeLiteral",
	KindVariableDeclarationExpression: "VariableDeclarationExpression",
	KindPrimitiveType:                 "PrimitiveType",
	KindSimpleType:                    "SimpleType",
	KindQualifiedType:                 "QualifiedType",
	KindArrayType:                     "ArrayType",
	KindParameterizedType:             "ParameterizedType",
	KindWildcardType:                  "WildcardType",
	KindUnionType:                     "UnionType",
	KindTypeParameter:                 "TypeParameter",
}

// String returns the kind name.
func (k Kind) String() string {
	if k >= kindCount {
		return "Unknown"
	}
	return kindNames[k]
}

// Kinds returns all valid node kinds in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount-1)
	for k := KindCompilationUnit; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for k := KindCompilationUnit; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindInvalid, false
}

// IsStatement reports whether k is a statement kind.
func (k Kind) IsStatement() bool {
	return k >= KindBlock && k <= KindSuperConstructorInvocation && k != KindCatchClause && k != KindSwitchCase
}

// IsExpression reports whether k is an expression kind.
func (k Kind) IsExpression() bool {
	return k >= KindSimpleName && k <= KindVariableDeclarationExpression
}

// IsType reports whether k is a type kind.
func (k Kind) IsType() bool {
	return k >= KindPrimitiveType && k <= KindUnionType
}

// IsBodyDeclaration reports whether k can appear in a type body.
func (k Kind) IsBodyDeclaration() bool {
	switch k {
	case KindTypeDeclaration, KindEnumDeclaration, KindFieldDeclaration,
		KindMethodDeclaration, KindInitializer, KindEnumConstantDeclaration:
		return true
	default:
		return false
	}
}

// IsAnnotation reports whether k is one of the annotation kinds.
func (k Kind) IsAnnotation() bool {
	return k == KindMarkerAnnotation || k == KindSingleMemberAnnotation || k == KindNormalAnnotation
}
