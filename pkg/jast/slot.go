package jast

import "fmt"

// Slot names a child position of a node. The same Slot is shared by every
// kind that has a child with that role; Descriptors lists the slots of one kind.
type Slot uint8

// Slots, roughly in the order they appear in source.
const (
	SlotInvalid Slot = iota
	SlotPackage
	SlotImports
	SlotTypes
	SlotJavadoc
	SlotAnnotations
	SlotModifiers
	SlotStatic
	SlotOnDemand
	SlotInterface
	SlotConstructor
	SlotTypeParameters
	SlotReturnType
	SlotName
	SlotSuperclassType
	SlotSuperInterfaceTypes
	SlotEnumConstants
	SlotBodyDeclarations
	SlotParameters
	SlotExtraDimensions
	SlotThrownExceptions
	SlotBody
	SlotType
	SlotVarargs
	SlotFragments
	SlotInitializer
	SlotTypeName
	SlotValue
	SlotValues
	SlotComment
	SlotStatements
	SlotExpression
	SlotThenStatement
	SlotElseStatement
	SlotInitializers
	SlotUpdaters
	SlotParameter
	SlotResources
	SlotCatchClauses
	SlotFinally
	SlotException
	SlotLabel
	SlotMessage
	SlotDeclaration
	SlotTypeArguments
	SlotArguments
	SlotIdentifier
	SlotQualifier
	SlotToken
	SlotBooleanValue
	SlotLeftOperand
	SlotOperator
	SlotRightOperand
	SlotExtendedOperands
	SlotOperand
	SlotLeftHandSide
	SlotRightHandSide
	SlotAnonymousClass
	SlotArray
	SlotIndex
	SlotElementType
	SlotDimensions
	SlotExpressions
	SlotThenExpression
	SlotElseExpression
	SlotPrimitiveCode
	SlotComponentType
	SlotBound
	SlotUpperBound
	SlotAlternatives
	SlotTypeBounds

	slotCount
)

var slotNames = [slotCount]string{
	SlotInvalid:             "Invalid",
	SlotPackage:             "Package",
	SlotImports:             "Imports",
	SlotTypes:               "Types",
	SlotJavadoc:             "Javadoc",
	SlotAnnotations:         "Annotations",
	SlotModifiers:           "Modifiers",
	SlotStatic:              "Static",
	SlotOnDemand:            "OnDemand",
	SlotInterface:           "Interface",
	SlotConstructor:         "Constructor",
	SlotTypeParameters:      "TypeParameters",
	SlotReturnType:          "ReturnType",
	SlotName:                "Name",
	SlotSuperclassType:      "SuperclassType",
	SlotSuperInterfaceTypes: "SuperInterfaceTypes",
	SlotEnumConstants:       "EnumConstants",
	SlotBodyDeclarations:    "BodyDeclarations",
	SlotParameters:          "Parameters",
	SlotExtraDimensions:     "ExtraDimensions",
	SlotThrownExceptions:    "ThrownExceptions",
	SlotBody:                "Body",
	SlotType:                "Type",
	SlotVarargs:             "Varargs",
	SlotFragments:           "Fragments",
	SlotInitializer:         "Initializer",
	SlotTypeName:            "TypeName",
	SlotValue:               "Value",
	SlotValues:              "Values",
	SlotComment:             "Comment",
	SlotStatements:          "Statements",
	SlotExpression:          "Expression",
	SlotThenStatement:       "ThenStatement",
	SlotElseStatement:       "ElseStatement",
	SlotInitializers:        "Initializers",
	SlotUpdaters:            "Updaters",
	SlotParameter:           "Parameter",
	SlotResources:           "Resources",
	SlotCatchClauses:        "CatchClauses",
	SlotFinally:             "Finally",
	SlotException:           "Exception",
	SlotLabel:               "Label",
	SlotMessage:             "Message",
	SlotDeclaration:         "Declaration",
	SlotTypeArguments:       "TypeArguments",
	SlotArguments:           "Arguments",
	SlotIdentifier:          "Identifier",
	SlotQualifier:           "Qualifier",
	SlotToken:               "Token",
	SlotBooleanValue:        "BooleanValue",
	SlotLeftOperand:         "LeftOperand",
	SlotOperator:            "Operator",
	SlotRightOperand:        "RightOperand",
	SlotExtendedOperands:    "ExtendedOperands",
	SlotOperand:             "Operand",
	SlotLeftHandSide:        "LeftHandSide",
	SlotRightHandSide:       "RightHandSide",
	SlotAnonymousClass:      "AnonymousClass",
	SlotArray:               "Array",
	SlotIndex:               "Index",
	SlotElementType:         "ElementType",
	SlotDimensions:          "Dimensions",
	SlotExpressions:         "Expressions",
	SlotThenExpression:      "ThenExpression",
	SlotElseExpression:      "ElseExpression",
	SlotPrimitiveCode:       "PrimitiveCode",
	SlotComponentType:       "ComponentType",
	SlotBound:               "Bound",
	SlotUpperBound:          "UpperBound",
	SlotAlternatives:        "Alternatives",
	SlotTypeBounds:          "TypeBounds",
}

// String returns the slot name.
func (s Slot) String() string {
	if s >= slotCount {
		return fmt.Sprintf("Slot(%d)", uint8(s))
	}
	return slotNames[s]
}

// ParseSlot returns the slot with the given name.
func ParseSlot(name string) (Slot, bool) {
	for s := SlotPackage; s < slotCount; s++ {
		if slotNames[s] == name {
			return s, true
		}
	}
	return SlotInvalid, false
}

// Shape describes what a slot holds.
type Shape uint8

const (
	// ShapeChild is a required single child node.
	ShapeChild Shape = iota + 1

	// ShapeOptional is a single child node that may be NoNode.
	ShapeOptional

	// ShapeList is an ordered list of child nodes.
	ShapeList

	// ShapeInt is an integer token value: modifier bits, dimensions or a flag.
	ShapeInt

	// ShapeString is a string token value: identifier, operator or literal.
	ShapeString
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeChild:
		return "child"
	case ShapeOptional:
		return "optional"
	case ShapeList:
		return "list"
	case ShapeInt:
		return "int"
	case ShapeString:
		return "string"
	default:
		return "invalid"
	}
}

// IsNode reports whether the slot holds a single node.
func (s Shape) IsNode() bool {
	return s == ShapeChild || s == ShapeOptional
}

// SlotDescriptor describes one slot of a node kind.
type SlotDescriptor struct {
	Slot  Slot
	Shape Shape
}

func child(s Slot) SlotDescriptor    { return SlotDescriptor{Slot: s, Shape: ShapeChild} }
func optional(s Slot) SlotDescriptor { return SlotDescriptor{Slot: s, Shape: ShapeOptional} }
func list(s Slot) SlotDescriptor     { return SlotDescriptor{Slot: s, Shape: ShapeList} }
func intval(s Slot) SlotDescriptor   { return SlotDescriptor{Slot: s, Shape: ShapeInt} }
func str(s Slot) SlotDescriptor      { return SlotDescriptor{Slot: s, Shape: ShapeString} }

var descriptors = [kindCount][]SlotDescriptor{
	KindCompilationUnit:    {optional(SlotPackage), list(SlotImports), list(SlotTypes)},
	KindPackageDeclaration: {optional(SlotJavadoc), list(SlotAnnotations), child(SlotName)},
	KindImportDeclaration:  {intval(SlotStatic), child(SlotName), intval(SlotOnDemand)},
	KindTypeDeclaration: {
		optional(SlotJavadoc), list(SlotAnnotations), intval(SlotModifiers), intval(SlotInterface),
		child(SlotName), list(SlotTypeParameters), optional(SlotSuperclassType),
		list(SlotSuperInterfaceTypes), list(SlotBodyDeclarations),
	},
	KindEnumDeclaration: {
		optional(SlotJavadoc), list(SlotAnnotations), intval(SlotModifiers), child(SlotName),
		list(SlotSuperInterfaceTypes), list(SlotEnumConstants), list(SlotBodyDeclarations),
	},
	KindEnumConstantDeclaration: {
		optional(SlotJavadoc), list(SlotAnnotations), child(SlotName), list(SlotArguments),
		optional(SlotAnonymousClass),
	},
	KindAnonymousClassDeclaration: {list(SlotBodyDeclarations)},
	KindFieldDeclaration: {
		optional(SlotJavadoc), list(SlotAnnotations), intval(SlotModifiers), child(SlotType),
		list(SlotFragments),
	},
	KindMethodDeclaration: {
		optional(SlotJavadoc), list(SlotAnnotations), intval(SlotModifiers), intval(SlotConstructor),
		list(SlotTypeParameters), optional(SlotReturnType), child(SlotName), list(SlotParameters),
		intval(SlotExtraDimensions), list(SlotThrownExceptions), optional(SlotBody),
	},
	KindInitializer: {optional(SlotJavadoc), intval(SlotModifiers), child(SlotBody)},
	KindSingleVariableDeclaration: {
		list(SlotAnnotations), intval(SlotModifiers), child(SlotType), intval(SlotVarargs),
		child(SlotName), intval(SlotExtraDimensions), optional(SlotInitializer),
	},
	KindVariableDeclarationFragment: {child(SlotName), intval(SlotExtraDimensions), optional(SlotInitializer)},
	KindJavadoc:                     {str(SlotComment)},
	KindMarkerAnnotation:            {child(SlotTypeName)},
	KindSingleMemberAnnotation:      {child(SlotTypeName), child(SlotValue)},
	KindNormalAnnotation:            {child(SlotTypeName), list(SlotValues)},
	KindMemberValuePair:             {child(SlotName), child(SlotValue)},

	KindBlock:                        {list(SlotStatements)},
	KindExpressionStatement:          {child(SlotExpression)},
	KindVariableDeclarationStatement: {list(SlotAnnotations), intval(SlotModifiers), child(SlotType), list(SlotFragments)},
	KindReturnStatement:              {optional(SlotExpression)},
	KindIfStatement:                  {child(SlotExpression), child(SlotThenStatement), optional(SlotElseStatement)},
	KindWhileStatement:               {child(SlotExpression), child(SlotBody)},
	KindDoStatement:                  {child(SlotBody), child(SlotExpression)},
	KindForStatement: {
		list(SlotInitializers), optional(SlotExpression), list(SlotUpdaters), child(SlotBody),
	},
	KindEnhancedForStatement:       {child(SlotParameter), child(SlotExpression), child(SlotBody)},
	KindThrowStatement:             {child(SlotExpression)},
	KindTryStatement:               {list(SlotResources), child(SlotBody), list(SlotCatchClauses), optional(SlotFinally)},
	KindCatchClause:                {child(SlotException), child(SlotBody)},
	KindBreakStatement:             {optional(SlotLabel)},
	KindContinueStatement:          {optional(SlotLabel)},
	KindLabeledStatement:           {child(SlotLabel), child(SlotBody)},
	KindSwitchStatement:            {child(SlotExpression), list(SlotStatements)},
	KindSwitchCase:                 {optional(SlotExpression)},
	KindSynchronizedStatement:      {child(SlotExpression), child(SlotBody)},
	KindAssertStatement:            {child(SlotExpression), optional(SlotMessage)},
	KindEmptyStatement:             {},
	KindTypeDeclarationStatement:   {child(SlotDeclaration)},
	KindConstructorInvocation:      {list(SlotTypeArguments), list(SlotArguments)},
	KindSuperConstructorInvocation: {optional(SlotExpression), list(SlotTypeArguments), list(SlotArguments)},

	KindSimpleName:       {str(SlotIdentifier)},
	KindQualifiedName:    {child(SlotQualifier), child(SlotName)},
	KindNumberLiteral:    {str(SlotToken)},
	KindStringLiteral:    {str(SlotToken)},
	KindCharacterLiteral: {str(SlotToken)},
	KindBooleanLiteral:   {intval(SlotBooleanValue)},
	KindNullLiteral:      {},
	KindInfixExpression: {
		child(SlotLeftOperand), str(SlotOperator), child(SlotRightOperand), list(SlotExtendedOperands),
	},
	KindPrefixExpression:  {str(SlotOperator), child(SlotOperand)},
	KindPostfixExpression: {child(SlotOperand), str(SlotOperator)},
	KindAssignment:        {child(SlotLeftHandSide), str(SlotOperator), child(SlotRightHandSide)},
	KindMethodInvocation: {
		optional(SlotExpression), list(SlotTypeArguments), child(SlotName), list(SlotArguments),
	},
	KindSuperMethodInvocation: {optional(SlotQualifier), list(SlotTypeArguments), child(SlotName), list(SlotArguments)},
	KindFieldAccess:           {child(SlotExpression), child(SlotName)},
	KindSuperFieldAccess:      {optional(SlotQualifier), child(SlotName)},
	KindThisExpression:        {optional(SlotQualifier)},
	KindClassInstanceCreation: {
		optional(SlotExpression), list(SlotTypeArguments), child(SlotType), list(SlotArguments),
		optional(SlotAnonymousClass),
	},
	KindArrayAccess: {child(SlotArray), child(SlotIndex)},
	KindArrayCreation: {
		child(SlotElementType), list(SlotDimensions), intval(SlotExtraDimensions), optional(SlotInitializer),
	},
	KindArrayInitializer:              {list(SlotExpressions)},
	KindCastExpression:                {child(SlotType), child(SlotExpression)},
	KindConditionalExpression:         {child(SlotExpression), child(SlotThenExpression), child(SlotElseExpression)},
	KindInstanceofExpression:          {child(SlotLeftOperand), child(SlotRightOperand)},
	KindParenthesizedExpression:       {child(SlotExpression)},
	KindTypeLiteral:                   {child(SlotType)},
	KindVariableDeclarationExpression: {list(SlotAnnotations), intval(SlotModifiers), child(SlotType), list(SlotFragments)},

	KindPrimitiveType:     {str(SlotPrimitiveCode)},
	KindSimpleType:        {child(SlotName)},
	KindQualifiedType:     {child(SlotQualifier), child(SlotName)},
	KindArrayType:         {child(SlotComponentType)},
	KindParameterizedType: {child(SlotType), list(SlotTypeArguments)},
	KindWildcardType:      {optional(SlotBound), intval(SlotUpperBound)},
	KindUnionType:         {list(SlotAlternatives)},
	KindTypeParameter:     {child(SlotName), list(SlotTypeBounds)},
}

// slotIndex maps (kind, slot) to the position in descriptors, or -1.
var slotIndex [kindCount][slotCount]int8

func init() {
	for k := range slotIndex {
		for s := range slotIndex[k] {
			slotIndex[k][s] = -1
		}
		for i, d := range descriptors[k] {
			slotIndex[k][d.Slot] = int8(i)
		}
	}
}

// Descriptors returns the slots of a kind in source order.
// The returned slice must not be modified.
func Descriptors(k Kind) []SlotDescriptor {
	if k >= kindCount {
		return nil
	}
	return descriptors[k]
}

// Descriptor returns the descriptor of slot s on kind k.
func Descriptor(k Kind, s Slot) (SlotDescriptor, bool) {
	if k >= kindCount || s >= slotCount {
		return SlotDescriptor{}, false
	}
	i := slotIndex[k][s]
	if i < 0 {
		return SlotDescriptor{}, false
	}
	return descriptors[k][i], true
}

// HasSlot reports whether kind k has slot s.
func HasSlot(k Kind, s Slot) bool {
	_, ok := Descriptor(k, s)
	return ok
}
