// Package scanner tokenizes Java source text.
//
// The Scanner produces tokens on demand from any offset, which makes it
// usable both by the parser and for locating keywords and punctuation
// between nodes of an already parsed tree.
package scanner

// TokenKind classifies a token.
type TokenKind uint16

// Token kinds.
const (
	EOF TokenKind = iota
	Illegal
	Ident
	NumberLiteral
	CharLiteral
	StringLiteral

	LineComment
	BlockComment
	DocComment

	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
	Dot
	Ellipsis
	At
	Question
	Colon
	ColonColon
	Arrow

	Assign
	Eq
	NotEq
	Lt
	Le
	Gt // always a single '>' so nested type arguments close one at a time
	Ge
	Not
	Tilde
	AndAnd
	OrOr
	Inc
	Dec
	Plus
	Minus
	Star
	Slash
	And
	Or
	Caret
	Percent
	Shl
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	AndAssign
	OrAssign
	CaretAssign
	PercentAssign
	ShlAssign

	keywordsBegin
	Abstract
	Assert
	Boolean
	Break
	Byte
	Case
	Catch
	Char
	Class
	Const
	Continue
	Default
	Do
	Double
	Else
	Enum
	Extends
	False
	Final
	Finally
	Float
	For
	Goto
	If
	Implements
	Import
	Instanceof
	Int
	Interface
	Long
	Native
	New
	Null
	Package
	Private
	Protected
	Public
	Return
	Short
	Static
	Strictfp
	Super
	Switch
	Synchronized
	This
	Throw
	Throws
	Transient
	True
	Try
	Void
	Volatile
	While
	keywordsEnd
)

var keywords = map[string]TokenKind{
	"abstract":     Abstract,
	"assert":       Assert,
	"boolean":      Boolean,
	"break":        Break,
	"byte":         Byte,
	"case":         Case,
	"catch":        Catch,
	"char":         Char,
	"class":        Class,
	"const":        Const,
	"continue":     Continue,
	"default":      Default,
	"do":           Do,
	"double":       Double,
	"else":         Else,
	"enum":         Enum,
	"extends":      Extends,
	"false":        False,
	"final":        Final,
	"finally":      Finally,
	"float":        Float,
	"for":          For,
	"goto":         Goto,
	"if":           If,
	"implements":   Implements,
	"import":       Import,
	"instanceof":   Instanceof,
	"int":          Int,
	"interface":    Interface,
	"long":         Long,
	"native":       Native,
	"new":          New,
	"null":         Null,
	"package":      Package,
	"private":      Private,
	"protected":    Protected,
	"public":       Public,
	"return":       Return,
	"short":        Short,
	"static":       Static,
	"strictfp":     Strictfp,
	"super":        Super,
	"switch":       Switch,
	"synchronized": Synchronized,
	"this":         This,
	"throw":        Throw,
	"throws":       Throws,
	"transient":    Transient,
	"true":         True,
	"try":          Try,
	"void":         Void,
	"volatile":     Volatile,
	"while":        While,
}

var symbols = map[TokenKind]string{
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
	Semicolon:     ";",
	Comma:         ",",
	Dot:           ".",
	Ellipsis:      "...",
	At:            "@",
	Question:      "?",
	Colon:         ":",
	ColonColon:    "::",
	Arrow:         "->",
	Assign:        "=",
	Eq:            "==",
	NotEq:         "!=",
	Lt:            "<",
	Le:            "<=",
	Gt:            ">",
	Ge:            ">=",
	Not:           "!",
	Tilde:         "~",
	AndAnd:        "&&",
	OrOr:          "||",
	Inc:           "++",
	Dec:           "--",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	And:           "&",
	Or:            "|",
	Caret:         "^",
	Percent:       "%",
	Shl:           "<<",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	AndAssign:     "&=",
	OrAssign:      "|=",
	CaretAssign:   "^=",
	PercentAssign: "%=",
	ShlAssign:     "<<=",
}

// String returns a readable name for the kind.
func (k TokenKind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Illegal:
		return "illegal"
	case Ident:
		return "identifier"
	case NumberLiteral:
		return "number"
	case CharLiteral:
		return "char"
	case StringLiteral:
		return "string"
	case LineComment, BlockComment, DocComment:
		return "comment"
	}
	if s, ok := symbols[k]; ok {
		return "'" + s + "'"
	}
	for word, kw := range keywords {
		if kw == k {
			return word
		}
	}
	return "token"
}

// IsKeyword reports whether k is a reserved word.
func (k TokenKind) IsKeyword() bool { return k > keywordsBegin && k < keywordsEnd }

// IsComment reports whether k is any comment kind.
func (k TokenKind) IsComment() bool {
	return k == LineComment || k == BlockComment || k == DocComment
}

// IsModifier reports whether k is a modifier keyword.
func (k TokenKind) IsModifier() bool {
	switch k {
	case Public, Protected, Private, Static, Final, Abstract, Native,
		Synchronized, Transient, Volatile, Strictfp:
		return true
	default:
		return false
	}
}

// IsPrimitive reports whether k names a primitive type.
func (k TokenKind) IsPrimitive() bool {
	switch k {
	case Boolean, Byte, Char, Short, Int, Long, Float, Double, Void:
		return true
	default:
		return false
	}
}

// Keyword returns the kind of a reserved word.
func Keyword(word string) (TokenKind, bool) {
	k, ok := keywords[word]
	return k, ok
}

// Token is a lexical token covering [Start, End) of the source.
type Token struct {
	Kind  TokenKind
	Start int
	End   int
}

// Len returns the token length in bytes.
func (t Token) Len() int { return t.End - t.Start }

// Text returns the token text within src.
func (t Token) Text(src []byte) string { return string(src[t.Start:t.End]) }
