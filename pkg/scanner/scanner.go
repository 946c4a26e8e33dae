package scanner

import (
	"unicode"
	"unicode/utf8"
)

// Scanner reads tokens from a source buffer. It is seekable and cheap to
// create; it holds no state besides the current offset.
type Scanner struct {
	src []byte
	pos int
}

// NewScanner creates a scanner positioned at the start of src.
func NewScanner(src []byte) *Scanner {
	return &Scanner{src: src}
}

// Source returns the scanned buffer.
func (s *Scanner) Source() []byte { return s.src }

// Offset returns the current read offset.
func (s *Scanner) Offset() int { return s.pos }

// Seek moves the read offset.
func (s *Scanner) Seek(offset int) {
	switch {
	case offset < 0:
		s.pos = 0
	case offset > len(s.src):
		s.pos = len(s.src)
	default:
		s.pos = offset
	}
}

// Next returns the next token, including comments. At the end of input it
// returns an EOF token with Start == End == len(src).
func (s *Scanner) Next() Token {
	s.skipWhitespace()
	start := s.pos
	if s.pos >= len(s.src) {
		return Token{Kind: EOF, Start: start, End: start}
	}
	kind := s.scan()
	if s.pos > len(s.src) {
		s.pos = len(s.src)
	}
	return Token{Kind: kind, Start: start, End: s.pos}
}

// NextSignificant returns the next token that is not a comment.
func (s *Scanner) NextSignificant() Token {
	for {
		tok := s.Next()
		if !tok.Kind.IsComment() {
			return tok
		}
	}
}

func (s *Scanner) skipWhitespace() {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case ' ', '\t', '\n', '\r', '\f':
			s.pos++
		default:
			return
		}
	}
}

func (s *Scanner) peek(n int) byte {
	if s.pos+n < len(s.src) {
		return s.src[s.pos+n]
	}
	return 0
}

func (s *Scanner) scan() TokenKind {
	c := s.src[s.pos]
	switch {
	case isIdentStart(c):
		return s.scanIdent()
	case c >= utf8.RuneSelf:
		r, size := utf8.DecodeRune(s.src[s.pos:])
		if unicode.IsLetter(r) {
			return s.scanIdent()
		}
		s.pos += size
		return Illegal
	case isDigit(c), c == '.' && isDigit(s.peek(1)):
		return s.scanNumber()
	case c == '"':
		return s.scanString()
	case c == '\'':
		return s.scanChar()
	case c == '/' && s.peek(1) == '/':
		for s.pos < len(s.src) && s.src[s.pos] != '\n' && s.src[s.pos] != '\r' {
			s.pos++
		}
		return LineComment
	case c == '/' && s.peek(1) == '*':
		kind := BlockComment
		if s.peek(2) == '*' && s.peek(3) != '/' {
			kind = DocComment
		}
		s.pos += 2
		for s.pos < len(s.src) {
			if s.src[s.pos] == '*' && s.peek(1) == '/' {
				s.pos += 2
				return kind
			}
			s.pos++
		}
		return Illegal
	}
	return s.scanOperator()
}

func (s *Scanner) scanIdent() TokenKind {
	start := s.pos
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if isIdentPart(c) {
			s.pos++
			continue
		}
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRune(s.src[s.pos:])
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				s.pos += size
				continue
			}
		}
		break
	}
	if kw, ok := keywords[string(s.src[start:s.pos])]; ok {
		return kw
	}
	return Ident
}

func (s *Scanner) scanNumber() TokenKind {
	if s.src[s.pos] == '0' && (s.peek(1) == 'x' || s.peek(1) == 'X') {
		s.pos += 2
		for s.pos < len(s.src) && (isHex(s.src[s.pos]) || s.src[s.pos] == '_' || s.src[s.pos] == '.') {
			s.pos++
		}
		if s.pos < len(s.src) && (s.src[s.pos] == 'p' || s.src[s.pos] == 'P') {
			s.scanExponent()
		}
	} else if s.src[s.pos] == '0' && (s.peek(1) == 'b' || s.peek(1) == 'B') {
		s.pos += 2
		for s.pos < len(s.src) && (s.src[s.pos] == '0' || s.src[s.pos] == '1' || s.src[s.pos] == '_') {
			s.pos++
		}
	} else {
		for s.pos < len(s.src) && (isDigit(s.src[s.pos]) || s.src[s.pos] == '_') {
			s.pos++
		}
		if s.pos < len(s.src) && s.src[s.pos] == '.' && s.peek(1) != '.' {
			s.pos++
			for s.pos < len(s.src) && (isDigit(s.src[s.pos]) || s.src[s.pos] == '_') {
				s.pos++
			}
		}
		if s.pos < len(s.src) && (s.src[s.pos] == 'e' || s.src[s.pos] == 'E') {
			s.scanExponent()
		}
	}
	if s.pos < len(s.src) {
		switch s.src[s.pos] {
		case 'l', 'L', 'f', 'F', 'd', 'D':
			s.pos++
		}
	}
	return NumberLiteral
}

func (s *Scanner) scanExponent() {
	s.pos++
	if s.pos < len(s.src) && (s.src[s.pos] == '+' || s.src[s.pos] == '-') {
		s.pos++
	}
	for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
		s.pos++
	}
}

func (s *Scanner) scanString() TokenKind {
	if s.peek(1) == '"' && s.peek(2) == '"' {
		s.pos += 3
		for s.pos < len(s.src) {
			switch {
			case s.src[s.pos] == '\\':
				s.pos += 2
			case s.src[s.pos] == '"' && s.peek(1) == '"' && s.peek(2) == '"':
				s.pos += 3
				return StringLiteral
			default:
				s.pos++
			}
		}
		return Illegal
	}
	return s.scanQuoted('"', StringLiteral)
}

func (s *Scanner) scanChar() TokenKind {
	return s.scanQuoted('\'', CharLiteral)
}

func (s *Scanner) scanQuoted(quote byte, kind TokenKind) TokenKind {
	s.pos++
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
		case quote:
			s.pos++
			return kind
		case '\n', '\r':
			return Illegal
		default:
			s.pos++
		}
	}
	if s.pos > len(s.src) {
		s.pos = len(s.src)
	}
	return Illegal
}

// operators lists multi-character operators, longest first within each prefix.
var operators = []struct {
	text string
	kind TokenKind
}{
	{"...", Ellipsis},
	{"<<=", ShlAssign},
	{"::", ColonColon},
	{"->", Arrow},
	{"==", Eq},
	{"!=", NotEq},
	{"<=", Le},
	{">=", Ge},
	{"&&", AndAnd},
	{"||", OrOr},
	{"++", Inc},
	{"--", Dec},
	{"<<", Shl},
	{"+=", PlusAssign},
	{"-=", MinusAssign},
	{"*=", StarAssign},
	{"/=", SlashAssign},
	{"&=", AndAssign},
	{"|=", OrAssign},
	{"^=", CaretAssign},
	{"%=", PercentAssign},
}

var singles = map[byte]TokenKind{
	'(': LParen, ')': RParen, '{': LBrace, '}': RBrace, '[': LBracket, ']': RBracket,
	';': Semicolon, ',': Comma, '.': Dot, '@': At, '?': Question, ':': Colon,
	'=': Assign, '<': Lt, '>': Gt, '!': Not, '~': Tilde, '+': Plus, '-': Minus,
	'*': Star, '/': Slash, '&': And, '|': Or, '^': Caret, '%': Percent,
}

func (s *Scanner) scanOperator() TokenKind {
	rest := s.src[s.pos:]
	for _, op := range operators {
		if len(rest) >= len(op.text) && string(rest[:len(op.text)]) == op.text {
			s.pos += len(op.text)
			return op.kind
		}
	}
	if kind, ok := singles[rest[0]]; ok {
		s.pos++
		return kind
	}
	s.pos++
	return Illegal
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// IsIdentifierPart reports whether c can continue a Java identifier.
func IsIdentifierPart(c byte) bool { return isIdentPart(c) || c >= utf8.RuneSelf }

// Tokenize scans all of src. Comments are returned separately from the
// significant tokens; the token slice always ends with EOF.
func Tokenize(src []byte) ([]Token, []Token) {
	s := NewScanner(src)
	var tokens, comments []Token
	for {
		tok := s.Next()
		if tok.Kind.IsComment() {
			comments = append(comments, tok)
			continue
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, comments
		}
	}
}
