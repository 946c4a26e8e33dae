package scanner

// Lookup locates tokens relative to known offsets. Every method reports
// whether the token was found; callers fall back to an offset they already
// know when it was not.
type Lookup struct {
	s *Scanner
}

// NewLookup creates a lookup over src.
func NewLookup(src []byte) *Lookup {
	return &Lookup{s: NewScanner(src)}
}

// ReadNext returns the first token at or after offset.
func (l *Lookup) ReadNext(offset int, skipComments bool) (Token, bool) {
	l.s.Seek(offset)
	var tok Token
	if skipComments {
		tok = l.s.NextSignificant()
	} else {
		tok = l.s.Next()
	}
	return tok, tok.Kind != EOF
}

// Find returns the first significant token of kind at or after offset.
func (l *Lookup) Find(kind TokenKind, offset int) (Token, bool) {
	l.s.Seek(offset)
	for {
		tok := l.s.NextSignificant()
		if tok.Kind == kind {
			return tok, true
		}
		if tok.Kind == EOF {
			return tok, false
		}
	}
}

// TokenEnd returns the end offset of the next token of kind after offset.
func (l *Lookup) TokenEnd(kind TokenKind, offset int) (int, bool) {
	tok, ok := l.Find(kind, offset)
	if !ok {
		return offset, false
	}
	return tok.End, true
}

// TokenStart returns the start offset of the next token of kind after offset.
func (l *Lookup) TokenStart(kind TokenKind, offset int) (int, bool) {
	tok, ok := l.Find(kind, offset)
	if !ok {
		return offset, false
	}
	return tok.Start, true
}

// NextStart returns the start of the token following offset.
func (l *Lookup) NextStart(offset int, skipComments bool) (int, bool) {
	tok, ok := l.ReadNext(offset, skipComments)
	if !ok {
		return tok.Start, false
	}
	return tok.Start, true
}

// NextEnd returns the end of the token following offset.
func (l *Lookup) NextEnd(offset int, skipComments bool) (int, bool) {
	tok, ok := l.ReadNext(offset, skipComments)
	if !ok {
		return offset, false
	}
	return tok.End, true
}

// ReadOperator returns the operator token at or after offset. Adjacent
// '>' and '>=' tokens are joined into shift operators.
func (l *Lookup) ReadOperator(offset int) (Token, bool) {
	tok, ok := l.ReadNext(offset, true)
	if !ok || tok.Kind != Gt {
		return tok, ok
	}
	for count := 1; count < 3; count++ {
		next := l.s.Next()
		if next.Start != tok.End || (next.Kind != Gt && next.Kind != Ge) {
			break
		}
		tok.End = next.End
		if next.Kind == Ge {
			break
		}
	}
	return tok, true
}

// SkipBalanced returns the end of the bracketed region opened by the token
// at offset, for example the closing ')' of an argument list.
func (l *Lookup) SkipBalanced(offset int) (int, bool) {
	open, ok := l.ReadNext(offset, true)
	if !ok {
		return offset, false
	}
	var closing TokenKind
	switch open.Kind {
	case LParen:
		closing = RParen
	case LBrace:
		closing = RBrace
	case LBracket:
		closing = RBracket
	default:
		return offset, false
	}
	depth := 1
	for {
		tok := l.s.NextSignificant()
		switch tok.Kind {
		case EOF:
			return offset, false
		case open.Kind:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return tok.End, true
			}
		}
	}
}
