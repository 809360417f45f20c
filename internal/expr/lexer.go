package expr

// Lexer splits an expression into tokens. Operators are matched greedily:
// three-byte forms first, then two-byte, then single bytes.
type Lexer struct {
	src string
	off int
}

// NewLexer returns a lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

func (lx *Lexer) peekByte(n int) byte {
	if lx.off+n < len(lx.src) {
		return lx.src[lx.off+n]
	}
	return 0
}

func (lx *Lexer) try(s string) bool {
	if len(lx.src)-lx.off >= len(s) && lx.src[lx.off:lx.off+len(s)] == s {
		lx.off += len(s)
		return true
	}
	return false
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IsIdent reports whether s is a valid variable name.
func IsIdent(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentStart(s[i]) && !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// Next returns the next token, or a *SyntaxError for a byte that starts no
// token.
func (lx *Lexer) Next() (Token, error) {
	for lx.off < len(lx.src) && isSpace(lx.src[lx.off]) {
		lx.off++
	}
	start := lx.off
	emit := func(k Kind) (Token, error) {
		return Token{Kind: k, Text: lx.src[start:lx.off], Pos: start}, nil
	}
	if lx.off >= len(lx.src) {
		return Token{Kind: EOF, Pos: start}, nil
	}

	c := lx.src[lx.off]
	switch {
	case isDigit(c):
		for lx.off < len(lx.src) && (isDigit(lx.src[lx.off]) || lx.src[lx.off] == '_') {
			lx.off++
		}
		if isIdentStart(lx.peekByte(0)) {
			return Token{}, &SyntaxError{Pos: lx.off, Msg: "invalid digit in number"}
		}
		return emit(Number)
	case isIdentStart(c):
		for lx.off < len(lx.src) && (isIdentStart(lx.src[lx.off]) || isDigit(lx.src[lx.off])) {
			lx.off++
		}
		return emit(Ident)
	}

	switch {
	case lx.try("<<="):
		return emit(ShlAssign)
	case lx.try(">>="):
		return emit(ShrAssign)
	case lx.try("<<"):
		return emit(Shl)
	case lx.try(">>"):
		return emit(Shr)
	case lx.try("<="):
		return emit(LtEq)
	case lx.try(">="):
		return emit(GtEq)
	case lx.try("=="):
		return emit(EqEq)
	case lx.try("!="):
		return emit(BangEq)
	case lx.try("++"):
		return emit(PlusPlus)
	case lx.try("--"):
		return emit(MinusMinus)
	case lx.try("+="):
		return emit(PlusAssign)
	case lx.try("-="):
		return emit(MinusAssign)
	case lx.try("*="):
		return emit(StarAssign)
	case lx.try("/="):
		return emit(SlashAssign)
	case lx.try("%="):
		return emit(PercentAssign)
	case lx.try("&="):
		return emit(AmpAssign)
	case lx.try("|="):
		return emit(PipeAssign)
	case lx.try("^="):
		return emit(CaretAssign)
	}

	lx.off++
	switch c {
	case '(':
		return emit(LParen)
	case ')':
		return emit(RParen)
	case ';':
		return emit(Semicolon)
	case '+':
		return emit(Plus)
	case '-':
		return emit(Minus)
	case '*':
		return emit(Star)
	case '/':
		return emit(Slash)
	case '%':
		return emit(Percent)
	case '&':
		return emit(Amp)
	case '|':
		return emit(Pipe)
	case '^':
		return emit(Caret)
	case '~':
		return emit(Tilde)
	case '<':
		return emit(Lt)
	case '>':
		return emit(Gt)
	case '=':
		return emit(Assign)
	}
	return Token{}, &SyntaxError{Pos: start, Msg: "unexpected character " + quoteByte(c)}
}

func quoteByte(c byte) string {
	if c < 0x20 || c >= 0x7f {
		const hex = "0123456789abcdef"
		return `'\x` + string([]byte{hex[c>>4], hex[c&0xf]}) + `'`
	}
	return "'" + string(c) + "'"
}

// Tokenize returns every token of src up to and including EOF.
func Tokenize(src string) ([]Token, error) {
	lx := NewLexer(src)
	var toks []Token
	for {
		t, err := lx.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.Kind == EOF {
			return toks, nil
		}
	}
}
