package expr

import "fmt"

// Kind identifies a lexical token.
type Kind int

const (
	EOF Kind = iota
	Number
	Ident
	LParen
	RParen
	Semicolon

	// Arithmetic
	Plus
	Minus
	Star
	Slash
	Percent
	PlusPlus
	MinusMinus

	// Bitwise and shifts
	Amp
	Pipe
	Caret
	Tilde
	Shl
	Shr

	// Comparison
	EqEq
	BangEq
	Lt
	Gt
	LtEq
	GtEq

	// Assignment
	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	ShlAssign
	ShrAssign
	AmpAssign
	PipeAssign
	CaretAssign
)

var kindNames = map[Kind]string{
	EOF: "end of input", Number: "number", Ident: "identifier",
	LParen: "(", RParen: ")", Semicolon: ";",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	PlusPlus: "++", MinusMinus: "--",
	Amp: "&", Pipe: "|", Caret: "^", Tilde: "~", Shl: "<<", Shr: ">>",
	EqEq: "==", BangEq: "!=", Lt: "<", Gt: ">", LtEq: "<=", GtEq: ">=",
	Assign: "=", PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=",
	SlashAssign: "/=", PercentAssign: "%=", ShlAssign: "<<=", ShrAssign: ">>=",
	AmpAssign: "&=", PipeAssign: "|=", CaretAssign: "^=",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// compoundOps maps each compound assignment onto its binary operator.
var compoundOps = map[Kind]Kind{
	PlusAssign: Plus, MinusAssign: Minus, StarAssign: Star,
	SlashAssign: Slash, PercentAssign: Percent,
	ShlAssign: Shl, ShrAssign: Shr,
	AmpAssign: Amp, PipeAssign: Pipe, CaretAssign: Caret,
}

// IsAssign reports whether k is = or a compound assignment.
func (k Kind) IsAssign() bool {
	_, ok := compoundOps[k]
	return ok || k == Assign
}

// Token is a lexical token with its byte offset in the source.
type Token struct {
	Kind Kind
	Text string
	Pos  int
}
