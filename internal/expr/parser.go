package expr

import (
	"fmt"
	"strings"

	"github.com/agbru/bigcalc/bigint"
)

// SyntaxError reports malformed input at a byte offset.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

// Binding powers, lowest first. Assignment is right-associative, every
// other binary operator associates to the left.
const (
	precNone = iota
	precAssign
	precCompare
	precOr
	precXor
	precAnd
	precShift
	precAdd
	precMul
)

func binaryPrec(k Kind) int {
	switch k {
	case EqEq, BangEq, Lt, Gt, LtEq, GtEq:
		return precCompare
	case Pipe:
		return precOr
	case Caret:
		return precXor
	case Amp:
		return precAnd
	case Shl, Shr:
		return precShift
	case Plus, Minus:
		return precAdd
	case Star, Slash, Percent:
		return precMul
	}
	if k.IsAssign() {
		return precAssign
	}
	return precNone
}

// Parser is a Pratt parser over a token slice.
type Parser struct {
	toks []Token
	pos  int
}

// Parse parses src into its statements. Statements are separated by ';'
// and empty statements are skipped.
func Parse(src string) ([]Node, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	var stmts []Node
	for p.peek().Kind != EOF {
		if p.peek().Kind == Semicolon {
			p.advance()
			continue
		}
		n, err := p.parseExpr(precAssign)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, n)
		switch t := p.peek(); t.Kind {
		case Semicolon, EOF:
		default:
			return nil, &SyntaxError{Pos: t.Pos, Msg: fmt.Sprintf("unexpected %s after expression", describe(t))}
		}
	}
	return stmts, nil
}

func (p *Parser) peek() Token { return p.toks[p.pos] }

func (p *Parser) advance() Token {
	t := p.toks[p.pos]
	if t.Kind != EOF {
		p.pos++
	}
	return t
}

func describe(t Token) string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case Number, Ident:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	}
	return fmt.Sprintf("%q", t.Kind.String())
}

// parseExpr parses operators whose binding power is at least minPrec.
func (p *Parser) parseExpr(minPrec int) (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		prec := binaryPrec(tok.Kind)
		if prec == precNone || prec < minPrec {
			return left, nil
		}
		p.advance()

		if prec == precAssign {
			v, ok := left.(*VarRef)
			if !ok {
				return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("cannot assign to %s", left)}
			}
			right, err := p.parseExpr(precAssign)
			if err != nil {
				return nil, err
			}
			left = &AssignExpr{At: v.At, Op: tok.Kind, Name: v.Name, Value: right}
			continue
		}

		right, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{At: tok.Pos, Op: tok.Kind, X: left, Y: right}
	}
}

func (p *Parser) parseUnary() (Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case Minus, Plus, Tilde:
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{At: tok.Pos, Op: tok.Kind, X: x}, nil
	case PlusPlus, MinusMinus:
		p.advance()
		id := p.advance()
		if id.Kind != Ident {
			return nil, &SyntaxError{Pos: id.Pos, Msg: fmt.Sprintf("%s needs a variable, found %s", tok.Kind, describe(id))}
		}
		return &IncDecExpr{At: tok.Pos, Op: tok.Kind, Name: id.Text}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (Node, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	tok := p.peek()
	if tok.Kind != PlusPlus && tok.Kind != MinusMinus {
		return x, nil
	}
	v, ok := x.(*VarRef)
	if !ok {
		return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("%s needs a variable", tok.Kind)}
	}
	p.advance()
	return &IncDecExpr{At: v.At, Op: tok.Kind, Name: v.Name, Postfix: true}, nil
}

func (p *Parser) parsePrimary() (Node, error) {
	tok := p.advance()
	switch tok.Kind {
	case Number:
		v, err := bigint.Parse(strings.ReplaceAll(tok.Text, "_", ""))
		if err != nil {
			return nil, err
		}
		return &NumberLit{At: tok.Pos, Text: tok.Text, Value: v}, nil
	case Ident:
		return &VarRef{At: tok.Pos, Name: tok.Text}, nil
	case LParen:
		x, err := p.parseExpr(precAssign)
		if err != nil {
			return nil, err
		}
		if closing := p.advance(); closing.Kind != RParen {
			return nil, &SyntaxError{Pos: closing.Pos, Msg: fmt.Sprintf("expected ')', found %s", describe(closing))}
		}
		return x, nil
	}
	return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("expected expression, found %s", describe(tok))}
}
