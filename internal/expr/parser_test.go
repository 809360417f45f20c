package expr

import (
	"errors"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	t.Parallel()
	toks, err := Tokenize("x <<= 1_000 >> y++;~(a!=b)")
	if err != nil {
		t.Fatal(err)
	}
	want := []Kind{Ident, ShlAssign, Number, Shr, Ident, PlusPlus, Semicolon, Tilde, LParen, Ident, BangEq, Ident, RParen, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d = %s, want %s", i, toks[i].Kind, k)
		}
	}
	if toks[2].Text != "1_000" || toks[2].Pos != 6 {
		t.Errorf("number token = %+v", toks[2])
	}
}

func TestTokenizeErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src string
		pos int
	}{
		{"1 $ 2", 2},
		{"12abc", 2},
		{"a\x01", 1},
	}
	for _, tt := range tests {
		_, err := Tokenize(tt.src)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("Tokenize(%q) error = %v, want *SyntaxError", tt.src, err)
			continue
		}
		if se.Pos != tt.pos {
			t.Errorf("Tokenize(%q) Pos = %d, want %d", tt.src, se.Pos, tt.pos)
		}
	}
}

func TestIsIdent(t *testing.T) {
	t.Parallel()
	for s, want := range map[string]bool{
		"x": true, "_": true, "var_2": true, "Total": true,
		"": false, "2x": false, "a-b": false, "a b": false, "é": false,
	} {
		if got := IsIdent(s); got != want {
			t.Errorf("IsIdent(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestParsePrecedence(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"10 - 4 - 3", "((10 - 4) - 3)"},
		{"100 / 10 / 5", "((100 / 10) / 5)"},
		{"1 << 2 + 3", "(1 << (2 + 3))"},
		{"a & b | c ^ d", "((a & b) | (c ^ d))"},
		{"a | b == c", "((a | b) == c)"},
		{"1 < 2 == 1", "((1 < 2) == 1)"},
		{"-x * -y", "((-x) * (-y))"},
		{"~a & b", "((~a) & b)"},
		{"- -5", "(-(-5))"},
		{"x = y = 3", "(x = (y = 3))"},
		{"x += 2 * y", "(x += (2 * y))"},
		{"x <<= 1", "(x <<= 1)"},
		{"x++ + ++y", "((x++) + (++y))"},
		{"1_000_000", "1000000"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			stmts, err := Parse(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			if len(stmts) != 1 {
				t.Fatalf("got %d statements", len(stmts))
			}
			if got := stmts[0].String(); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestParseStatements(t *testing.T) {
	t.Parallel()
	stmts, err := Parse(";x = 1;; x + 1;")
	if err != nil {
		t.Fatal(err)
	}
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
	stmts, err = Parse("   ")
	if err != nil || len(stmts) != 0 {
		t.Errorf("blank input: %v, %d statements", err, len(stmts))
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src string
		pos int
		msg string
	}{
		{"1 +", 3, "expected expression, found end of input"},
		{"(1 + 2", 6, "expected ')'"},
		{"1 2", 2, "unexpected number"},
		{"3 = 4", 2, "cannot assign to 3"},
		{"a + b = 1", 6, "cannot assign"},
		{"5++", 1, "++ needs a variable"},
		{"++5", 2, "++ needs a variable"},
		{")", 0, "expected expression"},
	}
	for _, tt := range tests {
		_, err := Parse(tt.src)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("Parse(%q) error = %v, want *SyntaxError", tt.src, err)
			continue
		}
		if se.Pos != tt.pos || !strings.Contains(se.Msg, tt.msg) {
			t.Errorf("Parse(%q) = %v, want pos %d containing %q", tt.src, se, tt.pos, tt.msg)
		}
	}
}

// FuzzParse verifies that arbitrary input never panics the parser and that
// a successful parse renders to text that parses to the same tree.
func FuzzParse(f *testing.F) {
	f.Add("1 + 2 * 3")
	f.Add("x = y <<= 3")
	f.Add("~(a ^ b) | c--")
	f.Add("((((")
	f.Add("1__2 >>")

	f.Fuzz(func(t *testing.T, src string) {
		if len(src) > 256 {
			return
		}
		stmts, err := Parse(src)
		if err != nil {
			return
		}
		for _, s := range stmts {
			again, err := Parse(s.String())
			if err != nil {
				t.Fatalf("rendering %q of %q does not parse: %v", s, src, err)
			}
			if len(again) != 1 || again[0].String() != s.String() {
				t.Fatalf("rendering %q is not stable", s)
			}
		}
	})
}
