package expr

import (
	"fmt"

	"github.com/agbru/bigcalc/bigint"
)

// Node is an expression tree node.
type Node interface {
	// Pos returns the byte offset of the node in the source.
	Pos() int
	// String renders the node fully parenthesised.
	String() string
}

// NumberLit is a decimal literal.
type NumberLit struct {
	At    int
	Text  string
	Value *bigint.Int
}

// VarRef reads a variable.
type VarRef struct {
	At   int
	Name string
}

// UnaryExpr is -x, +x or ~x.
type UnaryExpr struct {
	At int
	Op Kind
	X  Node
}

// BinaryExpr applies an arithmetic, bitwise, shift or comparison operator.
type BinaryExpr struct {
	At   int
	Op   Kind
	X, Y Node
}

// AssignExpr is name = value or a compound assignment such as name += value.
type AssignExpr struct {
	At    int
	Op    Kind
	Name  string
	Value Node
}

// IncDecExpr is ++name, --name, name++ or name--.
type IncDecExpr struct {
	At      int
	Op      Kind
	Name    string
	Postfix bool
}

func (n *NumberLit) Pos() int  { return n.At }
func (n *VarRef) Pos() int     { return n.At }
func (n *UnaryExpr) Pos() int  { return n.At }
func (n *BinaryExpr) Pos() int { return n.At }
func (n *AssignExpr) Pos() int { return n.At }
func (n *IncDecExpr) Pos() int { return n.At }

func (n *NumberLit) String() string { return n.Value.String() }
func (n *VarRef) String() string    { return n.Name }
func (n *UnaryExpr) String() string { return fmt.Sprintf("(%s%s)", n.Op, n.X) }
func (n *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", n.X, n.Op, n.Y)
}
func (n *AssignExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Name, n.Op, n.Value)
}
func (n *IncDecExpr) String() string {
	if n.Postfix {
		return fmt.Sprintf("(%s%s)", n.Name, n.Op)
	}
	return fmt.Sprintf("(%s%s)", n.Op, n.Name)
}
