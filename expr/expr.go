// Package expr is the expression algebra the synthesizer enumerates over.
//
// Expressions are immutable values. Size gives the structural cost used to
// order enumeration, Normalize renames bound variables to a canonical
// sequence, and String prints the parenthesized form. Together,
// String(Normalize(e)) is a deduplication key: alpha-equivalent expressions
// produce the same string.
package expr

import (
	"fmt"

	"github.com/smasher164/synth/ops"
)

type Expr interface {
	isExpr()
	fmt.Stringer
}

type Id string

func (Id) isExpr()          {}
func (e Id) String() string { return String(e) }

type Num int

func (Num) isExpr()          {}
func (e Num) String() string { return String(e) }

type Bool bool

func (Bool) isExpr()          {}
func (e Bool) String() string { return String(e) }

// Op applies a registered operator. len(Args) should equal the operator's
// arity; Validate reports applications where it does not.
type Op struct {
	Op   ops.Op
	Args []Expr
}

func (Op) isExpr()          {}
func (e Op) String() string { return String(e) }

type List []Expr

func (List) isExpr()          {}
func (e List) String() string { return String(e) }

// Tree is a tree literal. A nil Label is the empty tree.
type Tree struct {
	Label    Expr
	Children []Tree
}

func (Tree) isExpr()          {}
func (e Tree) String() string { return String(e) }

func (e Tree) IsEmpty() bool { return e.Label == nil }

// Size is 1 plus the sizes of the children. Labels do not count.
func (e Tree) Size() int {
	n := 1
	for _, c := range e.Children {
		n += c.Size()
	}
	return n
}

// Let binds Name in both Value and Body.
type Let struct {
	Name  string
	Value Expr
	Body  Expr
}

func (Let) isExpr()          {}
func (e Let) String() string { return String(e) }

type Lambda struct {
	Params []string
	Body   Expr
}

func (Lambda) isExpr()          {}
func (e Lambda) String() string { return String(e) }

type Apply struct {
	Func Expr
	Args []Expr
}

func (Apply) isExpr()          {}
func (e Apply) String() string { return String(e) }

// Call is shorthand for Op{op, args}.
func Call(op ops.Op, args ...Expr) Op {
	return Op{Op: op, Args: args}
}
