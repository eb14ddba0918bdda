package expr

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Equal is exact structural equality. Bound names must match too; compare
// Normalize(a) and Normalize(b) for alpha-equivalence.
func Equal(a, b Expr) bool {
	switch a := a.(type) {
	case Id:
		b, ok := b.(Id)
		return ok && a == b
	case Num:
		b, ok := b.(Num)
		return ok && a == b
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	case Op:
		b, ok := b.(Op)
		return ok && a.Op == b.Op && equalAll(a.Args, b.Args)
	case List:
		b, ok := b.(List)
		return ok && equalAll(a, b)
	case Tree:
		b, ok := b.(Tree)
		return ok && equalTree(a, b)
	case Let:
		b, ok := b.(Let)
		return ok && a.Name == b.Name && Equal(a.Value, b.Value) && Equal(a.Body, b.Body)
	case Lambda:
		b, ok := b.(Lambda)
		return ok && slices.Equal(a.Params, b.Params) && Equal(a.Body, b.Body)
	case Apply:
		b, ok := b.(Apply)
		return ok && Equal(a.Func, b.Func) && equalAll(a.Args, b.Args)
	case nil:
		return b == nil
	}
	panic(fmt.Sprintf("unreachable: %T", a))
}

func equalAll(a, b []Expr) bool {
	return slices.EqualFunc(a, b, Equal)
}

func equalTree(a, b Tree) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return a.IsEmpty() == b.IsEmpty()
	}
	return Equal(a.Label, b.Label) && slices.EqualFunc(a.Children, b.Children, equalTree)
}
