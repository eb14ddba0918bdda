package expr

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

type binding struct {
	Name  string
	Canon string
}

func prepend[T any](v T, from []T) []T {
	return append([]T{v}, from...)
}

func bind(ctx []binding, name, canon string) []binding {
	return prepend(binding{name, canon}, ctx)
}

func lookup(ctx []binding, name string) (string, bool) {
	i := slices.IndexFunc(ctx, func(b binding) bool { return b.Name == name })
	if i < 0 {
		return "", false
	}
	return ctx[i].Canon, true
}

// freshName is the n-th canonical name: a..z, then a letter followed by a
// digit string.
func freshName(n int) string {
	name := string(rune('a' + n%26))
	if n >= 26 {
		name += strconv.Itoa((n - 26) % 26)
	}
	return name
}

type normalizer struct {
	n int
}

func (nz *normalizer) fresh() string {
	name := freshName(nz.n)
	nz.n++
	return name
}

// Normalize renames every variable bound by a let or lambda in e to the
// canonical sequence a, b, c, ... in depth-first, left-to-right order of the
// binding sites. Free identifiers are kept. Alpha-equivalent expressions
// normalize to Equal results, and Normalize(Normalize(e)) equals
// Normalize(e).
func Normalize(e Expr) Expr {
	var nz normalizer
	return nz.expr(nil, e)
}

func (nz *normalizer) expr(ctx []binding, e Expr) Expr {
	switch e := e.(type) {
	case Id:
		if canon, ok := lookup(ctx, string(e)); ok {
			return Id(canon)
		}
		return e
	case Num, Bool:
		return e
	case Op:
		return Op{Op: e.Op, Args: nz.all(ctx, e.Args)}
	case List:
		return List(nz.all(ctx, e))
	case Tree:
		return nz.tree(ctx, e)
	case Let:
		canon := nz.fresh()
		ctx = bind(ctx, e.Name, canon)
		value := nz.expr(ctx, e.Value)
		body := nz.expr(ctx, e.Body)
		return Let{Name: canon, Value: value, Body: body}
	case Lambda:
		params := make([]string, len(e.Params))
		for i := range e.Params {
			params[i] = nz.fresh()
		}
		// Bound right to left, so a repeated parameter refers to its
		// leftmost occurrence.
		for i := len(e.Params) - 1; i >= 0; i-- {
			ctx = bind(ctx, e.Params[i], params[i])
		}
		return Lambda{Params: params, Body: nz.expr(ctx, e.Body)}
	case Apply:
		fn := nz.expr(ctx, e.Func)
		return Apply{Func: fn, Args: nz.all(ctx, e.Args)}
	}
	panic(fmt.Sprintf("unreachable: %T", e))
}

func (nz *normalizer) all(ctx []binding, es []Expr) []Expr {
	if es == nil {
		return nil
	}
	return lo.Map(es, func(e Expr, _ int) Expr { return nz.expr(ctx, e) })
}

func (nz *normalizer) tree(ctx []binding, t Tree) Tree {
	if t.IsEmpty() {
		return t
	}
	label := nz.expr(ctx, t.Label)
	var children []Tree
	if t.Children != nil {
		children = lo.Map(t.Children, func(c Tree, _ int) Tree { return nz.tree(ctx, c) })
	}
	return Tree{Label: label, Children: children}
}
