package expr

import (
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// RenameFree replaces every identifier of e that no enclosing let or lambda
// binds with f(name). Bound identifiers and binders are left alone. f should
// not return a name bound at the use site, or the identifier will be captured.
func RenameFree(e Expr, f func(string) string) Expr {
	return renameFree(nil, e, f)
}

func renameFree(bound []string, e Expr, f func(string) string) Expr {
	switch e := e.(type) {
	case Id:
		if slices.Contains(bound, string(e)) {
			return e
		}
		return Id(f(string(e)))
	case Num, Bool:
		return e
	case Op:
		return Op{Op: e.Op, Args: renameFreeAll(bound, e.Args, f)}
	case List:
		return List(renameFreeAll(bound, e, f))
	case Tree:
		return renameFreeTree(bound, e, f)
	case Let:
		bound = prepend(e.Name, bound)
		return Let{Name: e.Name, Value: renameFree(bound, e.Value, f), Body: renameFree(bound, e.Body, f)}
	case Lambda:
		for _, p := range e.Params {
			bound = prepend(p, bound)
		}
		return Lambda{Params: e.Params, Body: renameFree(bound, e.Body, f)}
	case Apply:
		return Apply{Func: renameFree(bound, e.Func, f), Args: renameFreeAll(bound, e.Args, f)}
	}
	panic(fmt.Sprintf("unreachable: %T", e))
}

func renameFreeAll(bound []string, es []Expr, f func(string) string) []Expr {
	if es == nil {
		return nil
	}
	return lo.Map(es, func(e Expr, _ int) Expr { return renameFree(bound, e, f) })
}

func renameFreeTree(bound []string, t Tree, f func(string) string) Tree {
	if t.IsEmpty() {
		return t
	}
	var children []Tree
	if t.Children != nil {
		children = lo.Map(t.Children, func(c Tree, _ int) Tree { return renameFreeTree(bound, c, f) })
	}
	return Tree{Label: renameFree(bound, t.Label, f), Children: children}
}
