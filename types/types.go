// Package types is the type representation shared by the operator table and
// the unification engine: constant base types, applied generic types, arrows,
// and type variables whose state lives in an Arena.
package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var (
	// ErrMalformedTypeChain is returned when following links from a variable
	// revisits a cell or lands on a cell that does not exist.
	ErrMalformedTypeChain = errors.New("malformed type chain")
	// ErrNotFree is returned when linking a variable that is already
	// quantified or linked.
	ErrNotFree = errors.New("type variable is not free")
)

type Type interface {
	isType()
	fmt.Stringer
}

type Const uint8

const (
	Num Const = iota
	Bool
)

func (Const) isType() {}

func (c Const) String() string {
	switch c {
	case Num:
		return "num"
	case Bool:
		return "bool"
	}
	panic("unreachable")
}

// App is a named type applied to arguments, e.g. list[num].
type App struct {
	Name string
	Args []Type
}

func (App) isType() {}

func (t App) String() string { return render(t) }

func List(elem Type) App { return App{Name: "list", Args: []Type{elem}} }

func Tree(elem Type) App { return App{Name: "tree", Args: []Type{elem}} }

type Arrow struct {
	Params []Type
	Ret    Type
}

func (Arrow) isType() {}

func (t Arrow) String() string { return render(t) }

// Var refers to a cell of the arena that created it. Two Vars with the same
// arena and handle are the same variable.
type Var struct {
	arena *Arena
	h     Handle
}

func (Var) isType() {}

func (v Var) Handle() Handle { return v.h }

// Cell returns the current state of the variable, or nil if v does not
// belong to any arena.
func (v Var) Cell() Cell {
	if v.arena == nil {
		return nil
	}
	return v.arena.Cell(v.h)
}

func (v Var) String() string { return render(v) }

// Resolve follows links starting at t until it reaches a type that is not a
// linked variable.
func Resolve(t Type) (Type, error) {
	t, _, err := newExpander().enter(t)
	return t, err
}

// expander tracks the linked variables whose targets are currently being
// walked. Reaching one of them again means the link graph has a cycle, either
// directly (v -> w -> v) or through a structure (v -> list[v]).
type expander struct {
	active map[Var]struct{}
}

func newExpander() *expander {
	return &expander{active: make(map[Var]struct{})}
}

// enter follows links from t, marking every linked variable on the way as
// active. The returned func unmarks them once the caller is done with the
// resolved type.
func (x *expander) enter(t Type) (Type, func(), error) {
	var path []Var
	leave := func() {
		for _, v := range path {
			delete(x.active, v)
		}
	}
	for {
		v, ok := t.(Var)
		if !ok {
			return t, leave, nil
		}
		if _, ok := x.active[v]; ok {
			leave()
			return nil, nil, fmt.Errorf("%w: cycle through handle %d", ErrMalformedTypeChain, v.h)
		}
		switch c := v.Cell().(type) {
		case Link:
			x.active[v] = struct{}{}
			path = append(path, v)
			t = c.To
		case Free, Quantified:
			return v, leave, nil
		default:
			leave()
			return nil, nil, fmt.Errorf("%w: dangling handle %d", ErrMalformedTypeChain, v.h)
		}
	}
}

// String renders t, printing linked variables as the type they point to.
func String(t Type) (string, error) {
	var buf strings.Builder
	if err := newExpander().write(&buf, t); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func render(t Type) string {
	s, err := String(t)
	if err != nil {
		return "<malformed>"
	}
	return s
}

func (x *expander) write(buf *strings.Builder, t Type) error {
	t, leave, err := x.enter(t)
	if err != nil {
		return err
	}
	defer leave()
	switch t := t.(type) {
	case Const:
		buf.WriteString(t.String())
	case App:
		buf.WriteString(t.Name)
		if len(t.Args) == 0 {
			return nil
		}
		buf.WriteByte('[')
		if err := x.writeList(buf, t.Args); err != nil {
			return err
		}
		buf.WriteByte(']')
	case Arrow:
		buf.WriteByte('(')
		if len(t.Params) == 1 {
			if err := x.write(buf, t.Params[0]); err != nil {
				return err
			}
		} else {
			buf.WriteByte('(')
			if err := x.writeList(buf, t.Params); err != nil {
				return err
			}
			buf.WriteByte(')')
		}
		buf.WriteString(" -> ")
		if err := x.write(buf, t.Ret); err != nil {
			return err
		}
		buf.WriteByte(')')
	case Var:
		switch c := t.Cell().(type) {
		case Free:
			buf.WriteString("ft" + strconv.Itoa(c.ID))
		case Quantified:
			buf.WriteString(c.Name)
		default:
			panic("unreachable")
		}
	default:
		panic(fmt.Sprintf("unreachable: %T", t))
	}
	return nil
}

func (x *expander) writeList(buf *strings.Builder, ts []Type) error {
	for i, t := range ts {
		if i > 0 {
			buf.WriteString(", ")
		}
		if err := x.write(buf, t); err != nil {
			return err
		}
	}
	return nil
}

// FreeVars lists the unresolved free variables reachable from t, in
// left-to-right order of first occurrence.
func FreeVars(t Type) ([]Var, error) {
	x := newExpander()
	var out []Var
	var walk func(Type) error
	walk = func(t Type) error {
		t, leave, err := x.enter(t)
		if err != nil {
			return err
		}
		defer leave()
		switch t := t.(type) {
		case Const:
		case App:
			return walkAll(t.Args, walk)
		case Arrow:
			if err := walkAll(t.Params, walk); err != nil {
				return err
			}
			return walk(t.Ret)
		case Var:
			if _, ok := t.Cell().(Free); ok && !lo.Contains(out, t) {
				out = append(out, t)
			}
		default:
			panic(fmt.Sprintf("unreachable: %T", t))
		}
		return nil
	}
	if err := walk(t); err != nil {
		return nil, err
	}
	return out, nil
}

func walkAll(ts []Type, f func(Type) error) error {
	for _, t := range ts {
		if err := f(t); err != nil {
			return err
		}
	}
	return nil
}
