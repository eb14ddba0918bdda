// Package ops is the fixed operator table: every operator's signature,
// algebraic flags and display string, plus the category groupings the search
// layer uses to restrict enumeration. The table is built at init and is
// read-only afterwards.
package ops

import (
	"errors"
	"fmt"

	"github.com/smasher164/synth/types"
)

var (
	ErrUnknownOperator         = errors.New("unknown operator")
	ErrUnknownOperatorMetadata = errors.New("no metadata for operator")
	ErrNotAFunctionType        = errors.New("operator signature is not a function type")
	ErrUnknownCategory         = errors.New("unknown operator category")
)

type Op uint8

const (
	Plus Op = iota
	Minus
	Mul
	Div
	Mod
	Eq
	Neq
	Lt
	Leq
	Gt
	Geq
	And
	Or
	Not
	If
	RCons
	Cons
	Car
	Cdr
	Tree
	Children
	Value
	numOps
)

type Metadata struct {
	Type        types.Type
	Commutative bool
	Associative bool
	Display     string
}

// sig holds the quantified parameter shared by every polymorphic signature.
// Nothing links quantified cells, so the arena never changes after init.
var (
	sig   = types.NewArena()
	alpha = sig.NewQuantified("a")
)

func fn(ret types.Type, params ...types.Type) types.Arrow {
	return types.Arrow{Params: params, Ret: ret}
}

var (
	tnum  = types.Num
	tbool = types.Bool
)

var table = [numOps]Metadata{
	Plus:     {Type: fn(tnum, tnum, tnum), Commutative: true, Associative: true, Display: "+"},
	Minus:    {Type: fn(tnum, tnum, tnum), Display: "-"},
	Mul:      {Type: fn(tnum, tnum, tnum), Commutative: true, Associative: true, Display: "*"},
	Div:      {Type: fn(tnum, tnum, tnum), Display: "/"},
	Mod:      {Type: fn(tnum, tnum, tnum), Display: "%"},
	Eq:       {Type: fn(tbool, alpha, alpha), Commutative: true, Display: "="},
	Neq:      {Type: fn(tbool, alpha, alpha), Commutative: true, Display: "!="},
	Lt:       {Type: fn(tbool, tnum, tnum), Display: "<"},
	Leq:      {Type: fn(tbool, tnum, tnum), Display: "<="},
	Gt:       {Type: fn(tbool, tnum, tnum), Display: ">"},
	Geq:      {Type: fn(tbool, tnum, tnum), Display: ">="},
	And:      {Type: fn(tbool, tbool, tbool), Commutative: true, Associative: true, Display: "&"},
	Or:       {Type: fn(tbool, tbool, tbool), Commutative: true, Associative: true, Display: "|"},
	Not:      {Type: fn(tbool, tbool), Display: "~"},
	If:       {Type: fn(alpha, tbool, alpha, alpha), Display: "if"},
	RCons:    {Type: fn(types.List(alpha), types.List(alpha), alpha), Display: "rcons"},
	Cons:     {Type: fn(types.List(alpha), alpha, types.List(alpha)), Display: "cons"},
	Car:      {Type: fn(alpha, types.List(alpha)), Display: "car"},
	Cdr:      {Type: fn(types.List(alpha), types.List(alpha)), Display: "cdr"},
	Tree:     {Type: fn(types.Tree(alpha), alpha, types.List(types.Tree(alpha))), Display: "tree"},
	Children: {Type: fn(types.List(types.Tree(alpha)), types.Tree(alpha)), Display: "children"},
	Value:    {Type: fn(alpha, types.Tree(alpha)), Display: "value"},
}

var byDisplay = make(map[string]Op, numOps)

func init() {
	for op := Op(0); op < numOps; op++ {
		m := table[op]
		if m.Type == nil || m.Display == "" {
			panic(fmt.Sprintf("ops: operator %d has no metadata", op))
		}
		if prev, dup := byDisplay[m.Display]; dup {
			panic(fmt.Sprintf("ops: display string %q shared by operators %d and %d", m.Display, prev, op))
		}
		if _, err := arity(m); err != nil {
			panic("ops: " + err.Error())
		}
		byDisplay[m.Display] = op
	}
}

// Lookup returns the metadata record of op.
func Lookup(op Op) (Metadata, error) {
	if op >= numOps {
		return Metadata{}, fmt.Errorf("%w: %d", ErrUnknownOperatorMetadata, op)
	}
	return table[op], nil
}

func ByDisplayString(s string) (Op, error) {
	op, ok := byDisplay[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, s)
	}
	return op, nil
}

// Arity is the parameter count of op's resolved signature.
func Arity(op Op) (int, error) {
	m, err := Lookup(op)
	if err != nil {
		return 0, err
	}
	return arity(m)
}

func arity(m Metadata) (int, error) {
	t, err := types.Resolve(m.Type)
	if err != nil {
		return 0, err
	}
	arrow, ok := t.(types.Arrow)
	if !ok {
		return 0, fmt.Errorf("%w: %q has type %s", ErrNotAFunctionType, m.Display, t)
	}
	return len(arrow.Params), nil
}

func (op Op) String() string {
	if op >= numOps {
		panic(op)
	}
	return table[op].Display
}

// All lists every operator in enumeration order.
func All() []Op {
	all := make([]Op, numOps)
	for i := range all {
		all[i] = Op(i)
	}
	return all
}
