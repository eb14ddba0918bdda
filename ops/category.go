package ops

import (
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Category groupings. Each is a fixed subset of All in enumeration order and
// is never handed out directly.
var (
	control     = []Op{If}
	cmp         = []Op{Eq, Neq, Lt, Leq, Gt, Geq}
	logic       = []Op{And, Or, Not}
	lists       = []Op{RCons, Cons, Car, Cdr}
	trees       = []Op{Tree, Children, Value}
	simpleArith = []Op{Plus, Minus}
	arith       = []Op{Plus, Minus, Mul, Div, Mod}
)

func Control() []Op     { return slices.Clone(control) }
func Cmp() []Op         { return slices.Clone(cmp) }
func Logic() []Op       { return slices.Clone(logic) }
func Lists() []Op       { return slices.Clone(lists) }
func Trees() []Op       { return slices.Clone(trees) }
func SimpleArith() []Op { return slices.Clone(simpleArith) }
func Arith() []Op       { return slices.Clone(arith) }

type category struct {
	name string
	ops  []Op
}

var categories = []category{
	{"control", control},
	{"cmp", cmp},
	{"logic", logic},
	{"list", lists},
	{"tree", trees},
	{"simple-arith", simpleArith},
	{"arith", arith},
}

// CategoryNames lists the category names Category accepts.
func CategoryNames() []string {
	return lo.Map(categories, func(c category, _ int) string {
		return c.name
	})
}

// Category returns a copy of the named grouping.
func Category(name string) ([]Op, error) {
	i := slices.IndexFunc(categories, func(c category) bool {
		return c.name == name
	})
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return slices.Clone(categories[i].ops), nil
}

// Categories of op, in the order CategoryNames lists them.
func (op Op) Categories() []string {
	var names []string
	for _, c := range categories {
		if slices.Contains(c.ops, op) {
			names = append(names, c.name)
		}
	}
	return names
}

// Union merges the named categories into one operator set in enumeration
// order. No names means every operator.
func Union(names ...string) ([]Op, error) {
	if len(names) == 0 {
		return All(), nil
	}
	seen := make(map[Op]struct{})
	for _, name := range names {
		group, err := Category(name)
		if err != nil {
			return nil, err
		}
		for _, op := range group {
			seen[op] = struct{}{}
		}
	}
	return lo.Filter(All(), func(op Op, _ int) bool {
		_, ok := seen[op]
		return ok
	}), nil
}
