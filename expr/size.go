package expr

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/smasher164/synth/ops"
)

var ErrArity = errors.New("wrong number of operator arguments")

// Size is the structural cost of e. Leaves cost 1 and every node adds 1 to
// the cost of its parts; lambdas also pay one per parameter.
func Size(e Expr) int {
	switch e := e.(type) {
	case Id, Num, Bool:
		return 1
	case Op:
		return 1 + sizeAll(e.Args)
	case List:
		return 1 + sizeAll(e)
	case Tree:
		return e.Size()
	case Let:
		return 1 + Size(e.Value) + Size(e.Body)
	case Lambda:
		return 1 + len(e.Params) + Size(e.Body)
	case Apply:
		return 1 + Size(e.Func) + sizeAll(e.Args)
	}
	panic(fmt.Sprintf("unreachable: %T", e))
}

func sizeAll(es []Expr) int {
	return lo.Reduce(es, func(n int, e Expr, _ int) int { return n + Size(e) }, 0)
}

// Validate reports the first operator application whose argument count
// differs from the operator's arity.
func Validate(e Expr) error {
	switch e := e.(type) {
	case Id, Num, Bool:
		return nil
	case Op:
		n, err := ops.Arity(e.Op)
		if err != nil {
			return err
		}
		if len(e.Args) != n {
			return fmt.Errorf("%w: %s takes %d, got %d in %s", ErrArity, e.Op, n, len(e.Args), e)
		}
		return validateAll(e.Args)
	case List:
		return validateAll(e)
	case Tree:
		if e.IsEmpty() {
			return nil
		}
		if err := Validate(e.Label); err != nil {
			return err
		}
		for _, c := range e.Children {
			if err := Validate(c); err != nil {
				return err
			}
		}
		return nil
	case Let:
		if err := Validate(e.Value); err != nil {
			return err
		}
		return Validate(e.Body)
	case Lambda:
		return Validate(e.Body)
	case Apply:
		if err := Validate(e.Func); err != nil {
			return err
		}
		return validateAll(e.Args)
	}
	panic(fmt.Sprintf("unreachable: %T", e))
}

func validateAll(es []Expr) error {
	for _, e := range es {
		if err := Validate(e); err != nil {
			return err
		}
	}
	return nil
}
