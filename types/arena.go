package types

import "fmt"

type Handle int

// Cell is the state of a type variable: Free, Quantified or Link.
type Cell interface {
	isCell()
}

// Free is an unresolved unification variable. Level is the binding depth the
// unifier uses for generalization.
type Free struct {
	ID    int
	Level int
}

func (Free) isCell() {}

// Quantified is a universally quantified type parameter.
type Quantified struct {
	Name string
}

func (Quantified) isCell() {}

// Link records that the variable has been unified with To.
type Link struct {
	To Type
}

func (Link) isCell() {}

// Arena owns the cells of a set of type variables. Cells only move from Free
// to Link; nothing is ever unlinked. An Arena is not safe for concurrent
// mutation: callers serialize Link against Resolve and String.
type Arena struct {
	cells  []Cell
	nextID int
}

func NewArena() *Arena {
	return &Arena{}
}

func (a *Arena) alloc(c Cell) Var {
	a.cells = append(a.cells, c)
	return Var{arena: a, h: Handle(len(a.cells) - 1)}
}

// NewFree allocates a free variable with the next unused identity.
func (a *Arena) NewFree(level int) Var {
	id := a.nextID
	a.nextID++
	return a.alloc(Free{ID: id, Level: level})
}

func (a *Arena) NewQuantified(name string) Var {
	return a.alloc(Quantified{Name: name})
}

// Cell returns the state stored at h, or nil for a handle the arena never
// allocated.
func (a *Arena) Cell(h Handle) Cell {
	if h < 0 || int(h) >= len(a.cells) {
		return nil
	}
	return a.cells[h]
}

// Link refines the free variable v into a link to t.
func (a *Arena) Link(v Var, t Type) error {
	if v.arena != a {
		return fmt.Errorf("%w: handle %d belongs to another arena", ErrNotFree, v.h)
	}
	if _, ok := a.Cell(v.h).(Free); !ok {
		return fmt.Errorf("%w: handle %d", ErrNotFree, v.h)
	}
	a.cells[v.h] = Link{To: t}
	return nil
}

func (a *Arena) Len() int { return len(a.cells) }
