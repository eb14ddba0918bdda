package dedup_test

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smasher164/synth/dedup"
	"github.com/smasher164/synth/expr"
	"github.com/smasher164/synth/logging"
	"github.com/smasher164/synth/ops"
)

func lam(param string, body expr.Expr) expr.Lambda {
	return expr.Lambda{Params: []string{param}, Body: body}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "(let a 1 a)", dedup.Key(expr.Let{Name: "x", Value: expr.Num(1), Body: expr.Id("x")}))
}

func TestKeyKeepsFreeNamesApart(t *testing.T) {
	bound := lam("x", expr.Call(ops.Plus, expr.Id("x"), expr.Id("x")))
	free := lam("x", expr.Call(ops.Plus, expr.Id("x"), expr.Id("a")))
	assert.Equal(t, "(lambda (a) (+ a a))", dedup.Key(bound))
	assert.Equal(t, "(lambda (a) (+ a a'))", dedup.Key(free))

	s := dedup.New()
	_, added := s.Add(bound)
	require.True(t, added)
	_, added = s.Add(free)
	assert.True(t, added)
	_, added = s.Add(lam("y", expr.Call(ops.Plus, expr.Id("y"), expr.Id("a"))))
	assert.False(t, added)
	assert.Equal(t, 2, s.Len())

	tests := []struct {
		a, b expr.Expr
	}{
		{expr.Id("a"), expr.Id("a'")},
		{expr.Id("a'"), expr.Id("a''")},
		{expr.Let{Name: "q", Value: expr.Num(1), Body: expr.Id("b")}, expr.Let{Name: "q", Value: expr.Num(1), Body: expr.Id("q")}},
		{lam("x", expr.Apply{Func: expr.Id("b"), Args: []expr.Expr{expr.Id("x")}}), lam("x", expr.Apply{Func: expr.Id("b'"), Args: []expr.Expr{expr.Id("x")}})},
	}
	for _, tt := range tests {
		assert.NotEqual(t, dedup.Key(tt.a), dedup.Key(tt.b), "%s vs %s", tt.a, tt.b)
	}
	assert.Equal(t, "(let a (car l') (cdr a))", dedup.Key(expr.Let{Name: "q", Value: expr.Call(ops.Car, expr.Id("l")), Body: expr.Call(ops.Cdr, expr.Id("q"))}))
	assert.Equal(t, "(f' count)", dedup.Key(expr.Apply{Func: expr.Id("f"), Args: []expr.Expr{expr.Id("count")}}))
}

func TestAddCollapsesAlphaEquivalent(t *testing.T) {
	s := dedup.New()
	first, added := s.Add(lam("x", expr.Call(ops.Plus, expr.Id("x"), expr.Num(1))))
	require.True(t, added)
	assert.Equal(t, "(lambda (a) (+ a 1))", first.Key)
	assert.Equal(t, 5, first.Size)

	got, added := s.Add(lam("y", expr.Call(ops.Plus, expr.Id("y"), expr.Num(1))))
	assert.False(t, added)
	assert.Equal(t, first, got)

	_, added = s.Add(lam("y", expr.Call(ops.Plus, expr.Num(1), expr.Id("y"))))
	assert.True(t, added, "commuted arguments are a different key")

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Dropped())
	assert.True(t, s.Contains(lam("z", expr.Call(ops.Plus, expr.Id("z"), expr.Num(1)))))
	assert.False(t, s.Contains(expr.Num(1)))
}

func TestEntriesInInsertionOrder(t *testing.T) {
	s := dedup.New()
	for _, e := range []expr.Expr{expr.Num(3), expr.Id("w"), expr.Num(3), expr.Bool(true)} {
		s.Add(e)
	}
	keys := []string{}
	for _, ent := range s.Entries() {
		keys = append(keys, ent.Key)
	}
	assert.Equal(t, []string{"3", "w'", "#t"}, keys)
}

func TestConcurrentAdd(t *testing.T) {
	s := dedup.New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				name := fmt.Sprintf("p%d_%d", i, j)
				s.Add(lam(name, expr.Call(ops.Mul, expr.Id(name), expr.Num(j))))
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, s.Len())
	assert.Equal(t, 8*50-50, s.Dropped())
}

func TestLogsDuplicates(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewLogger(&logging.Config{Level: logging.LevelDebug, Output: &buf})
	s := dedup.New(dedup.WithLogger(log))
	s.Add(expr.Num(1))
	s.Add(expr.Num(1))
	assert.Contains(t, buf.String(), "new candidate")
	assert.Contains(t, buf.String(), "duplicate candidate")
}
