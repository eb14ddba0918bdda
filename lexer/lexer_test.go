package lexer_test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smasher164/synth/lexer"
	"github.com/smasher164/synth/ops"
)

func kinds(toks []lexer.Token) []lexer.Kind {
	return lo.Map(toks, func(t lexer.Token, _ int) lexer.Kind { return t.Kind })
}

func TestScan(t *testing.T) {
	tests := []struct {
		src  string
		want []lexer.Kind
	}{
		{"", []lexer.Kind{lexer.EOF}},
		{"#t #f", []lexer.Kind{lexer.True, lexer.False, lexer.EOF}},
		{"( ) [ ]", []lexer.Kind{lexer.LParen, lexer.RParen, lexer.LBracket, lexer.RBracket, lexer.EOF}},
		{"= != < <= > >= | &", []lexer.Kind{
			lexer.Eq, lexer.Neq, lexer.Lt, lexer.Le, lexer.Gt, lexer.Ge, lexer.Or, lexer.And, lexer.EOF,
		}},
		{"⊂ ⊃ ⊆ ⊇ ⊥", []lexer.Kind{
			lexer.Subset, lexer.Superset, lexer.SubsetEq, lexer.SupersetEq, lexer.Bottom, lexer.EOF,
		}},
		{"i1 r", []lexer.Kind{lexer.Input, lexer.Output, lexer.EOF}},
		{"x y1 z23", []lexer.Kind{lexer.Var, lexer.Var, lexer.Var, lexer.EOF}},
		{"Len(i0) >= 0", []lexer.Kind{
			lexer.Func, lexer.LParen, lexer.Input, lexer.RParen, lexer.Ge, lexer.Int, lexer.EOF,
		}},
		{"r<=-3", []lexer.Kind{lexer.Output, lexer.Le, lexer.Int, lexer.EOF}},
		{"Elems(r) ⊆ Elems(i1) | r = ⊥", []lexer.Kind{
			lexer.Func, lexer.LParen, lexer.Output, lexer.RParen, lexer.SubsetEq,
			lexer.Func, lexer.LParen, lexer.Input, lexer.RParen, lexer.Or,
			lexer.Output, lexer.Eq, lexer.Bottom, lexer.EOF,
		}},
	}
	for _, tt := range tests {
		toks, err := lexer.Scan(tt.src)
		require.NoError(t, err, tt.src)
		assert.Equal(t, tt.want, kinds(toks), tt.src)
	}
}

func TestScanValues(t *testing.T) {
	toks, err := lexer.Scan("i12 -7 +3 42")
	require.NoError(t, err)
	require.Len(t, toks, 5)
	assert.Equal(t, 12, toks[0].Value)
	assert.Equal(t, "i12", toks[0].Text)
	assert.Equal(t, -7, toks[1].Value)
	assert.Equal(t, 3, toks[2].Value)
	assert.Equal(t, 42, toks[3].Value)
}

func TestScanPositions(t *testing.T) {
	toks, err := lexer.Scan("x ⊆ y\n  Len(r)")
	require.NoError(t, err)
	pos := lo.Map(toks, func(t lexer.Token, _ int) [2]int { return [2]int{t.Line, t.Col} })
	assert.Equal(t, [][2]int{{1, 1}, {1, 3}, {1, 5}, {2, 3}, {2, 6}, {2, 7}, {2, 8}, {2, 9}}, pos)
}

func TestScanIllegal(t *testing.T) {
	for _, src := range []string{"i", "a", "foo", "x1y", "!", "-", "λ", "_x", "99999999999999999999999"} {
		_, err := lexer.Scan(src)
		assert.ErrorIs(t, err, lexer.ErrIllegal, src)
	}
	_, err := lexer.Scan("x =\n  q")
	assert.ErrorContains(t, err, "2:3")
}

// Relational and logical tokens must spell registered operators, and every
// binary comparison or logical operator must scan back to itself.
func TestOperatorConsistency(t *testing.T) {
	for _, k := range []lexer.Kind{lexer.Eq, lexer.Neq, lexer.Lt, lexer.Le, lexer.Gt, lexer.Ge, lexer.Or, lexer.And} {
		op, err := ops.ByDisplayString(k.String())
		require.NoError(t, err, k.String())
		toks, err := lexer.Scan(k.String())
		require.NoError(t, err)
		got, ok := toks[0].Operator()
		assert.True(t, ok)
		assert.Equal(t, op, got)
	}
	for _, op := range append(ops.Cmp(), ops.And, ops.Or) {
		toks, err := lexer.Scan(op.String())
		require.NoError(t, err, op.String())
		require.Len(t, toks, 2, op.String())
		got, ok := toks[0].Operator()
		assert.True(t, ok, op.String())
		assert.Equal(t, op, got)
	}
}

func TestNonOperatorTokens(t *testing.T) {
	toks, err := lexer.Scan("⊆ x 1")
	require.NoError(t, err)
	for _, tok := range toks {
		_, ok := tok.Operator()
		assert.False(t, ok, tok.Kind.String())
	}
}
