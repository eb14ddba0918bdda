package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// String prints e in the parenthesized form Parse reads.
func String(e Expr) string {
	var buf strings.Builder
	write(&buf, e)
	return buf.String()
}

func write(buf *strings.Builder, e Expr) {
	switch e := e.(type) {
	case Id:
		buf.WriteString(string(e))
	case Num:
		buf.WriteString(strconv.Itoa(int(e)))
	case Bool:
		if e {
			buf.WriteString("#t")
		} else {
			buf.WriteString("#f")
		}
	case Op:
		buf.WriteByte('(')
		buf.WriteString(e.Op.String())
		for _, a := range e.Args {
			buf.WriteByte(' ')
			write(buf, a)
		}
		buf.WriteByte(')')
	case List:
		buf.WriteByte('[')
		buf.WriteString(strings.Join(lo.Map(e, func(x Expr, _ int) string { return String(x) }), " "))
		buf.WriteByte(']')
	case Tree:
		writeTree(buf, e)
	case Let:
		buf.WriteString("(let " + e.Name + " ")
		write(buf, e.Value)
		buf.WriteByte(' ')
		write(buf, e.Body)
		buf.WriteByte(')')
	case Lambda:
		buf.WriteString("(lambda (" + strings.Join(e.Params, " ") + ") ")
		write(buf, e.Body)
		buf.WriteByte(')')
	case Apply:
		buf.WriteByte('(')
		write(buf, e.Func)
		for _, a := range e.Args {
			buf.WriteByte(' ')
			write(buf, a)
		}
		buf.WriteByte(')')
	default:
		panic(fmt.Sprintf("unreachable: %T", e))
	}
}

func writeTree(buf *strings.Builder, t Tree) {
	if t.IsEmpty() {
		buf.WriteString("{}")
		return
	}
	buf.WriteByte('{')
	write(buf, t.Label)
	for _, c := range t.Children {
		buf.WriteByte(' ')
		writeTree(buf, c)
	}
	buf.WriteByte('}')
}
