// Package lexer tokenizes component specifications: the input/output
// constraints attached to library components. Relational and logical symbols
// are spelled exactly as the operator table displays them, so printed
// expressions and specification source share one vocabulary.
package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/smasher164/synth/ops"
)

var ErrIllegal = errors.New("illegal token")

type Kind uint8

const (
	EOF Kind = iota
	True
	False
	LParen
	RParen
	LBracket
	RBracket
	Eq
	Neq
	Lt
	Le
	Gt
	Ge
	Or
	And
	Subset
	Superset
	SubsetEq
	SupersetEq
	Bottom
	Int
	Input
	Output
	Var
	Func
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case True:
		return "#t"
	case False:
		return "#f"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	case Eq:
		return "="
	case Neq:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case Or:
		return "|"
	case And:
		return "&"
	case Subset:
		return "⊂"
	case Superset:
		return "⊃"
	case SubsetEq:
		return "⊆"
	case SupersetEq:
		return "⊇"
	case Bottom:
		return "⊥"
	case Int:
		return "int"
	case Input:
		return "input"
	case Output:
		return "output"
	case Var:
		return "var"
	case Func:
		return "func"
	}
	panic("unreachable")
}

// symbols maps fixed spellings to their kinds. Longer spellings that share a
// prefix with a shorter one are tried first by Scan.
var symbols = map[string]Kind{
	"#t": True,
	"#f": False,
	"(":  LParen,
	")":  RParen,
	"[":  LBracket,
	"]":  RBracket,
	"=":  Eq,
	"!=": Neq,
	"<":  Lt,
	"<=": Le,
	">":  Gt,
	">=": Ge,
	"|":  Or,
	"&":  And,
	"⊂":  Subset,
	"⊃":  Superset,
	"⊆":  SubsetEq,
	"⊇":  SupersetEq,
	"⊥":  Bottom,
}

const (
	inputPrefix = 'i'
	outputName  = "r"
	varAlphabet = "vwxyz"
)

type Token struct {
	Kind Kind
	Text string
	// Value is the integer of an Int token or the index of an Input token.
	Value     int
	Line, Col int
}

func (t Token) String() string {
	return t.Text
}

// Operator is the registered operator a relational or logical token spells.
func (t Token) Operator() (ops.Op, bool) {
	switch t.Kind {
	case Eq, Neq, Lt, Le, Gt, Ge, Or, And:
		op, err := ops.ByDisplayString(t.Kind.String())
		return op, err == nil
	}
	return 0, false
}

type scanner struct {
	src       string
	off       int
	line, col int
	tokens    []Token
}

// Scan splits src into tokens. The result always ends with an EOF token.
func Scan(src string) ([]Token, error) {
	s := &scanner{src: src, line: 1, col: 1}
	for {
		s.skipSpace()
		if s.off >= len(s.src) {
			s.tokens = append(s.tokens, Token{Kind: EOF, Line: s.line, Col: s.col})
			return s.tokens, nil
		}
		if err := s.next(); err != nil {
			return nil, err
		}
	}
}

func (s *scanner) advance(n int) string {
	text := s.src[s.off : s.off+n]
	s.off += n
	s.col += utf8.RuneCountInString(text)
	return text
}

func (s *scanner) skipSpace() {
	for s.off < len(s.src) {
		switch s.src[s.off] {
		case '\n':
			s.off++
			s.line++
			s.col = 1
		case ' ', '\t', '\r':
			s.advance(1)
		default:
			return
		}
	}
}

func (s *scanner) emit(k Kind, n int, value int) {
	line, col := s.line, s.col
	text := s.advance(n)
	s.tokens = append(s.tokens, Token{Kind: k, Text: text, Value: value, Line: line, Col: col})
}

func (s *scanner) illegal(text string) error {
	return fmt.Errorf("%w %q at %d:%d", ErrIllegal, text, s.line, s.col)
}

func (s *scanner) next() error {
	rest := s.src[s.off:]
	for _, n := range []int{2, 1} {
		if len(rest) >= n {
			if k, ok := symbols[rest[:n]]; ok {
				s.emit(k, n, 0)
				return nil
			}
		}
	}
	r, size := utf8.DecodeRuneInString(rest)
	if size > 1 {
		if k, ok := symbols[rest[:size]]; ok {
			s.emit(k, size, 0)
			return nil
		}
		return s.illegal(rest[:size])
	}
	switch {
	case isDigit(r), (r == '-' || r == '+') && len(rest) > 1 && isDigit(rune(rest[1])):
		n := 1 + strings.IndexFunc(rest[1:], func(r rune) bool { return !isDigit(r) })
		if n == 0 {
			n = len(rest)
		}
		v, err := strconv.Atoi(rest[:n])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrIllegal, err)
		}
		s.emit(Int, n, v)
		return nil
	case isWord(r):
		n := strings.IndexFunc(rest, func(r rune) bool { return !isWord(r) })
		if n < 0 {
			n = len(rest)
		}
		return s.word(rest[:n])
	}
	return s.illegal(string(r))
}

func (s *scanner) word(w string) error {
	switch {
	case w[0] == inputPrefix && len(w) > 1 && allDigits(w[1:]):
		idx, err := strconv.Atoi(w[1:])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrIllegal, err)
		}
		s.emit(Input, len(w), idx)
	case w == outputName:
		s.emit(Output, len(w), 0)
	case strings.IndexByte(varAlphabet, w[0]) >= 0 && allDigits(w[1:]):
		s.emit(Var, len(w), 0)
	case w[0] >= 'A' && w[0] <= 'Z':
		s.emit(Func, len(w), 0)
	default:
		return s.illegal(w)
	}
	return nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isWord(r rune) bool {
	return r == '_' || isDigit(r) || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func allDigits(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !isDigit(r) }) < 0
}
