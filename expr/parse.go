package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/smasher164/synth/ops"
)

var ErrSyntax = errors.New("syntax error")

var delimiters = []string{"(", ")", "[", "]", "{", "}"}

func scan(s string) (res []string) {
	res = strings.Fields(s)
	sep := func(c string) []string {
		return lo.FlatMap(res, func(s string, _ int) (ret []string) {
			for {
				before, after, found := strings.Cut(s, c)
				if before != "" {
					ret = append(ret, before)
				}
				s = after
				if !found {
					break
				}
				ret = append(ret, c)
			}
			return ret
		})
	}
	for _, d := range delimiters {
		res = sep(d)
	}
	return res
}

type ParseOption func(*parser)

// WithOperators restricts the operators Parse accepts in head position.
// Heads naming any other registered operator are rejected.
func WithOperators(allowed []ops.Op) ParseOption {
	return func(p *parser) {
		p.allowed = allowed
	}
}

type parser struct {
	tokens  []string
	allowed []ops.Op
}

// Parse reads one expression in the form String prints.
func Parse(s string, opts ...ParseOption) (Expr, error) {
	p := &parser{tokens: scan(s)}
	for _, opt := range opts {
		opt(p)
	}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if len(p.tokens) > 0 {
		return nil, p.unexpected(p.tokens[0])
	}
	return e, nil
}

func (p *parser) unexpected(tok string) error {
	return fmt.Errorf("%w: unexpected token %q", ErrSyntax, tok)
}

func (p *parser) next() (string, error) {
	if len(p.tokens) == 0 {
		return "", p.unexpected("EOF")
	}
	tok := p.tokens[0]
	p.tokens = p.tokens[1:]
	return tok, nil
}

func (p *parser) peek() string {
	if len(p.tokens) == 0 {
		return ""
	}
	return p.tokens[0]
}

func (p *parser) expect(want string) error {
	tok, err := p.next()
	if err != nil {
		return fmt.Errorf("%w: expected token %q, got \"EOF\"", ErrSyntax, want)
	}
	if tok != want {
		return fmt.Errorf("%w: expected token %q, got %q", ErrSyntax, want, tok)
	}
	return nil
}

func (p *parser) expr() (Expr, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok {
	case "(":
		return p.form()
	case "[":
		elems, err := p.until("]")
		if err != nil {
			return nil, err
		}
		return List(elems), nil
	case "{":
		return p.tree()
	case ")", "]", "}":
		return nil, p.unexpected(tok)
	case "#t":
		return Bool(true), nil
	case "#f":
		return Bool(false), nil
	}
	if n, err := strconv.Atoi(tok); err == nil {
		return Num(n), nil
	}
	return Id(tok), nil
}

// until parses expressions up to and including the closing token.
func (p *parser) until(closing string) ([]Expr, error) {
	es := []Expr{}
	for p.peek() != closing {
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		es = append(es, e)
	}
	return es, p.expect(closing)
}

func (p *parser) name() (string, error) {
	tok, err := p.next()
	if err != nil {
		return "", err
	}
	if !isName(tok) {
		return "", fmt.Errorf("%w: %q cannot be bound", ErrSyntax, tok)
	}
	return tok, nil
}

func isName(tok string) bool {
	if slices.Contains(delimiters, tok) || tok == "#t" || tok == "#f" || tok == "let" || tok == "lambda" {
		return false
	}
	if _, err := strconv.Atoi(tok); err == nil {
		return false
	}
	_, err := ops.ByDisplayString(tok)
	return err != nil
}

func (p *parser) form() (Expr, error) {
	switch head := p.peek(); head {
	case "let":
		p.tokens = p.tokens[1:]
		return p.let()
	case "lambda":
		p.tokens = p.tokens[1:]
		return p.lambda()
	case ")":
		return nil, p.unexpected(head)
	default:
		if op, err := ops.ByDisplayString(head); err == nil {
			if p.allowed != nil && !slices.Contains(p.allowed, op) {
				return nil, fmt.Errorf("%w: operator %q is not enabled", ErrSyntax, head)
			}
			p.tokens = p.tokens[1:]
			args, err := p.until(")")
			if err != nil {
				return nil, err
			}
			return Op{Op: op, Args: args}, nil
		}
	}
	fn, err := p.expr()
	if err != nil {
		return nil, err
	}
	args, err := p.until(")")
	if err != nil {
		return nil, err
	}
	return Apply{Func: fn, Args: args}, nil
}

func (p *parser) let() (Expr, error) {
	name, err := p.name()
	if err != nil {
		return nil, err
	}
	value, err := p.expr()
	if err != nil {
		return nil, err
	}
	body, err := p.expr()
	if err != nil {
		return nil, err
	}
	return Let{Name: name, Value: value, Body: body}, p.expect(")")
}

func (p *parser) lambda() (Expr, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	params := []string{}
	for p.peek() != ")" {
		name, err := p.name()
		if err != nil {
			return nil, err
		}
		params = append(params, name)
	}
	p.tokens = p.tokens[1:]
	body, err := p.expr()
	if err != nil {
		return nil, err
	}
	return Lambda{Params: params, Body: body}, p.expect(")")
}

// tree parses the rest of a tree literal after its opening brace.
func (p *parser) tree() (Tree, error) {
	if p.peek() == "}" {
		p.tokens = p.tokens[1:]
		return Tree{}, nil
	}
	label, err := p.expr()
	if err != nil {
		return Tree{}, err
	}
	t := Tree{Label: label}
	for p.peek() != "}" {
		if err := p.expect("{"); err != nil {
			return Tree{}, err
		}
		c, err := p.tree()
		if err != nil {
			return Tree{}, err
		}
		t.Children = append(t.Children, c)
	}
	return t, p.expect("}")
}
