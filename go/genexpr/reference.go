package genexpr

import (
	"github.com/GaryCAICHI/ysyx-workbench/go/expr"
	"github.com/GaryCAICHI/ysyx-workbench/go/skerr"
)

// Reference computes the value of s with a conventional recursive descent
// parser, independently of the expr package's evaluator:
//
//	expr   = term { ("+" | "-") term }
//	term   = factor { ("*" | "/") factor }
//	factor = number | "(" expr ")"
//
// It is the oracle generated expressions are checked against.
func Reference(s string) (expr.Word, error) {
	p := &parser{s: s}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	p.skip()
	if p.pos != len(p.s) {
		return 0, skerr.Fmt("trailing input at offset %d", p.pos)
	}
	return v, nil
}

type parser struct {
	s   string
	pos int
}

func (p *parser) skip() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t') {
		p.pos++
	}
}

// peek returns the next non-space byte, or 0 at the end of input.
func (p *parser) peek() byte {
	p.skip()
	if p.pos == len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *parser) expr() (expr.Word, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		c := p.peek()
		if c != '+' && c != '-' {
			return v, nil
		}
		p.pos++
		r, err := p.term()
		if err != nil {
			return 0, err
		}
		if c == '+' {
			v += r
		} else {
			v -= r
		}
	}
}

func (p *parser) term() (expr.Word, error) {
	v, err := p.factor()
	if err != nil {
		return 0, err
	}
	for {
		c := p.peek()
		if c != '*' && c != '/' {
			return v, nil
		}
		p.pos++
		r, err := p.factor()
		if err != nil {
			return 0, err
		}
		if c == '*' {
			v *= r
			continue
		}
		if r == 0 {
			return 0, skerr.Fmt("division by zero at offset %d", p.pos)
		}
		v /= r
	}
}

func (p *parser) factor() (expr.Word, error) {
	c := p.peek()
	switch {
	case c == '(':
		p.pos++
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, skerr.Fmt("missing ) at offset %d", p.pos)
		}
		p.pos++
		return v, nil
	case c >= '0' && c <= '9':
		var v expr.Word
		for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
			v = v*10 + expr.Word(p.s[p.pos]-'0')
			p.pos++
		}
		return v, nil
	}
	return 0, skerr.Fmt("unexpected %q at offset %d", c, p.pos)
}
