// Package genexpr generates random, well formed arithmetic expressions
// together with their expected value, for cross checking the expr package.
package genexpr

import (
	"math/rand"

	"github.com/GaryCAICHI/ysyx-workbench/go/expr"
	"github.com/GaryCAICHI/ysyx-workbench/go/sklog"
)

const (
	// DefaultMaxLength is the longest expression, in bytes, generated by default.
	DefaultMaxLength = 65534

	// DefaultMaxDepth bounds the recursion of the generator and therefore
	// the parenthesis nesting of its output.
	DefaultMaxDepth = 64
)

// Case is a generated expression and the value it must evaluate to.
type Case struct {
	Expr string
	Want expr.Word
}

// Options configure a Generator.
type Options struct {
	Seed      int64
	MaxLength int
	MaxDepth  int
}

// DefaultOptions returns Options with the default limits and the given seed.
func DefaultOptions(seed int64) Options {
	return Options{
		Seed:      seed,
		MaxLength: DefaultMaxLength,
		MaxDepth:  DefaultMaxDepth,
	}
}

// Generator produces Cases. It is not safe for concurrent use.
type Generator struct {
	rnd       *rand.Rand
	maxLength int
	maxDepth  int

	buf      []byte
	overflow bool
}

// New returns a Generator. The same Options always produce the same
// sequence of Cases.
func New(opts Options) *Generator {
	if opts.MaxLength <= 0 {
		opts.MaxLength = DefaultMaxLength
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Generator{
		rnd:       rand.New(rand.NewSource(opts.Seed)),
		maxLength: opts.MaxLength,
		maxDepth:  opts.MaxDepth,
		buf:       make([]byte, 0, opts.MaxLength),
	}
}

// Generate returns the next Case. Expressions that would not fit in
// MaxLength or that divide by zero are thrown away and generated again.
func (g *Generator) Generate() Case {
	for attempt := 1; ; attempt++ {
		g.buf = g.buf[:0]
		g.overflow = false
		g.expr(0)
		if g.overflow {
			continue
		}
		s := string(g.buf)
		want, err := Reference(s)
		if err != nil {
			sklog.Debugf("Discarding %q: %s", s, err)
			continue
		}
		if attempt > 1 {
			sklog.Debugf("Generated after %d attempts", attempt)
		}
		return Case{Expr: s, Want: want}
	}
}

func (g *Generator) choose(n int) int {
	return g.rnd.Intn(n)
}

// put appends b unless that would exceed the length limit, in which case the
// current attempt is marked as overflowed.
func (g *Generator) put(b ...byte) {
	if g.overflow {
		return
	}
	if len(g.buf)+len(b) > g.maxLength {
		g.overflow = true
		return
	}
	g.buf = append(g.buf, b...)
}

func (g *Generator) expr(depth int) {
	if g.overflow {
		return
	}
	g.spaces()
	choice := g.choose(3)
	if depth >= g.maxDepth {
		choice = 0
	}
	switch choice {
	case 0:
		g.num()
	case 1:
		g.put('(')
		g.expr(depth + 1)
		g.put(')')
	default:
		g.expr(depth + 1)
		g.op()
		g.expr(depth + 1)
	}
	g.spaces()
}

// num writes a literal of up to 9 digits. Only the literal 0 starts with 0.
func (g *Generator) num() {
	n := g.choose(9)
	if n == 0 {
		g.put(byte('0' + g.choose(10)))
		return
	}
	digits := make([]byte, 0, n+1)
	digits = append(digits, byte('1'+g.choose(9)))
	for i := 0; i < n; i++ {
		digits = append(digits, byte('0'+g.choose(10)))
	}
	g.put(digits...)
}

var ops = []byte{'+', '-', '*', '/'}

func (g *Generator) op() {
	g.put(ops[g.choose(len(ops))])
}

func (g *Generator) spaces() {
	n := g.choose(4)
	for i := 0; i < n; i++ {
		g.put(' ')
	}
}
