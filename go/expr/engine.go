package expr

import (
	"github.com/GaryCAICHI/ysyx-workbench/go/metrics2"
	"github.com/GaryCAICHI/ysyx-workbench/go/skerr"
	"github.com/GaryCAICHI/ysyx-workbench/go/sklog"
	lru "github.com/hashicorp/golang-lru"
)

// Options configure an Engine.
type Options struct {
	// MaxLiteralLength is the longest Number literal, in digits, that lexes.
	MaxLiteralLength int

	// MaxNestingDepth is the deepest parenthesis nesting that evaluates.
	MaxNestingDepth int

	// CacheSize is the number of evaluation results kept in an LRU cache
	// keyed by the expression text. 0 disables caching.
	CacheSize int

	// Metrics, if not nil, receives evaluation counts by outcome.
	Metrics metrics2.Client
}

// DefaultOptions returns the Options used by the package level functions.
func DefaultOptions() Options {
	return Options{
		MaxLiteralLength: DefaultMaxLiteralLength,
		MaxNestingDepth:  DefaultMaxNestingDepth,
	}
}

// Validate returns an error if the options can not be used.
func (o Options) Validate() error {
	if o.MaxLiteralLength < 1 {
		return skerr.Fmt("MaxLiteralLength must be at least 1, got %d", o.MaxLiteralLength)
	}
	if o.MaxNestingDepth < 1 {
		return skerr.Fmt("MaxNestingDepth must be at least 1, got %d", o.MaxNestingDepth)
	}
	if o.CacheSize < 0 {
		return skerr.Fmt("CacheSize must not be negative, got %d", o.CacheSize)
	}
	return nil
}

// result is what the cache stores per expression.
type result struct {
	value Word
	err   error
}

// Engine lexes and evaluates expressions. It holds no per-evaluation state
// and is safe for concurrent use.
type Engine struct {
	opts  Options
	cache *lru.Cache
}

// New returns an Engine configured by opts.
func New(opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{opts: opts}
	if opts.CacheSize > 0 {
		c, err := lru.New(opts.CacheSize)
		if err != nil {
			return nil, skerr.Wrapf(err, "creating cache of size %d", opts.CacheSize)
		}
		e.cache = c
	}
	return e, nil
}

// Options returns the options the Engine was created with.
func (e *Engine) Options() Options {
	return e.opts
}

// Lex converts input into Tokens.
func (e *Engine) Lex(input string) (Tokens, error) {
	return lex(input, rules, e.opts.MaxLiteralLength)
}

// EvalRange evaluates toks[lo..hi], both inclusive.
func (e *Engine) EvalRange(toks Tokens, lo, hi int) (Word, error) {
	if lo < 0 || hi >= len(toks) {
		return 0, newError(MissingOperand, -1)
	}
	ev := &evaluator{
		toks:     toks,
		maxDepth: e.opts.MaxNestingDepth,
	}
	return ev.run(lo, hi)
}

// Evaluate lexes and evaluates text. Any returned error is an *Error.
func (e *Engine) Evaluate(text string) (Word, error) {
	if e.cache != nil {
		if v, ok := e.cache.Get(text); ok {
			e.count("expr_cache_hits", nil)
			r := v.(result)
			return r.value, r.err
		}
	}
	v, err := e.evaluate(text)
	if e.cache != nil {
		e.cache.Add(text, result{value: v, err: err})
	}
	e.count("expr_evaluations", map[string]string{"result": KindOf(err).String()})
	return v, err
}

func (e *Engine) evaluate(text string) (Word, error) {
	toks, err := e.Lex(text)
	if err != nil {
		return 0, err
	}
	if len(toks) == 0 {
		return 0, newError(EmptyExpression, -1)
	}
	return e.EvalRange(toks, 0, len(toks)-1)
}

// EvaluateExpression is Evaluate for callers that only need to know whether
// the expression was legal. The value must not be used when ok is false.
func (e *Engine) EvaluateExpression(text string) (Word, bool) {
	v, err := e.Evaluate(text)
	if err != nil {
		sklog.Debugf("Illegal expression %q: %s", text, err)
		return 0, false
	}
	return v, true
}

func (e *Engine) count(name string, tags map[string]string) {
	if e.opts.Metrics == nil {
		return
	}
	e.opts.Metrics.GetCounter(name, tags).Inc(1)
}

var defaultEngine = mustNew(DefaultOptions())

func mustNew(opts Options) *Engine {
	e, err := New(opts)
	if err != nil {
		sklog.Fatalf("Invalid expression engine options: %s", err)
	}
	return e
}

// Evaluate lexes and evaluates text with the default options.
func Evaluate(text string) (Word, error) {
	return defaultEngine.Evaluate(text)
}

// EvaluateExpression evaluates text with the default options and reports
// success instead of an error.
func EvaluateExpression(text string) (Word, bool) {
	return defaultEngine.EvaluateExpression(text)
}

// EvalRange evaluates toks[lo..hi] with the default options.
func EvalRange(toks Tokens, lo, hi int) (Word, error) {
	return defaultEngine.EvalRange(toks, lo, hi)
}
