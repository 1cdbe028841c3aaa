package expr

import (
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/GaryCAICHI/ysyx-workbench/go/metrics2"
)

func TestEvaluate(t *testing.T) {
	testCases := []struct {
		input string
		want  Word
	}{
		{"1+2*3", 7},
		{"(1+2)*3", 9},
		{"10-2-3", 5},
		{"7/2", 3},
		{"42", 42},
		{" ( 42 ) ", 42},
		{"((((1))))", 1},
		{"2*3*4/5", 4},
		{"100/10/5", 2},
		{"1-2+3", 2},
		{"(1)+(2)*(3)", 7},
		{"8/(2*(1+1))", 2},
		{"0", 0},
		// Wraparound.
		{"4294967295+1", 0},
		{"0-1", 4294967295},
		{"65536*65536", 0},
		{"4294967296", 0},
		{"4294967297", 1},
		{"(0-1)/2", 2147483647},
	}
	for _, tc := range testCases {
		got, err := Evaluate(tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, got, tc.input)

		got, ok := EvaluateExpression(tc.input)
		assert.True(t, ok, tc.input)
		assert.Equal(t, tc.want, got, tc.input)
	}
}

func TestEvaluateErrors(t *testing.T) {
	testCases := []struct {
		input  string
		kind   ErrorKind
		offset int
	}{
		{"", EmptyExpression, -1},
		{"   ", EmptyExpression, -1},
		{"(1+2", UnbalancedParentheses, 0},
		{"(1)+(2", UnbalancedParentheses, 4},
		{"1+2)", UnbalancedParentheses, 3},
		{")1(", UnbalancedParentheses, 0},
		{"(", UnbalancedParentheses, 0},
		{"1/0", DivisionByZero, 1},
		{"1/(2-2)", DivisionByZero, 1},
		{"1+", MissingOperand, 2},
		{"+1", MissingOperand, 0},
		{"1+*2", MissingOperand, 2},
		{"()", MissingOperand, 1},
		{"1 2", UnknownOperatorAtSplit, 0},
		{"(1)(2)", UnknownOperatorAtSplit, 0},
		{"1==2", UnknownOperatorAtSplit, 1},
		{"1 # 2", UnexpectedCharacter, 2},
	}
	for _, tc := range testCases {
		got, err := Evaluate(tc.input)
		require.Error(t, err, tc.input)
		assert.Equal(t, Word(0), got, tc.input)
		assert.Equal(t, tc.kind, KindOf(err), "%q: %s", tc.input, err)
		assert.Equal(t, tc.offset, OffsetOf(err), "%q: %s", tc.input, err)

		_, ok := EvaluateExpression(tc.input)
		assert.False(t, ok, tc.input)
	}
}

func TestEvaluate_ErrorInSubRangeFailsWholeExpression(t *testing.T) {
	// The illegal right operand must not leave a stale value behind for the
	// next evaluation.
	_, err := Evaluate("(1/0)+5")
	require.Error(t, err)
	got, err := Evaluate("1+5")
	require.NoError(t, err)
	assert.Equal(t, Word(6), got)
}

func TestEvaluate_Idempotent(t *testing.T) {
	for _, s := range []string{"1+2*3", "(1+2", "3/0", "9-8-7"} {
		v1, ok1 := EvaluateExpression(s)
		v2, ok2 := EvaluateExpression(s)
		assert.Equal(t, ok1, ok2, s)
		assert.Equal(t, v1, v2, s)
	}
}

func TestEvalRange_SubRangeDoesNotModifyTokens(t *testing.T) {
	toks, err := Lex("1+2*3")
	require.NoError(t, err)
	before := append(Tokens(nil), toks...)

	v, err := EvalRange(toks, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, Word(6), v)
	v, err = EvalRange(toks, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, Word(1), v)
	assert.Equal(t, before, toks)

	_, err = EvalRange(toks, 0, 5)
	assert.Equal(t, MissingOperand, KindOf(err))
	_, err = EvalRange(toks, 3, 2)
	assert.Equal(t, MissingOperand, KindOf(err))
}

func TestEngine_NestingDepth(t *testing.T) {
	e, err := New(Options{MaxLiteralLength: 10, MaxNestingDepth: 3})
	require.NoError(t, err)

	v, err := e.Evaluate("(((1)))+((2))")
	require.NoError(t, err)
	assert.Equal(t, Word(3), v)

	_, err = e.Evaluate("1+((((2))))")
	assert.Equal(t, NestingTooDeep, KindOf(err))
	assert.Equal(t, 5, OffsetOf(err))

	deep := strings.Repeat("(", 100000) + "1" + strings.Repeat(")", 100000)
	_, err = Evaluate(deep)
	assert.Equal(t, NestingTooDeep, KindOf(err))
}

func TestEngine_LongFlatExpression(t *testing.T) {
	s := "1" + strings.Repeat("+1", 32000)
	v, err := Evaluate(s)
	require.NoError(t, err)
	assert.Equal(t, Word(32001), v)

	s = "2" + strings.Repeat("*1", 3000)
	v, err = Evaluate(s)
	require.NoError(t, err)
	assert.Equal(t, Word(2), v)
}

func TestEngine_LongChainOfGroups(t *testing.T) {
	s := "(1*(2+3))" + strings.Repeat("-(1*(2+3))", 20000) + "+(7)"
	v, err := Evaluate(s)
	require.NoError(t, err)
	want := Word(5 + 7)
	for i := 0; i < 20000; i++ {
		want -= 5
	}
	assert.Equal(t, want, v)

	_, err = Evaluate(s + "*(1")
	assert.Equal(t, UnbalancedParentheses, KindOf(err))
	assert.Equal(t, len(s)+1, OffsetOf(err))
}

func TestEngine_MaxLiteralLength(t *testing.T) {
	e, err := New(Options{MaxLiteralLength: 3, MaxNestingDepth: 8})
	require.NoError(t, err)
	_, err = e.Evaluate("999+1")
	require.NoError(t, err)
	_, err = e.Evaluate("1000+1")
	assert.Equal(t, NumberTooLong, KindOf(err))
}

func TestNew_InvalidOptions(t *testing.T) {
	for _, opts := range []Options{
		{MaxLiteralLength: 0, MaxNestingDepth: 1},
		{MaxLiteralLength: 1, MaxNestingDepth: 0},
		{MaxLiteralLength: 1, MaxNestingDepth: 1, CacheSize: -1},
	} {
		_, err := New(opts)
		assert.Error(t, err, "%+v", opts)
	}
}

func TestValidate_ErrorRecordsStack(t *testing.T) {
	err := Options{MaxLiteralLength: 1}.Validate()
	require.Error(t, err)
	assert.Equal(t, "MaxNestingDepth must be at least 1, got 0", err.Error())
	assert.Contains(t, fmt.Sprintf("%+v", err), "engine.go")
	assert.Equal(t, ErrorKind(-1), KindOf(err))
}

func TestEngine_CacheAndMetrics(t *testing.T) {
	opts := DefaultOptions()
	opts.CacheSize = 4
	opts.Metrics = metrics2.NewClient(prometheus.NewRegistry())
	e, err := New(opts)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		v, err := e.Evaluate("6*7")
		require.NoError(t, err)
		assert.Equal(t, Word(42), v)
	}
	for i := 0; i < 2; i++ {
		_, err := e.Evaluate("1/0")
		assert.Equal(t, DivisionByZero, KindOf(err))
	}

	m := opts.Metrics
	assert.Equal(t, int64(1), m.GetCounter("expr_evaluations", map[string]string{"result": "ok"}).Get())
	assert.Equal(t, int64(1), m.GetCounter("expr_evaluations", map[string]string{"result": "division_by_zero"}).Get())
	assert.Equal(t, int64(3), m.GetCounter("expr_cache_hits").Get())
}

func TestEvaluate_ConcurrentCallsAreIndependent(t *testing.T) {
	opts := DefaultOptions()
	opts.CacheSize = 2
	e, err := New(opts)
	require.NoError(t, err)

	cases := map[string]Word{
		"1+2*3":   7,
		"(1+2)*3": 9,
		"10-2-3":  5,
		"7/2":     3,
	}
	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			for j := 0; j < 200; j++ {
				for s, want := range cases {
					got, err := e.Evaluate(s)
					if err != nil {
						return err
					}
					if got != want {
						t.Errorf("%q: got %d want %d", s, got, want)
					}
					if _, ok := e.EvaluateExpression("(" + s); ok {
						t.Errorf("unbalanced %q evaluated", s)
					}
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestErrorMessages(t *testing.T) {
	_, err := Evaluate("1/0")
	assert.Equal(t, "division by zero at offset 1", err.Error())
	_, err = Evaluate("")
	assert.Equal(t, "empty expression", err.Error())
	assert.Equal(t, "unbalanced_parentheses", UnbalancedParentheses.String())
	assert.Equal(t, NoError, KindOf(nil))
	assert.Equal(t, ErrorKind(-1), KindOf(assert.AnError))
}
