package expr

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex(t *testing.T) {
	testCases := []struct {
		input string
		toks  Tokens
	}{
		{
			input: "12 + 3",
			toks: Tokens{
				{Number, "12", 0},
				{Plus, "", 3},
				{Number, "3", 5},
			},
		},
		{
			input: "  (1+2)*3\t",
			toks: Tokens{
				{LParen, "", 2},
				{Number, "1", 3},
				{Plus, "", 4},
				{Number, "2", 5},
				{RParen, "", 6},
				{Multiply, "", 7},
				{Number, "3", 8},
			},
		},
		{
			input: "10/2-0==8",
			toks: Tokens{
				{Number, "10", 0},
				{Divide, "", 2},
				{Number, "2", 3},
				{Minus, "", 4},
				{Number, "0", 5},
				{Equal, "", 6},
				{Number, "8", 8},
			},
		},
		{
			// A leading zero is a literal of its own.
			input: "007",
			toks: Tokens{
				{Number, "0", 0},
				{Number, "0", 1},
				{Number, "7", 2},
			},
		},
		{
			input: "   ",
			toks:  Tokens{},
		},
		{
			input: "",
			toks:  Tokens{},
		},
	}
	for _, tc := range testCases {
		toks, err := Lex(tc.input)
		require.NoError(t, err, tc.input)
		if diff := cmp.Diff(tc.toks, toks); diff != "" {
			t.Errorf("Lex(%q) mismatch (-want +got):\n%s", tc.input, diff)
		}
	}
}

func TestLexErrors(t *testing.T) {
	testCases := []struct {
		input  string
		kind   ErrorKind
		offset int
	}{
		{"1 $ 2", UnexpectedCharacter, 2},
		{"1.5", UnexpectedCharacter, 1},
		{"x", UnexpectedCharacter, 0},
		{"1 = 2", UnexpectedCharacter, 2},
		{"2+" + strings.Repeat("9", DefaultMaxLiteralLength+1), NumberTooLong, 2},
	}
	for _, tc := range testCases {
		toks, err := Lex(tc.input)
		require.Error(t, err, tc.input)
		assert.Nil(t, toks)
		assert.Equal(t, tc.kind, KindOf(err), tc.input)
		assert.Equal(t, tc.offset, OffsetOf(err), tc.input)
	}
}

func TestLex_LongestAllowedLiteral(t *testing.T) {
	lit := strings.Repeat("1", DefaultMaxLiteralLength)
	toks, err := Lex(lit)
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, lit, toks[0].Text)
}

func TestLex_FirstRuleInPriorityOrderWins(t *testing.T) {
	// "=" comes before "==", so "==" lexes as two tokens even though the
	// later rule would match more input.
	table, err := compileRules([]Rule{
		{`=`, Minus},
		{`==`, Equal},
		{`[0-9]+`, Number},
	})
	require.NoError(t, err)
	toks, err := lex("1==2", table, DefaultMaxLiteralLength)
	require.NoError(t, err)
	assert.Equal(t, Tokens{
		{Number, "1", 0},
		{Minus, "", 1},
		{Minus, "", 2},
		{Number, "2", 3},
	}, toks)
}

func TestLex_EmptyMatchIsNoMatch(t *testing.T) {
	table, err := compileRules([]Rule{
		{`x*`, Plus},
		{`[0-9]+`, Number},
	})
	require.NoError(t, err)
	toks, err := lex("12", table, DefaultMaxLiteralLength)
	require.NoError(t, err)
	assert.Equal(t, Tokens{{Number, "12", 0}}, toks)
}

func TestCompileRules_BadPattern(t *testing.T) {
	_, err := compileRules([]Rule{{`(`, LParen}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `rule 0 "("`)
}

func TestRules_ReturnsCopy(t *testing.T) {
	r := Rules()
	require.Len(t, r, 9)
	assert.Equal(t, Number, r[1].Kind)
	r[1].Kind = Plus
	assert.Equal(t, Number, Rules()[1].Kind)
}

func TestTokenEnd(t *testing.T) {
	assert.Equal(t, 5, Token{Number, "123", 2}.End())
	assert.Equal(t, 4, Token{Equal, "", 2}.End())
	assert.Equal(t, 3, Token{Plus, "", 2}.End())
}
