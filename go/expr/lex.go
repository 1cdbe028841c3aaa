package expr

import (
	"github.com/GaryCAICHI/ysyx-workbench/go/sklog"
)

// DefaultMaxLiteralLength is the longest Number literal accepted by default.
const DefaultMaxLiteralLength = 31

// lexer holds the state of a single scan.
type lexer struct {
	input      string
	pos        int
	rules      []rule
	maxLiteral int
}

func newLexer(input string, rules []rule, maxLiteral int) *lexer {
	return &lexer{
		input:      input,
		pos:        0,
		rules:      rules,
		maxLiteral: maxLiteral,
	}
}

// next returns the next token. ok is false once the input is exhausted.
// Whitespace is skipped.
func (l *lexer) next() (Token, bool, error) {
	for l.pos < len(l.input) {
		r, n := l.match()
		if n == 0 {
			return Token{}, false, newError(UnexpectedCharacter, l.pos)
		}
		start := l.pos
		l.pos += n
		sklog.Debugf("Rule %d (%s) matched %q at offset %d", r, l.rules[r].Pattern, l.input[start:l.pos], start)

		switch l.rules[r].Kind {
		case space:
			continue
		case Number:
			if n > l.maxLiteral {
				return Token{}, false, newError(NumberTooLong, start)
			}
			return Token{Kind: Number, Text: l.input[start:l.pos], Offset: start}, true, nil
		default:
			return Token{Kind: l.rules[r].Kind, Offset: start}, true, nil
		}
	}
	return Token{}, false, nil
}

// match tries every rule in priority order at the current position and
// returns the index of the first one that matches along with the match
// length. A length of 0 means nothing matched.
func (l *lexer) match() (int, int) {
	rest := l.input[l.pos:]
	for i, r := range l.rules {
		loc := r.re.FindStringIndex(rest)
		if loc == nil || loc[1] == 0 {
			continue
		}
		return i, loc[1]
	}
	return -1, 0
}

func lex(input string, rules []rule, maxLiteral int) (Tokens, error) {
	// Every token takes at least one byte, so this never reallocates.
	toks := make(Tokens, 0, len(input))
	l := newLexer(input, rules, maxLiteral)
	for {
		tok, ok, err := l.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// Lex converts input into Tokens using the default literal length limit.
func Lex(input string) (Tokens, error) {
	return lex(input, rules, DefaultMaxLiteralLength)
}
