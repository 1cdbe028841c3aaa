package expr

// DefaultMaxNestingDepth is the deepest parenthesis nesting accepted by
// default. It limits parenthesis nesting only; a flat chain of operators
// recurses once per operator and is bounded by the length of the input.
const DefaultMaxNestingDepth = 1024

// evaluator computes values of index ranges into a single token stream.
type evaluator struct {
	toks     Tokens
	maxDepth int

	// match[i] is the index of the parenthesis paired with toks[i].
	match []int
}

// run checks the parentheses of toks[lo..hi] once, then evaluates it.
func (ev *evaluator) run(lo, hi int) (Word, error) {
	if lo < hi {
		if err := ev.pairParentheses(lo, hi); err != nil {
			return 0, err
		}
	}
	return ev.eval(lo, hi)
}

// offset returns the input offset of token i, or the end of the last token if
// i is past the end of the stream.
func (ev *evaluator) offset(i int) int {
	if i >= 0 && i < len(ev.toks) {
		return ev.toks[i].Offset
	}
	if n := len(ev.toks); n > 0 && i >= n {
		return ev.toks[n-1].End()
	}
	return 0
}

// eval returns the value of toks[lo..hi], both inclusive. The parentheses
// in the range must already be paired.
func (ev *evaluator) eval(lo, hi int) (Word, error) {
	if lo > hi {
		return 0, newError(MissingOperand, ev.offset(lo))
	}
	if lo == hi {
		return ev.number(lo)
	}
	if ev.toks[lo].Kind == LParen && ev.match[lo] == hi {
		return ev.eval(lo+1, hi-1)
	}

	op, err := ev.split(lo, hi)
	if err != nil {
		return 0, err
	}
	left, err := ev.eval(lo, op-1)
	if err != nil {
		return 0, err
	}
	right, err := ev.eval(op+1, hi)
	if err != nil {
		return 0, err
	}
	return apply(ev.toks[op], left, right)
}

// number converts the single token at i into a Word. Digits accumulate with
// wraparound.
func (ev *evaluator) number(i int) (Word, error) {
	tok := ev.toks[i]
	switch tok.Kind {
	case Number:
	case LParen, RParen:
		return 0, newError(UnbalancedParentheses, tok.Offset)
	default:
		return 0, newError(MissingOperand, tok.Offset)
	}
	var v Word
	for i := 0; i < len(tok.Text); i++ {
		v = v*10 + Word(tok.Text[i]-'0')
	}
	return v, nil
}

// pairParentheses fills in match for toks[lo..hi]. It fails on a stray
// closing parenthesis, on the outermost unclosed opening one, and on the
// first opening parenthesis nested deeper than maxDepth.
func (ev *evaluator) pairParentheses(lo, hi int) error {
	ev.match = make([]int, len(ev.toks))
	var open []int
	for i := lo; i <= hi; i++ {
		switch ev.toks[i].Kind {
		case LParen:
			open = append(open, i)
			if len(open) > ev.maxDepth {
				return newError(NestingTooDeep, ev.toks[i].Offset)
			}
		case RParen:
			if len(open) == 0 {
				return newError(UnbalancedParentheses, ev.toks[i].Offset)
			}
			j := open[len(open)-1]
			open = open[:len(open)-1]
			ev.match[i], ev.match[j] = j, i
		}
	}
	if len(open) > 0 {
		return newError(UnbalancedParentheses, ev.toks[open[0]].Offset)
	}
	return nil
}

// split picks the operator toks[lo..hi] is divided at: the rightmost + or -
// outside parentheses, or failing that the rightmost * or /. Picking the
// rightmost one makes operators of equal precedence associate to the left.
// Parenthesized groups are skipped whole.
func (ev *evaluator) split(lo, hi int) (int, error) {
	mul, other := -1, -1
	for i := hi; i >= lo; i-- {
		k := ev.toks[i].Kind
		switch {
		case k == RParen:
			i = ev.match[i]
		case k.isAdditive():
			return i, nil
		case k.isMultiplicative():
			if mul < 0 {
				mul = i
			}
		case k != Number:
			other = i
		}
	}
	if mul >= 0 {
		return mul, nil
	}
	if other >= 0 {
		return -1, newError(UnknownOperatorAtSplit, ev.toks[other].Offset)
	}
	return -1, newError(UnknownOperatorAtSplit, ev.offset(lo))
}

func apply(op Token, left, right Word) (Word, error) {
	switch op.Kind {
	case Plus:
		return left + right, nil
	case Minus:
		return left - right, nil
	case Multiply:
		return left * right, nil
	case Divide:
		if right == 0 {
			return 0, newError(DivisionByZero, op.Offset)
		}
		return left / right, nil
	default:
		return 0, newError(UnknownOperatorAtSplit, op.Offset)
	}
}
