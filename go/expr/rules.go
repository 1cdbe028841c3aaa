package expr

import (
	"regexp"

	"github.com/GaryCAICHI/ysyx-workbench/go/skerr"
	"github.com/GaryCAICHI/ysyx-workbench/go/sklog"
)

// Rule pairs a regular expression with the Kind of token it produces.
type Rule struct {
	Pattern string
	Kind    Kind
}

// The order matters: at every offset the first rule that matches wins, even
// if a later one would match more input.
var ruleDefs = []Rule{
	{`[ \t]+`, space},
	{`0|[1-9][0-9]*`, Number},
	{`==`, Equal},
	{`\*`, Multiply},
	{`/`, Divide},
	{`\+`, Plus},
	{`-`, Minus},
	{`\(`, LParen},
	{`\)`, RParen},
}

type rule struct {
	Rule
	re *regexp.Regexp
}

// rules are used for every Lex call, so they are compiled once.
var rules []rule

func init() {
	var err error
	rules, err = compileRules(ruleDefs)
	if err != nil {
		sklog.Fatalf("Failed to compile lexical rules: %s", err)
	}
}

// compileRules anchors every pattern to the start of the remaining input.
func compileRules(defs []Rule) ([]rule, error) {
	ret := make([]rule, 0, len(defs))
	for i, d := range defs {
		re, err := regexp.Compile(`^(?:` + d.Pattern + `)`)
		if err != nil {
			return nil, skerr.Wrapf(err, "rule %d %q", i, d.Pattern)
		}
		ret = append(ret, rule{Rule: d, re: re})
	}
	return ret, nil
}

// Rules returns the lexical rules in priority order.
func Rules() []Rule {
	ret := make([]Rule, len(ruleDefs))
	copy(ret, ruleDefs)
	return ret
}
