// Package expr evaluates the arithmetic expressions typed at the sdb prompt.
//
// The grammar is unsigned decimal literals, the binary operators + - * / and
// parentheses. Values are 32 bit unsigned words and arithmetic wraps.
//
// Lex splits the input with a priority ordered table of regular expressions,
// the first rule that matches at the current offset wins. Evaluation then
// recursively splits a token range at its rightmost top level + or -, or
// failing that its rightmost * or /, after stripping enclosing parentheses.
// Every failure is reported as an *Error; nothing is shared between calls.
package expr
