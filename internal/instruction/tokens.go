// Package instruction turns free-text payment instructions into structured fields.
package instruction

import "strings"

// MinTokens is the length of the shortest sentence worth parsing.
const MinTokens = 8

// Tokens is a normalized instruction. Upper-cased tokens are used for keyword
// matching; the original-case tokens at the same indices keep account identifiers
// intact.
type Tokens struct {
	upper    []string
	original []string
}

// Normalize trims the input, collapses whitespace runs and upper-cases every token.
func Normalize(raw string) Tokens {
	original := strings.Fields(raw)
	upper := make([]string, len(original))
	for i, tok := range original {
		upper[i] = strings.ToUpper(tok)
	}
	return Tokens{upper: upper, original: original}
}

// Len returns the number of tokens.
func (t Tokens) Len() int {
	return len(t.upper)
}

// At returns the upper-cased token at i, or "" when i is out of range.
func (t Tokens) At(i int) string {
	if i < 0 || i >= len(t.upper) {
		return ""
	}
	return t.upper[i]
}

// Original returns the case-preserving token at i.
func (t Tokens) Original(i int) (string, bool) {
	if i < 0 || i >= len(t.original) {
		return "", false
	}
	return t.original[i], true
}

// Upper returns a copy of the upper-cased token sequence.
func (t Tokens) Upper() []string {
	out := make([]string, len(t.upper))
	copy(out, t.upper)
	return out
}

// String joins the upper-cased tokens with single spaces.
func (t Tokens) String() string {
	return strings.Join(t.upper, " ")
}
