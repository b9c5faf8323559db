// Package strutil splits strings on multi-character delimiters.
package strutil

import "strings"

// Tokenizer walks a string delimiter by delimiter.
type Tokenizer struct {
	s     string
	delim string
	pos   int
}

// NewTokenizer returns a Tokenizer positioned at the start of s.
func NewTokenizer(s, delim string) *Tokenizer {
	return &Tokenizer{s: s, delim: delim}
}

// Next returns the text between the cursor and the next delimiter, or the
// end of the string, and moves the cursor past that delimiter. It reports
// false once the cursor has moved beyond the end of the string.
//
// With an empty delimiter the whole remainder is returned as one token.
func (t *Tokenizer) Next() (string, bool) {
	if t.pos > len(t.s) {
		return "", false
	}

	start := t.pos
	end := len(t.s)
	if t.delim != "" {
		if i := strings.Index(t.s[start:], t.delim); i >= 0 {
			end = start + i
		}
	}

	t.pos = end + len(t.delim)
	if t.delim == "" {
		t.pos = len(t.s) + 1
	}
	return t.s[start:end], true
}

// Pos returns the cursor offset.
func (t *Tokenizer) Pos() int {
	return t.pos
}

// Split breaks s around each delimiter. Unlike strings.Split, a trailing
// delimiter does not produce a trailing empty token and an empty s yields
// an empty slice. An empty delimiter returns s as the only token.
func Split(s, delim string) []string {
	tokens := []string{}
	if s == "" {
		return tokens
	}
	if delim == "" {
		return append(tokens, s)
	}

	t := NewTokenizer(s, delim)
	for t.Pos() < len(s) {
		tok, _ := t.Next()
		tokens = append(tokens, tok)
	}
	return tokens
}
