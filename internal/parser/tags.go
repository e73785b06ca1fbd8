package parser

import (
	"regexp"
	"strings"
)

// Token is one (tag, value) pair found in a transcript line.
type Token struct {
	Tag   string
	Value string
}

// tagPattern matches "TAG|VALUE|" anywhere in a line: one to three letters,
// a pipe, then any run of non-pipe characters, then a pipe. Tags may appear
// mid-line and several times per line.
var tagPattern = regexp.MustCompile(`([A-Za-z]{1,3})\|([^|]*)\|`)

// Tokens scans one line and returns every tag token in order of appearance.
// Tag matching is case-insensitive; tags are lower-cased before dispatch.
// Unknown tags are not filtered here — the accumulator decides what to
// ignore, keeping the scanner independent of the recognized tag set.
func Tokens(line string) []Token {
	ms := tagPattern.FindAllStringSubmatch(line, -1)
	if ms == nil {
		return nil
	}
	toks := make([]Token, 0, len(ms))
	for _, m := range ms {
		toks = append(toks, Token{Tag: strings.ToLower(m[1]), Value: m[2]})
	}
	return toks
}
