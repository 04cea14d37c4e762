// Package lexer tokenizes TSTP/TPTP text at character granularity (C11),
// grounded on lexer rule: every non-whitespace character
// is its own token, and whitespace may never separate two characters that
// are both identifier characters.
package lexer

import (
	"fmt"
	"strings"
)

// IsIdentChar reports whether r is one of the identifier characters
// [A-Za-z0-9_$'.].
func IsIdentChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '$' || r == '\'' || r == '.':
		return true
	}
	return false
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// Token is one non-whitespace character read from the input, along with
// its 0-indexed rune offset for diagnostics.
type Token struct {
	Char rune
	Pos int
}

// Lex splits input into a flat sequence of per-character tokens. It is an
// error for whitespace to separate two consecutive identifier characters,
// per the TPTP-style tokenization rule.
func Lex(input string) ([]Token, error) {
	runes := []rune(input)
	var toks []Token
	afterIdent := false
	gapSinceIdent := false

	for i, r := range runes {
		if isSpace(r) {
			if afterIdent {
				gapSinceIdent = true
			}
			continue
		}
		if IsIdentChar(r) && gapSinceIdent {
			return nil, fmt.Errorf("tstp lexer: whitespace between identifier characters at position %d", i)
		}
		afterIdent = IsIdentChar(r)
		gapSinceIdent = false
		toks = append(toks, Token{Char: r, Pos: i})
	}
	return toks, nil
}

// Render concatenates a run of tokens back into the literal text they
// were read from, for reconstructing identifiers out of LETTER chains.
func Render(toks []Token) string {
	var sb strings.Builder
	for _, t := range toks {
		sb.WriteRune(t.Char)
	}
	return sb.String()
}
