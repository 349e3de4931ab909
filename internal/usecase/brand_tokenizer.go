package usecase

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minTokenLength is the shortest token (in characters) that can name a brand
const minTokenLength = 2

// isTokenDelimiter reports whether r separates words in a product name:
// any whitespace, hyphen, comma, slash, backslash, pipe or Arabic comma
func isTokenDelimiter(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '-', ',', '/', '\\', '|', '،':
		return true
	}
	return false
}

// tokenizeProductName splits a product name into brand-candidate tokens.
// Tokens shorter than two characters and pure numbers are skipped; case is preserved.
func tokenizeProductName(s string) []string {
	words := strings.FieldsFunc(strings.TrimSpace(s), isTokenDelimiter)

	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if utf8.RuneCountInString(word) < minTokenLength {
			continue
		}
		if isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// leadingTokens returns at most n tokens from the start of a product name
func leadingTokens(s string, n int) []string {
	tokens := tokenizeProductName(s)
	if len(tokens) > n {
		tokens = tokens[:n]
	}
	return tokens
}

// isNumeric checks if a string contains only digits, in any script
func isNumeric(s string) bool {
	for _, c := range s {
		if !unicode.IsDigit(c) {
			return false
		}
	}
	return len(s) > 0
}
