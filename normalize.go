package pricecheck

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// stopWords are dropped by Tokenize. The list is closed.
var stopWords = map[string]struct{}{
	"the":  {},
	"a":    {},
	"an":   {},
	"for":  {},
	"and":  {},
	"with": {},
	"to":   {},
	"of":   {},
	"on":   {},
	"in":   {},
}

// Normalize lowercases text, replaces every character that is not an ASCII
// letter, digit or whitespace with a space, collapses whitespace runs and
// trims the result. It is total and idempotent.
func Normalize(text string) string {
	lower := strings.ToLower(text)
	mapped := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		// Whitespace and punctuation alike become token separators.
		return ' '
	}, lower)
	return strings.Join(strings.Fields(mapped), " ")
}

// Tokenize normalizes text and splits it into tokens, dropping stop words.
func Tokenize(text string) []string {
	fields := strings.Fields(Normalize(text))
	tokens := fields[:0]
	for _, f := range fields {
		if _, stop := stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// CleanText turns a raw HTML fragment into display text. Tags are stripped
// before entities are decoded, so encoded markup survives as literal text.
func CleanText(fragment string) string {
	stripped := tagPattern.ReplaceAllString(fragment, " ")
	return CollapseSpace(html.UnescapeString(stripped))
}

// CollapseSpace collapses whitespace runs, non-breaking space included, into
// single spaces and trims the result. Use it for text that is already decoded.
func CollapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
