// Package parsing turns free-text chat messages into structured queries:
// a coarse intent, the catalog ids mentioned and a handful of clothing keywords.
package parsing

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// queryText holds the forms of a message that intent rules look at.
type queryText struct {
	raw        string
	normalized string
	words      []string
	wordSet    map[string]bool
}

func newQueryText(text string) *queryText {
	normalized := NormalizeText(text)
	words := Words(normalized)
	wordSet := make(map[string]bool, len(words))
	for _, w := range words {
		wordSet[w] = true
	}
	return &queryText{
		raw:        text,
		normalized: normalized,
		words:      words,
		wordSet:    wordSet,
	}
}

// hasWord reports whether any of the given words appears as a whole word.
func (q *queryText) hasWord(words ...string) bool {
	for _, w := range words {
		if q.wordSet[w] {
			return true
		}
	}
	return false
}

// hasSubstring reports whether any of the given fragments appears anywhere in the text.
func (q *queryText) hasSubstring(fragments ...string) bool {
	for _, f := range fragments {
		if strings.Contains(q.normalized, f) {
			return true
		}
	}
	return false
}

// NormalizeText lowercases and trims a message.
func NormalizeText(text string) string {
	// Casers carry state and must not be shared across goroutines
	return strings.TrimSpace(cases.Lower(language.Spanish).String(text))
}

// Words splits normalized text into words with surrounding punctuation removed.
func Words(text string) []string {
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if w := CleanWord(f); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// CleanWord drops every rune that is not a letter, digit or underscore.
func CleanWord(word string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return -1
	}, word)
}
