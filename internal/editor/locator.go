package editor

import (
	"regexp"
	"strings"
)

// Span is a half-open character range into a document. It is recomputed on
// every edit request and never persisted.
type Span struct {
	Start int
	End   int
}

// Len returns the number of characters covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Slice returns the excerpt the span covers.
func (s Span) Slice(doc string) string {
	return doc[s.Start:s.End]
}

// locateStrategy attempts to resolve a descriptor to a span. Strategies are
// pure and independently testable.
type locateStrategy func(doc, what string) (Span, bool)

// Ordered chain, first success wins.
var locateStrategies = []locateStrategy{
	exactMatch,
	foldedMatch,
	phrasePattern,
}

// Locate resolves a free-text descriptor to the character range it refers to.
// Three strategies are tried in order: exact substring, case-insensitive
// substring, and a `starts with ... ends with ...` phrase pattern. Matches are
// leftmost; the second match of a repeated phrase is never considered.
// A false result is an expected outcome, not an error.
func Locate(doc, what string) (Span, bool) {
	if what == "" {
		return Span{}, false
	}
	for _, strategy := range locateStrategies {
		if span, ok := strategy(doc, what); ok {
			return span, true
		}
	}
	return Span{}, false
}

func exactMatch(doc, what string) (Span, bool) {
	if i := strings.Index(doc, what); i != -1 {
		return Span{Start: i, End: i + len(what)}, true
	}
	return Span{}, false
}

// foldedMatch assumes case folding preserves length, which holds for the
// supported alphabet.
func foldedMatch(doc, what string) (Span, bool) {
	if i := indexFold(doc, what, 0); i != -1 {
		return Span{Start: i, End: i + len(what)}, true
	}
	return Span{}, false
}

var startsEndsRe = regexp.MustCompile(`(?i)starts?\s+with\s+(.+?)\s+ends?\s+with\s+(.+)`)

// phrasePattern handles descriptors of the form
// `starts with "<p1>" ends with "<p2>"`. The end phrase must occur strictly
// after the start phrase's match; an occurrence before it does not count.
func phrasePattern(doc, what string) (Span, bool) {
	m := startsEndsRe.FindStringSubmatch(what)
	if m == nil {
		return Span{}, false
	}
	startPhrase := stripQuotes(strings.TrimSpace(m[1]))
	endPhrase := stripQuotes(strings.TrimSpace(m[2]))

	startIdx := indexFold(doc, startPhrase, 0)
	if startIdx == -1 {
		return Span{}, false
	}
	afterStart := startIdx + len(startPhrase)
	endIdx := indexFold(doc, endPhrase, afterStart)
	if endIdx == -1 {
		return Span{}, false
	}
	return Span{Start: startIdx, End: endIdx + len(endPhrase)}, true
}

// indexFold is a case-insensitive strings.Index starting at from.
func indexFold(haystack, needle string, from int) int {
	if from > len(haystack) {
		return -1
	}
	i := strings.Index(strings.ToLower(haystack[from:]), strings.ToLower(needle))
	if i == -1 {
		return -1
	}
	return from + i
}

// stripQuotes removes a leading and a trailing single or double quote, each
// independently of the other.
func stripQuotes(s string) string {
	if len(s) > 0 && (s[0] == '"' || s[0] == '\'') {
		s = s[1:]
	}
	if len(s) > 0 && (s[len(s)-1] == '"' || s[len(s)-1] == '\'') {
		s = s[:len(s)-1]
	}
	return s
}
