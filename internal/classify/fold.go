package classify

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold lowercases, strips diacritics and collapses whitespace so term
// matching is accent- and case-insensitive: "Poste à pourvoir" and
// "poste a pourvoir" fold identically. A fresh transformer chain is built
// per call — transformers carry state and must not be shared across
// goroutines.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.ToLower(out)
	return strings.Join(strings.Fields(out), " ")
}

// findTerm locates term in text at a word boundary on both sides, returning
// the byte offset or -1. Plain substring hits inside longer words
// ("stage" in "hostage") do not count.
func findTerm(text, term string) int {
	if term == "" {
		return -1
	}
	from := 0
	for {
		i := strings.Index(text[from:], term)
		if i < 0 {
			return -1
		}
		start := from + i
		end := start + len(term)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return start
		}
		from = start + 1
	}
}

// removeTerm blanks every word-bounded occurrence of term so shorter
// overlapping terms cannot double-count the same span.
func removeTerm(text, term string) string {
	for {
		i := findTerm(text, term)
		if i < 0 {
			return text
		}
		text = text[:i] + " " + text[i+len(term):]
	}
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
