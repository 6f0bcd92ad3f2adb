package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	// Trailing connection-degree markers: "• 1st", "· 2e", "• 3rd+", "•1er".
	degreeRe = regexp.MustCompile(`(?i)[•·|]\s*(1st|2nd|3rd|\d+(?:st|nd|rd|th|er|e|ème|eme))\+?\s*$`)
)

// titleBoilerplate marks non-informative title strings; matching titles are
// discarded entirely.
var titleBoilerplate = []string{
	"voir le profil", "view profile", "view the profile", "'s profile",
	"profil de", "see profile", "linkedin member", "membre de linkedin",
}

// CleanAuthorName strips pronoun parentheticals ("(She/Her)"),
// connection-degree markers and emoji noise, leaving a plausible human name.
func CleanAuthorName(raw string) Field {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Field{}
	}
	s = parentheticalRe.ReplaceAllString(s, " ")
	s = degreeRe.ReplaceAllString(s, " ")
	s = stripSymbols(s)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.Trim(s, " -,.")
	if s == "" || !hasLetter(s) {
		return Field{}
	}
	return Field{Value: s, Valid: true, Confidence: 0.9}
}

// CleanAuthorTitle returns the trimmed title, or an empty invalid Field for
// boilerplate like "Voir le profil de X".
func CleanAuthorTitle(raw string) Field {
	s := strings.Join(strings.Fields(raw), " ")
	if s == "" {
		return Field{}
	}
	lower := strings.ToLower(s)
	for _, b := range titleBoilerplate {
		if strings.Contains(lower, b) {
			return Field{}
		}
	}
	return Field{Value: s, Valid: true, Confidence: 0.8}
}

// stripSymbols removes emoji and symbol noise, keeping letters, marks,
// digits, spaces and the punctuation that appears in real names.
func stripSymbols(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		case r == '-' || r == '\'' || r == '.' || r == ',':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
