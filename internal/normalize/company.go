package normalize

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	followersRe = regexp.MustCompile(`(?i)[•·|]?\s*[\d\s.,]+[km]?\s*(followers?|abonn[ée]s?)\s*$`)
	// "… chez Fidal", "… at Linklaters", "… @ KPMG" — connectors meaning
	// "employed by" in the supported locales.
	titleCompanyRe = regexp.MustCompile(`(?i)\s(?:chez|at|@)\s+(.+)$`)
	slugTitleCaser = cases.Title(language.French)
)

// CleanCompanyName strips follower counts and pipe-delimited decorations:
// "Fidal | 5M followers" → "Fidal".
func CleanCompanyName(raw string) Field {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Field{}
	}
	if i := strings.IndexAny(s, "|"); i >= 0 {
		s = s[:i]
	}
	s = followersRe.ReplaceAllString(s, "")
	s = strings.Trim(strings.Join(strings.Fields(s), " "), " -•·,")
	if s == "" {
		return Field{}
	}
	return Field{Value: s, Valid: true, Confidence: 0.9}
}

// CompanyFromSlug derives a company name from a company-profile URL slug:
// ".../company/cabinet-martin-associes/" → "Cabinet Martin Associes".
func CompanyFromSlug(rawURL string) Field {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Path == "" {
		return Field{}
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	slug := ""
	for i, seg := range segments {
		if (seg == "company" || seg == "school" || seg == "showcase") && i+1 < len(segments) {
			slug = segments[i+1]
			break
		}
	}
	if slug == "" {
		return Field{}
	}
	name := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return Field{}
	}
	return Field{Value: slugTitleCaser.String(name), Valid: true, Confidence: 0.7}
}

// CompanyFromTitle parses an employer out of an author title:
// "Juriste fiscal chez Fidal" → "Fidal". Lower confidence than an explicit
// company field — titles decorate freely.
func CompanyFromTitle(title string) Field {
	m := titleCompanyRe.FindStringSubmatch(" " + strings.TrimSpace(title))
	if m == nil {
		return Field{}
	}
	name := m[1]
	// Drop trailing decorations after a separator.
	for _, sep := range []string{"|", "–", " - ", "•", "·", ","} {
		if i := strings.Index(name, sep); i >= 0 {
			name = name[:i]
		}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Field{}
	}
	return Field{Value: name, Valid: true, Confidence: 0.6}
}
