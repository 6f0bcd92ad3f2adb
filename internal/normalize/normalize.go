// Package normalize converts raw, inconsistent extraction fields into
// clean, confidence-scored structures. Every extractor recovers locally
// from unparseable input by returning a zero-confidence result — one
// malformed field never aborts a post.
package normalize

import (
	"time"

	"lexwatch/collector-service/internal/model"
)

// Field is one normalized metadata value. Confidence is 0 when extraction
// failed; Valid distinguishes "extracted" from "attempted and failed".
type Field struct {
	Value      string
	Valid      bool
	Confidence float64
}

// Post is the cleaned metadata bundle the classifier and sink consume.
type Post struct {
	Author    Field
	Title     Field
	Company   Field
	Date      ParsedDate
	Permalink Permalink

	// Confidence averages the confidences of fields that were actually
	// attempted; unattempted fields are excluded, not counted as zero.
	Confidence float64
}

// NormalizePost runs every extractor whose raw input is present. now is
// injected so date ages are reproducible in tests.
func NormalizePost(raw model.RawPost, now time.Time) Post {
	var p Post
	var sum float64
	var attempted int

	if raw.AuthorName != "" {
		p.Author = CleanAuthorName(raw.AuthorName)
		sum += p.Author.Confidence
		attempted++
	}
	if raw.AuthorTitle != "" {
		p.Title = CleanAuthorTitle(raw.AuthorTitle)
		sum += p.Title.Confidence
		attempted++
	}

	switch {
	case raw.CompanyName != "":
		p.Company = CleanCompanyName(raw.CompanyName)
	case raw.CompanyURL != "":
		p.Company = CompanyFromSlug(raw.CompanyURL)
	case p.Title.Valid:
		p.Company = CompanyFromTitle(p.Title.Value)
	}
	if raw.CompanyName != "" || raw.CompanyURL != "" || p.Title.Valid {
		sum += p.Company.Confidence
		attempted++
	}

	if raw.DateText != "" {
		p.Date = ParseDate(raw.DateText, now)
		sum += p.Date.Confidence
		attempted++
	}

	if raw.PostID != "" {
		p.Permalink = Permalink{ID: raw.PostID, URL: raw.PermalinkURL, IsActivity: true, Valid: true, Confidence: 0.95}
		sum += p.Permalink.Confidence
		attempted++
	} else if raw.PermalinkURL != "" || raw.Text != "" {
		p.Permalink = ExtractPermalink(raw.PermalinkURL, raw.Text, raw.AuthorName)
		sum += p.Permalink.Confidence
		attempted++
	}

	if attempted > 0 {
		p.Confidence = sum / float64(attempted)
	}
	return p
}
