package normalize

import (
	"regexp"

	"lexwatch/collector-service/internal/signature"
)

// Permalink is an extracted post identifier. Confidence below 0.9 means the
// ID is content-derived, not source-assigned — downstream signature priority
// must not treat it as a real post ID.
type Permalink struct {
	ID         string
	URL        string
	IsActivity bool // activity post vs ugcPost/share kinds
	Valid      bool
	Confidence float64
}

var (
	activityURNRe = regexp.MustCompile(`(?:urn(?::|%3A)li(?::|%3A)activity(?::|%3A)|activity[-:])(\d+)`)
	ugcURNRe      = regexp.MustCompile(`(?:urn(?::|%3A)li(?::|%3A)ugcPost(?::|%3A)|ugcPost[-:])(\d+)`)
)

// ExtractPermalink recognizes canonical activity-URN and ugcPost-URN URL
// forms. When no recognizable pattern exists but the post has text, it falls
// back to a content-derived pseudo-ID at confidence 0.6 so signature
// priority correctly prefers real post IDs.
func ExtractPermalink(rawURL, text, author string) Permalink {
	if m := activityURNRe.FindStringSubmatch(rawURL); m != nil {
		return Permalink{ID: m[1], URL: rawURL, IsActivity: true, Valid: true, Confidence: 0.95}
	}
	if m := ugcURNRe.FindStringSubmatch(rawURL); m != nil {
		return Permalink{ID: m[1], URL: rawURL, IsActivity: false, Valid: true, Confidence: 0.95}
	}
	if text == "" && author == "" {
		return Permalink{URL: rawURL}
	}
	return Permalink{
		ID:         signature.ContentPseudoID(text, author),
		URL:        rawURL,
		Valid:      true,
		Confidence: 0.6,
	}
}
