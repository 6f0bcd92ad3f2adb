package normalize_test

import (
	"testing"
	"time"

	"lexwatch/collector-service/internal/model"
	"lexwatch/collector-service/internal/normalize"
)

// ── ExtractPermalink ───────────────────────────────────────────────────────

func TestExtractPermalink_ActivityURN(t *testing.T) {
	for _, u := range []string{
		"https://www.linkedin.com/feed/update/urn:li:activity:7214839201/",
		"https://www.linkedin.com/posts/marie-dupont_activity-7214839201-Ab3c",
	} {
		got := normalize.ExtractPermalink(u, "some text", "author")
		if !got.Valid || got.ID != "7214839201" {
			t.Errorf("ExtractPermalink(%q) = %+v, want ID 7214839201", u, got)
		}
		if !got.IsActivity {
			t.Errorf("ExtractPermalink(%q).IsActivity = false, want true", u)
		}
		if got.Confidence < 0.9 {
			t.Errorf("real permalink confidence = %v, want >= 0.9", got.Confidence)
		}
	}
}

func TestExtractPermalink_UgcPostURN(t *testing.T) {
	got := normalize.ExtractPermalink("https://www.linkedin.com/feed/update/urn:li:ugcPost:9912233445/", "t", "a")
	if !got.Valid || got.ID != "9912233445" {
		t.Fatalf("ExtractPermalink ugcPost = %+v", got)
	}
	if got.IsActivity {
		t.Error("ugcPost must not be flagged as activity")
	}
}

func TestExtractPermalink_ContentFallback(t *testing.T) {
	got := normalize.ExtractPermalink("https://example.com/feed", "Nous recrutons un juriste", "Marie")
	if !got.Valid || got.ID == "" {
		t.Fatalf("fallback permalink = %+v, want content pseudo-ID", got)
	}
	if got.Confidence >= 0.9 {
		t.Errorf("pseudo-ID confidence = %v, want < 0.9", got.Confidence)
	}
}

func TestExtractPermalink_NothingToDeriveFrom(t *testing.T) {
	got := normalize.ExtractPermalink("https://example.com/feed", "", "")
	if got.Valid {
		t.Errorf("no text, no URN — permalink should be invalid, got %+v", got)
	}
}

// ── NormalizePost aggregate confidence ─────────────────────────────────────

func TestNormalizePost_AggregateSkipsUnattemptedFields(t *testing.T) {
	// Only the author is present: the aggregate must average one field,
	// not divide by every possible field.
	p := normalize.NormalizePost(model.RawPost{AuthorName: "Marie Dupont"}, time.Now())
	if p.Confidence != p.Author.Confidence {
		t.Errorf("aggregate = %v, want author confidence %v", p.Confidence, p.Author.Confidence)
	}
}

func TestNormalizePost_FullRecord(t *testing.T) {
	raw := model.RawPost{
		Text:         "Nous recrutons un juriste fiscal",
		AuthorName:   "Marie Dupont (She/Her)",
		AuthorTitle:  "Responsable RH chez Fidal",
		DateText:     "2h",
		PermalinkURL: "https://www.linkedin.com/feed/update/urn:li:activity:7214839201/",
	}
	p := normalize.NormalizePost(raw, time.Now())

	if p.Author.Value != "Marie Dupont" {
		t.Errorf("author = %q", p.Author.Value)
	}
	if p.Company.Value != "Fidal" {
		t.Errorf("company from title = %q, want Fidal", p.Company.Value)
	}
	if !p.Date.Valid || p.Date.AgeHours != 2 {
		t.Errorf("date = %+v, want valid 2h", p.Date)
	}
	if p.Permalink.ID != "7214839201" {
		t.Errorf("permalink ID = %q", p.Permalink.ID)
	}
	if p.Confidence <= 0 || p.Confidence > 1 {
		t.Errorf("aggregate confidence = %v, want (0,1]", p.Confidence)
	}
}

func TestNormalizePost_ExplicitPostIDWins(t *testing.T) {
	raw := model.RawPost{PostID: "424242", Text: "hello"}
	p := normalize.NormalizePost(raw, time.Now())
	if p.Permalink.ID != "424242" || p.Permalink.Confidence < 0.9 {
		t.Errorf("explicit post ID = %+v, want ID 424242 at high confidence", p.Permalink)
	}
}
