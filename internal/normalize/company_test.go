package normalize_test

import (
	"testing"

	"lexwatch/collector-service/internal/normalize"
)

// ── CleanCompanyName ───────────────────────────────────────────────────────

func TestCleanCompanyName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Fidal | 5M followers", "Fidal"},
		{"Cabinet Martin · 12 345 abonnés", "Cabinet Martin"},
		{"  KPMG Avocats  ", "KPMG Avocats"},
	}
	for _, c := range cases {
		got := normalize.CleanCompanyName(c.in)
		if !got.Valid || got.Value != c.want {
			t.Errorf("CleanCompanyName(%q) = %+v, want %q", c.in, got, c.want)
		}
	}
}

// ── CompanyFromSlug ────────────────────────────────────────────────────────

func TestCompanyFromSlug(t *testing.T) {
	got := normalize.CompanyFromSlug("https://www.linkedin.com/company/cabinet-martin-associes/")
	if !got.Valid {
		t.Fatalf("CompanyFromSlug invalid: %+v", got)
	}
	if got.Value != "Cabinet Martin Associes" {
		t.Errorf("CompanyFromSlug = %q, want %q", got.Value, "Cabinet Martin Associes")
	}
	if got.Confidence >= 0.9 {
		t.Errorf("slug-derived company confidence = %v, want < 0.9", got.Confidence)
	}
}

func TestCompanyFromSlug_NoCompanyPath(t *testing.T) {
	got := normalize.CompanyFromSlug("https://www.linkedin.com/in/marie-dupont/")
	if got.Valid {
		t.Errorf("profile URL should not yield a company, got %+v", got)
	}
}

// ── CompanyFromTitle ───────────────────────────────────────────────────────

func TestCompanyFromTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Juriste fiscal chez Fidal", "Fidal"},
		{"Legal Counsel at Linklaters | Paris", "Linklaters"},
		{"Paralegal @ KPMG Avocats", "KPMG Avocats"},
	}
	for _, c := range cases {
		got := normalize.CompanyFromTitle(c.in)
		if !got.Valid || got.Value != c.want {
			t.Errorf("CompanyFromTitle(%q) = %+v, want %q", c.in, got, c.want)
		}
	}
}

func TestCompanyFromTitle_NoConnector(t *testing.T) {
	got := normalize.CompanyFromTitle("Directrice juridique")
	if got.Valid {
		t.Errorf("title without connector should not yield a company, got %+v", got)
	}
}
