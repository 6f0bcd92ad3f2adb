package normalize_test

import (
	"math"
	"testing"
	"time"

	"lexwatch/collector-service/internal/normalize"
)

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

// ── relative expressions ───────────────────────────────────────────────────

func TestParseDate_Relative(t *testing.T) {
	cases := []struct {
		in       string
		ageHours float64
	}{
		{"2h", 2},
		{"2 h", 2},
		{"45 min", 0.75},
		{"3 jours", 72},
		{"3 days ago", 72},
		{"1 week ago", 168},
		{"2 semaines", 336},
		{"1 mois", 730},
		{"Il y a 5 heures", 5},
	}
	for _, c := range cases {
		got := normalize.ParseDate(c.in, testNow)
		if !got.Valid {
			t.Errorf("ParseDate(%q) invalid, want age %v", c.in, c.ageHours)
			continue
		}
		if math.Abs(got.AgeHours-c.ageHours) > 0.01 {
			t.Errorf("ParseDate(%q).AgeHours = %v, want %v", c.in, got.AgeHours, c.ageHours)
		}
		if got.Confidence <= 0 {
			t.Errorf("ParseDate(%q).Confidence = %v, want > 0", c.in, got.Confidence)
		}
	}
}

func TestParseDate_Immediate(t *testing.T) {
	for _, in := range []string{"à l'instant", "just now", "maintenant"} {
		got := normalize.ParseDate(in, testNow)
		if !got.Valid || got.AgeHours != 0 {
			t.Errorf("ParseDate(%q) = %+v, want valid with age 0", in, got)
		}
	}
}

// ── absolute expressions ───────────────────────────────────────────────────

func TestParseDate_Absolute(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2026-03-10", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"10/03/2026", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"10 mars 2026", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"1er février 2026", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"March 10, 2026", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got := normalize.ParseDate(c.in, testNow)
		if !got.Valid {
			t.Errorf("ParseDate(%q) invalid, want %v", c.in, c.want)
			continue
		}
		if !got.Time.Equal(c.want) {
			t.Errorf("ParseDate(%q).Time = %v, want %v", c.in, got.Time, c.want)
		}
	}
}

// ── failure path ───────────────────────────────────────────────────────────

func TestParseDate_Unparseable(t *testing.T) {
	for _, in := range []string{"", "n/a", "promoted", "???"} {
		got := normalize.ParseDate(in, testNow)
		if got.Valid || got.Confidence != 0 {
			t.Errorf("ParseDate(%q) = %+v, want invalid with zero confidence", in, got)
		}
	}
}
