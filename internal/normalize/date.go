package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParsedDate is the outcome of date-text parsing. Unparseable input yields
// the zero value (Valid false, Confidence 0) — never an error.
type ParsedDate struct {
	Time       time.Time
	AgeHours   float64
	Valid      bool
	Confidence float64
}

var (
	relativeRe = regexp.MustCompile(`(?i)(\d+)\s*(heures?|hours?|hrs?|h|minutes?|mins?|mn|jours?|days?|j|d|semaines?|weeks?|sem|w|mois|months?|mo|ann[ée]es?|ans?|years?|yrs?|y)\b`)
	isoRe      = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	numericRe  = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	textualRe  = regexp.MustCompile(`(?i)\b(\d{1,2})(?:er|st|nd|rd|th)?\s+([a-zA-Zéûà]+)\.?\s+(\d{4})\b`)
	monthDayRe = regexp.MustCompile(`(?i)\b([a-zA-Z]+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`)
)

// immediateForms map to age zero ("posted just now").
var immediateForms = []string{
	"à l'instant", "a l'instant", "just now", "maintenant", "now",
	"aujourd'hui", "today",
}

// unitHours converts a relative-date unit token to hours.
var unitHours = map[string]float64{
	"minute": 1.0 / 60, "min": 1.0 / 60, "mn": 1.0 / 60,
	"heure": 1, "hour": 1, "hr": 1, "h": 1,
	"jour": 24, "day": 24, "j": 24, "d": 24,
	"semaine": 168, "week": 168, "sem": 168, "w": 168,
	"mois": 730, "month": 730, "mo": 730,
	"annee": 8760, "année": 8760, "an": 8760, "year": 8760, "yr": 8760, "y": 8760,
}

var months = map[string]time.Month{
	"janvier": time.January, "january": time.January, "jan": time.January,
	"fevrier": time.February, "février": time.February, "february": time.February, "feb": time.February,
	"mars": time.March, "march": time.March, "mar": time.March,
	"avril": time.April, "april": time.April, "apr": time.April,
	"mai": time.May, "may": time.May,
	"juin": time.June, "june": time.June, "jun": time.June,
	"juillet": time.July, "july": time.July, "jul": time.July,
	"aout": time.August, "août": time.August, "august": time.August, "aug": time.August,
	"septembre": time.September, "september": time.September, "sep": time.September, "sept": time.September,
	"octobre": time.October, "october": time.October, "oct": time.October,
	"novembre": time.November, "november": time.November, "nov": time.November,
	"decembre": time.December, "décembre": time.December, "december": time.December, "dec": time.December,
}

// ParseDate recognizes relative expressions ("2h", "3 jours", "1 week ago"),
// immediate forms ("à l'instant") and absolute dates (ISO, dd/mm/yyyy,
// FR/EN textual months). now is injected for testability.
func ParseDate(raw string, now time.Time) ParsedDate {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ParsedDate{}
	}
	lower := strings.ToLower(raw)

	for _, form := range immediateForms {
		if lower == form || strings.HasPrefix(lower, form+" ") {
			return ParsedDate{Time: now, AgeHours: 0, Valid: true, Confidence: 0.9}
		}
	}

	if m := relativeRe.FindStringSubmatch(lower); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			if hours, ok := unitHours[singularUnit(m[2])]; ok {
				age := float64(n) * hours
				return ParsedDate{
					Time:       now.Add(-time.Duration(age * float64(time.Hour))),
					AgeHours:   age,
					Valid:      true,
					Confidence: 0.9,
				}
			}
		}
	}

	if m := isoRe.FindStringSubmatch(raw); m != nil {
		if d := absoluteDate(m[1], m[2], m[3], now); d.Valid {
			return d
		}
	}
	if m := numericRe.FindStringSubmatch(raw); m != nil {
		// Day-first: the supported locales write dd/mm/yyyy.
		if d := absoluteDate(m[3], m[2], m[1], now); d.Valid {
			return d
		}
	}
	if m := textualRe.FindStringSubmatch(lower); m != nil {
		if month, ok := months[m[2]]; ok {
			if d := buildDate(m[3], int(month), m[1], now); d.Valid {
				return d
			}
		}
	}
	if m := monthDayRe.FindStringSubmatch(lower); m != nil {
		if month, ok := months[m[1]]; ok {
			if d := buildDate(m[3], int(month), m[2], now); d.Valid {
				return d
			}
		}
	}

	return ParsedDate{}
}

// singularUnit strips a plural "s" so "jours" and "jour" share a map entry.
// "mois" is invariant and must keep its s.
func singularUnit(u string) string {
	if u == "mois" {
		return u
	}
	if len(u) > 2 && strings.HasSuffix(u, "s") {
		return strings.TrimSuffix(u, "s")
	}
	return u
}

func absoluteDate(year, month, day string, now time.Time) ParsedDate {
	m, _ := strconv.Atoi(month)
	return buildDate(year, m, day, now)
}

func buildDate(year string, month int, day string, now time.Time) ParsedDate {
	y, _ := strconv.Atoi(year)
	d, _ := strconv.Atoi(day)
	if y < 2000 || y > now.Year()+1 || month < 1 || month > 12 || d < 1 || d > 31 {
		return ParsedDate{}
	}
	t := time.Date(y, time.Month(month), d, 0, 0, 0, 0, time.UTC)
	age := now.Sub(t).Hours()
	if age < 0 {
		age = 0
	}
	return ParsedDate{Time: t, AgeHours: age, Valid: true, Confidence: 0.8}
}
