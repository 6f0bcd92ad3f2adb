// Package classify turns noisy post text into an intent + relevance
// judgment. The rule engine is deliberately transparent: every decision
// lists its matched evidence, and the scoring is conservative — ambiguous
// cases resolve to "other" rather than "relevant".
package classify

import (
	"math"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Intent is the enumerated classification label.
type Intent string

const (
	IntentRelevant       Intent = "relevant"
	IntentAgency         Intent = "agency"
	IntentStage          Intent = "stage_or_internship"
	IntentLowScore       Intent = "low_score"
	IntentNonRecruitment Intent = "non_recruitment"
	IntentOther          Intent = "other"
)

// Result is one classification outcome. It is created fresh per call and
// never cached by the engine — classification is deterministic for the same
// (text, config) pair, so callers may cache externally keyed by Config.Hash.
type Result struct {
	Intent       Intent
	Score        float64 // combined role+recruitment score in [0,1]
	Confidence   float64 // quarter increments over four signal categories
	MatchedTerms []string
	LocationOK   bool

	// Audit detail for the unified filter and operator telemetry.
	LanguageOK         bool
	GenericOnly        bool
	RoleMatches        int
	RecruitmentMatches int
	NegativeMatches    int
}

// Accepted reports whether the post passed every gate.
func (r Result) Accepted() bool { return r.Intent == IntentRelevant }

// Classifier is the pluggable scoring seam: implementations must be pure
// functions of their inputs. The rule-based Engine is the fixed default.
type Classifier interface {
	Classify(text, author, company string) Result
}

// Engine is the compiled rule-based classifier. Compilation folds and
// deduplicates every term list and sorts longest-first, so multi-word terms
// match before their substrings. An Engine is immutable after construction
// and safe for concurrent use.
type Engine struct {
	cfg  Config
	hash string

	roleTerms    []string
	genericTerms []string
	recruitment  []string
	negative     []string
	agency       []string
	stage        []string
	include      []string
	exclude      []string
	positiveLoc  []string
	negativeLoc  []string
}

// NewEngine validates and compiles a Config.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:          cfg,
		hash:         cfg.Hash(),
		roleTerms:    compileTerms(cfg.RoleTerms),
		genericTerms: compileTerms(cfg.GenericRoleTerms),
		recruitment:  compileTerms(cfg.RecruitmentTerms),
		negative:     compileTerms(cfg.NegativeContextTerms),
		agency:       compileTerms(cfg.AgencyTerms),
		stage:        compileTerms(cfg.StageTerms),
		include:      compileTerms(cfg.IncludeTerms),
		exclude:      compileTerms(cfg.ExcludeTerms),
		positiveLoc:  compileTerms(cfg.PositiveLocations),
		negativeLoc:  compileTerms(cfg.NegativeLocations),
	}, nil
}

// Hash exposes the compiled config's version digest.
func (e *Engine) Hash() string { return e.hash }

// Classify scores text against the target language with no declared
// language hint. The rule engine scores text only; author and company are
// accepted for interface compatibility with pluggable classifiers.
func (e *Engine) Classify(text, _, _ string) Result {
	return e.ClassifyLanguage(text, "")
}

// ClassifyLanguage runs the full gate/score machine. Pure: no I/O, no
// mutable state, deterministic for the same inputs.
func (e *Engine) ClassifyLanguage(text, declaredLang string) Result {
	folded := fold(text)

	langOK := e.languageOK(folded, declaredLang)
	locOK := e.locationOK(folded)

	roleHits, genericOnly := e.matchRoles(folded)
	// Negative-context spans are blanked before recruitment matching so a
	// disclaimer like "sans offre d'emploi" cannot donate its "offre
	// d'emploi" substring as a hiring signal.
	negHits, remaining := matchAndRemoveText(folded, e.negative)
	recHits := matchAndRemove(remaining, e.recruitment)

	roleScore := saturate(len(roleHits), e.cfg.RoleSaturation)
	if genericOnly {
		roleScore *= e.cfg.GenericPenalty
	}
	recScore := saturate(len(recHits), e.cfg.RecruitmentSaturation)

	combined := clamp01(e.cfg.RoleWeight*roleScore + e.cfg.RecruitmentWeight*recScore)
	if len(negHits) > 0 && len(recHits) == 0 {
		combined *= e.cfg.NegativeContextPenalty
	}

	suppressed := e.suppress(combined, len(roleHits), len(recHits), len(negHits), genericOnly)

	intent := IntentOther
	if !suppressed &&
		combined >= e.cfg.IntentThreshold &&
		langOK && locOK &&
		len(roleHits) >= 1 && len(recHits) >= 1 {
		intent = IntentRelevant
	}

	confidence := 0.0
	for _, signal := range []bool{len(roleHits) > 0, len(recHits) > 0, langOK, locOK} {
		if signal {
			confidence += 0.25
		}
	}

	matched := make([]string, 0, len(roleHits)+len(recHits)+len(negHits))
	matched = append(matched, roleHits...)
	matched = append(matched, recHits...)
	matched = append(matched, negHits...)

	return Result{
		Intent:             intent,
		Score:              combined,
		Confidence:         confidence,
		MatchedTerms:       matched,
		LocationOK:         locOK,
		LanguageOK:         langOK,
		GenericOnly:        genericOnly,
		RoleMatches:        len(roleHits),
		RecruitmentMatches: len(recHits),
		NegativeMatches:    len(negHits),
	}
}

// suppress applies the conservative rules that force intent to "other"
// regardless of score. The conditions overlap deliberately: (d) subsumes
// (a)–(c) for intent resolution, but each is evaluated in order so the
// tuned borderline behavior is preserved exactly.
func (e *Engine) suppress(combined float64, roles, recs, negs int, genericOnly bool) bool {
	if negs > 0 && recs == 0 { // (a) informational context, no hiring language
		return true
	}
	if genericOnly && roles < 2 && recs == 0 { // (b) weak generic-only evidence
		return true
	}
	if combined >= e.cfg.IntentThreshold && // (c) borderline band just above threshold
		combined < e.cfg.IntentThreshold+e.cfg.BorderlineBand &&
		recs == 0 && roles < 2 {
		return true
	}
	if recs == 0 { // (d) recruitment intent requires explicit recruitment language
		return true
	}
	return false
}

// matchRoles matches domain role terms longest-first, removing matched
// spans. When no domain term matches, it falls back to generic
// single-token stems; a generic-only match is penalized by the caller.
func (e *Engine) matchRoles(folded string) (hits []string, genericOnly bool) {
	hits = matchAndRemove(folded, e.roleTerms)
	if len(hits) > 0 {
		return hits, false
	}
	hits = matchAndRemove(folded, e.genericTerms)
	return hits, len(hits) > 0
}

// languageOK passes when the declared (or naively detected) language is the
// configured target. Unknown resolves to the target — the location and
// scoring gates still guard acceptance.
func (e *Engine) languageOK(folded, declared string) bool {
	target := strings.ToLower(e.cfg.TargetLanguage)
	if declared != "" {
		primary := strings.ToLower(declared)
		if i := strings.IndexAny(primary, "-_"); i > 0 {
			primary = primary[:i]
		}
		return primary == target
	}
	detected := detectLanguage(folded)
	return detected == "" || detected == target
}

// locationOK: acceptable if any positive-location term is present OR no
// negative-location term is present.
func (e *Engine) locationOK(folded string) bool {
	for _, t := range e.positiveLoc {
		if findTerm(folded, t) >= 0 {
			return true
		}
	}
	for _, t := range e.negativeLoc {
		if findTerm(folded, t) >= 0 {
			return false
		}
	}
	return true
}

// frMarkers/enMarkers drive the naive stopword-count language detector used
// when the collector declares no language.
var (
	frMarkers = []string{"le", "la", "les", "un", "une", "des", "nous", "vous", "pour", "dans", "chez", "est", "sont", "avec", "sur"}
	enMarkers = []string{"the", "and", "for", "with", "our", "we", "you", "this", "that", "are", "is", "to", "of", "in"}
)

func detectLanguage(folded string) string {
	words := mapset.NewThreadUnsafeSet(strings.Fields(folded)...)
	var fr, en int
	for _, m := range frMarkers {
		if words.Contains(m) {
			fr++
		}
	}
	for _, m := range enMarkers {
		if words.Contains(m) {
			en++
		}
	}
	switch {
	case fr > en:
		return "fr"
	case en > fr:
		return "en"
	default:
		return ""
	}
}

// matchAndRemove scans terms in compiled (longest-first) order, removing
// each match's span from the working text so overlapping shorter terms
// cannot double-count.
func matchAndRemove(folded string, terms []string) []string {
	hits, _ := matchAndRemoveText(folded, terms)
	return hits
}

// matchAndRemoveText additionally returns the working text with every
// matched span blanked, for callers that chain term categories.
func matchAndRemoveText(folded string, terms []string) ([]string, string) {
	working := folded
	var hits []string
	for _, t := range terms {
		if findTerm(working, t) >= 0 {
			hits = append(hits, t)
			working = removeTerm(working, t)
		}
	}
	return hits, working
}

// firstMatch returns the first (most specific) matching term, or "".
func firstMatch(folded string, terms []string) string {
	for _, t := range terms {
		if findTerm(folded, t) >= 0 {
			return t
		}
	}
	return ""
}

// saturate maps a distinct-hit count to [0,1] with diminishing returns:
// log1p(n)/log1p(k), saturating at k distinct hits.
func saturate(n, k int) float64 {
	if n <= 0 {
		return 0
	}
	v := math.Log1p(float64(n)) / math.Log1p(float64(k))
	return clamp01(v)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// compileTerms folds, deduplicates and sorts a term list longest-first.
func compileTerms(terms []string) []string {
	set := mapset.NewThreadUnsafeSet[string]()
	for _, t := range terms {
		if f := fold(t); f != "" {
			set.Add(f)
		}
	}
	out := set.ToSlice()
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}
