package classify

import "strings"

// Filter is the unified policy layer: categorical exclusions applied on top
// of the rule engine's score, producing a final accept/reject with a
// human-readable category so operators can audit why a post was dropped.
//
// Category precedence, first match wins: agency → stage/internship →
// custom exclusion → scoring (low_score / non_recruitment / relevant).
type Filter struct {
	engine *Engine
}

// NewFilter compiles cfg into a Filter.
func NewFilter(cfg Config) (*Filter, error) {
	engine, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	return &Filter{engine: engine}, nil
}

// ConfigHash changes whenever any weight, threshold or term list changes.
func (f *Filter) ConfigHash() string { return f.engine.hash }

// ClassifyPost is the single public entry point. Side-effect-free.
func (f *Filter) ClassifyPost(text, author, company string) Result {
	return f.ClassifyPostLanguage(text, author, company, "")
}

// ClassifyPostLanguage classifies with a declared-language hint from the
// collector. Exclusion categories scan the combined text + author + company
// string, since agency language often lives in the company field.
func (f *Filter) ClassifyPostLanguage(text, author, company, declaredLang string) Result {
	res := f.engine.ClassifyLanguage(text, declaredLang)
	scan := fold(strings.Join([]string{text, author, company}, " "))

	if f.engine.cfg.ExcludeAgency {
		if hit := firstMatch(scan, f.engine.agency); hit != "" {
			res.Intent = IntentAgency
			res.MatchedTerms = append(res.MatchedTerms, hit)
			return res
		}
	}
	if f.engine.cfg.ExcludeStage {
		if hit := firstMatch(scan, f.engine.stage); hit != "" {
			res.Intent = IntentStage
			res.MatchedTerms = append(res.MatchedTerms, hit)
			return res
		}
	}
	if hit := firstMatch(scan, f.engine.exclude); hit != "" {
		res.Intent = IntentOther
		res.MatchedTerms = append(res.MatchedTerms, "-"+hit)
		return res
	}

	// Inclusion terms boost evidence for known-good sources. They are
	// recorded as "+term" for audit trails and may lift a borderline score
	// over the threshold, but they never override the exclusions above.
	for _, t := range f.engine.include {
		if findTerm(scan, t) >= 0 {
			res.Score = clamp01(res.Score + f.engine.cfg.InclusionBonus)
			res.MatchedTerms = append(res.MatchedTerms, "+"+t)
		}
	}
	if res.Intent != IntentRelevant &&
		res.Score >= f.engine.cfg.IntentThreshold &&
		res.LanguageOK && res.LocationOK &&
		res.RoleMatches >= 1 && res.RecruitmentMatches >= 1 {
		// The suppression rules all require an absent recruitment phrase,
		// so a bonus-lifted post with both signals present is safe to accept.
		res.Intent = IntentRelevant
	}

	if res.Intent == IntentRelevant {
		return res
	}

	switch {
	case res.RoleMatches == 0 && res.RecruitmentMatches == 0:
		res.Intent = IntentNonRecruitment
	case res.RecruitmentMatches == 0:
		res.Intent = IntentNonRecruitment // role mentions without hiring language
	case res.Score < f.engine.cfg.MinScore:
		res.Intent = IntentLowScore
	default:
		res.Intent = IntentOther
	}
	return res
}

var _ Classifier = (*Filter)(nil)

// Classify satisfies the pluggable Classifier seam with no language hint.
func (f *Filter) Classify(text, author, company string) Result {
	return f.ClassifyPost(text, author, company)
}
