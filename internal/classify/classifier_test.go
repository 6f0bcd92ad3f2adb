package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexwatch/collector-service/internal/classify"
)

func newEngine(t *testing.T) *classify.Engine {
	t.Helper()
	e, err := classify.NewEngine(classify.DefaultConfig())
	require.NoError(t, err)
	return e
}

// ── positive resolution ────────────────────────────────────────────────────

func TestClassify_ExplicitRecruitmentPost(t *testing.T) {
	e := newEngine(t)
	res := e.ClassifyLanguage(
		"Nous recrutons un juriste fiscal pour un poste à pourvoir en CDI à Paris", "fr")

	assert.Equal(t, classify.IntentRelevant, res.Intent)
	assert.True(t, res.LocationOK)
	assert.GreaterOrEqual(t, res.RoleMatches, 1)
	assert.GreaterOrEqual(t, res.RecruitmentMatches, 1)
	assert.Contains(t, res.MatchedTerms, "juriste fiscal")
	assert.GreaterOrEqual(t, res.Score, 0.45)
	assert.Equal(t, 1.0, res.Confidence)
}

func TestClassify_AccentInsensitiveMatching(t *testing.T) {
	e := newEngine(t)
	// Same post typed without accents must classify identically.
	a := e.ClassifyLanguage("Nous recrutons un juriste fiscal, poste à pourvoir à Paris", "fr")
	b := e.ClassifyLanguage("Nous recrutons un juriste fiscal, poste a pourvoir a Paris", "fr")
	assert.Equal(t, a.Intent, b.Intent)
	assert.Equal(t, a.Score, b.Score)
}

// ── conservatism ───────────────────────────────────────────────────────────

func TestClassify_OpinionArticleIsNeverRelevant(t *testing.T) {
	e := newEngine(t)
	res := e.ClassifyLanguage(
		"Article d'opinion sur le droit fiscal international sans offre d'emploi", "fr")

	assert.Equal(t, classify.IntentOther, res.Intent)
	assert.Zero(t, res.RecruitmentMatches,
		"a negated disclaimer must not count as a recruitment phrase")
	assert.Positive(t, res.NegativeMatches)
}

func TestClassify_RoleMentionsAloneAreNotRecruitment(t *testing.T) {
	e := newEngine(t)
	// Dense role vocabulary, zero hiring language: rule (d) forces "other"
	// no matter how high the role score gets.
	res := e.ClassifyLanguage(
		"Le juriste fiscal, l'avocat fiscaliste et le directeur juridique se retrouvent au congrès des notaires à Paris", "fr")

	assert.Equal(t, classify.IntentOther, res.Intent)
	assert.GreaterOrEqual(t, res.RoleMatches, 3)
	assert.Zero(t, res.RecruitmentMatches)
}

func TestClassify_GenericStemsOnlyArePenalized(t *testing.T) {
	e := newEngine(t)
	res := e.ClassifyLanguage("Réflexions sur le droit et la fiscalité", "fr")

	assert.Equal(t, classify.IntentOther, res.Intent)
	assert.True(t, res.GenericOnly)
}

// ── gates ──────────────────────────────────────────────────────────────────

func TestClassify_LanguageGate(t *testing.T) {
	e := newEngine(t)
	res := e.ClassifyLanguage("We are hiring a legal counsel, join our team in Paris", "en")

	assert.NotEqual(t, classify.IntentRelevant, res.Intent)
	assert.False(t, res.LanguageOK)
	// Matched terms are still recorded for audit.
	assert.NotEmpty(t, res.MatchedTerms)
}

func TestClassify_LocationGate(t *testing.T) {
	e := newEngine(t)

	// Negative location with no positive term: unacceptable.
	res := e.ClassifyLanguage("Nous recrutons un juriste fiscal en CDI à Londres", "fr")
	assert.False(t, res.LocationOK)
	assert.NotEqual(t, classify.IntentRelevant, res.Intent)

	// Positive term outweighs a negative one.
	res = e.ClassifyLanguage("Nous recrutons un juriste fiscal en CDI, Paris ou Londres", "fr")
	assert.True(t, res.LocationOK)

	// No location at all: acceptable.
	res = e.ClassifyLanguage("Nous recrutons un juriste fiscal en CDI", "fr")
	assert.True(t, res.LocationOK)
}

// ── scoring details ────────────────────────────────────────────────────────

func TestClassify_LongestTermWinsNoDoubleCount(t *testing.T) {
	e := newEngine(t)
	res := e.ClassifyLanguage("Nous recrutons un juriste fiscal en CDI à Lyon", "fr")

	assert.Contains(t, res.MatchedTerms, "juriste fiscal")
	assert.NotContains(t, res.MatchedTerms, "juriste",
		"the bare stem must not also match inside the removed span")
	assert.Equal(t, 1, res.RoleMatches)
}

func TestClassify_ConfidenceQuarters(t *testing.T) {
	e := newEngine(t)

	// All four signal categories: role, recruitment, language, location.
	res := e.ClassifyLanguage("Nous recrutons un juriste fiscal en CDI à Paris", "fr")
	assert.Equal(t, 1.0, res.Confidence)

	// No role, no recruitment; language and location pass.
	res = e.ClassifyLanguage("Bonjour à tous depuis Paris", "fr")
	assert.Equal(t, 0.5, res.Confidence)
}

func TestClassify_DeterministicAndPure(t *testing.T) {
	e := newEngine(t)
	const text = "Nous recrutons un juriste fiscal en CDI à Paris"
	a := e.ClassifyLanguage(text, "fr")
	b := e.ClassifyLanguage(text, "fr")
	assert.Equal(t, a, b)
}

func TestClassify_EmptyText(t *testing.T) {
	e := newEngine(t)
	res := e.ClassifyLanguage("", "")
	assert.Equal(t, classify.IntentOther, res.Intent)
	assert.Zero(t, res.Score)
}

// ── config validation ──────────────────────────────────────────────────────

func TestNewEngine_RejectsMalformedConfig(t *testing.T) {
	cfg := classify.DefaultConfig()
	cfg.IntentThreshold = 1.7
	_, err := classify.NewEngine(cfg)
	assert.Error(t, err)

	cfg = classify.DefaultConfig()
	cfg.TargetLanguage = ""
	_, err = classify.NewEngine(cfg)
	assert.Error(t, err)

	cfg = classify.DefaultConfig()
	cfg.RoleSaturation = 0
	_, err = classify.NewEngine(cfg)
	assert.Error(t, err)
}
