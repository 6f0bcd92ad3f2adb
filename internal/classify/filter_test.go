package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexwatch/collector-service/internal/classify"
)

func newFilter(t *testing.T, cfg classify.Config) *classify.Filter {
	t.Helper()
	f, err := classify.NewFilter(cfg)
	require.NoError(t, err)
	return f
}

// ── category precedence ────────────────────────────────────────────────────

func TestFilter_AgencyBeatsStrongRecruitmentSignal(t *testing.T) {
	f := newFilter(t, classify.DefaultConfig())
	res := f.ClassifyPostLanguage(
		"Notre client, cabinet d'avocats parisien, recrute un juriste fiscal en CDI, poste à pourvoir immédiatement",
		"", "", "fr")

	assert.Equal(t, classify.IntentAgency, res.Intent)
	assert.False(t, res.Accepted())
	assert.Contains(t, res.MatchedTerms, "notre client")
}

func TestFilter_AgencyLanguageInCompanyField(t *testing.T) {
	f := newFilter(t, classify.DefaultConfig())
	res := f.ClassifyPostLanguage(
		"Nous recrutons un juriste fiscal en CDI à Paris",
		"", "Talent Hunt — cabinet de recrutement", "fr")

	assert.Equal(t, classify.IntentAgency, res.Intent)
}

func TestFilter_StageBeatsPositiveScoring(t *testing.T) {
	f := newFilter(t, classify.DefaultConfig())
	res := f.ClassifyPostLanguage(
		"Nous recrutons un stagiaire juriste fiscal pour 6 mois à Paris",
		"", "", "fr")

	assert.Equal(t, classify.IntentStage, res.Intent)
}

func TestFilter_CustomExclusionTerm(t *testing.T) {
	cfg := classify.DefaultConfig()
	cfg.ExcludeTerms = []string{"freelance"}
	f := newFilter(t, cfg)
	res := f.ClassifyPostLanguage(
		"Nous recrutons un juriste fiscal freelance à Paris", "", "", "fr")

	assert.NotEqual(t, classify.IntentRelevant, res.Intent)
	assert.Contains(t, res.MatchedTerms, "-freelance")
}

// ── scoring fallthrough ────────────────────────────────────────────────────

func TestFilter_AcceptsDirectEmployerPost(t *testing.T) {
	f := newFilter(t, classify.DefaultConfig())
	res := f.ClassifyPostLanguage(
		"Nous recrutons un Juriste fiscal pour rejoindre notre équipe à Paris (CDI)",
		"Marie Dupont", "Fidal", "fr")

	assert.Equal(t, classify.IntentRelevant, res.Intent)
	assert.True(t, res.Accepted())
	assert.True(t, res.LocationOK)
}

func TestFilter_NonRecruitmentWhenSignalsAbsent(t *testing.T) {
	f := newFilter(t, classify.DefaultConfig())
	res := f.ClassifyPostLanguage(
		"Très belle conférence hier soir, merci à tous les participants", "", "", "fr")

	assert.Equal(t, classify.IntentNonRecruitment, res.Intent)
}

func TestFilter_RoleWithoutHiringLanguageIsNonRecruitment(t *testing.T) {
	f := newFilter(t, classify.DefaultConfig())
	res := f.ClassifyPostLanguage(
		"Félicitations à notre directeur juridique pour sa nomination", "", "", "fr")

	assert.Equal(t, classify.IntentNonRecruitment, res.Intent)
}

func TestFilter_LowScore(t *testing.T) {
	cfg := classify.DefaultConfig()
	cfg.MinScore = 0.5
	cfg.IntentThreshold = 0.9
	f := newFilter(t, cfg)
	// Both signal kinds present but weak: one role term, one hiring phrase.
	res := f.ClassifyPostLanguage("Candidature ouverte pour un juriste", "", "", "fr")

	assert.Equal(t, classify.IntentLowScore, res.Intent)
}

// ── inclusion terms ────────────────────────────────────────────────────────

func TestFilter_InclusionTermBoostsAndLeavesAuditTrail(t *testing.T) {
	cfg := classify.DefaultConfig()
	cfg.IncludeTerms = []string{"Fidal"}
	f := newFilter(t, cfg)
	res := f.ClassifyPostLanguage(
		"Nous recrutons un juriste fiscal en CDI à Paris", "", "Fidal", "fr")

	assert.Equal(t, classify.IntentRelevant, res.Intent)
	assert.Contains(t, res.MatchedTerms, "+fidal")
}

func TestFilter_InclusionTermDoesNotOverrideAgency(t *testing.T) {
	cfg := classify.DefaultConfig()
	cfg.IncludeTerms = []string{"Fidal"}
	f := newFilter(t, cfg)
	res := f.ClassifyPostLanguage(
		"Pour notre client Fidal, nous recrutons un juriste fiscal en CDI à Paris",
		"", "", "fr")

	assert.Equal(t, classify.IntentAgency, res.Intent)
}

// ── config hash ────────────────────────────────────────────────────────────

func TestConfigHash_SensitiveToEveryField(t *testing.T) {
	base := classify.DefaultConfig()
	baseHash := base.Hash()

	mutations := []func(*classify.Config){
		func(c *classify.Config) { c.MinScore = 0.31 },
		func(c *classify.Config) { c.IntentThreshold = 0.46 },
		func(c *classify.Config) { c.RoleWeight = 0.61 },
		func(c *classify.Config) { c.RoleSaturation = 7 },
		func(c *classify.Config) { c.ExcludeAgency = false },
		func(c *classify.Config) { c.TargetLanguage = "en" },
		func(c *classify.Config) { c.RoleTerms = append([]string{"juriste minier"}, c.RoleTerms...) },
		func(c *classify.Config) { c.IncludeTerms = []string{"fidal"} },
	}
	for i, mutate := range mutations {
		cfg := classify.DefaultConfig()
		mutate(&cfg)
		assert.NotEqual(t, baseHash, cfg.Hash(), "mutation %d did not change the hash", i)
	}
}

func TestConfigHash_IdenticalFieldsIdenticalHash(t *testing.T) {
	a := classify.DefaultConfig()
	b := classify.DefaultConfig()
	assert.Equal(t, a.Hash(), b.Hash())

	// Caller-supplied sets hash order-independently.
	a.IncludeTerms = []string{"fidal", "kpmg"}
	b.IncludeTerms = []string{"kpmg", "fidal"}
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestFilter_ConfigHashExposed(t *testing.T) {
	cfg := classify.DefaultConfig()
	f := newFilter(t, cfg)
	assert.Equal(t, cfg.Hash(), f.ConfigHash())
}
