package classify

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the full, versioned filter configuration: weighted term
// dictionaries, exclusion categories, location lists and numeric
// weights/thresholds. It is immutable once compiled into an Engine; any
// field change produces a different Hash, so downstream consumers can
// detect that cached classifications are stale.
type Config struct {
	TargetLanguage string `yaml:"target_language"`

	RoleWeight             float64 `yaml:"role_weight"`
	RecruitmentWeight      float64 `yaml:"recruitment_weight"`
	MinScore               float64 `yaml:"min_score"`
	IntentThreshold        float64 `yaml:"intent_threshold"`
	GenericPenalty         float64 `yaml:"generic_penalty"`
	NegativeContextPenalty float64 `yaml:"negative_context_penalty"`
	BorderlineBand         float64 `yaml:"borderline_band"`
	InclusionBonus         float64 `yaml:"inclusion_bonus"`
	RoleSaturation         int     `yaml:"role_saturation"`
	RecruitmentSaturation  int     `yaml:"recruitment_saturation"`

	ExcludeAgency bool `yaml:"exclude_agency"`
	ExcludeStage  bool `yaml:"exclude_stage"`

	RoleTerms            []string `yaml:"role_terms"`
	GenericRoleTerms     []string `yaml:"generic_role_terms"`
	RecruitmentTerms     []string `yaml:"recruitment_terms"`
	NegativeContextTerms []string `yaml:"negative_context_terms"`
	AgencyTerms          []string `yaml:"agency_terms"`
	StageTerms           []string `yaml:"stage_terms"`
	PositiveLocations    []string `yaml:"positive_locations"`
	NegativeLocations    []string `yaml:"negative_locations"`

	// Caller-supplied overrides: inclusion terms boost evidence for
	// known-good sources, exclusion terms reject outright.
	IncludeTerms []string `yaml:"include_terms"`
	ExcludeTerms []string `yaml:"exclude_terms"`
}

// DefaultConfig returns the tuned French legal-recruitment configuration.
func DefaultConfig() Config {
	return Config{
		TargetLanguage:         "fr",
		RoleWeight:             0.6,
		RecruitmentWeight:      0.4,
		MinScore:               0.3,
		IntentThreshold:        0.45,
		GenericPenalty:         0.55,
		NegativeContextPenalty: 0.25,
		BorderlineBand:         0.05,
		InclusionBonus:         0.1,
		RoleSaturation:         6,
		RecruitmentSaturation:  5,
		ExcludeAgency:          true,
		ExcludeStage:           true,
		RoleTerms:              defaultRoleTerms,
		GenericRoleTerms:       defaultGenericRoleTerms,
		RecruitmentTerms:       defaultRecruitmentTerms,
		NegativeContextTerms:   defaultNegativeContextTerms,
		AgencyTerms:            defaultAgencyTerms,
		StageTerms:             defaultStageTerms,
		PositiveLocations:      defaultPositiveLocations,
		NegativeLocations:      defaultNegativeLocations,
	}
}

// LoadConfigFile overlays a YAML file onto DefaultConfig. Keys absent from
// the file keep their defaults.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read filter config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse filter config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects malformed numeric configuration before it reaches the
// classifier, which assumes well-formed values.
func (c Config) Validate() error {
	if c.TargetLanguage == "" {
		return fmt.Errorf("target_language is required")
	}
	if c.RoleWeight < 0 || c.RecruitmentWeight < 0 || c.RoleWeight+c.RecruitmentWeight == 0 {
		return fmt.Errorf("role_weight/recruitment_weight must be non-negative and not both zero")
	}
	for name, v := range map[string]float64{
		"min_score":                c.MinScore,
		"intent_threshold":         c.IntentThreshold,
		"generic_penalty":          c.GenericPenalty,
		"negative_context_penalty": c.NegativeContextPenalty,
		"borderline_band":          c.BorderlineBand,
		"inclusion_bonus":          c.InclusionBonus,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0,1], got %v", name, v)
		}
	}
	if c.RoleSaturation < 2 || c.RecruitmentSaturation < 2 {
		return fmt.Errorf("saturation constants must be >= 2")
	}
	if len(c.RoleTerms) == 0 || len(c.RecruitmentTerms) == 0 {
		return fmt.Errorf("role_terms and recruitment_terms must not be empty")
	}
	return nil
}

// Hash returns a stable digest over every field. Two configs with identical
// fields hash identically; changing any weight, threshold or term list
// changes the result.
func (c Config) Hash() string {
	h := sha256.New()
	fmt.Fprintf(h, "lang=%s|w=%v,%v|thr=%v,%v|pen=%v,%v|band=%v|bonus=%v|sat=%d,%d|excl=%t,%t|",
		c.TargetLanguage,
		c.RoleWeight, c.RecruitmentWeight,
		c.MinScore, c.IntentThreshold,
		c.GenericPenalty, c.NegativeContextPenalty,
		c.BorderlineBand, c.InclusionBonus,
		c.RoleSaturation, c.RecruitmentSaturation,
		c.ExcludeAgency, c.ExcludeStage,
	)
	for _, list := range [][]string{
		c.RoleTerms, c.GenericRoleTerms, c.RecruitmentTerms,
		c.NegativeContextTerms, c.AgencyTerms, c.StageTerms,
		c.PositiveLocations, c.NegativeLocations,
		sortedCopy(c.IncludeTerms), sortedCopy(c.ExcludeTerms),
	} {
		io.WriteString(h, strings.Join(list, "\x1f"))
		io.WriteString(h, "\x1e")
	}
	return hex.EncodeToString(h.Sum(nil))
}

// sortedCopy canonicalizes caller-supplied sets so insertion order does not
// leak into the hash.
func sortedCopy(terms []string) []string {
	out := append([]string(nil), terms...)
	sort.Strings(out)
	return out
}
