// Package scorer implements the region/scenario risk and opportunity rubric.
package scorer

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/nss-cli/internal/config"
)

// Point ceilings of the two lookup scales.
const (
	maxRiskPoints        = 4.0
	maxOpportunityPoints = 3.0
	maxScore             = 10.0
)

// DefaultScorerConfig returns a config.ScorerConfig with the standard rubric.
// Each rubric's weights sum to 100.
func DefaultScorerConfig() config.ScorerConfig {
	return config.ScorerConfig{
		// Risk weights (sum = 100).
		ClimateWeight:        25,
		EconomicRiskWeight:   25,
		SocialWeight:         25,
		InfrastructureWeight: 25,

		// Opportunity weights (sum = 100).
		EconomicOpportunityWeight: 25,
		InnovationWeight:          25,
		SustainabilityWeight:      25,
		QualityOfLifeWeight:       25,

		// Scales map mean points onto 0-10.
		RiskScale:        2.5,
		OpportunityScale: 3.33,

		HighlightThreshold: 7.0,
		TopN:               10,
	}
}

// RiskWeightSum returns the sum of the risk dimension weights.
func RiskWeightSum(c config.ScorerConfig) float64 {
	return c.ClimateWeight + c.EconomicRiskWeight + c.SocialWeight + c.InfrastructureWeight
}

// OpportunityWeightSum returns the sum of the opportunity dimension weights.
func OpportunityWeightSum(c config.ScorerConfig) float64 {
	return c.EconomicOpportunityWeight + c.InnovationWeight + c.SustainabilityWeight + c.QualityOfLifeWeight
}

// ValidateConfig checks that a ScorerConfig is internally consistent.
func ValidateConfig(c config.ScorerConfig) error {
	var errs []string

	// All weights must be non-negative.
	weights := map[string]float64{
		"climate_weight":              c.ClimateWeight,
		"economic_risk_weight":        c.EconomicRiskWeight,
		"social_weight":               c.SocialWeight,
		"infrastructure_weight":       c.InfrastructureWeight,
		"economic_opportunity_weight": c.EconomicOpportunityWeight,
		"innovation_weight":           c.InnovationWeight,
		"sustainability_weight":       c.SustainabilityWeight,
		"quality_of_life_weight":      c.QualityOfLifeWeight,
	}
	for name, w := range weights {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}

	for name, sum := range map[string]float64{
		"risk":        RiskWeightSum(c),
		"opportunity": OpportunityWeightSum(c),
	} {
		if sum <= 0 {
			errs = append(errs, fmt.Sprintf("%s weight sum must be > 0", name))
		} else if math.Abs(sum-100) > 1 {
			errs = append(errs, fmt.Sprintf("%s weights should sum to 100, got %.1f", name, sum))
		}
	}

	// Scales must keep the top of each lookup table inside [0,10].
	if c.RiskScale <= 0 {
		errs = append(errs, "risk_scale must be > 0")
	} else if c.RiskScale*maxRiskPoints > maxScore+1e-9 {
		errs = append(errs, fmt.Sprintf("risk_scale %.2f exceeds 10 at %.0f points", c.RiskScale, maxRiskPoints))
	}
	if c.OpportunityScale <= 0 {
		errs = append(errs, "opportunity_scale must be > 0")
	} else if c.OpportunityScale*maxOpportunityPoints > maxScore+1e-9 {
		errs = append(errs, fmt.Sprintf("opportunity_scale %.2f exceeds 10 at %.0f points", c.OpportunityScale, maxOpportunityPoints))
	}

	if c.HighlightThreshold < 0 || c.HighlightThreshold > maxScore {
		errs = append(errs, "highlight_threshold must be between 0 and 10")
	}
	if c.TopN < 0 {
		errs = append(errs, "top_n must be >= 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
