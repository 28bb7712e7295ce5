package scorer

import (
	"math"

	"github.com/sells-group/nss-cli/internal/config"
	"github.com/sells-group/nss-cli/internal/model"
)

// Region codes with rubric-specific rules.
const (
	codeRiyadh          = "SA-01"
	codeEastern         = "SA-04"
	codeAsir            = "SA-06"
	codeTabuk           = "SA-07"
	codeNorthernBorders = "SA-09"
	codeAlJouf          = "SA-13"
)

// innovationHubs score high on innovation under every scenario.
var innovationHubs = map[string]bool{
	codeRiyadh:  true,
	codeTabuk:   true,
	codeEastern: true,
}

// renewableRegions lead sustainability under the energy transition.
var renewableRegions = map[string]bool{
	codeTabuk:           true,
	codeNorthernBorders: true,
	codeAlJouf:          true,
}

// Scorer applies the risk and opportunity rubric.
type Scorer struct {
	cfg config.ScorerConfig
}

// New creates a Scorer with the given config.
func New(cfg config.ScorerConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Config returns the scorer's configuration.
func (s *Scorer) Config() config.ScorerConfig {
	return s.cfg
}

// Risk assesses a region under a scenario.
func (s *Scorer) Risk(r model.Region, sc model.ScenarioID) model.RiskAssessment {
	a := model.RiskAssessment{
		RegionCode:     r.Code,
		Region:         r.Name,
		Scenario:       sc,
		Climate:        climateRisk(sc),
		Economic:       economicRisk(r, sc),
		Social:         socialRisk(r, sc),
		Infrastructure: infrastructureRisk(r, sc),
	}

	mean := weightedMean(
		[]float64{a.Climate.RiskPoints(), a.Economic.RiskPoints(), a.Social.RiskPoints(), a.Infrastructure.RiskPoints()},
		[]float64{s.cfg.ClimateWeight, s.cfg.EconomicRiskWeight, s.cfg.SocialWeight, s.cfg.InfrastructureWeight},
	)
	a.Score = finalize(mean * s.cfg.RiskScale)
	a.Vulnerabilities = vulnerabilities(r, sc)
	a.MitigationPriorities = mitigations(r, sc)
	return a
}

// Opportunity assesses a region under a scenario.
func (s *Scorer) Opportunity(r model.Region, sc model.ScenarioID) model.OpportunityAssessment {
	a := model.OpportunityAssessment{
		RegionCode:     r.Code,
		Region:         r.Name,
		Scenario:       sc,
		Economic:       economicOpportunity(r, sc),
		Innovation:     innovation(r, sc),
		Sustainability: sustainability(r, sc),
		QualityOfLife:  qualityOfLife(sc),
	}

	mean := weightedMean(
		[]float64{a.Economic.OpportunityPoints(), a.Innovation.OpportunityPoints(), a.Sustainability.OpportunityPoints(), a.QualityOfLife.OpportunityPoints()},
		[]float64{s.cfg.EconomicOpportunityWeight, s.cfg.InnovationWeight, s.cfg.SustainabilityWeight, s.cfg.QualityOfLifeWeight},
	)
	a.Score = finalize(mean * s.cfg.OpportunityScale)
	a.KeyOpportunities = keyOpportunities(r, sc)
	a.Investments = investments(r, sc)
	return a
}

// AssessAll scores every region under every scenario, scenario-major.
func (s *Scorer) AssessAll(regions []model.Region, scenarios []model.ScenarioID) ([]model.RiskAssessment, []model.OpportunityAssessment) {
	risks := make([]model.RiskAssessment, 0, len(regions)*len(scenarios))
	opps := make([]model.OpportunityAssessment, 0, len(regions)*len(scenarios))
	for _, sc := range scenarios {
		for _, r := range regions {
			risks = append(risks, s.Risk(r, sc))
			opps = append(opps, s.Opportunity(r, sc))
		}
	}
	return risks, opps
}

func weightedMean(points, weights []float64) float64 {
	var sum, wsum float64
	for i := range points {
		sum += points[i] * weights[i]
		wsum += weights[i]
	}
	if wsum <= 0 {
		return 0
	}
	return sum / wsum
}

// finalize clamps to [0,10] and rounds to 2 decimal places.
func finalize(v float64) float64 {
	v = math.Max(0, math.Min(maxScore, v))
	return math.Round(v*100) / 100
}

func climateRisk(sc model.ScenarioID) model.Level {
	switch sc {
	case model.ScenarioClimateStress:
		return model.LevelCritical
	case model.ScenarioConservative:
		return model.LevelHigh
	case model.ScenarioEnergyTransition, model.ScenarioTechDisruption:
		return model.LevelLow
	default:
		return model.LevelMedium
	}
}

func economicRisk(r model.Region, sc model.ScenarioID) model.Level {
	if r.Diversification == model.DiversificationLow {
		switch sc {
		case model.ScenarioClimateStress, model.ScenarioEnergyTransition:
			return model.LevelCritical
		case model.ScenarioConservative:
			return model.LevelHigh
		}
		return model.LevelMedium
	}
	switch sc {
	case model.ScenarioVision2030, model.ScenarioAccelerated:
		return model.LevelLow
	}
	return model.LevelMedium
}

func socialRisk(r model.Region, sc model.ScenarioID) model.Level {
	switch {
	case sc == model.ScenarioTechDisruption && r.Diversification == model.DiversificationLow:
		return model.LevelHigh
	case sc == model.ScenarioClimateStress:
		return model.LevelHigh
	case sc == model.ScenarioConservative:
		return model.LevelMedium
	default:
		return model.LevelLow
	}
}

func infrastructureRisk(r model.Region, sc model.ScenarioID) model.Level {
	climate := sc == model.ScenarioClimateStress
	switch {
	case r.WaterStress.Index() >= model.WaterStressCritical.Index():
		if climate {
			return model.LevelCritical
		}
		return model.LevelHigh
	case r.WaterStress == model.WaterStressHigh:
		if climate {
			return model.LevelHigh
		}
		return model.LevelMedium
	default:
		if climate {
			return model.LevelMedium
		}
		return model.LevelLow
	}
}

func vulnerabilities(r model.Region, sc model.ScenarioID) []string {
	var out []string
	if r.WaterStress.Stressed() {
		out = append(out, "Water scarcity")
	}
	if r.Diversification == model.DiversificationLow {
		out = append(out, "Economic concentration")
	}
	if r.Code == codeEastern && sc == model.ScenarioEnergyTransition {
		out = append(out, "Oil sector dependency")
	}
	if sc == model.ScenarioClimateStress {
		out = append(out, "Extreme heat exposure")
	}
	return out
}

func mitigations(r model.Region, sc model.ScenarioID) []string {
	var out []string
	if r.WaterStress.Stressed() {
		out = append(out, "Water security investment")
	}
	if sc == model.ScenarioClimateStress {
		out = append(out, "Heat adaptation infrastructure", "Cooling system expansion")
	}
	if r.Diversification == model.DiversificationLow &&
		(sc == model.ScenarioEnergyTransition || sc == model.ScenarioClimateStress) {
		out = append(out, "Economic diversification acceleration")
	}
	if sc == model.ScenarioTechDisruption {
		out = append(out, "Workforce reskilling programs")
	}
	if len(out) == 0 {
		out = append(out, "Maintain current development trajectory")
	}
	return out
}

func economicOpportunity(r model.Region, sc model.ScenarioID) model.Level {
	ambitious := sc == model.ScenarioVision2030 || sc == model.ScenarioAccelerated
	switch {
	case r.GrowthFactor > 1.3:
		return model.LevelHigh
	case r.GrowthFactor > 1.0:
		if ambitious {
			return model.LevelHigh
		}
		return model.LevelMedium
	default:
		if ambitious {
			return model.LevelMedium
		}
		return model.LevelLow
	}
}

func innovation(r model.Region, sc model.ScenarioID) model.Level {
	switch {
	case innovationHubs[r.Code]:
		return model.LevelHigh
	case r.Diversification == model.DiversificationHigh:
		if sc == model.ScenarioTechDisruption {
			return model.LevelHigh
		}
		return model.LevelMedium
	case sc == model.ScenarioConservative:
		return model.LevelLow
	default:
		return model.LevelMedium
	}
}

func sustainability(r model.Region, sc model.ScenarioID) model.Level {
	switch sc {
	case model.ScenarioEnergyTransition:
		if renewableRegions[r.Code] {
			return model.LevelHigh
		}
		return model.LevelMedium
	case model.ScenarioVision2030:
		return model.LevelMedium
	default:
		return model.LevelLow
	}
}

func qualityOfLife(sc model.ScenarioID) model.Level {
	switch sc {
	case model.ScenarioAccelerated, model.ScenarioVision2030, model.ScenarioTechDisruption:
		return model.LevelHigh
	case model.ScenarioClimateStress:
		return model.LevelLow
	default:
		return model.LevelMedium
	}
}

func keyOpportunities(r model.Region, sc model.ScenarioID) []string {
	var out []string
	switch r.Code {
	case codeTabuk:
		if sc == model.ScenarioVision2030 || sc == model.ScenarioAccelerated || sc == model.ScenarioTechDisruption {
			out = append(out, "NEOM development", "Tourism leadership", "Tech innovation hub")
		}
	case codeRiyadh:
		out = append(out, "Financial hub growth", "Entertainment capital", "Quality of life model")
	case codeEastern:
		if sc == model.ScenarioEnergyTransition {
			out = append(out, "Green hydrogen production")
		}
	case codeNorthernBorders, codeAlJouf:
		if sc == model.ScenarioEnergyTransition {
			out = append(out, "Solar energy hub", "Renewable exports")
		}
	case codeAsir:
		if sc != model.ScenarioClimateStress {
			out = append(out, "Eco-tourism development")
		}
	}
	if len(out) == 0 {
		out = append(out, "Regional specialization development")
	}
	return out
}

func investments(r model.Region, sc model.ScenarioID) []string {
	var out []string
	if r.WaterStress.Stressed() {
		out = append(out, "Desalination capacity expansion")
	}
	switch sc {
	case model.ScenarioTechDisruption:
		out = append(out, "Digital infrastructure", "Education and training facilities")
	case model.ScenarioEnergyTransition:
		out = append(out, "Renewable energy infrastructure", "Green hydrogen facilities")
	case model.ScenarioClimateStress:
		out = append(out, "Climate adaptation infrastructure", "Indoor agriculture facilities")
	default:
		out = append(out, "Diversified economic zones")
	}
	return out
}
