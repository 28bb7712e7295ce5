package model

// ScenarioID identifies a named scenario.
type ScenarioID string

const (
	ScenarioBaseline         ScenarioID = "baseline"
	ScenarioVision2030       ScenarioID = "vision2030"
	ScenarioAccelerated      ScenarioID = "accelerated"
	ScenarioConservative     ScenarioID = "conservative"
	ScenarioClimateStress    ScenarioID = "climate_stress"
	ScenarioTechDisruption   ScenarioID = "tech_disruption"
	ScenarioEnergyTransition ScenarioID = "energy_transition"
)

// Category separates the core scenario set from stress tests.
type Category string

const (
	CategoryCore   Category = "core"
	CategoryStress Category = "stress"
)

// Scenario is a named set of growth and decline drivers with a probability weight.
type Scenario struct {
	ID            ScenarioID `json:"id" yaml:"id"`
	Name          string     `json:"name" yaml:"name"`
	Category      Category   `json:"category" yaml:"category"`
	Description   string     `json:"description" yaml:"description"`
	Probability   float64    `json:"probability" yaml:"probability"`
	Assumptions   []string   `json:"key_assumptions,omitempty" yaml:"key_assumptions"`
	Risks         []string   `json:"key_risks,omitempty" yaml:"key_risks"`
	Opportunities []string   `json:"key_opportunities,omitempty" yaml:"key_opportunities"`

	Demographic DemographicDrivers `json:"demographic" yaml:"demographic"`
	Economic    EconomicDrivers    `json:"economic" yaml:"economic"`
	Spatial     SpatialDrivers     `json:"spatial" yaml:"spatial"`
	Adjustment  Adjustment         `json:"regional_adjustment" yaml:"regional_adjustment"`
}

// DemographicDrivers describe national population dynamics.
type DemographicDrivers struct {
	PopulationGrowth Growth  `json:"population_growth" yaml:"population_growth"`
	SaudiShare       float64 `json:"saudi_share" yaml:"saudi_share"` // fraction of total population
	UrbanPct         Trend   `json:"urban_pct" yaml:"urban_pct"`
	RiyadhSharePct   Trend   `json:"riyadh_share_pct" yaml:"riyadh_share_pct"`
	YouthSharePct    Trend   `json:"youth_share_pct" yaml:"youth_share_pct"`
}

// EconomicDrivers describe national output and labour market dynamics.
type EconomicDrivers struct {
	GDPGrowth              Growth `json:"gdp_growth" yaml:"gdp_growth"`
	OilSharePct            Trend  `json:"oil_share_pct" yaml:"oil_share_pct"`
	TourismSharePct        Trend  `json:"tourism_share_pct" yaml:"tourism_share_pct"`
	TechSharePct           Trend  `json:"tech_share_pct" yaml:"tech_share_pct"`
	UnemploymentPct        Trend  `json:"unemployment_pct" yaml:"unemployment_pct"`
	FemaleParticipationPct Trend  `json:"female_participation_pct" yaml:"female_participation_pct"`
}

// SpatialDrivers describe physical development.
type SpatialDrivers struct {
	UrbanizedAreaKm2 Trend `json:"urbanized_area_km2" yaml:"urbanized_area_km2"`
	NewCities        Step  `json:"new_cities" yaml:"new_cities"`
	ProtectedAreaPct Trend `json:"protected_area_pct" yaml:"protected_area_pct"`
	RenewableGW      Trend `json:"renewable_gw" yaml:"renewable_gw"`
	RailKm           Trend `json:"rail_km" yaml:"rail_km"`
	DesalinationMCM  Trend `json:"desalination_mcm" yaml:"desalination_mcm"`
}

// Adjustment scales regional projections under a scenario.
type Adjustment struct {
	Growth          float64 `json:"growth" yaml:"growth"`
	Water           float64 `json:"water" yaml:"water"`
	Diversification float64 `json:"diversification" yaml:"diversification"`
}

// IsStress reports whether the scenario belongs to the stress-test set.
func (s Scenario) IsStress() bool {
	return s.Category == CategoryStress
}
