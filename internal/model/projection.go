package model

// DemographicProjection is the national population picture for one year.
type DemographicProjection struct {
	Year           int     `json:"year"`
	Population     float64 `json:"total_population"` // millions
	Saudi          float64 `json:"saudi_population"`
	Expat          float64 `json:"expat_population"`
	UrbanPct       float64 `json:"urban_population_pct"`
	RiyadhSharePct float64 `json:"riyadh_share_pct"`
	YouthSharePct  float64 `json:"youth_share_pct"`
}

// EconomicProjection is the national economy for one year.
type EconomicProjection struct {
	Year                   int     `json:"year"`
	GDP                    float64 `json:"gdp_billion_usd"`
	GDPPerCapita           float64 `json:"gdp_per_capita_usd"`
	OilSharePct            float64 `json:"oil_gdp_share_pct"`
	TourismSharePct        float64 `json:"tourism_gdp_share_pct"`
	TechSharePct           float64 `json:"tech_gdp_share_pct"`
	UnemploymentPct        float64 `json:"unemployment_rate_pct"`
	FemaleParticipationPct float64 `json:"female_labor_participation_pct"`
}

// SpatialProjection is the physical development state for one year.
type SpatialProjection struct {
	Year             int     `json:"year"`
	UrbanizedAreaKm2 float64 `json:"urbanized_area_sqkm"`
	NewCities        int     `json:"new_cities_completed"`
	ProtectedAreaPct float64 `json:"protected_area_pct"`
	RenewableGW      float64 `json:"renewable_capacity_gw"`
	RailKm           float64 `json:"rail_network_km"`
	DesalinationMCM  float64 `json:"desalination_capacity_mcm"`
}

// NationalProjection bundles the three national views of a scenario-year.
type NationalProjection struct {
	Scenario    ScenarioID            `json:"scenario"`
	Year        int                   `json:"year"`
	Demographic DemographicProjection `json:"demographic"`
	Economic    EconomicProjection    `json:"economic"`
	Spatial     SpatialProjection     `json:"spatial"`
}

// RegionalProjection is one row of the region × scenario × year table.
type RegionalProjection struct {
	RegionCode         string             `json:"region_code" csv:"region_code"`
	Region             string             `json:"region" csv:"region"`
	Scenario           ScenarioID         `json:"scenario" csv:"scenario"`
	Year               int                `json:"year" csv:"year"`
	Population         float64            `json:"population_millions" csv:"population_millions"`
	GDPSharePct        float64            `json:"gdp_share_pct" csv:"gdp_share_pct"`
	EmploymentGrowth   float64            `json:"employment_growth_pct" csv:"employment_growth_pct"`
	UrbanizationPct    float64            `json:"urbanization_pct" csv:"urbanization_pct"`
	WaterStress        WaterStress        `json:"water_stress" csv:"water_stress"`
	InvestmentPriority InvestmentPriority `json:"investment_priority" csv:"investment_priority"`
}
