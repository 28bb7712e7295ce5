package registry

import "github.com/sells-group/nss-cli/internal/model"

// Base-year anchors for the national projections.
const (
	BaseYear       = 2024
	BasePopulation = 36.4   // millions
	BaseGDP        = 1108.0 // billion USD
)

// MilestoneYears are the years every scenario path is evaluated at.
var MilestoneYears = []int{2025, 2030, 2040, 2050}

// DefaultScenarios returns the four core scenarios followed by the three
// stress tests.
func DefaultScenarios() []model.Scenario {
	return []model.Scenario{
		baseline(),
		vision2030(),
		accelerated(),
		conservative(),
		climateStress(),
		techDisruption(),
		energyTransition(),
	}
}

func baseline() model.Scenario {
	return model.Scenario{
		ID:          model.ScenarioBaseline,
		Name:        "Baseline (Current Trends)",
		Category:    model.CategoryCore,
		Description: "Continuation of current development trends without major policy shifts.",
		Probability: 0.30,
		Assumptions: []string{
			"Oil prices remain moderate ($70-80/barrel)",
			"Vision 2030 targets partially achieved",
			"Regional stability maintained",
			"Gradual economic diversification",
			"Climate policies implemented slowly",
		},
		Risks: []string{
			"Insufficient diversification",
			"Youth unemployment persistence",
			"Water stress intensification",
			"Climate change impacts",
		},
		Opportunities: []string{
			"Incremental progress on transformation",
			"Lower financial risk",
			"Social stability",
		},
		Demographic: model.DemographicDrivers{
			PopulationGrowth: model.Growth{Rate: 0.018},
			SaudiShare:       0.66,
			UrbanPct:         model.Bounded(86, 0.3, 92),
			RiyadhSharePct:   model.Bounded(25, 0.15, 32),
			YouthSharePct:    model.Bounded(63, -0.4, 45),
		},
		Economic: model.EconomicDrivers{
			GDPGrowth:              model.Growth{Rate: 0.03},
			OilSharePct:            model.Bounded(38, -0.8, 20),
			TourismSharePct:        model.Bounded(5, 0.5, 15),
			TechSharePct:           model.Bounded(4, 0.4, 12),
			UnemploymentPct:        model.Bounded(11, -0.2, 6),
			FemaleParticipationPct: model.Bounded(33, 0.8, 45),
		},
		Spatial:    spatial(150, model.Step{Base: 1, Every: 5, Cap: 3}, model.Linear(4, 0.1), 1.5, 80, 100),
		Adjustment: model.Adjustment{Growth: 1.0, Water: 1.0, Diversification: 1.0},
	}
}

func vision2030() model.Scenario {
	return model.Scenario{
		ID:          model.ScenarioVision2030,
		Name:        "Vision 2030 Achievement",
		Category:    model.CategoryCore,
		Description: "Full achievement of Vision 2030 targets and continued progress to 2050.",
		Probability: 0.35,
		Assumptions: []string{
			"Strong oil prices support transition ($80-100/barrel)",
			"Mega-projects delivered on schedule",
			"Tourism reaches 100M visitors by 2030",
			"Non-oil GDP dominates by 2040",
			"Significant social reforms continue",
		},
		Risks: []string{
			"Mega-project cost overruns",
			"Global economic downturn",
			"Execution capacity constraints",
			"Labor market imbalances",
		},
		Opportunities: []string{
			"Global tourism hub",
			"Regional technology leader",
			"Clean energy pioneer",
			"Entertainment capital",
		},
		Demographic: model.DemographicDrivers{
			PopulationGrowth: model.Growth{Rate: 0.022},
			SaudiShare:       0.62,
			UrbanPct:         model.Bounded(86, 0.4, 95),
			RiyadhSharePct:   model.Bounded(25, 0.2, 35),
			YouthSharePct:    model.Bounded(63, -0.35, 48),
		},
		Economic: model.EconomicDrivers{
			GDPGrowth:              model.Growth{Rate: 0.05},
			OilSharePct:            model.Bounded(38, -1.5, 12),
			TourismSharePct:        model.Bounded(5, 1.0, 20),
			TechSharePct:           model.Bounded(4, 0.8, 18),
			UnemploymentPct:        model.Bounded(11, -0.5, 4),
			FemaleParticipationPct: model.Bounded(33, 1.5, 55),
		},
		Spatial:    spatial(250, model.Step{Base: 2, Every: 3, Cap: 8}, model.Linear(4, 0.25), 4, 150, 200),
		Adjustment: model.Adjustment{Growth: 1.3, Water: 0.8, Diversification: 1.5},
	}
}

func accelerated() model.Scenario {
	return model.Scenario{
		ID:          model.ScenarioAccelerated,
		Name:        "Accelerated Transformation",
		Category:    model.CategoryCore,
		Description: "Beyond Vision 2030 - rapid diversification and global leadership.",
		Probability: 0.15,
		Assumptions: []string{
			"Green hydrogen becomes major export",
			"NEOM becomes global innovation hub",
			"KSA leads G20 in growth rates",
			"Full energy transition by 2045",
			"Regional economic integration (GCC+)",
		},
		Risks: []string{
			"Social disruption from rapid change",
			"Infrastructure capacity limits",
			"Environmental carrying capacity",
			"Geopolitical instability",
		},
		Opportunities: []string{
			"Global economic power",
			"Technology leadership",
			"Sustainable development model",
			"Polycentric urban network",
		},
		Demographic: model.DemographicDrivers{
			PopulationGrowth: model.Growth{Rate: 0.025},
			SaudiShare:       0.58,
			UrbanPct:         model.Bounded(86, 0.5, 98),
			RiyadhSharePct:   model.Bounded(25, 0.1, 30),
			YouthSharePct:    model.Bounded(63, -0.3, 50),
		},
		Economic: model.EconomicDrivers{
			GDPGrowth:              model.Growth{Rate: 0.07},
			OilSharePct:            model.Bounded(38, -2.0, 8),
			TourismSharePct:        model.Bounded(5, 1.2, 25),
			TechSharePct:           model.Bounded(4, 1.2, 25),
			UnemploymentPct:        model.Bounded(11, -0.6, 3),
			FemaleParticipationPct: model.Bounded(33, 2.0, 65),
		},
		Spatial:    spatial(350, model.Step{Base: 3, Every: 2, Cap: 15}, model.Linear(4, 0.4), 6, 200, 300),
		Adjustment: model.Adjustment{Growth: 1.6, Water: 0.7, Diversification: 2.0},
	}
}

func conservative() model.Scenario {
	return model.Scenario{
		ID:          model.ScenarioConservative,
		Name:        "Conservative (Slower Transition)",
		Category:    model.CategoryCore,
		Description: "Slower transformation due to external or internal constraints.",
		Probability: 0.20,
		Assumptions: []string{
			"Oil prices decline ($50-60/barrel)",
			"Global recession impacts investment",
			"Mega-projects scaled back",
			"Gradual social reforms",
			"Regional tensions increase",
		},
		Risks: []string{
			"Economic stagnation",
			"Youth frustration",
			"Continued oil dependence",
			"Brain drain",
		},
		Opportunities: []string{
			"Lower risk exposure",
			"More sustainable pace",
			"Consolidation of gains",
		},
		Demographic: model.DemographicDrivers{
			PopulationGrowth: model.Growth{Rate: 0.012},
			SaudiShare:       0.70,
			UrbanPct:         model.Bounded(86, 0.2, 90),
			RiyadhSharePct:   model.Bounded(25, 0.25, 38),
			YouthSharePct:    model.Bounded(63, -0.5, 42),
		},
		Economic: model.EconomicDrivers{
			GDPGrowth:              model.Growth{Rate: 0.02},
			OilSharePct:            model.Bounded(38, -0.5, 28),
			TourismSharePct:        model.Bounded(5, 0.3, 10),
			TechSharePct:           model.Bounded(4, 0.2, 8),
			UnemploymentPct:        model.Bounded(11, -0.1, 8),
			FemaleParticipationPct: model.Bounded(33, 0.5, 40),
		},
		Spatial:    spatial(100, model.Step{Base: 1, Every: 8, Cap: 2}, model.Linear(4, 0.05), 0.8, 50, 80),
		Adjustment: model.Adjustment{Growth: 0.7, Water: 1.2, Diversification: 0.5},
	}
}

func climateStress() model.Scenario {
	return model.Scenario{
		ID:       model.ScenarioClimateStress,
		Name:     "Climate Stress",
		Category: model.CategoryStress,
		Description: "Severe climate change impacts scenario with +3°C warming by 2050, " +
			"extreme water stress, reduced agricultural viability, and increased cooling costs. " +
			"Requires massive adaptation investment and potential population redistribution.",
		Probability: 0.15,
		Assumptions: []string{
			"Global emissions follow RCP 8.5 pathway",
			"+3°C temperature increase by 2050",
			"Extreme heat events double in frequency",
			"Water availability decreases 30%",
			"Agricultural yields drop 40-60%",
			"Cooling costs increase 80%",
			"International tourism declines significantly",
		},
		Risks: []string{
			"Critical water shortages",
			"Food security crisis",
			"Heat-related health impacts",
			"Infrastructure damage from extreme events",
			"Economic disruption from adaptation costs",
			"Climate migration pressures",
		},
		Opportunities: []string{
			"Leadership in climate adaptation technology",
			"Desalination technology exports",
			"Indoor/vertical farming innovation",
			"Extreme heat construction expertise",
		},
		Demographic: model.DemographicDrivers{
			PopulationGrowth: model.Growth{Rate: 0.010},
			SaudiShare:       0.72,
			UrbanPct:         model.Bounded(86, 0.5, 95),
			RiyadhSharePct:   model.Bounded(25, 0.4, 42),
			YouthSharePct:    model.Bounded(63, -0.5, 40),
		},
		Economic: model.EconomicDrivers{
			GDPGrowth:              model.Growth{Rate: 0.015},
			OilSharePct:            model.Bounded(38, -0.3, 30),
			TourismSharePct:        model.Bounded(5, 0.2, 8),
			TechSharePct:           model.Bounded(4, 0.3, 10),
			UnemploymentPct:        model.Bounded(11, 0.2, 15),
			FemaleParticipationPct: model.Bounded(33, 0.4, 42),
		},
		Spatial:    spatial(200, model.Step{Base: 1, Every: 6, Cap: 3}, model.Bounded(4, -0.05, 2), 3, 60, 350),
		Adjustment: model.Adjustment{Growth: 0.5, Water: 2.0, Diversification: 0.8},
	}
}

func techDisruption() model.Scenario {
	return model.Scenario{
		ID:       model.ScenarioTechDisruption,
		Name:     "Technology Disruption",
		Category: model.CategoryStress,
		Description: "Rapid technological transformation driven by AI, automation, and " +
			"digitalization. Major disruption to labor markets, accelerated economic growth " +
			"in tech sectors, and fundamental changes to urban form and mobility.",
		Probability: 0.20,
		Assumptions: []string{
			"AI reaches transformative capability by 2030",
			"40% of jobs automated by 2040",
			"Autonomous vehicles dominate by 2035",
			"NEOM becomes global tech hub",
			"Digital economy reaches 35% of GDP",
			"Universal digital skills training implemented",
			"Regulatory framework enables innovation",
		},
		Risks: []string{
			"Mass technological unemployment",
			"Skills gap crisis",
			"Social inequality from automation",
			"Cybersecurity threats",
			"Digital divide between regions",
		},
		Opportunities: []string{
			"Global AI and tech leadership",
			"Productivity revolution",
			"New industry creation",
			"Quality of life improvements",
			"Environmental efficiency gains",
		},
		Demographic: model.DemographicDrivers{
			PopulationGrowth: model.Growth{Rate: 0.020},
			SaudiShare:       0.60,
			UrbanPct:         model.Bounded(86, 0.6, 98),
			RiyadhSharePct:   model.Bounded(25, 0.1, 28),
			YouthSharePct:    model.Bounded(63, -0.35, 48),
		},
		Economic: model.EconomicDrivers{
			GDPGrowth:       model.Growth{Rate: 0.06},
			OilSharePct:     model.Bounded(38, -1.8, 10),
			TourismSharePct: model.Bounded(5, 0.8, 18),
			TechSharePct:    model.Bounded(4, 1.5, 35),
			// Automation shock, then recovery toward a 5% floor.
			UnemploymentPct:        model.Linear(11, 0.3).Then(10, model.Bounded(11, -0.3, 5)),
			FemaleParticipationPct: model.Bounded(33, 1.8, 60),
		},
		Spatial:    spatial(300, model.Step{Base: 2, Every: 3, Cap: 10}, model.Linear(4, 0.3), 5, 180, 250),
		Adjustment: model.Adjustment{Growth: 1.4, Water: 0.9, Diversification: 1.8},
	}
}

func energyTransition() model.Scenario {
	return model.Scenario{
		ID:       model.ScenarioEnergyTransition,
		Name:     "Energy Transition",
		Category: model.CategoryStress,
		Description: "Accelerated global energy transition scenario with oil demand " +
			"peaking by 2028 and declining 50% by 2040. KSA pivots to become green hydrogen " +
			"and renewable energy superpower, requiring massive economic restructuring.",
		Probability: 0.25,
		Assumptions: []string{
			"Global oil demand peaks 2028, declines 4%/year after",
			"Oil prices drop to $30-40/barrel by 2040",
			"Green hydrogen becomes major export (10% of GDP by 2040)",
			"100GW renewable capacity by 2035",
			"Net zero domestic emissions by 2050",
			"Massive retraining of oil sector workforce",
			"PIF pivots fully to clean energy investments",
		},
		Risks: []string{
			"Stranded oil assets",
			"Fiscal crisis during transition",
			"Social unrest from job losses",
			"Failed hydrogen market development",
			"Investment shortfall for transition",
		},
		Opportunities: []string{
			"Green hydrogen superpower",
			"Solar manufacturing hub",
			"Circular carbon economy leader",
			"Sustainable tourism destination",
			"Clean energy technology exports",
		},
		Demographic: model.DemographicDrivers{
			PopulationGrowth: model.Growth{Rate: 0.018},
			SaudiShare:       0.64,
			UrbanPct:         model.Bounded(86, 0.4, 94),
			RiyadhSharePct:   model.Bounded(25, 0.15, 32),
			YouthSharePct:    model.Bounded(63, -0.4, 46),
		},
		Economic: model.EconomicDrivers{
			// Slow decade of restructuring, then recovery.
			GDPGrowth:              model.Growth{Rate: 0.02, Switch: &model.GrowthSwitch{AfterYears: 10, Rate: 0.05}},
			OilSharePct:            model.Bounded(38, -2.5, 5),
			TourismSharePct:        model.Bounded(5, 0.6, 15),
			TechSharePct:           model.Bounded(4, 1.0, 25),
			UnemploymentPct:        model.Linear(11, 0.3).Then(12, model.Bounded(11, -0.2, 5)),
			FemaleParticipationPct: model.Bounded(33, 1.2, 52),
		},
		Spatial:    spatial(180, model.Step{Base: 2, Every: 4, Cap: 6}, model.Linear(4, 0.5), 8, 200, 300),
		Adjustment: model.Adjustment{Growth: 0.9, Water: 0.85, Diversification: 2.5},
	}
}

// spatial builds the spatial drivers, which share their base-year anchors
// across scenarios.
func spatial(areaSlope float64, cities model.Step, protected model.Trend, renewableSlope, railSlope, desalSlope float64) model.SpatialDrivers {
	return model.SpatialDrivers{
		UrbanizedAreaKm2: model.Linear(5000, areaSlope),
		NewCities:        cities,
		ProtectedAreaPct: protected,
		RenewableGW:      model.Linear(5, renewableSlope),
		RailKm:           model.Linear(1200, railSlope),
		DesalinationMCM:  model.Linear(2500, desalSlope),
	}
}
