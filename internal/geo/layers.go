// Package geo builds the map layers for scenario visualization: population
// distribution, economic corridors, infrastructure and region features.
package geo

import (
	"github.com/sells-group/nss-cli/internal/model"
	"github.com/sells-group/nss-cli/internal/projection"
)

// MapScenarios are the scenarios that get a map layer set in the report.
var MapScenarios = []model.ScenarioID{
	model.ScenarioVision2030,
	model.ScenarioClimateStress,
	model.ScenarioEnergyTransition,
}

// MapYear is the horizon of the map layers.
const MapYear = 2050

// PopulationPoint is one region on the population distribution layer.
type PopulationPoint struct {
	RegionCode      string                  `json:"region_code"`
	Region          string                  `json:"region"`
	Population      float64                 `json:"population_millions"`
	SharePct        float64                 `json:"population_share_pct"`
	UrbanizationPct float64                 `json:"urbanization_rate"`
	Category        projection.SizeCategory `json:"category"`
}

// PopulationDistribution turns one scenario-year of regional rows into the
// population layer.
func PopulationDistribution(rows []model.RegionalProjection) []PopulationPoint {
	shares := projection.Distribution(rows)
	out := make([]PopulationPoint, len(rows))
	for i, r := range rows {
		out[i] = PopulationPoint{
			RegionCode:      r.RegionCode,
			Region:          r.Region,
			Population:      r.Population,
			SharePct:        shares[i].SharePct,
			UrbanizationPct: r.UrbanizationPct,
			Category:        shares[i].Size,
		}
	}
	return out
}

// Corridor groups regions that share connectivity and a dominant sector.
type Corridor struct {
	Name               string   `json:"corridor_name"`
	RegionCodes        []string `json:"region_codes"`
	Regions            []string `json:"regions"`
	DominantSector     string   `json:"dominant_sector"`
	Connectivity       string   `json:"connectivity"`
	GDPSharePct        float64  `json:"gdp_share_2050"`
	InvestmentPriority string   `json:"investment_priority"`
}

// corridorPriorityShare is the GDP share above which a corridor is high priority.
const corridorPriorityShare = 10.0

var corridorDefs = []Corridor{
	{Name: "Central Corridor", RegionCodes: []string{"SA-01", "SA-05", "SA-08"}, DominantSector: "Finance & Technology", Connectivity: "high"},
	{Name: "Red Sea Corridor", RegionCodes: []string{"SA-07", "SA-03", "SA-02", "SA-10"}, DominantSector: "Tourism & Logistics", Connectivity: "high"},
	{Name: "Gulf Industrial Corridor", RegionCodes: []string{"SA-04"}, DominantSector: "Industry & Energy", Connectivity: "high"},
	{Name: "Northern Development Corridor", RegionCodes: []string{"SA-09", "SA-13"}, DominantSector: "Mining & Renewables", Connectivity: "medium"},
	{Name: "Southern Tourism Corridor", RegionCodes: []string{"SA-06", "SA-12", "SA-11"}, DominantSector: "Tourism & Agriculture", Connectivity: "medium"},
}

// Corridors returns the corridor definitions without projected figures.
func Corridors() []Corridor {
	out := make([]Corridor, len(corridorDefs))
	for i, c := range corridorDefs {
		c.RegionCodes = append([]string(nil), c.RegionCodes...)
		out[i] = c
	}
	return out
}

// EconomicCorridors sums projected GDP share per corridor. Rows are expected
// to belong to a single scenario-year.
func EconomicCorridors(rows []model.RegionalProjection) []Corridor {
	byCode := make(map[string]model.RegionalProjection, len(rows))
	for _, r := range rows {
		byCode[r.RegionCode] = r
	}

	out := Corridors()
	for i := range out {
		c := &out[i]
		for _, code := range c.RegionCodes {
			r, ok := byCode[code]
			if !ok {
				continue
			}
			c.Regions = append(c.Regions, r.Region)
			c.GDPSharePct += r.GDPSharePct
		}
		c.InvestmentPriority = "medium"
		if c.GDPSharePct > corridorPriorityShare {
			c.InvestmentPriority = "high"
		}
	}
	return out
}

// RailNetwork is the projected national rail network.
type RailNetwork struct {
	TotalKm     int `json:"total_km"`
	HighSpeedKm int `json:"high_speed_km"`
	FreightKm   int `json:"freight_km"`
}

// Airports is the projected airport network.
type Airports struct {
	International int `json:"international"`
	Regional      int `json:"regional"`
	CapacityMPPA  int `json:"total_capacity_mppa"`
}

// Ports is the projected seaport network.
type Ports struct {
	MajorPorts   int `json:"major_ports"`
	CapacityMTEU int `json:"capacity_mteu"`
}

// Renewables is the projected renewable generation fleet.
type Renewables struct {
	SolarGW        int `json:"solar_gw"`
	WindGW         int `json:"wind_gw"`
	HydrogenPlants int `json:"hydrogen_plants"`
}

// WaterSupply is the projected water infrastructure.
type WaterSupply struct {
	DesalinationMCMDay int `json:"desalination_mcm_day"`
	RecyclingPct       int `json:"recycling_pct"`
}

// InfrastructureMap is the infrastructure layer for one scenario.
type InfrastructureMap struct {
	Scenario  model.ScenarioID `json:"scenario"`
	Rail      RailNetwork      `json:"rail"`
	Airports  Airports         `json:"airports"`
	Ports     Ports            `json:"ports"`
	Renewable Renewables       `json:"renewable_energy"`
	Water     WaterSupply      `json:"water"`
}

var railNetworks = map[model.ScenarioID]RailNetwork{
	model.ScenarioBaseline:         {3500, 800, 2700},
	model.ScenarioVision2030:       {5500, 1500, 4000},
	model.ScenarioAccelerated:      {8000, 2500, 5500},
	model.ScenarioConservative:     {2500, 500, 2000},
	model.ScenarioClimateStress:    {3000, 600, 2400},
	model.ScenarioTechDisruption:   {6000, 2000, 4000},
	model.ScenarioEnergyTransition: {5000, 1200, 3800},
}

// Infrastructure returns the 2050 infrastructure layer for a scenario.
// Unknown scenarios get the baseline rail network.
func Infrastructure(scenario model.ScenarioID) InfrastructureMap {
	rail, ok := railNetworks[scenario]
	if !ok {
		rail = railNetworks[model.ScenarioBaseline]
	}
	ambitious := scenario == model.ScenarioAccelerated || scenario == model.ScenarioVision2030

	m := InfrastructureMap{
		Scenario:  scenario,
		Rail:      rail,
		Airports:  Airports{International: 4, Regional: 12, CapacityMPPA: 150},
		Ports:     Ports{MajorPorts: 8, CapacityMTEU: 35},
		Renewable: Renewables{SolarGW: 50, WindGW: 12, HydrogenPlants: 2},
		Water:     WaterSupply{DesalinationMCMDay: 10, RecyclingPct: 50},
	}
	if ambitious {
		m.Airports.International = 5
		m.Airports.Regional = 15
		m.Ports.CapacityMTEU = 50
		m.Water.RecyclingPct = 80
	}
	switch scenario {
	case model.ScenarioAccelerated:
		m.Airports.CapacityMPPA = 200
		m.Renewable.SolarGW = 80
	case model.ScenarioEnergyTransition:
		m.Renewable = Renewables{SolarGW: 100, WindGW: 20, HydrogenPlants: 5}
	case model.ScenarioClimateStress:
		m.Water.DesalinationMCMDay = 15
	}
	return m
}

// ScenarioMap bundles the three map layers of one scenario.
type ScenarioMap struct {
	PopulationDistribution []PopulationPoint `json:"population_distribution"`
	EconomicCorridors      []Corridor        `json:"economic_corridors"`
	Infrastructure         InfrastructureMap `json:"infrastructure"`
}

// BuildMap assembles the layers for a scenario from its regional rows at
// the map year.
func BuildMap(scenario model.ScenarioID, rows []model.RegionalProjection) ScenarioMap {
	return ScenarioMap{
		PopulationDistribution: PopulationDistribution(rows),
		EconomicCorridors:      EconomicCorridors(rows),
		Infrastructure:         Infrastructure(scenario),
	}
}
