// Package projection compounds regional base-year profiles forward under a
// scenario's regional adjustment.
package projection

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/sells-group/nss-cli/internal/model"
	"github.com/sells-group/nss-cli/internal/registry"
)

// Regional model constants.
const (
	baseGrowthRate    = 0.02 // annual population growth per unit of adjusted growth factor
	gdpShareSlope     = 0.01 // annual GDP share gain per unit of adjusted growth factor
	maxGDPSharePct    = 55.0
	baseUrbanization  = 85.0
	urbanizationSlope = 0.4
	maxUrbanization   = 95.0
	waterShiftYears   = 10.0
)

// Projector projects regions from a region registry under scenarios from a
// scenario registry.
type Projector struct {
	BaseYear  int
	Regions   *registry.RegionRegistry
	Scenarios *registry.ScenarioRegistry
}

// New creates a Projector over the given registries.
func New(baseYear int, regions *registry.RegionRegistry, scenarios *registry.ScenarioRegistry) *Projector {
	return &Projector{BaseYear: baseYear, Regions: regions, Scenarios: scenarios}
}

// ProjectRegion projects one region under one scenario at year. Region may be
// a code or a name.
func (p *Projector) ProjectRegion(region string, scenario model.ScenarioID, year int) (model.RegionalProjection, error) {
	reg, err := p.Regions.Lookup(region)
	if err != nil {
		return model.RegionalProjection{}, eris.Wrap(err, "projection: project region")
	}
	s, err := p.Scenarios.Get(scenario)
	if err != nil {
		return model.RegionalProjection{}, eris.Wrap(err, "projection: project region")
	}
	return Project(reg, s, p.BaseYear, year), nil
}

// Project applies the regional formulas to a single region/scenario/year.
func Project(reg model.Region, s model.Scenario, baseYear, year int) model.RegionalProjection {
	years := year - baseYear
	adj := s.Adjustment

	rate := 1 + baseGrowthRate*reg.GrowthFactor*adj.Growth
	pop := reg.Population * math.Pow(rate, float64(years))

	gdpGrowth := reg.GrowthFactor * adj.Growth
	share := math.Min(reg.GDPShare*(1+gdpShareSlope*gdpGrowth*float64(years)), maxGDPSharePct)

	urban := math.Min(maxUrbanization, baseUrbanization+urbanizationSlope*float64(years))

	shift := int(adj.Water * float64(years) / waterShiftYears)

	return model.RegionalProjection{
		RegionCode:         reg.Code,
		Region:             reg.Name,
		Scenario:           s.ID,
		Year:               year,
		Population:         pop,
		GDPSharePct:        share,
		EmploymentGrowth:   (rate - 1) * 100,
		UrbanizationPct:    urban,
		WaterStress:        reg.WaterStress.Shift(shift),
		InvestmentPriority: Priority(gdpGrowth),
	}
}

// Priority tiers an adjusted growth factor into an investment priority.
func Priority(adjustedGrowth float64) model.InvestmentPriority {
	switch {
	case adjustedGrowth > 1.3:
		return model.PriorityStrategic
	case adjustedGrowth > 1.0:
		return model.PriorityHigh
	case adjustedGrowth > 0.7:
		return model.PriorityMedium
	default:
		return model.PriorityMaintenance
	}
}

// ProjectAll projects every region in registry order under scenario at year.
func (p *Projector) ProjectAll(scenario model.ScenarioID, year int) ([]model.RegionalProjection, error) {
	s, err := p.Scenarios.Get(scenario)
	if err != nil {
		return nil, eris.Wrap(err, "projection: project all")
	}
	rows := make([]model.RegionalProjection, 0, len(p.Regions.Regions))
	for _, reg := range p.Regions.Regions {
		rows = append(rows, Project(reg, s, p.BaseYear, year))
	}
	return rows, nil
}

// Grid produces the full region × scenario × year table, ordered by
// scenario, then region, then year.
func (p *Projector) Grid(scenarios []model.ScenarioID, years []int) ([]model.RegionalProjection, error) {
	if len(scenarios) == 0 {
		scenarios = p.Scenarios.IDs()
	}
	sortedYears := append([]int(nil), years...)
	sort.Ints(sortedYears)

	rows := make([]model.RegionalProjection, 0, len(scenarios)*len(p.Regions.Regions)*len(sortedYears))
	for _, id := range scenarios {
		s, err := p.Scenarios.Get(id)
		if err != nil {
			return nil, eris.Wrap(err, "projection: grid")
		}
		for _, reg := range p.Regions.Regions {
			for _, y := range sortedYears {
				rows = append(rows, Project(reg, s, p.BaseYear, y))
			}
		}
	}
	return rows, nil
}

// Filter returns the rows matching scenario and year. Zero values match all.
func Filter(rows []model.RegionalProjection, scenario model.ScenarioID, year int) []model.RegionalProjection {
	var out []model.RegionalProjection
	for _, r := range rows {
		if scenario != "" && r.Scenario != scenario {
			continue
		}
		if year != 0 && r.Year != year {
			continue
		}
		out = append(out, r)
	}
	return out
}
