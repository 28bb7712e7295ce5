// Package scenario projects national demographic, economic and spatial
// indicators under each named scenario.
package scenario

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/sells-group/nss-cli/internal/model"
	"github.com/sells-group/nss-cli/internal/registry"
)

// Base holds the base-year anchors every scenario compounds from.
type Base struct {
	Population float64 // millions
	GDP        float64 // billion USD
}

// Modeler evaluates scenarios at arbitrary years after BaseYear.
type Modeler struct {
	BaseYear int
	Base     Base
}

// NewModeler returns a Modeler anchored at the built-in base year.
func NewModeler() *Modeler {
	return &Modeler{
		BaseYear: registry.BaseYear,
		Base:     Base{Population: registry.BasePopulation, GDP: registry.BaseGDP},
	}
}

// Project evaluates every driver of s at year.
func (m *Modeler) Project(s model.Scenario, year int) model.NationalProjection {
	years := year - m.BaseYear
	d := s.Demographic
	e := s.Economic
	sp := s.Spatial

	pop := m.Base.Population * d.PopulationGrowth.Factor(years)
	gdp := m.Base.GDP * e.GDPGrowth.Factor(years)

	var perCapita float64
	if pop > 0 {
		perCapita = gdp * 1e9 / (pop * 1e6)
	}

	return model.NationalProjection{
		Scenario: s.ID,
		Year:     year,
		Demographic: model.DemographicProjection{
			Year:           year,
			Population:     pop,
			Saudi:          pop * d.SaudiShare,
			Expat:          pop * (1 - d.SaudiShare),
			UrbanPct:       d.UrbanPct.At(years),
			RiyadhSharePct: d.RiyadhSharePct.At(years),
			YouthSharePct:  d.YouthSharePct.At(years),
		},
		Economic: model.EconomicProjection{
			Year:                   year,
			GDP:                    gdp,
			GDPPerCapita:           perCapita,
			OilSharePct:            e.OilSharePct.At(years),
			TourismSharePct:        e.TourismSharePct.At(years),
			TechSharePct:           e.TechSharePct.At(years),
			UnemploymentPct:        e.UnemploymentPct.At(years),
			FemaleParticipationPct: e.FemaleParticipationPct.At(years),
		},
		Spatial: model.SpatialProjection{
			Year:             year,
			UrbanizedAreaKm2: sp.UrbanizedAreaKm2.At(years),
			NewCities:        sp.NewCities.At(years),
			ProtectedAreaPct: sp.ProtectedAreaPct.At(years),
			RenewableGW:      sp.RenewableGW.At(years),
			RailKm:           sp.RailKm.At(years),
			DesalinationMCM:  sp.DesalinationMCM.At(years),
		},
	}
}

// Path projects s at each of years, sorted ascending.
func (m *Modeler) Path(s model.Scenario, years []int) []model.NationalProjection {
	sorted := append([]int(nil), years...)
	sort.Ints(sorted)

	path := make([]model.NationalProjection, 0, len(sorted))
	for _, y := range sorted {
		path = append(path, m.Project(s, y))
	}
	return path
}

// ComparisonRow is one scenario's headline indicators at a given year.
type ComparisonRow struct {
	Scenario     model.ScenarioID `json:"scenario" csv:"scenario_id"`
	Name         string           `json:"name" csv:"Scenario"`
	Year         int              `json:"year" csv:"year"`
	Population   float64          `json:"population_millions" csv:"Population (M)"`
	GDP          float64          `json:"gdp_billion_usd" csv:"GDP ($B)"`
	GDPPerCapita float64          `json:"gdp_per_capita_usd" csv:"GDP/Capita ($)"`
	OilShare     float64          `json:"oil_share_pct" csv:"Oil Share (%)"`
	TourismShare float64          `json:"tourism_share_pct" csv:"Tourism Share (%)"`
	UrbanPct     float64          `json:"urban_pct" csv:"Urban (%)"`
	RenewableGW  float64          `json:"renewable_gw" csv:"Renewable GW"`
	Probability  float64          `json:"probability" csv:"Probability"`
}

// Compare projects every scenario at year, preserving input order.
func (m *Modeler) Compare(scenarios []model.Scenario, year int) []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(scenarios))
	for _, s := range scenarios {
		p := m.Project(s, year)
		rows = append(rows, ComparisonRow{
			Scenario:     s.ID,
			Name:         s.Name,
			Year:         year,
			Population:   p.Demographic.Population,
			GDP:          p.Economic.GDP,
			GDPPerCapita: p.Economic.GDPPerCapita,
			OilShare:     p.Economic.OilSharePct,
			TourismShare: p.Economic.TourismSharePct,
			UrbanPct:     p.Demographic.UrbanPct,
			RenewableGW:  p.Spatial.RenewableGW,
			Probability:  s.Probability,
		})
	}
	return rows
}

// Interpolate linearly interpolates a milestone path at year. Years outside
// the path clamp to the nearest endpoint. Integer counters take the value of
// the lower bracket.
func Interpolate(path []model.NationalProjection, year int) (model.NationalProjection, error) {
	if len(path) == 0 {
		return model.NationalProjection{}, eris.New("scenario: interpolate on empty path")
	}

	sorted := append([]model.NationalProjection(nil), path...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	first, last := sorted[0], sorted[len(sorted)-1]
	if year <= first.Year {
		return withYear(first, year), nil
	}
	if year >= last.Year {
		return withYear(last, year), nil
	}

	for i := 1; i < len(sorted); i++ {
		lo, hi := sorted[i-1], sorted[i]
		if year > hi.Year {
			continue
		}
		if year == hi.Year {
			return hi, nil
		}
		t := float64(year-lo.Year) / float64(hi.Year-lo.Year)
		return lerp(lo, hi, t, year), nil
	}
	return withYear(last, year), nil
}

func withYear(p model.NationalProjection, year int) model.NationalProjection {
	p.Year = year
	p.Demographic.Year = year
	p.Economic.Year = year
	p.Spatial.Year = year
	return p
}

func lerp(lo, hi model.NationalProjection, t float64, year int) model.NationalProjection {
	f := func(a, b float64) float64 { return a + (b-a)*t }
	out := withYear(lo, year)

	out.Demographic.Population = f(lo.Demographic.Population, hi.Demographic.Population)
	out.Demographic.Saudi = f(lo.Demographic.Saudi, hi.Demographic.Saudi)
	out.Demographic.Expat = f(lo.Demographic.Expat, hi.Demographic.Expat)
	out.Demographic.UrbanPct = f(lo.Demographic.UrbanPct, hi.Demographic.UrbanPct)
	out.Demographic.RiyadhSharePct = f(lo.Demographic.RiyadhSharePct, hi.Demographic.RiyadhSharePct)
	out.Demographic.YouthSharePct = f(lo.Demographic.YouthSharePct, hi.Demographic.YouthSharePct)

	out.Economic.GDP = f(lo.Economic.GDP, hi.Economic.GDP)
	if out.Demographic.Population > 0 {
		out.Economic.GDPPerCapita = out.Economic.GDP * 1e9 / (out.Demographic.Population * 1e6)
	}
	out.Economic.OilSharePct = f(lo.Economic.OilSharePct, hi.Economic.OilSharePct)
	out.Economic.TourismSharePct = f(lo.Economic.TourismSharePct, hi.Economic.TourismSharePct)
	out.Economic.TechSharePct = f(lo.Economic.TechSharePct, hi.Economic.TechSharePct)
	out.Economic.UnemploymentPct = f(lo.Economic.UnemploymentPct, hi.Economic.UnemploymentPct)
	out.Economic.FemaleParticipationPct = f(lo.Economic.FemaleParticipationPct, hi.Economic.FemaleParticipationPct)

	out.Spatial.UrbanizedAreaKm2 = f(lo.Spatial.UrbanizedAreaKm2, hi.Spatial.UrbanizedAreaKm2)
	out.Spatial.ProtectedAreaPct = f(lo.Spatial.ProtectedAreaPct, hi.Spatial.ProtectedAreaPct)
	out.Spatial.RenewableGW = f(lo.Spatial.RenewableGW, hi.Spatial.RenewableGW)
	out.Spatial.RailKm = f(lo.Spatial.RailKm, hi.Spatial.RailKm)
	out.Spatial.DesalinationMCM = f(lo.Spatial.DesalinationMCM, hi.Spatial.DesalinationMCM)
	return out
}

// Expectation is a probability-weighted national outlook.
type Expectation struct {
	Year        int     `json:"year"`
	Population  float64 `json:"population_millions"`
	GDP         float64 `json:"gdp_billion_usd"`
	TotalWeight float64 `json:"total_weight"`
}

// Expected weights each scenario's population and GDP at year by its
// probability, normalized over the given set.
func (m *Modeler) Expected(scenarios []model.Scenario, year int) (Expectation, error) {
	var total float64
	for _, s := range scenarios {
		total += s.Probability
	}
	if total <= 0 {
		return Expectation{}, eris.New("scenario: total probability weight is zero")
	}

	exp := Expectation{Year: year, TotalWeight: total}
	for _, s := range scenarios {
		w := s.Probability / total
		p := m.Project(s, year)
		exp.Population += w * p.Demographic.Population
		exp.GDP += w * p.Economic.GDP
	}
	return exp, nil
}

// Range is a closed [Min, Max] interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Ranges holds the spread of headline indicators across a comparison.
type Ranges struct {
	Population Range `json:"population_millions"`
	GDP        Range `json:"gdp_billion_usd"`
}

// ComputeRanges returns min/max population and GDP across rows.
func ComputeRanges(rows []ComparisonRow) Ranges {
	if len(rows) == 0 {
		return Ranges{}
	}
	r := Ranges{
		Population: Range{Min: math.Inf(1), Max: math.Inf(-1)},
		GDP:        Range{Min: math.Inf(1), Max: math.Inf(-1)},
	}
	for _, row := range rows {
		r.Population.Min = math.Min(r.Population.Min, row.Population)
		r.Population.Max = math.Max(r.Population.Max, row.Population)
		r.GDP.Min = math.Min(r.GDP.Min, row.GDP)
		r.GDP.Max = math.Max(r.GDP.Max, row.GDP)
	}
	return r
}
