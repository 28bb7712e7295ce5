package projection

import (
	"math"
	"sort"

	"github.com/sells-group/nss-cli/internal/model"
)

// Totals summarizes the regional rows of one scenario-year.
type Totals struct {
	Scenario       model.ScenarioID          `json:"scenario"`
	Year           int                       `json:"year"`
	Regions        int                       `json:"regions"`
	Population     float64                   `json:"population_millions"`
	GDPSharePct    float64                   `json:"gdp_share_pct"`
	MeanUrbanPct   float64                   `json:"mean_urbanization_pct"`
	WaterStressMix map[model.WaterStress]int `json:"water_stress_counts"`
	StrategicCount int                       `json:"strategic_regions"`
}

type totalsKey struct {
	scenario model.ScenarioID
	year     int
}

// Aggregate groups rows by scenario and year. Output follows first
// appearance of each scenario, then ascending year.
func Aggregate(rows []model.RegionalProjection) []Totals {
	byKey := make(map[totalsKey]*Totals)
	var order []model.ScenarioID
	seen := make(map[model.ScenarioID]bool)

	for _, r := range rows {
		k := totalsKey{r.Scenario, r.Year}
		t, ok := byKey[k]
		if !ok {
			t = &Totals{Scenario: r.Scenario, Year: r.Year, WaterStressMix: make(map[model.WaterStress]int)}
			byKey[k] = t
		}
		if !seen[r.Scenario] {
			seen[r.Scenario] = true
			order = append(order, r.Scenario)
		}
		t.Regions++
		t.Population += r.Population
		t.GDPSharePct += r.GDPSharePct
		t.MeanUrbanPct += r.UrbanizationPct
		t.WaterStressMix[r.WaterStress]++
		if r.InvestmentPriority == model.PriorityStrategic {
			t.StrategicCount++
		}
	}

	rank := make(map[model.ScenarioID]int, len(order))
	for i, id := range order {
		rank[id] = i
	}

	out := make([]Totals, 0, len(byKey))
	for _, t := range byKey {
		if t.Regions > 0 {
			t.MeanUrbanPct /= float64(t.Regions)
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if rank[out[i].Scenario] != rank[out[j].Scenario] {
			return rank[out[i].Scenario] < rank[out[j].Scenario]
		}
		return out[i].Year < out[j].Year
	})
	return out
}

// SizeCategory buckets a regional population.
type SizeCategory string

const (
	SizeMajor  SizeCategory = "major"
	SizeMedium SizeCategory = "medium"
	SizeSmall  SizeCategory = "small"
)

// Size returns the category for a population in millions.
func Size(populationMillions float64) SizeCategory {
	switch {
	case populationMillions > 3:
		return SizeMajor
	case populationMillions > 1:
		return SizeMedium
	default:
		return SizeSmall
	}
}

// Share is one region's slice of the total population.
type Share struct {
	RegionCode string       `json:"region_code"`
	Region     string       `json:"region"`
	Population float64      `json:"population_millions"`
	SharePct   float64      `json:"population_share_pct"`
	Size       SizeCategory `json:"size_category"`
}

// Distribution computes each row's share of the summed population. Rows are
// expected to belong to a single scenario-year.
func Distribution(rows []model.RegionalProjection) []Share {
	var total float64
	for _, r := range rows {
		total += r.Population
	}

	out := make([]Share, 0, len(rows))
	for _, r := range rows {
		var pct float64
		if total > 0 {
			pct = math.Round(r.Population/total*10000) / 100
		}
		out = append(out, Share{
			RegionCode: r.RegionCode,
			Region:     r.Region,
			Population: r.Population,
			SharePct:   pct,
			Size:       Size(r.Population),
		})
	}
	return out
}
