package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/sells-group/nss-cli/internal/model"
	"github.com/sells-group/nss-cli/internal/scenario"
)

// WriteJSON writes v as indented JSON without HTML escaping.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "report: encode json")
	}
	return nil
}

// WriteComparisonCSV writes one row per scenario with a header.
func WriteComparisonCSV(w io.Writer, rows []scenario.ComparisonRow) error {
	out := make([]scenario.ComparisonRow, len(rows))
	for i, r := range rows {
		r.Population = round(r.Population, 2)
		r.GDP = round(r.GDP, 1)
		r.GDPPerCapita = round(r.GDPPerCapita, 0)
		r.OilShare = round(r.OilShare, 1)
		r.TourismShare = round(r.TourismShare, 1)
		r.UrbanPct = round(r.UrbanPct, 1)
		r.RenewableGW = round(r.RenewableGW, 1)
		out[i] = r
	}
	return encodeCSV(w, out, "comparison")
}

// WriteHeatmapCSV writes a Region column followed by one column per scenario.
func WriteHeatmapCSV(w io.Writer, h model.Heatmap) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(h.Scenarios)+1)
	header = append(header, "Region")
	for _, id := range h.Scenarios {
		header = append(header, string(id))
	}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "report: write heatmap header")
	}

	for i, region := range h.Regions {
		rec := make([]string, 0, len(h.Scenarios)+1)
		rec = append(rec, region)
		for _, v := range h.Scores[i] {
			rec = append(rec, fmt.Sprintf("%.2f", v))
		}
		if err := cw.Write(rec); err != nil {
			return eris.Wrapf(err, "report: write heatmap row %s", region)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "report: flush heatmap csv")
	}
	return nil
}

// RegionalRecord is the rounded, file-facing form of a regional projection.
type RegionalRecord struct {
	Scenario           model.ScenarioID         `json:"-" csv:"scenario"`
	RegionCode         string                   `json:"region_code" csv:"region_code"`
	Region             string                   `json:"region" csv:"region"`
	Year               int                      `json:"year" csv:"year"`
	Population         float64                  `json:"population_millions" csv:"population_millions"`
	GDPSharePct        float64                  `json:"gdp_share_pct" csv:"gdp_share_pct"`
	EmploymentGrowth   float64                  `json:"employment_growth_pct" csv:"employment_growth_pct"`
	UrbanizationRate   float64                  `json:"urbanization_rate" csv:"urbanization_rate"`
	WaterStress        model.WaterStress        `json:"water_stress_level" csv:"water_stress_level"`
	InvestmentPriority model.InvestmentPriority `json:"investment_priority" csv:"investment_priority"`
}

// NewRegionalRecord rounds a projection for output.
func NewRegionalRecord(p model.RegionalProjection) RegionalRecord {
	return RegionalRecord{
		Scenario:           p.Scenario,
		RegionCode:         p.RegionCode,
		Region:             p.Region,
		Year:               p.Year,
		Population:         round(p.Population, 2),
		GDPSharePct:        round(p.GDPSharePct, 1),
		EmploymentGrowth:   round(p.EmploymentGrowth, 1),
		UrbanizationRate:   round(p.UrbanizationPct, 1),
		WaterStress:        p.WaterStress,
		InvestmentPriority: p.InvestmentPriority,
	}
}

// RegionalByScenario nests rows as scenario -> year -> records, the layout of
// the regional projections JSON file.
func RegionalByScenario(rows []model.RegionalProjection) map[model.ScenarioID]map[string][]RegionalRecord {
	out := make(map[model.ScenarioID]map[string][]RegionalRecord)
	for _, p := range rows {
		byYear, ok := out[p.Scenario]
		if !ok {
			byYear = make(map[string][]RegionalRecord)
			out[p.Scenario] = byYear
		}
		key := fmt.Sprint(p.Year)
		byYear[key] = append(byYear[key], NewRegionalRecord(p))
	}
	return out
}

// WriteRegionalCSV writes the flat region × scenario × year table.
func WriteRegionalCSV(w io.Writer, rows []model.RegionalProjection) error {
	recs := make([]RegionalRecord, len(rows))
	for i, p := range rows {
		recs[i] = NewRegionalRecord(p)
	}
	return encodeCSV(w, recs, "regional")
}

func encodeCSV(w io.Writer, v any, what string) error {
	cw := csv.NewWriter(w)
	if err := csvutil.NewEncoder(cw).Encode(v); err != nil {
		return eris.Wrapf(err, "report: encode %s csv", what)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrapf(err, "report: flush %s csv", what)
	}
	return nil
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
