// Package report assembles the scenario modeling deliverables: a structured
// report document plus the CSV, JSON, GeoJSON, workbook and chart files it
// references.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/nss-cli/internal/geo"
	"github.com/sells-group/nss-cli/internal/model"
	"github.com/sells-group/nss-cli/internal/projection"
	"github.com/sells-group/nss-cli/internal/scenario"
	"github.com/sells-group/nss-cli/internal/scorer"
)

// Version is stamped into report metadata.
const Version = "1.0"

// ComparisonYears are the milestone years of the comparison tables and the
// regional projection file.
var ComparisonYears = []int{2030, 2050}

// Inputs wires the engines a report is computed from.
type Inputs struct {
	Title      string
	Generated  time.Time
	Years      []int // national path milestones
	Modeler    *scenario.Modeler
	Projector  *projection.Projector
	Scorer     *scorer.Scorer
	Boundaries map[string]geo.Boundary
}

// Data holds the computed tables behind a report.
type Data struct {
	Scenarios          []model.Scenario
	Regions            []model.Region
	Paths              map[model.ScenarioID][]model.NationalProjection
	Comparison2030     []scenario.ComparisonRow
	Comparison2050     []scenario.ComparisonRow
	Regional           []model.RegionalProjection
	Risks              []model.RiskAssessment
	Opportunities      []model.OpportunityAssessment
	RiskHeatmap        model.Heatmap
	OpportunityHeatmap model.Heatmap
	Maps               map[model.ScenarioID]geo.ScenarioMap
	MapOrder           []model.ScenarioID
	Features           *geojson.FeatureCollection
	Expected           scenario.Expectation
}

// Metadata identifies a generated report.
type Metadata struct {
	Title     string    `json:"report_title"`
	Generated time.Time `json:"generated_date"`
	Version   string    `json:"version"`
	BaseYear  int       `json:"base_year"`
	Horizon   int       `json:"horizon_year"`
}

// ScenariosAnalyzed lists scenario names by category.
type ScenariosAnalyzed struct {
	Core   []string `json:"core_scenarios"`
	Stress []string `json:"stress_tests"`
	Total  int      `json:"total"`
}

// ExecutiveSummary is the opening section of the report.
type ExecutiveSummary struct {
	Overview              string            `json:"overview"`
	ScenariosAnalyzed     ScenariosAnalyzed `json:"scenarios_analyzed"`
	KeyFindings           []string          `json:"key_findings"`
	CriticalUncertainties []string          `json:"critical_uncertainties"`
	PlanningImplications  []string          `json:"planning_implications"`
}

// ScenarioSection describes one scenario and its milestone projections.
type ScenarioSection struct {
	ID            model.ScenarioID                       `json:"id"`
	Name          string                                 `json:"name"`
	Category      model.Category                         `json:"category"`
	Description   string                                 `json:"description"`
	Probability   float64                                `json:"probability"`
	Assumptions   []string                               `json:"key_assumptions"`
	Risks         []string                               `json:"key_risks"`
	Opportunities []string                               `json:"key_opportunities"`
	Demographic   map[string]model.DemographicProjection `json:"demographic_summary"`
	Economic      map[string]model.EconomicProjection    `json:"economic_summary"`
	Spatial       map[string]model.SpatialProjection     `json:"spatial_summary"`
}

// DataSection points at a data file with a one-line summary.
type DataSection struct {
	Summary  string `json:"summary"`
	DataFile string `json:"data_file"`
}

// HeatmapSection summarizes a heatmap by its highest combinations.
type HeatmapSection struct {
	Description  string             `json:"description"`
	Highest      []model.Highlight  `json:"highest_combinations"`
	ScenarioMean map[string]float64 `json:"scenario_mean_scores"`
	DataFile     string             `json:"data_file"`
}

// MapSection lists the map layers produced per scenario.
type MapSection struct {
	Description   string             `json:"description"`
	Scenarios     []model.ScenarioID `json:"scenarios"`
	MapsAvailable []string           `json:"maps_available"`
	DataFile      string             `json:"data_file"`
	FeaturesFile  string             `json:"features_file"`
}

// Component documents one engine of the model.
type Component struct {
	Name    string `json:"name"`
	Purpose string `json:"purpose"`
	Inputs  string `json:"inputs"`
	Outputs string `json:"outputs"`
}

// Documentation describes the model, its assumptions and limits.
type Documentation struct {
	Name           string            `json:"name"`
	Version        string            `json:"version"`
	Components     []Component       `json:"components"`
	KeyAssumptions map[string]string `json:"key_assumptions"`
	Scoring        map[string]string `json:"scoring"`
	BaseYear       int               `json:"base_year"`
	ValidationData string            `json:"validation_data"`
	Limitations    []string          `json:"limitations"`
	Usage          map[string]string `json:"usage_guide"`
}

// Recommendations are the planning recommendations by theme.
type Recommendations struct {
	SpatialPlanning      []string `json:"spatial_planning"`
	InvestmentPriorities []string `json:"investment_priorities"`
	RegionalStrategy     []string `json:"regional_strategy"`
	Governance           []string `json:"governance"`
	ResilienceBuilding   []string `json:"resilience_building"`
}

// Appendices lists sources and produced files.
type Appendices struct {
	DataSources []string `json:"data_sources"`
	OutputFiles []string `json:"output_files"`
}

// Report is the full deliverable document. Data carries the tables the
// file writers render and is not serialized.
type Report struct {
	Metadata            Metadata          `json:"metadata"`
	ExecutiveSummary    ExecutiveSummary  `json:"executive_summary"`
	Scenarios           []ScenarioSection `json:"section_1_scenarios"`
	RegionalProjections DataSection       `json:"section_2_regional_projections"`
	RiskHeatmaps        HeatmapSection    `json:"section_3_risk_heatmaps"`
	OpportunityHeatmaps HeatmapSection    `json:"section_4_opportunity_heatmaps"`
	ScenarioMaps        MapSection        `json:"section_5_scenario_maps"`
	Documentation       Documentation     `json:"section_6_model_documentation"`
	Recommendations     Recommendations   `json:"recommendations"`
	Appendices          Appendices        `json:"appendices"`

	Data *Data `json:"-"`
}

// Compute runs every engine and collects the tables a report needs.
func Compute(in Inputs) (*Data, error) {
	if in.Modeler == nil || in.Projector == nil || in.Scorer == nil {
		return nil, eris.New("report: modeler, projector and scorer are required")
	}

	scenarios := in.Projector.Scenarios.Scenarios
	regions := in.Projector.Regions.Regions
	ids := in.Projector.Scenarios.IDs()

	d := &Data{
		Scenarios:      scenarios,
		Regions:        regions,
		Paths:          make(map[model.ScenarioID][]model.NationalProjection, len(scenarios)),
		Comparison2030: in.Modeler.Compare(scenarios, ComparisonYears[0]),
		Comparison2050: in.Modeler.Compare(scenarios, ComparisonYears[1]),
		Maps:           make(map[model.ScenarioID]geo.ScenarioMap),
	}

	years := pathYears(in.Years)
	for _, s := range scenarios {
		d.Paths[s.ID] = in.Modeler.Path(s, years)
	}

	rows, err := in.Projector.Grid(ids, ComparisonYears)
	if err != nil {
		return nil, eris.Wrap(err, "report: regional grid")
	}
	d.Regional = rows

	d.Risks, d.Opportunities = in.Scorer.AssessAll(regions, ids)
	d.RiskHeatmap = in.Scorer.RiskHeatmap(regions, ids)
	d.OpportunityHeatmap = in.Scorer.OpportunityHeatmap(regions, ids)

	for _, id := range geo.MapScenarios {
		if in.Projector.Scenarios.ByID(id) == nil {
			continue
		}
		mapRows, err := in.Projector.ProjectAll(id, geo.MapYear)
		if err != nil {
			return nil, eris.Wrapf(err, "report: map rows for %s", id)
		}
		d.Maps[id] = geo.BuildMap(id, mapRows)
		d.MapOrder = append(d.MapOrder, id)

		if d.Features == nil {
			d.Features = geo.RegionFeatures(regions, mapRows, in.Boundaries)
		}
	}
	if d.Features == nil {
		d.Features = geo.RegionFeatures(regions, nil, in.Boundaries)
	}

	weighted := in.Projector.Scenarios.Core()
	if len(weighted) == 0 {
		weighted = scenarios
	}
	if d.Expected, err = in.Modeler.Expected(weighted, geo.MapYear); err != nil {
		return nil, eris.Wrap(err, "report: expected outlook")
	}

	return d, nil
}

// pathYears merges configured milestones with the comparison years.
func pathYears(years []int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, y := range append(append([]int(nil), years...), ComparisonYears...) {
		if !seen[y] {
			seen[y] = true
			out = append(out, y)
		}
	}
	sort.Ints(out)
	return out
}

// Build computes the report data and assembles the document.
func Build(in Inputs) (*Report, error) {
	d, err := Compute(in)
	if err != nil {
		return nil, err
	}

	title := in.Title
	if title == "" {
		title = "WS5 - Long-Term Scenario Modeling (2030-2050)"
	}
	generated := in.Generated
	if generated.IsZero() {
		generated = time.Now().UTC()
	}

	sc := in.Scorer.Config()
	r := &Report{
		Metadata: Metadata{
			Title:     title,
			Generated: generated,
			Version:   Version,
			BaseYear:  in.Modeler.BaseYear,
			Horizon:   ComparisonYears[len(ComparisonYears)-1],
		},
		ExecutiveSummary: executiveSummary(d),
		Scenarios:        scenarioSections(d),
		RegionalProjections: DataSection{
			Summary:  fmt.Sprintf("Regional projections for all %d regions across %d scenarios", len(d.Regions), len(d.Scenarios)),
			DataFile: RegionalJSONFile,
		},
		RiskHeatmaps: HeatmapSection{
			Description:  "Risk assessment by region and scenario (0-10 scale)",
			Highest:      scorer.Highlights(d.RiskHeatmap, sc.HighlightThreshold, sc.TopN),
			ScenarioMean: columnMeans(d.RiskHeatmap),
			DataFile:     RiskHeatmapFile,
		},
		OpportunityHeatmaps: HeatmapSection{
			Description:  "Opportunity assessment by region and scenario (0-10 scale)",
			Highest:      scorer.Highlights(d.OpportunityHeatmap, sc.HighlightThreshold, sc.TopN),
			ScenarioMean: columnMeans(d.OpportunityHeatmap),
			DataFile:     OpportunityHeatmapFile,
		},
		ScenarioMaps: MapSection{
			Description: "Spatial data for scenario visualization",
			Scenarios:   d.MapOrder,
			MapsAvailable: []string{
				fmt.Sprintf("Population distribution %d", geo.MapYear),
				fmt.Sprintf("Economic corridors %d", geo.MapYear),
				fmt.Sprintf("Infrastructure network %d", geo.MapYear),
			},
			DataFile:     MapDataFile,
			FeaturesFile: RegionsGeoJSONFile,
		},
		Documentation:   documentation(in.Modeler.BaseYear, sc.RiskScale, sc.OpportunityScale),
		Recommendations: recommendations(),
		Appendices: Appendices{
			DataSources: dataSources,
			OutputFiles: OutputFiles(false, false),
		},
		Data: d,
	}
	return r, nil
}

func executiveSummary(d *Data) ExecutiveSummary {
	var analyzed ScenariosAnalyzed
	for _, s := range d.Scenarios {
		if s.IsStress() {
			analyzed.Stress = append(analyzed.Stress, s.Name)
		} else {
			analyzed.Core = append(analyzed.Core, s.Name)
		}
	}
	analyzed.Total = len(d.Scenarios)

	return ExecutiveSummary{
		Overview: fmt.Sprintf("This scenario analysis models %d alternative futures to %d, including %d core scenarios "+
			"and %d stress tests. It projects demographic, economic and spatial outcomes at national and regional "+
			"levels, with risk and opportunity assessments for all %d regions.",
			analyzed.Total, ComparisonYears[len(ComparisonYears)-1], len(analyzed.Core), len(analyzed.Stress), len(d.Regions)),
		ScenariosAnalyzed: analyzed,
		KeyFindings:       keyFindings(d),
		CriticalUncertainties: []string{
			"Global oil demand trajectory",
			"Climate change severity",
			"Technology adoption pace",
			"Regional geopolitical stability",
			"Investment capacity and execution",
		},
		PlanningImplications: []string{
			"Design flexible spatial strategies robust to multiple scenarios",
			"Prioritize water security as non-negotiable investment",
			"Accelerate economic diversification as risk mitigation",
			"Develop regional specialization to distribute growth",
			"Build climate adaptation into all infrastructure",
		},
	}
}

// keyFindings derives the headline findings from the computed tables.
func keyFindings(d *Data) []string {
	var out []string

	if len(d.Comparison2050) > 0 {
		rg := scenario.ComputeRanges(d.Comparison2050)
		out = append(out,
			fmt.Sprintf("Population 2050 range: %.0fM - %.0fM", rg.Population.Min, rg.Population.Max),
			fmt.Sprintf("GDP 2050 range: $%.0fB - $%.0fB", rg.GDP.Min, rg.GDP.Max),
		)
	}

	if d.Expected.TotalWeight > 0 {
		out = append(out, fmt.Sprintf("Probability-weighted 2050 outlook: %.1fM people, $%.0fB GDP",
			d.Expected.Population, d.Expected.GDP))
	}

	if id, mean := scorer.HighestMeanScenario(d.RiskHeatmap); id != "" {
		out = append(out, fmt.Sprintf("%s scenario shows highest regional risk (avg %.1f/10)", scenarioName(d.Scenarios, id), mean))
	}
	if id, mean := scorer.HighestMeanScenario(d.OpportunityHeatmap); id != "" {
		out = append(out, fmt.Sprintf("%s scenario offers the broadest regional opportunity (avg %.1f/10)", scenarioName(d.Scenarios, id), mean))
	}

	if top := topGrowthRegion(d.Regions); top != "" {
		out = append(out, fmt.Sprintf("%s shows highest growth potential across all scenarios", top))
	}

	if stressed := persistentWaterStress(d.Regional, len(d.Scenarios)); len(stressed) > 0 {
		out = append(out, fmt.Sprintf("%s face critical water stress in all scenarios", joinNames(stressed)))
	}

	for _, s := range d.Scenarios {
		if s.ID == model.ScenarioVision2030 {
			out = append(out, fmt.Sprintf("Vision 2030 achievement probability estimated at %.0f%%", s.Probability*100))
		}
	}
	return out
}

// topGrowthRegion returns the name of the region with the highest growth
// factor, or "" when there are no regions.
func topGrowthRegion(regions []model.Region) string {
	var (
		best   string
		factor = math.Inf(-1)
	)
	for _, r := range regions {
		if r.GrowthFactor > factor {
			best, factor = r.Name, r.GrowthFactor
		}
	}
	return best
}

// persistentWaterStress returns regions whose horizon-year water stress is
// critical or worse under every scenario.
func persistentWaterStress(rows []model.RegionalProjection, scenarios int) []string {
	horizon := ComparisonYears[len(ComparisonYears)-1]
	counts := make(map[string]int)
	var order []string
	for _, r := range rows {
		if r.Year != horizon {
			continue
		}
		if _, ok := counts[r.Region]; !ok {
			order = append(order, r.Region)
			counts[r.Region] = 0
		}
		if r.WaterStress.Index() >= model.WaterStressCritical.Index() {
			counts[r.Region]++
		}
	}

	var out []string
	for _, name := range order {
		if scenarios > 0 && counts[name] == scenarios {
			out = append(out, name)
		}
	}
	return out
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

func scenarioName(scenarios []model.Scenario, id model.ScenarioID) string {
	for _, s := range scenarios {
		if s.ID == id {
			return s.Name
		}
	}
	return string(id)
}

func columnMeans(h model.Heatmap) map[string]float64 {
	out := make(map[string]float64, len(h.Scenarios))
	for j, id := range h.Scenarios {
		out[string(id)] = math.Round(h.ColumnMean(j)*100) / 100
	}
	return out
}

func scenarioSections(d *Data) []ScenarioSection {
	out := make([]ScenarioSection, 0, len(d.Scenarios))
	for _, s := range d.Scenarios {
		sec := ScenarioSection{
			ID:            s.ID,
			Name:          s.Name,
			Category:      s.Category,
			Description:   s.Description,
			Probability:   s.Probability,
			Assumptions:   s.Assumptions,
			Risks:         s.Risks,
			Opportunities: s.Opportunities,
			Demographic:   make(map[string]model.DemographicProjection),
			Economic:      make(map[string]model.EconomicProjection),
			Spatial:       make(map[string]model.SpatialProjection),
		}
		for _, p := range d.Paths[s.ID] {
			if !isComparisonYear(p.Year) {
				continue
			}
			key := fmt.Sprint(p.Year)
			sec.Demographic[key] = p.Demographic
			sec.Economic[key] = p.Economic
			sec.Spatial[key] = p.Spatial
		}
		out = append(out, sec)
	}
	return out
}

func isComparisonYear(y int) bool {
	for _, c := range ComparisonYears {
		if c == y {
			return true
		}
	}
	return false
}

func documentation(baseYear int, riskScale, oppScale float64) Documentation {
	return Documentation{
		Name:    "NSS Scenario Simulation Model",
		Version: Version,
		Components: []Component{
			{"scenario.Modeler", "National scenario engine", "Base-year anchors, scenario drivers", "Demographic, economic and spatial projections"},
			{"registry", "Scenario table and regional profiles", "Built-in tables or YAML/JSON/CSV/XLSX files", "Validated scenario and region registries"},
			{"projection.Projector", "Regional-level projection engine", "Regional profiles, scenario adjustments", "Region x scenario x year projections"},
			{"scorer.Scorer", "Risk and opportunity assessment", "Regional attributes, scenario characteristics", "Risk/opportunity heatmaps"},
			{"geo", "Scenario map layers", "Regional projections, region boundaries", "Population, corridor and infrastructure layers, GeoJSON"},
		},
		KeyAssumptions: map[string]string{
			"demographic": "Compound population growth with scenario-specific rates",
			"economic":    "Compound annual GDP growth rates with scenario modifiers",
			"spatial":     "Linear infrastructure expansion assumptions",
			"climate":     "Stress scenarios scale water stress and climate exposure",
		},
		Scoring: map[string]string{
			"risk":        fmt.Sprintf("Weighted mean of four 1-4 level points x %.2f", riskScale),
			"opportunity": fmt.Sprintf("Weighted mean of four 1-3 level points x %.2f", oppScale),
		},
		BaseYear:       baseYear,
		ValidationData: "GASTAT 2023, SAMA 2023, Vision 2030 targets",
		Limitations: []string{
			"Simplified regional allocation model",
			"Limited cross-sectoral interactions",
			"Static assumption of policy responses",
			"Uncertainty in technology adoption rates",
		},
		Usage: map[string]string{
			"basic_usage":       "nss-cli report --output-dir output/ws5",
			"custom_scenarios":  "Set model.scenarios_file to a YAML or JSON scenario table",
			"regional_analysis": "nss-cli project --region SA-07 --scenario vision2030",
			"output_format":     "JSON, Markdown, CSV, GeoJSON and XLSX files",
		},
	}
}

func recommendations() Recommendations {
	return Recommendations{
		SpatialPlanning: []string{
			"Adopt adaptive spatial planning that accommodates scenario uncertainty",
			"Prioritize infrastructure investments robust across all scenarios",
			"Design urban areas for +3°C climate scenario as precaution",
			"Preserve flexibility in land use designations for emerging sectors",
		},
		InvestmentPriorities: []string{
			"Water security: Mandatory in all scenarios (SAR 50B+)",
			"Renewable energy: Critical for energy transition, beneficial in all",
			"Digital infrastructure: Essential for tech disruption preparedness",
			"Transport connectivity: High value across all scenarios",
		},
		RegionalStrategy: []string{
			"Riyadh: Strengthen as economic engine while managing water/heat",
			"Tabuk/NEOM: High-risk/high-reward - monitor execution closely",
			"Eastern Province: Critical diversification needed for energy transition",
			"Agricultural regions: Urgent water efficiency transformation",
		},
		Governance: []string{
			"Establish scenario monitoring with trigger indicators",
			"Bi-annual scenario review and NSS update process",
			"Regional early warning systems for trajectory deviation",
			"Cross-ministerial scenario planning coordination",
		},
		ResilienceBuilding: []string{
			"Build redundancy in critical infrastructure systems",
			"Diversify economic corridors to reduce concentration risk",
			"Protect natural capital as long-term insurance",
			"Develop adaptive capacity through skills and institutions",
		},
	}
}

var dataSources = []string{
	"GASTAT demographic projections",
	"Vision 2030 official targets",
	"IMF economic forecasts",
	"World Bank development indicators",
	"IPCC climate projections",
	"IEA energy transition scenarios",
}

// Summary condenses the report into the headline numbers stored with a run.
func (r *Report) Summary(files []string) model.RunSummary {
	s := model.RunSummary{Files: files}
	if r.Data == nil {
		return s
	}
	d := r.Data
	s.Projections = len(d.Regional)
	s.Assessments = len(d.Risks) + len(d.Opportunities)

	rg := scenario.ComputeRanges(d.Comparison2050)
	s.Population2050 = [2]float64{round(rg.Population.Min, 2), round(rg.Population.Max, 2)}
	s.GDP2050 = [2]float64{round(rg.GDP.Min, 1), round(rg.GDP.Max, 1)}
	s.HighestRisk, _ = scorer.HighestMeanScenario(d.RiskHeatmap)
	s.TopGrowthRegion = topGrowthRegion(d.Regions)
	return s
}
