package model

// RiskAssessment scores one region under one scenario on the risk rubric.
type RiskAssessment struct {
	RegionCode           string     `json:"region_code"`
	Region               string     `json:"region"`
	Scenario             ScenarioID `json:"scenario"`
	Climate              Level      `json:"climate_risk"`
	Economic             Level      `json:"economic_risk"`
	Social               Level      `json:"social_risk"`
	Infrastructure       Level      `json:"infrastructure_risk"`
	Score                float64    `json:"overall_risk_score"`
	Vulnerabilities      []string   `json:"key_vulnerabilities"`
	MitigationPriorities []string   `json:"mitigation_priorities"`
}

// OpportunityAssessment scores one region under one scenario on the opportunity rubric.
type OpportunityAssessment struct {
	RegionCode       string     `json:"region_code"`
	Region           string     `json:"region"`
	Scenario         ScenarioID `json:"scenario"`
	Economic         Level      `json:"economic_opportunity"`
	Innovation       Level      `json:"innovation_potential"`
	Sustainability   Level      `json:"sustainability_potential"`
	QualityOfLife    Level      `json:"quality_of_life_potential"`
	Score            float64    `json:"overall_opportunity_score"`
	KeyOpportunities []string   `json:"key_opportunities"`
	Investments      []string   `json:"investment_recommendations"`
}

// Heatmap is a region-by-scenario score matrix. Rows follow Regions and
// columns follow Scenarios.
type Heatmap struct {
	Kind      string       `json:"kind"`
	Regions   []string     `json:"regions"`
	Scenarios []ScenarioID `json:"scenarios"`
	Scores    [][]float64  `json:"scores"`
}

// At returns the score for a region/scenario pair and whether it exists.
func (h Heatmap) At(region string, scenario ScenarioID) (float64, bool) {
	r, c := -1, -1
	for i, name := range h.Regions {
		if name == region {
			r = i
			break
		}
	}
	for j, id := range h.Scenarios {
		if id == scenario {
			c = j
			break
		}
	}
	if r < 0 || c < 0 {
		return 0, false
	}
	return h.Scores[r][c], true
}

// RowMean returns the mean score of a region across scenarios.
func (h Heatmap) RowMean(row int) float64 {
	if row < 0 || row >= len(h.Scores) || len(h.Scores[row]) == 0 {
		return 0
	}
	var sum float64
	for _, v := range h.Scores[row] {
		sum += v
	}
	return sum / float64(len(h.Scores[row]))
}

// ColumnMean returns the mean score of a scenario across regions.
func (h Heatmap) ColumnMean(col int) float64 {
	if col < 0 || col >= len(h.Scenarios) || len(h.Scores) == 0 {
		return 0
	}
	var sum float64
	for _, row := range h.Scores {
		sum += row[col]
	}
	return sum / float64(len(h.Scores))
}

// Highlight is a region/scenario pair whose score crossed the threshold.
type Highlight struct {
	Region   string     `json:"region"`
	Scenario ScenarioID `json:"scenario"`
	Score    float64    `json:"score"`
}
