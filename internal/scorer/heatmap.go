package scorer

import (
	"sort"

	"github.com/sells-group/nss-cli/internal/model"
)

// RiskHeatmap scores every region under every scenario on the risk rubric.
func (s *Scorer) RiskHeatmap(regions []model.Region, scenarios []model.ScenarioID) model.Heatmap {
	return buildHeatmap(string(model.KindRisk), regions, scenarios, func(r model.Region, sc model.ScenarioID) float64 {
		return s.Risk(r, sc).Score
	})
}

// OpportunityHeatmap scores every region under every scenario on the
// opportunity rubric.
func (s *Scorer) OpportunityHeatmap(regions []model.Region, scenarios []model.ScenarioID) model.Heatmap {
	return buildHeatmap(string(model.KindOpportunity), regions, scenarios, func(r model.Region, sc model.ScenarioID) float64 {
		return s.Opportunity(r, sc).Score
	})
}

func buildHeatmap(kind string, regions []model.Region, scenarios []model.ScenarioID, score func(model.Region, model.ScenarioID) float64) model.Heatmap {
	h := model.Heatmap{
		Kind:      kind,
		Regions:   make([]string, len(regions)),
		Scenarios: append([]model.ScenarioID(nil), scenarios...),
		Scores:    make([][]float64, len(regions)),
	}
	for i, r := range regions {
		h.Regions[i] = r.Name
		h.Scores[i] = make([]float64, len(scenarios))
		for j, sc := range scenarios {
			h.Scores[i][j] = score(r, sc)
		}
	}
	return h
}

// Highlights returns cells scoring at or above threshold, highest first.
// Ties keep region-major order. A limit <= 0 returns every match.
func Highlights(h model.Heatmap, threshold float64, limit int) []model.Highlight {
	var out []model.Highlight
	for i, row := range h.Scores {
		for j, v := range row {
			if v >= threshold {
				out = append(out, model.Highlight{Region: h.Regions[i], Scenario: h.Scenarios[j], Score: v})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Highlights applies the configured threshold and top-N to a heatmap.
func (s *Scorer) Highlights(h model.Heatmap) []model.Highlight {
	return Highlights(h, s.cfg.HighlightThreshold, s.cfg.TopN)
}

// HighestMeanScenario returns the scenario column with the highest mean score.
func HighestMeanScenario(h model.Heatmap) (model.ScenarioID, float64) {
	var best model.ScenarioID
	bestMean := -1.0
	for j, id := range h.Scenarios {
		if m := h.ColumnMean(j); m > bestMean {
			best, bestMean = id, m
		}
	}
	if bestMean < 0 {
		return "", 0
	}
	return best, bestMean
}
