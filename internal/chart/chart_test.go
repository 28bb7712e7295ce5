package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/nss-cli/internal/model"
)

func TestPopulationSeries(t *testing.T) {
	order := []model.Scenario{
		{ID: model.ScenarioBaseline, Name: "Baseline"},
		{ID: model.ScenarioVision2030, Name: "Vision 2030"},
	}
	paths := map[model.ScenarioID][]model.NationalProjection{
		model.ScenarioBaseline: {
			{Year: 2030, Demographic: model.DemographicProjection{Population: 39.5}},
			{Year: 2050, Demographic: model.DemographicProjection{Population: 45.1}},
		},
	}

	series := PopulationSeries(order, paths)
	require.Len(t, series, 1)
	assert.Equal(t, "Baseline", series[0].Label)
	assert.Equal(t, []int{2030, 2050}, series[0].Years)
	assert.Equal(t, []float64{39.5, 45.1}, series[0].Values)
}

func TestPopulationTrajectories(t *testing.T) {
	file := filepath.Join(t.TempDir(), "population.png")
	series := []Trajectory{
		{Label: "Baseline", Years: []int{2025, 2030, 2050}, Values: []float64{37, 39.5, 45.1}},
		{Label: "Accelerated", Years: []int{2025, 2030, 2050}, Values: []float64{37.3, 42, 55}},
	}

	require.NoError(t, PopulationTrajectories(series, file))
	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPopulationTrajectories_Errors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "population.png")

	err := PopulationTrajectories(nil, file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no trajectories")

	err = PopulationTrajectories([]Trajectory{{Label: "bad", Years: []int{2030}, Values: nil}}, file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 years and 0 values")
}

func TestScoreBars(t *testing.T) {
	h := model.Heatmap{
		Kind:      "risk",
		Regions:   []string{"Riyadh", "Tabuk"},
		Scenarios: []model.ScenarioID{model.ScenarioBaseline, model.ScenarioClimateStress},
		Scores:    [][]float64{{5, 8.13}, {3.75, 7.5}},
	}
	dir := t.TempDir()

	file := filepath.Join(dir, "risk.svg")
	require.NoError(t, ScoreBars(h, model.ScenarioClimateStress, file))
	_, err := os.Stat(file)
	require.NoError(t, err)

	err = ScoreBars(h, model.ScenarioTechDisruption, filepath.Join(dir, "x.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in risk heatmap")

	err = ScoreBars(model.Heatmap{Kind: "opportunity", Scenarios: h.Scenarios}, model.ScenarioBaseline, filepath.Join(dir, "y.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no regions")
}
