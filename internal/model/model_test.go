package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaterStressShift(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from WaterStress
		n    int
		want WaterStress
	}{
		{"no change", WaterStressMedium, 0, WaterStressMedium},
		{"one step", WaterStressMedium, 1, WaterStressHigh},
		{"saturates at extreme", WaterStressCritical, 5, WaterStressExtreme},
		{"saturates at low", WaterStressMedium, -4, WaterStressLow},
		{"unknown unchanged", WaterStress("bogus"), 2, WaterStress("bogus")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.from.Shift(tt.n))
		})
	}
}

func TestWaterStressOrdering(t *testing.T) {
	t.Parallel()

	tiers := WaterStressTiers()
	require.Len(t, tiers, 5)
	for i, tier := range tiers {
		assert.Equal(t, i, tier.Index())
	}
	assert.False(t, WaterStressMedium.Stressed())
	assert.True(t, WaterStressHigh.Stressed())
	assert.True(t, WaterStressExtreme.Stressed())
}

func TestParseTiers(t *testing.T) {
	t.Parallel()

	w, err := ParseWaterStress(" Critical ")
	require.NoError(t, err)
	assert.Equal(t, WaterStressCritical, w)

	_, err = ParseWaterStress("severe")
	assert.Error(t, err)

	d, err := ParseDiversification("HIGH")
	require.NoError(t, err)
	assert.Equal(t, DiversificationHigh, d)

	_, err = ParseDiversification("")
	assert.Error(t, err)
}

func TestLevelPoints(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 4.0, LevelCritical.RiskPoints())
	assert.Equal(t, 1.0, LevelLow.RiskPoints())
	assert.Equal(t, 3.0, LevelCritical.OpportunityPoints())
	assert.Equal(t, 2.0, LevelMedium.OpportunityPoints())
	assert.Equal(t, 0.0, Level("").RiskPoints())
}

func TestRegionGrowthPotential(t *testing.T) {
	t.Parallel()

	tests := []struct {
		factor float64
		want   GrowthPotential
	}{
		{2.0, GrowthPotentialHigh},
		{1.3, GrowthPotentialMedium},
		{1.05, GrowthPotentialMedium},
		{1.0, GrowthPotentialLow},
		{0.8, GrowthPotentialLow},
	}

	for _, tt := range tests {
		r := Region{GrowthFactor: tt.factor}
		assert.Equal(t, tt.want, r.GrowthPotential(), "factor %v", tt.factor)
	}
}

func TestRegionDensity(t *testing.T) {
	t.Parallel()

	r := Region{Population: 1.0, AreaKm2: 100000, KeySectors: []string{"Mining"}}
	assert.InDelta(t, 10.0, r.Density(), 1e-9)
	assert.True(t, r.HasSector("Mining"))
	assert.False(t, r.HasSector("Tourism"))
	assert.Equal(t, 0.0, Region{Population: 1}.Density())
}

func TestTrendAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		trend Trend
		years int
		want  float64
	}{
		{"linear", Linear(5000, 150), 6, 5900},
		{"ceiling not reached", Bounded(86, 0.3, 92), 6, 87.8},
		{"ceiling reached", Bounded(86, 0.3, 92), 26, 92},
		{"floor reached", Bounded(38, -0.8, 20), 26, 20},
		{"floor not reached", Bounded(63, -0.4, 45), 6, 60.6},
		{"before switch", Bounded(11, 0.3, 100).Then(10, Bounded(11, -0.3, 5)), 6, 12.8},
		{"after switch", Bounded(11, 0.3, 100).Then(10, Bounded(11, -0.3, 5)), 16, 6.2},
		{"after switch floor", Bounded(11, 0.3, 100).Then(10, Bounded(11, -0.3, 5)), 26, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, tt.trend.At(tt.years), 1e-9)
		})
	}
}

func TestGrowthFactor(t *testing.T) {
	t.Parallel()

	g := Growth{Rate: 0.03}
	assert.InDelta(t, 1.0, g.Factor(0), 1e-12)
	assert.InDelta(t, 1.03*1.03, g.Factor(2), 1e-12)

	switched := Growth{Rate: 0.02, Switch: &GrowthSwitch{AfterYears: 10, Rate: 0.05}}
	assert.InDelta(t, 1.02*1.02, switched.Factor(2), 1e-12)
	want := 1.2189944199947573 * 1.05 * 1.05 // 1.02^10 · 1.05^2
	assert.InDelta(t, want, switched.Factor(12), 1e-9)
}

func TestStepAt(t *testing.T) {
	t.Parallel()

	s := Step{Base: 1, Every: 5, Cap: 3}
	assert.Equal(t, 1, s.At(1))
	assert.Equal(t, 2, s.At(6))
	assert.Equal(t, 3, s.At(26))
	assert.Equal(t, 1, Step{Base: 1}.At(40))
}

func TestHeatmapLookups(t *testing.T) {
	t.Parallel()

	h := Heatmap{
		Kind:      "risk",
		Regions:   []string{"Riyadh", "Tabuk"},
		Scenarios: []ScenarioID{ScenarioBaseline, ScenarioClimateStress},
		Scores:    [][]float64{{5, 9}, {3, 7}},
	}

	v, ok := h.At("Tabuk", ScenarioClimateStress)
	require.True(t, ok)
	assert.Equal(t, 7.0, v)

	_, ok = h.At("Jazan", ScenarioBaseline)
	assert.False(t, ok)

	assert.Equal(t, 7.0, h.RowMean(0))
	assert.Equal(t, 8.0, h.ColumnMean(1))
	assert.Equal(t, 0.0, h.RowMean(5))
}

func TestAssessmentRecord(t *testing.T) {
	t.Parallel()

	r := RiskAssessment{RegionCode: "SA-01", Region: "Riyadh", Scenario: ScenarioBaseline,
		Climate: LevelMedium, Economic: LevelLow, Social: LevelLow, Infrastructure: LevelHigh, Score: 4.38}
	rec := r.Record()
	assert.Equal(t, KindRisk, rec.Kind)
	assert.Equal(t, LevelHigh, rec.Levels[3])

	o := OpportunityAssessment{Region: "Tabuk", QualityOfLife: LevelHigh}
	assert.Equal(t, KindOpportunity, o.Record().Kind)
	assert.Equal(t, LevelHigh, o.Record().Levels[3])
}

func TestScenarioIsStress(t *testing.T) {
	t.Parallel()

	assert.True(t, Scenario{Category: CategoryStress}.IsStress())
	assert.False(t, Scenario{Category: CategoryCore}.IsStress())
}
