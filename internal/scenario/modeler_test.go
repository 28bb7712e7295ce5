package scenario

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/nss-cli/internal/model"
	"github.com/sells-group/nss-cli/internal/registry"
)

func scenarioByID(t *testing.T, id model.ScenarioID) model.Scenario {
	t.Helper()
	reg := registry.NewScenarioRegistry(registry.DefaultScenarios())
	s, err := reg.Get(id)
	require.NoError(t, err)
	return s
}

func TestProjectBaseline2030(t *testing.T) {
	m := NewModeler()
	p := m.Project(scenarioByID(t, model.ScenarioBaseline), 2030)

	pop := 36.4 * math.Pow(1.018, 6)
	gdp := 1108 * math.Pow(1.03, 6)

	assert.Equal(t, model.ScenarioBaseline, p.Scenario)
	assert.InDelta(t, pop, p.Demographic.Population, 1e-9)
	assert.InDelta(t, pop*0.66, p.Demographic.Saudi, 1e-9)
	assert.InDelta(t, pop*0.34, p.Demographic.Expat, 1e-9)
	assert.InDelta(t, 87.8, p.Demographic.UrbanPct, 1e-9)
	assert.InDelta(t, 25.9, p.Demographic.RiyadhSharePct, 1e-9)
	assert.InDelta(t, 60.6, p.Demographic.YouthSharePct, 1e-9)

	assert.InDelta(t, gdp, p.Economic.GDP, 1e-9)
	assert.InDelta(t, gdp*1e9/(pop*1e6), p.Economic.GDPPerCapita, 1e-6)
	assert.InDelta(t, 33.2, p.Economic.OilSharePct, 1e-9)
	assert.InDelta(t, 9.8, p.Economic.UnemploymentPct, 1e-9)

	assert.InDelta(t, 5900, p.Spatial.UrbanizedAreaKm2, 1e-9)
	assert.Equal(t, 2, p.Spatial.NewCities)
	assert.InDelta(t, 14, p.Spatial.RenewableGW, 1e-9)
	assert.InDelta(t, 1680, p.Spatial.RailKm, 1e-9)
	assert.InDelta(t, 3100, p.Spatial.DesalinationMCM, 1e-9)
}

func TestProjectBoundsAndSwitches(t *testing.T) {
	m := NewModeler()

	baseline := m.Project(scenarioByID(t, model.ScenarioBaseline), 2050)
	assert.InDelta(t, 92, baseline.Demographic.UrbanPct, 1e-9)
	assert.InDelta(t, 20, baseline.Economic.OilSharePct, 1e-9)
	assert.Equal(t, 3, baseline.Spatial.NewCities)

	energy := scenarioByID(t, model.ScenarioEnergyTransition)
	p2030 := m.Project(energy, 2030)
	assert.InDelta(t, 1108*math.Pow(1.02, 6), p2030.Economic.GDP, 1e-9)
	assert.InDelta(t, 11+0.3*6, p2030.Economic.UnemploymentPct, 1e-9)

	p2040 := m.Project(energy, 2040)
	assert.InDelta(t, 1108*math.Pow(1.02, 10)*math.Pow(1.05, 6), p2040.Economic.GDP, 1e-6)
	assert.InDelta(t, 11-0.2*16, p2040.Economic.UnemploymentPct, 1e-9)
	assert.InDelta(t, 5, p2040.Economic.OilSharePct, 1e-9)

	climate := m.Project(scenarioByID(t, model.ScenarioClimateStress), 2050)
	assert.InDelta(t, 15, climate.Economic.UnemploymentPct, 1e-9)
	assert.InDelta(t, 2.7, climate.Spatial.ProtectedAreaPct, 1e-9)

	tech := scenarioByID(t, model.ScenarioTechDisruption)
	assert.InDelta(t, 12.8, m.Project(tech, 2030).Economic.UnemploymentPct, 1e-9)
	assert.InDelta(t, 5.0, m.Project(tech, 2050).Economic.UnemploymentPct, 1e-9)
}

func TestProjectBaseYearIsIdentity(t *testing.T) {
	m := NewModeler()
	for _, s := range registry.DefaultScenarios() {
		p := m.Project(s, 2024)
		assert.InDelta(t, 36.4, p.Demographic.Population, 1e-9, string(s.ID))
		assert.InDelta(t, 1108, p.Economic.GDP, 1e-9, string(s.ID))
	}
}

func TestPathSortsYears(t *testing.T) {
	m := NewModeler()
	path := m.Path(scenarioByID(t, model.ScenarioVision2030), []int{2050, 2025, 2040, 2030})
	require.Len(t, path, 4)
	for i, y := range []int{2025, 2030, 2040, 2050} {
		assert.Equal(t, y, path[i].Year)
	}
	assert.Less(t, path[0].Demographic.Population, path[3].Demographic.Population)
}

func TestCompare(t *testing.T) {
	m := NewModeler()
	rows := m.Compare(registry.DefaultScenarios(), 2050)
	require.Len(t, rows, 7)

	assert.Equal(t, model.ScenarioBaseline, rows[0].Scenario)
	assert.Equal(t, "Baseline (Current Trends)", rows[0].Name)
	assert.InDelta(t, 0.30, rows[0].Probability, 1e-9)

	r := ComputeRanges(rows)
	// Climate stress grows slowest, accelerated fastest.
	assert.InDelta(t, 36.4*math.Pow(1.010, 26), r.Population.Min, 1e-9)
	assert.InDelta(t, 36.4*math.Pow(1.025, 26), r.Population.Max, 1e-9)
	assert.InDelta(t, 1108*math.Pow(1.015, 26), r.GDP.Min, 1e-6)
	assert.InDelta(t, 1108*math.Pow(1.07, 26), r.GDP.Max, 1e-6)

	assert.Equal(t, Ranges{}, ComputeRanges(nil))
}

func TestInterpolate(t *testing.T) {
	m := NewModeler()
	s := scenarioByID(t, model.ScenarioBaseline)
	path := m.Path(s, registry.MilestoneYears)

	mid, err := Interpolate(path, 2035)
	require.NoError(t, err)
	p30 := m.Project(s, 2030)
	p40 := m.Project(s, 2040)
	assert.Equal(t, 2035, mid.Year)
	assert.InDelta(t, (p30.Demographic.Population+p40.Demographic.Population)/2, mid.Demographic.Population, 1e-9)
	assert.InDelta(t, (p30.Economic.GDP+p40.Economic.GDP)/2, mid.Economic.GDP, 1e-9)
	assert.Equal(t, p30.Spatial.NewCities, mid.Spatial.NewCities)

	exact, err := Interpolate(path, 2040)
	require.NoError(t, err)
	assert.InDelta(t, p40.Demographic.Population, exact.Demographic.Population, 1e-9)

	before, err := Interpolate(path, 2020)
	require.NoError(t, err)
	assert.Equal(t, 2020, before.Year)
	assert.InDelta(t, path[0].Demographic.Population, before.Demographic.Population, 1e-9)

	after, err := Interpolate(path, 2060)
	require.NoError(t, err)
	assert.InDelta(t, path[3].Economic.GDP, after.Economic.GDP, 1e-9)

	_, err = Interpolate(nil, 2030)
	assert.Error(t, err)
}

func TestExpected(t *testing.T) {
	m := NewModeler()
	reg := registry.NewScenarioRegistry(registry.DefaultScenarios())

	core, err := m.Expected(reg.Core(), 2050)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, core.TotalWeight, 1e-9)

	var want float64
	for _, s := range reg.Core() {
		want += s.Probability * m.Project(s, 2050).Demographic.Population
	}
	assert.InDelta(t, want, core.Population, 1e-9)

	// Stress weights sum to 0.6 and are renormalized.
	stress, err := m.Expected(reg.Stress(), 2050)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, stress.TotalWeight, 1e-9)
	r := ComputeRanges(m.Compare(reg.Stress(), 2050))
	assert.GreaterOrEqual(t, stress.GDP, r.GDP.Min)
	assert.LessOrEqual(t, stress.GDP, r.GDP.Max)

	_, err = m.Expected([]model.Scenario{{ID: "zero"}}, 2050)
	assert.Error(t, err)
}
