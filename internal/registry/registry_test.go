package registry

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/nss-cli/internal/model"
)

func TestDefaultScenarios(t *testing.T) {
	scenarios, _ := Defaults()
	require.NoError(t, scenarios.Validate())

	assert.Len(t, scenarios.Scenarios, 7)
	assert.Len(t, scenarios.Core(), 4)
	assert.Len(t, scenarios.Stress(), 3)
	assert.Equal(t, model.ScenarioBaseline, scenarios.IDs()[0])

	var coreSum float64
	for _, s := range scenarios.Core() {
		coreSum += s.Probability
	}
	assert.InDelta(t, 1.0, coreSum, 1e-9)

	v := scenarios.ByID(model.ScenarioVision2030)
	require.NotNil(t, v)
	assert.InDelta(t, 0.35, v.Probability, 1e-9)
	assert.Nil(t, scenarios.ByID("nope"))
}

func TestDefaultRegions(t *testing.T) {
	_, regions := Defaults()
	require.NoError(t, regions.Validate())

	assert.Len(t, regions.Regions, 13)
	assert.Equal(t, "SA-01", regions.Codes()[0])
	assert.Equal(t, "Al-Jouf", regions.Names()[12])

	var share float64
	for _, r := range regions.Regions {
		share += r.GDPShare
	}
	assert.InDelta(t, 111.3, share, 0.01)

	tabuk, err := regions.Lookup("tabuk")
	require.NoError(t, err)
	assert.Equal(t, "SA-07", tabuk.Code)
	assert.Equal(t, model.GrowthPotentialHigh, tabuk.GrowthPotential())

	byCode, err := regions.Lookup("sa-04")
	require.NoError(t, err)
	assert.Equal(t, "Eastern Province", byCode.Name)

	_, err = regions.Lookup("Atlantis")
	assert.Error(t, err)
}

func TestScenarioSelect(t *testing.T) {
	scenarios, _ := Defaults()

	all, err := scenarios.Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, 7)

	two, err := scenarios.Select([]model.ScenarioID{model.ScenarioClimateStress, model.ScenarioBaseline})
	require.NoError(t, err)
	require.Len(t, two, 2)
	assert.Equal(t, model.ScenarioClimateStress, two[0].ID)

	_, err = scenarios.Select([]model.ScenarioID{"mars_colony"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scenario")
}

func TestScenarioValidateFailures(t *testing.T) {
	tests := []struct {
		name      string
		scenarios []model.Scenario
		want      string
	}{
		{"empty", nil, "no scenarios"},
		{"missing id", []model.Scenario{{Name: "x", Category: model.CategoryStress}}, "scenario id is required"},
		{"duplicate", []model.Scenario{
			{ID: "a", Name: "A", Category: model.CategoryCore, Probability: 1},
			{ID: "a", Name: "A2", Category: model.CategoryStress},
		}, "duplicate scenario id"},
		{"probability range", []model.Scenario{{ID: "a", Name: "A", Category: model.CategoryStress, Probability: 1.5}}, "probability must be between 0 and 1"},
		{"core sum", []model.Scenario{{ID: "a", Name: "A", Category: model.CategoryCore, Probability: 0.5}}, "core probabilities should sum to 1"},
		{"category", []model.Scenario{{ID: "a", Name: "A", Category: "other"}}, "unknown category"},
		{"name", []model.Scenario{{ID: "a", Category: model.CategoryStress}}, "name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewScenarioRegistry(tt.scenarios).Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRegionValidateFailures(t *testing.T) {
	good := DefaultRegions()[0]

	dup := NewRegionRegistry([]model.Region{good, good})
	err := dup.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate region code")

	bad := good
	bad.GrowthFactor = 0
	bad.WaterStress = "parched"
	err = NewRegionRegistry([]model.Region{bad}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "growth_factor must be > 0")
	assert.Contains(t, err.Error(), "unknown water stress tier")

	assert.Error(t, NewRegionRegistry(nil).Validate())
}

func TestScenarioFileRoundTrip(t *testing.T) {
	for _, ext := range []string{".yaml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scenarios"+ext)
			require.NoError(t, WriteScenariosFile(path, DefaultScenarios()))

			reg, err := LoadScenariosFromFile(path)
			require.NoError(t, err)
			require.Len(t, reg.Scenarios, 7)

			et := reg.ByID(model.ScenarioEnergyTransition)
			require.NotNil(t, et)
			require.NotNil(t, et.Economic.GDPGrowth.Switch)
			assert.Equal(t, 10, et.Economic.GDPGrowth.Switch.AfterYears)
			require.NotNil(t, et.Economic.UnemploymentPct.Switch)
			assert.InDelta(t, 5.8, et.Economic.UnemploymentPct.At(26), 1e-9)
			assert.InDelta(t, 5.0, et.Economic.UnemploymentPct.At(36), 1e-9)
			assert.InDelta(t, 20.0, reg.ByID(model.ScenarioBaseline).Economic.OilSharePct.At(26), 1e-9)
		})
	}
}

func TestLoadScenariosFromFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadScenariosFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	txt := filepath.Join(dir, "scenarios.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))
	_, err = LoadScenariosFromFile(txt)
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("scenarios: [ {id: a, probability: 3} ]"), 0o644))
	_, err = LoadScenariosFromFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probability")

	assert.Error(t, WriteScenariosFile(filepath.Join(dir, "out.toml"), nil))
}

const regionsCSV = `region_code,region_name_en,capital,population_2024,gdp_share_pct,growth_factor,diversification,water_stress,key_sectors,area_km2
SA-01,Riyadh,Riyadh,8660885,50,1.2,high,critical,Government;Finance,404240
SA-07,Tabuk,Tabuk,992872,1.5,2.0,High,HIGH,NEOM; Tourism ,136000
`

func TestLoadRegionsFromCSV(t *testing.T) {
	reg, err := LoadRegionsFromCSV(context.Background(), strings.NewReader(regionsCSV))
	require.NoError(t, err)
	require.Len(t, reg.Regions, 2)

	riyadh := reg.ByCode("SA-01")
	require.NotNil(t, riyadh)
	assert.InDelta(t, 8.660885, riyadh.Population, 1e-9)
	assert.Equal(t, model.WaterStressCritical, riyadh.WaterStress)
	assert.Equal(t, []string{"Government", "Finance"}, riyadh.KeySectors)

	tabuk := reg.ByCode("SA-07")
	require.NotNil(t, tabuk)
	assert.Equal(t, model.DiversificationHigh, tabuk.Diversification)
	assert.Equal(t, []string{"NEOM", "Tourism"}, tabuk.KeySectors)
	assert.InDelta(t, 136000, tabuk.AreaKm2, 1e-9)
}

func TestLoadRegionsFromCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want string
	}{
		{"missing columns", "code,name\nSA-01,Riyadh\n", "missing columns"},
		{"bad tier", "code,name,population,gdp_share,growth_factor,diversification,water_stress\nSA-01,Riyadh,8.9,50,1.2,high,scorching\n", "unknown water stress tier"},
		{"bad number", "code,name,population,gdp_share,growth_factor,diversification,water_stress\nSA-01,Riyadh,lots,50,1.2,high,low\n", "parse population"},
		{"header only", "code,name,population,gdp_share,growth_factor,diversification,water_stress\n", "no regions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRegionsFromCSV(context.Background(), strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadRegionsFromXLSX(t *testing.T) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("regions")
	require.NoError(t, err)
	rows := [][]string{
		{"code", "name", "population_millions", "gdp_share_pct", "growth_factor", "diversification", "water_stress", "latitude", "longitude"},
		{"SA-09", "Northern Borders", "0.42", "0.8", "1.3", "medium", "high", "30.9753", "41.0381"},
		{"", "", "", "", "", "", "", "", ""},
		{"SA-12", "Al-Baha", "0.5", "0.4", "0.9", "low", "low", "", ""},
	}
	for _, data := range rows {
		row := sheet.AddRow()
		for _, v := range data {
			row.AddCell().SetString(v)
		}
	}
	path := filepath.Join(t.TempDir(), "regions.xlsx")
	require.NoError(t, f.Save(path))

	reg, err := LoadRegionsFromFile(context.Background(), path, "regions")
	require.NoError(t, err)
	require.Len(t, reg.Regions, 2)
	assert.InDelta(t, 30.9753, reg.Regions[0].Latitude, 1e-9)
	assert.Equal(t, 0.0, reg.Regions[1].Latitude)

	_, err = LoadRegionsFromXLSX(path, "missing")
	assert.Error(t, err)
}

func TestLoadRegionsFromFile_CSVAndUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regions.csv")
	require.NoError(t, os.WriteFile(path, []byte(regionsCSV), 0o644))

	reg, err := LoadRegionsFromFile(context.Background(), path, "")
	require.NoError(t, err)
	assert.Len(t, reg.Regions, 2)

	_, err = LoadRegionsFromFile(context.Background(), filepath.Join(dir, "regions.shp"), "")
	assert.Error(t, err)
}

func TestLoadRegionsFromJSON(t *testing.T) {
	input := `[
		{"code":"sa-07","name":"Tabuk","population_millions":1.0,"gdp_share_pct":3.5,"growth_factor":1.4,"diversification":"high","water_stress":"high","key_sectors":["NEOM"]},
		{"code":"SA-11","name":"Najran","population_millions":0.6,"gdp_share_pct":0.6,"growth_factor":0.8,"diversification":"low","water_stress":"medium"}
	]`

	reg, err := LoadRegionsFromJSON(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, reg.Regions, 2)
	tabuk := reg.ByCode("SA-07")
	require.NotNil(t, tabuk)
	assert.True(t, tabuk.HasSector("NEOM"))
	assert.Equal(t, model.WaterStressMedium, reg.Regions[1].WaterStress)

	_, err = LoadRegionsFromJSON(context.Background(), strings.NewReader(`[{"code":"SA-01","name":"Riyadh","growth_factor":1,"diversification":"high","water_stress":"dry"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown water stress tier")

	_, err = LoadRegionsFromJSON(context.Background(), strings.NewReader(`[{"code":"SA-01","name":"Riyadh","growth_factor":1,"diversification":"average","water_stress":"low"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown diversification tier")

	_, err = LoadRegionsFromJSON(context.Background(), strings.NewReader(`{"regions":[]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode regions json")
}

func TestLoadRegionsFromJSON_TierCase(t *testing.T) {
	input := `[{"code":"SA-01","name":"Riyadh","population_millions":8.7,"gdp_share_pct":50,"growth_factor":1.2,"diversification":" High","water_stress":"Critical"}]`

	reg, err := LoadRegionsFromJSON(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	riyadh := reg.ByCode("SA-01")
	require.NotNil(t, riyadh)
	assert.Equal(t, model.WaterStressCritical, riyadh.WaterStress)
	assert.Equal(t, model.DiversificationHigh, riyadh.Diversification)
}

func TestLoadRegionsFromFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"code":"SA-12","name":"Al-Baha","population_millions":0.5,"gdp_share_pct":0.4,"growth_factor":0.9,"diversification":"low","water_stress":"low"}]`), 0o644))

	reg, err := LoadRegionsFromFile(context.Background(), path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"SA-12"}, reg.Codes())
}
