package geo

import (
	"archive/zip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/nss-cli/internal/model"
	"github.com/sells-group/nss-cli/internal/projection"
	"github.com/sells-group/nss-cli/internal/registry"
)

func rows2050(t *testing.T, scenario model.ScenarioID) []model.RegionalProjection {
	t.Helper()
	scenarios, regions := registry.Defaults()
	rows, err := projection.New(registry.BaseYear, regions, scenarios).ProjectAll(scenario, MapYear)
	require.NoError(t, err)
	return rows
}

func TestPopulationDistribution(t *testing.T) {
	points := PopulationDistribution(rows2050(t, model.ScenarioVision2030))
	require.Len(t, points, 13)

	var total float64
	for _, p := range points {
		total += p.SharePct
	}
	assert.InDelta(t, 100, total, 0.1)
	assert.Equal(t, "Riyadh", points[0].Region)
	assert.Equal(t, projection.SizeMajor, points[0].Category)
	assert.InDelta(t, 95, points[0].UrbanizationPct, 1e-9)
}

func TestEconomicCorridors(t *testing.T) {
	rows := []model.RegionalProjection{
		{RegionCode: "SA-01", Region: "Riyadh", GDPSharePct: 55},
		{RegionCode: "SA-05", Region: "Al-Qassim", GDPSharePct: 2.5},
		{RegionCode: "SA-09", Region: "Northern Borders", GDPSharePct: 1.2},
		{RegionCode: "SA-13", Region: "Al-Jouf", GDPSharePct: 1.1},
	}

	corridors := EconomicCorridors(rows)
	require.Len(t, corridors, 5)

	central := corridors[0]
	assert.Equal(t, "Central Corridor", central.Name)
	assert.Equal(t, []string{"Riyadh", "Al-Qassim"}, central.Regions)
	assert.InDelta(t, 57.5, central.GDPSharePct, 1e-9)
	assert.Equal(t, "high", central.InvestmentPriority)

	northern := corridors[3]
	assert.Equal(t, "Northern Development Corridor", northern.Name)
	assert.InDelta(t, 2.3, northern.GDPSharePct, 1e-9)
	assert.Equal(t, "medium", northern.InvestmentPriority)
	assert.Equal(t, "Mining & Renewables", northern.DominantSector)

	assert.Empty(t, corridors[1].Regions)
	assert.Equal(t, "medium", corridors[1].InvestmentPriority)

	// Definitions are not mutated by a projection pass.
	assert.Empty(t, Corridors()[0].Regions)
}

func TestInfrastructure(t *testing.T) {
	tests := []struct {
		scenario model.ScenarioID
		check    func(t *testing.T, m InfrastructureMap)
	}{
		{model.ScenarioBaseline, func(t *testing.T, m InfrastructureMap) {
			assert.Equal(t, RailNetwork{3500, 800, 2700}, m.Rail)
			assert.Equal(t, Airports{4, 12, 150}, m.Airports)
			assert.Equal(t, Ports{8, 35}, m.Ports)
			assert.Equal(t, Renewables{50, 12, 2}, m.Renewable)
			assert.Equal(t, WaterSupply{10, 50}, m.Water)
		}},
		{model.ScenarioAccelerated, func(t *testing.T, m InfrastructureMap) {
			assert.Equal(t, 8000, m.Rail.TotalKm)
			assert.Equal(t, Airports{5, 15, 200}, m.Airports)
			assert.Equal(t, 50, m.Ports.CapacityMTEU)
			assert.Equal(t, 80, m.Renewable.SolarGW)
			assert.Equal(t, 80, m.Water.RecyclingPct)
		}},
		{model.ScenarioVision2030, func(t *testing.T, m InfrastructureMap) {
			assert.Equal(t, 150, m.Airports.CapacityMPPA)
			assert.Equal(t, 50, m.Renewable.SolarGW)
		}},
		{model.ScenarioEnergyTransition, func(t *testing.T, m InfrastructureMap) {
			assert.Equal(t, Renewables{100, 20, 5}, m.Renewable)
			assert.Equal(t, 1200, m.Rail.HighSpeedKm)
		}},
		{model.ScenarioClimateStress, func(t *testing.T, m InfrastructureMap) {
			assert.Equal(t, 15, m.Water.DesalinationMCMDay)
			assert.Equal(t, 2400, m.Rail.FreightKm)
		}},
		{"unknown", func(t *testing.T, m InfrastructureMap) {
			assert.Equal(t, RailNetwork{3500, 800, 2700}, m.Rail)
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.scenario), func(t *testing.T) {
			m := Infrastructure(tt.scenario)
			assert.Equal(t, tt.scenario, m.Scenario)
			tt.check(t, m)
		})
	}
}

func TestBuildMap(t *testing.T) {
	m := BuildMap(model.ScenarioEnergyTransition, rows2050(t, model.ScenarioEnergyTransition))
	assert.Len(t, m.PopulationDistribution, 13)
	assert.Len(t, m.EconomicCorridors, 5)
	assert.Equal(t, 100, m.Infrastructure.Renewable.SolarGW)
}

type shpRecord struct {
	code  string
	parts [][]shp.Point
}

func square(x, y, size float64) []shp.Point {
	return []shp.Point{{X: x, Y: y}, {X: x, Y: y + size}, {X: x + size, Y: y + size}, {X: x + size, Y: y}, {X: x, Y: y}}
}

func writeShapefile(t *testing.T, dir string, records []shpRecord) string {
	t.Helper()
	path := filepath.Join(dir, "regions.shp")
	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{shp.StringField("ISO", 8)}))
	for _, rec := range records {
		poly := shp.Polygon(*shp.NewPolyLine(rec.parts))
		n := w.Write(&poly)
		require.NoError(t, w.WriteAttribute(int(n), 0, rec.code))
	}
	w.Close()

	// go-shp writes the attribute table as "<name>dbf" without the dot.
	require.NoError(t, os.Rename(filepath.Join(dir, "regionsdbf"), filepath.Join(dir, "regions.dbf")))
	return path
}

func TestLoadBoundaries(t *testing.T) {
	path := writeShapefile(t, t.TempDir(), []shpRecord{
		{"sa-01", [][]shp.Point{square(44, 22, 4)}},
		{"SA-07", [][]shp.Point{square(35, 27, 2), square(40, 27, 2)}},
		{"", [][]shp.Point{square(0, 0, 1)}},
	})

	bounds, err := LoadBoundaries(path, "iso")
	require.NoError(t, err)
	require.Len(t, bounds, 2)

	riyadh := bounds["SA-01"]
	assert.Equal(t, "SA-01", riyadh.Code)
	assert.Equal(t, 1, riyadh.Geometry.NumPolygons())
	assert.InDelta(t, 46, riyadh.Centroid.X(), 1e-9)
	assert.InDelta(t, 24, riyadh.Centroid.Y(), 1e-9)

	tabuk := bounds["SA-07"]
	assert.Equal(t, 2, tabuk.Geometry.NumPolygons())
	assert.InDelta(t, 38.5, tabuk.Centroid.X(), 1e-9)
	assert.Equal(t, 4326, tabuk.Geometry.SRID())
}

func TestLoadBoundaries_Errors(t *testing.T) {
	path := writeShapefile(t, t.TempDir(), []shpRecord{{"SA-01", [][]shp.Point{square(0, 0, 1)}}})

	_, err := LoadBoundaries(path, "CODE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "CODE" not found`)

	_, err = LoadBoundaries(filepath.Join(t.TempDir(), "missing.shp"), "ISO")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open shapefile")
}

func zipDir(t *testing.T, dir, zipPath string, exts ...string) {
	t.Helper()
	out, err := os.Create(zipPath)
	require.NoError(t, err)
	defer out.Close() //nolint:errcheck

	zw := zip.NewWriter(out)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		keep := false
		for _, ext := range exts {
			keep = keep || strings.EqualFold(filepath.Ext(e.Name()), ext)
		}
		if !keep {
			continue
		}
		w, err := zw.Create(e.Name())
		require.NoError(t, err)
		f, err := os.Open(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		_, err = io.Copy(w, f)
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}
	require.NoError(t, zw.Close())
}

func TestLoadBoundaries_Zip(t *testing.T) {
	src := t.TempDir()
	writeShapefile(t, src, []shpRecord{{"SA-04", [][]shp.Point{square(48, 24, 2)}}})

	zipPath := filepath.Join(t.TempDir(), "boundaries.zip")
	zipDir(t, src, zipPath, ".shp", ".shx", ".dbf")

	bounds, err := LoadBoundaries(zipPath, "ISO")
	require.NoError(t, err)
	require.Contains(t, bounds, "SA-04")
	assert.InDelta(t, 49, bounds["SA-04"].Centroid.X(), 1e-9)

	noShp := filepath.Join(t.TempDir(), "attrs.zip")
	zipDir(t, src, noShp, ".dbf")
	_, err = LoadBoundaries(noShp, "ISO")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "find .shp file")
}

func TestRegionFeatures(t *testing.T) {
	_, regions := registry.Defaults()
	rows := rows2050(t, model.ScenarioClimateStress)
	bounds := map[string]Boundary{}

	dir := t.TempDir()
	loaded, err := LoadBoundaries(writeShapefile(t, dir, []shpRecord{{"SA-01", [][]shp.Point{square(44, 22, 4)}}}), "ISO")
	require.NoError(t, err)
	bounds["SA-01"] = loaded["SA-01"]

	fc := RegionFeatures(regions.Regions, rows[:1], bounds)
	require.Len(t, fc.Features, 13)

	riyadh := fc.Features[0]
	assert.Equal(t, "SA-01", riyadh.ID)
	assert.Equal(t, "climate_stress", riyadh.Properties["scenario"])
	assert.Equal(t, 2050, riyadh.Properties["year"])
	assert.Equal(t, "extreme", riyadh.Properties["water_stress_level"])
	centroid, ok := riyadh.Properties["centroid"].([]float64)
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{46, 24}, centroid, 1e-9)

	makkah := fc.Features[1]
	assert.NotContains(t, makkah.Properties, "scenario")

	data, err := json.Marshal(fc)
	require.NoError(t, err)

	var decoded struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string          `json:"type"`
				Coordinates json.RawMessage `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "FeatureCollection", decoded.Type)
	assert.Equal(t, "MultiPolygon", decoded.Features[0].Geometry.Type)
	assert.Equal(t, "Point", decoded.Features[1].Geometry.Type)
	assert.Equal(t, "مكة المكرمة", decoded.Features[1].Properties["name_ar"])
}
