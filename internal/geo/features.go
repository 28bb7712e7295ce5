package geo

import (
	"math"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/nss-cli/internal/model"
)

// RegionFeatures builds a GeoJSON feature per region. A boundary polygon is
// used when one is known for the region code, otherwise the capital point.
// Projected figures are attached when rows contain the region.
func RegionFeatures(regions []model.Region, rows []model.RegionalProjection, boundaries map[string]Boundary) *geojson.FeatureCollection {
	byCode := make(map[string]model.RegionalProjection, len(rows))
	for _, r := range rows {
		byCode[r.RegionCode] = r
	}

	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(regions))}
	for _, reg := range regions {
		props := map[string]any{
			"code":            reg.Code,
			"name":            reg.Name,
			"name_ar":         reg.NameAR,
			"capital":         reg.Capital,
			"population_2024": reg.Population,
			"gdp_share_2024":  reg.GDPShare,
			"growth_factor":   reg.GrowthFactor,
			"diversification": string(reg.Diversification),
			"water_stress":    string(reg.WaterStress),
		}
		if reg.AreaKm2 > 0 {
			props["area_km2"] = reg.AreaKm2
		}

		if p, ok := byCode[reg.Code]; ok {
			props["scenario"] = string(p.Scenario)
			props["year"] = p.Year
			props["population_millions"] = round2(p.Population)
			props["gdp_share_pct"] = round2(p.GDPSharePct)
			props["urbanization_rate"] = round2(p.UrbanizationPct)
			props["water_stress_level"] = string(p.WaterStress)
			props["investment_priority"] = string(p.InvestmentPriority)
		}

		var g geom.T
		if b, ok := boundaries[reg.Code]; ok && b.Geometry != nil {
			g = b.Geometry
			props["centroid"] = []float64{b.Centroid.X(), b.Centroid.Y()}
		} else {
			g = geom.NewPointFlat(geom.XY, []float64{reg.Longitude, reg.Latitude})
		}

		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         reg.Code,
			Geometry:   g,
			Properties: props,
		})
	}
	return fc
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
