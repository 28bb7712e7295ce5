package model

// Region holds the base-year profile of a first-level administrative region.
type Region struct {
	Code            string          `json:"code" yaml:"code"`
	Name            string          `json:"name" yaml:"name"`
	NameAR          string          `json:"name_ar,omitempty" yaml:"name_ar"`
	Capital         string          `json:"capital,omitempty" yaml:"capital"`
	Population      float64         `json:"population_millions" yaml:"population_millions"` // base year, millions
	GDPShare        float64         `json:"gdp_share_pct" yaml:"gdp_share_pct"`             // base year, % of national GDP
	GrowthFactor    float64         `json:"growth_factor" yaml:"growth_factor"`
	Diversification Diversification `json:"diversification" yaml:"diversification"`
	WaterStress     WaterStress     `json:"water_stress" yaml:"water_stress"`
	KeySectors      []string        `json:"key_sectors,omitempty" yaml:"key_sectors"`
	AreaKm2         float64         `json:"area_km2,omitempty" yaml:"area_km2"`
	Latitude        float64         `json:"latitude,omitempty" yaml:"latitude"`
	Longitude       float64         `json:"longitude,omitempty" yaml:"longitude"`
}

// GrowthPotential tiers the region by its growth factor.
func (r Region) GrowthPotential() GrowthPotential {
	switch {
	case r.GrowthFactor > 1.3:
		return GrowthPotentialHigh
	case r.GrowthFactor > 1.0:
		return GrowthPotentialMedium
	default:
		return GrowthPotentialLow
	}
}

// Density returns base-year inhabitants per km², or 0 when area is unknown.
func (r Region) Density() float64 {
	if r.AreaKm2 <= 0 {
		return 0
	}
	return r.Population * 1e6 / r.AreaKm2
}

// HasSector reports whether the region lists the given key sector.
func (r Region) HasSector(sector string) bool {
	for _, s := range r.KeySectors {
		if s == sector {
			return true
		}
	}
	return false
}
