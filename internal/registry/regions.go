package registry

import "github.com/sells-group/nss-cli/internal/model"

// DefaultRegions returns the base-year profiles of the 13 administrative
// regions in code order.
func DefaultRegions() []model.Region {
	return []model.Region{
		{
			Code: "SA-01", Name: "Riyadh", NameAR: "الرياض", Capital: "Riyadh",
			Population: 8.9, GDPShare: 50, GrowthFactor: 1.2,
			Diversification: model.DiversificationHigh, WaterStress: model.WaterStressCritical,
			KeySectors: []string{"Government", "Finance", "Technology", "Entertainment"},
			AreaKm2: 404240, Latitude: 24.7136, Longitude: 46.6753,
		},
		{
			Code: "SA-02", Name: "Makkah", NameAR: "مكة المكرمة", Capital: "Makkah",
			Population: 9.1, GDPShare: 21, GrowthFactor: 1.1,
			Diversification: model.DiversificationMedium, WaterStress: model.WaterStressHigh,
			KeySectors: []string{"Tourism", "Trade", "Logistics", "Real Estate"},
			AreaKm2: 153128, Latitude: 21.3891, Longitude: 39.8579,
		},
		{
			Code: "SA-03", Name: "Madinah", NameAR: "المدينة المنورة", Capital: "Madinah",
			Population: 2.3, GDPShare: 4.5, GrowthFactor: 1.05,
			Diversification: model.DiversificationMedium, WaterStress: model.WaterStressHigh,
			KeySectors: []string{"Tourism", "Agriculture", "Industry"},
			AreaKm2: 151990, Latitude: 24.5247, Longitude: 39.5692,
		},
		{
			Code: "SA-04", Name: "Eastern Province", NameAR: "الشرقية", Capital: "Dammam",
			Population: 5.3, GDPShare: 25, GrowthFactor: 0.9,
			Diversification: model.DiversificationLow, WaterStress: model.WaterStressMedium,
			KeySectors: []string{"Oil & Gas", "Petrochemicals", "Manufacturing"},
			AreaKm2: 672522, Latitude: 26.4207, Longitude: 50.0888,
		},
		{
			Code: "SA-05", Name: "Al-Qassim", NameAR: "القصيم", Capital: "Buraidah",
			Population: 1.5, GDPShare: 2.0, GrowthFactor: 0.85,
			Diversification: model.DiversificationLow, WaterStress: model.WaterStressCritical,
			KeySectors: []string{"Agriculture", "Food Processing", "Logistics"},
			AreaKm2: 58046, Latitude: 26.3267, Longitude: 43.9750,
		},
		{
			Code: "SA-06", Name: "Asir", NameAR: "عسير", Capital: "Abha",
			Population: 2.3, GDPShare: 2.5, GrowthFactor: 1.0,
			Diversification: model.DiversificationMedium, WaterStress: model.WaterStressLow,
			KeySectors: []string{"Tourism", "Agriculture", "Hospitality"},
			AreaKm2: 76693, Latitude: 18.2164, Longitude: 42.5053,
		},
		{
			Code: "SA-07", Name: "Tabuk", NameAR: "تبوك", Capital: "Tabuk",
			Population: 1.0, GDPShare: 1.5, GrowthFactor: 2.0,
			Diversification: model.DiversificationHigh, WaterStress: model.WaterStressHigh,
			KeySectors: []string{"NEOM", "Tourism", "Renewable Energy", "Technology"},
			AreaKm2: 136000, Latitude: 28.3838, Longitude: 36.5550,
		},
		{
			Code: "SA-08", Name: "Hail", NameAR: "حائل", Capital: "Hail",
			Population: 0.75, GDPShare: 1.0, GrowthFactor: 0.9,
			Diversification: model.DiversificationLow, WaterStress: model.WaterStressHigh,
			KeySectors: []string{"Agriculture", "Mining", "Trade"},
			AreaKm2: 103887, Latitude: 27.5114, Longitude: 41.6908,
		},
		{
			Code: "SA-09", Name: "Northern Borders", NameAR: "الحدود الشمالية", Capital: "Arar",
			Population: 0.42, GDPShare: 0.8, GrowthFactor: 1.3,
			Diversification: model.DiversificationMedium, WaterStress: model.WaterStressHigh,
			KeySectors: []string{"Mining", "Renewable Energy", "Industry"},
			AreaKm2: 111797, Latitude: 30.9753, Longitude: 41.0381,
		},
		{
			Code: "SA-10", Name: "Jazan", NameAR: "جازان", Capital: "Jazan",
			Population: 1.7, GDPShare: 1.2, GrowthFactor: 1.0,
			Diversification: model.DiversificationMedium, WaterStress: model.WaterStressLow,
			KeySectors: []string{"Agriculture", "Industry", "Tourism"},
			AreaKm2: 11671, Latitude: 16.8892, Longitude: 42.5706,
		},
		{
			Code: "SA-11", Name: "Najran", NameAR: "نجران", Capital: "Najran",
			Population: 0.62, GDPShare: 0.6, GrowthFactor: 0.8,
			Diversification: model.DiversificationLow, WaterStress: model.WaterStressMedium,
			KeySectors: []string{"Agriculture", "Trade", "Mining"},
			AreaKm2: 119000, Latitude: 17.4924, Longitude: 44.1277,
		},
		{
			Code: "SA-12", Name: "Al-Baha", NameAR: "الباحة", Capital: "Al Baha",
			Population: 0.50, GDPShare: 0.4, GrowthFactor: 0.9,
			Diversification: model.DiversificationLow, WaterStress: model.WaterStressLow,
			KeySectors: []string{"Tourism", "Agriculture", "Handicrafts"},
			AreaKm2: 9921, Latitude: 20.0129, Longitude: 41.4677,
		},
		{
			Code: "SA-13", Name: "Al-Jouf", NameAR: "الجوف", Capital: "Sakaka",
			Population: 0.55, GDPShare: 0.8, GrowthFactor: 1.1,
			Diversification: model.DiversificationMedium, WaterStress: model.WaterStressHigh,
			KeySectors: []string{"Agriculture", "Renewable Energy", "Tourism"},
			AreaKm2: 100212, Latitude: 29.9697, Longitude: 40.2064,
		},
	}
}
