package model

import "math"

// Trend is a linear driver clamped toward an optional limit. A positive or
// zero slope treats the limit as a ceiling; a negative slope as a floor.
// Switch replaces the trend entirely once the elapsed years reach AfterYears.
type Trend struct {
	Base   float64      `json:"base" yaml:"base"`
	Slope  float64      `json:"slope" yaml:"slope"`
	Limit  *float64     `json:"limit,omitempty" yaml:"limit,omitempty"`
	Switch *TrendSwitch `json:"switch,omitempty" yaml:"switch,omitempty"`
}

// TrendSwitch is a regime change for a Trend.
type TrendSwitch struct {
	AfterYears int   `json:"after_years" yaml:"after_years"`
	Trend      Trend `json:"trend" yaml:"trend"`
}

// Linear builds an unbounded trend.
func Linear(base, slope float64) Trend {
	return Trend{Base: base, Slope: slope}
}

// Bounded builds a trend clamped at limit.
func Bounded(base, slope, limit float64) Trend {
	return Trend{Base: base, Slope: slope, Limit: &limit}
}

// Then switches to next once afterYears have elapsed.
func (t Trend) Then(afterYears int, next Trend) Trend {
	t.Switch = &TrendSwitch{AfterYears: afterYears, Trend: next}
	return t
}

// At evaluates the trend after the given number of elapsed years.
func (t Trend) At(years int) float64 {
	if t.Switch != nil && years >= t.Switch.AfterYears {
		return t.Switch.Trend.At(years)
	}
	v := t.Base + t.Slope*float64(years)
	if t.Limit == nil {
		return v
	}
	if t.Slope >= 0 {
		return math.Min(v, *t.Limit)
	}
	return math.Max(v, *t.Limit)
}

// Growth is a compound annual rate with an optional later rate.
type Growth struct {
	Rate   float64       `json:"rate" yaml:"rate"`
	Switch *GrowthSwitch `json:"switch,omitempty" yaml:"switch,omitempty"`
}

// GrowthSwitch changes the compounding rate after AfterYears.
type GrowthSwitch struct {
	AfterYears int     `json:"after_years" yaml:"after_years"`
	Rate       float64 `json:"rate" yaml:"rate"`
}

// Factor returns the cumulative multiplier after the given elapsed years.
// Negative years discount back from the base year.
func (g Growth) Factor(years int) float64 {
	if g.Switch == nil || years <= g.Switch.AfterYears {
		return math.Pow(1+g.Rate, float64(years))
	}
	first := math.Pow(1+g.Rate, float64(g.Switch.AfterYears))
	return first * math.Pow(1+g.Switch.Rate, float64(years-g.Switch.AfterYears))
}

// Step is an integer milestone counter: Base plus one every Every years, capped.
type Step struct {
	Base  int `json:"base" yaml:"base"`
	Every int `json:"every" yaml:"every"`
	Cap   int `json:"cap" yaml:"cap"`
}

// At evaluates the counter after the given number of elapsed years.
func (s Step) At(years int) int {
	v := s.Base
	if s.Every > 0 && years > 0 {
		v += years / s.Every
	}
	if s.Cap > 0 && v > s.Cap {
		return s.Cap
	}
	return v
}
