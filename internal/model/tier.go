package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// WaterStress is an ordered water stress tier.
type WaterStress string

const (
	WaterStressLow      WaterStress = "low"
	WaterStressMedium   WaterStress = "medium"
	WaterStressHigh     WaterStress = "high"
	WaterStressCritical WaterStress = "critical"
	WaterStressExtreme  WaterStress = "extreme"
)

// waterStressOrder lists tiers from least to most stressed.
var waterStressOrder = []WaterStress{
	WaterStressLow,
	WaterStressMedium,
	WaterStressHigh,
	WaterStressCritical,
	WaterStressExtreme,
}

// WaterStressTiers returns all tiers in ascending order.
func WaterStressTiers() []WaterStress {
	out := make([]WaterStress, len(waterStressOrder))
	copy(out, waterStressOrder)
	return out
}

// Index returns the ordinal position of the tier, or -1 if unknown.
func (w WaterStress) Index() int {
	for i, t := range waterStressOrder {
		if t == w {
			return i
		}
	}
	return -1
}

// Shift moves the tier n steps up the scale, saturating at extreme and low.
func (w WaterStress) Shift(n int) WaterStress {
	idx := w.Index()
	if idx < 0 {
		return w
	}
	idx += n
	if idx >= len(waterStressOrder) {
		idx = len(waterStressOrder) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return waterStressOrder[idx]
}

// Stressed reports whether the tier is high or worse.
func (w WaterStress) Stressed() bool {
	return w.Index() >= WaterStressHigh.Index()
}

// ParseWaterStress normalizes and validates a tier name.
func ParseWaterStress(s string) (WaterStress, error) {
	w := WaterStress(strings.ToLower(strings.TrimSpace(s)))
	if w.Index() < 0 {
		return "", eris.Errorf("model: unknown water stress tier %q", s)
	}
	return w, nil
}

// Diversification describes how diversified a region's economy is.
type Diversification string

const (
	DiversificationLow    Diversification = "low"
	DiversificationMedium Diversification = "medium"
	DiversificationHigh   Diversification = "high"
)

// ParseDiversification normalizes and validates a diversification tier.
func ParseDiversification(s string) (Diversification, error) {
	d := Diversification(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DiversificationLow, DiversificationMedium, DiversificationHigh:
		return d, nil
	}
	return "", eris.Errorf("model: unknown diversification tier %q", s)
}

// GrowthPotential is the tier derived from a region's growth factor.
type GrowthPotential string

const (
	GrowthPotentialLow    GrowthPotential = "low"
	GrowthPotentialMedium GrowthPotential = "medium"
	GrowthPotentialHigh   GrowthPotential = "high"
)

// Level is a qualitative assessment grade.
type Level string

const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// RiskPoints maps a level onto the 1-4 risk lookup scale.
func (l Level) RiskPoints() float64 {
	switch l {
	case LevelCritical:
		return 4
	case LevelHigh:
		return 3
	case LevelMedium:
		return 2
	case LevelLow:
		return 1
	}
	return 0
}

// OpportunityPoints maps a level onto the 1-3 opportunity lookup scale.
// Critical has no meaning for opportunities and counts as high.
func (l Level) OpportunityPoints() float64 {
	switch l {
	case LevelHigh, LevelCritical:
		return 3
	case LevelMedium:
		return 2
	case LevelLow:
		return 1
	}
	return 0
}

// InvestmentPriority ranks a region's call on capital under a scenario.
type InvestmentPriority string

const (
	PriorityStrategic   InvestmentPriority = "strategic"
	PriorityHigh        InvestmentPriority = "high"
	PriorityMedium      InvestmentPriority = "medium"
	PriorityMaintenance InvestmentPriority = "maintenance"
)
