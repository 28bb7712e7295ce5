// Package registry holds the scenario table and regional profiles the
// projection engine runs against.
package registry

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/nss-cli/internal/model"
)

// ScenarioRegistry is an ordered, indexed collection of scenarios.
type ScenarioRegistry struct {
	Scenarios []model.Scenario
	byID      map[model.ScenarioID]*model.Scenario
}

// NewScenarioRegistry indexes scenarios by ID, preserving input order.
func NewScenarioRegistry(scenarios []model.Scenario) *ScenarioRegistry {
	r := &ScenarioRegistry{
		Scenarios: scenarios,
		byID:      make(map[model.ScenarioID]*model.Scenario, len(scenarios)),
	}
	for i := range r.Scenarios {
		s := &r.Scenarios[i]
		if _, dup := r.byID[s.ID]; !dup {
			r.byID[s.ID] = s
		}
	}
	return r
}

// ByID returns the scenario with the given ID, or nil if not found.
func (r *ScenarioRegistry) ByID(id model.ScenarioID) *model.Scenario {
	return r.byID[id]
}

// Get is ByID with an explicit lookup error.
func (r *ScenarioRegistry) Get(id model.ScenarioID) (model.Scenario, error) {
	s := r.byID[id]
	if s == nil {
		return model.Scenario{}, eris.Errorf("registry: unknown scenario %q", id)
	}
	return *s, nil
}

// Select resolves a list of IDs in the given order. An empty list selects all.
func (r *ScenarioRegistry) Select(ids []model.ScenarioID) ([]model.Scenario, error) {
	if len(ids) == 0 {
		return append([]model.Scenario(nil), r.Scenarios...), nil
	}
	out := make([]model.Scenario, 0, len(ids))
	for _, id := range ids {
		s, err := r.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// IDs returns scenario IDs in registry order.
func (r *ScenarioRegistry) IDs() []model.ScenarioID {
	ids := make([]model.ScenarioID, len(r.Scenarios))
	for i, s := range r.Scenarios {
		ids[i] = s.ID
	}
	return ids
}

// Core returns the core (non-stress) scenarios.
func (r *ScenarioRegistry) Core() []model.Scenario {
	return r.filter(model.CategoryCore)
}

// Stress returns the stress-test scenarios.
func (r *ScenarioRegistry) Stress() []model.Scenario {
	return r.filter(model.CategoryStress)
}

func (r *ScenarioRegistry) filter(c model.Category) []model.Scenario {
	var out []model.Scenario
	for _, s := range r.Scenarios {
		if s.Category == c {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks that the table is internally consistent: unique non-empty
// IDs, names present, probabilities in [0,1] and core probabilities summing
// to 1.
func (r *ScenarioRegistry) Validate() error {
	var errs []string
	if len(r.Scenarios) == 0 {
		errs = append(errs, "no scenarios")
	}

	seen := make(map[model.ScenarioID]bool, len(r.Scenarios))
	var coreSum float64
	var coreCount int
	for _, s := range r.Scenarios {
		if s.ID == "" {
			errs = append(errs, "scenario id is required")
			continue
		}
		if seen[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate scenario id %q", s.ID))
		}
		seen[s.ID] = true
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Sprintf("%s: name is required", s.ID))
		}
		if s.Probability < 0 || s.Probability > 1 {
			errs = append(errs, fmt.Sprintf("%s: probability must be between 0 and 1", s.ID))
		}
		switch s.Category {
		case model.CategoryCore:
			coreSum += s.Probability
			coreCount++
		case model.CategoryStress:
		default:
			errs = append(errs, fmt.Sprintf("%s: unknown category %q", s.ID, s.Category))
		}
		if s.Demographic.SaudiShare < 0 || s.Demographic.SaudiShare > 1 {
			errs = append(errs, fmt.Sprintf("%s: saudi_share must be between 0 and 1", s.ID))
		}
	}

	if coreCount > 0 && math.Abs(coreSum-1) > 0.01 {
		errs = append(errs, fmt.Sprintf("core probabilities should sum to 1, got %.2f", coreSum))
	}

	if len(errs) > 0 {
		return eris.Errorf("registry: scenario validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// RegionRegistry is an ordered, indexed collection of regional profiles.
type RegionRegistry struct {
	Regions []model.Region
	byCode  map[string]*model.Region
	byName  map[string]*model.Region
}

// NewRegionRegistry indexes regions by code and by case-folded name.
func NewRegionRegistry(regions []model.Region) *RegionRegistry {
	r := &RegionRegistry{
		Regions: regions,
		byCode:  make(map[string]*model.Region, len(regions)),
		byName:  make(map[string]*model.Region, len(regions)),
	}
	for i := range r.Regions {
		reg := &r.Regions[i]
		if _, dup := r.byCode[reg.Code]; !dup {
			r.byCode[reg.Code] = reg
		}
		key := strings.ToLower(reg.Name)
		if _, dup := r.byName[key]; !dup {
			r.byName[key] = reg
		}
	}
	return r
}

// ByCode returns the region with the given code, or nil if not found.
func (r *RegionRegistry) ByCode(code string) *model.Region {
	return r.byCode[code]
}

// Lookup resolves a region by code or, failing that, by name.
func (r *RegionRegistry) Lookup(key string) (model.Region, error) {
	if reg := r.byCode[strings.ToUpper(strings.TrimSpace(key))]; reg != nil {
		return *reg, nil
	}
	if reg := r.byName[strings.ToLower(strings.TrimSpace(key))]; reg != nil {
		return *reg, nil
	}
	return model.Region{}, eris.Errorf("registry: unknown region %q", key)
}

// Codes returns region codes in registry order.
func (r *RegionRegistry) Codes() []string {
	codes := make([]string, len(r.Regions))
	for i, reg := range r.Regions {
		codes[i] = reg.Code
	}
	return codes
}

// Names returns region names in registry order.
func (r *RegionRegistry) Names() []string {
	names := make([]string, len(r.Regions))
	for i, reg := range r.Regions {
		names[i] = reg.Name
	}
	return names
}

// Validate checks region profiles for missing or out-of-range attributes.
func (r *RegionRegistry) Validate() error {
	var errs []string
	if len(r.Regions) == 0 {
		errs = append(errs, "no regions")
	}

	seen := make(map[string]bool, len(r.Regions))
	for _, reg := range r.Regions {
		if reg.Code == "" {
			errs = append(errs, fmt.Sprintf("%q: code is required", reg.Name))
			continue
		}
		if seen[reg.Code] {
			errs = append(errs, fmt.Sprintf("duplicate region code %q", reg.Code))
		}
		seen[reg.Code] = true
		if reg.Name == "" {
			errs = append(errs, fmt.Sprintf("%s: name is required", reg.Code))
		}
		if reg.Population < 0 {
			errs = append(errs, fmt.Sprintf("%s: population must be >= 0", reg.Code))
		}
		if reg.GDPShare < 0 || reg.GDPShare > 100 {
			errs = append(errs, fmt.Sprintf("%s: gdp_share_pct must be between 0 and 100", reg.Code))
		}
		if reg.GrowthFactor <= 0 {
			errs = append(errs, fmt.Sprintf("%s: growth_factor must be > 0", reg.Code))
		}
		if reg.WaterStress.Index() < 0 {
			errs = append(errs, fmt.Sprintf("%s: unknown water stress tier %q", reg.Code, reg.WaterStress))
		}
		if _, err := model.ParseDiversification(string(reg.Diversification)); err != nil {
			errs = append(errs, fmt.Sprintf("%s: unknown diversification %q", reg.Code, reg.Diversification))
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("registry: region validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Defaults returns registries populated with the built-in tables.
func Defaults() (*ScenarioRegistry, *RegionRegistry) {
	return NewScenarioRegistry(DefaultScenarios()), NewRegionRegistry(DefaultRegions())
}
