package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/nss-cli/internal/config"
	"github.com/sells-group/nss-cli/internal/geo"
	"github.com/sells-group/nss-cli/internal/projection"
	"github.com/sells-group/nss-cli/internal/registry"
	"github.com/sells-group/nss-cli/internal/scenario"
	"github.com/sells-group/nss-cli/internal/scorer"
	"github.com/sells-group/nss-cli/internal/store"
)

// modelEnv holds the engines every model command works from.
type modelEnv struct {
	Scenarios  *registry.ScenarioRegistry
	Regions    *registry.RegionRegistry
	Modeler    *scenario.Modeler
	Projector  *projection.Projector
	Scorer     *scorer.Scorer
	Boundaries map[string]geo.Boundary
}

// initModel builds the engines from configuration. Scenario and region
// tables fall back to the built-in defaults when no file is configured.
func initModel(ctx context.Context, c *config.Config) (*modelEnv, error) {
	if err := c.Validate("model"); err != nil {
		return nil, err
	}
	if err := scorer.ValidateConfig(c.Scorer); err != nil {
		return nil, err
	}

	scenarios, regions := registry.Defaults()
	var err error
	if c.Model.ScenariosFile != "" {
		scenarios, err = registry.LoadScenariosFromFile(c.Model.ScenariosFile)
		if err != nil {
			return nil, err
		}
	}
	if c.Model.RegionsFile != "" {
		regions, err = registry.LoadRegionsFromFile(ctx, c.Model.RegionsFile, c.Model.RegionsSheet)
		if err != nil {
			return nil, err
		}
	}
	if err := scenarios.Validate(); err != nil {
		return nil, err
	}
	if err := regions.Validate(); err != nil {
		return nil, err
	}

	env := &modelEnv{
		Scenarios: scenarios,
		Regions:   regions,
		Modeler: &scenario.Modeler{
			BaseYear: c.Model.BaseYear,
			Base:     scenario.Base{Population: c.Model.BasePopulation, GDP: c.Model.BaseGDP},
		},
		Projector: projection.New(c.Model.BaseYear, regions, scenarios),
		Scorer:    scorer.New(c.Scorer),
	}

	if c.Model.BoundariesFile != "" {
		env.Boundaries, err = geo.LoadBoundaries(c.Model.BoundariesFile, c.Model.BoundaryField)
		if err != nil {
			return nil, eris.Wrap(err, "load boundaries")
		}
	}

	zap.L().Debug("model ready",
		zap.Int("scenarios", len(scenarios.Scenarios)),
		zap.Int("regions", len(regions.Regions)),
		zap.Int("boundaries", len(env.Boundaries)),
	)
	return env, nil
}

// initStore opens the configured run store and applies migrations.
func initStore(ctx context.Context, c *config.Config) (store.Store, error) {
	if err := c.Validate("store"); err != nil {
		return nil, err
	}
	return store.Open(ctx, c.Store)
}
