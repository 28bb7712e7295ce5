// Package store persists model runs with their regional projections and
// assessments.
package store

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/nss-cli/internal/config"
	"github.com/sells-group/nss-cli/internal/model"
)

// ErrNotFound is returned (wrapped) when a run does not exist.
var ErrNotFound = eris.New("store: not found")

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// ProjectionFilter narrows ListProjections. Zero fields match everything.
type ProjectionFilter struct {
	Scenario   model.ScenarioID `json:"scenario,omitempty"`
	Year       int              `json:"year,omitempty"`
	RegionCode string           `json:"region_code,omitempty"`
}

// Store defines the persistence interface for model runs.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, params model.RunParams) (*model.Run, error)
	CompleteRun(ctx context.Context, runID string, summary model.RunSummary) error
	FailRun(ctx context.Context, runID string, cause error) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	// Results
	SaveProjections(ctx context.Context, runID string, rows []model.RegionalProjection) (int64, error)
	ListProjections(ctx context.Context, runID string, filter ProjectionFilter) ([]model.RegionalProjection, error)
	SaveAssessments(ctx context.Context, runID string, recs []model.AssessmentRecord) (int64, error)
	ListAssessments(ctx context.Context, runID string, kind model.AssessmentKind) ([]model.AssessmentRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open connects to the configured backend and applies migrations.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Driver {
	case "sqlite":
		s, err = NewSQLite(cfg.DatabaseURL)
	case "postgres":
		s, err = NewPostgres(ctx, cfg.DatabaseURL, &PoolConfig{
			MaxConns: int32(cfg.MaxConns), //nolint:gosec
			MinConns: int32(cfg.MinConns), //nolint:gosec
		})
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close() //nolint:errcheck
		return nil, err
	}
	return s, nil
}

const defaultListLimit = 100

var (
	projectionColumns = []string{
		"run_id", "scenario", "region_code", "year", "region", "population",
		"gdp_share_pct", "employment_growth_pct", "urbanization_pct",
		"water_stress", "investment_priority",
	}
	assessmentColumns = []string{
		"run_id", "kind", "scenario", "region_code", "region", "score", "levels",
	}
)

func projectionValues(runID string, p model.RegionalProjection) []any {
	return []any{
		runID, string(p.Scenario), p.RegionCode, p.Year, p.Region, p.Population,
		p.GDPSharePct, p.EmploymentGrowth, p.UrbanizationPct,
		string(p.WaterStress), string(p.InvestmentPriority),
	}
}

func assessmentValues(runID string, r model.AssessmentRecord) ([]any, error) {
	levels, err := json.Marshal(r.Levels)
	if err != nil {
		return nil, eris.Wrap(err, "store: marshal levels")
	}
	return []any{runID, string(r.Kind), string(r.Scenario), r.RegionCode, r.Region, r.Score, string(levels)}, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanProjection(row scannable) (model.RegionalProjection, error) {
	var (
		p                    model.RegionalProjection
		runID                string
		scenario, ws, invest string
	)
	err := row.Scan(&runID, &scenario, &p.RegionCode, &p.Year, &p.Region, &p.Population,
		&p.GDPSharePct, &p.EmploymentGrowth, &p.UrbanizationPct, &ws, &invest)
	if err != nil {
		return p, eris.Wrap(err, "store: scan projection")
	}
	p.Scenario = model.ScenarioID(scenario)
	p.WaterStress = model.WaterStress(ws)
	p.InvestmentPriority = model.InvestmentPriority(invest)
	return p, nil
}

func scanAssessment(row scannable) (model.AssessmentRecord, error) {
	var (
		r                         model.AssessmentRecord
		runID, kind, scen, levels string
	)
	if err := row.Scan(&runID, &kind, &scen, &r.RegionCode, &r.Region, &r.Score, &levels); err != nil {
		return r, eris.Wrap(err, "store: scan assessment")
	}
	r.Kind = model.AssessmentKind(kind)
	r.Scenario = model.ScenarioID(scen)
	if err := json.Unmarshal([]byte(levels), &r.Levels); err != nil {
		return r, eris.Wrap(err, "store: unmarshal levels")
	}
	return r, nil
}

func failMessage(cause error) string {
	if cause == nil {
		return "unknown error"
	}
	return cause.Error()
}

func columnList(cols []string) string {
	return strings.Join(cols, ", ")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
