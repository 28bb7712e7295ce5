package model

import "time"

// RunStatus represents the current state of a model run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// RunParams records what a run was asked to compute.
type RunParams struct {
	BaseYear  int          `json:"base_year"`
	Years     []int        `json:"years"`
	Scenarios []ScenarioID `json:"scenarios"`
	Regions   int          `json:"regions"`
	OutputDir string       `json:"output_dir,omitempty"`
}

// RunSummary holds the headline numbers of a finished run.
type RunSummary struct {
	Projections     int        `json:"projections"`
	Assessments     int        `json:"assessments"`
	Population2050  [2]float64 `json:"population_2050_range"`
	GDP2050         [2]float64 `json:"gdp_2050_range"`
	HighestRisk     ScenarioID `json:"highest_risk_scenario,omitempty"`
	TopGrowthRegion string     `json:"top_growth_region,omitempty"`
	Files           []string   `json:"files,omitempty"`
}

// Run represents a single persisted model run.
type Run struct {
	ID        string      `json:"id"`
	Status    RunStatus   `json:"status"`
	Params    RunParams   `json:"params"`
	Summary   *RunSummary `json:"summary,omitempty"`
	Error     string      `json:"error,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// AssessmentKind distinguishes the two scoring rubrics.
type AssessmentKind string

const (
	KindRisk        AssessmentKind = "risk"
	KindOpportunity AssessmentKind = "opportunity"
)

// AssessmentRecord is the flattened, persisted form of an assessment.
type AssessmentRecord struct {
	Kind       AssessmentKind `json:"kind"`
	RegionCode string         `json:"region_code"`
	Region     string         `json:"region"`
	Scenario   ScenarioID     `json:"scenario"`
	Score      float64        `json:"score"`
	Levels     [4]Level       `json:"levels"`
}

// Record flattens a risk assessment for storage.
func (a RiskAssessment) Record() AssessmentRecord {
	return AssessmentRecord{
		Kind:       KindRisk,
		RegionCode: a.RegionCode,
		Region:     a.Region,
		Scenario:   a.Scenario,
		Score:      a.Score,
		Levels:     [4]Level{a.Climate, a.Economic, a.Social, a.Infrastructure},
	}
}

// Record flattens an opportunity assessment for storage.
func (a OpportunityAssessment) Record() AssessmentRecord {
	return AssessmentRecord{
		Kind:       KindOpportunity,
		RegionCode: a.RegionCode,
		Region:     a.Region,
		Scenario:   a.Scenario,
		Score:      a.Score,
		Levels:     [4]Level{a.Economic, a.Innovation, a.Sustainability, a.QualityOfLife},
	}
}
