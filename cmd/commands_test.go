//go:build !integration

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/nss-cli/internal/config"
	"github.com/sells-group/nss-cli/internal/model"
	"github.com/sells-group/nss-cli/internal/projection"
	"github.com/sells-group/nss-cli/internal/registry"
	"github.com/sells-group/nss-cli/internal/report"
	"github.com/sells-group/nss-cli/internal/scenario"
	"github.com/sells-group/nss-cli/internal/scorer"
	"github.com/sells-group/nss-cli/internal/store"
)

func testEnv(t *testing.T) *modelEnv {
	t.Helper()
	scenarios, regions := registry.Defaults()
	return &modelEnv{
		Scenarios: scenarios,
		Regions:   regions,
		Modeler:   scenario.NewModeler(),
		Projector: projection.New(registry.BaseYear, regions, scenarios),
		Scorer:    scorer.New(scorer.DefaultScorerConfig()),
	}
}

func TestRunProject_Regional(t *testing.T) {
	env := testEnv(t)

	var buf bytes.Buffer
	err := runProject(&buf, env, projectOptions{
		Scenarios: []model.ScenarioID{model.ScenarioBaseline},
		Years:     []int{2050},
		Region:    "Tabuk",
		Format:    formatJSON,
	})
	require.NoError(t, err)

	var rows []model.RegionalProjection
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Tabuk", rows[0].Region)
	assert.Equal(t, 2050, rows[0].Year)
	assert.Equal(t, model.ScenarioBaseline, rows[0].Scenario)
}

func TestRunProject_Formats(t *testing.T) {
	env := testEnv(t)
	opts := projectOptions{
		Scenarios: []model.ScenarioID{model.ScenarioBaseline, model.ScenarioVision2030},
		Years:     []int{2030, 2050},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		o := opts
		o.Format = formatTable
		require.NoError(t, runProject(&buf, env, o))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		assert.Len(t, lines, 1+2*2*13)
		assert.Contains(t, lines[0], "SCENARIO")
		assert.Contains(t, buf.String(), "Riyadh")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		o := opts
		o.Format = formatCSV
		require.NoError(t, runProject(&buf, env, o))
		assert.True(t, strings.HasPrefix(buf.String(), "scenario,region_code,region,year"))
	})

	t.Run("national", func(t *testing.T) {
		var buf bytes.Buffer
		o := opts
		o.National = true
		o.Format = formatJSON
		require.NoError(t, runProject(&buf, env, o))

		var rows []scenario.ComparisonRow
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
		assert.Len(t, rows, 4)
	})

	t.Run("totals", func(t *testing.T) {
		var buf bytes.Buffer
		o := opts
		o.Totals = true
		o.Format = formatJSON
		require.NoError(t, runProject(&buf, env, o))

		var totals []projection.Totals
		require.NoError(t, json.Unmarshal(buf.Bytes(), &totals))
		require.Len(t, totals, 4)
		for _, tot := range totals {
			assert.Equal(t, 13, tot.Regions)
		}

		buf.Reset()
		o.Format = formatTable
		require.NoError(t, runProject(&buf, env, o))
		assert.Contains(t, buf.String(), "STRATEGIC")

		o.Format = formatCSV
		assert.Error(t, runProject(&buf, env, o))
	})
}

func TestRunProject_Errors(t *testing.T) {
	env := testEnv(t)

	err := runProject(&bytes.Buffer{}, env, projectOptions{
		Scenarios: []model.ScenarioID{"atlantis"},
		Years:     []int{2050},
		Format:    formatTable,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "atlantis")

	err = runProject(&bytes.Buffer{}, env, projectOptions{
		Years:  []int{2050},
		Region: "Nowhere",
		Format: formatTable,
	})
	assert.Error(t, err)
}

func TestRunProject_YearBounds(t *testing.T) {
	env := testEnv(t)

	for _, year := range []int{1990, registry.BaseYear - 1, 2101} {
		var buf bytes.Buffer
		err := runProject(&buf, env, projectOptions{
			Scenarios: []model.ScenarioID{model.ScenarioClimateStress},
			Years:     []int{2050, year},
			Region:    "SA-01",
			Format:    formatCSV,
		})
		require.Error(t, err, "year %d", year)
		assert.Contains(t, err.Error(), "outside")
		assert.Empty(t, buf.String())
	}

	var buf bytes.Buffer
	require.NoError(t, runProject(&buf, env, projectOptions{
		Scenarios: []model.ScenarioID{model.ScenarioClimateStress},
		Years:     []int{registry.BaseYear, 2100},
		Region:    "SA-01",
		Format:    formatCSV,
	}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
}

func TestRunScore(t *testing.T) {
	env := testEnv(t)

	t.Run("risk table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, runScore(&buf, env, model.KindRisk, nil, formatTable))
		out := buf.String()
		assert.Contains(t, out, "REGION")
		assert.Contains(t, out, "MEAN")
		assert.Contains(t, out, string(model.ScenarioClimateStress))
	})

	t.Run("opportunity csv", func(t *testing.T) {
		var buf bytes.Buffer
		ids := []model.ScenarioID{model.ScenarioVision2030, model.ScenarioAccelerated}
		require.NoError(t, runScore(&buf, env, model.KindOpportunity, ids, formatCSV))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 14)
		assert.Equal(t, "Region,vision2030,accelerated", lines[0])
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, runScore(&buf, env, model.KindRisk, nil, formatJSON))
		var out struct {
			Heatmap    model.Heatmap     `json:"heatmap"`
			Highlights []model.Highlight `json:"highlights"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		assert.Len(t, out.Heatmap.Regions, 13)
		assert.Len(t, out.Heatmap.Scenarios, 7)
		assert.LessOrEqual(t, len(out.Highlights), 10)
	})

	t.Run("unknown kind", func(t *testing.T) {
		err := runScore(&bytes.Buffer{}, env, "growth", nil, formatTable)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown kind")
	})
}

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), config.StoreConfig{
		Driver:      "sqlite",
		DatabaseURL: filepath.Join(t.TempDir(), "runs.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestGenerateReport_SavesRun(t *testing.T) {
	ctx := context.Background()
	env := testEnv(t)
	st := openTestStore(t)
	dir := t.TempDir()

	opts := reportOptions{
		Report: config.ReportConfig{OutputDir: dir, Title: "Test Report", Locale: "en"},
		Years:  registry.MilestoneYears,
	}
	r, files, err := generateReport(ctx, env, opts, st)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Len(t, files, len(report.OutputFiles(false, false)))
	for _, f := range files {
		assert.FileExists(t, f)
	}

	runs, err := st.ListRuns(ctx, store.RunFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, model.RunStatusComplete, run.Status)
	assert.Equal(t, dir, run.Params.OutputDir)
	assert.Equal(t, 13, run.Params.Regions)
	require.NotNil(t, run.Summary)
	assert.Equal(t, len(r.Data.Regional), run.Summary.Projections)

	rows, err := st.ListProjections(ctx, run.ID, store.ProjectionFilter{Year: 2050})
	require.NoError(t, err)
	assert.Len(t, rows, 7*13)

	recs, err := st.ListAssessments(ctx, run.ID, model.KindRisk)
	require.NoError(t, err)
	assert.Len(t, recs, 7*13)
}

func TestGenerateReport_FailureMarksRun(t *testing.T) {
	ctx := context.Background()
	env := testEnv(t)
	st := openTestStore(t)

	// A regular file where the output directory should be.
	blocker := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	opts := reportOptions{
		Report: config.ReportConfig{OutputDir: filepath.Join(blocker, "nested")},
		Years:  registry.MilestoneYears,
	}
	_, _, err := generateReport(ctx, env, opts, st)
	require.Error(t, err)

	runs, err := st.ListRuns(ctx, store.RunFilter{Status: model.RunStatusFailed})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Contains(t, runs[0].Error, "create output dir")
}

// cancelOnCreate cancels the command context once the run row exists.
type cancelOnCreate struct {
	store.Store
	cancel    context.CancelFunc
	failCtxOK bool
}

func (s *cancelOnCreate) CreateRun(ctx context.Context, params model.RunParams) (*model.Run, error) {
	run, err := s.Store.CreateRun(ctx, params)
	s.cancel()
	return run, err
}

func (s *cancelOnCreate) FailRun(ctx context.Context, runID string, cause error) error {
	s.failCtxOK = ctx.Err() == nil
	return s.Store.FailRun(ctx, runID, cause)
}

func TestGenerateReport_FailureAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	st := &cancelOnCreate{Store: openTestStore(t), cancel: cancel}

	blocker := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, _, err := generateReport(ctx, testEnv(t), reportOptions{
		Report: config.ReportConfig{OutputDir: filepath.Join(blocker, "nested")},
		Years:  registry.MilestoneYears,
	}, st)
	require.Error(t, err)
	assert.True(t, st.failCtxOK)

	runs, err := st.ListRuns(context.Background(), store.RunFilter{Status: model.RunStatusFailed})
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestGenerateReport_NoStore(t *testing.T) {
	dir := t.TempDir()
	r, files, err := generateReport(context.Background(), testEnv(t), reportOptions{
		Report: config.ReportConfig{OutputDir: dir},
		Years:  []int{2030, 2050},
	}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, r.Data.Regional)
	assert.FileExists(t, filepath.Join(dir, report.ReportMarkdownFile))
	assert.NotEmpty(t, files)

	var buf bytes.Buffer
	printFiles(&buf, dir, files)
	assert.Contains(t, buf.String(), report.ReportJSONFile)
}

func TestComputeRunStats(t *testing.T) {
	now := time.Now()
	runs := []model.Run{
		{Status: model.RunStatusComplete, CreatedAt: now.Add(-10 * time.Second), UpdatedAt: now, Summary: &model.RunSummary{Projections: 182}},
		{Status: model.RunStatusComplete, CreatedAt: now.Add(-20 * time.Second), UpdatedAt: now, Summary: &model.RunSummary{Projections: 18}},
		{Status: model.RunStatusFailed, CreatedAt: now, UpdatedAt: now},
		{Status: model.RunStatusRunning, CreatedAt: now, UpdatedAt: now},
	}

	s := computeRunStats(runs)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Complete)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.Running)
	assert.Equal(t, 200, s.Projections)
	assert.InDelta(t, 15.0, s.AvgDurSecs, 0.01)

	var buf bytes.Buffer
	formatRunStats(&buf, s)
	assert.Contains(t, buf.String(), "Total runs:")
	assert.Contains(t, buf.String(), "Avg duration:")
}

func TestComputeRunStats_Empty(t *testing.T) {
	s := computeRunStats(nil)
	assert.Equal(t, runStats{}, s)

	var buf bytes.Buffer
	formatRunStats(&buf, s)
	assert.NotContains(t, buf.String(), "Avg duration:")
}

func TestDownloadRegions(t *testing.T) {
	const body = "code,name\nSA-01,Riyadh\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "nss-test/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "regions.csv")
	n, err := downloadRegions(context.Background(), config.FetchConfig{
		UserAgent:   "nss-test/1.0",
		TimeoutSecs: 5,
		MaxRetries:  1,
	}, srv.URL+"/regions.csv", dest)
	require.NoError(t, err)
	assert.Equal(t, int64(len(body)), n)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
}
