package report

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/nss-cli/internal/chart"
	"github.com/sells-group/nss-cli/internal/config"
	"github.com/sells-group/nss-cli/internal/scorer"
)

// Deliverable file names.
const (
	ReportJSONFile         = "WS5_SCENARIO_REPORT.json"
	ReportMarkdownFile     = "WS5_SCENARIO_REPORT.md"
	Comparison2030File     = "scenario_comparison_2030.csv"
	Comparison2050File     = "scenario_comparison_2050.csv"
	RiskHeatmapFile        = "risk_heatmap_by_region.csv"
	OpportunityHeatmapFile = "opportunity_heatmap_by_region.csv"
	RegionalJSONFile       = "regional_scenario_projections.json"
	RegionalCSVFile        = "regional_scenario_projections.csv"
	MapDataFile            = "scenario_map_data.json"
	RegionsGeoJSONFile     = "regions_2050.geojson"
	WorkbookFile           = "WS5_SCENARIO_DATA.xlsx"
	PopulationChartFile    = "population_trajectories.png"
	RiskChartFile          = "risk_scores_by_region.png"
	OpportunityChartFile   = "opportunity_scores_by_region.png"
)

// OutputFiles lists the files a generator with the given options writes.
func OutputFiles(charts, workbook bool) []string {
	files := []string{
		ReportJSONFile,
		ReportMarkdownFile,
		Comparison2030File,
		Comparison2050File,
		RiskHeatmapFile,
		OpportunityHeatmapFile,
		RegionalJSONFile,
		RegionalCSVFile,
		MapDataFile,
		RegionsGeoJSONFile,
	}
	if workbook {
		files = append(files, WorkbookFile)
	}
	if charts {
		files = append(files, PopulationChartFile, RiskChartFile, OpportunityChartFile)
	}
	return files
}

// maxConcurrentWrites bounds the number of files written at once.
const maxConcurrentWrites = 4

// Generator writes report deliverables into a directory.
type Generator struct {
	Dir      string
	Locale   string
	Charts   bool
	Workbook bool
}

// NewGenerator creates a Generator from report configuration.
func NewGenerator(cfg config.ReportConfig) *Generator {
	return &Generator{
		Dir:      cfg.OutputDir,
		Locale:   cfg.Locale,
		Charts:   cfg.Charts,
		Workbook: cfg.Workbook,
	}
}

type writeJob struct {
	name  string
	write func(w io.Writer) error // stream writers
	save  func(path string) error // path writers (workbook, charts)
}

// WriteAll writes every deliverable concurrently and returns the written
// paths in OutputFiles order. The report's output file list is updated
// before anything is written.
func (g *Generator) WriteAll(ctx context.Context, r *Report) ([]string, error) {
	if r == nil || r.Data == nil {
		return nil, eris.New("report: generator needs a built report")
	}
	log := zap.L().With(zap.String("component", "report.generator"), zap.String("dir", g.Dir))

	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return nil, eris.Wrap(err, "report: create output dir")
	}

	files := OutputFiles(g.Charts, g.Workbook)
	r.Appendices.OutputFiles = files
	d := r.Data

	jobs := []writeJob{
		{name: ReportJSONFile, write: func(w io.Writer) error { return WriteJSON(w, r) }},
		{name: ReportMarkdownFile, write: func(w io.Writer) error { return WriteMarkdown(w, r, g.Locale) }},
		{name: Comparison2030File, write: func(w io.Writer) error { return WriteComparisonCSV(w, d.Comparison2030) }},
		{name: Comparison2050File, write: func(w io.Writer) error { return WriteComparisonCSV(w, d.Comparison2050) }},
		{name: RiskHeatmapFile, write: func(w io.Writer) error { return WriteHeatmapCSV(w, d.RiskHeatmap) }},
		{name: OpportunityHeatmapFile, write: func(w io.Writer) error { return WriteHeatmapCSV(w, d.OpportunityHeatmap) }},
		{name: RegionalJSONFile, write: func(w io.Writer) error { return WriteJSON(w, RegionalByScenario(d.Regional)) }},
		{name: RegionalCSVFile, write: func(w io.Writer) error { return WriteRegionalCSV(w, d.Regional) }},
		{name: MapDataFile, write: func(w io.Writer) error { return WriteJSON(w, d.Maps) }},
		{name: RegionsGeoJSONFile, write: func(w io.Writer) error { return WriteJSON(w, d.Features) }},
	}
	if g.Workbook {
		jobs = append(jobs, writeJob{name: WorkbookFile, save: func(path string) error { return WriteWorkbook(path, d) }})
	}
	if g.Charts {
		riskID, _ := scorer.HighestMeanScenario(d.RiskHeatmap)
		oppID, _ := scorer.HighestMeanScenario(d.OpportunityHeatmap)
		jobs = append(jobs,
			writeJob{name: PopulationChartFile, save: func(path string) error {
				return chart.PopulationTrajectories(chart.PopulationSeries(d.Scenarios, d.Paths), path)
			}},
			writeJob{name: RiskChartFile, save: func(path string) error { return chart.ScoreBars(d.RiskHeatmap, riskID, path) }},
			writeJob{name: OpportunityChartFile, save: func(path string) error { return chart.ScoreBars(d.OpportunityHeatmap, oppID, path) }},
		)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentWrites)
	for _, j := range jobs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return eris.Wrap(err, "report: write cancelled")
			}
			path := filepath.Join(g.Dir, j.name)
			if j.save != nil {
				return j.save(path)
			}
			return writeFile(path, j.write)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = filepath.Join(g.Dir, f)
	}
	log.Info("report deliverables written", zap.Int("files", len(paths)))
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "report: create %s", filepath.Base(path))
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return eris.Wrapf(err, "report: write %s", filepath.Base(path))
	}
	if err := f.Close(); err != nil {
		return eris.Wrapf(err, "report: close %s", filepath.Base(path))
	}
	return nil
}
