package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/nss-cli/internal/config"
	"github.com/sells-group/nss-cli/internal/model"
	"github.com/sells-group/nss-cli/internal/report"
	"github.com/sells-group/nss-cli/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the scenario planning report and data files",
	Long: `Runs every engine, assembles the scenario report and writes the JSON and
Markdown report, comparison and heatmap CSVs, regional projections, map data
and GeoJSON into the output directory. Charts and an XLSX workbook are
optional.

With --save the run and its regional projections and assessments are
persisted to the configured store.

Examples:
  report --out ./output
  report --charts --workbook --save
  report --preview --width 120`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		log := zap.L().With(zap.String("command", "report"))

		env, err := initModel(ctx, cfg)
		if err != nil {
			return err
		}

		opts, err := reportOptionsFromFlags(cmd, cfg.Report)
		if err != nil {
			return err
		}
		if err := validateReport(opts.Report); err != nil {
			return err
		}

		var st store.Store
		if opts.Save {
			st, err = initStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
		}

		start := time.Now()
		r, files, err := generateReport(ctx, env, opts, st)
		if err != nil {
			return err
		}
		log.Info("report complete",
			zap.String("dir", opts.Report.OutputDir),
			zap.Int("files", len(files)),
			zap.Duration("elapsed", time.Since(start)),
		)

		if opts.Preview {
			rendered, err := report.Preview(report.Markdown(r, opts.Report.Locale), opts.Width)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(os.Stdout, rendered)
			return nil
		}
		printFiles(os.Stdout, opts.Report.OutputDir, files)
		return nil
	},
}

type reportOptions struct {
	Report  config.ReportConfig
	Years   []int
	Save    bool
	Preview bool
	Width   int
}

func reportOptionsFromFlags(cmd *cobra.Command, base config.ReportConfig) (reportOptions, error) {
	opts := reportOptions{Report: base, Years: cfg.Model.Years}
	flags := cmd.Flags()

	if flags.Changed("out") {
		opts.Report.OutputDir, _ = flags.GetString("out")
	}
	if flags.Changed("title") {
		opts.Report.Title, _ = flags.GetString("title")
	}
	if flags.Changed("locale") {
		opts.Report.Locale, _ = flags.GetString("locale")
	}
	if flags.Changed("charts") {
		opts.Report.Charts, _ = flags.GetBool("charts")
	}
	if flags.Changed("workbook") {
		opts.Report.Workbook, _ = flags.GetBool("workbook")
	}
	opts.Save, _ = flags.GetBool("save")
	opts.Preview, _ = flags.GetBool("preview")
	opts.Width, _ = flags.GetInt("width")
	if opts.Width < 0 {
		return opts, eris.New("--width must not be negative")
	}
	return opts, nil
}

func validateReport(rc config.ReportConfig) error {
	c := *cfg
	c.Report = rc
	return c.Validate("report")
}

// generateReport builds the report and writes its files. When st is non-nil
// the run is recorded there, and marked failed if any step errors.
func generateReport(ctx context.Context, env *modelEnv, opts reportOptions, st store.Store) (*report.Report, []string, error) {
	var run *model.Run
	if st != nil {
		var err error
		run, err = st.CreateRun(ctx, model.RunParams{
			BaseYear:  env.Modeler.BaseYear,
			Years:     opts.Years,
			Scenarios: env.Scenarios.IDs(),
			Regions:   len(env.Regions.Regions),
			OutputDir: opts.Report.OutputDir,
		})
		if err != nil {
			return nil, nil, err
		}
		zap.L().Info("run created", zap.String("run_id", run.ID))
	}

	r, files, err := buildAndWrite(ctx, env, opts)
	if run == nil {
		return r, files, err
	}
	if err == nil {
		err = saveRun(ctx, st, run.ID, r, files)
	}
	if err != nil {
		// The command context may already be cancelled by a signal.
		if ferr := st.FailRun(context.WithoutCancel(ctx), run.ID, err); ferr != nil {
			zap.L().Warn("mark run failed", zap.String("run_id", run.ID), zap.Error(ferr))
		}
		return nil, nil, err
	}
	return r, files, nil
}

func buildAndWrite(ctx context.Context, env *modelEnv, opts reportOptions) (*report.Report, []string, error) {
	r, err := report.Build(report.Inputs{
		Title:      opts.Report.Title,
		Generated:  time.Now().UTC(),
		Years:      opts.Years,
		Modeler:    env.Modeler,
		Projector:  env.Projector,
		Scorer:     env.Scorer,
		Boundaries: env.Boundaries,
	})
	if err != nil {
		return nil, nil, err
	}
	files, err := report.NewGenerator(opts.Report).WriteAll(ctx, r)
	if err != nil {
		return nil, nil, err
	}
	return r, files, nil
}

func saveRun(ctx context.Context, st store.Store, runID string, r *report.Report, files []string) error {
	n, err := st.SaveProjections(ctx, runID, r.Data.Regional)
	if err != nil {
		return err
	}

	recs := make([]model.AssessmentRecord, 0, len(r.Data.Risks)+len(r.Data.Opportunities))
	for _, a := range r.Data.Risks {
		recs = append(recs, a.Record())
	}
	for _, a := range r.Data.Opportunities {
		recs = append(recs, a.Record())
	}
	m, err := st.SaveAssessments(ctx, runID, recs)
	if err != nil {
		return err
	}

	zap.L().Info("run saved",
		zap.String("run_id", runID),
		zap.Int64("projections", n),
		zap.Int64("assessments", m),
	)
	return st.CompleteRun(ctx, runID, r.Summary(files))
}

func printFiles(out io.Writer, dir string, files []string) {
	_, _ = fmt.Fprintf(out, "Wrote %d files to %s:\n", len(files), dir)
	for _, f := range files {
		_, _ = fmt.Fprintf(out, "  %s\n", f)
	}
}

func init() {
	f := reportCmd.Flags()
	f.String("out", "", "output directory (default report.output_dir)")
	f.String("title", "", "report title (default report.title)")
	f.String("locale", "", "number formatting locale for Markdown (default report.locale)")
	f.Bool("charts", false, "render PNG charts")
	f.Bool("workbook", false, "write the XLSX workbook")
	f.Bool("save", false, "persist the run to the configured store")
	f.Bool("preview", false, "render the Markdown report in the terminal")
	f.Int("width", 100, "preview wrap width")
	rootCmd.AddCommand(reportCmd)
}
