package main

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/nss-cli/internal/api"
	"github.com/sells-group/nss-cli/internal/model"
	"github.com/sells-group/nss-cli/internal/projection"
	"github.com/sells-group/nss-cli/internal/report"
	"github.com/sells-group/nss-cli/internal/scenario"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project national or regional indicators under scenarios",
	Long: `Projects the region × scenario × year table, or with --national the
national population, GDP and spatial indicators per scenario.

Examples:
  project --scenario baseline,vision2030 --year 2030,2050
  project --region Tabuk --format csv
  project --national --year 2050 --format json
  project --year 2050 --totals`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := initModel(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		if err := checkFormat(format); err != nil {
			return err
		}
		national, _ := cmd.Flags().GetBool("national")
		totals, _ := cmd.Flags().GetBool("totals")
		region, _ := cmd.Flags().GetString("region")
		ids, _ := cmd.Flags().GetStringSlice("scenario")
		years, _ := cmd.Flags().GetIntSlice("year")
		if len(years) == 0 {
			years = cfg.Model.Years
		}

		opts := projectOptions{
			Scenarios: toScenarioIDs(ids),
			Years:     years,
			Region:    region,
			National:  national,
			Totals:    totals,
			Format:    format,
		}
		return runProject(os.Stdout, env, opts)
	},
}

type projectOptions struct {
	Scenarios []model.ScenarioID
	Years     []int
	Region    string
	National  bool
	Totals    bool
	Format    string
}

func runProject(out io.Writer, env *modelEnv, opts projectOptions) error {
	for _, y := range opts.Years {
		if y < env.Projector.BaseYear || y > api.MaxYear {
			return eris.Errorf("year %d outside %d..%d", y, env.Projector.BaseYear, api.MaxYear)
		}
	}

	selected, err := env.Scenarios.Select(opts.Scenarios)
	if err != nil {
		return err
	}

	if opts.National {
		var rows []scenario.ComparisonRow
		for _, y := range opts.Years {
			rows = append(rows, env.Modeler.Compare(selected, y)...)
		}
		return writeComparison(out, opts.Format, rows)
	}

	ids := make([]model.ScenarioID, len(selected))
	for i, s := range selected {
		ids[i] = s.ID
	}
	rows, err := env.Projector.Grid(ids, opts.Years)
	if err != nil {
		return err
	}

	if opts.Region != "" {
		reg, err := env.Regions.Lookup(opts.Region)
		if err != nil {
			return err
		}
		var filtered []model.RegionalProjection
		for _, r := range rows {
			if r.RegionCode == reg.Code {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	if opts.Totals {
		totals := projection.Aggregate(rows)
		switch opts.Format {
		case formatJSON:
			return report.WriteJSON(out, totals)
		case formatCSV:
			return eris.New("--totals supports table or json output")
		}
		formatTotals(out, totals)
		return nil
	}
	return writeRegional(out, opts.Format, rows)
}

func toScenarioIDs(ids []string) []model.ScenarioID {
	out := make([]model.ScenarioID, len(ids))
	for i, id := range ids {
		out[i] = model.ScenarioID(id)
	}
	return out
}

func init() {
	projectCmd.Flags().StringSlice("scenario", nil, "scenario IDs (default all)")
	projectCmd.Flags().IntSlice("year", nil, "projection years (default model.years)")
	projectCmd.Flags().String("region", "", "restrict to one region (code or name)")
	projectCmd.Flags().Bool("national", false, "project national indicators instead of regions")
	projectCmd.Flags().Bool("totals", false, "print national roll-ups of the regional rows")
	projectCmd.Flags().String("format", formatTable, "output format (table, csv, json)")
	rootCmd.AddCommand(projectCmd)
}
