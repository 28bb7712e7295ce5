package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/nss-cli/internal/model"
	"github.com/sells-group/nss-cli/internal/projection"
	"github.com/sells-group/nss-cli/internal/report"
	"github.com/sells-group/nss-cli/internal/scenario"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatCSV   = "csv"
	formatJSON  = "json"
)

func checkFormat(f string) error {
	switch f {
	case formatTable, formatCSV, formatJSON:
		return nil
	default:
		return eris.Errorf("unknown format %q (want table, csv or json)", f)
	}
}

// formatScenarioList writes one line per scenario to w.
func formatScenarioList(out io.Writer, scenarios []model.Scenario) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPROBABILITY")
	_, _ = fmt.Fprintln(w, "--\t----\t--------\t-----------")
	for _, s := range scenarios {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%.0f%%\n", s.ID, s.Name, s.Category, s.Probability*100)
	}
	_ = w.Flush()
}

// formatScenario writes a scenario's narrative and its national path.
func formatScenario(out io.Writer, s model.Scenario, path []model.NationalProjection) {
	_, _ = fmt.Fprintf(out, "%s (%s, %s, p=%.2f)\n\n%s\n", s.Name, s.ID, s.Category, s.Probability, s.Description)
	writeBullets(out, "Assumptions", s.Assumptions)
	writeBullets(out, "Risks", s.Risks)
	writeBullets(out, "Opportunities", s.Opportunities)

	_, _ = fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "YEAR\tPOP (M)\tGDP ($B)\tGDP/CAP ($)\tOIL %\tURBAN %\tRENEWABLE GW")
	for _, p := range path {
		_, _ = fmt.Fprintf(w, "%d\t%.1f\t%.0f\t%.0f\t%.1f\t%.1f\t%.1f\n",
			p.Year, p.Demographic.Population, p.Economic.GDP, p.Economic.GDPPerCapita,
			p.Economic.OilSharePct, p.Demographic.UrbanPct, p.Spatial.RenewableGW)
	}
	_ = w.Flush()
}

func writeBullets(out io.Writer, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	_, _ = fmt.Fprintf(out, "\n%s:\n", heading)
	for _, it := range items {
		_, _ = fmt.Fprintf(out, "  - %s\n", it)
	}
}

// formatRegionList writes the base-year regional profiles.
func formatRegionList(out io.Writer, regions []model.Region) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CODE\tNAME\tCAPITAL\tPOP (M)\tGDP %\tGROWTH\tWATER\tSECTORS")
	_, _ = fmt.Fprintln(w, "----\t----\t-------\t-------\t-----\t------\t-----\t-------")
	for _, r := range regions {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.1f\t%.1f\t%s\t%s\n",
			r.Code, r.Name, r.Capital, r.Population, r.GDPShare, r.GrowthFactor, r.WaterStress,
			strings.Join(r.KeySectors, ", "))
	}
	_ = w.Flush()
}

// formatRegional writes regional projection rows.
func formatRegional(out io.Writer, rows []model.RegionalProjection) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SCENARIO\tYEAR\tREGION\tPOP (M)\tGDP %\tEMP GROWTH %\tURBAN %\tWATER\tPRIORITY")
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%.2f\t%.1f\t%.1f\t%.1f\t%s\t%s\n",
			r.Scenario, r.Year, r.Region, r.Population, r.GDPSharePct, r.EmploymentGrowth,
			r.UrbanizationPct, r.WaterStress, r.InvestmentPriority)
	}
	_ = w.Flush()
}

// formatTotals writes national roll-ups of regional rows.
func formatTotals(out io.Writer, totals []projection.Totals) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SCENARIO\tYEAR\tREGIONS\tPOP (M)\tGDP %\tMEAN URBAN %\tSTRESSED\tSTRATEGIC")
	for _, t := range totals {
		stressed := 0
		for ws, n := range t.WaterStressMix {
			if ws.Stressed() {
				stressed += n
			}
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t%.1f\t%.1f\t%d\t%d\n",
			t.Scenario, t.Year, t.Regions, t.Population, t.GDPSharePct, t.MeanUrbanPct, stressed, t.StrategicCount)
	}
	_ = w.Flush()
}

// formatComparison writes national comparison rows.
func formatComparison(out io.Writer, rows []scenario.ComparisonRow) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SCENARIO\tYEAR\tPOP (M)\tGDP ($B)\tGDP/CAP ($)\tOIL %\tTOURISM %\tURBAN %\tRENEWABLE GW\tPROB")
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%.1f\t%.0f\t%.0f\t%.1f\t%.1f\t%.1f\t%.1f\t%.0f%%\n",
			r.Scenario, r.Year, r.Population, r.GDP, r.GDPPerCapita, r.OilShare, r.TourismShare,
			r.UrbanPct, r.RenewableGW, r.Probability*100)
	}
	_ = w.Flush()
}

// formatHeatmap writes a region × scenario grid followed by highlights.
func formatHeatmap(out io.Writer, h model.Heatmap, highlights []model.Highlight) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := []string{"REGION"}
	for _, id := range h.Scenarios {
		header = append(header, string(id))
	}
	_, _ = fmt.Fprintln(w, strings.Join(header, "\t")+"\t")
	for i, region := range h.Regions {
		cells := []string{region}
		for _, v := range h.Scores[i] {
			cells = append(cells, fmt.Sprintf("%.1f", v))
		}
		_, _ = fmt.Fprintln(w, strings.Join(cells, "\t")+"\t")
	}
	means := []string{"MEAN"}
	for j := range h.Scenarios {
		means = append(means, fmt.Sprintf("%.2f", h.ColumnMean(j)))
	}
	_, _ = fmt.Fprintln(w, strings.Join(means, "\t")+"\t")
	_ = w.Flush()

	if len(highlights) == 0 {
		return
	}
	_, _ = fmt.Fprintf(out, "\nTop %s combinations:\n", h.Kind)
	for _, hl := range highlights {
		_, _ = fmt.Fprintf(out, "  %-20s %-18s %.2f\n", hl.Region, hl.Scenario, hl.Score)
	}
}

// formatRunsList writes a tabular list of runs to w.
func formatRunsList(out io.Writer, runs []model.Run) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSTATUS\tSCENARIOS\tYEARS\tCREATED\tDURATION")
	_, _ = fmt.Fprintln(w, "--\t------\t---------\t-----\t-------\t--------")

	for _, r := range runs {
		dur := r.UpdatedAt.Sub(r.CreatedAt).Round(time.Second).String()

		years := make([]string, len(r.Params.Years))
		for i, y := range r.Params.Years {
			years[i] = fmt.Sprint(y)
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			truncateID(r.ID),
			r.Status,
			len(r.Params.Scenarios),
			strings.Join(years, ","),
			r.CreatedAt.Format("2006-01-02 15:04"),
			dur,
		)
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// writeRegional writes regional rows in the requested format.
func writeRegional(out io.Writer, format string, rows []model.RegionalProjection) error {
	switch format {
	case formatCSV:
		return report.WriteRegionalCSV(out, rows)
	case formatJSON:
		return report.WriteJSON(out, rows)
	default:
		formatRegional(out, rows)
		return nil
	}
}

// writeComparison writes national rows in the requested format.
func writeComparison(out io.Writer, format string, rows []scenario.ComparisonRow) error {
	switch format {
	case formatCSV:
		return report.WriteComparisonCSV(out, rows)
	case formatJSON:
		return report.WriteJSON(out, rows)
	default:
		formatComparison(out, rows)
		return nil
	}
}
