package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/nss-cli/internal/model"
	"github.com/sells-group/nss-cli/internal/scenario"
)

// maxDescription truncates scenario descriptions in the Markdown report.
const maxDescription = 300

// Markdown renders the report as Markdown. Numbers are formatted for locale
// (a BCP 47 tag); an unparseable locale falls back to English.
func Markdown(r *Report, locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)

	var b strings.Builder
	p.Fprintf(&b, "# %s\n\n", r.Metadata.Title)
	p.Fprintf(&b, "**Generated:** %s\n", r.Metadata.Generated.Format("2006-01-02T15:04:05Z07:00"))
	p.Fprintf(&b, "**Version:** %s\n\n---\n\n", r.Metadata.Version)

	// Executive summary.
	es := r.ExecutiveSummary
	b.WriteString("## Executive Summary\n\n")
	b.WriteString(es.Overview + "\n\n")
	b.WriteString("### Scenarios Analyzed\n\n")
	b.WriteString("| Category | Scenarios |\n|----------|-----------|\n")
	p.Fprintf(&b, "| Core Scenarios | %s |\n", strings.Join(es.ScenariosAnalyzed.Core, ", "))
	p.Fprintf(&b, "| Stress Tests | %s |\n", strings.Join(es.ScenariosAnalyzed.Stress, ", "))
	p.Fprintf(&b, "| **Total** | **%d** |\n\n", es.ScenariosAnalyzed.Total)
	writeList(&b, "### Key Findings", es.KeyFindings)
	writeList(&b, "### Critical Uncertainties", es.CriticalUncertainties)
	writeList(&b, "### Planning Implications", es.PlanningImplications)
	b.WriteString("---\n\n")

	// Section 1: comparison tables.
	b.WriteString("## Section 1: Scenario Comparison\n\n")
	if r.Data != nil {
		writeComparison(&b, p, "### 2030 Projections", r.Data.Comparison2030)
		writeComparison(&b, p, "### 2050 Projections", r.Data.Comparison2050)
		if r.Data.Expected.TotalWeight > 0 {
			// Years go through %s so the printer does not group their digits.
			p.Fprintf(&b, "Probability-weighted %s outlook: %.1fM people, $%.0fB GDP.\n\n",
				strconv.Itoa(r.Data.Expected.Year), r.Data.Expected.Population, r.Data.Expected.GDP)
		}
	}
	b.WriteString("---\n\n")

	// Section 2: scenario descriptions.
	b.WriteString("## Section 2: Scenario Descriptions\n\n")
	for _, s := range r.Scenarios {
		p.Fprintf(&b, "### %s\n\n", s.Name)
		p.Fprintf(&b, "**Probability:** %.0f%%\n\n", s.Probability*100)
		b.WriteString(truncate(s.Description, maxDescription) + "\n\n")
		writeList(&b, "**Key Assumptions:**", head(s.Assumptions, 4))
		writeList(&b, "**Key Risks:**", head(s.Risks, 3))
		b.WriteString("---\n\n")
	}

	// Sections 3 and 4: heatmaps.
	if r.Data != nil {
		b.WriteString("## Section 3: Risk Heatmap by Region\n\n")
		b.WriteString("Scale: 0 (low risk) to 10 (critical risk)\n\n")
		writeHeatmap(&b, p, r.Data.RiskHeatmap, r.Data.Scenarios)
		writeHighlights(&b, p, "Highest risk combinations", r.RiskHeatmaps.Highest)
		b.WriteString("---\n\n")

		b.WriteString("## Section 4: Opportunity Heatmap by Region\n\n")
		b.WriteString("Scale: 0 (low opportunity) to 10 (high opportunity)\n\n")
		writeHeatmap(&b, p, r.Data.OpportunityHeatmap, r.Data.Scenarios)
		writeHighlights(&b, p, "Highest opportunity combinations", r.OpportunityHeatmaps.Highest)
		b.WriteString("---\n\n")
	}

	// Section 5: recommendations.
	b.WriteString("## Section 5: Planning Recommendations\n\n")
	writeList(&b, "### Spatial Planning", r.Recommendations.SpatialPlanning)
	writeList(&b, "### Investment Priorities", r.Recommendations.InvestmentPriorities)
	writeList(&b, "### Regional Strategy", r.Recommendations.RegionalStrategy)
	writeList(&b, "### Governance", r.Recommendations.Governance)
	writeList(&b, "### Resilience Building", r.Recommendations.ResilienceBuilding)
	b.WriteString("---\n\n")

	// Section 6: documentation.
	b.WriteString("## Section 6: Model Documentation\n\n")
	b.WriteString("### Model Structure\n\n")
	b.WriteString("| Component | Purpose |\n|-----------|---------|\n")
	for _, c := range r.Documentation.Components {
		p.Fprintf(&b, "| %s | %s |\n", c.Name, c.Purpose)
	}
	b.WriteString("\n")
	writeList(&b, "### Limitations", r.Documentation.Limitations)
	b.WriteString("---\n\n")

	// Appendices.
	b.WriteString("## Appendices\n\n### Output Files\n\n")
	for _, f := range r.Appendices.OutputFiles {
		p.Fprintf(&b, "- `%s`\n", f)
	}
	b.WriteString("\n")
	writeList(&b, "### Data Sources", r.Appendices.DataSources)

	return b.String()
}

// WriteMarkdown writes the Markdown rendering of r to w.
func WriteMarkdown(w io.Writer, r *Report, locale string) error {
	if _, err := io.WriteString(w, Markdown(r, locale)); err != nil {
		return eris.Wrap(err, "report: write markdown")
	}
	return nil
}

func writeList(b *strings.Builder, heading string, items []string) {
	b.WriteString(heading + "\n\n")
	for _, it := range items {
		b.WriteString("- " + it + "\n")
	}
	b.WriteString("\n")
}

func writeComparison(b *strings.Builder, p *message.Printer, heading string, rows []scenario.ComparisonRow) {
	b.WriteString(heading + "\n\n")
	b.WriteString("| Scenario | Population (M) | GDP ($B) | GDP/Capita ($) | Oil Share (%) | Probability |\n")
	b.WriteString("|----------|---------------|----------|----------------|---------------|-------------|\n")
	for _, row := range rows {
		p.Fprintf(b, "| %s | %.1f | %.0f | %.0f | %.0f%% | %.0f%% |\n",
			truncate(row.Name, 20), row.Population, row.GDP, row.GDPPerCapita, row.OilShare, row.Probability*100)
	}
	b.WriteString("\n")
}

func writeHeatmap(b *strings.Builder, p *message.Printer, h model.Heatmap, scenarios []model.Scenario) {
	b.WriteString("| Region |")
	sep := "|--------|"
	for _, id := range h.Scenarios {
		b.WriteString(" " + shortName(id, scenarios) + " |")
		sep += "------|"
	}
	b.WriteString("\n" + sep + "\n")

	for i, region := range h.Regions {
		b.WriteString("| " + region + " |")
		for _, v := range h.Scores[i] {
			p.Fprintf(b, " %.1f |", v)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeHighlights(b *strings.Builder, p *message.Printer, heading string, hs []model.Highlight) {
	if len(hs) == 0 {
		return
	}
	b.WriteString("**" + heading + ":**\n\n")
	for _, h := range hs {
		p.Fprintf(b, "- %s / %s: %.2f\n", h.Region, h.Scenario, h.Score)
	}
	b.WriteString("\n")
}

// shortName is the first word of the scenario name, used as a column header.
func shortName(id model.ScenarioID, scenarios []model.Scenario) string {
	name := scenarioName(scenarios, id)
	if i := strings.IndexAny(name, " ("); i > 0 {
		return name[:i]
	}
	return name
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
