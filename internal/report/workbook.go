package report

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/nss-cli/internal/model"
	"github.com/sells-group/nss-cli/internal/scenario"
)

// Workbook sheet names.
const (
	SheetComparison2030 = "Comparison 2030"
	SheetComparison2050 = "Comparison 2050"
	SheetRegional       = "Regional Projections"
	SheetRisk           = "Risk Heatmap"
	SheetOpportunity    = "Opportunity Heatmap"
)

// NewWorkbook lays the report tables out as worksheets.
func NewWorkbook(d *Data) (*xlsx.File, error) {
	f := xlsx.NewFile()

	for _, c := range []struct {
		name string
		rows []scenario.ComparisonRow
	}{
		{SheetComparison2030, d.Comparison2030},
		{SheetComparison2050, d.Comparison2050},
	} {
		sheet, err := f.AddSheet(c.name)
		if err != nil {
			return nil, eris.Wrapf(err, "report: add sheet %s", c.name)
		}
		addHeader(sheet, "Scenario", "Population (M)", "GDP ($B)", "GDP/Capita ($)", "Oil Share (%)", "Tourism Share (%)", "Urban (%)", "Renewable GW", "Probability")
		for _, r := range c.rows {
			row := sheet.AddRow()
			row.AddCell().SetString(r.Name)
			for _, v := range []float64{r.Population, r.GDP, r.GDPPerCapita, r.OilShare, r.TourismShare, r.UrbanPct, r.RenewableGW, r.Probability} {
				row.AddCell().SetFloat(round(v, 2))
			}
		}
	}

	sheet, err := f.AddSheet(SheetRegional)
	if err != nil {
		return nil, eris.Wrap(err, "report: add regional sheet")
	}
	addHeader(sheet, "Scenario", "Code", "Region", "Year", "Population (M)", "GDP Share (%)", "Employment Growth (%)", "Urbanization (%)", "Water Stress", "Investment Priority")
	for _, p := range d.Regional {
		rec := NewRegionalRecord(p)
		row := sheet.AddRow()
		row.AddCell().SetString(string(rec.Scenario))
		row.AddCell().SetString(rec.RegionCode)
		row.AddCell().SetString(rec.Region)
		row.AddCell().SetInt(rec.Year)
		row.AddCell().SetFloat(rec.Population)
		row.AddCell().SetFloat(rec.GDPSharePct)
		row.AddCell().SetFloat(rec.EmploymentGrowth)
		row.AddCell().SetFloat(rec.UrbanizationRate)
		row.AddCell().SetString(string(rec.WaterStress))
		row.AddCell().SetString(string(rec.InvestmentPriority))
	}

	if err := addHeatmapSheet(f, SheetRisk, d.RiskHeatmap); err != nil {
		return nil, err
	}
	if err := addHeatmapSheet(f, SheetOpportunity, d.OpportunityHeatmap); err != nil {
		return nil, err
	}
	return f, nil
}

// WriteWorkbook saves the report workbook to path.
func WriteWorkbook(path string, d *Data) error {
	f, err := NewWorkbook(d)
	if err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "report: save workbook")
	}
	return nil
}

func addHeatmapSheet(f *xlsx.File, name string, h model.Heatmap) error {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "report: add sheet %s", name)
	}
	header := sheet.AddRow()
	header.AddCell().SetString("Region")
	for _, id := range h.Scenarios {
		header.AddCell().SetString(string(id))
	}
	for i, region := range h.Regions {
		row := sheet.AddRow()
		row.AddCell().SetString(region)
		for _, v := range h.Scores[i] {
			row.AddCell().SetFloat(v)
		}
	}
	return nil
}

func addHeader(sheet *xlsx.Sheet, cols ...string) {
	row := sheet.AddRow()
	for _, c := range cols {
		row.AddCell().SetString(c)
	}
}
