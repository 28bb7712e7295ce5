// Package chart renders scenario trajectories and regional scores as images.
// The output format follows the file extension (png, svg, pdf).
package chart

import (
	"image/color"
	"math"

	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/sells-group/nss-cli/internal/model"
)

// Trajectory is one labelled series of yearly values.
type Trajectory struct {
	Label  string
	Years  []int
	Values []float64
}

// PopulationSeries extracts national population trajectories from scenario
// paths, one per scenario in the given order.
func PopulationSeries(order []model.Scenario, paths map[model.ScenarioID][]model.NationalProjection) []Trajectory {
	out := make([]Trajectory, 0, len(order))
	for _, s := range order {
		path, ok := paths[s.ID]
		if !ok {
			continue
		}
		t := Trajectory{Label: s.Name}
		for _, p := range path {
			t.Years = append(t.Years, p.Year)
			t.Values = append(t.Values, p.Demographic.Population)
		}
		out = append(out, t)
	}
	return out
}

// PopulationTrajectories draws one line per trajectory and saves it to file.
func PopulationTrajectories(series []Trajectory, file string) error {
	if len(series) == 0 {
		return eris.New("chart: no trajectories")
	}

	p := plot.New()
	p.Title.Text = "National population by scenario"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Population (M)"
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	for i, s := range series {
		if len(s.Years) != len(s.Values) {
			return eris.Errorf("chart: trajectory %q has %d years and %d values", s.Label, len(s.Years), len(s.Values))
		}
		pts := make(plotter.XYs, len(s.Years))
		for j := range s.Years {
			pts[j].X = float64(s.Years[j])
			pts[j].Y = s.Values[j]
		}

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return eris.Wrapf(err, "chart: line for %s", s.Label)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		points.Color = plotutil.Color(i)
		points.Shape = draw.CircleGlyph{}

		p.Add(line, points)
		p.Legend.Add(s.Label, line, points)
	}

	if err := p.Save(10*vg.Inch, 6*vg.Inch, file); err != nil {
		return eris.Wrap(err, "chart: save population trajectories")
	}
	return nil
}

// ScoreBars draws one bar per region for a scenario column of the heatmap.
func ScoreBars(h model.Heatmap, scenario model.ScenarioID, file string) error {
	col := -1
	for j, id := range h.Scenarios {
		if id == scenario {
			col = j
			break
		}
	}
	if col < 0 {
		return eris.Errorf("chart: scenario %q not in %s heatmap", scenario, h.Kind)
	}
	if len(h.Regions) == 0 {
		return eris.Errorf("chart: %s heatmap has no regions", h.Kind)
	}

	values := make(plotter.Values, len(h.Regions))
	for i := range h.Regions {
		values[i] = h.Scores[i][col]
	}

	p := plot.New()
	p.Title.Text = h.Kind + " score by region: " + string(scenario)
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = "Score (0-10)"
	p.Y.Min = 0
	p.Y.Max = 10

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return eris.Wrap(err, "chart: bar chart")
	}
	bars.Color = barColor(h.Kind)
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.Add(plotter.NewGrid())

	p.NominalX(h.Regions...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	if err := p.Save(12*vg.Inch, 6*vg.Inch, file); err != nil {
		return eris.Wrapf(err, "chart: save %s bars", h.Kind)
	}
	return nil
}

func barColor(kind string) color.Color {
	if kind == "risk" {
		return color.RGBA{R: 196, G: 64, B: 52, A: 255}
	}
	return color.RGBA{R: 46, G: 125, B: 90, A: 255}
}
