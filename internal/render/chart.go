package render

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/couchcryptid/fish-stock-map-service/internal/domain"
)

// ChartSeriesLimit caps the number of species drawn on the population chart.
const ChartSeriesLimit = domain.MaxSpeciesCards

// PopulationChart draws mean population per year for the first species
// groups of rows, in first-seen order, as a PNG line chart. Rows without a
// population value are skipped.
func PopulationChart(w io.Writer, rows []domain.PopulationRow) error {
	type yearSum struct {
		sum float64
		n   int
	}
	series := make(map[string]map[int]*yearSum)
	var order []string
	for _, r := range rows {
		if !r.Population.Valid {
			continue
		}
		years, ok := series[r.SpeciesGroup]
		if !ok {
			if len(order) == ChartSeriesLimit {
				continue
			}
			years = make(map[int]*yearSum)
			series[r.SpeciesGroup] = years
			order = append(order, r.SpeciesGroup)
		}
		ys, ok := years[r.Year]
		if !ok {
			ys = &yearSum{}
			years[r.Year] = ys
		}
		ys.sum += r.Population.Value
		ys.n++
	}

	p := plot.New()
	p.Title.Text = "Tren Populasi Ikan"
	p.X.Label.Text = "Tahun"
	p.Y.Label.Text = "Populasi (TP)"
	p.Add(plotter.NewGrid())

	for i, species := range order {
		years := make([]int, 0, len(series[species]))
		for y := range series[species] {
			years = append(years, y)
		}
		sort.Ints(years)

		pts := make(plotter.XYs, len(years))
		for j, y := range years {
			ys := series[species][y]
			pts[j].X = float64(y)
			pts[j].Y = ys.sum / float64(ys.n)
		}

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return fmt.Errorf("plot %s: %w", species, err)
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		p.Add(line, points)
		p.Legend.Add(species, line, points)
	}
	p.Legend.Top = true

	wt, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}
