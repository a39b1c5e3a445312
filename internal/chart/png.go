package chart

import (
	"errors"
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// PNGRenderer writes static images
type PNGRenderer struct{}

// RenderBar implements Renderer
func (r *PNGRenderer) RenderBar(path string, counts map[string]int) error {
	return writeFile("offense distribution", path, func(w io.Writer) error {
		items := barItems(counts)
		if len(items) == 0 {
			return errors.New("no offense types to plot")
		}

		maxCount := 0
		bars := make([]gochart.Value, 0, len(items))
		for _, it := range items {
			bars = append(bars, gochart.Value{Label: it.label, Value: float64(it.count)})
			if it.count > maxCount {
				maxCount = it.count
			}
		}

		graph := gochart.BarChart{
			Title:  BarTitle,
			Width:  Width,
			Height: Height,
			Background: gochart.Style{
				Padding: gochart.Box{Top: 60, Left: 20, Right: 20, Bottom: 40},
			},
			BarWidth: 60,
			XAxis: gochart.Style{
				TextRotationDegrees: xLabelRotation,
			},
			YAxis: gochart.YAxis{
				Name: BarYLabel,
				// explicit range so a single distinct count still has height
				Range: &gochart.ContinuousRange{Min: 0, Max: float64(maxCount)},
			},
			Bars: bars,
		}

		return graph.Render(gochart.PNG, w)
	})
}

// RenderPie implements Renderer
func (r *PNGRenderer) RenderPie(path string, counts map[int]int) error {
	return writeFile("severity distribution", path, func(w io.Writer) error {
		items := pieItems(counts)
		if len(items) == 0 {
			return errors.New("no severities to plot")
		}

		values := make([]gochart.Value, 0, len(items))
		for _, it := range items {
			values = append(values, gochart.Value{
				Label: fmt.Sprintf("%s (%.1f%%)", it.label, it.percent),
				Value: float64(it.count),
			})
		}

		graph := gochart.PieChart{
			Title:  PieTitle,
			Width:  Width,
			Height: Height,
			Values: values,
		}

		return graph.Render(gochart.PNG, w)
	})
}
