package chart

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// HTMLRenderer writes interactive ECharts pages
type HTMLRenderer struct{}

func initOpts(title string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: title,
		Width:     fmt.Sprintf("%dpx", Width),
		Height:    fmt.Sprintf("%dpx", Height),
	})
}

// RenderBar implements Renderer
func (r *HTMLRenderer) RenderBar(path string, counts map[string]int) error {
	return writeFile("offense distribution", path, func(w io.Writer) error {
		items := barItems(counts)
		if len(items) == 0 {
			return errors.New("no offense types to plot")
		}

		labels := make([]string, 0, len(items))
		data := make([]opts.BarData, 0, len(items))
		for _, it := range items {
			labels = append(labels, it.label)
			data = append(data, opts.BarData{Name: it.label, Value: it.count})
		}

		bar := charts.NewBar()
		bar.SetGlobalOptions(
			initOpts(BarTitle),
			charts.WithTitleOpts(opts.Title{Title: BarTitle}),
			charts.WithXAxisOpts(opts.XAxis{
				Name: BarXLabel,
				AxisLabel: &opts.AxisLabel{
					Rotate:   xLabelRotation,
					Interval: "0",
				},
			}),
			charts.WithYAxisOpts(opts.YAxis{Name: BarYLabel}),
		)
		bar.SetXAxis(labels).AddSeries(BarYLabel, data)

		return bar.Render(w)
	})
}

// RenderPie implements Renderer
func (r *HTMLRenderer) RenderPie(path string, counts map[int]int) error {
	return writeFile("severity distribution", path, func(w io.Writer) error {
		items := pieItems(counts)
		if len(items) == 0 {
			return errors.New("no severities to plot")
		}

		data := make([]opts.PieData, 0, len(items))
		for _, it := range items {
			data = append(data, opts.PieData{Name: it.label, Value: it.count})
		}

		pie := charts.NewPie()
		pie.SetGlobalOptions(
			initOpts(PieTitle),
			charts.WithTitleOpts(opts.Title{Title: PieTitle}),
		)
		pie.AddSeries("Severity", data).SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Position:  "inside",
				Formatter: "{b}\n{d}%",
			}),
		)

		return pie.Render(w)
	})
}
