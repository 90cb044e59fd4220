package report

import (
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/text/message"

	"geoping/internal/models"
)

var closestFill = drawing.Color{R: 46, G: 160, B: 67, A: 255}

// generateLatencyChart draws one bar per responding target in catalog
// order, highlighting the closest one. Nothing is written when no target
// responded.
func (g *Generator) generateLatencyChart(filename string, run *models.Run, verdict models.Verdict) (bool, error) {
	responded := run.Results.Responded()
	if len(responded) == 0 {
		return false, nil
	}

	p := message.NewPrinter(g.opts.Language)

	maxRTT := 1.0
	var bars []chart.Value
	for i, o := range responded {
		style := chart.Style{
			FillColor:   chart.GetDefaultColor(i).WithAlpha(200),
			StrokeColor: chart.GetDefaultColor(i),
			StrokeWidth: 1,
		}
		if verdict.Closest != nil && o.Target.Name == verdict.Closest.Target.Name {
			style.FillColor = closestFill
			style.StrokeColor = closestFill
		}
		bars = append(bars, chart.Value{
			Label: o.Target.Name,
			Value: o.AvgRTT,
			Style: style,
		})
		if o.AvgRTT > maxRTT {
			maxRTT = o.AvgRTT
		}
	}

	graph := chart.BarChart{
		Title: p.Sprintf(msgChartTitle),
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:    1200,
		Height:   400,
		BarWidth: 60,
		XAxis: chart.Style{
			StrokeColor: drawing.ColorBlack,
			FontSize:    9,
		},
		YAxis: chart.YAxis{
			Name: p.Sprintf(msgChartAxis),
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: maxRTT * 1.1,
			},
		},
		Bars: bars,
	}

	file, err := os.Create(filename)
	if err != nil {
		return false, err
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return false, err
	}
	return true, nil
}
