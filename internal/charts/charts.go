// Package charts renders the dashboard datasets as PNG images.
package charts

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"budgetplanner/internal/stats"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Generator renders charts at a fixed size.
type Generator struct {
	Width  int
	Height int
	// Currency is appended to axis and wedge labels, e.g. "PLN".
	Currency string
}

// NewGenerator returns a generator with the default dashboard size.
func NewGenerator(currency string) *Generator {
	return &Generator{Width: 1000, Height: 600, Currency: currency}
}

func (g *Generator) background() chart.Style {
	return chart.Style{
		Padding:   chart.Box{Top: 40, Left: 40, Right: 40, Bottom: 40},
		FillColor: chart.ColorWhite,
	}
}

func (g *Generator) money(v float64) string {
	if g.Currency == "" {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.2f %s", v, g.Currency)
}

// RenderCategoryPie draws the expense breakdown. An empty breakdown renders
// nothing and returns nil.
func (g *Generator) RenderCategoryPie(breakdown []stats.CategorySlice) ([]byte, error) {
	if len(breakdown) == 0 {
		return nil, nil
	}

	total := 0.0
	for _, s := range breakdown {
		total += s.Total.InexactFloat64()
	}

	values := make([]chart.Value, 0, len(breakdown))
	for _, s := range breakdown {
		amount := s.Total.InexactFloat64()
		v := chart.Value{
			Label: fmt.Sprintf("%s: %s (%.1f%%)", s.Name, g.money(amount), amount/total*100),
			Value: amount,
			Style: chart.Style{FontSize: 11, FontColor: chart.ColorBlack},
		}
		if c, ok := parseColor(s.Color); ok {
			v.Style.FillColor = c
		}
		values = append(values, v)
	}

	pie := chart.PieChart{
		Title:      "Expenses by category",
		Width:      g.Width,
		Height:     g.Height,
		Values:     values,
		Background: g.background(),
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render category pie: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderTrendLine draws monthly income, expense and net lines. A single month
// is drawn against an empty preceding month, since a line needs two points.
func (g *Generator) RenderTrendLine(trend []stats.TrendPoint) ([]byte, error) {
	if len(trend) == 0 {
		return nil, nil
	}
	if len(trend) == 1 {
		trend = append([]stats.TrendPoint{{Month: trend[0].Month.AddDate(0, -1, 0)}}, trend...)
	}

	months := make([]time.Time, len(trend))
	income := make([]float64, len(trend))
	expense := make([]float64, len(trend))
	net := make([]float64, len(trend))
	for i, p := range trend {
		months[i] = p.Month
		income[i] = p.Income.InexactFloat64()
		expense[i] = p.Expense.InexactFloat64()
		net[i] = p.Net.InexactFloat64()
	}

	graph := chart.Chart{
		Title:      "Monthly trend",
		Width:      g.Width,
		Height:     g.Height,
		Background: g.background(),
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2006"),
			Style:          chart.Style{FontSize: 10, FontColor: chart.ColorBlack},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return g.money(f)
				}
				return ""
			},
			Style: chart.Style{FontSize: 10, FontColor: chart.ColorBlack},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Income",
				XValues: months,
				YValues: income,
				Style:   chart.Style{StrokeColor: chart.ColorGreen, StrokeWidth: 2},
			},
			chart.TimeSeries{
				Name:    "Expense",
				XValues: months,
				YValues: expense,
				Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2},
			},
			chart.TimeSeries{
				Name:    "Net",
				XValues: months,
				YValues: net,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2, StrokeDashArray: []float64{5.0, 5.0}},
			},
		},
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph, chart.Style{FontSize: 10, FontColor: chart.ColorBlack}),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render trend line: %w", err)
	}
	return buf.Bytes(), nil
}

// parseColor reads a "#RRGGBB" category color.
func parseColor(hex string) (drawing.Color, bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return drawing.Color{}, false
	}
	return drawing.ColorFromHex(hex), true
}
