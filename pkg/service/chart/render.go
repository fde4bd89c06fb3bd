package chart

import (
	"io"
	"math"
	"strings"
	"time"

	"github.com/crashlens/crashlens/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const monthLayout = "2006-01"

// RenderPNG draws a chart configuration as a PNG image
func RenderPNG(w io.Writer, cfg *model.ChartConfig, opts ...Option) error {
	if cfg == nil {
		return goerr.New("chart config is nil")
	}
	c := applyOptions(opts)

	var err error
	switch cfg.ChartType {
	case model.ChartTypeBar:
		err = renderBar(w, cfg, c)
	case model.ChartTypeLine:
		err = renderLine(w, cfg, c)
	case model.ChartTypePie:
		err = renderPie(w, cfg, c)
	case model.ChartTypeHeatmap:
		err = renderHeatmap(w, cfg, c)
	case model.ChartTypeEmpty:
		err = renderPlaceholder(w, cfg.Title, c)
	default:
		return goerr.New("unsupported chart type", goerr.V("chart_type", cfg.ChartType))
	}
	if err != nil {
		return goerr.Wrap(err, "failed to render chart",
			goerr.V("chart_type", cfg.ChartType),
			goerr.V("title", cfg.Title))
	}
	return nil
}

func firstSeries(cfg *model.ChartConfig) []model.ChartPoint {
	if len(cfg.Series) == 0 {
		return nil
	}
	return cfg.Series[0].Data
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// upperBound keeps the axis range non-degenerate when every value is zero
func upperBound(points []model.ChartPoint) float64 {
	maxValue := 0.0
	for _, p := range points {
		maxValue = math.Max(maxValue, p.Value)
	}
	if maxValue < 1 {
		return 1
	}
	return maxValue * 1.1
}

func renderBar(w io.Writer, cfg *model.ChartConfig, c *config) error {
	points := firstSeries(cfg)
	if len(points) == 0 {
		return renderPlaceholder(w, cfg.Title, c)
	}

	fill := color(barColor)
	if cfg.Series[0].Color != "" {
		fill = color(cfg.Series[0].Color)
	}

	bars := make([]gochart.Value, 0, len(points))
	for _, p := range points {
		bars = append(bars, gochart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: gochart.Style{FillColor: fill, StrokeColor: fill},
		})
	}

	bc := gochart.BarChart{
		Title:      cfg.Title,
		Width:      c.width,
		Height:     c.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: gochart.YAxis{
			Name:  cfg.YAxis,
			Range: &gochart.ContinuousRange{Min: 0, Max: upperBound(points)},
		},
		Bars: bars,
	}
	return bc.Render(gochart.PNG, w)
}

func renderLine(w io.Writer, cfg *model.ChartConfig, c *config) error {
	points := firstSeries(cfg)

	xs := make([]time.Time, 0, len(points))
	ys := make([]float64, 0, len(points))
	for _, p := range points {
		t, err := time.Parse(monthLayout, p.Label)
		if err != nil {
			return goerr.Wrap(err, "invalid month label", goerr.V("label", p.Label))
		}
		xs = append(xs, t)
		ys = append(ys, p.Value)
	}
	if len(xs) == 0 {
		return renderPlaceholder(w, cfg.Title, c)
	}
	// a single point has no x range, pad it
	if len(xs) == 1 {
		xs = append(xs, xs[0].Add(24*time.Hour))
		ys = append(ys, ys[0])
	}

	stroke := color(lineColor)
	if cfg.Series[0].Color != "" {
		stroke = color(cfg.Series[0].Color)
	}

	ch := gochart.Chart{
		Title:      cfg.Title,
		Width:      c.width,
		Height:     c.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:           cfg.XAxis,
			ValueFormatter: gochart.TimeValueFormatterWithFormat(monthLayout),
		},
		YAxis: gochart.YAxis{
			Name:  cfg.YAxis,
			Range: &gochart.ContinuousRange{Min: 0, Max: upperBound(points)},
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    cfg.Series[0].Name,
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: stroke,
					StrokeWidth: 2,
					DotColor:    stroke,
					DotWidth:    3,
				},
			},
		},
	}
	return ch.Render(gochart.PNG, w)
}

func renderPie(w io.Writer, cfg *model.ChartConfig, c *config) error {
	points := firstSeries(cfg)

	total := 0.0
	values := make([]gochart.Value, 0, len(points))
	for i, p := range points {
		total += p.Value
		fill := color(defaultColor)
		if i < len(cfg.Colors) {
			fill = color(cfg.Colors[i])
		}
		values = append(values, gochart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: gochart.Style{FillColor: fill, StrokeColor: drawing.ColorWhite},
		})
	}
	if total <= 0 {
		return renderPlaceholder(w, cfg.Title, c)
	}

	pc := gochart.PieChart{
		Title:  cfg.Title,
		Width:  c.width,
		Height: c.height,
		Values: values,
	}
	return pc.Render(gochart.PNG, w)
}
