package chart

import (
	"strconv"

	"github.com/crashlens/crashlens/pkg/domain/model"
	"github.com/crashlens/crashlens/pkg/domain/types"
)

// Chart titles
const (
	TitleBorough     = "Crashes by Borough"
	TitleTime        = "Injured Persons Over Time"
	TitleSeverity    = "Crash Severity Distribution"
	TitleHeatmap     = "Crash Density by Hour and Day of Week"
	TitleNoData      = "No data for selected filters"
	TitleNoHourField = "No HOUR information available"
)

// severityColors keeps severity slices the same color across charts
var severityColors = map[string]string{
	types.SeverityFatal.String():    "#d62728",
	types.SeverityInjury.String():   "#ff7f0e",
	types.SeverityNoInjury.String(): "#2ca02c",
}

const (
	lineColor    = "#667eea"
	barColor     = "#4F46E5"
	defaultColor = "#7f7f7f"
)

// Build converts a report into the four render-ready charts
func Build(report *model.Report) model.Charts {
	if report.Empty {
		charts := make(model.Charts, len(model.ChartNames()))
		for _, name := range model.ChartNames() {
			charts[name] = placeholder(TitleNoData)
		}
		return charts
	}

	return model.Charts{
		model.ChartBorough:  buildBorough(report),
		model.ChartTime:     buildTime(report),
		model.ChartSeverity: buildSeverity(report),
		model.ChartHeatmap:  buildHeatmap(report),
	}
}

// BuildOne converts a report into the named chart
func BuildOne(report *model.Report, name string) (*model.ChartConfig, bool) {
	cfg, ok := Build(report)[name]
	return cfg, ok
}

func placeholder(title string) *model.ChartConfig {
	return &model.ChartConfig{
		ChartType: model.ChartTypeEmpty,
		Title:     title,
		Series:    []model.ChartSeries{},
	}
}

func buildBorough(report *model.Report) *model.ChartConfig {
	points := make([]model.ChartPoint, 0, len(report.ByBorough))
	for _, c := range report.ByBorough {
		points = append(points, model.ChartPoint{Label: c.Label, Value: float64(c.Count)})
	}

	return &model.ChartConfig{
		ChartType: model.ChartTypeBar,
		Title:     TitleBorough,
		XAxis:     "BOROUGH",
		YAxis:     "Number of Crashes",
		Series:    []model.ChartSeries{{Name: "COUNT", Data: points, Color: barColor}},
	}
}

func buildTime(report *model.Report) *model.ChartConfig {
	points := make([]model.ChartPoint, 0, len(report.MonthlyInjuries))
	for _, m := range report.MonthlyInjuries {
		points = append(points, model.ChartPoint{Label: m.Month, Value: float64(m.Injured)})
	}

	return &model.ChartConfig{
		ChartType: model.ChartTypeLine,
		Title:     TitleTime,
		XAxis:     "MONTH",
		YAxis:     "Total Injured",
		Series:    []model.ChartSeries{{Name: "NUMBER_OF_PERSONS_INJURED", Data: points, Color: lineColor}},
	}
}

func buildSeverity(report *model.Report) *model.ChartConfig {
	points := make([]model.ChartPoint, 0, len(report.BySeverity))
	colors := make([]string, 0, len(report.BySeverity))
	for _, c := range report.BySeverity {
		points = append(points, model.ChartPoint{Label: c.Label, Value: float64(c.Count)})
		colors = append(colors, SeverityColor(c.Label))
	}

	return &model.ChartConfig{
		ChartType:  model.ChartTypePie,
		Title:      TitleSeverity,
		Series:     []model.ChartSeries{{Name: "SEVERITY", Data: points}},
		Colors:     colors,
		ShowLegend: true,
	}
}

// buildHeatmap emits one series per weekday, in the order of the density
// cells, with one point per hour
func buildHeatmap(report *model.Report) *model.ChartConfig {
	if !report.DensityAvailable {
		return placeholder(TitleNoHourField)
	}

	var series []model.ChartSeries
	pos := make(map[string]int)
	for _, cell := range report.Density {
		i, ok := pos[cell.Day]
		if !ok {
			i = len(series)
			pos[cell.Day] = i
			series = append(series, model.ChartSeries{Name: cell.Day})
		}
		series[i].Data = append(series[i].Data, model.ChartPoint{
			Label: strconv.Itoa(cell.Hour),
			Value: float64(cell.Count),
		})
	}
	if series == nil {
		series = []model.ChartSeries{}
	}

	return &model.ChartConfig{
		ChartType: model.ChartTypeHeatmap,
		Title:     TitleHeatmap,
		XAxis:     "HOUR",
		YAxis:     "DAY_OF_WEEK",
		Series:    series,
	}
}

// SeverityColor returns the display color of a severity label
func SeverityColor(label string) string {
	if c, ok := severityColors[label]; ok {
		return c
	}
	return defaultColor
}
