package model

// Chart types understood by the dashboard
const (
	ChartTypeBar     = "bar"
	ChartTypeLine    = "line"
	ChartTypePie     = "pie"
	ChartTypeHeatmap = "heatmap"
	ChartTypeEmpty   = "empty"
)

// Chart names used in the REST payload and chart image routes
const (
	ChartBorough  = "borough"
	ChartTime     = "time"
	ChartSeverity = "severity"
	ChartHeatmap  = "heatmap"
)

// ChartNames returns the chart names in display order
func ChartNames() []string {
	return []string{ChartBorough, ChartTime, ChartSeverity, ChartHeatmap}
}

// ChartConfig is a render-ready chart description
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
}

// ChartSeries is one data series of a chart
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint is a single labelled value
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Charts holds the four charts of a report keyed by chart name
type Charts map[string]*ChartConfig
