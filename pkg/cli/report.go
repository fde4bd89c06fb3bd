package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/crashlens/crashlens/pkg/cli/config"
	"github.com/crashlens/crashlens/pkg/domain/model"
	"github.com/crashlens/crashlens/pkg/repository"
	"github.com/crashlens/crashlens/pkg/service/chart"
	"github.com/crashlens/crashlens/pkg/usecase"
	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type reportOutput struct {
	ReportID    string         `json:"report_id"`
	Criteria    model.Criteria `json:"criteria"`
	Report      *model.Report  `json:"report"`
	Charts      model.Charts   `json:"charts"`
	SummaryText string         `json:"summary_text"`
}

func cmdReport() *cli.Command {
	var (
		datasetCfg config.Dataset
		criteria   model.Criteria
		format     string
		chartDir   string
	)

	flags := joinFlags(
		datasetCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "borough",
				Usage:       "Borough filter",
				Category:    "Filter",
				Value:       model.AllValue,
				Destination: &criteria.Borough,
			},
			&cli.StringFlag{
				Name:        "year",
				Usage:       "Year filter",
				Category:    "Filter",
				Value:       model.AllValue,
				Destination: &criteria.Year,
			},
			&cli.StringFlag{
				Name:        "factor",
				Usage:       "Contributing factor filter",
				Category:    "Filter",
				Value:       model.AllValue,
				Destination: &criteria.Factor,
			},
			&cli.StringFlag{
				Name:        "severity",
				Usage:       "Severity filter (Fatal, Injury, No Injury)",
				Category:    "Filter",
				Value:       model.AllValue,
				Destination: &criteria.Severity,
			},
			&cli.StringFlag{
				Name:        "search",
				Aliases:     []string{"q"},
				Usage:       "Case-insensitive text search over borough, person and factor columns",
				Category:    "Filter",
				Destination: &criteria.SearchQuery,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "Output format (text, json)",
				Value:       formatText,
				Destination: &format,
			},
			&cli.StringFlag{
				Name:        "chart-dir",
				Usage:       "Write the chart images as PNG files into this directory",
				Destination: &chartDir,
			},
		},
	)

	return &cli.Command{
		Name:  "report",
		Usage: "Generate a report from the dataset and print it",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if format != formatText && format != formatJSON {
				return goerr.New("invalid output format", goerr.V("format", format))
			}

			ds, err := datasetCfg.Load(ctx)
			if err != nil {
				return err
			}

			reportUC := usecase.NewReport(repository.NewMemory(ds), nil)
			report, err := reportUC.Generate(ctx, criteria)
			if err != nil {
				return goerr.Wrap(err, "failed to generate report")
			}
			charts := chart.Build(report)

			if chartDir != "" {
				if err := writeCharts(ctx, chartDir, charts); err != nil {
					return err
				}
			}

			w := c.Root().Writer
			if format == formatJSON {
				return writeReportJSON(w, report, charts)
			}
			return writeReportText(w, report)
		},
	}
}

func writeCharts(ctx context.Context, dir string, charts model.Charts) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return goerr.Wrap(err, "failed to create chart directory", goerr.V("dir", dir))
	}

	for _, name := range model.ChartNames() {
		path := filepath.Join(dir, name+".png")
		if err := writeChart(path, charts[name]); err != nil {
			return err
		}
		ctxlog.From(ctx).Info("Chart written", slog.String("path", path))
	}
	return nil
}

func writeChart(path string, cfg *model.ChartConfig) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return goerr.Wrap(err, "failed to create chart file", goerr.V("path", path))
	}
	return renderChartFile(f, path, cfg)
}

// renderChartFile writes the PNG and closes wc, reporting a failed close
func renderChartFile(wc io.WriteCloser, path string, cfg *model.ChartConfig) error {
	if err := chart.RenderPNG(wc, cfg); err != nil {
		_ = wc.Close()
		return goerr.Wrap(err, "failed to write chart", goerr.V("path", path))
	}
	if err := wc.Close(); err != nil {
		return goerr.Wrap(err, "failed to close chart file", goerr.V("path", path))
	}
	return nil
}

func writeReportJSON(w io.Writer, report *model.Report, charts model.Charts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	out := reportOutput{
		ReportID:    report.ID.String(),
		Criteria:    report.Criteria,
		Report:      report,
		Charts:      charts,
		SummaryText: report.Summary.Text(),
	}
	if err := enc.Encode(out); err != nil {
		return goerr.Wrap(err, "failed to encode report")
	}
	return nil
}

func writeReportText(w io.Writer, report *model.Report) error {
	p := &printer{w: w}
	p.line(report.Summary.Text())
	if report.Empty {
		return p.err
	}

	p.line("")
	p.line(chart.TitleBorough)
	for _, c := range report.ByBorough {
		p.line(fmt.Sprintf("  %-20s %s", c.Label, humanize.Comma(int64(c.Count))))
	}

	p.line("")
	p.line(chart.TitleTime)
	for _, m := range report.MonthlyInjuries {
		p.line(fmt.Sprintf("  %-20s %s", m.Month, humanize.Comma(int64(m.Injured))))
	}

	p.line("")
	p.line(chart.TitleSeverity)
	for _, c := range report.BySeverity {
		p.line(fmt.Sprintf("  %-20s %s", c.Label, humanize.Comma(int64(c.Count))))
	}

	p.line("")
	if !report.DensityAvailable {
		p.line(chart.TitleNoHourField)
		return p.err
	}
	p.line(chart.TitleHeatmap)
	for _, d := range report.Density {
		p.line(fmt.Sprintf("  %-10s %02d:00  %s", d.Day, d.Hour, humanize.Comma(int64(d.Count))))
	}
	return p.err
}

// printer keeps the first write error
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	if _, err := fmt.Fprintln(p.w, s); err != nil {
		p.err = goerr.Wrap(err, "failed to write report")
	}
}
