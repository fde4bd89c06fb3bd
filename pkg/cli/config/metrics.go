package config

import (
	"log/slog"

	"github.com/crashlens/crashlens/pkg/service/metrics"
	"github.com/urfave/cli/v3"
)

// Metrics holds Prometheus metrics configuration
type Metrics struct {
	Enabled   bool
	Namespace string
}

// Flags returns CLI flags for Metrics configuration
func (m *Metrics) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "metrics",
			Usage:       "Expose Prometheus metrics at /metrics",
			Category:    "Metrics",
			Sources:     cli.EnvVars("CRASHLENS_METRICS"),
			Destination: &m.Enabled,
		},
		&cli.StringFlag{
			Name:        "metrics-namespace",
			Usage:       "Prometheus metric namespace",
			Category:    "Metrics",
			Value:       "crashlens",
			Sources:     cli.EnvVars("CRASHLENS_METRICS_NAMESPACE"),
			Destination: &m.Namespace,
		},
	}
}

// Configure returns a collector, or nil when metrics are disabled
func (m *Metrics) Configure() *metrics.Collector {
	if !m.Enabled {
		return nil
	}
	return metrics.NewCollector(m.Namespace, nil)
}

// LogValue returns structured log value
func (m Metrics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", m.Enabled),
		slog.String("namespace", m.Namespace),
	)
}
