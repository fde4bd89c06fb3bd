package interfaces

import "time"

// Metrics records report generation telemetry
type Metrics interface {
	RecordReport(outcome string, duration time.Duration, matched int)
	SetDatasetRows(rows int)
}
