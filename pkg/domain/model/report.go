package model

import (
	"fmt"

	"github.com/crashlens/crashlens/pkg/domain/types"
	"github.com/dustin/go-humanize"
)

// NoDataMessage is shown when a selection matches no record
const NoDataMessage = "No data found for this selection."

// LabelCount is a row count for one category value
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// MonthValue is the injured total of one calendar month
type MonthValue struct {
	Month   string `json:"month"`
	Injured int    `json:"injured"`
}

// DensityCell is the crash count of one weekday and hour
type DensityCell struct {
	Day   string `json:"day"`
	Hour  int    `json:"hour"`
	Count int    `json:"count"`
}

// Summary holds the scalar totals of a report
type Summary struct {
	Crashes int `json:"crashes"`
	Injured int `json:"injured"`
	Killed  int `json:"killed"`
}

// Text renders the summary line shown next to the charts
func (s Summary) Text() string {
	if s.Crashes == 0 {
		return NoDataMessage
	}
	return fmt.Sprintf("Report generated on %s crashes | Injured: %s | Fatalities: %s",
		humanize.Comma(int64(s.Crashes)),
		humanize.Comma(int64(s.Injured)),
		humanize.Comma(int64(s.Killed)),
	)
}

// Report bundles the four projections and the summary of a filtered subset.
// When Empty is set every projection is absent and Summary is zero.
type Report struct {
	ID       types.ReportID `json:"report_id,omitempty"`
	Criteria Criteria       `json:"criteria"`
	Empty    bool           `json:"empty"`

	ByBorough       []LabelCount `json:"by_borough,omitempty"`
	MonthlyInjuries []MonthValue `json:"monthly_injuries,omitempty"`
	BySeverity      []LabelCount `json:"by_severity,omitempty"`

	// DensityAvailable is false when the dataset has no hour information
	DensityAvailable bool          `json:"density_available"`
	Density          []DensityCell `json:"density,omitempty"`

	Summary Summary `json:"summary"`
}

// NewEmptyReport returns the no-data report
func NewEmptyReport() *Report {
	return &Report{Empty: true}
}
