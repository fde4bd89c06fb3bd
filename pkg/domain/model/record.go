package model

import (
	"time"

	"github.com/crashlens/crashlens/pkg/domain/types"
)

// UnknownBorough is the borough of every record when the dataset lacks the column
const UnknownBorough = "UNKNOWN"

// Record is one collision entry of the dataset. Empty text fields are null.
type Record struct {
	Date           time.Time
	Hour           int
	HasHour        bool
	DayOfWeek      string
	Borough        string
	Year           int
	Factor         string
	Injured        int
	Killed         int
	PersonTypes    string
	PersonInjuries string
	Severity       types.Severity
}

// Month returns the calendar month key of the record, formatted YYYY-MM
func (r *Record) Month() string {
	return r.Date.Format("2006-01")
}
