package types

import (
	"github.com/google/uuid"
)

// ReportID identifies a single generated report
type ReportID string

// String returns the string representation
func (id ReportID) String() string {
	return string(id)
}

// NewReportID creates a new ReportID
func NewReportID() ReportID {
	return ReportID(uuid.New().String())
}

// Column is a logical column of the collision dataset
type Column string

const (
	ColumnDate           Column = "date"
	ColumnTime           Column = "time"
	ColumnBorough        Column = "borough"
	ColumnYear           Column = "year"
	ColumnHour           Column = "hour"
	ColumnDayOfWeek      Column = "day_of_week"
	ColumnSeverity       Column = "severity"
	ColumnFactor         Column = "factor"
	ColumnInjured        Column = "injured"
	ColumnKilled         Column = "killed"
	ColumnPersonTypes    Column = "person_types"
	ColumnPersonInjuries Column = "person_injuries"
)

// String returns the string representation
func (c Column) String() string {
	return string(c)
}

// AllColumns lists every logical column in header order of the default mapping
func AllColumns() []Column {
	return []Column{
		ColumnDate,
		ColumnTime,
		ColumnBorough,
		ColumnYear,
		ColumnHour,
		ColumnDayOfWeek,
		ColumnSeverity,
		ColumnFactor,
		ColumnInjured,
		ColumnKilled,
		ColumnPersonTypes,
		ColumnPersonInjuries,
	}
}
