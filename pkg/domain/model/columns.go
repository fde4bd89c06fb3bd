package model

import (
	"github.com/crashlens/crashlens/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ColumnsConfig maps logical dataset columns to CSV header names
type ColumnsConfig struct {
	Date           string `yaml:"date"`
	Time           string `yaml:"time"`
	Borough        string `yaml:"borough"`
	Year           string `yaml:"year"`
	Hour           string `yaml:"hour"`
	DayOfWeek      string `yaml:"day_of_week"`
	Severity       string `yaml:"severity"`
	Factor         string `yaml:"factor"`
	Injured        string `yaml:"injured"`
	Killed         string `yaml:"killed"`
	PersonTypes    string `yaml:"person_types"`
	PersonInjuries string `yaml:"person_injuries"`
}

// DefaultColumns returns the header names of the NYC collision extract
func DefaultColumns() ColumnsConfig {
	return ColumnsConfig{
		Date:           "CRASH_DATE",
		Time:           "CRASH_TIME",
		Borough:        "BOROUGH",
		Year:           "YEAR",
		Hour:           "HOUR",
		DayOfWeek:      "DAY_OF_WEEK",
		Severity:       "SEVERITY",
		Factor:         "CONTRIBUTING FACTOR VEHICLE 1",
		Injured:        "NUMBER_OF_PERSONS_INJURED",
		Killed:         "NUMBER_OF_PERSONS_KILLED",
		PersonTypes:    "PERSON_TYPES",
		PersonInjuries: "PERSON_INJURIES",
	}
}

// WithDefaults returns a copy where every unset header falls back to the default name
func (c ColumnsConfig) WithDefaults() ColumnsConfig {
	d := DefaultColumns()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&c.Date, d.Date)
	fill(&c.Time, d.Time)
	fill(&c.Borough, d.Borough)
	fill(&c.Year, d.Year)
	fill(&c.Hour, d.Hour)
	fill(&c.DayOfWeek, d.DayOfWeek)
	fill(&c.Severity, d.Severity)
	fill(&c.Factor, d.Factor)
	fill(&c.Injured, d.Injured)
	fill(&c.Killed, d.Killed)
	fill(&c.PersonTypes, d.PersonTypes)
	fill(&c.PersonInjuries, d.PersonInjuries)
	return c
}

// Header returns the CSV header name for a logical column
func (c ColumnsConfig) Header(col types.Column) string {
	switch col {
	case types.ColumnDate:
		return c.Date
	case types.ColumnTime:
		return c.Time
	case types.ColumnBorough:
		return c.Borough
	case types.ColumnYear:
		return c.Year
	case types.ColumnHour:
		return c.Hour
	case types.ColumnDayOfWeek:
		return c.DayOfWeek
	case types.ColumnSeverity:
		return c.Severity
	case types.ColumnFactor:
		return c.Factor
	case types.ColumnInjured:
		return c.Injured
	case types.ColumnKilled:
		return c.Killed
	case types.ColumnPersonTypes:
		return c.PersonTypes
	case types.ColumnPersonInjuries:
		return c.PersonInjuries
	default:
		return ""
	}
}

// Validate validates the column mapping
func (c ColumnsConfig) Validate() error {
	seen := make(map[string]types.Column)
	for _, col := range types.AllColumns() {
		header := c.Header(col)
		if header == "" {
			return goerr.New("column header is required", goerr.V("column", col))
		}
		if prev, exists := seen[header]; exists {
			return goerr.New("duplicate column header",
				goerr.V("header", header),
				goerr.V("column", col),
				goerr.V("conflict", prev))
		}
		seen[header] = col
	}
	return nil
}
