package model

import (
	"strconv"

	"github.com/crashlens/crashlens/pkg/domain/types"
)

// Schema tells which logical columns a dataset carries after backfilling.
// Lookups through a Schema yield the zero value for absent columns.
type Schema struct {
	columns map[types.Column]bool
}

// NewSchema creates a schema carrying the given columns
func NewSchema(cols ...types.Column) Schema {
	s := Schema{columns: make(map[types.Column]bool, len(cols))}
	for _, c := range cols {
		s.columns[c] = true
	}
	return s
}

// Has reports whether the column is present
func (s Schema) Has(col types.Column) bool {
	return s.columns[col]
}

// Columns returns present columns in canonical order
func (s Schema) Columns() []types.Column {
	var cols []types.Column
	for _, c := range types.AllColumns() {
		if s.columns[c] {
			cols = append(cols, c)
		}
	}
	return cols
}

// Text returns the searchable text value of a column, or "" when the
// column is absent or the cell is null.
func (s Schema) Text(r *Record, col types.Column) string {
	if !s.Has(col) {
		return ""
	}
	switch col {
	case types.ColumnBorough:
		return r.Borough
	case types.ColumnFactor:
		return r.Factor
	case types.ColumnPersonTypes:
		return r.PersonTypes
	case types.ColumnPersonInjuries:
		return r.PersonInjuries
	case types.ColumnDayOfWeek:
		return r.DayOfWeek
	case types.ColumnSeverity:
		return r.Severity.String()
	case types.ColumnYear:
		return strconv.Itoa(r.Year)
	default:
		return ""
	}
}

// Int returns the numeric value of a count column, or 0 when absent
func (s Schema) Int(r *Record, col types.Column) int {
	if !s.Has(col) {
		return 0
	}
	switch col {
	case types.ColumnInjured:
		return r.Injured
	case types.ColumnKilled:
		return r.Killed
	case types.ColumnYear:
		return r.Year
	default:
		return 0
	}
}

// Dataset is the collision table loaded at startup. It is never mutated
// after construction and is safe for concurrent readers.
type Dataset struct {
	source  string
	schema  Schema
	records []Record
}

// NewDataset creates a dataset from backfilled records
func NewDataset(source string, schema Schema, records []Record) *Dataset {
	return &Dataset{
		source:  source,
		schema:  schema,
		records: records,
	}
}

// Source returns where the dataset was loaded from
func (d *Dataset) Source() string {
	return d.source
}

// Schema returns the dataset schema
func (d *Dataset) Schema() Schema {
	return d.schema
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.records)
}

// Record returns the i-th record. Callers must treat it as read-only.
func (d *Dataset) Record(i int) *Record {
	return &d.records[i]
}
