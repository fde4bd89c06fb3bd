package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/crashlens/crashlens/pkg/domain/model"
	"github.com/crashlens/crashlens/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// naTokens are the cell values read as missing, following the pandas defaults
var naTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// isNA reports whether a trimmed cell holds no value
func isNA(v string) bool {
	_, ok := naTokens[v]
	return ok
}

// dateLayouts are the accepted layouts of the crash date column
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"01/02/2006 15:04:05",
}

// LoadFile loads the dataset from the first existing path
func LoadFile(ctx context.Context, paths []string, cols model.ColumnsConfig) (*model.Dataset, error) {
	logger := ctxlog.From(ctx)

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug("Dataset candidate not found", "path", path)
				continue
			}
			return nil, goerr.Wrap(err, "failed to access dataset", goerr.V("path", path))
		}

		f, err := os.Open(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open dataset", goerr.V("path", path))
		}
		defer f.Close()

		ds, err := LoadCSV(ctx, path, f, cols)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load dataset", goerr.V("path", path))
		}

		logger.Info("Loaded dataset",
			"path", path,
			"rows", ds.Len(),
			"columns", ds.Schema().Columns(),
		)
		return ds, nil
	}

	return nil, goerr.New("dataset file not found",
		goerr.V("paths", paths),
		goerr.T(model.ErrTagNotFound))
}

// columnIndex resolves logical columns to CSV field positions
type columnIndex map[types.Column]int

func (idx columnIndex) has(col types.Column) bool {
	_, ok := idx[col]
	return ok
}

func (idx columnIndex) cell(row []string, col types.Column) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// LoadCSV parses a header row and all data rows, then backfills the derived
// columns: borough defaults to UNKNOWN, year comes from the date, hour from
// the time of day, day of week from the date and severity from the
// casualty counts.
func LoadCSV(ctx context.Context, source string, r io.Reader, cols model.ColumnsConfig) (*model.Dataset, error) {
	cols = cols.WithDefaults()
	if err := cols.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid column mapping", goerr.T(model.ErrTagInvalidDataset))
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read CSV header", goerr.T(model.ErrTagInvalidDataset))
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.TrimSpace(name)] = i
	}

	idx := make(columnIndex)
	for _, col := range types.AllColumns() {
		if i, ok := positions[cols.Header(col)]; ok {
			idx[col] = i
		}
	}

	if !idx.has(types.ColumnDate) {
		return nil, goerr.New("date column is missing",
			goerr.V("column", cols.Date),
			goerr.T(model.ErrTagInvalidDataset))
	}

	schema := buildSchema(idx)

	var records []model.Record
	for line := 2; ; line++ {
		if line%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, goerr.Wrap(err, "dataset loading cancelled")
			}
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read CSV row",
				goerr.V("line", line),
				goerr.T(model.ErrTagInvalidDataset))
		}

		rec, err := parseRecord(idx, row)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid CSV row",
				goerr.V("line", line),
				goerr.T(model.ErrTagInvalidDataset))
		}
		records = append(records, rec)
	}

	return model.NewDataset(source, schema, records), nil
}

// buildSchema lists the columns present after backfilling
func buildSchema(idx columnIndex) model.Schema {
	cols := []types.Column{
		types.ColumnDate,
		types.ColumnBorough,
		types.ColumnYear,
		types.ColumnDayOfWeek,
		types.ColumnSeverity,
	}
	if idx.has(types.ColumnTime) {
		cols = append(cols, types.ColumnTime)
	}
	if idx.has(types.ColumnHour) || idx.has(types.ColumnTime) {
		cols = append(cols, types.ColumnHour)
	}
	for _, optional := range []types.Column{
		types.ColumnFactor,
		types.ColumnInjured,
		types.ColumnKilled,
		types.ColumnPersonTypes,
		types.ColumnPersonInjuries,
	} {
		if idx.has(optional) {
			cols = append(cols, optional)
		}
	}
	return model.NewSchema(cols...)
}

func parseRecord(idx columnIndex, row []string) (model.Record, error) {
	var rec model.Record

	date, err := parseDate(idx.cell(row, types.ColumnDate))
	if err != nil {
		return rec, err
	}
	rec.Date = date

	if idx.has(types.ColumnBorough) {
		rec.Borough = idx.cell(row, types.ColumnBorough)
	} else {
		rec.Borough = model.UnknownBorough
	}

	rec.Year = date.Year()
	if v := strings.TrimSpace(idx.cell(row, types.ColumnYear)); !isNA(v) {
		year, err := parseCount(v)
		if err != nil {
			return rec, goerr.Wrap(err, "invalid year", goerr.V("value", v))
		}
		rec.Year = year
	}

	switch {
	case idx.has(types.ColumnHour):
		if v := strings.TrimSpace(idx.cell(row, types.ColumnHour)); !isNA(v) {
			hour, err := parseCount(v)
			if err != nil {
				return rec, goerr.Wrap(err, "invalid hour", goerr.V("value", v))
			}
			rec.Hour, rec.HasHour = hour, true
		}
	case idx.has(types.ColumnTime):
		// unparseable times leave the hour null
		if t, err := time.Parse("15:04", strings.TrimSpace(idx.cell(row, types.ColumnTime))); err == nil {
			rec.Hour, rec.HasHour = t.Hour(), true
		}
	}

	rec.DayOfWeek = idx.cell(row, types.ColumnDayOfWeek)
	if !idx.has(types.ColumnDayOfWeek) {
		rec.DayOfWeek = types.DayName(date)
	}

	rec.Factor = idx.cell(row, types.ColumnFactor)
	rec.PersonTypes = idx.cell(row, types.ColumnPersonTypes)
	rec.PersonInjuries = idx.cell(row, types.ColumnPersonInjuries)

	if rec.Injured, err = parseOptionalCount(idx.cell(row, types.ColumnInjured)); err != nil {
		return rec, goerr.Wrap(err, "invalid injured count")
	}
	if rec.Killed, err = parseOptionalCount(idx.cell(row, types.ColumnKilled)); err != nil {
		return rec, goerr.Wrap(err, "invalid killed count")
	}

	if idx.has(types.ColumnSeverity) {
		rec.Severity = types.Severity(idx.cell(row, types.ColumnSeverity))
	} else {
		rec.Severity = types.ClassifySeverity(rec.Injured, rec.Killed)
	}

	return rec, nil
}

func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, goerr.New("unparseable date", goerr.V("value", v))
}

// parseCount accepts integers and whole floats such as "2.0"
func parseCount(v string) (int, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, goerr.Wrap(err, "not a number", goerr.V("value", v))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, goerr.New("not a finite number", goerr.V("value", v))
	}
	return int(math.Round(f)), nil
}

// parseOptionalCount treats blank and missing cells as zero
func parseOptionalCount(v string) (int, error) {
	v = strings.TrimSpace(v)
	if isNA(v) {
		return 0, nil
	}
	return parseCount(v)
}
