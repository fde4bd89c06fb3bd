package query_test

import (
	"time"

	"github.com/crashlens/crashlens/pkg/domain/model"
	"github.com/crashlens/crashlens/pkg/domain/types"
)

func fullSchema() model.Schema {
	return model.NewSchema(
		types.ColumnDate,
		types.ColumnBorough,
		types.ColumnYear,
		types.ColumnHour,
		types.ColumnDayOfWeek,
		types.ColumnSeverity,
		types.ColumnFactor,
		types.ColumnInjured,
		types.ColumnKilled,
		types.ColumnPersonTypes,
		types.ColumnPersonInjuries,
	)
}

// newRecord builds a backfilled record the way ingestion does
func newRecord(borough, date string, hour, injured, killed int) model.Record {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return model.Record{
		Date:      d,
		Hour:      hour,
		HasHour:   true,
		DayOfWeek: types.DayName(d),
		Borough:   borough,
		Year:      d.Year(),
		Injured:   injured,
		Killed:    killed,
		Severity:  types.ClassifySeverity(injured, killed),
	}
}

// scenarioDataset holds three rows: a fatal Brooklyn crash in 2021,
// an injury crash in Queens in 2021 and a harmless Brooklyn crash in 2022
func scenarioDataset() *model.Dataset {
	first := newRecord("Brooklyn", "2021-03-01", 8, 0, 1)
	first.Factor = "Driver Inattention/Distraction"
	first.PersonTypes = "Pedestrian"

	second := newRecord("Queens", "2021-04-06", 17, 2, 0)
	second.Factor = "Unspecified"
	second.PersonTypes = "Occupant"
	second.PersonInjuries = "Injured"

	third := newRecord("Brooklyn", "2022-07-10", 8, 0, 0)

	return model.NewDataset("scenario", fullSchema(), []model.Record{first, second, third})
}
