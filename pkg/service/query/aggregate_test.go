package query_test

import (
	"testing"

	"github.com/crashlens/crashlens/pkg/domain/model"
	"github.com/crashlens/crashlens/pkg/domain/types"
	"github.com/crashlens/crashlens/pkg/service/query"
	"github.com/m-mizutani/gt"
)

func TestAggregate(t *testing.T) {
	ds := scenarioDataset()
	all := query.NewView(ds)

	t.Run("Brooklyn scenario", func(t *testing.T) {
		v, err := query.Filter(all, model.Criteria{Borough: "Brooklyn"})
		gt.NoError(t, err).Required()
		gt.Equal(t, v.Len(), 2)

		report := query.Aggregate(v)
		gt.False(t, report.Empty)
		gt.Equal(t, report.BySeverity, []model.LabelCount{
			{Label: "Fatal", Count: 1},
			{Label: "No Injury", Count: 1},
		})
		gt.Equal(t, report.Summary, model.Summary{Crashes: 2, Injured: 0, Killed: 1})
		gt.Equal(t, report.ByBorough, []model.LabelCount{{Label: "Brooklyn", Count: 2}})
	})

	t.Run("empty subset yields no-data report", func(t *testing.T) {
		v, err := query.Filter(all, model.Criteria{Borough: "Staten Island"})
		gt.NoError(t, err).Required()

		report := query.Aggregate(v)
		gt.True(t, report.Empty)
		gt.Equal(t, report.Summary, model.Summary{Crashes: 0, Injured: 0, Killed: 0})
		gt.Equal(t, len(report.ByBorough), 0)
		gt.Equal(t, len(report.Density), 0)
	})

	t.Run("by-borough counts largest first", func(t *testing.T) {
		report := query.Aggregate(all)
		gt.Equal(t, report.ByBorough, []model.LabelCount{
			{Label: "Brooklyn", Count: 2},
			{Label: "Queens", Count: 1},
		})
	})

	t.Run("monthly series only includes months of the subset", func(t *testing.T) {
		report := query.Aggregate(all)
		gt.Equal(t, report.MonthlyInjuries, []model.MonthValue{
			{Month: "2021-03", Injured: 0},
			{Month: "2021-04", Injured: 2},
			{Month: "2022-07", Injured: 0},
		})

		v, err := query.Filter(all, model.Criteria{Year: "2022"})
		gt.NoError(t, err).Required()
		report = query.Aggregate(v)
		gt.Equal(t, report.MonthlyInjuries, []model.MonthValue{{Month: "2022-07", Injured: 0}})
	})

	t.Run("monthly series sums injured per month", func(t *testing.T) {
		sameMonth := model.NewDataset("month", fullSchema(), []model.Record{
			newRecord("Queens", "2021-05-01", 1, 3, 0),
			newRecord("Queens", "2021-05-20", 2, 4, 0),
		})
		report := query.Aggregate(query.NewView(sameMonth))
		gt.Equal(t, report.MonthlyInjuries, []model.MonthValue{{Month: "2021-05", Injured: 7}})
	})

	t.Run("density is ordered by week then hour", func(t *testing.T) {
		week := model.NewDataset("week", fullSchema(), []model.Record{
			newRecord("Queens", "2021-03-07", 5, 0, 0),  // Sunday
			newRecord("Queens", "2021-03-02", 14, 0, 0), // Tuesday
			newRecord("Queens", "2021-03-01", 20, 0, 0), // Monday
			newRecord("Queens", "2021-03-01", 3, 0, 0),  // Monday
			newRecord("Queens", "2021-03-08", 3, 0, 0),  // Monday
		})
		report := query.Aggregate(query.NewView(week))
		gt.True(t, report.DensityAvailable)
		gt.Equal(t, report.Density, []model.DensityCell{
			{Day: "Monday", Hour: 3, Count: 2},
			{Day: "Monday", Hour: 20, Count: 1},
			{Day: "Tuesday", Hour: 14, Count: 1},
			{Day: "Sunday", Hour: 5, Count: 1},
		})
	})

	t.Run("density skips rows without hour", func(t *testing.T) {
		noHour := newRecord("Queens", "2021-03-01", 0, 0, 0)
		noHour.HasHour = false
		ds := model.NewDataset("partial", fullSchema(), []model.Record{
			noHour,
			newRecord("Queens", "2021-03-01", 9, 0, 0),
		})
		report := query.Aggregate(query.NewView(ds))
		gt.Equal(t, report.Density, []model.DensityCell{{Day: "Monday", Hour: 9, Count: 1}})
	})

	t.Run("density is unavailable without hour column", func(t *testing.T) {
		ds := model.NewDataset("no-hour",
			model.NewSchema(types.ColumnDate, types.ColumnBorough, types.ColumnYear, types.ColumnSeverity),
			[]model.Record{newRecord("Queens", "2021-03-01", 0, 1, 0)},
		)
		report := query.Aggregate(query.NewView(ds))
		gt.False(t, report.DensityAvailable)
		gt.Equal(t, len(report.Density), 0)
	})

	t.Run("summary treats absent count columns as zero", func(t *testing.T) {
		ds := model.NewDataset("no-counts",
			model.NewSchema(types.ColumnDate, types.ColumnBorough, types.ColumnYear, types.ColumnSeverity),
			[]model.Record{newRecord("Queens", "2021-03-01", 0, 5, 1)},
		)
		report := query.Aggregate(query.NewView(ds))
		gt.Equal(t, report.Summary, model.Summary{Crashes: 1})
	})
}
