package query

import (
	"sort"

	"github.com/crashlens/crashlens/pkg/domain/model"
	"github.com/crashlens/crashlens/pkg/domain/types"
)

// Aggregate computes the report projections of a filtered view. An empty
// view yields the no-data report with a zero summary.
func Aggregate(view View) *model.Report {
	if view.Len() == 0 {
		return model.NewEmptyReport()
	}

	report := &model.Report{
		ByBorough:       countByBorough(view),
		MonthlyInjuries: injuriesByMonth(view),
		BySeverity:      countBySeverity(view),
		Summary:         summarize(view),
	}

	if view.Schema().Has(types.ColumnHour) {
		report.DensityAvailable = true
		report.Density = densityByDayAndHour(view)
	}

	return report
}

func countByBorough(view View) []model.LabelCount {
	return countBy(view, func(r *model.Record) string { return r.Borough })
}

func countBySeverity(view View) []model.LabelCount {
	return countBy(view, func(r *model.Record) string { return r.Severity.String() })
}

// countBy counts rows per non-null key, largest count first
func countBy(view View, key func(r *model.Record) string) []model.LabelCount {
	counts := make(map[string]int)
	for i := 0; i < view.Len(); i++ {
		k := key(view.Record(i))
		if k == "" {
			continue
		}
		counts[k]++
	}

	result := make([]model.LabelCount, 0, len(counts))
	for label, count := range counts {
		result = append(result, model.LabelCount{Label: label, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Label < result[j].Label
	})
	return result
}

// injuriesByMonth sums injured persons per calendar month present in the
// view, in chronological order. Months without rows are not filled.
func injuriesByMonth(view View) []model.MonthValue {
	schema := view.Schema()
	sums := make(map[string]int)
	for i := 0; i < view.Len(); i++ {
		r := view.Record(i)
		sums[r.Month()] += schema.Int(r, types.ColumnInjured)
	}

	result := make([]model.MonthValue, 0, len(sums))
	for month, injured := range sums {
		result = append(result, model.MonthValue{Month: month, Injured: injured})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month < result[j].Month
	})
	return result
}

type dayHour struct {
	day  string
	hour int
}

// densityByDayAndHour counts rows per weekday and hour, ordered Monday to
// Sunday and then by hour. Rows without an hour are skipped.
func densityByDayAndHour(view View) []model.DensityCell {
	counts := make(map[dayHour]int)
	for i := 0; i < view.Len(); i++ {
		r := view.Record(i)
		if !r.HasHour || r.DayOfWeek == "" {
			continue
		}
		counts[dayHour{day: r.DayOfWeek, hour: r.Hour}]++
	}

	result := make([]model.DensityCell, 0, len(counts))
	for k, count := range counts {
		result = append(result, model.DensityCell{Day: k.day, Hour: k.hour, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		ri, rj := types.DayRank(result[i].Day), types.DayRank(result[j].Day)
		if ri != rj {
			return ri < rj
		}
		if result[i].Day != result[j].Day {
			return result[i].Day < result[j].Day
		}
		return result[i].Hour < result[j].Hour
	})
	return result
}

func summarize(view View) model.Summary {
	schema := view.Schema()
	s := model.Summary{Crashes: view.Len()}
	for i := 0; i < view.Len(); i++ {
		r := view.Record(i)
		s.Injured += schema.Int(r, types.ColumnInjured)
		s.Killed += schema.Int(r, types.ColumnKilled)
	}
	return s
}
