package query

import (
	"sort"
	"strconv"

	"github.com/crashlens/crashlens/pkg/domain/model"
	"github.com/crashlens/crashlens/pkg/domain/types"
)

// FilterOptions lists the distinct values of each criterion present in
// ds, sorted and prefixed with "All"
func FilterOptions(ds *model.Dataset) *model.FilterOptions {
	schema := ds.Schema()

	boroughs := make(map[string]struct{})
	years := make(map[int]struct{})
	factors := make(map[string]struct{})
	severities := make(map[string]struct{})

	for i := 0; i < ds.Len(); i++ {
		r := ds.Record(i)
		if r.Borough != "" && r.Borough != model.UnknownBorough {
			boroughs[r.Borough] = struct{}{}
		}
		years[r.Year] = struct{}{}
		if schema.Has(types.ColumnFactor) && r.Factor != "" {
			factors[r.Factor] = struct{}{}
		}
		if r.Severity != "" {
			severities[r.Severity.String()] = struct{}{}
		}
	}

	yearList := make([]int, 0, len(years))
	for y := range years {
		yearList = append(yearList, y)
	}
	sort.Ints(yearList)
	yearOptions := []string{model.AllValue}
	for _, y := range yearList {
		yearOptions = append(yearOptions, strconv.Itoa(y))
	}

	return &model.FilterOptions{
		Boroughs:   withAll(boroughs),
		Years:      yearOptions,
		Factors:    withAll(factors),
		Severities: withAll(severities),
	}
}

func withAll(set map[string]struct{}) []string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return append([]string{model.AllValue}, values...)
}
