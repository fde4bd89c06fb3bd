package query

import (
	"strconv"
	"strings"

	"github.com/crashlens/crashlens/pkg/domain/model"
	"github.com/crashlens/crashlens/pkg/domain/types"
)

// matcher holds the active criteria of one filter pass
type matcher struct {
	borough    string
	hasBorough bool
	year       int
	hasYear    bool
	factor     string
	hasFactor  bool
	severity   string
	hasSev     bool
	search     string
	hasSearch  bool
}

func newMatcher(schema model.Schema, c model.Criteria) (*matcher, error) {
	year, hasYear, err := c.YearValue()
	if err != nil {
		return nil, err
	}

	m := &matcher{year: year, hasYear: hasYear}
	m.borough, m.hasBorough = c.BoroughValue()

	// factor and severity narrow only when the dataset carries the column
	if schema.Has(types.ColumnFactor) {
		m.factor, m.hasFactor = c.FactorValue()
	}
	if schema.Has(types.ColumnSeverity) {
		m.severity, m.hasSev = c.SeverityValue()
	}
	m.search, m.hasSearch = c.SearchTerm()

	return m, nil
}

func (m *matcher) active() bool {
	return m.hasBorough || m.hasYear || m.hasFactor || m.hasSev || m.hasSearch
}

func (m *matcher) match(schema model.Schema, r *model.Record) bool {
	if m.hasBorough && r.Borough != m.borough {
		return false
	}
	if m.hasYear && r.Year != m.year {
		return false
	}
	if m.hasFactor && r.Factor != m.factor {
		return false
	}
	if m.hasSev && r.Severity.String() != m.severity {
		return false
	}
	if m.hasSearch && !m.matchSearch(schema, r) {
		return false
	}
	return true
}

// matchSearch is an OR across the searchable text columns and the year
func (m *matcher) matchSearch(schema model.Schema, r *model.Record) bool {
	for _, col := range []types.Column{
		types.ColumnBorough,
		types.ColumnPersonTypes,
		types.ColumnPersonInjuries,
		types.ColumnFactor,
	} {
		if strings.Contains(strings.ToLower(schema.Text(r, col)), m.search) {
			return true
		}
	}
	return strings.Contains(strconv.Itoa(r.Year), m.search)
}

// Filter returns the rows of view matching every active criterion, in
// their original order. A criterion left empty or set to "All" matches
// everything. It fails with model.ErrTagInvalidCriteria when the year
// selection is not an integer.
func Filter(view View, criteria model.Criteria) (View, error) {
	schema := view.Schema()

	m, err := newMatcher(schema, criteria)
	if err != nil {
		return View{}, err
	}
	if !m.active() {
		return view, nil
	}

	n := view.Len()
	positions := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if m.match(schema, view.Record(i)) {
			positions = append(positions, i)
		}
	}

	return view.subView(positions), nil
}
