package model_test

import (
	"encoding/json"
	"testing"

	"github.com/crashlens/crashlens/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestCriteriaYearValue(t *testing.T) {
	t.Run("empty year is inactive", func(t *testing.T) {
		year, ok, err := model.Criteria{}.YearValue()
		gt.NoError(t, err)
		gt.False(t, ok)
		gt.Equal(t, year, 0)
	})

	t.Run("All sentinel is inactive", func(t *testing.T) {
		_, ok, err := model.Criteria{Year: model.AllValue}.YearValue()
		gt.NoError(t, err)
		gt.False(t, ok)
	})

	t.Run("numeric year is parsed", func(t *testing.T) {
		year, ok, err := model.Criteria{Year: "2021"}.YearValue()
		gt.NoError(t, err)
		gt.True(t, ok)
		gt.Equal(t, year, 2021)
	})

	t.Run("non-numeric year is a validation error", func(t *testing.T) {
		_, _, err := model.Criteria{Year: "twenty"}.YearValue()
		gt.Error(t, err)
		gt.B(t, goerr.HasTag(err, model.ErrTagInvalidCriteria)).True()

		err = model.Criteria{Year: "twenty"}.Validate()
		gt.B(t, goerr.HasTag(err, model.ErrTagInvalidCriteria)).True()
	})
}

func TestCriteriaSelections(t *testing.T) {
	c := model.Criteria{
		Borough:  "BROOKLYN",
		Factor:   model.AllValue,
		Severity: "",
	}

	borough, ok := c.BoroughValue()
	gt.True(t, ok)
	gt.Equal(t, borough, "BROOKLYN")

	_, ok = c.FactorValue()
	gt.False(t, ok)

	_, ok = c.SeverityValue()
	gt.False(t, ok)
}

func TestCriteriaSearchTerm(t *testing.T) {
	t.Run("trims and lower-cases", func(t *testing.T) {
		q, ok := model.Criteria{SearchQuery: "  Brook  "}.SearchTerm()
		gt.True(t, ok)
		gt.Equal(t, q, "brook")
	})

	t.Run("whitespace only is inactive", func(t *testing.T) {
		_, ok := model.Criteria{SearchQuery: "   "}.SearchTerm()
		gt.False(t, ok)
	})
}

func TestCriteriaUnmarshalJSON(t *testing.T) {
	t.Run("string year", func(t *testing.T) {
		var c model.Criteria
		gt.NoError(t, json.Unmarshal([]byte(`{"borough":"QUEENS","year":"2021"}`), &c)).Required()
		gt.Equal(t, c.Borough, "QUEENS")
		gt.Equal(t, c.Year, "2021")
	})

	t.Run("numeric year", func(t *testing.T) {
		var c model.Criteria
		gt.NoError(t, json.Unmarshal([]byte(`{"year":2021,"search_query":"sedan"}`), &c)).Required()
		gt.Equal(t, c.Year, "2021")
		gt.Equal(t, c.SearchQuery, "sedan")

		year, ok, err := c.YearValue()
		gt.NoError(t, err)
		gt.True(t, ok)
		gt.Equal(t, year, 2021)
	})

	t.Run("null or missing year is inactive", func(t *testing.T) {
		var c model.Criteria
		gt.NoError(t, json.Unmarshal([]byte(`{"year":null}`), &c)).Required()
		gt.Equal(t, c.Year, "")

		gt.NoError(t, json.Unmarshal([]byte(`{}`), &c)).Required()
		gt.Equal(t, c.Year, "")
	})

	t.Run("fractional year fails validation", func(t *testing.T) {
		var c model.Criteria
		gt.NoError(t, json.Unmarshal([]byte(`{"year":2021.5}`), &c)).Required()
		gt.B(t, goerr.HasTag(c.Validate(), model.ErrTagInvalidCriteria)).True()
	})

	t.Run("boolean year is rejected", func(t *testing.T) {
		var c model.Criteria
		err := json.Unmarshal([]byte(`{"year":true}`), &c)
		gt.Error(t, err)
		gt.B(t, goerr.HasTag(err, model.ErrTagInvalidCriteria)).True()
	})
}
