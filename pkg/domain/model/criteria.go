package model

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// AllValue is the selection sentinel that disables a criterion
const AllValue = "All"

// Criteria is the set of filter selections applied to the dataset
type Criteria struct {
	Borough     string `json:"borough"`
	Year        string `json:"year"`
	Factor      string `json:"factor"`
	Severity    string `json:"severity"`
	SearchQuery string `json:"search_query"`
}

// UnmarshalJSON accepts the year as a JSON string or number
func (c *Criteria) UnmarshalJSON(data []byte) error {
	type plain Criteria
	aux := struct {
		*plain
		Year json.RawMessage `json:"year"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return goerr.Wrap(err, "failed to decode criteria", goerr.T(ErrTagInvalidCriteria))
	}

	raw := bytes.TrimSpace(aux.Year)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		c.Year = ""
	case raw[0] == '"':
		if err := json.Unmarshal(raw, &c.Year); err != nil {
			return goerr.Wrap(err, "year filter must be a string or number", goerr.T(ErrTagInvalidCriteria))
		}
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return goerr.Wrap(err, "year filter must be a string or number",
				goerr.V("year", string(raw)),
				goerr.T(ErrTagInvalidCriteria))
		}
		c.Year = n.String()
	}
	return nil
}

// isSet reports whether a selection narrows the dataset
func isSet(v string) bool {
	return v != "" && v != AllValue
}

// BoroughValue returns the borough selection and whether it is active
func (c Criteria) BoroughValue() (string, bool) {
	return c.Borough, isSet(c.Borough)
}

// FactorValue returns the contributing factor selection and whether it is active
func (c Criteria) FactorValue() (string, bool) {
	return c.Factor, isSet(c.Factor)
}

// SeverityValue returns the severity selection and whether it is active
func (c Criteria) SeverityValue() (string, bool) {
	return c.Severity, isSet(c.Severity)
}

// YearValue parses the year selection. It fails with ErrTagInvalidCriteria
// when the selection is active but not an integer.
func (c Criteria) YearValue() (int, bool, error) {
	if !isSet(c.Year) {
		return 0, false, nil
	}
	year, err := strconv.Atoi(strings.TrimSpace(c.Year))
	if err != nil {
		return 0, false, goerr.Wrap(err, "year filter must be an integer",
			goerr.V("year", c.Year),
			goerr.T(ErrTagInvalidCriteria))
	}
	return year, true, nil
}

// SearchTerm returns the lower-cased trimmed search query and whether it is active
func (c Criteria) SearchTerm() (string, bool) {
	q := strings.TrimSpace(c.SearchQuery)
	if q == "" {
		return "", false
	}
	return strings.ToLower(q), true
}

// Validate validates the criteria
func (c Criteria) Validate() error {
	if _, _, err := c.YearValue(); err != nil {
		return err
	}
	return nil
}

// LogValue returns structured log value
func (c Criteria) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("borough", c.Borough),
		slog.String("year", c.Year),
		slog.String("factor", c.Factor),
		slog.String("severity", c.Severity),
		slog.String("search_query", c.SearchQuery),
	)
}
