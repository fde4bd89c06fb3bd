package model

// FilterOptions lists the selectable values of each criterion, each
// prefixed with AllValue
type FilterOptions struct {
	Boroughs   []string `json:"boroughs"`
	Years      []string `json:"years"`
	Factors    []string `json:"factors"`
	Severities []string `json:"severities"`
}
