package interfaces

import (
	"context"

	"github.com/crashlens/crashlens/pkg/domain/model"
)

// Report defines report generation over the collision dataset
type Report interface {
	// FilterOptions lists selectable values for each criterion
	FilterOptions(ctx context.Context) (*model.FilterOptions, error)

	// Generate filters the dataset by criteria and aggregates the result
	Generate(ctx context.Context, criteria model.Criteria) (*model.Report, error)

	// Ready reports whether the dataset is available
	Ready(ctx context.Context) bool
}
