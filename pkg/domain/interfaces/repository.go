package interfaces

import (
	"context"

	"github.com/crashlens/crashlens/pkg/domain/model"
)

// Repository provides the collision dataset loaded at startup
type Repository interface {
	// Dataset returns the immutable dataset, or an error tagged
	// model.ErrTagDatasetUnavailable when loading failed
	Dataset(ctx context.Context) (*model.Dataset, error)

	// Close releases the repository
	Close() error
}
