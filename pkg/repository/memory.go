package repository

import (
	"context"

	"github.com/crashlens/crashlens/pkg/domain/interfaces"
	"github.com/crashlens/crashlens/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// Memory implements Repository interface over a dataset held in memory.
// The dataset is fixed at construction, so no locking is needed.
type Memory struct {
	dataset *model.Dataset
	loadErr error
}

// NewMemory creates a memory repository serving ds
func NewMemory(ds *model.Dataset) interfaces.Repository {
	return &Memory{dataset: ds}
}

// NewUnavailable creates a repository whose dataset failed to load.
// Every Dataset call reports the load failure.
func NewUnavailable(cause error) interfaces.Repository {
	return &Memory{loadErr: cause}
}

// Dataset returns the loaded dataset
func (m *Memory) Dataset(ctx context.Context) (*model.Dataset, error) {
	if m.dataset != nil {
		return m.dataset, nil
	}
	if m.loadErr != nil {
		return nil, goerr.Wrap(m.loadErr, "Data not loaded", goerr.T(model.ErrTagDatasetUnavailable))
	}
	return nil, model.ErrDatasetNotLoaded
}

// Close implements interfaces.Repository
func (m *Memory) Close() error {
	return nil
}
