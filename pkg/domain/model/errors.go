package model

import "github.com/m-mizutani/goerr/v2"

// Error tags for domain operations
var (
	ErrTagInvalidCriteria    = goerr.NewTag("invalid_criteria")
	ErrTagInvalidDataset     = goerr.NewTag("invalid_dataset")
	ErrTagDatasetUnavailable = goerr.NewTag("dataset_unavailable")
	ErrTagNotFound           = goerr.NewTag("not_found")
)

// Sentinel errors for domain operations
var (
	ErrDatasetNotLoaded = goerr.New("Data not loaded", goerr.T(ErrTagDatasetUnavailable))
)
