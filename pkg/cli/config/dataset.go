package config

import (
	"context"
	"log/slog"

	"github.com/crashlens/crashlens/pkg/domain/interfaces"
	"github.com/crashlens/crashlens/pkg/domain/model"
	"github.com/crashlens/crashlens/pkg/repository"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const defaultDatasetFile = "integrated_crashes_for_app.csv"

// DefaultDatasetPaths returns the candidate locations tried when no
// dataset path is given
func DefaultDatasetPaths() []string {
	return []string{
		defaultDatasetFile,
		"../" + defaultDatasetFile,
		"../../" + defaultDatasetFile,
		"/var/task/" + defaultDatasetFile,
	}
}

// Dataset holds dataset source configuration
type Dataset struct {
	Paths       []string
	ColumnsFile string
}

// Flags returns CLI flags for Dataset configuration
func (d *Dataset) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "dataset",
			Aliases:     []string{"d"},
			Usage:       "Candidate CSV dataset paths, the first existing one is loaded",
			Category:    "Dataset",
			Value:       DefaultDatasetPaths(),
			Sources:     cli.EnvVars("CRASHLENS_DATASET"),
			Destination: &d.Paths,
		},
		&cli.StringFlag{
			Name:        "columns-file",
			Usage:       "YAML file mapping logical columns to CSV header names",
			Category:    "Dataset",
			Sources:     cli.EnvVars("CRASHLENS_COLUMNS_FILE"),
			Destination: &d.ColumnsFile,
		},
	}
}

// Load reads the dataset from the first existing candidate path
func (d *Dataset) Load(ctx context.Context) (*model.Dataset, error) {
	cols, err := LoadColumnsFromFile(d.ColumnsFile)
	if err != nil {
		return nil, err
	}

	paths := d.Paths
	if len(paths) == 0 {
		paths = DefaultDatasetPaths()
	}

	ds, err := repository.LoadFile(ctx, paths, cols)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load dataset", goerr.V("paths", paths))
	}
	return ds, nil
}

// Configure loads the dataset and returns a repository holding it. When
// loading fails the repository still serves, reporting the dataset as
// unavailable.
func (d *Dataset) Configure(ctx context.Context) interfaces.Repository {
	ds, err := d.Load(ctx)
	if err != nil {
		ctxlog.From(ctx).Error("Failed to load dataset, serving without data", "error", err)
		return repository.NewUnavailable(err)
	}
	return repository.NewMemory(ds)
}

// LogValue returns structured log value
func (d Dataset) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("paths", d.Paths),
		slog.String("columns_file", d.ColumnsFile),
	)
}
