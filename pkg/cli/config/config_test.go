package config_test

import (
	"context"
	"testing"

	"github.com/crashlens/crashlens/pkg/cli/config"
	"github.com/crashlens/crashlens/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestLoadColumnsFromFile(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		cols, err := config.LoadColumnsFromFile("")
		gt.NoError(t, err).Required()
		gt.Equal(t, cols, model.DefaultColumns())
	})

	t.Run("partial mapping keeps defaults", func(t *testing.T) {
		cols, err := config.LoadColumnsFromFile("testdata/columns.yaml")
		gt.NoError(t, err).Required()
		gt.Equal(t, cols.Date, "ACCIDENT_DATE")
		gt.Equal(t, cols.Borough, "AREA")
		gt.Equal(t, cols.Injured, "NUMBER_OF_PERSONS_INJURED")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadColumnsFromFile("testdata/nothing.yaml")
		gt.Error(t, err)
	})

	t.Run("broken yaml", func(t *testing.T) {
		_, err := config.LoadColumnsFromFile("testdata/broken.yaml")
		gt.Error(t, err)
	})
}

func TestDatasetConfigure(t *testing.T) {
	ctx := context.Background()

	t.Run("first existing path wins", func(t *testing.T) {
		cfg := config.Dataset{
			Paths:       []string{"testdata/missing.csv", "testdata/crashes.csv"},
			ColumnsFile: "testdata/columns.yaml",
		}
		repo := cfg.Configure(ctx)
		ds, err := repo.Dataset(ctx)
		gt.NoError(t, err).Required()
		gt.Equal(t, ds.Len(), 2)
		gt.Equal(t, ds.Source(), "testdata/crashes.csv")
	})

	t.Run("unavailable when nothing loads", func(t *testing.T) {
		cfg := config.Dataset{Paths: []string{"testdata/missing.csv"}}
		repo := cfg.Configure(ctx)
		_, err := repo.Dataset(ctx)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagDatasetUnavailable))
	})
}

func TestLogger(t *testing.T) {
	l := config.Logger{Level: "debug", Format: "json"}
	logger, err := l.Configure()
	gt.NoError(t, err)
	gt.V(t, logger).NotNil()

	bad := config.Logger{Level: "loud"}
	_, err = bad.Configure()
	gt.Error(t, err)
}

func TestMetrics(t *testing.T) {
	disabled := config.Metrics{}
	gt.True(t, disabled.Configure() == nil)

	enabled := config.Metrics{Enabled: true, Namespace: "test"}
	gt.V(t, enabled.Configure()).NotNil()
}
