package cli

import (
	"context"
	"encoding/json"

	"github.com/crashlens/crashlens/pkg/cli/config"
	"github.com/crashlens/crashlens/pkg/repository"
	"github.com/crashlens/crashlens/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdFilters() *cli.Command {
	var datasetCfg config.Dataset

	return &cli.Command{
		Name:  "filters",
		Usage: "Print the selectable filter values as JSON",
		Flags: datasetCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			ds, err := datasetCfg.Load(ctx)
			if err != nil {
				return err
			}

			opts, err := usecase.NewReport(repository.NewMemory(ds), nil).FilterOptions(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to list filter options")
			}

			enc := json.NewEncoder(c.Root().Writer)
			enc.SetIndent("", "  ")
			if err := enc.Encode(opts); err != nil {
				return goerr.Wrap(err, "failed to encode filter options")
			}
			return nil
		},
	}
}
