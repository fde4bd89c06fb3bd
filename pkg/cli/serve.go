package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crashlens/crashlens/pkg/cli/config"
	controller "github.com/crashlens/crashlens/pkg/controller/http"
	"github.com/crashlens/crashlens/pkg/domain/interfaces"
	"github.com/crashlens/crashlens/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg  config.Server
		datasetCfg config.Dataset
		metricsCfg config.Metrics
	)

	flags := joinFlags(
		serverCfg.Flags(),
		datasetCfg.Flags(),
		metricsCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server with the REST API and dashboard",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting crashlens server",
				slog.Any("server", serverCfg),
				slog.Any("dataset", datasetCfg),
				slog.Any("metrics", metricsCfg),
			)

			// A failed load leaves the API up with "Data not loaded" answers
			repo := datasetCfg.Configure(ctx)
			defer repo.Close()

			opts := []controller.Option{
				controller.WithCORSOrigin(serverCfg.CORSOrigin),
			}

			var m interfaces.Metrics
			if collector := metricsCfg.Configure(); collector != nil {
				m = collector
				opts = append(opts, controller.WithMetrics(collector.Handler()))
			}

			reportUC := usecase.NewReport(repo, m)

			server, err := controller.NewServer(ctx, serverCfg.Addr, reportUC, opts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "HTTP server error", goerr.V("addr", serverCfg.Addr))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case err := <-errCh:
				return err
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
