package cli

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/panoptes/pkg/cli/config"
	controller "github.com/secmon-lab/panoptes/pkg/controller/http"
	"github.com/secmon-lab/panoptes/pkg/domain/model"
	"github.com/secmon-lab/panoptes/pkg/repository"
	"github.com/secmon-lab/panoptes/pkg/service/inspector"
	"github.com/secmon-lab/panoptes/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg  config.Server
		paletteCfg config.Palette
		seedPath   string
	)

	flags := joinFlags(
		serverCfg.Flags(),
		paletteCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "seed-findings",
				Usage:       "Path to a JSON array of findings to load at startup",
				Sources:     cli.EnvVars("PANOPTES_SEED_FINDINGS"),
				Destination: &seedPath,
			},
		},
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start the dashboard HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting panoptes server",
				slog.Any("server", serverCfg),
				slog.Any("palette", paletteCfg),
			)

			palette, err := paletteCfg.Configure()
			if err != nil {
				return err
			}

			repo := repository.NewMemory()
			defer repo.Close()

			dashboardUC := usecase.NewDashboard(repo, palette)
			inspectUC := usecase.NewInspect(repo, inspector.NewRegistry())

			if seedPath != "" {
				findings, err := loadFindings(seedPath)
				if err != nil {
					return err
				}
				if err := dashboardUC.IngestFindings(ctx, findings); err != nil {
					return goerr.Wrap(err, "failed to seed findings",
						goerr.V("path", seedPath))
				}
				logger.Info("Seeded findings", slog.Int("count", len(findings)))
			}

			server, err := controller.NewServer(
				ctx,
				serverCfg.Addr,
				controller.NewUseCases(dashboardUC, inspectUC),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
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

// loadFindings reads a JSON array of findings from a file
func loadFindings(path string) ([]*model.Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read findings file",
			goerr.V("path", path))
	}

	var findings []*model.Finding
	if err := json.Unmarshal(data, &findings); err != nil {
		return nil, goerr.Wrap(err, "failed to parse findings file",
			goerr.V("path", path))
	}

	return findings, nil
}
