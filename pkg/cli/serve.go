package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskboard/pkg/cli/config"
	httpctrl "github.com/secmon-lab/riskboard/pkg/controller/http"
	"github.com/secmon-lab/riskboard/pkg/service/worker"
	"github.com/secmon-lab/riskboard/pkg/usecase"
	"github.com/secmon-lab/riskboard/pkg/utils/logging"
	"github.com/secmon-lab/riskboard/pkg/view"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var backendCfg config.Backend
	var dashboardCfg config.Dashboard
	var sessionCfg config.Session

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("RISKBOARD_ADDR"),
			Destination: &addr,
		},
	}

	flags = append(flags, backendCfg.Flags()...)
	flags = append(flags, dashboardCfg.Flags()...)
	flags = append(flags, sessionCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the dashboard HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			dashCfg, err := dashboardCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load dashboard configuration")
			}

			role, err := backendCfg.Role()
			if err != nil {
				return err
			}

			api, err := backendCfg.Configure()
			if err != nil {
				return err
			}

			uc := usecase.New(api,
				usecase.WithRole(role),
				usecase.WithMentorName(backendCfg.MentorName()),
			)

			renderer, err := view.New(dashCfg.RendererOptions()...)
			if err != nil {
				return goerr.Wrap(err, "failed to create renderer")
			}

			httpHandler, err := httpctrl.New(uc.Dashboard, renderer,
				httpctrl.WithDefaultTheme(dashCfg.Theme()),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}

			sweeper := worker.NewSessionSweeper(uc.Sessions(), sessionCfg.TTL(), sessionCfg.SweepInterval())
			if err := sweeper.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start session sweeper")
			}
			defer sweeper.Stop()

			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting HTTP server",
					"addr", addr,
					"backend", backendCfg,
					"session", sessionCfg,
					"config", dashboardCfg,
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logger.Info("Server shutdown completed")
				return nil
			}
		},
	}
}
