package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskboard/pkg/cli/config"
	"github.com/secmon-lab/riskboard/pkg/utils/logging"
	"github.com/secmon-lab/riskboard/pkg/view"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var dashboardCfg config.Dashboard

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the dashboard configuration file",
		Flags:   dashboardCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if dashboardCfg.Path() == "" {
				return goerr.Wrap(config.ErrInvalidConfig, "--config is required")
			}

			cfg, err := dashboardCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			// The renderer parses every template with the configured options
			if _, err := view.New(cfg.RendererOptions()...); err != nil {
				return goerr.Wrap(err, "failed to build renderer from configuration")
			}

			logger.Info("Configuration validation passed",
				"path", dashboardCfg.Path(),
				"title", cfg.Title,
				"default_theme", cfg.DefaultTheme,
				"fee_locale", cfg.FeeLocale,
			)
			return nil
		},
	}
}
