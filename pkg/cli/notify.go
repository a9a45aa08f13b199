package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskboard/pkg/cli/config"
	"github.com/secmon-lab/riskboard/pkg/usecase"
	"github.com/secmon-lab/riskboard/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdNotify() *cli.Command {
	var backendCfg config.Backend
	var slackCfg config.Slack
	var threshold float64
	var send bool

	flags := []cli.Flag{
		&cli.FloatFlag{
			Name:        "threshold",
			Usage:       "Final risk score above which a student is alerted",
			Value:       usecase.DefaultCriticalThreshold,
			Sources:     cli.EnvVars("RISKBOARD_NOTIFY_THRESHOLD"),
			Destination: &threshold,
		},
		&cli.BoolFlag{
			Name:        "send",
			Usage:       "Actually post the alerts. Without it the command only logs what would be sent",
			Sources:     cli.EnvVars("RISKBOARD_NOTIFY_SEND"),
			Destination: &send,
		},
	}
	flags = append(flags, backendCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:  "notify",
		Usage: "Alert mentors in Slack about critically at-risk students",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			role, err := backendCfg.Role()
			if err != nil {
				return err
			}
			api, err := backendCfg.Configure()
			if err != nil {
				return err
			}

			ucOpts := []usecase.Option{
				usecase.WithRole(role),
				usecase.WithMentorName(backendCfg.MentorName()),
			}

			notifier, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure slack")
			}
			if notifier != nil {
				ucOpts = append(ucOpts, usecase.WithNotifier(notifier))
			} else if send {
				return goerr.Wrap(usecase.ErrNotifierNotConfigured, "--send requires --slack-bot-token and --slack-channel")
			}

			uc := usecase.New(api, ucOpts...)
			result, err := uc.Notify.NotifyCritical(ctx, usecase.NotifyOption{
				Threshold: threshold,
				DryRun:    !send,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to notify critical students")
			}

			logger.Info("notify completed",
				"critical", len(result.Critical),
				"sent", result.Sent,
				"failed", result.Failed,
				"dry_run", !send,
				"slack", slackCfg,
			)

			if result.Failed > 0 {
				return goerr.New("some notifications failed", goerr.V("failed", result.Failed))
			}
			return nil
		},
	}
}
