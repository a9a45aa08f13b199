package config

import (
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"
)

const (
	DefaultSessionTTL           = 30 * time.Minute
	DefaultSessionSweepInterval = time.Minute
)

// Session holds CLI flags for dashboard session lifetime
type Session struct {
	ttl      time.Duration
	interval time.Duration
}

func (x *Session) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "session-ttl",
			Usage:       "Idle time after which a dashboard session is evicted",
			Category:    "Session",
			Value:       DefaultSessionTTL,
			Sources:     cli.EnvVars("RISKBOARD_SESSION_TTL"),
			Destination: &x.ttl,
		},
		&cli.DurationFlag{
			Name:        "session-sweep-interval",
			Usage:       "Interval between idle session sweeps",
			Category:    "Session",
			Value:       DefaultSessionSweepInterval,
			Sources:     cli.EnvVars("RISKBOARD_SESSION_SWEEP_INTERVAL"),
			Destination: &x.interval,
		},
	}
}

func (x Session) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Duration("ttl", x.ttl),
		slog.Duration("sweep_interval", x.interval),
	)
}

func (x *Session) TTL() time.Duration {
	return x.ttl
}

func (x *Session) SweepInterval() time.Duration {
	return x.interval
}
