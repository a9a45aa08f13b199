package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskboard/pkg/domain/types"
	"github.com/secmon-lab/riskboard/pkg/service/riskapi"
	"github.com/urfave/cli/v3"
)

// Backend holds CLI flags for the risk API the dashboard reads from. The cookie
// is logged under a secret_ key and redacted by the log handler.
type Backend struct {
	url        string
	role       string
	mentorName string
	cookie     string
	timeout    time.Duration
}

func (x *Backend) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "backend-url",
			Usage:       "Base URL of the risk API (e.g., http://localhost:5000)",
			Category:    "Backend",
			Sources:     cli.EnvVars("RISKBOARD_BACKEND_URL"),
			Destination: &x.url,
		},
		&cli.StringFlag{
			Name:        "role",
			Usage:       "Viewer role [admin|mentor]. A mentor only sees the students assigned to them",
			Category:    "Backend",
			Value:       types.RoleAdmin.String(),
			Sources:     cli.EnvVars("RISKBOARD_ROLE"),
			Destination: &x.role,
		},
		&cli.StringFlag{
			Name:        "mentor-name",
			Usage:       "Display name of the mentor for the mentor role",
			Category:    "Backend",
			Sources:     cli.EnvVars("RISKBOARD_MENTOR_NAME"),
			Destination: &x.mentorName,
		},
		&cli.StringFlag{
			Name:        "backend-cookie",
			Usage:       "Cookie header forwarded to the risk API (e.g., session=...)",
			Category:    "Backend",
			Sources:     cli.EnvVars("RISKBOARD_BACKEND_COOKIE"),
			Destination: &x.cookie,
		},
		&cli.DurationFlag{
			Name:        "backend-timeout",
			Usage:       "Timeout of each risk API request (0 means none)",
			Category:    "Backend",
			Sources:     cli.EnvVars("RISKBOARD_BACKEND_TIMEOUT"),
			Destination: &x.timeout,
		},
	}
}

func (x Backend) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", x.url),
		slog.String("role", x.role),
		slog.String("mentor_name", x.mentorName),
		slog.String("secret_cookie", x.cookie),
		slog.Duration("timeout", x.timeout),
	)
}

// Role returns the validated viewer role
func (x *Backend) Role() (types.Role, error) {
	role, err := types.ParseRole(x.role)
	if err != nil {
		return "", goerr.Wrap(ErrInvalidRole, err.Error(), goerr.V(RoleKey, x.role))
	}
	return role, nil
}

// MentorName returns the configured mentor display name
func (x *Backend) MentorName() string {
	return x.mentorName
}

// Configure creates the risk API client
func (x *Backend) Configure() (*riskapi.Client, error) {
	if x.url == "" {
		return nil, goerr.Wrap(ErrMissingBackendURL, "set --backend-url or RISKBOARD_BACKEND_URL")
	}

	var opts []riskapi.Option
	if x.timeout > 0 {
		opts = append(opts, riskapi.WithTimeout(x.timeout))
	}
	if x.cookie != "" {
		opts = append(opts, riskapi.WithCookie(x.cookie))
	}

	client, err := riskapi.New(x.url, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create risk API client")
	}
	return client, nil
}
