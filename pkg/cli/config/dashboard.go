package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/riskboard/pkg/domain/types"
	"github.com/secmon-lab/riskboard/pkg/view"
	"github.com/urfave/cli/v3"
	"golang.org/x/text/language"
)

// DashboardConfig is the optional presentation configuration file
type DashboardConfig struct {
	Title        string `toml:"title"`
	DefaultTheme string `toml:"default_theme"`
	FeeLocale    string `toml:"fee_locale"`
}

// DefaultDashboardConfig returns the configuration used without a file
func DefaultDashboardConfig() *DashboardConfig {
	return &DashboardConfig{
		Title:        view.DefaultTitle,
		DefaultTheme: types.ThemeLight.String(),
		FeeLocale:    view.DefaultFeeLocale.String(),
	}
}

// Validate checks the theme and locale values
func (c *DashboardConfig) Validate() error {
	if !types.Theme(c.DefaultTheme).IsValid() {
		return goerr.Wrap(ErrInvalidTheme, "default_theme must be light or dark", goerr.V(ThemeKey, c.DefaultTheme))
	}
	if _, err := language.Parse(c.FeeLocale); err != nil {
		return goerr.Wrap(ErrInvalidLocale, err.Error(), goerr.V(LocaleKey, c.FeeLocale))
	}
	return nil
}

// Theme returns the default theme
func (c *DashboardConfig) Theme() types.Theme {
	return types.ParseTheme(c.DefaultTheme, types.ThemeLight)
}

// RendererOptions converts the configuration to renderer options. Validate must pass first.
func (c *DashboardConfig) RendererOptions() []view.Option {
	opts := []view.Option{view.WithTitle(c.Title)}
	if tag, err := language.Parse(c.FeeLocale); err == nil {
		opts = append(opts, view.WithFeeLocale(tag))
	}
	return opts
}

// LoadDashboardConfig loads a dashboard configuration from a TOML file. Keys
// missing from the file keep their defaults.
func LoadDashboardConfig(path string) (*DashboardConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	cfg := DefaultDashboardConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(ConfigPathKey, path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return cfg, nil
}

// Dashboard holds the CLI flag pointing at the dashboard configuration file
type Dashboard struct {
	path string
}

func (x *Dashboard) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Dashboard configuration file (TOML)",
			Category:    "Dashboard",
			Sources:     cli.EnvVars("RISKBOARD_CONFIG"),
			Destination: &x.path,
		},
	}
}

func (x Dashboard) LogValue() slog.Value {
	return slog.GroupValue(slog.String("path", x.path))
}

// Path returns the configuration file path
func (x *Dashboard) Path() string {
	return x.path
}

// Configure loads the configuration file, or returns the defaults when none is given
func (x *Dashboard) Configure() (*DashboardConfig, error) {
	if x.path == "" {
		return DefaultDashboardConfig(), nil
	}
	return LoadDashboardConfig(x.path)
}
