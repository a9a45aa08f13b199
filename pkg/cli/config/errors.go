package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidConfig     = goerr.New("invalid configuration")
	ErrInvalidLogLevel   = goerr.New("invalid log level")
	ErrInvalidLogFormat  = goerr.New("invalid log format")
	ErrMissingBackendURL = goerr.New("backend URL is required")
	ErrInvalidRole       = goerr.New("invalid viewer role")
	ErrInvalidTheme      = goerr.New("invalid theme")
	ErrInvalidLocale     = goerr.New("invalid fee locale")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	LevelKey      = "level"
	FormatKey     = "format"
	RoleKey       = "role"
	ThemeKey      = "theme"
	LocaleKey     = "locale"
)
