package config

import "time"

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, channelID string) *Slack {
	return &Slack{
		botToken:  botToken,
		channelID: channelID,
	}
}

// NewBackendForTest creates a Backend config for testing purposes
func NewBackendForTest(url, role, cookie string, timeout time.Duration) *Backend {
	return &Backend{
		url:     url,
		role:    role,
		cookie:  cookie,
		timeout: timeout,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}
