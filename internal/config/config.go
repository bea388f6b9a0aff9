// Package config loads the optional config file and the required secrets.
//
// Non-secret settings come from a YAML or JSON file; the three secrets
// (Practicum token, Telegram token, chat id) come only from the process
// environment and are required for the bot to start at all.
package config

import "time"

type Config struct {
	// Endpoint overrides the statuses API URL. Empty selects the
	// production endpoint.
	Endpoint string `json:"endpoint,omitempty"`

	// Schedule decides when poll iterations run: a Go duration ("10m"),
	// HH:MM, or a cron expression. Default is "600s".
	Schedule string `json:"schedule,omitempty"`

	// RequestTimeout is a Go duration string bounding each statuses
	// request. Default "30s".
	RequestTimeout string `json:"request_timeout,omitempty"`

	Logging  LoggingConfig  `json:"logging"`
	Notifier NotifierConfig `json:"notifier,omitempty"`
	Storage  *StorageConfig `json:"storage,omitempty"`
	Health   HealthConfig   `json:"health,omitempty"`
}

type LoggingConfig struct {
	Level   string     `json:"level,omitempty"`
	Console *bool      `json:"console,omitempty"`
	File    FileConfig `json:"file,omitempty"`
}

type FileConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"`
}

type NotifierConfig struct {
	RatePerSec int `json:"rate_per_sec,omitempty"`
}

// StorageConfig controls the optional notification history backend.
//
// Example:
//
//	"storage": { "driver": "file", "path": "./homework-bot.history.jsonl" }
type StorageConfig struct {
	Driver      string `json:"driver"`
	Path        string `json:"path"`
	BusyTimeout string `json:"busy_timeout,omitempty"` // Go duration string (sqlite)
}

// HealthConfig controls the optional HTTP status server.
//
// Prefer binding to localhost; the endpoints expose recent notification
// text.
type HealthConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr,omitempty"` // default: "127.0.0.1:8090"
}

const (
	DefaultSchedule       = "600s"
	DefaultRequestTimeout = 30 * time.Second
)

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Schedule: DefaultSchedule,
		Logging:  LoggingConfig{Level: "info"},
	}
}

// ConsoleEnabled reports whether console logging is on (the default when
// the field is omitted).
func (l LoggingConfig) ConsoleEnabled() bool {
	if l.Console == nil {
		return true
	}
	return *l.Console
}
