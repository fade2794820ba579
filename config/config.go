// Package config handles configuration loading and saving.
package config

import (
	"strings"
	"time"

	"github.com/linanwx/chatwidget/logger"
)

const (
	configFileName = "config.yaml"
	configDirName  = ".chatwidget"
)

var configDirOverride string

// SetConfigDir overrides the config directory for the current process.
// Empty value clears the override.
func SetConfigDir(dir string) {
	configDirOverride = strings.TrimSpace(dir)
}

// Config is the root configuration structure.
type Config struct {
	Widget  WidgetConfig  `json:"widget" yaml:"widget"`
	Cache   CacheConfig   `json:"cache,omitempty" yaml:"cache,omitempty"`
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// WidgetConfig controls the chat widget and its reply service.
type WidgetConfig struct {
	Endpoint       string `json:"endpoint" yaml:"endpoint"`
	Greeting       string `json:"greeting,omitempty" yaml:"greeting,omitempty"`
	ErrorText      string `json:"errorText,omitempty" yaml:"errorText,omitempty"`
	// %d is replaced by MaxInputRunes.
	TooLongText    string `json:"tooLongText,omitempty" yaml:"tooLongText,omitempty"`
	Placeholder    string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	BotName        string `json:"botName,omitempty" yaml:"botName,omitempty"`
	UserName       string `json:"userName,omitempty" yaml:"userName,omitempty"`
	// 0 = unlimited.
	MaxInputRunes int `json:"maxInputRunes,omitempty" yaml:"maxInputRunes,omitempty"`
	// 0 = transport default.
	TimeoutSeconds int   `json:"timeoutSeconds,omitempty" yaml:"timeoutSeconds,omitempty"`
	Markdown       *bool `json:"markdown,omitempty" yaml:"markdown,omitempty"`
}

// CacheConfig controls the optional reply cache.
type CacheConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	Path           string `json:"path,omitempty" yaml:"path,omitempty"` // relative to the config dir
	ExpirationDays int    `json:"expirationDays,omitempty" yaml:"expirationDays,omitempty"`
	CleanupExpr    string `json:"cleanupExpr,omitempty" yaml:"cleanupExpr,omitempty"` // cron expression
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Level   string `json:"level,omitempty" yaml:"level,omitempty"`   // debug, info, warn, error
	Format  string `json:"format,omitempty" yaml:"format,omitempty"` // text, json
	Stdout  bool   `json:"stdout,omitempty" yaml:"stdout,omitempty"`
	File    string `json:"file,omitempty" yaml:"file,omitempty"`
}

// Timeout returns the configured request timeout. Zero means none.
func (w WidgetConfig) Timeout() time.Duration {
	if w.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(w.TimeoutSeconds) * time.Second
}

// MarkdownEnabled reports whether bot replies are rendered as Markdown.
func (w WidgetConfig) MarkdownEnabled() bool {
	return w.Markdown == nil || *w.Markdown
}

// Expiration returns how long cached replies stay valid.
func (c CacheConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationDays) * 24 * time.Hour
}

// BuildLoggerConfig converts the logging section into logger settings.
func (c *Config) BuildLoggerConfig() logger.Config {
	enabled := true
	if c.Logging.Enabled != nil {
		enabled = *c.Logging.Enabled
	}
	return logger.Config{
		Enabled: enabled,
		Level:   c.Logging.Level,
		Format:  c.Logging.Format,
		Stdout:  c.Logging.Stdout,
		File:    c.Logging.File,
	}
}
