package config

import "github.com/linanwx/chatwidget/chat"

const (
	defaultEndpoint       = "http://localhost:8000/chat/"
	defaultPlaceholder    = "Digite sua pergunta..."
	defaultBotName        = "JP"
	defaultUserName       = "Você"
	defaultCachePath      = "cache/replies.db"
	defaultExpirationDays = 7
	defaultCleanupExpr    = "0 4 * * *"
)

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	markdown := true
	return &Config{
		Widget: WidgetConfig{
			Endpoint:    defaultEndpoint,
			Greeting:    chat.DefaultGreeting,
			ErrorText:   chat.DefaultErrorText,
			TooLongText: chat.DefaultTooLongText,
			Placeholder: defaultPlaceholder,
			BotName:     defaultBotName,
			UserName:    defaultUserName,
			Markdown:    &markdown,
		},
		Cache: CacheConfig{
			Enabled:        false,
			Path:           defaultCachePath,
			ExpirationDays: defaultExpirationDays,
			CleanupExpr:    defaultCleanupExpr,
		},
		Logging: defaultLoggingConfig(),
	}
}

func defaultLoggingConfig() LoggingConfig {
	enabled := true
	return LoggingConfig{
		Enabled: &enabled,
		Level:   "info",
		Format:  "text",
		Stdout:  false,
		File:    "logs/chatwidget.log",
	}
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Widget.Endpoint == "" {
		c.Widget.Endpoint = def.Widget.Endpoint
	}
	if c.Widget.Greeting == "" {
		c.Widget.Greeting = def.Widget.Greeting
	}
	if c.Widget.ErrorText == "" {
		c.Widget.ErrorText = def.Widget.ErrorText
	}
	if c.Widget.TooLongText == "" {
		c.Widget.TooLongText = def.Widget.TooLongText
	}
	if c.Widget.Placeholder == "" {
		c.Widget.Placeholder = def.Widget.Placeholder
	}
	if c.Widget.BotName == "" {
		c.Widget.BotName = def.Widget.BotName
	}
	if c.Widget.UserName == "" {
		c.Widget.UserName = def.Widget.UserName
	}
	if c.Widget.MaxInputRunes < 0 {
		c.Widget.MaxInputRunes = 0
	}
	if c.Widget.TimeoutSeconds < 0 {
		c.Widget.TimeoutSeconds = 0
	}

	if c.Cache.Path == "" {
		c.Cache.Path = def.Cache.Path
	}
	if c.Cache.ExpirationDays <= 0 {
		c.Cache.ExpirationDays = def.Cache.ExpirationDays
	}
	if c.Cache.CleanupExpr == "" {
		c.Cache.CleanupExpr = def.Cache.CleanupExpr
	}

	logDef := defaultLoggingConfig()
	if c.Logging == (LoggingConfig{}) {
		c.Logging = logDef
		return
	}
	if c.Logging.Enabled == nil {
		c.Logging.Enabled = logDef.Enabled
	}
	if c.Logging.Level == "" {
		c.Logging.Level = logDef.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = logDef.Format
	}
	if c.Logging.File == "" && !c.Logging.Stdout {
		c.Logging.File = logDef.File
	}
}
