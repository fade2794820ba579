package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// ConfigDir returns the directory holding config.yaml, logs and the cache.
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// ConfigPath returns the full path of config.yaml.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads config.yaml, fills defaults and applies environment overrides.
// A missing file is not an error.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(nil); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg = DefaultConfig()
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config to config.yaml, creating the directory if needed.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ResolvePath makes p absolute relative to the config dir.
func ResolvePath(p string) (string, error) {
	if strings.HasPrefix(p, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, p[1:]), nil
	}
	if filepath.IsAbs(p) {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, p), nil
}

// envOverrides lists the settings that may come from the environment.
type envOverrides struct {
	Endpoint     string `env:"CHATWIDGET_ENDPOINT"`
	Greeting     string `env:"CHATWIDGET_GREETING"`
	Timeout      int    `env:"CHATWIDGET_TIMEOUT"`
	LogLevel     string `env:"CHATWIDGET_LOG_LEVEL"`
	CacheEnabled bool   `env:"CHATWIDGET_CACHE_ENABLED"`
}

// applyEnv overlays variables that are actually set. A nil environ reads the
// process environment.
func (c *Config) applyEnv(environ map[string]string) error {
	set := make(map[string]bool)
	opts := env.Options{
		OnSet: func(tag string, value interface{}, isDefault bool) {
			if v, _ := value.(string); v != "" && !isDefault {
				set[tag] = true
			}
		},
	}
	if environ != nil {
		opts.Environment = environ
	}

	var ov envOverrides
	if err := env.Parse(&ov, opts); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	if set["CHATWIDGET_ENDPOINT"] && strings.TrimSpace(ov.Endpoint) != "" {
		c.Widget.Endpoint = strings.TrimSpace(ov.Endpoint)
	}
	if set["CHATWIDGET_GREETING"] && strings.TrimSpace(ov.Greeting) != "" {
		c.Widget.Greeting = ov.Greeting
	}
	if set["CHATWIDGET_TIMEOUT"] && ov.Timeout >= 0 {
		c.Widget.TimeoutSeconds = ov.Timeout
	}
	if set["CHATWIDGET_LOG_LEVEL"] && ov.LogLevel != "" {
		c.Logging.Level = ov.LogLevel
	}
	if set["CHATWIDGET_CACHE_ENABLED"] {
		c.Cache.Enabled = ov.CacheEnabled
	}
	return nil
}
