package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/linanwx/chatwidget/cache"
	"github.com/linanwx/chatwidget/chat"
	"github.com/linanwx/chatwidget/config"
	"github.com/linanwx/chatwidget/frontend"
	"github.com/linanwx/chatwidget/logger"
	"github.com/linanwx/chatwidget/replyclient"
	"github.com/spf13/cobra"
)

var (
	endpointFlag   string
	greetingFlag   string
	timeoutFlag    time.Duration
	noMarkdownFlag bool
	noCacheFlag    bool
)

func addWidgetFlags(c *cobra.Command) {
	c.Flags().StringVar(&endpointFlag, "endpoint", "", "Chat-reply service URL (overrides config)")
	c.Flags().StringVar(&greetingFlag, "greeting", "", "First bot message (overrides config)")
	c.Flags().DurationVar(&timeoutFlag, "timeout", 0, "Request timeout, e.g. 30s (0 keeps the config value)")
	c.Flags().BoolVar(&noMarkdownFlag, "no-markdown", false, "Show bot replies as plain text")
	c.Flags().BoolVar(&noCacheFlag, "no-cache", false, "Bypass the reply cache")
}

// loadConfig loads the config and applies widget flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'chatwidget onboard' to recreate it", err)
	}
	if v := strings.TrimSpace(endpointFlag); v != "" {
		cfg.Widget.Endpoint = v
	}
	if greetingFlag != "" {
		cfg.Widget.Greeting = greetingFlag
	}
	if timeoutFlag > 0 {
		cfg.Widget.TimeoutSeconds = max(int(timeoutFlag/time.Second), 1)
	}
	if noMarkdownFlag {
		off := false
		cfg.Widget.Markdown = &off
	}
	if noCacheFlag {
		cfg.Cache.Enabled = false
	}
	return cfg, nil
}

// session bundles what a widget needs at runtime.
type session struct {
	widget  *chat.Widget
	replier chat.Replier
	store   *cache.Store
	janitor *cache.Janitor
}

func newSession(cfg *config.Config) (*session, error) {
	client, err := replyclient.New(replyclient.Config{
		Endpoint: cfg.Widget.Endpoint,
		Timeout:  cfg.Widget.Timeout(),
	})
	if err != nil {
		return nil, err
	}

	s := &session{
		widget: chat.New(chat.Options{
			Greeting:      cfg.Widget.Greeting,
			ErrorText:     cfg.Widget.ErrorText,
			TooLongText:   cfg.Widget.TooLongText,
			MaxInputRunes: cfg.Widget.MaxInputRunes,
		}),
		replier: client,
	}

	if cfg.Cache.Enabled {
		store, janitor, err := openCache(cfg)
		if err != nil {
			logger.Warn("reply cache unavailable, continuing without it", "err", err)
		} else {
			s.store, s.janitor = store, janitor
			s.replier = replyclient.NewCached(client, store)
		}
	}

	logger.Info("widget ready", "endpoint", client.Endpoint(), "cache", s.store != nil)
	return s, nil
}

func openCache(cfg *config.Config) (*cache.Store, *cache.Janitor, error) {
	path, err := config.ResolvePath(cfg.Cache.Path)
	if err != nil {
		return nil, nil, err
	}
	store, err := cache.Open(path)
	if err != nil {
		return nil, nil, err
	}
	janitor, err := cache.NewJanitor(store, cfg.Cache.CleanupExpr, cfg.Cache.Expiration())
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	janitor.RunOnce(context.Background())
	janitor.Start()
	return store, janitor, nil
}

func (s *session) stats() frontend.StatsFunc {
	if s.store == nil {
		return nil
	}
	return s.store.Stats
}

func (s *session) Close() {
	if s.janitor != nil {
		s.janitor.Stop()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			logger.Warn("close reply cache", "err", err)
		}
	}
}
