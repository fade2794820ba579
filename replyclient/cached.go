package replyclient

import (
	"context"

	"github.com/linanwx/chatwidget/chat"
	"github.com/linanwx/chatwidget/logger"
)

// ReplyCache is the subset of cache.Store used by Cached.
type ReplyCache interface {
	Get(ctx context.Context, question string) (string, bool, error)
	Put(ctx context.Context, question, response string) error
}

// Cached answers repeated questions from a cache and stores fresh replies.
// Cache errors are logged and otherwise ignored.
type Cached struct {
	inner chat.Replier
	cache ReplyCache
}

// NewCached wraps inner with cache.
func NewCached(inner chat.Replier, cache ReplyCache) *Cached {
	return &Cached{inner: inner, cache: cache}
}

func (c *Cached) Reply(ctx context.Context, text string) (string, error) {
	reply, ok, err := c.cache.Get(ctx, text)
	if err != nil {
		logger.Warn("reply cache lookup failed", "err", err)
	}
	if ok {
		logger.Debug("reply served from cache", "question", preview(text))
		return reply, nil
	}

	reply, err = c.inner.Reply(ctx, text)
	if err != nil {
		return "", err
	}
	if err := c.cache.Put(ctx, text, reply); err != nil {
		logger.Warn("reply cache save failed", "err", err)
	}
	return reply, nil
}

func preview(s string) string {
	r := []rune(s)
	if len(r) > 30 {
		return string(r[:30]) + "..."
	}
	return s
}
