package replyclient

import (
	"context"
	"errors"
	"testing"

	"github.com/linanwx/chatwidget/chat"
)

type memCache struct {
	data   map[string]string
	getErr error
}

func (m *memCache) Get(_ context.Context, q string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	r, ok := m.data[q]
	return r, ok, nil
}

func (m *memCache) Put(_ context.Context, q, r string) error {
	m.data[q] = r
	return nil
}

func TestCachedServesRepeatsFromCache(t *testing.T) {
	calls := 0
	inner := chat.ReplierFunc(func(_ context.Context, text string) (string, error) {
		calls++
		return "reply:" + text, nil
	})
	c := NewCached(inner, &memCache{data: map[string]string{}})

	for i := 0; i < 3; i++ {
		got, err := c.Reply(context.Background(), "Olá")
		if err != nil || got != "reply:Olá" {
			t.Fatalf("Reply() = %q, %v", got, err)
		}
	}
	if calls != 1 {
		t.Fatalf("inner called %d times, want 1", calls)
	}
}

func TestCachedDoesNotStoreFailures(t *testing.T) {
	mc := &memCache{data: map[string]string{}}
	c := NewCached(chat.ReplierFunc(func(context.Context, string) (string, error) {
		return "", ErrCommunication
	}), mc)

	if _, err := c.Reply(context.Background(), "x"); !errors.Is(err, ErrCommunication) {
		t.Fatalf("Reply() error = %v, want ErrCommunication", err)
	}
	if len(mc.data) != 0 {
		t.Fatalf("failure was cached: %v", mc.data)
	}
}

func TestCachedFallsThroughOnCacheError(t *testing.T) {
	mc := &memCache{data: map[string]string{}, getErr: errors.New("disk gone")}
	c := NewCached(chat.ReplierFunc(func(context.Context, string) (string, error) {
		return "fresh", nil
	}), mc)
	got, err := c.Reply(context.Background(), "x")
	if err != nil || got != "fresh" {
		t.Fatalf("Reply() = %q, %v; want fresh reply", got, err)
	}
}
