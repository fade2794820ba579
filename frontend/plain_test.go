package frontend

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/linanwx/chatwidget/cache"
	"github.com/linanwx/chatwidget/chat"
)

func init() {
	color.NoColor = true
}

func runPlain(t *testing.T, input string, r chat.Replier, stats StatsFunc) (*chat.Widget, string) {
	t.Helper()
	w := chat.New(chat.Options{})
	var out bytes.Buffer
	p := NewPlain(Options{
		Widget:   w,
		Replier:  r,
		BotName:  "JP",
		UserName: "Você",
		Stats:    stats,
		In:       strings.NewReader(input),
		Out:      &out,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ctx.Err() != nil {
		t.Fatal("Run() did not finish before the deadline")
	}
	return w, out.String()
}

func TestPlainEndToEnd(t *testing.T) {
	r := chat.ReplierFunc(func(_ context.Context, text string) (string, error) {
		return "Oi! Como posso ajudar?", nil
	})
	w, out := runPlain(t, "Olá\n", r, nil)

	msgs := w.Messages()
	if len(msgs) != 3 {
		t.Fatalf("conversation has %d messages, want 3: %+v", len(msgs), msgs)
	}
	if msgs[1].Text != "Olá" || msgs[2].Text != "Oi! Como posso ajudar?" {
		t.Fatalf("conversation = %+v", msgs)
	}
	for _, want := range []string{"JP: " + chat.DefaultGreeting, "Você: Olá", "JP: Oi! Como posso ajudar?"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if w.Draft() != "" {
		t.Fatalf("Draft() = %q, want empty", w.Draft())
	}
}

func TestPlainSkipsBlankLinesAndReportsErrors(t *testing.T) {
	calls := 0
	r := chat.ReplierFunc(func(context.Context, string) (string, error) {
		calls++
		return "", errors.New("boom")
	})
	w, out := runPlain(t, "\n   \nhello\n", r, nil)
	if calls != 1 {
		t.Fatalf("replier called %d times, want 1", calls)
	}
	if w.Conversation().Last().Text != chat.DefaultErrorText {
		t.Fatalf("last message = %q, want error text", w.Conversation().Last().Text)
	}
	if !strings.Contains(out, "JP: "+chat.DefaultErrorText) {
		t.Fatalf("output missing error text:\n%s", out)
	}
}

func TestPlainQuitStopsReading(t *testing.T) {
	calls := 0
	r := chat.ReplierFunc(func(context.Context, string) (string, error) {
		calls++
		return "x", nil
	})
	w, _ := runPlain(t, "/quit\nnever sent\n", r, nil)
	if calls != 0 || w.Conversation().Len() != 1 {
		t.Fatalf("lines after /quit were processed: calls=%d messages=%d", calls, w.Conversation().Len())
	}
}

func TestPlainStats(t *testing.T) {
	stats := func(context.Context, int) (cache.Stats, error) {
		return cache.Stats{
			TotalEntries: 2,
			TotalUses:    5,
			Top:          []cache.QuestionCount{{Question: "Qual a idade mínima?", Uses: 4}},
		}, nil
	}
	w, out := runPlain(t, "/stats\n", nil, stats)
	if w.Conversation().Len() != 1 {
		t.Fatal("/stats should not be sent")
	}
	for _, want := range []string{"Total de perguntas em cache: 2", "Total de acessos ao cache: 5", "Qual a idade mínima?: 4 acessos"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlainStatsDisabled(t *testing.T) {
	_, out := runPlain(t, "/stats\n", nil, nil)
	if !strings.Contains(out, "cache disabled") {
		t.Fatalf("output = %q, want cache disabled notice", out)
	}
}

func TestSummarizeStats(t *testing.T) {
	got := SummarizeStats(cache.Stats{TotalEntries: 3, TotalUses: 9})
	if got != "📊 3 perguntas em cache, 9 acessos" {
		t.Fatalf("SummarizeStats() = %q", got)
	}
}
