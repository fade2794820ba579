// Package frontend drives a chat.Widget from the terminal: a full-screen TUI
// when stdin is a terminal, a plain line reader otherwise.
package frontend

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/linanwx/chatwidget/cache"
	"github.com/linanwx/chatwidget/chat"
	"github.com/linanwx/chatwidget/frontend/tui"
	"golang.org/x/term"
)

// Frontend runs the widget until the user quits or ctx is cancelled.
type Frontend interface {
	Run(ctx context.Context) error
}

// StatsFunc reports cache statistics for /stats.
type StatsFunc func(ctx context.Context, topN int) (cache.Stats, error)

// Options configures a frontend.
type Options struct {
	Widget      *chat.Widget
	Replier     chat.Replier
	BotName     string
	UserName    string
	Placeholder string
	Markdown    bool
	Stats       StatsFunc // nil when the cache is disabled
	ForcePlain  bool

	In  io.Reader // plain mode only; defaults to os.Stdin
	Out io.Writer // plain mode only; defaults to os.Stdout
}

// New returns the TUI when stdin is a terminal, otherwise a Plain frontend.
func New(opts Options) Frontend {
	if !opts.ForcePlain && term.IsTerminal(int(os.Stdin.Fd())) {
		return &tuiFrontend{opts: opts}
	}
	return NewPlain(opts)
}

type tuiFrontend struct {
	opts Options
}

func (f *tuiFrontend) Run(ctx context.Context) error {
	cfg := tui.Config{
		BotName:     f.opts.BotName,
		UserName:    f.opts.UserName,
		Placeholder: f.opts.Placeholder,
		Markdown:    f.opts.Markdown,
	}
	if f.opts.Stats != nil {
		stats := f.opts.Stats
		cfg.Stats = func(ctx context.Context) (string, error) {
			st, err := stats(ctx, 0)
			if err != nil {
				return "", err
			}
			return SummarizeStats(st), nil
		}
	}
	return tui.Run(ctx, tui.NewApp(ctx, f.opts.Widget, f.opts.Replier, cfg))
}

// SummarizeStats formats totals on one line.
func SummarizeStats(st cache.Stats) string {
	return fmt.Sprintf("📊 %d perguntas em cache, %d acessos", st.TotalEntries, st.TotalUses)
}

// FormatStats formats totals plus the most used questions.
func FormatStats(st cache.Stats) string {
	var b strings.Builder
	b.WriteString("📊 Estatísticas do Cache:\n")
	fmt.Fprintf(&b, "• Total de perguntas em cache: %d\n", st.TotalEntries)
	fmt.Fprintf(&b, "• Total de acessos ao cache: %d\n", st.TotalUses)
	if len(st.Top) > 0 {
		b.WriteString("• Top perguntas:\n")
		for _, q := range st.Top {
			fmt.Fprintf(&b, "  - %s: %d acessos\n", preview(q.Question, 30), q.Uses)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n]) + "..."
	}
	return s
}
