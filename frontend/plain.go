package frontend

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/linanwx/chatwidget/chat"
	"github.com/linanwx/chatwidget/logger"
	"github.com/linanwx/chatwidget/termmd"
)

const plainTopQuestions = 5

// Plain is a line-oriented frontend for pipes and dumb terminals. Each input
// line is a draft followed by the commit key. Replies may arrive while more
// lines are read; they are printed as they resolve.
type Plain struct {
	opts Options

	userLabel func(a ...interface{}) string
	botLabel  func(a ...interface{}) string
	noteColor *color.Color
}

// NewPlain creates a plain frontend.
func NewPlain(opts Options) *Plain {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Plain{
		opts:      opts,
		userLabel: color.New(color.FgGreen, color.Bold).SprintFunc(),
		botLabel:  color.New(color.FgBlue, color.Bold).SprintFunc(),
		noteColor: color.New(color.FgYellow),
	}
}

// Run reads lines until EOF or /quit. At EOF it waits for replies that are
// still in flight.
func (p *Plain) Run(ctx context.Context) error {
	w := p.opts.Widget
	for _, m := range w.Messages() {
		p.print(m)
	}
	w.OnChange(p.print)
	defer w.OnChange(nil)

	lines := make(chan string)
	go p.readLines(ctx, lines)

	results := make(chan chat.Result)
	inflight := 0

	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-lines:
			if !ok {
				lines = nil
				if inflight == 0 {
					return nil
				}
				continue
			}
			if handled, quit := p.command(ctx, strings.TrimSpace(line)); quit {
				return nil
			} else if handled {
				continue
			}

			w.SetDraft(line)
			ex, ok := w.HandleKey(chat.CommitKey)
			if !ok {
				continue
			}
			inflight++
			go func() {
				res := ex.Run(ctx, p.opts.Replier)
				select {
				case results <- res:
				case <-ctx.Done():
				}
			}()

		case res := <-results:
			inflight--
			w.Resolve(res)
			if lines == nil && inflight == 0 {
				return nil
			}
		}
	}
}

// command handles slash commands. quit reports whether the loop should stop.
func (p *Plain) command(ctx context.Context, text string) (handled, quit bool) {
	switch strings.ToLower(text) {
	case "/quit", "/exit":
		p.noteColor.Fprintln(p.opts.Out, "Até a próxima! 👋")
		return true, true
	case "/stats":
		if p.opts.Stats == nil {
			p.noteColor.Fprintln(p.opts.Out, "cache disabled")
			return true, false
		}
		st, err := p.opts.Stats(ctx, plainTopQuestions)
		if err != nil {
			logger.Warn("cache stats failed", "err", err)
			p.noteColor.Fprintf(p.opts.Out, "cache stats: %v\n", err)
			return true, false
		}
		p.noteColor.Fprintln(p.opts.Out, FormatStats(st))
		return true, false
	}
	return false, false
}

func (p *Plain) readLines(ctx context.Context, out chan<- string) {
	defer close(out)
	scanner := bufio.NewScanner(p.opts.In)
	for scanner.Scan() {
		select {
		case out <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		logger.Warn("input read failed", "err", err)
	}
}

func (p *Plain) print(m chat.Message) {
	if m.Sender == chat.SenderUser {
		fmt.Fprintf(p.opts.Out, "%s %s\n", p.userLabel(p.opts.UserName+":"), m.Text)
		return
	}
	text := m.Text
	if p.opts.Markdown {
		text = termmd.Render(text)
	}
	fmt.Fprintf(p.opts.Out, "%s %s\n", p.botLabel(p.opts.BotName+":"), text)
}
