package chat

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/linanwx/chatwidget/logger"
)

const (
	DefaultGreeting    = "Olá! Sou o JP, assistente virtual. Em que posso ajudar?"
	DefaultErrorText   = "Erro na comunicação com o servidor."
	DefaultTooLongText = "❌ Sua pergunta é muito longa. Por favor, resuma em até %d caracteres."

	// CommitKey is the key name that submits the draft.
	CommitKey = "enter"
)

// Options configures a Widget. Zero values fall back to the defaults above.
type Options struct {
	Greeting    string
	ErrorText   string
	TooLongText string // may contain one %d verb for MaxInputRunes
	// MaxInputRunes rejects longer drafts locally. 0 disables the check.
	MaxInputRunes int
}

// Widget owns the conversation and the draft. It is not safe for concurrent
// use: every method must be called from the single goroutine that owns it.
// Replies computed elsewhere come back through Resolve.
type Widget struct {
	conv     *Conversation
	draft    string
	opts     Options
	pending  map[string]struct{}
	onChange func(Message)
}

// New creates a widget showing only the greeting, with an empty draft.
func New(opts Options) *Widget {
	if strings.TrimSpace(opts.Greeting) == "" {
		opts.Greeting = DefaultGreeting
	}
	if strings.TrimSpace(opts.ErrorText) == "" {
		opts.ErrorText = DefaultErrorText
	}
	if strings.TrimSpace(opts.TooLongText) == "" {
		opts.TooLongText = DefaultTooLongText
	}
	if opts.MaxInputRunes < 0 {
		opts.MaxInputRunes = 0
	}
	return &Widget{
		conv:    NewConversation(opts.Greeting),
		opts:    opts,
		pending: make(map[string]struct{}),
	}
}

// OnChange registers fn to run after every append. Pass nil to clear.
func (w *Widget) OnChange(fn func(Message)) {
	w.onChange = fn
}

// Messages returns a snapshot of the conversation.
func (w *Widget) Messages() []Message {
	return w.conv.Messages()
}

// Conversation exposes the underlying log.
func (w *Widget) Conversation() *Conversation {
	return w.conv
}

// Draft returns the uncommitted input.
func (w *Widget) Draft() string {
	return w.draft
}

// SetDraft replaces the uncommitted input.
func (w *Widget) SetDraft(s string) {
	w.draft = s
}

// Pending returns the number of exchanges that have not been resolved yet.
func (w *Widget) Pending() int {
	return len(w.pending)
}

// HandleKey submits on the commit key and ignores everything else.
func (w *Widget) HandleKey(key string) (*Exchange, bool) {
	if key != CommitKey {
		return nil, false
	}
	return w.Submit()
}

// Submit commits the draft. A blank draft is left untouched and nothing is
// sent. Otherwise the draft is appended as a user message, cleared, and
// returned as an Exchange for the caller to run asynchronously.
func (w *Widget) Submit() (*Exchange, bool) {
	if strings.TrimSpace(w.draft) == "" {
		return nil, false
	}
	text := w.draft
	w.append(UserMessage(text))

	if w.opts.MaxInputRunes > 0 && utf8.RuneCountInString(text) > w.opts.MaxInputRunes {
		w.draft = ""
		logger.Debug("draft rejected as too long", "runes", utf8.RuneCountInString(text), "max", w.opts.MaxInputRunes)
		w.append(BotMessage(w.tooLongText()))
		return nil, false
	}

	ex := &Exchange{RequestID: uuid.NewString(), Text: text}
	w.pending[ex.RequestID] = struct{}{}
	w.draft = ""
	logger.Debug("draft submitted", "request", ex.RequestID, "pending", len(w.pending))
	return ex, true
}

// Resolve applies the outcome of an exchange: the reply on success, the fixed
// error text on any failure. Results are applied in the order they arrive.
func (w *Widget) Resolve(res Result) Message {
	delete(w.pending, res.RequestID)

	var msg Message
	if res.Err != nil {
		logger.Warn("reply failed", "request", res.RequestID, "err", res.Err)
		msg = BotMessage(w.opts.ErrorText)
	} else {
		logger.Debug("reply received", "request", res.RequestID, "pending", len(w.pending))
		msg = BotMessage(res.Reply)
	}
	w.append(msg)
	return msg
}

func (w *Widget) append(msg Message) {
	w.conv.Append(msg)
	if w.onChange != nil {
		w.onChange(msg)
	}
}

func (w *Widget) tooLongText() string {
	if strings.Contains(w.opts.TooLongText, "%d") {
		return fmt.Sprintf(w.opts.TooLongText, w.opts.MaxInputRunes)
	}
	return w.opts.TooLongText
}
