package chat

import (
	"context"
	"errors"
)

// Replier answers a prompt with a reply string.
type Replier interface {
	Reply(ctx context.Context, text string) (string, error)
}

// ReplierFunc adapts a function to the Replier interface.
type ReplierFunc func(ctx context.Context, text string) (string, error)

func (f ReplierFunc) Reply(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

var errNoReplier = errors.New("chat: no replier configured")

// Exchange is one submitted draft waiting for its reply. Run may be called
// from any goroutine; it never touches widget state.
type Exchange struct {
	RequestID string
	Text      string
}

// Result is the outcome of an Exchange, handed back to Widget.Resolve on the
// owning goroutine.
type Result struct {
	RequestID string
	Text      string
	Reply     string
	Err       error
}

// Run performs the outbound call.
func (e *Exchange) Run(ctx context.Context, r Replier) Result {
	res := Result{RequestID: e.RequestID, Text: e.Text}
	if r == nil {
		res.Err = errNoReplier
		return res
	}
	res.Reply, res.Err = r.Reply(ctx, e.Text)
	return res
}
