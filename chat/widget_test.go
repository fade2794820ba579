package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func texts(w *Widget) []string {
	var out []string
	for _, m := range w.Messages() {
		out = append(out, m.Sender.String()+":"+m.Text)
	}
	return out
}

func TestNewWidgetStartsWithGreeting(t *testing.T) {
	w := New(Options{})
	msgs := w.Messages()
	if len(msgs) != 1 {
		t.Fatalf("len(Messages()) = %d, want 1", len(msgs))
	}
	if msgs[0].Sender != SenderBot || msgs[0].Text != DefaultGreeting {
		t.Fatalf("first message = %+v, want bot greeting", msgs[0])
	}
	if w.Draft() != "" {
		t.Fatalf("Draft() = %q, want empty", w.Draft())
	}
	if w.Pending() != 0 {
		t.Fatalf("Pending() = %d, want 0", w.Pending())
	}
}

func TestSubmitBlankDraftIsNoop(t *testing.T) {
	for _, draft := range []string{"", "   ", "\t\n"} {
		w := New(Options{})
		w.SetDraft(draft)
		ex, ok := w.Submit()
		if ok || ex != nil {
			t.Fatalf("Submit(%q) returned exchange, want none", draft)
		}
		if w.Conversation().Len() != 1 {
			t.Fatalf("Submit(%q) appended messages: %v", draft, texts(w))
		}
		if w.Draft() != draft {
			t.Fatalf("Submit(%q) changed draft to %q", draft, w.Draft())
		}
	}
}

func TestSubmitAppendsUntrimmedDraftAndClears(t *testing.T) {
	w := New(Options{})
	w.SetDraft("  X ")
	ex, ok := w.Submit()
	if !ok || ex == nil {
		t.Fatal("Submit() should produce an exchange")
	}
	if ex.Text != "  X " {
		t.Fatalf("exchange text = %q, want %q", ex.Text, "  X ")
	}
	last := w.Conversation().Last()
	if last.Sender != SenderUser || last.Text != "  X " {
		t.Fatalf("last message = %+v, want user %q", last, "  X ")
	}
	if w.Draft() != "" {
		t.Fatalf("Draft() = %q, want empty", w.Draft())
	}
	if w.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", w.Pending())
	}
}

func TestResolveSuccessAndFailure(t *testing.T) {
	w := New(Options{})
	w.SetDraft("ok")
	okEx, _ := w.Submit()
	w.SetDraft("bad")
	badEx, _ := w.Submit()

	w.Resolve(okEx.Run(context.Background(), ReplierFunc(func(context.Context, string) (string, error) {
		return "Y", nil
	})))
	w.Resolve(badEx.Run(context.Background(), ReplierFunc(func(context.Context, string) (string, error) {
		return "", errors.New("connection refused")
	})))

	want := []string{"bot:" + DefaultGreeting, "user:ok", "user:bad", "bot:Y", "bot:" + DefaultErrorText}
	if got := texts(w); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("conversation = %v, want %v", got, want)
	}
	if w.Pending() != 0 {
		t.Fatalf("Pending() = %d, want 0", w.Pending())
	}
}

func TestRunWithoutReplierFails(t *testing.T) {
	ex := &Exchange{RequestID: "r1", Text: "hi"}
	res := ex.Run(context.Background(), nil)
	if res.Err == nil {
		t.Fatal("Run(nil) should fail")
	}
	if res.RequestID != "r1" || res.Text != "hi" {
		t.Fatalf("Run(nil) result = %+v, want request metadata preserved", res)
	}
}

func TestHandleKeyOnlyCommitKeySubmits(t *testing.T) {
	w := New(Options{})
	w.SetDraft("hello")
	for _, key := range []string{"a", "esc", "tab", "ctrl+j"} {
		if _, ok := w.HandleKey(key); ok {
			t.Fatalf("HandleKey(%q) submitted", key)
		}
	}
	if w.Conversation().Len() != 1 || w.Draft() != "hello" {
		t.Fatalf("non-commit keys changed state: %v draft=%q", texts(w), w.Draft())
	}
	if _, ok := w.HandleKey(CommitKey); !ok {
		t.Fatal("HandleKey(enter) should submit")
	}
	if w.Conversation().Last().Text != "hello" || w.Draft() != "" {
		t.Fatalf("HandleKey(enter) state = %v draft=%q", texts(w), w.Draft())
	}
}

func TestOverlappingRepliesAppendInResolutionOrder(t *testing.T) {
	w := New(Options{})
	w.SetDraft("A")
	a, _ := w.Submit()
	w.SetDraft("B")
	b, _ := w.Submit()

	echo := ReplierFunc(func(_ context.Context, text string) (string, error) {
		return "reply-to-" + text, nil
	})
	resA := make(chan Result, 1)
	resB := make(chan Result, 1)
	releaseA := make(chan struct{})
	go func() {
		<-releaseA
		resA <- a.Run(context.Background(), echo)
	}()
	go func() { resB <- b.Run(context.Background(), echo) }()

	w.Resolve(<-resB)
	close(releaseA)
	w.Resolve(<-resA)

	want := []string{"bot:" + DefaultGreeting, "user:A", "user:B", "bot:reply-to-B", "bot:reply-to-A"}
	if got := texts(w); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("conversation = %v, want %v", got, want)
	}
}

func TestSubmitTooLongDraft(t *testing.T) {
	w := New(Options{MaxInputRunes: 3})
	w.SetDraft("abcd")
	if _, ok := w.Submit(); ok {
		t.Fatal("Submit() should not produce an exchange for a long draft")
	}
	want := []string{"bot:" + DefaultGreeting, "user:abcd", "bot:❌ Sua pergunta é muito longa. Por favor, resuma em até 3 caracteres."}
	if got := texts(w); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("conversation = %v, want %v", got, want)
	}
	if w.Draft() != "" || w.Pending() != 0 {
		t.Fatalf("draft=%q pending=%d, want empty and 0", w.Draft(), w.Pending())
	}

	w.SetDraft("olá")
	if _, ok := w.Submit(); !ok {
		t.Fatal("three runes should be accepted")
	}
}

func TestOnChangeFiresForEveryAppend(t *testing.T) {
	w := New(Options{Greeting: "hi there"})
	var seen []string
	w.OnChange(func(m Message) { seen = append(seen, m.Text) })

	w.SetDraft("q")
	ex, _ := w.Submit()
	w.Resolve(Result{RequestID: ex.RequestID, Reply: "a"})

	if strings.Join(seen, ",") != "q,a" {
		t.Fatalf("OnChange saw %v, want [q a]", seen)
	}
	if w.Messages()[0].Text != "hi there" {
		t.Fatalf("greeting = %q, want custom greeting", w.Messages()[0].Text)
	}
}

func TestEndToEndScenario(t *testing.T) {
	w := New(Options{})
	w.SetDraft("Olá")
	ex, ok := w.HandleKey(CommitKey)
	if !ok {
		t.Fatal("expected exchange")
	}
	res := ex.Run(context.Background(), ReplierFunc(func(_ context.Context, text string) (string, error) {
		if text != "Olá" {
			t.Errorf("replier got %q, want %q", text, "Olá")
		}
		return "Oi! Como posso ajudar?", nil
	}))
	w.Resolve(res)

	want := []string{"bot:" + DefaultGreeting, "user:Olá", "bot:Oi! Como posso ajudar?"}
	if got := texts(w); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("conversation = %v, want %v", got, want)
	}
	if w.Draft() != "" {
		t.Fatalf("Draft() = %q, want empty", w.Draft())
	}
}
