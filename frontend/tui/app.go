package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/linanwx/chatwidget/chat"
	"github.com/linanwx/chatwidget/logger"
)

var separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

// Config holds the presentation settings of the TUI.
type Config struct {
	BotName     string
	UserName    string
	Placeholder string
	Markdown    bool
	// Stats returns a one-line cache summary for /stats. Nil disables it.
	Stats func(ctx context.Context) (string, error)
}

// App is the root bubbletea model. Update is the only place the widget is
// touched; replies computed in commands come back as ReplyMsg.
type App struct {
	ctx     context.Context
	widget  *chat.Widget
	replier chat.Replier
	cfg     Config

	chatPanel   *ChatPanel
	inputPanel  *InputPanel
	statusPanel *StatusPanel

	width, height int
}

// NewApp creates the root TUI model around widget.
func NewApp(ctx context.Context, widget *chat.Widget, replier chat.Replier, cfg Config) *App {
	m := &App{
		ctx:         ctx,
		widget:      widget,
		replier:     replier,
		cfg:         cfg,
		chatPanel:   NewChatPanel(cfg.BotName, cfg.UserName, cfg.Markdown),
		inputPanel:  NewInputPanel("> ", cfg.Placeholder),
		statusPanel: NewStatusPanel(cfg.BotName),
	}
	m.inputPanel.SetValue(widget.Draft())
	m.chatPanel.Update(conversationMsg{Messages: widget.Messages()})
	return m
}

func (m *App) Init() tea.Cmd {
	return textinput.Blink
}

func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 0)
		m.height = max(msg.Height, 0)
		m.recalcLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		_, cmd := m.chatPanel.Update(msg)
		return m, cmd

	case ReplyMsg:
		m.widget.Resolve(msg.Result)
		m.syncConversation()
		m.statusPanel.SetPending(m.widget.Pending())
		return m, nil

	case LogLineMsg, noticeMsg:
		_, cmd := m.statusPanel.Update(msg)
		return m, cmd

	default:
		// Spinner ticks and cursor blinks.
		var cmds []tea.Cmd
		_, cmd := m.statusPanel.Update(msg)
		cmds = append(cmds, cmd)
		_, cmd = m.inputPanel.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}
}

func (m *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
		_, cmd := m.chatPanel.Update(msg)
		return m, cmd
	case tea.KeyEnter:
		if cmd, handled := m.command(strings.TrimSpace(m.inputPanel.Value())); handled {
			m.inputPanel.SetValue("")
			m.widget.SetDraft("")
			return m, cmd
		}
	default:
		_, cmd := m.inputPanel.Update(msg)
		m.widget.SetDraft(m.inputPanel.Value())
		return m, cmd
	}

	m.widget.SetDraft(m.inputPanel.Value())
	ex, ok := m.widget.HandleKey(msg.String())
	m.inputPanel.SetValue(m.widget.Draft())
	m.syncConversation()
	if !ok {
		return m, nil
	}
	return m, tea.Batch(m.runExchange(ex), m.statusPanel.SetPending(m.widget.Pending()))
}

// command handles slash commands typed into the input.
func (m *App) command(text string) (tea.Cmd, bool) {
	switch strings.ToLower(text) {
	case "/quit", "/exit":
		return tea.Quit, true
	case "/stats":
		if m.cfg.Stats == nil {
			return notice("cache disabled"), true
		}
		stats, ctx := m.cfg.Stats, m.ctx
		return func() tea.Msg {
			line, err := stats(ctx)
			if err != nil {
				return noticeMsg{Text: fmt.Sprintf("cache stats: %v", err)}
			}
			return noticeMsg{Text: line}
		}, true
	}
	return nil, false
}

func notice(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{Text: text} }
}

// runExchange performs the outbound call off the Update loop.
func (m *App) runExchange(ex *chat.Exchange) tea.Cmd {
	ctx, replier := m.ctx, m.replier
	return func() tea.Msg {
		return ReplyMsg{Result: ex.Run(ctx, replier)}
	}
}

func (m *App) syncConversation() {
	m.chatPanel.Update(conversationMsg{Messages: m.widget.Messages()})
}

func (m *App) View() string {
	if m.width == 0 || m.height == 0 {
		return "initializing..."
	}

	sep := separatorStyle.Render(strings.Repeat("─", m.width))

	return lipgloss.JoinVertical(lipgloss.Left,
		m.chatPanel.View(),
		sep,
		m.statusPanel.View(),
		m.inputPanel.View(),
	)
}

func (m *App) recalcLayout() {
	const inputH = 1
	const statusH = 1
	const sepLines = 1

	chatH := max(m.height-inputH-statusH-sepLines, 1)

	m.chatPanel.SetSize(m.width, chatH)
	m.statusPanel.SetSize(m.width, statusH)
	m.inputPanel.SetSize(m.width, inputH)
}

// Run starts the program on the current terminal and blocks until it exits.
// Log output is routed to the status line for the duration.
func Run(ctx context.Context, app *App) error {
	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	lw := newLogWriter(program)
	logger.Intercept(lw)
	defer func() {
		logger.Restore()
		lw.close()
	}()

	logger.Info("chat widget started")
	_, err := program.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

const logBufferSize = 64

// logWriter implements io.Writer and forwards each line as a LogLineMsg.
// Writes never block: Update itself logs, and Send would wait on the loop
// that is running it. Lines are dropped when the buffer is full.
type logWriter struct {
	lines chan string
	stop  chan struct{}
}

func newLogWriter(program *tea.Program) *logWriter {
	w := &logWriter{
		lines: make(chan string, logBufferSize),
		stop:  make(chan struct{}),
	}
	go func() {
		for {
			select {
			case line := <-w.lines:
				program.Send(LogLineMsg{Line: line})
			case <-w.stop:
				return
			}
		}
	}()
	return w
}

func (w *logWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		if line == "" {
			continue
		}
		select {
		case w.lines <- line:
		default:
		}
	}
	return len(p), nil
}

func (w *logWriter) close() {
	close(w.stop)
}
