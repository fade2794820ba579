package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // dim gray

// StatusPanel is a one-line strip showing a spinner while replies are
// pending, otherwise the latest notice or log line.
type StatusPanel struct {
	spinner spinner.Model
	botName string
	pending int
	line    string
	width   int
}

// NewStatusPanel creates a status panel.
func NewStatusPanel(botName string) *StatusPanel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &StatusPanel{spinner: sp, botName: botName}
}

func (p *StatusPanel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	switch msg := msg.(type) {
	case LogLineMsg:
		p.line = strings.TrimRight(msg.Line, "\n")
		return p, nil
	case noticeMsg:
		p.line = msg.Text
		return p, nil
	case spinner.TickMsg:
		if p.pending == 0 {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd
	}
	return p, nil
}

// SetPending updates the in-flight count and returns a tick command when the
// spinner needs to start.
func (p *StatusPanel) SetPending(n int) tea.Cmd {
	wasIdle := p.pending == 0
	p.pending = n
	if wasIdle && n > 0 {
		return p.spinner.Tick
	}
	return nil
}

func (p *StatusPanel) View() string {
	var s string
	if p.pending > 0 {
		s = p.spinner.View() + " " + p.botName + ": Processando..."
	} else {
		s = statusStyle.Render(p.line)
	}
	if p.width > 0 {
		s = lipgloss.NewStyle().MaxWidth(p.width).Render(s)
	}
	return s
}

func (p *StatusPanel) SetSize(width, height int) {
	p.width = width
}
