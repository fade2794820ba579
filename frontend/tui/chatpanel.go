package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/linanwx/chatwidget/chat"
	"github.com/linanwx/chatwidget/termmd"
)

var (
	userBubbleStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#4a90e2"))
	botBubbleStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#cccccc"))
	senderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// ChatPanel shows the conversation in a scrollable viewport: user messages on
// the right, bot messages on the left.
type ChatPanel struct {
	viewport viewport.Model
	messages []chat.Message
	width    int
	botName  string
	userName string
	markdown bool
}

// NewChatPanel creates a chat panel.
func NewChatPanel(botName, userName string, markdown bool) *ChatPanel {
	vp := viewport.New(0, 0)
	vp.SetContent("")
	return &ChatPanel{
		viewport: vp,
		botName:  botName,
		userName: userName,
		markdown: markdown,
	}
}

func (p *ChatPanel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	switch msg := msg.(type) {
	case conversationMsg:
		p.messages = msg.Messages
		p.refresh()
		return p, nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

func (p *ChatPanel) View() string {
	return p.viewport.View()
}

func (p *ChatPanel) SetSize(width, height int) {
	p.width = width
	p.viewport.Width = width
	p.viewport.Height = height
	p.refresh()
}

func (p *ChatPanel) refresh() {
	if p.width <= 0 {
		return
	}
	blocks := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		blocks = append(blocks, p.renderMessage(m))
	}
	p.viewport.SetContent(strings.Join(blocks, "\n\n"))
	p.viewport.GotoBottom()
}

func (p *ChatPanel) renderMessage(m chat.Message) string {
	maxWidth := max(p.width*8/10, 10)

	text := m.Text
	style := botBubbleStyle
	align := lipgloss.Left
	name := p.botName
	if m.Sender == chat.SenderUser {
		style = userBubbleStyle
		align = lipgloss.Right
		name = p.userName
	} else if p.markdown {
		text = termmd.Render(text)
	}

	// Width covers padding but not the border.
	frame := style.GetHorizontalFrameSize() - style.GetHorizontalBorderSize()
	width := min(lipgloss.Width(text)+frame, maxWidth)
	bubble := style.Width(width).Render(text)

	label := lipgloss.PlaceHorizontal(p.width, align, senderStyle.Render(name))
	return label + "\n" + lipgloss.PlaceHorizontal(p.width, align, bubble)
}
