package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// InputPanel is the single-line draft editor.
type InputPanel struct {
	input textinput.Model
	width int
}

// NewInputPanel creates a focused input with the given placeholder.
func NewInputPanel(prompt, placeholder string) *InputPanel {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.Focus()
	return &InputPanel{input: ti}
}

func (p *InputPanel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *InputPanel) View() string {
	return p.input.View()
}

func (p *InputPanel) SetSize(width, height int) {
	p.width = width
	p.input.Width = max(width-lipgloss.Width(p.input.Prompt)-1, 1)
}

// Value returns the text currently in the input.
func (p *InputPanel) Value() string {
	return p.input.Value()
}

// SetValue replaces the text in the input.
func (p *InputPanel) SetValue(s string) {
	p.input.SetValue(s)
}
