// Package tui renders the chat widget as a bubbletea program.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/linanwx/chatwidget/chat"
)

// Panel is a composable TUI region with its own state, update logic, and view.
// The root App model orchestrates panels without knowing their internals.
type Panel interface {
	Update(tea.Msg) (Panel, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// LogLineMsg carries a single log line from the logger writer.
type LogLineMsg struct{ Line string }

// ReplyMsg delivers a finished exchange back to the Update loop.
type ReplyMsg struct{ Result chat.Result }

// conversationMsg asks the chat panel to redraw the given messages.
type conversationMsg struct{ Messages []chat.Message }

// noticeMsg shows a transient line in the status panel.
type noticeMsg struct{ Text string }
