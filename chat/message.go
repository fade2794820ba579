// Package chat holds the chat widget state: the conversation log, the draft
// being typed, and the submit/resolve flow around one outbound reply call.
package chat

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who authored a message.
type Sender int

const (
	SenderUser Sender = iota
	SenderBot
)

func (s Sender) String() string {
	switch s {
	case SenderUser:
		return "user"
	case SenderBot:
		return "bot"
	default:
		return "unknown"
	}
}

// Message is one entry of the conversation. Values are never mutated after
// creation.
type Message struct {
	ID        string
	Sender    Sender
	Text      string
	CreatedAt time.Time
}

// UserMessage builds a message authored by the local user.
func UserMessage(text string) Message {
	return newMessage(SenderUser, text)
}

// BotMessage builds a message authored by the chat-reply service.
func BotMessage(text string) Message {
	return newMessage(SenderBot, text)
}

func newMessage(sender Sender, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		CreatedAt: time.Now(),
	}
}
