package chat

// Conversation is the append-only message log. Insertion order is display
// order.
type Conversation struct {
	messages []Message
}

// NewConversation starts a conversation with the greeting as its first entry.
func NewConversation(greeting string) *Conversation {
	return &Conversation{messages: []Message{BotMessage(greeting)}}
}

// Append adds msg to the end of the log.
func (c *Conversation) Append(msg Message) {
	c.messages = append(c.messages, msg)
}

// Messages returns a copy of the log.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the most recent message.
func (c *Conversation) Last() Message {
	return c.messages[len(c.messages)-1]
}
