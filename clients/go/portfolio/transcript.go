package portfolio

import "github.com/google/uuid"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ChatMessage is one entry of a conversation transcript.
type ChatMessage struct {
	ID      string
	Role    Role
	Content string
}

// Conversation is an ordered transcript of chat messages. At most one
// message, always the last one and always an assistant message, is "in
// progress": its content grows as stream deltas arrive. Every other
// message is frozen.
type Conversation struct {
	messages   []ChatMessage
	inProgress bool
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{}
}

// Add appends a frozen message. Any in-progress assistant message is
// finalized first: a new message starting always freezes the previous one.
func (c *Conversation) Add(role Role, content string) ChatMessage {
	c.inProgress = false
	msg := ChatMessage{ID: uuid.NewString(), Role: role, Content: content}
	c.messages = append(c.messages, msg)
	return msg
}

// AddUser appends a frozen user message.
func (c *Conversation) AddUser(content string) ChatMessage {
	return c.Add(RoleUser, content)
}

// SetAssistant applies the current assistant text for the in-flight turn.
// If the last message is the in-progress assistant message its content is
// replaced, otherwise a new assistant message is appended and becomes the
// in-progress one. Callers pass the full accumulated text, so observed
// content only ever grows.
func (c *Conversation) SetAssistant(content string) ChatMessage {
	if c.inProgress && len(c.messages) > 0 {
		last := &c.messages[len(c.messages)-1]
		last.Content = content
		return *last
	}

	msg := ChatMessage{ID: uuid.NewString(), Role: RoleAssistant, Content: content}
	c.messages = append(c.messages, msg)
	c.inProgress = true
	return msg
}

// Finalize freezes the in-progress assistant message, if any. Calling it
// again, or after [DONE] already finalized the turn, changes nothing.
func (c *Conversation) Finalize() {
	c.inProgress = false
}

// InProgress reports whether an assistant message is still being assembled.
func (c *Conversation) InProgress() bool {
	return c.inProgress
}

// Len returns the number of messages in the transcript.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Messages returns a copy of the transcript in insertion order.
func (c *Conversation) Messages() []ChatMessage {
	out := make([]ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Last returns the most recent message, if any.
func (c *Conversation) Last() (ChatMessage, bool) {
	if len(c.messages) == 0 {
		return ChatMessage{}, false
	}
	return c.messages[len(c.messages)-1], true
}
