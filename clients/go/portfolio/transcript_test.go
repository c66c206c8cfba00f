package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationAddUser(t *testing.T) {
	conv := NewConversation()

	msg := conv.AddUser("hello")
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, RoleUser, msg.Role)
	assert.Equal(t, "hello", msg.Content)
	assert.False(t, conv.InProgress())
	assert.Equal(t, 1, conv.Len())
}

func TestConversationSetAssistantAppendsThenReplaces(t *testing.T) {
	conv := NewConversation()
	conv.AddUser("hi")

	first := conv.SetAssistant("He")
	assert.True(t, conv.InProgress())
	assert.Equal(t, 2, conv.Len())

	second := conv.SetAssistant("Hello")
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, conv.Len())

	last, ok := conv.Last()
	require.True(t, ok)
	assert.Equal(t, "Hello", last.Content)
	assert.Equal(t, RoleAssistant, last.Role)
}

func TestConversationFinalizeFreezesMessage(t *testing.T) {
	conv := NewConversation()
	conv.AddUser("hi")
	inFlight := conv.SetAssistant("done answer")
	conv.Finalize()
	assert.False(t, conv.InProgress())

	// The next assistant text starts a new message rather than touching
	// the frozen one.
	next := conv.SetAssistant("new answer")
	assert.NotEqual(t, inFlight.ID, next.ID)
	assert.Equal(t, 3, conv.Len())

	msgs := conv.Messages()
	assert.Equal(t, "done answer", msgs[1].Content)
	assert.Equal(t, "new answer", msgs[2].Content)
}

func TestConversationAddFreezesInProgress(t *testing.T) {
	conv := NewConversation()
	conv.SetAssistant("streaming")
	require.True(t, conv.InProgress())

	conv.AddUser("interrupting question")
	assert.False(t, conv.InProgress())

	// A later assistant turn must not rewrite the interrupted reply.
	conv.SetAssistant("fresh reply")
	msgs := conv.Messages()
	require.Equal(t, 3, conv.Len())
	assert.Equal(t, "streaming", msgs[0].Content)
	assert.Equal(t, "fresh reply", msgs[2].Content)
}

func TestConversationMessagesReturnsCopy(t *testing.T) {
	conv := NewConversation()
	conv.AddUser("original")

	msgs := conv.Messages()
	msgs[0].Content = "mutated"

	fresh := conv.Messages()
	assert.Equal(t, "original", fresh[0].Content)
}

func TestConversationLastEmpty(t *testing.T) {
	conv := NewConversation()
	_, ok := conv.Last()
	assert.False(t, ok)
}
