package validate

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFields = []Field{
	{Name: "name", Label: "Name", MaxLen: 100},
	{Name: "email", Label: "Email", MaxLen: 255, Format: Email(), FormatMsg: "Invalid email format", Lowercase: true},
	{Name: "subject", Label: "Subject", MaxLen: 200},
	{Name: "message", Label: "Message", MaxLen: 2000},
}

func validPayload() map[string]any {
	return map[string]any{
		"name":    "Jordan",
		"email":   "Jordan@Example.COM",
		"subject": "Hello",
		"message": "Nice site",
	}
}

func TestObjectValid(t *testing.T) {
	result := Object(validPayload(), testFields)
	require.True(t, result.OK)
	assert.Equal(t, "jordan@example.com", result.Values["email"])
	assert.Equal(t, "Jordan", result.Values["name"])
}

func TestObjectTrimsValues(t *testing.T) {
	payload := validPayload()
	payload["name"] = "  Jordan  "
	result := Object(payload, testFields)
	require.True(t, result.OK)
	assert.Equal(t, "Jordan", result.Values["name"])
}

func TestObjectFieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
		field  string
		reason string
	}{
		{
			name:   "missing name",
			mutate: func(p map[string]any) { delete(p, "name") },
			field:  "name",
			reason: "Name is required",
		},
		{
			name:   "whitespace only subject",
			mutate: func(p map[string]any) { p["subject"] = "   " },
			field:  "subject",
			reason: "Subject is required",
		},
		{
			name:   "non-string message",
			mutate: func(p map[string]any) { p["message"] = 42 },
			field:  "message",
			reason: "Message is required",
		},
		{
			name:   "name too long",
			mutate: func(p map[string]any) { p["name"] = strings.Repeat("a", 101) },
			field:  "name",
			reason: "Name must be less than 100 characters",
		},
		{
			name:   "message too long",
			mutate: func(p map[string]any) { p["message"] = strings.Repeat("a", 2001) },
			field:  "message",
			reason: "Message must be less than 2000 characters",
		},
		{
			name:   "bad email",
			mutate: func(p map[string]any) { p["email"] = "not-an-email" },
			field:  "email",
			reason: "Invalid email format",
		},
		{
			name:   "email missing tld",
			mutate: func(p map[string]any) { p["email"] = "user@host" },
			field:  "email",
			reason: "Invalid email format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validPayload()
			tt.mutate(payload)
			result := Object(payload, testFields)
			assert.False(t, result.OK)
			assert.Equal(t, tt.field, result.Field)
			assert.Equal(t, tt.reason, result.Reason)
		})
	}
}

func TestObjectLengthAppliesToRawValue(t *testing.T) {
	// Padding can push a value over the limit even when the trimmed text
	// is short.
	payload := validPayload()
	payload["name"] = "Jo" + strings.Repeat(" ", 100)
	result := Object(payload, testFields)
	assert.False(t, result.OK)
	assert.Equal(t, "Name must be less than 100 characters", result.Reason)
}

func TestObjectNilPayload(t *testing.T) {
	result := Object(nil, testFields)
	assert.False(t, result.OK)
}

func messagesJSON(t *testing.T, v any) json.RawMessage {
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestMessagesValid(t *testing.T) {
	raw := messagesJSON(t, []map[string]any{
		{"role": "user", "content": "  What projects have you built?  "},
		{"role": "assistant", "content": "Several."},
	})

	result := Messages(raw)
	require.True(t, result.OK)
	require.Len(t, result.Messages, 2)
	assert.Equal(t, "user", result.Messages[0].Role)
	assert.Equal(t, "What projects have you built?", result.Messages[0].Content)
}

func TestMessagesErrors(t *testing.T) {
	tests := []struct {
		name   string
		raw    json.RawMessage
		reason string
	}{
		{
			name:   "not an array",
			raw:    json.RawMessage(`{"role":"user"}`),
			reason: "Messages must be an array",
		},
		{
			name:   "missing",
			raw:    nil,
			reason: "Messages must be an array",
		},
		{
			name:   "empty array",
			raw:    json.RawMessage(`[]`),
			reason: "Messages array cannot be empty",
		},
		{
			name:   "element not an object",
			raw:    json.RawMessage(`["hello"]`),
			reason: "Message at index 0 is invalid",
		},
		{
			name:   "bad role",
			raw:    json.RawMessage(`[{"role":"admin","content":"hi"}]`),
			reason: "Invalid role at index 0",
		},
		{
			name:   "missing role",
			raw:    json.RawMessage(`[{"content":"hi"}]`),
			reason: "Invalid role at index 0",
		},
		{
			name:   "non-string content",
			raw:    json.RawMessage(`[{"role":"user","content":5}]`),
			reason: "Content at index 0 must be a string",
		},
		{
			name:   "empty content",
			raw:    json.RawMessage(`[{"role":"user","content":""}]`),
			reason: "Content at index 0 cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Messages(tt.raw)
			assert.False(t, result.OK)
			assert.Equal(t, tt.reason, result.Reason)
		})
	}
}

func TestMessagesTooMany(t *testing.T) {
	list := make([]map[string]any, MaxChatMessages+1)
	for i := range list {
		list[i] = map[string]any{"role": "user", "content": "hi"}
	}
	result := Messages(messagesJSON(t, list))
	assert.False(t, result.OK)
	assert.Equal(t, "Maximum 20 messages allowed", result.Reason)
}

func TestMessagesContentTooLong(t *testing.T) {
	raw := messagesJSON(t, []map[string]any{
		{"role": "user", "content": strings.Repeat("a", MaxMessageLength+1)},
	})
	result := Messages(raw)
	assert.False(t, result.OK)
	assert.Equal(t, "Content at index 0 exceeds 2000 characters", result.Reason)
}

func TestMessagesShortCircuitsOnFirstInvalid(t *testing.T) {
	raw := messagesJSON(t, []map[string]any{
		{"role": "user", "content": "fine"},
		{"role": "bot", "content": "bad role"},
		{"role": "user", "content": ""},
	})
	result := Messages(raw)
	assert.False(t, result.OK)
	assert.Equal(t, "Invalid role at index 1", result.Reason)
}
