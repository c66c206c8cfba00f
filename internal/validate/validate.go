// Package validate checks inbound JSON payloads against declarative field
// specifications. A payload is either accepted whole, with every string
// normalized, or rejected with a single field-level error.
package validate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Selvan2806/tamilselvan-portfolio/internal/models"
)

// emailRegex validates email addresses per RFC 5322 (simplified).
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Field describes one string field of a JSON object payload.
type Field struct {
	Name      string
	Label     string // capitalized name used in error messages
	MaxLen    int
	Format    *regexp.Regexp // optional, checked against the trimmed value
	FormatMsg string         // error message when Format fails
	Lowercase bool           // normalize to lower case (emails)
}

// Result is the outcome of validating a payload. Either OK is true and
// Values holds the normalized fields, or Field/Reason name the first
// failing field. There is no partial acceptance.
type Result struct {
	OK     bool
	Field  string
	Reason string
	Values map[string]string
}

func invalid(field, reason string) Result {
	return Result{Field: field, Reason: reason}
}

// Email is the shared format constraint for email fields.
func Email() *regexp.Regexp { return emailRegex }

// Object validates a JSON-decoded object against a field spec table.
// All fields are required strings. Length limits apply to the raw value,
// required-ness and format to the trimmed value, matching the behavior
// the site's form has always had.
func Object(data map[string]any, fields []Field) Result {
	if data == nil {
		return invalid("", "Invalid request body")
	}

	values := make(map[string]string, len(fields))
	for _, f := range fields {
		raw, _ := data[f.Name].(string)
		if strings.TrimSpace(raw) == "" {
			return invalid(f.Name, f.Label+" is required")
		}
		if len(raw) > f.MaxLen {
			return invalid(f.Name, fmt.Sprintf("%s must be less than %d characters", f.Label, f.MaxLen))
		}
		value := strings.TrimSpace(raw)
		if f.Format != nil && !f.Format.MatchString(value) {
			return invalid(f.Name, f.FormatMsg)
		}
		if f.Lowercase {
			value = strings.ToLower(value)
		}
		values[f.Name] = value
	}

	return Result{OK: true, Values: values}
}

// Limits for the chat message list.
const (
	MaxChatMessages  = 20
	MaxMessageLength = 2000
)

// MessagesResult is the outcome of validating a chat message list.
type MessagesResult struct {
	OK       bool
	Reason   string
	Messages []models.ChatMessage
}

// Messages validates the raw `messages` value of a chat request. It rejects
// anything that is not a non-empty list of at most MaxChatMessages entries,
// short-circuiting on the first invalid element and reporting its index.
func Messages(raw json.RawMessage) MessagesResult {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return MessagesResult{Reason: "Messages must be an array"}
	}
	if len(list) == 0 {
		return MessagesResult{Reason: "Messages array cannot be empty"}
	}
	if len(list) > MaxChatMessages {
		return MessagesResult{Reason: fmt.Sprintf("Maximum %d messages allowed", MaxChatMessages)}
	}

	validated := make([]models.ChatMessage, 0, len(list))
	for i, elem := range list {
		var msg map[string]any
		if err := json.Unmarshal(elem, &msg); err != nil || msg == nil {
			return MessagesResult{Reason: fmt.Sprintf("Message at index %d is invalid", i)}
		}

		role, ok := msg["role"].(string)
		if !ok || !models.ValidRole(role) {
			return MessagesResult{Reason: fmt.Sprintf("Invalid role at index %d", i)}
		}

		content, ok := msg["content"].(string)
		if !ok {
			return MessagesResult{Reason: fmt.Sprintf("Content at index %d must be a string", i)}
		}
		if len(content) == 0 {
			return MessagesResult{Reason: fmt.Sprintf("Content at index %d cannot be empty", i)}
		}
		if len(content) > MaxMessageLength {
			return MessagesResult{Reason: fmt.Sprintf("Content at index %d exceeds %d characters", i, MaxMessageLength)}
		}

		validated = append(validated, models.ChatMessage{Role: role, Content: strings.TrimSpace(content)})
	}

	return MessagesResult{OK: true, Messages: validated}
}
