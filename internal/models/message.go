package models

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ChatMessage is one turn of the chatbot conversation as sent over the wire.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ValidRole reports whether role is one of the accepted chat roles.
func ValidRole(role string) bool {
	switch Role(role) {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}
