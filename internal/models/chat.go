package models

// Conversation turn roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single turn in a conversation
type ChatMessage struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// ChatRequest is the request body for sending a chat message
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply returned to the frontend
type ChatResponse struct {
	Reply string `json:"reply"`
}
