// Package domain defines the core domain models for chatgate.
package domain

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Session represents a bounded conversation between one client and the
// assistant. Timestamps are wall-clock seconds since epoch.
type Session struct {
	SessionID    string  `json:"session_id"`
	IP           string  `json:"ip"`
	CreatedAt    float64 `json:"created_at"`
	LastActive   float64 `json:"last_active"`
	MessageCount int     `json:"message_count"`
}

// Message represents a single message in a session. Messages are
// immutable once created; conversation order is timestamp ascending.
type Message struct {
	ID        int64   `json:"id"`
	SessionID string  `json:"session_id"`
	Role      string  `json:"role"` // system, user, assistant
	Content   string  `json:"content"`
	Timestamp float64 `json:"timestamp"`
}

// User represents an admin panel account.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
}

// Blog represents a blog post managed through the admin panel.
type Blog struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	AuthorID  int64   `json:"author_id"`
	CreatedAt float64 `json:"created_at"`
	UpdatedAt float64 `json:"updated_at"`
}

// SessionSummary is a session row joined with its message count, used
// by the admin chat history listing.
type SessionSummary struct {
	SessionID    string  `json:"session_id"`
	IP           string  `json:"ip"`
	CreatedAt    float64 `json:"created_at"`
	MessageCount int     `json:"message_count"`
}

// CreateSessionResponse is the response for POST /api/create_session.
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

// ChatRequest is the request body for POST /api/chat.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatResponse is the response for POST /api/chat.
type ChatResponse struct {
	Response string `json:"response"`
}
