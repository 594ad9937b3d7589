package pkg

import "time"

// Profile holds the optional demographic and medical context a user supplies
// in the settings panel. All fields may be absent.
type Profile struct {
	Age               *int     `json:"age,omitempty"`
	Gender            *string  `json:"gender,omitempty"`
	MedicalConditions []string `json:"medical_conditions,omitempty"`
	Allergies         []string `json:"allergies,omitempty"`
}

// Session represents one conversation with the assistant. It is keyed by a
// UUID and carries the user's profile.
type Session struct {
	ID         string     `json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
	MessageCap int        `json:"message_cap"`
	Profile    Profile    `json:"profile"`
}

// MessageRole describes who authored a message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is a chat message in a session. Urgency records the triage tier
// assigned to user messages; assistant messages carry an empty tier.
type Message struct {
	ID        int64       `json:"id"`
	SessionID string      `json:"session_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Urgency   string      `json:"urgency,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// ChatRequest is a user message posted to a session. Model optionally selects
// one of the allowed completion models by display name.
type ChatRequest struct {
	Content string `json:"content"`
	Model   string `json:"model,omitempty"`
}

// ChatResponse carries the assistant's reply plus the triage assessment of
// the user message. Emergency is true when the message tripped the emergency
// gate and the reply is the emergency template rather than a model response.
// Capped is true when the session has reached its message limit.
type ChatResponse struct {
	Reply     string `json:"reply"`
	Urgency   string `json:"urgency"`
	Rationale string `json:"rationale"`
	Emergency bool   `json:"emergency"`
	Capped    bool   `json:"capped"`
}
