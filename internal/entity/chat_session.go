package entity

import "time"

// Sender values for chat messages.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ChatMessage is a single entry in a conversation log.
type ChatMessage struct {
	ID        int         `json:"id"`
	Sender    string      `json:"sender"`
	Text      string      `json:"text"`
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ChatSession is one conversation's ordered, append-only message log.
// Sessions live for the process lifetime unless a persistent store backs them.
type ChatSession struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	CreatedAt time.Time     `json:"created_at"`
	Messages  []ChatMessage `json:"messages"`
}

// SessionSummary is the list view of a session.
type SessionSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	MessageCount int       `json:"message_count"`
}
