// Package session holds conversation logs behind a store abstraction so the
// HTTP layer never touches shared state directly.
package session

import (
	"context"

	"kchol-assistant/internal/entity"
)

// Store manages chat sessions. Message logs are append-only.
type Store interface {
	Create(ctx context.Context, title string) (*entity.ChatSession, error)
	Get(ctx context.Context, id string) (*entity.ChatSession, error)
	Append(ctx context.Context, id string, msg entity.ChatMessage) error
	List(ctx context.Context) ([]entity.SessionSummary, error)
}
