package session

import (
	"context"
	"sort"
	"sync"

	"kchol-assistant/internal/assistant/errs"
	"kchol-assistant/internal/entity"
	"kchol-assistant/pkg/utils"

	"github.com/google/uuid"
)

// memoryStore keeps sessions in process memory. State is lost on restart.
// Echo serves requests concurrently, so access is mutex guarded.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*entity.ChatSession
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[string]*entity.ChatSession),
	}
}

func (s *memoryStore) Create(ctx context.Context, title string) (*entity.ChatSession, error) {
	sess := &entity.ChatSession{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: utils.TimeNowIstanbul(),
		Messages:  []entity.ChatMessage{},
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return copySession(sess), nil
}

func (s *memoryStore) Get(ctx context.Context, id string) (*entity.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, errs.ErrSessionNotFound
	}
	return copySession(sess), nil
}

func (s *memoryStore) Append(ctx context.Context, id string, msg entity.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return errs.ErrSessionNotFound
	}
	msg.ID = len(sess.Messages) + 1
	sess.Messages = append(sess.Messages, msg)
	return nil
}

func (s *memoryStore) List(ctx context.Context) ([]entity.SessionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]entity.SessionSummary, 0, len(s.sessions))
	for _, sess := range s.sessions {
		summaries = append(summaries, entity.SessionSummary{
			ID:           sess.ID,
			Title:        sess.Title,
			CreatedAt:    sess.CreatedAt,
			MessageCount: len(sess.Messages),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
	})
	return summaries, nil
}

func copySession(sess *entity.ChatSession) *entity.ChatSession {
	out := *sess
	out.Messages = make([]entity.ChatMessage, len(sess.Messages))
	copy(out.Messages, sess.Messages)
	return &out
}
