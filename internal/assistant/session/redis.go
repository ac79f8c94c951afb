package session

import (
	"context"
	"encoding/json"
	"fmt"

	"kchol-assistant/internal/assistant/errs"
	"kchol-assistant/internal/entity"
	"kchol-assistant/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "assistant:session:"
	sessionIndexKey  = "assistant:sessions"
)

// redisStore keeps sessions in Redis so multiple workers share one view.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Create(ctx context.Context, title string) (*entity.ChatSession, error) {
	sess := &entity.ChatSession{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: utils.TimeNowIstanbul(),
		Messages:  []entity.ChatMessage{},
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	if err := s.client.SAdd(ctx, sessionIndexKey, sess.ID).Err(); err != nil {
		return nil, fmt.Errorf("failed to index session: %w", err)
	}
	return sess, nil
}

func (s *redisStore) Get(ctx context.Context, id string) (*entity.ChatSession, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, errs.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess entity.ChatSession
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

func (s *redisStore) Append(ctx context.Context, id string, msg entity.ChatMessage) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	msg.ID = len(sess.Messages) + 1
	sess.Messages = append(sess.Messages, msg)
	return s.save(ctx, sess)
}

func (s *redisStore) List(ctx context.Context) ([]entity.SessionSummary, error) {
	ids, err := s.client.SMembers(ctx, sessionIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	summaries := make([]entity.SessionSummary, 0, len(ids))
	for _, id := range ids {
		sess, err := s.Get(ctx, id)
		if err != nil {
			continue
		}
		summaries = append(summaries, entity.SessionSummary{
			ID:           sess.ID,
			Title:        sess.Title,
			CreatedAt:    sess.CreatedAt,
			MessageCount: len(sess.Messages),
		})
	}
	return summaries, nil
}

func (s *redisStore) save(ctx context.Context, sess *entity.ChatSession) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+sess.ID, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}
