package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/legalchat/legalchat/internal/config"
)

// RedisStore persists conversations in Redis.
// Data model:
//   - "chat_history:"+id => list of JSON messages, TTL refreshed on append
//   - "session:"+id      => hash {title, created_at} with its own TTL
type RedisStore struct {
	client     *redis.Client
	historyTTL time.Duration
	sessionTTL time.Duration
}

// NewRedisStore wraps an existing Redis client as a Store.
func NewRedisStore(client *redis.Client, cfg config.SessionConfig) *RedisStore {
	return &RedisStore{
		client:     client,
		historyTTL: secondsOr(cfg.HistoryTTLSeconds, time.Hour),
		sessionTTL: secondsOr(cfg.SessionTTLSeconds, 30*time.Minute),
	}
}

func historyKey(sessionID string) string { return "chat_history:" + sessionID }
func sessionKey(sessionID string) string { return "session:" + sessionID }

func (s *RedisStore) AppendMessage(ctx context.Context, sessionID string, msg ChatMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	key := historyKey(sessionID)
	if err := s.client.RPush(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	if err := s.client.Expire(ctx, key, s.historyTTL).Err(); err != nil {
		return fmt.Errorf("refresh history ttl: %w", err)
	}
	return nil
}

func (s *RedisStore) History(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	raw, err := s.client.LRange(ctx, historyKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	messages := make([]ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("decode history entry: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (s *RedisStore) DeleteHistory(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, historyKey(sessionID)).Err()
}

func (s *RedisStore) CreateSession(ctx context.Context, info Info) error {
	if info.CreatedAt == "" {
		info.CreatedAt = time.Now().Format(time.RFC3339)
	}
	key := sessionKey(info.ID)
	fields := map[string]interface{}{
		"title":      info.Title,
		"created_at": info.CreatedAt,
	}
	if err := s.client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if err := s.client.Expire(ctx, key, s.sessionTTL).Err(); err != nil {
		return fmt.Errorf("set session ttl: %w", err)
	}
	return nil
}

func (s *RedisStore) GetSession(ctx context.Context, sessionID string) (*Info, error) {
	fields, err := s.client.HGetAll(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return &Info{
		ID:        sessionID,
		Title:     fields["title"],
		CreatedAt: fields["created_at"],
	}, nil
}

// ListSessions scans session hashes and returns them newest first.
func (s *RedisStore) ListSessions(ctx context.Context) ([]Info, error) {
	var infos []Info
	iter := s.client.Scan(ctx, 0, "session:*", 100).Iterator()
	for iter.Next(ctx) {
		sessionID := strings.TrimPrefix(iter.Val(), "session:")
		info, err := s.GetSession(ctx, sessionID)
		if err != nil || info == nil {
			continue
		}
		infos = append(infos, *info)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan sessions: %w", err)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].CreatedAt > infos[j].CreatedAt })
	return infos, nil
}

func (s *RedisStore) DeleteSession(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}

func secondsOr(seconds int, def time.Duration) time.Duration {
	if seconds <= 0 {
		return def
	}
	return time.Duration(seconds) * time.Second
}

var _ Store = (*RedisStore)(nil)
