package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/issac8080/aurashop/internal/model/chat"
)

// RedisStore persists transcripts in Redis lists, one list per session, with
// a TTL refreshed on every write. Suitable when the gateway runs more than
// one replica.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an already-connected client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func transcriptKey(sessionID string) string {
	return "aurashop:transcript:" + sessionID
}

// Append pushes a turn onto the session list and refreshes the TTL.
func (s *RedisStore) Append(ctx context.Context, sessionID string, turn chat.Turn) error {
	if sessionID == "" {
		return ErrSessionNotFound
	}
	turn.ID = uuid.NewString()
	turn.SessionID = sessionID
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("marshal turn: %w", err)
	}

	key := transcriptKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append turn: %w", err)
	}
	return nil
}

// History returns the most recent limit turns in chronological order.
func (s *RedisStore) History(ctx context.Context, sessionID string, limit int) ([]chat.Turn, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}
	raw, err := s.client.LRange(ctx, transcriptKey(sessionID), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}

	turns := make([]chat.Turn, 0, len(raw))
	for _, item := range raw {
		var turn chat.Turn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			// Skip entries written by an incompatible version.
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}
