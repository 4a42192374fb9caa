// Package chat persists gateway-side transcripts per session.
package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/issac8080/aurashop/internal/model/chat"
)

var ErrSessionNotFound = errors.New("session not found")

// Store persists transcript turns. Sessions are created implicitly on first
// write: the session id is an opaque client-generated token.
type Store interface {
	Append(ctx context.Context, sessionID string, turn chat.Turn) error
	History(ctx context.Context, sessionID string, limit int) ([]chat.Turn, error)
}

// MemoryStore keeps transcripts in process memory, suitable for a single
// gateway instance.
type MemoryStore struct {
	mu    sync.RWMutex
	turns map[string][]chat.Turn
}

// NewMemoryStore bootstraps the in-memory transcript store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{turns: make(map[string][]chat.Turn)}
}

// Append adds a turn to the session transcript.
func (s *MemoryStore) Append(_ context.Context, sessionID string, turn chat.Turn) error {
	if sessionID == "" {
		return ErrSessionNotFound
	}
	turn.ID = uuid.NewString()
	turn.SessionID = sessionID
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	s.turns[sessionID] = append(s.turns[sessionID], turn)
	s.mu.Unlock()
	return nil
}

// History returns the most recent limit turns in chronological order. A
// non-positive limit returns everything.
func (s *MemoryStore) History(_ context.Context, sessionID string, limit int) ([]chat.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns, ok := s.turns[sessionID]
	if !ok {
		return nil, nil
	}
	start := 0
	if limit > 0 && len(turns) > limit {
		start = len(turns) - limit
	}
	copied := make([]chat.Turn, len(turns)-start)
	copy(copied, turns[start:])
	return copied, nil
}
