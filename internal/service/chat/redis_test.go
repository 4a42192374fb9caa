package chat

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/issac8080/aurashop/internal/model/chat"
)

func setupRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, ttl), srv
}

func TestRedisStoreAppendAndHistory(t *testing.T) {
	store, _ := setupRedisStore(t, 0)
	ctx := context.Background()

	turns := []chat.Turn{
		{Role: chat.RoleUser, Content: "hi"},
		{Role: chat.RoleAssistant, Content: "hello", ProductIDs: []string{"P001"}},
	}
	for _, turn := range turns {
		if err := store.Append(ctx, "s1", turn); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.History(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d turns, want 2", len(got))
	}
	if got[0].ID == "" || got[0].SessionID != "s1" || got[0].CreatedAt.IsZero() {
		t.Fatalf("turn not stamped: %+v", got[0])
	}
	if got[1].Content != "hello" || len(got[1].ProductIDs) != 1 {
		t.Fatalf("assistant turn = %+v", got[1])
	}
}

func TestRedisStoreHistoryWindow(t *testing.T) {
	store, _ := setupRedisStore(t, 0)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Append(ctx, "s1", chat.Turn{Role: chat.RoleUser, Content: "m"}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.History(ctx, "s1", 2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d turns, want 2", len(got))
	}
}

func TestRedisStoreUnknownSession(t *testing.T) {
	store, _ := setupRedisStore(t, 0)
	got, err := store.History(context.Background(), "missing", 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d turns for unknown session", len(got))
	}
}

func TestRedisStoreRejectsEmptySession(t *testing.T) {
	store, _ := setupRedisStore(t, 0)
	if err := store.Append(context.Background(), "", chat.Turn{Role: chat.RoleUser, Content: "hi"}); err == nil {
		t.Fatal("expected error for empty session id")
	}
}

func TestRedisStoreTranscriptExpires(t *testing.T) {
	store, srv := setupRedisStore(t, time.Minute)
	ctx := context.Background()

	if err := store.Append(ctx, "s1", chat.Turn{Role: chat.RoleUser, Content: "hi"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	srv.FastForward(2 * time.Minute)

	got, err := store.History(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("transcript survived its ttl: %d turns", len(got))
	}
}

func TestRedisStoreSkipsUnparsableEntries(t *testing.T) {
	store, srv := setupRedisStore(t, 0)
	ctx := context.Background()

	if err := store.Append(ctx, "s1", chat.Turn{Role: chat.RoleUser, Content: "hi"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := srv.Push(transcriptKey("s1"), "{not json"); err != nil {
		t.Fatalf("Push: %v", err)
	}

	got, err := store.History(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 1 || got[0].Content != "hi" {
		t.Fatalf("history = %+v", got)
	}
}
