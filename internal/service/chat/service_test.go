package chat

import (
	"context"
	"testing"

	"github.com/issac8080/aurashop/internal/model/chat"
	"github.com/issac8080/aurashop/pkg/assistantwire"
)

func TestMemoryStoreAppendAndHistory(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	turns := []chat.Turn{
		{Role: chat.RoleUser, Content: "hi"},
		{Role: chat.RoleAssistant, Content: "hello", ProductIDs: []string{"P001"},
			Actions: []assistantwire.Action{{Type: assistantwire.ActionNavigate, Label: "Go", Payload: "/p"}}},
		{Role: chat.RoleUser, Content: "show shoes"},
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
	if len(got) != 3 {
		t.Fatalf("got %d turns, want 3", len(got))
	}
	if got[0].ID == "" || got[0].SessionID != "s1" || got[0].CreatedAt.IsZero() {
		t.Fatalf("turn not stamped: %+v", got[0])
	}
	if got[1].Content != "hello" || len(got[1].ProductIDs) != 1 || len(got[1].Actions) != 1 {
		t.Fatalf("assistant turn = %+v", got[1])
	}
}

func TestMemoryStoreHistoryWindow(t *testing.T) {
	store := NewMemoryStore()
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

func TestMemoryStoreUnknownSession(t *testing.T) {
	store := NewMemoryStore()
	got, err := store.History(context.Background(), "missing", 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d turns for unknown session", len(got))
	}
}

func TestMemoryStoreRejectsEmptySession(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Append(context.Background(), "", chat.Turn{Role: chat.RoleUser, Content: "hi"}); err == nil {
		t.Fatal("expected error for empty session id")
	}
}

func TestMemoryStoreSessionsIsolated(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Append(ctx, "s1", chat.Turn{Role: chat.RoleUser, Content: "a"})
	_ = store.Append(ctx, "s2", chat.Turn{Role: chat.RoleUser, Content: "b"})

	got, _ := store.History(ctx, "s1", 0)
	if len(got) != 1 || got[0].Content != "a" {
		t.Fatalf("s1 history = %+v", got)
	}
}
