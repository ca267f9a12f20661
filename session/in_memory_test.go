package session

import (
	"testing"

	"github.com/lumostack/agentkit/core"
	"github.com/lumostack/agentkit/internal/testutil"
)

// Interface compliance (compile-time assertion)
var _ core.SessionStore = (*InMemoryStore)(nil)

func TestInMemoryStore_LazyCreate(t *testing.T) {
	store := NewInMemoryStore()

	sess, err := store.Get("s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.ID != "s1" {
		t.Fatalf("expected session id s1, got %q", sess.ID)
	}
}

func TestInMemoryStore_AppendEvent(t *testing.T) {
	store := NewInMemoryStore()
	if _, err := store.Create("s1"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	ev := core.NewUserMessageEvent("run-1", "hello")
	if err := store.AppendEvent("s1", ev); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	sess, _ := store.Get("s1")
	events := sess.GetEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ID != ev.ID {
		t.Fatalf("expected event %q, got %q", ev.ID, events[0].ID)
	}
}

func TestInMemoryStore_ApplyDelta(t *testing.T) {
	store := NewInMemoryStore()
	if err := store.ApplyDelta("s1", map[string]any{"answer": "42"}); err != nil {
		t.Fatalf("apply delta failed: %v", err)
	}

	sess, _ := store.Get("s1")
	v, ok := sess.GetState("answer")
	if !ok || v != "42" {
		t.Fatalf("expected state answer=42, got %v (found=%v)", v, ok)
	}
}

func TestInMemoryStore_ConversationHistoryFiltersPartials(t *testing.T) {
	store := NewInMemoryStore()
	if _, err := store.Create("s1"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	events := []core.Event{
		testutil.NewEventBuilder().Run("r1").Author("user").UserText("hi").Build(),
		testutil.NewEventBuilder().Run("r1").AssistantText("h").Partial(true).Build(),
		testutil.NewEventBuilder().Run("r1").AssistantText("hello").Build(),
	}
	for _, ev := range events {
		if err := store.AppendEvent("s1", ev); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	sess, _ := store.Get("s1")
	history := sess.GetConversationHistory()
	if len(history) != 2 {
		t.Fatalf("expected 2 history turns, got %d", len(history))
	}
	if history[1].Content.Text() != "hello" {
		t.Fatalf("unexpected history tail %q", history[1].Content.Text())
	}
}

func TestInMemoryStore_CloneIsolation(t *testing.T) {
	store := NewInMemoryStore()
	sess, _ := store.Create("s1")
	sess.SetState("k", "mutated")

	fresh, _ := store.Get("s1")
	if _, ok := fresh.GetState("k"); ok {
		t.Fatal("mutation of returned clone leaked into the store")
	}
}
