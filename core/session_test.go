package core

import "testing"

func TestSession_StateAndEvents(t *testing.T) {
	s := NewSession("sess-1")
	if s.ID != "sess-1" || s.Created.IsZero() {
		t.Fatalf("session not initialized: %+v", s)
	}

	s.SetState("k", "v")
	if v, ok := s.GetState("k"); !ok || v != "v" {
		t.Fatalf("GetState failed: %v %v", v, ok)
	}

	s.MergeState(map[string]interface{}{"a": 1, "b": 2})
	if v, _ := s.GetState("a"); v != 1 {
		t.Fatalf("MergeState failed: %v", v)
	}

	s.AddEvent(NewUserMessageEvent("run-1", "hi"))
	s.AddEvent(NewMessageEvent("agent", "hello"))
	if len(s.GetEvents()) != 2 {
		t.Fatalf("expected 2 events, got %d", len(s.GetEvents()))
	}

	// Returned slice must be a defensive copy.
	events := s.GetEvents()
	events[0].Author = "mutated"
	if s.GetEvents()[0].Author == "mutated" {
		t.Fatal("GetEvents leaked internal slice")
	}
}

func TestSession_ConversationHistoryFiltersPartials(t *testing.T) {
	s := NewSession("sess-2")
	s.AddEvent(NewUserMessageEvent("run-1", "question"))

	partial := true
	frag := NewMessageEvent("agent", "par")
	frag.Partial = &partial
	s.AddEvent(frag)

	s.AddEvent(NewMessageEvent("agent", "partial answer assembled"))

	ctl := NewEvent("run-1", "system") // no content
	s.AddEvent(ctl)

	hist := s.GetConversationHistory()
	if len(hist) != 2 {
		t.Fatalf("expected 2 history events, got %d", len(hist))
	}
	if hist[0].Content.Role != "user" || hist[1].Content.Role != "assistant" {
		t.Fatalf("unexpected history order: %+v", hist)
	}
}

func TestSession_Clone(t *testing.T) {
	s := NewSession("sess-3")
	s.SetState("x", "y")
	s.AddEvent(NewUserMessageEvent("run-1", "hi"))

	c := s.Clone()
	c.SetState("x", "z")
	c.AddEvent(NewMessageEvent("agent", "yo"))

	if v, _ := s.GetState("x"); v != "y" {
		t.Fatalf("clone mutated original state: %v", v)
	}
	if len(s.GetEvents()) != 1 {
		t.Fatalf("clone mutated original events: %d", len(s.GetEvents()))
	}
}
