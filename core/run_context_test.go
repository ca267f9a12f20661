package core

import "testing"

func TestRunContext_StateDeltaStagingAndEmit(t *testing.T) {
	rc, emit := newRunContextForTest()

	rc.SetState("answer", "42")
	if v, ok := rc.GetState("answer"); !ok || v != "42" {
		t.Fatalf("staged state not visible: %v %v", v, ok)
	}

	ev := NewMessageEvent(rc.GetAgentName(), "done")
	if err := rc.EmitEvent(ev); err != nil {
		t.Fatalf("EmitEvent failed: %v", err)
	}

	got := <-emit
	if got.Actions.StateDelta["answer"] != "42" {
		t.Fatalf("state delta not merged into emitted event: %+v", got.Actions)
	}
	if len(rc.StateDelta) != 0 {
		t.Fatalf("delta buffer not cleared after emit: %+v", rc.StateDelta)
	}
}

func TestRunContext_CommitStateDelta(t *testing.T) {
	rc, _ := newRunContextForTest()
	store := rc.SessionStore.(*rcMockSessionStore)

	rc.SetState("k", "v")
	if err := rc.CommitStateDelta(); err != nil {
		t.Fatalf("CommitStateDelta failed: %v", err)
	}
	if store.applied["sess-x"]["k"] != "v" {
		t.Fatalf("delta not applied to store: %+v", store.applied)
	}
	if len(rc.StateDelta) != 0 {
		t.Fatal("delta buffer not cleared after commit")
	}
}

func TestRunContext_ChildContextIsolation(t *testing.T) {
	rc, _ := newRunContextForTest()
	rc.SetState("parent", true)

	childEmit := make(chan Event, 1)
	childResume := make(chan struct{}, 1)
	child := rc.NewChildContext(childEmit, childResume, "step-1")

	if child.Branch != "step-1" {
		t.Fatalf("branch not applied: %q", child.Branch)
	}
	if len(child.StateDelta) != 0 {
		t.Fatalf("child inherits delta buffer: %+v", child.StateDelta)
	}

	child.SetState("child", true)
	if _, ok := rc.StateDelta["child"]; ok {
		t.Fatal("child delta leaked into parent")
	}
}

func TestRunContext_MemoryHelpers(t *testing.T) {
	rc, _ := newRunContextForTest()

	res, err := rc.SearchMemory("nvidia revenue", 3)
	if err != nil || len(res) != 1 {
		t.Fatalf("SearchMemory: %v %v", res, err)
	}

	if err := rc.StoreMemory("fact", nil); err != nil {
		t.Fatalf("StoreMemory: %v", err)
	}
	mem := rc.MemoryStore.(*rcMockMemoryStore)
	if len(mem.stored) != 1 || mem.stored[0] != "fact" {
		t.Fatalf("memory not stored: %+v", mem.stored)
	}
}
