package core

import "testing"

func TestToolContext_Identity(t *testing.T) {
	rc, _ := newRunContextForTest()
	tc := NewToolContext(rc, "fc-1")

	if tc.SessionID() != "sess-x" || tc.RunID() != "run-x" {
		t.Fatalf("identity mismatch: %s %s", tc.SessionID(), tc.RunID())
	}
	if tc.FunctionCallID() != "fc-1" {
		t.Fatalf("function call id mismatch: %s", tc.FunctionCallID())
	}
	if tc.AgentName() != "Agent1" || tc.AgentType() != "test" {
		t.Fatalf("agent info mismatch: %s %s", tc.AgentName(), tc.AgentType())
	}
}

func TestToolContext_SetStateAccumulatesActions(t *testing.T) {
	rc, _ := newRunContextForTest()
	tc := NewToolContext(rc, "fc-2")

	tc.SetState("found", true)

	if v, ok := rc.GetState("found"); !ok || v != true {
		t.Fatalf("state not visible on run context: %v %v", v, ok)
	}
	if tc.Actions().StateDelta["found"] != true {
		t.Fatalf("state delta not accumulated: %+v", tc.Actions())
	}
}

func TestToolContext_TransferAndEscalate(t *testing.T) {
	rc, _ := newRunContextForTest()
	tc := NewToolContext(rc, "fc-3")

	tc.TransferToAgent("search_agent")
	if tc.Actions().TransferToAgent == nil || *tc.Actions().TransferToAgent != "search_agent" {
		t.Fatalf("transfer not recorded: %+v", tc.Actions())
	}

	tc.Escalate()
	if tc.Actions().Escalate == nil || !*tc.Actions().Escalate {
		t.Fatalf("escalate not recorded: %+v", tc.Actions())
	}
}

func TestToolContext_MemoryAccess(t *testing.T) {
	rc, _ := newRunContextForTest()
	tc := NewToolContext(rc, "fc-4")

	res, err := tc.SearchMemory("query", 1)
	if err != nil || len(res) != 1 {
		t.Fatalf("SearchMemory via tool context: %v %v", res, err)
	}
}
