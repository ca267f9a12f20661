package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumostack/agentkit/core"
	"github.com/lumostack/agentkit/logging"
)

// scriptedAgent is a minimal core.Agent whose Run emits a fixed final answer.
type scriptedAgent struct {
	BaseAgent
	answer   string
	runs     int
	escalate bool
}

func newScriptedAgent(name, answer string) *scriptedAgent {
	return &scriptedAgent{BaseAgent: NewBaseAgent(name), answer: answer}
}

func (a *scriptedAgent) Run(runCtx *core.RunContext) error {
	a.runs++
	ev := core.NewMessageEvent(a.Name(), a.answer)
	ev.RunID = runCtx.RunID
	complete := true
	ev.TurnComplete = &complete
	if a.escalate {
		t := true
		ev.Actions.Escalate = &t
	}
	return runCtx.EmitEvent(ev)
}

func newTestRunContext(t *testing.T, emit chan core.Event) *core.RunContext {
	t.Helper()
	return core.NewRunContext(
		context.Background(),
		"sess-1", "run-1",
		core.AgentInfo{Name: "root", Type: "test"},
		core.NewUserContent("hello"),
		25,
		emit, nil,
		core.NewSession("sess-1"), nil, nil,
		logging.NoOpLogger{},
	)
}

func TestBaseAgent_Hierarchy(t *testing.T) {
	parent := newScriptedAgent("parent", "")
	childA := newScriptedAgent("child-a", "")
	childB := newScriptedAgent("child-b", "")
	grandchild := newScriptedAgent("grandchild", "")

	require.NoError(t, childB.SetSubAgents(grandchild))
	require.NoError(t, parent.SetSubAgents(childA, childB))

	assert.Len(t, parent.SubAgents(), 2)
	assert.Equal(t, "parent", childA.Parent().Name())

	found := parent.FindAgent("grandchild")
	require.NotNil(t, found)
	assert.Equal(t, "grandchild", found.Name())

	assert.Nil(t, parent.FindAgent("missing"))
}

func TestBaseAgent_StartStop(t *testing.T) {
	a := newScriptedAgent("lifecycle", "")
	rc := newTestRunContext(t, make(chan core.Event, 4))

	require.NoError(t, a.Start(rc))
	assert.Error(t, a.Start(rc), "double start must fail")
	require.NoError(t, a.Stop(rc))
	assert.Error(t, a.Stop(rc), "double stop must fail")
}

func TestBaseAgent_Description(t *testing.T) {
	a := newScriptedAgent("describer", "")
	assert.Equal(t, "Agent describer", a.Description())
	a.SetDescription("Finds answers on the web")
	assert.Equal(t, "Finds answers on the web", a.Description())
}

func TestBuildBranchPath(t *testing.T) {
	assert.Equal(t, "child", buildBranchPath("", "child"))
	assert.Equal(t, "parent.child", buildBranchPath("parent", "child"))
	assert.Equal(t, "parent", buildBranchPath("parent", ""))
}
