package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumostack/agentkit/core"
	"github.com/lumostack/agentkit/flow"
	"github.com/lumostack/agentkit/model"
	"github.com/lumostack/agentkit/tool"
)

// Interface compliance (compile-time assertions)
var (
	_ core.Agent     = (*ModelAgent)(nil)
	_ flow.FlowAgent = (*ModelAgent)(nil)
	_ core.Agent     = (*ChainAgent)(nil)
	_ core.Agent     = (*ReActAgent)(nil)
)

func TestNewModelAgent_Defaults(t *testing.T) {
	a := NewModelAgent("assistant", model.NewMockModel("mock", "mock"))

	assert.True(t, a.StreamingEnabled())
	assert.True(t, a.FunctionCallingEnabled())
	assert.True(t, a.TransferEnabled())
	assert.Equal(t, 20, a.MaxHistoryMessages())
	assert.Equal(t, 0, a.RetrievalTopK())
	assert.True(t, a.Sampling().IsGreedy())
	assert.True(t, a.HasTool("transfer_to_agent"), "transfer tool registered when transfers allowed")
}

func TestNewModelAgent_Options(t *testing.T) {
	a := NewModelAgent("researcher", model.NewMockModel("mock", "mock"), func(o *ModelAgentOptions) {
		o.Instruction = NewInstructionFromText("You research things.")
		o.EnableStreaming = false
		o.AllowTransfer = false
		o.OutputKey = "research_result"
		o.RetrievalTopK = 5
		o.Sampling = model.SamplingConfig{Temperature: 0.7, TopP: 0.9, MaxTokens: 256}
	})

	assert.False(t, a.StreamingEnabled())
	assert.False(t, a.TransferEnabled())
	assert.Equal(t, "research_result", a.OutputKey())
	assert.Equal(t, 5, a.RetrievalTopK())
	assert.Equal(t, model.StrategyTopP, a.Sampling().Strategy().Type)
	assert.False(t, a.HasTool("transfer_to_agent"))

	text, err := a.ResolveInstructions(nil)
	require.NoError(t, err)
	assert.Equal(t, "You research things.", text)
}

func TestModelAgent_ExecuteTool(t *testing.T) {
	a := NewModelAgent("assistant", model.NewMockModel("mock", "mock"), func(o *ModelAgentOptions) {
		o.Tools = []tool.Tool{
			tool.NewGetLocationToolWithResolver(func(tc *core.ToolContext) (string, string, string, error) {
				return "Raleigh", "North Carolina", "United States", nil
			}),
		}
	})

	rc := newTestRunContext(t, make(chan core.Event, 4))
	toolCtx := core.NewToolContext(rc, "fc-1")

	result, err := a.ExecuteTool(toolCtx, "get_location", "")
	require.NoError(t, err)
	assert.Equal(t, "Your current location is: Raleigh, North Carolina, United States", result)
}

func TestModelAgent_ExecuteTool_Unknown(t *testing.T) {
	a := NewModelAgent("assistant", model.NewMockModel("mock", "mock"))

	rc := newTestRunContext(t, make(chan core.Event, 4))
	toolCtx := core.NewToolContext(rc, "fc-1")

	_, err := a.ExecuteTool(toolCtx, "nope", "{}")
	require.Error(t, err)
	assert.True(t, tool.IsUnknownTool(err))
}

func TestModelAgent_Delegates(t *testing.T) {
	manager := NewModelAgent("manager", model.NewMockModel("mock", "mock"))
	search := NewModelAgent("search-agent", model.NewMockModel("mock", "mock"))
	require.NoError(t, manager.SetSubAgents(search))

	delegates := manager.Delegates()
	require.Len(t, delegates, 1)
	assert.Equal(t, "search-agent", delegates[0].Name())
}
