package agentkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumostack/agentkit/agent"
	"github.com/lumostack/agentkit/core"
	"github.com/lumostack/agentkit/model"
)

func TestInvokeSync(t *testing.T) {
	mockModel := model.NewMockModel("mock", "mock")
	mockModel.AddResponse("hello", "Hi there!")

	assistant := agent.NewModelAgent("assistant", mockModel, func(o *agent.ModelAgentOptions) {
		o.EnableStreaming = false
		o.AllowTransfer = false
	})

	kit := New(assistant)

	runID, events, err := kit.InvokeSync(context.Background(), "sess-1", core.NewUserContent("hello"))
	require.NoError(t, err)
	assert.NotEmpty(t, runID)
	require.NotEmpty(t, events)

	final := events[len(events)-1]
	assert.True(t, final.IsFinalResponse())
	assert.Equal(t, "Hi there!", final.Content.Text())
}

func TestInvokeSync_SessionStateAcrossTurns(t *testing.T) {
	mockModel := model.NewMockModel("mock", "mock")
	mockModel.AddResponse("first", "one")
	mockModel.AddResponse("second", "two")

	assistant := agent.NewModelAgent("assistant", mockModel, func(o *agent.ModelAgentOptions) {
		o.EnableStreaming = false
		o.AllowTransfer = false
	})

	kit := New(assistant)

	_, _, err := kit.InvokeSync(context.Background(), "sess-1", core.NewUserContent("first"))
	require.NoError(t, err)
	_, _, err = kit.InvokeSync(context.Background(), "sess-1", core.NewUserContent("second"))
	require.NoError(t, err)

	sess, err := kit.SessionStore().Get("sess-1")
	require.NoError(t, err)
	history := sess.GetConversationHistory()
	require.Len(t, history, 4)
	assert.Equal(t, "one", history[1].Content.Text())
	assert.Equal(t, "two", history[3].Content.Text())
}

func TestInvoke_Async(t *testing.T) {
	mockModel := model.NewMockModel("mock", "mock")
	mockModel.AddResponse("hi", "ok")

	assistant := agent.NewModelAgent("assistant", mockModel, func(o *agent.ModelAgentOptions) {
		o.AllowTransfer = false
	})

	kit := New(assistant)

	_, eventsCh, errorsCh, err := kit.Invoke(context.Background(), "sess-1", core.NewUserContent("hi"))
	require.NoError(t, err)

	var sawPartial, sawFinal bool
	for eventsCh != nil || errorsCh != nil {
		select {
		case ev, ok := <-eventsCh:
			if !ok {
				eventsCh = nil
				continue
			}
			if ev.IsPartial() {
				sawPartial = true
			}
			if ev.IsFinalResponse() {
				sawFinal = true
			}
		case err, ok := <-errorsCh:
			if !ok {
				errorsCh = nil
				continue
			}
			require.NoError(t, err)
		}
	}
	assert.True(t, sawPartial, "streaming enabled runs emit partial fragments")
	assert.True(t, sawFinal)
}
