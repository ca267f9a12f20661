package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumostack/agentkit/agent"
	"github.com/lumostack/agentkit/core"
	"github.com/lumostack/agentkit/model"
	"github.com/lumostack/agentkit/session"
)

// drain collects all events and the terminal error (if any) from a run.
func drain(t *testing.T, eventsCh <-chan core.Event, errorsCh <-chan error) ([]core.Event, error) {
	t.Helper()
	var events []core.Event
	for eventsCh != nil || errorsCh != nil {
		select {
		case ev, ok := <-eventsCh:
			if !ok {
				eventsCh = nil
				continue
			}
			events = append(events, ev)
		case err, ok := <-errorsCh:
			if !ok {
				errorsCh = nil
				continue
			}
			return events, err
		case <-time.After(5 * time.Second):
			t.Fatal("timed out draining run")
		}
	}
	return events, nil
}

func TestRunner_SimpleConversation(t *testing.T) {
	mockModel := model.NewMockModel("mock", "mock")
	mockModel.AddResponse("hello", "Hi there!")

	a := agent.NewModelAgent("assistant", mockModel, func(o *agent.ModelAgentOptions) {
		o.EnableStreaming = false
		o.AllowTransfer = false
	})

	store := session.NewInMemoryStore()
	r := New(a, func(o *Options) { o.SessionStore = store })

	runID, eventsCh, errorsCh, err := r.Run(context.Background(), "sess-1", core.NewUserContent("hello"))
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	events, runErr := drain(t, eventsCh, errorsCh)
	require.NoError(t, runErr)
	require.NotEmpty(t, events)

	final := events[len(events)-1]
	assert.True(t, final.IsFinalResponse())
	assert.Equal(t, "Hi there!", final.Content.Text())

	// History holds the user turn then the assistant turn
	sess, err := store.Get("sess-1")
	require.NoError(t, err)
	history := sess.GetConversationHistory()
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Content.Role)
	assert.Equal(t, "assistant", history[1].Content.Role)
}

func TestRunner_StreamingPartialsNotPersisted(t *testing.T) {
	mockModel := model.NewMockModel("mock", "mock")
	mockModel.AddResponse("hi", "ok")

	a := agent.NewModelAgent("assistant", mockModel, func(o *agent.ModelAgentOptions) {
		o.AllowTransfer = false
	})

	store := session.NewInMemoryStore()
	r := New(a, func(o *Options) { o.SessionStore = store })

	_, eventsCh, errorsCh, err := r.Run(context.Background(), "sess-1", core.NewUserContent("hi"))
	require.NoError(t, err)

	events, runErr := drain(t, eventsCh, errorsCh)
	require.NoError(t, runErr)

	var partials int
	for _, ev := range events {
		if ev.IsPartial() {
			partials++
		}
	}
	assert.Equal(t, len("ok"), partials, "partial fragments stream to the caller")

	sess, _ := store.Get("sess-1")
	for _, ev := range sess.GetEvents() {
		assert.False(t, ev.IsPartial(), "partials must not be persisted")
	}
}

func TestRunner_OutputKeyStateDelta(t *testing.T) {
	mockModel := model.NewMockModel("mock", "mock")
	mockModel.AddResponse("summarize", "a short summary")

	a := agent.NewModelAgent("summarizer", mockModel, func(o *agent.ModelAgentOptions) {
		o.EnableStreaming = false
		o.AllowTransfer = false
		o.OutputKey = "summary"
	})

	store := session.NewInMemoryStore()
	r := New(a, func(o *Options) { o.SessionStore = store })

	_, eventsCh, errorsCh, err := r.Run(context.Background(), "sess-1", core.NewUserContent("summarize"))
	require.NoError(t, err)
	_, runErr := drain(t, eventsCh, errorsCh)
	require.NoError(t, runErr)

	sess, _ := store.Get("sess-1")
	v, ok := sess.GetState("summary")
	require.True(t, ok)
	assert.Equal(t, "a short summary", v)
}

// blockingModel parks until the context is cancelled, keeping a run in
// flight for cancellation tests.
type blockingModel struct{}

func (blockingModel) Generate(ctx context.Context, _ model.Request) (<-chan model.Response, <-chan error) {
	respCh := make(chan model.Response)
	errCh := make(chan error, 1)
	go func() {
		defer close(respCh)
		defer close(errCh)
		<-ctx.Done()
		errCh <- ctx.Err()
	}()
	return respCh, errCh
}

func (blockingModel) Info() model.Info { return model.Info{Name: "blocking", Provider: "mock"} }

func TestRunner_Cancel(t *testing.T) {
	a := agent.NewModelAgent("assistant", blockingModel{}, func(o *agent.ModelAgentOptions) {
		o.AllowTransfer = false
	})
	r := New(a)

	runID, eventsCh, errorsCh, err := r.Run(context.Background(), "sess-1", core.NewUserContent("hello"))
	require.NoError(t, err)

	require.NoError(t, r.Cancel(runID))
	assert.Error(t, r.Cancel("unknown-run"))

	// Channels close after cancellation
	drain(t, eventsCh, errorsCh)
}
