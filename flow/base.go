package flow

import (
	"fmt"
	"time"

	"github.com/lumostack/agentkit/core"
	"github.com/lumostack/agentkit/model"
	"github.com/lumostack/agentkit/tool"
)

// BaseFlow is a minimal single-agent flow implementation supporting a
// request -> model -> (optional tool loop) cycle with pluggable processors.
type BaseFlow struct {
	agent              FlowAgent
	requestProcessors  []RequestProcessor
	responseProcessors []ResponseProcessor
}

// NewBaseFlow creates a new basic single-agent flow.
func NewBaseFlow(agent FlowAgent) *BaseFlow {
	return &BaseFlow{
		agent:              agent,
		requestProcessors:  []RequestProcessor{},
		responseProcessors: []ResponseProcessor{},
	}
}

// AddRequestProcessor appends a request processor; registration order defines
// execution order.
func (f *BaseFlow) AddRequestProcessor(processor RequestProcessor) {
	f.requestProcessors = append(f.requestProcessors, processor)
}

// AddResponseProcessor appends a response processor executed after each model chunk.
func (f *BaseFlow) AddResponseProcessor(processor ResponseProcessor) {
	f.responseProcessors = append(f.responseProcessors, processor)
}

// Execute launches the flow asynchronously and returns a channel of Events.
// The channel is closed when a final response is emitted or an unrecoverable
// error occurs. Callers should range over the returned channel.
func (f *BaseFlow) Execute(runCtx *core.RunContext) (<-chan core.Event, error) {
	eventChan := make(chan core.Event, 100)

	go func() {
		defer close(eventChan)

		for {
			last := f.runOnce(runCtx, eventChan)
			if last == nil {
				break
			}
			// A function response means the model gets another turn
			if len(last.GetFunctionResponses()) > 0 {
				continue
			}
			if last.IsPartial() {
				runCtx.LogWarn("flow.turn.ended_partial", "agent", f.agent.Name())
				break
			}
			if last.IsFinalResponse() {
				break
			}
		}
	}()

	return eventChan, nil
}

// emitError converts an internal error to a system Event.
func (f *BaseFlow) emitError(eventChan chan<- core.Event, runCtx *core.RunContext, err error) {
	eventChan <- core.NewErrorEvent(runCtx.RunID, err)
}

// runOnce performs one model turn (including any tool executions) and returns
// the last emitted Event. A nil return signals termination.
func (f *BaseFlow) runOnce(runCtx *core.RunContext, eventChan chan<- core.Event) *core.Event {
	// Refresh the session snapshot so request processors see the latest
	// conversation, including tool responses appended by the runner.
	if runCtx.SessionStore != nil {
		if err := runCtx.RefreshSession(); err != nil {
			runCtx.LogWarn("flow.session.refresh_failed", "agent", f.agent.Name(), "error", err.Error())
		}
	}

	// Every model turn counts against the run's turn budget.
	if err := runCtx.Limiter.Increment(); err != nil {
		f.emitError(eventChan, runCtx, err)
		return nil
	}

	req := &model.Request{
		Sampling: f.agent.Sampling(),
		Stream:   f.agent.StreamingEnabled(),
	}

	for _, processor := range f.requestProcessors {
		if err := processor.ProcessRequest(runCtx, req, f.agent); err != nil {
			f.emitError(eventChan, runCtx, fmt.Errorf("request processor %s failed: %w", processor.Name(), err))
			return nil
		}
	}

	if f.agent.FunctionCallingEnabled() {
		req.Tools = append(req.Tools, toolDefinitions(f.agent.Dispatcher())...)
	}

	respCh, errCh := f.agent.Model().Generate(runCtx.Context, *req)

	var lastEvent *core.Event

loop:
	for {
		select {
		case resp, ok := <-respCh:
			if !ok {
				break loop
			}

			for _, processor := range f.responseProcessors {
				if err := processor.ProcessResponse(runCtx, &resp, f.agent); err != nil {
					f.emitError(eventChan, runCtx, fmt.Errorf("response processor %s failed: %w", processor.Name(), err))
					return nil
				}
			}

			ev := core.NewEvent(runCtx.RunID, f.agent.Name())
			ev.Content = &resp.Content
			ev.Partial = &resp.Partial

			// Mark the turn complete on a final assistant response with no
			// pending tool calls.
			if !resp.Partial && len(ev.GetFunctionCalls()) == 0 {
				complete := true
				ev.TurnComplete = &complete
				if key := f.agent.OutputKey(); key != "" {
					ev.Actions.StateDelta = map[string]any{key: resp.Content.Text()}
				}
			}

			lastEvent = &ev

			eventChan <- ev

			// Wait for session persistence (runner signals resume after append)
			if !ev.IsPartial() && runCtx.Resume != nil {
				select {
				case <-runCtx.Context.Done():
					return lastEvent
				case <-runCtx.Resume:
				}
			}

			if fnCalls := ev.GetFunctionCalls(); len(fnCalls) > 0 {
				last, done := f.executeCalls(runCtx, eventChan, fnCalls)
				if last != nil {
					lastEvent = last
				}
				if done {
					return nil
				}
			}
		case err, ok := <-errCh:
			if ok {
				f.emitError(eventChan, runCtx, err)
				return nil
			}
			break loop
		}
	}

	return lastEvent
}

// executeCalls dispatches each requested function call and emits its
// observation. done reports that the flow must terminate, either because the
// call was unresolvable or because control transferred to a sub-agent.
func (f *BaseFlow) executeCalls(runCtx *core.RunContext, eventChan chan<- core.Event, fnCalls []core.FunctionCall) (last *core.Event, done bool) {
	for _, fnCall := range fnCalls {
		toolCtx := core.NewToolContext(runCtx, fnCall.ID)

		start := time.Now()
		result, err := f.agent.ExecuteTool(toolCtx, fnCall.Name, fnCall.Arguments)
		dur := time.Since(start)

		runCtx.LogInfo("flow.tool.executed",
			"agent", f.agent.Name(),
			"tool", fnCall.Name,
			"duration_ms", dur.Milliseconds(),
			"error", err != nil,
		)

		// An unresolvable tool name aborts the run; nothing was sent anywhere
		// and the model cannot recover from it.
		if tool.IsUnknownTool(err) {
			f.emitError(eventChan, runCtx, err)
			return last, true
		}

		respEv := core.NewFunctionResponseEvent(f.agent.Name(), fnCall.ID, fnCall.Name, result, err)
		respEv.Actions = *toolCtx.Actions()

		last = &respEv

		eventChan <- respEv

		// Wait for session persistence of the tool response
		if runCtx.Resume != nil {
			select {
			case <-runCtx.Context.Done():
				return last, true
			case <-runCtx.Resume:
			}
		}

		if target := toolCtx.Actions().TransferToAgent; target != nil && f.agent.TransferEnabled() {
			if err := f.agent.TransferToAgent(runCtx, *target); err != nil {
				f.emitError(eventChan, runCtx, fmt.Errorf("transfer to %q failed: %w", *target, err))
			}
			return last, true
		}
	}
	return last, false
}

// toolDefinitions builds function call declarations from the dispatcher.
func toolDefinitions(d *tool.Dispatcher) []model.ToolDefinition {
	if d == nil {
		return nil
	}
	tools := d.Tools()
	defs := make([]model.ToolDefinition, 0, len(tools))
	for _, t := range tools {
		defs = append(defs, model.ToolDefinition{
			Type: "function",
			Function: model.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}
	return defs
}
